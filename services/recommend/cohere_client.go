package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"lovecinema/internal/metrics"
)

const defaultCohereBaseURL = "https://api.cohere.com"

// cohereClient asks a chat model to name movies matching a mood or theme
// description. It is the fallback discovery tier, consulted only when the
// similarity search comes back empty.
type cohereClient struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

func newCohereClient(apiKey, model, baseURL string, httpc *http.Client) *cohereClient {
	if baseURL == "" {
		baseURL = defaultCohereBaseURL
	}
	return &cohereClient{
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

type cohereChatRequest struct {
	Model   string `json:"model"`
	Message string `json:"message"`
}

type cohereChatResponse struct {
	Text string `json:"text"`
}

// recommendTitles returns up to maxCandidates movie names matching the
// description, cleaned of list markup, in the order the model emitted them.
// Any failure or unparseable output yields an empty slice.
func (c *cohereClient) recommendTitles(ctx context.Context, query string) []string {
	prompt := fmt.Sprintf(
		"Recommend %d movies based on this description: %s. Return only movie names, one per line. No extra text.",
		maxCandidates, query)

	body, err := json.Marshal(cohereChatRequest{Model: c.model, Message: prompt})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("[recommend] cohere chat failed: %v", err)
		metrics.ProviderRequests.WithLabelValues("cohere", metrics.OutcomeError).Inc()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[recommend] cohere chat returned status %d", resp.StatusCode)
		metrics.ProviderRequests.WithLabelValues("cohere", metrics.OutcomeError).Inc()
		return nil
	}

	var payload cohereChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[recommend] cohere chat decode failed: %v", err)
		metrics.ProviderRequests.WithLabelValues("cohere", metrics.OutcomeError).Inc()
		return nil
	}

	titles := make([]string, 0, maxCandidates)
	for _, line := range strings.Split(payload.Text, "\n") {
		title := cleanGeneratedTitle(line)
		if title == "" {
			continue
		}
		titles = append(titles, title)
		if len(titles) == maxCandidates {
			break
		}
	}

	if len(titles) == 0 {
		metrics.ProviderRequests.WithLabelValues("cohere", metrics.OutcomeEmpty).Inc()
	} else {
		metrics.ProviderRequests.WithLabelValues("cohere", metrics.OutcomeOK).Inc()
	}
	return titles
}
