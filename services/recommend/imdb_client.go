package recommend

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"lovecinema/internal/metrics"
)

const defaultIMDBBaseURL = "https://imdb146.p.rapidapi.com"

// imdbClient queries the RapidAPI IMDb "find" endpoint for titles related to
// a free-text query. It is the primary discovery tier.
type imdbClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func newIMDBClient(apiKey, baseURL string, httpc *http.Client) *imdbClient {
	if baseURL == "" {
		baseURL = defaultIMDBBaseURL
	}
	return &imdbClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

type imdbFindResponse struct {
	TitleResults struct {
		Results []struct {
			ID            string `json:"id"`
			TitleNameText string `json:"titleNameText"`
		} `json:"results"`
	} `json:"titleResults"`
}

// findSimilar returns up to maxCandidates titles related to the query, in the
// provider's own similarity order. Transport failures, non-2xx statuses,
// unexpected shapes, and genuine no-match all collapse to an empty slice.
func (c *imdbClient) findSimilar(ctx context.Context, query string) []Candidate {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/find/", nil)
	if err != nil {
		return nil
	}
	q := req.URL.Query()
	q.Set("query", query)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("[recommend] imdb find failed: %v", err)
		metrics.ProviderRequests.WithLabelValues("imdb", metrics.OutcomeError).Inc()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[recommend] imdb find returned status %d", resp.StatusCode)
		metrics.ProviderRequests.WithLabelValues("imdb", metrics.OutcomeError).Inc()
		return nil
	}

	var payload imdbFindResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[recommend] imdb find decode failed: %v", err)
		metrics.ProviderRequests.WithLabelValues("imdb", metrics.OutcomeError).Inc()
		return nil
	}

	candidates := make([]Candidate, 0, maxCandidates)
	for _, r := range payload.TitleResults.Results {
		if r.TitleNameText == "" {
			continue
		}
		candidates = append(candidates, Candidate{Title: r.TitleNameText, ProviderID: r.ID})
		if len(candidates) == maxCandidates {
			break
		}
	}

	if len(candidates) == 0 {
		metrics.ProviderRequests.WithLabelValues("imdb", metrics.OutcomeEmpty).Inc()
	} else {
		metrics.ProviderRequests.WithLabelValues("imdb", metrics.OutcomeOK).Inc()
	}
	return candidates
}
