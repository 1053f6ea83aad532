package recommend

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"lovecinema/internal/metrics"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// youtubeClient resolves a trailer for a display title via the YouTube Data
// search endpoint.
type youtubeClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func newYouTubeClient(apiKey, baseURL string, httpc *http.Client) *youtubeClient {
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}
	return &youtubeClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// trailerURL returns a watch URL for the best "<title> trailer" match, or ""
// when nothing could be resolved. The trailer is the one enrichment field the
// output contract allows to stay empty.
func (c *youtubeClient) trailerURL(ctx context.Context, title string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return ""
	}
	q := req.URL.Query()
	q.Set("part", "snippet")
	q.Set("maxResults", "1")
	q.Set("q", title+" trailer")
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("[recommend] youtube search failed for %q: %v", title, err)
		metrics.ProviderRequests.WithLabelValues("youtube", metrics.OutcomeError).Inc()
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[recommend] youtube search returned status %d for %q", resp.StatusCode, title)
		metrics.ProviderRequests.WithLabelValues("youtube", metrics.OutcomeError).Inc()
		return ""
	}

	var payload youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[recommend] youtube search decode failed for %q: %v", title, err)
		metrics.ProviderRequests.WithLabelValues("youtube", metrics.OutcomeError).Inc()
		return ""
	}

	if len(payload.Items) == 0 || payload.Items[0].ID.VideoID == "" {
		metrics.ProviderRequests.WithLabelValues("youtube", metrics.OutcomeEmpty).Inc()
		return ""
	}

	metrics.ProviderRequests.WithLabelValues("youtube", metrics.OutcomeOK).Inc()
	return "https://www.youtube.com/watch?v=" + payload.Items[0].ID.VideoID
}
