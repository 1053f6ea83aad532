package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"lovecinema/internal/metrics"
	"lovecinema/models"
)

const (
	defaultTMDBBaseURL = "https://api.themoviedb.org/3"
	tmdbImageBaseURL   = "https://image.tmdb.org/t/p/w500"
)

// tmdbClient covers both catalog lookups: search-by-title for core metadata
// and watch-providers-by-id for regional streaming availability.
type tmdbClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func newTMDBClient(apiKey, baseURL string, httpc *http.Client) *tmdbClient {
	if baseURL == "" {
		baseURL = defaultTMDBBaseURL
	}
	return &tmdbClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// movieDetails is the resolved core metadata for one title. A zero TMDBID
// means the catalog had no match and the remaining fields are placeholders.
type movieDetails struct {
	TMDBID      int64
	Title       string
	Overview    string
	Poster      string
	ReleaseDate string
	Rating      string
}

type tmdbSearchResponse struct {
	Results []struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		Overview    string  `json:"overview"`
		PosterPath  string  `json:"poster_path"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
	} `json:"results"`
}

// movieDetails looks up the single best catalog match for title. It never
// fails: on any transport error, bad body, or no-match the returned record
// carries the query title and placeholder fields with a zero TMDBID.
func (c *tmdbClient) movieDetails(ctx context.Context, title string) movieDetails {
	placeholder := movieDetails{
		Title:       title,
		Overview:    models.PlaceholderOverview,
		Poster:      models.PlaceholderPoster,
		ReleaseDate: models.PlaceholderDate,
		Rating:      models.PlaceholderRating,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/movie", nil)
	if err != nil {
		return placeholder
	}
	q := req.URL.Query()
	q.Set("api_key", c.apiKey)
	q.Set("query", title)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("[recommend] tmdb search failed for %q: %v", title, err)
		metrics.ProviderRequests.WithLabelValues("tmdb_search", metrics.OutcomeError).Inc()
		return placeholder
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[recommend] tmdb search returned status %d for %q", resp.StatusCode, title)
		metrics.ProviderRequests.WithLabelValues("tmdb_search", metrics.OutcomeError).Inc()
		return placeholder
	}

	var payload tmdbSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[recommend] tmdb search decode failed for %q: %v", title, err)
		metrics.ProviderRequests.WithLabelValues("tmdb_search", metrics.OutcomeError).Inc()
		return placeholder
	}
	if len(payload.Results) == 0 {
		metrics.ProviderRequests.WithLabelValues("tmdb_search", metrics.OutcomeEmpty).Inc()
		return placeholder
	}

	m := payload.Results[0]
	d := movieDetails{
		TMDBID:      m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
		Poster:      models.PlaceholderPoster,
		Rating:      fmt.Sprintf("%.1f", m.VoteAverage),
	}
	if d.Title == "" {
		d.Title = title
	}
	if d.Overview == "" {
		d.Overview = models.PlaceholderOverview
	}
	if d.ReleaseDate == "" {
		d.ReleaseDate = models.PlaceholderDate
	}
	if m.PosterPath != "" {
		d.Poster = tmdbImageBaseURL + m.PosterPath
	}

	metrics.ProviderRequests.WithLabelValues("tmdb_search", metrics.OutcomeOK).Inc()
	return d
}

type tmdbProviderEntry struct {
	ProviderName string `json:"provider_name"`
}

type tmdbRegionListings struct {
	Flatrate []tmdbProviderEntry `json:"flatrate"`
	Ads      []tmdbProviderEntry `json:"ads"`
	Free     []tmdbProviderEntry `json:"free"`
	Rent     []tmdbProviderEntry `json:"rent"`
	Buy      []tmdbProviderEntry `json:"buy"`
}

type tmdbProvidersResponse struct {
	Results map[string]tmdbRegionListings `json:"results"`
}

// watchProviders returns the streaming provider names for a catalog id in the
// given region, subscription tiers first (flatrate, ads, free, rent, buy),
// de-duplicated by name. Empty when the id is unset, the region has no
// listings, or the lookup fails.
func (c *tmdbClient) watchProviders(ctx context.Context, tmdbID int64, region string) []string {
	if tmdbID <= 0 {
		return nil
	}

	endpoint := fmt.Sprintf("%s/movie/%d/watch/providers", c.baseURL, tmdbID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	q := req.URL.Query()
	q.Set("api_key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("[recommend] tmdb watch/providers failed for %d: %v", tmdbID, err)
		metrics.ProviderRequests.WithLabelValues("tmdb_providers", metrics.OutcomeError).Inc()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[recommend] tmdb watch/providers returned status %d for %d", resp.StatusCode, tmdbID)
		metrics.ProviderRequests.WithLabelValues("tmdb_providers", metrics.OutcomeError).Inc()
		return nil
	}

	var payload tmdbProvidersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[recommend] tmdb watch/providers decode failed for %d: %v", tmdbID, err)
		metrics.ProviderRequests.WithLabelValues("tmdb_providers", metrics.OutcomeError).Inc()
		return nil
	}

	listings, ok := payload.Results[region]
	if !ok {
		metrics.ProviderRequests.WithLabelValues("tmdb_providers", metrics.OutcomeEmpty).Inc()
		return nil
	}

	// Priority order: subscription first, purchase last.
	groups := [][]tmdbProviderEntry{listings.Flatrate, listings.Ads, listings.Free, listings.Rent, listings.Buy}
	seen := make(map[string]bool)
	var names []string
	for _, group := range groups {
		for _, entry := range group {
			if entry.ProviderName == "" || seen[entry.ProviderName] {
				continue
			}
			seen[entry.ProviderName] = true
			names = append(names, entry.ProviderName)
		}
	}

	if len(names) == 0 {
		metrics.ProviderRequests.WithLabelValues("tmdb_providers", metrics.OutcomeEmpty).Inc()
	} else {
		metrics.ProviderRequests.WithLabelValues("tmdb_providers", metrics.OutcomeOK).Inc()
	}
	return names
}
