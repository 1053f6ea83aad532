package recommend

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"lovecinema/internal/metrics"
	"lovecinema/models"
	"lovecinema/utils"
)

// maxCandidates caps the result list regardless of which discovery tier
// produced it. The gallery never shows more than five cards.
const maxCandidates = 5

const defaultTimeout = 12 * time.Second

// Discovery tier names, reported alongside the results so the renderer can
// label generative picks differently.
const (
	SourceSimilarity = "similarity"
	SourceGenerative = "generative"
)

// Candidate is a bare discovered title, optionally with the discovery
// provider's own identifier. It only lives inside one Recommend call.
type Candidate struct {
	Title      string
	ProviderID string
}

// Config carries everything the service needs at construction time. There is
// no ambient credential state: each adapter gets its key here and nowhere else.
type Config struct {
	SimilarityAPIKey string
	GenerativeAPIKey string
	MetadataAPIKey   string
	VideoAPIKey      string

	Region          string // ISO country code for availability lookups
	GenerativeModel string
	Timeout         time.Duration // per provider call; defaults to 12s

	// Base URL overrides for tests and proxies. Empty means the real host.
	SimilarityBaseURL string
	GenerativeBaseURL string
	MetadataBaseURL   string
	VideoBaseURL      string

	// HTTPClient, when set, is shared by all adapters (tests inject a mock
	// transport here). When nil a client with Timeout is created.
	HTTPClient *http.Client
}

// Service orchestrates the discovery tiers and the per-title enrichment
// fan-out. It holds long-lived provider clients and no per-call state, so one
// instance serves concurrent requests without coordination.
type Service struct {
	imdb    *imdbClient
	cohere  *cohereClient
	tmdb    *tmdbClient
	youtube *youtubeClient
	region  string
}

func NewService(cfg Config) *Service {
	if cfg.Region == "" {
		cfg.Region = "IN"
	}
	if cfg.GenerativeModel == "" {
		cfg.GenerativeModel = "command-r"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Service{
		imdb:    newIMDBClient(cfg.SimilarityAPIKey, cfg.SimilarityBaseURL, httpc),
		cohere:  newCohereClient(cfg.GenerativeAPIKey, cfg.GenerativeModel, cfg.GenerativeBaseURL, httpc),
		tmdb:    newTMDBClient(cfg.MetadataAPIKey, cfg.MetadataBaseURL, httpc),
		youtube: newYouTubeClient(cfg.VideoAPIKey, cfg.VideoBaseURL, httpc),
		region:  cfg.Region,
	}
}

// Recommend resolves a free-text query (a title or a mood description) into
// at most five enriched movie records, preserving the discovery order. The
// returned source names the tier that produced the candidates. An empty list
// with an empty source is the valid "no recommendations" outcome; Recommend
// never returns an error.
func (s *Service) Recommend(ctx context.Context, query string) (string, []models.MovieRecord) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	start := time.Now()
	defer func() {
		metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	}()

	source := SourceSimilarity
	candidates := s.imdb.findSimilar(ctx, query)
	if len(candidates) == 0 {
		source = SourceGenerative
		for _, title := range s.cohere.recommendTitles(ctx, query) {
			candidates = append(candidates, Candidate{Title: title})
		}
	}
	if len(candidates) == 0 {
		log.Printf("[recommend] no candidates for query %q", query)
		return "", nil
	}
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	// Enrich every candidate in parallel. Results land in indexed slots so
	// completion timing cannot reorder the list.
	records := make([]models.MovieRecord, len(candidates))
	p := pool.New().WithMaxGoroutines(len(candidates))
	for i, cand := range candidates {
		i, cand := i, cand
		p.Go(func() {
			records[i] = s.enrich(ctx, cand)
		})
	}
	p.Wait()

	log.Printf("[recommend] query %q -> %d records via %s (%s)",
		query, len(records), source, time.Since(start).Round(time.Millisecond))
	return source, records
}

// enrich attaches metadata, regional availability, and a trailer to one
// candidate. A panic inside enrichment degrades only this candidate to its
// placeholder record; the rest of the batch is unaffected.
func (s *Service) enrich(ctx context.Context, cand Candidate) (rec models.MovieRecord) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[recommend] enrichment panic for %q: %v", cand.Title, r)
			rec = placeholderRecord(cand.Title, s.region)
		}
	}()

	details := s.tmdb.movieDetails(ctx, cand.Title)
	rec = models.MovieRecord{
		TMDBID:      details.TMDBID,
		Title:       details.Title,
		Overview:    details.Overview,
		Poster:      details.Poster,
		ReleaseDate: details.ReleaseDate,
		Rating:      details.Rating,
	}
	if rec.Title == "" {
		rec.Title = models.PlaceholderTitle
	}

	// Availability needs a catalog id; without a match the sentinel applies.
	var providers []string
	if details.TMDBID > 0 {
		providers = s.tmdb.watchProviders(ctx, details.TMDBID, s.region)
	}
	if len(providers) == 0 {
		providers = models.NotOnOTT(s.region)
	}
	rec.OTT = providers

	if watchURL := s.youtube.trailerURL(ctx, rec.Title); watchURL != "" {
		rec.Trailer = watchURL
		rec.TrailerEmbed = utils.EmbedTrailerURL(watchURL)
	}
	return rec
}

func placeholderRecord(title, region string) models.MovieRecord {
	if title == "" {
		title = models.PlaceholderTitle
	}
	return models.MovieRecord{
		Title:       title,
		Overview:    models.PlaceholderOverview,
		Poster:      models.PlaceholderPoster,
		ReleaseDate: models.PlaceholderDate,
		Rating:      models.PlaceholderRating,
		OTT:         models.NotOnOTT(region),
	}
}
