package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"lovecinema/models"
	recommendpkg "lovecinema/services/recommend"
)

type recommendService interface {
	Recommend(ctx context.Context, query string) (string, []models.MovieRecord)
}

var _ recommendService = (*recommendpkg.Service)(nil)

// RecommendHandler exposes the recommendation pipeline over HTTP.
type RecommendHandler struct {
	Service recommendService
}

func NewRecommendHandler(s recommendService) *RecommendHandler {
	return &RecommendHandler{Service: s}
}

// Recommend handles GET /api/recommend?q=<title or mood description>.
// An empty result list is a normal 200 response; the renderer shows its
// "no recommendations found" state for it.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	w.Header().Set("Content-Type", "application/json")
	if q == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "query parameter q is required"})
		return
	}

	source, results := h.Service.Recommend(r.Context(), q)
	if results == nil {
		results = []models.MovieRecord{}
	}
	json.NewEncoder(w).Encode(models.RecommendResponse{
		Query:   q,
		Source:  source,
		Results: results,
	})
}
