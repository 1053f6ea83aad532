package models

// Placeholder values substituted when an enrichment field cannot be resolved.
// Every MovieRecord handed to a renderer carries these instead of empty fields,
// so the card layout never has to special-case missing data.
const (
	PlaceholderTitle    = "Unknown Title"
	PlaceholderOverview = "No description available."
	PlaceholderPoster   = "https://via.placeholder.com/500x750?text=No+Poster"
	PlaceholderDate     = "N/A"
	PlaceholderRating   = "N/A"
)

// NotOnOTT returns the single-entry availability list used when a title has no
// streaming listings in the given region.
func NotOnOTT(region string) []string {
	return []string{"Not on major OTT in " + region}
}

// MovieRecord is one recommendation card. Title, Overview, Poster and OTT are
// always populated (placeholders allowed); Trailer is the only field that may
// be genuinely empty.
type MovieRecord struct {
	TMDBID       int64    `json:"tmdbId,omitempty"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview"`
	Poster       string   `json:"poster"`
	ReleaseDate  string   `json:"releaseDate"`            // YYYY-MM-DD as supplied by the catalog, or "N/A"
	Rating       string   `json:"rating"`                 // formatted vote average, or "N/A"
	OTT          []string `json:"ott"`                    // provider names, subscription tiers first
	Trailer      string   `json:"trailer,omitempty"`      // YouTube watch URL
	TrailerEmbed string   `json:"trailerEmbed,omitempty"` // iframe-friendly embed form of Trailer
}

// RecommendResponse is the API envelope for the recommend endpoint.
type RecommendResponse struct {
	Query   string        `json:"query"`
	Source  string        `json:"source"` // "similarity" | "generative" | ""
	Results []MovieRecord `json:"results"`
}
