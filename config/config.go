package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Settings is the persisted application configuration. It is stored as a JSON
// file and may be overridden field-by-field through environment variables, so
// deployments can keep credentials out of the settings file entirely.
type Settings struct {
	Server    ServerSettings    `json:"server"`
	APIKeys   APIKeySettings    `json:"api_keys"`
	Recommend RecommendSettings `json:"recommend"`
}

type ServerSettings struct {
	Port    int    `json:"port"`
	LogFile string `json:"log_file,omitempty"` // when set, logs rotate through this file
}

// APIKeySettings holds the four provider credentials. All of them are required
// at startup; no request can succeed without them.
type APIKeySettings struct {
	Similarity string `json:"similarity_api_key"` // RapidAPI key for the IMDb find endpoint
	Generative string `json:"generative_api_key"` // Cohere API key
	Metadata   string `json:"metadata_api_key"`   // TMDB API key
	Video      string `json:"video_api_key"`      // YouTube Data API key
}

type RecommendSettings struct {
	Region          string `json:"region"`           // ISO country code for availability lookups
	GenerativeModel string `json:"generative_model"` // Cohere model identifier
	TimeoutSeconds  int    `json:"timeout_seconds"`  // per provider call

	// Base URL overrides, used by tests and self-hosted proxies.
	SimilarityBaseURL string `json:"similarity_base_url,omitempty"`
	GenerativeBaseURL string `json:"generative_base_url,omitempty"`
	MetadataBaseURL   string `json:"metadata_base_url,omitempty"`
	VideoBaseURL      string `json:"video_base_url,omitempty"`
}

const (
	DefaultPort            = 8080
	DefaultRegion          = "IN"
	DefaultGenerativeModel = "command-r"
	DefaultTimeoutSeconds  = 12
)

// Manager loads settings from a JSON file path. A missing file is not an
// error: defaults plus environment overrides still apply, which covers
// container deployments configured purely through the environment.
type Manager struct {
	path string
	mu   sync.Mutex
}

func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Load reads the settings file, fills in defaults, and applies environment
// overrides. Safe for concurrent use.
func (m *Manager) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var s Settings
	data, err := os.ReadFile(m.path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings file %s: %w", m.path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults + env
	default:
		return Settings{}, fmt.Errorf("read settings file %s: %w", m.path, err)
	}

	applyDefaults(&s)
	applyEnvOverrides(&s)
	return s, nil
}

func applyDefaults(s *Settings) {
	if s.Server.Port == 0 {
		s.Server.Port = DefaultPort
	}
	if s.Recommend.Region == "" {
		s.Recommend.Region = DefaultRegion
	}
	if s.Recommend.GenerativeModel == "" {
		s.Recommend.GenerativeModel = DefaultGenerativeModel
	}
	if s.Recommend.TimeoutSeconds == 0 {
		s.Recommend.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

func applyEnvOverrides(s *Settings) {
	overrideString(&s.APIKeys.Similarity, "RAPIDAPI_KEY")
	overrideString(&s.APIKeys.Generative, "COHERE_API_KEY")
	overrideString(&s.APIKeys.Metadata, "TMDB_API_KEY")
	overrideString(&s.APIKeys.Video, "YOUTUBE_API_KEY")
	overrideString(&s.Recommend.Region, "REGION")
	overrideString(&s.Recommend.GenerativeModel, "COHERE_MODEL")
	overrideString(&s.Server.LogFile, "LOG_FILE")

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			s.Server.Port = port
		}
	}
}

func overrideString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate reports every missing credential at once so an operator can fix
// the whole configuration in one pass. Missing credentials are fatal: the
// pipeline cannot produce anything without them.
func (s Settings) Validate() error {
	var missing []string
	if strings.TrimSpace(s.APIKeys.Similarity) == "" {
		missing = append(missing, "similarity_api_key (RAPIDAPI_KEY)")
	}
	if strings.TrimSpace(s.APIKeys.Generative) == "" {
		missing = append(missing, "generative_api_key (COHERE_API_KEY)")
	}
	if strings.TrimSpace(s.APIKeys.Metadata) == "" {
		missing = append(missing, "metadata_api_key (TMDB_API_KEY)")
	}
	if strings.TrimSpace(s.APIKeys.Video) == "" {
		missing = append(missing, "video_api_key (YOUTUBE_API_KEY)")
	}
	if len(missing) > 0 {
		return errors.New("missing credentials: " + strings.Join(missing, ", "))
	}
	return nil
}
