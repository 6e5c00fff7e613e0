package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// ToolName identifies the downloader in the User-Agent header.
	ToolName = "xkcdDL"

	// Version is the downloader version sent in the User-Agent header.
	Version = "2.0.0"

	// DefaultBaseURL is the catalog root.
	DefaultBaseURL = "https://xkcd.com"
)

// Settings holds all configuration options.
type Settings struct {
	// Catalog settings
	BaseURL        string  `json:"base_url"`
	UserAgentValue string  `json:"user_agent,omitempty"`
	RequestTimeout float64 `json:"request_timeout"`
	KnownGaps      []int   `json:"known_gaps"`

	// Download settings
	OutputDir  string  `json:"output_dir"`
	Delay      float64 `json:"delay"`
	SaveImages bool    `json:"save_images"`
	SaveJSON   bool    `json:"save_json"`
	Reconcile  bool    `json:"reconcile"`

	// Thumbnail settings
	ThumbnailMaxSize int `json:"thumbnail_max_size"`

	// EPUB settings
	EpubTitle  string `json:"epub_title"`
	EpubAuthor string `json:"epub_author"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: 60,
		KnownGaps:      []int{404},

		OutputDir:  ".",
		Delay:      0.5,
		SaveImages: true,
		SaveJSON:   true,
		Reconcile:  true,

		ThumbnailMaxSize: 0,

		EpubTitle:  "xkcd",
		EpubAuthor: "Randall Munroe",
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports settings that cannot be used for a run.
func (s *Settings) Validate() error {
	var errs []error
	if s.BaseURL == "" {
		errs = append(errs, errors.New("base_url must not be empty"))
	}
	if s.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative, got %v", s.Delay))
	}
	if s.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout must not be negative, got %v", s.RequestTimeout))
	}
	if s.ThumbnailMaxSize < 0 {
		errs = append(errs, fmt.Errorf("thumbnail_max_size must not be negative, got %d", s.ThumbnailMaxSize))
	}
	for _, gap := range s.KnownGaps {
		if gap <= 0 {
			errs = append(errs, fmt.Errorf("known_gaps entries must be positive, got %d", gap))
		}
	}
	return errors.Join(errs...)
}

// UserAgent returns the identifying header value, "{tool-name}/{version}"
// unless overridden.
func (s *Settings) UserAgent() string {
	if s.UserAgentValue != "" {
		return s.UserAgentValue
	}
	return ToolName + "/" + Version
}

// DelayDuration converts Delay (seconds) to a time.Duration.
func (s *Settings) DelayDuration() time.Duration {
	return time.Duration(s.Delay * float64(time.Second))
}

// TimeoutDuration converts RequestTimeout (seconds) to a time.Duration.
// Zero disables the timeout.
func (s *Settings) TimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout * float64(time.Second))
}

// KnownGapSet returns KnownGaps as a set.
func (s *Settings) KnownGapSet() map[int]struct{} {
	set := make(map[int]struct{}, len(s.KnownGaps))
	for _, gap := range s.KnownGaps {
		set[gap] = struct{}{}
	}
	return set
}
