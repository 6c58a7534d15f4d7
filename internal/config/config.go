package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spotigrab/internal/shared"
)

// Configuration structure. Boolean fields default to true in DefaultConfig;
// LoadConfig unmarshals over a default-filled struct so absent keys keep
// their defaults.
type Config struct {
	OutputDir            string  `json:"output_dir"`
	AudioFormat          string  `json:"audio_format"`
	Parallelism          int     `json:"parallelism"`
	SleepBetween         float64 `json:"sleep_between"` // seconds between download launches
	TracksFile           string  `json:"tracks_file"`
	PlaylistsFile        string  `json:"playlists_file"`
	ExportifyDir         string  `json:"exportify_watch_folder"`
	SpotifyClientID      string  `json:"spotify_client_id"`
	SpotifyClientSecret  string  `json:"spotify_client_secret"`
	EnableEmbedding      bool    `json:"enable_metadata_embedding"`
	MetadataTemplate     string  `json:"metadata_template"`
	EnableLookup         bool    `json:"enable_musicbrainz_lookup"`
	MusicBrainzRetries   int     `json:"musicbrainz_retries"`
	MusicBrainzBackoff   float64 `json:"musicbrainz_backoff_base"` // seconds
	MusicBrainzTimeout   int     `json:"musicbrainz_timeout"`      // seconds
	WarningBehavior      string  `json:"warning_behavior"` // "summary" or "silent"
}

// DefaultConfig returns the documented defaults for every setting.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:          "downloads",
		AudioFormat:        "mp3",
		Parallelism:        3,
		SleepBetween:       5,
		TracksFile:         filepath.Join("data", "tracks.json"),
		PlaylistsFile:      filepath.Join("data", "playlists.json"),
		ExportifyDir:       filepath.Join("data", "exportify"),
		EnableEmbedding:    true,
		MetadataTemplate:   "basic",
		EnableLookup:       true,
		MusicBrainzRetries: 3,
		MusicBrainzBackoff: 0.75,
		MusicBrainzTimeout: 15,
		WarningBehavior:    "summary",
	}
}

// MusicBrainzBackoffDuration returns the backoff base as a duration.
func (cfg *Config) MusicBrainzBackoffDuration() time.Duration {
	return time.Duration(cfg.MusicBrainzBackoff * float64(time.Second))
}

// MusicBrainzTimeoutDuration returns the lookup timeout as a duration.
func (cfg *Config) MusicBrainzTimeoutDuration() time.Duration {
	if cfg.MusicBrainzTimeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(cfg.MusicBrainzTimeout) * time.Second
}

// LoadConfig loads configuration from a JSON file into config, which should
// already hold defaults.
func LoadConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// SaveConfig saves configuration to a JSON file
func SaveConfig(filePath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	dir := filepath.Dir(filePath)
	if err := shared.CreateDirIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EnsureConfigExists writes a default config file if none is present.
func EnsureConfigExists(filePath string) error {
	if !shared.FileExists(filePath) {
		return SaveConfig(filePath, DefaultConfig())
	}
	return nil
}

// Validate reports configuration problems that would prevent a run.
func Validate(cfg *Config) error {
	if cfg.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if cfg.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1")
	}
	switch cfg.MetadataTemplate {
	case "", "basic", "comprehensive", "dj-mix":
	default:
		return fmt.Errorf("unknown metadata template: %s", cfg.MetadataTemplate)
	}
	if cfg.MusicBrainzRetries < 0 || cfg.MusicBrainzRetries > 10 {
		return fmt.Errorf("musicbrainz_retries must be between 0 and 10")
	}
	if cfg.MusicBrainzBackoff < 0.1 || cfg.MusicBrainzBackoff > 5.0 {
		return fmt.Errorf("musicbrainz_backoff_base must be between 0.1 and 5.0")
	}
	return nil
}
