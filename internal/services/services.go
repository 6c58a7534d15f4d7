package services

import (
	"context"
	"fmt"

	"spotigrab/internal/api/musicbrainz"
	"spotigrab/internal/api/spotify"
	"spotigrab/internal/config"
	"spotigrab/internal/core/downloader"
	"spotigrab/internal/metadata"
	"spotigrab/internal/shared"
)

// ServiceContainer holds all application services
type ServiceContainer struct {
	Config           *config.Config
	MusicBrainz      *musicbrainz.Client
	Spotify          *spotify.SpotifyClient
	Embedder         *metadata.Embedder
	Downloader       *downloader.Downloader
	Logger           *ConsoleLogger
	WarningCollector *shared.WarningCollector
}

// NewServiceContainer creates a service container with all services
// wired together from the configuration.
func NewServiceContainer(cfg *config.Config) *ServiceContainer {
	logger := NewConsoleLogger()
	warningCollector := shared.NewWarningCollector(cfg.WarningBehavior != "silent")

	mbConfig := musicbrainz.DefaultConfig()
	mbConfig.MaxRetries = cfg.MusicBrainzRetries
	mbConfig.BaseDelay = cfg.MusicBrainzBackoffDuration()
	mbConfig.Timeout = cfg.MusicBrainzTimeoutDuration()
	mbClient := musicbrainz.NewClientWithConfig(mbConfig, warningCollector)

	var lookup metadata.LookupClient
	if cfg.EnableLookup {
		lookup = &musicBrainzLookup{client: mbClient}
	}
	embedder := metadata.NewEmbedder(lookup, warningCollector)

	spotifyClient := spotify.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	downloadService := downloader.NewDownloader(cfg, embedder, warningCollector)

	return &ServiceContainer{
		Config:           cfg,
		MusicBrainz:      mbClient,
		Spotify:          spotifyClient,
		Embedder:         embedder,
		Downloader:       downloadService,
		Logger:           logger,
		WarningCollector: warningCollector,
	}
}

// NewLookupAdapter wraps a MusicBrainz client in the lookup interface
// the metadata pipeline consumes.
func NewLookupAdapter(client *musicbrainz.Client) metadata.LookupClient {
	return &musicBrainzLookup{client: client}
}

// musicBrainzLookup adapts the MusicBrainz client to the embedding
// pipeline's lookup interface.
type musicBrainzLookup struct {
	client *musicbrainz.Client
}

func (m *musicBrainzLookup) Lookup(ctx context.Context, artist, title string) *metadata.LookupResult {
	match := m.client.Lookup(ctx, artist, title)
	if match == nil {
		return nil
	}
	return &metadata.LookupResult{
		Album:     match.Album,
		Date:      match.Date,
		ReleaseID: match.ReleaseID,
	}
}

// ConsoleLogger implementation
type ConsoleLogger struct {
	debugMode bool
}

func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{debugMode: false}
}

func (cl *ConsoleLogger) Info(message string, args ...interface{}) {
	shared.ColorInfo.Printf(message+"\n", args...)
}

func (cl *ConsoleLogger) Warning(message string, args ...interface{}) {
	shared.ColorWarning.Printf("⚠️ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Error(message string, args ...interface{}) {
	shared.ColorError.Printf("❌ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Debug(message string, args ...interface{}) {
	if cl.debugMode {
		fmt.Printf("🐛 DEBUG: "+message+"\n", args...)
	}
}

func (cl *ConsoleLogger) Success(message string, args ...interface{}) {
	shared.ColorSuccess.Printf("✅ "+message+"\n", args...)
}

func (cl *ConsoleLogger) SetDebugMode(enabled bool) {
	cl.debugMode = enabled
	cl.Debug("debug logging enabled")
}
