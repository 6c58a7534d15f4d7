package services

import (
	"context"
	"testing"

	"spotigrab/internal/config"
)

func TestNewServiceContainerWiresEverything(t *testing.T) {
	cfg := config.DefaultConfig()
	container := NewServiceContainer(cfg)

	if container.Config != cfg {
		t.Error("config not carried into container")
	}
	if container.MusicBrainz == nil {
		t.Error("musicbrainz client missing")
	}
	if container.Spotify == nil {
		t.Error("spotify client missing")
	}
	if container.Embedder == nil {
		t.Error("embedder missing")
	}
	if container.Downloader == nil {
		t.Error("downloader missing")
	}
	if container.Logger == nil {
		t.Error("logger missing")
	}
	if container.WarningCollector == nil {
		t.Error("warning collector missing")
	}
}

func TestLookupAdapterSoftMiss(t *testing.T) {
	cfg := config.DefaultConfig()
	container := NewServiceContainer(cfg)

	adapter := &musicBrainzLookup{client: container.MusicBrainz}
	// Empty inputs never reach the network and always miss.
	if adapter.Lookup(context.Background(), "", "") != nil {
		t.Error("empty lookup should be a miss")
	}
}
