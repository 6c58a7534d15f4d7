// Package spotify fetches track listings from the Spotify Web API and
// flattens them into raw track records for the rest of the pipeline.
package spotify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"spotigrab/internal/shared"
)

// SpotifyClient holds the spotify client and its credentials
type SpotifyClient struct {
	client *spotify.Client
	ID     string
	Secret string
}

// NewSpotifyClient creates a new spotify client
func NewSpotifyClient(id, secret string) *SpotifyClient {
	return &SpotifyClient{
		ID:     id,
		Secret: secret,
	}
}

// Authenticate authenticates the client with the spotify api using the
// client credentials flow.
func (s *SpotifyClient) Authenticate(ctx context.Context) error {
	if s.ID == "" || s.Secret == "" {
		return fmt.Errorf("spotify client id and secret are required")
	}
	config := &clientcredentials.Config{
		ClientID:     s.ID,
		ClientSecret: s.Secret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return fmt.Errorf("spotify authentication failed: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	s.client = spotify.New(httpClient)
	return nil
}

// GetPlaylistTracks gets the tracks from a spotify playlist URL.
// Returns the raw track records and the playlist name.
func (s *SpotifyClient) GetPlaylistTracks(ctx context.Context, playlistURL string) ([]shared.RawTrack, string, error) {
	id, err := extractID(playlistURL, "playlist")
	if err != nil {
		return nil, "", err
	}

	playlist, err := s.client.GetPlaylist(ctx, spotify.ID(id))
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch playlist: %w", err)
	}

	var tracks []shared.RawTrack
	for _, item := range playlist.Tracks.Tracks {
		tracks = append(tracks, rawFromFullTrack(item.Track))
	}
	return tracks, playlist.Name, nil
}

// GetAlbumTracks gets the tracks from a spotify album URL. Album name
// and release date come from the album itself since the simplified
// track objects do not carry them.
func (s *SpotifyClient) GetAlbumTracks(ctx context.Context, albumURL string) ([]shared.RawTrack, string, error) {
	id, err := extractID(albumURL, "album")
	if err != nil {
		return nil, "", err
	}

	album, err := s.client.GetAlbum(ctx, spotify.ID(id))
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch album: %w", err)
	}

	var tracks []shared.RawTrack
	for _, track := range album.Tracks.Tracks {
		raw := rawFromSimpleTrack(track)
		raw["album"] = album.Name
		raw["release_date"] = album.ReleaseDate
		tracks = append(tracks, raw)
	}
	return tracks, album.Name, nil
}

// GetTrack gets a single track from a spotify track URL.
func (s *SpotifyClient) GetTrack(ctx context.Context, trackURL string) (shared.RawTrack, error) {
	id, err := extractID(trackURL, "track")
	if err != nil {
		return nil, err
	}

	track, err := s.client.GetTrack(ctx, spotify.ID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch track: %w", err)
	}
	return rawFromFullTrack(*track), nil
}

// extractID pulls the resource ID out of an open.spotify.com URL of the
// given kind, tolerating trailing query parameters.
func extractID(rawURL, kind string) (string, error) {
	parts := strings.Split(rawURL, "/")
	if len(parts) < 5 || parts[3] != kind {
		return "", fmt.Errorf("invalid spotify %s URL: %s", kind, rawURL)
	}
	id := strings.Split(parts[4], "?")[0]
	if id == "" {
		return "", fmt.Errorf("invalid spotify %s URL: %s", kind, rawURL)
	}
	return id, nil
}

func rawFromFullTrack(track spotify.FullTrack) shared.RawTrack {
	raw := rawFromSimpleTrack(track.SimpleTrack)
	raw["album"] = track.Album.Name
	raw["release_date"] = track.Album.ReleaseDate
	raw["popularity"] = strconv.Itoa(int(track.Popularity))
	return raw
}

func rawFromSimpleTrack(track spotify.SimpleTrack) shared.RawTrack {
	var artists []string
	for _, artist := range track.Artists {
		artists = append(artists, artist.Name)
	}
	raw := shared.RawTrack{
		"artist":      strings.Join(artists, "; "),
		"track":       track.Name,
		"uri":         string(track.URI),
		"duration_ms": strconv.Itoa(int(track.Duration)),
		"explicit":    strconv.FormatBool(track.Explicit),
	}
	return raw
}
