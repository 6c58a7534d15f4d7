package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"spotigrab/internal/shared"
)

// 1. Constants and types

const (
	defaultBaseURL   = "https://musicbrainz.org/ws/2/"
	defaultTimeout   = 15 * time.Second
	defaultRateLimit = 1050 * time.Millisecond // MusicBrainz allows 1 request per second; keep margin
	defaultRetries   = 3
	defaultBaseDelay = 750 * time.Millisecond
	defaultCacheSize = 512
)

// Config holds configuration for the MusicBrainz API client
type Config struct {
	BaseURL    string        `json:"base_url"`
	UserAgent  string        `json:"user_agent"`
	Timeout    time.Duration `json:"timeout"`
	RateLimit  time.Duration `json:"rate_limit"`
	BaseDelay  time.Duration `json:"base_delay"`
	MaxRetries int           `json:"max_retries"`
	CacheSize  int           `json:"cache_size"`
	Debug      bool          `json:"debug"`
}

// Match is a successful recording lookup. Album and Date come from the
// first release the recording appears on and may be empty.
type Match struct {
	RecordingID string
	ReleaseID   string
	Title       string
	Artist      string
	Album       string
	Date        string
}

// Client resolves tracks against the MusicBrainz search API. Lookups
// are rate limited, retried and cached; a failed lookup is always a
// soft miss, never an error the caller has to handle.
type Client struct {
	httpClient *http.Client
	config     Config
	gate       *requestGate
	cache      *lru.Cache[string, *Match]
	warnings   *shared.WarningCollector

	// sleep is swapped out in tests to observe backoff without waiting.
	sleep func(time.Duration)
}

// requestGate enforces a minimum gap between the end of one request
// and the start of the next, which is stricter than a token bucket and
// what the MusicBrainz rate policy actually asks for.
type requestGate struct {
	mu       sync.Mutex
	last     time.Time
	interval time.Duration
	sleep    func(time.Duration)
}

func (g *requestGate) acquire() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.last.IsZero() {
		if wait := g.interval - time.Since(g.last); wait > 0 {
			g.sleep(wait)
		}
	}
}

func (g *requestGate) stamp() {
	g.mu.Lock()
	g.last = time.Now()
	g.mu.Unlock()
}

// malformedResponseError marks a 200 response whose body did not parse.
// These are retried without jitter since the server is reachable.
type malformedResponseError struct {
	err error
}

func (e *malformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.err)
}

// 2. Constructor and configuration

// DefaultConfig returns sensible defaults for the MusicBrainz client
func DefaultConfig() Config {
	return Config{
		BaseURL:    defaultBaseURL,
		UserAgent:  shared.UserAgent,
		Timeout:    defaultTimeout,
		RateLimit:  defaultRateLimit,
		BaseDelay:  defaultBaseDelay,
		MaxRetries: defaultRetries,
		CacheSize:  defaultCacheSize,
	}
}

// NewClient creates a MusicBrainz client with default configuration
func NewClient(warnings *shared.WarningCollector) *Client {
	return NewClientWithConfig(DefaultConfig(), warnings)
}

// NewClientWithConfig creates a MusicBrainz client with custom configuration
func NewClientWithConfig(config Config, warnings *shared.WarningCollector) *Client {
	if config.CacheSize <= 0 {
		config.CacheSize = defaultCacheSize
	}
	cache, _ := lru.New[string, *Match](config.CacheSize)
	c := &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config:   config,
		cache:    cache,
		warnings: warnings,
		sleep:    time.Sleep,
	}
	c.gate = &requestGate{
		interval: config.RateLimit,
		sleep:    func(d time.Duration) { c.sleep(d) },
	}
	return c
}

// SetDebug enables or disables debug logging for the client
func (c *Client) SetDebug(debug bool) {
	c.config.Debug = debug
}

// 3. Public API

// Lookup resolves a recording by artist and title. It returns nil on
// empty input, on any exhausted failure and on an empty result set, so
// callers can treat every outcome short of a match as a miss.
func (c *Client) Lookup(ctx context.Context, artist, title string) *Match {
	if strings.TrimSpace(artist) == "" || strings.TrimSpace(title) == "" {
		return nil
	}

	cacheKey := artist + "\x00" + title
	if match, ok := c.cache.Get(cacheKey); ok {
		c.debugf("cache hit for %s - %s", artist, title)
		return match
	}

	query := fmt.Sprintf("artist:\"%s\" AND recording:\"%s\"", artist, title)
	path := fmt.Sprintf("recording/?query=%s&fmt=json&limit=1", url.QueryEscape(query))

	result, err := c.searchWithRetry(ctx, path)
	if err != nil {
		c.addWarning(artist, title, err.Error())
		return nil
	}
	if len(result.Recordings) == 0 {
		c.addWarning(artist, title, "no recording found")
		return nil
	}

	rec := result.Recordings[0]
	if rec.ID == "" {
		c.addWarning(artist, title, "result is missing a recording id")
		return nil
	}

	match := &Match{
		RecordingID: rec.ID,
		Title:       rec.Title,
		Artist:      joinArtistCredit(rec.ArtistCredit, artist),
	}
	if len(rec.Releases) > 0 {
		match.ReleaseID = rec.Releases[0].ID
		match.Album = rec.Releases[0].Title
		match.Date = rec.Releases[0].Date
	}

	c.cache.Add(cacheKey, match)
	return match
}

// 4. Core HTTP methods (private)

// searchWithRetry runs the search request through the retry state
// machine. Parsing happens inside the loop because a garbled body is a
// retryable condition.
func (c *Client) searchWithRetry(ctx context.Context, path string) (*recordingSearchResult, error) {
	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		result, err := c.doRequest(ctx, path)
		if err == nil {
			return result, nil
		}
		lastErr = err

		delay, retryable := c.retryDelay(err, attempt)
		if !retryable {
			return nil, err
		}
		if attempt == c.config.MaxRetries {
			break
		}
		c.debugf("attempt %d failed (%v), retrying in %v", attempt+1, err, delay)
		c.sleep(delay)
	}
	return nil, fmt.Errorf("lookup failed after %d attempts: %w", c.config.MaxRetries+1, lastErr)
}

// doRequest performs a single gated request and parses the body. The
// gate is stamped after the request completes so the configured gap is
// measured end to start.
func (c *Client) doRequest(ctx context.Context, path string) (*recordingSearchResult, error) {
	c.gate.acquire()
	defer c.gate.stamp()

	req, err := http.NewRequestWithContext(ctx, "GET", c.config.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		message := string(body)
		if len(message) > 200 {
			message = message[:200] + "..."
		}
		return nil, &shared.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    message,
		}
	}

	var result recordingSearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &malformedResponseError{err: err}
	}
	return &result, nil
}

// retryDelay classifies an error and computes the backoff before the
// next attempt. Client errors other than 429 are terminal.
func (c *Client) retryDelay(err error, attempt int) (time.Duration, bool) {
	base := c.config.BaseDelay * time.Duration(1<<attempt)

	if httpErr, ok := err.(*shared.HTTPError); ok {
		switch {
		case httpErr.StatusCode == http.StatusTooManyRequests:
			// The service asked us to slow down; add at least a
			// full second on top of the exponential delay.
			jitter := time.Second + time.Duration(rand.Float64()*float64(time.Second))
			return base + jitter, true
		case httpErr.StatusCode >= 500:
			jitter := time.Duration(rand.Float64() * 0.2 * float64(c.config.BaseDelay))
			return base + jitter, true
		default:
			return 0, false
		}
	}
	if _, ok := err.(*malformedResponseError); ok {
		return base, true
	}
	// Network-level failure.
	jitter := time.Duration(rand.Float64() * 0.2 * float64(c.config.BaseDelay))
	return base + jitter, true
}

// 5. Helper/utility functions

func (c *Client) addWarning(artist, title, details string) {
	if c.warnings != nil {
		c.warnings.AddMusicBrainzLookupWarning(artist, title, details)
	}
}

func (c *Client) debugf(format string, args ...interface{}) {
	if c.config.Debug {
		shared.ColorInfo.Printf("🔍 [MusicBrainz] "+format+"\n", args...)
	}
}

// joinArtistCredit flattens an artist credit into a display string,
// honoring each credit's join phrase. Falls back to the query artist
// when the credit is empty.
func joinArtistCredit(credits []ArtistCredit, fallback string) string {
	if len(credits) == 0 {
		return fallback
	}
	var b strings.Builder
	for _, credit := range credits {
		name := credit.Name
		if name == "" {
			name = credit.Artist.Name
		}
		b.WriteString(name)
		b.WriteString(credit.JoinPhrase)
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}

// Data types

// Artist represents a MusicBrainz artist
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ArtistCredit represents artist credit information
type ArtistCredit struct {
	Name       string `json:"name"`
	JoinPhrase string `json:"joinphrase"`
	Artist     Artist `json:"artist"`
}

// RecordingRelease represents release information within a recording
type RecordingRelease struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Recording represents a MusicBrainz recording
type Recording struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	ArtistCredit []ArtistCredit     `json:"artist-credit"`
	Releases     []RecordingRelease `json:"releases"`
}

type recordingSearchResult struct {
	Recordings []Recording `json:"recordings"`
}
