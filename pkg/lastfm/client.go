package lastfm

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds client configuration.
type Config struct {
	APIKey     string       // Required: Last.fm API key
	HTTPClient *http.Client // Optional: HTTP client (defaults to a client with DefaultTimeout)
	BaseURL    string       // Optional: Base URL for API (defaults to Last.fm API, used for testing)
	Logger     Logger       // Optional: Logger interface for debug logging
	MaxRetries int          // Optional: attempts per call (defaults to 3)
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Last.fm API operations.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     Logger
	maxRetries int

	user   *UserService
	album  *AlbumService
	artist *ArtistService
	track  *TrackService
}

const (
	// DefaultBaseURL is the default Last.fm API endpoint.
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

	// DefaultTimeout bounds every outbound request.
	DefaultTimeout = 10 * time.Second
)

// NewClient creates a new Last.fm API client.
//
// Returns an error if required configuration (APIKey) is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: APIKey is required", ErrInvalidConfig)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     cfg.Logger,
		maxRetries: maxRetries,
	}

	c.user = &UserService{client: c}
	c.album = &AlbumService{client: c}
	c.artist = &ArtistService{client: c}
	c.track = &TrackService{client: c}

	return c, nil
}

// User returns the user chart service.
func (c *Client) User() *UserService {
	return c.user
}

// Album returns the album service.
func (c *Client) Album() *AlbumService {
	return c.album
}

// Artist returns the artist service.
func (c *Client) Artist() *ArtistService {
	return c.artist
}

// Track returns the track service.
func (c *Client) Track() *TrackService {
	return c.track
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
