package spotify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/zmb3/spotify/v2"
)

// CatalogConfig configures a Catalog.
type CatalogConfig struct {
	BaseURL string        // Optional: API base URL ending in "/", used for testing
	Timeout time.Duration // Optional: per-request deadline, defaults to 10s
	Logger  zerolog.Logger
}

// Catalog searches the Spotify catalog for artwork.
type Catalog struct {
	tokens  *TokenCache
	client  *spotify.Client
	timeout time.Duration
	logger  zerolog.Logger
}

// NewCatalog creates a catalog client authenticated by tokens.
func NewCatalog(tokens *TokenCache, cfg CatalogConfig) *Catalog {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: &bearerTransport{tokens: tokens, base: http.DefaultTransport},
	}

	var opts []spotify.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, spotify.WithBaseURL(cfg.BaseURL))
	}

	return &Catalog{
		tokens:  tokens,
		client:  spotify.New(httpClient, opts...),
		timeout: timeout,
		logger:  cfg.Logger.With().Str("component", "spotify_catalog").Logger(),
	}
}

// ArtistImage returns the best-fit image of the first artist matching name.
// An empty string with a nil error means the search found nothing usable.
func (c *Catalog) ArtistImage(ctx context.Context, name string) (string, error) {
	res, err := c.search(ctx, name, spotify.SearchTypeArtist)
	if err != nil {
		return "", err
	}
	if res.Artists == nil || len(res.Artists.Artists) == 0 {
		c.logger.Debug().Str("artist", name).Msg("No artists found")
		return "", nil
	}

	artist := res.Artists.Artists[0]
	c.logger.Debug().Str("artist", name).Str("match", artist.Name).Msg("Found artist")
	return bestFit(artist.Images), nil
}

// TrackImage returns the album artwork of the first track matching the
// track and artist names.
func (c *Catalog) TrackImage(ctx context.Context, track, artist string) (string, error) {
	query := fmt.Sprintf("track:%s artist:%s", track, artist)
	res, err := c.search(ctx, query, spotify.SearchTypeTrack)
	if err != nil {
		return "", err
	}
	if res.Tracks == nil || len(res.Tracks.Tracks) == 0 {
		c.logger.Debug().Str("track", track).Str("artist", artist).Msg("No tracks found")
		return "", nil
	}
	return bestFit(res.Tracks.Tracks[0].Album.Images), nil
}

// AlbumImage returns the artwork of the first album matching the album and
// artist names.
func (c *Catalog) AlbumImage(ctx context.Context, album, artist string) (string, error) {
	query := fmt.Sprintf("album:%s artist:%s", album, artist)
	res, err := c.search(ctx, query, spotify.SearchTypeAlbum)
	if err != nil {
		return "", err
	}
	if res.Albums == nil || len(res.Albums.Albums) == 0 {
		c.logger.Debug().Str("album", album).Str("artist", artist).Msg("No albums found")
		return "", nil
	}
	return bestFit(res.Albums.Albums[0].Images), nil
}

func (c *Catalog) search(ctx context.Context, query string, t spotify.SearchType) (*spotify.SearchResult, error) {
	// Fail fast with the token error itself rather than a wrapped transport error.
	if _, err := c.tokens.Token(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.client.Search(ctx, query, t, spotify.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("spotify: search %q: %w", query, err)
	}
	return res, nil
}

// bestFit picks the medium-resolution image. Spotify orders images from
// largest to smallest, so the second entry is the medium one.
func bestFit(images []spotify.Image) string {
	switch len(images) {
	case 0:
		return ""
	case 1:
		return images[0].URL
	default:
		return images[1].URL
	}
}

// bearerTransport authorizes catalog requests with the cached token.
type bearerTransport struct {
	tokens *TokenCache
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.Token(req.Context())
	if err != nil {
		return nil, err
	}

	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(req)
}
