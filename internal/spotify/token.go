// Package spotify talks to the Spotify Web API with client credentials:
// a token cache for the client-credentials exchange and a catalog search
// used to find artist, album and track artwork.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jfmyers9/recap/internal/kvstore"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTokenURL is Spotify's OAuth2 token endpoint.
	DefaultTokenURL = "https://accounts.spotify.com/api/token"

	// Keys under which the token survives in the durable store.
	tokenKey  = "spotify_access_token"
	expiryKey = "spotify_token_expiry"

	// Spotify issues hour-long tokens; used when a response omits expires_in.
	defaultTokenTTL = time.Hour
)

// ErrCredentialsMissing is returned when no client id or secret is configured.
// Image lookups treat it as "catalog unavailable".
var ErrCredentialsMissing = errors.New("spotify: client credentials are missing")

// TokenExchangeError reports a failed client-credentials exchange.
// Nothing is cached, so the next call tries again.
type TokenExchangeError struct {
	Err error
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("spotify: token exchange failed: %v", e.Err)
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}

// TokenConfig configures a TokenCache.
type TokenConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string        // Optional: defaults to DefaultTokenURL
	Timeout      time.Duration // Optional: per-exchange deadline, defaults to 10s
	Store        kvstore.Store // Optional: persists the token between runs
	Logger       zerolog.Logger
}

// TokenCache holds the bearer token for the catalog API and refreshes it
// through a client-credentials exchange once it expires.
//
// Concurrent callers that find the token expired share one exchange.
type TokenCache struct {
	cfg     *clientcredentials.Config
	client  *http.Client
	store   kvstore.Store
	logger  zerolog.Logger
	timeout time.Duration
	now     func() time.Time

	mu       sync.Mutex
	token    string
	expiry   time.Time
	restored bool

	refresh singleflight.Group
}

// NewTokenCache creates a token cache. Missing credentials are not an error
// here; Token reports ErrCredentialsMissing instead.
func NewTokenCache(cfg TokenConfig) *TokenCache {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &TokenCache{
		client:  &http.Client{Timeout: timeout},
		store:   cfg.Store,
		logger:  cfg.Logger.With().Str("component", "spotify_token").Logger(),
		timeout: timeout,
		now:     time.Now,
	}

	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		tokenURL := cfg.TokenURL
		if tokenURL == "" {
			tokenURL = DefaultTokenURL
		}
		c.cfg = &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
	}

	return c
}

// Token returns a valid access token, exchanging credentials if the cached
// one is absent or expired.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	if c.cfg == nil {
		return "", ErrCredentialsMissing
	}

	if token, ok := c.current(ctx); ok {
		return token, nil
	}

	v, err, shared := c.refresh.Do("token", func() (interface{}, error) {
		// A refresh that finished while we waited for the flight is good enough.
		if token, ok := c.current(ctx); ok {
			return token, nil
		}
		return c.exchange(ctx)
	})
	if err != nil {
		return "", err
	}
	if shared {
		c.logger.Debug().Msg("Joined in-flight token refresh")
	}
	return v.(string), nil
}

// current returns the cached token if it has not expired.
func (c *TokenCache) current(ctx context.Context) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.restored {
		c.restored = true
		c.restore(ctx)
	}

	if c.token != "" && c.now().Before(c.expiry) {
		return c.token, true
	}
	return "", false
}

// restore loads a previously persisted token. Caller holds c.mu.
func (c *TokenCache) restore(ctx context.Context) {
	if c.store == nil {
		return
	}

	token, ok, err := c.store.Get(ctx, tokenKey)
	if err != nil || !ok {
		return
	}
	raw, ok, err := c.store.Get(ctx, expiryKey)
	if err != nil || !ok {
		return
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.logger.Debug().Str("value", raw).Msg("Ignoring unparseable persisted token expiry")
		return
	}

	c.token = token
	c.expiry = time.UnixMilli(ms)
	c.logger.Debug().Time("expiry", c.expiry).Msg("Restored persisted token")
}

func (c *TokenCache) exchange(ctx context.Context) (string, error) {
	c.logger.Debug().Msg("Requesting new access token")

	// The exchange is shared by every waiting caller, so one caller's
	// cancellation must not fail the others.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)

	requested := c.now()
	tok, err := c.cfg.Token(ctx)
	if err != nil {
		return "", &TokenExchangeError{Err: err}
	}
	if tok.AccessToken == "" {
		return "", &TokenExchangeError{Err: errors.New("empty access token")}
	}

	ttl := defaultTokenTTL
	if !tok.Expiry.IsZero() {
		ttl = time.Until(tok.Expiry).Round(time.Second)
	}
	expiry := requested.Add(ttl)

	c.mu.Lock()
	c.token = tok.AccessToken
	c.expiry = expiry
	c.mu.Unlock()

	c.persist(ctx, tok.AccessToken, expiry)

	c.logger.Info().Dur("expires_in", ttl).Msg("New access token acquired")
	return tok.AccessToken, nil
}

func (c *TokenCache) persist(ctx context.Context, token string, expiry time.Time) {
	if c.store == nil {
		return
	}
	if err := c.store.Set(ctx, tokenKey, token); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to persist access token")
		return
	}
	if err := c.store.Set(ctx, expiryKey, strconv.FormatInt(expiry.UnixMilli(), 10)); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to persist token expiry")
	}
}
