// Package session wires recap's components together once per run.
package session

import (
	"fmt"
	"net/http"

	"github.com/jfmyers9/recap/internal/config"
	"github.com/jfmyers9/recap/internal/correction"
	"github.com/jfmyers9/recap/internal/images"
	"github.com/jfmyers9/recap/internal/kvstore"
	"github.com/jfmyers9/recap/internal/spotify"
	"github.com/jfmyers9/recap/internal/tags"
	"github.com/jfmyers9/recap/pkg/lastfm"
	"github.com/rs/zerolog"
)

// Endpoints overrides upstream URLs. Empty fields use the real services.
type Endpoints struct {
	LastFM       string
	SpotifyToken string
	SpotifyAPI   string
}

// Session owns every component built from one configuration. Components
// share the token cache, the correction memo and the image cache.
type Session struct {
	LastFM      *lastfm.Client
	Tokens      *spotify.TokenCache
	Catalog     *spotify.Catalog
	Corrections *correction.Service
	Images      *images.Resolver
	Tags        *tags.Orchestrator

	store  kvstore.Store
	closer func() error
	logger zerolog.Logger
}

// New builds a session. The sqlite store under cfg.DataDir is opened when
// a data directory is configured, otherwise tokens live in memory.
func New(cfg *config.Config, endpoints Endpoints, logger zerolog.Logger) (*Session, error) {
	s := &Session{
		closer: func() error { return nil },
		logger: logger.With().Str("component", "session").Logger(),
	}

	if cfg.DataDir != "" {
		db, err := kvstore.OpenSQLite(cfg.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		s.store = db
		s.closer = db.Close
	} else {
		s.store = kvstore.NewMemory()
	}

	client, err := lastfm.NewClient(lastfm.Config{
		APIKey:     cfg.LastFM.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		BaseURL:    endpoints.LastFM,
		Logger:     debugLogger{logger.With().Str("component", "lastfm").Logger()},
	})
	if err != nil {
		_ = s.closer()
		return nil, err
	}
	s.LastFM = client

	s.Tokens = spotify.NewTokenCache(spotify.TokenConfig{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		TokenURL:     endpoints.SpotifyToken,
		Timeout:      cfg.HTTPTimeout,
		Store:        s.store,
		Logger:       logger,
	})
	s.Catalog = spotify.NewCatalog(s.Tokens, spotify.CatalogConfig{
		BaseURL: endpoints.SpotifyAPI,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	})

	s.Corrections = correction.New(client.Artist(), correction.Config{
		TTL:     cfg.CorrectionTTL,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	})

	s.Images = images.NewResolver(s.Catalog, s.Corrections, images.Config{
		BatchSize:  cfg.Images.BatchSize,
		BatchDelay: cfg.Images.BatchDelay,
		Logger:     logger,
	})

	collector := tags.NewCollector(tags.LastfmSource{Client: client}, cfg.HTTPTimeout, logger)
	s.Tags = tags.NewOrchestrator(client.User(), collector, tags.Config{
		Strategy:    tags.Strategy(cfg.Tags.Strategy),
		AlbumSample: cfg.Tags.AlbumSample,
		TrackSample: cfg.Tags.TrackSample,
		BatchSize:   cfg.Tags.BatchSize,
		BatchDelay:  cfg.Tags.BatchDelay,
		Timeout:     cfg.HTTPTimeout,
		Logger:      logger,
	})

	s.logger.Debug().
		Bool("catalog_credentials", cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != "").
		Str("tag_strategy", cfg.Tags.Strategy).
		Msg("Session ready")
	return s, nil
}

// Close releases the durable store.
func (s *Session) Close() error {
	return s.closer()
}

// debugLogger adapts zerolog to lastfm.Logger.
type debugLogger struct {
	logger zerolog.Logger
}

func (l debugLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}
