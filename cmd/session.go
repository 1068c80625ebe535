package cmd

import (
	"fmt"

	"github.com/jfmyers9/recap/internal/config"
	"github.com/jfmyers9/recap/internal/session"
	"github.com/rs/zerolog"
)

// openSession loads configuration and builds the components for one
// command run. Callers must Close the session.
func openSession() (*session.Session, *config.Config, zerolog.Logger, error) {
	logger := setupLogger(logFile, logLevel)

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, logger, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.LastFM.APIKey == "" {
		return nil, nil, logger, fmt.Errorf("Last.fm API key not configured (set lastfm.api_key or RECAP_LASTFM_API_KEY)")
	}

	s, err := session.New(cfg, session.Endpoints{
		LastFM:       lastfmURL,
		SpotifyToken: spotifyTokenURL,
		SpotifyAPI:   spotifyAPIURL,
	}, logger)
	if err != nil {
		return nil, nil, logger, fmt.Errorf("failed to start session: %w", err)
	}
	return s, cfg, logger, nil
}
