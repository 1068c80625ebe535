// Package correction canonicalizes artist names through Last.fm's
// artist.getCorrection and remembers the answers for the session.
package correction

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/jfmyers9/recap/pkg/lastfm"
	"github.com/rs/zerolog"
)

// Source is the part of the Last.fm client the service needs.
type Source interface {
	GetCorrection(ctx context.Context, artist string) (lastfm.Correction, bool, error)
	GetInfo(ctx context.Context, artist string) (*lastfm.ArtistInfo, error)
}

// Service corrects artist names. Corrections are best-effort: any failure
// leaves the name as it was.
type Service struct {
	source  Source
	memo    *ttlcache.Cache[string, string]
	timeout time.Duration
	logger  zerolog.Logger
}

// Config configures a Service.
type Config struct {
	// TTL bounds how long a correction is remembered. Zero keeps
	// corrections for the life of the process.
	TTL     time.Duration
	Timeout time.Duration
	Logger  zerolog.Logger
}

// New creates a correction service.
func New(source Source, cfg Config) *Service {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = lastfm.DefaultTimeout
	}

	return &Service{
		source:  source,
		memo:    ttlcache.New[string, string](ttlcache.WithTTL[string, string](ttl)),
		timeout: timeout,
		logger:  cfg.Logger.With().Str("component", "correction").Logger(),
	}
}

// Correct returns the canonical spelling of name, or name itself when
// Last.fm has no correction or cannot be reached.
func (s *Service) Correct(ctx context.Context, name string) string {
	if name == "" {
		return name
	}
	if corrected, ok := s.Lookup(name); ok {
		return corrected
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	correction, ok, err := s.source.GetCorrection(ctx, name)
	if err != nil {
		// Transport failures are not remembered so a later call can retry.
		s.logger.Debug().Err(err).Str("artist", name).Msg("Correction lookup failed, using original name")
		return name
	}

	corrected := name
	if ok {
		corrected = correction.Name
	}
	if corrected != name {
		s.logger.Debug().Str("artist", name).Str("corrected", corrected).Msg("Artist name corrected")
	}

	s.memo.Set(name, corrected, ttlcache.DefaultTTL)
	return corrected
}

// Lookup returns a remembered correction without calling Last.fm.
func (s *Service) Lookup(name string) (string, bool) {
	item := s.memo.Get(name)
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

// ArtistInfo fetches artist.getInfo using the corrected name, so the
// details describe the canonical artist.
func (s *Service) ArtistInfo(ctx context.Context, name string) (*lastfm.ArtistInfo, error) {
	corrected := s.Correct(ctx, name)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.source.GetInfo(ctx, corrected)
}
