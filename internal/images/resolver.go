// Package images resolves a single artwork URL for an artist, album or
// track by layering the Spotify catalog, Last.fm's own image lists and a
// placeholder.
package images

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jfmyers9/recap/internal/spotify"
	"github.com/jfmyers9/recap/pkg/lastfm"
	"github.com/rs/zerolog"
)

// EntityType is the kind of entity an image is resolved for.
type EntityType string

const (
	Artist EntityType = "artist"
	Album  EntityType = "album"
	Track  EntityType = "track"
)

// ParseEntityType parses "artist", "album" or "track".
func ParseEntityType(s string) (EntityType, error) {
	switch t := EntityType(s); t {
	case Artist, Album, Track:
		return t, nil
	}
	return "", fmt.Errorf("unknown entity type %q", s)
}

const placeholderBase = "https://via.placeholder.com/300?text="

// Placeholder returns the fallback URL for an entity type.
func Placeholder(t EntityType) string {
	switch t {
	case Album:
		return placeholderBase + "No+Album+Image"
	case Track:
		return placeholderBase + "No+Track+Image"
	default:
		return placeholderBase + "No+Artist+Image"
	}
}

// Catalog searches the secondary catalog. An empty URL with a nil error
// means nothing was found.
type Catalog interface {
	ArtistImage(ctx context.Context, name string) (string, error)
	AlbumImage(ctx context.Context, album, artist string) (string, error)
	TrackImage(ctx context.Context, track, artist string) (string, error)
}

// Corrector canonicalizes artist names.
type Corrector interface {
	Lookup(name string) (string, bool)
	Correct(ctx context.Context, name string) string
}

// Request describes one entity to resolve.
type Request struct {
	Type EntityType
	Name string
	// Artist is the owning artist for albums and tracks.
	Artist string
	// CorrectedName is an alternate spelling already known to the caller.
	CorrectedName string
	// Attached is an image the entity already carries, used as is.
	Attached string
	// Images is the entity's Last.fm image list.
	Images []lastfm.Image
}

// Config configures a Resolver.
type Config struct {
	BatchSize  int           // names per batch in ResolveBatch, defaults to 10
	BatchDelay time.Duration // pause between batches, defaults to 1s
	Logger     zerolog.Logger
}

// Resolver resolves artwork URLs and caches catalog hits for the session.
type Resolver struct {
	catalog   Catalog
	corrector Corrector
	cache     *cache

	batchSize  int
	batchDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error

	logger zerolog.Logger
}

// NewResolver creates a resolver. corrector may be nil.
func NewResolver(catalog Catalog, corrector Corrector, cfg Config) *Resolver {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	batchDelay := cfg.BatchDelay
	if batchDelay <= 0 {
		batchDelay = time.Second
	}

	return &Resolver{
		catalog:    catalog,
		corrector:  corrector,
		cache:      newCache(),
		batchSize:  batchSize,
		batchDelay: batchDelay,
		sleep:      sleepContext,
		logger:     cfg.Logger.With().Str("component", "image_resolver").Logger(),
	}
}

// Resolve returns the best available URL for the entity. It always
// returns a URL: when every source misses, the placeholder for the type.
func (r *Resolver) Resolve(ctx context.Context, req Request) string {
	log := r.logger.With().Str("type", string(req.Type)).Str("name", req.Name).Logger()

	if req.Attached != "" {
		return req.Attached
	}

	corrected := req.CorrectedName
	if corrected == "" && req.Type == Artist && r.corrector != nil {
		corrected, _ = r.corrector.Lookup(req.Name)
	}

	if url, ok := r.cached(req, corrected); ok {
		log.Debug().Msg("Image cache hit")
		return url
	}

	if url := r.searchCatalog(ctx, req, corrected); url != "" {
		return url
	}

	if url := PickPrimary(req.Images); url != "" {
		log.Debug().Msg("Using Last.fm image")
		return url
	}

	log.Debug().Msg("No image found, using placeholder")
	return Placeholder(req.Type)
}

// Store seeds the cache. It reports whether the entry was written; an
// existing entry from an equal or higher-priority source is kept.
func (r *Resolver) Store(t EntityType, name, artist, url string, source Source) bool {
	return r.cache.put(cacheKey{typ: t, name: name, artist: artist}, url, source)
}

// Cached returns a cached URL without consulting any source.
func (r *Resolver) Cached(t EntityType, name, artist string) (string, bool) {
	e, ok := r.cache.get(cacheKey{typ: t, name: name, artist: artist})
	return e.url, ok
}

func (r *Resolver) cached(req Request, corrected string) (string, bool) {
	if url, ok := r.Cached(req.Type, req.Name, req.Artist); ok {
		return url, true
	}
	if corrected != "" && corrected != req.Name {
		return r.Cached(req.Type, corrected, req.Artist)
	}
	return "", false
}

// searchCatalog queries the catalog by name. For artists whose name has
// no known correction yet, a miss asks the corrector before giving up and
// retries with the canonical name.
func (r *Resolver) searchCatalog(ctx context.Context, req Request, corrected string) string {
	if r.catalog == nil {
		return ""
	}

	url, err := r.lookup(ctx, req.Type, req.Name, req.Artist)
	if err != nil {
		r.logCatalogError(err, req)
		return ""
	}

	if url == "" && req.Type == Artist && corrected == "" && r.corrector != nil {
		if c := r.corrector.Correct(ctx, req.Name); c != req.Name {
			corrected = c
			if cachedURL, ok := r.Cached(Artist, corrected, ""); ok {
				r.Store(Artist, req.Name, "", cachedURL, SourceCatalog)
				return cachedURL
			}
			if url, err = r.lookup(ctx, Artist, corrected, ""); err != nil {
				r.logCatalogError(err, req)
				return ""
			}
		}
	}
	if url == "" {
		return ""
	}

	r.Store(req.Type, req.Name, req.Artist, url, SourceCatalog)
	if corrected != "" && corrected != req.Name {
		r.Store(req.Type, corrected, req.Artist, url, SourceCatalog)
	}
	r.logger.Debug().
		Str("type", string(req.Type)).
		Str("name", req.Name).
		Str("url", url).
		Msg("Catalog image found")
	return url
}

func (r *Resolver) lookup(ctx context.Context, t EntityType, name, artist string) (string, error) {
	switch t {
	case Album:
		return r.catalog.AlbumImage(ctx, name, artist)
	case Track:
		return r.catalog.TrackImage(ctx, name, artist)
	default:
		return r.catalog.ArtistImage(ctx, name)
	}
}

func (r *Resolver) logCatalogError(err error, req Request) {
	event := r.logger.Warn()
	if errors.Is(err, spotify.ErrCredentialsMissing) {
		event = r.logger.Debug()
	}
	event.Err(err).
		Str("type", string(req.Type)).
		Str("name", req.Name).
		Msg("Catalog search failed")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
