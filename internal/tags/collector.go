package tags

import (
	"context"
	"fmt"
	"time"

	"github.com/jfmyers9/recap/pkg/lastfm"
	"github.com/rs/zerolog"
)

// Kind is the entity a tag set is collected for.
type Kind string

const (
	KindAlbum  Kind = "album"
	KindArtist Kind = "artist"
	KindTrack  Kind = "track"
)

// Source fetches raw tag names for single entities.
type Source interface {
	AlbumTags(ctx context.Context, artist, album string) ([]string, error)
	ArtistTags(ctx context.Context, artist string) ([]string, error)
	TrackTags(ctx context.Context, artist, track string) ([]string, error)
}

// LastfmSource reads entity tags from the Last.fm API.
type LastfmSource struct {
	Client *lastfm.Client
}

func (s LastfmSource) AlbumTags(ctx context.Context, artist, album string) ([]string, error) {
	return s.Client.Album().GetTags(ctx, artist, album)
}

func (s LastfmSource) ArtistTags(ctx context.Context, artist string) ([]string, error) {
	return s.Client.Artist().GetTopTags(ctx, artist)
}

func (s LastfmSource) TrackTags(ctx context.Context, artist, track string) ([]string, error) {
	return s.Client.Track().GetTopTags(ctx, artist, track)
}

// Collector fetches the tag set of one entity at a time.
type Collector struct {
	source  Source
	timeout time.Duration
	logger  zerolog.Logger
}

// NewCollector creates a collector. A zero timeout uses lastfm.DefaultTimeout.
func NewCollector(source Source, timeout time.Duration, logger zerolog.Logger) *Collector {
	if timeout <= 0 {
		timeout = lastfm.DefaultTimeout
	}
	return &Collector{
		source:  source,
		timeout: timeout,
		logger:  logger.With().Str("component", "tag_collector").Logger(),
	}
}

// Collect returns the lowercase, trimmed, de-duplicated tag names of an
// entity. primary is the artist; secondary is the album or track name and
// is ignored for artists. Any failure yields an empty list.
func (c *Collector) Collect(ctx context.Context, kind Kind, primary, secondary string) []string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.fetch(ctx, kind, primary, secondary)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("kind", string(kind)).
			Str("artist", primary).
			Str("name", secondary).
			Msg("Tag collection failed")
		return []string{}
	}

	names := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		name := lastfm.NormalizeTagName(r)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func (c *Collector) fetch(ctx context.Context, kind Kind, primary, secondary string) ([]string, error) {
	switch kind {
	case KindAlbum:
		return c.source.AlbumTags(ctx, primary, secondary)
	case KindArtist:
		return c.source.ArtistTags(ctx, primary)
	case KindTrack:
		return c.source.TrackTags(ctx, primary, secondary)
	}
	return nil, fmt.Errorf("unknown tag kind %q", kind)
}
