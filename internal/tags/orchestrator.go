// Package tags derives a user's top tags, either directly from Last.fm or
// by sampling their top albums or tracks and aggregating per-item tags.
package tags

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jfmyers9/recap/pkg/lastfm"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// ErrNoTagsAvailable is returned when neither user.getTopTags nor the
// sampling fallback produced any tags.
var ErrNoTagsAvailable = errors.New("no tags available")

// Charts is the part of the Last.fm user API the orchestrator reads.
type Charts interface {
	GetTopTags(ctx context.Context, user string, limit int) ([]lastfm.Tag, error)
	GetTopAlbums(ctx context.Context, user string, period lastfm.Period, limit int) ([]lastfm.Album, error)
	GetTopTracks(ctx context.Context, user string, period lastfm.Period, limit int) ([]lastfm.Track, error)
}

// Config configures an Orchestrator.
type Config struct {
	Strategy    Strategy      // fallback sample, defaults to albums
	AlbumSample int           // top albums sampled, defaults to 5
	TrackSample int           // top tracks sampled, defaults to 50
	BatchSize   int           // concurrent tag fetches, defaults to 5
	BatchDelay  time.Duration // pause between batches, defaults to 300ms
	Limit       int           // trims the result, 0 keeps everything
	Timeout     time.Duration // per-call deadline, defaults to lastfm.DefaultTimeout
	Logger      zerolog.Logger
}

// Orchestrator produces top tag lists.
type Orchestrator struct {
	charts    Charts
	collector *Collector
	cfg       Config
	sleep     func(ctx context.Context, d time.Duration) error
	logger    zerolog.Logger
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(charts Charts, collector *Collector, cfg Config) *Orchestrator {
	if !cfg.Strategy.Valid() {
		cfg.Strategy = StrategyAlbums
	}
	if cfg.AlbumSample <= 0 {
		cfg.AlbumSample = 5
	}
	if cfg.TrackSample <= 0 {
		cfg.TrackSample = 50
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5
	}
	if cfg.BatchDelay <= 0 {
		cfg.BatchDelay = 300 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = lastfm.DefaultTimeout
	}

	return &Orchestrator{
		charts:    charts,
		collector: collector,
		cfg:       cfg,
		sleep:     sleepContext,
		logger:    cfg.Logger.With().Str("component", "tags").Logger(),
	}
}

// TopTags returns the user's top tags for the period, sorted by count.
func (o *Orchestrator) TopTags(ctx context.Context, user string, period lastfm.Period) ([]Tag, error) {
	if user == "" {
		return nil, fmt.Errorf("user is required")
	}
	if period == "" {
		period = lastfm.PeriodOverall
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", lastfm.ErrInvalidPeriod, period)
	}

	log := o.logger.With().Str("user", user).Str("period", string(period)).Logger()

	direct, err := o.direct(ctx, user)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("Direct top tags failed, sampling instead")
	case len(direct) == 0:
		log.Info().Msg("No direct top tags, sampling instead")
	default:
		log.Debug().Int("tags", len(direct)).Msg("Using direct top tags")
		return o.trim(direct), nil
	}

	result, err := o.fallback(ctx, user, period, log)
	if err != nil {
		return nil, err
	}
	return o.trim(result), nil
}

func (o *Orchestrator) direct(ctx context.Context, user string) ([]Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	raw, err := o.charts.GetTopTags(ctx, user, 0)
	if err != nil {
		return nil, err
	}

	result := make([]Tag, 0, len(raw))
	for _, t := range raw {
		name := lastfm.NormalizeTagName(t.Name)
		if name == "" {
			continue
		}
		tag := Tag{Name: name, Count: t.Count, URL: t.URL}
		if tag.Count == "" {
			tag.Count = "0"
		}
		if tag.URL == "" {
			tag.URL = lastfm.TagURL(name)
		}
		result = append(result, tag)
	}
	return result, nil
}

// sampleItem is one ranked entity whose tags are collected.
type sampleItem struct {
	kind      Kind
	artist    string
	name      string
	playcount int
}

func (o *Orchestrator) fallback(ctx context.Context, user string, period lastfm.Period, log zerolog.Logger) ([]Tag, error) {
	items, err := o.sample(ctx, user, period)
	if err != nil {
		log.Error().Err(err).Str("strategy", string(o.cfg.Strategy)).Msg("Could not fetch sample")
		return nil, fmt.Errorf("%w: %w", ErrNoTagsAvailable, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty %s sample", ErrNoTagsAvailable, o.cfg.Strategy)
	}

	samples, err := o.collect(ctx, items)
	if err != nil {
		return nil, err
	}

	result := Aggregate(samples, o.cfg.Strategy.Weight())
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: %d sampled %s had no tags", ErrNoTagsAvailable, len(items), o.cfg.Strategy)
	}

	log.Info().
		Str("strategy", string(o.cfg.Strategy)).
		Int("sampled", len(items)).
		Int("tags", len(result)).
		Msg("Aggregated top tags")
	return result, nil
}

func (o *Orchestrator) sample(ctx context.Context, user string, period lastfm.Period) ([]sampleItem, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	if o.cfg.Strategy == StrategyTracks {
		tracks, err := o.charts.GetTopTracks(ctx, user, period, o.cfg.TrackSample)
		if err != nil {
			return nil, err
		}
		return lo.Map(lo.Slice(tracks, 0, o.cfg.TrackSample), func(t lastfm.Track, _ int) sampleItem {
			return sampleItem{kind: KindTrack, artist: t.Artist, name: t.Name, playcount: t.Playcount}
		}), nil
	}

	albums, err := o.charts.GetTopAlbums(ctx, user, period, o.cfg.AlbumSample)
	if err != nil {
		return nil, err
	}
	return lo.Map(lo.Slice(albums, 0, o.cfg.AlbumSample), func(a lastfm.Album, _ int) sampleItem {
		return sampleItem{kind: KindAlbum, artist: a.Artist, name: a.Name, playcount: a.Playcount}
	}), nil
}

// collect fetches tags for every item in batches. Results are slotted by
// index so the aggregate does not depend on response order.
func (o *Orchestrator) collect(ctx context.Context, items []sampleItem) ([]Sample, error) {
	samples := make([]Sample, len(items))

	for b, batch := range lo.Chunk(lo.Range(len(items)), o.cfg.BatchSize) {
		if b > 0 {
			if err := o.sleep(ctx, o.cfg.BatchDelay); err != nil {
				return nil, err
			}
		}

		var g errgroup.Group
		for _, i := range batch {
			g.Go(func() error {
				item := items[i]
				samples[i] = Sample{
					Tags:      o.collector.Collect(ctx, item.kind, item.artist, item.name),
					Playcount: item.playcount,
				}
				return nil
			})
		}
		_ = g.Wait()
	}
	return samples, nil
}

func (o *Orchestrator) trim(result []Tag) []Tag {
	if o.cfg.Limit > 0 && len(result) > o.cfg.Limit {
		return result[:o.cfg.Limit]
	}
	return result
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
