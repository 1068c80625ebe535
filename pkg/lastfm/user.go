package lastfm

import (
	"context"
	"fmt"
	"strconv"
)

// UserService provides a user's charts.
type UserService struct {
	client *Client
}

// GetTopTags returns the tags the user has applied most, as user.getTopTags
// reports them. Count and URL are passed through untouched and may be empty.
func (s *UserService) GetTopTags(ctx context.Context, user string, limit int) ([]Tag, error) {
	if user == "" {
		return nil, fmt.Errorf("lastfm: user is required")
	}

	resp, err := s.client.call(ctx, "user.getTopTags", map[string]string{
		"user":  user,
		"limit": limitParam(limit),
	})
	if err != nil {
		return nil, err
	}
	return parseTopTags(resp)
}

// GetTopAlbums returns the user's top albums for a period, ranked.
func (s *UserService) GetTopAlbums(ctx context.Context, user string, period Period, limit int) ([]Album, error) {
	entries, err := s.chart(ctx, "user.getTopAlbums", "topalbums", "album", user, period, limit)
	if err != nil {
		return nil, err
	}

	albums := make([]Album, len(entries))
	for i, e := range entries {
		albums[i] = Album{Name: e.name, Artist: e.artist, Playcount: e.playcount, Rank: e.rank, Images: e.images}
	}
	return albums, nil
}

// GetTopTracks returns the user's top tracks for a period, ranked.
func (s *UserService) GetTopTracks(ctx context.Context, user string, period Period, limit int) ([]Track, error) {
	entries, err := s.chart(ctx, "user.getTopTracks", "toptracks", "track", user, period, limit)
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, len(entries))
	for i, e := range entries {
		tracks[i] = Track{Name: e.name, Artist: e.artist, Playcount: e.playcount, Rank: e.rank, Images: e.images}
	}
	return tracks, nil
}

// GetTopArtists returns the user's top artists for a period, ranked.
func (s *UserService) GetTopArtists(ctx context.Context, user string, period Period, limit int) ([]Artist, error) {
	entries, err := s.chart(ctx, "user.getTopArtists", "topartists", "artist", user, period, limit)
	if err != nil {
		return nil, err
	}

	artists := make([]Artist, len(entries))
	for i, e := range entries {
		artists[i] = Artist{Name: e.name, Playcount: e.playcount, Rank: e.rank, Images: e.images}
	}
	return artists, nil
}

func (s *UserService) chart(ctx context.Context, method, root, element, user string, period Period, limit int) ([]chartEntry, error) {
	if user == "" {
		return nil, fmt.Errorf("lastfm: user is required")
	}
	if period == "" {
		period = PeriodOverall
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	resp, err := s.client.call(ctx, method, map[string]string{
		"user":   user,
		"period": string(period),
		"limit":  limitParam(limit),
	})
	if err != nil {
		return nil, err
	}
	return parseChart(resp, method, root, element)
}

func limitParam(limit int) string {
	if limit <= 0 {
		return ""
	}
	return strconv.Itoa(limit)
}
