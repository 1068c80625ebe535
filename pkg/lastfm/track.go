package lastfm

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// TrackService provides track lookups.
type TrackService struct {
	client *Client
}

// GetTopTags returns the normalized top tag names of a track.
//
// Tracks without tags of their own fall back to track.getInfo's
// toptags list, which Last.fm sometimes fills when getTopTags is empty.
func (s *TrackService) GetTopTags(ctx context.Context, artist, track string) ([]string, error) {
	if artist == "" || track == "" {
		return nil, fmt.Errorf("lastfm: artist and track are required")
	}

	resp, err := s.client.call(ctx, "track.getTopTags", map[string]string{
		"artist":      artist,
		"track":       track,
		"autocorrect": "1",
	})
	if err != nil {
		return nil, err
	}
	if tags := parseTagNames(gjson.GetBytes(resp, "toptags")); len(tags) > 0 {
		return tags, nil
	}

	resp, err = s.client.call(ctx, "track.getInfo", map[string]string{
		"artist":      artist,
		"track":       track,
		"autocorrect": "1",
	})
	if err != nil {
		return nil, err
	}
	return parseTagNames(gjson.GetBytes(resp, "track.toptags")), nil
}
