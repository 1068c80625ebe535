package lastfm

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// ArtistService provides artist lookups.
type ArtistService struct {
	client *Client
}

// GetCorrection asks Last.fm for the canonical spelling of an artist name.
//
// ok is false when Last.fm has no correction for the name.
func (s *ArtistService) GetCorrection(ctx context.Context, artist string) (correction Correction, ok bool, err error) {
	if artist == "" {
		return Correction{}, false, fmt.Errorf("lastfm: artist is required")
	}

	resp, err := s.client.call(ctx, "artist.getCorrection", map[string]string{
		"artist": artist,
	})
	if err != nil {
		return Correction{}, false, err
	}

	correction, ok = parseCorrection(resp)
	return correction, ok, nil
}

// GetInfo fetches artist.getInfo.
func (s *ArtistService) GetInfo(ctx context.Context, artist string) (*ArtistInfo, error) {
	if artist == "" {
		return nil, fmt.Errorf("lastfm: artist is required")
	}

	resp, err := s.client.call(ctx, "artist.getInfo", map[string]string{
		"artist": artist,
	})
	if err != nil {
		return nil, err
	}
	return parseArtistInfo(resp)
}

// GetTopTags returns the normalized top tag names of an artist.
func (s *ArtistService) GetTopTags(ctx context.Context, artist string) ([]string, error) {
	if artist == "" {
		return nil, fmt.Errorf("lastfm: artist is required")
	}

	resp, err := s.client.call(ctx, "artist.getTopTags", map[string]string{
		"artist":      artist,
		"autocorrect": "1",
	})
	if err != nil {
		return nil, err
	}
	return parseTagNames(gjson.GetBytes(resp, "toptags")), nil
}
