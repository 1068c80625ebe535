package lastfm

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// AlbumService provides album lookups.
type AlbumService struct {
	client *Client
}

// AlbumInfo is the part of album.getInfo recap uses.
type AlbumInfo struct {
	Name   string
	Artist string
	Images []Image
	Tags   []string
}

// GetInfo fetches album.getInfo with autocorrection enabled.
func (s *AlbumService) GetInfo(ctx context.Context, artist, album string) (*AlbumInfo, error) {
	if artist == "" || album == "" {
		return nil, fmt.Errorf("lastfm: artist and album are required")
	}

	resp, err := s.client.call(ctx, "album.getInfo", map[string]string{
		"artist":      artist,
		"album":       album,
		"autocorrect": "1",
	})
	if err != nil {
		return nil, err
	}

	root := gjson.GetBytes(resp, "album")
	if !root.IsObject() {
		return nil, &FormatError{Method: "album.getInfo", Path: "album"}
	}
	return &AlbumInfo{
		Name:   root.Get("name").String(),
		Artist: root.Get("artist").String(),
		Images: parseImages(root.Get("image")),
		Tags:   parseTagNames(root.Get("tags")),
	}, nil
}

// GetTags returns the normalized tag names attached to an album.
func (s *AlbumService) GetTags(ctx context.Context, artist, album string) ([]string, error) {
	info, err := s.GetInfo(ctx, artist, album)
	if err != nil {
		return nil, err
	}
	return info.Tags, nil
}
