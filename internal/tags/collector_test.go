package tags

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

type fakeSource struct {
	tags  map[string][]string // keyed by "kind:artist:name"
	err   error
	calls []string
}

func (f *fakeSource) lookup(key string) ([]string, error) {
	f.calls = append(f.calls, key)
	if f.err != nil {
		return nil, f.err
	}
	return f.tags[key], nil
}

func (f *fakeSource) AlbumTags(ctx context.Context, artist, album string) ([]string, error) {
	return f.lookup("album:" + artist + ":" + album)
}

func (f *fakeSource) ArtistTags(ctx context.Context, artist string) ([]string, error) {
	return f.lookup("artist:" + artist)
}

func (f *fakeSource) TrackTags(ctx context.Context, artist, track string) ([]string, error) {
	return f.lookup("track:" + artist + ":" + track)
}

func TestCollect_Normalizes(t *testing.T) {
	src := &fakeSource{tags: map[string][]string{
		"album:Björk:Homogenic": {" Electronic", "electronic", "", "Trip-Hop"},
	}}
	c := NewCollector(src, 0, zerolog.Nop())

	got := c.Collect(context.Background(), KindAlbum, "Björk", "Homogenic")
	if !reflect.DeepEqual(got, []string{"electronic", "trip-hop"}) {
		t.Errorf("Collect() = %v", got)
	}
}

func TestCollect_Kinds(t *testing.T) {
	src := &fakeSource{}
	c := NewCollector(src, 0, zerolog.Nop())

	c.Collect(context.Background(), KindArtist, "Low", "ignored")
	c.Collect(context.Background(), KindTrack, "Low", "Words")

	want := []string{"artist:Low", "track:Low:Words"}
	if !reflect.DeepEqual(src.calls, want) {
		t.Errorf("calls = %v, want %v", src.calls, want)
	}
}

func TestCollect_FailureIsEmpty(t *testing.T) {
	c := NewCollector(&fakeSource{err: errors.New("timeout")}, 0, zerolog.Nop())

	got := c.Collect(context.Background(), KindTrack, "Low", "Words")
	if got == nil || len(got) != 0 {
		t.Errorf("Collect() = %#v, want empty non-nil slice", got)
	}

	if got := c.Collect(context.Background(), Kind("playlist"), "x", "y"); len(got) != 0 {
		t.Errorf("unknown kind should yield no tags, got %v", got)
	}
}
