package lastfm

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
)

func TestUserService_GetTopTags(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("method"); got != "user.getTopTags" {
			t.Errorf("expected method user.getTopTags, got %s", got)
		}
		if got := r.URL.Query().Get("user"); got != "rj" {
			t.Errorf("expected user rj, got %s", got)
		}
		_, _ = w.Write([]byte(`{"toptags": {"tag": [
			{"name": "rock", "count": 12, "url": "https://www.last.fm/tag/rock"},
			{"name": "pop"}
		], "@attr": {"user": "rj"}}}`))
	})

	tags, err := client.User().GetTopTags(context.Background(), "rj", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	if tags[0].Name != "rock" || tags[0].Count != "12" {
		t.Errorf("unexpected first tag: %+v", tags[0])
	}
	if tags[1].Count != "" || tags[1].URL != "" {
		t.Errorf("expected missing fields to stay empty, got %+v", tags[1])
	}
}

func TestUserService_GetTopTracks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("period"); got != "7day" {
			t.Errorf("expected period 7day, got %s", got)
		}
		if got := q.Get("limit"); got != "50" {
			t.Errorf("expected limit 50, got %s", got)
		}
		_, _ = w.Write([]byte(`{"toptracks": {"track": [
			{"name": "Jóga", "playcount": "30", "artist": {"name": "Björk"}},
			{"name": "Army of Me", "playcount": "12", "artist": {"name": "Björk"}}
		]}}`))
	})

	tracks, err := client.User().GetTopTracks(context.Background(), "rj", Period7Day, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[1].Rank != 2 || tracks[1].Playcount != 12 || tracks[1].Artist != "Björk" {
		t.Errorf("unexpected second track: %+v", tracks[1])
	}
}

func TestUserService_InvalidPeriod(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.User().GetTopAlbums(context.Background(), "rj", Period("fortnight"), 5)
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestArtistService_GetCorrection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("artist"); got != "guns and roses" {
			t.Errorf("expected artist guns and roses, got %s", got)
		}
		_, _ = w.Write([]byte(`{"corrections": {"correction": {"artist": {"name": "Guns N' Roses"}}}}`))
	})

	got, ok, err := client.Artist().GetCorrection(context.Background(), "guns and roses")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || got.Name != "Guns N' Roses" {
		t.Errorf("GetCorrection() = %+v, %v", got, ok)
	}
}

func TestAlbumService_GetTags(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("autocorrect"); got != "1" {
			t.Errorf("expected autocorrect 1, got %s", got)
		}
		_, _ = w.Write([]byte(`{"album": {"name": "Homogenic", "artist": "Björk", "tags": {"tag": {"name": "Electronic"}}}}`))
	})

	tags, err := client.Album().GetTags(context.Background(), "Björk", "Homogenic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 1 || tags[0] != "electronic" {
		t.Errorf("GetTags() = %v", tags)
	}
}

func TestTrackService_GetTopTags_FallsBackToInfo(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method := r.URL.Query().Get("method")
		mu.Lock()
		methods = append(methods, method)
		mu.Unlock()
		if method == "track.getTopTags" {
			_, _ = w.Write([]byte(`{"toptags": {"tag": []}}`))
			return
		}
		_, _ = w.Write([]byte(`{"track": {"toptags": {"tag": [{"name": "Trip-Hop"}]}}}`))
	})

	tags, err := client.Track().GetTopTags(context.Background(), "Massive Attack", "Teardrop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 1 || tags[0] != "trip-hop" {
		t.Errorf("GetTopTags() = %v", tags)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(methods) != 2 || methods[1] != "track.getInfo" {
		t.Errorf("unexpected call sequence: %v", methods)
	}
}
