//go:build integration

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// buildBinary compiles recap into a temp dir.
func buildBinary(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "recap_test")
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// fakeUpstream serves the Last.fm and Spotify endpoints recap calls.
func fakeUpstream(t *testing.T, exchanges *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/lastfm/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("method") {
		case "user.getTopTags":
			_, _ = w.Write([]byte(`{"toptags": {"tag": []}}`))
		case "user.getTopAlbums":
			_, _ = w.Write([]byte(`{"topalbums": {"album": [
				{"name": "Homogenic", "artist": {"name": "Björk"}, "playcount": "40"},
				{"name": "Vespertine", "artist": {"name": "Björk"}, "playcount": "30"}
			]}}`))
		case "album.getInfo":
			if r.URL.Query().Get("album") == "Homogenic" {
				_, _ = w.Write([]byte(`{"album": {"name": "Homogenic", "tags": {"tag": [{"name": "Electronic"}, {"name": "Art Pop"}]}}}`))
				return
			}
			_, _ = w.Write([]byte(`{"album": {"name": "Vespertine", "tags": {"tag": {"name": "electronic"}}}}`))
		case "artist.getCorrection":
			if r.URL.Query().Get("artist") != "bjork" {
				_, _ = w.Write([]byte(`{"corrections": "\n"}`))
				return
			}
			_, _ = w.Write([]byte(`{"corrections": {"correction": {"artist": {"name": "Björk"}}}}`))
		default:
			_, _ = w.Write([]byte(`{"error": 3, "message": "Invalid Method"}`))
		}
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		exchanges.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "token_type": "Bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("q"), "Unknown") {
			_, _ = w.Write([]byte(`{"artists": {"items": []}}`))
			return
		}
		_, _ = w.Write([]byte(`{"artists": {"items": [{"name": "x", "images": [{"url": "https://img/640"}, {"url": "https://img/300"}]}]}}`))
	})
	return httptest.NewServer(mux)
}

func runRecap(t *testing.T, bin, home, upstream string, args ...string) string {
	t.Helper()
	args = append(args,
		"--lastfm-url", upstream+"/lastfm/",
		"--spotify-token-url", upstream+"/token",
		"--spotify-api-url", upstream+"/v1/",
	)
	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"RECAP_LASTFM_API_KEY=test_key",
		"RECAP_SPOTIFY_CLIENT_ID=id",
		"RECAP_SPOTIFY_CLIENT_SECRET=secret",
	)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("recap %v failed: %v", args, err)
	}
	return string(out)
}

// TestTagsCommand runs the sampling fallback end to end.
func TestTagsCommand(t *testing.T) {
	bin := buildBinary(t)
	var exchanges atomic.Int32
	srv := fakeUpstream(t, &exchanges)
	defer srv.Close()

	out := runRecap(t, bin, t.TempDir(), srv.URL, "tags", "rj", "--json")

	var got []struct{ Name, Count string }
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].Name != "electronic" || got[0].Count != "9" || got[1].Name != "art pop" {
		t.Errorf("unexpected tags: %+v", got)
	}
}

// TestImagesCommand checks batch output and token persistence between runs.
func TestImagesCommand(t *testing.T) {
	bin := buildBinary(t)
	var exchanges atomic.Int32
	srv := fakeUpstream(t, &exchanges)
	defer srv.Close()
	home := t.TempDir()

	out := runRecap(t, bin, home, srv.URL, "images", "Björk", "Unknown Artist")
	if strings.TrimSpace(out) != "Björk\thttps://img/300" {
		t.Errorf("unexpected output: %q", out)
	}

	runRecap(t, bin, home, srv.URL, "image", "artist", "Björk", "--no-lastfm")
	if n := exchanges.Load(); n != 1 {
		t.Errorf("expected the token to be persisted between runs, got %d exchanges", n)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "recap", "recap.db")); err != nil {
		t.Errorf("store not created: %v", err)
	}
}

// TestCorrectCommand checks the singular correction shape.
func TestCorrectCommand(t *testing.T) {
	bin := buildBinary(t)
	var exchanges atomic.Int32
	srv := fakeUpstream(t, &exchanges)
	defer srv.Close()

	out := runRecap(t, bin, t.TempDir(), srv.URL, "correct", "bjork")
	if strings.TrimSpace(out) != "Björk" {
		t.Errorf("unexpected output: %q", out)
	}
}
