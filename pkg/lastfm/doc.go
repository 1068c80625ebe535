// Package lastfm provides a read-only client library for the Last.fm API 2.0.
//
// # Overview
//
// This package implements the chart, tag and correction endpoints that a
// listening-statistics dashboard needs. It provides a type-safe API with
// context support, structured errors and retry logic.
//
// # Installation
//
//	go get github.com/jfmyers9/recap/pkg/lastfm
//
// # Quick Start
//
// Create a client with your API key:
//
//	import "github.com/jfmyers9/recap/pkg/lastfm"
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey: "your-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Charts
//
//	albums, err := client.User().GetTopAlbums(ctx, "rj", lastfm.Period7Day, 5)
//	tracks, err := client.User().GetTopTracks(ctx, "rj", lastfm.PeriodOverall, 50)
//	tags, err := client.User().GetTopTags(ctx, "rj", 20)
//
// # Tags and Corrections
//
//	tags, err := client.Album().GetTags(ctx, "Björk", "Homogenic")
//	tags, err = client.Artist().GetTopTags(ctx, "Björk")
//	tags, err = client.Track().GetTopTags(ctx, "Björk", "Jóga")
//
//	correction, ok, err := client.Artist().GetCorrection(ctx, "guns and roses")
//
// # Response Shapes
//
// Last.fm's JSON output is converted from XML, so a list with a single
// element arrives as an object and an empty list as a string. Image lists
// mix {"size", "#text"} objects, {"size", "content"} objects and bare URL
// strings. The package normalizes all of these before returning: tag names
// come back as lowercase trimmed strings and images as []Image.
//
// # Error Handling
//
// API errors are returned as *Error with the Last.fm error code:
//
//	_, err := client.Artist().GetInfo(ctx, "nobody")
//	var lastfmErr *lastfm.Error
//	if errors.As(err, &lastfmErr) && lastfmErr.Temporary() {
//	    // Retry later
//	}
//
// Responses missing an expected field are reported as *FormatError.
//
// # Configuration
//
// The client can be configured with custom HTTP clients, base URLs (for testing),
// and optional loggers:
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey:     "your-api-key",
//	    HTTPClient: &http.Client{Timeout: 10 * time.Second},
//	    Logger:     myLogger, // Implements lastfm.Logger interface
//	})
//
// # API Coverage
//
// Currently implemented:
//   - Charts (user.getTopTags, user.getTopAlbums, user.getTopTracks, user.getTopArtists)
//   - Albums (album.getInfo)
//   - Artists (artist.getInfo, artist.getCorrection, artist.getTopTags)
//   - Tracks (track.getTopTags, track.getInfo)
//
// # Last.fm API Documentation
//
// For more information about the Last.fm API:
// https://www.last.fm/api
package lastfm
