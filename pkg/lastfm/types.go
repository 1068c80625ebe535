package lastfm

import (
	"net/url"
	"strings"
)

// Period is a chart time range accepted by the user.getTop* methods.
type Period string

const (
	PeriodOverall Period = "overall"
	Period7Day    Period = "7day"
	Period1Month  Period = "1month"
	Period3Month  Period = "3month"
	Period6Month  Period = "6month"
	Period12Month Period = "12month"
)

const tagURLPrefix = "https://www.last.fm/tag/"

// Valid reports whether p is a period Last.fm accepts.
func (p Period) Valid() bool {
	switch p {
	case PeriodOverall, Period7Day, Period1Month, Period3Month, Period6Month, Period12Month:
		return true
	}
	return false
}

// Image is one entry of a Last.fm image list.
//
// Last.fm mixes shapes in these lists: {"size", "#text"} objects,
// {"size", "content"} objects (from XML conversion) and bare URL strings.
// Bare strings carry no size and have Bare set.
type Image struct {
	Size string
	URL  string
	Bare bool
}

// Image sizes in the order Last.fm lists them.
const (
	SizeSmall      = "small"
	SizeMedium     = "medium"
	SizeLarge      = "large"
	SizeExtraLarge = "extralarge"
	SizeMega       = "mega"
)

// Tag is a tag with its weight as returned by user.getTopTags.
type Tag struct {
	Name  string
	Count string
	URL   string
}

// Album is an entry of a user's top albums chart.
type Album struct {
	Name      string
	Artist    string
	Playcount int
	Rank      int // 1-based position in the chart
	Images    []Image
}

// Track is an entry of a user's top tracks chart.
type Track struct {
	Name      string
	Artist    string
	Playcount int
	Rank      int
	Images    []Image
}

// Artist is an entry of a user's top artists chart.
type Artist struct {
	Name      string
	Playcount int
	Rank      int
	Images    []Image
}

// ArtistInfo is the response from artist.getInfo.
type ArtistInfo struct {
	Name      string
	MBID      string
	URL       string
	Listeners int
	Playcount int
	Images    []Image
	Tags      []string
	Similar   []string
	Summary   string
}

// Correction is the canonical artist returned by artist.getCorrection.
type Correction struct {
	Name string
	MBID string
	URL  string
}

// TagURL returns the Last.fm page for a tag name.
func TagURL(name string) string {
	return tagURLPrefix + url.PathEscape(name)
}

// NormalizeTagName lowercases and trims a tag name.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
