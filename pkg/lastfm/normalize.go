package lastfm

import (
	"github.com/tidwall/gjson"
)

// Last.fm's JSON is a mechanical translation of its XML responses, so a
// list with one element arrives as an object, an empty list arrives as a
// string, and image lists mix objects with bare strings. Everything below
// maps those shapes onto the package's own types before callers see them.

// listItems returns the elements of a value that may be an array, a single
// object, or absent.
func listItems(v gjson.Result) []gjson.Result {
	switch {
	case !v.Exists():
		return nil
	case v.IsArray():
		return v.Array()
	case v.IsObject():
		return []gjson.Result{v}
	default:
		return nil
	}
}

// parseTagNames flattens a tag container into normalized tag names.
//
// The container may be absent, an empty string, {"tag": {...}},
// {"tag": [...]}, or a bare array of strings or objects.
func parseTagNames(container gjson.Result) []string {
	var items []gjson.Result
	switch {
	case container.IsArray():
		items = container.Array()
	case container.IsObject():
		items = listItems(container.Get("tag"))
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		var name string
		if item.Type == gjson.String {
			name = item.String()
		} else {
			name = item.Get("name").String()
		}
		if name = NormalizeTagName(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// parseImages converts an image list of mixed shapes.
func parseImages(v gjson.Result) []Image {
	items := v.Array()
	if len(items) == 0 {
		return nil
	}

	images := make([]Image, 0, len(items))
	for _, item := range items {
		if item.Type == gjson.String {
			images = append(images, Image{URL: item.String(), Bare: true})
			continue
		}
		if !item.IsObject() {
			continue
		}
		// "#" is path syntax in gjson, so read the keys from the map.
		fields := item.Map()
		img := Image{Size: fields["size"].String()}
		if content := fields["content"].String(); content != "" {
			img.URL = content
		} else {
			img.URL = fields["#text"].String()
		}
		images = append(images, img)
	}
	return images
}

// ParseImages converts a raw JSON image list as found under "image" in
// Last.fm responses.
func ParseImages(raw []byte) []Image {
	return parseImages(gjson.ParseBytes(raw))
}

// parseCorrection extracts the corrected artist from artist.getCorrection.
//
// Three shapes are seen in the wild:
//
//	{"corrections": {"correction": [{"artist": {...}}]}}
//	{"corrections": {"correction": {"artist": {...}}}}
//	{"corrections": {"artist": {...}}}
//
// ok is false when the response carries no correction.
func parseCorrection(body []byte) (Correction, bool) {
	corrections := gjson.GetBytes(body, "corrections")
	if !corrections.IsObject() {
		return Correction{}, false
	}

	var artist gjson.Result
	if items := listItems(corrections.Get("correction")); len(items) > 0 {
		artist = items[0].Get("artist")
	} else {
		artist = corrections.Get("artist")
	}

	name := artist.Get("name").String()
	if name == "" {
		return Correction{}, false
	}
	return Correction{
		Name: name,
		MBID: artist.Get("mbid").String(),
		URL:  artist.Get("url").String(),
	}, true
}

// parseTopTags reads the toptags.tag list of user.getTopTags.
func parseTopTags(body []byte) ([]Tag, error) {
	root := gjson.GetBytes(body, "toptags")
	if !root.Exists() {
		return nil, &FormatError{Method: "user.getTopTags", Path: "toptags"}
	}

	items := listItems(root.Get("tag"))
	tags := make([]Tag, 0, len(items))
	for _, item := range items {
		tags = append(tags, Tag{
			Name:  item.Get("name").String(),
			Count: item.Get("count").String(),
			URL:   item.Get("url").String(),
		})
	}
	return tags, nil
}

// chartEntry holds the fields shared by album, track and artist charts.
type chartEntry struct {
	name      string
	artist    string
	playcount int
	rank      int
	images    []Image
}

func parseChart(body []byte, method, root, element string) ([]chartEntry, error) {
	container := gjson.GetBytes(body, root)
	if !container.Exists() {
		return nil, &FormatError{Method: method, Path: root}
	}

	items := listItems(container.Get(element))
	entries := make([]chartEntry, 0, len(items))
	for i, item := range items {
		artist := item.Get("artist.name").String()
		if a := item.Get("artist"); artist == "" && a.Type == gjson.String {
			artist = a.String()
		}
		entries = append(entries, chartEntry{
			name:      item.Get("name").String(),
			artist:    artist,
			playcount: int(item.Get("playcount").Int()),
			rank:      i + 1,
			images:    parseImages(item.Get("image")),
		})
	}
	return entries, nil
}

func parseArtistInfo(body []byte) (*ArtistInfo, error) {
	artist := gjson.GetBytes(body, "artist")
	if !artist.IsObject() {
		return nil, &FormatError{Method: "artist.getInfo", Path: "artist"}
	}

	info := &ArtistInfo{
		Name:      artist.Get("name").String(),
		MBID:      artist.Get("mbid").String(),
		URL:       artist.Get("url").String(),
		Listeners: int(artist.Get("stats.listeners").Int()),
		Playcount: int(artist.Get("stats.playcount").Int()),
		Images:    parseImages(artist.Get("image")),
		Tags:      parseTagNames(artist.Get("tags")),
		Summary:   artist.Get("bio.summary").String(),
	}
	for _, similar := range listItems(artist.Get("similar.artist")) {
		if name := similar.Get("name").String(); name != "" {
			info.Similar = append(info.Similar, name)
		}
	}
	return info, nil
}
