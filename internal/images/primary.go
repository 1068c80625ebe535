package images

import "github.com/jfmyers9/recap/pkg/lastfm"

var sizePriority = []string{
	lastfm.SizeExtraLarge,
	lastfm.SizeLarge,
	lastfm.SizeMedium,
	lastfm.SizeSmall,
}

// PickPrimary chooses a URL from a Last.fm image list.
//
// Sized entries are tried from extralarge down to small regardless of
// their position in the list. When none of those sizes carries a URL the
// first entry with one is used, whatever its shape.
func PickPrimary(images []lastfm.Image) string {
	for _, size := range sizePriority {
		for _, img := range images {
			if !img.Bare && img.Size == size && img.URL != "" {
				return img.URL
			}
		}
	}
	for _, img := range images {
		if img.URL != "" {
			return img.URL
		}
	}
	return ""
}
