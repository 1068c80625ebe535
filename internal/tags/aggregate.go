package tags

import (
	"math"
	"slices"
	"strconv"

	"github.com/jfmyers9/recap/pkg/lastfm"
)

// Tag is an entry of a top tags list, shaped like user.getTopTags.
type Tag struct {
	Name  string `json:"name"`
	Count string `json:"count"`
	URL   string `json:"url"`
}

// Sample is one ranked entity's tags. Samples are passed in rank order.
type Sample struct {
	Tags      []string
	Playcount int
}

// Aggregate sums weighted tag contributions across ranked samples.
//
// Tag names are compared after lowercasing and trimming. Each name
// appears once in the result with its rounded total, ordered by count
// descending; equal counts keep the order in which names were first seen.
// A nil weight means RankWeight.
func Aggregate(samples []Sample, weight WeightFunc) []Tag {
	if weight == nil {
		weight = RankWeight
	}

	totals := make(map[string]float64)
	var order []string
	for i, sample := range samples {
		w := weight(i, sample.Playcount)
		if !(w > 0) {
			continue
		}
		seen := make(map[string]bool, len(sample.Tags))
		for _, raw := range sample.Tags {
			name := lastfm.NormalizeTagName(raw)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			if _, ok := totals[name]; !ok {
				order = append(order, name)
			}
			totals[name] += w
		}
	}

	type counted struct {
		name  string
		count int64
	}
	ranked := make([]counted, len(order))
	for i, name := range order {
		ranked[i] = counted{name: name, count: int64(math.Round(totals[name]))}
	}
	slices.SortStableFunc(ranked, func(a, b counted) int {
		switch {
		case a.count > b.count:
			return -1
		case a.count < b.count:
			return 1
		}
		return 0
	})

	result := make([]Tag, len(ranked))
	for i, c := range ranked {
		result[i] = Tag{
			Name:  c.name,
			Count: strconv.FormatInt(c.count, 10),
			URL:   lastfm.TagURL(c.name),
		}
	}
	return result
}
