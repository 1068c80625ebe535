package tags

import "math"

// WeightFunc returns the contribution of the entity at index (0-based
// position in a ranked sample) with the given playcount.
type WeightFunc func(index, playcount int) float64

// RankWeight decays by one per position from 5, floored at 1.
func RankWeight(index, _ int) float64 {
	return math.Max(1, float64(5-index))
}

// PlaycountWeight favours the head of a 50-entry sample, scaled by
// log10 of the playcount. A playcount of 0 or 1 contributes nothing.
func PlaycountWeight(index, playcount int) float64 {
	position := math.Max(1, math.Ceil(float64(50-index)/10))
	return position * math.Log10(float64(max(playcount, 1)))
}

// Strategy selects how a fallback sample is drawn and weighted.
type Strategy string

const (
	StrategyAlbums Strategy = "albums"
	StrategyTracks Strategy = "tracks"
)

// Weight returns the weighting paired with the strategy.
func (s Strategy) Weight() WeightFunc {
	if s == StrategyTracks {
		return PlaycountWeight
	}
	return RankWeight
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyAlbums || s == StrategyTracks
}
