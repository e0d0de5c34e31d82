package downloader

import (
	"slices"

	"github.com/samber/lo"

	"github.com/xeptore/yamdl/yandex/types"
)

// Decision is the outcome of codec negotiation. UseLossless selects the
// signed lossless transport, a non-nil Candidate selects a standard variant,
// and a zero Decision means nothing usable was advertised.
type Decision struct {
	UseLossless bool
	Candidate   *types.CodecCandidate
}

// Negotiate picks the variant to acquire for the requested quality tier.
// Equal inputs always produce equal decisions: candidates are ordered by
// bitrate descending with the advertised order as a stable tiebreaker.
func Negotiate(candidates []types.CodecCandidate, quality types.Quality) Decision {
	if len(candidates) == 0 {
		return Decision{} //nolint:exhaustruct
	}

	sorted := sortByBitrate(candidates)

	switch quality {
	case types.QualityLossless:
		if lo.SomeBy(sorted, func(c types.CodecCandidate) bool { return c.Codec == types.CodecFLAC }) {
			return Decision{UseLossless: true} //nolint:exhaustruct
		}

		return Decision{Candidate: &sorted[0]} //nolint:exhaustruct
	case types.QualityHigh:
		return Decision{Candidate: negotiateHigh(sorted)} //nolint:exhaustruct
	case types.QualityNormal:
		return Decision{Candidate: negotiateNormal(sorted)} //nolint:exhaustruct
	default:
		return Decision{Candidate: &sorted[0]} //nolint:exhaustruct
	}
}

// Degraded is the fallback pick once the lossless transport has been tried
// and refused: the highest-bitrate variant regardless of codec.
func Degraded(candidates []types.CodecCandidate) *types.CodecCandidate {
	if len(candidates) == 0 {
		return nil
	}

	sorted := sortByBitrate(candidates)

	return &sorted[0]
}

func sortByBitrate(candidates []types.CodecCandidate) []types.CodecCandidate {
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b types.CodecCandidate) int {
		return b.BitrateKbps - a.BitrateKbps
	})

	return sorted
}

func negotiateHigh(sorted []types.CodecCandidate) *types.CodecCandidate {
	mp3s := lo.Filter(sorted, func(c types.CodecCandidate, _ int) bool { return c.Codec == types.CodecMP3 })

	for i := range mp3s {
		if mp3s[i].BitrateKbps >= 320 {
			return &mp3s[i]
		}
	}

	if len(mp3s) > 0 {
		return &mp3s[0]
	}

	return &sorted[0]
}

func negotiateNormal(sorted []types.CodecCandidate) *types.CodecCandidate {
	mp3s := lo.Filter(sorted, func(c types.CodecCandidate, _ int) bool { return c.Codec == types.CodecMP3 })

	var best *types.CodecCandidate
	for i := range mp3s {
		if b := mp3s[i].BitrateKbps; b >= 128 && b <= 192 {
			if nil == best || abs(192-b) < abs(192-best.BitrateKbps) {
				best = &mp3s[i]
			}
		}
	}
	if nil != best {
		return best
	}

	if len(mp3s) > 0 {
		return &mp3s[len(mp3s)-1]
	}

	return &sorted[len(sorted)-1]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
