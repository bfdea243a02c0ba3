package scoring

// epsilon is the tolerance used to detect a degenerate (effectively
// single-valued) batch of raw scores.
const epsilon = 1e-9

// NormalizeRange derives the (min, max) bounds used to rescale a batch of
// raw, lower-is-better scores into a [0,1], higher-is-better scale.
//
// Three cases, checked in this order:
//  1. Exactly one candidate: widen around it, (raw-1, raw+1), so a lone
//     candidate doesn't collapse to a single normalised point.
//  2. More than one candidate but all (near) equal: (0, 1), so ties don't
//     produce a division by ~zero.
//  3. More than one candidate with a narrow but nonzero spread (< 0.1):
//     expand symmetrically around the midpoint to (mid-0.5, mid+0.5) so
//     small real differences aren't amplified into near-arbitrary scores.
//
// Otherwise the observed (min, max) is used as-is.
func NormalizeRange(raws []float64) (lo, hi float64) {
	if len(raws) == 0 {
		return 0, 1
	}

	lo, hi = raws[0], raws[0]

	for _, r := range raws[1:] {
		if r < lo {
			lo = r
		}

		if r > hi {
			hi = r
		}
	}

	switch {
	case len(raws) == 1:
		return raws[0] - 1, raws[0] + 1
	case hi-lo < epsilon:
		return 0, 1
	case hi-lo < 0.1:
		mid := (lo + hi) / 2
		return mid - 0.5, mid + 0.5
	default:
		return lo, hi
	}
}

// Normalize rescales a single raw (lower-is-better) score into [0,1]
// (higher-is-better) given bounds from NormalizeRange, clamping the result.
func Normalize(raw, lo, hi float64) float64 {
	if hi == lo {
		return 1
	}

	v := 1 - (raw-lo)/(hi-lo)

	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
