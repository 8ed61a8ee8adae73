package rank

import (
	"math"
	"sort"

	"github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"
)

// sortedIndices returns indices into scores ordered by descending score,
// stable on the original index for ties.
func sortedIndices(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	return idx
}

// Calculate computes competition ranks (1, 2, 2, 4 on a tie): sort scores
// descending, assign rank i+1 at sorted position i whenever the score is
// strictly less than the previous one, otherwise copy the previous rank.
// The result is in the original input order.
func Calculate(scores []float64) []int {
	order := sortedIndices(scores)
	ranks := make([]int, len(scores))

	prevRank := 0
	for pos, origIdx := range order {
		if pos == 0 || scores[origIdx] < scores[order[pos-1]] {
			prevRank = pos + 1
		}
		ranks[origIdx] = prevRank
	}
	return ranks
}

// DenseRank computes dense ranks (1, 2, 2, 3 on a tie): like Calculate but
// increments by exactly 1 on a strict decrease, never leaving a gap.
func DenseRank(scores []float64) []int {
	order := sortedIndices(scores)
	ranks := make([]int, len(scores))

	current := 0
	for pos, origIdx := range order {
		if pos == 0 || scores[origIdx] < scores[order[pos-1]] {
			current++
		}
		ranks[origIdx] = current
	}
	return ranks
}

// Percentiles computes, for each score, 100 * (count of strictly smaller
// scores) / (n-1), rounded to 2 decimals. n=1 yields 100.00; n=0 yields an
// empty slice.
func Percentiles(scores []float64) []float64 {
	n := len(scores)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []float64{100.00}
	}

	out := make([]float64, n)
	for i, s := range scores {
		lessCount := 0
		for _, x := range scores {
			if x < s {
				lessCount++
			}
		}
		out[i] = round2(100 * float64(lessCount) / float64(n-1))
	}
	return out
}

// CalculateFull zips ids, scores, competition ranks, and percentiles into
// Entry records, in input order. Fails with InvalidInput if ids and scores
// differ in length.
func CalculateFull(ids []string, scores []float64) ([]Entry, error) {
	if len(ids) != len(scores) {
		return nil, kernelerr.Newf(kernelerr.InvalidInput, "ids (%d) and scores (%d) must have equal length", len(ids), len(scores))
	}

	ranks := Calculate(scores)
	percentiles := Percentiles(scores)

	out := make([]Entry, len(ids))
	for i := range ids {
		out[i] = Entry{ID: ids[i], Score: scores[i], Rank: ranks[i], Percentile: percentiles[i]}
	}
	return out, nil
}

// Find returns the 1-based competition rank of target within a
// descending-sorted array, i.e. 1 + count(x > target), via binary search
// in O(log n). sorted must already be sorted descending; behavior is
// undefined otherwise.
func Find(sorted []float64, target float64) int {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := (lo + hi) / 2
		if sorted[mid] > target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo + 1
}

// TopN returns the n entries with the lowest (best) rank, ascending by
// rank, ties broken by input order.
func TopN(ids []string, scores []float64, n int) ([]Entry, error) {
	full, err := CalculateFull(ids, scores)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, kernelerr.New(kernelerr.InvalidInput, "n must be non-negative")
	}

	ordered := make([]Entry, len(full))
	copy(ordered, full)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Rank < ordered[b].Rank
	})

	if n > len(ordered) {
		n = len(ordered)
	}
	return ordered[:n], nil
}

// Statistics computes count, min, max, mean, median, and population
// standard deviation (divisor n) over scores, each rounded to 2 decimals.
func Statistics(scores []float64) Stats {
	n := len(scores)
	if n == 0 {
		return Stats{}
	}

	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)

	min, max := sorted[0], sorted[n-1]

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(n)

	var median float64
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	} else {
		median = sorted[n/2]
	}

	var sumSq float64
	for _, s := range scores {
		d := s - mean
		sumSq += d * d
	}
	stdDev := math.Sqrt(sumSq / float64(n))

	return Stats{
		Count:  n,
		Min:    round2(min),
		Max:    round2(max),
		Mean:   round2(mean),
		Median: round2(median),
		StdDev: round2(stdDev),
	}
}

// Bucketize partitions a score set into bandCount equal-population
// buckets (e.g. leaderboard quartiles/deciles), using the same
// descending stable sort as Calculate. When len(scores) isn't evenly
// divisible, the first len(scores) % bandCount bands each get one extra
// member.
func Bucketize(scores []float64, bandCount int) ([]Band, error) {
	if bandCount < 1 {
		return nil, kernelerr.New(kernelerr.InvalidInput, "bandCount must be >= 1")
	}
	n := len(scores)
	if n == 0 {
		return nil, nil
	}

	order := sortedIndices(scores)
	baseSize := n / bandCount
	remainder := n % bandCount

	bands := make([]Band, 0, bandCount)
	pos := 0
	for b := 0; b < bandCount && pos < n; b++ {
		size := baseSize
		if b < remainder {
			size++
		}
		if size == 0 {
			continue
		}
		members := make([]int, size)
		copy(members, order[pos:pos+size])

		band := Band{
			Index:      b,
			MinScore:   scores[members[len(members)-1]],
			MaxScore:   scores[members[0]],
			MemberIdxs: members,
		}
		bands = append(bands, band)
		pos += size
	}
	return bands, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
