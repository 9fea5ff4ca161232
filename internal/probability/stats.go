package probability

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is a mean/stddev/min/max summary of a sample. Backs
// outcomes.TeamSeasonOutcomes.WinCountSummary (which expands the
// WinCounts histogram ProbFinalWinCount also buckets from). Grounded on the
// driver_pricing f1 pricing model's stat.Mean/stat.StdDev/floats.Min/Max
// usage.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes a Summary over sample. Returns the zero Summary for an
// empty sample.
func Summarize(sample []float64) Summary {
	if len(sample) == 0 {
		return Summary{}
	}
	return Summary{
		Mean:   stat.Mean(sample, nil),
		StdDev: stat.StdDev(sample, nil),
		Min:    floats.Min(sample),
		Max:    floats.Max(sample),
	}
}

// Percentile returns the p-th percentile (0 <= p <= 1) of sample using
// gonum's empirical quantile function. sample is copied and sorted;
// stat.Quantile requires sorted input.
func Percentile(sample []float64, p float64) float64 {
	if len(sample) == 0 {
		return 0
	}
	sorted := append([]float64(nil), sample...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// WinCountSample expands a ConferenceSeasonOutcomes-style win-count
// histogram (wins -> number of rolled seasons that finished with that many
// wins) into a flat sample suitable for Summarize/Percentile.
func WinCountSample(winCounts map[int]int) []float64 {
	total := 0
	for _, count := range winCounts {
		total += count
	}
	if total == 0 {
		return nil
	}
	sample := make([]float64, 0, total)
	wins := make([]int, 0, len(winCounts))
	for w := range winCounts {
		wins = append(wins, w)
	}
	sort.Ints(wins)
	for _, w := range wins {
		for i := 0; i < winCounts[w]; i++ {
			sample = append(sample, float64(w))
		}
	}
	return sample
}
