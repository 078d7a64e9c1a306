// Package histogram partitions a sample of values into equal-width bins.
package histogram

import (
	"fmt"
	"math"
)

// DefaultBins is the number of bins used for the frequency histogram.
const DefaultBins = 10

// Bin is one interval of the histogram domain.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// Label formats the bin boundaries with two decimals, e.g. "1.00-1.50".
func (b Bin) Label() string {
	return fmt.Sprintf("%.2f-%.2f", b.Lower, b.Upper)
}

// Histogram is the result of binning a sample.
type Histogram struct {
	Min     float64
	Max     float64
	BinSize float64
	Bins    []Bin
}

// Counts returns the per-bin counts.
func (h Histogram) Counts() []int {
	counts := make([]int, len(h.Bins))
	for i, b := range h.Bins {
		counts[i] = b.Count
	}
	return counts
}

// Labels returns the per-bin labels.
func (h Histogram) Labels() []string {
	labels := make([]string, len(h.Bins))
	for i, b := range h.Bins {
		labels[i] = b.Label()
	}
	return labels
}

// Total is the number of samples counted across all bins.
func (h Histogram) Total() int {
	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	return total
}

// Degenerate reports whether every sample had the same value.
func (h Histogram) Degenerate() bool {
	return len(h.Bins) == 1 && h.BinSize == 0
}

// Build bins values into n equal-width bins spanning [min, max].
//
// The sample equal to max would land in bin n; it is counted in the last bin.
// When all values are equal the range is empty and the result is a single bin
// [min, min] holding every sample. NaN and infinite values are ignored, and an
// input with no finite values yields a histogram with no bins.
func Build(values []float64, n int) (Histogram, error) {
	if n < 1 {
		return Histogram{}, fmt.Errorf("bin count must be positive, got %d", n)
	}

	min, max := math.Inf(1), math.Inf(-1)
	finite := 0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite++
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if finite == 0 {
		return Histogram{}, nil
	}

	if min == max {
		return Histogram{
			Min:  min,
			Max:  max,
			Bins: []Bin{{Lower: min, Upper: max, Count: finite}},
		}, nil
	}

	binSize := (max - min) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lower = min + float64(i)*binSize
		bins[i].Upper = min + float64(i+1)*binSize
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		bins[Index(v, min, binSize, n)].Count++
	}

	return Histogram{Min: min, Max: max, BinSize: binSize, Bins: bins}, nil
}

// Index returns the bin for v, clamped to [0, n-1]. binSize must be positive.
func Index(v, min, binSize float64, n int) int {
	idx := int(math.Floor((v - min) / binSize))
	if idx > n-1 {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
