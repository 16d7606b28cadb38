package netgraph

import (
	"fmt"
	"math"
)

// Pearson returns the correlation coefficient of two row-aligned series.
// Positions where either side does not coerce to a number are skipped.
// Fewer than two usable pairs, or a constant side, yields 0.
//
// Series of different lengths are a caller error.
func Pearson(a, b []any) (float64, error) {
	if len(a) != len(b) {
		return 0, &InputError{
			Op:  "pearson",
			Err: ErrSeriesLength,
			Msg: fmt.Sprintf("%d != %d", len(a), len(b)),
		}
	}
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(b))
	for i := range a {
		x, okx := Coerce(a[i])
		y, oky := Coerce(b[i])
		if !okx || !oky {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return pearsonPairs(xs, ys), nil
}

// PearsonFloats is Pearson over series that are already numeric. NaN and
// infinite entries are treated as absent.
func PearsonFloats(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &InputError{
			Op:  "pearson",
			Err: ErrSeriesLength,
			Msg: fmt.Sprintf("%d != %d", len(a), len(b)),
		}
	}
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(b))
	for i := range a {
		x, okx := finite(a[i])
		y, oky := finite(b[i])
		if !okx || !oky {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return pearsonPairs(xs, ys), nil
}

// pearsonPairs expects equal-length, fully numeric input.
func pearsonPairs(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var num, ssX, ssY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		num += dx * dy
		ssX += dx * dx
		ssY += dy * dy
	}
	if ssX == 0 || ssY == 0 {
		return 0
	}
	return num / math.Sqrt(ssX*ssY)
}
