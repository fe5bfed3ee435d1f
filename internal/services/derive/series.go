package derive

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"DashPull/pkg/util"
)

// YoY is the percentage change from prior to current. It returns nil when the
// prior is missing, zero or not finite.
func YoY(current float64, prior *float64) *float64 {
	if prior == nil || *prior == 0 || math.IsNaN(*prior) || math.IsInf(*prior, 0) {
		return nil
	}
	if math.IsNaN(current) || math.IsInf(current, 0) {
		return nil
	}
	v := (current - *prior) / math.Abs(*prior) * 100
	return &v
}

// YoYByDate compares the latest observation with the last one dated at least
// years before it. Dates are ISO yyyy-mm-dd and ascending.
func YoYByDate(dates []string, values []float64, years int) *float64 {
	n := min(len(dates), len(values))
	if n == 0 {
		return nil
	}
	latest, ok := util.ParseTime(dates[n-1])
	if !ok {
		return nil
	}
	cutoff := latest.AddDate(-years, 0, 0)
	var prior *float64
	for i := n - 2; i >= 0; i-- {
		d, ok := util.ParseTime(dates[i])
		if !ok {
			continue
		}
		if !d.After(cutoff) {
			p := values[i]
			prior = &p
			break
		}
	}
	return YoY(values[n-1], prior)
}

// Rebase100 expresses each value as a rounded index of the first one.
func Rebase100(values []float64) []float64 {
	if len(values) == 0 || values[0] == 0 {
		return nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = RoundHalfUp(v / values[0] * 100)
	}
	return out
}

// Cumulative returns the running sum as a percentage of the total.
func Cumulative(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	floats.CumSum(out, values)
	total := out[len(out)-1]
	if total == 0 {
		return make([]float64, len(values))
	}
	floats.Scale(100/total, out)
	return out
}

// Sum adds values.
func Sum(values []float64) float64 {
	return floats.Sum(values)
}

// RoundHalfUp rounds to the nearest integer, halves toward +Inf, the way
// chart labels have always been rounded (-2.5 becomes -2).
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// RoundTo rounds v to the given number of decimals with RoundHalfUp.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return RoundHalfUp(v*p) / p
}

// TopMover returns the index of the largest absolute change, ignoring nils.
// It returns -1 when every value is nil.
func TopMover(values []*float64) int {
	best := -1
	for i, v := range values {
		if v == nil {
			continue
		}
		if best < 0 || math.Abs(*v) > math.Abs(*values[best]) {
			best = i
		}
	}
	return best
}

// TrimFrom drops observations dated before from.
func TrimFrom(dates []string, values []float64, from string) ([]string, []float64) {
	n := min(len(dates), len(values))
	i := sort.SearchStrings(dates[:n], from)
	return dates[i:n], values[i:n]
}
