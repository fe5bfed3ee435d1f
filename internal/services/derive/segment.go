package derive

import (
	"math"
	"sort"

	"DashPull/internal/domain/models"
)

// Thresholds returns the values at floor(q*n) of the ascending order. values
// is not reordered.
func Thresholds(values []float64, lower, upper float64) models.Thresholds {
	if len(values) == 0 {
		return models.Thresholds{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return models.Thresholds{
		Lower: sorted[quantileIndex(lower, len(sorted))],
		Upper: sorted[quantileIndex(upper, len(sorted))],
	}
}

func quantileIndex(q float64, n int) int {
	i := int(math.Floor(q * float64(n)))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Segment buckets value: >= Upper is High, >= Lower is Mid, anything else Low.
func Segment(value float64, t models.Thresholds) models.Segment {
	switch {
	case value >= t.Upper:
		return models.SegmentHigh
	case value >= t.Lower:
		return models.SegmentMid
	default:
		return models.SegmentLow
	}
}

// ExpectedROI is the net return of reactivating a customer.
func ExpectedROI(clv, score float64, rule models.SegmentRule) float64 {
	return clv*score*rule.Rate - rule.Coupon
}

// Enrich returns a copy of customers with segment, coupon and expected ROI
// set. Segments without a rule get a zero rule.
func Enrich(customers []models.Customer, t models.Thresholds, rules models.SegmentRules) []models.Customer {
	out := make([]models.Customer, len(customers))
	for i, c := range customers {
		seg := Segment(c.CLV, t)
		rule := rules[seg]
		c.Segment = seg
		c.Coupon = rule.Coupon
		c.ExpectedROI = ExpectedROI(c.CLV, c.Score, rule)
		out[i] = c
	}
	return out
}

// BuildPopulation computes thresholds over the full set of CLVs and enriches
// every customer with them.
func BuildPopulation(customers []models.Customer, lower, upper float64, rules models.SegmentRules) *models.Population {
	clvs := make([]float64, len(customers))
	for i, c := range customers {
		clvs[i] = c.CLV
	}
	t := Thresholds(clvs, lower, upper)
	return &models.Population{Customers: Enrich(customers, t, rules), Thresholds: t}
}
