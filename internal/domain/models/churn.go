package models

// Segment is the CLV bucket a customer falls into.
type Segment string

const (
	SegmentHigh Segment = "High"
	SegmentMid  Segment = "Mid"
	SegmentLow  Segment = "Low"
	// SegmentAll is the wildcard used by filters, never assigned to a customer.
	SegmentAll Segment = "All"
)

// Segments lists the assignable buckets from highest to lowest.
var Segments = []Segment{SegmentHigh, SegmentMid, SegmentLow}

// Customer is one synthetic churn record. ID, CLV and Score are raw draws;
// Segment, Coupon and ExpectedROI are derived and only set by derive.Enrich.
type Customer struct {
	ID          int     `json:"id"`
	CLV         float64 `json:"clv"`
	Score       float64 `json:"score"`
	Segment     Segment `json:"segment,omitempty"`
	Coupon      float64 `json:"coupon"`
	ExpectedROI float64 `json:"expected_roi"`
}

// Thresholds are the CLV cut points computed over the whole population.
type Thresholds struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// SegmentRule holds the static multipliers of one segment.
type SegmentRule struct {
	Coupon float64 `yaml:"coupon" json:"coupon"`
	Rate   float64 `yaml:"rate" json:"rate"`
}

// SegmentRules maps each segment to its coupon cost and reactivation rate.
type SegmentRules map[Segment]SegmentRule

// DefaultSegmentRules returns the coupon/rate table used by the churn dashboard.
func DefaultSegmentRules() SegmentRules {
	return SegmentRules{
		SegmentHigh: {Coupon: 20, Rate: 0.35},
		SegmentMid:  {Coupon: 10, Rate: 0.16},
		SegmentLow:  {Coupon: 5, Rate: 0.05},
	}
}

// ChurnFilter is the churn dashboard filter state.
type ChurnFilter struct {
	MinScore float64 `query:"min_score" json:"min_score" default:"0" validate:"gte=0,lte=1"`
	Budget   float64 `query:"budget" json:"budget" default:"0" validate:"gte=-1000,lte=100000"`
	Segment  Segment `query:"segment" json:"segment" default:"All" validate:"oneof=All High Mid Low"`
	SortBy   string  `query:"sort_by" json:"sort_by" default:"roi" validate:"oneof=roi clv score id"`
	Order    string  `query:"order" json:"order" default:"desc" validate:"oneof=asc desc"`
}

// Population is the enriched churn dataset and the thresholds it was segmented with.
type Population struct {
	Customers  []Customer `json:"customers"`
	Thresholds Thresholds `json:"thresholds"`
}
