package derive

import (
	"gonum.org/v1/gonum/stat"

	"DashPull/internal/domain/models"
)

// SegmentSummary aggregates one segment of a population.
type SegmentSummary struct {
	Segment  models.Segment `json:"segment"`
	Count    int            `json:"count"`
	MeanCLV  float64        `json:"mean_clv"`
	MeanROI  float64        `json:"mean_roi"`
	TotalROI float64        `json:"total_roi"`
}

// Summarize groups customers by segment in High, Mid, Low order. Empty
// segments are reported with zero values.
func Summarize(customers []models.Customer) []SegmentSummary {
	clv := map[models.Segment][]float64{}
	roi := map[models.Segment][]float64{}
	for _, c := range customers {
		clv[c.Segment] = append(clv[c.Segment], c.CLV)
		roi[c.Segment] = append(roi[c.Segment], c.ExpectedROI)
	}
	out := make([]SegmentSummary, 0, len(models.Segments))
	for _, seg := range models.Segments {
		s := SegmentSummary{Segment: seg, Count: len(clv[seg])}
		if s.Count > 0 {
			s.MeanCLV = stat.Mean(clv[seg], nil)
			s.MeanROI = stat.Mean(roi[seg], nil)
			s.TotalROI = Sum(roi[seg])
		}
		out = append(out, s)
	}
	return out
}
