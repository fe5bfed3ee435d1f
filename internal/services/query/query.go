package query

import (
	"sort"

	"DashPull/internal/domain/models"
)

// State tells an empty filter outcome apart from a population that was never
// loaded.
type State string

const (
	StateNotLoaded State = "not_loaded"
	StateEmpty     State = "empty"
	StateReady     State = "ready"
)

// Result is the filtered, ordered selection plus its aggregates.
type Result struct {
	State    State             `json:"state"`
	Records  []models.Customer `json:"records"`
	Count    int               `json:"count"`
	TotalROI float64           `json:"total_roi"`
}

// Match reports whether c satisfies every predicate of f.
func Match(c models.Customer, f models.ChurnFilter) bool {
	return c.Score >= f.MinScore &&
		c.ExpectedROI >= f.Budget &&
		(f.Segment == models.SegmentAll || f.Segment == "" || c.Segment == f.Segment)
}

// Run filters and orders pop. The population is never modified and its
// thresholds are never recomputed.
func Run(pop *models.Population, f models.ChurnFilter) Result {
	if pop == nil {
		return Result{State: StateNotLoaded}
	}
	records := make([]models.Customer, 0, len(pop.Customers))
	var total float64
	for _, c := range pop.Customers {
		if Match(c, f) {
			records = append(records, c)
			total += c.ExpectedROI
		}
	}
	if len(records) == 0 {
		return Result{State: StateEmpty, Records: records}
	}
	Sort(records, f.SortBy, f.Order)
	return Result{State: StateReady, Records: records, Count: len(records), TotalROI: total}
}

// Sort orders records in place by key; ties fall back to ascending id.
func Sort(records []models.Customer, key, order string) {
	desc := order != "asc"
	value := sortKey(key)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := value(records[i]), value(records[j])
		if a != b {
			if desc {
				return a > b
			}
			return a < b
		}
		return records[i].ID < records[j].ID
	})
}

func sortKey(key string) func(models.Customer) float64 {
	switch key {
	case "clv":
		return func(c models.Customer) float64 { return c.CLV }
	case "score":
		return func(c models.Customer) float64 { return c.Score }
	case "id":
		return func(c models.Customer) float64 { return float64(c.ID) }
	default:
		return func(c models.Customer) float64 { return c.ExpectedROI }
	}
}
