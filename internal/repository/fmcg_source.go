package repository

import (
	"fmt"

	"DashPull/internal/domain/models"
	"DashPull/internal/domain/repository"
)

// NewFMCGSource loads dashboard_fmcg_data.json from location.
func NewFMCGSource(location string, opts ...LoaderOption) repository.FMCGSource {
	return NewDocumentLoader[models.FMCGDocument]("fmcg", location, CheckFMCG, opts...)
}

// CheckFMCG verifies the parts of the document every figure depends on.
func CheckFMCG(doc *models.FMCGDocument) error {
	c := doc.Charts
	for _, name := range models.Commodities {
		s, ok := c.Commodities[name]
		if !ok {
			return fmt.Errorf("commodities.%s: missing", name)
		}
		if len(s.Dates) == 0 || len(s.Dates) != len(s.Prices) {
			return fmt.Errorf("commodities.%s: %d dates for %d prices", name, len(s.Dates), len(s.Prices))
		}
	}
	if len(c.FX.Dates) != len(c.FX.Values) {
		return fmt.Errorf("fx: %d dates for %d values", len(c.FX.Dates), len(c.FX.Values))
	}
	if len(c.YoYCommodity.Labels) != len(c.YoYCommodity.Values) {
		return fmt.Errorf("yoy_commodity: %d labels for %d values", len(c.YoYCommodity.Labels), len(c.YoYCommodity.Values))
	}
	if len(c.YoYInflation.Labels) != len(c.YoYInflation.Values) {
		return fmt.Errorf("yoy_inflation: %d labels for %d values", len(c.YoYInflation.Labels), len(c.YoYInflation.Values))
	}
	for _, key := range c.InflationTimeseries.Keys {
		s, _ := c.InflationTimeseries.Get(key)
		if len(s.Dates) != len(s.Values) {
			return fmt.Errorf("inflation_timeseries.%s: %d dates for %d values", key, len(s.Dates), len(s.Values))
		}
	}
	m := c.SqueezeMatrix
	if len(m.ZValues) != len(m.YLabels) {
		return fmt.Errorf("squeeze_matrix: %d rows for %d y labels", len(m.ZValues), len(m.YLabels))
	}
	for i, row := range m.ZValues {
		if len(row) != len(m.XLabels) {
			return fmt.Errorf("squeeze_matrix row %d: %d cells for %d x labels", i, len(row), len(m.XLabels))
		}
	}
	if doc.KPIs.FXEURUSD == nil {
		return fmt.Errorf("kpis.fx_eur_usd: missing")
	}
	return nil
}
