package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DashPull/internal/domain/models"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func analyticsDoc() *models.AnalyticsDocument {
	return &models.AnalyticsDocument{
		KPIs: models.AnalyticsKPIs{
			TotalRevenue:      fptr(1234567),
			TotalTransactions: fptr(45210),
			UniqueProducts:    iptr(48),
			UniqueCities:      iptr(27),
			AvgPrice:          fptr(6.5),
			AvgSentiment:      fptr(0.1234),
		},
		RevenueByCategory: []models.CategoryRevenue{{Category: "suco", Revenue: 5000}, {Category: "cerveja", Revenue: 100}},
		RevenueByRegion:   []models.RegionRevenue{{Region: "centro-oeste", Revenue: 2500}},
		MonthlyTrend: []models.MonthlyRevenue{
			{Year: 2023, Month: 1, Revenue: 100}, {Year: 2023, Month: 2, Revenue: 100},
			{Year: 2024, Month: 1, Revenue: 150}, {Year: 2024, Month: 3, Revenue: 90},
		},
		SentimentDistribution: []models.SentimentBucket{{Bucket: "very negative", Count: 12}, {Bucket: "neutral", Count: 3400}},
		RevenueByChannel:      []models.ChannelRevenue{{Channel: "app", Revenue: 10}, {Channel: "loja", Revenue: 20}},
		TopProducts: []models.ProductPerformance{
			{Product: "Nova Cola", Category: "refrigerante", Revenue: 3200000, Units: 12000, AvgSentiment: 0.21},
			{Product: "Sol Suco", Category: "suco", Revenue: 800, Units: 50, AvgSentiment: -0.05},
		},
	}
}

func TestOmniragFigures(t *testing.T) {
	figs := Omnirag(analyticsDoc(), "", NewStyle("dark", "en"))
	require.Len(t, figs, 6)

	cat := figureByID(t, figs, OmniragCategory)
	assert.Equal(t, "Suco", cat.Series[0].Values[0].Name)
	assert.Equal(t, "#22d3ee", cat.Series[0].Values[0].Color)
	assert.Equal(t, FallbackCategory, cat.Series[0].Values[1].Color)

	region := figureByID(t, figs, OmniragRegion)
	assert.Equal(t, []string{"Centro-oeste"}, region.XAxis.Labels)
	assert.Equal(t, "R$ 2.5K", region.Series[0].Values[0].Label)

	trend := figureByID(t, figs, OmniragTrend)
	require.Len(t, trend.Series, 2)
	assert.False(t, trend.Series[0].Highlighted)
	assert.True(t, trend.Series[1].Highlighted)
	assert.Equal(t, 3.0, trend.Series[1].Width)
	assert.Nil(t, trend.Series[1].Values[1].V, "February 2024 is missing")
	assert.Equal(t, 90.0, *trend.Series[1].Values[2].V)

	channel := figureByID(t, figs, OmniragChannel)
	assert.True(t, channel.Series[0].Rose)
	assert.Equal(t, "Loja", channel.Series[0].Values[1].Name)

	products := figureByID(t, figs, OmniragProducts)
	require.Len(t, products.Table.Rows, 2)
	assert.Equal(t, "R$ 3.2M", products.Table.Rows[0][3].Text)
	assert.Equal(t, "+0.210", products.Table.Rows[0][5].Text)
	assert.Equal(t, "-0.050", products.Table.Rows[1][5].Text)
}

func TestOmniragProductsFilter(t *testing.T) {
	figs := Omnirag(analyticsDoc(), "suco", NewStyle("dark", "en"))
	products := figureByID(t, figs, OmniragProducts)
	require.Len(t, products.Table.Rows, 1)
	assert.Equal(t, "#2", products.Table.Rows[0][0].Text)

	figs = Omnirag(analyticsDoc(), "agua", NewStyle("dark", "en"))
	assert.True(t, figureByID(t, figs, OmniragProducts).Empty)
}

func TestOmniragKPIs(t *testing.T) {
	kpis := OmniragKPIs(analyticsDoc(), NewStyle("dark", "en"))
	values := map[string]string{}
	for _, k := range kpis {
		values[k.ID] = k.Value
	}
	assert.Equal(t, map[string]string{
		"revenue":       "R$ 1.2M",
		"transactions":  "45.2K",
		"products":      "48",
		"cities":        "27",
		"avg_price":     "R$ 6.50",
		"avg_sentiment": "+0.123",
		"revenue_yoy":   "+20.0%",
	}, values)
}

func TestRevenueYoYFailSoft(t *testing.T) {
	assert.Nil(t, RevenueYoY(nil))
	assert.Nil(t, RevenueYoY([]models.MonthlyRevenue{{Year: 2024, Month: 1, Revenue: 5}}))
	assert.Nil(t, RevenueYoY([]models.MonthlyRevenue{{Year: 2023, Revenue: 0}, {Year: 2024, Revenue: 5}}))
}

func TestOmniragNilDocument(t *testing.T) {
	figs := Omnirag(nil, "", NewStyle("light", "fr"))
	require.Len(t, figs, 6)
	for _, f := range figs {
		assert.True(t, f.Empty, f.ID)
		assert.Equal(t, "Aucune donnée", f.EmptyMessage)
	}
}
