package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DashPull/internal/domain/models"
)

const fmcgFixture = `{
  "charts": {
    "commodities": {
      "Cocoa":  {"dates": ["2023-01-01", "2023-02-01"], "prices": [2500, 4000]},
      "Coffee": {"dates": ["2023-01-01", "2023-02-01"], "prices": [200, 180]},
      "Sugar":  {"dates": ["2023-01-01", "2023-02-01"], "prices": [20, 21]},
      "Wheat":  {"dates": ["2023-01-01", "2023-02-01"], "prices": [600, 588]}
    },
    "fx": {"dates": ["2019-12-01", "2020-01-01", "2020-02-01"], "values": [1.11, 1.10, 1.09]},
    "yoy_commodity": {"labels": ["Cocoa", "Coffee", "Sugar", "Wheat"], "values": [60, -10, 5, -2]},
    "yoy_inflation": {"labels": ["Coffee, Tea, Cocoa", "Bread & Cereals", "Sugar, Jam, Honey, Chocolate"], "values": [3.2, 1.5, 4.0]},
    "inflation_timeseries": {
      "Oils & Fats": {"dates": ["2023-01-01"], "values": [8.1]},
      "Coffee, Tea, Cocoa": {"dates": ["2023-01-01"], "values": [3.2]},
      "All Items": {"dates": ["2023-01-01"], "values": [2.1]},
      "Bread & Cereals": {"dates": ["2023-01-01"], "values": [1.5]}
    },
    "squeeze_matrix": {
      "x_labels": ["Cocoa", "Coffee", "Sugar", "Wheat"],
      "y_labels": ["Chocolate", "Biscuits"],
      "z_values": [[42.04, 3.1, 5.5, 0.2], [12.26, -1, 2, 7.75]]
    }
  },
  "kpis": {"fx_eur_usd": 1.0852}
}`

func fmcgDoc(t *testing.T) *models.FMCGDocument {
	t.Helper()
	var doc models.FMCGDocument
	require.NoError(t, json.Unmarshal([]byte(fmcgFixture), &doc))
	return &doc
}

func TestFMCGCrossFilter(t *testing.T) {
	figs := FMCG(fmcgDoc(t), models.Cocoa, NewStyle("dark", "en"))
	require.Len(t, figs, 5)

	comm := figureByID(t, figs, FMCGCommodities)
	for _, s := range comm.Series {
		assert.Equal(t, s.Name == models.Cocoa, s.Highlighted, s.Name)
	}
	assert.Equal(t, "#f59e0b", comm.Series[0].Color)
	assert.Equal(t, Dim("#ef4444", DimAlpha), comm.Series[1].Color)
	assert.Equal(t, 160.0, *comm.Series[0].Values[1].V)

	yoy := figureByID(t, figs, FMCGYoY)
	assert.Equal(t, ColorUp, yoy.Series[0].Values[0].Color)
	assert.Equal(t, Dim(ColorDown, DimAlpha), yoy.Series[0].Values[1].Color)
	assert.Equal(t, "+60.0%", yoy.Series[0].Values[0].Label)

	inf := figureByID(t, figs, FMCGInflation)
	highlighted := map[string]bool{}
	for _, s := range inf.Series {
		highlighted[s.Name] = s.Highlighted
	}
	assert.Equal(t, map[string]bool{
		"Oils & Fats":        false,
		"Coffee, Tea, Cocoa": true,
		"All Items":          true,
		"Bread & Cereals":    false,
	}, highlighted)
	assert.Equal(t, "Oils & Fats", inf.Series[0].Name, "document order is kept")

	sq := figureByID(t, figs, FMCGSqueeze)
	require.Len(t, sq.Cells, 8)
	for _, c := range sq.Cells {
		assert.Equal(t, c.X == 0, c.Active)
	}
	assert.Equal(t, 42.0, sq.Cells[0].V)
	assert.Equal(t, 7.8, sq.Cells[7].V)
	assert.Equal(t, -15.0, sq.Scale.Min)
	assert.Equal(t, 45.0, sq.Scale.Max)
}

func TestFMCGAllHighlighted(t *testing.T) {
	figs := FMCG(fmcgDoc(t), models.AllCommodities, NewStyle("dark", "fr"))
	for _, id := range []string{FMCGCommodities, FMCGInflation} {
		for _, s := range figureByID(t, figs, id).Series {
			assert.True(t, s.Highlighted, s.Name)
		}
	}
	fx := figureByID(t, figs, FMCGFX)
	assert.Equal(t, []string{"2020-01-01", "2020-02-01"}, fx.XAxis.Labels)
	assert.Equal(t, "Taux de Change EUR / USD", fx.Title)
}

func TestFMCGNilDocument(t *testing.T) {
	figs := FMCG(nil, models.AllCommodities, NewStyle("dark", "en"))
	require.Len(t, figs, 5)
	for _, f := range figs {
		assert.True(t, f.Empty)
		assert.Equal(t, "Data unavailable", f.EmptyMessage)
	}
	assert.Nil(t, FMCGKPIs(nil, models.AllCommodities, NewStyle("dark", "en")))
}

func TestFMCGKPIs(t *testing.T) {
	doc := fmcgDoc(t)

	kpis := FMCGKPIs(doc, models.AllCommodities, NewStyle("dark", "en"))
	require.Len(t, kpis, 3)
	assert.Equal(t, "Cocoa (YoY)", kpis[0].Label)
	assert.Equal(t, "+60%", kpis[0].Value)
	assert.Equal(t, "Largest Swing", kpis[0].Description)
	assert.Equal(t, "$4.0k", kpis[1].Value)
	assert.Equal(t, "1.0852", kpis[2].Value)

	kpis = FMCGKPIs(doc, models.Coffee, NewStyle("dark", "fr"))
	assert.Equal(t, "Café (YoY)", kpis[0].Label)
	assert.Equal(t, "Variation annuelle", kpis[0].Description)
	assert.Equal(t, "$180", kpis[1].Value)
	assert.Equal(t, "Cours Café", kpis[1].Label)

	kpis = FMCGKPIs(doc, models.Coffee, NewStyle("dark", "en"))
	assert.Equal(t, "-10%", kpis[0].Value)
	assert.Equal(t, "Annual Change", kpis[0].Description)

	kpis = FMCGKPIs(doc, models.Cocoa, NewStyle("dark", "en"))
	assert.Equal(t, "Significant Rise", kpis[0].Description)
}

func TestFMCGInsight(t *testing.T) {
	doc := fmcgDoc(t)

	in := FMCGInsight(doc, models.AllCommodities, NewStyle("dark", "en"))
	assert.Equal(t, "Overview:", in.Title)
	assert.Equal(t, "Of the 4 tracked commodities, Cocoa, Sugar are rising year-over-year while Coffee, Wheat are declining.", in.Text)

	in = FMCGInsight(doc, models.AllCommodities, NewStyle("dark", "fr"))
	assert.Equal(t, "Sur les 4 matières suivies, Cacao, Sucre sont en hausse annuelle tandis que Café, Blé reculent.", in.Text)

	in = FMCGInsight(doc, models.Cocoa, NewStyle("dark", "en"))
	assert.Equal(t, "Cocoa Analysis:", in.Title)
	assert.Contains(t, in.Text, "Cocoa shows a +60% year-over-year change.")
	assert.Contains(t, in.Text, "consumers are absorbing only a fraction")

	in = FMCGInsight(doc, models.Coffee, NewStyle("dark", "en"))
	assert.Contains(t, in.Text, "lag effect")

	in = FMCGInsight(doc, models.Wheat, NewStyle("dark", "en"))
	assert.Contains(t, in.Text, "lag effect")

	in = FMCGInsight(doc, models.Sugar, NewStyle("dark", "en"))
	assert.Contains(t, in.Text, "(Sugar, Jam, Honey, Chocolate) stands at +4.0%")
	assert.Contains(t, in.Text, "should be monitored")

	doc.Charts.YoYInflation = models.LabeledValues{}
	in = FMCGInsight(doc, models.Sugar, NewStyle("dark", "en"))
	assert.Equal(t, "Sugar shows a +5% year-over-year change.", in.Text)
}

func TestFMCGMissingYoYValue(t *testing.T) {
	doc := fmcgDoc(t)
	doc.Charts.YoYCommodity.Values[0] = nil

	figs := FMCG(doc, models.AllCommodities, NewStyle("dark", "en"))
	yoy := figureByID(t, figs, FMCGYoY)
	assert.Nil(t, yoy.Series[0].Values[0].V)

	kpis := FMCGKPIs(doc, models.AllCommodities, NewStyle("dark", "en"))
	assert.Equal(t, "Coffee (YoY)", kpis[0].Label)
}
