package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DashPull/internal/domain/models"
)

func TestEChartsOptionsSkipsTables(t *testing.T) {
	figs := Churn(sampleCustomers(), NewStyle("dark", "en"))
	out, err := EChartsOptions(figs)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, ChurnTop, out[0].ID)
	for _, o := range out {
		assert.NotEmpty(t, o.Options)
		assert.Contains(t, o.Options, "series")
	}
}

func TestEChartsOptionsAllKinds(t *testing.T) {
	var figs []Figure
	figs = append(figs, FMCG(fmcgDoc(t), models.Cocoa, NewStyle("dark", "en"))...)
	figs = append(figs, Omnirag(analyticsDoc(), "", NewStyle("dark", "en"))...)

	out, err := EChartsOptions(figs)
	require.NoError(t, err)
	assert.Len(t, out, 10)
}

func TestEChartsEmptyFigure(t *testing.T) {
	out, err := EChartsOptions(Churn(nil, NewStyle("dark", "en")))
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.True(t, out[0].Empty)
}

func TestToEChartUnknownKind(t *testing.T) {
	_, err := ToEChart(Figure{ID: "x", Kind: "radar"})
	assert.Error(t, err)
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPage(&buf, "Churn", Churn(sampleCustomers(), NewStyle("dark", "en")))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<html")
	assert.Contains(t, buf.String(), ChurnTop)
}
