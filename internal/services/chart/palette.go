package chart

import (
	"fmt"
	"strconv"

	"DashPull/internal/domain/models"
)

// Fallback colors for labels missing from a palette.
const (
	FallbackInflation = "#666"
	FallbackCategory  = "#888"
	FallbackRegion    = "#5b8cff"
	FallbackAccent    = "#818cf8"

	ColorUp     = "#ef4444"
	ColorDown   = "#22c55e"
	ColorFX     = "#818cf8"
	ColorCoupon = "#3b82f6"

	// DimAlpha is the alpha of series outside the cross-filter selection.
	DimAlpha = 0.15
)

var segmentColors = map[models.Segment]string{
	models.SegmentHigh: "#10b981",
	models.SegmentMid:  "#6366f1",
	models.SegmentLow:  "#f43f5e",
}

var commodityColors = map[string]string{
	models.Cocoa:  "#f59e0b",
	models.Coffee: "#ef4444",
	models.Sugar:  "#22d3ee",
	models.Wheat:  "#a78bfa",
}

var inflationColors = map[string]string{
	"Oils & Fats":                  "#ef4444",
	"Dairy, Cheese & Eggs":         "#f97316",
	"Coffee, Tea, Cocoa":           "#f59e0b",
	"Meat":                         "#eab308",
	"Sugar, Jam, Honey, Chocolate": "#a78bfa",
	models.AllItemsCategory:        "#3b82f6",
	"Bread & Cereals":              "#22c55e",
}

// commodityInflation links a commodity to the retail category it feeds.
var commodityInflation = map[string]string{
	models.Cocoa:  "Coffee, Tea, Cocoa",
	models.Coffee: "Coffee, Tea, Cocoa",
	models.Sugar:  "Sugar, Jam, Honey, Chocolate",
	models.Wheat:  "Bread & Cereals",
}

var categoryColors = map[string]string{
	"refrigerante": "#5b8cff",
	"suco":         "#22d3ee",
	"energetico":   "#f59e0b",
	"agua":         "#a78bfa",
}

var regionColors = map[string]string{
	"norte":        "#f59e0b",
	"nordeste":     "#22d3ee",
	"centro-oeste": "#a78bfa",
	"sudeste":      "#5b8cff",
	"sul":          "#ec4899",
}

var (
	yearColors      = []string{"#334155", "#475569", "#64748b", "#5b8cff", "#818cf8", "#a78bfa"}
	sentimentColors = []string{"#ef4444", "#f97316", "#94a3b8", "#22d3ee", "#22c55e"}
	channelColors   = []string{"#5b8cff", "#8b5cf6", "#22d3ee", "#f59e0b", "#ec4899", "#22c55e"}

	// HeatScale is the squeeze matrix gradient from relief to pressure.
	HeatScale = []string{"#1e3a5f", "#0ea5e9", "#22c55e", "#fbbf24", "#f97316", "#ef4444", "#dc2626"}
)

func lookup(m map[string]string, key, fallback string) string {
	if c, ok := m[key]; ok {
		return c
	}
	return fallback
}

func index(list []string, i int, fallback string) string {
	if i >= 0 && i < len(list) {
		return list[i]
	}
	return fallback
}

// SegmentColor returns the color of a churn segment.
func SegmentColor(s models.Segment) string {
	if c, ok := segmentColors[s]; ok {
		return c
	}
	return FallbackAccent
}

// CommodityColor returns the main color of a commodity.
func CommodityColor(name string) string { return lookup(commodityColors, name, FallbackAccent) }

// InflationColor returns the color of an inflation category.
func InflationColor(name string) string { return lookup(inflationColors, name, FallbackInflation) }

// RelatedInflation returns the inflation category a commodity feeds, if any.
func RelatedInflation(commodity string) (string, bool) {
	c, ok := commodityInflation[commodity]
	return c, ok
}

// CategoryColor returns the color of an omnirag product category.
func CategoryColor(name string) string { return lookup(categoryColors, name, FallbackCategory) }

// RegionColor returns the color of an omnirag region.
func RegionColor(name string) string { return lookup(regionColors, name, FallbackRegion) }

// YearColor returns the color of the i-th year of a trend chart.
func YearColor(i int) string { return index(yearColors, i, FallbackRegion) }

// SentimentColor returns the color of the i-th sentiment bucket.
func SentimentColor(i int) string { return index(sentimentColors, i, FallbackCategory) }

// ChannelColor returns the color of the i-th sales channel.
func ChannelColor(i int) string { return index(channelColors, i, FallbackCategory) }

// ChangeColor colors a signed change: rises are bad news for costs.
func ChangeColor(v float64) string {
	if v > 0 {
		return ColorUp
	}
	return ColorDown
}

// Dim converts a #rrggbb color to rgba with the given alpha. Colors in any
// other notation are returned unchanged.
func Dim(hex string, alpha float64) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return hex
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64))
}
