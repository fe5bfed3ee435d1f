// Package chart maps dashboard records to declarative figure descriptors.
// Builders are pure: they never mutate their inputs and produce a fresh
// descriptor on every call.
package chart

import "DashPull/internal/domain/models"

// Kind is the rendering primitive of a figure or series.
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
	KindHeatmap Kind = "heatmap"
	KindPie     Kind = "pie"
	KindTable   Kind = "table"
)

// Axis types.
const (
	AxisCategory = "category"
	AxisValue    = "value"
	AxisTime     = "time"
)

// Style selects theme and language tokens.
type Style struct {
	Theme string `json:"theme"`
	Lang  string `json:"lang"`
}

// NewStyle normalizes theme and language.
func NewStyle(theme, lang string) Style {
	return Style{Theme: models.NormalizeTheme(theme), Lang: models.NormalizeLang(lang)}
}

// Figure is one chart or table handed to a rendering engine.
type Figure struct {
	ID           string      `json:"id"`
	Kind         Kind        `json:"kind"`
	Title        string      `json:"title"`
	Empty        bool        `json:"empty"`
	EmptyMessage string      `json:"empty_message,omitempty"`
	Horizontal   bool        `json:"horizontal,omitempty"`
	XAxis        *Axis       `json:"x_axis,omitempty"`
	YAxis        *Axis       `json:"y_axis,omitempty"`
	Y2Axis       *Axis       `json:"y2_axis,omitempty"`
	Series       []Series    `json:"series,omitempty"`
	Cells        []Cell      `json:"cells,omitempty"`
	Scale        *ColorScale `json:"scale,omitempty"`
	Table        *Table      `json:"table,omitempty"`
	Tokens       Tokens      `json:"tokens"`
}

// Axis describes one chart axis.
type Axis struct {
	Name   string   `json:"name,omitempty"`
	Type   string   `json:"type"`
	Labels []string `json:"labels,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

// Series is one data series. Category-axis series use Values; scatter
// series use Points.
type Series struct {
	Name        string  `json:"name"`
	Kind        Kind    `json:"kind"`
	Axis        int     `json:"axis,omitempty"`
	Color       string  `json:"color,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Highlighted bool    `json:"highlighted"`
	Rose        bool    `json:"rose,omitempty"`
	Values      []Value `json:"values,omitempty"`
	Points      []Point `json:"points,omitempty"`
}

// Value is a category-axis datum. A nil V is a gap.
type Value struct {
	V     *float64 `json:"v"`
	Name  string   `json:"name,omitempty"`
	Label string   `json:"label,omitempty"`
	Color string   `json:"color,omitempty"`
}

// Point is a scatter datum.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Label string  `json:"label,omitempty"`
}

// Cell is a heatmap datum indexed into the axis labels.
type Cell struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	V      float64 `json:"v"`
	Active bool    `json:"active"`
}

// ColorScale maps heatmap values onto a gradient.
type ColorScale struct {
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Colors []string `json:"colors"`
}

// Table is a tabular figure.
type Table struct {
	Columns []string      `json:"columns"`
	Rows    [][]TableCell `json:"rows"`
}

// TableCell is one rendered table value.
type TableCell struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
	Badge string `json:"badge,omitempty"`
}

func num(v float64) *float64 { return &v }

func values(vs []float64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Value{V: num(v)}
	}
	return out
}

func emptyFigure(id string, kind Kind, title, message string, tokens Tokens) Figure {
	return Figure{ID: id, Kind: kind, Title: title, Empty: true, EmptyMessage: message, Tokens: tokens}
}
