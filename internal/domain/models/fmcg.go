package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Commodity names tracked by the FMCG dashboard, in display order.
const (
	Cocoa  = "Cocoa"
	Coffee = "Coffee"
	Sugar  = "Sugar"
	Wheat  = "Wheat"

	// AllCommodities disables cross-filtering.
	AllCommodities = "all"
	// AllItemsCategory is the headline inflation index, always highlighted.
	AllItemsCategory = "All Items"
)

// Commodities lists the tracked commodities in display order.
var Commodities = []string{Cocoa, Coffee, Sugar, Wheat}

// FMCGDocument is the dashboard_fmcg_data.json payload.
type FMCGDocument struct {
	Charts FMCGCharts `json:"charts"`
	KPIs   FMCGKPIs   `json:"kpis"`
}

type FMCGCharts struct {
	Commodities         map[string]PriceSeries `json:"commodities"`
	FX                  ValueSeries            `json:"fx"`
	YoYCommodity        LabeledValues          `json:"yoy_commodity"`
	YoYInflation        LabeledValues          `json:"yoy_inflation"`
	InflationTimeseries OrderedSeries          `json:"inflation_timeseries"`
	SqueezeMatrix       SqueezeMatrix          `json:"squeeze_matrix"`
}

type FMCGKPIs struct {
	FXEURUSD *float64 `json:"fx_eur_usd"`
}

// PriceSeries holds parallel date/price arrays.
type PriceSeries struct {
	Dates  []string  `json:"dates"`
	Prices []float64 `json:"prices"`
}

// ValueSeries holds parallel date/value arrays.
type ValueSeries struct {
	Dates  []string  `json:"dates"`
	Values []float64 `json:"values"`
}

// LabeledValues holds parallel label/value arrays. A nil value means the
// change could not be computed.
type LabeledValues struct {
	Labels []string   `json:"labels"`
	Values []*float64 `json:"values"`
}

// Lookup returns the value for label, or nil when absent.
func (lv LabeledValues) Lookup(label string) *float64 {
	for i, l := range lv.Labels {
		if l == label && i < len(lv.Values) {
			return lv.Values[i]
		}
	}
	return nil
}

// SqueezeMatrix is the margin pressure heatmap; ZValues is indexed [y][x].
type SqueezeMatrix struct {
	XLabels []string    `json:"x_labels"`
	YLabels []string    `json:"y_labels"`
	ZValues [][]float64 `json:"z_values"`
}

// FMCGFilter is the FMCG cross-filter state.
type FMCGFilter struct {
	Commodity string `query:"commodity" json:"commodity" default:"all" validate:"oneof=all Cocoa Coffee Sugar Wheat"`
}

// OrderedSeries is a JSON object of named value series that remembers the
// order its keys appeared in.
type OrderedSeries struct {
	Keys   []string
	Series map[string]ValueSeries
}

// Get returns the series stored under key.
func (o OrderedSeries) Get(key string) (ValueSeries, bool) {
	s, ok := o.Series[key]
	return s, ok
}

// Len reports the number of series.
func (o OrderedSeries) Len() int { return len(o.Keys) }

func (o *OrderedSeries) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = OrderedSeries{}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &json.UnmarshalTypeError{Value: fmt.Sprint(tok), Type: reflect.TypeOf(o).Elem()}
	}
	out := OrderedSeries{Series: map[string]ValueSeries{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected key, got %v", tok)
		}
		var s ValueSeries
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("series %q: %w", key, err)
		}
		if _, dup := out.Series[key]; !dup {
			out.Keys = append(out.Keys, key)
		}
		out.Series[key] = s
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

func (o OrderedSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.Series[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
