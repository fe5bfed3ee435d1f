package chart

import (
	"fmt"
	"strings"

	"DashPull/internal/domain/models"
	"DashPull/internal/services/derive"
)

// Figure ids of the FMCG dashboard.
const (
	FMCGCommodities = "fmcg-commodities"
	FMCGFX          = "fmcg-fx"
	FMCGYoY         = "fmcg-yoy"
	FMCGInflation   = "fmcg-inflation"
	FMCGSqueeze     = "fmcg-squeeze"
)

const (
	fxFrom      = "2020-01-01"
	squeezeMin  = -15
	squeezeMax  = 45
	activeWidth = 2.5
	idleWidth   = 1
)

// FMCG builds the cost-pressure figures. commodity is the cross-filter
// selection, models.AllCommodities when nothing is selected. A nil doc yields
// placeholder figures.
func FMCG(doc *models.FMCGDocument, commodity string, style Style) []Figure {
	tokens := ThemeTokens(models.DashboardFMCG, style.Theme)
	if doc == nil {
		msg := Text(style.Lang, "fmcg.empty")
		return []Figure{
			emptyFigure(FMCGCommodities, KindLine, Text(style.Lang, "fmcg.comm"), msg, tokens),
			emptyFigure(FMCGFX, KindLine, Text(style.Lang, "fmcg.fx"), msg, tokens),
			emptyFigure(FMCGYoY, KindBar, Text(style.Lang, "fmcg.yoy"), msg, tokens),
			emptyFigure(FMCGInflation, KindLine, Text(style.Lang, "fmcg.inf"), msg, tokens),
			emptyFigure(FMCGSqueeze, KindHeatmap, Text(style.Lang, "fmcg.squeeze"), msg, tokens),
		}
	}
	sel := selection(commodity)
	return []Figure{
		fmcgCommodities(doc, sel, style, tokens),
		fmcgFX(doc, style, tokens),
		fmcgYoY(doc, sel, style, tokens),
		fmcgInflation(doc, sel, style, tokens),
		fmcgSqueeze(doc, sel, style, tokens),
	}
}

// selection answers whether a commodity is inside the cross-filter.
type selection string

func (s selection) all() bool { return s == "" || s == models.AllCommodities }

func (s selection) has(name string) bool { return s.all() || string(s) == name }

func lineStyle(color string, active bool) (string, float64) {
	if active {
		return color, activeWidth
	}
	return Dim(color, DimAlpha), idleWidth
}

func fmcgCommodities(doc *models.FMCGDocument, sel selection, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "fmcg.comm")
	var axis []string
	for _, name := range models.Commodities {
		if s, ok := doc.Charts.Commodities[name]; ok && len(s.Dates) > 0 {
			axis = s.Dates
			break
		}
	}
	if len(axis) == 0 {
		return emptyFigure(FMCGCommodities, KindLine, title, Text(style.Lang, "fmcg.empty"), tokens)
	}
	var series []Series
	for _, name := range models.Commodities {
		s, ok := doc.Charts.Commodities[name]
		if !ok {
			continue
		}
		rebased := derive.Rebase100(s.Prices)
		byDate := make(map[string]float64, len(rebased))
		for i, v := range rebased {
			if i < len(s.Dates) {
				byDate[s.Dates[i]] = v
			}
		}
		data := make([]Value, len(axis))
		for i, d := range axis {
			if v, ok := byDate[d]; ok {
				data[i] = Value{V: num(v)}
			}
		}
		color, width := lineStyle(CommodityColor(name), sel.has(name))
		series = append(series, Series{
			Name:        name,
			Kind:        KindLine,
			Color:       color,
			Width:       width,
			Highlighted: sel.has(name),
			Values:      data,
		})
	}
	return Figure{
		ID:     FMCGCommodities,
		Kind:   KindLine,
		Title:  title,
		XAxis:  &Axis{Type: AxisCategory, Labels: axis},
		YAxis:  &Axis{Name: Text(style.Lang, "fmcg.base_axis"), Type: AxisValue},
		Series: series,
		Tokens: tokens,
	}
}

func fmcgFX(doc *models.FMCGDocument, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "fmcg.fx")
	dates, vals := derive.TrimFrom(doc.Charts.FX.Dates, doc.Charts.FX.Values, fxFrom)
	if len(dates) == 0 {
		return emptyFigure(FMCGFX, KindLine, title, Text(style.Lang, "fmcg.empty"), tokens)
	}
	return Figure{
		ID:    FMCGFX,
		Kind:  KindLine,
		Title: title,
		XAxis: &Axis{Type: AxisCategory, Labels: dates},
		YAxis: &Axis{Type: AxisValue},
		Series: []Series{{
			Name:        "EUR/USD",
			Kind:        KindLine,
			Color:       ColorFX,
			Width:       activeWidth,
			Highlighted: true,
			Values:      values(vals),
		}},
		Tokens: tokens,
	}
}

func fmcgYoY(doc *models.FMCGDocument, sel selection, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "fmcg.yoy")
	yoy := doc.Charts.YoYCommodity
	if len(yoy.Labels) == 0 {
		return emptyFigure(FMCGYoY, KindBar, title, Text(style.Lang, "fmcg.empty"), tokens)
	}
	f := NewFormatter(style.Lang)
	data := make([]Value, len(yoy.Labels))
	for i, name := range yoy.Labels {
		if i >= len(yoy.Values) || yoy.Values[i] == nil {
			continue
		}
		v := derive.RoundTo(*yoy.Values[i], 1)
		color := ChangeColor(v)
		if !sel.has(name) {
			color = Dim(color, DimAlpha)
		}
		data[i] = Value{V: num(v), Name: name, Label: f.Percent(v, 1), Color: color}
	}
	return Figure{
		ID:         FMCGYoY,
		Kind:       KindBar,
		Title:      title,
		Horizontal: true,
		XAxis:      &Axis{Type: AxisValue},
		YAxis:      &Axis{Type: AxisCategory, Labels: append([]string(nil), yoy.Labels...)},
		Series:     []Series{{Name: "YoY", Kind: KindBar, Highlighted: true, Values: data}},
		Tokens:     tokens,
	}
}

func fmcgInflation(doc *models.FMCGDocument, sel selection, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "fmcg.inf")
	inf := doc.Charts.InflationTimeseries
	if inf.Len() == 0 {
		return emptyFigure(FMCGInflation, KindLine, title, Text(style.Lang, "fmcg.empty"), tokens)
	}
	related, _ := RelatedInflation(string(sel))
	first, _ := inf.Get(inf.Keys[0])
	series := make([]Series, 0, inf.Len())
	for _, cat := range inf.Keys {
		s, _ := inf.Get(cat)
		active := sel.all() || cat == related || cat == models.AllItemsCategory
		color, width := lineStyle(InflationColor(cat), active)
		series = append(series, Series{
			Name:        cat,
			Kind:        KindLine,
			Color:       color,
			Width:       width,
			Highlighted: active,
			Values:      values(s.Values),
		})
	}
	return Figure{
		ID:     FMCGInflation,
		Kind:   KindLine,
		Title:  title,
		XAxis:  &Axis{Type: AxisCategory, Labels: append([]string(nil), first.Dates...)},
		YAxis:  &Axis{Type: AxisValue},
		Series: series,
		Tokens: tokens,
	}
}

func fmcgSqueeze(doc *models.FMCGDocument, sel selection, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "fmcg.squeeze")
	m := doc.Charts.SqueezeMatrix
	if len(m.XLabels) == 0 || len(m.YLabels) == 0 {
		return emptyFigure(FMCGSqueeze, KindHeatmap, title, Text(style.Lang, "fmcg.empty"), tokens)
	}
	cells := make([]Cell, 0, len(m.XLabels)*len(m.YLabels))
	for y := range m.YLabels {
		for x, xl := range m.XLabels {
			if y >= len(m.ZValues) || x >= len(m.ZValues[y]) {
				continue
			}
			cells = append(cells, Cell{X: x, Y: y, V: derive.RoundTo(m.ZValues[y][x], 1), Active: sel.has(xl)})
		}
	}
	return Figure{
		ID:     FMCGSqueeze,
		Kind:   KindHeatmap,
		Title:  title,
		XAxis:  &Axis{Name: Text(style.Lang, "fmcg.sq_tip"), Type: AxisCategory, Labels: append([]string(nil), m.XLabels...)},
		YAxis:  &Axis{Type: AxisCategory, Labels: append([]string(nil), m.YLabels...)},
		Cells:  cells,
		Scale:  &ColorScale{Min: squeezeMin, Max: squeezeMax, Colors: append([]string(nil), HeatScale...)},
		Tokens: tokens,
	}
}

// FMCGKPIs returns the headline change, the spot price and the EUR/USD rate.
// Without a selection the headline is the largest absolute mover.
func FMCGKPIs(doc *models.FMCGDocument, commodity string, style Style) []models.KPI {
	if doc == nil {
		return nil
	}
	f := NewFormatter(style.Lang)
	sel := selection(commodity)
	yoy := doc.Charts.YoYCommodity

	name := string(sel)
	var change *float64
	desc := ""
	if sel.all() {
		i := derive.TopMover(yoy.Values)
		if i >= 0 {
			name, change = yoy.Labels[i], yoy.Values[i]
		}
		desc = Text(style.Lang, "fmcg.largest")
	} else if change = yoy.Lookup(name); change != nil {
		switch {
		case *change > 10:
			desc = Text(style.Lang, "fmcg.rise")
		case *change < -10:
			desc = Text(style.Lang, "fmcg.correction")
		default:
			desc = Text(style.Lang, "fmcg.annual")
		}
	}

	var out []models.KPI
	display := CommodityName(style.Lang, name)
	if change != nil {
		out = append(out, models.KPI{
			ID:          "yoy",
			Label:       display + " (YoY)",
			Value:       f.Percent(*change, 0),
			Description: desc,
			Color:       CommodityColor(name),
		})
	}
	if s, ok := doc.Charts.Commodities[name]; ok && len(s.Prices) > 0 {
		out = append(out, models.KPI{
			ID:          "spot",
			Label:       fmt.Sprintf(Text(style.Lang, "fmcg.spot"), display),
			Value:       f.Spot(s.Prices[len(s.Prices)-1]),
			Description: "Yahoo Finance",
			Color:       CommodityColor(name),
		})
	}
	if doc.KPIs.FXEURUSD != nil {
		out = append(out, models.KPI{
			ID:    "fx",
			Label: Text(style.Lang, "fmcg.fx_kpi"),
			Value: f.Fixed(*doc.KPIs.FXEURUSD, 4),
			Color: ColorFX,
		})
	}
	return out
}

// Insight is a short narrative derived from the YoY figures.
type Insight struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// FMCGInsight describes the whole basket, or the pass-through of the
// selected commodity into its retail category.
func FMCGInsight(doc *models.FMCGDocument, commodity string, style Style) Insight {
	if doc == nil {
		return Insight{}
	}
	sel := selection(commodity)
	if sel.all() {
		return Insight{Title: Text(style.Lang, "fmcg.overview"), Text: overview(doc.Charts.YoYCommodity, style.Lang)}
	}
	name := string(sel)
	display := CommodityName(style.Lang, name)
	return Insight{
		Title: fmt.Sprintf(Text(style.Lang, "fmcg.analysis"), display),
		Text:  passThrough(doc, name, display, style.Lang),
	}
}

func overview(yoy models.LabeledValues, lang string) string {
	var rising, falling []string
	for i, l := range yoy.Labels {
		if i >= len(yoy.Values) || yoy.Values[i] == nil {
			continue
		}
		switch v := *yoy.Values[i]; {
		case v > 0:
			rising = append(rising, CommodityName(lang, l))
		case v < 0:
			falling = append(falling, CommodityName(lang, l))
		}
	}
	var b strings.Builder
	if lang == models.LangEN {
		fmt.Fprintf(&b, "Of the %d tracked commodities, ", len(yoy.Labels))
		switch len(rising) {
		case 0:
			b.WriteString("none are rising")
		case 1:
			b.WriteString(rising[0] + " is rising year-over-year")
		default:
			b.WriteString(strings.Join(rising, ", ") + " are rising year-over-year")
		}
		switch len(falling) {
		case 0:
			b.WriteString(".")
		case 1:
			b.WriteString(" while " + falling[0] + " is declining.")
		default:
			b.WriteString(" while " + strings.Join(falling, ", ") + " are declining.")
		}
		return b.String()
	}
	fmt.Fprintf(&b, "Sur les %d matières suivies, ", len(yoy.Labels))
	switch len(rising) {
	case 0:
		b.WriteString("aucune n'est en hausse")
	case 1:
		b.WriteString(rising[0] + " est en hausse annuelle")
	default:
		b.WriteString(strings.Join(rising, ", ") + " sont en hausse annuelle")
	}
	switch len(falling) {
	case 0:
		b.WriteString(".")
	case 1:
		b.WriteString(" tandis que " + falling[0] + " recule.")
	default:
		b.WriteString(" tandis que " + strings.Join(falling, ", ") + " reculent.")
	}
	return b.String()
}

func passThrough(doc *models.FMCGDocument, name, display, lang string) string {
	f := NewFormatter(lang)
	change := 0.0
	if v := doc.Charts.YoYCommodity.Lookup(name); v != nil {
		change = *v
	}
	var b strings.Builder
	if lang == models.LangEN {
		fmt.Fprintf(&b, "%s shows a %s year-over-year change.", name, f.Percent(change, 0))
	} else {
		fmt.Fprintf(&b, "Le %s affiche une variation de %s sur un an.", display, f.Percent(change, 0))
	}

	cat, ok := RelatedInflation(name)
	if !ok {
		return b.String()
	}
	inf := doc.Charts.YoYInflation.Lookup(cat)
	if inf == nil {
		return b.String()
	}
	if lang == models.LangEN {
		fmt.Fprintf(&b, " Linked retail inflation (%s) stands at %s: ", cat, f.Percent(*inf, 1))
	} else {
		fmt.Fprintf(&b, " L'inflation de la catégorie associée (%s) se situe à %s : ", cat, f.Percent(*inf, 1))
	}
	switch {
	case abs(change) > 20 && *inf < 5:
		b.WriteString(pick(lang,
			"le consommateur n'absorbe qu'une fraction du choc matières.",
			"consumers are absorbing only a fraction of the raw material shock."))
	case change < 0 && *inf > 0:
		b.WriteString(pick(lang,
			"les prix de détail restent élevés malgré la baisse des matières premières (effet retard).",
			"retail prices remain high despite falling commodity costs (lag effect)."))
	default:
		b.WriteString(pick(lang,
			"le pass-through vers les prix de détail est à surveiller.",
			"the pass-through to retail prices should be monitored."))
	}
	return b.String()
}

func pick(lang, fr, en string) string {
	if lang == models.LangEN {
		return en
	}
	return fr
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
