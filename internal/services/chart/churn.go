package chart

import (
	"fmt"
	"strconv"

	"DashPull/internal/domain/models"
	"DashPull/internal/services/derive"
)

// Figure ids of the churn dashboard.
const (
	ChurnTop     = "churn-top"
	ChurnScatter = "churn-scatter"
	ChurnPareto  = "churn-pareto"
	ChurnTable   = "churn-table"
)

const (
	churnTopN   = 10
	churnTableN = 15
)

// Churn builds the churn figures for an ordered selection.
func Churn(records []models.Customer, style Style) []Figure {
	tokens := ThemeTokens(models.DashboardChurn, style.Theme)
	return []Figure{
		churnTop(records, style, tokens),
		churnScatter(records, style, tokens),
		churnPareto(records, style, tokens),
		churnTable(records, style, tokens),
	}
}

func churnTop(records []models.Customer, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "churn.top")
	if len(records) == 0 {
		return emptyFigure(ChurnTop, KindBar, title, Text(style.Lang, "churn.no_match"), tokens)
	}
	top := records[:min(churnTopN, len(records))]
	labels := make([]string, len(top))
	data := make([]Value, len(top))
	// Reversed so the best client ends up on top of a horizontal bar chart.
	for i, c := range top {
		j := len(top) - 1 - i
		labels[j] = "Client " + strconv.Itoa(c.ID)
		data[j] = Value{
			V:     num(c.ExpectedROI),
			Label: "€" + strconv.FormatFloat(derive.RoundHalfUp(c.ExpectedROI), 'f', 0, 64),
			Color: SegmentColor(c.Segment),
		}
	}
	return Figure{
		ID:         ChurnTop,
		Kind:       KindBar,
		Title:      title,
		Horizontal: true,
		XAxis:      &Axis{Name: "ROI (€)", Type: AxisValue},
		YAxis:      &Axis{Type: AxisCategory, Labels: labels},
		Series:     []Series{{Name: "ROI", Kind: KindBar, Highlighted: true, Values: data}},
		Tokens:     tokens,
	}
}

func churnScatter(records []models.Customer, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "churn.scatter")
	if len(records) == 0 {
		return emptyFigure(ChurnScatter, KindScatter, title, Text(style.Lang, "churn.chart_empty"), tokens)
	}
	var series []Series
	for _, seg := range models.Segments {
		var points []Point
		for _, c := range records {
			if c.Segment != seg {
				continue
			}
			points = append(points, Point{
				X:     c.Score,
				Y:     c.CLV,
				Size:  10 + c.Coupon*0.5,
				Label: fmt.Sprintf("Client %d · ROI: €%.0f", c.ID, derive.RoundHalfUp(c.ExpectedROI)),
			})
		}
		if len(points) == 0 {
			continue
		}
		series = append(series, Series{
			Name:        string(seg),
			Kind:        KindScatter,
			Color:       SegmentColor(seg),
			Highlighted: true,
			Points:      points,
		})
	}
	return Figure{
		ID:     ChurnScatter,
		Kind:   KindScatter,
		Title:  title,
		XAxis:  &Axis{Name: Text(style.Lang, "churn.score_axis"), Type: AxisValue},
		YAxis:  &Axis{Name: "CLV (€)", Type: AxisValue},
		Series: series,
		Tokens: tokens,
	}
}

func churnPareto(records []models.Customer, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "churn.pareto")
	if len(records) == 0 {
		return emptyFigure(ChurnPareto, KindBar, title, Text(style.Lang, "churn.chart_empty"), tokens)
	}
	labels := make([]string, len(records))
	roi := make([]float64, len(records))
	for i, c := range records {
		labels[i] = strconv.Itoa(i + 1)
		roi[i] = c.ExpectedROI
	}
	return Figure{
		ID:     ChurnPareto,
		Kind:   KindBar,
		Title:  title,
		XAxis:  &Axis{Name: Text(style.Lang, "churn.clients_axis"), Type: AxisCategory, Labels: labels},
		YAxis:  &Axis{Name: "ROI (€)", Type: AxisValue},
		Y2Axis: &Axis{Name: Text(style.Lang, "churn.cumul"), Type: AxisValue, Min: num(0), Max: num(105)},
		Series: []Series{
			{Name: Text(style.Lang, "churn.indiv"), Kind: KindBar, Color: tokens.Grid, Highlighted: true, Values: values(roi)},
			{Name: Text(style.Lang, "churn.cumul"), Kind: KindLine, Axis: 1, Color: tokens.Success, Width: 3, Highlighted: true, Values: values(derive.Cumulative(roi))},
		},
		Tokens: tokens,
	}
}

func churnTable(records []models.Customer, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "churn.table")
	if len(records) == 0 {
		return emptyFigure(ChurnTable, KindTable, title, Text(style.Lang, "churn.table_empty"), tokens)
	}
	f := NewFormatter(style.Lang)
	rows := make([][]TableCell, 0, churnTableN)
	for _, c := range records[:min(churnTableN, len(records))] {
		roiColor := tokens.Success
		if c.ExpectedROI < 0 {
			roiColor = tokens.Danger
		}
		rows = append(rows, []TableCell{
			{Text: "#" + strconv.Itoa(c.ID)},
			{Text: f.Fixed(c.Score, 3)},
			{Text: "€ " + f.Grouped(derive.RoundHalfUp(c.CLV), 0)},
			{Text: string(c.Segment), Badge: string(c.Segment), Color: SegmentColor(c.Segment)},
			{Text: "€ " + f.Fixed(c.Coupon, 2), Color: ColorCoupon},
			{Text: "€ " + f.Fixed(c.ExpectedROI, 2), Color: roiColor},
		})
	}
	return Figure{
		ID:    ChurnTable,
		Kind:  KindTable,
		Title: title,
		Table: &Table{
			Columns: []string{"ID", "Churn Score", "CLV (€)", "Segment", "Action (Coupon)", "Expected Net ROI"},
			Rows:    rows,
		},
		Tokens: tokens,
	}
}

// ChurnKPIs summarizes a selection: how many clients and the total ROI.
func ChurnKPIs(count int, totalROI float64, style Style) []models.KPI {
	tokens := ThemeTokens(models.DashboardChurn, style.Theme)
	f := NewFormatter(style.Lang)
	color := tokens.Success
	if totalROI < 0 {
		color = tokens.Danger
	}
	return []models.KPI{
		{ID: "clients", Label: Text(style.Lang, "churn.kpi_clients"), Value: f.Grouped(float64(count), 0)},
		{ID: "roi", Label: Text(style.Lang, "churn.kpi_roi"), Value: "€ " + f.Grouped(derive.RoundHalfUp(totalROI), 0), Color: color},
	}
}
