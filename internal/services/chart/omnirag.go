package chart

import (
	"strconv"
	"strings"

	"DashPull/internal/domain/models"
	"DashPull/internal/services/derive"
	"DashPull/pkg/util"
)

// Figure ids of the omnirag dashboard.
const (
	OmniragCategory  = "omnirag-category"
	OmniragRegion    = "omnirag-region"
	OmniragTrend     = "omnirag-trend"
	OmniragSentiment = "omnirag-sentiment"
	OmniragChannel   = "omnirag-channel"
	OmniragProducts  = "omnirag-products"
)

const currencyBRL = "R$ "

// Omnirag builds the sales intelligence figures. category narrows the top
// products table; "" or "all" keeps every product.
func Omnirag(doc *models.AnalyticsDocument, category string, style Style) []Figure {
	tokens := ThemeTokens(models.DashboardOmnirag, style.Theme)
	if doc == nil {
		doc = &models.AnalyticsDocument{}
	}
	return []Figure{
		omniragCategory(doc, style, tokens),
		omniragRegion(doc, style, tokens),
		omniragTrend(doc, style, tokens),
		omniragSentiment(doc, style, tokens),
		omniragChannel(doc, style, tokens),
		omniragProducts(doc, category, style, tokens),
	}
}

func omniragCategory(doc *models.AnalyticsDocument, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "omnirag.category")
	if len(doc.RevenueByCategory) == 0 {
		return emptyFigure(OmniragCategory, KindPie, title, Text(style.Lang, "omnirag.empty"), tokens)
	}
	f := NewFormatter(style.Lang)
	data := make([]Value, len(doc.RevenueByCategory))
	for i, c := range doc.RevenueByCategory {
		data[i] = Value{
			V:     num(c.Revenue),
			Name:  util.Capitalize(c.Category),
			Label: f.Currency(currencyBRL, c.Revenue),
			Color: CategoryColor(c.Category),
		}
	}
	return Figure{
		ID:     OmniragCategory,
		Kind:   KindPie,
		Title:  title,
		Series: []Series{{Name: title, Kind: KindPie, Highlighted: true, Values: data}},
		Tokens: tokens,
	}
}

func omniragRegion(doc *models.AnalyticsDocument, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "omnirag.region")
	if len(doc.RevenueByRegion) == 0 {
		return emptyFigure(OmniragRegion, KindBar, title, Text(style.Lang, "omnirag.empty"), tokens)
	}
	f := NewFormatter(style.Lang)
	labels := make([]string, len(doc.RevenueByRegion))
	data := make([]Value, len(doc.RevenueByRegion))
	for i, r := range doc.RevenueByRegion {
		labels[i] = util.Capitalize(r.Region)
		data[i] = Value{
			V:     num(r.Revenue),
			Label: f.Currency(currencyBRL, r.Revenue),
			Color: RegionColor(r.Region),
		}
	}
	return Figure{
		ID:     OmniragRegion,
		Kind:   KindBar,
		Title:  title,
		XAxis:  &Axis{Type: AxisCategory, Labels: labels},
		YAxis:  &Axis{Type: AxisValue},
		Series: []Series{{Name: title, Kind: KindBar, Highlighted: true, Values: data}},
		Tokens: tokens,
	}
}

// trendYears returns the distinct years in order of first appearance.
func trendYears(rows []models.MonthlyRevenue) []int {
	seen := map[int]bool{}
	var years []int
	for _, r := range rows {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	return years
}

func omniragTrend(doc *models.AnalyticsDocument, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "omnirag.trend")
	years := trendYears(doc.MonthlyTrend)
	if len(years) == 0 {
		return emptyFigure(OmniragTrend, KindLine, title, Text(style.Lang, "omnirag.empty"), tokens)
	}
	latest := years[len(years)-1]
	series := make([]Series, len(years))
	for i, yr := range years {
		data := make([]Value, 12)
		for _, r := range doc.MonthlyTrend {
			if r.Year == yr && r.Month >= 1 && r.Month <= 12 {
				data[r.Month-1] = Value{V: num(r.Revenue)}
			}
		}
		color, width := YearColor(i), 1.5
		if yr == latest {
			width = 3
		} else {
			color = Dim(color, 0.5)
		}
		series[i] = Series{
			Name:        strconv.Itoa(yr),
			Kind:        KindLine,
			Color:       color,
			Width:       width,
			Highlighted: yr == latest,
			Values:      data,
		}
	}
	return Figure{
		ID:     OmniragTrend,
		Kind:   KindLine,
		Title:  title,
		XAxis:  &Axis{Type: AxisCategory, Labels: util.MonthLabels(style.Lang)},
		YAxis:  &Axis{Type: AxisValue},
		Series: series,
		Tokens: tokens,
	}
}

func omniragSentiment(doc *models.AnalyticsDocument, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "omnirag.sentiment")
	if len(doc.SentimentDistribution) == 0 {
		return emptyFigure(OmniragSentiment, KindBar, title, Text(style.Lang, "omnirag.empty"), tokens)
	}
	f := NewFormatter(style.Lang)
	labels := make([]string, len(doc.SentimentDistribution))
	data := make([]Value, len(doc.SentimentDistribution))
	for i, b := range doc.SentimentDistribution {
		labels[i] = b.Bucket
		data[i] = Value{V: num(b.Count), Label: f.Magnitude(b.Count), Color: SentimentColor(i)}
	}
	return Figure{
		ID:     OmniragSentiment,
		Kind:   KindBar,
		Title:  title,
		XAxis:  &Axis{Type: AxisCategory, Labels: labels},
		YAxis:  &Axis{Type: AxisValue},
		Series: []Series{{Name: title, Kind: KindBar, Highlighted: true, Values: data}},
		Tokens: tokens,
	}
}

func omniragChannel(doc *models.AnalyticsDocument, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "omnirag.channel")
	if len(doc.RevenueByChannel) == 0 {
		return emptyFigure(OmniragChannel, KindPie, title, Text(style.Lang, "omnirag.empty"), tokens)
	}
	f := NewFormatter(style.Lang)
	data := make([]Value, len(doc.RevenueByChannel))
	for i, c := range doc.RevenueByChannel {
		data[i] = Value{
			V:     num(c.Revenue),
			Name:  util.Capitalize(c.Channel),
			Label: f.Currency(currencyBRL, c.Revenue),
			Color: ChannelColor(i),
		}
	}
	return Figure{
		ID:     OmniragChannel,
		Kind:   KindPie,
		Title:  title,
		Series: []Series{{Name: title, Kind: KindPie, Rose: true, Highlighted: true, Values: data}},
		Tokens: tokens,
	}
}

func omniragProducts(doc *models.AnalyticsDocument, category string, style Style, tokens Tokens) Figure {
	title := Text(style.Lang, "omnirag.products")
	f := NewFormatter(style.Lang)
	var rows [][]TableCell
	for i, p := range doc.TopProducts {
		if category != "" && category != "all" && !strings.EqualFold(p.Category, category) {
			continue
		}
		color := tokens.Success
		if p.AvgSentiment < 0 {
			color = tokens.Danger
		}
		rows = append(rows, []TableCell{
			{Text: "#" + strconv.Itoa(i+1)},
			{Text: p.Product},
			{Text: p.Category, Badge: p.Category},
			{Text: f.Currency(currencyBRL, p.Revenue)},
			{Text: f.Magnitude(p.Units)},
			{Text: f.Signed(p.AvgSentiment, 3), Color: color},
		})
	}
	if len(rows) == 0 {
		return emptyFigure(OmniragProducts, KindTable, title, Text(style.Lang, "omnirag.empty"), tokens)
	}
	return Figure{
		ID:    OmniragProducts,
		Kind:  KindTable,
		Title: title,
		Table: &Table{
			Columns: []string{
				Text(style.Lang, "omnirag.col_rank"),
				Text(style.Lang, "omnirag.col_product"),
				Text(style.Lang, "omnirag.col_category"),
				Text(style.Lang, "omnirag.col_revenue"),
				Text(style.Lang, "omnirag.col_units"),
				Text(style.Lang, "omnirag.col_sent"),
			},
			Rows: rows,
		},
		Tokens: tokens,
	}
}

// RevenueYoY compares the revenue of the latest year in the monthly trend
// with the year before it. It is nil when either year is missing or the
// prior revenue is zero.
func RevenueYoY(rows []models.MonthlyRevenue) *float64 {
	totals := map[int]float64{}
	latest := 0
	for _, r := range rows {
		totals[r.Year] += r.Revenue
		if r.Year > latest {
			latest = r.Year
		}
	}
	prior, ok := totals[latest-1]
	if !ok {
		return nil
	}
	return derive.YoY(totals[latest], &prior)
}

// OmniragKPIs formats the headline analytics. Missing values are skipped.
func OmniragKPIs(doc *models.AnalyticsDocument, style Style) []models.KPI {
	if doc == nil {
		return nil
	}
	f := NewFormatter(style.Lang)
	k := doc.KPIs
	var out []models.KPI
	add := func(id, key, value, color string) {
		out = append(out, models.KPI{ID: id, Label: Text(style.Lang, key), Value: value, Color: color})
	}
	if k.TotalRevenue != nil {
		add("revenue", "omnirag.revenue", f.Currency(currencyBRL, *k.TotalRevenue), "")
	}
	if k.TotalTransactions != nil {
		add("transactions", "omnirag.tx", f.Magnitude(*k.TotalTransactions), "")
	}
	if k.UniqueProducts != nil {
		add("products", "omnirag.products_kpi", strconv.Itoa(*k.UniqueProducts), "")
	}
	if k.UniqueCities != nil {
		add("cities", "omnirag.cities", strconv.Itoa(*k.UniqueCities), "")
	}
	if k.AvgPrice != nil {
		add("avg_price", "omnirag.avg_price", currencyBRL+f.Fixed(*k.AvgPrice, 2), "")
	}
	if k.AvgSentiment != nil {
		color := ColorDown
		if *k.AvgSentiment < 0 {
			color = ColorUp
		}
		add("avg_sentiment", "omnirag.avg_sent", f.Signed(*k.AvgSentiment, 3), color)
	}
	if yoy := RevenueYoY(doc.MonthlyTrend); yoy != nil {
		add("revenue_yoy", "omnirag.rev_yoy", f.Percent(*yoy, 1), ChangeColor(-*yoy))
	}
	return out
}
