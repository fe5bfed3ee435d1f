package models

// AnalyticsDocument is the omnirag analytics.json payload.
type AnalyticsDocument struct {
	KPIs                  AnalyticsKPIs        `json:"kpis"`
	RevenueByCategory     []CategoryRevenue    `json:"revenue_by_category"`
	RevenueByRegion       []RegionRevenue      `json:"revenue_by_region"`
	MonthlyTrend          []MonthlyRevenue     `json:"monthly_trend"`
	SentimentDistribution []SentimentBucket    `json:"sentiment_distribution"`
	RevenueByChannel      []ChannelRevenue     `json:"revenue_by_channel"`
	TopProducts           []ProductPerformance `json:"top_products"`
	LLMContext            string               `json:"llm_context"`
}

type AnalyticsKPIs struct {
	TotalRevenue      *float64 `json:"total_revenue"`
	TotalTransactions *float64 `json:"total_transactions"`
	UniqueProducts    *int     `json:"unique_products"`
	UniqueCities      *int     `json:"unique_cities"`
	AvgPrice          *float64 `json:"avg_price"`
	AvgSentiment      *float64 `json:"avg_sentiment"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

type RegionRevenue struct {
	Region  string  `json:"region"`
	Revenue float64 `json:"revenue"`
}

type MonthlyRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

type SentimentBucket struct {
	Bucket string  `json:"bucket"`
	Count  float64 `json:"count"`
}

type ChannelRevenue struct {
	Channel string  `json:"channel"`
	Revenue float64 `json:"revenue"`
}

type ProductPerformance struct {
	Product      string  `json:"product"`
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	Units        float64 `json:"units"`
	AvgSentiment float64 `json:"avg_sentiment"`
}

// OmniragFilter narrows the top products table.
type OmniragFilter struct {
	Category string `query:"category" json:"category" default:"all" validate:"max=64"`
}
