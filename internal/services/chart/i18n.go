package chart

import "DashPull/internal/domain/models"

var texts = map[string]map[string]string{
	models.LangFR: {
		"churn.top":          "Top 10 Clients (ROI Attendu)",
		"churn.scatter":      "CLV vs Probabilité de Churn",
		"churn.pareto":       "Distribution du ROI (Pareto)",
		"churn.table":        "Clients Prioritaires",
		"churn.score_axis":   "Probabilité (Score)",
		"churn.clients_axis": "Clients",
		"churn.indiv":        "ROI Indiv.",
		"churn.cumul":        "% Cumulé",
		"churn.no_match":     "Aucun client ne correspond aux critères",
		"churn.chart_empty":  "Graphique vide",
		"churn.table_empty":  "Tableau vide",
		"churn.kpi_clients":  "Clients ciblés",
		"churn.kpi_roi":      "ROI net attendu",

		"fmcg.comm":       "Évolution des Prix (Base 100 = Jan 2023)",
		"fmcg.fx":         "Taux de Change EUR / USD",
		"fmcg.yoy":        "Variation Annuelle des Matières Premières",
		"fmcg.inf":        "Inflation par Catégorie Alimentaire (INSEE)",
		"fmcg.squeeze":    "Matrice de Pression sur les Marges",
		"fmcg.sq_tip":     "Score de Pression",
		"fmcg.base_axis":  "Base 100\n(Jan 2023)",
		"fmcg.largest":    "Plus forte variation",
		"fmcg.rise":       "Hausse significative",
		"fmcg.correction": "Correction majeure",
		"fmcg.annual":     "Variation annuelle",
		"fmcg.spot":       "Cours %s",
		"fmcg.fx_kpi":     "EUR / USD",
		"fmcg.overview":   "Vue d'ensemble :",
		"fmcg.analysis":   "Diagnostic %s :",
		"fmcg.empty":      "Données indisponibles",

		"omnirag.category":     "Chiffre d'affaires par catégorie",
		"omnirag.region":       "Chiffre d'affaires par région",
		"omnirag.trend":        "Tendance mensuelle",
		"omnirag.sentiment":    "Distribution du sentiment",
		"omnirag.channel":      "Chiffre d'affaires par canal",
		"omnirag.products":     "Meilleurs produits",
		"omnirag.empty":        "Aucune donnée",
		"omnirag.revenue":      "Chiffre d'affaires",
		"omnirag.tx":           "Transactions",
		"omnirag.products_kpi": "Produits",
		"omnirag.cities":       "Villes",
		"omnirag.avg_price":    "Prix moyen",
		"omnirag.avg_sent":     "Sentiment moyen",
		"omnirag.rev_yoy":      "CA sur un an",
		"omnirag.col_rank":     "#",
		"omnirag.col_product":  "Produit",
		"omnirag.col_category": "Catégorie",
		"omnirag.col_revenue":  "CA",
		"omnirag.col_units":    "Unités",
		"omnirag.col_sent":     "Sentiment",

		"notice.unavailable": "Les données sont momentanément indisponibles.",
		"notice.malformed":   "Les données reçues sont invalides.",
	},
	models.LangEN: {
		"churn.top":          "Top 10 Priority Clients (ROI)",
		"churn.scatter":      "CLV vs Churn Probability",
		"churn.pareto":       "ROI Distribution (Pareto)",
		"churn.table":        "Priority Clients",
		"churn.score_axis":   "Score",
		"churn.clients_axis": "Clients",
		"churn.indiv":        "Indiv. ROI",
		"churn.cumul":        "Cumul %",
		"churn.no_match":     "No clients match criteria",
		"churn.chart_empty":  "Chart is empty",
		"churn.table_empty":  "Table is empty",
		"churn.kpi_clients":  "Targeted clients",
		"churn.kpi_roi":      "Expected net ROI",

		"fmcg.comm":       "Commodity Price Evolution (Base 100 = Jan 2023)",
		"fmcg.fx":         "EUR / USD Exchange Rate",
		"fmcg.yoy":        "Year-over-Year Commodity Price Change",
		"fmcg.inf":        "Food Category Inflation Over Time (INSEE)",
		"fmcg.squeeze":    "Margin Pressure Matrix",
		"fmcg.sq_tip":     "Pressure Score",
		"fmcg.base_axis":  "Base 100\n(Jan 2023)",
		"fmcg.largest":    "Largest Swing",
		"fmcg.rise":       "Significant Rise",
		"fmcg.correction": "Major Correction",
		"fmcg.annual":     "Annual Change",
		"fmcg.spot":       "%s Spot",
		"fmcg.fx_kpi":     "EUR / USD",
		"fmcg.overview":   "Overview:",
		"fmcg.analysis":   "%s Analysis:",
		"fmcg.empty":      "Data unavailable",

		"omnirag.category":     "Revenue by Category",
		"omnirag.region":       "Revenue by Region",
		"omnirag.trend":        "Monthly Trend",
		"omnirag.sentiment":    "Sentiment Distribution",
		"omnirag.channel":      "Revenue by Channel",
		"omnirag.products":     "Top Products",
		"omnirag.empty":        "No data",
		"omnirag.revenue":      "Revenue",
		"omnirag.tx":           "Transactions",
		"omnirag.products_kpi": "Products",
		"omnirag.cities":       "Cities",
		"omnirag.avg_price":    "Average price",
		"omnirag.avg_sent":     "Average sentiment",
		"omnirag.rev_yoy":      "Revenue YoY",
		"omnirag.col_rank":     "#",
		"omnirag.col_product":  "Product",
		"omnirag.col_category": "Category",
		"omnirag.col_revenue":  "Revenue",
		"omnirag.col_units":    "Units",
		"omnirag.col_sent":     "Sentiment",

		"notice.unavailable": "Data is temporarily unavailable.",
		"notice.malformed":   "The received data is invalid.",
	},
}

// Text returns the localized string for key, falling back to French and then
// to the key itself.
func Text(lang, key string) string {
	if s, ok := texts[lang][key]; ok {
		return s
	}
	if s, ok := texts[models.LangFR][key]; ok {
		return s
	}
	return key
}

var commodityFR = map[string]string{
	models.Cocoa:  "Cacao",
	models.Coffee: "Café",
	models.Sugar:  "Sucre",
	models.Wheat:  "Blé",
}

// CommodityName returns the display name of a commodity in lang.
func CommodityName(lang, name string) string {
	if lang == models.LangFR {
		return lookup(commodityFR, name, name)
	}
	return name
}
