package models

import "time"

// FinancialSummary is the headline KPI set rolled up from all sales and
// batches.
type FinancialSummary struct {
	TotalRevenue       float64 `bson:"total_revenue" json:"totalRevenue"`
	TotalCost          float64 `bson:"total_cost" json:"totalCost"`
	NetProfit          float64 `bson:"net_profit" json:"netProfit"`
	GrossMarginPercent float64 `bson:"gross_margin_percent" json:"grossMarginPercent"`
}

// DailyMetric is one row of the revenue-vs-cost time series. Dates are ISO
// "2006-01-02" strings, so lexical order is chronological order.
type DailyMetric struct {
	Date    string  `bson:"date" json:"date"`
	Revenue float64 `bson:"revenue" json:"revenue"`
	Cost    float64 `bson:"cost" json:"cost"`
}

// DailyReport is the payload exported at the end of each day to the
// spreadsheet and the notification webhook.
type DailyReport struct {
	Date      string           `bson:"date" json:"date"`
	Day       DailyMetric      `bson:"day" json:"day"`
	Totals    FinancialSummary `bson:"totals" json:"totals"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
}
