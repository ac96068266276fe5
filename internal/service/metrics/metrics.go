// Package metrics rolls sales and batches up into the financial figures
// behind the dashboard and the daily report.
package metrics

import (
	"sort"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
)

// Summarize computes the headline KPIs over all sales and batches. Margin
// is defined as zero when there is no revenue, so an empty period never
// feeds NaN into a chart.
func Summarize(sales []models.Sale, batches []models.Batch) models.FinancialSummary {
	var summary models.FinancialSummary
	for _, sale := range sales {
		summary.TotalRevenue += sale.TotalRevenue
	}
	for _, batch := range batches {
		summary.TotalCost += batch.TotalCost
	}
	summary.NetProfit = summary.TotalRevenue - summary.TotalCost
	if summary.TotalRevenue > 0 {
		summary.GrossMarginPercent = summary.NetProfit / summary.TotalRevenue * 100
	}
	return summary
}

// DailySeries groups revenue and cost by calendar date. Every date seen in
// either collection appears exactly once, zero-filled on the inactive
// side, sorted ascending by the ISO date string.
func DailySeries(sales []models.Sale, batches []models.Batch) []models.DailyMetric {
	byDate := make(map[string]*models.DailyMetric)
	day := func(date string) *models.DailyMetric {
		if row, ok := byDate[date]; ok {
			return row
		}
		row := &models.DailyMetric{Date: date}
		byDate[date] = row
		return row
	}

	for _, sale := range sales {
		day(sale.Date).Revenue += sale.TotalRevenue
	}
	for _, batch := range batches {
		day(batch.Date).Cost += batch.TotalCost
	}

	series := make([]models.DailyMetric, 0, len(byDate))
	for _, row := range byDate {
		series = append(series, *row)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}
