package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
)

func sale(date string, revenue float64) models.Sale {
	return models.Sale{Date: date, TotalRevenue: revenue}
}

func batch(date string, cost float64) models.Batch {
	return models.Batch{Date: date, TotalCost: cost}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(
		[]models.Sale{sale("2026-08-01", 120), sale("2026-08-02", 80)},
		[]models.Batch{batch("2026-08-01", 50), batch("2026-08-03", 30)},
	)

	assert.Equal(t, 200.0, summary.TotalRevenue)
	assert.Equal(t, 80.0, summary.TotalCost)
	assert.Equal(t, summary.TotalRevenue-summary.TotalCost, summary.NetProfit)
	assert.InDelta(t, 60.0, summary.GrossMarginPercent, 1e-9)
}

func TestSummarize_NoRevenueMeansZeroMargin(t *testing.T) {
	summary := Summarize(nil, []models.Batch{batch("2026-08-01", 75)})

	assert.Zero(t, summary.TotalRevenue)
	assert.Equal(t, -75.0, summary.NetProfit)
	// Defined as 0 rather than NaN so an empty period charts cleanly.
	assert.Zero(t, summary.GrossMarginPercent)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, nil)
	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.TotalCost)
	assert.Zero(t, summary.NetProfit)
	assert.Zero(t, summary.GrossMarginPercent)
}

func TestDailySeries(t *testing.T) {
	series := DailySeries(
		[]models.Sale{
			sale("2026-08-03", 40),
			sale("2026-08-01", 100),
			sale("2026-08-01", 20),
		},
		[]models.Batch{
			batch("2026-08-02", 35),
			batch("2026-08-01", 60),
		},
	)

	require.Equal(t, []models.DailyMetric{
		{Date: "2026-08-01", Revenue: 120, Cost: 60},
		{Date: "2026-08-02", Revenue: 0, Cost: 35},
		{Date: "2026-08-03", Revenue: 40, Cost: 0},
	}, series)
}

func TestDailySeries_EveryDateAppearsOnce(t *testing.T) {
	series := DailySeries(
		[]models.Sale{sale("2026-08-05", 10), sale("2026-08-05", 15)},
		[]models.Batch{batch("2026-08-05", 9), batch("2026-08-04", 3)},
	)

	seen := make(map[string]int)
	for _, row := range series {
		seen[row.Date]++
	}
	for date, count := range seen {
		assert.Equal(t, 1, count, "date %s", date)
	}

	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].Date, series[i].Date)
	}
}

func TestDailySeries_Empty(t *testing.T) {
	assert.Empty(t, DailySeries(nil, nil))
}
