package metrics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
)

// Service loads the sales and batch collections and applies the pure
// aggregation functions for the dashboard endpoint and the daily report
// job.
type Service struct {
	sales   *repository.Sales
	batches *repository.Batches
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires the metrics service.
func NewService(sales *repository.Sales, batches *repository.Batches, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sales: sales, batches: batches, logger: logger, now: time.Now}
}

// Dashboard is the aggregate payload behind the business overview.
type Dashboard struct {
	Summary models.FinancialSummary `json:"summary"`
	Daily   []models.DailyMetric    `json:"daily"`
}

// Dashboard computes the KPI summary and the daily revenue/cost series.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	sales, batches, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Summary: Summarize(sales, batches),
		Daily:   DailySeries(sales, batches),
	}, nil
}

// DayReport builds the export payload for one calendar date: that day's
// revenue/cost row plus the running totals.
func (s *Service) DayReport(ctx context.Context, date string) (*models.DailyReport, error) {
	sales, batches, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	day := models.DailyMetric{Date: date}
	for _, row := range DailySeries(sales, batches) {
		if row.Date == date {
			day = row
			break
		}
	}

	return &models.DailyReport{
		Date:      date,
		Day:       day,
		Totals:    Summarize(sales, batches),
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *Service) load(ctx context.Context) ([]models.Sale, []models.Batch, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load sales: %w", err)
	}
	batches, err := s.batches.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load batches: %w", err)
	}
	return sales, batches, nil
}
