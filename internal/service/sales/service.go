// Package sales records sales and drives the batch auto-completion side
// effect.
package sales

import (
	"context"

	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
)

// Service coordinates sale recording.
type Service struct {
	sales   *repository.Sales
	batches *repository.Batches
	logger  *zap.Logger
}

// NewService wires the sales service.
func NewService(sales *repository.Sales, batches *repository.Batches, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sales: sales, batches: batches, logger: logger}
}

// RecordSaleInput is the caller-supplied portion of a new sale. BatchID is
// optional: a general sale carries no batch reference.
type RecordSaleInput struct {
	BatchID      string
	Date         string
	QuantitySold int
	UnitPrice    float64
}

// RecordSale freezes totalRevenue and persists the sale, then marks the
// referenced batch completed. The completion step is best effort: once the
// sale write has succeeded, nothing that happens to the batch can fail the
// call.
func (s *Service) RecordSale(ctx context.Context, in RecordSaleInput) (*models.Sale, error) {
	if in.QuantitySold <= 0 {
		return nil, &models.ValidationError{Field: "quantitySold", Reason: "must be positive"}
	}
	if in.UnitPrice < 0 {
		return nil, &models.ValidationError{Field: "unitPrice", Reason: "must not be negative"}
	}

	sale, err := s.sales.Create(ctx, models.Sale{
		BatchID:      in.BatchID,
		Date:         in.Date,
		QuantitySold: in.QuantitySold,
		UnitPrice:    in.UnitPrice,
		TotalRevenue: float64(in.QuantitySold) * in.UnitPrice,
	})
	if err != nil {
		return nil, err
	}

	if in.BatchID != "" {
		s.completeBatch(ctx, in.BatchID, sale.ID)
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.Float64("total_revenue", sale.TotalRevenue))
	return sale, nil
}

func (s *Service) completeBatch(ctx context.Context, batchID, saleID string) {
	batch, err := s.batches.Get(ctx, batchID)
	if err != nil {
		s.logger.Warn("sale recorded but batch lookup failed",
			zap.String("sale_id", saleID),
			zap.String("batch_id", batchID),
			zap.Error(err))
		return
	}
	if batch.Status == models.BatchCompleted {
		return
	}

	batch.Status = models.BatchCompleted
	if err := s.batches.Update(ctx, batch); err != nil {
		s.logger.Warn("sale recorded but batch completion failed",
			zap.String("sale_id", saleID),
			zap.String("batch_id", batchID),
			zap.Error(err))
	}
}
