package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
	"github.com/Jakababa94/mandazi-metrics/internal/store"
)

func newTestService() (*Service, *repository.Sales, *repository.Batches) {
	mem := store.NewMemory()
	salesRepo := repository.NewSales(mem)
	batchesRepo := repository.NewBatches(mem)
	return NewService(salesRepo, batchesRepo, nil), salesRepo, batchesRepo
}

func TestRecordSale_FreezesTotalRevenue(t *testing.T) {
	ctx := context.Background()
	svc, salesRepo, _ := newTestService()

	sale, err := svc.RecordSale(ctx, RecordSaleInput{Date: "2026-08-01", QuantitySold: 10, UnitPrice: 5})
	require.NoError(t, err)

	assert.Equal(t, 50.0, sale.TotalRevenue)
	assert.Regexp(t, `^sale_`, sale.ID)

	loaded, err := salesRepo.Get(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, loaded.TotalRevenue)
}

func TestRecordSale_CompletesReferencedBatch(t *testing.T) {
	ctx := context.Background()
	svc, _, batchesRepo := newTestService()

	batch, err := batchesRepo.Create(ctx, models.Batch{Date: "2026-08-01", TargetYield: 100})
	require.NoError(t, err)
	require.Equal(t, models.BatchPlanned, batch.Status)

	_, err = svc.RecordSale(ctx, RecordSaleInput{BatchID: batch.ID, Date: "2026-08-01", QuantitySold: 10, UnitPrice: 5})
	require.NoError(t, err)

	loaded, err := batchesRepo.Get(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BatchCompleted, loaded.Status)
}

func TestRecordSale_MissingBatchDoesNotFailSale(t *testing.T) {
	ctx := context.Background()
	svc, salesRepo, _ := newTestService()

	sale, err := svc.RecordSale(ctx, RecordSaleInput{BatchID: "batch_gone", Date: "2026-08-01", QuantitySold: 2, UnitPrice: 7})
	require.NoError(t, err)

	loaded, err := salesRepo.Get(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 14.0, loaded.TotalRevenue)
}

func TestRecordSale_AlreadyCompletedBatchIsLeftAlone(t *testing.T) {
	ctx := context.Background()
	svc, _, batchesRepo := newTestService()

	batch, err := batchesRepo.Create(ctx, models.Batch{Date: "2026-08-01", TargetYield: 100, Status: models.BatchCompleted})
	require.NoError(t, err)
	rev := batch.Rev

	_, err = svc.RecordSale(ctx, RecordSaleInput{BatchID: batch.ID, Date: "2026-08-01", QuantitySold: 1, UnitPrice: 5})
	require.NoError(t, err)

	loaded, err := batchesRepo.Get(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, rev, loaded.Rev)
}

func TestRecordSale_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.RecordSale(ctx, RecordSaleInput{Date: "2026-08-01", QuantitySold: 0, UnitPrice: 5})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "quantitySold", validationErr.Field)

	_, err = svc.RecordSale(ctx, RecordSaleInput{Date: "2026-08-01", QuantitySold: 3, UnitPrice: -1})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "unitPrice", validationErr.Field)
}
