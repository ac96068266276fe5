package repository

import (
	"context"
	"fmt"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/store"
)

// Sales persists sale documents. Sales carry no Update: once recorded they
// are immutable except for deletion.
type Sales struct {
	store store.Store
}

// NewSales wires a sales repository over the document store.
func NewSales(s store.Store) *Sales {
	return &Sales{store: s}
}

// Create persists a new sale with a generated id.
func (r *Sales) Create(ctx context.Context, sale models.Sale) (*models.Sale, error) {
	sale.Doc = models.NewDoc(models.TypeSale)
	if _, err := r.store.Put(ctx, &sale); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	return &sale, nil
}

// List returns every sale, newest ids first.
func (r *Sales) List(ctx context.Context) ([]models.Sale, error) {
	raws, err := r.store.Find(ctx,
		store.Selector{"type": models.TypeSale},
		store.SortField{Field: "_id", Desc: true})
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return decodeAll[models.Sale](raws)
}

// ListByBatch returns the sales recorded against one batch.
func (r *Sales) ListByBatch(ctx context.Context, batchID string) ([]models.Sale, error) {
	raws, err := r.store.Find(ctx, store.Selector{
		"type":    models.TypeSale,
		"batchId": batchID,
	})
	if err != nil {
		return nil, fmt.Errorf("list sales for batch %s: %w", batchID, err)
	}
	return decodeAll[models.Sale](raws)
}

// Get loads one sale by id.
func (r *Sales) Get(ctx context.Context, id string) (*models.Sale, error) {
	raw, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Sale](raw)
}

// Delete removes the sale; the caller must hold its current revision.
func (r *Sales) Delete(ctx context.Context, sale models.Sale) error {
	return r.store.Remove(ctx, sale.ID, sale.Rev)
}
