package repository

import (
	"context"
	"fmt"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/store"
)

// Batches persists production batch documents.
type Batches struct {
	store store.Store
}

// NewBatches wires a batch repository over the document store.
func NewBatches(s store.Store) *Batches {
	return &Batches{store: s}
}

// Create persists a new batch, defaulting the status to planned.
func (r *Batches) Create(ctx context.Context, batch models.Batch) (*models.Batch, error) {
	batch.Doc = models.NewDoc(models.TypeBatch)
	if batch.Status == "" {
		batch.Status = models.BatchPlanned
	}
	if _, err := r.store.Put(ctx, &batch); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}
	return &batch, nil
}

// List returns every batch, newest ids first.
func (r *Batches) List(ctx context.Context) ([]models.Batch, error) {
	raws, err := r.store.Find(ctx,
		store.Selector{"type": models.TypeBatch},
		store.SortField{Field: "_id", Desc: true})
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return decodeAll[models.Batch](raws)
}

// Get loads one batch by id.
func (r *Batches) Get(ctx context.Context, id string) (*models.Batch, error) {
	raw, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Batch](raw)
}

// Update writes the batch back against its held revision.
func (r *Batches) Update(ctx context.Context, batch *models.Batch) error {
	if _, err := r.store.Put(ctx, batch); err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// Delete removes the batch; the caller must hold its current revision.
func (r *Batches) Delete(ctx context.Context, batch models.Batch) error {
	return r.store.Remove(ctx, batch.ID, batch.Rev)
}
