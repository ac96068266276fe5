package repository

import (
	"context"
	"fmt"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/store"
)

// FixedCosts persists recurring overhead documents.
type FixedCosts struct {
	store store.Store
}

// NewFixedCosts wires a fixed-cost repository over the document store.
func NewFixedCosts(s store.Store) *FixedCosts {
	return &FixedCosts{store: s}
}

// Create persists a new fixed cost with a generated id.
func (r *FixedCosts) Create(ctx context.Context, fc models.FixedCost) (*models.FixedCost, error) {
	fc.Doc = models.NewDoc(models.TypeFixedCost)
	if _, err := r.store.Put(ctx, &fc); err != nil {
		return nil, fmt.Errorf("create fixed cost: %w", err)
	}
	return &fc, nil
}

// List returns every fixed cost.
func (r *FixedCosts) List(ctx context.Context) ([]models.FixedCost, error) {
	raws, err := r.store.Find(ctx, store.Selector{"type": models.TypeFixedCost})
	if err != nil {
		return nil, fmt.Errorf("list fixed costs: %w", err)
	}
	return decodeAll[models.FixedCost](raws)
}

// Get loads one fixed cost by id.
func (r *FixedCosts) Get(ctx context.Context, id string) (*models.FixedCost, error) {
	raw, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.FixedCost](raw)
}

// Update writes the fixed cost back against its held revision.
func (r *FixedCosts) Update(ctx context.Context, fc *models.FixedCost) error {
	if _, err := r.store.Put(ctx, fc); err != nil {
		return fmt.Errorf("update fixed cost: %w", err)
	}
	return nil
}

// Delete removes the fixed cost; the caller must hold its current revision.
func (r *FixedCosts) Delete(ctx context.Context, fc models.FixedCost) error {
	return r.store.Remove(ctx, fc.ID, fc.Rev)
}
