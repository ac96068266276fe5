package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/store"
)

// Ingredients persists ingredient documents.
type Ingredients struct {
	store store.Store
	now   func() time.Time
}

// NewIngredients wires an ingredient repository over the document store.
func NewIngredients(s store.Store) *Ingredients {
	return &Ingredients{store: s, now: time.Now}
}

// Create persists a new ingredient, generating its id and stamping
// lastUpdated.
func (r *Ingredients) Create(ctx context.Context, ing models.Ingredient) (*models.Ingredient, error) {
	ing.Doc = models.NewDoc(models.TypeIngredient)
	ing.LastUpdated = r.now().UTC()
	if _, err := r.store.Put(ctx, &ing); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return &ing, nil
}

// List returns every ingredient.
func (r *Ingredients) List(ctx context.Context) ([]models.Ingredient, error) {
	raws, err := r.store.Find(ctx, store.Selector{"type": models.TypeIngredient})
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return decodeAll[models.Ingredient](raws)
}

// Get loads one ingredient by id.
func (r *Ingredients) Get(ctx context.Context, id string) (*models.Ingredient, error) {
	raw, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Ingredient](raw)
}

// Update writes the ingredient back against its held revision. lastUpdated
// is always refreshed, whatever fields changed.
func (r *Ingredients) Update(ctx context.Context, ing *models.Ingredient) error {
	ing.LastUpdated = r.now().UTC()
	if _, err := r.store.Put(ctx, ing); err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

// Delete removes the ingredient; the caller must hold its current revision.
// Recipes referencing it keep their dangling line and cost it at zero.
func (r *Ingredients) Delete(ctx context.Context, ing models.Ingredient) error {
	return r.store.Remove(ctx, ing.ID, ing.Rev)
}
