package repository

import (
	"context"
	"fmt"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/store"
)

// Recipes persists recipe documents and owns the cascading delete that
// keeps batches and sales from pointing at a recipe that no longer exists.
type Recipes struct {
	store store.Store
}

// NewRecipes wires a recipe repository over the document store.
func NewRecipes(s store.Store) *Recipes {
	return &Recipes{store: s}
}

// Create persists a new recipe with a generated id.
func (r *Recipes) Create(ctx context.Context, recipe models.Recipe) (*models.Recipe, error) {
	recipe.Doc = models.NewDoc(models.TypeRecipe)
	if _, err := r.store.Put(ctx, &recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return &recipe, nil
}

// List returns every recipe.
func (r *Recipes) List(ctx context.Context) ([]models.Recipe, error) {
	raws, err := r.store.Find(ctx, store.Selector{"type": models.TypeRecipe})
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return decodeAll[models.Recipe](raws)
}

// Get loads one recipe by id.
func (r *Recipes) Get(ctx context.Context, id string) (*models.Recipe, error) {
	raw, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Recipe](raw)
}

// Update writes the recipe back against its held revision. Existing
// batches keep the costs frozen at their creation time.
func (r *Recipes) Update(ctx context.Context, recipe *models.Recipe) error {
	if _, err := r.store.Put(ctx, recipe); err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

// Delete removes the recipe together with every batch produced from it and
// every sale recorded against those batches, in a single bulk write. Any
// failure during the read phase aborts before anything is deleted.
func (r *Recipes) Delete(ctx context.Context, recipe models.Recipe) error {
	if recipe.Rev == "" {
		return fmt.Errorf("delete recipe %s: %w", recipe.ID, store.ErrMissingRevision)
	}

	batchRaws, err := r.store.Find(ctx, store.Selector{
		"type":     models.TypeBatch,
		"recipeId": recipe.ID,
	})
	if err != nil {
		return fmt.Errorf("load dependent batches: %w", err)
	}
	batches, err := decodeAll[models.Batch](batchRaws)
	if err != nil {
		return err
	}

	docs := make([]store.Doc, 0, 1+len(batches))
	docs = append(docs, &recipe)
	batchIDs := make(store.In, 0, len(batches))
	for i := range batches {
		batchIDs = append(batchIDs, batches[i].ID)
		docs = append(docs, &batches[i])
	}

	if len(batchIDs) > 0 {
		saleRaws, err := r.store.Find(ctx, store.Selector{
			"type":    models.TypeSale,
			"batchId": batchIDs,
		})
		if err != nil {
			return fmt.Errorf("load dependent sales: %w", err)
		}
		sales, err := decodeAll[models.Sale](saleRaws)
		if err != nil {
			return err
		}
		for i := range sales {
			docs = append(docs, &sales[i])
		}
	}

	if err := r.store.BulkRemove(ctx, docs); err != nil {
		return fmt.Errorf("cascade delete recipe %s: %w", recipe.ID, err)
	}
	return nil
}
