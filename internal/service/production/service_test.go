package production

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
	"github.com/Jakababa94/mandazi-metrics/internal/store"
)

type fixture struct {
	svc         *Service
	recipes     *repository.Recipes
	ingredients *repository.Ingredients
	batches     *repository.Batches
}

func newFixture() *fixture {
	mem := store.NewMemory()
	f := &fixture{
		recipes:     repository.NewRecipes(mem),
		ingredients: repository.NewIngredients(mem),
		batches:     repository.NewBatches(mem),
	}
	f.svc = NewService(f.recipes, f.ingredients, f.batches, nil)
	return f
}

func (f *fixture) seedRecipe(t *testing.T) *models.Recipe {
	t.Helper()
	ctx := context.Background()

	flour, err := f.ingredients.Create(ctx, models.Ingredient{Name: "Flour", Unit: models.UnitKilogram, CurrentPrice: 50})
	require.NoError(t, err)

	recipe, err := f.recipes.Create(ctx, models.Recipe{
		Name:           "Mandazi",
		ExpectedYield:  100,
		WastagePercent: 5,
		Ingredients: []models.RecipeIngredient{
			{IngredientID: flour.ID, Quantity: 2, Unit: models.UnitKilogram},
		},
	})
	require.NoError(t, err)
	return recipe
}

func TestStartBatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	recipe := f.seedRecipe(t)

	batch, err := f.svc.StartBatch(ctx, StartBatchInput{
		RecipeID:    recipe.ID,
		Date:        "2026-08-01",
		TargetYield: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, models.BatchPlanned, batch.Status)
	assert.Equal(t, recipe.ID, batch.RecipeID)
	assert.InDelta(t, 105.2631578947, batch.TotalCost, 1e-9)
	assert.InDelta(t, 1.052631578947, batch.CostPerUnit, 1e-9)

	loaded, err := f.batches.Get(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, batch.TotalCost, loaded.TotalCost)
}

func TestStartBatch_CostFrozenAgainstLaterPriceChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	recipe := f.seedRecipe(t)

	batch, err := f.svc.StartBatch(ctx, StartBatchInput{RecipeID: recipe.ID, Date: "2026-08-01", TargetYield: 100})
	require.NoError(t, err)
	frozenCost := batch.TotalCost

	ingredients, err := f.ingredients.List(ctx)
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	flour := ingredients[0]
	flour.CurrentPrice = 500
	require.NoError(t, f.ingredients.Update(ctx, &flour))

	loaded, err := f.batches.Get(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, frozenCost, loaded.TotalCost)

	// A new batch picks up the new price.
	fresh, err := f.svc.StartBatch(ctx, StartBatchInput{RecipeID: recipe.ID, Date: "2026-08-02", TargetYield: 100})
	require.NoError(t, err)
	assert.Greater(t, fresh.TotalCost, frozenCost)
}

func TestStartBatch_DeletedIngredientCostsZero(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	recipe := f.seedRecipe(t)

	ingredients, err := f.ingredients.List(ctx)
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	require.NoError(t, f.ingredients.Delete(ctx, ingredients[0]))

	batch, err := f.svc.StartBatch(ctx, StartBatchInput{RecipeID: recipe.ID, Date: "2026-08-01", TargetYield: 100})
	require.NoError(t, err)
	assert.Zero(t, batch.TotalCost)
}

func TestStartBatch_UnknownRecipe(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.StartBatch(ctx, StartBatchInput{RecipeID: "recipe_gone", Date: "2026-08-01", TargetYield: 100})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStartBatch_InvalidYield(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	recipe := f.seedRecipe(t)

	_, err := f.svc.StartBatch(ctx, StartBatchInput{RecipeID: recipe.ID, Date: "2026-08-01", TargetYield: 0})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "targetYield", validationErr.Field)
}

func TestUpdateBatch_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	batch, err := f.batches.Create(ctx, models.Batch{Date: "2026-08-01", TargetYield: 10})
	require.NoError(t, err)

	batch.Status = "abandoned"
	err = f.svc.UpdateBatch(ctx, batch)
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
}
