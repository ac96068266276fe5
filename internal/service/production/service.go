// Package production owns the batch lifecycle: starting a batch from a
// recipe snapshot and the status transitions that follow.
package production

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
	"github.com/Jakababa94/mandazi-metrics/internal/service/costing"
)

// Service coordinates batch creation and updates.
type Service struct {
	recipes     *repository.Recipes
	ingredients *repository.Ingredients
	batches     *repository.Batches
	logger      *zap.Logger
}

// NewService wires the production service.
func NewService(recipes *repository.Recipes, ingredients *repository.Ingredients, batches *repository.Batches, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{recipes: recipes, ingredients: ingredients, batches: batches, logger: logger}
}

// StartBatchInput is the caller-supplied portion of a new batch.
type StartBatchInput struct {
	RecipeID    string
	Date        string
	TargetYield int
	Notes       string
}

// StartBatch prices the recipe at the requested yield using today's
// ingredient prices and persists the batch as planned. The cost fields are
// frozen here: later price or recipe edits never touch an existing batch.
func (s *Service) StartBatch(ctx context.Context, in StartBatchInput) (*models.Batch, error) {
	recipe, err := s.recipes.Get(ctx, in.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("load recipe: %w", err)
	}

	ingredients, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ingredient prices: %w", err)
	}
	prices := make(map[string]float64, len(ingredients))
	for _, ing := range ingredients {
		prices[ing.ID] = ing.CurrentPrice
	}

	estimate, err := costing.EstimateBatch(*recipe, in.TargetYield, func(id string) (float64, bool) {
		p, ok := prices[id]
		return p, ok
	})
	if err != nil {
		return nil, err
	}

	batch, err := s.batches.Create(ctx, models.Batch{
		RecipeID:    recipe.ID,
		Date:        in.Date,
		TargetYield: in.TargetYield,
		TotalCost:   estimate.TotalCost,
		CostPerUnit: estimate.CostPerUnit,
		Notes:       in.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("batch started",
		zap.String("batch_id", batch.ID),
		zap.String("recipe_id", recipe.ID),
		zap.Int("target_yield", batch.TargetYield),
		zap.Float64("total_cost", batch.TotalCost))
	return batch, nil
}

// UpdateBatch applies a manual edit (status, notes) against the held
// revision. Status values outside the lifecycle are rejected.
func (s *Service) UpdateBatch(ctx context.Context, batch *models.Batch) error {
	if !batch.Status.Valid() {
		return &models.ValidationError{Field: "status", Reason: "unknown lifecycle state"}
	}
	return s.batches.Update(ctx, batch)
}
