// Package costing turns raw ingredient prices and a recipe's quantities
// into the estimated cost of one production batch. It is pure: no I/O, no
// persistence, invoked exactly once when a batch is started.
package costing

import (
	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
)

// PriceLookup resolves an ingredient id to its current price per unit. The
// boolean reports whether the ingredient could be resolved at all.
type PriceLookup func(ingredientID string) (float64, bool)

// Estimate is the frozen cost result for one batch.
type Estimate struct {
	TotalCost   float64
	CostPerUnit float64
}

// EstimateBatch prices a recipe at the requested yield.
//
// Quantities scale linearly with targetYield/expectedYield, and the raw
// ingredient cost is inflated by 1/(1 - wastage/100) to cover expected
// spoilage. A recipe line whose ingredient cannot be resolved contributes
// zero: a deleted ingredient must never block starting a batch.
func EstimateBatch(recipe models.Recipe, targetYield int, price PriceLookup) (Estimate, error) {
	if targetYield <= 0 {
		return Estimate{}, &models.ValidationError{Field: "targetYield", Reason: "must be positive"}
	}
	if recipe.ExpectedYield <= 0 {
		return Estimate{}, &models.ValidationError{Field: "expectedYield", Reason: "must be positive"}
	}
	// 100% wastage would divide by zero below.
	if recipe.WastagePercent < 0 || recipe.WastagePercent >= 100 {
		return Estimate{}, &models.ValidationError{Field: "wastagePercent", Reason: "must be at least 0 and below 100"}
	}

	scale := float64(targetYield) / float64(recipe.ExpectedYield)

	var rawCost float64
	for _, line := range recipe.Ingredients {
		if line.Quantity < 0 {
			return Estimate{}, &models.ValidationError{Field: "ingredients.quantity", Reason: "must not be negative"}
		}
		unitPrice, ok := price(line.IngredientID)
		if !ok {
			continue
		}
		if unitPrice < 0 {
			return Estimate{}, &models.ValidationError{Field: "currentPrice", Reason: "must not be negative"}
		}
		rawCost += line.Quantity * scale * unitPrice
	}

	wastageMultiplier := 1 / (1 - recipe.WastagePercent/100)
	total := rawCost * wastageMultiplier

	return Estimate{
		TotalCost:   total,
		CostPerUnit: total / float64(targetYield),
	}, nil
}
