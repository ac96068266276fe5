package models

import "time"

// Unit is the measurement unit an ingredient is priced and dosed in.
// Recipe lines are assumed to use the ingredient's native unit; there is
// no conversion engine.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLitre      Unit = "L"
	UnitMillilitre Unit = "ml"
	UnitPieces     Unit = "pcs"
)

// Valid reports whether the unit is one of the supported values.
func (u Unit) Valid() bool {
	switch u {
	case UnitKilogram, UnitGram, UnitLitre, UnitMillilitre, UnitPieces:
		return true
	}
	return false
}

// Ingredient is a raw material with its current market price per unit.
type Ingredient struct {
	Doc          `bson:",inline"`
	Name         string    `bson:"name" json:"name"`
	Unit         Unit      `bson:"unit" json:"unit"`
	CurrentPrice float64   `bson:"currentPrice" json:"currentPrice"`
	LastUpdated  time.Time `bson:"lastUpdated" json:"lastUpdated"`
}

// RecipeIngredient is one line of a recipe: a weak reference to an
// ingredient plus the quantity needed at the recipe's expected yield.
// The reference may dangle if the ingredient was deleted; costing then
// prices the line at zero.
type RecipeIngredient struct {
	IngredientID string  `bson:"ingredientId" json:"ingredientId"`
	Quantity     float64 `bson:"quantity" json:"quantity"`
	Unit         Unit    `bson:"unit" json:"unit"`
}

// Recipe is a cost template: the ingredient quantities that produce
// ExpectedYield pieces in one standard run.
type Recipe struct {
	Doc            `bson:",inline"`
	Name           string             `bson:"name" json:"name"`
	Date           string             `bson:"date" json:"date"`
	ExpectedYield  int                `bson:"expectedYield" json:"expectedYield"`
	WastagePercent float64            `bson:"wastagePercent" json:"wastagePercent"`
	Ingredients    []RecipeIngredient `bson:"ingredients" json:"ingredients"`
}

// BatchStatus is the production lifecycle state of a batch.
type BatchStatus string

const (
	BatchPlanned    BatchStatus = "planned"
	BatchInProgress BatchStatus = "in-progress"
	BatchCompleted  BatchStatus = "completed"
)

// Valid reports whether the status is one of the lifecycle states.
func (s BatchStatus) Valid() bool {
	switch s {
	case BatchPlanned, BatchInProgress, BatchCompleted:
		return true
	}
	return false
}

// Batch is one production run. TotalCost and CostPerUnit are computed once
// at creation from the recipe snapshot and never recomputed: a batch
// records what production was expected to cost at the time it was planned.
type Batch struct {
	Doc         `bson:",inline"`
	RecipeID    string      `bson:"recipeId,omitempty" json:"recipeId,omitempty"`
	Date        string      `bson:"date" json:"date"`
	TargetYield int         `bson:"targetYield" json:"targetYield"`
	ActualYield int         `bson:"actualYield,omitempty" json:"actualYield,omitempty"`
	TotalCost   float64     `bson:"totalCost" json:"totalCost"`
	CostPerUnit float64     `bson:"costPerUnit" json:"costPerUnit"`
	Status      BatchStatus `bson:"status" json:"status"`
	Notes       string      `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Sale records pieces sold on a date, optionally against the batch they
// came from. TotalRevenue is frozen at creation; sales are immutable
// afterwards except for deletion.
type Sale struct {
	Doc          `bson:",inline"`
	BatchID      string  `bson:"batchId,omitempty" json:"batchId,omitempty"`
	Date         string  `bson:"date" json:"date"`
	QuantitySold int     `bson:"quantitySold" json:"quantitySold"`
	UnitPrice    float64 `bson:"unitPrice" json:"unitPrice"`
	TotalRevenue float64 `bson:"totalRevenue" json:"totalRevenue"`
}

// FixedCost is a recurring overhead (rent, licenses). It is tracked for
// bookkeeping but not yet allocated into batch costing.
type FixedCost struct {
	Doc              `bson:",inline"`
	Name             string  `bson:"name" json:"name"`
	Amount           float64 `bson:"amount" json:"amount"`
	Period           string  `bson:"period" json:"period"`
	AllocationMethod string  `bson:"allocationMethod" json:"allocationMethod"`
}

// User is an operator account. PasswordHash holds a bcrypt digest and is
// never serialized to clients.
type User struct {
	Doc          `bson:",inline"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
