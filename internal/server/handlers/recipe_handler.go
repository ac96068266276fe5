package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
)

// RecipeHandler exposes recipe CRUD over HTTP, including the cascading
// delete.
type RecipeHandler struct {
	repo   *repository.Recipes
	logger *zap.Logger
}

// NewRecipeHandler constructs the HTTP handler adapter.
func NewRecipeHandler(repo *repository.Recipes, logger *zap.Logger) *RecipeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeHandler{repo: repo, logger: logger}
}

type recipeLineRequest struct {
	IngredientID string      `json:"ingredientId" binding:"required"`
	Quantity     float64     `json:"quantity" binding:"gte=0"`
	Unit         models.Unit `json:"unit" binding:"required,oneof=kg g L ml pcs"`
}

type recipeRequest struct {
	Name           string              `json:"name" binding:"required"`
	Date           string              `json:"date"`
	ExpectedYield  int                 `json:"expectedYield" binding:"required,gt=0"`
	WastagePercent float64             `json:"wastagePercent" binding:"gte=0,lt=100"`
	Ingredients    []recipeLineRequest `json:"ingredients" binding:"dive"`
	Rev            string              `json:"rev"`
}

func (r recipeRequest) model() models.Recipe {
	lines := make([]models.RecipeIngredient, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		lines = append(lines, models.RecipeIngredient{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
		})
	}
	return models.Recipe{
		Name:           r.Name,
		Date:           r.Date,
		ExpectedYield:  r.ExpectedYield,
		WastagePercent: r.WastagePercent,
		Ingredients:    lines,
	}
}

// Create registers a new recipe.
func (h *RecipeHandler) Create(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err)})
		return
	}

	recipe, err := h.repo.Create(c.Request.Context(), req.model())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// List returns all recipes.
func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Get returns one recipe by id.
func (h *RecipeHandler) Get(c *gin.Context) {
	recipe, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Update rewrites a recipe against the revision the client holds.
func (h *RecipeHandler) Update(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err)})
		return
	}

	recipe := req.model()
	recipe.Doc = models.Doc{ID: c.Param("id"), Rev: req.Rev, Type: models.TypeRecipe}
	if err := h.repo.Update(c.Request.Context(), &recipe); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Delete removes a recipe and cascades to its batches and their sales. The
// current revision comes from the `rev` query parameter.
func (h *RecipeHandler) Delete(c *gin.Context) {
	recipe := models.Recipe{
		Doc: models.Doc{ID: c.Param("id"), Rev: c.Query("rev"), Type: models.TypeRecipe},
	}
	if err := h.repo.Delete(c.Request.Context(), recipe); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
