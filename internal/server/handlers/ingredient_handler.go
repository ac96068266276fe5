package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
)

// IngredientHandler exposes ingredient CRUD over HTTP.
type IngredientHandler struct {
	repo   *repository.Ingredients
	logger *zap.Logger
}

// NewIngredientHandler constructs the HTTP handler adapter.
func NewIngredientHandler(repo *repository.Ingredients, logger *zap.Logger) *IngredientHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngredientHandler{repo: repo, logger: logger}
}

type ingredientRequest struct {
	Name         string      `json:"name" binding:"required"`
	Unit         models.Unit `json:"unit" binding:"required,oneof=kg g L ml pcs"`
	CurrentPrice float64     `json:"currentPrice" binding:"gte=0"`
	Rev          string      `json:"rev"`
}

// Create registers a new ingredient.
func (h *IngredientHandler) Create(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err)})
		return
	}

	ing, err := h.repo.Create(c.Request.Context(), models.Ingredient{
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentPrice: req.CurrentPrice,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, ing)
}

// List returns all ingredients.
func (h *IngredientHandler) List(c *gin.Context) {
	ingredients, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// Get returns one ingredient by id.
func (h *IngredientHandler) Get(c *gin.Context) {
	ing, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

// Update rewrites an ingredient against the revision the client holds.
func (h *IngredientHandler) Update(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err)})
		return
	}

	ing := models.Ingredient{
		Doc:          models.Doc{ID: c.Param("id"), Rev: req.Rev, Type: models.TypeIngredient},
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentPrice: req.CurrentPrice,
	}
	if err := h.repo.Update(c.Request.Context(), &ing); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

// Delete removes an ingredient. The current revision comes from the `rev`
// query parameter.
func (h *IngredientHandler) Delete(c *gin.Context) {
	ing := models.Ingredient{
		Doc: models.Doc{ID: c.Param("id"), Rev: c.Query("rev"), Type: models.TypeIngredient},
	}
	if err := h.repo.Delete(c.Request.Context(), ing); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
