package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
)

// FixedCostHandler exposes recurring-overhead CRUD over HTTP.
type FixedCostHandler struct {
	repo   *repository.FixedCosts
	logger *zap.Logger
}

// NewFixedCostHandler constructs the HTTP handler adapter.
func NewFixedCostHandler(repo *repository.FixedCosts, logger *zap.Logger) *FixedCostHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FixedCostHandler{repo: repo, logger: logger}
}

type fixedCostRequest struct {
	Name             string  `json:"name" binding:"required"`
	Amount           float64 `json:"amount" binding:"gte=0"`
	Period           string  `json:"period" binding:"required,oneof=monthly weekly"`
	AllocationMethod string  `json:"allocationMethod" binding:"required,oneof=per_batch production_hours"`
	Rev              string  `json:"rev"`
}

// Create registers a new fixed cost.
func (h *FixedCostHandler) Create(c *gin.Context) {
	var req fixedCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err)})
		return
	}

	fc, err := h.repo.Create(c.Request.Context(), models.FixedCost{
		Name:             req.Name,
		Amount:           req.Amount,
		Period:           req.Period,
		AllocationMethod: req.AllocationMethod,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, fc)
}

// List returns all fixed costs.
func (h *FixedCostHandler) List(c *gin.Context) {
	costs, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, costs)
}

// Update rewrites a fixed cost against the revision the client holds.
func (h *FixedCostHandler) Update(c *gin.Context) {
	var req fixedCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err)})
		return
	}

	fc := models.FixedCost{
		Doc:              models.Doc{ID: c.Param("id"), Rev: req.Rev, Type: models.TypeFixedCost},
		Name:             req.Name,
		Amount:           req.Amount,
		Period:           req.Period,
		AllocationMethod: req.AllocationMethod,
	}
	if err := h.repo.Update(c.Request.Context(), &fc); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// Delete removes a fixed cost. The current revision comes from the `rev`
// query parameter.
func (h *FixedCostHandler) Delete(c *gin.Context) {
	fc := models.FixedCost{
		Doc: models.Doc{ID: c.Param("id"), Rev: c.Query("rev"), Type: models.TypeFixedCost},
	}
	if err := h.repo.Delete(c.Request.Context(), fc); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
