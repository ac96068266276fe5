package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
	"github.com/Jakababa94/mandazi-metrics/internal/service/production"
)

// BatchHandler exposes production batches over HTTP. Creation goes through
// the production service so costing runs exactly once.
type BatchHandler struct {
	svc    *production.Service
	repo   *repository.Batches
	logger *zap.Logger
}

// NewBatchHandler constructs the HTTP handler adapter.
func NewBatchHandler(svc *production.Service, repo *repository.Batches, logger *zap.Logger) *BatchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchHandler{svc: svc, repo: repo, logger: logger}
}

type startBatchRequest struct {
	RecipeID    string `json:"recipeId" binding:"required"`
	Date        string `json:"date" binding:"required"`
	TargetYield int    `json:"targetYield" binding:"required,gt=0"`
	Notes       string `json:"notes"`
}

// Create starts a production batch from a recipe.
func (h *BatchHandler) Create(c *gin.Context) {
	var req startBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err)})
		return
	}

	batch, err := h.svc.StartBatch(c.Request.Context(), production.StartBatchInput{
		RecipeID:    req.RecipeID,
		Date:        req.Date,
		TargetYield: req.TargetYield,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

// List returns all batches, newest first.
func (h *BatchHandler) List(c *gin.Context) {
	batches, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

// Get returns one batch by id.
func (h *BatchHandler) Get(c *gin.Context) {
	batch, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// Update applies a manual edit to the batch document: the client sends the
// full document including the revision it read.
func (h *BatchHandler) Update(c *gin.Context) {
	var batch models.Batch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err)})
		return
	}

	batch.ID = c.Param("id")
	batch.Type = models.TypeBatch
	if err := h.svc.UpdateBatch(c.Request.Context(), &batch); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// Delete removes a batch. The current revision comes from the `rev` query
// parameter.
func (h *BatchHandler) Delete(c *gin.Context) {
	batch := models.Batch{
		Doc: models.Doc{ID: c.Param("id"), Rev: c.Query("rev"), Type: models.TypeBatch},
	}
	if err := h.repo.Delete(c.Request.Context(), batch); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
