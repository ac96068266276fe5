package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
	"github.com/Jakababa94/mandazi-metrics/internal/service/sales"
)

// SaleHandler exposes sale recording and lookup over HTTP.
type SaleHandler struct {
	svc    *sales.Service
	repo   *repository.Sales
	logger *zap.Logger
}

// NewSaleHandler constructs the HTTP handler adapter.
func NewSaleHandler(svc *sales.Service, repo *repository.Sales, logger *zap.Logger) *SaleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleHandler{svc: svc, repo: repo, logger: logger}
}

type recordSaleRequest struct {
	BatchID      string  `json:"batchId"`
	Date         string  `json:"date" binding:"required"`
	QuantitySold int     `json:"quantitySold" binding:"required,gt=0"`
	UnitPrice    float64 `json:"unitPrice" binding:"gte=0"`
}

// Create records a sale and, when it references a batch, completes that
// batch.
func (h *SaleHandler) Create(c *gin.Context) {
	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err)})
		return
	}

	sale, err := h.svc.RecordSale(c.Request.Context(), sales.RecordSaleInput{
		BatchID:      req.BatchID,
		Date:         req.Date,
		QuantitySold: req.QuantitySold,
		UnitPrice:    req.UnitPrice,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// List returns all sales, or the sales of one batch when the `batchId`
// query parameter is present.
func (h *SaleHandler) List(c *gin.Context) {
	var (
		result []models.Sale
		err    error
	)
	if batchID := c.Query("batchId"); batchID != "" {
		result, err = h.repo.ListByBatch(c.Request.Context(), batchID)
	} else {
		result, err = h.repo.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete removes a sale. The current revision comes from the `rev` query
// parameter.
func (h *SaleHandler) Delete(c *gin.Context) {
	sale := models.Sale{
		Doc: models.Doc{ID: c.Param("id"), Rev: c.Query("rev"), Type: models.TypeSale},
	}
	if err := h.repo.Delete(c.Request.Context(), sale); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
