package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promoter-service/internal/services"
)

// VerifierHandler serves the sale verification desk
type VerifierHandler struct {
	sales *services.SalesService
}

// NewVerifierHandler creates a new VerifierHandler
func NewVerifierHandler(sales *services.SalesService) *VerifierHandler {
	return &VerifierHandler{sales: sales}
}

// ListSales lists sales, optionally filtered by status
// @Summary List sales
// @Tags Verifier
// @Produce json
// @Param status query string false "Pending, Verified or Rejected"
// @Success 200 {array} models.SaleRecord
// @Router /api/v1/verifier/sales [get]
func (h *VerifierHandler) ListSales(c *gin.Context) {
	sales, err := h.sales.ListSales(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// ListPending lists pending sales, newest first
// @Summary List pending sales
// @Tags Verifier
// @Produce json
// @Success 200 {array} models.SaleRecord
// @Router /api/v1/verifier/sales/pending [get]
func (h *VerifierHandler) ListPending(c *gin.Context) {
	sales, err := h.sales.ListPendingSales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// FindByCode looks up pending sales by their unique code
// @Summary Find pending sales by code
// @Tags Verifier
// @Produce json
// @Param code path string true "Unique code"
// @Success 200 {array} models.SaleRecord
// @Router /api/v1/verifier/sales/code/{code} [get]
func (h *VerifierHandler) FindByCode(c *gin.Context) {
	sales, err := h.sales.FindPendingByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// UpdateStatus verifies or rejects a pending sale
// @Summary Verify or reject a sale
// @Tags Verifier
// @Accept json
// @Produce json
// @Param id path string true "Sale ID"
// @Param request body services.UpdateSaleStatusInput true "Decision"
// @Success 200 {object} models.SaleRecord
// @Router /api/v1/verifier/sales/{id}/status [post]
func (h *VerifierHandler) UpdateStatus(c *gin.Context) {
	var input services.UpdateSaleStatusInput
	if !bindJSON(c, &input) {
		return
	}

	sale, err := h.sales.UpdateSaleStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	if sale == nil {
		respondError(c, errSaleNotFound)
		return
	}
	c.JSON(http.StatusOK, sale)
}
