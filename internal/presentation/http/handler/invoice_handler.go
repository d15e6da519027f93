package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medibill/billing-api/internal/application/service"
	"github.com/medibill/billing-api/internal/domain/repository"
	"github.com/medibill/billing-api/internal/presentation/http/dto/request"
	"github.com/medibill/billing-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	exportService  *service.ExportService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, exportService *service.ExportService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		exportService:  exportService,
	}
}

// Preview computes an invoice without saving it
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var req request.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.invoiceService.Preview(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice computed successfully", doc)
}

// Create computes an invoice and appends it to the saved list
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	saved, err := h.invoiceService.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice saved successfully", saved)
}

// List handles listing saved invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &repository.SavedInvoiceFilterParams{
		Pagination: GetPaginationParams(c),
		Search:     c.Query("search"),
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get retrieves a saved invoice with its computed document
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := GetIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	doc, err := h.invoiceService.GetDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", doc)
}

// Delete removes a saved invoice from the list
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := GetIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// Export downloads a saved invoice as a JSON document
func (h *InvoiceHandler) Export(c *gin.Context) {
	id, ok := GetIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	data, filename, err := h.invoiceService.ExportJSON(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// ExportPDF downloads a saved invoice as an A4 tax-invoice PDF
func (h *InvoiceHandler) ExportPDF(c *gin.Context) {
	id, ok := GetIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	doc, err := h.invoiceService.GetDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.exportService.RenderPDF(doc)
	if err != nil {
		response.InternalServerError(c, "Failed to render invoice PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("invoice-%s.pdf", doc.InvoiceNo)))
	c.Data(http.StatusOK, "application/pdf", data)
}
