package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medibill/billing-api/internal/application/service"
	"github.com/medibill/billing-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles thermal-printer HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns printer connection status
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved successfully", h.printerService.GetStatus())
}

// TestPrint sends a sample receipt to the printer
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	doc, err := h.printerService.TestPrint()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test receipt printed successfully", doc)
}

// PrintInvoice prints a saved invoice as a thermal receipt
func (h *PrinterHandler) PrintInvoice(c *gin.Context) {
	id, ok := GetIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	doc, err := h.printerService.PrintInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice printed successfully", doc)
}
