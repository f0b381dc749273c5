package handler

import (
	"time"

	"go-shop-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	report, err := h.service.InventoryReport()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// DailySales exports one day's sales; ?date=YYYY-MM-DD, default today.
func (h *ReportHandler) DailySales(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
		}
		date = parsed
	}
	report, err := h.service.DailySalesReport(date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", -1)
	if threshold < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "threshold query parameter is required"})
	}
	report, err := h.service.LowStockReport(threshold)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// Journal exports the audit trail, optionally bounded by ?start= and ?end=
// (YYYY-MM-DD, end exclusive).
func (h *ReportHandler) Journal(c *fiber.Ctx) error {
	var start, end *time.Time
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid start date"})
		}
		start = &parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid end date"})
		}
		end = &parsed
	}
	report, err := h.service.JournalReport(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) SaleReceipt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}
	report, err := h.service.SaleReceipt(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

type cartReceiptRequest struct {
	SaleIDs []uuid.UUID `json:"sale_ids"`
}

func (h *ReportHandler) CartReceipt(c *fiber.Ctx) error {
	var req cartReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	report, err := h.service.CartReceipt(req.SaleIDs)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}
