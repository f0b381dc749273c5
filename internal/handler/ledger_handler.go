package handler

import (
	"time"

	"go-shop-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LedgerHandler struct {
	service service.LedgerService
}

func NewLedgerHandler(s service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

type saleRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

type cartRequest struct {
	Lines []service.SaleLine `json:"lines"`
}

type purchaseRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Supplier  string    `json:"supplier"`
}

func (h *LedgerHandler) CreateSale(c *fiber.Ctx) error {
	var req saleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := sessionUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sale, err := h.service.RecordSale(req.ProductID, req.Quantity, req.UnitPrice, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

func (h *LedgerHandler) CreateCartSale(c *fiber.Ctx) error {
	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := sessionUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sales, err := h.service.RecordCartSale(req.Lines, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Cart recorded", "data": sales})
}

func (h *LedgerHandler) CreatePurchase(c *fiber.Ctx) error {
	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := sessionUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	purchase, err := h.service.RecordPurchase(req.ProductID, req.Quantity, req.Supplier, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": purchase})
}

// GetSales lists sales; ?date=YYYY-MM-DD narrows to one day,
// ?product_id= narrows to one product.
func (h *LedgerHandler) GetSales(c *fiber.Ctx) error {
	if raw := c.Query("date"); raw != "" {
		date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
		}
		sales, err := h.service.SalesForDay(date)
		if err != nil {
			return fail(c, err)
		}
		total, err := h.service.DailyTotal(date)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"sales": sales, "total": total})
	}

	if raw := c.Query("product_id"); raw != "" {
		productID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		sales, err := h.service.SalesForProduct(productID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(sales)
	}

	sales, err := h.service.AllSales()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sales)
}

func (h *LedgerHandler) GetSale(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}
	sale, err := h.service.GetSale(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sale)
}

func (h *LedgerHandler) GetPurchases(c *fiber.Ctx) error {
	if raw := c.Query("product_id"); raw != "" {
		productID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		purchases, err := h.service.PurchasesForProduct(productID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(purchases)
	}

	purchases, err := h.service.AllPurchases()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchases)
}

func (h *LedgerHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.InventoryStats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
