package service

import (
	"errors"
	"fmt"
	"time"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleLine is one cart entry. Lines for the same product are validated
// against their combined quantity, not individually.
type SaleLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `json:"unit_price" validate:"gte=0"`
}

// LedgerService owns every stock mutation. Each recording operation runs in
// one database transaction covering the sale/purchase row, the quantity
// update and the journal entry; they commit together or not at all.
type LedgerService interface {
	RecordSale(productID uuid.UUID, quantity int, unitPrice float64, userID uuid.UUID) (*model.Sale, error)
	RecordPurchase(productID uuid.UUID, quantity int, supplier string, userID uuid.UUID) (*model.Purchase, error)
	RecordCartSale(lines []SaleLine, userID uuid.UUID) ([]model.Sale, error)

	AllSales() ([]model.Sale, error)
	GetSale(id uuid.UUID) (*model.Sale, error)
	SalesForPeriod(start, end time.Time) ([]model.Sale, error)
	SalesForDay(date time.Time) ([]model.Sale, error)
	SalesForProduct(productID uuid.UUID) ([]model.Sale, error)
	DailyTotal(date time.Time) (float64, error)

	AllPurchases() ([]model.Purchase, error)
	PurchasesForPeriod(start, end time.Time) ([]model.Purchase, error)
	PurchasesForProduct(productID uuid.UUID) ([]model.Purchase, error)

	InventoryStats() (*repository.InventoryStats, error)
}

type ledgerService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	journalRepo  repository.JournalRepository
	wsHub        *ws.Hub
}

func NewLedgerService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	journalRepo repository.JournalRepository,
	hub *ws.Hub,
) LedgerService {
	return &ledgerService{
		db:           db,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		journalRepo:  journalRepo,
		wsHub:        hub,
	}
}

func (s *ledgerService) RecordSale(productID uuid.UUID, quantity int, unitPrice float64, userID uuid.UUID) (*model.Sale, error) {
	if quantity <= 0 {
		return nil, &apperr.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if unitPrice < 0 {
		return nil, &apperr.ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}

	var (
		sale    *model.Sale
		product model.Product
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "product", ID: productID.String()}
			}
			return apperr.Storage("load product", err)
		}
		if product.Quantity < quantity {
			return &apperr.InsufficientStockError{
				ProductID: productID,
				Requested: quantity,
				Available: product.Quantity,
			}
		}

		sale = &model.Sale{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Total:     float64(quantity) * unitPrice,
			UserID:    userID,
		}
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return apperr.Storage("insert sale", err)
		}

		// Conditional decrement: the quantity guard lives in the UPDATE
		// itself, so a concurrent writer cannot slip between the check above
		// and this statement.
		affected, err := s.productRepo.AdjustQuantity(tx, productID, -quantity)
		if err != nil {
			return apperr.Storage("decrement stock", err)
		}
		if affected == 0 {
			return &apperr.InsufficientStockError{
				ProductID: productID,
				Requested: quantity,
				Available: product.Quantity,
			}
		}

		details := fmt.Sprintf("Sale: %s - Qty: %d - Total: %.2f", product.Name, quantity, sale.Total)
		if err := s.journalRepo.Append(tx, model.ActionSale, &userID, details); err != nil {
			return apperr.Storage("append journal", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishStockUpdate("sale_recorded", product.Code, product.Name, product.Quantity-quantity)
	return sale, nil
}

func (s *ledgerService) RecordPurchase(productID uuid.UUID, quantity int, supplier string, userID uuid.UUID) (*model.Purchase, error) {
	if quantity <= 0 {
		return nil, &apperr.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}

	var (
		purchase *model.Purchase
		product  model.Product
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "product", ID: productID.String()}
			}
			return apperr.Storage("load product", err)
		}

		purchase = &model.Purchase{
			ProductID: productID,
			Quantity:  quantity,
			Supplier:  supplier,
			UserID:    userID,
		}
		if err := s.purchaseRepo.Create(tx, purchase); err != nil {
			return apperr.Storage("insert purchase", err)
		}

		// Stock-in has no upper bound.
		if _, err := s.productRepo.AdjustQuantity(tx, productID, quantity); err != nil {
			return apperr.Storage("increment stock", err)
		}

		details := fmt.Sprintf("Purchase: %s - Qty: %d - Supplier: %s", product.Name, quantity, supplier)
		if err := s.journalRepo.Append(tx, model.ActionPurchase, &userID, details); err != nil {
			return apperr.Storage("append journal", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishStockUpdate("purchase_recorded", product.Code, product.Name, product.Quantity+quantity)
	return purchase, nil
}

// RecordCartSale commits the whole cart in one transaction. Requested
// quantities are aggregated per product and checked against a single snapshot,
// so a cart whose combined lines exceed stock fails entirely and no line is
// recorded.
func (s *ledgerService) RecordCartSale(lines []SaleLine, userID uuid.UUID) ([]model.Sale, error) {
	if len(lines) == 0 {
		return nil, &apperr.ValidationError{Field: "lines", Reason: "cart is empty"}
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, &apperr.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
		}
		if line.UnitPrice < 0 {
			return nil, &apperr.ValidationError{Field: "unit_price", Reason: "must not be negative"}
		}
	}

	requested := make(map[uuid.UUID]int)
	for _, line := range lines {
		requested[line.ProductID] += line.Quantity
	}

	var sales []model.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := make(map[uuid.UUID]*model.Product, len(requested))
		for productID, qty := range requested {
			var product model.Product
			if err := tx.First(&product, "id = ?", productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &apperr.NotFoundError{Entity: "product", ID: productID.String()}
				}
				return apperr.Storage("load product", err)
			}
			if product.Quantity < qty {
				return &apperr.InsufficientStockError{
					ProductID: productID,
					Requested: qty,
					Available: product.Quantity,
				}
			}
			products[productID] = &product
		}

		for _, line := range lines {
			product := products[line.ProductID]
			sale := model.Sale{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Total:     float64(line.Quantity) * line.UnitPrice,
				UserID:    userID,
			}
			if err := s.saleRepo.Create(tx, &sale); err != nil {
				return apperr.Storage("insert sale", err)
			}
			details := fmt.Sprintf("Sale: %s - Qty: %d - Total: %.2f", product.Name, line.Quantity, sale.Total)
			if err := s.journalRepo.Append(tx, model.ActionSale, &userID, details); err != nil {
				return apperr.Storage("append journal", err)
			}
			sales = append(sales, sale)
		}

		for productID, qty := range requested {
			affected, err := s.productRepo.AdjustQuantity(tx, productID, -qty)
			if err != nil {
				return apperr.Storage("decrement stock", err)
			}
			if affected == 0 {
				return &apperr.InsufficientStockError{
					ProductID: productID,
					Requested: qty,
					Available: products[productID].Quantity,
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(map[string]interface{}{
		"type":    "stock_update",
		"action":  "cart_recorded",
		"lines":   len(sales),
		"user_id": userID,
	})
	return sales, nil
}

func (s *ledgerService) publishStockUpdate(action, code, name string, newQuantity int) {
	s.wsHub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"product": map[string]interface{}{
			"code":      code,
			"name":      name,
			"new_stock": newQuantity,
		},
	})
}

func (s *ledgerService) AllSales() ([]model.Sale, error) {
	sales, err := s.saleRepo.FindAll()
	return sales, apperr.Storage("list sales", err)
}

func (s *ledgerService) GetSale(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "sale", ID: id.String()}
		}
		return nil, apperr.Storage("load sale", err)
	}
	return sale, nil
}

func (s *ledgerService) SalesForPeriod(start, end time.Time) ([]model.Sale, error) {
	sales, err := s.saleRepo.ForPeriod(start, end)
	return sales, apperr.Storage("list sales", err)
}

func (s *ledgerService) SalesForDay(date time.Time) ([]model.Sale, error) {
	sales, err := s.saleRepo.ForDay(date)
	return sales, apperr.Storage("list sales", err)
}

func (s *ledgerService) SalesForProduct(productID uuid.UUID) ([]model.Sale, error) {
	sales, err := s.saleRepo.ForProduct(productID)
	return sales, apperr.Storage("list sales", err)
}

func (s *ledgerService) DailyTotal(date time.Time) (float64, error) {
	total, err := s.saleRepo.DailyTotal(date)
	return total, apperr.Storage("sum sales", err)
}

func (s *ledgerService) AllPurchases() ([]model.Purchase, error) {
	purchases, err := s.purchaseRepo.FindAll()
	return purchases, apperr.Storage("list purchases", err)
}

func (s *ledgerService) PurchasesForPeriod(start, end time.Time) ([]model.Purchase, error) {
	purchases, err := s.purchaseRepo.ForPeriod(start, end)
	return purchases, apperr.Storage("list purchases", err)
}

func (s *ledgerService) PurchasesForProduct(productID uuid.UUID) ([]model.Purchase, error) {
	purchases, err := s.purchaseRepo.ForProduct(productID)
	return purchases, apperr.Storage("list purchases", err)
}

func (s *ledgerService) InventoryStats() (*repository.InventoryStats, error) {
	stats, err := s.productRepo.Stats()
	if err != nil {
		return nil, apperr.Storage("inventory stats", err)
	}
	return stats, nil
}
