package service

import (
	"errors"
	"time"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/ws"
	"go-shop-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product delete policies.
const (
	DeletePolicyRestrict = "restrict"
	DeletePolicySoft     = "soft"
	DeletePolicyHard     = "hard"
)

type ProductRequest struct {
	Name          string     `json:"name" validate:"required"`
	Code          string     `json:"code" validate:"required"`
	PurchasePrice float64    `json:"purchase_price" validate:"gte=0"`
	SalePrice     float64    `json:"sale_price" validate:"gte=0"`
	Quantity      int        `json:"quantity" validate:"gte=0"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
}

type CatalogService interface {
	CreateProduct(req *ProductRequest) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductRequest) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListProducts() ([]model.Product, error)
	Search(term string) ([]model.Product, error)
	LowStock(threshold int) ([]model.Product, error)

	CreateCategory(name string) (*model.Category, error)
	RenameCategory(id uuid.UUID, name string) error
	DeleteCategory(id uuid.UUID) error
	ListCategories() ([]model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)
}

type catalogService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	deletePolicy string
	wsHub        *ws.Hub
}

func NewCatalogService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	deletePolicy string,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		db:           db,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		deletePolicy: deletePolicy,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateProduct(req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &apperr.ValidationError{Field: errs[0].FailedField, Reason: validator.Message(errs)}
	}

	// Uniqueness check before hitting the unique index, so the caller gets a
	// ValidationError instead of a driver-specific constraint failure.
	if existing, err := s.productRepo.FindByCode(req.Code); err == nil && existing != nil {
		return nil, &apperr.ValidationError{Field: "code", Reason: "code already exists"}
	}

	product := &model.Product{
		Name:          req.Name,
		Code:          req.Code,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		Quantity:      req.Quantity,
		CategoryID:    req.CategoryID,
		ExpiryDate:    req.ExpiryDate,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, apperr.Storage("create product", err)
	}

	s.wsHub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":    product.ID,
			"code":  product.Code,
			"name":  product.Name,
			"stock": product.Quantity,
		},
	})
	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &apperr.ValidationError{Field: errs[0].FailedField, Reason: validator.Message(errs)}
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "product", ID: id.String()}
		}
		return nil, apperr.Storage("load product", err)
	}

	if req.Code != existing.Code {
		if other, err := s.productRepo.FindByCode(req.Code); err == nil && other != nil {
			return nil, &apperr.ValidationError{Field: "code", Reason: "code already exists"}
		}
	}

	existing.Name = req.Name
	existing.Code = req.Code
	existing.PurchasePrice = req.PurchasePrice
	existing.SalePrice = req.SalePrice
	existing.Quantity = req.Quantity
	existing.CategoryID = req.CategoryID
	existing.ExpiryDate = req.ExpiryDate
	existing.Category = nil

	if err := s.productRepo.Update(existing); err != nil {
		return nil, apperr.Storage("update product", err)
	}

	s.wsHub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_updated",
		"product": map[string]interface{}{
			"id":    existing.ID,
			"code":  existing.Code,
			"name":  existing.Name,
			"stock": existing.Quantity,
		},
	})
	return existing, nil
}

// DeleteProduct honors the configured policy: "restrict" refuses when ledger
// history references the product, "soft" hides the row (history keeps
// resolving), "hard" removes it like the legacy behavior.
func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperr.NotFoundError{Entity: "product", ID: id.String()}
		}
		return apperr.Storage("load product", err)
	}

	if s.deletePolicy == DeletePolicyRestrict {
		var refs int64
		if err := s.db.Model(&model.Sale{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
			return apperr.Storage("count sales", err)
		}
		if refs == 0 {
			if err := s.db.Model(&model.Purchase{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
				return apperr.Storage("count purchases", err)
			}
		}
		if refs > 0 {
			return &apperr.ValidationError{Field: "id", Reason: "product has recorded sales or purchases"}
		}
	}

	if err := s.productRepo.Delete(id, s.deletePolicy == DeletePolicyHard); err != nil {
		return apperr.Storage("delete product", err)
	}
	return nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "product", ID: id.String()}
		}
		return nil, apperr.Storage("load product", err)
	}
	return product, nil
}

func (s *catalogService) ListProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	return products, apperr.Storage("list products", err)
}

// Search returns an empty slice, not an error, when nothing matches.
func (s *catalogService) Search(term string) ([]model.Product, error) {
	products, err := s.productRepo.Search(term)
	if err != nil {
		return nil, apperr.Storage("search products", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (s *catalogService) LowStock(threshold int) ([]model.Product, error) {
	products, err := s.productRepo.LowStock(threshold)
	return products, apperr.Storage("low stock query", err)
}

func (s *catalogService) CreateCategory(name string) (*model.Category, error) {
	if name == "" {
		return nil, &apperr.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, apperr.Storage("create category", err)
	}
	return category, nil
}

func (s *catalogService) RenameCategory(id uuid.UUID, name string) error {
	if name == "" {
		return &apperr.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	affected, err := s.categoryRepo.Rename(id, name)
	if err != nil {
		return apperr.Storage("rename category", err)
	}
	if affected == 0 {
		return &apperr.NotFoundError{Entity: "category", ID: id.String()}
	}
	return nil
}

func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperr.NotFoundError{Entity: "category", ID: id.String()}
		}
		return apperr.Storage("load category", err)
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return apperr.Storage("delete category", err)
	}
	return nil
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll()
	return categories, apperr.Storage("list categories", err)
}

func (s *catalogService) GetCategory(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "category", ID: id.String()}
		}
		return nil, apperr.Storage("load category", err)
	}
	return category, nil
}
