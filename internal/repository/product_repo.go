package repository

import (
	"strings"

	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByCode(code string) (*model.Product, error)
	Search(term string) ([]model.Product, error)
	LowStock(threshold int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID, hard bool) error
	AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) (int64, error)
	Stats() (*InventoryStats, error)
}

// InventoryStats is the read-side aggregate used by dashboards and reports.
type InventoryStats struct {
	TotalProducts int64   `json:"total_products"`
	LowStockCount int64   `json:"low_stock_count"`
	StockValue    float64 `json:"stock_value"`
}

type productRepo struct {
	db                *gorm.DB
	lowStockThreshold int
}

func NewProductRepo(db *gorm.DB, lowStockThreshold int) ProductRepository {
	return &productRepo{db: db, lowStockThreshold: lowStockThreshold}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Order("name").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Search matches name or code, case-insensitive. An empty term returns the
// full catalog, same as FindAll.
func (r *productRepo) Search(term string) ([]model.Product, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var products []model.Product
	err := r.db.Preload("Category").
		Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern).
		Order("name").
		Find(&products).Error
	return products, err
}

func (r *productRepo) LowStock(threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("quantity <= ?", threshold).
		Order("quantity ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID, hard bool) error {
	if hard {
		return r.db.Unscoped().Delete(&model.Product{}, "id = ?", id).Error
	}
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// AdjustQuantity applies a signed delta inside the caller's transaction.
// Negative deltas carry a quantity guard in the WHERE clause, so the check
// and the decrement are one statement; a zero row count means the guard
// failed (or the product vanished) and the caller must roll back.
func (r *productRepo) AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) (int64, error) {
	q := tx.Model(&model.Product{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("quantity >= ?", -delta)
	}
	res := q.Update("quantity", gorm.Expr("quantity + ?", delta))
	return res.RowsAffected, res.Error
}

func (r *productRepo) Stats() (*InventoryStats, error) {
	var stats InventoryStats
	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Where("quantity <= ?", r.lowStockThreshold).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(quantity * purchase_price), 0)").
		Scan(&stats.StockValue).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
