package repository

import (
	"time"

	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(tx *gorm.DB, purchase *model.Purchase) error
	FindByID(id uuid.UUID) (*model.Purchase, error)
	FindAll() ([]model.Purchase, error)
	ForPeriod(start, end time.Time) ([]model.Purchase, error)
	ForProduct(productID uuid.UUID) ([]model.Purchase, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Create(purchase).Error
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Preload("Product").Preload("User").First(&purchase, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) FindAll() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Product").Preload("User").Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) ForPeriod(start, end time.Time) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Product").Preload("User").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) ForProduct(productID uuid.UUID) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Product").Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}
