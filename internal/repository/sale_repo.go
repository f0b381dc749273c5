package repository

import (
	"time"

	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindByIDs(ids []uuid.UUID) ([]model.Sale, error)
	FindAll() ([]model.Sale, error)
	ForPeriod(start, end time.Time) ([]model.Sale, error)
	ForDay(date time.Time) ([]model.Sale, error)
	ForProduct(productID uuid.UUID) ([]model.Sale, error)
	DailyTotal(date time.Time) (float64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// dayBounds returns the local midnight-to-midnight window for date.
func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Product").Preload("User").First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByIDs(ids []uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").Preload("User").
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").Preload("User").Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ForPeriod(start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").Preload("User").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ForDay(date time.Time) ([]model.Sale, error) {
	start, end := dayBounds(date)
	return r.ForPeriod(start, end)
}

func (r *saleRepo) ForProduct(productID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

// DailyTotal returns 0 (not an error) when the day has no sales.
func (r *saleRepo) DailyTotal(date time.Time) (float64, error) {
	start, end := dayBounds(date)
	var total float64
	err := r.db.Model(&model.Sale{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}
