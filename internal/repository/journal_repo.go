package repository

import (
	"time"

	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JournalRepository is insert-only: the audit trail is never updated or
// deleted by the application.
type JournalRepository interface {
	Append(tx *gorm.DB, action string, userID *uuid.UUID, details string) error
	FindAll() ([]model.JournalEntry, error)
	ForPeriod(start, end time.Time) ([]model.JournalEntry, error)
	CountByAction(action string) (int64, error)
}

type journalRepo struct {
	db *gorm.DB
}

func NewJournalRepo(db *gorm.DB) JournalRepository {
	return &journalRepo{db}
}

func (r *journalRepo) Append(tx *gorm.DB, action string, userID *uuid.UUID, details string) error {
	entry := &model.JournalEntry{
		Action:  action,
		UserID:  userID,
		Details: details,
	}
	return tx.Create(entry).Error
}

func (r *journalRepo) FindAll() ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := r.db.Preload("User").Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *journalRepo) ForPeriod(start, end time.Time) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := r.db.Preload("User").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *journalRepo) CountByAction(action string) (int64, error) {
	var count int64
	err := r.db.Model(&model.JournalEntry{}).Where("action = ?", action).Count(&count).Error
	return count, err
}
