package services

import (
	"context"
	"fmt"

	"iqr-control-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 100
)

// RecordActivity appends one audit row. Callers pass their transaction so the
// activity commits or rolls back with the change it describes.
func RecordActivity(tx *gorm.DB, kind, description string, relatedID *uuid.UUID) error {
	activity := models.Activity{
		Type:        kind,
		Description: description,
		RelatedID:   relatedID,
	}
	if err := tx.Create(&activity).Error; err != nil {
		return fmt.Errorf("record activity %s: %w", kind, err)
	}
	return nil
}

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Recent returns the newest activities first
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	var activities []models.Activity
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

func ptr[T any](v T) *T {
	return &v
}
