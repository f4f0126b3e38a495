package improvements

import (
	"context"
	"errors"
	"strings"

	"polypoint-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service holds the record store for the idea tracker.
type Service struct {
	DB *gorm.DB
}

// List returns all improvements, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Improvement, error) {
	var items []domain.Improvement
	if err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an improvement. The idea text is required; an ID is
// generated when the client did not send one.
func (s *Service) Save(ctx context.Context, item domain.Improvement) (*domain.Improvement, error) {
	if strings.TrimSpace(item.Idea) == "" {
		return nil, errors.New("Idea is required")
	}
	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an improvement by ID; unknown IDs are a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Improvement{}).Error
}
