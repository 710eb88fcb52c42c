package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pitchside/internal/models"

	"gorm.io/gorm"
)

// PredictionRepository defines persistence operations for predictions.
type PredictionRepository interface {
	ListByOwner(ctx context.Context, ownerID uint, matchFilter string, limit, offset int) ([]models.Prediction, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Prediction, error)
	ExistsForOwnerAndMatch(ctx context.Context, ownerID uint, match string) (bool, error)
	Create(ctx context.Context, prediction *models.Prediction) error
	Update(ctx context.Context, prediction *models.Prediction) error
	Delete(ctx context.Context, id uint) error
}

type predictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository returns a new PredictionRepository implementation.
func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

// ListByOwner returns the owner's predictions, newest first, optionally
// narrowed by a case-insensitive substring match on the match field, together
// with the total count before pagination.
func (r *predictionRepository) ListByOwner(ctx context.Context, ownerID uint, matchFilter string, limit, offset int) ([]models.Prediction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Prediction{}).Where("created_by = ?", ownerID)
	if matchFilter != "" {
		like := "%" + strings.ToLower(matchFilter) + "%"
		// "match" is quoted because it collides with the SQL MATCH keyword.
		query = query.Where(`LOWER("match") LIKE ?`, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var predictions []models.Prediction
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&predictions).Error; err != nil {
		return nil, 0, err
	}

	return predictions, total, nil
}

func (r *predictionRepository) GetByID(ctx context.Context, id uint) (*models.Prediction, error) {
	var prediction models.Prediction
	if err := r.db.WithContext(ctx).First(&prediction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("prediction %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &prediction, nil
}

func (r *predictionRepository) ExistsForOwnerAndMatch(ctx context.Context, ownerID uint, match string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Prediction{}).
		Where(`created_by = ? AND "match" = ?`, ownerID, match).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *predictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	if err := r.db.WithContext(ctx).Create(prediction).Error; err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("prediction %q for user %d: %w", prediction.Match, prediction.CreatedBy, ErrDuplicate)
		}
		return err
	}
	return nil
}

// Update replaces the stored document with the given record.
func (r *predictionRepository) Update(ctx context.Context, prediction *models.Prediction) error {
	if err := r.db.WithContext(ctx).Save(prediction).Error; err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("prediction %q for user %d: %w", prediction.Match, prediction.CreatedBy, ErrDuplicate)
		}
		return err
	}
	return nil
}

func (r *predictionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Prediction{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("prediction %d: %w", id, ErrNotFound)
	}
	return nil
}
