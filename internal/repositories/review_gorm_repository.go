package repositories

import (
	"errors"
	"fmt"

	"yaraan/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// GetAll retrieves reviews matching filter, newest first.
func (r *GORMReviewRepository) GetAll(filter models.ReviewFilter, limit int) ([]models.Review, error) {
	query := r.db.Order("created_at DESC")
	if approved := filter.ApprovalFlag(); approved != nil {
		query = query.Where("is_approved = ?", *approved)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get %s reviews: %w", filter, err)
	}
	return reviews, nil
}

// GetByID retrieves a single review by its ID from the database.
func (r *GORMReviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review by ID %s: %w", id, err)
	}
	return &review, nil
}

// Create creates a new review in the database.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// SetApproval approves or rejects a review.
func (r *GORMReviewRepository) SetApproval(id string, approved bool) error {
	res := r.db.Model(&models.Review{}).Where("id = ?", id).Update("is_approved", approved)
	if res.Error != nil {
		return fmt.Errorf("failed to update review approval: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %s %w for update", id, ErrNotFound)
	}
	return nil
}

// Delete permanently removes a review.
func (r *GORMReviewRepository) Delete(id string) error {
	res := r.db.Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %s %w for deletion", id, ErrNotFound)
	}
	return nil
}
