package repositories

import (
	"yaraan/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// GetAll returns the reviews selected by filter, newest first.
	// A positive limit caps the result size.
	GetAll(filter models.ReviewFilter, limit int) ([]models.Review, error)
	GetByID(id string) (*models.Review, error)
	Create(review *models.Review) error
	SetApproval(id string, approved bool) error
	Delete(id string) error
}
