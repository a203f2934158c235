package repositories

import (
	"fmt"
	"sync"
	"time"

	"yaraan/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews map[string]models.Review
	ids     []string
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[string]models.Review),
	}
}

// GetAll returns the reviews matching filter, newest first.
func (r *MockReviewRepository) GetAll(filter models.ReviewFilter, limit int) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ordered := newestFirst(r.ids, func(id string) time.Time { return r.reviews[id].CreatedAt })
	reviewList := make([]models.Review, 0, len(ordered))
	for _, id := range ordered {
		review := r.reviews[id]
		if !filter.Match(review) {
			continue
		}
		reviewList = append(reviewList, review)
		if limit > 0 && len(reviewList) == limit {
			break
		}
	}
	return reviewList, nil
}

// GetByID returns a review by its ID.
func (r *MockReviewRepository) GetByID(id string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review with ID %s %w", id, ErrNotFound)
	}
	return &review, nil
}

// Create adds a new review.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	r.reviews[review.ID] = *review
	r.ids = append(r.ids, review.ID)
	return nil
}

// SetApproval approves or rejects a review.
func (r *MockReviewRepository) SetApproval(id string, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok {
		return fmt.Errorf("review with ID %s %w for update", id, ErrNotFound)
	}
	review.IsApproved = approved
	r.reviews[id] = review
	return nil
}

// Delete removes a review by its ID.
func (r *MockReviewRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return fmt.Errorf("review with ID %s %w for deletion", id, ErrNotFound)
	}
	delete(r.reviews, id)
	r.ids = removeID(r.ids, id)
	return nil
}
