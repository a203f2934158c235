package services

import (
	"errors"
	"fmt"
	"strings"

	"yaraan/internal/metrics"
	"yaraan/internal/models"
	"yaraan/internal/repositories"

	"github.com/rs/zerolog"
)

// PublicReviewLimit is how many approved reviews the storefront shows.
const PublicReviewLimit = 6

// DefaultRating is used when a submission leaves the rating unset.
const DefaultRating = 5

// ErrInvalidReview is returned for a submission missing required content.
var ErrInvalidReview = errors.New("invalid review")

// SubmitReviewRequest is a shopper's review form.
type SubmitReviewRequest struct {
	CustomerName  string `json:"customer_name" validate:"max=100"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email,max=255"`
	Rating        int    `json:"rating" validate:"gte=0,lte=5"`
	ReviewText    string `json:"review_text" validate:"max=2000"`
	PhotoURL      string `json:"photo_url" validate:"omitempty,url"`
	ProductID     string `json:"product_id" validate:"omitempty,max=36"`
}

type reviewEvent struct {
	ReviewID   string `json:"review_id"`
	Rating     int    `json:"rating,omitempty"`
	Action     string `json:"action,omitempty"`
	IsApproved bool   `json:"is_approved"`
}

// ReviewService handles review submission and moderation.
type ReviewService struct {
	repo      repositories.ReviewRepository
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewReviewService creates a new ReviewService. publisher may be nil.
func NewReviewService(repo repositories.ReviewRepository, publisher EventPublisher, m *metrics.Metrics, logger *zerolog.Logger) *ReviewService {
	return &ReviewService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With().Str("component", "ReviewService").Logger(),
	}
}

// Submit stores a new review. It always starts unapproved.
func (s *ReviewService) Submit(req SubmitReviewRequest) (*models.Review, error) {
	name := strings.TrimSpace(req.CustomerName)
	text := strings.TrimSpace(req.ReviewText)
	if name == "" || text == "" {
		return nil, fmt.Errorf("%w: name and review text are required", ErrInvalidReview)
	}

	rating := req.Rating
	if rating == 0 {
		rating = DefaultRating
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5, got %d", ErrInvalidReview, rating)
	}

	review := &models.Review{
		CustomerName:  name,
		CustomerEmail: optional(req.CustomerEmail),
		Rating:        rating,
		ReviewText:    text,
		PhotoURL:      optional(req.PhotoURL),
		ProductID:     optional(req.ProductID),
		IsApproved:    false,
	}
	if err := s.repo.Create(review); err != nil {
		return nil, err
	}

	s.metrics.ReviewSubmissions.Inc()
	s.logger.Info().Str("review", review.ID).Int("rating", review.Rating).Msg("Review submitted for moderation")
	publishEvent(s.publisher, s.logger, EventReviewSubmitted, reviewEvent{ReviewID: review.ID, Rating: review.Rating})
	return review, nil
}

// ListPublic returns the most recent approved reviews.
func (s *ReviewService) ListPublic() ([]models.Review, error) {
	return s.repo.GetAll(models.ReviewFilterApproved, PublicReviewLimit)
}

// ListForModeration returns every review the filter selects, newest first.
func (s *ReviewService) ListForModeration(filter models.ReviewFilter) ([]models.Review, error) {
	return s.repo.GetAll(filter, 0)
}

// SetApproval approves or rejects a review and returns it as re-read from the repository.
func (s *ReviewService) SetApproval(id string, approved bool) (*models.Review, error) {
	if err := s.repo.SetApproval(id, approved); err != nil {
		return nil, err
	}

	action := "reject"
	if approved {
		action = "approve"
	}
	s.metrics.ReviewModerations.WithLabelValues(action).Inc()
	s.logger.Info().Str("review", id).Str("action", action).Msg("Review moderated")
	publishEvent(s.publisher, s.logger, EventReviewModerated, reviewEvent{ReviewID: id, Action: action, IsApproved: approved})

	return s.repo.GetByID(id)
}

// DeleteReview permanently removes a review.
func (s *ReviewService) DeleteReview(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.metrics.ReviewModerations.WithLabelValues("delete").Inc()
	s.logger.Info().Str("review", id).Msg("Review deleted")
	publishEvent(s.publisher, s.logger, EventReviewModerated, reviewEvent{ReviewID: id, Action: "delete"})
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
