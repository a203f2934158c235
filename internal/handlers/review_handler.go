package handlers

import (
	"errors"
	"fmt"

	"yaraan/internal/models"
	"yaraan/internal/repositories"
	"yaraan/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ReviewHandler handles review submission and moderation.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService, logger *zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With().Str("component", "ReviewHandler").Logger(),
	}
}

// RegisterRoutes registers the storefront review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/", h.HandleListPublic)
	reviewRoutes.Post("/", h.HandleSubmit)
}

// RegisterAdminRoutes registers the moderation routes.
func (h *ReviewHandler) RegisterAdminRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/", h.HandleListForModeration)
	reviewRoutes.Patch("/:id/approval", h.HandleSetApproval)
	reviewRoutes.Delete("/:id", h.HandleDelete)
}

// HandleListPublic returns the latest approved reviews.
func (h *ReviewHandler) HandleListPublic(c *fiber.Ctx) error {
	reviews, err := h.service.ListPublic()
	if err != nil {
		h.logger.Error().Err(err).Msg("Error listing approved reviews")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
		})
	}
	return c.JSON(reviews)
}

// HandleSubmit stores a review for moderation.
func (h *ReviewHandler) HandleSubmit(c *fiber.Ctx) error {
	var req services.SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	review, err := h.service.Submit(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReview) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Please fill in your name and review",
				"error":   err.Error(),
			})
		}
		h.logger.Error().Err(err).Msg("Error submitting review")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to submit review. Please try again.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Thank you for your review! It will appear after approval.",
		"review":  review,
	})
}

// HandleListForModeration lists reviews by filter: all, pending (default) or approved.
func (h *ReviewHandler) HandleListForModeration(c *fiber.Ctx) error {
	filter, err := models.ParseReviewFilter(c.Query("filter"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid review filter",
			"error":   err.Error(),
		})
	}

	reviews, err := h.service.ListForModeration(filter)
	if err != nil {
		h.logger.Error().Err(err).Str("filter", string(filter)).Msg("Error listing reviews")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
		})
	}
	return c.JSON(reviews)
}

// HandleSetApproval approves or un-approves a review.
func (h *ReviewHandler) HandleSetApproval(c *fiber.Ctx) error {
	reviewID := c.Params("id")
	var body struct {
		IsApproved *bool `json:"is_approved"`
	}
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c, err)
	}
	if body.IsApproved == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "is_approved is required",
		})
	}

	review, err := h.service.SetApproval(reviewID, *body.IsApproved)
	if err != nil {
		return h.reviewError(c, reviewID, err, "Failed to update review")
	}

	message := "The review is now hidden from the public."
	if review.IsApproved {
		message = "The review is now visible to the public."
	}
	return c.JSON(fiber.Map{
		"message": message,
		"review":  review,
	})
}

// HandleDelete permanently removes a review.
func (h *ReviewHandler) HandleDelete(c *fiber.Ctx) error {
	reviewID := c.Params("id")
	if err := h.service.DeleteReview(reviewID); err != nil {
		return h.reviewError(c, reviewID, err, "Failed to delete review")
	}
	return c.JSON(fiber.Map{
		"message": "Review has been permanently deleted.",
	})
}

func (h *ReviewHandler) reviewError(c *fiber.Ctx, reviewID string, err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Review with ID %s not found", reviewID),
		})
	}
	h.logger.Error().Err(err).Str("review", reviewID).Msg(message)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
	})
}
