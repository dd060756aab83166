package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xcessv/beefboard/internal/models"
	"github.com/xcessv/beefboard/internal/repositories"
	"github.com/xcessv/beefboard/internal/services"
)

// ReviewHandler handles HTTP requests related to reviews
type ReviewHandler struct {
	reviews        *services.ReviewService
	userRepository repositories.UserRepository
}

func NewReviewHandler(reviews *services.ReviewService, userRepo repositories.UserRepository) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, userRepository: userRepo}
}

// RegisterReviewRoutes registers review-related routes
func (h *ReviewHandler) RegisterReviewRoutes(g *echo.Group) {
	g.POST("/reviews", h.CreateReview)
	g.GET("/reviews", h.ListReviews)
	g.GET("/reviews/:review_id", h.GetReview)
	g.DELETE("/reviews/:review_id", h.DeleteReview)
	g.PUT("/reviews/:review_id/like", h.SetReviewLike)
	g.POST("/reviews/:review_id/like", h.ToggleReviewLike)
}

// CreateReview creates a new beefery review
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.reviews.CreateReview(c.Request().Context(), user, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, review)
}

// ListReviews returns paginated reviews, newest first
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	page, limit := pageParams(c, 20)

	reviews, total, err := h.reviews.ListReviews(c.Request().Context(), page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"reviews": reviews},
		"meta":    paginationMeta(page, limit, total),
	})
}

// GetReview returns a single review
func (h *ReviewHandler) GetReview(c echo.Context) error {
	review, err := h.reviews.GetReview(c.Request().Context(), c.Param("review_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, review)
}

// DeleteReview removes a review, its comment tree and dependent records
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	if err := h.reviews.DeleteReview(c.Request().Context(), c.Param("review_id"), user); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetReviewLike is the idempotent review-like primitive
func (h *ReviewHandler) SetReviewLike(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.SetLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	review, changed, err := h.reviews.SetReviewLike(c.Request().Context(), c.Param("review_id"), user, req.Liked)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"review": review, "changed": changed},
	})
}

// ToggleReviewLike flips like membership based on current server state
func (h *ReviewHandler) ToggleReviewLike(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	review, err := h.reviews.ToggleReviewLike(c.Request().Context(), c.Param("review_id"), user)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"review": review},
	})
}
