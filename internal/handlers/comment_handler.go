package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xcessv/beefboard/internal/models"
	"github.com/xcessv/beefboard/internal/repositories"
	"github.com/xcessv/beefboard/internal/services"
)

// CommentHandler exposes the comment tree, like reconciliation and cascade
// delete over HTTP.
type CommentHandler struct {
	comments       *services.CommentService
	userRepository repositories.UserRepository
}

func NewCommentHandler(comments *services.CommentService, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{comments: comments, userRepository: userRepo}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/reviews/:review_id/comments", h.CreateComment)
	g.GET("/reviews/:review_id/comments", h.GetCommentTree)
	g.PUT("/reviews/:review_id/comments/:comment_id/like", h.SetCommentLike)
	g.POST("/reviews/:review_id/comments/:comment_id/like", h.ToggleCommentLike)
	g.DELETE("/reviews/:review_id/comments/:comment_id", h.DeleteComment)
}

// CreateComment adds a comment or reply to a review
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	reviewID := c.Param("review_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.comments.AddComment(c.Request().Context(), reviewID, user, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentTree returns the review's full discussion forest
func (h *CommentHandler) GetCommentTree(c echo.Context) error {
	reviewID := c.Param("review_id")

	tree, err := h.comments.GetCommentTree(c.Request().Context(), reviewID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"comments": tree},
	})
}

// SetCommentLike is the idempotent like primitive: the body declares the
// desired state, so duplicate submissions are harmless.
func (h *CommentHandler) SetCommentLike(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	reviewID := c.Param("review_id")
	commentID := c.Param("comment_id")

	var req models.SetLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comment, changed, err := h.comments.SetCommentLike(c.Request().Context(), reviewID, commentID, user, req.Liked)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"comment": comment, "changed": changed},
	})
}

// ToggleCommentLike flips membership based on current server state and
// returns the authoritative comment so optimistic clients can reconcile.
func (h *CommentHandler) ToggleCommentLike(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	reviewID := c.Param("review_id")
	commentID := c.Param("comment_id")

	comment, err := h.comments.ToggleCommentLike(c.Request().Context(), reviewID, commentID, user)
	if err != nil {
		return httpError(err)
	}

	tree, err := h.comments.GetCommentTree(c.Request().Context(), reviewID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"comment": comment, "comments": tree},
	})
}

// DeleteComment cascade-deletes a comment and its reply subtree
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	reviewID := c.Param("review_id")
	commentID := c.Param("comment_id")

	result, err := h.comments.DeleteComment(c.Request().Context(), reviewID, commentID, user)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    result,
	})
}
