package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xcessv/beefboard/internal/models"
	"github.com/xcessv/beefboard/internal/repositories"
	"github.com/xcessv/beefboard/internal/services"
)

// NewsHandler handles HTTP requests related to news posts and polls
type NewsHandler struct {
	news           *services.NewsService
	userRepository repositories.UserRepository
}

func NewNewsHandler(news *services.NewsService, userRepo repositories.UserRepository) *NewsHandler {
	return &NewsHandler{news: news, userRepository: userRepo}
}

// RegisterNewsRoutes registers news-related routes
func (h *NewsHandler) RegisterNewsRoutes(g *echo.Group) {
	g.POST("/news", h.CreateNews)
	g.GET("/news", h.ListNews)
	g.GET("/news/:news_id", h.GetNews)
	g.POST("/news/:news_id/like", h.ToggleNewsLike)
	g.PUT("/news/:news_id/like", h.SetNewsLike)
	g.POST("/news/:news_id/poll/vote", h.VotePoll)
}

// CreateNews publishes a news post (admin only)
func (h *NewsHandler) CreateNews(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreateNewsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	news, err := h.news.CreateNews(c.Request().Context(), user, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, news)
}

// ListNews returns paginated news posts, newest first
func (h *NewsHandler) ListNews(c echo.Context) error {
	page, limit := pageParams(c, 20)

	items, total, err := h.news.ListNews(c.Request().Context(), page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"news": items},
		"meta":    paginationMeta(page, limit, total),
	})
}

// GetNews returns a single news post
func (h *NewsHandler) GetNews(c echo.Context) error {
	news, err := h.news.GetNews(c.Request().Context(), c.Param("news_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, news)
}

// ToggleNewsLike flips like membership based on current server state
func (h *NewsHandler) ToggleNewsLike(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	news, err := h.news.ToggleNewsLike(c.Request().Context(), c.Param("news_id"), user)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"news": news},
	})
}

// SetNewsLike is the idempotent news-like primitive
func (h *NewsHandler) SetNewsLike(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.SetLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	news, changed, err := h.news.SetNewsLike(c.Request().Context(), c.Param("news_id"), user, req.Liked)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"news": news, "changed": changed},
	})
}

// VotePoll records the user's vote for one poll option
func (h *NewsHandler) VotePoll(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.VotePollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	news, err := h.news.VotePoll(c.Request().Context(), c.Param("news_id"), user, req.OptionIndex)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"news": news},
	})
}
