package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xcessv/beefboard/internal/services"
)

// ActivityHandler serves the global activity feed
type ActivityHandler struct {
	activities *services.ActivityService
}

func NewActivityHandler(activities *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// RegisterActivityRoutes registers activity feed routes
func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/activities", h.GetFeed)
}

// GetFeed returns the paginated activity feed, newest first. Target fields
// are denormalized snapshots; entries may reference content that has since
// been deleted and clients must tolerate that.
func (h *ActivityHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := pageParams(c, 20)

	activities, total, err := h.activities.List(c.Request().Context(), page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"activities": activities},
		"meta":    paginationMeta(page, limit, total),
	})
}
