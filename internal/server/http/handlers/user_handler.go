package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/flashrescue/internal/server/http/dto"
)

// UserHandler manages profile and stats endpoints.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// UpdateProfile handles PUT /api/user/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed request body"})
		return
	}

	user, err := h.facade.UpdateProfile(c.Request.Context(), CurrentUserID(c), req.Name, CurrentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{
		ID:    user.ID,
		Name:  user.Name,
		Role:  string(user.Role),
		Stats: user.Stats,
	})
}

// MyStats handles GET /api/user/stats.
func (h *UserHandler) MyStats(c *gin.Context) {
	h.writeStats(c, CurrentUserID(c))
}

// Stats handles GET /api/users/:id/stats.
func (h *UserHandler) Stats(c *gin.Context) {
	h.writeStats(c, c.Param("id"))
}

func (h *UserHandler) writeStats(c *gin.Context, userID string) {
	stats, err := h.facade.UserStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{UserID: userID, Stats: stats})
}
