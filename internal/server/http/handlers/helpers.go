package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/server/http/dto"
	"github.com/polkiloo/flashrescue/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// CurrentRole extracts authenticated user role from context.
func CurrentRole(c *gin.Context) model.Role {
	val, ok := c.Get(middleware.RoleContextKey)
	if !ok {
		return ""
	}
	role, _ := val.(model.Role)
	return role
}

func respondError(c *gin.Context, err error) {
	var validation *domainErrors.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: validation.Error()})
	case errors.Is(err, domainErrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request"})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "not found"})
	case errors.Is(err, domainErrors.ErrInvalidState):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: "already claimed or unavailable"})
	case errors.Is(err, domainErrors.ErrEmptyResult):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "no active listings found to collect"})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal error"})
	}
}
