package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"almacen/internal/core/apperror"
	"almacen/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseIDParam parses a numeric path parameter.
func (h *BaseHandler) ParseIDParam(c *gin.Context, key string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(key), 10, 64)
	if err != nil || id <= 0 {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("param", key))
		return 0, false
	}
	return id, true
}

// ParseIntQuery parses integer query parameter with default value.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, key string, defaultVal int) int {
	val := c.Query(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ParseInt64Query parses an optional int64 query parameter.
// Returns (nil, true) when the parameter is absent.
func (h *BaseHandler) ParseInt64Query(c *gin.Context, key string) (*int64, bool) {
	val := c.Query(key)
	if val == "" {
		return nil, true
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid numeric parameter").WithDetail("param", key))
		return nil, false
	}
	return &parsed, true
}

// ParseDecimalQuery parses an optional decimal query parameter.
// Returns (nil, true) when the parameter is absent.
func (h *BaseHandler) ParseDecimalQuery(c *gin.Context, key string) (*decimal.Decimal, bool) {
	val := c.Query(key)
	if val == "" {
		return nil, true
	}
	parsed, err := decimal.NewFromString(val)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid numeric parameter").WithDetail("param", key))
		return nil, false
	}
	return &parsed, true
}

// StringQuery returns an optional string query parameter.
func (h *BaseHandler) StringQuery(c *gin.Context, key string) *string {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	return &val
}

// Created sends 201 response with ID.
func (h *BaseHandler) Created(c *gin.Context, id int64) {
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Success sends success response.
func (h *BaseHandler) Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: message})
}
