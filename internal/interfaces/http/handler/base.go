package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appcart "github.com/shop/backend/internal/application/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// HandleError converts domain errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(
			dto.ErrCodeValidation,
			validationErr.Message,
			map[string]string{validationErr.Field: validationErr.Message},
		))
		return
	}

	var stockErr *shared.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusUnprocessableEntity,
			dto.NewErrorResponse(dto.ErrCodeInsufficientStock, stockErr.Error()))
		return
	}

	var duplicateErr *catalog.DuplicateProductError
	if errors.As(err, &duplicateErr) {
		c.JSON(http.StatusConflict,
			dto.NewErrorResponse(dto.ErrCodeAlreadyExists, duplicateErr.Error()))
		return
	}

	var addressErr *appcart.AddressVerificationError
	if errors.As(err, &addressErr) {
		if addressErr.IsCallerError() {
			fields := map[string]string{}
			if addressErr.Field != "" {
				fields[addressErr.Field] = addressErr.Message
			}
			c.JSON(http.StatusUnprocessableEntity, dto.NewFieldErrorResponse(
				dto.ErrCodeAddressRejected, addressErr.Message, fields))
			return
		}
		c.JSON(http.StatusBadGateway,
			dto.NewErrorResponse(dto.ErrCodeVerifyUnavailable, addressErr.Message))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, domainErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
}
