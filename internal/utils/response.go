// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/storedash/backend/internal/apperrors"
	"github.com/storedash/backend/internal/authz"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func SuccessResponseWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = "Invalid request"
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", errors)
}

// RespondError translates a service error into the caller-facing envelope.
// Transaction failures are logged with their cause and surfaced generically;
// every other AppError carries a message meant for the UI.
func RespondError(c *gin.Context, err error) {
	var txErr *apperrors.TransactionFailureError
	if errors.As(err, &txErr) {
		logrus.WithError(txErr.Err).WithField("op", txErr.Op).Error("Store transaction failed")
		ErrorResponse(c, txErr.HTTPStatus(), txErr.Code(), "A storage error occurred, please try again", nil)
		return
	}

	var appErr apperrors.AppError
	if errors.As(err, &appErr) {
		ErrorResponse(c, appErr.HTTPStatus(), appErr.Code(), appErr.Error(), nil)
		return
	}

	logrus.WithError(err).Error("Unhandled error")
	InternalErrorResponse(c, "")
}

func PaginatedResponse(c *gin.Context, result PaginationResult) {
	SetPaginationHeaders(c, result)
	SuccessResponseWithMeta(c, result.Data, gin.H{
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

const principalContextKey = "principal"

func SetPrincipal(c *gin.Context, p authz.Principal) {
	c.Set(principalContextKey, p)
}

func GetPrincipal(c *gin.Context) (authz.Principal, bool) {
	if v, exists := c.Get(principalContextKey); exists {
		if p, ok := v.(authz.Principal); ok {
			return p, true
		}
	}
	return authz.Principal{}, false
}
