package utils

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/piresc/swastha/internal/pkg/models"
)

// ErrorResponse is the body of every failed request. Error is a stable machine-readable code.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// OKResponse acknowledges a request that has nothing else to return
type OKResponse struct {
	OK bool `json:"ok"`
}

const codeInternal = "internal_error"

// SuccessResponse sends data as the response body
func SuccessResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, data)
}

// OK sends {"ok": true}
func OK(c echo.Context) error {
	return c.JSON(http.StatusOK, OKResponse{OK: true})
}

// ErrorResponseHandler sends an error response
func ErrorResponseHandler(c echo.Context, statusCode int, code string, details interface{}) error {
	return c.JSON(statusCode, ErrorResponse{Error: code, Details: details})
}

// BadRequestResponse sends a 400 with the given code
func BadRequestResponse(c echo.Context, code string, details interface{}) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, code, details)
}

// UnauthorizedResponse sends a 401, defaulting to "unauthorized"
func UnauthorizedResponse(c echo.Context, code string) error {
	if code == "" {
		code = models.ErrUnauthorized.Error()
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, code, nil)
}

// ForbiddenResponse sends a 403
func ForbiddenResponse(c echo.Context) error {
	return ErrorResponseHandler(c, http.StatusForbidden, models.ErrForbidden.Error(), nil)
}

// NotFoundResponse sends a 404
func NotFoundResponse(c echo.Context) error {
	return ErrorResponseHandler(c, http.StatusNotFound, models.ErrNotFound.Error(), nil)
}

// TooManyRequestsResponse sends a 429 with a Retry-After header in whole seconds
func TooManyRequestsResponse(c echo.Context, retryAfter time.Duration) error {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
	return ErrorResponseHandler(c, http.StatusTooManyRequests, models.ErrRateLimited.Error(), nil)
}

// InternalServerErrorResponse sends a 500 with the given code, defaulting to "internal_error"
func InternalServerErrorResponse(c echo.Context, code string) error {
	if code == "" {
		code = codeInternal
	}
	return ErrorResponseHandler(c, http.StatusInternalServerError, code, nil)
}

// ServiceUnavailableResponse sends a 503
func ServiceUnavailableResponse(c echo.Context, details interface{}) error {
	return ErrorResponseHandler(c, http.StatusServiceUnavailable, "service_unavailable", details)
}

// HandleError maps a domain error onto its HTTP response. Errors outside
// the domain taxonomy are logged and answered with a 500.
func HandleError(c echo.Context, err error) error {
	var validationErr *models.ValidationError
	var rateErr *models.RateLimitError

	switch {
	case errors.As(err, &validationErr):
		return BadRequestResponse(c, models.ErrInvalidRequest.Error(), validationErr)
	case errors.Is(err, models.ErrInvalidRequest):
		return BadRequestResponse(c, models.ErrInvalidRequest.Error(), nil)
	case errors.Is(err, models.ErrInvalidOTP):
		return BadRequestResponse(c, models.ErrInvalidOTP.Error(), nil)
	case errors.As(err, &rateErr):
		return TooManyRequestsResponse(c, rateErr.RetryAfter)
	case errors.Is(err, models.ErrRateLimited):
		return TooManyRequestsResponse(c, time.Second)
	case errors.Is(err, models.ErrUnauthorized):
		return UnauthorizedResponse(c, "")
	case errors.Is(err, models.ErrInvalidToken):
		return UnauthorizedResponse(c, models.ErrInvalidToken.Error())
	case errors.Is(err, models.ErrForbidden):
		return ForbiddenResponse(c)
	case errors.Is(err, models.ErrNotFound):
		return NotFoundResponse(c)
	case errors.Is(err, models.ErrOTPDelivery):
		logger.ErrorCtx(c.Request().Context(), "OTP delivery failed", logger.Err(err))
		return InternalServerErrorResponse(c, models.ErrOTPDelivery.Error())
	default:
		logger.ErrorCtx(c.Request().Context(), "Unhandled error",
			logger.String("path", c.Path()),
			logger.Err(err))
		return InternalServerErrorResponse(c, "")
	}
}
