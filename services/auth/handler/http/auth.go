package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/piresc/swastha/internal/pkg/middleware"
	"github.com/piresc/swastha/internal/pkg/models"
	nrpkg "github.com/piresc/swastha/internal/pkg/newrelic"
	"github.com/piresc/swastha/internal/utils"
	"github.com/piresc/swastha/services/auth"
)

// AuthHandler handles HTTP requests for OTP login and sessions
type AuthHandler struct {
	authUC auth.AuthUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC auth.AuthUC) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
	}
}

// RequestOTP handles POST /otp/request
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Auth.RequestOTP")

	var body otpRequestBody
	if err := c.Bind(&body); err != nil {
		logger.WarnCtx(c.Request().Context(), "Invalid OTP request payload", logger.Err(err))
		return utils.BadRequestResponse(c, models.ErrInvalidRequest.Error(), nil)
	}

	req, err := body.parse()
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := h.authUC.RequestOTP(c.Request().Context(), req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.HandleError(c, err)
	}

	return utils.OK(c)
}

// VerifyOTP handles POST /otp/verify
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Auth.VerifyOTP")

	var body verifyRequestBody
	if err := c.Bind(&body); err != nil {
		logger.WarnCtx(c.Request().Context(), "Invalid OTP verify payload", logger.Err(err))
		return utils.BadRequestResponse(c, models.ErrInvalidRequest.Error(), nil)
	}

	req, err := body.parse()
	if err != nil {
		return utils.HandleError(c, err)
	}

	resp, err := h.authUC.VerifyOTP(c.Request().Context(), req)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.HandleError(c, err)
	}

	middleware.SetUserID(c, resp.User.ID)
	nrpkg.AddTransactionAttribute(txn, "user.role", resp.User.Role.String())
	return utils.SuccessResponse(c, http.StatusOK, resp)
}

// Me returns the identity carried by the caller's token
func (h *AuthHandler) Me(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return utils.UnauthorizedResponse(c, "")
	}

	return utils.SuccessResponse(c, http.StatusOK, models.UserView{
		ID:    claims.UserID,
		Role:  claims.Role,
		Phone: claims.Phone,
	})
}
