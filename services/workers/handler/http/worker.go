package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/piresc/swastha/internal/pkg/middleware"
	"github.com/piresc/swastha/internal/pkg/models"
	"github.com/piresc/swastha/internal/utils"
	"github.com/piresc/swastha/services/workers"
	"github.com/piresc/swastha/services/workers/usecase"
)

// profileBody is the editable part of a health profile
type profileBody struct {
	FullName        string `json:"full_name"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	Address         string `json:"address"`
	NativeState     string `json:"native_state"`
	BloodGroup      string `json:"blood_group"`
	MaritalStatus   string `json:"marital_status"`
	Language        string `json:"language"`
	FinancialStatus string `json:"financial_status"`
	Allergies       string `json:"allergies"`
	Conditions      string `json:"conditions"`
}

func (b profileBody) toModel() *models.HealthProfile {
	return &models.HealthProfile{
		FullName:        b.FullName,
		Age:             b.Age,
		Gender:          b.Gender,
		Address:         b.Address,
		NativeState:     b.NativeState,
		BloodGroup:      b.BloodGroup,
		MaritalStatus:   b.MaritalStatus,
		Language:        b.Language,
		FinancialStatus: b.FinancialStatus,
		Allergies:       b.Allergies,
		Conditions:      b.Conditions,
	}
}

// WorkerHandler handles HTTP requests for the worker registry
type WorkerHandler struct {
	workerUC workers.WorkerUC
}

// NewWorkerHandler creates a new worker handler
func NewWorkerHandler(workerUC workers.WorkerUC) *WorkerHandler {
	return &WorkerHandler{
		workerUC: workerUC,
	}
}

// UpsertMe handles PUT /workers/me
func (h *WorkerHandler) UpsertMe(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var body profileBody
	if err := c.Bind(&body); err != nil {
		logger.WarnCtx(c.Request().Context(), "Invalid profile payload", logger.Err(err))
		return utils.BadRequestResponse(c, models.ErrInvalidRequest.Error(), nil)
	}

	profile, err := h.workerUC.UpsertProfile(c.Request().Context(), claims.UserID, claims.Phone, body.toModel())
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, profile)
}

// GetMe handles GET /workers/me
func (h *WorkerHandler) GetMe(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return utils.UnauthorizedResponse(c, "")
	}

	profile, err := h.workerUC.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, profile)
}

// GetWorker handles GET /workers/:id
func (h *WorkerHandler) GetWorker(c echo.Context) error {
	profile, err := h.workerUC.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, profile)
}

// ListWorkers handles GET /workers?limit=&offset=
func (h *WorkerHandler) ListWorkers(c echo.Context) error {
	limit, err := queryInt(c, "limit", usecase.DefaultListLimit)
	if err != nil {
		return utils.HandleError(c, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return utils.HandleError(c, err)
	}

	result, err := h.workerUC.ListProfiles(c.Request().Context(), limit, offset)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, result)
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.ValidationError{Field: name, Reason: "must be an integer"}
	}
	return v, nil
}
