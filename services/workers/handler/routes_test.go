package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtpkg "github.com/piresc/swastha/internal/pkg/jwt"
	"github.com/piresc/swastha/internal/pkg/models"
	workerhttp "github.com/piresc/swastha/services/workers/handler/http"
	"github.com/piresc/swastha/services/workers/repository"
	"github.com/piresc/swastha/services/workers/usecase"
)

func setupServer(t *testing.T) (*echo.Echo, *models.Config) {
	t.Helper()
	cfg := &models.Config{
		JWT: models.JWTConfig{Secret: "workers-secret", Expiration: 60, Issuer: "swastha-auth"},
	}

	uc := usecase.NewWorkerUC(repository.NewWorkerMemoryRepo())
	e := echo.New()
	NewHandler(workerhttp.NewWorkerHandler(uc), cfg).RegisterRoutes(e)
	return e, cfg
}

func tokenFor(t *testing.T, cfg *models.Config, role models.Role, phone string) (string, string) {
	t.Helper()
	user := &models.User{ID: models.NewUserID(role, phone), Role: role, Phone: phone}
	token, _, err := jwtpkg.GenerateToken(user, cfg.JWT, time.Now())
	require.NoError(t, err)
	return token, user.ID
}

func call(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_RoleGate(t *testing.T) {
	e, cfg := setupServer(t)
	workerToken, workerID := tokenFor(t, cfg, models.RoleWorker, "+919876543210")
	doctorToken, _ := tokenFor(t, cfg, models.RoleDoctor, "+919876543210")

	// no profile yet
	rec := call(e, http.MethodGet, "/workers/me", "", workerToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(e, http.MethodPut, "/workers/me", `{"full_name":"Ravi Kumar","age":34}`, workerToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(e, http.MethodGet, "/workers/me", "", workerToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var own models.HealthProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &own))
	assert.Equal(t, workerID, own.UserID)
	assert.Equal(t, "+919876543210", own.Phone)

	// doctors cannot write worker profiles, workers cannot browse
	rec = call(e, http.MethodPut, "/workers/me", `{"full_name":"Dr Who"}`, doctorToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = call(e, http.MethodGet, "/workers", "", workerToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = call(e, http.MethodGet, "/workers/"+workerID, "", workerToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(e, http.MethodGet, "/workers/"+workerID, "", doctorToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(e, http.MethodGet, "/workers?limit=10", "", doctorToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var page models.WorkerListResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Workers, 1)
	assert.Equal(t, 10, page.Limit)

	rec = call(e, http.MethodGet, "/workers", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
