package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/swastha/internal/pkg/constants"
	jwtpkg "github.com/piresc/swastha/internal/pkg/jwt"
	"github.com/piresc/swastha/internal/pkg/models"
	"github.com/piresc/swastha/services/workers/mocks"
)

const workerID = "9b2c1f4e-7d3a-5e8b-a6c4-1f2e3d4c5b6a"

func newContext(method, target, body string, claims *jwtpkg.Claims) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(constants.CtxKeyClaims, claims)
	}
	return c, rec
}

func workerClaims() *jwtpkg.Claims {
	return &jwtpkg.Claims{UserID: workerID, Role: models.RoleWorker, Phone: "+919876543210"}
}

func TestUpsertMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWorkerUC(ctrl)
	h := NewWorkerHandler(uc)

	uc.EXPECT().UpsertProfile(gomock.Any(), workerID, "+919876543210", &models.HealthProfile{
		FullName:   "Ravi Kumar",
		Age:        34,
		BloodGroup: "O+",
	}).Return(&models.HealthProfile{UserID: workerID, FullName: "Ravi Kumar"}, nil)

	c, rec := newContext(http.MethodPut, "/workers/me",
		`{"full_name":"Ravi Kumar","age":34,"blood_group":"O+","user_id":"someone-else"}`, workerClaims())
	require.NoError(t, h.UpsertMe(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got models.HealthProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, workerID, got.UserID)
}

func TestUpsertMe_Errors(t *testing.T) {
	t.Run("Malformed JSON", func(t *testing.T) {
		h := NewWorkerHandler(mocks.NewMockWorkerUC(gomock.NewController(t)))
		c, rec := newContext(http.MethodPut, "/workers/me", `{"age":"old"}`, workerClaims())

		require.NoError(t, h.UpsertMe(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Validation failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockWorkerUC(ctrl)
		uc.EXPECT().UpsertProfile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &models.ValidationError{Field: "full_name", Reason: "is required"})

		c, rec := newContext(http.MethodPut, "/workers/me", `{}`, workerClaims())
		require.NoError(t, NewWorkerHandler(uc).UpsertMe(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"invalid_request","details":{"field":"full_name","reason":"is required"}}`, rec.Body.String())
	})

	t.Run("No claims", func(t *testing.T) {
		h := NewWorkerHandler(mocks.NewMockWorkerUC(gomock.NewController(t)))
		c, rec := newContext(http.MethodPut, "/workers/me", `{}`, nil)

		require.NoError(t, h.UpsertMe(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetMe_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWorkerUC(ctrl)
	uc.EXPECT().GetProfile(gomock.Any(), workerID).Return(nil, models.ErrNotFound)

	c, rec := newContext(http.MethodGet, "/workers/me", "", workerClaims())
	require.NoError(t, NewWorkerHandler(uc).GetMe(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}

func TestGetWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWorkerUC(ctrl)
	uc.EXPECT().GetProfile(gomock.Any(), workerID).
		Return(&models.HealthProfile{UserID: workerID, FullName: "Ravi"}, nil)

	c, rec := newContext(http.MethodGet, "/workers/"+workerID, "", nil)
	c.SetParamNames("id")
	c.SetParamValues(workerID)
	require.NoError(t, NewWorkerHandler(uc).GetWorker(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListWorkers(t *testing.T) {
	testCases := []struct {
		name       string
		query      string
		setup      func(m *mocks.MockWorkerUC)
		wantStatus int
	}{
		{
			name:  "Defaults",
			query: "",
			setup: func(m *mocks.MockWorkerUC) {
				m.EXPECT().ListProfiles(gomock.Any(), 20, 0).
					Return(&models.WorkerListResult{Workers: []*models.HealthProfile{}, Limit: 20}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "Explicit page",
			query: "?limit=5&offset=10",
			setup: func(m *mocks.MockWorkerUC) {
				m.EXPECT().ListProfiles(gomock.Any(), 5, 10).
					Return(&models.WorkerListResult{Workers: []*models.HealthProfile{}, Limit: 5, Offset: 10}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Non numeric limit",
			query:      "?limit=ten",
			setup:      func(m *mocks.MockWorkerUC) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "Out of range limit",
			query: "?limit=500",
			setup: func(m *mocks.MockWorkerUC) {
				m.EXPECT().ListProfiles(gomock.Any(), 500, 0).
					Return(nil, &models.ValidationError{Field: "limit", Reason: "must be between 1 and 100"})
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockWorkerUC(ctrl)
			tc.setup(uc)

			c, rec := newContext(http.MethodGet, "/workers"+tc.query, "", nil)
			require.NoError(t, NewWorkerHandler(uc).ListWorkers(c))
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
