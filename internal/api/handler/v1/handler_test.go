package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/shared-experiences-api/internal/api/middleware"
	"github.com/vietanh2810/shared-experiences-api/internal/config"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/shared-experiences-api/internal/service"
)

var authConf = &config.AuthConfig{
	JWTSigningKey: "0123456789abcdef0123456789abcdef",
	JWTIssuer:     "tests",
	TokenTTL:      time.Hour,
}

func init() {
	gin.SetMode(gin.TestMode)
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	return out
}

// --- Auth ---

func setupAuthRouter(t *testing.T) (*mockAuthService, http.Handler) {
	t.Helper()
	svc := &mockAuthService{}
	t.Cleanup(func() { svc.AssertExpectations(t) })

	h := NewAuthHandler(authConf, svc)
	r := gin.New()
	r.POST("/api/auth/register", h.HandleRegister)
	r.POST("/api/auth/login", h.HandleLogin)

	return svc, r
}

func TestAuthHandler_Register(t *testing.T) {
	valid := map[string]string{
		"email":           "alice@example.com",
		"password":        "Str0ng!pass",
		"confirmPassword": "Str0ng!pass",
		"firstName":       "Alice",
		"lastName":        "Martin",
		"role":            "Provider",
	}

	t.Run("created", func(t *testing.T) {
		svc, r := setupAuthRouter(t)
		svc.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterInput) bool {
			return in.Email == "alice@example.com" && in.Role == "Provider"
		})).Return(domain.User{ID: 7, Email: "alice@example.com", Role: domain.RoleProvider}, nil)

		w := doJSON(r, http.MethodPost, "/api/auth/register", valid)

		assert.Equal(t, http.StatusCreated, w.Code)
		got := decode[response.RegisterResponse](t, w)
		assert.True(t, got.Success)
		assert.Equal(t, "User created successfully!", got.Message)
		assert.Equal(t, []string{"Provider"}, got.Roles)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, r := setupAuthRouter(t)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(domain.User{}, fmt.Errorf("s.repo.CreateWithProfile -> %w", service.ErrUserEmailExists))

		w := doJSON(r, http.MethodPost, "/api/auth/register", valid)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		got := decode[response.RegisterResponse](t, w)
		assert.False(t, got.Success)
		assert.Equal(t, "User already exists!", got.Message)
	})

	t.Run("weak password", func(t *testing.T) {
		svc, r := setupAuthRouter(t)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(domain.User{}, domain.NewValidationError("password", "must contain a digit"))

		w := doJSON(r, http.MethodPost, "/api/auth/register", valid)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		got := decode[response.Err](t, w)
		assert.Equal(t, "must contain a digit", got.Fields["password"])
	})

	t.Run("confirm password mismatch never reaches the service", func(t *testing.T) {
		_, r := setupAuthRouter(t)
		body := map[string]string{}
		for k, v := range valid {
			body[k] = v
		}
		body["confirmPassword"] = "other"

		w := doJSON(r, http.MethodPost, "/api/auth/register", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("issues a token", func(t *testing.T) {
		svc, r := setupAuthRouter(t)
		user := domain.User{ID: 4, Email: "bob@example.com", FirstName: "Bob", LastName: "Stone", Role: domain.RoleManager}
		svc.On("Login", mock.Anything, "bob@example.com", "secret").Return(user, nil)

		w := doJSON(r, http.MethodPost, "/api/auth/login", map[string]string{"email": "bob@example.com", "password": "secret"})

		require.Equal(t, http.StatusOK, w.Code)
		got := decode[response.LoginResponse](t, w)
		assert.True(t, got.Success)
		assert.Equal(t, "Bob Stone", got.UserName)
		assert.Equal(t, []string{"Manager"}, got.Roles)

		claims, err := jwthelper.ParseToken([]byte(authConf.JWTSigningKey), authConf.JWTIssuer, got.Token)
		require.NoError(t, err)
		id, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, uint(4), id)
		assert.Equal(t, "Manager", claims.Role)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc, r := setupAuthRouter(t)
		svc.On("Login", mock.Anything, "bob@example.com", "nope").
			Return(domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", service.ErrInvalidCredentials))

		w := doJSON(r, http.MethodPost, "/api/auth/login", map[string]string{"email": "bob@example.com", "password": "nope"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		got := decode[response.LoginResponse](t, w)
		assert.False(t, got.Success)
		assert.Equal(t, "Invalid email or password.", got.Message)
		assert.Empty(t, got.Token)
	})
}

// --- Providers ---

func setupProviderRouter(t *testing.T) (*mockProviderService, http.Handler) {
	t.Helper()
	svc := &mockProviderService{}
	t.Cleanup(func() { svc.AssertExpectations(t) })

	h := NewProviderHandler(svc)
	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/providers", h.HandleGetProviders)
		api.GET("/providers/:id", h.HandleGetProvider)
		api.GET("/providers/:id/services", h.HandleGetProviderServices)
		api.POST("/providers", h.HandleCreateProvider)
		api.PUT("/providers/:id", h.HandleUpdateProvider)
		api.DELETE("/providers/:id", h.HandleDeleteProvider)
	}

	return svc, r
}

func TestProviderHandler_Create(t *testing.T) {
	svc, r := setupProviderRouter(t)
	in := domain.Provider{Name: "Sea Tours", Address: "1 Quay", Number: "555-0101"}
	svc.On("CreateProvider", mock.Anything, in).Return(domain.Provider{ID: 9, Name: "Sea Tours", Address: "1 Quay", Number: "555-0101"}, nil)

	w := doJSON(r, http.MethodPost, "/api/providers", map[string]string{"name": "Sea Tours", "address": "1 Quay", "number": "555-0101"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/providers/9", w.Header().Get("Location"))
	got := decode[domain.Provider](t, w)
	assert.Equal(t, uint(9), got.ID)
}

func TestProviderHandler_CreateValidation(t *testing.T) {
	_, r := setupProviderRouter(t)

	w := doJSON(r, http.MethodPost, "/api/providers", map[string]string{"address": "1 Quay"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	got := decode[response.Err](t, w)
	assert.Contains(t, got.Fields, "name")
	assert.Contains(t, got.Fields, "number")
}

func TestProviderHandler_Get(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		setup func(svc *mockProviderService)
		want  int
	}{
		{
			name: "found",
			path: "/api/providers/3",
			setup: func(svc *mockProviderService) {
				svc.On("GetProvider", mock.Anything, uint(3)).Return(domain.Provider{ID: 3}, nil)
			},
			want: http.StatusOK,
		},
		{
			name: "missing",
			path: "/api/providers/42",
			setup: func(svc *mockProviderService) {
				svc.On("GetProvider", mock.Anything, uint(42)).Return(domain.Provider{}, fmt.Errorf("s.repo.FindByID -> %w", domain.ErrNotFound))
			},
			want: http.StatusNotFound,
		},
		{name: "non numeric id", path: "/api/providers/abc", want: http.StatusBadRequest},
		{name: "zero id", path: "/api/providers/0", want: http.StatusBadRequest},
		{
			name: "store failure",
			path: "/api/providers/5",
			setup: func(svc *mockProviderService) {
				svc.On("GetProvider", mock.Anything, uint(5)).Return(domain.Provider{}, errors.New("connection reset"))
			},
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r := setupProviderRouter(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			w := doJSON(r, http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestProviderHandler_Update(t *testing.T) {
	body := map[string]interface{}{"id": 3, "name": "Sea Tours", "address": "1 Quay", "number": "555-0101"}

	t.Run("no content", func(t *testing.T) {
		svc, r := setupProviderRouter(t)
		svc.On("UpdateProvider", mock.Anything, mock.MatchedBy(func(p domain.Provider) bool { return p.ID == 3 })).
			Return(domain.Provider{ID: 3}, nil)

		w := doJSON(r, http.MethodPut, "/api/providers/3", body)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("body id disagrees with path", func(t *testing.T) {
		_, r := setupProviderRouter(t)

		w := doJSON(r, http.MethodPut, "/api/providers/4", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProviderHandler_Delete(t *testing.T) {
	svc, r := setupProviderRouter(t)
	svc.On("DeleteProvider", mock.Anything, uint(2)).Return(nil)
	svc.On("DeleteProvider", mock.Anything, uint(8)).Return(domain.ErrNotFound)

	assert.Equal(t, http.StatusNoContent, doJSON(r, http.MethodDelete, "/api/providers/2", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodDelete, "/api/providers/8", nil).Code)
}

// --- Billings ---

func TestBillingHandler_Create(t *testing.T) {
	svc := &mockBillingService{}
	defer svc.AssertExpectations(t)

	h := NewBillingHandler(svc)
	r := gin.New()
	r.POST("/api/billings", h.HandleCreateBilling)

	serviceID := uint(2)
	svc.On("CreateBilling", mock.Anything, mock.MatchedBy(func(b domain.Billing) bool {
		return b.GuestID == 1 && b.ServiceID != nil && *b.ServiceID == serviceID && !b.Date.IsZero()
	}), 12).Return(domain.Billing{ID: 11, GuestID: 1, ProviderID: 3, ServiceID: &serviceID, Amount: 90}, nil)

	w := doJSON(r, http.MethodPost, "/api/billings", `{"guestId":1,"serviceId":2,"partySize":12}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/billings/11", w.Header().Get("Location"))
	got := decode[domain.Billing](t, w)
	assert.Equal(t, 90, got.Amount)

	t.Run("unknown service is a validation error", func(t *testing.T) {
		svc.On("CreateBilling", mock.Anything, mock.MatchedBy(func(b domain.Billing) bool { return b.GuestID == 5 }), 0).
			Return(domain.Billing{}, domain.NewValidationError("serviceId", "unknown service"))

		w := doJSON(r, http.MethodPost, "/api/billings", `{"guestId":5,"serviceId":99}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "unknown service", decode[response.Err](t, w).Fields["serviceId"])
	})

	t.Run("provider required without service", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/billings", `{"guestId":5,"amount":10}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[response.Err](t, w).Fields, "providerId")
	})
}

// --- Reports ---

func setupReportRouter(t *testing.T) (*mockReportService, http.Handler) {
	t.Helper()
	svc := &mockReportService{}
	t.Cleanup(func() { svc.AssertExpectations(t) })

	h := NewReportHandler(svc)
	r := gin.New()
	reports := r.Group("/api/sharedexperiences")
	{
		reports.GET("/Table1", h.HandleTable1)
		reports.GET("/Table4", h.HandleTable4)
		reports.GET("/Table6", h.HandleTable6)
		reports.GET("/Table7", h.HandleTable7)
	}

	return svc, r
}

func TestReportHandler_QueryParameters(t *testing.T) {
	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "missing experience id", path: "/api/sharedexperiences/Table4", want: http.StatusBadRequest},
		{name: "non numeric experience id", path: "/api/sharedexperiences/Table4?sharedExperienceId=x", want: http.StatusBadRequest},
		{name: "missing service id", path: "/api/sharedexperiences/Table6", want: http.StatusBadRequest},
		{name: "negative service id", path: "/api/sharedexperiences/Table6?serviceId=-1", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := setupReportRouter(t)
			assert.Equal(t, tt.want, doJSON(r, http.MethodGet, tt.path, nil).Code)
		})
	}
}

func TestReportHandler_Tables(t *testing.T) {
	svc, r := setupReportRouter(t)
	svc.On("Table4", mock.Anything, uint(1)).Return([]domain.GuestNameRow{{GuestName: "Ana"}, {GuestName: "Ben"}}, nil)
	svc.On("Table6", mock.Anything, uint(77)).Return([]domain.GuestServiceRow{}, nil)
	svc.On("Table7", mock.Anything).Return(domain.PriceStats{MinPrice: 50, AvgPrice: 112.5, MaxPrice: 200}, nil)
	svc.On("Table1", mock.Anything).Return([]domain.ProviderRow(nil), errors.New("boom"))

	w := doJSON(r, http.MethodGet, "/api/sharedexperiences/Table4?sharedExperienceId=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"guestName":"Ana"},{"guestName":"Ben"}]`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/sharedexperiences/Table6?serviceId=77", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/sharedexperiences/Table7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"minPrice":50,"avgPrice":112.5,"maxPrice":200}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/sharedexperiences/Table1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Logs ---

func TestLogHandler_Search(t *testing.T) {
	svc := &mockLogService{}
	defer svc.AssertExpectations(t)

	h := NewLogHandler(svc)
	r := gin.New()
	r.GET("/api/logs/search", h.HandleSearchLogs)
	r.GET("/api/logs/operation-types", h.HandleOperationTypes)

	svc.On("Search", mock.Anything, mock.MatchedBy(func(in service.LogSearch) bool {
		return in.Method == "post" && in.Page == 2 && in.PageSize == 5 &&
			in.StartDate != nil && in.StartDate.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) && in.EndDate == nil
	})).Return(domain.AuditPage{
		Records:    []domain.AuditRecord{{ID: "a", Method: "POST"}},
		TotalCount: 6,
		Page:       2,
		PageSize:   5,
		TotalPages: 2,
	}, nil)

	w := doJSON(r, http.MethodGet, "/api/logs/search?method=post&startDate=2024-01-02&page=2&pageSize=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "6", w.Header().Get("X-Total-Count"))
	got := decode[domain.AuditPage](t, w)
	assert.Equal(t, 2, got.TotalPages)
	assert.Len(t, got.Records, 1)

	t.Run("rejects bad input", func(t *testing.T) {
		for _, q := range []string{"method=GET", "startDate=yesterday", "pageSize=101"} {
			assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/api/logs/search?"+q, nil).Code, q)
		}
	})

	t.Run("operation types", func(t *testing.T) {
		svc.On("OperationTypes", mock.Anything).Return([]domain.OperationCount{{Description: "Creating provider", Count: 3}}, nil)

		w := doJSON(r, http.MethodGet, "/api/logs/operation-types", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"description":"Creating provider","count":3}]`, w.Body.String())
	})
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	svc := &mockAuthService{}
	defer svc.AssertExpectations(t)

	h := NewAuthHandler(authConf, svc)
	r := gin.New()
	r.GET("/api/auth/me", func(ctx *gin.Context) {
		if ctx.GetHeader("X-Test-User") != "" {
			ctx.Set(middleware.ContextUserID, uint(4))
			ctx.Set(middleware.ContextRole, domain.RoleManager)
		}
		ctx.Next()
	}, h.HandleGetCurrentUser)

	svc.On("GetUser", mock.Anything, uint(4)).Return(domain.User{ID: 4, Email: "bob@example.com", Password: "hash", Role: domain.RoleManager}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("X-Test-User", "1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")
	assert.Equal(t, "bob@example.com", decode[domain.User](t, w).Email)

	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodGet, "/api/auth/me", nil).Code)
}
