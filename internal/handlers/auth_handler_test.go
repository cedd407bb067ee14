package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "meubolso/internal/errors"
	"meubolso/internal/models"
	"meubolso/internal/services"
	"meubolso/internal/validator"
)

// --- mock user service ---

type mockUserService struct {
	registerFn      func(name, email, secret string, monthlySalary decimal.Decimal) (*models.User, error)
	authenticateFn  func(email, secret string) (*models.User, error)
	getByIDFn       func(id uint) (*models.User, error)
	updateProfileFn func(id uint, update services.UserUpdate) (*models.User, error)
	deleteFn        func(id uint) error
}

func (m *mockUserService) Register(name, email, secret string, monthlySalary decimal.Decimal) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(name, email, secret, monthlySalary)
	}
	return &models.User{}, nil
}

func (m *mockUserService) Authenticate(email, secret string) (*models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(email, secret)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetByID(id uint) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) UpdateProfile(id uint, update services.UserUpdate) (*models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(id, update)
	}
	return &models.User{}, nil
}

func (m *mockUserService) Delete(id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

var _ services.UserServicer = (*mockUserService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.GET("/auth/info", handler.GetInfo)
	r.PUT("/auth/alterar", handler.UpdateUser)
	r.DELETE("/auth/deletar/:user_id", handler.DeleteUser)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			registerFn: func(name, email, _ string, _ decimal.Decimal) (*models.User, error) {
				return &models.User{
					Base:  models.Base{ID: 1},
					Name:  name,
					Email: email,
				}, nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"nome":"Maria","email":"maria@example.com","senha_hash":"s3cret","salario_mensal":4200.00}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["usuario"].(map[string]interface{})
		if user["nome"] != "Maria" {
			t.Errorf("expected Maria, got %v", user["nome"])
		}
		if user["email"] != "maria@example.com" {
			t.Errorf("expected maria@example.com, got %v", user["email"])
		}
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register", `{"nome":"Maria"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid email", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"nome":"Maria","email":"not-an-email","senha_hash":"s3cret"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on negative salary", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"nome":"Maria","email":"maria@example.com","senha_hash":"s3cret","salario_mensal":-10.00}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		userSvc := &mockUserService{
			registerFn: func(_, _, _ string, _ decimal.Decimal) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"nome":"Maria","email":"maria@example.com","senha_hash":"s3cret"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			authenticateFn: func(email, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: 7}, Name: "Maria", Email: email}, nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login",
			`{"email":"maria@example.com","senha_hash":"s3cret"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["usuario"].(map[string]interface{})
		if user["id"].(float64) != 7 {
			t.Errorf("expected user id 7, got %v", user["id"])
		}
	})

	t.Run("returns 401 on bad credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			authenticateFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login",
			`{"email":"maria@example.com","senha_hash":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on missing secret", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"email":"maria@example.com"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_GetInfo(t *testing.T) {
	t.Run("returns profile with salary", func(t *testing.T) {
		userSvc := &mockUserService{
			getByIDFn: func(id uint) (*models.User, error) {
				return &models.User{
					Base:          models.Base{ID: id},
					Name:          "Maria",
					Email:         "maria@example.com",
					MonthlySalary: decimal.NewFromInt(5000),
				}, nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/auth/info?user_id=3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["usuario"].(map[string]interface{})
		if user["salario_mensal"].(float64) != 5000 {
			t.Errorf("expected salary 5000, got %v", user["salario_mensal"])
		}
	})

	t.Run("returns 400 without user_id", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/auth/info", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for unknown user", func(t *testing.T) {
		userSvc := &mockUserService{
			getByIDFn: func(_ uint) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/auth/info?user_id=999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
	})
}

func TestAuthHandler_UpdateUser(t *testing.T) {
	t.Run("passes only provided fields", func(t *testing.T) {
		var captured services.UserUpdate
		userSvc := &mockUserService{
			updateProfileFn: func(id uint, update services.UserUpdate) (*models.User, error) {
				captured = update
				return &models.User{Base: models.Base{ID: id}, Name: "Renamed"}, nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "PUT", "/auth/alterar", `{"id":3,"nome":"Renamed"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Name == nil || *captured.Name != "Renamed" {
			t.Errorf("expected name Renamed, got %v", captured.Name)
		}
		if captured.Email != nil || captured.MonthlySalary != nil {
			t.Error("expected omitted fields to stay nil")
		}
	})

	t.Run("returns 400 without id", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "PUT", "/auth/alterar", `{"nome":"Renamed"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_DeleteUser(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		deleted := uint(0)
		userSvc := &mockUserService{
			deleteFn: func(id uint) error {
				deleted = id
				return nil
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "DELETE", "/auth/deletar/5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if deleted != 5 {
			t.Errorf("expected delete of user 5, got %d", deleted)
		}
	})

	t.Run("returns 400 on non-numeric id", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "DELETE", "/auth/deletar/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for unknown user", func(t *testing.T) {
		userSvc := &mockUserService{
			deleteFn: func(_ uint) error {
				return apperrors.ErrUserNotFound
			},
		}
		handler := NewAuthHandler(userSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "DELETE", "/auth/deletar/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
