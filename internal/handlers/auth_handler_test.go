package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/middleware"
	"pocketledger/internal/models"
)

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/logout", handler.Logout)
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/me", handler.Me)
	return r
}

func newAuthHandler(userSvc *mockUserService, audit *mockAuditService) *AuthHandler {
	return NewAuthHandler(userSvc, audit, middleware.NewSessionManager("test-secret", time.Minute, false))
}

func hasSessionCookie(t *testing.T, header http.Header) bool {
	t.Helper()
	resp := http.Response{Header: header}
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return true
		}
	}
	return false
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 with token and cookie", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupAuthRouter(newAuthHandler(&mockUserService{}, audit))

		rec := doRequest(r, "POST", "/auth/register",
			`{"username":"alice","password":"password123","confirm_password":"password123"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] == "" {
			t.Error("expected a token")
		}
		user := result["user"].(map[string]interface{})
		if user["username"] != "alice" {
			t.Errorf("expected alice, got %v", user["username"])
		}
		if !hasSessionCookie(t, rec.Header()) {
			t.Error("expected the session cookie to be set")
		}
		if len(audit.actions) != 1 || audit.actions[0] != "REGISTER" {
			t.Errorf("expected REGISTER audit, got %v", audit.actions)
		}
	})

	t.Run("returns 400 when passwords differ", func(t *testing.T) {
		r := setupAuthRouter(newAuthHandler(&mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/register",
			`{"username":"alice","password":"password123","confirm_password":"password124"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate username", func(t *testing.T) {
		userSvc := &mockUserService{
			registerFn: func(_ context.Context, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateUsername
			},
		}
		r := setupAuthRouter(newAuthHandler(userSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/register",
			`{"username":"alice","password":"password123","confirm_password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_USERNAME")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupAuthRouter(newAuthHandler(&mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"username":"alice","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !hasSessionCookie(t, rec.Header()) {
			t.Error("expected the session cookie to be set")
		}
	})

	t.Run("returns 401 on wrong credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			authenticateFn: func(_ context.Context, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(newAuthHandler(userSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"username":"alice","password":"nope"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		r := setupAuthRouter(newAuthHandler(&mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"username":"alice"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	r := setupAuthRouter(newAuthHandler(&mockUserService{}, &mockAuditService{}))

	rec := doRequest(r, "POST", "/auth/logout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if hasSessionCookie(t, rec.Header()) {
		t.Error("expected the session cookie to be cleared")
	}

	rec = doRequest(r, "GET", "/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["id"] != testUserID {
		t.Errorf("expected %s, got %v", testUserID, user["id"])
	}
}
