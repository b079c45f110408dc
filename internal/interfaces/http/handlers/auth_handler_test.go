package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/usecases"
	"qfifat.backend/pkg/crypto"
	"qfifat.backend/pkg/jwt"
)

func authHandlerRouter(userRepo *userRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)

	jwtService := jwt.NewJWTService("auth-handler-test-secret", 15*time.Minute, 24*time.Hour)
	h := NewAuthHandler(usecases.NewAuthUsecase(userRepo, jwtService))

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	var created *entities.User
	r := authHandlerRouter(&userRepoStub{
		createFn: func(_ context.Context, user *entities.User) error {
			user.ID = uuid.New()
			created = user
			return nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{
		"email": "amina@example.dz",
		"name": "Amina Belkacem",
		"phone": "+213550123456",
		"password": "s3cret-enough"
	}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, created)
	require.Equal(t, entities.UserRoleCustomer, created.Role)
	require.Contains(t, w.Body.String(), `"accessToken"`)
	require.Contains(t, w.Body.String(), `"refreshToken"`)
	require.NotContains(t, w.Body.String(), created.PasswordHash)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	r := authHandlerRouter(&userRepoStub{})

	for _, body := range []string{
		`{"email": "not-an-email", "name": "Amina", "phone": "+213550123456", "password": "s3cret-enough"}`,
		`{"email": "amina@example.dz", "name": "Amina", "phone": "+213550123456", "password": "short"}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	hash, err := crypto.HashPassword("s3cret-enough")
	require.NoError(t, err)

	user := &entities.User{
		ID:           uuid.New(),
		Email:        "amina@example.dz",
		PasswordHash: hash,
		Role:         entities.UserRoleCustomer,
	}
	r := authHandlerRouter(&userRepoStub{
		getByEmailFn: func(_ context.Context, email string) (*entities.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, domainerrors.ErrNotFound
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(
		`{"email": "amina@example.dz", "password": "s3cret-enough"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"accessToken"`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(
		`{"email": "amina@example.dz", "password": "wrong-password"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RefreshRejectsGarbage(t *testing.T) {
	r := authHandlerRouter(&userRepoStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(
		`{"refreshToken": "not.a.token"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
