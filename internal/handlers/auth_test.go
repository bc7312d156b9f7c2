package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/movie-catalog/internal/database"
	"github.com/thereayou/movie-catalog/internal/handlers/dto"
	"github.com/thereayou/movie-catalog/internal/middleware"
	"github.com/thereayou/movie-catalog/internal/models"
	"github.com/thereayou/movie-catalog/pkg/auth"
)

func newAuthRouter(t *testing.T, db *database.Database) (*gin.Engine, *auth.JWTManager, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	jwtMgr := auth.NewJWTManager("test-secret", time.Hour)
	h := NewAuthHandler(db, jwtMgr, rdb)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", middleware.AuthMiddleware(jwtMgr, rdb), h.Logout)
	r.GET("/protected", middleware.AuthMiddleware(jwtMgr, rdb), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString(middleware.RoleKey)})
	})

	return r, jwtMgr, rdb
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	router, jwtMgr, _ := newAuthRouter(t, db)

	w := performRequest(t, router, http.MethodPost, "/auth/register", registerRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	// Новые пользователи получают роль user
	user, err := db.FindUserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	w = performRequest(t, router, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	token := decodeResponse(t, w)["token"].(string)
	claims, err := jwtMgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	router, _, _ := newAuthRouter(t, db)

	w := performRequest(t, router, http.MethodPost, "/auth/register", registerRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	second := registerRequest()
	second.Username = "alice2"
	w = performRequest(t, router, http.MethodPost, "/auth/register", second)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	db := setupTestDB(t)
	router, _, _ := newAuthRouter(t, db)

	tests := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
	}{
		{"short username", func(r *dto.RegisterRequest) { r.Username = "ab" }},
		{"bad email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "1234567" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerRequest()
			tt.mutate(&req)

			w := performRequest(t, router, http.MethodPost, "/auth/register", req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router, _, _ := newAuthRouter(t, db)

	w := performRequest(t, router, http.MethodPost, "/auth/register", registerRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, router, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_BlacklistsToken(t *testing.T) {
	db := setupTestDB(t)
	router, _, _ := newAuthRouter(t, db)

	w := performRequest(t, router, http.MethodPost, "/auth/register", registerRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, router, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeResponse(t, w)["token"].(string)

	authorized := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if path == "/auth/logout" {
			req = httptest.NewRequest(http.MethodPost, path, nil)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, authorized("/protected"))
	assert.Equal(t, http.StatusOK, authorized("/auth/logout"))

	// После logout токен в черном списке
	assert.Equal(t, http.StatusUnauthorized, authorized("/protected"))
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	db := setupTestDB(t)
	router, _, _ := newAuthRouter(t, db)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
