package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autoparts-service/internal/auth"
	"autoparts-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserStore struct {
	users map[string]*models.User
}

func (m *memUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, fmt.Errorf("user not found: %s", username)
	}
	return user, nil
}

func (m *memUserStore) CountUsers(ctx context.Context) (int, error) { return len(m.users), nil }

func (m *memUserStore) CreateUser(ctx context.Context, user *models.User) error {
	m.users[user.Username] = user
	return nil
}

func protectedRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memUserStore{users: make(map[string]*models.User)}
	mgr := auth.NewManager("test-secret", time.Hour, store)
	require.NoError(t, mgr.Bootstrap(context.Background(), "admin", "hunter22"))

	resp, err := mgr.Login(context.Background(), "admin", "hunter22")
	require.NoError(t, err)

	h := &Handler{authManager: mgr}
	router := gin.New()
	router.GET("/protected", h.authMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, resp.AccessToken
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	router, token := protectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	router, _ := protectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
