package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"autoparts-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserStore struct {
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*models.User)}
}

func (m *memUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, fmt.Errorf("user not found: %s", username)
	}
	return user, nil
}

func (m *memUserStore) CountUsers(ctx context.Context) (int, error) {
	return len(m.users), nil
}

func (m *memUserStore) CreateUser(ctx context.Context, user *models.User) error {
	m.users[user.Username] = user
	return nil
}

func TestLoginAndParseToken(t *testing.T) {
	store := newMemUserStore()
	mgr := NewManager("test-secret", time.Hour, store)
	require.NoError(t, mgr.Bootstrap(context.Background(), "admin", "hunter22"))

	resp, err := mgr.Login(context.Background(), "admin", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "admin", resp.Role)

	actor, err := mgr.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", actor.Username)
	assert.Equal(t, "admin", actor.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newMemUserStore()
	mgr := NewManager("test-secret", time.Hour, store)
	require.NoError(t, mgr.Bootstrap(context.Background(), "admin", "hunter22"))

	_, err := mgr.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = mgr.Login(context.Background(), "nobody", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestInactiveUserRejected(t *testing.T) {
	store := newMemUserStore()
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	store.users["old"] = &models.User{Username: "old", PasswordHash: hash, Role: "staff", Active: false}

	mgr := NewManager("test-secret", time.Hour, store)
	_, err = mgr.Login(context.Background(), "old", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBootstrapSkipsNonEmptyStore(t *testing.T) {
	store := newMemUserStore()
	mgr := NewManager("test-secret", time.Hour, store)
	require.NoError(t, mgr.Bootstrap(context.Background(), "admin", "pw1"))
	require.NoError(t, mgr.Bootstrap(context.Background(), "second", "pw2"))

	_, ok := store.users["second"]
	assert.False(t, ok)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour, newMemUserStore())

	_, err := mgr.ParseToken("not-a-token")
	assert.Error(t, err)

	// Token signed with a different secret.
	other := NewManager("other-secret", time.Hour, newMemUserStore())
	token, err := other.sign("admin", "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = mgr.ParseToken(token)
	assert.Error(t, err)
}
