package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autoparts-service/internal/models"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore looks up staff accounts for login
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// Manager issues and verifies staff access tokens
type Manager struct {
	secret   []byte
	tokenTTL time.Duration
	users    UserStore
}

type staffClaims struct {
	jwtlib.RegisteredClaims
	Role string `json:"role"`
}

// Actor identifies the authenticated staff member on a request
type Actor struct {
	Username string
	Role     string
}

// LoginResponse is returned to the client on successful login
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expiresAt"`
}

// NewManager creates an auth manager over the given user store
func NewManager(secret string, tokenTTL time.Duration, users UserStore) *Manager {
	if secret == "" {
		secret = "dev-change-me"
	}
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}

	return &Manager{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		users:    users,
	}
}

// Bootstrap seeds an admin account when the user table is empty, so a
// fresh deployment is reachable.
func (m *Manager) Bootstrap(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	count, err := m.users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	return m.users.CreateUser(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         "admin",
		Active:       true,
	})
}

// Login verifies credentials and issues a signed token
func (m *Manager) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	user, err := m.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().UTC().Add(m.tokenTTL)
	token, err := m.sign(user.Username, user.Role, expiresAt)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		Role:        user.Role,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}, nil
}

// ParseToken verifies a token and returns the actor it identifies
func (m *Manager) ParseToken(tokenStr string) (Actor, error) {
	claims := &staffClaims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Actor{}, errors.New("invalid or expired token")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Actor{}, errors.New("token missing subject")
	}

	return Actor{Username: sub, Role: claims.Role}, nil
}

func (m *Manager) sign(username, role string, expiresAt time.Time) (string, error) {
	claims := staffClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwtlib.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
		Role: role,
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
