package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*UserModel
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{nextID: 1, users: make(map[string]*UserModel)}
}

func (s *memoryUserStore) CreateUser(_ context.Context, user *UserModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Email]; exists {
		return errors.New("email already taken")
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.Email] = user
	return nil
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (*UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (s *memoryUserStore) UpdateUser(_ context.Context, user *UserModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Email] = user
	return nil
}

func TestRegisterHashesPassword(t *testing.T) {
	service := NewAuthService(newMemoryUserStore(), "test-secret", time.Hour)

	user, err := service.Register(context.Background(), RegisterRequest{
		Username: "citizen",
		Email:    "citizen@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))
}

func TestLoginIssuesToken(t *testing.T) {
	service := NewAuthService(newMemoryUserStore(), "test-secret", time.Hour)
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterRequest{
		Username: "citizen",
		Email:    "citizen@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	resp, err := service.Login(ctx, LoginRequest{Email: "citizen@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(user.ID), claims["sub"])
	assert.Equal(t, "citizen@example.com", claims["email"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := NewAuthService(newMemoryUserStore(), "test-secret", time.Hour)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterRequest{
		Username: "citizen",
		Email:    "citizen@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, LoginRequest{Email: "citizen@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
