package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/epquotient/epq/internal/database"
	"github.com/epquotient/epq/pkg/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Service issues and validates session tokens. Tokens are signed JWTs
// carrying a token ID that maps to a user_sessions row, so logout can
// revoke a token before its expiry.
type Service struct {
	repo     *database.Repository
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates an auth service
func NewService(repo *database.Repository, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against its bcrypt hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

// CreateToken issues a signed session token for the user and records the
// corresponding session row.
func (s *Service) CreateToken(ctx context.Context, userID string) (string, error) {
	tokenID := uuid.New().String()
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	session := &models.Session{
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return "", err
	}

	return signed, nil
}

// Validate parses a session token and confirms its session row still
// exists. Returns the user ID on success.
func (s *Service) Validate(ctx context.Context, tokenString string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	session, err := s.repo.GetSession(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	if time.Now().After(session.ExpiresAt) {
		return "", ErrInvalidToken
	}

	return session.UserID, nil
}

// Logout revokes a session token
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	return s.repo.DeleteSession(ctx, claims.ID)
}
