// Package auth issues and verifies the session tokens behind the
// dashboard API. Authentication is simulated: any well-formed
// credentials are accepted, there is no user store. The token exists so
// the API surface looks and behaves like a logged-in dashboard.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken       = errors.New("invalid session token")
	ErrInvalidCredentials = errors.New("email and a password of at least 6 characters are required")
)

// MinPasswordLength mirrors the login form's validation rule.
const MinPasswordLength = 6

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Login validates the credential shape only and issues a signed token.
// No password is ever checked against anything.
func (s *Service) Login(email, password string) (string, error) {
	if !strings.Contains(email, "@") || len(password) < MinPasswordLength {
		return "", ErrInvalidCredentials
	}

	return s.issue(email)
}

func (s *Service) issue(email string) (string, error) {
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify checks the token signature and expiry and returns the subject
// email.
func (s *Service) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// Middleware rejects requests without a valid bearer token.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		if _, err := s.Verify(tokenString); err != nil {
			http.Error(w, "invalid session token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
