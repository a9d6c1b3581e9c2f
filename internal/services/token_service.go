package services

import (
	"errors"
	"time"

	"blog-backend/internal/errs"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and verifies HS256 access tokens whose "id" claim is the user id.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) Sign(userID string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify returns the user id carried by tokenString. Every failure is reported as
// an unauthenticated error.
func (s *TokenService) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errs.Unauthenticated("missing token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errs.Unauthenticated("token expired")
		}
		return "", errs.Unauthenticated("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errs.Unauthenticated("invalid token")
	}
	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", errs.Unauthenticated("invalid token")
	}
	return userID, nil
}
