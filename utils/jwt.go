package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frontlab/todo-api/models"
)

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// tampering. Callers are not told which.
var ErrInvalidToken = errors.New("invalid token")

type userClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token embedding the user's identity, valid
// for ttl from now.
func GenerateToken(user models.User, secret []byte, ttl time.Duration) (string, error) {
	return GenerateTokenAt(user, secret, ttl, time.Now())
}

// GenerateTokenAt is GenerateToken with an explicit issue instant.
func GenerateTokenAt(user models.User, secret []byte, ttl time.Duration, issuedAt time.Time) (string, error) {
	claims := userClaims{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken checks signature and expiry and returns the embedded identity.
func VerifyToken(tokenString string, secret []byte) (models.User, error) {
	claims := new(userClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return models.User{}, ErrInvalidToken
	}
	return models.User{ID: claims.ID, Email: claims.Email, Name: claims.Name}, nil
}
