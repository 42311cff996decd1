package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types embedded as a claim. A single signing key serves both
// kinds; the type claim is what stops a refresh token from being
// replayed as an access credential.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is malformed or has an invalid signature")
	ErrMissingSubject = errors.New("token carries no user id")
	ErrWrongTokenType = errors.New("wrong token type")
)

type AppClaims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies claims with a single process-wide
// secret. It is constructed once from config and holds no mutable
// state.
type TokenCodec struct {
	secret []byte
	issuer string
}

func NewTokenCodec(secret, issuer string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), issuer: issuer}
}

// Encode mints a signed token of the given type for the user,
// expiring after ttl.
func (c *TokenCodec) Encode(tokenType string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &AppClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(c.secret)
}

// Decode verifies signature and expiry and returns the user id the
// token was issued for. Checks run in a fixed order: expiry, then
// structure/signature, then subject presence, then token type.
func (c *TokenCodec) Decode(tokenString, expectedType string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AppClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*AppClaims)
	if !ok || !token.Valid {
		return 0, ErrTokenMalformed
	}
	if claims.UserID == 0 {
		return 0, ErrMissingSubject
	}
	if claims.TokenType != expectedType {
		return 0, ErrWrongTokenType
	}

	return claims.UserID, nil
}
