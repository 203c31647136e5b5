package auth

import (
	"crypto/rand"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserClaims are embedded in the session token handed to the deploy service.
type UserClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Plan  string `json:"plan"`
}

// TokenIssuer signs session tokens with HS256.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer constructs an issuer. An empty secret gets a random 32-byte key.
func NewTokenIssuer(secret []byte) (*TokenIssuer, error) {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, errors.Wrap(err, "generate token secret")
		}
	}

	return &TokenIssuer{secret: secret}, nil
}

// Issue signs a token for identity valid in [issuedAt, expiresAt).
func (i *TokenIssuer) Issue(identity *Identity, issuedAt, expiresAt time.Time) (string, error) {
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.UserID,
			Issuer:    "miridev-mcp",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: identity.Email,
		Plan:  identity.Plan,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return token, nil
}

// parse verifies token and returns its claims.
func (i *TokenIssuer) parse(token string, now time.Time) (*UserClaims, error) {
	claims := new(UserClaims)
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}

	return claims, nil
}
