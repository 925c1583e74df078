package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"coursehub/internal/apperror"
	"coursehub/internal/models"
)

// TokenTTL is the lifetime of every issued token.
const TokenTTL = 24 * time.Hour

// ErrEmptySecret is returned by NewTokenService when no secret is given.
var ErrEmptySecret = errors.New("token secret is empty")

// Claims is the signed token payload: sub, role and exp.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenValidator is the part of TokenService the request guard depends on.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

// TokenService issues and validates HS256 tokens. The secret is fixed at
// construction and only read afterwards, so a TokenService is safe for
// concurrent use.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// TokenOption configures a TokenService at construction.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService returns a TokenService signing with secret. An empty
// secret is refused with ErrEmptySecret.
func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	s := &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token for subjectID that expires TokenTTL from now.
func (s *TokenService) Issue(subjectID string, role models.Role) (string, error) {
	if subjectID == "" || !role.Valid() {
		return "", apperror.Internal("Failed to create token")
	}

	issuedAt := s.now().Truncate(time.Second)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperror.Internal("Failed to create token")
	}
	return signed, nil
}

// Validate returns the claims of a well-formed, correctly signed, unexpired
// token. Every failure is the same Unauthorized error.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, errInvalidToken()
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, errInvalidToken()
	}
	return claims, nil
}

func errInvalidToken() error {
	return apperror.Unauthorized("Invalid token")
}
