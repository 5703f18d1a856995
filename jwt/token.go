// Package jwt implements bookmarkai.TokenService with HMAC-signed JSON Web
// Tokens.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// Issuer is set on every token and required when verifying.
const Issuer = "bookmarkd"

// Ensure TokenService implements bookmarkai.TokenService at compile time.
var _ bookmarkai.TokenService = (*TokenService)(nil)

// TokenService issues HS256 tokens whose subject is the user ID.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithTTL overrides DefaultTTL.
func WithTTL(d time.Duration) Option {
	return func(s *TokenService) {
		s.ttl = d
	}
}

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret string, opts ...Option) *TokenService {
	s := &TokenService{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue returns a signed token for userID.
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", bookmarkai.Errorf(bookmarkai.EINVALID, "user ID required")
	}
	if len(s.secret) == 0 {
		return "", bookmarkai.Errorf(bookmarkai.EINTERNAL, "token secret not configured")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the user ID carried by token.
func (s *TokenService) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "Token is not valid")
	}
	if claims.Subject == "" {
		return "", bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "Token is not valid")
	}
	return claims.Subject, nil
}
