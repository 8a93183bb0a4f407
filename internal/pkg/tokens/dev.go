package tokens

import (
	"context"
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// DevTokenService mints and verifies HS256 tokens carrying the same
// claim shape an ID token would. Selected when no OIDC client ID is
// configured; never meant for production.
type DevTokenService struct {
	secret []byte
	ttl    time.Duration
}

type devClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwtlib.RegisteredClaims
}

func NewDevTokenService(secret string, ttl time.Duration) *DevTokenService {
	return &DevTokenService{secret: []byte(secret), ttl: ttl}
}

func (s *DevTokenService) Generate(subject, email, name string) (string, error) {
	claims := devClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *DevTokenService) Verify(_ context.Context, rawToken string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(rawToken, &devClaims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*devClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return &Claims{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}
