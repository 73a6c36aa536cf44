package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/artem13815/newsdash/pkg/auth"
)

type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Claims carries the session id in jti plus the display projection of the user.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

var _ auth.TokenIssuer = (*Generator)(nil)

func (g *Generator) Issue(ctx context.Context, sessionID string, identity auth.Identity) (string, time.Time, error) {
	now := g.now().UTC()
	exp := now.Add(g.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    g.issuer,
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: identity.Email,
		Name:  identity.DisplayName,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (g *Generator) Parse(tokenStr string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(g.now),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return g.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", auth.ErrUnauthenticated, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ID == "" {
		return "", auth.ErrUnauthenticated
	}
	return claims.ID, nil
}
