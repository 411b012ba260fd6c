// Package token issues and decodes the signed tokens that carry an
// authenticated identity between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dpetrovs/authgate/internal/common"
)

// Claims is the decoded content of a token: who it was issued to, in which
// project, and the validity window.
type Claims struct {
	Subject   string
	Project   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// wireClaims pins the on-wire claim names: sub, prj, iat, exp.
type wireClaims struct {
	Project string `json:"prj,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and validates tokens with a shared HMAC secret. Access and
// refresh tokens share one Codec and differ only in the ttl passed to Issue.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
}

// NewCodec builds a Codec for the given secret and signing algorithm name.
// Only the HMAC family (HS256, HS384, HS512) is accepted.
func NewCodec(secret []byte, algorithm string) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token: empty secret")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: signing algorithm %q is not an HMAC method", algorithm)
	}
	return &Codec{secret: secret, method: method}, nil
}

// Issue signs a token for subject in project, valid for ttl from now. Every
// token carries a unique jti, so two issuances for the same identity within
// the same second still produce distinct strings.
func (c *Codec) Issue(subject, project string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(c.method, wireClaims{
		Project: project,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return t.SignedString(c.secret)
}

// Decode validates tokenString and returns its claims.
//
// Expired tokens map to common.ErrTokenExpired; any other signature or
// structural failure maps to common.ErrTokenMalformed. A token that passes
// validation but lacks the sub or prj claim maps to common.ErrMissingClaim.
// The project claim is never defaulted here.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &wireClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenMalformed
	}

	if claims.Subject == "" || claims.Project == "" {
		return nil, common.ErrMissingClaim
	}

	decoded := &Claims{
		Subject: claims.Subject,
		Project: claims.Project,
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Time
	}

	return decoded, nil
}
