// Package auth verifies bearer tokens issued by the identity provider
// and exposes the current requester to handlers. Token issuance happens
// elsewhere; this package only checks HS256 signatures and expiry.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/models"
)

// Claims is the token payload: the registered subject carries the user id
// as a decimal string, username rides along so handlers don't need a
// lookup per request.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a bearer token and returns the requester it
// identifies. Any defect (bad signature, wrong algorithm, expiry, garbled
// subject) is reported as an Unauthorized error.
func (v *Verifier) Verify(token string) (*models.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return &models.User{ID: id, Username: claims.Username}, nil
}

// Sign mints a token for a user. The server never exposes this over HTTP;
// it exists for the seed tool and tests.
func (v *Verifier) Sign(user models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
