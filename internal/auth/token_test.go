package auth

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/models"
)

func TestVerify_RoundTrip(t *testing.T) {
	v := NewVerifier("secret")
	token, err := v.Sign(models.User{ID: 42, Username: "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	user, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if user.ID != 42 || user.Username != "alice" {
		t.Errorf("got user %+v", user)
	}
}

func TestVerify_Rejections(t *testing.T) {
	v := NewVerifier("secret")

	expired, err := v.Sign(models.User{ID: 1, Username: "a"}, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := NewVerifier("other-secret").Sign(models.User{ID: 1, Username: "a"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	// A token signed with "none" must never pass, whatever its claims say.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"expired", expired},
		{"wrong secret", foreign},
		{"unsigned", unsigned},
		{"non-numeric subject", badSubject},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Verify(tc.token)
			if err == nil {
				t.Fatal("expected an error")
			}
			if apperr.Status(err) != 401 {
				t.Errorf("expected 401, got %d", apperr.Status(err))
			}
		})
	}
}

func TestSign_SubjectCarriesID(t *testing.T) {
	v := NewVerifier("secret")
	token, err := v.Sign(models.User{ID: 7, Username: "bob"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	var claims Claims
	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatal(err)
	}
	if id, _ := strconv.ParseInt(claims.Subject, 10, 64); id != 7 {
		t.Errorf("subject = %q", claims.Subject)
	}
	if claims.Username != "bob" {
		t.Errorf("username = %q", claims.Username)
	}
}
