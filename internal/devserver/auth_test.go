package devserver

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestIssueAndParseToken(t *testing.T) {
	tok, err := IssueToken(testSecret, 42, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	id, err := ParseToken(testSecret, tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	good, err := IssueToken(testSecret, 1, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := IssueToken(testSecret, 1, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	otherAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.RegisteredClaims{
		Subject: strconv.Itoa(1),
	}).SignedString(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	}).SignedString(testSecret)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		secret []byte
		token  string
	}{
		{"wrong secret", []byte("other"), good},
		{"expired", testSecret, expired},
		{"HS384", testSecret, otherAlg},
		{"non-numeric subject", testSecret, badSubject},
		{"garbage", testSecret, "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.secret, tt.token); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestIssueToken_EmptySecret(t *testing.T) {
	if _, err := IssueToken(nil, 1, time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}
