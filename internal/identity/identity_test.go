package identity

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestFromTokenReadsClaims(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{
		"user_id":     42,
		"given_name":  "Ján",
		"family_name": "Novák",
		"slug":        "jan-novak",
	})

	id, err := FromToken(raw)
	if err != nil {
		t.Fatalf("FromToken: %v", err)
	}
	if id.ID != 42 || id.Slug != "jan-novak" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if id.Name() != "Ján Novák" {
		t.Fatalf("Name()=%q want %q", id.Name(), "Ján Novák")
	}
	if !id.SignedIn() {
		t.Fatal("identity with id should be signed in")
	}
}

func TestFromTokenSubjectFallback(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "17", "name": "Eva"})
	id, err := FromToken(raw)
	if err != nil {
		t.Fatalf("FromToken: %v", err)
	}
	if id.ID != 17 || id.Name() != "Eva" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestFromTokenErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "not-a-token"},
		{"no id", signedToken(t, jwt.MapClaims{"name": "x"})},
		{"non numeric subject", signedToken(t, jwt.MapClaims{"sub": "abc"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromToken(tt.raw); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}
}

func TestFromTokenEmptyIsAnonymous(t *testing.T) {
	id, err := FromToken("  ")
	if err != nil {
		t.Fatalf("FromToken: %v", err)
	}
	if id.SignedIn() {
		t.Fatal("empty token should yield anonymous identity")
	}
}

func TestSameDisplay(t *testing.T) {
	a := Identity{ID: 1, FirstName: "Ján", LastName: "Novák", Slug: "jan"}
	b := Identity{ID: 1, DisplayName: "Ján Novák", Slug: "jan"}
	if !a.SameDisplay(b) {
		t.Fatal("identities rendering the same name should compare equal")
	}
	b.Slug = "jan-2"
	if a.SameDisplay(b) {
		t.Fatal("slug change must be detected")
	}
}
