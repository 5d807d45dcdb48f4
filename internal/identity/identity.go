// Package identity describes the signed-in user as seen by the search
// subsystem. The subsystem reacts to identity changes but never mutates it.
package identity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the signed-in user. The zero value is an anonymous session.
type Identity struct {
	ID          int64
	FirstName   string
	LastName    string
	DisplayName string
	Slug        string
}

// SignedIn reports whether a user id is known.
func (id Identity) SignedIn() bool {
	return id.ID != 0
}

// Name is the identity's own display name: the explicit display name, or
// first and last name joined.
func (id Identity) Name() string {
	if name := strings.TrimSpace(id.DisplayName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(id.FirstName) + " " + strings.TrimSpace(id.LastName))
}

// SameDisplay reports whether id and other render identically in results.
func (id Identity) SameDisplay(other Identity) bool {
	return id.ID == other.ID && id.Name() == other.Name() && id.Slug == other.Slug
}

// FromToken reads the identity claims of a session token. The signature is
// not checked here; the auth layer that issued the token already did.
func FromToken(raw string) (Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return Identity{}, fmt.Errorf("parse session token: %w", err)
	}

	id, err := userIDClaim(claims)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		ID:          id,
		FirstName:   stringClaim(claims, "given_name"),
		LastName:    stringClaim(claims, "family_name"),
		DisplayName: stringClaim(claims, "name"),
		Slug:        stringClaim(claims, "slug"),
	}, nil
}

func userIDClaim(claims jwt.MapClaims) (int64, error) {
	for _, key := range []string{"user_id", "sub"} {
		value, ok := claims[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			return int64(v), nil
		case string:
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("session token %s claim %q is not numeric", key, v)
			}
			return id, nil
		}
	}
	return 0, fmt.Errorf("session token has no user id claim")
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
