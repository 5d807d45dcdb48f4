// Package profile reads authoritative user display data. It backs the
// freshness checks of search history: Peek answers from memory only, Fetch
// goes to the network and coalesces concurrent lookups of the same user.
package profile

import "strings"

// Profile is the authoritative display data of a user.
type Profile struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Slug        string `json:"slug,omitempty"`
}

// Name is the name shown next to results: the explicit display name, or
// first and last name joined.
func (p Profile) Name() string {
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}
