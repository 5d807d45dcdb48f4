package search

import "encoding/json"

// OfferType narrows results to offers, requests, or both.
type OfferType string

const (
	OfferTypeAll     OfferType = ""
	OfferTypeOffer   OfferType = "offer"
	OfferTypeSeeking OfferType = "seeking"
)

// Next cycles all → offer → seeking → all.
func (t OfferType) Next() OfferType {
	switch t {
	case OfferTypeAll:
		return OfferTypeOffer
	case OfferTypeOffer:
		return OfferTypeSeeking
	default:
		return OfferTypeAll
	}
}

// Label is the human readable form used in the filter bar.
func (t OfferType) Label() string {
	switch t {
	case OfferTypeOffer:
		return "offers"
	case OfferTypeSeeking:
		return "seeking"
	default:
		return "all"
	}
}

// FilterSet holds the structured filters of a query. Prices stay strings
// because they are passed through to the server untouched.
type FilterSet struct {
	OfferType      OfferType `json:"offer_type"`
	OnlyMyLocation bool      `json:"only_my_location"`
	PriceMin       string    `json:"price_min"`
	PriceMax       string    `json:"price_max"`
	Country        string    `json:"country"`
}

// SkillResult is a marketplace offer snapshot. Owner fields are copies of
// profile data and may be stale.
type SkillResult struct {
	ID               int64       `json:"id"`
	Category         string      `json:"category"`
	Subcategory      string      `json:"subcategory,omitempty"`
	Description      string      `json:"description,omitempty"`
	IsSeeking        bool        `json:"is_seeking"`
	Price            json.Number `json:"price_from,omitempty"`
	Currency         string      `json:"currency,omitempty"`
	District         string      `json:"district,omitempty"`
	Location         string      `json:"location,omitempty"`
	Country          string      `json:"country,omitempty"`
	OwnerUserID      int64       `json:"user_id,omitempty"`
	OwnerDisplayName string      `json:"user_display_name,omitempty"`
	OwnerSlug        string      `json:"user_slug,omitempty"`
}

// Title is the most specific category label of the offer.
func (s SkillResult) Title() string {
	if s.Subcategory != "" {
		return s.Subcategory
	}
	return s.Category
}

// UserResult is a user hit. DisplayName and Slug are copies of profile data.
type UserResult struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Slug        string `json:"slug,omitempty"`
	IsVerified  bool   `json:"is_verified"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// ResultSet is one response of the search endpoint. Order inside each slice
// is the server's and is preserved.
type ResultSet struct {
	Skills []SkillResult `json:"skills"`
	Users  []UserResult  `json:"users"`
}

// EmptyResults returns a result set with non-nil, empty slices.
func EmptyResults() ResultSet {
	return ResultSet{Skills: []SkillResult{}, Users: []UserResult{}}
}

// IsEmpty reports whether the set holds neither skills nor users.
func (rs ResultSet) IsEmpty() bool {
	return len(rs.Skills) == 0 && len(rs.Users) == 0
}

// Clone returns a deep copy so callers can mutate denormalized fields freely.
func (rs ResultSet) Clone() ResultSet {
	out := ResultSet{
		Skills: make([]SkillResult, len(rs.Skills)),
		Users:  make([]UserResult, len(rs.Users)),
	}
	copy(out.Skills, rs.Skills)
	copy(out.Users, rs.Users)
	return out
}

// ApplyProfile overwrites the denormalized name and slug of every reference
// to userID. An empty slug leaves the stored slug alone. It reports whether
// anything changed.
func (rs *ResultSet) ApplyProfile(userID int64, displayName, slug string) bool {
	if rs == nil || userID == 0 {
		return false
	}
	changed := false
	for i := range rs.Users {
		u := &rs.Users[i]
		if u.ID != userID {
			continue
		}
		if displayName != "" && u.DisplayName != displayName {
			u.DisplayName = displayName
			changed = true
		}
		if slug != "" && u.Slug != slug {
			u.Slug = slug
			changed = true
		}
	}
	for i := range rs.Skills {
		s := &rs.Skills[i]
		if s.OwnerUserID != userID {
			continue
		}
		if displayName != "" && s.OwnerDisplayName != displayName {
			s.OwnerDisplayName = displayName
			changed = true
		}
		if slug != "" && s.OwnerSlug != slug {
			s.OwnerSlug = slug
			changed = true
		}
	}
	return changed
}

// UserIDs returns every user id referenced by the set, including skill
// owners, in first-seen order without duplicates.
func (rs ResultSet) UserIDs() []int64 {
	seen := make(map[int64]struct{}, len(rs.Users)+len(rs.Skills))
	ids := make([]int64, 0, len(rs.Users)+len(rs.Skills))
	add := func(id int64) {
		if id == 0 {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, u := range rs.Users {
		add(u.ID)
	}
	for _, s := range rs.Skills {
		add(s.OwnerUserID)
	}
	return ids
}
