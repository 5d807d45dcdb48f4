package history

import (
	"slices"
	"strconv"
	"strings"

	"github.com/kk-code-lab/skillsearch/internal/search"
	"github.com/samber/lo"
)

// Entry is a frozen result set taken when a non-empty search completed.
// It serialises as {"skills": [...], "users": [...]}.
type Entry struct {
	search.ResultSet
}

// NewEntry snapshots results.
func NewEntry(results search.ResultSet) Entry {
	return Entry{ResultSet: results.Clone()}
}

// Key is the entry's identity key.
func (e Entry) Key() string {
	return IdentityKey(e.ResultSet)
}

// IdentityKey is the sorted skill ids and the sorted user ids, each joined
// with commas and separated by "|". Two result sets with the same id
// multisets share a key regardless of order.
func IdentityKey(results search.ResultSet) string {
	skillIDs := lo.Map(results.Skills, func(s search.SkillResult, _ int) int64 { return s.ID })
	userIDs := lo.Map(results.Users, func(u search.UserResult, _ int) int64 { return u.ID })
	return joinSorted(skillIDs) + "|" + joinSorted(userIDs)
}

func joinSorted(ids []int64) string {
	slices.Sort(ids)
	return strings.Join(lo.Map(ids, func(id int64, _ int) string {
		return strconv.FormatInt(id, 10)
	}), ",")
}
