package suggest

import (
	"strings"

	"github.com/kk-code-lab/skillsearch/internal/identity"
	"github.com/kk-code-lab/skillsearch/internal/search"
	"github.com/kk-code-lab/skillsearch/internal/textutil"
	"github.com/samber/lo"
)

// Candidate is a pool entry tagged for ranking. Title is the folded form of
// the skill's subcategory (or category).
type Candidate struct {
	Skill   search.SkillResult
	Title   string
	Seeking bool
}

func newCandidate(skill search.SkillResult) Candidate {
	return Candidate{
		Skill:   skill,
		Title:   textutil.FoldTitle(skill.Title()),
		Seeking: skill.IsSeeking,
	}
}

// Rank orders pool for self: candidates complementary to one of self's own
// entries first, then everything else, pool order kept within each group.
// Self's own entries never appear in the output.
func Rank(pool []search.SkillResult, self identity.Identity, limit int) []Candidate {
	candidates := lo.Map(pool, func(skill search.SkillResult, _ int) Candidate {
		return newCandidate(skill)
	})

	selfName := self.Name()
	isOwn := func(c Candidate) bool {
		if self.SignedIn() && c.Skill.OwnerUserID == self.ID {
			return true
		}
		if c.Skill.OwnerUserID != 0 && self.SignedIn() {
			return false
		}
		return selfName != "" && textutil.EqualFolded(c.Skill.OwnerDisplayName, selfName)
	}

	own := lo.Filter(candidates, func(c Candidate, _ int) bool { return isOwn(c) })
	others := lo.Reject(candidates, func(c Candidate, _ int) bool { return isOwn(c) })
	if len(others) == 0 {
		return []Candidate{}
	}

	complementary := make([]Candidate, 0, len(others))
	remaining := make([]Candidate, 0, len(others))
	for _, c := range others {
		if lo.SomeBy(own, func(o Candidate) bool { return Complements(o, c) }) {
			complementary = append(complementary, c)
		} else {
			remaining = append(remaining, c)
		}
	}

	ranked := append(complementary, remaining...)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Complements reports whether candidate sits on the other side of the market
// from own (one offers, the other seeks) and their titles overlap by
// substring in either direction. The overlap test is loose on purpose and
// can pair unrelated labels sharing a fragment.
func Complements(own, candidate Candidate) bool {
	if own.Seeking == candidate.Seeking {
		return false
	}
	return strings.Contains(candidate.Title, own.Title) || strings.Contains(own.Title, candidate.Title)
}
