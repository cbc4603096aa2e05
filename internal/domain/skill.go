package domain

import "strings"

// NormalizeSkill produces the display form of a skill label: surrounding
// whitespace trimmed and internal whitespace collapsed to single spaces.
// Original casing is preserved for display.
func NormalizeSkill(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SkillKey produces the canonical membership key for a skill: the normalized
// display form, case-folded. Two skills with equal keys are the same skill
// for matching purposes.
func SkillKey(s string) string {
	return strings.ToLower(NormalizeSkill(s))
}

// SkillSet is a normalized view over a list of skill labels. Membership
// tests use the case-folded key; the first-seen display form is kept for
// presentation.
type SkillSet struct {
	display map[string]string // key -> display form
	order   []string          // keys in first-seen order
}

// NewSkillSet builds a SkillSet from raw labels, dropping empties and
// deduplicating by normalized key.
func NewSkillSet(skills []string) SkillSet {
	set := SkillSet{display: make(map[string]string, len(skills))}
	for _, s := range skills {
		key := SkillKey(s)
		if key == "" {
			continue
		}
		if _, ok := set.display[key]; !ok {
			set.display[key] = NormalizeSkill(s)
			set.order = append(set.order, key)
		}
	}
	return set
}

// Contains reports membership by normalized key.
func (s SkillSet) Contains(skill string) bool {
	_, ok := s.display[SkillKey(skill)]
	return ok
}

// Len returns the number of distinct skills in the set.
func (s SkillSet) Len() int {
	return len(s.order)
}

// Display returns the deduplicated display forms in first-seen order.
func (s SkillSet) Display() []string {
	out := make([]string, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.display[key])
	}
	return out
}

// Intersect returns the receiver's display forms for skills present in both
// sets, in the receiver's order.
func (s SkillSet) Intersect(other SkillSet) []string {
	out := make([]string, 0)
	for _, key := range s.order {
		if _, ok := other.display[key]; ok {
			out = append(out, s.display[key])
		}
	}
	return out
}

// NormalizeSkillList returns the deduplicated display forms for a raw skill
// list. Used on profile writes so stored lists are already clean.
func NormalizeSkillList(skills []string) []string {
	return NewSkillSet(skills).Display()
}
