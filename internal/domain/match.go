package domain

import (
	"sort"
	"strings"
)

// Match is one ranked candidate for a requesting user.
type Match struct {
	UserID            string   `json:"user_id"`
	DisplayName       string   `json:"display_name"`
	Score             int      `json:"score"`
	CanTeachMe        []string `json:"can_teach_me"`
	CanLearnFromMe    []string `json:"can_learn_from_me"`
	Rating            float64  `json:"rating"`
	SessionsCompleted int      `json:"sessions_completed"`
}

// RankMatches scores every candidate against the requester and returns the
// ranked list. The score is the bidirectional skill overlap:
//
//	score = |candidate.teach ∩ requester.learn| + |candidate.learn ∩ requester.teach|
//
// The requester and zero-score candidates are excluded. Ordering is
// deterministic: score descending, then rating descending, then id ascending.
func RankMatches(requester *User, candidates []User) []Match {
	requesterTeach := NewSkillSet(requester.TeachSkills)
	requesterLearn := NewSkillSet(requester.LearnSkills)

	matches := make([]Match, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if c.ID == requester.ID {
			continue
		}

		canTeachMe := NewSkillSet(c.TeachSkills).Intersect(requesterLearn)
		canLearnFromMe := NewSkillSet(c.LearnSkills).Intersect(requesterTeach)

		score := len(canTeachMe) + len(canLearnFromMe)
		if score == 0 {
			continue
		}

		matches = append(matches, Match{
			UserID:            c.ID,
			DisplayName:       c.DisplayName,
			Score:             score,
			CanTeachMe:        canTeachMe,
			CanLearnFromMe:    canLearnFromMe,
			Rating:            c.Rating,
			SessionsCompleted: c.SessionsCompleted,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Rating != matches[j].Rating {
			return matches[i].Rating > matches[j].Rating
		}
		return matches[i].UserID < matches[j].UserID
	})

	return matches
}

// FilterMatchesByName narrows a ranked list to candidates whose display name
// contains the given term, case-insensitively. An empty term keeps everything.
// Filtering never changes scores or relative order.
func FilterMatchesByName(matches []Match, term string) []Match {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return matches
	}

	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if strings.Contains(strings.ToLower(m.DisplayName), term) {
			out = append(out, m)
		}
	}
	return out
}
