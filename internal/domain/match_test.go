package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(id, name string, teach, learn []string) User {
	return User{ID: id, DisplayName: name, TeachSkills: teach, LearnSkills: learn}
}

func TestRankMatches_BidirectionalScore(t *testing.T) {
	requester := user("r", "Requester", []string{"React", "CSS"}, []string{"Python", "AWS"})
	candidates := []User{
		user("a", "Alice", []string{"Python", "AWS"}, []string{"React", "CSS"}), // 2 + 2
		user("b", "Bob", []string{"Python"}, []string{"Go"}),                    // 1 + 0
	}

	matches := RankMatches(&requester, candidates)

	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].UserID)
	assert.Equal(t, 4, matches[0].Score)
	assert.Equal(t, []string{"Python", "AWS"}, matches[0].CanTeachMe)
	assert.Equal(t, []string{"React", "CSS"}, matches[0].CanLearnFromMe)

	assert.Equal(t, "b", matches[1].UserID)
	assert.Equal(t, 1, matches[1].Score)
	assert.Empty(t, matches[1].CanLearnFromMe)
}

func TestRankMatches_ExcludesRequesterAndZeroScores(t *testing.T) {
	requester := user("r", "Requester", []string{"Go"}, []string{"Rust"})
	candidates := []User{
		requester, // self
		user("x", "NoOverlap", []string{"Figma"}, []string{"UI Design"}),
		user("y", "Overlap", []string{"Rust"}, nil),
	}

	matches := RankMatches(&requester, candidates)

	require.Len(t, matches, 1)
	assert.Equal(t, "y", matches[0].UserID)
}

func TestRankMatches_NormalizedOverlap(t *testing.T) {
	requester := user("r", "Requester", nil, []string{"machine learning"})
	candidates := []User{
		user("a", "Alice", []string{"  Machine   LEARNING "}, nil),
	}

	matches := RankMatches(&requester, candidates)

	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Score)
	// Candidate's display form is reported.
	assert.Equal(t, []string{"Machine LEARNING"}, matches[0].CanTeachMe)
}

func TestRankMatches_AsymmetricViews(t *testing.T) {
	// A teaches Python, wants Go; B teaches Go, wants Java.
	a := user("a", "A", []string{"Python"}, []string{"Go"})
	b := user("b", "B", []string{"Go"}, []string{"Java"})

	fromA := RankMatches(&a, []User{b})
	require.Len(t, fromA, 1)
	assert.Equal(t, 1, fromA[0].Score) // B can teach Go; B does not want Python

	fromB := RankMatches(&b, []User{a})
	require.Len(t, fromB, 1)
	assert.Equal(t, 1, fromB[0].Score) // A wants Go; A's Python is not wanted by B
}

func TestRankMatches_DeterministicTieBreak(t *testing.T) {
	requester := user("r", "Requester", nil, []string{"Go"})

	low := user("z-low", "Zed", []string{"Go"}, nil)
	low.Rating = 3.5
	high := user("a-high", "Ann", []string{"Go"}, nil)
	high.Rating = 4.5
	same1 := user("m-1", "Mia", []string{"Go"}, nil)
	same1.Rating = 4.0
	same2 := user("m-0", "Moe", []string{"Go"}, nil)
	same2.Rating = 4.0

	matches := RankMatches(&requester, []User{low, same1, high, same2})

	require.Len(t, matches, 4)
	// Equal scores: rating desc, then id asc.
	assert.Equal(t, []string{"a-high", "m-0", "m-1", "z-low"},
		[]string{matches[0].UserID, matches[1].UserID, matches[2].UserID, matches[3].UserID})
}

func TestFilterMatchesByName(t *testing.T) {
	matches := []Match{
		{UserID: "1", DisplayName: "Alice Johnson"},
		{UserID: "2", DisplayName: "Bob Smith"},
	}

	assert.Len(t, FilterMatchesByName(matches, ""), 2)
	assert.Len(t, FilterMatchesByName(matches, "alice"), 1)
	assert.Len(t, FilterMatchesByName(matches, "SMITH"), 1)
	assert.Empty(t, FilterMatchesByName(matches, "carol"))
}
