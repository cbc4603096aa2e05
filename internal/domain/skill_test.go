package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkill(t *testing.T) {
	assert.Equal(t, "Machine Learning", NormalizeSkill("  Machine   Learning "))
	assert.Equal(t, "Go", NormalizeSkill("Go"))
	assert.Equal(t, "", NormalizeSkill("   "))
}

func TestSkillKey_CaseFolds(t *testing.T) {
	assert.Equal(t, SkillKey("Machine Learning"), SkillKey(" machine   LEARNING "))
	assert.NotEqual(t, SkillKey("Go"), SkillKey("Rust"))
}

func TestNewSkillSet_DeduplicatesByKey(t *testing.T) {
	set := NewSkillSet([]string{"Python", " python ", "PYTHON", "Go"})

	assert.Equal(t, 2, set.Len())
	// First-seen display form wins.
	assert.Equal(t, []string{"Python", "Go"}, set.Display())
}

func TestNewSkillSet_DropsEmpties(t *testing.T) {
	set := NewSkillSet([]string{"", "  ", "CSS"})
	assert.Equal(t, []string{"CSS"}, set.Display())
}

func TestSkillSet_Contains(t *testing.T) {
	set := NewSkillSet([]string{"Machine Learning", "Go"})

	assert.True(t, set.Contains("machine learning"))
	assert.True(t, set.Contains("  GO "))
	assert.False(t, set.Contains("Rust"))
}

func TestSkillSet_Intersect(t *testing.T) {
	teach := NewSkillSet([]string{"React", "JavaScript", "CSS"})
	learn := NewSkillSet([]string{"css", "react", "Python"})

	// Receiver's display forms and order.
	assert.Equal(t, []string{"React", "CSS"}, teach.Intersect(learn))
	assert.Equal(t, []string{"css", "react"}, learn.Intersect(teach))
	assert.Empty(t, teach.Intersect(NewSkillSet(nil)))
}

func TestUser_TeachesAndWants(t *testing.T) {
	u := &User{
		TeachSkills: []string{"Python", "Machine Learning"},
		LearnSkills: []string{"React"},
	}

	assert.True(t, u.Teaches("python"))
	assert.False(t, u.Teaches("React"))
	assert.True(t, u.Wants("react"))
	assert.False(t, u.Wants("Python"))
}

func TestNormalizeSkillList(t *testing.T) {
	got := NormalizeSkillList([]string{" Node.js ", "node.js", "", "AWS"})
	assert.Equal(t, []string{"Node.js", "AWS"}, got)
}
