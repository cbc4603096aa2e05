package domain

import "time"

// User represents a member profile: who they are, what they can teach, and
// what they want to learn, plus their running reputation.
type User struct {
	ID                string    `json:"id"`
	DisplayName       string    `json:"display_name"`
	Email             string    `json:"email"`
	Bio               string    `json:"bio,omitempty"`
	TeachSkills       []string  `json:"teach_skills"`
	LearnSkills       []string  `json:"learn_skills"`
	Rating            float64   `json:"rating"`
	SessionsCompleted int       `json:"sessions_completed"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Teaches reports whether the user advertises the given skill as teachable.
// Matching is by normalized form, so " Python " teaches "python".
func (u *User) Teaches(skill string) bool {
	return NewSkillSet(u.TeachSkills).Contains(skill)
}

// Wants reports whether the user lists the given skill as one they want to learn.
func (u *User) Wants(skill string) bool {
	return NewSkillSet(u.LearnSkills).Contains(skill)
}
