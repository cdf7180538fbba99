package domain

import "time"

// UserPlan enumerates billing plans.
type UserPlan string

const (
	UserPlanBasic   UserPlan = "basic"
	UserPlanPremium UserPlan = "premium"
)

// ExperienceBucket enumerates the supported experience ranges.
type ExperienceBucket string

const (
	Experience0to2   ExperienceBucket = "0-2 years"
	Experience2to5   ExperienceBucket = "2-5 years"
	Experience5to10  ExperienceBucket = "5-10 years"
	Experience10plus ExperienceBucket = "10+ years"
)

// ValidExperience reports whether v is a known experience bucket. The empty
// string is allowed because the profile field is optional.
func ValidExperience(v string) bool {
	switch ExperienceBucket(v) {
	case "", Experience0to2, Experience2to5, Experience5to10, Experience10plus:
		return true
	}
	return false
}

// User represents an account and the profile attributes the roadmap prompt
// is built from.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	Image            string
	Bio              string
	Industry         string
	Experience       string
	Skills           []string
	LinkedIn         string
	GitHub           string
	Plan             UserPlan
	Credits          int
	RoadmapCompleted int
	CurrentStreak    int
	LastLogin        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsPremium reports whether the user is on the premium plan.
func (u User) IsPremium() bool {
	return u.Plan == UserPlanPremium
}
