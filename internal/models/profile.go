// internal/models/profile.go
package models

import (
	"time"

	"vitality-workers/internal/scoring"
)

// ProfileRecord is the long-lived user context row read by the scoring
// workers. Mutated only through the profile settings surface, never by
// the engine.
type ProfileRecord struct {
	UserID           string    `json:"userId" db:"user_id"`
	RehabStage       string    `json:"rehabStage,omitempty" db:"rehab_stage"`
	PrimaryGoal      string    `json:"primaryGoal,omitempty" db:"primary_goal"`
	WeeklyLoad       string    `json:"weeklyLoad,omitempty" db:"weekly_load"`
	FitnessGoal      string    `json:"fitnessGoal,omitempty" db:"fitness_goal"`
	TargetSleepHours float64   `json:"targetSleepHours,omitempty" db:"target_sleep_hours"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// ToUserContext converts the stored row into the engine's long-lived
// context type.
func (r *ProfileRecord) ToUserContext() scoring.UserContext {
	return scoring.UserContext{
		RehabStage:  r.RehabStage,
		PrimaryGoal: r.PrimaryGoal,
		WeeklyLoad:  r.WeeklyLoad,
		FitnessGoal: r.FitnessGoal,
	}
}
