// internal/models/session.go
package models

import (
	"time"

	"vitality-workers/internal/scoring"
)

// SessionRecord is a user-entered training session row.
type SessionRecord struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"userId" db:"user_id"`
	Date            string    `json:"date" db:"date"` // YYYY-MM-DD
	Type            string    `json:"type" db:"session_type"`
	DurationMinutes float64   `json:"durationMinutes" db:"duration_minutes"`
	Intensity       string    `json:"intensity,omitempty" db:"intensity"`
	Goal            string    `json:"goal,omitempty" db:"goal"`
	Comment         string    `json:"comment,omitempty" db:"comment"`
	Skipped         bool      `json:"skipped" db:"skipped"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// ToTrainingSession converts the stored row into the engine's session
// type.
func (r *SessionRecord) ToTrainingSession() scoring.TrainingSession {
	return scoring.TrainingSession{
		Type:            r.Type,
		DurationMinutes: r.DurationMinutes,
		Intensity:       scoring.Intensity(r.Intensity),
		Goal:            r.Goal,
		Comment:         r.Comment,
		Skipped:         r.Skipped,
	}
}
