// internal/models/biometrics.go
package models

import (
	"time"

	"vitality-workers/internal/scoring"
)

// BiometricRecord is the stored per-day wearable snapshot as it lives in
// the biometrics table. Nullable columns map to pointers so a missing
// reading survives the round trip instead of collapsing to zero.
type BiometricRecord struct {
	ID                string     `json:"id" db:"id"`
	UserID            string     `json:"userId" db:"user_id"`
	Date              string     `json:"date" db:"date"` // YYYY-MM-DD
	RecoveryPercent   *float64   `json:"recoveryPercent" db:"recovery_percent"`
	SleepHours        *float64   `json:"sleepHours" db:"sleep_hours"`
	SleepScorePercent *float64   `json:"sleepScorePercent" db:"sleep_score_percent"`
	HRV               *float64   `json:"hrv" db:"hrv_ms"`
	HRVBaseline       *float64   `json:"hrvBaseline" db:"hrv_baseline_ms"`
	RestingHeartRate  *float64   `json:"restingHeartRate" db:"resting_heart_rate"`
	StrainScore       *float64   `json:"strainScore" db:"strain_score"`
	FetchedAt         time.Time  `json:"fetchedAt" db:"fetched_at"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// ToDailyBiometrics converts the stored row into the snapshot the
// scoring engine consumes.
func (r *BiometricRecord) ToDailyBiometrics() scoring.DailyBiometrics {
	return scoring.DailyBiometrics{
		Date:              r.Date,
		RecoveryPercent:   r.RecoveryPercent,
		SleepHours:        r.SleepHours,
		SleepScorePercent: r.SleepScorePercent,
		HRV:               r.HRV,
		HRVBaseline:       r.HRVBaseline,
		RestingHeartRate:  r.RestingHeartRate,
		StrainScore:       r.StrainScore,
	}
}
