// internal/scoring/types.go
package scoring

import "math"

// Zone is the three-level readiness classification derived from the
// day's recovery percentage.
type Zone string

const (
	ZoneGreen  Zone = "green"
	ZoneYellow Zone = "yellow"
	ZoneRed    Zone = "red"
)

// Intensity is the self-reported effort level of a training session.
type Intensity string

const (
	IntensityLow      Intensity = "Low"
	IntensityModerate Intensity = "Moderate"
	IntensityHigh     Intensity = "High"
)

// DailyBiometrics is the immutable per-day snapshot supplied by the
// telemetry collaborator. Every field except Date is optional; nil means
// the wearable did not report it, and the scorers substitute a neutral
// midpoint rather than zero.
type DailyBiometrics struct {
	Date              string   `json:"date"`
	RecoveryPercent   *float64 `json:"recoveryPercent,omitempty"`
	SleepHours        *float64 `json:"sleepHours,omitempty"`
	SleepScorePercent *float64 `json:"sleepScorePercent,omitempty"`
	HRV               *float64 `json:"hrv,omitempty"`
	HRVBaseline       *float64 `json:"hrvBaseline,omitempty"`
	RestingHeartRate  *float64 `json:"restingHeartRate,omitempty"`
	StrainScore       *float64 `json:"strainScore,omitempty"`
}

// TrainingSession is one user-entered session. Empty strings mean the
// field was not supplied.
type TrainingSession struct {
	Type            string    `json:"type"`
	DurationMinutes float64   `json:"durationMinutes"`
	Intensity       Intensity `json:"intensity,omitempty"`
	Goal            string    `json:"goal,omitempty"`
	Comment         string    `json:"comment,omitempty"`
	Skipped         bool      `json:"skipped"`
}

// UserContext is the long-lived profile state the engine reads but never
// mutates. RehabStage is one of Acute, Sub-acute, Rehab,
// Return-to-training, None; WeeklyLoad is one of Light, Normal, Heavy,
// Competition. Both are matched case-insensitively.
type UserContext struct {
	RehabStage  string `json:"rehabStage,omitempty"`
	PrimaryGoal string `json:"primaryGoal,omitempty"`
	WeeklyLoad  string `json:"weeklyLoad,omitempty"`
	FitnessGoal string `json:"fitnessGoal,omitempty"`
}

// Breakdown holds named sub-component points for a ScoreResult.
type Breakdown map[string]float64

// ScoreResult is the output of the recovery and training scorers.
// Score is on a 1-10 scale with one decimal, except the skipped-session
// branch which reports 0.
type ScoreResult struct {
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
	Analysis  string    `json:"analysis"`
	Zone      Zone      `json:"zone"`
}

// FitScoreComponents holds the named 0-10 sub-scores of the composite
// index, in presentation order.
type FitScoreComponents struct {
	Sleep             float64 `json:"sleep"`
	Recovery          float64 `json:"recovery"`
	CardioBalance     float64 `json:"cardioBalance"`
	Nutrition         float64 `json:"nutrition"`
	TrainingAlignment float64 `json:"trainingAlignment"`
}

// CompositeFitScoreResult is the combined daily index. FitScore is on a
// 0-10 scale with one decimal. Recommendations is always present but
// currently empty; it is reserved for a future advisory layer.
type CompositeFitScoreResult struct {
	FitScore        float64            `json:"fitScore"`
	Components      FitScoreComponents `json:"components"`
	Recommendations []string           `json:"recommendations"`
}

// Band is the context-adjusted expected strain range for the day.
type Band struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Ideal float64 `json:"ideal"`
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// round1 rounds to one decimal place, the precision of every published
// score in the engine.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
