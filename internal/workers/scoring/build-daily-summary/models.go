// internal/workers/scoring/build-daily-summary/models.go
package builddailysummary

import "vitality-workers/internal/scoring"

type Input struct {
	UserID        string                          `json:"userId"`
	Date          string                          `json:"date"`
	FitScore      scoring.CompositeFitScoreResult `json:"fitScoreResult"`
	RecoveryScore *float64                        `json:"recoveryScore,omitempty"`
	TrainingScore *float64                        `json:"trainingScore,omitempty"`
	RecoveryZone  string                          `json:"recoveryZone,omitempty"`
}

type Output struct {
	Rows     []scoring.SummaryRow `json:"rows"`
	Summary  string               `json:"summary"`
	Headline string               `json:"headline"`
}
