// internal/workers/scoring/score-training/models.go
package scoretraining

import "vitality-workers/internal/scoring"

// Input carries the session payload as a raw map so it can be
// schema-validated before it is decoded into the engine's session type.
type Input struct {
	UserID     string                  `json:"userId"`
	Date       string                  `json:"date"`
	Session    map[string]interface{}  `json:"session"`
	Biometrics scoring.DailyBiometrics `json:"biometrics"`
	Context    scoring.UserContext     `json:"userContext"`
}

type Output struct {
	TrainingScore float64           `json:"trainingScore"`
	Zone          string            `json:"zone"`
	StrainBand    scoring.Band      `json:"strainBand"`
	Breakdown     scoring.Breakdown `json:"scoreBreakdown"`
	Analysis      string            `json:"analysis"`
}
