// internal/workers/scoring/score-recovery/models.go
package scorerecovery

import "vitality-workers/internal/scoring"

type Input struct {
	UserID     string                  `json:"userId"`
	Date       string                  `json:"date"`
	Biometrics scoring.DailyBiometrics `json:"biometrics"`
}

type Output struct {
	RecoveryScore float64           `json:"recoveryScore"`
	Zone          string            `json:"zone"`
	Breakdown     scoring.Breakdown `json:"scoreBreakdown"`
	Analysis      string            `json:"analysis"`
	FromCache     bool              `json:"fromCache"`
}
