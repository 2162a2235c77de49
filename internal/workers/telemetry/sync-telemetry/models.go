// internal/workers/telemetry/sync-telemetry/models.go
package synctelemetry

import "vitality-workers/internal/models"

type Input struct {
	UserID string `json:"userId"`
	Date   string `json:"date"` // YYYY-MM-DD
}

type Output struct {
	UserID     string                  `json:"userId"`
	Date       string                  `json:"date"`
	Synced     bool                    `json:"synced"`
	Biometrics *models.BiometricRecord `json:"biometrics,omitempty"`
}
