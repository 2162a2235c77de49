// internal/workers/data-access/query-health-data/models.go
package queryhealthdata

import "vitality-workers/internal/models"

// QueryType selects which slice of the user's health data to load.
type QueryType string

const (
	QueryTypeBiometrics  QueryType = "biometrics"
	QueryTypeSessions    QueryType = "sessions"
	QueryTypeProfile     QueryType = "profile"
	QueryTypeDailyBundle QueryType = "daily-bundle"
)

type Input struct {
	QueryType string `json:"queryType"`
	UserID    string `json:"userId"`
	Date      string `json:"date,omitempty"`
}

type Output struct {
	Biometrics *models.BiometricRecord `json:"biometrics,omitempty"`
	Sessions   []models.SessionRecord  `json:"sessions,omitempty"`
	Profile    *models.ProfileRecord   `json:"profile,omitempty"`
	RowCount   int                     `json:"rowCount"`
}
