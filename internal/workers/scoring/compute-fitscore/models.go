// internal/workers/scoring/compute-fitscore/models.go
package computefitscore

import "vitality-workers/internal/scoring"

type Input struct {
	UserID     string               `json:"userId"`
	Date       string               `json:"date"`
	Components scoring.FitScoreInput `json:"components"`
}

type Output struct {
	FitScore        float64                    `json:"fitScore"`
	Components      scoring.FitScoreComponents `json:"componentScores"`
	Recommendations []string                   `json:"recommendations"`
	Analysis        string                     `json:"analysis"`
	FromCache       bool                       `json:"fromCache"`
}
