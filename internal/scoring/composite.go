// internal/scoring/composite.go
package scoring

// FitScoreInput carries the already-resolved component inputs for the
// composite index. Nil pointers mean the value is unavailable and the
// neutral component default applies. NutritionScore comes from the
// meal-analysis collaborator; when it is absent the component is held at
// the neutral midpoint rather than penalizing the day.
type FitScoreInput struct {
	SleepHours       *float64 `json:"sleepHours,omitempty"`
	TargetSleepHours float64  `json:"targetSleepHours,omitempty"`
	RecoveryPercent  *float64 `json:"recoveryPercent,omitempty"`
	HRV              *float64 `json:"hrv,omitempty"`
	RestingHeartRate *float64 `json:"restingHeartRate,omitempty"`
	Strain           *float64 `json:"strain,omitempty"`
	NutritionScore   *float64 `json:"nutritionScore,omitempty"`
}

// ComputeFitScore combines sleep, recovery, cardio balance, training
// alignment and nutrition into one 0-10 index with one decimal.
func ComputeFitScore(in FitScoreInput) CompositeFitScoreResult {
	target := in.TargetSleepHours
	if target <= 0 {
		target = defaultTargetSleep
	}

	sleep := neutralComponent
	if in.SleepHours != nil {
		sleep = clamp(10*(*in.SleepHours)/target, 0, 10)
	}

	recovery := neutralComponent
	if in.RecoveryPercent != nil {
		recovery = clamp(10*(*in.RecoveryPercent)/100, 0, 10)
	}

	cardio := cardioBalance(in.HRV, in.RestingHeartRate)

	// 15 is treated as the reference ideal daily strain.
	alignment := neutralComponent
	if in.Strain != nil {
		alignment = clamp(10*(*in.Strain)/15, 0, 10)
	}

	nutrition := neutralComponent
	if in.NutritionScore != nil {
		nutrition = clamp(*in.NutritionScore, 0, 10)
	}

	fit := fitWeightSleep*sleep +
		fitWeightRecovery*recovery +
		fitWeightCardio*cardio +
		fitWeightStrain*alignment +
		fitWeightNutrition*nutrition

	return CompositeFitScoreResult{
		FitScore: round1(fit),
		Components: FitScoreComponents{
			Sleep:             round1(sleep),
			Recovery:          round1(recovery),
			CardioBalance:     round1(cardio),
			Nutrition:         round1(nutrition),
			TrainingAlignment: round1(alignment),
		},
		Recommendations: []string{},
	}
}

// cardioBalance averages an HRV-derived sub-score with a resting-heart-
// rate sub-score. An HRV of exactly 0 is treated as missing since the
// vendor reports 0 when the strap had no reading.
func cardioBalance(hrv, rhr *float64) float64 {
	hrvSub := neutralComponent
	if hrv != nil && *hrv > 0 {
		hrvSub = clamp(10*(*hrv)/100, 0, 10)
	}

	rhrSub := neutralComponent
	if rhr != nil {
		rhrSub = clamp(10-(*rhr-40)/10, 0, 10)
	}

	return (hrvSub + rhrSub) / 2
}
