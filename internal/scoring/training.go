// internal/scoring/training.go
package scoring

import (
	"math"
	"strings"
)

// ScoreTraining rates a training session 1-10 against the day's
// biometrics and the user's context, using the default comment-sentiment
// heuristic.
func ScoreTraining(s TrainingSession, b DailyBiometrics, ctx UserContext) ScoreResult {
	return ScoreTrainingWith(CommentSentiment, s, b, ctx)
}

// ScoreTrainingWith is ScoreTraining with an injectable sentiment
// capability.
func ScoreTrainingWith(sentiment SentimentFunc, s TrainingSession, b DailyBiometrics, ctx UserContext) ScoreResult {
	if s.Skipped {
		return ScoreResult{
			Score: 0,
			Breakdown: Breakdown{
				"strain":  0,
				"session": 0,
				"goal":    0,
				"safety":  0,
			},
			Analysis: "Training was skipped",
			Zone:     ZoneRed,
		}
	}

	zone := trainingZone(b.RecoveryPercent)
	flags := classifyContext(ctx, s.Comment)

	strainSub := strainAppropriateness(b.StrainScore, zone, flags)
	sessionSub := sessionQuality(sentiment, s)
	goalSub := goalAlignment(s, ctx)
	safetySub := injurySafety(s, b.RecoveryPercent)

	total := round1(clamp(strainSub+sessionSub+goalSub+safetySub, 1, 10))

	return ScoreResult{
		Score: total,
		Breakdown: Breakdown{
			"strain":  strainSub,
			"session": sessionSub,
			"goal":    goalSub,
			"safety":  safetySub,
		},
		Analysis: narrateTraining(flags, sessionSub, goalSub, safetySub, s),
		Zone:     zone,
	}
}

// trainingZone uses the stricter 70/40 split (see thresholds.go); the
// recovery scorer keeps its own 67/34 table.
func trainingZone(recoveryPercent *float64) Zone {
	if recoveryPercent == nil {
		return ZoneYellow
	}
	switch {
	case *recoveryPercent >= trainingZoneGreenCutoff:
		return ZoneGreen
	case *recoveryPercent >= trainingZoneYellowCutoff:
		return ZoneYellow
	default:
		return ZoneRed
	}
}

// strainAppropriateness rates the day's strain 0-4 against the expected
// band. Inside the band the score decays linearly from 4 at the ideal
// down to a floor of 3 at the edges; under-training and over-training
// fall off faster, with an extra penalty when pushing hard in a red zone
// or during acute rehab.
func strainAppropriateness(strain *float64, zone Zone, flags contextFlags) float64 {
	if strain == nil {
		return neutralStrainSub
	}
	s := *strain
	band := bandFor(zone, flags)

	if s >= band.Min && s <= band.Max {
		halfWidth := (band.Max - band.Min) / 2
		if halfWidth <= 0 {
			return strainSubMax
		}
		score := strainSubMax - math.Abs(s-band.Ideal)/halfWidth
		return math.Max(score, 3)
	}

	if s < band.Min {
		// Under-training: gentle slope, floor 1.5.
		return math.Max(1.5, 3-(band.Min-s)/band.Min*1.5)
	}

	// Over-training: steeper slope, floor 0.5.
	score := math.Max(overTrainingFloor, 3-(s-band.Max)/band.Max*3)
	if (zone == ZoneRed && s > redZonePenaltyStrain) ||
		(flags.AcuteRehab && s > acuteRehabPenaltyStrain) {
		score = math.Max(overTrainingFloor, score-1)
	}
	return score
}

// sessionQuality rates the session itself 0-3: duration tier, intensity
// tier, and comment sentiment scaled to 0-0.8.
func sessionQuality(sentiment SentimentFunc, s TrainingSession) float64 {
	var duration float64
	switch d := s.DurationMinutes; {
	case d > durationLongMax:
		duration = durationOverlongPoints
	case d > durationIdealMax:
		duration = durationLongPoints
	case d >= durationIdealMin:
		duration = durationIdealPoints
	case d >= durationShortMin:
		duration = durationShortPoints
	default:
		duration = durationFloorPoints
	}

	intensity := missingIntensityPoints
	if pts, ok := intensityPoints[s.Intensity]; ok {
		intensity = pts
	}

	comment := missingCommentPoints
	if s.Comment != "" {
		comment = clamp(sentiment(s.Comment), 0, 1) * sentimentScale
	}

	return clamp(duration+intensity+comment, 0, sessionSubMax)
}

// goalAlignment rates 0-2 how well the session matches the user's stated
// fitness goal via keyword-category matching. Full alignment needs the
// session (type or goal) and the user's fitness goal to land in a common
// category.
func goalAlignment(s TrainingSession, ctx UserContext) float64 {
	if strings.TrimSpace(s.Type) == "" &&
		strings.TrimSpace(s.Goal) == "" &&
		strings.TrimSpace(ctx.FitnessGoal) == "" {
		return goalNeutral
	}

	sessionCats := matchCategories(s.Type + " " + s.Goal)
	userCats := matchCategories(ctx.FitnessGoal)

	switch {
	case len(sessionCats) > 0 && len(userCats) > 0:
		for cat := range sessionCats {
			if userCats[cat] {
				return goalFullMatch
			}
		}
		// Both sides signal but disagree.
		return goalWeakMatch
	case len(sessionCats) > 0 || len(userCats) > 0:
		// Only one side gives a signal.
		return goalPartialMatch
	default:
		return goalNeutral
	}
}

func matchCategories(text string) map[string]bool {
	matched := make(map[string]bool)
	lower := strings.ToLower(text)
	for category, keywords := range goalCategories {
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				matched[category] = true
				break
			}
		}
	}
	return matched
}

// injurySafety starts at 1.0 and deducts for pain mentions and for
// high-intensity work on poor recovery.
func injurySafety(s TrainingSession, recoveryPercent *float64) float64 {
	score := safetySubMax

	if containsAny(s.Comment, painKeywords) {
		score -= painKeywordPenalty
	}

	if recoveryPercent != nil && s.Intensity == IntensityHigh {
		switch {
		case *recoveryPercent < lowRecoveryCutoff:
			score -= lowRecoveryHighIntensity
		case *recoveryPercent < midRecoveryCutoff:
			score -= midRecoveryHighIntensity
		}
	}

	return clamp(score, 0, safetySubMax)
}
