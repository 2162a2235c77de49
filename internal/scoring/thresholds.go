// internal/scoring/thresholds.go
//
// Single source of truth for every numeric cutoff, weight, band value and
// keyword list in the engine. Earlier revisions carried two divergent
// copies of these tables; anything tuning the scoring behavior belongs
// here and nowhere else.
package scoring

// Recovery-zone cutoffs used by the recovery scorer (percent).
const (
	recoveryZoneGreenCutoff = 67.0
	recoveryZoneRedCutoff   = 34.0
)

// Recovery-zone cutoffs used by the training scorer. The training side
// intentionally uses a stricter green threshold: a session is only judged
// against the elevated bands when the body is clearly recovered.
const (
	trainingZoneGreenCutoff  = 70.0
	trainingZoneYellowCutoff = 40.0
)

// Recovery composite weights. Must sum to 1.0.
const (
	recoveryWeightRecovery = 0.40
	recoveryWeightSleep    = 0.40
	recoveryWeightHRV      = 0.20
)

// Training composite weights (strain 0-4, session 0-3, goal 0-2,
// safety 0-1). The sub-score ranges already encode the 40/30/20/10 split.
const (
	strainSubMax  = 4.0
	sessionSubMax = 3.0
	goalSubMax    = 2.0
	safetySubMax  = 1.0
)

// FitScore composite weights. Must sum to 1.0.
const (
	fitWeightSleep     = 0.25
	fitWeightRecovery  = 0.25
	fitWeightCardio    = 0.20
	fitWeightStrain    = 0.20
	fitWeightNutrition = 0.10
)

// Neutral defaults substituted for missing telemetry.
const (
	neutralRecoverySub = 5.0
	neutralHRVSub      = 5.0
	neutralSleepHours  = 3.0 // hours-points fallback, not hours
	neutralSleepScore  = 2.0 // sleep-score-points fallback
	neutralStrainSub   = 2.4 // 60% of strainSubMax
	neutralComponent   = 5.0 // FitScore components
	defaultTargetSleep = 8.0
)

// HRV sub-score tiers: delta = hrv - baseline, result = 5 + tier,
// clamped to [3,7].
var hrvTiers = []struct {
	MinDelta float64
	Tier     float64
}{
	{8, 2},
	{3, 1},
	{-2, 0},
	{-7, -1},
}

const hrvFloorTier = -2.0

// Hours-points table for the sleep-quality sub-score.
var sleepHoursPoints = []struct {
	MinHours float64
	Points   float64
}{
	{8, 6},
	{7, 5},
	{6, 4},
	{5, 3},
	{4, 2},
}

const sleepHoursFloorPoints = 1.0

// Strain bands by context, first-match priority: acute rehab, rehab
// phase, deload, high performance, default.
var (
	bandAcuteRehab = Band{Min: 6, Max: 11, Ideal: 8}
	bandRehabPhase = Band{Min: 8, Max: 14, Ideal: 10.5}
	bandDeload     = Band{Min: 5, Max: 12, Ideal: 8}

	highPerformanceBands = map[Zone]Band{
		ZoneGreen:  {Min: 10, Max: 19, Ideal: 15},
		ZoneYellow: {Min: 8, Max: 14, Ideal: 11},
		ZoneRed:    {Min: 0, Max: 9, Ideal: 5},
	}

	defaultBands = map[Zone]Band{
		ZoneGreen:  {Min: 8, Max: 18, Ideal: 13},
		ZoneYellow: {Min: 5, Max: 12, Ideal: 8.5},
		ZoneRed:    {Min: 0, Max: 8, Ideal: 4},
	}
)

// Over-training penalties on top of the over-band formula.
const (
	redZonePenaltyStrain    = 10.0 // red zone and strain above this: -1
	acuteRehabPenaltyStrain = 12.0 // acute rehab and strain above this: -1
	overTrainingFloor       = 0.5
)

// Session-quality duration tiers. Boundaries are half-open so any
// fractional minute count lands in exactly one tier:
// >120, (90,120], [30,90], [20,30), else floor.
const (
	durationIdealMin = 30.0
	durationIdealMax = 90.0
	durationLongMax  = 120.0
	durationShortMin = 20.0

	durationIdealPoints    = 1.2
	durationLongPoints     = 1.0
	durationShortPoints    = 0.9
	durationOverlongPoints = 0.7
	durationFloorPoints    = 0.4
)

var intensityPoints = map[Intensity]float64{
	IntensityModerate: 1.0,
	IntensityHigh:     0.9,
	IntensityLow:      0.7,
}

const (
	missingIntensityPoints = 0.6
	missingCommentPoints   = 0.4
	sentimentScale         = 0.8
)

// Goal-alignment points.
const (
	goalFullMatch    = 2.0
	goalPartialMatch = 1.5
	goalWeakMatch    = 1.0
	goalNeutral      = 1.2
)

// Injury-safety deductions.
const (
	painKeywordPenalty       = 0.4
	lowRecoveryHighIntensity = 0.4 // recovery below 40 with High intensity
	midRecoveryHighIntensity = 0.2 // recovery below 55 with High intensity
	lowRecoveryCutoff        = 40.0
	midRecoveryCutoff        = 55.0
)

// Keyword lists for the string-containment heuristics. All matching is
// done on lowercased text.
var (
	positiveWords = []string{
		"great", "good", "strong", "easy", "energized", "fresh",
		"solid", "smooth", "awesome", "fantastic", "pumped",
	}

	negativeWords = []string{
		"bad", "tired", "exhausted", "weak", "heavy", "sluggish",
		"terrible", "awful", "drained", "struggled",
	}

	deloadKeywords = []string{"deload", "taper", "recovery week", "easy week"}

	performanceKeywords = []string{
		"performance", "compete", "competition", "race", "peak",
	}

	rehabGoalKeywords = []string{"rehab", "injury", "return to"}

	painKeywords = []string{
		"pain", "hurt", "injur", "ache", "sharp", "twinge", "swollen",
	}

	goalCategories = map[string][]string{
		"strength":    {"strength", "lift", "squat", "deadlift", "bench", "hypertrophy", "muscle", "power"},
		"endurance":   {"endurance", "run", "cycling", "bike", "swim", "cardio", "marathon", "aerobic", "row"},
		"weight_loss": {"weight loss", "fat loss", "lean", "cut", "slim"},
		"flexibility": {"flexibility", "yoga", "mobility", "stretch", "pilates"},
		"general":     {"general", "fitness", "health", "wellness", "conditioning"},
	}
)
