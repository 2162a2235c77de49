// internal/scoring/training_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baselineSession() TrainingSession {
	return TrainingSession{
		Type:            "Running",
		DurationMinutes: 45,
		Intensity:       IntensityModerate,
	}
}

func TestScoreTraining_SkippedShortCircuits(t *testing.T) {
	// High strain and recovery must not matter when the session was
	// skipped.
	session := TrainingSession{Skipped: true}
	biometrics := DailyBiometrics{
		RecoveryPercent: fptr(90),
		StrainScore:     fptr(18),
	}

	result := ScoreTraining(session, biometrics, UserContext{})

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, ZoneRed, result.Zone)
	assert.Equal(t, "Training was skipped", result.Analysis)
	for component, points := range result.Breakdown {
		assert.Equal(t, 0.0, points, "component %s", component)
	}
}

func TestScoreTraining_ZoneCutoffs(t *testing.T) {
	tests := []struct {
		name     string
		recovery *float64
		expected Zone
	}{
		{"seventy is green", fptr(70), ZoneGreen},
		{"sixty-nine is yellow", fptr(69), ZoneYellow},
		{"forty is yellow", fptr(40), ZoneYellow},
		{"thirty-nine is red", fptr(39), ZoneRed},
		{"missing is yellow", nil, ZoneYellow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreTraining(baselineSession(), DailyBiometrics{RecoveryPercent: tt.recovery}, UserContext{})
			assert.Equal(t, tt.expected, result.Zone)
		})
	}
}

func TestScoreTraining_StrainAppropriateness(t *testing.T) {
	tests := []struct {
		name     string
		strain   *float64
		recovery *float64
		ctx      UserContext
		comment  string
		expected float64
	}{
		{
			// Green default band is 8-18 with ideal 13; hitting the
			// ideal exactly yields the maximum.
			name:     "ideal strain scores maximum",
			strain:   fptr(13),
			recovery: fptr(80),
			expected: 4.0,
		},
		{
			name:     "band edge keeps in-range floor",
			strain:   fptr(18),
			recovery: fptr(80),
			expected: 3.0,
		},
		{
			name:     "missing strain is sixty percent neutral",
			strain:   nil,
			recovery: fptr(80),
			expected: 2.4,
		},
		{
			// Under green band 8-18: 3 - (8-4)/8*1.5 = 2.25.
			name:     "under-training decays gently",
			strain:   fptr(4),
			recovery: fptr(80),
			expected: 2.25,
		},
		{
			// Zero strain against the green band bottoms out at
			// the 1.5 floor.
			name:     "under-training floor",
			strain:   fptr(0),
			recovery: fptr(80),
			expected: 1.5,
		},
		{
			// Over green band: 3 - (20-18)/18*3 = 2.667.
			name:     "over-training decays steeply",
			strain:   fptr(20),
			recovery: fptr(80),
			expected: 3 - 2.0/18*3,
		},
		{
			// Red default band 0-8: strain 12 gives 3-(12-8)/8*3=1.5,
			// then the red-zone penalty takes another point.
			name:     "red zone heavy strain penalized",
			strain:   fptr(12),
			recovery: fptr(20),
			expected: 0.5,
		},
		{
			// Acute band 6-11: strain 14 gives 3-(14-11)/11*3 ~ 2.18,
			// acute penalty brings it to ~1.18.
			name:     "acute rehab over-strain penalized",
			strain:   fptr(14),
			recovery: fptr(80),
			ctx:      UserContext{RehabStage: "Acute"},
			expected: 3 - 3.0/11*3 - 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			biometrics := DailyBiometrics{RecoveryPercent: tt.recovery, StrainScore: tt.strain}
			result := ScoreTraining(baselineSession(), biometrics, tt.ctx)
			assert.InDelta(t, tt.expected, result.Breakdown["strain"], 1e-9)
		})
	}
}

func TestScoreTraining_SessionQuality(t *testing.T) {
	tests := []struct {
		name     string
		session  TrainingSession
		expected float64
	}{
		{
			// 1.2 duration + 1.0 moderate + 0.4 no comment.
			name:     "moderate forty-five minutes no comment",
			session:  TrainingSession{Type: "Gym", DurationMinutes: 45, Intensity: IntensityModerate},
			expected: 2.6,
		},
		{
			name:     "short high intensity",
			session:  TrainingSession{Type: "Gym", DurationMinutes: 25, Intensity: IntensityHigh},
			expected: 0.9 + 0.9 + 0.4,
		},
		{
			name:     "long low intensity",
			session:  TrainingSession{Type: "Gym", DurationMinutes: 110, Intensity: IntensityLow},
			expected: 1.0 + 0.7 + 0.4,
		},
		{
			name:     "overlong missing intensity",
			session:  TrainingSession{Type: "Gym", DurationMinutes: 150},
			expected: 0.7 + 0.6 + 0.4,
		},
		{
			name:     "very short session",
			session:  TrainingSession{Type: "Gym", DurationMinutes: 10, Intensity: IntensityModerate},
			expected: 0.4 + 1.0 + 0.4,
		},
		{
			// Positive comment: sentiment 0.8 scaled by 0.8.
			name:     "positive comment lifts quality",
			session:  TrainingSession{Type: "Gym", DurationMinutes: 45, Intensity: IntensityModerate, Comment: "felt great"},
			expected: 1.2 + 1.0 + 0.8*0.8,
		},
		{
			// Fractional minutes just past two hours stay in the
			// overlong tier, not the floor.
			name:     "fractionally over two hours",
			session:  TrainingSession{Type: "Gym", DurationMinutes: 120.5, Intensity: IntensityModerate},
			expected: 0.7 + 1.0 + 0.4,
		},
		{
			name:     "exactly two hours",
			session:  TrainingSession{Type: "Gym", DurationMinutes: 120, Intensity: IntensityModerate},
			expected: 1.0 + 1.0 + 0.4,
		},
		{
			name:     "fractionally over ninety minutes",
			session:  TrainingSession{Type: "Gym", DurationMinutes: 90.5, Intensity: IntensityModerate},
			expected: 1.0 + 1.0 + 0.4,
		},
		{
			name:     "exactly ninety minutes",
			session:  TrainingSession{Type: "Gym", DurationMinutes: 90, Intensity: IntensityModerate},
			expected: 1.2 + 1.0 + 0.4,
		},
		{
			name:     "fractionally under thirty minutes",
			session:  TrainingSession{Type: "Gym", DurationMinutes: 29.5, Intensity: IntensityModerate},
			expected: 0.9 + 1.0 + 0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreTraining(tt.session, DailyBiometrics{RecoveryPercent: fptr(80)}, UserContext{})
			assert.InDelta(t, tt.expected, result.Breakdown["session"], 1e-9)
		})
	}
}

func TestScoreTraining_GoalAlignment(t *testing.T) {
	tests := []struct {
		name     string
		session  TrainingSession
		ctx      UserContext
		expected float64
	}{
		{
			name:     "session and fitness goal agree",
			session:  TrainingSession{Type: "Running", DurationMinutes: 45},
			ctx:      UserContext{FitnessGoal: "marathon endurance"},
			expected: goalFullMatch,
		},
		{
			name:     "session goal carries the match",
			session:  TrainingSession{Type: "Session", Goal: "strength work", DurationMinutes: 45},
			ctx:      UserContext{FitnessGoal: "build muscle"},
			expected: goalFullMatch,
		},
		{
			name:     "both signal but disagree",
			session:  TrainingSession{Type: "Yoga", DurationMinutes: 45},
			ctx:      UserContext{FitnessGoal: "marathon endurance"},
			expected: goalWeakMatch,
		},
		{
			name:     "only session signals",
			session:  TrainingSession{Type: "Running", DurationMinutes: 45},
			ctx:      UserContext{},
			expected: goalPartialMatch,
		},
		{
			name:     "only fitness goal signals",
			session:  TrainingSession{Type: "Misc", DurationMinutes: 45},
			ctx:      UserContext{FitnessGoal: "flexibility"},
			expected: goalPartialMatch,
		},
		{
			name:     "goals supplied but nothing matches",
			session:  TrainingSession{Type: "Misc", Goal: "whatever", DurationMinutes: 45},
			ctx:      UserContext{FitnessGoal: "something else"},
			expected: goalNeutral,
		},
		{
			name:     "no goals supplied at all",
			session:  TrainingSession{DurationMinutes: 45},
			ctx:      UserContext{},
			expected: goalNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreTraining(tt.session, DailyBiometrics{RecoveryPercent: fptr(80)}, tt.ctx)
			assert.InDelta(t, tt.expected, result.Breakdown["goal"], 1e-9)
		})
	}
}

func TestScoreTraining_InjurySafety(t *testing.T) {
	tests := []struct {
		name     string
		session  TrainingSession
		recovery *float64
		expected float64
	}{
		{
			name:     "clean session keeps full safety",
			session:  baselineSession(),
			recovery: fptr(80),
			expected: 1.0,
		},
		{
			name:     "pain mention deducts",
			session:  TrainingSession{Type: "Running", DurationMinutes: 45, Comment: "knee pain on the downhill"},
			recovery: fptr(80),
			expected: 0.6,
		},
		{
			name:     "high intensity on very low recovery",
			session:  TrainingSession{Type: "Running", DurationMinutes: 45, Intensity: IntensityHigh},
			recovery: fptr(35),
			expected: 0.6,
		},
		{
			name:     "high intensity on mediocre recovery",
			session:  TrainingSession{Type: "Running", DurationMinutes: 45, Intensity: IntensityHigh},
			recovery: fptr(50),
			expected: 0.8,
		},
		{
			name:     "pain plus low recovery stacks",
			session:  TrainingSession{Type: "Running", DurationMinutes: 45, Intensity: IntensityHigh, Comment: "sharp ache in the calf"},
			recovery: fptr(35),
			expected: 0.2,
		},
		{
			name:     "missing recovery never deducts",
			session:  TrainingSession{Type: "Running", DurationMinutes: 45, Intensity: IntensityHigh},
			recovery: nil,
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreTraining(tt.session, DailyBiometrics{RecoveryPercent: tt.recovery}, UserContext{})
			assert.InDelta(t, tt.expected, result.Breakdown["safety"], 1e-9)
		})
	}
}

func TestScoreTraining_TotalRangeAndRounding(t *testing.T) {
	// A strong all-round day: strain 4 + session 2.6 + goal 2 + safety 1.
	result := ScoreTraining(
		TrainingSession{Type: "Running", DurationMinutes: 45, Intensity: IntensityModerate},
		DailyBiometrics{RecoveryPercent: fptr(80), StrainScore: fptr(13)},
		UserContext{FitnessGoal: "marathon endurance"},
	)
	assert.Equal(t, 9.6, result.Score)
	assert.Equal(t, ZoneGreen, result.Zone)

	// A dismal day still floors at 1.
	low := ScoreTraining(
		TrainingSession{Type: "Misc", DurationMinutes: 5, Intensity: IntensityHigh, Comment: "awful, sharp pain everywhere, exhausted"},
		DailyBiometrics{RecoveryPercent: fptr(10), StrainScore: fptr(21)},
		UserContext{},
	)
	assert.GreaterOrEqual(t, low.Score, 1.0)
	assert.LessOrEqual(t, low.Score, 10.0)
}

func TestScoreTraining_SwappableSentiment(t *testing.T) {
	alwaysHappy := func(string) float64 { return 1.0 }

	session := TrainingSession{Type: "Gym", DurationMinutes: 45, Intensity: IntensityModerate, Comment: "meh"}
	result := ScoreTrainingWith(alwaysHappy, session, DailyBiometrics{RecoveryPercent: fptr(80)}, UserContext{})

	assert.InDelta(t, 1.2+1.0+0.8, result.Breakdown["session"], 1e-9)
}

func TestScoreTraining_Idempotent(t *testing.T) {
	session := TrainingSession{Type: "Running", DurationMinutes: 60, Intensity: IntensityHigh, Comment: "strong tempo run"}
	biometrics := DailyBiometrics{RecoveryPercent: fptr(75), StrainScore: fptr(14)}
	ctx := UserContext{WeeklyLoad: "Heavy", FitnessGoal: "race performance"}

	assert.Equal(t,
		ScoreTraining(session, biometrics, ctx),
		ScoreTraining(session, biometrics, ctx),
	)
}
