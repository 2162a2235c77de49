// internal/scoring/recovery_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 {
	return &v
}

func TestScoreRecovery_Zones(t *testing.T) {
	tests := []struct {
		name     string
		recovery *float64
		expected Zone
	}{
		{"high recovery is green", fptr(90), ZoneGreen},
		{"green cutoff inclusive", fptr(67), ZoneGreen},
		{"mid recovery is yellow", fptr(50), ZoneYellow},
		{"just below green is yellow", fptr(66), ZoneYellow},
		{"red cutoff boundary", fptr(34), ZoneYellow},
		{"low recovery is red", fptr(33), ZoneRed},
		{"zero recovery is red", fptr(0), ZoneRed},
		{"missing recovery defaults to yellow", nil, ZoneYellow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreRecovery(DailyBiometrics{RecoveryPercent: tt.recovery})
			assert.Equal(t, tt.expected, result.Zone)
		})
	}
}

func TestScoreRecovery_SubScores(t *testing.T) {
	tests := []struct {
		name       string
		input      DailyBiometrics
		component  string
		expected   float64
	}{
		{"recovery linear map", DailyBiometrics{RecoveryPercent: fptr(73)}, "recovery", 7.3},
		{"recovery missing defaults to neutral", DailyBiometrics{}, "recovery", 5},
		{"eight hours of good sleep", DailyBiometrics{SleepHours: fptr(8.2), SleepScorePercent: fptr(95)}, "sleep", 10},
		{"short sleep low score", DailyBiometrics{SleepHours: fptr(4.5), SleepScorePercent: fptr(20)}, "sleep", 3},
		{"very short sleep floor", DailyBiometrics{SleepHours: fptr(3), SleepScorePercent: fptr(0)}, "sleep", 1},
		{"sleep missing defaults", DailyBiometrics{}, "sleep", 5},
		{"hrv well above baseline", DailyBiometrics{HRV: fptr(70), HRVBaseline: fptr(60)}, "hrv", 7},
		{"hrv slightly above baseline", DailyBiometrics{HRV: fptr(64), HRVBaseline: fptr(60)}, "hrv", 6},
		{"hrv near baseline", DailyBiometrics{HRV: fptr(59), HRVBaseline: fptr(60)}, "hrv", 5},
		{"hrv below baseline", DailyBiometrics{HRV: fptr(55), HRVBaseline: fptr(60)}, "hrv", 4},
		{"hrv far below baseline", DailyBiometrics{HRV: fptr(50), HRVBaseline: fptr(60)}, "hrv", 3},
		{"hrv missing yields exactly five", DailyBiometrics{HRV: fptr(70)}, "hrv", 5},
		{"baseline missing yields exactly five", DailyBiometrics{HRVBaseline: fptr(60)}, "hrv", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreRecovery(tt.input)
			assert.Equal(t, tt.expected, result.Breakdown[tt.component])
		})
	}
}

// Scenario from the product requirements: missing recovery and HRV with
// 7.5h sleep at 80% sleep score lands on a 6.2 composite.
func TestScoreRecovery_PartialTelemetryScenario(t *testing.T) {
	result := ScoreRecovery(DailyBiometrics{
		SleepHours:        fptr(7.5),
		SleepScorePercent: fptr(80),
	})

	assert.Equal(t, 5.0, result.Breakdown["recovery"])
	assert.Equal(t, 8.0, result.Breakdown["sleep"])
	assert.Equal(t, 5.0, result.Breakdown["hrv"])
	assert.Equal(t, 6.2, result.Score)
	assert.Equal(t, ZoneYellow, result.Zone)
}

func TestScoreRecovery_AllMissingIsNeutral(t *testing.T) {
	result := ScoreRecovery(DailyBiometrics{})

	assert.Equal(t, 5.0, result.Score)
	assert.Equal(t, ZoneYellow, result.Zone)
	assert.NotEmpty(t, result.Analysis)
}

func TestScoreRecovery_SubScoreMonotonic(t *testing.T) {
	prev := -1.0
	for pct := 0.0; pct <= 100; pct++ {
		result := ScoreRecovery(DailyBiometrics{RecoveryPercent: fptr(pct)})
		sub := result.Breakdown["recovery"]
		assert.GreaterOrEqual(t, sub, prev, "recovery sub-score must not decrease at %v%%", pct)
		prev = sub
	}
}

func TestScoreRecovery_ScoreWithinRange(t *testing.T) {
	inputs := []DailyBiometrics{
		{},
		{RecoveryPercent: fptr(0), SleepHours: fptr(0), SleepScorePercent: fptr(0), HRV: fptr(20), HRVBaseline: fptr(80)},
		{RecoveryPercent: fptr(100), SleepHours: fptr(9), SleepScorePercent: fptr(100), HRV: fptr(90), HRVBaseline: fptr(60)},
		{RecoveryPercent: fptr(250)}, // out-of-range input clamps, never errors
		{RecoveryPercent: fptr(-10)},
	}

	for _, input := range inputs {
		result := ScoreRecovery(input)
		assert.GreaterOrEqual(t, result.Score, 1.0)
		assert.LessOrEqual(t, result.Score, 10.0)
	}
}

func TestScoreRecovery_Idempotent(t *testing.T) {
	input := DailyBiometrics{
		RecoveryPercent:   fptr(72),
		SleepHours:        fptr(7.1),
		SleepScorePercent: fptr(85),
		HRV:               fptr(64),
		HRVBaseline:       fptr(58),
	}

	assert.Equal(t, ScoreRecovery(input), ScoreRecovery(input))
}

func TestRecoveryWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, recoveryWeightRecovery+recoveryWeightSleep+recoveryWeightHRV, 1e-9)
}
