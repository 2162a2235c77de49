// internal/scoring/recovery.go
package scoring

import "math"

// ScoreRecovery converts one day of biometrics into a 1-10 recovery score
// and a readiness zone. It is pure and total: every optional field has a
// neutral default and every sub-score is clamped, so the function is
// defined for all inputs including an all-missing snapshot.
func ScoreRecovery(b DailyBiometrics) ScoreResult {
	zone := recoveryZone(b.RecoveryPercent)

	recoverySub := recoverySubScore(b.RecoveryPercent)
	sleepSub := sleepQualitySubScore(b.SleepHours, b.SleepScorePercent)
	hrvSub := hrvSubScore(b.HRV, b.HRVBaseline)

	score := recoveryWeightRecovery*recoverySub +
		recoveryWeightSleep*sleepSub +
		recoveryWeightHRV*hrvSub
	score = round1(clamp(score, 1, 10))

	return ScoreResult{
		Score: score,
		Breakdown: Breakdown{
			"recovery": recoverySub,
			"sleep":    sleepSub,
			"hrv":      hrvSub,
		},
		Analysis: narrateRecovery(score, zone, b),
		Zone:     zone,
	}
}

// recoveryZone classifies the day: 67 and above green, 34-66 yellow,
// below 34 red. Missing recovery defaults to yellow as the cautious
// middle ground.
func recoveryZone(recoveryPercent *float64) Zone {
	if recoveryPercent == nil {
		return ZoneYellow
	}
	switch {
	case *recoveryPercent >= recoveryZoneGreenCutoff:
		return ZoneGreen
	case *recoveryPercent >= recoveryZoneRedCutoff:
		return ZoneYellow
	default:
		return ZoneRed
	}
}

func recoverySubScore(recoveryPercent *float64) float64 {
	if recoveryPercent == nil {
		return neutralRecoverySub
	}
	return round1(clamp(*recoveryPercent, 0, 100) / 100 * 10)
}

// sleepQualitySubScore sums an hours-points tier with sleep-score points
// and clamps to [0,10].
func sleepQualitySubScore(sleepHours, sleepScorePercent *float64) float64 {
	hoursPts := neutralSleepHours
	if sleepHours != nil {
		hoursPts = sleepHoursFloorPoints
		for _, tier := range sleepHoursPoints {
			if *sleepHours >= tier.MinHours {
				hoursPts = tier.Points
				break
			}
		}
	}

	scorePts := neutralSleepScore
	if sleepScorePercent != nil {
		scorePts = math.Round(clamp(*sleepScorePercent, 0, 100) / 100 * 4)
	}

	return clamp(hoursPts+scorePts, 0, 10)
}

// hrvSubScore maps the HRV delta against the 7-day baseline onto a 3-7
// scale centered on 5. Missing HRV or baseline yields exactly 5.
func hrvSubScore(hrv, baseline *float64) float64 {
	if hrv == nil || baseline == nil {
		return neutralHRVSub
	}
	delta := *hrv - *baseline
	tier := hrvFloorTier
	for _, t := range hrvTiers {
		if delta >= t.MinDelta {
			tier = t.Tier
			break
		}
	}
	return clamp(5+tier, 3, 7)
}
