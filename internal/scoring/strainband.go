// internal/scoring/strainband.go
package scoring

import "strings"

// contextFlags are the training-context signals that drive both band
// selection and the training narration, evaluated in the same priority
// order everywhere: acute rehab, rehab phase, deload, high performance.
type contextFlags struct {
	AcuteRehab      bool
	RehabPhase      bool
	Deload          bool
	HighPerformance bool
}

func classifyContext(ctx UserContext, sessionComment string) contextFlags {
	stage := strings.ToLower(strings.TrimSpace(ctx.RehabStage))
	load := strings.ToLower(strings.TrimSpace(ctx.WeeklyLoad))

	return contextFlags{
		AcuteRehab: stage == "acute",
		RehabPhase: stage == "sub-acute" || stage == "rehab" ||
			containsAny(ctx.PrimaryGoal, rehabGoalKeywords),
		Deload: load == "light" ||
			containsAny(sessionComment, deloadKeywords),
		HighPerformance: load == "heavy" || load == "competition" ||
			containsAny(ctx.PrimaryGoal, performanceKeywords) ||
			containsAny(ctx.FitnessGoal, performanceKeywords),
	}
}

// StrainBand returns the expected-effort range for the day. The session
// comment participates because an explicit deload note overrides the
// profile's weekly load. First match wins.
func StrainBand(zone Zone, ctx UserContext, sessionComment string) Band {
	return bandFor(zone, classifyContext(ctx, sessionComment))
}

func bandFor(zone Zone, flags contextFlags) Band {
	switch {
	case flags.AcuteRehab:
		return bandAcuteRehab
	case flags.RehabPhase:
		return bandRehabPhase
	case flags.Deload:
		return bandDeload
	case flags.HighPerformance:
		return zoneBand(highPerformanceBands, zone)
	default:
		return zoneBand(defaultBands, zone)
	}
}

func zoneBand(table map[Zone]Band, zone Zone) Band {
	if b, ok := table[zone]; ok {
		return b
	}
	return table[ZoneYellow]
}
