// internal/scoring/narrator.go
//
// Deterministic template assembly: each narration joins a handful of
// short sentences chosen purely by threshold branches, so identical
// inputs always render identical text.
package scoring

import (
	"fmt"
	"math"
	"strings"
)

func narrateRecovery(score float64, zone Zone, b DailyBiometrics) string {
	sentences := make([]string, 0, 4)

	switch {
	case score >= 8:
		sentences = append(sentences, "Excellent recovery.")
	case score >= 6:
		sentences = append(sentences, "Good recovery.")
	case score >= 4:
		sentences = append(sentences, "Moderate recovery.")
	default:
		sentences = append(sentences, "Recovery needs attention.")
	}

	switch zone {
	case ZoneGreen:
		sentences = append(sentences, "Your body is ready for a demanding session.")
	case ZoneYellow:
		sentences = append(sentences, "Keep the load controlled today.")
	case ZoneRed:
		sentences = append(sentences, "Prioritize rest over training today.")
	}

	if b.SleepHours != nil {
		h := *b.SleepHours
		switch {
		case h >= 8:
			sentences = append(sentences, fmt.Sprintf("You slept %.1f hours, which covers your need.", h))
		case h >= 6:
			sentences = append(sentences, fmt.Sprintf("You slept %.1f hours, a bit short of ideal.", h))
		default:
			sentences = append(sentences, fmt.Sprintf("You slept only %.1f hours, aim for more tonight.", h))
		}
	}

	if b.HRV != nil && b.HRVBaseline != nil {
		delta := *b.HRV - *b.HRVBaseline
		if math.Abs(delta) >= 3 {
			if delta > 0 {
				sentences = append(sentences, "HRV is trending above your baseline.")
			} else {
				sentences = append(sentences, "HRV is trending below your baseline.")
			}
		}
	}

	return strings.Join(sentences, " ")
}

// narrateTraining picks its primary sentence by the same priority order
// as band selection, then appends detail sentences for strong sub-scores
// and a warning for a weak safety score.
func narrateTraining(flags contextFlags, sessionSub, goalSub, safetySub float64, s TrainingSession) string {
	sentences := make([]string, 0, 4)

	switch {
	case flags.AcuteRehab:
		sentences = append(sentences, "In the acute stage, gentle baseline movement is the goal.")
	case flags.RehabPhase:
		sentences = append(sentences, "Controlled rehab work, stay within the prescribed range.")
	case flags.Deload:
		sentences = append(sentences, "Deload period, reduced effort is exactly right.")
	case flags.HighPerformance:
		sentences = append(sentences, "High-performance block, push when your body allows it.")
	default:
		sentences = append(sentences, "Balanced session relative to your current state.")
	}

	if sessionSub >= 2.2 {
		sentences = append(sentences, fmt.Sprintf("Session length of %.0f minutes suits you well.", s.DurationMinutes))
	}

	if goalSub >= 1.5 {
		sentences = append(sentences, "The session lines up with your stated goal.")
	}

	if safetySub < 0.8 {
		sentences = append(sentences, "Watch for warning signs, ease off if discomfort returns.")
	}

	return strings.Join(sentences, " ")
}

// NarrateFitScore renders a short explanation of the composite index for
// display or for inclusion in assistant responses.
func NarrateFitScore(r CompositeFitScoreResult) string {
	sentences := make([]string, 0, 3)

	switch {
	case r.FitScore >= 8:
		sentences = append(sentences, fmt.Sprintf("FitScore %.1f, an excellent day overall.", r.FitScore))
	case r.FitScore >= 6:
		sentences = append(sentences, fmt.Sprintf("FitScore %.1f, a solid day.", r.FitScore))
	case r.FitScore >= 4:
		sentences = append(sentences, fmt.Sprintf("FitScore %.1f, room to improve.", r.FitScore))
	default:
		sentences = append(sentences, fmt.Sprintf("FitScore %.1f, focus on the basics.", r.FitScore))
	}

	low, lowName := lowestComponent(r.Components)
	high, highName := highestComponent(r.Components)
	if highName != lowName {
		sentences = append(sentences, fmt.Sprintf("%s is your strongest component at %.1f.", highName, high))
		sentences = append(sentences, fmt.Sprintf("%s is holding you back at %.1f.", lowName, low))
	}

	return strings.Join(sentences, " ")
}

// componentOrder is the fixed presentation order of the composite table.
var componentOrder = []string{"Sleep", "Recovery", "Cardio Balance", "Nutrition", "Training Alignment"}

func componentValue(c FitScoreComponents, name string) float64 {
	switch name {
	case "Sleep":
		return c.Sleep
	case "Recovery":
		return c.Recovery
	case "Cardio Balance":
		return c.CardioBalance
	case "Nutrition":
		return c.Nutrition
	default:
		return c.TrainingAlignment
	}
}

func lowestComponent(c FitScoreComponents) (float64, string) {
	best, name := math.MaxFloat64, ""
	for _, n := range componentOrder {
		if v := componentValue(c, n); v < best {
			best, name = v, n
		}
	}
	return best, name
}

func highestComponent(c FitScoreComponents) (float64, string) {
	best, name := -math.MaxFloat64, ""
	for _, n := range componentOrder {
		if v := componentValue(c, n); v > best {
			best, name = v, n
		}
	}
	return best, name
}

// SummaryRow is one line of the fixed-order presentation table.
type SummaryRow struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SummaryRows returns the composite result as the fixed-row table the
// presentation layer renders: Sleep, Recovery, Cardio Balance,
// Nutrition, Training Alignment, then the composite row.
func SummaryRows(r CompositeFitScoreResult) []SummaryRow {
	rows := make([]SummaryRow, 0, len(componentOrder)+1)
	for _, n := range componentOrder {
		rows = append(rows, SummaryRow{Label: n, Score: componentValue(r.Components, n)})
	}
	rows = append(rows, SummaryRow{Label: "FitScore", Score: r.FitScore})
	return rows
}
