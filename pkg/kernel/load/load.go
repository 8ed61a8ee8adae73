package load

import (
	"strconv"
	"strings"

	"github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"
)

// EstimateOneRM estimates a one-rep max from a lifted weight, rep count,
// and optional RPE. rpeProvided distinguishes "RPE omitted" from an
// explicit RPE value (Go has no optional float primitive at this layer).
//
//   - reps == 1 and (!rpeProvided or rpe == 10): exact, confidence 100.
//   - rpeProvided: estimated_1rm = weight / rpeToPercentage(reps, rpe),
//     formula "blend", confidence decreasing with distance from reps=5,
//     rpe=9.
//   - otherwise: blend of Brzycki and Epley, formula "blend", confidence
//     100 - min(50, 4*max(0, reps-10)).
func EstimateOneRM(weight float32, reps int, rpe float32, rpeProvided bool) (OneRMResult, error) {
	if weight <= 0 {
		return OneRMResult{}, kernelerr.New(kernelerr.InvalidInput, "weight must be > 0")
	}
	if reps < 1 || reps > 20 {
		return OneRMResult{}, kernelerr.New(kernelerr.InvalidInput, "reps must be in [1,20]")
	}
	if rpeProvided && (rpe < 6.0 || rpe > 10.0) {
		return OneRMResult{}, kernelerr.New(kernelerr.InvalidInput, "rpe must be in [6.0,10.0]")
	}

	if reps == 1 && (!rpeProvided || rpe == 10) {
		return OneRMResult{Estimated1RM: weight, Confidence: 100, FormulaUsed: FormulaExact}, nil
	}

	if rpeProvided {
		pct := rpeToPercentage(float32(reps), rpe)
		est := weight / pct
		confidence := 100 - 6*absf(float32(reps)-5) - 8*absf(rpe-9)
		confidence = clampf(confidence, 0, 100)
		return OneRMResult{Estimated1RM: est, Confidence: confidence, FormulaUsed: FormulaBlend}, nil
	}

	brzycki := weight * 36 / (37 - float32(reps))
	epley := weight * (1 + float32(reps)/30)
	blended := (brzycki + epley) / 2
	confidence := 100 - minf(50, 4*maxf(0, float32(reps)-10))
	return OneRMResult{Estimated1RM: blended, Confidence: confidence, FormulaUsed: FormulaBlend}, nil
}

// CalculatePrescription converts an estimated 1RM and a target
// (reps, RPE, phase, experience) into a concrete training prescription.
func CalculatePrescription(e1rm float32, targetReps int, targetRPE float32, phase Phase, experience ExperienceLevel) (Prescription, error) {
	if e1rm <= 0 {
		return Prescription{}, kernelerr.New(kernelerr.InvalidInput, "e1rm must be > 0")
	}
	if targetReps < 1 || targetReps > 20 {
		return Prescription{}, kernelerr.New(kernelerr.InvalidInput, "target_reps must be in [1,20]")
	}
	if targetRPE < 6.0 || targetRPE > 10.0 {
		return Prescription{}, kernelerr.New(kernelerr.InvalidInput, "target_rpe must be in [6.0,10.0]")
	}

	pct := rpeToPercentage(float32(targetReps), targetRPE)
	clip := PercentageRangeForPhase(phase)
	pct = clampf(pct, clip.Min, clip.Max)

	increment := incrementForExperience(experience)
	weight := roundToIncrement(e1rm*pct, increment)

	return Prescription{
		WeightKg:    weight,
		Reps:        uint8(targetReps),
		RPE:         targetRPE,
		Percentage:  pct,
		Tempo:       tempoForPhase(phase),
		RestSeconds: restSecondsForPhase(phase),
		Sets:        setsForPhaseAndExperience(phase, experience),
	}, nil
}

// CalculateLoadsBatch computes prescriptions for parallel arrays of
// estimated 1RMs, target reps, and target RPEs sharing one phase and
// experience level. Fails with InvalidShape if the three input arrays
// differ in length.
func CalculateLoadsBatch(e1rms []float32, targetReps []int, targetRPEs []float32, phase Phase, experience ExperienceLevel) ([]Prescription, error) {
	if len(e1rms) != len(targetReps) || len(e1rms) != len(targetRPEs) {
		return nil, kernelerr.Newf(kernelerr.InvalidShape, "e1rms (%d), target_reps (%d), target_rpes (%d) must have equal length", len(e1rms), len(targetReps), len(targetRPEs))
	}

	out := make([]Prescription, len(e1rms))
	for i := range e1rms {
		p, err := CalculatePrescription(e1rms[i], targetReps[i], targetRPEs[i], phase, experience)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// ParseTempo parses an "E-I-C-P" tempo string (eccentric-isometric-
// concentric-pause), each field a digit 0-9 or the literal "X" (0), and
// returns the total seconds per rep. Returns 0 on parse failure.
func ParseTempo(tempo string) int {
	fields := strings.Split(tempo, "-")
	if len(fields) != 4 {
		return 0
	}
	total := 0
	for _, f := range fields {
		if f == "X" || f == "x" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n > 9 {
			return 0
		}
		total += n
	}
	return total
}

// TimeUnderTension returns parse_tempo(tempo) * reps, 0 on parse failure.
func TimeUnderTension(tempo string, reps int) int {
	return ParseTempo(tempo) * reps
}

// SuggestProgressiveOverload adjusts current_weight based on how the
// previous session's RPE compared to the target: raise by 2*increment if
// the lifter had noticeably more in reserve, by one increment if on
// target, otherwise back off by one increment. The result is rounded to
// the nearest increment and never returns <= 0.
func SuggestProgressiveOverload(currentWeight, lastRPE, targetRPE, minIncrement float32) float32 {
	var next float32
	switch {
	case lastRPE < targetRPE-0.5:
		next = currentWeight + 2*minIncrement
	case lastRPE <= targetRPE+0.5:
		next = currentWeight + minIncrement
	default:
		next = currentWeight - minIncrement
	}

	next = roundToIncrement(next, minIncrement)
	if next <= 0 {
		next = minIncrement
	}
	return next
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
