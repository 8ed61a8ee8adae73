package load

// rpeTable holds the Reactive Training Systems %1RM lineage table: rows
// are reps 1..12, columns are RPE {6.0, 7.0, 8.0, 9.0, 10.0}, values are
// the fraction of 1RM (not percent) a lifter can move for that rep/RPE
// pair.
var rpeTable = [12][5]float32{
	// RPE:   6.0,   7.0,   8.0,   9.0,  10.0
	{0.86, 0.89, 0.92, 0.96, 1.00}, // 1 rep
	{0.84, 0.87, 0.89, 0.94, 0.96}, // 2 reps
	{0.81, 0.84, 0.87, 0.91, 0.94}, // 3 reps
	{0.79, 0.82, 0.85, 0.89, 0.92}, // 4 reps
	{0.76, 0.79, 0.81, 0.86, 0.89}, // 5 reps
	{0.74, 0.76, 0.79, 0.84, 0.86}, // 6 reps
	{0.71, 0.74, 0.76, 0.81, 0.83}, // 7 reps
	{0.68, 0.71, 0.74, 0.78, 0.81}, // 8 reps
	{0.66, 0.69, 0.71, 0.76, 0.78}, // 9 reps
	{0.63, 0.66, 0.69, 0.73, 0.75}, // 10 reps
	{0.61, 0.63, 0.66, 0.70, 0.73}, // 11 reps
	{0.58, 0.61, 0.63, 0.67, 0.70}, // 12 reps
}

var rpeColumns = [5]float32{6.0, 7.0, 8.0, 9.0, 10.0}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rpeToPercentage returns the interpolated %1RM fraction for a given
// (reps, rpe) pair. reps is clamped to [1,12] and rpe to [6.0,10.0]
// before interpolation, matching the clamp-on-boundary convention every
// other table lookup here follows.
func rpeToPercentage(reps float32, rpe float32) float32 {
	reps = clampf(reps, 1, 12)
	rpe = clampf(rpe, 6.0, 10.0)

	repLow := int(reps)
	repHigh := repLow + 1
	repFrac := reps - float32(repLow)
	if repHigh > 12 {
		repHigh = 12
		repFrac = 0
	}

	colLow, colHigh, colFrac := rpeColumnBounds(rpe)

	vLowLow := rpeTable[repLow-1][colLow]
	vLowHigh := rpeTable[repLow-1][colHigh]
	vHighLow := rpeTable[repHigh-1][colLow]
	vHighHigh := rpeTable[repHigh-1][colHigh]

	vLow := lerp(vLowLow, vLowHigh, colFrac)
	vHigh := lerp(vHighLow, vHighHigh, colFrac)
	return lerp(vLow, vHigh, repFrac)
}

func rpeColumnBounds(rpe float32) (low, high int, frac float32) {
	for i := 0; i < len(rpeColumns)-1; i++ {
		if rpe >= rpeColumns[i] && rpe <= rpeColumns[i+1] {
			span := rpeColumns[i+1] - rpeColumns[i]
			return i, i + 1, (rpe - rpeColumns[i]) / span
		}
	}
	if rpe <= rpeColumns[0] {
		return 0, 0, 0
	}
	last := len(rpeColumns) - 1
	return last, last, 0
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// RepRangeForPhase returns the default working rep range for a phase.
func RepRangeForPhase(phase Phase) RepRange {
	switch phase {
	case PhaseStrength:
		return RepRange{1, 6}
	case PhaseHypertrophy:
		return RepRange{6, 12}
	case PhasePower:
		return RepRange{1, 5}
	case PhasePeaking:
		return RepRange{1, 3}
	case PhaseDeload:
		return RepRange{5, 10}
	default:
		return RepRange{6, 12}
	}
}

// PercentageRangeForPhase returns the %1RM clip range (as a fraction of
// 1RM, not percent) a phase's prescriptions are clipped into.
func PercentageRangeForPhase(phase Phase) RPERange {
	switch phase {
	case PhaseStrength:
		return RPERange{0.80, 0.92}
	case PhaseHypertrophy:
		return RPERange{0.65, 0.85}
	case PhasePower:
		return RPERange{0.70, 0.90}
	case PhasePeaking:
		return RPERange{0.90, 1.00}
	case PhaseDeload:
		return RPERange{0.40, 0.60}
	default:
		return RPERange{0.65, 0.85}
	}
}

// RPERangeForPhase returns the default working RPE range for a phase.
func RPERangeForPhase(phase Phase) RPERange {
	switch phase {
	case PhaseStrength:
		return RPERange{7.5, 9.5}
	case PhaseHypertrophy:
		return RPERange{7.0, 9.0}
	case PhasePower:
		return RPERange{6.0, 8.0}
	case PhasePeaking:
		return RPERange{8.0, 10.0}
	case PhaseDeload:
		return RPERange{6.0, 7.0}
	default:
		return RPERange{7.0, 9.0}
	}
}

// PercentageToRPE inverts the table: given a %1RM fraction and a rep
// count, it returns the RPE a lifter would report moving that load.
// reps is clamped into [1,12] and the result into [6.0,10.0]; a
// percentage outside the row's span clamps to the row boundary.
func PercentageToRPE(percentage float32, reps int) float32 {
	row := rpeTable[clampi(reps, 1, 12)-1]
	pct := clampf(percentage, row[0], row[len(row)-1])

	for i := 0; i < len(row)-1; i++ {
		if pct >= row[i] && pct <= row[i+1] {
			span := row[i+1] - row[i]
			if span == 0 {
				return rpeColumns[i]
			}
			frac := (pct - row[i]) / span
			return clampf(lerp(rpeColumns[i], rpeColumns[i+1], frac), 6.0, 10.0)
		}
	}
	return 10.0
}

func tempoForPhase(phase Phase) string {
	switch phase {
	case PhaseHypertrophy:
		return "3-1-2-0"
	case PhaseStrength:
		return "2-1-1-0"
	case PhasePower:
		return "X-0-X-0"
	case PhasePeaking:
		return "1-0-1-0"
	case PhaseDeload:
		return "3-2-3-0"
	default:
		return "2-1-1-0"
	}
}

func restSecondsForPhase(phase Phase) uint16 {
	switch phase {
	case PhaseHypertrophy:
		return 90
	case PhaseStrength:
		return 180
	case PhasePower:
		return 240
	case PhasePeaking:
		return 300
	case PhaseDeload:
		return 60
	default:
		return 120
	}
}

func incrementForExperience(exp ExperienceLevel) float32 {
	switch exp {
	case ExperienceBeginner:
		return 2.5
	case ExperienceIntermediate:
		return 2.5
	case ExperienceAdvanced:
		return 1.25
	case ExperienceElite:
		return 0.5
	default:
		return 2.5
	}
}

// setsForPhaseAndExperience returns the default set count, a small table
// ranging 3-6 sets based on phase intensity and the lifter's experience
// tolerating more volume.
func setsForPhaseAndExperience(phase Phase, exp ExperienceLevel) uint8 {
	base := map[Phase]uint8{
		PhaseHypertrophy: 4,
		PhaseStrength:    5,
		PhasePower:       5,
		PhasePeaking:     3,
		PhaseDeload:      3,
	}[phase]
	if base == 0 {
		base = 4
	}

	switch exp {
	case ExperienceBeginner:
		if base > 3 {
			return base - 1
		}
		return base
	case ExperienceElite:
		if base < 6 {
			return base + 1
		}
		return base
	default:
		return base
	}
}

func roundToIncrement(value, increment float32) float32 {
	if increment <= 0 {
		return value
	}
	return float32(roundHalfUp(float64(value/increment))) * increment
}

func roundHalfUp(v float64) int64 {
	if v >= 0 {
		return int64(v + 0.5)
	}
	return -int64(-v + 0.5)
}
