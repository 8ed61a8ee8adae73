package tu

import "github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"

// Simple computes the scalar Training Unit total for a flat row-major
// activation matrix A (length E*M), a sets vector S (length E), and a bias
// vector B (length M):
//
//	TU = Σ_e S[e] · Σ_m (A[e,m]/100) · B[m]
//
// Returns 0 for E=0 or M=0. Fails with InvalidShape if the slice lengths
// are inconsistent or any S[e] < 0.
func Simple(activations []float32, sets []int32, bias []float32, exerciseCount, muscleCount int) (float32, error) {
	if exerciseCount == 0 || muscleCount == 0 {
		return 0, nil
	}
	if err := validateShape(len(activations), len(sets), len(bias), exerciseCount, muscleCount); err != nil {
		return 0, err
	}
	for _, s := range sets {
		if s < 0 {
			return 0, kernelerr.New(kernelerr.InvalidShape, "sets must be non-negative")
		}
	}

	var total float32
	for e := 0; e < exerciseCount; e++ {
		var rowSum float32
		base := e * muscleCount
		for m := 0; m < muscleCount; m++ {
			rowSum += (activations[base+m] / 100) * bias[m]
		}
		total += float32(sets[e]) * rowSum
	}
	return total, nil
}

// Detailed computes the same total as Simple but also returns the
// per-muscle raw and weighted breakdown, each rounded to 2 decimal places
// for display. The sum of weighted per-muscle values equals the scalar
// total within 1e-3 absolute tolerance (unrounded internally).
func Detailed(activations []float32, sets []int32, bias []float32, exerciseCount, muscleCount int) (DetailedResult, error) {
	if exerciseCount == 0 || muscleCount == 0 {
		return DetailedResult{}, nil
	}
	if err := validateShape(len(activations), len(sets), len(bias), exerciseCount, muscleCount); err != nil {
		return DetailedResult{}, err
	}
	for _, s := range sets {
		if s < 0 {
			return DetailedResult{}, kernelerr.New(kernelerr.InvalidShape, "sets must be non-negative")
		}
	}

	raw := make([]float32, muscleCount)
	for e := 0; e < exerciseCount; e++ {
		base := e * muscleCount
		for m := 0; m < muscleCount; m++ {
			raw[m] += float32(sets[e]) * (activations[base+m] / 100)
		}
	}

	var total float32
	muscles := make([]MuscleTU, muscleCount)
	for m := 0; m < muscleCount; m++ {
		weighted := raw[m] * bias[m]
		total += weighted
		muscles[m] = MuscleTU{
			MuscleID:     uint32(m),
			Raw:          raw[m],
			Weighted:     weighted,
			RawRounded:   round2(raw[m]),
			RoundedValue: round2(weighted),
		}
	}

	return DetailedResult{Total: total, Muscles: muscles}, nil
}

// Batched computes per-workout TU totals for the concatenation of several
// workouts' activation matrices and sets vectors. workoutSizes holds each
// workout's exercise count E_i; Σ workoutSizes must equal the number of
// rows implied by activations/sets. muscleCount (M) is shared across all
// workouts. Returns totals in input order.
func Batched(activations []float32, sets []int32, workoutSizes []int, muscleCount int) ([]float32, error) {
	totalExercises := 0
	for _, sz := range workoutSizes {
		totalExercises += sz
	}
	if len(activations) != totalExercises*muscleCount {
		return nil, kernelerr.Newf(kernelerr.InvalidShape, "activation length %d != sum(workoutSizes)*M (%d*%d)", len(activations), totalExercises, muscleCount)
	}
	if len(sets) != totalExercises {
		return nil, kernelerr.Newf(kernelerr.InvalidShape, "sets length %d != sum(workoutSizes) (%d)", len(sets), totalExercises)
	}
	for _, s := range sets {
		if s < 0 {
			return nil, kernelerr.New(kernelerr.InvalidShape, "sets must be non-negative")
		}
	}

	bias := make([]float32, muscleCount)
	for i := range bias {
		bias[i] = 1.0
	}

	totals := make([]float32, len(workoutSizes))
	offset := 0
	for i, sz := range workoutSizes {
		aStart := offset * muscleCount
		aEnd := (offset + sz) * muscleCount
		total, err := Simple(activations[aStart:aEnd], sets[offset:offset+sz], bias, sz, muscleCount)
		if err != nil {
			return nil, err
		}
		totals[i] = total
		offset += sz
	}
	return totals, nil
}
