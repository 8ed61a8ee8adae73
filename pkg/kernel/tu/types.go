// Package tu implements Training-Unit aggregation: the weighted dosage of
// muscle stimulus produced by a workout's exercises, sets, and per-muscle
// bias weights.
//
// Every exported function here is pure and reentrant except for
// *Calculator, whose methods mutate interned state and are documented as
// single-threaded per call site (see pkg/abi for the handle-based
// ownership model callers should use around it).
package tu

import "github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"

// MuscleActivation pairs a muscle identifier with its activation percentage
// for one exercise. Activation is a percent of maximum voluntary
// contraction in [0, 100]. Each field owns its own storage; no two
// MuscleActivation values may share a backing slice.
type MuscleActivation struct {
	MuscleID   uint32
	Activation float32
}

// ExerciseInput is one exercise's contribution to a workout: a stable
// exercise id plus the muscles it activates. Muscle ids within an
// exercise must be unique; Calculator.AddExercises validates each row
// before interning any of them.
type ExerciseInput struct {
	ID          string
	Activations []MuscleActivation
}

// MuscleTU is one muscle's contribution to a DetailedResult's breakdown.
type MuscleTU struct {
	MuscleID     uint32
	Raw          float32 // Σ_e S[e]·(A[e,m]/100), unrounded
	Weighted     float32 // Raw * bias, unrounded
	RawRounded   float32 // Raw rounded to 2 decimal places
	RoundedValue float32 // Weighted rounded to 2 decimal places
}

// DetailedResult is the full per-muscle TU breakdown for a single
// computation, alongside the scalar total it must sum to within 1e-3.
type DetailedResult struct {
	Total   float32
	Muscles []MuscleTU
}

func round2(v float32) float32 {
	return float32(int64(v*100+sign(v)*0.5)) / 100
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// validateShape checks the InvalidShape contract shared by the flat
// matrix entry points.
func validateShape(activationsLen, setsLen, biasLen, exerciseCount, muscleCount int) error {
	if activationsLen != exerciseCount*muscleCount {
		return kernelerr.Newf(kernelerr.InvalidShape, "activation matrix length %d != E*M (%d*%d)", activationsLen, exerciseCount, muscleCount)
	}
	if setsLen != exerciseCount {
		return kernelerr.Newf(kernelerr.InvalidShape, "sets length %d != E (%d)", setsLen, exerciseCount)
	}
	if biasLen != muscleCount {
		return kernelerr.Newf(kernelerr.InvalidShape, "bias length %d != M (%d)", biasLen, muscleCount)
	}
	return nil
}
