package tu

import (
	"sort"

	"github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"
)

// Calculator interns exercises by id and caches their sparse
// (muscle_id, activation) rows plus per-muscle bias weights, so repeated
// workouts referencing the same exercises don't need to resend the full
// activation matrix.
//
// Calculator is not thread-safe. Callers sharing a Calculator across
// goroutines must synchronize externally; pkg/abi's handle registry locks
// only its handle table, not the Calculator behind a handle.
type Calculator struct {
	exercises map[string][]MuscleActivation
	bias      map[uint32]float32
}

// NewCalculator returns an empty, ready-to-use Calculator.
func NewCalculator() *Calculator {
	return &Calculator{
		exercises: make(map[string][]MuscleActivation),
		bias:      make(map[uint32]float32),
	}
}

// AddExercise interns an exercise's activation row under id. Muscle ids
// within the row must be unique. On validation failure the calculator is
// left unchanged: the full record is interned or nothing is.
func (c *Calculator) AddExercise(id string, activations []MuscleActivation) error {
	seen := make(map[uint32]struct{}, len(activations))
	for _, a := range activations {
		if _, dup := seen[a.MuscleID]; dup {
			return kernelerr.Newf(kernelerr.InvalidInput, "duplicate muscle id %d in exercise %q", a.MuscleID, id)
		}
		seen[a.MuscleID] = struct{}{}
		if a.Activation < 0 || a.Activation > 100 {
			return kernelerr.Newf(kernelerr.InvalidInput, "activation %f out of [0,100] for muscle %d", a.Activation, a.MuscleID)
		}
	}

	row := make([]MuscleActivation, len(activations))
	copy(row, activations)
	c.exercises[id] = row
	return nil
}

// AddExercises interns a batch of exercise rows. The whole batch is
// validated first: on any failure nothing is interned and the calculator
// is left unchanged. A duplicate id within the batch takes the last row,
// matching repeated AddExercise calls.
func (c *Calculator) AddExercises(inputs []ExerciseInput) error {
	rows := make(map[string][]MuscleActivation, len(inputs))
	for _, in := range inputs {
		seen := make(map[uint32]struct{}, len(in.Activations))
		for _, a := range in.Activations {
			if _, dup := seen[a.MuscleID]; dup {
				return kernelerr.Newf(kernelerr.InvalidInput, "duplicate muscle id %d in exercise %q", a.MuscleID, in.ID)
			}
			seen[a.MuscleID] = struct{}{}
			if a.Activation < 0 || a.Activation > 100 {
				return kernelerr.Newf(kernelerr.InvalidInput, "activation %f out of [0,100] for muscle %d", a.Activation, a.MuscleID)
			}
		}
		row := make([]MuscleActivation, len(in.Activations))
		copy(row, in.Activations)
		rows[in.ID] = row
	}

	for id, row := range rows {
		c.exercises[id] = row
	}
	return nil
}

// SetMuscleBias sets (or overwrites) the bias weight for a muscle.
// Muscles without an explicit bias default to 1.0 in CalculateCached.
func (c *Calculator) SetMuscleBias(muscleID uint32, weight float32) error {
	if weight < 0 {
		return kernelerr.New(kernelerr.InvalidInput, "bias weight must be non-negative")
	}
	c.bias[muscleID] = weight
	return nil
}

// Clear releases all interned exercises and biases but preserves the
// calculator itself for reuse.
func (c *Calculator) Clear() {
	c.exercises = make(map[string][]MuscleActivation)
	c.bias = make(map[uint32]float32)
}

// biasFor returns the effective bias for a muscle, defaulting to 1.0.
func (c *Calculator) biasFor(muscleID uint32) float32 {
	if w, ok := c.bias[muscleID]; ok {
		return w
	}
	return 1.0
}

// CalculateCached computes the total TU for a workout given exercise ids
// and matching set counts. Unknown ids fail with UnknownExercise and do
// not mutate the calculator.
func (c *Calculator) CalculateCached(ids []string, sets []int32) (float32, error) {
	if len(ids) != len(sets) {
		return 0, kernelerr.Newf(kernelerr.InvalidShape, "ids length %d != sets length %d", len(ids), len(sets))
	}
	for i, id := range ids {
		if _, ok := c.exercises[id]; !ok {
			return 0, kernelerr.Newf(kernelerr.UnknownExercise, "unknown exercise %q", id).WithMetadata("exercise_id", id)
		}
		if sets[i] < 0 {
			return 0, kernelerr.New(kernelerr.InvalidShape, "sets must be non-negative")
		}
	}

	var total float32
	for i, id := range ids {
		row := c.exercises[id]
		var rowSum float32
		for _, a := range row {
			rowSum += (a.Activation / 100) * c.biasFor(a.MuscleID)
		}
		total += float32(sets[i]) * rowSum
	}
	return total, nil
}

// CalculateCachedDetailed is CalculateCached's per-muscle counterpart.
func (c *Calculator) CalculateCachedDetailed(ids []string, sets []int32) (DetailedResult, error) {
	if len(ids) != len(sets) {
		return DetailedResult{}, kernelerr.Newf(kernelerr.InvalidShape, "ids length %d != sets length %d", len(ids), len(sets))
	}
	for i, id := range ids {
		if _, ok := c.exercises[id]; !ok {
			return DetailedResult{}, kernelerr.Newf(kernelerr.UnknownExercise, "unknown exercise %q", id).WithMetadata("exercise_id", id)
		}
		if sets[i] < 0 {
			return DetailedResult{}, kernelerr.New(kernelerr.InvalidShape, "sets must be non-negative")
		}
	}

	raw := make(map[uint32]float32)
	for i, id := range ids {
		row := c.exercises[id]
		for _, a := range row {
			raw[a.MuscleID] += float32(sets[i]) * (a.Activation / 100)
		}
	}

	// Accumulate in ascending muscle-id order so the breakdown and the
	// f32 total are bit-identical across calls, matching Detailed's
	// column order.
	muscleIDs := make([]uint32, 0, len(raw))
	for muscleID := range raw {
		muscleIDs = append(muscleIDs, muscleID)
	}
	sort.Slice(muscleIDs, func(a, b int) bool { return muscleIDs[a] < muscleIDs[b] })

	var total float32
	muscles := make([]MuscleTU, 0, len(muscleIDs))
	for _, muscleID := range muscleIDs {
		r := raw[muscleID]
		w := r * c.biasFor(muscleID)
		total += w
		muscles = append(muscles, MuscleTU{
			MuscleID:     muscleID,
			Raw:          r,
			Weighted:     w,
			RawRounded:   round2(r),
			RoundedValue: round2(w),
		})
	}
	return DetailedResult{Total: total, Muscles: muscles}, nil
}

// KnownExercise reports whether id has been interned.
func (c *Calculator) KnownExercise(id string) bool {
	_, ok := c.exercises[id]
	return ok
}
