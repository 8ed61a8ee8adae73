package abi

import (
	"github.com/ripixel/fitglue-kernel/pkg/kernel/tu"
)

var tuCalculators = NewRegistry[*tu.Calculator]()

// NewTUCalculator registers a fresh tu.Calculator and returns its handle.
func NewTUCalculator() Handle {
	return tuCalculators.New(tu.NewCalculator())
}

// FreeTUCalculator releases the calculator registered under *h and
// zeroes the handle.
func FreeTUCalculator(h *Handle) {
	tuCalculators.Free(h)
}

func getTUCalculator(h Handle) (*tu.Calculator, error) {
	c, ok := tuCalculators.Get(h)
	if !ok {
		return nil, ErrUnknownHandle
	}
	return c, nil
}

// TUAddExercise interns an exercise's per-muscle activation profile into
// the calculator registered under h.
func TUAddExercise(h Handle, id string, activations []tu.MuscleActivation) error {
	c, err := getTUCalculator(h)
	if err != nil {
		return err
	}
	return c.AddExercise(id, activations)
}

// TUAddExercises interns a batch of exercise rows into the calculator
// registered under h; on any validation failure nothing is interned.
func TUAddExercises(h Handle, inputs []tu.ExerciseInput) error {
	c, err := getTUCalculator(h)
	if err != nil {
		return err
	}
	return c.AddExercises(inputs)
}

// TUAddExerciseByName resolves name against the built-in exercise
// database (exact, alias, then fuzzy match) and interns it under the
// resolved canonical id.
func TUAddExerciseByName(h Handle, name string, muscleIDs map[tu.MuscleGroup]uint32) (string, bool, error) {
	c, err := getTUCalculator(h)
	if err != nil {
		return "", false, err
	}
	return c.AddExerciseByName(name, muscleIDs)
}

// TUSetMuscleBias sets the weighting coefficient for muscleID on the
// calculator registered under h.
func TUSetMuscleBias(h Handle, muscleID uint32, weight float32) error {
	c, err := getTUCalculator(h)
	if err != nil {
		return err
	}
	return c.SetMuscleBias(muscleID, weight)
}

// TUCalculateCached computes a total training-unit score from interned
// exercise ids and parallel set counts.
func TUCalculateCached(h Handle, ids []string, sets []int32) (float32, error) {
	c, err := getTUCalculator(h)
	if err != nil {
		return 0, err
	}
	return c.CalculateCached(ids, sets)
}

// TUCalculateCachedDetailed is TUCalculateCached with a per-muscle
// breakdown.
func TUCalculateCachedDetailed(h Handle, ids []string, sets []int32) (tu.DetailedResult, error) {
	c, err := getTUCalculator(h)
	if err != nil {
		return tu.DetailedResult{}, err
	}
	return c.CalculateCachedDetailed(ids, sets)
}

// TUClear removes every interned exercise and bias from the calculator
// registered under h, in place: the handle stays valid.
func TUClear(h Handle) error {
	c, err := getTUCalculator(h)
	if err != nil {
		return err
	}
	c.Clear()
	return nil
}

// TUSimple is the stateless entry point: the tu_calculate_simple
// primitive over flat activation/set/bias buffers, with no calculator
// handle involved.
func TUSimple(activations []float32, sets []int32, bias []float32, exerciseCount, muscleCount int) (float32, error) {
	return tu.Simple(activations, sets, bias, exerciseCount, muscleCount)
}
