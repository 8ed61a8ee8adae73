package abi

import (
	"math"
	"testing"

	"github.com/ripixel/fitglue-kernel/pkg/kernel/load"
	"github.com/ripixel/fitglue-kernel/pkg/kernel/ratelimit"
	"github.com/ripixel/fitglue-kernel/pkg/kernel/tu"
)

func TestRegistry_NewGetFree(t *testing.T) {
	r := NewRegistry[int]()
	h := r.New(42)

	v, ok := r.Get(h)
	if !ok || v != 42 {
		t.Fatalf("expected 42, got %v ok=%v", v, ok)
	}

	freed := h
	r.Free(&freed)
	if !freed.IsZero() {
		t.Errorf("expected Free to zero the caller's handle")
	}
	if _, ok := r.Get(h); ok {
		t.Errorf("expected handle to be gone after Free")
	}
}

func TestRegistry_DoubleFreeIsNoOp(t *testing.T) {
	r := NewRegistry[int]()
	h := r.New(1)
	r.Free(&h)
	r.Free(&h) // zeroed by the first call; no-op
	r.Free(nil)
	if r.Len() != 0 {
		t.Errorf("expected empty registry, got len %d", r.Len())
	}
}

func TestRegistry_DistinctHandlesDoNotCollide(t *testing.T) {
	r := NewRegistry[string]()
	h1 := r.New("a")
	h2 := r.New("b")
	if h1 == h2 {
		t.Fatalf("expected distinct handles")
	}
	v1, _ := r.Get(h1)
	v2, _ := r.Get(h2)
	if v1 != "a" || v2 != "b" {
		t.Errorf("got %q, %q, want a, b", v1, v2)
	}
}

func TestHandle_ZeroValue(t *testing.T) {
	var h Handle
	if !h.IsZero() {
		t.Errorf("expected zero-value handle to report IsZero")
	}
}

func TestTUCalculator_AddAndCalculate(t *testing.T) {
	h := NewTUCalculator()
	defer FreeTUCalculator(&h)

	err := TUAddExercise(h, "bench", []tu.MuscleActivation{
		{MuscleID: 1, Activation: 80},
		{MuscleID: 2, Activation: 40},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err := TUCalculateCached(h, []string{"bench"}, []int32{3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total <= 0 {
		t.Errorf("expected positive total, got %f", total)
	}
}

func TestTUCalculateCachedDetailed_StableOrderMatchesScalar(t *testing.T) {
	h := NewTUCalculator()
	defer FreeTUCalculator(&h)

	if err := TUAddExercises(h, []tu.ExerciseInput{
		{ID: "bench", Activations: []tu.MuscleActivation{{MuscleID: 5, Activation: 60}, {MuscleID: 1, Activation: 30}}},
		{ID: "row", Activations: []tu.MuscleActivation{{MuscleID: 3, Activation: 80}}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := []string{"bench", "row"}
	sets := []int32{2, 3}

	detailed, err := TUCalculateCachedDetailed(h, ids, sets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantOrder := []uint32{1, 3, 5}
	if len(detailed.Muscles) != len(wantOrder) {
		t.Fatalf("expected %d muscles, got %d", len(wantOrder), len(detailed.Muscles))
	}
	for i, m := range detailed.Muscles {
		if m.MuscleID != wantOrder[i] {
			t.Errorf("muscle[%d] = %d, want %d (ascending id order)", i, m.MuscleID, wantOrder[i])
		}
	}

	scalar, err := TUCalculateCached(h, ids, sets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(float64(detailed.Total-scalar)) > 1e-3 {
		t.Errorf("detailed total %f != cached scalar %f", detailed.Total, scalar)
	}
}

func TestTUCalculator_UnknownHandle(t *testing.T) {
	var bogus Handle
	if err := TUAddExercise(bogus, "bench", nil); err != ErrUnknownHandle {
		t.Errorf("expected ErrUnknownHandle, got %v", err)
	}
}

func TestTUCalculator_FreeThenUseFails(t *testing.T) {
	h := NewTUCalculator()
	FreeTUCalculator(&h)
	if !h.IsZero() {
		t.Errorf("expected free to zero the handle")
	}
	if err := TUAddExercise(h, "bench", nil); err != ErrUnknownHandle {
		t.Errorf("expected ErrUnknownHandle after free, got %v", err)
	}
}

func TestTUSimple_Stateless(t *testing.T) {
	total, err := TUSimple([]float32{80, 40}, []int32{3}, []float32{1, 1}, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total <= 0 {
		t.Errorf("expected positive total, got %f", total)
	}
}

func TestEstimateOneRM_RegistersHandle(t *testing.T) {
	h, err := EstimateOneRM(100, 5, 8.0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer FreeOneRM(&h)

	result, err := OneRMValue(h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FormulaUsed != load.FormulaBlend {
		t.Errorf("expected blend formula, got %v", result.FormulaUsed)
	}

	computedAt, err := OneRMComputedAt(h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if computedAt <= 0 {
		t.Errorf("expected positive unix timestamp, got %d", computedAt)
	}
}

func TestCalculatePrescription_RestSecondsRoundTrip(t *testing.T) {
	h, err := CalculatePrescription(200, 5, 8.0, load.PhaseStrength, load.ExperienceIntermediate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer FreePrescription(&h)

	rest, err := PrescriptionRestSeconds(h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rest != 180 {
		t.Errorf("rest = %d, want 180", rest)
	}

	p, err := PrescriptionValue(h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.WeightKg != 162.5 {
		t.Errorf("weight = %f, want 162.5", p.WeightKg)
	}
}

func TestNewLimiter_CheckAndFree(t *testing.T) {
	h, err := NewLimiter(ratelimit.KindSlidingWindow, ratelimit.Config{MaxRequests: 1, WindowSeconds: 60})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d1, err := LimiterCheck(h, "user-1")
	if err != nil || !d1.Allowed {
		t.Fatalf("expected first check allowed, got %+v, err %v", d1, err)
	}
	d2, _ := LimiterCheck(h, "user-1")
	if d2.Allowed {
		t.Errorf("expected second check denied")
	}

	FreeLimiter(&h)
	if _, err := LimiterCheck(h, "user-1"); err != ErrUnknownHandle {
		t.Errorf("expected ErrUnknownHandle after free, got %v", err)
	}
}

func TestGenerateKeyPair_SignAndFree(t *testing.T) {
	h, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pub, err := KeyPairPublicKey(h)
	if err != nil || pub == "" {
		t.Fatalf("expected non-empty public key, got %q, err %v", pub, err)
	}

	fp, err := KeyPairFingerprint(h)
	if err != nil || len(fp) != 64 {
		t.Fatalf("expected 64-char fingerprint, got %q, err %v", fp, err)
	}

	sig, err := KeyPairSign(h, []byte("hello"))
	if err != nil || len(sig) != 64 {
		t.Fatalf("expected 64-byte signature, got %d bytes, err %v", len(sig), err)
	}

	FreeKeyPair(&h)
	if _, err := KeyPairPublicKey(h); err != ErrUnknownHandle {
		t.Errorf("expected ErrUnknownHandle after free, got %v", err)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != ErrorKindNone {
		t.Errorf("expected ErrorKindNone for nil error")
	}
	if KindOf(ErrUnknownHandle) != ErrorKindInvalidInput {
		t.Errorf("expected ErrorKindInvalidInput for ErrUnknownHandle, got %v", KindOf(ErrUnknownHandle))
	}
}
