package abi

import (
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/ripixel/fitglue-kernel/pkg/kernel/load"
)

// oneRMRecord is the opaque value OneRMResult handles resolve to: the
// pure-compute result plus a timestamp of when the estimate was
// produced, carried internally as timestamppb.Timestamp the way every
// pb.*Record in the reference platform carries its own timestamp field.
type oneRMRecord struct {
	result   load.OneRMResult
	computed *timestamppb.Timestamp
}

// prescriptionRecord is the opaque value Prescription handles resolve
// to: the pure-compute Prescription plus its rest period carried
// internally as durationpb.Duration.
type prescriptionRecord struct {
	prescription load.Prescription
	rest         *durationpb.Duration
}

var oneRMResults = NewRegistry[oneRMRecord]()
var prescriptions = NewRegistry[prescriptionRecord]()

// EstimateOneRM estimates a 1RM and registers the result under a fresh
// handle, stamped with the time of computation.
func EstimateOneRM(weight float32, reps int, rpe float32, rpeProvided bool) (Handle, error) {
	result, err := load.EstimateOneRM(weight, reps, rpe, rpeProvided)
	if err != nil {
		return Handle{}, err
	}
	rec := oneRMRecord{result: result, computed: timestamppb.Now()}
	return oneRMResults.New(rec), nil
}

// OneRMValue returns the estimated 1RM, confidence, and formula carried
// by the handle h.
func OneRMValue(h Handle) (load.OneRMResult, error) {
	rec, ok := oneRMResults.Get(h)
	if !ok {
		return load.OneRMResult{}, ErrUnknownHandle
	}
	return rec.result, nil
}

// OneRMComputedAt returns when the estimate behind h was produced, as a
// Unix timestamp in seconds, unwrapped from the internal
// timestamppb.Timestamp.
func OneRMComputedAt(h Handle) (int64, error) {
	rec, ok := oneRMResults.Get(h)
	if !ok {
		return 0, ErrUnknownHandle
	}
	return rec.computed.AsTime().Unix(), nil
}

// FreeOneRM releases the handle returned by EstimateOneRM and zeroes it.
func FreeOneRM(h *Handle) {
	oneRMResults.Free(h)
}

// CalculatePrescription computes a training prescription and registers
// it under a fresh handle.
func CalculatePrescription(e1rm float32, targetReps int, targetRPE float32, phase load.Phase, experience load.ExperienceLevel) (Handle, error) {
	p, err := load.CalculatePrescription(e1rm, targetReps, targetRPE, phase, experience)
	if err != nil {
		return Handle{}, err
	}
	rec := prescriptionRecord{
		prescription: p,
		rest:         durationpb.New(time.Duration(p.RestSeconds) * time.Second),
	}
	return prescriptions.New(rec), nil
}

// PrescriptionValue returns the full Prescription carried by handle h.
func PrescriptionValue(h Handle) (load.Prescription, error) {
	rec, ok := prescriptions.Get(h)
	if !ok {
		return load.Prescription{}, ErrUnknownHandle
	}
	return rec.prescription, nil
}

// PrescriptionRestSeconds returns the rest period in whole seconds,
// round-tripped through the record's internal durationpb.Duration.
func PrescriptionRestSeconds(h Handle) (uint16, error) {
	rec, ok := prescriptions.Get(h)
	if !ok {
		return 0, ErrUnknownHandle
	}
	return uint16(rec.rest.AsDuration().Seconds()), nil
}

// FreePrescription releases the handle returned by CalculatePrescription
// and zeroes it.
func FreePrescription(h *Handle) {
	prescriptions.Free(h)
}
