package machine

import (
	"errors"
	"fmt"
)

// Sentinel errors for builder and validation failures, styled on the
// teacher's package-level errors.New + fmt.Errorf("%w: ...") pattern.
var (
	// ErrBlankInSigma is returned when an input symbol equal to the blank is added (I1).
	ErrBlankInSigma = errors.New("machine: blank symbol must not belong to the input alphabet")

	// ErrBlankLocked is returned when SetBlank is called after a transition has been added.
	ErrBlankLocked = errors.New("machine: blank symbol cannot be redefined after transitions were added")

	// ErrDuplicateTransition is returned when a second edge is added for an
	// already-keyed (state, read-tuple) pair (I3).
	ErrDuplicateTransition = errors.New("machine: duplicate transition for (state, read-tuple)")

	// ErrShapeMismatch is returned when a transition's tuple length disagrees with the tape count (I4).
	ErrShapeMismatch = errors.New("machine: transition tuple length disagrees with tape count")

	// ErrInvalidTapeCount is returned when a builder is constructed with k < 1.
	ErrInvalidTapeCount = errors.New("machine: tape count must be at least 1")

	// ErrNoInitialState is returned when Build is called without SetInitialState.
	ErrNoInitialState = errors.New("machine: initial state not set")
)

// ValidationErrors aggregates every I1-I4 violation found by IsValid, so a
// caller (typically the parser) can report all of them at once instead of
// only the first.
type ValidationErrors struct {
	errs []error
}

// Append records err, ignoring nil.
func (v *ValidationErrors) Append(err error) {
	if err == nil {
		return
	}

	v.errs = append(v.errs, err)
}

// IsEmpty reports whether no violation was recorded.
func (v *ValidationErrors) IsEmpty() bool {
	return len(v.errs) == 0
}

// AsError returns v as an error, or nil if it is empty.
func (v *ValidationErrors) AsError() error {
	if v.IsEmpty() {
		return nil
	}

	return v
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.errs) == 1 {
		return v.errs[0].Error()
	}

	msg := fmt.Sprintf("machine: %d validation errors:", len(v.errs))
	for _, err := range v.errs {
		msg += "\n - " + err.Error()
	}

	return msg
}

// Unwrap exposes the individual violations to errors.Is / errors.As.
func (v *ValidationErrors) Unwrap() []error {
	return v.errs
}
