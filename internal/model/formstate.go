package model

import "time"

// FormPhase is the per-form request state machine. The login and booking
// forms use it to refuse a second submission while one is in flight and to
// carry a failure reason back into the re-rendered page.
type FormPhase int

const (
	FormIdle FormPhase = iota
	FormSubmitting
	FormSucceeded
	FormFailed
)

// FormState pairs a phase with its failure reason, if any. Since marks when
// a submission went in flight, so a state orphaned by a crash mid-request
// can be aged out instead of locking the form forever.
type FormState struct {
	Phase  FormPhase `json:"phase"`
	Reason string    `json:"reason,omitempty"`
	Since  time.Time `json:"since,omitempty"`
}

func (s FormState) InFlight() bool { return s.Phase == FormSubmitting }

// Expired reports whether an in-flight state is older than ttl. A state
// without a timestamp counts as expired.
func (s FormState) Expired(now time.Time, ttl time.Duration) bool {
	if !s.InFlight() {
		return false
	}
	return s.Since.IsZero() || now.Sub(s.Since) > ttl
}

// Fail returns a failed state carrying the reason shown to the user.
func Fail(reason string) FormState {
	return FormState{Phase: FormFailed, Reason: reason}
}
