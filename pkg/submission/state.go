package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-ileso/pkg/model"
)

// Status is the phase of the submission workflow.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// IsTerminal reports whether the status ends an attempt.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

func (s Status) String() string {
	return string(s)
}

// State is a snapshot of the controller. Probability is meaningful only when
// Status is StatusSucceeded and Err only when it is StatusFailed.
type State struct {
	Status      Status
	Probability float64
	Err         error
	AttemptID   string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Pending reports whether a request is in flight.
func (s State) Pending() bool {
	return s.Status == StatusPending
}

// Predictor performs the remote prediction.
type Predictor interface {
	Predict(ctx context.Context, payload model.Payload) (float64, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(ctx context.Context, payload model.Payload) (float64, error)

func (f PredictorFunc) Predict(ctx context.Context, payload model.Payload) (float64, error) {
	return f(ctx, payload)
}

var (
	// ErrInFlight is returned by Submit while a previous attempt is pending.
	ErrInFlight = errors.New("submission: a prediction is already in flight")
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("submission: controller closed")
)

// PanicError wraps a value recovered from a panicking predictor.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("submission: predictor panicked: %v", e.Value)
}

// ProbabilityError reports a predictor result outside [0,1].
type ProbabilityError struct {
	Value float64
}

func (e *ProbabilityError) Error() string {
	return fmt.Sprintf("submission: probability %v outside [0,1]", e.Value)
}
