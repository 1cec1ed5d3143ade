package submission

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/goliatone/go-ileso/pkg/form"
	"github.com/goliatone/go-ileso/pkg/model"
)

// Option customises a Controller.
type Option func(*Controller)

// WithTimeout bounds each prediction call. Zero leaves the caller's context
// in charge.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.timeout = d
	}
}

// WithLogger sets the operator log channel.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIDGenerator replaces the attempt ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// Controller drives one form through validation and a single in-flight
// prediction at a time. Submit, State, Close and Subscribe are safe for
// concurrent use; the form itself must only be edited by its owner.
type Controller struct {
	form      *form.Form
	predictor Predictor
	logger    *slog.Logger
	timeout   time.Duration
	newID     func() string
	now       func() time.Time

	mu        sync.Mutex
	state     State
	cancel    context.CancelFunc
	closed    bool
	nextID    int
	listeners map[int]func(State)
}

// New creates an idle controller for f.
func New(f *form.Form, p Predictor, opts ...Option) *Controller {
	c := &Controller{
		form:      f,
		predictor: p,
		logger:    slog.Default(),
		newID:     attemptID,
		now:       time.Now,
		state:     State{Status: StatusIdle},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Form returns the controlled form.
func (c *Controller) Form() *form.Form {
	return c.form
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit validates the form and, when it is valid, performs exactly one
// prediction call.
//
// While an attempt is pending Submit returns ErrInFlight without side
// effects. An invalid form is revealed and its validation.Errors returned;
// the state is left untouched and nothing is sent. Otherwise the returned
// State is Succeeded or Failed, and the returned error is the failure cause.
func (c *Controller) Submit(ctx context.Context) (st State, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if st, err := c.admit(); err != nil {
		return st, err
	}

	// Form listeners may read the controller, so the form is touched
	// without holding c.mu.
	if errs := c.form.Errors(); len(errs) > 0 {
		c.form.Reveal()
		return c.State(), errs
	}
	payload, err := c.form.Input().Payload()
	if err != nil {
		return c.State(), err
	}

	c.mu.Lock()
	if st, err := c.admitLocked(); err != nil {
		c.mu.Unlock()
		return st, err
	}

	var (
		callCtx context.Context
		cancel  context.CancelFunc
	)
	if c.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}
	id := c.newID()
	c.state = State{Status: StatusPending, AttemptID: id, StartedAt: c.now()}
	c.cancel = cancel
	pending := c.state
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	c.logger.Debug("prediction submitted", "attempt", id)
	notify(listeners, pending)

	var probability float64
	defer func() {
		cancel()
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
		st = c.finish(id, probability, err)
		err = st.Err
	}()

	probability, err = c.predictor.Predict(callCtx, payload)
	return st, err
}

func (c *Controller) admit() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.admitLocked()
}

func (c *Controller) admitLocked() (State, error) {
	switch {
	case c.closed:
		return c.state, ErrClosed
	case c.state.Status == StatusPending:
		return c.state, ErrInFlight
	}
	return c.state, nil
}

func (c *Controller) finish(id string, probability float64, err error) State {
	if err == nil && !validProbability(probability) {
		err = &ProbabilityError{Value: probability}
	}
	c.mu.Lock()
	next := State{
		Status:     StatusSucceeded,
		AttemptID:  id,
		StartedAt:  c.state.StartedAt,
		FinishedAt: c.now(),
	}
	if err != nil {
		next.Status = StatusFailed
		next.Err = err
	} else {
		next.Probability = probability
	}
	c.state = next
	c.cancel = nil
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("prediction failed",
			"attempt", id,
			"duration", next.FinishedAt.Sub(next.StartedAt),
			"error", err,
		)
	} else {
		c.logger.Info("prediction succeeded",
			"attempt", id,
			"probability", probability,
			"duration", next.FinishedAt.Sub(next.StartedAt),
		)
	}

	var remote interface {
		FieldErrors() map[model.Field][]string
	}
	if errors.As(err, &remote) {
		c.form.SetRemoteErrors(remote.FieldErrors())
	} else if err == nil && c.form.RemoteErrors() != nil {
		c.form.SetRemoteErrors(nil)
	}

	notify(listeners, next)
	return next
}

// Reset returns a settled controller to Idle. It is a no-op while pending.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.state.Status == StatusPending {
		c.mu.Unlock()
		return
	}
	c.state = State{Status: StatusIdle}
	listeners := c.snapshotListeners()
	c.mu.Unlock()
	notify(listeners, State{Status: StatusIdle})
}

// Close cancels the in-flight call, if any, and rejects further submits.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}

// Subscribe registers fn for every state change and returns a function that
// removes it. fn runs on the submitting goroutine, outside the controller
// lock.
func (c *Controller) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listeners == nil {
		c.listeners = make(map[int]func(State))
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Controller) snapshotListeners() []func(State) {
	if len(c.listeners) == 0 {
		return nil
	}
	out := make([]func(State), 0, len(c.listeners))
	for i := 0; i < c.nextID; i++ {
		if fn, ok := c.listeners[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []func(State), st State) {
	for _, fn := range listeners {
		fn(st)
	}
}

func validProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

func attemptID() string {
	id, err := gonanoid.New(12)
	if err != nil {
		return "attempt"
	}
	return id
}
