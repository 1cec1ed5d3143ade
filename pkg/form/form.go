package form

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-ileso/pkg/model"
	"github.com/goliatone/go-ileso/pkg/validation"
)

// EventKind names the mutation that triggered an Event.
type EventKind string

const (
	EventField  EventKind = "field"
	EventReveal EventKind = "reveal"
	EventReset  EventKind = "reset"
	EventRemote EventKind = "remote"
)

// Event is delivered to subscribers after every mutation.
type Event struct {
	Kind   EventKind
	Field  model.Field
	Input  model.FormInput
	Errors validation.Errors
}

// Listener receives form events synchronously.
type Listener func(Event)

// Option customises a Form.
type Option func(*Form)

// WithSchema replaces the default schema.
func WithSchema(schema *validation.Schema) Option {
	return func(f *Form) {
		if schema != nil {
			f.schema = schema
		}
	}
}

// WithHighwayInput selects how the highway field is parsed.
func WithHighwayInput(h HighwayInput) Option {
	return func(f *Form) {
		if h != nil {
			f.highway = h
		}
	}
}

// WithInitial seeds the form with in instead of model.DefaultInput.
func WithInitial(in model.FormInput) Option {
	return func(f *Form) {
		f.initial = in
		f.input = in
	}
}

// Form holds the current input of one form instance and evaluates it against
// the schema on demand. A Form has a single owner and is not safe for
// concurrent use.
type Form struct {
	schema  *validation.Schema
	highway HighwayInput

	initial  model.FormInput
	input    model.FormInput
	revealed bool
	remote   map[model.Field][]string

	nextID    int
	listeners map[int]Listener
}

// New creates a form holding model.DefaultInput.
func New(opts ...Option) *Form {
	f := &Form{
		schema:  validation.New(),
		highway: NumericHighway{},
		initial: model.DefaultInput(),
	}
	f.input = f.initial
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// SetField stores raw as the value of field. Numeric fields are parsed
// strictly; text that is not an integer is kept as an invalid value and
// reported by Errors. Unknown fields are rejected.
func (f *Form) SetField(field model.Field, raw string) error {
	switch field.Kind() {
	case model.KindInteger:
		var n model.Number
		if field == model.FieldHighway {
			n = f.highway.Parse(raw)
		} else {
			n = model.ParseNumber(raw)
		}
		if err := f.input.SetNumber(field, n); err != nil {
			return err
		}
	case model.KindChoice:
		if err := f.input.SetText(field, raw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("form: unknown field %q", field)
	}
	delete(f.remote, field)
	f.emit(EventField, field)
	return nil
}

// SetValues applies several raw values in form order.
func (f *Form) SetValues(values map[model.Field]string) error {
	keys := make([]model.Field, 0, len(values))
	for field := range values {
		keys = append(keys, field)
	}
	sort.SliceStable(keys, func(i, j int) bool { return order(keys[i]) < order(keys[j]) })
	for _, field := range keys {
		if err := f.SetField(field, values[field]); err != nil {
			return err
		}
	}
	return nil
}

// Input returns a copy of the current values.
func (f *Form) Input() model.FormInput {
	return f.input
}

// Raw returns the current value of field as text.
func (f *Form) Raw(field model.Field) string {
	return f.input.Raw(field)
}

// Errors validates the current values.
func (f *Form) Errors() validation.Errors {
	return f.schema.Validate(f.input)
}

// IsValid reports whether the current values can be submitted.
func (f *Form) IsValid() bool {
	return len(f.Errors()) == 0
}

// Reveal marks the field errors as visible. Front ends call it after the
// first submit attempt.
func (f *Form) Reveal() {
	f.revealed = true
	f.emit(EventReveal, "")
}

// Revealed reports whether errors should be displayed.
func (f *Form) Revealed() bool {
	return f.revealed
}

// VisibleErrors returns the field errors when they have been revealed.
func (f *Form) VisibleErrors() validation.Errors {
	if !f.revealed {
		return nil
	}
	return f.Errors()
}

// SetRemoteErrors attaches messages returned by the prediction service. They
// are cleared field by field as the user edits.
func (f *Form) SetRemoteErrors(errs map[model.Field][]string) {
	f.remote = nil
	if len(errs) > 0 {
		f.remote = make(map[model.Field][]string, len(errs))
		for field, msgs := range errs {
			f.remote[field] = append([]string(nil), msgs...)
		}
	}
	f.emit(EventRemote, "")
}

// RemoteErrors returns the server-side messages still attached to fields.
func (f *Form) RemoteErrors() map[model.Field][]string {
	if len(f.remote) == 0 {
		return nil
	}
	out := make(map[model.Field][]string, len(f.remote))
	for field, msgs := range f.remote {
		out[field] = append([]string(nil), msgs...)
	}
	return out
}

// Reset restores the initial values and hides errors.
func (f *Form) Reset() {
	f.input = f.initial
	f.revealed = false
	f.remote = nil
	f.emit(EventReset, "")
}

// HighwayInput reports the active highway strategy.
func (f *Form) HighwayInput() HighwayInput {
	return f.highway
}

// Subscribe registers fn for every subsequent mutation and returns a
// function that removes it.
func (f *Form) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	if f.listeners == nil {
		f.listeners = make(map[int]Listener)
	}
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() { delete(f.listeners, id) }
}

func (f *Form) emit(kind EventKind, field model.Field) {
	if len(f.listeners) == 0 {
		return
	}
	evt := Event{Kind: kind, Field: field, Input: f.input, Errors: f.Errors()}
	ids := make([]int, 0, len(f.listeners))
	for id := range f.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := f.listeners[id]; ok {
			fn(evt)
		}
	}
}

func order(field model.Field) int {
	for i, candidate := range model.Fields() {
		if candidate == field {
			return i
		}
	}
	return len(model.Fields())
}
