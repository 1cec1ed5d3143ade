package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-ileso/pkg/form"
	"github.com/goliatone/go-ileso/pkg/model"
	"github.com/goliatone/go-ileso/pkg/present"
	"github.com/goliatone/go-ileso/pkg/submission"
	"github.com/goliatone/go-ileso/pkg/validation"
)

// Session walks the user through the accident form in a terminal, submits it
// through the controller and prints the result.
type Session struct {
	driver     PromptDriver
	controller *submission.Controller
	presenter  *present.Presenter
	theme      Theme
	skipValid  bool
	repeat     bool
	pageSize   int
}

// NewSession builds a session over controller. Without WithPromptDriver the
// interactive survey driver is used.
func NewSession(controller *submission.Controller, presenter *present.Presenter, options ...Option) (*Session, error) {
	if controller == nil {
		return nil, errors.New("tui: controller is required")
	}
	if presenter == nil {
		presenter = present.New()
	}
	s := &Session{
		controller: controller,
		presenter:  presenter,
		theme:      DefaultTheme(),
		pageSize:   10,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run prompts for every field, submits, and prints the banner. On failure it
// offers to edit and resubmit. It returns the last controller state.
func (s *Session) Run(ctx context.Context) (submission.State, error) {
	if ctx == nil {
		return submission.State{}, errors.New("tui: context is required")
	}
	f := s.controller.Form()

	unsubscribe := s.controller.Subscribe(func(st submission.State) {
		if st.Pending() {
			_ = s.info(ctx, s.theme.InfoPrefix+s.presenter.Present(f, st).ButtonLabel)
		}
	})
	defer unsubscribe()

	firstPass := true
	for {
		if err := s.collect(ctx, f, firstPass && s.skipValid); err != nil {
			return s.controller.State(), err
		}
		firstPass = false

		ok, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.presenter.Text("cli.confirm", "Enviar para previsão?"),
			Default: true,
		})
		if err != nil {
			return s.controller.State(), err
		}
		if !ok {
			return s.controller.State(), ErrAborted
		}

		st, err := s.controller.Submit(ctx)
		var invalid validation.Errors
		if errors.As(err, &invalid) {
			s.showErrors(ctx, f)
			continue
		}
		if errors.Is(err, submission.ErrClosed) || errors.Is(err, submission.ErrInFlight) {
			return st, err
		}

		view := s.presenter.Present(f, st)
		if view.Banner != nil {
			prefix := s.theme.ResultPrefix
			if view.Banner.Tone == present.ToneError {
				prefix = s.theme.ErrorPrefix
			}
			if infoErr := s.info(ctx, prefix+view.Banner.Text()); infoErr != nil {
				return st, infoErr
			}
		}

		question := "cli.again"
		fallback := "Fazer outra previsão?"
		if st.Status == submission.StatusFailed {
			_ = s.info(ctx, s.theme.ErrorPrefix+err.Error())
			for _, msg := range view.Messages {
				_ = s.info(ctx, s.theme.ErrorPrefix+msg)
			}
			s.showErrors(ctx, f)
			question, fallback = "cli.retry", "Tentar novamente?"
		} else if !s.repeat {
			return st, nil
		}

		again, confirmErr := s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.presenter.Text(question, fallback),
			Default: st.Status == submission.StatusFailed,
		})
		if confirmErr != nil || !again {
			if confirmErr != nil {
				return st, confirmErr
			}
			return st, err
		}
	}
}

func (s *Session) collect(ctx context.Context, f *form.Form, skipValid bool) error {
	for _, field := range model.Fields() {
		if skipValid && !f.Errors().Has(field) {
			continue
		}
		if err := s.promptField(ctx, f, field); err != nil {
			return err
		}
	}
	return nil
}

// promptField asks for field until the schema accepts it.
func (s *Session) promptField(ctx context.Context, f *form.Form, field model.Field) error {
	for {
		raw, err := s.ask(ctx, f, field)
		if err != nil {
			return err
		}
		if err := f.SetField(field, raw); err != nil {
			return err
		}
		errs := f.Errors().For(field)
		if len(errs) == 0 {
			return nil
		}
		for _, fe := range errs {
			if err := s.info(ctx, s.theme.ErrorPrefix+s.presenter.Message(fe)); err != nil {
				return err
			}
		}
	}
}

func (s *Session) ask(ctx context.Context, f *form.Form, field model.Field) (string, error) {
	fv := fieldView(s.presenter.Present(f, s.controller.State()), field)

	if len(fv.Options) == 0 {
		return s.driver.Input(ctx, InputConfig{
			Message: fv.Label,
			Default: fv.Value,
			Help:    fv.Placeholder,
		})
	}

	labels := make([]string, len(fv.Options))
	defaultIdx := -1
	for i, opt := range fv.Options {
		labels[i] = opt.Label
		if opt.Value == fv.Value {
			defaultIdx = i
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      fv.Label,
		Options:      labels,
		DefaultIndex: defaultIdx,
		Help:         fv.Placeholder,
		PageSize:     s.pageSize,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(fv.Options) {
		return "", fmt.Errorf("%w for %s", ErrNoOption, field)
	}
	return fv.Options[idx].Value, nil
}

func (s *Session) showErrors(ctx context.Context, f *form.Form) {
	view := s.presenter.Present(f, s.controller.State())
	if view.Notice != "" {
		_ = s.info(ctx, s.theme.ErrorPrefix+view.Notice)
	}
	for _, fv := range view.Fields {
		for _, msg := range fv.Errors {
			_ = s.info(ctx, fmt.Sprintf("%s%s: %s", s.theme.ErrorPrefix, fv.Label, msg))
		}
	}
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, msg)
}

func fieldView(v present.View, field model.Field) present.FieldView {
	for _, fv := range v.Fields {
		if fv.Field == field {
			return fv
		}
	}
	return present.FieldView{Field: field, Label: string(field)}
}
