// Package ileso wires the accident-outcome form, its validation, the
// prediction client and the submission controller into ready-to-use values.
//
// Quick start:
//
//	p, _ := ileso.NewPredictor("")
//	f := ileso.NewForm()
//	_ = f.SetField(model.FieldState, "SP")
//	c := ileso.NewController(f, p)
//	st, err := c.Submit(ctx)
package ileso

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-ileso/components/highways"
	"github.com/goliatone/go-ileso/pkg/config"
	"github.com/goliatone/go-ileso/pkg/form"
	"github.com/goliatone/go-ileso/pkg/model"
	"github.com/goliatone/go-ileso/pkg/predictor"
	"github.com/goliatone/go-ileso/pkg/present"
	"github.com/goliatone/go-ileso/pkg/submission"
	"github.com/goliatone/go-ileso/pkg/validation"
)

// NewForm returns a form over the default schema and the numeric highway
// strategy unless options say otherwise.
func NewForm(options ...form.Option) *form.Form {
	return form.New(options...)
}

// NewPredictor builds an HTTP prediction client. An empty endpoint selects
// predictor.DefaultURL.
func NewPredictor(endpoint string, options ...predictor.Option) (*predictor.Client, error) {
	return predictor.New(endpoint, options...)
}

// NewController binds f to p.
func NewController(f *form.Form, p submission.Predictor, options ...submission.Option) *submission.Controller {
	return submission.New(f, p, options...)
}

// Predict validates in with the default schema and, when it is valid, sends it
// once to the default endpoint. Invalid input returns validation.Errors and
// nothing is sent.
func Predict(ctx context.Context, in model.FormInput, options ...predictor.Option) (float64, error) {
	if errs := validation.New().Validate(in); len(errs) > 0 {
		return 0, errs
	}
	payload, err := in.Payload()
	if err != nil {
		return 0, err
	}
	client, err := predictor.New("", options...)
	if err != nil {
		return 0, err
	}
	return client.Predict(ctx, payload)
}

// App is the set of components a front end needs, built from one Config.
type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Predictor *predictor.Client
	Presenter *present.Presenter
	Highways  *highways.Component

	catalog []highways.Highway
}

// NewApp validates cfg and builds the shared components. A nil logger uses
// slog.Default.
func NewApp(cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	predictorOpts := []predictor.Option{
		predictor.WithTimeout(cfg.Timeout),
		predictor.WithLogger(logger),
	}
	if cfg.SkipContract {
		predictorOpts = append(predictorOpts, predictor.WithContract(nil))
	}
	client, err := predictor.New(cfg.Endpoint, predictorOpts...)
	if err != nil {
		return nil, err
	}

	component := highways.New()
	list, err := component.Highways()
	if err != nil {
		return nil, fmt.Errorf("ileso: load highways: %w", err)
	}

	presenterOpts := []present.Option{
		present.WithLocale(cfg.Locale),
		present.WithFailureNotice(cfg.FailureNotice),
	}
	if cfg.HighwayMode == config.HighwayCatalog {
		presenterOpts = append(presenterOpts, present.WithFieldOptions(model.FieldHighway, highways.ToOptions(list)))
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Predictor: client,
		Presenter: present.New(presenterOpts...),
		Highways:  component,
		catalog:   list,
	}, nil
}

// Schema returns the validation schema implied by the configuration.
func (a *App) Schema() *validation.Schema {
	var opts []validation.Option
	if a.Config.StrictEnums {
		opts = append(opts, validation.WithStrictEnums())
	}
	if a.Config.HighwayMode == config.HighwayCatalog {
		list := a.catalog
		opts = append(opts, validation.WithKnownHighways(func(n int) bool {
			return highways.Contains(list, n)
		}))
	}
	return validation.New(opts...)
}

// NewForm builds a form using the configured schema and highway strategy.
func (a *App) NewForm(options ...form.Option) *form.Form {
	base := []form.Option{
		form.WithSchema(a.Schema()),
		form.WithHighwayInput(form.HighwayInputFor(a.Config.HighwayMode)),
	}
	return form.New(append(base, options...)...)
}

// NewController binds f to the configured predictor.
func (a *App) NewController(f *form.Form, options ...submission.Option) *submission.Controller {
	base := []submission.Option{
		submission.WithLogger(a.Logger),
	}
	return submission.New(f, a.Predictor, append(base, options...)...)
}
