package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/goliatone/go-ileso"
	"github.com/goliatone/go-ileso/internal/logging"
	"github.com/goliatone/go-ileso/pkg/config"
	"github.com/goliatone/go-ileso/pkg/form"
	"github.com/goliatone/go-ileso/pkg/model"
	"github.com/goliatone/go-ileso/pkg/present"
	"github.com/goliatone/go-ileso/pkg/renderers/tui"
	"github.com/goliatone/go-ileso/pkg/submission"
	"github.com/goliatone/go-ileso/pkg/validation"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	configPath := flag.String("config", "", "YAML configuration file")
	valuesPath := flag.String("values", "", "YAML file with field values to prefill")
	saveValues := flag.String("save-values", "", "write the submitted values to this YAML file")
	noPrompt := flag.Bool("no-prompt", false, "submit the prefilled values without prompting")
	repeat := flag.Bool("repeat", false, "offer another prediction after a successful one")
	flag.Parse()

	cfg, err := config.Load(*configPath, os.LookupEnv)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flags.Apply(&cfg)

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	app, err := ileso.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	f := app.NewForm()
	if *valuesPath != "" {
		values, err := config.LoadValues(*valuesPath)
		if err != nil {
			log.Fatalf("Failed to read values: %v", err)
		}
		if err := f.SetValues(values); err != nil {
			log.Fatalf("Failed to apply values: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	controller := app.NewController(f)
	defer controller.Close()

	var st submission.State
	if *noPrompt {
		st, err = submitOnce(ctx, controller, app.Presenter)
	} else {
		var session *tui.Session
		session, err = tui.NewSession(controller, app.Presenter,
			tui.WithSkipValid(*valuesPath != ""),
			tui.WithRepeat(*repeat),
		)
		if err != nil {
			log.Fatalf("Failed to start session: %v", err)
		}
		st, err = session.Run(ctx)
	}

	if *saveValues != "" && st.Status == submission.StatusSucceeded {
		if werr := writeValues(*saveValues, f); werr != nil {
			logger.Error("save values", "path", *saveValues, "error", werr)
		}
	}

	switch {
	case errors.Is(err, tui.ErrAborted):
		os.Exit(130)
	case err != nil:
		if *noPrompt {
			os.Exit(1)
		}
		log.Fatalf("Prediction failed: %v", err)
	}
}

// submitOnce is the batch path: print the banner or every visible error.
func submitOnce(ctx context.Context, controller *submission.Controller, presenter *present.Presenter) (submission.State, error) {
	st, err := controller.Submit(ctx)
	view := presenter.Present(controller.Form(), st)

	var invalid validation.Errors
	if errors.As(err, &invalid) {
		fmt.Fprintln(os.Stderr, view.Notice)
		for _, fv := range view.Fields {
			for _, msg := range fv.Errors {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", fv.Label, msg)
			}
		}
		return st, err
	}
	if view.Banner != nil {
		fmt.Println(view.Banner.Text())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		for _, msg := range view.Messages {
			fmt.Fprintln(os.Stderr, msg)
		}
	}
	return st, err
}

func writeValues(path string, f *form.Form) error {
	values := make(map[model.Field]string, len(model.Fields()))
	for _, field := range model.Fields() {
		values[field] = f.Raw(field)
	}
	return os.WriteFile(path, []byte(config.FormatValues(values)), 0o644)
}
