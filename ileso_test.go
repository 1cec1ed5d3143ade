package ileso

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"testing"

	"github.com/goliatone/go-ileso/internal/logging"
	"github.com/goliatone/go-ileso/pkg/config"
	"github.com/goliatone/go-ileso/pkg/model"
	"github.com/goliatone/go-ileso/pkg/submission"
	"github.com/goliatone/go-ileso/pkg/testsupport"
	"github.com/goliatone/go-ileso/pkg/validation"
)

func TestPredictRejectsInvalidInputWithoutNetwork(t *testing.T) {
	_, err := Predict(context.Background(), model.DefaultInput())
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if !errs.Has(model.FieldState) {
		t.Fatalf("expected UF error, got %v", errs)
	}
}

func TestAppSubmitsThroughConfiguredEndpoint(t *testing.T) {
	server := testsupport.NewPredictorServer(t, testsupport.RespondJSON(http.StatusOK, `{"probabilidade_ileso":0.8734}`))

	cfg := config.Default()
	cfg.Endpoint = server.URL
	app, err := NewApp(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	f := app.NewForm()
	if err := f.SetValues(testsupport.ValidRaw()); err != nil {
		t.Fatalf("set values: %v", err)
	}
	st, err := app.NewController(f).Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if st.Status != submission.StatusSucceeded || st.Probability != 0.8734 {
		t.Fatalf("unexpected state %+v", st)
	}
	if server.Calls() != 1 {
		t.Fatalf("expected one request, got %d", server.Calls())
	}
	if got := server.Request(0)["UF"]; got != "SP" {
		t.Fatalf("unexpected UF %v", got)
	}

	banner := app.Presenter.Present(f, st).Banner
	if banner == nil || banner.Text() != "Probabilidade de sair ileso do acidente: 87.34%" {
		t.Fatalf("unexpected banner %+v", banner)
	}
}

func TestAppCatalogMode(t *testing.T) {
	cfg := config.Default()
	cfg.HighwayMode = config.HighwayCatalog
	app, err := NewApp(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	f := app.NewForm()
	if err := f.SetValues(testsupport.ValidRaw()); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if err := f.SetField(model.FieldHighway, "BR-101"); err != nil {
		t.Fatalf("set highway: %v", err)
	}
	if !f.IsValid() {
		t.Fatalf("expected BR-101 to be accepted, got %v", f.Errors())
	}
	payload, err := f.Input().Payload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.BR != 101 {
		t.Fatalf("expected BR 101, got %d", payload.BR)
	}

	if err := f.SetField(model.FieldHighway, "999"); err != nil {
		t.Fatalf("set highway: %v", err)
	}
	if !f.Errors().Has(model.FieldHighway) {
		t.Fatalf("expected unknown highway to be rejected")
	}

	view := app.Presenter.Present(f, submission.State{})
	for _, fv := range view.Fields {
		if fv.Field == model.FieldHighway && len(fv.Options) == 0 {
			t.Fatalf("expected catalog options on the highway field")
		}
	}
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Endpoint = "ftp://example.com"
	if _, err := NewApp(cfg, nil); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestEmbeddedResources(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
	if _, err := fs.ReadFile(EmbeddedAssets(), "ileso.css"); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
	if !strings.Contains(string(ContractDocument()), "operationId: prever") {
		t.Fatalf("expected the prever operation in the contract")
	}
}
