package present

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ileso/pkg/model"
	"github.com/goliatone/go-ileso/pkg/submission"
	"github.com/goliatone/go-ileso/pkg/testsupport"
	"github.com/goliatone/go-ileso/pkg/validation"
)

func TestFormatPercent(t *testing.T) {
	cases := map[float64]string{
		0.8734:  "87.34%",
		0:       "0.00%",
		1:       "100.00%",
		0.5:     "50.00%",
		0.12345: "12.35%", // decimal tie rounds up
		0.00005: "0.01%",
		0.99999: "100.00%",
	}
	for in, want := range cases {
		if got := FormatPercent(in); got != want {
			t.Fatalf("FormatPercent(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestView_SucceededShowsBanner(t *testing.T) {
	v := New().View(Snapshot{
		State: submission.State{Status: submission.StatusSucceeded, Probability: 0.8734},
		Input: testsupport.ValidInput(),
	})

	if v.Banner == nil {
		t.Fatalf("expected banner")
	}
	want := Banner{Tone: ToneWarning, Title: "Probabilidade de sair ileso do acidente:", Value: "87.34%"}
	if diff := cmp.Diff(want, *v.Banner); diff != "" {
		t.Fatalf("banner mismatch (-want +got):\n%s", diff)
	}
	if v.Banner.Text() != "Probabilidade de sair ileso do acidente: 87.34%" {
		t.Fatalf("unexpected banner text %q", v.Banner.Text())
	}
	if v.Disabled || v.ButtonLabel != "Prever probabilidade de sair ileso" {
		t.Fatalf("unexpected button: %q disabled=%v", v.ButtonLabel, v.Disabled)
	}
}

func TestView_PendingDisablesButton(t *testing.T) {
	v := New().View(Snapshot{State: submission.State{Status: submission.StatusPending}})
	if !v.Disabled || v.ButtonLabel != "Carregando..." {
		t.Fatalf("unexpected button: %q disabled=%v", v.ButtonLabel, v.Disabled)
	}
	if v.Banner != nil {
		t.Fatalf("expected no banner while pending")
	}
}

func TestView_FailedHidesProbability(t *testing.T) {
	failed := Snapshot{State: submission.State{Status: submission.StatusFailed, Err: errors.New("boom")}}

	if v := New().View(failed); v.Banner != nil {
		t.Fatalf("expected no banner by default, got %#v", v.Banner)
	}

	v := New(WithFailureNotice(true)).View(failed)
	if v.Banner == nil || v.Banner.Tone != ToneError || v.Banner.Value != "" {
		t.Fatalf("unexpected failure banner: %#v", v.Banner)
	}
}

func TestView_ErrorsOnlyAfterReveal(t *testing.T) {
	in := testsupport.ValidInput()
	in.State = "S"
	errs := validation.New().Validate(in)

	hidden := New().View(Snapshot{Input: in, Errors: errs})
	if hidden.Notice != "" || fieldView(t, hidden, model.FieldState).Errors != nil {
		t.Fatalf("expected errors to stay hidden")
	}

	shown := New().View(Snapshot{Input: in, Errors: errs, Revealed: true})
	if shown.Notice != "Por favor, corrija os erros no formulário antes de enviar*" {
		t.Fatalf("unexpected notice %q", shown.Notice)
	}
	if diff := cmp.Diff([]string{"A UF deve ter exatamente 2 caracteres."}, fieldView(t, shown, model.FieldState).Errors); diff != "" {
		t.Fatalf("state errors mismatch (-want +got):\n%s", diff)
	}
}

func TestView_EnglishLocale(t *testing.T) {
	in := testsupport.ValidInput()
	in.Day = model.Int(40)
	v := New(WithLocale("en-US")).View(Snapshot{
		Input:    in,
		Errors:   validation.New().Validate(in),
		Revealed: true,
		State:    submission.State{Status: submission.StatusSucceeded, Probability: 0.5},
	})

	if v.Banner.Title != "Probability of leaving the accident unharmed:" {
		t.Fatalf("unexpected title %q", v.Banner.Title)
	}
	day := fieldView(t, v, model.FieldDay)
	if day.Label != "Day" || len(day.Errors) != 1 || day.Errors[0] != "The day must be at most 31." {
		t.Fatalf("unexpected day view: %#v", day)
	}
}

func TestView_FieldsCarryValuesAndOptions(t *testing.T) {
	highways := []model.Option{{Value: "101", Label: "BR-101"}}
	v := New(WithFieldOptions(model.FieldHighway, highways)).View(Snapshot{
		Input:  testsupport.ValidInput(),
		Remote: map[model.Field][]string{model.FieldHighway: {"BR desconhecida"}},
	})

	if len(v.Fields) != len(model.Fields()) {
		t.Fatalf("expected %d fields, got %d", len(model.Fields()), len(v.Fields))
	}
	br := fieldView(t, v, model.FieldHighway)
	if br.Value != "116" || br.Label != "Número da BR" || br.Placeholder != "Busque a BR" {
		t.Fatalf("unexpected highway view: %#v", br)
	}
	if diff := cmp.Diff(highways, br.Options); diff != "" {
		t.Fatalf("highway options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"BR desconhecida"}, br.Errors); diff != "" {
		t.Fatalf("remote errors mismatch (-want +got):\n%s", diff)
	}
	if got := len(fieldView(t, v, model.FieldState).Options); got != 27 {
		t.Fatalf("expected 27 UF options, got %d", got)
	}
}

func TestTranslate_MissingHandler(t *testing.T) {
	var missed []string
	p := New(
		WithTranslator(Catalog{}),
		WithMissingTranslationHandler(func(_, key, fallback string, err error) string {
			if !errors.Is(err, ErrMissingTranslation) {
				t.Fatalf("unexpected error: %v", err)
			}
			missed = append(missed, key)
			return fallback
		}),
	)
	if got := p.Label(model.FieldMonth); got != "Mês" {
		t.Fatalf("unexpected label %q", got)
	}
	if diff := cmp.Diff([]string{"fields.month.label"}, missed); diff != "" {
		t.Fatalf("missed keys mismatch (-want +got):\n%s", diff)
	}
}

func fieldView(t *testing.T, v View, field model.Field) FieldView {
	t.Helper()
	for _, fv := range v.Fields {
		if fv.Field == field {
			return fv
		}
	}
	t.Fatalf("field %s not in view", field)
	return FieldView{}
}

type formMessagesErr struct{ msgs []string }

func (e formMessagesErr) Error() string        { return "remote" }
func (e formMessagesErr) FormErrors() []string { return e.msgs }

func TestView_FailedCarriesServiceMessages(t *testing.T) {
	v := New().View(Snapshot{State: submission.State{
		Status: submission.StatusFailed,
		Err:    formMessagesErr{msgs: []string{"modelo indisponível"}},
	}})
	if diff := cmp.Diff([]string{"modelo indisponível"}, v.Messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}
