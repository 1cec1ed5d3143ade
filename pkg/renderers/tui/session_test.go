package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-ileso/components/highways"
	"github.com/goliatone/go-ileso/pkg/form"
	"github.com/goliatone/go-ileso/pkg/model"
	"github.com/goliatone/go-ileso/pkg/present"
	"github.com/goliatone/go-ileso/pkg/submission"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	selects      []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

// Crescente, Céu Claro, Simples, Reta, SP, Janeiro.
var validSelects = []int{0, 3, 0, 0, 25, 0}

// Pessoas, Veículos, BR, Dia.
var validInputs = []string{"2", "1", "116", "15"}

func newTestSession(t *testing.T, driver PromptDriver, p submission.Predictor, formOpts []form.Option, presenterOpts []present.Option, opts ...Option) *Session {
	t.Helper()
	f := form.New(formOpts...)
	controller := submission.New(f, p)
	opts = append([]Option{WithPromptDriver(driver)}, opts...)
	session, err := NewSession(controller, present.New(presenterOpts...), opts...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func containsMessage(messages []string, want string) bool {
	for _, msg := range messages {
		if strings.Contains(msg, want) {
			return true
		}
	}
	return false
}

func TestSessionRunSuccess(t *testing.T) {
	driver := &stubDriver{
		inputs:    validInputs,
		selectIdx: validSelects,
		confirm:   []bool{true},
	}
	var got model.Payload
	calls := 0
	predictor := submission.PredictorFunc(func(_ context.Context, payload model.Payload) (float64, error) {
		calls++
		got = payload
		return 0.8734, nil
	})

	session := newTestSession(t, driver, predictor, nil, nil)
	st, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if st.Status != submission.StatusSucceeded {
		t.Fatalf("expected succeeded, got %s", st.Status)
	}
	if calls != 1 {
		t.Fatalf("expected one prediction call, got %d", calls)
	}
	want := model.Payload{
		Pessoas: 2, Veiculos: 1, Sentido: "Crescente", Clima: "Céu Claro",
		Pista: "Simples", Tracado: "Reta", UF: "SP", BR: 116, Mes: "Janeiro", Dia: 15,
	}
	if got != want {
		t.Fatalf("payload mismatch: %+v", got)
	}
	if !containsMessage(driver.infoMessages, "Carregando...") {
		t.Fatalf("expected loading message, got %v", driver.infoMessages)
	}
	banner := "⚠ Probabilidade de sair ileso do acidente: 87.34%"
	if !containsMessage(driver.infoMessages, banner) {
		t.Fatalf("expected banner %q, got %v", banner, driver.infoMessages)
	}
}

func TestSessionRepromptsInvalidField(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"2", "1", "116", "40", "15"},
		selectIdx: validSelects,
		confirm:   []bool{true},
	}
	var day int
	predictor := submission.PredictorFunc(func(_ context.Context, payload model.Payload) (float64, error) {
		day = payload.Dia
		return 0.5, nil
	})

	session := newTestSession(t, driver, predictor, nil, nil)
	if _, err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if day != 15 {
		t.Fatalf("expected day 15 after re-prompt, got %d", day)
	}
	if driver.inputPos != 5 {
		t.Fatalf("expected five inputs consumed, got %d", driver.inputPos)
	}
	if !containsMessage(driver.infoMessages, DefaultTheme().ErrorPrefix) {
		t.Fatalf("expected a field error, got %v", driver.infoMessages)
	}
}

func TestSessionDeclinedConfirmAborts(t *testing.T) {
	driver := &stubDriver{
		inputs:    validInputs,
		selectIdx: validSelects,
		confirm:   []bool{false},
	}
	calls := 0
	predictor := submission.PredictorFunc(func(context.Context, model.Payload) (float64, error) {
		calls++
		return 0.5, nil
	})

	session := newTestSession(t, driver, predictor, nil, nil)
	st, err := session.Run(context.Background())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if st.Status != submission.StatusIdle {
		t.Fatalf("expected idle, got %s", st.Status)
	}
	if calls != 0 {
		t.Fatalf("expected no prediction call, got %d", calls)
	}
}

func TestSessionRetriesAfterFailure(t *testing.T) {
	driver := &stubDriver{
		inputs:    append(append([]string{}, validInputs...), validInputs...),
		selectIdx: append(append([]int{}, validSelects...), validSelects...),
		confirm:   []bool{true, true, true},
	}
	calls := 0
	predictor := submission.PredictorFunc(func(context.Context, model.Payload) (float64, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("service unavailable")
		}
		return 0.25, nil
	})

	session := newTestSession(t, driver, predictor, nil, []present.Option{present.WithFailureNotice(true)})
	st, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if st.Status != submission.StatusSucceeded || st.Probability != 0.25 {
		t.Fatalf("expected success with 0.25, got %+v", st)
	}
	if calls != 2 {
		t.Fatalf("expected two prediction calls, got %d", calls)
	}
	if !containsMessage(driver.infoMessages, "✗ service unavailable") {
		t.Fatalf("expected failure message, got %v", driver.infoMessages)
	}
	if !containsMessage(driver.infoMessages, "✗ Não foi possível obter a previsão") {
		t.Fatalf("expected failure banner, got %v", driver.infoMessages)
	}
	if !containsMessage(driver.infoMessages, "25.00%") {
		t.Fatalf("expected success banner, got %v", driver.infoMessages)
	}
}

func TestSessionFailureWithoutRetryReturnsCause(t *testing.T) {
	driver := &stubDriver{
		inputs:    validInputs,
		selectIdx: validSelects,
		confirm:   []bool{true, false},
	}
	cause := errors.New("boom")
	predictor := submission.PredictorFunc(func(context.Context, model.Payload) (float64, error) {
		return 0, cause
	})

	session := newTestSession(t, driver, predictor, nil, nil)
	st, err := session.Run(context.Background())
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause, got %v", err)
	}
	if st.Status != submission.StatusFailed {
		t.Fatalf("expected failed, got %s", st.Status)
	}
	if containsMessage(driver.infoMessages, "%") {
		t.Fatalf("failure must not print a probability: %v", driver.infoMessages)
	}
}

func TestSessionCatalogHighwayUsesSelect(t *testing.T) {
	list, err := highways.LoadHighways(strings.NewReader("BR-101\nBR-116\n"))
	if err != nil {
		t.Fatalf("load highways: %v", err)
	}
	driver := &stubDriver{
		inputs:    []string{"2", "1", "15"},
		selectIdx: []int{0, 3, 0, 0, 25, 1, 0},
		confirm:   []bool{true},
	}
	var br int
	predictor := submission.PredictorFunc(func(_ context.Context, payload model.Payload) (float64, error) {
		br = payload.BR
		return 0.9, nil
	})

	session := newTestSession(t, driver, predictor,
		[]form.Option{form.WithHighwayInput(form.CatalogHighway{})},
		[]present.Option{present.WithFieldOptions(model.FieldHighway, highways.ToOptions(list))},
	)
	if _, err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if br != 116 {
		t.Fatalf("expected BR 116, got %d", br)
	}
	if len(driver.selects) != 7 {
		t.Fatalf("expected seven selects, got %d", len(driver.selects))
	}
	highwaySelect := driver.selects[5]
	if len(highwaySelect.Options) != 2 || highwaySelect.Options[1] != "BR-116" {
		t.Fatalf("unexpected highway options: %v", highwaySelect.Options)
	}
}

func TestSessionSkipValidOnlyAsksInvalidFields(t *testing.T) {
	driver := &stubDriver{
		selectIdx: validSelects,
		inputs:    []string{"116"},
		confirm:   []bool{true},
	}
	predictor := submission.PredictorFunc(func(context.Context, model.Payload) (float64, error) {
		return 0.1, nil
	})

	session := newTestSession(t, driver, predictor, nil, nil, WithSkipValid(true))
	if _, err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if driver.inputPos != 1 {
		t.Fatalf("expected only the highway input, got %d inputs", driver.inputPos)
	}
}

func TestNewSessionRequiresController(t *testing.T) {
	if _, err := NewSession(nil, nil); err == nil {
		t.Fatalf("expected error for nil controller")
	}
}
