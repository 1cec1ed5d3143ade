package present

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-ileso/pkg/form"
	"github.com/goliatone/go-ileso/pkg/model"
	"github.com/goliatone/go-ileso/pkg/submission"
	"github.com/goliatone/go-ileso/pkg/validation"
)

// Tone classifies a banner for styling.
type Tone string

const (
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
)

// Banner is the result area shown under the form.
type Banner struct {
	Tone  Tone
	Title string
	// Value is the formatted probability, e.g. "87.34%". Empty for failures.
	Value string
}

// Text joins title and value as a single line.
func (b Banner) Text() string {
	if b.Value == "" {
		return b.Title
	}
	return b.Title + " " + b.Value
}

// FieldView is one input as a front end renders it.
type FieldView struct {
	Field       model.Field
	Name        string
	Kind        model.Kind
	Label       string
	Placeholder string
	Value       string
	Options     []model.Option
	Errors      []string
}

// View is everything a front end needs to draw the form.
type View struct {
	Locale      string
	Title       string
	Fields      []FieldView
	ButtonLabel string
	Disabled    bool
	// Notice is the aggregate error notice, set when errors are visible.
	Notice string
	// Messages holds service messages that are not tied to a field.
	Messages []string
	Banner   *Banner
}

// Snapshot is the input of Present: the submission state plus the form facts
// the view depends on.
type Snapshot struct {
	State    submission.State
	Input    model.FormInput
	Errors   validation.Errors
	Remote   map[model.Field][]string
	Revealed bool
}

// SnapshotOf captures the current form and controller state.
func SnapshotOf(f *form.Form, st submission.State) Snapshot {
	return Snapshot{
		State:    st,
		Input:    f.Input(),
		Errors:   f.Errors(),
		Remote:   f.RemoteErrors(),
		Revealed: f.Revealed(),
	}
}

// Option customises a Presenter.
type Option func(*Presenter)

func WithLocale(locale string) Option {
	return func(p *Presenter) {
		if strings.TrimSpace(locale) != "" {
			p.locale = locale
		}
	}
}

func WithTranslator(t Translator) Option {
	return func(p *Presenter) {
		p.translator = t
	}
}

func WithMissingTranslationHandler(fn MissingTranslationHandler) Option {
	return func(p *Presenter) {
		p.onMissing = fn
	}
}

// WithFailureNotice shows a banner when the prediction fails. By default a
// failure only leaves the probability out.
func WithFailureNotice(enabled bool) Option {
	return func(p *Presenter) {
		p.failureNotice = enabled
	}
}

// WithFieldOptions overrides the options listed for field, e.g. to offer the
// highway catalog.
func WithFieldOptions(field model.Field, options []model.Option) Option {
	return func(p *Presenter) {
		if p.options == nil {
			p.options = make(map[model.Field][]model.Option)
		}
		p.options[field] = append([]model.Option(nil), options...)
	}
}

// Presenter maps form and submission state to a View. It holds no state of
// its own beyond configuration.
type Presenter struct {
	locale        string
	translator    Translator
	onMissing     MissingTranslationHandler
	failureNotice bool
	options       map[model.Field][]model.Option
}

// New builds a presenter using the built-in catalog and DefaultLocale.
func New(opts ...Option) *Presenter {
	p := &Presenter{
		locale:     DefaultLocale,
		translator: DefaultCatalog(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Locale returns the presentation locale.
func (p *Presenter) Locale() string {
	return p.locale
}

// Present is SnapshotOf followed by View.
func (p *Presenter) Present(f *form.Form, st submission.State) View {
	return p.View(SnapshotOf(f, st))
}

// View renders s.
func (p *Presenter) View(s Snapshot) View {
	pending := s.State.Status == submission.StatusPending
	v := View{
		Locale:      p.locale,
		Title:       p.t("form.title", "Previsão da Probabilidade de Sair Ileso em um Acidente de Trânsito"),
		ButtonLabel: p.t("form.submit", "Prever probabilidade de sair ileso"),
		Disabled:    pending,
	}
	if pending {
		v.ButtonLabel = p.t("form.loading", "Carregando...")
	}

	visible := validation.Errors(nil)
	if s.Revealed {
		visible = s.Errors
	}

	for _, field := range model.Fields() {
		text := field.Text()
		fv := FieldView{
			Field:       field,
			Name:        string(field),
			Kind:        field.Kind(),
			Label:       p.t(text.LabelKey, text.Label),
			Placeholder: p.t(text.PlaceholderKey, text.Placeholder),
			Value:       s.Input.Raw(field),
			Options:     p.fieldOptions(field),
		}
		for _, fe := range visible.For(field) {
			fv.Errors = append(fv.Errors, p.t(fe.Key, fe.Message))
		}
		fv.Errors = append(fv.Errors, s.Remote[field]...)
		v.Fields = append(v.Fields, fv)
	}

	if len(visible) > 0 {
		v.Notice = p.t("form.notice", "Por favor, corrija os erros no formulário antes de enviar*")
	}

	switch s.State.Status {
	case submission.StatusSucceeded:
		v.Banner = &Banner{
			Tone:  ToneWarning,
			Title: p.t("result.title", "Probabilidade de sair ileso do acidente:"),
			Value: FormatPercent(s.State.Probability),
		}
	case submission.StatusFailed:
		if p.failureNotice {
			v.Banner = &Banner{
				Tone:  ToneError,
				Title: p.t("result.failure", "Não foi possível obter a previsão. Tente novamente."),
			}
		}
		var remote interface{ FormErrors() []string }
		if errors.As(s.State.Err, &remote) {
			v.Messages = append([]string(nil), remote.FormErrors()...)
		}
	}
	return v
}

// Message translates a validation failure.
func (p *Presenter) Message(fe validation.FieldError) string {
	return p.t(fe.Key, fe.Message)
}

// Text translates key, falling back to the given pt-BR text.
func (p *Presenter) Text(key, fallback string) string {
	return p.t(key, fallback)
}

// Label translates the label of field.
func (p *Presenter) Label(field model.Field) string {
	text := field.Text()
	return p.t(text.LabelKey, text.Label)
}

// FormatPercent renders a probability in [0,1] as a percentage with two
// decimals, rounding half away from zero: 0.8734 becomes "87.34%". Rounding
// works on the shortest decimal form of the float, so 0.12345 gives "12.35%"
// where rounding the binary product p*100 would give "12.34%".
func FormatPercent(probability float64) string {
	return decimal.NewFromFloat(probability).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func (p *Presenter) fieldOptions(field model.Field) []model.Option {
	if opts, ok := p.options[field]; ok {
		return append([]model.Option(nil), opts...)
	}
	return model.Options(field)
}

func (p *Presenter) t(key, fallback string) string {
	return translate(p.locale, key, fallback, p.translator, p.onMissing)
}
