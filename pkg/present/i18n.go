package present

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultLocale is the locale of the built-in messages.
const DefaultLocale = "pt-BR"

var (
	// ErrMissingTranslator is reported to the missing handler when no
	// Translator is configured.
	ErrMissingTranslator = errors.New("present: translator not configured")
	// ErrMissingTranslation is returned by Catalog for unknown keys.
	ErrMissingTranslation = errors.New("present: missing translation")
)

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the text shown when a key cannot be
// translated. fallback is the built-in pt-BR text.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Catalog is an in-memory Translator keyed by locale then message key.
// Locales fall back from "en-US" to "en".
type Catalog map[string]map[string]string

func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeChain(locale) {
		messages, ok := c[candidate]
		if !ok {
			continue
		}
		msg, ok := messages[key]
		if !ok {
			continue
		}
		if len(args) > 0 {
			return fmt.Sprintf(msg, args...), nil
		}
		return msg, nil
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

// Locales lists the locales with messages, sorted.
func (c Catalog) Locales() []string {
	out := make([]string, 0, len(c))
	for locale := range c {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func localeChain(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return []string{DefaultLocale}
	}
	chain := []string{locale}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		chain = append(chain, locale[:idx])
	}
	return chain
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if t == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, fallback, err)
}

// DefaultCatalog returns the built-in pt-BR and en messages.
func DefaultCatalog() Catalog {
	out := make(Catalog, len(builtinMessages))
	for locale, messages := range builtinMessages {
		copied := make(map[string]string, len(messages))
		for k, v := range messages {
			copied[k] = v
		}
		out[locale] = copied
	}
	return out
}

var builtinMessages = Catalog{
	"pt-BR": {
		"form.title":                 "Previsão da Probabilidade de Sair Ileso em um Acidente de Trânsito",
		"form.submit":                "Prever probabilidade de sair ileso",
		"form.loading":               "Carregando...",
		"form.notice":                "Por favor, corrija os erros no formulário antes de enviar*",
		"result.title":               "Probabilidade de sair ileso do acidente:",
		"result.failure":             "Não foi possível obter a previsão. Tente novamente.",
		"fields.occupants.label":     "Número de Pessoas",
		"fields.vehicles.label":      "Número de Veículos",
		"fields.direction.label":     "Sentido",
		"fields.weather.label":       "Clima",
		"fields.roadType.label":      "Tipo de Pista",
		"fields.roadLayout.label":    "Traçado da Via",
		"fields.state.label":         "UF",
		"fields.highway.label":       "Número da BR",
		"fields.month.label":         "Mês",
		"fields.day.label":           "Dia",
		"fields.highway.placeholder": "Busque a BR",
		"cli.confirm":                "Enviar para previsão?",
		"cli.retry":                  "Tentar novamente?",
		"cli.again":                  "Fazer outra previsão?",
	},
	"en": {
		"form.title":                        "Probability of Leaving a Traffic Accident Unharmed",
		"form.submit":                       "Predict probability of leaving unharmed",
		"form.loading":                      "Loading...",
		"form.notice":                       "Please fix the errors in the form before submitting*",
		"result.title":                      "Probability of leaving the accident unharmed:",
		"result.failure":                    "The prediction could not be retrieved. Please try again.",
		"cli.confirm":                       "Submit for prediction?",
		"cli.retry":                         "Try again?",
		"cli.again":                         "Make another prediction?",
		"fields.occupants.label":            "Number of people",
		"fields.vehicles.label":             "Number of vehicles",
		"fields.direction.label":            "Direction",
		"fields.weather.label":              "Weather",
		"fields.roadType.label":             "Road type",
		"fields.roadLayout.label":           "Road layout",
		"fields.state.label":                "State (UF)",
		"fields.highway.label":              "Highway number (BR)",
		"fields.month.label":                "Month",
		"fields.day.label":                  "Day",
		"fields.direction.placeholder":      "Select the direction",
		"fields.weather.placeholder":        "Select the weather",
		"fields.roadType.placeholder":       "Select the road type",
		"fields.roadLayout.placeholder":     "Select the layout",
		"fields.state.placeholder":          "Select the state",
		"fields.highway.placeholder":        "Search the highway",
		"fields.month.placeholder":          "Select the month",
		"validation.occupants.integer":      "The number of people must be an integer.",
		"validation.occupants.positive":     "The number of people must be positive.",
		"validation.vehicles.integer":       "The number of vehicles must be an integer.",
		"validation.vehicles.positive":      "The number of vehicles must be positive.",
		"validation.direction.required":     "Direction is required.",
		"validation.direction.option":       "Select a valid direction.",
		"validation.weather.required":       "Weather is required.",
		"validation.weather.option":         "Select a valid weather.",
		"validation.roadType.required":      "Road type is required.",
		"validation.roadType.option":        "Select a valid road type.",
		"validation.roadLayout.required":    "Road layout is required.",
		"validation.roadLayout.option":      "Select a valid road layout.",
		"validation.state.length":           "The state must have exactly 2 characters.",
		"validation.state.option":           "Select a valid state.",
		"validation.highway.integer":        "The highway number must be an integer.",
		"validation.highway.positive":       "The highway number must be positive.",
		"validation.highway.catalog":        "Select a highway from the catalog.",
		"validation.month.required":         "Month is required.",
		"validation.month.option":           "Select a valid month.",
		"validation.day.integer":            "The day must be an integer.",
		"validation.day.min":                "The day must be at least 1.",
		"validation.day.max":                "The day must be at most 31.",
	},
}
