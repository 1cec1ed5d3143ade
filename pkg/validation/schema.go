package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-ileso/pkg/model"
)

// Rule pairs a predicate with the message shown when it fails. Rules for the
// same field are evaluated in order and evaluation stops at the first failure,
// so each field reports at most one message.
type Rule struct {
	Field   model.Field
	Key     string
	Message string
	Check   func(model.FormInput) bool
}

// Option customises a Schema.
type Option func(*Schema)

// WithStrictEnums requires choice fields to hold one of the catalogued values
// instead of any non-empty string.
func WithStrictEnums() Option {
	return func(s *Schema) {
		s.strictEnums = true
	}
}

// WithKnownHighways rejects highway numbers for which known returns false.
func WithKnownHighways(known func(int) bool) Option {
	return func(s *Schema) {
		s.knownHighway = known
	}
}

// WithRules appends extra rules after the built-in ones.
func WithRules(rules ...Rule) Option {
	return func(s *Schema) {
		s.extra = append(s.extra, rules...)
	}
}

// Schema is the declarative rule set for the accident form.
type Schema struct {
	rules        []Rule
	extra        []Rule
	strictEnums  bool
	knownHighway func(int) bool
}

// New builds the default schema. Choice fields only need to be non-empty
// unless WithStrictEnums is supplied.
func New(options ...Option) *Schema {
	s := &Schema{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.rules = s.buildRules()
	return s
}

// Rules returns the rules in evaluation order.
func (s *Schema) Rules() []Rule {
	if s == nil {
		return nil
	}
	return append([]Rule(nil), s.rules...)
}

// Validate evaluates every rule against in. The result is ordered by field
// and empty when in is submittable.
func (s *Schema) Validate(in model.FormInput) Errors {
	if s == nil {
		s = New()
	}
	failed := make(map[model.Field]FieldError)
	for _, rule := range s.rules {
		if _, done := failed[rule.Field]; done {
			continue
		}
		if rule.Check == nil || rule.Check(in) {
			continue
		}
		failed[rule.Field] = FieldError{Field: rule.Field, Key: rule.Key, Message: rule.Message}
	}
	if len(failed) == 0 {
		return nil
	}

	out := make(Errors, 0, len(failed))
	for _, field := range model.Fields() {
		if fe, ok := failed[field]; ok {
			out = append(out, fe)
			delete(failed, field)
		}
	}
	// fields added through WithRules that are not part of the model
	for _, rule := range s.rules {
		if fe, ok := failed[rule.Field]; ok {
			out = append(out, fe)
			delete(failed, rule.Field)
		}
	}
	return out
}

func (s *Schema) buildRules() []Rule {
	var rules []Rule
	add := func(r ...Rule) { rules = append(rules, r...) }

	add(positiveInteger(model.FieldOccupants, "occupants",
		"O número de pessoas deve ser um número inteiro.",
		"O número de pessoas deve ser positivo.")...)
	add(positiveInteger(model.FieldVehicles, "vehicles",
		"O número de veículos deve ser um número inteiro.",
		"O número de veículos deve ser positivo.")...)

	add(s.choice(model.FieldDirection, "direction", "O sentido é obrigatório.", "Selecione um sentido válido.")...)
	add(s.choice(model.FieldWeather, "weather", "O clima é obrigatório.", "Selecione um clima válido.")...)
	add(s.choice(model.FieldRoadType, "roadType", "O tipo de pista é obrigatório.", "Selecione um tipo de pista válido.")...)
	add(s.choice(model.FieldRoadLayout, "roadLayout", "O traçado da via é obrigatório.", "Selecione um traçado válido.")...)

	add(Rule{
		Field:   model.FieldState,
		Key:     "validation.state.length",
		Message: "A UF deve ter exatamente 2 caracteres.",
		Check: func(in model.FormInput) bool {
			return utf8.RuneCountInString(in.State) == 2
		},
	})
	if s.strictEnums {
		add(Rule{
			Field:   model.FieldState,
			Key:     "validation.state.option",
			Message: "Selecione uma UF válida.",
			Check: func(in model.FormInput) bool {
				return model.HasOption(model.FieldState, in.State)
			},
		})
	}

	add(positiveInteger(model.FieldHighway, "highway",
		"O número da BR deve ser inteiro.",
		"O número da BR deve ser positivo.")...)
	if s.knownHighway != nil {
		known := s.knownHighway
		add(Rule{
			Field:   model.FieldHighway,
			Key:     "validation.highway.catalog",
			Message: "Selecione uma BR do catálogo.",
			Check: func(in model.FormInput) bool {
				return known(in.Highway.Value)
			},
		})
	}

	add(s.choice(model.FieldMonth, "month", "O mês é obrigatório.", "Selecione um mês válido.")...)

	add(
		integer(model.FieldDay, "day", "O dia deve ser um número inteiro."),
		Rule{
			Field:   model.FieldDay,
			Key:     "validation.day.min",
			Message: "O dia deve ser no mínimo 1.",
			Check:   func(in model.FormInput) bool { return in.Day.Value >= 1 },
		},
		Rule{
			Field:   model.FieldDay,
			Key:     "validation.day.max",
			Message: "O dia deve ser no máximo 31.",
			Check:   func(in model.FormInput) bool { return in.Day.Value <= 31 },
		},
	)

	return append(rules, s.extra...)
}

func integer(field model.Field, key, message string) Rule {
	return Rule{
		Field:   field,
		Key:     "validation." + key + ".integer",
		Message: message,
		Check: func(in model.FormInput) bool {
			n, _ := in.Number(field)
			return n.Valid
		},
	}
}

func positiveInteger(field model.Field, key, integerMsg, positiveMsg string) []Rule {
	return []Rule{
		integer(field, key, integerMsg),
		{
			Field:   field,
			Key:     "validation." + key + ".positive",
			Message: positiveMsg,
			Check: func(in model.FormInput) bool {
				n, _ := in.Number(field)
				return n.Value > 0
			},
		},
	}
}

func (s *Schema) choice(field model.Field, key, requiredMsg, optionMsg string) []Rule {
	rules := []Rule{{
		Field:   field,
		Key:     "validation." + key + ".required",
		Message: requiredMsg,
		Check: func(in model.FormInput) bool {
			v, _ := in.Text(field)
			return strings.TrimSpace(v) != ""
		},
	}}
	if s.strictEnums {
		rules = append(rules, Rule{
			Field:   field,
			Key:     "validation." + key + ".option",
			Message: optionMsg,
			Check: func(in model.FormInput) bool {
				v, _ := in.Text(field)
				return model.HasOption(field, v)
			},
		})
	}
	return rules
}
