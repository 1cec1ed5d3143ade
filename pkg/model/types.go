package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Field identifies a form input. The string value is the JSON key sent to the
// prediction endpoint.
type Field string

const (
	FieldOccupants  Field = "Pessoas"
	FieldVehicles   Field = "Veículos"
	FieldDirection  Field = "Sentido"
	FieldWeather    Field = "Clima"
	FieldRoadType   Field = "Pista"
	FieldRoadLayout Field = "Traçado"
	FieldState      Field = "UF"
	FieldHighway    Field = "BR"
	FieldMonth      Field = "Mês"
	FieldDay        Field = "Dia"
)

// Fields lists every field in display order.
func Fields() []Field {
	return []Field{
		FieldOccupants,
		FieldVehicles,
		FieldDirection,
		FieldWeather,
		FieldRoadType,
		FieldRoadLayout,
		FieldState,
		FieldHighway,
		FieldMonth,
		FieldDay,
	}
}

// ParseField resolves a wire key into a Field. Matching is exact after
// trimming whitespace.
func ParseField(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, field := range Fields() {
		if string(field) == name {
			return field, true
		}
	}
	return "", false
}

// Kind describes how a field is captured.
type Kind string

const (
	KindInteger Kind = "integer"
	KindText    Kind = "text"
	KindChoice  Kind = "choice"
)

// Kind reports how the field is captured.
func (f Field) Kind() Kind {
	switch f {
	case FieldOccupants, FieldVehicles, FieldHighway, FieldDay:
		return KindInteger
	case FieldDirection, FieldWeather, FieldRoadType, FieldRoadLayout, FieldState, FieldMonth:
		return KindChoice
	default:
		return KindText
	}
}

// IsNumeric reports whether the field holds a Number.
func (f Field) IsNumeric() bool {
	return f.Kind() == KindInteger
}

func (f Field) String() string {
	return string(f)
}

// Number is an integer input that keeps its raw text. Valid is false when the
// raw text could not be parsed as an integer.
type Number struct {
	Value int
	Raw   string
	Valid bool
}

// Int builds a valid Number from an integer.
func Int(v int) Number {
	return Number{Value: v, Raw: strconv.Itoa(v), Valid: true}
}

// ParseNumber parses raw strictly: surrounding whitespace is ignored, anything
// else that is not a base-10 integer yields an invalid Number.
func ParseNumber(raw string) Number {
	trimmed := strings.TrimSpace(raw)
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return Number{Raw: raw}
	}
	return Number{Value: v, Raw: raw, Valid: true}
}

// FormInput holds the accident attributes for one submission attempt.
type FormInput struct {
	Occupants  Number
	Vehicles   Number
	Direction  string
	Weather    string
	RoadType   string
	RoadLayout string
	State      string
	Highway    Number
	Month      string
	Day        Number
}

// DefaultInput returns the values a fresh form starts with.
func DefaultInput() FormInput {
	return FormInput{
		Occupants: Int(1),
		Vehicles:  Int(1),
		Highway:   Int(0),
		Day:       Int(1),
	}
}

// Number returns the numeric value held for field.
func (in FormInput) Number(field Field) (Number, bool) {
	switch field {
	case FieldOccupants:
		return in.Occupants, true
	case FieldVehicles:
		return in.Vehicles, true
	case FieldHighway:
		return in.Highway, true
	case FieldDay:
		return in.Day, true
	default:
		return Number{}, false
	}
}

// Text returns the string value held for field.
func (in FormInput) Text(field Field) (string, bool) {
	switch field {
	case FieldDirection:
		return in.Direction, true
	case FieldWeather:
		return in.Weather, true
	case FieldRoadType:
		return in.RoadType, true
	case FieldRoadLayout:
		return in.RoadLayout, true
	case FieldState:
		return in.State, true
	case FieldMonth:
		return in.Month, true
	default:
		return "", false
	}
}

// Raw renders the current value of field as text, suitable for redisplay.
func (in FormInput) Raw(field Field) string {
	if n, ok := in.Number(field); ok {
		if n.Valid && n.Raw == "" {
			return strconv.Itoa(n.Value)
		}
		return n.Raw
	}
	s, _ := in.Text(field)
	return s
}

// SetNumber stores n for a numeric field.
func (in *FormInput) SetNumber(field Field, n Number) error {
	switch field {
	case FieldOccupants:
		in.Occupants = n
	case FieldVehicles:
		in.Vehicles = n
	case FieldHighway:
		in.Highway = n
	case FieldDay:
		in.Day = n
	default:
		return fmt.Errorf("model: field %q is not numeric", field)
	}
	return nil
}

// SetText stores value for a text or choice field.
func (in *FormInput) SetText(field Field, value string) error {
	switch field {
	case FieldDirection:
		in.Direction = value
	case FieldWeather:
		in.Weather = value
	case FieldRoadType:
		in.RoadType = value
	case FieldRoadLayout:
		in.RoadLayout = value
	case FieldState:
		in.State = value
	case FieldMonth:
		in.Month = value
	default:
		return fmt.Errorf("model: field %q is not a text field", field)
	}
	return nil
}

// Payload is the JSON body posted to the prediction endpoint.
type Payload struct {
	Pessoas  int    `json:"Pessoas"`
	Veiculos int    `json:"Veículos"`
	Sentido  string `json:"Sentido"`
	Clima    string `json:"Clima"`
	Pista    string `json:"Pista"`
	Tracado  string `json:"Traçado"`
	UF       string `json:"UF"`
	BR       int    `json:"BR"`
	Mes      string `json:"Mês"`
	Dia      int    `json:"Dia"`
}

// Payload converts the input into its wire form. It fails when a numeric field
// holds an unparsed value so a non-numeric value is never sent.
func (in FormInput) Payload() (Payload, error) {
	for _, field := range []Field{FieldOccupants, FieldVehicles, FieldHighway, FieldDay} {
		n, _ := in.Number(field)
		if !n.Valid {
			return Payload{}, fmt.Errorf("model: field %s holds non-numeric value %q", field, n.Raw)
		}
	}
	return Payload{
		Pessoas:  in.Occupants.Value,
		Veiculos: in.Vehicles.Value,
		Sentido:  in.Direction,
		Clima:    in.Weather,
		Pista:    in.RoadType,
		Tracado:  in.RoadLayout,
		UF:       in.State,
		BR:       in.Highway.Value,
		Mes:      in.Month,
		Dia:      in.Day.Value,
	}, nil
}

// Map returns the payload as a generic JSON object keyed by field.
func (p Payload) Map() map[string]any {
	return map[string]any{
		string(FieldOccupants):  p.Pessoas,
		string(FieldVehicles):   p.Veiculos,
		string(FieldDirection):  p.Sentido,
		string(FieldWeather):    p.Clima,
		string(FieldRoadType):   p.Pista,
		string(FieldRoadLayout): p.Tracado,
		string(FieldState):      p.UF,
		string(FieldHighway):    p.BR,
		string(FieldMonth):      p.Mes,
		string(FieldDay):        p.Dia,
	}
}
