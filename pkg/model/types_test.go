package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseNumber_Strict(t *testing.T) {
	cases := []struct {
		raw  string
		want Number
	}{
		{raw: "1", want: Number{Value: 1, Raw: "1", Valid: true}},
		{raw: " 31 ", want: Number{Value: 31, Raw: " 31 ", Valid: true}},
		{raw: "-4", want: Number{Value: -4, Raw: "-4", Valid: true}},
		{raw: "abc", want: Number{Raw: "abc"}},
		{raw: "1.5", want: Number{Raw: "1.5"}},
		{raw: "", want: Number{}},
		{raw: "12abc", want: Number{Raw: "12abc"}},
	}

	for _, tc := range cases {
		got := ParseNumber(tc.raw)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("ParseNumber(%q) mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
}

func TestDefaultInput(t *testing.T) {
	in := DefaultInput()
	if in.Occupants.Value != 1 || in.Vehicles.Value != 1 || in.Day.Value != 1 {
		t.Fatalf("unexpected numeric defaults: %+v", in)
	}
	if in.Highway.Value != 0 || !in.Highway.Valid {
		t.Fatalf("expected highway default 0, got %+v", in.Highway)
	}
	for _, field := range Fields() {
		if s, ok := in.Text(field); ok && s != "" {
			t.Fatalf("expected empty default for %s, got %q", field, s)
		}
	}
}

func TestPayload_RejectsUnparsedNumbers(t *testing.T) {
	in := DefaultInput()
	in.Highway = ParseNumber("BR-abc")

	if _, err := in.Payload(); err == nil {
		t.Fatalf("expected error for non-numeric highway")
	}
}

func TestPayload_WireKeys(t *testing.T) {
	in := FormInput{
		Occupants:  Int(2),
		Vehicles:   Int(1),
		Direction:  DirectionIncreasing,
		Weather:    WeatherRain,
		RoadType:   RoadDual,
		RoadLayout: LayoutCurveDownhill,
		State:      "SP",
		Highway:    Int(101),
		Month:      "Março",
		Day:        Int(14),
	}

	payload, err := in.Payload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]any{
		"Pessoas":  float64(2),
		"Veículos": float64(1),
		"Sentido":  "Crescente",
		"Clima":    "Chuva",
		"Pista":    "Dupla",
		"Traçado":  "Curva;Declive",
		"UF":       "SP",
		"BR":       float64(101),
		"Mês":      "Março",
		"Dia":      float64(14),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_Catalogs(t *testing.T) {
	if got := len(Options(FieldRoadLayout)); got != 11 {
		t.Fatalf("expected 11 road layouts, got %d", got)
	}
	if got := len(Options(FieldState)); got != 27 {
		t.Fatalf("expected 27 states, got %d", got)
	}
	if got := len(Options(FieldMonth)); got != 12 {
		t.Fatalf("expected 12 months, got %d", got)
	}
	if Options(FieldDay) != nil {
		t.Fatalf("numeric fields should not expose options")
	}
	if !HasOption(FieldWeather, WeatherClearSky) {
		t.Fatalf("expected %q to be a weather option", WeatherClearSky)
	}
	if got := OptionLabel(FieldRoadLayout, LayoutStraightUphill); got != "Reta com Aclive" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestParseField(t *testing.T) {
	field, ok := ParseField(" Veículos ")
	if !ok || field != FieldVehicles {
		t.Fatalf("expected Veículos, got %q (%v)", field, ok)
	}
	if _, ok := ParseField("Vehicles"); ok {
		t.Fatalf("expected unknown field")
	}
}
