package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ileso/pkg/model"
)

func TestDecodeValues(t *testing.T) {
	data := []byte(`
Pessoas: 2
Veículos: "1"
Sentido: Crescente
Clima: Céu Claro
UF: SP
BR: 116
Mês: Janeiro
Dia: 15
`)
	got, err := DecodeValues(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[model.Field]string{
		model.FieldOccupants: "2",
		model.FieldVehicles:  "1",
		model.FieldDirection: "Crescente",
		model.FieldWeather:   "Céu Claro",
		model.FieldState:     "SP",
		model.FieldHighway:   "116",
		model.FieldMonth:     "Janeiro",
		model.FieldDay:       "15",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeValuesRejectsUnknownField(t *testing.T) {
	if _, err := DecodeValues([]byte("Idade: 30\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := DecodeValues([]byte("UF: [SP, RJ]\n")); err == nil {
		t.Fatalf("expected nested value error")
	}
}

func TestFormatValuesRoundTrip(t *testing.T) {
	values := map[model.Field]string{
		model.FieldOccupants: "2",
		model.FieldState:     "SP",
		model.FieldWeather:   "Céu Claro",
		model.FieldDay:       "-1",
	}
	encoded := FormatValues(values)

	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadValues(path)
	if err != nil {
		t.Fatalf("load values: %v\n%s", err, encoded)
	}
	if diff := cmp.Diff(values, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
