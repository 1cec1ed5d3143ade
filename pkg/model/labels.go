package model

// FieldText bundles the display strings of a field together with the
// translation keys renderers use to localise them.
type FieldText struct {
	Label          string
	LabelKey       string
	Placeholder    string
	PlaceholderKey string
}

var fieldTexts = map[Field]FieldText{
	FieldOccupants:  {Label: "Número de Pessoas", LabelKey: "fields.occupants.label"},
	FieldVehicles:   {Label: "Número de Veículos", LabelKey: "fields.vehicles.label"},
	FieldDirection:  {Label: "Sentido", LabelKey: "fields.direction.label", Placeholder: "Selecione o sentido", PlaceholderKey: "fields.direction.placeholder"},
	FieldWeather:    {Label: "Clima", LabelKey: "fields.weather.label", Placeholder: "Selecione o clima", PlaceholderKey: "fields.weather.placeholder"},
	FieldRoadType:   {Label: "Tipo de Pista", LabelKey: "fields.roadType.label", Placeholder: "Selecione o tipo de pista", PlaceholderKey: "fields.roadType.placeholder"},
	FieldRoadLayout: {Label: "Traçado da Via", LabelKey: "fields.roadLayout.label", Placeholder: "Selecione o traçado", PlaceholderKey: "fields.roadLayout.placeholder"},
	FieldState:      {Label: "UF", LabelKey: "fields.state.label", Placeholder: "Selecione a UF", PlaceholderKey: "fields.state.placeholder"},
	FieldHighway:    {Label: "Número da BR", LabelKey: "fields.highway.label", Placeholder: "Busque a BR", PlaceholderKey: "fields.highway.placeholder"},
	FieldMonth:      {Label: "Mês", LabelKey: "fields.month.label", Placeholder: "Selecione o mês", PlaceholderKey: "fields.month.placeholder"},
	FieldDay:        {Label: "Dia", LabelKey: "fields.day.label"},
}

// Text returns the default (pt-BR) display strings for field.
func (f Field) Text() FieldText {
	if text, ok := fieldTexts[f]; ok {
		return text
	}
	return FieldText{Label: string(f)}
}
