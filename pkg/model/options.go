package model

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

const (
	DirectionIncreasing = "Crescente"
	DirectionDecreasing = "Decrescente"
)

const (
	WeatherWind     = "Vento"
	WeatherDrizzle  = "Garoa/Chuvisco"
	WeatherOvercast = "Nublado"
	WeatherClearSky = "Céu Claro"
	WeatherSunny    = "Sol"
	WeatherRain     = "Chuva"
)

const (
	RoadSimple   = "Simples"
	RoadDual     = "Dupla"
	RoadMultiple = "Múltipla"
)

const (
	LayoutStraight          = "Reta"
	LayoutStraightUphill    = "Reta;Aclive"
	LayoutStraightDownhill  = "Reta;Declive"
	LayoutCurve             = "Curva"
	LayoutCurveDownhill     = "Curva;Declive"
	LayoutCurveUphill       = "Curva;Aclive"
	LayoutIntersection      = "Interseção de Vias"
	LayoutRegulatedUTurn    = "Retorno Regulamentado"
	LayoutOverpass          = "Viaduto"
	LayoutRoundabout        = "Rotatória"
	LayoutUnderConstruction = "Em Obras"
)

var directionOptions = []Option{
	{Value: DirectionIncreasing, Label: "Crescente"},
	{Value: DirectionDecreasing, Label: "Decrescente"},
}

var weatherOptions = []Option{
	{Value: WeatherWind, Label: "Vento"},
	{Value: WeatherDrizzle, Label: "Garoa/Chuvisco"},
	{Value: WeatherOvercast, Label: "Nublado"},
	{Value: WeatherClearSky, Label: "Céu Claro"},
	{Value: WeatherSunny, Label: "Sol"},
	{Value: WeatherRain, Label: "Chuva"},
}

var roadTypeOptions = []Option{
	{Value: RoadSimple, Label: "Simples"},
	{Value: RoadDual, Label: "Dupla"},
	{Value: RoadMultiple, Label: "Múltipla"},
}

var roadLayoutOptions = []Option{
	{Value: LayoutStraight, Label: "Reta"},
	{Value: LayoutStraightUphill, Label: "Reta com Aclive"},
	{Value: LayoutStraightDownhill, Label: "Reta com Declive"},
	{Value: LayoutCurve, Label: "Curva"},
	{Value: LayoutCurveDownhill, Label: "Curva com Declive"},
	{Value: LayoutCurveUphill, Label: "Curva com Aclive"},
	{Value: LayoutIntersection, Label: "Interseção de Vias"},
	{Value: LayoutRegulatedUTurn, Label: "Retorno Regulamentado"},
	{Value: LayoutOverpass, Label: "Viaduto"},
	{Value: LayoutRoundabout, Label: "Rotatória"},
	{Value: LayoutUnderConstruction, Label: "Em Obras"},
}

var stateCodes = []string{
	"AC", "AL", "AM", "AP", "BA", "CE", "DF", "ES", "GO", "MA", "MG", "MS", "MT", "PA",
	"PB", "PE", "PI", "PR", "RJ", "RN", "RO", "RR", "RS", "SC", "SE", "SP", "TO",
}

var monthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Options returns a copy of the choices offered for field. Numeric fields
// return nil; the highway catalog lives in components/highways.
func Options(field Field) []Option {
	switch field {
	case FieldDirection:
		return cloneOptions(directionOptions)
	case FieldWeather:
		return cloneOptions(weatherOptions)
	case FieldRoadType:
		return cloneOptions(roadTypeOptions)
	case FieldRoadLayout:
		return cloneOptions(roadLayoutOptions)
	case FieldState:
		return plainOptions(stateCodes)
	case FieldMonth:
		return plainOptions(monthNames)
	default:
		return nil
	}
}

// HasOption reports whether value is one of the choices offered for field.
func HasOption(field Field, value string) bool {
	for _, option := range Options(field) {
		if option.Value == value {
			return true
		}
	}
	return false
}

// OptionLabel returns the display label for value, or value itself when it is
// not a known choice.
func OptionLabel(field Field, value string) string {
	for _, option := range Options(field) {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}

func cloneOptions(in []Option) []Option {
	return append([]Option(nil), in...)
}

func plainOptions(values []string) []Option {
	out := make([]Option, 0, len(values))
	for _, value := range values {
		out = append(out, Option{Value: value, Label: value})
	}
	return out
}
