package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goliatone/go-ileso/pkg/model"
)

// ValidInput returns a FormInput that satisfies every rule of the default
// schema.
func ValidInput() model.FormInput {
	return model.FormInput{
		Occupants:  model.Int(2),
		Vehicles:   model.Int(1),
		Direction:  model.DirectionIncreasing,
		Weather:    model.WeatherClearSky,
		RoadType:   model.RoadSimple,
		RoadLayout: model.LayoutStraight,
		State:      "SP",
		Highway:    model.Int(116),
		Month:      "Janeiro",
		Day:        model.Int(15),
	}
}

// ValidRaw returns the raw field values of ValidInput, as a front end would
// submit them.
func ValidRaw() map[model.Field]string {
	in := ValidInput()
	out := make(map[model.Field]string, len(model.Fields()))
	for _, field := range model.Fields() {
		out[field] = in.Raw(field)
	}
	return out
}

// PredictorServer is a fake prediction endpoint that records every request
// body it receives.
type PredictorServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []map[string]any
	rawBody  [][]byte
}

// NewPredictorServer starts a fake endpoint that answers with handler. The
// server is closed when the test ends.
func NewPredictorServer(t *testing.T, handler http.HandlerFunc) *PredictorServer {
	t.Helper()

	ps := &PredictorServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var decoded map[string]any
		_ = json.Unmarshal(body, &decoded)

		ps.mu.Lock()
		ps.requests = append(ps.requests, decoded)
		ps.rawBody = append(ps.rawBody, body)
		ps.mu.Unlock()

		handler(w, r)
	}))
	t.Cleanup(ps.Close)
	return ps
}

// RespondJSON returns a handler writing body as JSON with status.
func RespondJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// Calls reports how many requests reached the server.
func (ps *PredictorServer) Calls() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.requests)
}

// Request returns the decoded body of the i-th request.
func (ps *PredictorServer) Request(i int) map[string]any {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if i < 0 || i >= len(ps.requests) {
		return nil
	}
	return ps.requests[i]
}

// RawRequest returns the undecoded body of the i-th request.
func (ps *PredictorServer) RawRequest(i int) []byte {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if i < 0 || i >= len(ps.rawBody) {
		return nil
	}
	return ps.rawBody[i]
}
