package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"github.com/goliatone/go-ileso/components/highways"
	"github.com/goliatone/go-ileso/pkg/form"
	"github.com/goliatone/go-ileso/pkg/model"
	"github.com/goliatone/go-ileso/pkg/present"
	"github.com/goliatone/go-ileso/pkg/submission"
	"github.com/goliatone/go-ileso/pkg/validation"
)

const maxBodyBytes = 64 << 10

// Option configures a Handler.
type Option func(*Handler)

// WithRenderer replaces the default page renderer.
func WithRenderer(r *Renderer) Option {
	return func(h *Handler) {
		if r != nil {
			h.renderer = r
		}
	}
}

// WithPresenter sets the presenter used for pages and JSON messages.
func WithPresenter(p *present.Presenter) Option {
	return func(h *Handler) {
		if p != nil {
			h.presenter = p
		}
	}
}

// WithFormFactory sets how each request builds its form, e.g. to switch the
// highway strategy.
func WithFormFactory(fn func() *form.Form) Option {
	return func(h *Handler) {
		if fn != nil {
			h.newForm = fn
		}
	}
}

// WithTimeout bounds each prediction call.
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		h.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithHighways mounts the catalog component and feeds the highway datalist.
// Pass nil to leave the catalog out.
func WithHighways(c *highways.Component) Option {
	return func(h *Handler) {
		h.highways = c
		h.highwaysSet = true
	}
}

// WithBasePath mounts every route under basePath.
func WithBasePath(basePath string) Option {
	return func(h *Handler) {
		h.basePath = normalizeBasePath(basePath)
	}
}

// Handler serves the form page, the JSON prediction endpoint, the stylesheet
// and the highway catalog. Every request owns its form and controller.
type Handler struct {
	predictor   submission.Predictor
	renderer    *Renderer
	presenter   *present.Presenter
	newForm     func() *form.Form
	timeout     time.Duration
	logger      *slog.Logger
	highways    *highways.Component
	highwaysSet bool
	basePath    string

	catalog []model.Option
	mux     *http.ServeMux
}

// NewHandler wires the routes around predictor.
func NewHandler(predictor submission.Predictor, opts ...Option) (*Handler, error) {
	if predictor == nil {
		return nil, errors.New("web: predictor is required")
	}
	h := &Handler{
		predictor: predictor,
		presenter: present.New(),
		newForm:   func() *form.Form { return form.New() },
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	if !h.highwaysSet {
		h.highways = highways.New()
	}
	if h.renderer == nil {
		r, err := NewRenderer(WithRendererBasePath(h.basePath))
		if err != nil {
			return nil, err
		}
		h.renderer = r
	}

	h.mux = http.NewServeMux()
	h.mux.HandleFunc(h.route("/"), h.handleForm)
	h.mux.HandleFunc(h.route("/api/predict"), h.handlePredict)
	h.mux.Handle(h.route("/assets/"), http.StripPrefix(h.route("/assets/"), http.FileServer(http.FS(AssetsFS()))))

	if h.highways != nil {
		list, err := h.highways.Highways()
		if err != nil {
			return nil, fmt.Errorf("web: load highways: %w", err)
		}
		h.catalog = highways.ToOptions(list)
		if _, err := h.highways.RegisterRoutes(h.mux, h.basePath); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) route(p string) string {
	if h.basePath == "" {
		return p
	}
	return h.basePath + p
}

func (h *Handler) highwaysURL() string {
	if h.highways == nil {
		return ""
	}
	return highways.MountPath(h.basePath, func(o *highways.Options) { *o = h.highways.Options() })
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != h.route("/") && r.URL.Path != h.basePath {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.renderPage(w, http.StatusOK, h.newForm(), submission.State{Status: submission.StatusIdle})
	case http.MethodPost:
		h.submitForm(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	values := make(map[model.Field]string, len(model.Fields()))
	for _, field := range model.Fields() {
		values[field] = r.PostForm.Get(string(field))
	}

	f := h.newForm()
	if err := f.SetValues(values); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	st, err := h.submit(r, f)
	h.renderPage(w, statusFor(st, err), f, st)
}

func (h *Handler) submit(r *http.Request, f *form.Form) (submission.State, error) {
	controller := submission.New(f, h.predictor,
		submission.WithTimeout(h.timeout),
		submission.WithLogger(h.logger),
	)
	defer controller.Close()
	return controller.Submit(r.Context())
}

func (h *Handler) renderPage(w http.ResponseWriter, status int, f *form.Form, st submission.State) {
	var buf bytes.Buffer
	page := Page{
		View:        h.presenter.Present(f, st),
		Highways:    h.catalog,
		HighwaysURL: h.highwaysURL(),
	}
	if err := h.renderer.Render(&buf, page); err != nil {
		h.logger.Error("render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// PredictResponse is the body of a successful POST /api/predict.
type PredictResponse struct {
	Probability float64 `json:"probabilidade_ileso"`
	Percent     string  `json:"percent"`
	Attempt     string  `json:"attempt"`
}

// ErrorResponse is the body of a rejected POST /api/predict.
type ErrorResponse struct {
	Error    string              `json:"error"`
	Fields   map[string][]string `json:"fields,omitempty"`
	Messages []string            `json:"messages,omitempty"`
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
		return
	}
	values, err := decodeValues(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	f := h.newForm()
	if err := f.SetValues(values); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	st, err := h.submit(r, f)
	status := statusFor(st, err)
	if st.Status == submission.StatusSucceeded && err == nil {
		writeJSON(w, status, PredictResponse{
			Probability: st.Probability,
			Percent:     present.FormatPercent(st.Probability),
			Attempt:     st.AttemptID,
		})
		return
	}

	view := h.presenter.Present(f, st)
	resp := ErrorResponse{Messages: view.Messages}
	var invalid validation.Errors
	switch {
	case errors.As(err, &invalid):
		resp.Error = view.Notice
	case err != nil:
		resp.Error = err.Error()
	default:
		resp.Error = http.StatusText(status)
	}
	for _, fv := range view.Fields {
		if len(fv.Errors) > 0 {
			if resp.Fields == nil {
				resp.Fields = make(map[string][]string)
			}
			resp.Fields[fv.Name] = fv.Errors
		}
	}
	writeJSON(w, status, resp)
}

// decodeValues accepts a JSON object keyed by field name. Numbers and strings
// are both accepted so the wire payload can be posted as-is.
func decodeValues(body []byte) (map[model.Field]string, error) {
	var raw map[string]any
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	values := make(map[model.Field]string, len(raw))
	for key, value := range raw {
		field, ok := model.ParseField(key)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", key)
		}
		switch v := value.(type) {
		case nil:
			values[field] = ""
		case string:
			values[field] = v
		case float64:
			values[field] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			return nil, fmt.Errorf("field %q: unexpected boolean", key)
		default:
			return nil, fmt.Errorf("field %q: unexpected %T", key, value)
		}
	}
	return values, nil
}

func statusFor(st submission.State, err error) int {
	var invalid validation.Errors
	switch {
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, submission.ErrInFlight):
		return http.StatusConflict
	case st.Status == submission.StatusFailed, err != nil:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = sonic.ConfigStd.NewEncoder(w).Encode(v)
}
