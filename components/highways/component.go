package highways

import "net/http"

// Component bundles the catalog handler with its configuration and routing
// helpers so servers can mount it in one call.
type Component struct {
	opts Options
}

func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Highways returns the list the component serves.
func (c *Component) Highways() ([]Highway, error) {
	if c != nil && c.opts.Highways != nil {
		return append([]Highway{}, c.opts.Highways...), nil
	}
	return DefaultHighways()
}

func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
