package tui

// Theme captures optional prefixes the session applies to printed messages.
type Theme struct {
	InfoPrefix   string
	ErrorPrefix  string
	ResultPrefix string
}

// DefaultTheme is used when no theme is configured.
func DefaultTheme() Theme {
	return Theme{
		ErrorPrefix:  "✗ ",
		ResultPrefix: "⚠ ",
	}
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithSkipValid skips fields that already hold a valid value on the first
// pass, e.g. after prefilling from a file.
func WithSkipValid(skip bool) Option {
	return func(s *Session) {
		s.skipValid = skip
	}
}

// WithPageSize sets how many options a select shows at once.
func WithPageSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithRepeat offers another prediction after a successful one.
func WithRepeat(repeat bool) Option {
	return func(s *Session) {
		s.repeat = repeat
	}
}
