package config

import "flag"

// Flags holds command-line overrides. Only flags set on the command line are
// applied, so file and environment values survive when a flag is omitted.
type Flags struct {
	fs     *flag.FlagSet
	values Config
}

// BindFlags registers the shared flags on fs. Defaults shown in usage come
// from Default.
func BindFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVar(&f.values.Endpoint, "endpoint", d.Endpoint, "prediction endpoint URL")
	fs.DurationVar(&f.values.Timeout, "timeout", d.Timeout, "per-request timeout (0 disables)")
	fs.StringVar(&f.values.HighwayMode, "highway", d.HighwayMode, "highway input: numeric or catalog")
	fs.BoolVar(&f.values.StrictEnums, "strict", d.StrictEnums, "require catalogued values for choice fields")
	fs.BoolVar(&f.values.SkipContract, "skip-contract", d.SkipContract, "skip OpenAPI contract checks")
	fs.StringVar(&f.values.Locale, "locale", d.Locale, "message locale (pt-BR, en)")
	fs.BoolVar(&f.values.FailureNotice, "failure-notice", d.FailureNotice, "show a notice when the prediction fails")
	fs.StringVar(&f.values.Log.Level, "log-level", d.Log.Level, "log level: debug, info, warn, error")
	fs.StringVar(&f.values.Log.Format, "log-format", d.Log.Format, "log format: text or json")
	return f
}

// BindServerFlags registers the HTTP server flags.
func (f *Flags) BindServerFlags() *Flags {
	d := Default().Server
	f.fs.StringVar(&f.values.Server.Addr, "addr", d.Addr, "listen address")
	f.fs.StringVar(&f.values.Server.BasePath, "base-path", d.BasePath, "path prefix for every route")
	f.fs.StringVar(&f.values.Server.Theme, "theme", d.Theme, "theme name")
	f.fs.StringVar(&f.values.Server.Variant, "variant", d.Variant, "theme variant")
	f.fs.DurationVar(&f.values.Server.ShutdownTimeout, "shutdown-timeout", d.ShutdownTimeout, "graceful shutdown timeout")
	return f
}

// Apply copies the flags that were set onto cfg. Call it after fs.Parse.
func (f *Flags) Apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "endpoint":
			cfg.Endpoint = f.values.Endpoint
		case "timeout":
			cfg.Timeout = f.values.Timeout
		case "highway":
			cfg.HighwayMode = f.values.HighwayMode
		case "strict":
			cfg.StrictEnums = f.values.StrictEnums
		case "skip-contract":
			cfg.SkipContract = f.values.SkipContract
		case "locale":
			cfg.Locale = f.values.Locale
		case "failure-notice":
			cfg.FailureNotice = f.values.FailureNotice
		case "log-level":
			cfg.Log.Level = f.values.Log.Level
		case "log-format":
			cfg.Log.Format = f.values.Log.Format
		case "addr":
			cfg.Server.Addr = f.values.Server.Addr
		case "base-path":
			cfg.Server.BasePath = f.values.Server.BasePath
		case "theme":
			cfg.Server.Theme = f.values.Server.Theme
		case "variant":
			cfg.Server.Variant = f.values.Server.Variant
		case "shutdown-timeout":
			cfg.Server.ShutdownTimeout = f.values.Server.ShutdownTimeout
		}
	})
}

