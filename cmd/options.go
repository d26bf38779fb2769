package cmd

// Options holds the shared command-line options for the goodfirst CLI.
type Options struct {
	Format    string
	Verbosity int
	Workers   int

	// Gateway options
	Addr      string
	LogFormat string

	// Search filters; the numeric ones only apply when their flag is set
	Language          string
	Topic             string
	MinStars          float64
	MinForks          float64
	MinOwnerFollowers float64
	ActiveWithin      string

	// Profiling options
	CPUProfile string // Write CPU profile to file
	MemProfile string // Write memory profile to file
	Trace      string // Write execution trace to file
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (table, json, markdown).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithWorkers sets the number of concurrent enrichment lookups.
func WithWorkers(workers int) Option {
	return func(o *Options) {
		o.Workers = workers
	}
}

// WithAddr sets the gateway listen address.
func WithAddr(addr string) Option {
	return func(o *Options) {
		o.Addr = addr
	}
}

// WithLogFormat sets the gateway log format (text, json).
func WithLogFormat(f string) Option {
	return func(o *Options) {
		o.LogFormat = f
	}
}

// WithLanguage restricts searches to a repository language.
func WithLanguage(language string) Option {
	return func(o *Options) {
		o.Language = language
	}
}

// WithTopic restricts searches to a repository topic.
func WithTopic(topic string) Option {
	return func(o *Options) {
		o.Topic = topic
	}
}

// WithActiveWithin sets the activity window (e.g., "90", "30d", "6mo").
func WithActiveWithin(window string) Option {
	return func(o *Options) {
		o.ActiveWithin = window
	}
}

// WithCPUProfile sets the CPU profile output file.
func WithCPUProfile(path string) Option {
	return func(o *Options) {
		o.CPUProfile = path
	}
}

// WithMemProfile sets the memory profile output file.
func WithMemProfile(path string) Option {
	return func(o *Options) {
		o.MemProfile = path
	}
}

// WithTrace sets the execution trace output file.
func WithTrace(path string) Option {
	return func(o *Options) {
		o.Trace = path
	}
}
