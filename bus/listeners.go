package bus

import "github.com/rickchristie/listen"

// DefaultLogLevel is the minimum level of log messages dispatched to
// listeners unless WithLogLevel is used.
const DefaultLogLevel = listen.LevelInfo

// Option configures a bus.
type Option func(*options)

type options struct {
	logLevel string
	importer listen.Importer
}

// WithLogLevel sets the minimum level of messages passed to LogMessage.
func WithLogLevel(level string) Option {
	return func(o *options) { o.logLevel = level }
}

// WithImporter sets the importer used for string listener sources.
func WithImporter(importer listen.Importer) Option {
	return func(o *options) { o.importer = importer }
}

func buildOptions(opts []Option) options {
	o := options{logLevel: DefaultLogLevel}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Listeners dispatches events to top-level listeners in the order they were
// given.
//
// # Creating and Using
//
//	listeners, err := bus.New(
//	    []any{printer, "listeners/trace.lua"},
//	    bus.WithLogLevel("DEBUG"),
//	    bus.WithImporter(lua.NewImporter()),
//	)
//	if err != nil {
//	    return err
//	}
//	defer listeners.Close()
//
//	if err := listeners.StartSuite(data, result); err != nil {
//	    // Only timeouts are returned.
//	}
//
// Listeners that fail to import are logged and left out. An unknown log
// level is the only error New returns.
//
// # Thread Safety
//
// Listeners is NOT thread-safe. Events are delivered synchronously on the
// calling goroutine.
type Listeners struct {
	dispatcher
	facades []listen.Facade
}

// New imports the listener sources and creates a bus for them. Sources are
// Listener values or strings resolved with the importer.
func New(sources []any, opts ...Option) (*Listeners, error) {
	o := buildOptions(opts)
	filter, err := listen.NewLevelFilter(o.logLevel)
	if err != nil {
		return nil, err
	}
	facades, err := listen.ImportAll(sources, nil, o.importer)
	if err != nil {
		return nil, err
	}
	l := &Listeners{facades: facades}
	l.dispatcher = dispatcher{active: l.active, filter: filter}
	return l, nil
}

func (l *Listeners) active() []listen.Facade {
	return l.facades
}

// Close dispatches the close event to every listener.
func (l *Listeners) Close() error {
	return l.each(func(f listen.Facade) error { return f.Close() })
}

var _ listen.Events = (*Listeners)(nil)
