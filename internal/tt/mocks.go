package tt

import (
	"sync"

	"github.com/rickchristie/listen"
)

// -----------------------------------------------------------------------------
// Call log
// -----------------------------------------------------------------------------

// Call is one recorded listener method call.
type Call struct {
	Listener string
	Method   string
	Args     []any
}

// CallLog collects calls from any number of recording listeners in the order
// they happened.
type CallLog struct {
	mu    sync.Mutex
	calls []Call
}

// NewCallLog creates an empty log.
func NewCallLog() *CallLog {
	return &CallLog{}
}

func (l *CallLog) add(c Call) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, c)
}

// Calls returns a copy of the recorded calls.
func (l *CallLog) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Call(nil), l.calls...)
}

// Names returns "listener.method" for each recorded call.
func (l *CallLog) Names() []string {
	calls := l.Calls()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Listener + "." + c.Method
	}
	return names
}

// Methods returns the method name of each recorded call.
func (l *CallLog) Methods() []string {
	calls := l.Calls()
	methods := make([]string, len(calls))
	for i, c := range calls {
		methods[i] = c.Method
	}
	return methods
}

// Reset forgets all recorded calls.
func (l *CallLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = nil
}

// -----------------------------------------------------------------------------
// RecordingListener
// -----------------------------------------------------------------------------

// RecordingListener is a listener whose methods record their calls into a
// CallLog. Individual methods can be replaced to return errors or panic.
type RecordingListener struct {
	*listen.Object
	log *CallLog
}

// NewRecordingListener creates a listener named name implementing the given
// methods. Every method records its call and returns nil.
func NewRecordingListener(log *CallLog, name string, methods ...string) *RecordingListener {
	r := &RecordingListener{
		Object: &listen.Object{Name: name, Methods: make(map[string]listen.Func, len(methods))},
		log:    log,
	}
	for _, m := range methods {
		r.On(m, nil)
	}
	return r
}

// WithVersion sets the declared API version.
func (r *RecordingListener) WithVersion(version any) *RecordingListener {
	r.Object.Version = version
	return r
}

// On implements method with fn. The call is recorded before fn runs. A nil
// fn only records.
func (r *RecordingListener) On(method string, fn listen.Func) *RecordingListener {
	r.Object.Methods[method] = func(args ...any) error {
		r.log.add(Call{Listener: r.Object.Name, Method: method, Args: args})
		if fn == nil {
			return nil
		}
		return fn(args...)
	}
	return r
}

// Fail makes method return err after recording the call.
func (r *RecordingListener) Fail(method string, err error) *RecordingListener {
	return r.On(method, func(...any) error { return err })
}

// Panic makes method panic with v after recording the call.
func (r *RecordingListener) Panic(method string, v any) *RecordingListener {
	return r.On(method, func(...any) error { panic(v) })
}

// -----------------------------------------------------------------------------
// MockLibrary
// -----------------------------------------------------------------------------

// MockLibrary is a library carrying listener sources.
type MockLibrary struct {
	name      string
	listeners []any
}

// NewMockLibrary creates a library with the given listener sources.
func NewMockLibrary(name string, listeners ...any) *MockLibrary {
	return &MockLibrary{name: name, listeners: listeners}
}

func (l *MockLibrary) Name() string     { return l.name }
func (l *MockLibrary) Listeners() []any { return l.listeners }

// -----------------------------------------------------------------------------
// MapImporter
// -----------------------------------------------------------------------------

// MapImporter resolves listener names from a map and records the arguments
// each name was imported with.
type MapImporter struct {
	Listeners map[string]listen.Listener
	Args      map[string][]string
}

// NewMapImporter creates an importer for the given listeners.
func NewMapImporter(listeners map[string]listen.Listener) *MapImporter {
	return &MapImporter{Listeners: listeners, Args: make(map[string][]string)}
}

func (m *MapImporter) Import(name string, args []string) (listen.Listener, error) {
	l, ok := m.Listeners[name]
	if !ok {
		return nil, &listen.DataError{Message: "Importing listener '" + name + "' failed: not found."}
	}
	m.Args[name] = args
	return l, nil
}

var (
	_ listen.Library  = (*MockLibrary)(nil)
	_ listen.Importer = (*MapImporter)(nil)
)
