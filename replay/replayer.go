package replay

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rickchristie/listen"
	"github.com/rickchristie/listen/bus"
	"go.uber.org/multierr"
)

// Replayer drives the listener buses with a decoded event stream.
//
// Every event goes to the top-level bus first and then to the library bus.
// start_suite opens a library suite scope before the event is delivered and
// end_suite discards it afterwards, mirroring how an engine runs suites.
// Either bus may be nil.
//
// Results and messages without times get the current time of Clock: start
// events stamp the start time, end events the start and end times.
type Replayer struct {
	Listeners *bus.Listeners
	Library   *bus.LibraryListeners
	Clock     clock.Clock

	// libraries holds the libraries registered in each open scope by name.
	libraries []map[string]*library
}

// New creates a replayer using the wall clock.
func New(listeners *bus.Listeners, libraryListeners *bus.LibraryListeners) *Replayer {
	return &Replayer{Listeners: listeners, Library: libraryListeners, Clock: clock.New()}
}

// Play replays steps in order. It stops at the first error, which is either a
// listener timeout or a misused suite scope, and when ctx is done.
func (r *Replayer) Play(ctx context.Context, steps []*Step) error {
	for i, s := range steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := r.Step(s); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, s.Event, err)
		}
	}
	return nil
}

// Step replays one step.
//
// A start_suite that fails discards the library suite scope it opened.
// end_suite discards its scope even when delivery fails.
func (r *Replayer) Step(s *Step) error {
	switch s.Event {
	case StepSetLogLevel:
		return r.setLogLevel(s.Level)
	case StepRegister:
		return r.register(s)
	case StepUnregister:
		return r.unregister(s)
	case listen.EventStartSuite:
		r.openScope()
	}

	r.stamp(s)
	err := r.deliver(s)
	switch {
	case s.Event == listen.EventStartSuite && err != nil:
		return multierr.Append(err, r.closeScope())
	case s.Event == listen.EventEndSuite:
		return multierr.Append(err, r.closeScope())
	}
	return err
}

func (r *Replayer) deliver(s *Step) error {
	for _, e := range r.buses() {
		if err := deliver(e, s); err != nil {
			return err
		}
	}
	return nil
}

// openScope opens a library suite scope together with its table of
// registered libraries.
func (r *Replayer) openScope() {
	if r.Library == nil {
		return
	}
	r.Library.NewSuiteScope()
	r.libraries = append(r.libraries, nil)
}

func (r *Replayer) closeScope() error {
	if r.Library == nil {
		return nil
	}
	if err := r.Library.DiscardSuiteScope(); err != nil {
		return err
	}
	if n := len(r.libraries); n > 0 {
		r.libraries = r.libraries[:n-1]
	}
	return nil
}

func (r *Replayer) buses() []listen.Events {
	var buses []listen.Events
	if r.Listeners != nil {
		buses = append(buses, r.Listeners)
	}
	if r.Library != nil {
		buses = append(buses, r.Library)
	}
	return buses
}

func (r *Replayer) setLogLevel(level string) error {
	if r.Listeners != nil {
		if _, err := r.Listeners.SetLogLevel(level); err != nil {
			return err
		}
	}
	if r.Library != nil {
		if _, err := r.Library.SetLogLevel(level); err != nil {
			return err
		}
	}
	return nil
}

func (r *Replayer) register(s *Step) error {
	if r.Library == nil {
		return nil
	}
	if len(r.libraries) == 0 {
		return listen.ErrNoSuiteScope
	}
	lib := &library{name: s.Library}
	for _, l := range s.Listeners {
		lib.listeners = append(lib.listeners, l)
	}
	if err := r.Library.Register(lib); err != nil {
		return err
	}
	top := len(r.libraries) - 1
	if r.libraries[top] == nil {
		r.libraries[top] = make(map[string]*library)
	}
	r.libraries[top][s.Library] = lib
	return nil
}

// unregister looks the library up in the innermost scope only, the same
// scope the library bus removes listeners from.
func (r *Replayer) unregister(s *Step) error {
	if r.Library == nil {
		return nil
	}
	if len(r.libraries) == 0 {
		return listen.ErrNoSuiteScope
	}
	top := r.libraries[len(r.libraries)-1]
	lib, ok := top[s.Library]
	if !ok {
		return fmt.Errorf("library %q is not registered", s.Library)
	}
	if err := r.Library.Unregister(lib, s.Close); err != nil {
		return err
	}
	delete(top, s.Library)
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

func (r *Replayer) stamp(s *Step) {
	if r.Clock == nil {
		return
	}
	now := r.Clock.Now()
	if s.Message != nil && s.Message.Timestamp.IsZero() {
		s.Message.Timestamp = now
	}
	if s.Result == nil {
		return
	}
	rv := reflect.ValueOf(s.Result).Elem()
	switch {
	case strings.HasPrefix(s.Event, "start_"):
		setIfZero(rv, "StartTime", now)
	case strings.HasPrefix(s.Event, "end_"):
		setIfZero(rv, "StartTime", now)
		setIfZero(rv, "EndTime", now)
	}
}

func setIfZero(rv reflect.Value, field string, t time.Time) {
	f := rv.FieldByName(field)
	if !f.IsValid() || f.Type() != timeType || !f.CanSet() {
		return
	}
	if f.Interface().(time.Time).IsZero() {
		f.Set(reflect.ValueOf(t))
	}
}

// library is a library registered by a replayed register step. Its listener
// sources are resolved with the library bus importer.
type library struct {
	name      string
	listeners []any
}

func (l *library) Name() string     { return l.name }
func (l *library) Listeners() []any { return l.listeners }
