package listen

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// running is set while any listener method runs. It is shared by every
// Method in the process, not per bus, listener or goroutine: a listener
// method that triggers engine activity must not cause nested listener calls
// anywhere. Nested calls are dropped, not queued.
var running atomic.Bool

// Method is a guarded listener method.
//
// A Method may wrap no function at all, in which case calling it is a no-op
// and Exists reports false. This lets facades check whether a listener
// implements a hook without calling it.
type Method struct {
	fn       Func
	name     string
	listener string
}

// NewMethod wraps fn, which may be nil. name is the resolved method name and
// listener the display name of the owning listener; both are used in error
// messages.
func NewMethod(fn Func, name, listener string) Method {
	return Method{fn: fn, name: name, listener: listener}
}

// Exists reports whether the method wraps a function.
func (m Method) Exists() bool {
	return m.fn != nil
}

// Name returns the resolved method name, or "" if the method does not exist.
func (m Method) Name() string {
	return m.name
}

// Call invokes the method with the given arguments.
//
// Call does nothing if the method does not exist or if another listener
// method is already running. Errors and panics from the listener are logged
// and swallowed, except a TimeoutError which is returned unchanged.
func (m Method) Call(args ...any) error {
	if m.fn == nil {
		return nil
	}
	if !running.CompareAndSwap(false, true) {
		recorder.ObserveDropped(m.listener, m.name)
		return nil
	}
	defer running.Store(false)

	start := time.Now()
	details, err := m.invoke(args)
	recorder.ObserveCall(m.listener, m.name, time.Since(start), err)
	if err == nil {
		return nil
	}
	if IsTimeout(err) {
		return err
	}
	logger.Error().
		Str("listener", m.listener).
		Str("method", m.name).
		Msgf("Calling method '%s' of listener '%s' failed: %v", m.name, m.listener, err)
	logger.Info().
		Str("listener", m.listener).
		Str("method", m.name).
		Msgf("Details:\n%s", details)
	return nil
}

// invoke runs the function converting panics to errors. details carries the
// full failure information logged at a lower level.
func (m Method) invoke(args []any) (details string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
			details = fmt.Sprintf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	if err = m.fn(args...); err != nil {
		details = fmt.Sprintf("%+v", err)
	}
	return details, err
}
