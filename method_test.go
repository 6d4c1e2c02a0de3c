package listen

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs installs a JSON logger writing into the returned buffer for the
// duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := logger
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { SetLogger(old) })
	return &buf
}

type recordedCall struct {
	listener, method string
	err              error
}

type testRecorder struct {
	calls   []recordedCall
	dropped []string
}

func (r *testRecorder) ObserveCall(listener, method string, _ time.Duration, err error) {
	r.calls = append(r.calls, recordedCall{listener: listener, method: method, err: err})
}

func (r *testRecorder) ObserveDropped(listener, method string) {
	r.dropped = append(r.dropped, listener+"."+method)
}

func installRecorder(t *testing.T) *testRecorder {
	t.Helper()
	r := &testRecorder{}
	SetRecorder(r)
	t.Cleanup(func() { SetRecorder(nil) })
	return r
}

func TestMethod_Absent_IsNoOp(t *testing.T) {
	m := NewMethod(nil, "", "Listener")

	assert.False(t, m.Exists())
	assert.Equal(t, "", m.Name())
	assert.NoError(t, m.Call("anything", 1))
}

func TestMethod_Present_CalledWithArgs(t *testing.T) {
	var got []any
	m := NewMethod(func(args ...any) error {
		got = args
		return nil
	}, "start_test", "Listener")

	require.True(t, m.Exists())
	require.NoError(t, m.Call("a", 2, nil))

	assert.Equal(t, "start_test", m.Name())
	assert.Equal(t, []any{"a", 2, nil}, got)
}

func TestMethod_Error_LoggedAndSwallowed(t *testing.T) {
	logs := captureLogs(t)
	rec := installRecorder(t)
	m := NewMethod(func(...any) error { return errors.New("boom") }, "end_test", "MyListener")

	err := m.Call()

	assert.NoError(t, err)
	assert.Contains(t, logs.String(), `"level":"error"`)
	assert.Contains(t, logs.String(), "Calling method 'end_test' of listener 'MyListener' failed: boom")
	assert.Contains(t, logs.String(), `"level":"info"`)
	require.Len(t, rec.calls, 1)
	assert.EqualError(t, rec.calls[0].err, "boom")
}

func TestMethod_Panic_LoggedAndSwallowed(t *testing.T) {
	logs := captureLogs(t)
	m := NewMethod(func(...any) error { panic("kaboom") }, "start_suite", "MyListener")

	err := m.Call()

	assert.NoError(t, err)
	assert.Contains(t, logs.String(), "Calling method 'start_suite' of listener 'MyListener' failed: kaboom")
	assert.Contains(t, logs.String(), "panic: kaboom")
	assert.False(t, running.Load())
}

func TestMethod_Timeout_Propagated(t *testing.T) {
	logs := captureLogs(t)
	timeout := &TimeoutError{Message: "Test timeout 10 milliseconds exceeded."}
	wrapped := fmt.Errorf("keyword failed: %w", timeout)

	tests := []struct {
		name string
		fn   Func
		want error
	}{
		{name: "returned", fn: func(...any) error { return timeout }, want: timeout},
		{name: "wrapped", fn: func(...any) error { return wrapped }, want: wrapped},
		{name: "panicked", fn: func(...any) error { panic(timeout) }, want: timeout},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewMethod(tc.fn, "end_keyword", "MyListener").Call()

			assert.Equal(t, tc.want, err)
			assert.True(t, IsTimeout(err))
			assert.False(t, running.Load())
		})
	}
	assert.Empty(t, logs.String())
}

func TestMethod_Reentrant_CallsDropped(t *testing.T) {
	rec := installRecorder(t)
	var calls []string
	inner := NewMethod(func(...any) error {
		calls = append(calls, "inner")
		return nil
	}, "start_keyword", "Other")
	var outer Method
	outer = NewMethod(func(...any) error {
		calls = append(calls, "outer")
		assert.NoError(t, outer.Call())
		return inner.Call()
	}, "start_test", "MyListener")

	require.NoError(t, outer.Call())
	assert.Equal(t, []string{"outer"}, calls)
	assert.Equal(t, []string{"MyListener.start_test", "Other.start_keyword"}, rec.dropped)

	require.NoError(t, inner.Call())
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

func TestMethod_FlagReleasedAfterFailure(t *testing.T) {
	captureLogs(t)
	failing := NewMethod(func(...any) error { panic(errors.New("bad")) }, "close", "A")
	called := false
	next := NewMethod(func(...any) error {
		called = true
		return nil
	}, "close", "B")

	require.NoError(t, failing.Call())
	require.NoError(t, next.Call())

	assert.True(t, called)
}
