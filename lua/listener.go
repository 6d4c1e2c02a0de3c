package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rickchristie/listen"
	lua "github.com/yuin/gopher-lua"
)

// Fields a script may set on the listener table.
const (
	NameField    = "ROBOT_LISTENER_NAME"
	VersionField = "ROBOT_LISTENER_API_VERSION"
)

// ErrClosed is returned when calling methods of a closed listener.
var ErrClosed = errors.New("lua listener is closed")

// Option configures a Listener.
type Option func(*Listener)

// WithTimeout limits how long a single listener method may run. When the
// limit is exceeded the call fails with a listen.TimeoutError. Zero means no
// limit.
func WithTimeout(d time.Duration) Option {
	return func(l *Listener) {
		l.callTimeout = d
	}
}

// Listener is a listener implemented in Lua.
//
// The listener object is the table returned by the script, or the global
// table if the script returns nothing. Its functions are the listener
// methods:
//
//	local listener = {ROBOT_LISTENER_API_VERSION = 2}
//
//	function listener.end_test(name, attrs)
//	    print(name .. " " .. attrs.status)
//	end
//
//	return listener
//
// Version 3 methods receive the model objects converted to tables keyed by
// their YAML field names. Script arguments are available in the global arg
// table.
//
// gopher-lua states are not goroutine-safe. Calls are serialized.
type Listener struct {
	L *lua.LState

	mu          sync.Mutex
	obj         *lua.LTable
	name        string
	callTimeout time.Duration
	raised      *listen.TimeoutError
	closed      bool
}

// Load runs the script at path and returns the listener it defines.
func Load(path string, args []string, opts ...Option) (*Listener, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return load(f, path, name, args, opts)
}

// LoadString runs code and returns the listener it defines. name is used as
// the chunk name and as the listener name unless the script sets one.
func LoadString(name, code string, args []string, opts ...Option) (*Listener, error) {
	return load(strings.NewReader(code), name, name, args, opts)
}

func load(r io.Reader, chunk, name string, args []string, opts []Option) (*Listener, error) {
	l := &Listener{L: newSandboxedState(), name: name}
	for _, opt := range opts {
		opt(l)
	}
	l.installBuiltins()
	l.L.SetGlobal("arg", toLua(l.L, args))

	fn, err := l.L.Load(r, chunk)
	if err != nil {
		l.L.Close()
		return nil, fmt.Errorf("loading %s: %w", chunk, err)
	}
	l.L.Push(fn)
	if err := l.L.PCall(0, 1, nil); err != nil {
		l.L.Close()
		return nil, fmt.Errorf("running %s: %w", chunk, err)
	}
	ret := l.L.Get(-1)
	l.L.Pop(1)

	if obj, ok := ret.(*lua.LTable); ok {
		l.obj = obj
	} else {
		l.obj = l.L.G.Global
	}
	if declared, ok := l.L.GetField(l.obj, NameField).(lua.LString); ok && declared != "" {
		l.name = string(declared)
	}
	return l, nil
}

// Method returns the listener function with the given name.
func (l *Listener) Method(name string) (listen.Func, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, false
	}
	fn, ok := l.L.GetField(l.obj, name).(*lua.LFunction)
	if !ok {
		return nil, false
	}
	return func(args ...any) error {
		return l.call(name, fn, args)
	}, true
}

// ListenerName returns the declared name or the script name.
func (l *Listener) ListenerName() string {
	return l.name
}

// APIVersion returns the declared version, or nil if the script does not
// declare one.
func (l *Listener) APIVersion() any {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	switch v := l.L.GetField(l.obj, VersionField).(type) {
	case *lua.LNilType:
		return nil
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	default:
		return v.String()
	}
}

func (l *Listener) call(name string, fn *lua.LFunction, args []any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}

	var ctx context.Context
	if l.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), l.callTimeout)
		defer cancel()
		l.L.SetContext(ctx)
		defer l.L.RemoveContext()
	}

	l.raised = nil
	values := make([]lua.LValue, len(args))
	for i, a := range args {
		values[i] = toLua(l.L, a)
	}
	err := l.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, values...)
	if err == nil {
		return nil
	}
	if l.raised != nil {
		return l.raised
	}
	if ctx != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &listen.TimeoutError{
			Message: fmt.Sprintf("Listener '%s' method '%s' timed out after %s.", l.name, name, l.callTimeout),
		}
	}
	return err
}

// Close releases the Lua state. Methods resolved earlier fail with ErrClosed.
func (l *Listener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.L.Close()
	l.closed = true
	return nil
}

var (
	_ listen.Listener  = (*Listener)(nil)
	_ listen.Named     = (*Listener)(nil)
	_ listen.Versioned = (*Listener)(nil)
)
