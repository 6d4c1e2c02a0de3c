package listen

import (
	"fmt"
	"reflect"
	"strings"
)

// Func is a bound listener method. Arguments depend on the event and on the
// listener API version:
//
//   - Version 3: the static item and the result, e.g. (*SuiteData, *SuiteResult),
//     or (*KeywordData, *Implementation, *KeywordResult) for the specialized
//     keyword methods.
//   - Version 2: a name and an attribute map, e.g. ("My Suite", map[string]any{...}),
//     or only the attribute map for message methods.
//
// Returning a *TimeoutError propagates the timeout to the engine. Any other
// error is logged and ignored.
type Func func(args ...any) error

// Listener is a raw listener object as provided by the listener loading
// collaborator.
//
// Method reports whether the listener has a callable with the given name.
// Names are tried in the order described in [Method] resolution: snake_case
// first, then camelCase, and for library listeners the same names prefixed
// with an underscore.
type Listener interface {
	Method(name string) (Func, bool)
}

// Named is implemented by listeners that declare their own name.
type Named interface {
	ListenerName() string
}

// Versioned is implemented by listeners that declare the listener API version
// they use. The value is coerced to an integer and must be 2 or 3. Listeners
// that do not implement Versioned use version 3.
type Versioned interface {
	APIVersion() any
}

// Object is a listener built from plain Go functions.
//
// Example:
//
//	l := &listen.Object{
//	    Name: "Printer",
//	    Methods: map[string]listen.Func{
//	        "end_test": func(args ...any) error {
//	            result := args[1].(*listen.TestResult)
//	            fmt.Println(result.Name, result.Status)
//	            return nil
//	        },
//	    },
//	}
type Object struct {
	// Name is the listener name. If empty, the type name is used.
	Name string

	// Version is the listener API version. nil means the default version 3.
	Version any

	// Methods maps method names to implementations.
	Methods map[string]Func
}

// Method returns the function registered with the exact name.
func (o *Object) Method(name string) (Func, bool) {
	fn, ok := o.Methods[name]
	if !ok || fn == nil {
		return nil, false
	}
	return fn, true
}

// ListenerName returns the configured name.
func (o *Object) ListenerName() string {
	return o.Name
}

// APIVersion returns the configured version or 3.
func (o *Object) APIVersion() any {
	if o.Version == nil {
		return 3
	}
	return o.Version
}

// typeName returns the name used for listeners that do not declare one.
func typeName(v any) string {
	if v == nil {
		return "None"
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
}

// Compile-time checks.
var (
	_ Listener  = (*Object)(nil)
	_ Named     = (*Object)(nil)
	_ Versioned = (*Object)(nil)
)
