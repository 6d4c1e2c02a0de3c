package bus

import (
	"fmt"
	"reflect"

	"github.com/rickchristie/listen"
)

// LibraryListeners dispatches events to listeners owned by libraries.
//
// Library listeners live in suite scopes. The engine opens a scope when a
// suite starts and discards it when the suite ends, and libraries imported
// while the suite runs register their listeners into that scope. Events go
// only to the listeners of the innermost scope. With no open scope there are
// no active listeners.
//
//	lib := bus.NewLibraryListeners()
//	lib.NewSuiteScope()
//	if err := lib.Register(library); err != nil {
//	    // The library cannot be used.
//	}
//	lib.StartTest(data, result)
//	lib.Unregister(library, true)
//	lib.DiscardSuiteScope()
//
// LibraryListeners is NOT thread-safe.
type LibraryListeners struct {
	dispatcher
	scopes   [][]listen.Facade
	importer listen.Importer
}

// NewLibraryListeners creates a bus without any suite scope. WithImporter
// sets the importer for string listener sources of libraries.
func NewLibraryListeners(opts ...Option) (*LibraryListeners, error) {
	o := buildOptions(opts)
	filter, err := listen.NewLevelFilter(o.logLevel)
	if err != nil {
		return nil, err
	}
	l := &LibraryListeners{importer: o.importer}
	l.dispatcher = dispatcher{active: l.active, filter: filter}
	return l, nil
}

// active returns the listeners of the innermost scope.
func (l *LibraryListeners) active() []listen.Facade {
	if len(l.scopes) == 0 {
		return nil
	}
	return l.scopes[len(l.scopes)-1]
}

// Depth returns the number of open suite scopes.
func (l *LibraryListeners) Depth() int {
	return len(l.scopes)
}

// NewSuiteScope opens an empty scope.
func (l *LibraryListeners) NewSuiteScope() {
	l.scopes = append(l.scopes, nil)
}

// DiscardSuiteScope removes the innermost scope with all its listeners.
// Close is not dispatched to them.
func (l *LibraryListeners) DiscardSuiteScope() error {
	if len(l.scopes) == 0 {
		return listen.ErrNoSuiteScope
	}
	l.scopes[len(l.scopes)-1] = nil
	l.scopes = l.scopes[:len(l.scopes)-1]
	return nil
}

// Register imports the listeners of the library into the innermost scope
// after any listeners already there. If any of them fails to import, none
// are registered and the error is returned.
//
// Libraries are told apart by identity, so library must be a pointer.
// Other values are rejected with a *listen.DataError.
func (l *LibraryListeners) Register(library listen.Library) error {
	if len(l.scopes) == 0 {
		return listen.ErrNoSuiteScope
	}
	if !isPointer(library) {
		return &listen.DataError{Message: fmt.Sprintf(
			"Cannot register listeners of library %T: libraries must be pointers.", library)}
	}
	facades, err := listen.ImportAll(library.Listeners(), library, l.importer)
	if err != nil {
		return err
	}
	top := len(l.scopes) - 1
	l.scopes[top] = append(l.scopes[top], facades...)
	return nil
}

// Unregister removes the listeners of the library from the innermost scope.
// Other listeners keep their order. If callClose is true, the close event is
// dispatched to each removed listener first.
//
// A timeout from a close method is returned and the scope is left as it was.
func (l *LibraryListeners) Unregister(library listen.Library, callClose bool) error {
	if len(l.scopes) == 0 {
		return listen.ErrNoSuiteScope
	}
	top := len(l.scopes) - 1
	remaining := make([]listen.Facade, 0, len(l.scopes[top]))
	for _, f := range l.scopes[top] {
		if !sameLibrary(f.Library(), library) {
			remaining = append(remaining, f)
			continue
		}
		if callClose {
			if err := f.Close(); err != nil {
				return err
			}
		}
	}
	l.scopes[top] = remaining
	return nil
}

// sameLibrary reports whether a and b are the same library instance.
// Registered libraries are always pointers, so a value that is not a pointer
// matches nothing.
func sameLibrary(a, b listen.Library) bool {
	return isPointer(a) && isPointer(b) && a == b
}

func isPointer(library listen.Library) bool {
	return library != nil && reflect.TypeOf(library).Kind() == reflect.Pointer
}

// Close does nothing. Library listeners are closed by Unregister.
func (l *LibraryListeners) Close() error {
	return nil
}

var _ listen.Events = (*LibraryListeners)(nil)
