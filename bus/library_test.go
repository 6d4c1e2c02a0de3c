package bus

import (
	"testing"

	"github.com/rickchristie/listen"
	"github.com/rickchristie/listen/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibraryListeners(t *testing.T, opts ...Option) *LibraryListeners {
	t.Helper()
	l, err := NewLibraryListeners(opts...)
	require.NoError(t, err)
	return l
}

func TestLibraryListeners_NoScope(t *testing.T) {
	l := newLibraryListeners(t)
	lib := tt.NewMockLibrary("Lib", tt.NewRecordingListener(tt.NewCallLog(), "a", "start_test"))
	data, result := tt.Test()

	assert.True(t, l.Empty())
	assert.NoError(t, l.StartTest(data, result))
	assert.ErrorIs(t, l.Register(lib), listen.ErrNoSuiteScope)
	assert.ErrorIs(t, l.Unregister(lib, false), listen.ErrNoSuiteScope)
	assert.ErrorIs(t, l.DiscardSuiteScope(), listen.ErrNoSuiteScope)
}

func TestLibraryListeners_RegisterAndUnregister(t *testing.T) {
	log := tt.NewCallLog()
	lib1 := tt.NewMockLibrary("Lib1", tt.NewRecordingListener(log, "a", "start_test", "close"))
	lib2 := tt.NewMockLibrary("Lib2",
		tt.NewRecordingListener(log, "b", "start_test", "close"),
		tt.NewRecordingListener(log, "c", "start_test", "close"),
	)
	l := newLibraryListeners(t)
	data, result := tt.Test()

	l.NewSuiteScope()
	require.NoError(t, l.Register(lib2))
	require.NoError(t, l.Register(lib1))
	require.NoError(t, l.StartTest(data, result))
	tt.AssertNames(t, log, "b.start_test", "c.start_test", "a.start_test")
	assert.Equal(t, 3, l.Len())

	log.Reset()
	require.NoError(t, l.Unregister(lib2, true))
	require.NoError(t, l.StartTest(data, result))
	tt.AssertNames(t, log, "b.close", "c.close", "a.start_test")
	assert.Same(t, lib1, l.Facades()[0].Library())

	log.Reset()
	require.NoError(t, l.Unregister(lib1, false))
	require.NoError(t, l.StartTest(data, result))
	tt.AssertNames(t, log)
	assert.True(t, l.Empty())
}

func TestLibraryListeners_Unregister_KeepsOrderOfOthers(t *testing.T) {
	log := tt.NewCallLog()
	lib1 := tt.NewMockLibrary("Lib1", tt.NewRecordingListener(log, "a", "end_test"))
	lib2 := tt.NewMockLibrary("Lib2", tt.NewRecordingListener(log, "b", "end_test"))
	lib3 := tt.NewMockLibrary("Lib3", tt.NewRecordingListener(log, "c", "end_test"))
	l := newLibraryListeners(t)
	data, result := tt.Test()

	l.NewSuiteScope()
	require.NoError(t, l.Register(lib1))
	require.NoError(t, l.Register(lib2))
	require.NoError(t, l.Register(lib3))
	require.NoError(t, l.Unregister(lib2, false))
	require.NoError(t, l.EndTest(data, result))

	tt.AssertNames(t, log, "a.end_test", "c.end_test")
}

func TestLibraryListeners_DiscardScope_RemovesAll(t *testing.T) {
	log := tt.NewCallLog()
	lib1 := tt.NewMockLibrary("Lib1", tt.NewRecordingListener(log, "a", "start_test", "close"))
	lib2 := tt.NewMockLibrary("Lib2", tt.NewRecordingListener(log, "b", "start_test", "close"))
	l := newLibraryListeners(t)
	data, result := tt.Test()

	l.NewSuiteScope()
	require.NoError(t, l.Register(lib1))
	require.NoError(t, l.Register(lib2))
	require.NoError(t, l.Unregister(lib1, false))
	require.NoError(t, l.DiscardSuiteScope())
	require.NoError(t, l.StartTest(data, result))

	assert.Equal(t, 0, l.Depth())
	tt.AssertNames(t, log)
}

func TestLibraryListeners_NestedScopes(t *testing.T) {
	log := tt.NewCallLog()
	outer := tt.NewMockLibrary("Outer", tt.NewRecordingListener(log, "outer", "start_test"))
	inner := tt.NewMockLibrary("Inner", tt.NewRecordingListener(log, "inner", "start_test"))
	l := newLibraryListeners(t)
	data, result := tt.Test()

	l.NewSuiteScope()
	require.NoError(t, l.Register(outer))
	l.NewSuiteScope()
	assert.Equal(t, 2, l.Depth())
	assert.True(t, l.Empty())

	require.NoError(t, l.StartTest(data, result))
	require.NoError(t, l.Register(inner))
	require.NoError(t, l.StartTest(data, result))
	require.NoError(t, l.DiscardSuiteScope())
	require.NoError(t, l.StartTest(data, result))

	tt.AssertNames(t, log, "inner.start_test", "outer.start_test")
}

func TestLibraryListeners_Register_FailureIsFatal(t *testing.T) {
	log := tt.NewCallLog()
	lib := tt.NewMockLibrary("Lib",
		tt.NewRecordingListener(log, "good", "start_test"),
		tt.NewRecordingListener(log, "Bad", "start_test").WithVersion(4),
	)
	l := newLibraryListeners(t)
	l.NewSuiteScope()

	err := l.Register(lib)

	var dataErr *listen.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "Taking listener 'Bad' into use failed: Unsupported API version '4'.", err.Error())
	assert.True(t, l.Empty())
}

func TestLibraryListeners_UnderscoreMethods(t *testing.T) {
	log := tt.NewCallLog()
	private := tt.NewRecordingListener(log, "private", "_start_test", "_endTest")
	both := tt.NewRecordingListener(log, "both", "start_test", "_start_test")
	lib := tt.NewMockLibrary("Lib", private, both)
	l := newLibraryListeners(t)
	data, result := tt.Test()

	l.NewSuiteScope()
	require.NoError(t, l.Register(lib))
	require.NoError(t, l.StartTest(data, result))
	require.NoError(t, l.EndTest(data, result))

	tt.AssertNames(t, log, "private._start_test", "both.start_test", "private._endTest")

	// Top-level listeners do not see underscore methods.
	log.Reset()
	top := newListeners(t, []any{private})
	require.NoError(t, top.StartTest(data, result))
	tt.AssertNames(t, log)
}

func TestLibraryListeners_Close_IsNoOp(t *testing.T) {
	log := tt.NewCallLog()
	lib := tt.NewMockLibrary("Lib", tt.NewRecordingListener(log, "a", "close"))
	l := newLibraryListeners(t)
	l.NewSuiteScope()
	require.NoError(t, l.Register(lib))

	require.NoError(t, l.Close())

	tt.AssertNames(t, log)
	assert.Equal(t, 1, l.Len())
}

func TestLibraryListeners_Unregister_CloseTimeout(t *testing.T) {
	log := tt.NewCallLog()
	timeout := &listen.TimeoutError{Message: "timeout"}
	lib := tt.NewMockLibrary("Lib", tt.NewRecordingListener(log, "a").Fail("close", timeout))
	l := newLibraryListeners(t)
	l.NewSuiteScope()
	require.NoError(t, l.Register(lib))

	err := l.Unregister(lib, true)

	assert.Same(t, timeout, err)
	assert.Equal(t, 1, l.Len())
}

// valueLibrary is a library implemented on a non-pointer type that cannot be
// compared with ==.
type valueLibrary struct {
	name    string
	sources []any
}

func (l valueLibrary) Name() string     { return l.name }
func (l valueLibrary) Listeners() []any { return l.sources }

func TestLibraryListeners_Register_RejectsNonPointer(t *testing.T) {
	log := tt.NewCallLog()
	lib := valueLibrary{name: "Lib", sources: []any{tt.NewRecordingListener(log, "a", "start_test")}}
	l := newLibraryListeners(t)
	l.NewSuiteScope()

	err := l.Register(lib)

	var dataErr *listen.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "Cannot register listeners of library bus.valueLibrary: libraries must be pointers.", err.Error())
	assert.True(t, l.Empty())
	assert.NotPanics(t, func() {
		assert.NoError(t, l.Unregister(lib, true))
	})
	tt.AssertNames(t, log)
}

func TestLibraryListeners_Unregister_ByIdentity(t *testing.T) {
	log := tt.NewCallLog()
	first := tt.NewMockLibrary("Twin", tt.NewRecordingListener(log, "first", "start_test", "close"))
	second := tt.NewMockLibrary("Twin", tt.NewRecordingListener(log, "second", "start_test", "close"))
	l := newLibraryListeners(t)
	data, result := tt.Test()
	l.NewSuiteScope()
	require.NoError(t, l.Register(first))
	require.NoError(t, l.Register(second))

	require.NoError(t, l.Unregister(tt.NewMockLibrary("Twin"), true))
	assert.Equal(t, 2, l.Len())

	require.NoError(t, l.Unregister(first, true))
	require.NoError(t, l.StartTest(data, result))

	tt.AssertNames(t, log, "first.close", "second.start_test")
	assert.Equal(t, 1, l.Len())
	assert.Same(t, second, l.Facades()[0].Library())
}
