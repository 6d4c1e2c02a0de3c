package tt

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertKeys asserts that attrs has exactly the given keys.
func AssertKeys(t *testing.T, attrs map[string]any, keys ...string) {
	t.Helper()
	got := slices.Sorted(maps.Keys(attrs))
	want := slices.Sorted(slices.Values(keys))
	assert.Equal(t, want, got, "attribute keys")
}

// AssertMethods asserts the method names recorded in log, in order.
func AssertMethods(t *testing.T, log *CallLog, methods ...string) {
	t.Helper()
	if len(methods) == 0 {
		assert.Empty(t, log.Methods(), "expected no calls")
		return
	}
	assert.Equal(t, methods, log.Methods())
}

// AssertNames asserts the "listener.method" names recorded in log, in order.
func AssertNames(t *testing.T, log *CallLog, names ...string) {
	t.Helper()
	if len(names) == 0 {
		assert.Empty(t, log.Names(), "expected no calls")
		return
	}
	assert.Equal(t, names, log.Names())
}

// Attrs returns the attribute map passed as the last argument of a call.
func Attrs(t *testing.T, c Call) map[string]any {
	t.Helper()
	if len(c.Args) == 0 {
		t.Fatalf("call %s has no arguments", c.Method)
	}
	attrs, ok := c.Args[len(c.Args)-1].(map[string]any)
	if !ok {
		t.Fatalf("last argument of %s is %T, not an attribute map", c.Method, c.Args[len(c.Args)-1])
	}
	return attrs
}
