package listen

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultAPIVersion is the listener API version used when a listener does not
// declare one.
const DefaultAPIVersion = 3

// Importer turns a listener name or path into a raw listener. args are the
// arguments given after the name, e.g. "listener.lua:arg1:arg2".
type Importer interface {
	Import(name string, args []string) (Listener, error)
}

// ImporterFunc adapts a function to the Importer interface.
type ImporterFunc func(name string, args []string) (Listener, error)

func (f ImporterFunc) Import(name string, args []string) (Listener, error) {
	return f(name, args)
}

// Import creates a facade for one listener source. The source is either a
// Listener or a string resolved with importer. library is nil for listeners
// not bound to a library.
func Import(source any, library Library, importer Importer) (Facade, error) {
	var (
		listener Listener
		name     string
	)
	switch s := source.(type) {
	case string:
		var args []string
		name, args = SplitArgs(s)
		if importer == nil {
			return nil, &DataError{Message: fmt.Sprintf("No importer available for listener '%s'.", name)}
		}
		l, err := importer.Import(name, args)
		if err != nil {
			return nil, err
		}
		if l == nil {
			return nil, &DataError{Message: fmt.Sprintf("Importing listener '%s' returned nothing.", name)}
		}
		listener = l
	case Listener:
		listener = s
		name = displayName(s)
	default:
		return nil, &DataError{Message: fmt.Sprintf("Listener must be a Listener or a string, got %s.", typeName(source))}
	}

	version, err := APIVersion(listener)
	if err != nil {
		return nil, err
	}
	if version == 2 {
		return newV2Facade(listener, name, library), nil
	}
	return newV3Facade(listener, name, library), nil
}

// ImportAll creates facades for the sources in order.
//
// Failures of top-level listeners (library == nil) are logged and the
// listener is skipped. For library listeners the first failure is returned
// and nothing is imported.
func ImportAll(sources []any, library Library, importer Importer) ([]Facade, error) {
	facades := make([]Facade, 0, len(sources))
	for _, source := range sources {
		f, err := Import(source, library, importer)
		if err == nil {
			facades = append(facades, f)
			continue
		}
		msg := fmt.Sprintf("Taking listener '%s' into use failed: %v", sourceName(source), err)
		if library != nil {
			return nil, &DataError{Message: msg, Err: err}
		}
		logger.Error().Str("listener", sourceName(source)).Msg(msg)
	}
	return facades, nil
}

// APIVersion returns the declared listener API version.
//
// Listeners not implementing Versioned, or returning nil, use
// DefaultAPIVersion. Integers, whole floats and numeric strings are accepted;
// anything else, and any value other than 2 or 3, is an error.
func APIVersion(l Listener) (int, error) {
	v, ok := l.(Versioned)
	if !ok {
		return DefaultAPIVersion, nil
	}
	raw := v.APIVersion()
	if raw == nil {
		return DefaultAPIVersion, nil
	}
	version, ok := toInt(raw)
	if !ok || (version != 2 && version != 3) {
		if ok {
			return 0, &DataError{Message: fmt.Sprintf("Unsupported API version '%d'.", version)}
		}
		return 0, &DataError{Message: fmt.Sprintf("Unsupported API version '%v'.", raw)}
	}
	return version, nil
}

// toInt coerces a declared version to an integer. Floats are truncated.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return toInt(float64(n))
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// SplitArgs splits a listener source into a name and arguments.
//
// Arguments follow the name separated by a colon or a semicolon, whichever
// comes first, and the same character separates the arguments from each
// other: "Listener:a:b" and "Listener;a;b" both give ("Listener", ["a", "b"]).
// The colon of a Windows drive such as "C:\path" is not a separator. Existing
// paths are returned as absolute paths.
func SplitArgs(source string) (name string, args []string) {
	if exists(source) {
		return absPath(source), nil
	}
	index := argSeparatorIndex(source)
	if index == -1 {
		return source, nil
	}
	sep := source[index : index+1]
	name = source[:index]
	args = strings.Split(source[index+1:], sep)
	if exists(name) {
		name = absPath(name)
	}
	return name, args
}

func argSeparatorIndex(source string) int {
	colon := strings.Index(source, ":")
	if colon == 1 && len(source) > 2 && (source[2] == '/' || source[2] == '\\') {
		colon = strings.Index(source[2:], ":")
		if colon != -1 {
			colon += 2
		}
	}
	semicolon := strings.Index(source, ";")
	switch {
	case colon == -1:
		return semicolon
	case semicolon == -1:
		return colon
	}
	return min(colon, semicolon)
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// displayName returns the declared listener name or the type name.
func displayName(l Listener) string {
	if n, ok := l.(Named); ok {
		if name := n.ListenerName(); name != "" {
			return name
		}
	}
	return typeName(l)
}

// sourceName names a listener source in import error messages.
func sourceName(source any) string {
	switch s := source.(type) {
	case string:
		return s
	case Listener:
		return displayName(s)
	}
	return typeName(source)
}
