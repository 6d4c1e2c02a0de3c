package listen

import "strings"

// Log levels from the least to the most severe. LevelNone disables all
// messages when used as the threshold.
const (
	LevelTrace = "TRACE"
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFail  = "FAIL"
	LevelSkip  = "SKIP"
	LevelNone  = "NONE"

	// LevelHTML is a message level meaning INFO with HTML content.
	LevelHTML = "HTML"
)

var levelSeverity = map[string]int{
	LevelTrace: 0,
	LevelDebug: 1,
	LevelInfo:  2,
	LevelHTML:  2,
	LevelWarn:  3,
	LevelError: 4,
	LevelFail:  5,
	LevelSkip:  6,
	LevelNone:  7,
}

// LevelFilter decides whether messages of a given level are logged.
//
// LevelFilter is NOT thread-safe.
type LevelFilter struct {
	level     string
	threshold int
}

// NewLevelFilter creates a filter with the given threshold level.
func NewLevelFilter(level string) (*LevelFilter, error) {
	f := &LevelFilter{}
	if _, err := f.SetLevel(level); err != nil {
		return nil, err
	}
	return f, nil
}

// SetLevel changes the threshold and returns the previous level.
// Level names are case-insensitive.
func (f *LevelFilter) SetLevel(level string) (string, error) {
	upper := strings.ToUpper(level)
	severity, ok := levelSeverity[upper]
	if !ok || upper == LevelHTML {
		return f.level, &DataError{Message: "Invalid log level '" + level + "'."}
	}
	old := f.level
	f.level = upper
	f.threshold = severity
	return old, nil
}

// Level returns the current threshold level.
func (f *LevelFilter) Level() string {
	return f.level
}

// IsLogged reports whether a message with the given level passes the filter.
// Unknown levels are never logged.
func (f *LevelFilter) IsLogged(level string) bool {
	severity, ok := levelSeverity[strings.ToUpper(level)]
	return ok && severity >= f.threshold
}
