package listen

import (
	"time"

	"github.com/rs/zerolog"
)

// logger receives listener failures and import errors. Disabled by default.
var logger = zerolog.Nop()

// SetLogger installs the structured logger used for listener failures and
// import errors.
func SetLogger(l zerolog.Logger) { logger = l }

// Logger returns the installed logger.
func Logger() *zerolog.Logger { return &logger }

// Recorder observes guarded listener method calls. It is used for metrics.
type Recorder interface {
	// ObserveCall is called after a listener method returns. err is nil on
	// success, the timeout error on timeouts and the failure otherwise.
	ObserveCall(listener, method string, elapsed time.Duration, err error)

	// ObserveDropped is called when a call is dropped because another
	// listener method is already running.
	ObserveDropped(listener, method string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCall(string, string, time.Duration, error) {}
func (nopRecorder) ObserveDropped(string, string)                   {}

var recorder Recorder = nopRecorder{}

// SetRecorder installs the recorder for listener method calls. Passing nil
// restores the default no-op recorder.
func SetRecorder(r Recorder) {
	if r == nil {
		r = nopRecorder{}
	}
	recorder = r
}
