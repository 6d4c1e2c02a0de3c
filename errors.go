package listen

import "errors"

// ErrNoSuiteScope is returned when library listeners are registered or
// unregistered while no suite scope is active.
var ErrNoSuiteScope = errors.New("no active suite scope")

// TimeoutError signals that a test or keyword timeout expired while listener
// code was running.
//
// A TimeoutError returned by a listener method is never swallowed: it travels
// unchanged through Method, the facade and the bus back to the caller so that
// timeout handling in the engine keeps working. Any other listener error is
// logged and discarded.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	return e.Message
}

// IsTimeout reports whether err is, or wraps, a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// DataError reports invalid configuration, such as an unsupported listener
// API version or a listener that could not be imported.
type DataError struct {
	Message string
	Err     error
}

func (e *DataError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *DataError) Unwrap() error {
	return e.Err
}
