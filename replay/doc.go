// Package replay feeds recorded listener events to the listener buses.
//
// An event stream is a YAML sequence of steps. Each step names a listener
// event and carries its objects, using the YAML field names of the listen
// model types:
//
//	- event: start_suite
//	  data: {id: s1, name: Checkout}
//	  result: {name: Checkout, full_name: Checkout}
//	- event: register
//	  library: Browser
//	  listeners: [listeners/screenshots.lua]
//	- event: end_test
//	  data: {id: s1-t1, name: Pay}
//	  result: {name: Pay, status: FAIL, message: Card declined}
//	- event: end_suite
//	  data: {id: s1, name: Checkout}
//	  result: {name: Checkout, status: FAIL}
//
// Besides the listener events, set_log_level, register and unregister steps
// change the buses. A Trace listener records what a version 2 listener
// receives, and Diff compares a trace with a golden file:
//
//	trace := replay.NewTrace(nil)
//	listeners, _ := bus.New([]any{trace})
//	r := replay.New(listeners, nil)
//	if err := r.Play(ctx, steps); err != nil {
//	    return err
//	}
//	diff, _ := replay.Diff(golden, trace.String())
package replay
