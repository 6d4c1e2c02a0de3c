// Package listen delivers test execution lifecycle events to listeners.
//
// A listener is any value with named methods such as start_suite or
// end_test. The engine never calls listeners directly. Each listener is
// wrapped in a [Facade] that exposes the full event surface, and facades are
// collected in the buses of package bus which fan events out in registration
// order.
//
// # Quick Start
//
//	printer := &listen.Object{
//	    Name: "Printer",
//	    Methods: map[string]listen.Func{
//	        "end_test": func(args ...any) error {
//	            result := args[1].(*listen.TestResult)
//	            fmt.Println(result.Name, result.Status)
//	            return nil
//	        },
//	    },
//	}
//
//	listeners, err := bus.New([]any{printer})
//	if err != nil {
//	    return err
//	}
//	listeners.StartTest(data, result)
//	listeners.EndTest(data, result)
//
// # Listener API versions
//
// Listeners declare the API version they use by implementing [Versioned].
//
//   - Version 3 (default): methods receive the model objects as they are, for
//     example (*SuiteData, *SuiteResult). Keyword implementations can be
//     observed separately with start_user_keyword, start_library_keyword and
//     start_invalid_keyword. If those are missing, start_keyword is called.
//   - Version 2: methods receive a name and a map of attributes. Keywords and
//     all control structures are reported with start_keyword and end_keyword.
//     Imports are reported with library_import, resource_import and
//     variables_import.
//
// Any other version is rejected when the listener is imported.
//
// # Method names
//
// Methods are looked up by their snake_case name first and then by the
// camelCase spelling, so both end_test and endTest work. Listeners owned by a
// library may additionally prefix names with an underscore, e.g. _end_test.
//
// # Failures
//
// Errors returned or panics raised by listener methods are logged with the
// logger set by [SetLogger] and otherwise ignored. The only exception is
// [TimeoutError], which is returned to the caller unchanged so that test and
// keyword timeouts keep working.
//
// While a listener method runs, all other listener calls in the process are
// dropped. A listener that runs keywords does not get notified about them.
//
// # Metrics
//
// Guarded calls report to a [Recorder]. Package metrics provides a Prometheus
// implementation:
//
//	collector := metrics.NewCollector("listen")
//	collector.MustRegister(prometheus.DefaultRegisterer)
//	listen.SetRecorder(collector)
//
// # Scripted listeners
//
// Package lua loads listeners written in Lua. Use lua.Importer to resolve
// string listener sources such as "printer.lua:verbose":
//
//	listeners, err := bus.New(
//	    []any{"printer.lua:verbose"},
//	    bus.WithImporter(lua.NewImporter()),
//	)
package listen
