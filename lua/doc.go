// Package lua runs listeners written in Lua.
//
// Scripts run in a sandboxed gopher-lua state with the base, table, string
// and math libraries. Two functions are added:
//   - print writes to the listen logger at info level
//   - raise_timeout(message) fails the running listener method with a
//     listen.TimeoutError, the same way an expired test timeout would
//
// # Loading
//
//	l, err := lua.Load("listeners/trace.lua", []string{"verbose"},
//	    lua.WithTimeout(time.Second),
//	)
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
//
// Listeners given as strings to the buses in package bus are loaded with an
// Importer:
//
//	importer := lua.NewImporter(lua.WithTimeout(time.Second))
//	defer importer.Close()
//	listeners, err := bus.New([]any{"listeners/trace.lua:verbose"}, bus.WithImporter(importer))
//
// # Arguments
//
// Version 2 methods receive plain strings, numbers and tables. Version 3
// methods receive model objects converted to tables. Field names follow the
// YAML names of the Go types, for example result.status, result.start_time
// or data.lineno. Times are strings in TimeLayout format or nil when unset.
package lua
