package listen

import "strings"

// resolve finds the method implementing the event name on a raw listener.
//
// Candidates are tried in order and the first one found wins:
//
//  1. the name itself, e.g. "start_suite"
//  2. its camelCase spelling if it has underscores, e.g. "startSuite"
//  3. for library listeners only, the above prefixed with an underscore,
//     e.g. "_start_suite" and "_startSuite"
//
// If nothing matches, the returned Method does not exist and calling it is a
// no-op.
func resolve(l Listener, name, listener string, scoped bool) Method {
	for _, candidate := range methodNames(name, scoped) {
		if fn, ok := l.Method(candidate); ok {
			return NewMethod(fn, candidate, listener)
		}
	}
	return NewMethod(nil, "", listener)
}

// methodNames returns the candidate names for name in resolution order.
func methodNames(name string, scoped bool) []string {
	names := []string{name}
	if strings.Contains(name, "_") {
		names = append(names, camelCase(name))
	}
	if scoped {
		public := names
		for _, n := range public {
			names = append(names, "_"+n)
		}
	}
	return names
}

// camelCase converts snake_case to camelCase: "end_for_iteration" becomes
// "endForIteration".
func camelCase(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}
