package listen

// -----------------------------------------------------------------------------
// Static Items
// -----------------------------------------------------------------------------
//
// Static items describe what is being executed. They are produced by the
// execution engine and passed through to listeners untouched. Listeners must not
// modify them.

// SuiteData is the static description of a suite.
type SuiteData struct {
	// ID is the suite identifier, e.g. "s1-s2".
	ID string `yaml:"id"`

	// Name is the suite name.
	Name string `yaml:"name"`

	// Source is the path of the file or directory the suite was created from.
	Source string `yaml:"source"`

	// Tests are the tests directly in this suite.
	Tests []*TestData `yaml:"tests"`

	// Suites are the direct child suites.
	Suites []*SuiteData `yaml:"suites"`
}

// TestCount returns the number of tests in this suite and all of its children.
func (s *SuiteData) TestCount() int {
	if s == nil {
		return 0
	}
	count := len(s.Tests)
	for _, child := range s.Suites {
		count += child.TestCount()
	}
	return count
}

// TestData is the static description of a test.
type TestData struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Lineno   int    `yaml:"lineno"`
	Source   string `yaml:"source"`
	Template string `yaml:"template"`
}

// ItemData is the static description of a body item: a keyword call or a
// control structure such as FOR, WHILE, IF or TRY.
type ItemData struct {
	ID     string `yaml:"id"`
	Lineno int    `yaml:"lineno"`
	Source string `yaml:"source"`
}

// KeywordData is the static description of a keyword call.
type KeywordData struct {
	ItemData `yaml:",inline"`

	// Name is the keyword name as used in the data.
	Name string `yaml:"name"`

	// Args are the unresolved arguments.
	Args []string `yaml:"args"`

	// Assign are the variables the return value is assigned to.
	Assign []string `yaml:"assign"`
}

// Implementation types.
const (
	ImplementationUserKeyword    = "USER KEYWORD"
	ImplementationLibraryKeyword = "LIBRARY KEYWORD"
	ImplementationInvalidKeyword = "INVALID KEYWORD"
)

// Implementation is the resolved keyword definition a keyword call runs.
type Implementation struct {
	// Name is the keyword name in the definition.
	Name string `yaml:"name"`

	// Owner is the name of the library or resource file owning the keyword.
	Owner string `yaml:"owner"`

	// Type is one of ImplementationUserKeyword, ImplementationLibraryKeyword or
	// ImplementationInvalidKeyword.
	Type string `yaml:"type"`

	// Error is the reason an invalid keyword is invalid.
	Error string `yaml:"error"`
}

// Library is a library instance that may carry its own listeners.
//
// Library listeners are registered into the active suite scope of a
// LibraryListeners bus. The library value is used only for identity
// comparison when unregistering, so implementations must be pointer types.
type Library interface {
	// Name returns the library name.
	Name() string

	// Listeners returns the listener sources of the library. Each source is
	// a Listener or a string resolved by an Importer.
	Listeners() []any
}
