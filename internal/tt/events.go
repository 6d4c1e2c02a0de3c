// Package tt provides test helpers shared by the listen packages.
package tt

import (
	"time"

	"github.com/rickchristie/listen"
)

// -----------------------------------------------------------------------------
// Fixed times
// -----------------------------------------------------------------------------

// Start is the start time used by the fixtures.
var Start = time.Date(2024, 3, 15, 14, 2, 11, 123_000_000, time.UTC)

// End is Start plus 1.5 seconds.
var End = Start.Add(1500 * time.Millisecond)

// Timing returns a Timing from Start to End.
func Timing() listen.Timing {
	return listen.Timing{StartTime: Start, EndTime: End}
}

// -----------------------------------------------------------------------------
// Suite and test fixtures
// -----------------------------------------------------------------------------

// Suite returns a suite with two tests and one child suite with one test.
func Suite() (*listen.SuiteData, *listen.SuiteResult) {
	data := &listen.SuiteData{
		ID:     "s1",
		Name:   "Root",
		Source: "/tests/root",
		Tests: []*listen.TestData{
			{ID: "s1-t1", Name: "First", Lineno: 3},
			{ID: "s1-t2", Name: "Second", Lineno: 7},
		},
		Suites: []*listen.SuiteData{
			{
				ID:    "s1-s1",
				Name:  "Child",
				Tests: []*listen.TestData{{ID: "s1-s1-t1", Name: "Third", Lineno: 2}},
			},
		},
	}
	result := &listen.SuiteResult{
		Timing:     listen.Timing{StartTime: Start},
		Name:       "Root",
		FullName:   "Root",
		Doc:        "Root suite.",
		Metadata:   map[string]string{"Owner": "QA"},
		Status:     listen.StatusPass,
		Statistics: listen.Statistics{Passed: 3},
	}
	return data, result
}

// Test returns a test with tags.
func Test() (*listen.TestData, *listen.TestResult) {
	data := &listen.TestData{
		ID:     "s1-t1",
		Name:   "First",
		Lineno: 3,
		Source: "/tests/root/first.robot",
	}
	result := &listen.TestResult{
		Timing:   listen.Timing{StartTime: Start},
		Name:     "First",
		FullName: "Root.First",
		Tags:     []string{"smoke"},
		Status:   listen.StatusPass,
	}
	return data, result
}

// Keyword returns a library keyword call.
func Keyword() (*listen.KeywordData, *listen.Implementation, *listen.KeywordResult) {
	data := &listen.KeywordData{
		ItemData: listen.ItemData{ID: "s1-t1-k1", Lineno: 4, Source: "/tests/root/first.robot"},
		Name:     "Log",
		Args:     []string{"Hello", "level=INFO"},
	}
	implementation := &listen.Implementation{
		Name:  "Log",
		Owner: "BuiltIn",
		Type:  listen.ImplementationLibraryKeyword,
	}
	result := &listen.KeywordResult{
		Timing: listen.Timing{StartTime: Start},
		Name:   "Log",
		Owner:  "BuiltIn",
		Type:   listen.TypeKeyword,
		Status: listen.StatusNotSet,
		Args:   []any{"Hello", "level=INFO"},
	}
	return data, implementation, result
}

// Item returns static data for a control structure.
func Item() *listen.ItemData {
	return &listen.ItemData{ID: "s1-t1-k2", Lineno: 5, Source: "/tests/root/first.robot"}
}

// ForIteration returns an iteration binding ${x} to 1 and ${y} to two.
func ForIteration() (*listen.ItemData, *listen.ForIterationResult) {
	result := &listen.ForIterationResult{
		BodyResult: listen.BodyResult{
			Timing: listen.Timing{StartTime: Start},
			Type:   listen.TypeIteration,
			Status: listen.StatusNotSet,
		},
		Assign: []listen.Assignment{
			{Name: "${x}", Value: "1"},
			{Name: "${y}", Value: "two"},
		},
	}
	return Item(), result
}

// LogMessage returns an INFO message.
func LogMessage(text string) *listen.Message {
	return &listen.Message{Timestamp: Start, Message: text, Level: listen.LevelInfo}
}
