package listen

import (
	"fmt"
	"strings"
	"time"
)

// Version 2 listeners receive attribute maps instead of rich objects. Each
// event family has a fixed schema defined below as a table of keys and value
// functions. Values are always strings, numbers, string slices or string
// keyed maps.

// legacyTimeLayout is the timestamp format of the version 2 API, e.g.
// "20240315 14:02:11.123".
const legacyTimeLayout = "20060102 15:04:05.000"

// attr is one key in an attribute schema. when, if set, decides whether the
// key is included.
type attr[D, R any] struct {
	key   string
	value func(data D, result R) any
	when  func(result R) bool
}

// collect adds the schema keys to attrs.
func collect[D, R any](attrs map[string]any, data D, result R, schema []attr[D, R]) map[string]any {
	for _, a := range schema {
		if a.when != nil && !a.when(result) {
			continue
		}
		attrs[a.key] = a.value(data, result)
	}
	return attrs
}

// -----------------------------------------------------------------------------
// Suite
// -----------------------------------------------------------------------------

var suiteAttrs = []attr[*SuiteData, *SuiteResult]{
	{key: "id", value: func(d *SuiteData, _ *SuiteResult) any { return d.ID }},
	{key: "doc", value: func(_ *SuiteData, r *SuiteResult) any { return r.Doc }},
	{key: "metadata", value: func(_ *SuiteData, r *SuiteResult) any { return metadata(r.Metadata) }},
	{key: "starttime", value: func(_ *SuiteData, r *SuiteResult) any { return legacyTime(r.StartTime) }},
	{key: "longname", value: func(_ *SuiteData, r *SuiteResult) any { return r.FullName }},
	{key: "tests", value: func(d *SuiteData, _ *SuiteResult) any { return testNames(d.Tests) }},
	{key: "suites", value: func(d *SuiteData, _ *SuiteResult) any { return suiteNames(d.Suites) }},
	{key: "totaltests", value: func(d *SuiteData, _ *SuiteResult) any { return d.TestCount() }},
	{key: "source", value: func(d *SuiteData, _ *SuiteResult) any { return d.Source }},
}

var suiteEndAttrs = []attr[*SuiteData, *SuiteResult]{
	{key: "endtime", value: func(_ *SuiteData, r *SuiteResult) any { return legacyTime(r.EndTime) }},
	{key: "elapsedtime", value: func(_ *SuiteData, r *SuiteResult) any { return elapsed(r.Timing) }},
	{key: "status", value: func(_ *SuiteData, r *SuiteResult) any { return r.Status }},
	{key: "message", value: func(_ *SuiteData, r *SuiteResult) any { return r.Message }},
	{key: "statistics", value: func(_ *SuiteData, r *SuiteResult) any { return r.Statistics.Message() }},
}

// SuiteAttributes returns the version 2 attributes of a suite. End-only keys
// are included when end is true.
func SuiteAttributes(data *SuiteData, result *SuiteResult, end bool) map[string]any {
	attrs := collect(make(map[string]any, 14), data, result, suiteAttrs)
	if end {
		collect(attrs, data, result, suiteEndAttrs)
	}
	return attrs
}

// -----------------------------------------------------------------------------
// Test
// -----------------------------------------------------------------------------

var testAttrs = []attr[*TestData, *TestResult]{
	{key: "id", value: func(d *TestData, _ *TestResult) any { return d.ID }},
	{key: "doc", value: func(_ *TestData, r *TestResult) any { return r.Doc }},
	{key: "tags", value: func(_ *TestData, r *TestResult) any { return list(r.Tags) }},
	{key: "lineno", value: func(d *TestData, _ *TestResult) any { return d.Lineno }},
	{key: "starttime", value: func(_ *TestData, r *TestResult) any { return legacyTime(r.StartTime) }},
	{key: "longname", value: func(_ *TestData, r *TestResult) any { return r.FullName }},
	{key: "source", value: func(d *TestData, _ *TestResult) any { return d.Source }},
	{key: "template", value: func(d *TestData, _ *TestResult) any { return d.Template }},
	{key: "originalname", value: func(d *TestData, _ *TestResult) any { return d.Name }},
}

var testEndAttrs = []attr[*TestData, *TestResult]{
	{key: "endtime", value: func(_ *TestData, r *TestResult) any { return legacyTime(r.EndTime) }},
	{key: "elapsedtime", value: func(_ *TestData, r *TestResult) any { return elapsed(r.Timing) }},
	{key: "status", value: func(_ *TestData, r *TestResult) any { return r.Status }},
	{key: "message", value: func(_ *TestData, r *TestResult) any { return r.Message }},
}

// TestAttributes returns the version 2 attributes of a test.
func TestAttributes(data *TestData, result *TestResult, end bool) map[string]any {
	attrs := collect(make(map[string]any, 13), data, result, testAttrs)
	if end {
		collect(attrs, data, result, testEndAttrs)
	}
	return attrs
}

// -----------------------------------------------------------------------------
// Keyword
// -----------------------------------------------------------------------------

var keywordAttrs = []attr[*KeywordData, *KeywordResult]{
	{key: "doc", value: func(_ *KeywordData, r *KeywordResult) any { return r.Doc }},
	{key: "lineno", value: func(d *KeywordData, _ *KeywordResult) any { return d.Lineno }},
	{key: "type", value: func(_ *KeywordData, r *KeywordResult) any { return r.Type }},
	{key: "status", value: func(_ *KeywordData, r *KeywordResult) any { return r.Status }},
	{key: "starttime", value: func(_ *KeywordData, r *KeywordResult) any { return legacyTime(r.StartTime) }},
	{key: "source", value: func(d *KeywordData, _ *KeywordResult) any { return d.Source }},
	{key: "kwname", value: func(_ *KeywordData, r *KeywordResult) any { return r.Name }},
	{key: "libname", value: func(_ *KeywordData, r *KeywordResult) any { return r.Owner }},
	{key: "args", value: func(_ *KeywordData, r *KeywordResult) any { return displayArgs(r.Args) }},
	{key: "assign", value: func(_ *KeywordData, r *KeywordResult) any { return list(r.Assign) }},
	{key: "tags", value: func(_ *KeywordData, r *KeywordResult) any { return list(r.Tags) }},
}

var keywordEndAttrs = []attr[*KeywordData, *KeywordResult]{
	{key: "endtime", value: func(_ *KeywordData, r *KeywordResult) any { return legacyTime(r.EndTime) }},
	{key: "elapsedtime", value: func(_ *KeywordData, r *KeywordResult) any { return elapsed(r.Timing) }},
}

// KeywordAttributes returns the version 2 attributes of a keyword.
func KeywordAttributes(data *KeywordData, result *KeywordResult, end bool) map[string]any {
	attrs := collect(make(map[string]any, 13), data, result, keywordAttrs)
	if end {
		collect(attrs, data, result, keywordEndAttrs)
	}
	return attrs
}

// -----------------------------------------------------------------------------
// Control Structures
// -----------------------------------------------------------------------------

// Control structures are reported to version 2 listeners as keywords with
// empty doc, libname, args, assign and tags, plus keys specific to the
// structure.

var bodyAttrs = []attr[*ItemData, BodyItemResult]{
	{key: "doc", value: func(*ItemData, BodyItemResult) any { return "" }},
	{key: "lineno", value: func(d *ItemData, _ BodyItemResult) any { return d.Lineno }},
	{key: "type", value: func(_ *ItemData, r BodyItemResult) any { return r.Body().Type }},
	{key: "status", value: func(_ *ItemData, r BodyItemResult) any { return r.Body().Status }},
	{key: "starttime", value: func(_ *ItemData, r BodyItemResult) any { return legacyTime(r.Body().StartTime) }},
	{key: "source", value: func(d *ItemData, _ BodyItemResult) any { return d.Source }},
	{key: "kwname", value: func(_ *ItemData, r BodyItemResult) any { return r.LogName() }},
	{key: "libname", value: func(*ItemData, BodyItemResult) any { return "" }},
	{key: "args", value: func(*ItemData, BodyItemResult) any { return []string{} }},
	{key: "assign", value: func(*ItemData, BodyItemResult) any { return []string{} }},
	{key: "tags", value: func(*ItemData, BodyItemResult) any { return []string{} }},
}

var bodyEndAttrs = []attr[*ItemData, BodyItemResult]{
	{key: "endtime", value: func(_ *ItemData, r BodyItemResult) any { return legacyTime(r.Body().EndTime) }},
	{key: "elapsedtime", value: func(_ *ItemData, r BodyItemResult) any { return elapsed(r.Body().Timing) }},
}

var forAttrs = []attr[*ItemData, *ForResult]{
	{key: "variables", value: func(_ *ItemData, r *ForResult) any { return list(r.Assign) }},
	{key: "flavor", value: func(_ *ItemData, r *ForResult) any { return r.Flavor }},
	{key: "values", value: func(_ *ItemData, r *ForResult) any { return list(r.Values) }},
	{key: "start", value: func(_ *ItemData, r *ForResult) any { return r.Start }, when: isFlavor(FlavorInEnumerate)},
	{key: "fill", value: func(_ *ItemData, r *ForResult) any { return r.Fill }, when: isFlavor(FlavorInZip)},
	{key: "mode", value: func(_ *ItemData, r *ForResult) any { return r.Mode }, when: isFlavor(FlavorInZip)},
}

var forIterationAttrs = []attr[*ItemData, *ForIterationResult]{
	{key: "variables", value: func(_ *ItemData, r *ForIterationResult) any { return assignments(r.Assign) }},
}

var whileAttrs = []attr[*ItemData, *WhileResult]{
	{key: "condition", value: func(_ *ItemData, r *WhileResult) any { return r.Condition }},
	{key: "limit", value: func(_ *ItemData, r *WhileResult) any { return r.Limit }},
	{key: "on_limit", value: func(_ *ItemData, r *WhileResult) any { return r.OnLimit }},
	{key: "on_limit_message", value: func(_ *ItemData, r *WhileResult) any { return r.OnLimitMessage }},
}

var ifBranchAttrs = []attr[*ItemData, *IfBranchResult]{
	{
		key:   "condition",
		value: func(_ *ItemData, r *IfBranchResult) any { return r.Condition },
		when:  func(r *IfBranchResult) bool { return r.Type != TypeElse },
	},
}

var tryBranchAttrs = []attr[*ItemData, *TryBranchResult]{
	{key: "patterns", value: func(_ *ItemData, r *TryBranchResult) any { return list(r.Patterns) }, when: isExcept},
	{key: "pattern_type", value: func(_ *ItemData, r *TryBranchResult) any { return r.PatternType }, when: isExcept},
	{key: "variable", value: func(_ *ItemData, r *TryBranchResult) any { return r.Assign }, when: isExcept},
}

var returnAttrs = []attr[*ItemData, *ReturnResult]{
	{key: "values", value: func(_ *ItemData, r *ReturnResult) any { return list(r.Values) }},
}

var varAttrs = []attr[*ItemData, *VarResult]{
	{key: "name", value: func(_ *ItemData, r *VarResult) any { return r.Name }},
	{key: "value", value: func(_ *ItemData, r *VarResult) any { return varValue(r) }},
	{key: "scope", value: func(_ *ItemData, r *VarResult) any { return defaultString(r.Scope, "LOCAL") }},
}

// bodyItemAttributes returns the version 2 attributes of a control structure
// with the structure specific keys from extra.
func bodyItemAttributes[R BodyItemResult](data *ItemData, result R, end bool, extra []attr[*ItemData, R]) map[string]any {
	attrs := collect(make(map[string]any, 16), data, BodyItemResult(result), bodyAttrs)
	collect(attrs, data, result, extra)
	if end {
		collect(attrs, data, BodyItemResult(result), bodyEndAttrs)
	}
	return attrs
}

// -----------------------------------------------------------------------------
// Messages
// -----------------------------------------------------------------------------

// MessageAttributes returns the version 2 attributes of a message.
func MessageAttributes(msg *Message) map[string]any {
	html := "no"
	if msg.HTML {
		html = "yes"
	}
	return map[string]any{
		"timestamp": legacyTime(msg.Timestamp),
		"message":   msg.Message,
		"level":     msg.Level,
		"html":      html,
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// legacyTime formats t in the version 2 format, or returns nil if t is unset.
func legacyTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(legacyTimeLayout)
}

// elapsed returns elapsed time in milliseconds.
func elapsed(t Timing) int64 {
	return t.Elapsed().Milliseconds()
}

// list copies s so listeners never share slices with results, and so an
// unset slice is reported as an empty list.
func list(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}

func metadata(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func testNames(tests []*TestData) []string {
	names := make([]string, len(tests))
	for i, t := range tests {
		names[i] = t.Name
	}
	return names
}

func suiteNames(suites []*SuiteData) []string {
	names := make([]string, len(suites))
	for i, s := range suites {
		names[i] = s.Name
	}
	return names
}

// displayArgs converts arguments to strings. Arguments that already are
// strings are passed as is.
func displayArgs(args []any) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			out[i] = s
		} else {
			out[i] = fmt.Sprint(a)
		}
	}
	return out
}

func assignments(assign []Assignment) map[string]string {
	out := make(map[string]string, len(assign))
	for _, a := range assign {
		out[a.Name] = a.Value
	}
	return out
}

// varValue joins scalar values with the separator; list and dict variables
// keep their items.
func varValue(r *VarResult) any {
	if strings.HasPrefix(r.Name, "$") {
		return strings.Join(r.Value, defaultString(r.Separator, " "))
	}
	return list(r.Value)
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func isFlavor(flavor string) func(*ForResult) bool {
	return func(r *ForResult) bool { return r.Flavor == flavor }
}

func isExcept(r *TryBranchResult) bool {
	return r.Type == TypeExcept
}
