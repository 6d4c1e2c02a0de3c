package listen

import (
	"fmt"
	"strings"
	"time"
)

// Statuses.
const (
	StatusPass   = "PASS"
	StatusFail   = "FAIL"
	StatusSkip   = "SKIP"
	StatusNotRun = "NOT RUN"
	StatusNotSet = "NOT SET"
)

// Body item types, as reported to listeners in the "type" attribute.
const (
	TypeKeyword       = "KEYWORD"
	TypeSetup         = "SETUP"
	TypeTeardown      = "TEARDOWN"
	TypeFor           = "FOR"
	TypeIteration     = "ITERATION"
	TypeWhile         = "WHILE"
	TypeIfElseRoot    = "IF/ELSE ROOT"
	TypeIf            = "IF"
	TypeElseIf        = "ELSE IF"
	TypeElse          = "ELSE"
	TypeTryExceptRoot = "TRY/EXCEPT ROOT"
	TypeTry           = "TRY"
	TypeExcept        = "EXCEPT"
	TypeFinally       = "FINALLY"
	TypeVar           = "VAR"
	TypeReturn        = "RETURN"
	TypeBreak         = "BREAK"
	TypeContinue      = "CONTINUE"
	TypeError         = "ERROR"
)

// FOR loop flavors.
const (
	FlavorIn          = "IN"
	FlavorInRange     = "IN RANGE"
	FlavorInEnumerate = "IN ENUMERATE"
	FlavorInZip       = "IN ZIP"
)

// logNameSeparator separates parts of control structure names in logs.
const logNameSeparator = "    "

// Timing holds start and end times of an executed item. Zero values mean the
// time is not known yet.
type Timing struct {
	StartTime time.Time `yaml:"start_time"`
	EndTime   time.Time `yaml:"end_time"`
}

// Elapsed returns the time between start and end, or zero if either is unset.
func (t Timing) Elapsed() time.Duration {
	if t.StartTime.IsZero() || t.EndTime.IsZero() {
		return 0
	}
	return t.EndTime.Sub(t.StartTime)
}

// -----------------------------------------------------------------------------
// Suite and Test Results
// -----------------------------------------------------------------------------

// Statistics summarizes test statuses in a suite.
type Statistics struct {
	Passed  int `yaml:"passed"`
	Failed  int `yaml:"failed"`
	Skipped int `yaml:"skipped"`
}

// Total returns the number of tests counted.
func (s Statistics) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// Message returns the statistics in human readable form, for example
// "3 tests, 2 passed, 1 failed".
func (s Statistics) Message() string {
	total := s.Total()
	plural := "s"
	if total == 1 {
		plural = ""
	}
	msg := fmt.Sprintf("%d test%s, %d passed, %d failed", total, plural, s.Passed, s.Failed)
	if s.Skipped > 0 {
		msg += fmt.Sprintf(", %d skipped", s.Skipped)
	}
	return msg
}

// SuiteResult is the live result of a suite.
type SuiteResult struct {
	Timing     `yaml:",inline"`
	Name       string            `yaml:"name"`
	FullName   string            `yaml:"full_name"`
	Doc        string            `yaml:"doc"`
	Metadata   map[string]string `yaml:"metadata"`
	Status     string            `yaml:"status"`
	Message    string            `yaml:"message"`
	Statistics Statistics        `yaml:"statistics"`
}

// TestResult is the live result of a test.
type TestResult struct {
	Timing   `yaml:",inline"`
	Name     string   `yaml:"name"`
	FullName string   `yaml:"full_name"`
	Doc      string   `yaml:"doc"`
	Tags     []string `yaml:"tags"`
	Status   string   `yaml:"status"`
	Message  string   `yaml:"message"`
}

// -----------------------------------------------------------------------------
// Keyword Result
// -----------------------------------------------------------------------------

// KeywordResult is the live result of a keyword call.
type KeywordResult struct {
	Timing  `yaml:",inline"`
	Name    string   `yaml:"name"`
	Owner   string   `yaml:"owner"`
	Doc     string   `yaml:"doc"`
	Type    string   `yaml:"type"`
	Status  string   `yaml:"status"`
	Message string   `yaml:"message"`
	Args    []any    `yaml:"args"`
	Assign  []string `yaml:"assign"`
	Tags    []string `yaml:"tags"`
}

// FullName returns the keyword name prefixed with its owner, if any.
func (r *KeywordResult) FullName() string {
	if r.Owner == "" {
		return r.Name
	}
	return r.Owner + "." + r.Name
}

// -----------------------------------------------------------------------------
// Control Structure Results
// -----------------------------------------------------------------------------

// BodyResult holds the fields shared by all control structure results.
type BodyResult struct {
	Timing  `yaml:",inline"`
	Type    string `yaml:"type"`
	Status  string `yaml:"status"`
	Message string `yaml:"message"`
}

// Body returns the shared fields.
func (r *BodyResult) Body() *BodyResult {
	return r
}

// BodyItemResult is implemented by all control structure results.
type BodyItemResult interface {
	// Body returns the fields shared by all control structures.
	Body() *BodyResult

	// LogName returns the name of the item used in logs and in legacy listener
	// notifications.
	LogName() string
}

// ForResult is the result of a FOR loop.
type ForResult struct {
	BodyResult `yaml:",inline"`
	Assign     []string `yaml:"assign"`
	Flavor     string   `yaml:"flavor"`
	Values     []string `yaml:"values"`
	Start      string   `yaml:"start"`
	Mode       string   `yaml:"mode"`
	Fill       string   `yaml:"fill"`
}

func (r *ForResult) LogName() string {
	parts := append([]string{}, r.Assign...)
	parts = append(parts, r.Flavor)
	parts = append(parts, r.Values...)
	if r.Start != "" {
		parts = append(parts, "start="+r.Start)
	}
	if r.Mode != "" {
		parts = append(parts, "mode="+r.Mode)
	}
	if r.Fill != "" {
		parts = append(parts, "fill="+r.Fill)
	}
	return strings.Join(parts, logNameSeparator)
}

// Assignment is one loop variable and its value in a FOR iteration.
type Assignment struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// ForIterationResult is the result of one FOR loop iteration.
type ForIterationResult struct {
	BodyResult `yaml:",inline"`
	Assign     []Assignment `yaml:"assign"`
}

func (r *ForIterationResult) LogName() string {
	parts := make([]string, len(r.Assign))
	for i, a := range r.Assign {
		parts[i] = a.Name + " = " + a.Value
	}
	return strings.Join(parts, ", ")
}

// WhileResult is the result of a WHILE loop.
type WhileResult struct {
	BodyResult     `yaml:",inline"`
	Condition      string `yaml:"condition"`
	Limit          string `yaml:"limit"`
	OnLimit        string `yaml:"on_limit"`
	OnLimitMessage string `yaml:"on_limit_message"`
}

func (r *WhileResult) LogName() string {
	var parts []string
	if r.Condition != "" {
		parts = append(parts, r.Condition)
	}
	if r.Limit != "" {
		parts = append(parts, "limit="+r.Limit)
	}
	if r.OnLimit != "" {
		parts = append(parts, "on_limit="+r.OnLimit)
	}
	if r.OnLimitMessage != "" {
		parts = append(parts, "on_limit_message="+r.OnLimitMessage)
	}
	return strings.Join(parts, logNameSeparator)
}

// WhileIterationResult is the result of one WHILE loop iteration.
type WhileIterationResult struct {
	BodyResult `yaml:",inline"`
}

func (r *WhileIterationResult) LogName() string { return "" }

// IfResult is the result of a whole IF/ELSE structure.
type IfResult struct {
	BodyResult `yaml:",inline"`
}

func (r *IfResult) LogName() string { return "" }

// IfBranchResult is the result of one IF, ELSE IF or ELSE branch.
type IfBranchResult struct {
	BodyResult `yaml:",inline"`
	Condition  string `yaml:"condition"`
}

func (r *IfBranchResult) LogName() string { return r.Condition }

// TryResult is the result of a whole TRY/EXCEPT structure.
type TryResult struct {
	BodyResult `yaml:",inline"`
}

func (r *TryResult) LogName() string { return "" }

// TryBranchResult is the result of one TRY, EXCEPT, ELSE or FINALLY branch.
type TryBranchResult struct {
	BodyResult  `yaml:",inline"`
	Patterns    []string `yaml:"patterns"`
	PatternType string   `yaml:"pattern_type"`
	Assign      string   `yaml:"assign"`
}

func (r *TryBranchResult) LogName() string {
	if r.Type != TypeExcept {
		return ""
	}
	parts := append([]string{}, r.Patterns...)
	if r.PatternType != "" {
		parts = append(parts, "type="+r.PatternType)
	}
	if r.Assign != "" {
		parts = append(parts, "AS", r.Assign)
	}
	return strings.Join(parts, logNameSeparator)
}

// VarResult is the result of a VAR statement.
type VarResult struct {
	BodyResult `yaml:",inline"`
	Name       string   `yaml:"name"`
	Value      []string `yaml:"value"`
	Scope      string   `yaml:"scope"`
	Separator  string   `yaml:"separator"`
}

func (r *VarResult) LogName() string {
	parts := append([]string{r.Name}, r.Value...)
	if r.Scope != "" {
		parts = append(parts, "scope="+r.Scope)
	}
	if r.Separator != "" {
		parts = append(parts, "separator="+r.Separator)
	}
	return strings.Join(parts, logNameSeparator)
}

// ReturnResult is the result of a RETURN statement.
type ReturnResult struct {
	BodyResult `yaml:",inline"`
	Values     []string `yaml:"values"`
}

func (r *ReturnResult) LogName() string {
	return strings.Join(r.Values, logNameSeparator)
}

// BreakResult is the result of a BREAK statement.
type BreakResult struct {
	BodyResult `yaml:",inline"`
}

func (r *BreakResult) LogName() string { return "" }

// ContinueResult is the result of a CONTINUE statement.
type ContinueResult struct {
	BodyResult `yaml:",inline"`
}

func (r *ContinueResult) LogName() string { return "" }

// ErrorResult is the result of invalid syntax reported at run time.
type ErrorResult struct {
	BodyResult `yaml:",inline"`
	Values     []string `yaml:"values"`
}

func (r *ErrorResult) LogName() string {
	return strings.Join(r.Values, logNameSeparator)
}

// Compile-time checks.
var (
	_ BodyItemResult = (*ForResult)(nil)
	_ BodyItemResult = (*ForIterationResult)(nil)
	_ BodyItemResult = (*WhileResult)(nil)
	_ BodyItemResult = (*WhileIterationResult)(nil)
	_ BodyItemResult = (*IfResult)(nil)
	_ BodyItemResult = (*IfBranchResult)(nil)
	_ BodyItemResult = (*TryResult)(nil)
	_ BodyItemResult = (*TryBranchResult)(nil)
	_ BodyItemResult = (*VarResult)(nil)
	_ BodyItemResult = (*ReturnResult)(nil)
	_ BodyItemResult = (*BreakResult)(nil)
	_ BodyItemResult = (*ContinueResult)(nil)
	_ BodyItemResult = (*ErrorResult)(nil)
)
