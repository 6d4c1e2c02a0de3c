package replay

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rickchristie/listen"
	"gopkg.in/yaml.v3"
)

// TraceName is the listener name of a Trace.
const TraceName = "Trace"

// timeKeys are attribute keys left out of trace lines so that traces do not
// depend on when the replay ran.
var timeKeys = map[string]bool{
	"starttime":   true,
	"endtime":     true,
	"elapsedtime": true,
	"timestamp":   true,
}

// Trace is a version 2 listener that records every call it receives as one
// YAML flow line, for example:
//
//	{method: end_test, args: [Login, {id: s1-t1, longname: Suite.Login, status: PASS, ...}]}
//
// Time valued attributes are omitted. Trace implements every method name.
type Trace struct {
	mu    sync.Mutex
	lines []string
	w     io.Writer
}

// NewTrace creates a trace. Lines are also written to w if it is not nil.
func NewTrace(w io.Writer) *Trace {
	return &Trace{w: w}
}

type traceLine struct {
	Method string `yaml:"method"`
	Args   []any  `yaml:"args,omitempty"`
}

func (t *Trace) Method(name string) (listen.Func, bool) {
	return func(args ...any) error {
		return t.record(name, args)
	}, true
}

func (t *Trace) ListenerName() string { return TraceName }
func (t *Trace) APIVersion() any      { return 2 }

func (t *Trace) record(method string, args []any) error {
	line := traceLine{Method: method}
	for _, a := range args {
		if attrs, ok := a.(map[string]any); ok {
			a = withoutTimes(attrs)
		}
		line.Args = append(line.Args, a)
	}
	var n yaml.Node
	if err := n.Encode(line); err != nil {
		return fmt.Errorf("encoding %s call: %w", method, err)
	}
	n.Style = yaml.FlowStyle
	b, err := yaml.Marshal(&n)
	if err != nil {
		return fmt.Errorf("encoding %s call: %w", method, err)
	}
	text := strings.TrimRight(string(b), "\n")

	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, text)
	if t.w != nil {
		if _, err := fmt.Fprintln(t.w, text); err != nil {
			return err
		}
	}
	return nil
}

func withoutTimes(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if !timeKeys[k] {
			out[k] = v
		}
	}
	return out
}

// Lines returns the recorded lines.
func (t *Trace) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

// String returns the recorded lines, each terminated by a newline.
func (t *Trace) String() string {
	lines := t.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Diff returns a unified diff between the want and got traces, or "" if they
// are equal.
func Diff(want, got string) (string, error) {
	if want == got {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
}

var (
	_ listen.Listener  = (*Trace)(nil)
	_ listen.Named     = (*Trace)(nil)
	_ listen.Versioned = (*Trace)(nil)
)
