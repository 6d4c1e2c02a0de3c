package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rickchristie/listen"
	"github.com/rickchristie/listen/bus"
	"github.com/rickchristie/listen/internal/tt"
	"github.com/rickchristie/listen/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const events = `
- event: start_suite
  data: {id: s1, name: Checkout}
  result: {name: Checkout, full_name: Checkout}
- event: start_test
  data: {id: s1-t1, name: Pay}
  result: {name: Pay, full_name: Checkout.Pay}
- event: end_test
  data: {id: s1-t1, name: Pay}
  result: {name: Pay, full_name: Checkout.Pay, status: PASS}
- event: end_suite
  data: {id: s1, name: Checkout}
  result: {name: Checkout, full_name: Checkout, status: PASS, statistics: {passed: 1}}
`

const counter = `
local listener = {ROBOT_LISTENER_NAME = "Counter", ROBOT_LISTENER_API_VERSION = 2}
function listener.end_test(name, attrs)
	print(name .. " " .. attrs.status)
end
return listener
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(func() {
		listen.SetRecorder(nil)
	})
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestReplay_PrintsTrace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "events.yaml", events)

	stdout, _, err := execute(t, "replay", path)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "{method: start_suite, args: [Checkout, {"), lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "{method: end_suite, args: [Checkout, {"), lines[3])
	assert.Contains(t, lines[3], "1 test, 1 passed, 0 failed")
}

func TestReplay_Golden(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "events.yaml", events)
	golden := filepath.Join(dir, "events.trace")

	_, _, err := execute(t, "replay", path, "--golden", golden, "--update")
	require.NoError(t, err)
	stdout, _, err := execute(t, "replay", path, "--golden", golden)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	require.NoError(t, os.WriteFile(golden, []byte("{method: start_suite}\n"), 0o644))
	stdout, _, err = execute(t, "replay", path, "--golden", golden)
	assert.ErrorIs(t, err, ErrTraceMismatch)
	assert.Contains(t, stdout, "--- want")
	assert.Contains(t, stdout, "-{method: start_suite}")
}

func TestReplay_WithConfiguredLuaListener(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "counter.lua", counter)
	cfg := writeFile(t, dir, "listen.yaml", "listeners:\n  - source: "+script+"\nmetrics:\n  enabled: true\n")
	path := writeFile(t, dir, "events.yaml", events)

	_, stderr, err := execute(t, "replay", path, "-c", cfg, "--log-level", "info")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Pay PASS")
	assert.Contains(t, stderr, "listen_listener_calls_total")
}

func TestReplay_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "replay", filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, dir, "bad.yaml", "- event: explode\n")
	_, _, err = execute(t, "replay", bad)
	assert.ErrorContains(t, err, `unknown event "explode"`)

	cfg := writeFile(t, dir, "listen.yaml", "log_level: LOUD\n")
	_, _, err = execute(t, "replay", bad, "-c", cfg)
	assert.ErrorContains(t, err, "Invalid log level 'LOUD'.")

	_, _, err = execute(t, "replay", bad, "--log-level", "shouting")
	assert.ErrorContains(t, err, `invalid console level "shouting"`)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "counter.lua", counter)
	cfg := writeFile(t, dir, "listen.json",
		`{"listeners": [{"source": "`+script+`", "args": ["verbose"]}]}`)

	stdout, _, err := execute(t, "check", "-c", cfg)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"LISTENER", "VERSION", "SOURCE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{script, "2", script + ":verbose"}, strings.Fields(lines[1]))
}

func TestCheck_CombinesFailures(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "listen.toml", `
[[listeners]]
source = "printer.py"

[[listeners]]
source = "`+filepath.Join(dir, "missing.lua")+`"
`)

	_, _, err := execute(t, "check", "-c", cfg)

	require.Error(t, err)
	assert.ErrorContains(t, err, "printer.py: Listener 'printer.py' is not a Lua file.")
	assert.ErrorContains(t, err, "missing.lua")
}

func newTestSession(t *testing.T) (*session, *replay.Trace, *tt.CallLog, *bytes.Buffer) {
	t.Helper()
	trace := replay.NewTrace(nil)
	log := tt.NewCallLog()
	recorder := tt.NewRecordingListener(log, "Recorder", listen.EventNames...)
	listeners, err := bus.New([]any{trace, recorder})
	require.NoError(t, err)
	var out bytes.Buffer
	return newSession(replay.New(listeners, nil), &out), trace, log, &out
}

func run(t *testing.T, s *session, lines ...string) {
	t.Helper()
	for _, line := range lines {
		quit, err := s.exec(line)
		require.NoError(t, err, line)
		require.False(t, quit, line)
	}
}

func TestSession(t *testing.T) {
	s, trace, log, _ := newTestSession(t)

	run(t, s,
		"suite Checkout",
		"test Pay with card",
		"kw Browser.Click id=pay",
		"log info Clicked",
		"log debug hidden",
		"end-kw",
		"kw Open Cart",
		"end-kw fail",
		"end-test fail Card declined",
		"end-suite",
		"",
	)

	assert.Equal(t, []string{
		"start_suite",
		"start_test",
		"start_library_keyword",
		"log_message",
		"end_library_keyword",
		"start_user_keyword",
		"end_user_keyword",
		"end_test",
		"end_suite",
	}, log.Methods())
	assert.Len(t, trace.Lines(), 9)

	calls := log.Calls()
	kw := calls[2].Args[2].(*listen.KeywordResult)
	assert.Equal(t, "Browser.Click", kw.FullName())
	assert.Equal(t, []any{"id=pay"}, kw.Args)
	test := calls[7].Args[1].(*listen.TestResult)
	assert.Equal(t, "Checkout.Pay with card", test.FullName)
	assert.Equal(t, listen.StatusFail, test.Status)
	assert.Equal(t, "Card declined", test.Message)
	assert.False(t, test.EndTime.IsZero())
	suite := calls[8].Args[1].(*listen.SuiteResult)
	assert.Equal(t, listen.StatusPass, suite.Status)
	assert.Equal(t, "1 test, 0 passed, 1 failed", suite.Statistics.Message())
	assert.Equal(t, "s1-t1", calls[1].Args[0].(*listen.TestData).ID)
}

func TestSession_NestedSuites(t *testing.T) {
	s, _, log, _ := newTestSession(t)

	run(t, s, "suite Root", "suite Child", "test T", "end-test", "end-suite", "end-suite")

	calls := log.Calls()
	child := calls[1].Args[0].(*listen.SuiteData)
	assert.Equal(t, "s1-s1", child.ID)
	assert.Equal(t, "Root.Child", calls[1].Args[1].(*listen.SuiteResult).FullName)
	root := calls[5].Args[1].(*listen.SuiteResult)
	assert.Equal(t, 1, root.Statistics.Passed)
	assert.Equal(t, 1, calls[5].Args[0].(*listen.SuiteData).TestCount())
}

func TestSession_LevelAndClose(t *testing.T) {
	s, _, log, out := newTestSession(t)

	run(t, s, "level WARN", "log INFO quiet", "log ERROR loud", "close", "help")

	assert.Equal(t, []string{"log_message", "close"}, log.Methods())
	assert.Contains(t, out.String(), "Commands:")
}

func TestSession_Errors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{line: "dance", want: `unknown command "dance", try help`},
		{line: "suite", want: "usage: suite NAME"},
		{line: "test Orphan", want: "tests can only be started inside suites"},
		{line: "kw Log", want: "keywords can only be started inside tests or keywords"},
		{line: "end-test", want: "no open test"},
		{line: "end-suite", want: "no open suite"},
		{line: "log INFO", want: "usage: log LEVEL TEXT"},
		{line: "level", want: "usage: level LEVEL"},
		{line: "level LOUD", want: "Invalid log level 'LOUD'."},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			s, _, _, _ := newTestSession(t)

			_, err := s.exec(tc.line)

			assert.EqualError(t, err, tc.want)
		})
	}
}

func TestSession_Quit(t *testing.T) {
	s, _, _, _ := newTestSession(t)

	quit, err := s.exec("quit")

	require.NoError(t, err)
	assert.True(t, quit)
}
