package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rickchristie/listen"
	"github.com/rickchristie/listen/replay"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

const shellHelp = `Commands:
  suite NAME                  start a suite
  end-suite [STATUS]          end the innermost suite
  test NAME                   start a test
  end-test [STATUS [MESSAGE]] end the running test
  kw [OWNER.]NAME [ARGS...]   start a keyword
  end-kw [STATUS]             end the innermost keyword
  log LEVEL TEXT              log a message
  level LEVEL                 set the log level of the listeners
  close                       close the listeners
  help                        show this help
  quit                        leave the shell
`

func newShellCmd(a *app) *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Send events to the configured listeners interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var extra []any
			if trace {
				extra = append(extra, replay.NewTrace(cmd.OutOrStdout()))
			}
			listeners, library, importer, err := a.buses(extra...)
			if err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, importer.Close()) }()

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "listen> ",
				AutoComplete:    shellCompleter,
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
				Stdout:          cmd.OutOrStdout(),
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			s := newSession(replay.New(listeners, library), cmd.OutOrStdout())
			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				quit, err := s.exec(line)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
				}
				if quit {
					break
				}
			}
			a.reportMetrics()
			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "Print what a version 2 listener receives")
	return cmd
}

var shellCompleter = readline.NewPrefixCompleter(
	readline.PcItem("suite"),
	readline.PcItem("end-suite", statusItems()...),
	readline.PcItem("test"),
	readline.PcItem("end-test", statusItems()...),
	readline.PcItem("kw"),
	readline.PcItem("end-kw", statusItems()...),
	readline.PcItem("log",
		readline.PcItem(listen.LevelTrace), readline.PcItem(listen.LevelDebug),
		readline.PcItem(listen.LevelInfo), readline.PcItem(listen.LevelWarn),
		readline.PcItem(listen.LevelError), readline.PcItem(listen.LevelHTML),
	),
	readline.PcItem("level"),
	readline.PcItem("close"),
	readline.PcItem("help"),
	readline.PcItem("quit"),
)

func statusItems() []readline.PrefixCompleterInterface {
	return []readline.PrefixCompleterInterface{
		readline.PcItem(listen.StatusPass),
		readline.PcItem(listen.StatusFail),
		readline.PcItem(listen.StatusSkip),
	}
}

// frame is an open suite, test or keyword.
type frame struct {
	kind string
	step *replay.Step
}

// session turns shell commands into replay steps.
type session struct {
	replayer *replay.Replayer
	out      io.Writer
	stack    []*frame
}

func newSession(r *replay.Replayer, out io.Writer) *session {
	return &session{replayer: r, out: out}
}

// exec runs one command line. quit is true when the shell should exit.
func (s *session) exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		_, err = fmt.Fprint(s.out, shellHelp)
		return false, err
	case "suite":
		return false, s.startSuite(strings.Join(args, " "))
	case "end-suite":
		return false, s.endSuite(args)
	case "test":
		return false, s.startTest(strings.Join(args, " "))
	case "end-test":
		return false, s.endTest(args)
	case "kw":
		return false, s.startKeyword(args)
	case "end-kw":
		return false, s.endKeyword(args)
	case "log":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: log LEVEL TEXT")
		}
		return false, s.replayer.Step(&replay.Step{
			Event:   listen.EventLogMessage,
			Message: &listen.Message{Level: strings.ToUpper(args[0]), Message: strings.Join(args[1:], " ")},
		})
	case "level":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: level LEVEL")
		}
		return false, s.replayer.Step(&replay.Step{Event: replay.StepSetLogLevel, Level: args[0]})
	case "close":
		return false, s.replayer.Step(&replay.Step{Event: listen.EventClose})
	}
	return false, fmt.Errorf("unknown command %q, try help", cmd)
}

func (s *session) startSuite(name string) error {
	if name == "" {
		return fmt.Errorf("usage: suite NAME")
	}
	if len(s.stack) > 0 && s.top().kind != "suite" {
		return fmt.Errorf("suites can only be started inside suites")
	}
	data := &listen.SuiteData{ID: s.nextID("s"), Name: name}
	fullName := name
	if parent := s.innermost("suite"); parent != nil {
		fullName = parent.step.Result.(*listen.SuiteResult).FullName + "." + name
		parentData := parent.step.Data.(*listen.SuiteData)
		parentData.Suites = append(parentData.Suites, data)
	}
	step := &replay.Step{
		Event:  listen.EventStartSuite,
		Data:   data,
		Result: &listen.SuiteResult{Name: name, FullName: fullName, Status: listen.StatusNotSet},
	}
	return s.start("suite", step)
}

func (s *session) endSuite(args []string) error {
	f, err := s.pop("suite")
	if err != nil {
		return err
	}
	result := f.step.Result.(*listen.SuiteResult)
	result.Status = status(args)
	return s.replayer.Step(&replay.Step{Event: listen.EventEndSuite, Data: f.step.Data, Result: result})
}

func (s *session) startTest(name string) error {
	if name == "" {
		return fmt.Errorf("usage: test NAME")
	}
	if len(s.stack) == 0 || s.top().kind != "suite" {
		return fmt.Errorf("tests can only be started inside suites")
	}
	suite := s.top().step
	data := &listen.TestData{ID: s.nextID("t"), Name: name}
	suite.Data.(*listen.SuiteData).Tests = append(suite.Data.(*listen.SuiteData).Tests, data)
	step := &replay.Step{
		Event:  listen.EventStartTest,
		Data:   data,
		Result: &listen.TestResult{Name: name, FullName: suite.Result.(*listen.SuiteResult).FullName + "." + name, Status: listen.StatusNotSet},
	}
	return s.start("test", step)
}

func (s *session) endTest(args []string) error {
	f, err := s.pop("test")
	if err != nil {
		return err
	}
	result := f.step.Result.(*listen.TestResult)
	result.Status = status(args)
	if len(args) > 1 {
		result.Message = strings.Join(args[1:], " ")
	}
	for _, open := range s.stack {
		if open.kind == "suite" {
			count(&open.step.Result.(*listen.SuiteResult).Statistics, result.Status)
		}
	}
	return s.replayer.Step(&replay.Step{Event: listen.EventEndTest, Data: f.step.Data, Result: result})
}

func (s *session) startKeyword(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: kw [OWNER.]NAME [ARGS...]")
	}
	if len(s.stack) == 0 || s.top().kind == "suite" {
		return fmt.Errorf("keywords can only be started inside tests or keywords")
	}
	owner, name := "", args[0]
	if i := strings.LastIndex(name, "."); i > 0 {
		owner, name = name[:i], name[i+1:]
	}
	kwArgs := make([]any, len(args)-1)
	for i, a := range args[1:] {
		kwArgs[i] = a
	}
	impl := &listen.Implementation{Name: name, Owner: owner, Type: listen.ImplementationLibraryKeyword}
	event := listen.EventStartLibraryKeyword
	if owner == "" {
		impl.Type = listen.ImplementationUserKeyword
		event = listen.EventStartUserKeyword
	}
	step := &replay.Step{
		Event:          event,
		Data:           &listen.KeywordData{Name: args[0], Args: args[1:]},
		Implementation: impl,
		Result: &listen.KeywordResult{
			Name:   name,
			Owner:  owner,
			Type:   listen.TypeKeyword,
			Status: listen.StatusNotSet,
			Args:   kwArgs,
		},
	}
	return s.start("kw", step)
}

func (s *session) endKeyword(args []string) error {
	f, err := s.pop("kw")
	if err != nil {
		return err
	}
	result := f.step.Result.(*listen.KeywordResult)
	result.Status = status(args)
	event := listen.EventEndLibraryKeyword
	if f.step.Event == listen.EventStartUserKeyword {
		event = listen.EventEndUserKeyword
	}
	return s.replayer.Step(&replay.Step{
		Event:          event,
		Data:           f.step.Data,
		Implementation: f.step.Implementation,
		Result:         result,
	})
}

func (s *session) start(kind string, step *replay.Step) error {
	if err := s.replayer.Step(step); err != nil {
		return err
	}
	s.stack = append(s.stack, &frame{kind: kind, step: step})
	return nil
}

func (s *session) pop(kind string) (*frame, error) {
	if len(s.stack) == 0 || s.top().kind != kind {
		return nil, fmt.Errorf("no open %s", kind)
	}
	f := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	return f, nil
}

func (s *session) top() *frame {
	return s.stack[len(s.stack)-1]
}

func (s *session) innermost(kind string) *frame {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].kind == kind {
			return s.stack[i]
		}
	}
	return nil
}

// nextID returns an id such as "s1-s2-t1" for the next child of the
// innermost suite.
func (s *session) nextID(prefix string) string {
	parent := s.innermost("suite")
	if parent == nil {
		return prefix + "1"
	}
	data := parent.step.Data.(*listen.SuiteData)
	n := len(data.Suites) + 1
	if prefix == "t" {
		n = len(data.Tests) + 1
	}
	return fmt.Sprintf("%s-%s%d", data.ID, prefix, n)
}

func status(args []string) string {
	if len(args) == 0 {
		return listen.StatusPass
	}
	return strings.ToUpper(args[0])
}

func count(stats *listen.Statistics, status string) {
	switch status {
	case listen.StatusPass:
		stats.Passed++
	case listen.StatusFail:
		stats.Failed++
	case listen.StatusSkip:
		stats.Skipped++
	}
}
