package bus

import "github.com/rickchristie/listen"

// dispatcher fans events out to the facades returned by active, in order.
// A timeout returned by a facade stops the loop and is returned.
type dispatcher struct {
	active func() []listen.Facade
	filter *listen.LevelFilter
}

func (d *dispatcher) each(call func(f listen.Facade) error) error {
	for _, f := range d.active() {
		if err := call(f); err != nil {
			return err
		}
	}
	return nil
}

func (d *dispatcher) StartSuite(data *listen.SuiteData, result *listen.SuiteResult) error {
	return d.each(func(f listen.Facade) error { return f.StartSuite(data, result) })
}

func (d *dispatcher) EndSuite(data *listen.SuiteData, result *listen.SuiteResult) error {
	return d.each(func(f listen.Facade) error { return f.EndSuite(data, result) })
}

func (d *dispatcher) StartTest(data *listen.TestData, result *listen.TestResult) error {
	return d.each(func(f listen.Facade) error { return f.StartTest(data, result) })
}

func (d *dispatcher) EndTest(data *listen.TestData, result *listen.TestResult) error {
	return d.each(func(f listen.Facade) error { return f.EndTest(data, result) })
}

func (d *dispatcher) StartKeyword(data *listen.KeywordData, result *listen.KeywordResult) error {
	return d.each(func(f listen.Facade) error { return f.StartKeyword(data, result) })
}

func (d *dispatcher) EndKeyword(data *listen.KeywordData, result *listen.KeywordResult) error {
	return d.each(func(f listen.Facade) error { return f.EndKeyword(data, result) })
}

func (d *dispatcher) StartUserKeyword(
	data *listen.KeywordData,
	implementation *listen.Implementation,
	result *listen.KeywordResult,
) error {
	return d.each(func(f listen.Facade) error { return f.StartUserKeyword(data, implementation, result) })
}

func (d *dispatcher) EndUserKeyword(
	data *listen.KeywordData,
	implementation *listen.Implementation,
	result *listen.KeywordResult,
) error {
	return d.each(func(f listen.Facade) error { return f.EndUserKeyword(data, implementation, result) })
}

func (d *dispatcher) StartLibraryKeyword(
	data *listen.KeywordData,
	implementation *listen.Implementation,
	result *listen.KeywordResult,
) error {
	return d.each(func(f listen.Facade) error { return f.StartLibraryKeyword(data, implementation, result) })
}

func (d *dispatcher) EndLibraryKeyword(
	data *listen.KeywordData,
	implementation *listen.Implementation,
	result *listen.KeywordResult,
) error {
	return d.each(func(f listen.Facade) error { return f.EndLibraryKeyword(data, implementation, result) })
}

func (d *dispatcher) StartInvalidKeyword(
	data *listen.KeywordData,
	implementation *listen.Implementation,
	result *listen.KeywordResult,
) error {
	return d.each(func(f listen.Facade) error { return f.StartInvalidKeyword(data, implementation, result) })
}

func (d *dispatcher) EndInvalidKeyword(
	data *listen.KeywordData,
	implementation *listen.Implementation,
	result *listen.KeywordResult,
) error {
	return d.each(func(f listen.Facade) error { return f.EndInvalidKeyword(data, implementation, result) })
}

func (d *dispatcher) StartFor(data *listen.ItemData, result *listen.ForResult) error {
	return d.each(func(f listen.Facade) error { return f.StartFor(data, result) })
}

func (d *dispatcher) EndFor(data *listen.ItemData, result *listen.ForResult) error {
	return d.each(func(f listen.Facade) error { return f.EndFor(data, result) })
}

func (d *dispatcher) StartForIteration(data *listen.ItemData, result *listen.ForIterationResult) error {
	return d.each(func(f listen.Facade) error { return f.StartForIteration(data, result) })
}

func (d *dispatcher) EndForIteration(data *listen.ItemData, result *listen.ForIterationResult) error {
	return d.each(func(f listen.Facade) error { return f.EndForIteration(data, result) })
}

func (d *dispatcher) StartWhile(data *listen.ItemData, result *listen.WhileResult) error {
	return d.each(func(f listen.Facade) error { return f.StartWhile(data, result) })
}

func (d *dispatcher) EndWhile(data *listen.ItemData, result *listen.WhileResult) error {
	return d.each(func(f listen.Facade) error { return f.EndWhile(data, result) })
}

func (d *dispatcher) StartWhileIteration(data *listen.ItemData, result *listen.WhileIterationResult) error {
	return d.each(func(f listen.Facade) error { return f.StartWhileIteration(data, result) })
}

func (d *dispatcher) EndWhileIteration(data *listen.ItemData, result *listen.WhileIterationResult) error {
	return d.each(func(f listen.Facade) error { return f.EndWhileIteration(data, result) })
}

func (d *dispatcher) StartIf(data *listen.ItemData, result *listen.IfResult) error {
	return d.each(func(f listen.Facade) error { return f.StartIf(data, result) })
}

func (d *dispatcher) EndIf(data *listen.ItemData, result *listen.IfResult) error {
	return d.each(func(f listen.Facade) error { return f.EndIf(data, result) })
}

func (d *dispatcher) StartIfBranch(data *listen.ItemData, result *listen.IfBranchResult) error {
	return d.each(func(f listen.Facade) error { return f.StartIfBranch(data, result) })
}

func (d *dispatcher) EndIfBranch(data *listen.ItemData, result *listen.IfBranchResult) error {
	return d.each(func(f listen.Facade) error { return f.EndIfBranch(data, result) })
}

func (d *dispatcher) StartTry(data *listen.ItemData, result *listen.TryResult) error {
	return d.each(func(f listen.Facade) error { return f.StartTry(data, result) })
}

func (d *dispatcher) EndTry(data *listen.ItemData, result *listen.TryResult) error {
	return d.each(func(f listen.Facade) error { return f.EndTry(data, result) })
}

func (d *dispatcher) StartTryBranch(data *listen.ItemData, result *listen.TryBranchResult) error {
	return d.each(func(f listen.Facade) error { return f.StartTryBranch(data, result) })
}

func (d *dispatcher) EndTryBranch(data *listen.ItemData, result *listen.TryBranchResult) error {
	return d.each(func(f listen.Facade) error { return f.EndTryBranch(data, result) })
}

func (d *dispatcher) StartVar(data *listen.ItemData, result *listen.VarResult) error {
	return d.each(func(f listen.Facade) error { return f.StartVar(data, result) })
}

func (d *dispatcher) EndVar(data *listen.ItemData, result *listen.VarResult) error {
	return d.each(func(f listen.Facade) error { return f.EndVar(data, result) })
}

func (d *dispatcher) StartBreak(data *listen.ItemData, result *listen.BreakResult) error {
	return d.each(func(f listen.Facade) error { return f.StartBreak(data, result) })
}

func (d *dispatcher) EndBreak(data *listen.ItemData, result *listen.BreakResult) error {
	return d.each(func(f listen.Facade) error { return f.EndBreak(data, result) })
}

func (d *dispatcher) StartContinue(data *listen.ItemData, result *listen.ContinueResult) error {
	return d.each(func(f listen.Facade) error { return f.StartContinue(data, result) })
}

func (d *dispatcher) EndContinue(data *listen.ItemData, result *listen.ContinueResult) error {
	return d.each(func(f listen.Facade) error { return f.EndContinue(data, result) })
}

func (d *dispatcher) StartReturn(data *listen.ItemData, result *listen.ReturnResult) error {
	return d.each(func(f listen.Facade) error { return f.StartReturn(data, result) })
}

func (d *dispatcher) EndReturn(data *listen.ItemData, result *listen.ReturnResult) error {
	return d.each(func(f listen.Facade) error { return f.EndReturn(data, result) })
}

func (d *dispatcher) StartError(data *listen.ItemData, result *listen.ErrorResult) error {
	return d.each(func(f listen.Facade) error { return f.StartError(data, result) })
}

func (d *dispatcher) EndError(data *listen.ItemData, result *listen.ErrorResult) error {
	return d.each(func(f listen.Facade) error { return f.EndError(data, result) })
}

// SetLogLevel changes the minimum level of messages passed to LogMessage and
// returns the previous level.
func (d *dispatcher) SetLogLevel(level string) (string, error) {
	return d.filter.SetLevel(level)
}

// LogLevel returns the minimum level of messages passed to LogMessage.
func (d *dispatcher) LogLevel() string {
	return d.filter.Level()
}

// LogMessage dispatches msg if its level passes the log level. Message is
// not filtered.
func (d *dispatcher) LogMessage(msg *listen.Message) error {
	if !d.filter.IsLogged(msg.Level) {
		return nil
	}
	return d.each(func(f listen.Facade) error { return f.LogMessage(msg) })
}

func (d *dispatcher) Message(msg *listen.Message) error {
	return d.each(func(f listen.Facade) error { return f.Message(msg) })
}

func (d *dispatcher) Imported(kind, name string, attrs map[string]any) error {
	return d.each(func(f listen.Facade) error { return f.Imported(kind, name, attrs) })
}

func (d *dispatcher) OutputFile(kind, path string) error {
	return d.each(func(f listen.Facade) error { return f.OutputFile(kind, path) })
}

// Len returns the number of active listeners.
func (d *dispatcher) Len() int {
	return len(d.active())
}

// Empty reports whether there are no active listeners.
func (d *dispatcher) Empty() bool {
	return d.Len() == 0
}

// Facades returns a copy of the active facades in dispatch order.
func (d *dispatcher) Facades() []listen.Facade {
	return append([]listen.Facade(nil), d.active()...)
}
