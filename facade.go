package listen

// Events is the uniform listener event surface. Both listener facades and the
// buses in package bus implement it.
//
// Every method returns nil unless a listener method returned a TimeoutError,
// which is returned unchanged. Other listener failures are logged and never
// reach the caller.
type Events interface {
	StartSuite(data *SuiteData, result *SuiteResult) error
	EndSuite(data *SuiteData, result *SuiteResult) error
	StartTest(data *TestData, result *TestResult) error
	EndTest(data *TestData, result *TestResult) error

	StartKeyword(data *KeywordData, result *KeywordResult) error
	EndKeyword(data *KeywordData, result *KeywordResult) error
	StartUserKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error
	EndUserKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error
	StartLibraryKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error
	EndLibraryKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error
	StartInvalidKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error
	EndInvalidKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error

	StartFor(data *ItemData, result *ForResult) error
	EndFor(data *ItemData, result *ForResult) error
	StartForIteration(data *ItemData, result *ForIterationResult) error
	EndForIteration(data *ItemData, result *ForIterationResult) error
	StartWhile(data *ItemData, result *WhileResult) error
	EndWhile(data *ItemData, result *WhileResult) error
	StartWhileIteration(data *ItemData, result *WhileIterationResult) error
	EndWhileIteration(data *ItemData, result *WhileIterationResult) error
	StartIf(data *ItemData, result *IfResult) error
	EndIf(data *ItemData, result *IfResult) error
	StartIfBranch(data *ItemData, result *IfBranchResult) error
	EndIfBranch(data *ItemData, result *IfBranchResult) error
	StartTry(data *ItemData, result *TryResult) error
	EndTry(data *ItemData, result *TryResult) error
	StartTryBranch(data *ItemData, result *TryBranchResult) error
	EndTryBranch(data *ItemData, result *TryBranchResult) error

	StartVar(data *ItemData, result *VarResult) error
	EndVar(data *ItemData, result *VarResult) error
	StartBreak(data *ItemData, result *BreakResult) error
	EndBreak(data *ItemData, result *BreakResult) error
	StartContinue(data *ItemData, result *ContinueResult) error
	EndContinue(data *ItemData, result *ContinueResult) error
	StartReturn(data *ItemData, result *ReturnResult) error
	EndReturn(data *ItemData, result *ReturnResult) error
	StartError(data *ItemData, result *ErrorResult) error
	EndError(data *ItemData, result *ErrorResult) error

	LogMessage(msg *Message) error
	Message(msg *Message) error
	Imported(kind, name string, attrs map[string]any) error
	OutputFile(kind, path string) error
	Close() error
}

// Facade adapts one raw listener to the uniform event surface.
//
// There are two implementations, selected by the listener API version when
// the listener is imported: version 3 facades pass the rich objects through,
// version 2 facades convert them to a name and an attribute map. Facades do
// not change after creation.
type Facade interface {
	Events

	// Name returns the listener display name.
	Name() string

	// Version returns the listener API version, 2 or 3.
	Version() int

	// Library returns the library owning the listener, or nil for listeners
	// not bound to a library.
	Library() Library
}

// facade holds what both facade versions share.
type facade struct {
	listener Listener
	name     string
	library  Library
}

func (f *facade) Name() string     { return f.name }
func (f *facade) Library() Library { return f.library }

// method resolves a listener method for the event name.
func (f *facade) method(name string) Method {
	return resolve(f.listener, name, f.name, f.library != nil)
}

// OutputFile calls "<kind>_file" with the path, e.g. output_file or log_file.
// Output files are reported the same way in both API versions.
func (f *facade) OutputFile(kind, path string) error {
	return f.method(outputFileMethod(kind)).Call(path)
}
