package listen

// v3Facade passes events to listener methods as they are. Each event is bound
// to one resolved Method at construction.
type v3Facade struct {
	facade

	startSuite, endSuite                   Method
	startTest, endTest                     Method
	startKeyword, endKeyword               Method
	startUserKeyword, endUserKeyword       Method
	startLibraryKeyword, endLibraryKeyword Method
	startInvalidKeyword, endInvalidKeyword Method
	startIf, endIf                         Method
	startIfBranch, endIfBranch             Method
	startTry, endTry                       Method
	startTryBranch, endTryBranch           Method
	startFor, endFor                       Method
	startForIteration, endForIteration     Method
	startWhile, endWhile                   Method
	startWhileIteration, endWhileIteration Method
	startVar, endVar                       Method
	startBreak, endBreak                   Method
	startContinue, endContinue             Method
	startReturn, endReturn                 Method
	startError, endError                   Method
	logMessage, message                    Method
	close                                  Method
}

func newV3Facade(listener Listener, name string, library Library) *v3Facade {
	f := &v3Facade{facade: facade{listener: listener, name: name, library: library}}
	// Suite
	f.startSuite = f.method(EventStartSuite)
	f.endSuite = f.method(EventEndSuite)
	// Test
	f.startTest = f.method(EventStartTest)
	f.endTest = f.method(EventEndTest)
	// Keywords
	f.startKeyword = f.method(EventStartKeyword)
	f.endKeyword = f.method(EventEndKeyword)
	f.startUserKeyword = f.method(EventStartUserKeyword)
	f.endUserKeyword = f.method(EventEndUserKeyword)
	f.startLibraryKeyword = f.method(EventStartLibraryKeyword)
	f.endLibraryKeyword = f.method(EventEndLibraryKeyword)
	f.startInvalidKeyword = f.method(EventStartInvalidKeyword)
	f.endInvalidKeyword = f.method(EventEndInvalidKeyword)
	// IF
	f.startIf = f.method(EventStartIf)
	f.endIf = f.method(EventEndIf)
	f.startIfBranch = f.method(EventStartIfBranch)
	f.endIfBranch = f.method(EventEndIfBranch)
	// TRY
	f.startTry = f.method(EventStartTry)
	f.endTry = f.method(EventEndTry)
	f.startTryBranch = f.method(EventStartTryBranch)
	f.endTryBranch = f.method(EventEndTryBranch)
	// FOR
	f.startFor = f.method(EventStartFor)
	f.endFor = f.method(EventEndFor)
	f.startForIteration = f.method(EventStartForIteration)
	f.endForIteration = f.method(EventEndForIteration)
	// WHILE
	f.startWhile = f.method(EventStartWhile)
	f.endWhile = f.method(EventEndWhile)
	f.startWhileIteration = f.method(EventStartWhileIteration)
	f.endWhileIteration = f.method(EventEndWhileIteration)
	// Statements
	f.startVar = f.method(EventStartVar)
	f.endVar = f.method(EventEndVar)
	f.startBreak = f.method(EventStartBreak)
	f.endBreak = f.method(EventEndBreak)
	f.startContinue = f.method(EventStartContinue)
	f.endContinue = f.method(EventEndContinue)
	f.startReturn = f.method(EventStartReturn)
	f.endReturn = f.method(EventEndReturn)
	f.startError = f.method(EventStartError)
	f.endError = f.method(EventEndError)
	// Messages
	f.logMessage = f.method(EventLogMessage)
	f.message = f.method(EventMessage)
	f.close = f.method(EventClose)
	return f
}

func (f *v3Facade) Version() int { return 3 }

func (f *v3Facade) StartSuite(data *SuiteData, result *SuiteResult) error {
	return f.startSuite.Call(data, result)
}

func (f *v3Facade) EndSuite(data *SuiteData, result *SuiteResult) error {
	return f.endSuite.Call(data, result)
}

func (f *v3Facade) StartTest(data *TestData, result *TestResult) error {
	return f.startTest.Call(data, result)
}

func (f *v3Facade) EndTest(data *TestData, result *TestResult) error {
	return f.endTest.Call(data, result)
}

func (f *v3Facade) StartKeyword(data *KeywordData, result *KeywordResult) error {
	return f.startKeyword.Call(data, result)
}

func (f *v3Facade) EndKeyword(data *KeywordData, result *KeywordResult) error {
	return f.endKeyword.Call(data, result)
}

// The specialized keyword methods fall back to start_keyword and end_keyword
// so that every listener gets at least the generic notification.

func (f *v3Facade) StartUserKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error {
	if f.startUserKeyword.Exists() {
		return f.startUserKeyword.Call(data, implementation, result)
	}
	return f.StartKeyword(data, result)
}

func (f *v3Facade) EndUserKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error {
	if f.endUserKeyword.Exists() {
		return f.endUserKeyword.Call(data, implementation, result)
	}
	return f.EndKeyword(data, result)
}

func (f *v3Facade) StartLibraryKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error {
	if f.startLibraryKeyword.Exists() {
		return f.startLibraryKeyword.Call(data, implementation, result)
	}
	return f.StartKeyword(data, result)
}

func (f *v3Facade) EndLibraryKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error {
	if f.endLibraryKeyword.Exists() {
		return f.endLibraryKeyword.Call(data, implementation, result)
	}
	return f.EndKeyword(data, result)
}

func (f *v3Facade) StartInvalidKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error {
	if f.startInvalidKeyword.Exists() {
		return f.startInvalidKeyword.Call(data, implementation, result)
	}
	return f.StartKeyword(data, result)
}

func (f *v3Facade) EndInvalidKeyword(data *KeywordData, implementation *Implementation, result *KeywordResult) error {
	if f.endInvalidKeyword.Exists() {
		return f.endInvalidKeyword.Call(data, implementation, result)
	}
	return f.EndKeyword(data, result)
}

func (f *v3Facade) StartFor(data *ItemData, result *ForResult) error {
	return f.startFor.Call(data, result)
}

func (f *v3Facade) EndFor(data *ItemData, result *ForResult) error {
	return f.endFor.Call(data, result)
}

func (f *v3Facade) StartForIteration(data *ItemData, result *ForIterationResult) error {
	return f.startForIteration.Call(data, result)
}

func (f *v3Facade) EndForIteration(data *ItemData, result *ForIterationResult) error {
	return f.endForIteration.Call(data, result)
}

func (f *v3Facade) StartWhile(data *ItemData, result *WhileResult) error {
	return f.startWhile.Call(data, result)
}

func (f *v3Facade) EndWhile(data *ItemData, result *WhileResult) error {
	return f.endWhile.Call(data, result)
}

func (f *v3Facade) StartWhileIteration(data *ItemData, result *WhileIterationResult) error {
	return f.startWhileIteration.Call(data, result)
}

func (f *v3Facade) EndWhileIteration(data *ItemData, result *WhileIterationResult) error {
	return f.endWhileIteration.Call(data, result)
}

func (f *v3Facade) StartIf(data *ItemData, result *IfResult) error {
	return f.startIf.Call(data, result)
}

func (f *v3Facade) EndIf(data *ItemData, result *IfResult) error {
	return f.endIf.Call(data, result)
}

func (f *v3Facade) StartIfBranch(data *ItemData, result *IfBranchResult) error {
	return f.startIfBranch.Call(data, result)
}

func (f *v3Facade) EndIfBranch(data *ItemData, result *IfBranchResult) error {
	return f.endIfBranch.Call(data, result)
}

func (f *v3Facade) StartTry(data *ItemData, result *TryResult) error {
	return f.startTry.Call(data, result)
}

func (f *v3Facade) EndTry(data *ItemData, result *TryResult) error {
	return f.endTry.Call(data, result)
}

func (f *v3Facade) StartTryBranch(data *ItemData, result *TryBranchResult) error {
	return f.startTryBranch.Call(data, result)
}

func (f *v3Facade) EndTryBranch(data *ItemData, result *TryBranchResult) error {
	return f.endTryBranch.Call(data, result)
}

func (f *v3Facade) StartVar(data *ItemData, result *VarResult) error {
	return f.startVar.Call(data, result)
}

func (f *v3Facade) EndVar(data *ItemData, result *VarResult) error {
	return f.endVar.Call(data, result)
}

func (f *v3Facade) StartBreak(data *ItemData, result *BreakResult) error {
	return f.startBreak.Call(data, result)
}

func (f *v3Facade) EndBreak(data *ItemData, result *BreakResult) error {
	return f.endBreak.Call(data, result)
}

func (f *v3Facade) StartContinue(data *ItemData, result *ContinueResult) error {
	return f.startContinue.Call(data, result)
}

func (f *v3Facade) EndContinue(data *ItemData, result *ContinueResult) error {
	return f.endContinue.Call(data, result)
}

func (f *v3Facade) StartReturn(data *ItemData, result *ReturnResult) error {
	return f.startReturn.Call(data, result)
}

func (f *v3Facade) EndReturn(data *ItemData, result *ReturnResult) error {
	return f.endReturn.Call(data, result)
}

func (f *v3Facade) StartError(data *ItemData, result *ErrorResult) error {
	return f.startError.Call(data, result)
}

func (f *v3Facade) EndError(data *ItemData, result *ErrorResult) error {
	return f.endError.Call(data, result)
}

func (f *v3Facade) LogMessage(msg *Message) error {
	return f.logMessage.Call(msg)
}

func (f *v3Facade) Message(msg *Message) error {
	return f.message.Call(msg)
}

// Imported is not part of the version 3 API.
func (f *v3Facade) Imported(kind, name string, attrs map[string]any) error {
	return nil
}

func (f *v3Facade) Close() error {
	return f.close.Call()
}

var _ Facade = (*v3Facade)(nil)
