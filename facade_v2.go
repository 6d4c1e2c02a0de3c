package listen

// v2Facade adapts listeners using the legacy version 2 API. Keywords and all
// control structures are reported through start_keyword and end_keyword with
// a name and an attribute map.
type v2Facade struct {
	facade

	startSuite, endSuite Method
	startTest, endTest   Method
	startKw, endKw       Method
	logMessage, message  Method
	close                Method
}

func newV2Facade(listener Listener, name string, library Library) *v2Facade {
	f := &v2Facade{facade: facade{listener: listener, name: name, library: library}}
	// Suite
	f.startSuite = f.method(EventStartSuite)
	f.endSuite = f.method(EventEndSuite)
	// Test
	f.startTest = f.method(EventStartTest)
	f.endTest = f.method(EventEndTest)
	// Keywords and control structures
	f.startKw = f.method(EventStartKeyword)
	f.endKw = f.method(EventEndKeyword)
	// Messages
	f.logMessage = f.method(EventLogMessage)
	f.message = f.method(EventMessage)
	// Close
	f.close = f.method(EventClose)
	return f
}

func (f *v2Facade) Version() int { return 2 }

// Imported calls "<kind>_import" with the name and attributes, e.g.
// library_import or resource_import.
func (f *v2Facade) Imported(kind, name string, attrs map[string]any) error {
	return f.method(importMethod(kind)).Call(name, attrs)
}

func (f *v2Facade) StartSuite(data *SuiteData, result *SuiteResult) error {
	return f.startSuite.Call(result.Name, SuiteAttributes(data, result, false))
}

func (f *v2Facade) EndSuite(data *SuiteData, result *SuiteResult) error {
	return f.endSuite.Call(result.Name, SuiteAttributes(data, result, true))
}

func (f *v2Facade) StartTest(data *TestData, result *TestResult) error {
	return f.startTest.Call(result.Name, TestAttributes(data, result, false))
}

func (f *v2Facade) EndTest(data *TestData, result *TestResult) error {
	return f.endTest.Call(result.Name, TestAttributes(data, result, true))
}

func (f *v2Facade) StartKeyword(data *KeywordData, result *KeywordResult) error {
	return f.startKw.Call(result.FullName(), KeywordAttributes(data, result, false))
}

func (f *v2Facade) EndKeyword(data *KeywordData, result *KeywordResult) error {
	return f.endKw.Call(result.FullName(), KeywordAttributes(data, result, true))
}

// The version 2 API has no separate methods for keyword implementations.

func (f *v2Facade) StartUserKeyword(data *KeywordData, _ *Implementation, result *KeywordResult) error {
	return f.StartKeyword(data, result)
}

func (f *v2Facade) EndUserKeyword(data *KeywordData, _ *Implementation, result *KeywordResult) error {
	return f.EndKeyword(data, result)
}

func (f *v2Facade) StartLibraryKeyword(data *KeywordData, _ *Implementation, result *KeywordResult) error {
	return f.StartKeyword(data, result)
}

func (f *v2Facade) EndLibraryKeyword(data *KeywordData, _ *Implementation, result *KeywordResult) error {
	return f.EndKeyword(data, result)
}

func (f *v2Facade) StartInvalidKeyword(data *KeywordData, _ *Implementation, result *KeywordResult) error {
	return f.StartKeyword(data, result)
}

func (f *v2Facade) EndInvalidKeyword(data *KeywordData, _ *Implementation, result *KeywordResult) error {
	return f.EndKeyword(data, result)
}

// startBody and endBody report a control structure as a keyword.
func startBody[R BodyItemResult](f *v2Facade, data *ItemData, result R, extra []attr[*ItemData, R]) error {
	return f.startKw.Call(result.LogName(), bodyItemAttributes(data, result, false, extra))
}

func endBody[R BodyItemResult](f *v2Facade, data *ItemData, result R, extra []attr[*ItemData, R]) error {
	return f.endKw.Call(result.LogName(), bodyItemAttributes(data, result, true, extra))
}

func (f *v2Facade) StartFor(data *ItemData, result *ForResult) error {
	return startBody(f, data, result, forAttrs)
}

func (f *v2Facade) EndFor(data *ItemData, result *ForResult) error {
	return endBody(f, data, result, forAttrs)
}

func (f *v2Facade) StartForIteration(data *ItemData, result *ForIterationResult) error {
	return startBody(f, data, result, forIterationAttrs)
}

func (f *v2Facade) EndForIteration(data *ItemData, result *ForIterationResult) error {
	return endBody(f, data, result, forIterationAttrs)
}

func (f *v2Facade) StartWhile(data *ItemData, result *WhileResult) error {
	return startBody(f, data, result, whileAttrs)
}

func (f *v2Facade) EndWhile(data *ItemData, result *WhileResult) error {
	return endBody(f, data, result, whileAttrs)
}

func (f *v2Facade) StartWhileIteration(data *ItemData, result *WhileIterationResult) error {
	return startBody(f, data, result, nil)
}

func (f *v2Facade) EndWhileIteration(data *ItemData, result *WhileIterationResult) error {
	return endBody(f, data, result, nil)
}

func (f *v2Facade) StartIf(data *ItemData, result *IfResult) error {
	return startBody(f, data, result, nil)
}

func (f *v2Facade) EndIf(data *ItemData, result *IfResult) error {
	return endBody(f, data, result, nil)
}

func (f *v2Facade) StartIfBranch(data *ItemData, result *IfBranchResult) error {
	return startBody(f, data, result, ifBranchAttrs)
}

func (f *v2Facade) EndIfBranch(data *ItemData, result *IfBranchResult) error {
	return endBody(f, data, result, ifBranchAttrs)
}

func (f *v2Facade) StartTry(data *ItemData, result *TryResult) error {
	return startBody(f, data, result, nil)
}

func (f *v2Facade) EndTry(data *ItemData, result *TryResult) error {
	return endBody(f, data, result, nil)
}

func (f *v2Facade) StartTryBranch(data *ItemData, result *TryBranchResult) error {
	return startBody(f, data, result, tryBranchAttrs)
}

func (f *v2Facade) EndTryBranch(data *ItemData, result *TryBranchResult) error {
	return endBody(f, data, result, tryBranchAttrs)
}

func (f *v2Facade) StartVar(data *ItemData, result *VarResult) error {
	return startBody(f, data, result, varAttrs)
}

func (f *v2Facade) EndVar(data *ItemData, result *VarResult) error {
	return endBody(f, data, result, varAttrs)
}

func (f *v2Facade) StartBreak(data *ItemData, result *BreakResult) error {
	return startBody(f, data, result, nil)
}

func (f *v2Facade) EndBreak(data *ItemData, result *BreakResult) error {
	return endBody(f, data, result, nil)
}

func (f *v2Facade) StartContinue(data *ItemData, result *ContinueResult) error {
	return startBody(f, data, result, nil)
}

func (f *v2Facade) EndContinue(data *ItemData, result *ContinueResult) error {
	return endBody(f, data, result, nil)
}

func (f *v2Facade) StartReturn(data *ItemData, result *ReturnResult) error {
	return startBody(f, data, result, returnAttrs)
}

func (f *v2Facade) EndReturn(data *ItemData, result *ReturnResult) error {
	return endBody(f, data, result, returnAttrs)
}

func (f *v2Facade) StartError(data *ItemData, result *ErrorResult) error {
	return startBody(f, data, result, nil)
}

func (f *v2Facade) EndError(data *ItemData, result *ErrorResult) error {
	return endBody(f, data, result, nil)
}

func (f *v2Facade) LogMessage(msg *Message) error {
	return f.logMessage.Call(MessageAttributes(msg))
}

func (f *v2Facade) Message(msg *Message) error {
	return f.message.Call(MessageAttributes(msg))
}

func (f *v2Facade) Close() error {
	return f.close.Call()
}

var _ Facade = (*v2Facade)(nil)
