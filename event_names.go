package listen

import "strings"

// Event names. These are the canonical snake_case listener method names; the
// resolver also accepts their camelCase spelling.
const (
	// Suites and tests
	EventStartSuite = "start_suite"
	EventEndSuite   = "end_suite"
	EventStartTest  = "start_test"
	EventEndTest    = "end_test"

	// Keywords
	EventStartKeyword        = "start_keyword"
	EventEndKeyword          = "end_keyword"
	EventStartUserKeyword    = "start_user_keyword"
	EventEndUserKeyword      = "end_user_keyword"
	EventStartLibraryKeyword = "start_library_keyword"
	EventEndLibraryKeyword   = "end_library_keyword"
	EventStartInvalidKeyword = "start_invalid_keyword"
	EventEndInvalidKeyword   = "end_invalid_keyword"

	// Control structures
	EventStartFor            = "start_for"
	EventEndFor              = "end_for"
	EventStartForIteration   = "start_for_iteration"
	EventEndForIteration     = "end_for_iteration"
	EventStartWhile          = "start_while"
	EventEndWhile            = "end_while"
	EventStartWhileIteration = "start_while_iteration"
	EventEndWhileIteration   = "end_while_iteration"
	EventStartIf             = "start_if"
	EventEndIf               = "end_if"
	EventStartIfBranch       = "start_if_branch"
	EventEndIfBranch         = "end_if_branch"
	EventStartTry            = "start_try"
	EventEndTry              = "end_try"
	EventStartTryBranch      = "start_try_branch"
	EventEndTryBranch        = "end_try_branch"

	// Single statements
	EventStartVar      = "start_var"
	EventEndVar        = "end_var"
	EventStartBreak    = "start_break"
	EventEndBreak      = "end_break"
	EventStartContinue = "start_continue"
	EventEndContinue   = "end_continue"
	EventStartReturn   = "start_return"
	EventEndReturn     = "end_return"
	EventStartError    = "start_error"
	EventEndError      = "end_error"

	// Messages and other notifications
	EventLogMessage = "log_message"
	EventMessage    = "message"
	EventClose      = "close"
)

// EventNames lists every event a version 3 listener can implement, except
// the output file and import notifications whose method names depend on the
// file or import kind.
var EventNames = []string{
	EventStartSuite, EventEndSuite,
	EventStartTest, EventEndTest,
	EventStartKeyword, EventEndKeyword,
	EventStartUserKeyword, EventEndUserKeyword,
	EventStartLibraryKeyword, EventEndLibraryKeyword,
	EventStartInvalidKeyword, EventEndInvalidKeyword,
	EventStartFor, EventEndFor,
	EventStartForIteration, EventEndForIteration,
	EventStartWhile, EventEndWhile,
	EventStartWhileIteration, EventEndWhileIteration,
	EventStartIf, EventEndIf,
	EventStartIfBranch, EventEndIfBranch,
	EventStartTry, EventEndTry,
	EventStartTryBranch, EventEndTryBranch,
	EventStartVar, EventEndVar,
	EventStartBreak, EventEndBreak,
	EventStartContinue, EventEndContinue,
	EventStartReturn, EventEndReturn,
	EventStartError, EventEndError,
	EventLogMessage, EventMessage,
	EventClose,
}

// outputFileMethod returns the listener method name for an output file
// notification, e.g. "output_file" or "log_file".
func outputFileMethod(kind string) string {
	return strings.ToLower(kind) + "_file"
}

// importMethod returns the legacy listener method name for an import
// notification, e.g. "library_import".
func importMethod(kind string) string {
	return strings.ToLower(kind) + "_import"
}
