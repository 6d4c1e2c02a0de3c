package replay

import "github.com/rickchristie/listen"

// dispatcher knows how to build the objects of one event and how to deliver
// it.
type dispatcher struct {
	newData        func() any
	newResult      func() any
	implementation bool
	call           func(e listen.Events, s *Step) error
}

func pair[D, R any](fn func(listen.Events, *D, *R) error) dispatcher {
	return dispatcher{
		newData:   func() any { return new(D) },
		newResult: func() any { return new(R) },
		call: func(e listen.Events, s *Step) error {
			return fn(e, s.Data.(*D), s.Result.(*R))
		},
	}
}

func keyword(
	fn func(listen.Events, *listen.KeywordData, *listen.Implementation, *listen.KeywordResult) error,
) dispatcher {
	return dispatcher{
		newData:        func() any { return &listen.KeywordData{} },
		newResult:      func() any { return &listen.KeywordResult{} },
		implementation: true,
		call: func(e listen.Events, s *Step) error {
			return fn(e, s.Data.(*listen.KeywordData), s.Implementation, s.Result.(*listen.KeywordResult))
		},
	}
}

var dispatchers = map[string]dispatcher{
	listen.EventStartSuite: pair(listen.Events.StartSuite),
	listen.EventEndSuite:   pair(listen.Events.EndSuite),
	listen.EventStartTest:  pair(listen.Events.StartTest),
	listen.EventEndTest:    pair(listen.Events.EndTest),

	listen.EventStartKeyword:        pair(listen.Events.StartKeyword),
	listen.EventEndKeyword:          pair(listen.Events.EndKeyword),
	listen.EventStartUserKeyword:    keyword(listen.Events.StartUserKeyword),
	listen.EventEndUserKeyword:      keyword(listen.Events.EndUserKeyword),
	listen.EventStartLibraryKeyword: keyword(listen.Events.StartLibraryKeyword),
	listen.EventEndLibraryKeyword:   keyword(listen.Events.EndLibraryKeyword),
	listen.EventStartInvalidKeyword: keyword(listen.Events.StartInvalidKeyword),
	listen.EventEndInvalidKeyword:   keyword(listen.Events.EndInvalidKeyword),

	listen.EventStartFor:            pair(listen.Events.StartFor),
	listen.EventEndFor:              pair(listen.Events.EndFor),
	listen.EventStartForIteration:   pair(listen.Events.StartForIteration),
	listen.EventEndForIteration:     pair(listen.Events.EndForIteration),
	listen.EventStartWhile:          pair(listen.Events.StartWhile),
	listen.EventEndWhile:            pair(listen.Events.EndWhile),
	listen.EventStartWhileIteration: pair(listen.Events.StartWhileIteration),
	listen.EventEndWhileIteration:   pair(listen.Events.EndWhileIteration),
	listen.EventStartIf:             pair(listen.Events.StartIf),
	listen.EventEndIf:               pair(listen.Events.EndIf),
	listen.EventStartIfBranch:       pair(listen.Events.StartIfBranch),
	listen.EventEndIfBranch:         pair(listen.Events.EndIfBranch),
	listen.EventStartTry:            pair(listen.Events.StartTry),
	listen.EventEndTry:              pair(listen.Events.EndTry),
	listen.EventStartTryBranch:      pair(listen.Events.StartTryBranch),
	listen.EventEndTryBranch:        pair(listen.Events.EndTryBranch),

	listen.EventStartVar:      pair(listen.Events.StartVar),
	listen.EventEndVar:        pair(listen.Events.EndVar),
	listen.EventStartBreak:    pair(listen.Events.StartBreak),
	listen.EventEndBreak:      pair(listen.Events.EndBreak),
	listen.EventStartContinue: pair(listen.Events.StartContinue),
	listen.EventEndContinue:   pair(listen.Events.EndContinue),
	listen.EventStartReturn:   pair(listen.Events.StartReturn),
	listen.EventEndReturn:     pair(listen.Events.EndReturn),
	listen.EventStartError:    pair(listen.Events.StartError),
	listen.EventEndError:      pair(listen.Events.EndError),
}

// deliver sends the step to e. Steps that are not events are ignored.
func deliver(e listen.Events, s *Step) error {
	if d, ok := dispatchers[s.Event]; ok {
		return d.call(e, s)
	}
	switch s.Event {
	case listen.EventLogMessage:
		return e.LogMessage(s.Message)
	case listen.EventMessage:
		return e.Message(s.Message)
	case StepImported:
		return e.Imported(s.Kind, s.Name, s.Attrs)
	case StepOutputFile:
		return e.OutputFile(s.Kind, s.Path)
	case listen.EventClose:
		return e.Close()
	}
	return nil
}
