package replay

import (
	"errors"
	"fmt"
	"io"

	"github.com/rickchristie/listen"
	"gopkg.in/yaml.v3"
)

// Step names that are not listener events.
const (
	StepImported    = "imported"
	StepOutputFile  = "output_file"
	StepSetLogLevel = "set_log_level"
	StepRegister    = "register"
	StepUnregister  = "unregister"
)

// Step is one entry of an event stream.
//
// Data and Result hold the typed objects for the event, e.g. *listen.TestData
// and *listen.TestResult for end_test.
type Step struct {
	Event          string
	Data           any
	Implementation *listen.Implementation
	Result         any
	Message        *listen.Message

	// Kind is the import kind for imported steps or the file kind for
	// output_file steps.
	Kind  string
	Name  string
	Path  string
	Attrs map[string]any
	Level string

	// Library names the library of register and unregister steps.
	Library   string
	Listeners []string
	Close     bool
}

type rawStep struct {
	Event          string                 `yaml:"event"`
	Data           yaml.Node              `yaml:"data"`
	Implementation *listen.Implementation `yaml:"implementation"`
	Result         yaml.Node              `yaml:"result"`
	Message        *listen.Message        `yaml:"message"`
	Kind           string                 `yaml:"kind"`
	Name           string                 `yaml:"name"`
	Path           string                 `yaml:"path"`
	Attrs          map[string]any         `yaml:"attrs"`
	Level          string                 `yaml:"level"`
	Library        string                 `yaml:"library"`
	Listeners      []string               `yaml:"listeners"`
	Close          bool                   `yaml:"close"`
}

// Decode reads a YAML sequence of steps.
//
//	- event: start_test
//	  data: {id: s1-t1, name: Login}
//	  result: {name: Login, status: NOT SET}
//	- event: log_message
//	  message: {message: Logged in, level: INFO}
//
// Unknown events are errors.
func Decode(r io.Reader) ([]*Step, error) {
	var raw []rawStep
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding event stream: %w", err)
	}
	steps := make([]*Step, len(raw))
	for i := range raw {
		s, err := raw[i].step()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		steps[i] = s
	}
	return steps, nil
}

func (r *rawStep) step() (*Step, error) {
	s := &Step{
		Event:          r.Event,
		Implementation: r.Implementation,
		Message:        r.Message,
		Kind:           r.Kind,
		Name:           r.Name,
		Path:           r.Path,
		Attrs:          r.Attrs,
		Level:          r.Level,
		Library:        r.Library,
		Listeners:      r.Listeners,
		Close:          r.Close,
	}
	if d, ok := dispatchers[r.Event]; ok {
		s.Data = d.newData()
		s.Result = d.newResult()
		if err := decodeNode(&r.Data, s.Data); err != nil {
			return nil, fmt.Errorf("%s data: %w", r.Event, err)
		}
		if err := decodeNode(&r.Result, s.Result); err != nil {
			return nil, fmt.Errorf("%s result: %w", r.Event, err)
		}
		if d.implementation && s.Implementation == nil {
			s.Implementation = &listen.Implementation{}
		}
		return s, nil
	}
	switch r.Event {
	case listen.EventLogMessage, listen.EventMessage:
		if s.Message == nil {
			return nil, fmt.Errorf("%s without message", r.Event)
		}
	case StepSetLogLevel:
		if s.Level == "" {
			return nil, fmt.Errorf("%s without level", r.Event)
		}
	case StepRegister, StepUnregister:
		if s.Library == "" {
			return nil, fmt.Errorf("%s without library", r.Event)
		}
	case StepImported, StepOutputFile, listen.EventClose:
	case "":
		return nil, fmt.Errorf("missing event")
	default:
		return nil, fmt.Errorf("unknown event %q", r.Event)
	}
	return s, nil
}

func decodeNode(n *yaml.Node, v any) error {
	if n.Kind == 0 {
		return nil
	}
	return n.Decode(v)
}
