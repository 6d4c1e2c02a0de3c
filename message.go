package listen

import "time"

// Message is a log message or a system message.
type Message struct {
	Timestamp time.Time `yaml:"timestamp"`
	Message   string    `yaml:"message"`
	Level     string    `yaml:"level"`
	HTML      bool      `yaml:"html"`
}
