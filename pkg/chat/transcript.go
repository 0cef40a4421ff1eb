package chat

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Transcript is the ordered, append-only message history of one session.
type Transcript struct {
	messages []Message
}

// NewTranscript returns a transcript seeded with a single system message.
func NewTranscript(systemPrompt string) *Transcript {
	return &Transcript{messages: []Message{SystemMessage(systemPrompt)}}
}

// Append adds msg to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

// Len reports the number of messages, including the system seed.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy of the history in insertion order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// WriteTo renders the transcript as a YAML sequence of role/content entries.
func (t *Transcript) WriteTo(w io.Writer) (int64, error) {
	b, err := yaml.Marshal(t.messages)
	if err != nil {
		return 0, fmt.Errorf("encode transcript: %w", err)
	}
	n, err := w.Write(b)
	return int64(n), err
}
