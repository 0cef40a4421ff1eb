// Package session runs the interactive conversation loop.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/minhyannv/chat-cli/pkg/chat"
	configpkg "github.com/minhyannv/chat-cli/pkg/config"
	loggerpkg "github.com/minhyannv/chat-cli/pkg/logger"
)

const (
	promptPrefix  = "You: "
	replyPrefix   = "AI: "
	exitCommand   = "exit"
	historyHeader = "---- Message History ----"
)

// TurnError is returned when the completer fails during a turn.
// Run has already shown it to the user when it returns one.
type TurnError struct {
	Turn int
	Err  error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("complete turn %d: %v", e.Turn, e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}

// Session owns one conversation transcript and the completer that extends it.
type Session struct {
	id         string
	completer  chat.Completer
	transcript *chat.Transcript
	turns      int

	logger  loggerpkg.Logger
	verbose bool
}

// New builds a Session whose transcript holds only the system prompt.
func New(completer chat.Completer, opts ...Option) (*Session, error) {
	if completer == nil {
		return nil, errors.New("completer is required")
	}

	deps := sessionDeps{
		systemPrompt: configpkg.DefaultSystemPrompt,
		logger:       loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if strings.TrimSpace(deps.systemPrompt) == "" {
		return nil, errors.New("system prompt is empty")
	}
	if deps.logger == nil {
		deps.logger = loggerpkg.NopLogger{}
	}
	if deps.id == "" {
		deps.id = uuid.NewString()
	}

	s := &Session{
		id:         deps.id,
		completer:  completer,
		transcript: chat.NewTranscript(deps.systemPrompt),
		logger:     loggerpkg.With(deps.logger, loggerpkg.Fields{"session": deps.id}),
		verbose:    deps.verbose,
	}
	loggerpkg.Debug(s.verbose, s.logger, "session init", map[string]any{
		"system_prompt_bytes": len(deps.systemPrompt),
	})
	return s, nil
}

// ID identifies the session in log records.
func (s *Session) ID() string {
	return s.id
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []chat.Message {
	return s.transcript.Messages()
}

// Turn appends input as a user message, asks the completer for a reply with the
// whole transcript as context, and appends the reply.
// On failure the user message is kept and no assistant message is added.
func (s *Session) Turn(ctx context.Context, input string) (string, error) {
	turn := s.turns + 1
	s.transcript.Append(chat.UserMessage(input))
	loggerpkg.Debug(s.verbose, s.logger, "turn start", map[string]any{
		"turn":        turn,
		"input_bytes": len(input),
		"messages":    s.transcript.Len(),
	})

	reply, err := s.completer.Complete(ctx, s.transcript.Messages())
	if err != nil {
		loggerpkg.Debug(s.verbose, s.logger, "completion failed", map[string]any{
			"turn":  turn,
			"error": err.Error(),
		})
		return "", &TurnError{Turn: turn, Err: err}
	}

	s.transcript.Append(chat.AssistantMessage(reply))
	s.turns = turn
	loggerpkg.Debug(s.verbose, s.logger, "turn complete", map[string]any{
		"turn":        turn,
		"reply_bytes": len(reply),
		"messages":    s.transcript.Len(),
	})
	return reply, nil
}

// Run reads lines from in until "exit" (any case) or end of input, sending each
// one through Turn and echoing the reply to out. On normal termination the full
// transcript is written to out. A completion failure is printed to out and
// returned as a *TurnError.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if in == nil {
		return errors.New("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	reader := bufio.NewReader(in)
	for {
		_, _ = fmt.Fprint(out, promptPrefix)
		input, ok, err := readLine(reader)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if !ok {
			loggerpkg.Debug(s.verbose, s.logger, "end of input", nil)
			_, _ = fmt.Fprintln(out)
			break
		}
		if strings.EqualFold(input, exitCommand) {
			break
		}

		reply, err := s.Turn(ctx, input)
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
			return err
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", replyPrefix, reply)
	}

	loggerpkg.Debug(s.verbose, s.logger, "session end", map[string]any{
		"turns":    s.turns,
		"messages": s.transcript.Len(),
	})
	return s.WriteHistory(out)
}

// WriteHistory prints the history header followed by the transcript dump.
func (s *Session) WriteHistory(out io.Writer) error {
	if _, err := fmt.Fprintln(out, historyHeader); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if _, err := s.transcript.WriteTo(out); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// readLine returns the next line without its line terminator.
// ok is false once input is exhausted; a final unterminated line is still returned.
func readLine(r *bufio.Reader) (string, bool, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
		if line == "" {
			return "", false, nil
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}
