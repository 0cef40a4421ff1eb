// Package main provides an interactive chat CLI over an OpenAI-compatible endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/minhyannv/chat-cli/pkg/provider"
	"github.com/minhyannv/chat-cli/pkg/session"

	loggerpkg "github.com/minhyannv/chat-cli/pkg/logger"
)

// main is the program entry point.
func main() {
	cfg := parseCLIConfig(os.Args[1:])

	appLogger := loggerpkg.NewWriterLogger(os.Stderr)
	completer := provider.New(cfg, provider.WithLogger(appLogger))
	s, err := session.New(completer,
		session.WithSystemPrompt(cfg.SystemPrompt),
		session.WithLogger(appLogger),
		session.WithVerbose(cfg.Verbose),
	)
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}

	if err := s.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err unless the session already showed it on the terminal.
func reportError(w io.Writer, err error) {
	var turnErr *session.TurnError
	if errors.As(err, &turnErr) {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}
