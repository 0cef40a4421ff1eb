package main

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"

	configpkg "github.com/minhyannv/chat-cli/pkg/config"
)

// parseCLIConfig loads .env, the environment and flags into runtime config.
func parseCLIConfig(args []string) configpkg.Config {
	_ = godotenv.Load()
	return buildConfig(flag.CommandLine, args, os.Getenv)
}

func buildConfig(fs *flag.FlagSet, args []string, getenv func(string) string) configpkg.Config {
	cfg := configpkg.FromEnv(configpkg.DefaultConfig(), getenv)

	verbose := fs.Bool("verbose", cfg.Verbose, "Verbose request logging to stderr")
	model := fs.String("model", cfg.Model, "Chat model name (overrides OPENAI_MODEL)")
	system := fs.String("system", cfg.SystemPrompt, "System instruction that seeds the conversation")
	// flag.CommandLine exits on its own parse errors.
	_ = fs.Parse(args)

	cfg.Verbose = *verbose
	cfg.Model = strings.TrimSpace(*model)
	cfg.SystemPrompt = *system
	return configpkg.Normalize(cfg)
}
