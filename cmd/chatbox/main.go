package main

import (
	"chat-box/domain"
	"chat-box/internal"
	"chat-box/moderation"
	"chat-box/roster"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chatbox",
		Short:         "Terminal chat window with a live message timeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newRunCommand(), newReplayCommand(), newRosterCommand())
	return cmd
}

// setup loads the optional .env file, then the configuration and the roster.
func setup() (internal.Config, *roster.File, error) {
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return internal.Config{}, nil, err
	}
	file, err := roster.Load(config.RosterFile)
	if err != nil {
		return internal.Config{}, nil, err
	}
	return config, file, nil
}

func stdoutLogger(config internal.Config) *slog.Logger {
	return logs.GetLoggerFromString(config.LogLevel)
}

// me prefers the roster owner over AUTHED_USER_ID.
func me(config internal.Config, file *roster.File) domain.UserID {
	return lo.Ternary(file.Me != "", file.Me, domain.UserID(config.AuthedUserID))
}

// newModerator merges the shipped dictionaries with CENSORED_WORDS.
func newModerator(config internal.Config, log *slog.Logger) (*moderation.Moderator, error) {
	dict, err := moderation.DefaultDictionary()
	if err != nil {
		return nil, fmt.Errorf("loading dictionaries: %w", err)
	}
	mask, err := internal.CharacterRune(config.CensorCharacter)
	if err != nil {
		return nil, err
	}
	words := lo.Uniq(append(dict.Words, config.Words()...))
	log.Debug("Moderation ready", "languages", dict.Languages, "words", len(words))
	return moderation.NewModerator(words, mask, log)
}
