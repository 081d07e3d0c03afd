package main

import (
	"chat-box/contract"
	"chat-box/domain/event"
	"chat-box/feed"
	"chat-box/internal"
	"chat-box/projection"
	"chat-box/roster"
	"chat-box/runtime/workers"
	"chat-box/tui"
	"chat-box/widgets"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const eventBuffer = 64

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the chat window",
		Long: "Open the chat window. Messages come from NATS when NATS_URL is set, " +
			"otherwise the roster transcript is played back.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, file, err := setup()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runChat(ctx, config, file)
		},
	}
}

// runChat owns the terminal: logs go to LOG_FILE while the program runs.
func runChat(ctx context.Context, config internal.Config, file *roster.File) error {
	logFile, err := tea.LogToFile(config.LogFile, "chatbox")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	log := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: config.Level()}))

	moderator, err := newModerator(config, log)
	if err != nil {
		return err
	}

	events := make(chan event.DomainEvent, eventBuffer)
	sup := workers.NewSupervisor(log, config.RestartInterval)
	history := projection.NewHistory(config.HistoryLimit)

	var publisher contract.Publisher
	if config.NatsURL != "" {
		nf := feed.NewNATSFeed(log, config.NatsURL, config.NatsSubject, events)
		sup.Add(nf)
		publisher = nf
	} else {
		sup.Add(feed.NewTranscriptFeed(log, file.Events(), config.ReplayDelay, events))
	}

	theme := widgets.ThemeByName(config.Theme, config.Palette())
	app, err := tui.NewApp(ctx, log, file.Chats, tui.Options{
		Me:              me(config, file),
		Title:           config.Title,
		ReadOnly:        config.ReadOnly,
		ScrollThreshold: config.ScrollThreshold,
		Theme:           &theme,
		Filter:          moderator,
		Publisher:       publisher,
		History:         history,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	sup.Add(workers.NewEventFanout(log, events, config.SinkTimeout, history, tui.NewProgramSink(program.Send)))

	supCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		sup.Run(supCtx)
	}()
	log.Info("Chat window started", "chats", len(file.Chats), "nats", config.NatsURL != "")

	_, err = program.Run()
	cancel()
	<-done
	log.Info("Chat window closed")

	// Cancelled context kills the program, a panic is still a failure
	if err != nil && (!errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrProgramPanic)) {
		return fmt.Errorf("terminal program failed: %w", err)
	}
	return nil
}
