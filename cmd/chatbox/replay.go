package main

import (
	"chat-box/domain"
	"chat-box/internal"
	"chat-box/projection"
	"chat-box/roster"
	"chat-box/tui"
	"chat-box/widgets"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

func newReplayCommand() *cobra.Command {
	var chat string
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Print the transcript as the chat box lays it out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, file, err := setup()
			if err != nil {
				return err
			}
			return replay(cmd.Context(), cmd.OutOrStdout(), stdoutLogger(config), config, file, domain.ChatID(chat))
		},
	}
	cmd.Flags().StringVar(&chat, "chat", "", "only replay this chat")
	return cmd
}

// replay renders every chat of the roster in a headless chat box and prints
// its timeline: day separators, then one line per bubble.
func replay(ctx context.Context, w io.Writer, log *slog.Logger, config internal.Config, file *roster.File, only domain.ChatID) error {
	moderator, err := newModerator(config, log)
	if err != nil {
		return err
	}
	history := projection.NewHistory(config.HistoryLimit)
	for _, evt := range file.Events() {
		if err := history.Consume(ctx, evt); err != nil {
			return err
		}
	}

	box := widgets.NewChatBox(log, nil, tui.NewViewport(widgets.DefaultWidth, len(file.Transcript)+1),
		widgets.WithFilter(moderator),
		widgets.WithScrollThreshold(config.ScrollThreshold),
	)
	box.SignIn(me(config, file))

	for _, chat := range file.Chats {
		if only != "" && chat.ID != only {
			continue
		}
		box.SetActiveChat(&chat)
		for _, msg := range history.Messages(chat.ID) {
			box.RenderMessage(msg, false)
		}

		header := fmt.Sprintf(" %s (%s) ", chat.Name, chat.ID)
		if _, err := fmt.Fprintln(w, color.New(color.BgBlack, color.FgGreen).Render(header)); err != nil {
			return err
		}
		for _, line := range box.Labels() {
			if _, err := fmt.Fprintln(w, "  "+line); err != nil {
				return err
			}
		}
	}
	return nil
}
