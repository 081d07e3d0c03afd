package tui

import (
	"chat-box/domain/event"
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// IncomingMsg carries a feed event into the Update loop.
type IncomingMsg struct {
	Event event.DomainEvent
}

// ProgramSink hands feed events to the bubbletea program. Components are only
// touched from Update.
type ProgramSink struct {
	send func(tea.Msg)
}

func NewProgramSink(send func(tea.Msg)) *ProgramSink {
	return &ProgramSink{send: send}
}

func (s *ProgramSink) Name() string { return "program" }

func (s *ProgramSink) Consume(ctx context.Context, e event.DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.send(IncomingMsg{Event: e})
	return nil
}
