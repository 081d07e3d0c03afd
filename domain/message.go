// Package domain contains core concepts of the chat system.
// This file defines Message values and the rules a timeline relies on.
// Messages are immutable and validated by the domain.
package domain

import (
	"chat-box/audio"
	"chat-box/errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type UserID string

// Message represents an immutable chat event.
// Exactly one of Text and Audio is set.
type Message struct {
	ID     uuid.UUID       // unique identifier
	Sender UserID          `validate:"required"`
	Text   string          `validate:"required_without=Audio,excluded_with=Audio"`
	Audio  *audio.AudioRef `validate:"required_without=Text"`
	Time   time.Time
}

func NewTextMessage(sender UserID, text string, at time.Time) Message {
	return Message{ID: uuid.New(), Sender: sender, Text: text, Time: at}
}

func NewAudioMessage(sender UserID, ref audio.AudioRef, at time.Time) Message {
	return Message{ID: uuid.New(), Sender: sender, Audio: &ref, Time: at}
}

// Validate reports why a message cannot be rendered.
func (m Message) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidMessage, err)
	}
	if m.Time.IsZero() {
		return errors.ErrInvalidTime
	}
	return nil
}

func (m Message) IsAudio() bool {
	return m.Audio != nil
}
