// Package feed brings chat events into the process: from a NATS subject tree
// or from a recorded transcript.
package feed

import (
	"chat-box/audio"
	"chat-box/domain"
	"chat-box/domain/event"
	"chat-box/errors"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	KindMessage    = "message"
	KindTyping     = "typing"
	KindStopTyping = "stop-typing"
)

// Envelope is the JSON payload published on <subject>.<conversationId>.
type Envelope struct {
	Kind           string    `json:"kind"`
	ID             string    `json:"id,omitempty"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Text           string    `json:"text,omitempty"`
	AudioURL       string    `json:"audioUrl,omitempty"`
	AudioDuration  float64   `json:"audioDuration,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Decode reads an envelope. When the payload has no conversation id the last
// token of the subject is used.
func Decode(subject string, data []byte) (event.DomainEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidEnvelope, err)
	}
	if env.ConversationID == "" {
		if i := strings.LastIndexByte(subject, '.'); i >= 0 {
			env.ConversationID = subject[i+1:]
		}
	}
	if env.ConversationID == "" || env.SenderID == "" {
		return nil, fmt.Errorf("%w: conversation and sender are required", errors.ErrInvalidEnvelope)
	}
	chat := domain.ChatID(env.ConversationID)
	sender := domain.UserID(env.SenderID)

	switch env.Kind {
	case KindTyping, KindStopTyping:
		return event.TypingChanged{Chat: chat, User: sender, Typing: env.Kind == KindTyping}, nil
	case KindMessage, "":
		id, err := uuid.Parse(env.ID)
		if err != nil {
			id = uuid.New()
		}
		msg := domain.Message{ID: id, Sender: sender, Text: env.Text, Time: env.CreatedAt}
		if env.AudioURL != "" {
			msg.Audio = &audio.AudioRef{URL: env.AudioURL, Duration: env.AudioDuration}
		}
		return event.MessagePosted{Chat: chat, Message: msg}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", errors.ErrInvalidEnvelope, env.Kind)
	}
}

// Encode is the inverse of Decode for posted messages.
func Encode(e event.MessagePosted) ([]byte, error) {
	env := Envelope{
		Kind:           KindMessage,
		ID:             e.Message.ID.String(),
		ConversationID: string(e.Chat),
		SenderID:       string(e.Message.Sender),
		Text:           e.Message.Text,
		CreatedAt:      e.Message.Time,
	}
	if e.Message.Audio != nil {
		env.AudioURL = e.Message.Audio.URL
		env.AudioDuration = e.Message.Audio.Duration
	}
	return json.Marshal(env)
}
