// Package roster reads the chats and the optional transcript the terminal
// host starts with.
package roster

import (
	"chat-box/audio"
	"chat-box/domain"
	"chat-box/domain/event"
	"chat-box/errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// File is the YAML document:
//
//	me: u0
//	chats:
//	  - id: c1
//	    name: Alice
//	transcript:
//	  - chat: c1
//	    sender: u1
//	    text: hi
//	    at: 2024-01-01T10:00:00Z
type File struct {
	Me         domain.UserID `yaml:"me"`
	Chats      []domain.Chat `yaml:"chats"`
	Transcript []Entry       `yaml:"transcript"`
}

// Entry is one line of a transcript: a message, or a typing toggle when
// Typing is set.
type Entry struct {
	Chat     domain.ChatID `yaml:"chat"`
	Sender   domain.UserID `yaml:"sender"`
	Text     string        `yaml:"text,omitempty"`
	Audio    string        `yaml:"audio,omitempty"`
	Duration float64       `yaml:"duration,omitempty"`
	At       time.Time     `yaml:"at"`
	Typing   *bool         `yaml:"typing,omitempty"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidRoster, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate requires named chats with unique ids and transcript lines
// pointing at a listed chat.
func (f *File) Validate() error {
	for i, c := range f.Chats {
		if !c.IsValid() || c.Name == "" {
			return fmt.Errorf("%w: chat #%d needs an id and a name", errors.ErrInvalidRoster, i)
		}
	}
	if dup := lo.FindDuplicatesBy(f.Chats, func(c domain.Chat) domain.ChatID { return c.ID }); len(dup) > 0 {
		return fmt.Errorf("%w: duplicated chat %q", errors.ErrInvalidRoster, dup[0].ID)
	}
	for i, e := range f.Transcript {
		if f.Chat(e.Chat) == nil {
			return fmt.Errorf("%w: transcript line %d: %w %q", errors.ErrInvalidRoster, i, errors.ErrUnknownChat, e.Chat)
		}
	}
	return nil
}

func (f *File) Chat(id domain.ChatID) *domain.Chat {
	c, ok := lo.Find(f.Chats, func(c domain.Chat) bool { return c.ID == id })
	if !ok {
		return nil
	}
	return &c
}

// Events turns the transcript into feed events. Message ids are derived from
// the chat and the line number so replays are idempotent.
func (f *File) Events() []event.DomainEvent {
	return lo.Map(f.Transcript, func(e Entry, i int) event.DomainEvent {
		return e.Event(i)
	})
}

func (e Entry) Event(line int) event.DomainEvent {
	if e.Typing != nil {
		return event.TypingChanged{Chat: e.Chat, User: e.Sender, Typing: *e.Typing}
	}
	msg := domain.Message{
		ID:     uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("chat-box:%s:%d", e.Chat, line))),
		Sender: e.Sender,
		Text:   e.Text,
		Time:   e.At,
	}
	if e.Audio != "" {
		msg.Text = ""
		msg.Audio = &audio.AudioRef{URL: e.Audio, Duration: e.Duration}
	}
	return event.MessagePosted{Chat: e.Chat, Message: msg}
}
