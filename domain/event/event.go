package event

import (
	"chat-box/audio"
	"chat-box/domain"
	"time"
)

// Kind names an event travelling on a component bus.
type Kind string

const (
	ChatSelected         Kind = "chat-selected"
	UserSignedIn         Kind = "user-signed-in"
	AuthedUserNewMessage Kind = "authed-user-new-message"
	ChatBoxBackClicked   Kind = "chat-box-back-clicked"
	UserTyping           Kind = "user-typing"
	UserStopTyping       Kind = "user-stop-typing"
	ProfileBtnClick      Kind = "profile-btn-click"

	// Host input events dispatched onto a component bus.
	Click          Kind = "click"
	Scroll         Kind = "scroll"
	ScrollToBottom Kind = "scroll-to-bottom"
)

type ChatSelectedDetail struct {
	ID domain.ChatID
}

type UserSignedInDetail struct {
	ID domain.UserID
}

// AuthedMessageDetail is filled progressively: the input sets the content,
// the chat box adds ToChat and Sender before re-emitting it.
type AuthedMessageDetail struct {
	Text   string
	Audio  *audio.AudioRef
	ToChat domain.ChatID
	Sender domain.UserID
	At     time.Time
}

// DomainEvent is what feeds hand over to sinks.
type DomainEvent interface {
	ChatID() domain.ChatID
}

type MessagePosted struct {
	Chat    domain.ChatID
	Message domain.Message
}

func (m MessagePosted) ChatID() domain.ChatID {
	return m.Chat
}

type TypingChanged struct {
	Chat   domain.ChatID
	User   domain.UserID
	Typing bool
}

func (t TypingChanged) ChatID() domain.ChatID {
	return t.Chat
}
