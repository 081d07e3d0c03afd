// Package projection builds per chat histories from observed events.
// Handles ordering and deduplication.
// Does not emit events or interact with UI directly.
package projection

import (
	"chat-box/domain"
	"chat-box/domain/event"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// History keeps the messages of every chat, oldest first.
// It is fed by the fanout goroutine and read by the host.
type History struct {
	mu     sync.RWMutex
	limit  int
	chats  map[domain.ChatID][]domain.Message
	seen   map[uuid.UUID]struct{}
	typing map[domain.ChatID]map[domain.UserID]bool
}

// NewHistory keeps at most limit messages per chat, 0 means unbounded.
func NewHistory(limit int) *History {
	return &History{
		limit:  limit,
		chats:  make(map[domain.ChatID][]domain.Message),
		seen:   make(map[uuid.UUID]struct{}),
		typing: make(map[domain.ChatID]map[domain.UserID]bool),
	}
}

func (h *History) Name() string { return "history" }

func (h *History) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessagePosted:
		h.Append(evt.Chat, evt.Message)
	case event.TypingChanged:
		h.setTyping(evt)
	}
	return nil
}

// Append stores msg in time order. A message id already stored is ignored.
func (h *History) Append(chat domain.ChatID, msg domain.Message) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if msg.ID != uuid.Nil {
		if _, ok := h.seen[msg.ID]; ok {
			return false
		}
		h.seen[msg.ID] = struct{}{}
	}
	msgs := append(h.chats[chat], msg)
	// Feeds may deliver slightly out of order
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Time.Before(msgs[j].Time) })
	if h.limit > 0 && len(msgs) > h.limit {
		msgs = msgs[len(msgs)-h.limit:]
	}
	h.chats[chat] = msgs
	return true
}

// Messages returns a copy of the chat history.
func (h *History) Messages(chat domain.ChatID) []domain.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]domain.Message(nil), h.chats[chat]...)
}

// Chats lists the chats having at least one message, sorted by id.
func (h *History) Chats() []domain.ChatID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := lo.Keys(h.chats)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Typing reports who is typing in chat.
func (h *History) Typing(chat domain.ChatID) []domain.UserID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	users := lo.Keys(lo.PickBy(h.typing[chat], func(_ domain.UserID, typing bool) bool { return typing }))
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users
}

func (h *History) setTyping(evt event.TypingChanged) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.typing[evt.Chat] == nil {
		h.typing[evt.Chat] = make(map[domain.UserID]bool)
	}
	h.typing[evt.Chat][evt.User] = evt.Typing
}
