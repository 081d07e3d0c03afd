package projection

import (
	"chat-box/domain"
	"chat-box/domain/event"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHistory_Consume(t *testing.T) {
	req := require.New(t)
	h := NewHistory(0)
	at := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	late := domain.NewTextMessage("u1", "second", at.Add(time.Minute))
	early := domain.NewTextMessage("u2", "first", at)

	// Given two messages delivered out of order, one of them twice
	req.NoError(h.Consume(context.Background(), event.MessagePosted{Chat: "c1", Message: late}))
	req.NoError(h.Consume(context.Background(), event.MessagePosted{Chat: "c1", Message: early}))
	req.NoError(h.Consume(context.Background(), event.MessagePosted{Chat: "c1", Message: late}))

	// Then the history is ordered and deduplicated
	msgs := h.Messages("c1")
	req.Len(msgs, 2)
	req.Equal("first", msgs[0].Text)
	req.Equal("second", msgs[1].Text)
	req.Equal([]domain.ChatID{"c1"}, h.Chats())
	req.Empty(h.Messages("c2"))
}

func TestHistory_Limit(t *testing.T) {
	req := require.New(t)
	h := NewHistory(2)
	at := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

	for i, text := range []string{"a", "b", "c"} {
		h.Append("c1", domain.NewTextMessage("u1", text, at.Add(time.Duration(i)*time.Second)))
	}

	msgs := h.Messages("c1")
	req.Len(msgs, 2)
	req.Equal("b", msgs[0].Text)
	req.Equal("c", msgs[1].Text)
}

func TestHistory_Typing(t *testing.T) {
	req := require.New(t)
	h := NewHistory(0)
	ctx := context.Background()

	req.NoError(h.Consume(ctx, event.TypingChanged{Chat: "c1", User: "u2", Typing: true}))
	req.NoError(h.Consume(ctx, event.TypingChanged{Chat: "c1", User: "u1", Typing: true}))
	req.Equal([]domain.UserID{"u1", "u2"}, h.Typing("c1"))

	req.NoError(h.Consume(ctx, event.TypingChanged{Chat: "c1", User: "u1", Typing: false}))
	req.Equal([]domain.UserID{"u2"}, h.Typing("c1"))
}
