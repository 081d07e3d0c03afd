package widgets

import (
	"chat-box/bus"
	"chat-box/domain"
	"chat-box/domain/event"
	"chat-box/errors"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestChatListItem_RequiresID(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given a chat without identity
	// When the item is built
	_, err := NewChatListItem(log, nil, DefaultTheme(), domain.Chat{Name: "Alice"})

	// Then construction fails
	req.ErrorIs(err, errors.ErrMissingRequiredAttr)
}

func TestChatListItem_UnreadBadge(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	item, err := NewChatListItem(log, nil, DefaultTheme(), domain.Chat{ID: "c1", Name: "Alice"})
	req.NoError(err)
	req.False(item.Has("unreadcount"))

	// When three messages arrive
	item.IncrementUnreadCount()
	item.IncrementUnreadCount()
	item.IncrementUnreadCount()

	// Then the badge shows 3
	req.Equal(3, item.UnreadCount())
	req.True(item.Unread())
	req.Contains(item.View(), "3")

	// When the chat is read
	item.MarkAllAsRead()

	// Then the badge is hidden and the counter is 0
	req.Equal(0, item.UnreadCount())
	raw, ok := item.Raw("unreadcount")
	req.True(ok)
	req.Equal("0", raw)
	req.False(item.Unread())
	req.False(item.Has("unread"))
}

func TestChatListItem_UnparsableCountStartsFromZero(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	item, err := NewChatListItem(log, nil, DefaultTheme(), domain.Chat{ID: "c1", Name: "Alice"})
	req.NoError(err)

	item.SetString("unreadcount", "lots")
	item.IncrementUnreadCount()

	req.Equal(1, item.UnreadCount())
}

func TestChatListItem_UnreadFollowsLeadingInteger(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	item, err := NewChatListItem(log, nil, DefaultTheme(), domain.Chat{ID: "c1", Name: "Alice"})
	req.NoError(err)

	item.SetString("unreadcount", "3px")

	req.Equal(3, item.UnreadCount())
	req.True(item.Unread())

	item.SetString("unreadcount", "lots")

	req.Equal(0, item.UnreadCount())
	req.False(item.Unread())
}

func TestChatListItem_Click(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	root := bus.New("app", nil)
	var selected []domain.ChatID
	root.Subscribe(event.ChatSelected, func(e *bus.Event) {
		selected = append(selected, e.Detail.(event.ChatSelectedDetail).ID)
	})
	item, err := NewChatListItem(log, root, DefaultTheme(), domain.Chat{ID: "c1", Name: "Alice"})
	req.NoError(err)
	item.IncrementUnreadCount()
	req.NoError(item.Start())
	defer func() { req.NoError(item.Stop()) }()

	// When the item is clicked
	item.Click()

	// Then the selection bubbles up and the item is read
	req.Equal([]domain.ChatID{"c1"}, selected)
	req.True(item.Selected())
	req.Equal(0, item.UnreadCount())
}

func TestChatListItem_DisabledIsInert(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	root := bus.New("app", nil)
	emitted := 0
	root.Subscribe(event.ChatSelected, func(*bus.Event) { emitted++ })
	item, err := NewChatListItem(log, root, DefaultTheme(), domain.Chat{ID: "c1", Name: "Alice"})
	req.NoError(err)
	item.SetDisabled(true)
	req.NoError(item.Start())

	item.Click()

	req.Zero(emitted)
	req.False(item.Selected())
}

func TestChatListItem_AvatarFallback(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	item, err := NewChatListItem(log, nil, DefaultTheme(), domain.Chat{ID: "c1", Name: "bob"})
	req.NoError(err)

	req.Equal("B", item.avatarGlyph())
}

func TestChatListItem_RenderIsIdempotent(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	item, err := NewChatListItem(log, nil, DefaultTheme(), domain.Chat{ID: "c1", Name: "Alice", Desc: "hey", Online: true})
	req.NoError(err)

	first := item.View()
	item.Render()

	req.Equal(first, item.View())
}
