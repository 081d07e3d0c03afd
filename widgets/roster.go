package widgets

import (
	"chat-box/bus"
	"chat-box/component"
	"chat-box/domain"
	"chat-box/domain/event"
	"chat-box/errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

var chatRosterTag = catalog.MustRegister("ChatRoster")

// ChatRoster lists the chats and keeps a single one selected.
// Selection events from items keep bubbling to the roster's parent.
type ChatRoster struct {
	*component.Base
	theme  Theme
	log    *slog.Logger
	items  []*ChatListItem
	cursor int
}

func NewChatRoster(log *slog.Logger, parent *bus.Bus, theme Theme) *ChatRoster {
	r := &ChatRoster{Base: component.NewBase(chatRosterTag, nil, log, parent), theme: theme, log: log}
	r.SetHooks(component.Hooks{
		Mount: func() {
			r.Listen(r.Bus(), event.ChatSelected, r.onChatSelected)
			for _, item := range r.items {
				_ = item.Start()
			}
		},
		Unmount: func() {
			for _, item := range r.items {
				if item.IsStarted() {
					_ = item.Stop()
				}
			}
		},
	})
	_ = r.Ready()
	return r
}

// Add appends a row for chat. A mounted roster mounts the new row too.
func (r *ChatRoster) Add(chat domain.Chat) (*ChatListItem, error) {
	if r.Find(chat.ID) != nil {
		return nil, fmt.Errorf("chat %q already listed", chat.ID)
	}
	item, err := NewChatListItem(r.log, r.Bus(), r.theme, chat)
	if err != nil {
		return nil, err
	}
	item.onDestroy = r.drop
	r.items = append(r.items, item)
	if r.IsStarted() {
		if err := item.Start(); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (r *ChatRoster) Remove(id domain.ChatID) bool {
	item := r.Find(id)
	if item == nil {
		return false
	}
	item.Destroy()
	r.drop(item)
	return true
}

func (r *ChatRoster) drop(item *ChatListItem) {
	r.items = lo.Without(r.items, item)
	r.cursor = min(r.cursor, max(len(r.items)-1, 0))
}

func (r *ChatRoster) Find(id domain.ChatID) *ChatListItem {
	item, _ := lo.Find(r.items, func(i *ChatListItem) bool { return i.ID() == id })
	return item
}

func (r *ChatRoster) Items() []*ChatListItem {
	return r.items
}

func (r *ChatRoster) Selected() *ChatListItem {
	item, _ := lo.Find(r.items, func(i *ChatListItem) bool { return i.Selected() })
	return item
}

// IncrementUnread bumps the badge of a chat that received a message.
func (r *ChatRoster) IncrementUnread(id domain.ChatID) error {
	item := r.Find(id)
	if item == nil {
		return fmt.Errorf("%w: %s", errors.ErrUnknownChat, id)
	}
	item.IncrementUnreadCount()
	return nil
}

func (r *ChatRoster) onChatSelected(e *bus.Event) {
	detail, ok := e.Detail.(event.ChatSelectedDetail)
	if !ok {
		return
	}
	for i, item := range r.items {
		if item.ID() == detail.ID {
			r.cursor = i
			continue
		}
		item.SetSelected(false)
	}
}

// MoveCursor shifts the keyboard cursor, clamped to the list.
func (r *ChatRoster) MoveCursor(delta int) {
	if len(r.items) == 0 {
		r.cursor = 0
		return
	}
	r.cursor = min(max(r.cursor+delta, 0), len(r.items)-1)
}

func (r *ChatRoster) Cursor() int {
	return r.cursor
}

// ClickCursor clicks the item under the cursor.
func (r *ChatRoster) ClickCursor() {
	if r.cursor < len(r.items) {
		r.items[r.cursor].Click()
	}
}

func (r *ChatRoster) View() string {
	if len(r.items) == 0 {
		return r.theme.Muted.Render("No chats yet")
	}
	rows := make([]string, 0, len(r.items))
	for i, item := range r.items {
		marker := " "
		if i == r.cursor {
			marker = r.theme.ScrollHint.Render("›")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, marker, item.View()))
	}
	return strings.Join(rows, "\n")
}
