package widgets

import (
	"chat-box/bus"
	"chat-box/component"
	"chat-box/domain"
	"chat-box/domain/event"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var chatListItemTag = catalog.MustRegister("ChatListItem")

var chatListItemSchema = component.Schema{
	{Name: "id", Type: component.String, Required: true},
	{Name: "name", Type: component.String, Required: true, Observe: true},
	{Name: "desc", Type: component.String, Observe: true},
	{Name: "avatar", Type: component.String, Observe: true},
	{Name: "lastseen", Type: component.String, Observe: true},
	{Name: "unreadcount", Type: component.Number, Observe: true},
	{Name: "online", Type: component.Boolean, Observe: true},
	{Name: "selected", Type: component.Boolean, Observe: true},
	{Name: "unread", Type: component.Boolean, Observe: true},
	{Name: "disabled", Type: component.Boolean, Observe: true},
}

// ChatListItem is one row of the chat roster.
type ChatListItem struct {
	*component.Base
	theme     Theme
	view      string
	onDestroy func(item *ChatListItem)
}

// NewChatListItem fails when the chat has no id or no name.
func NewChatListItem(log *slog.Logger, parent *bus.Bus, theme Theme, chat domain.Chat) (*ChatListItem, error) {
	w := &ChatListItem{Base: component.NewBase(chatListItemTag, chatListItemSchema, log, parent), theme: theme}
	w.SetHooks(component.Hooks{
		Render:           w.render,
		AttributeChanged: w.attributeChanged,
		Mount: func() {
			w.Listen(w.Bus(), event.Click, w.onClick)
		},
	})
	w.Init("id", string(chat.ID))
	w.Init("name", chat.Name)
	w.Init("desc", chat.Desc)
	w.Init("avatar", chat.Avatar)
	w.Init("lastseen", chat.LastSeen)
	w.Init("online", chat.Online)
	if err := w.Ready(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *ChatListItem) ID() domain.ChatID {
	return domain.ChatID(w.String("id"))
}

func (w *ChatListItem) Selected() bool     { return w.Bool("selected") }
func (w *ChatListItem) SetSelected(v bool) { w.SetBool("selected", v) }
func (w *ChatListItem) Unread() bool       { return w.Bool("unread") }
func (w *ChatListItem) Online() bool       { return w.Bool("online") }
func (w *ChatListItem) SetOnline(v bool)   { w.SetBool("online", v) }
func (w *ChatListItem) Disabled() bool     { return w.Bool("disabled") }
func (w *ChatListItem) SetDisabled(v bool) { w.SetBool("disabled", v) }
func (w *ChatListItem) UnreadCount() int   { return w.Number("unreadcount") }

func (w *ChatListItem) IncrementUnreadCount() {
	w.SetNumber("unreadcount", w.NumberOr("unreadcount", 0)+1)
}

func (w *ChatListItem) MarkAllAsRead() {
	w.SetNumber("unreadcount", 0)
}

// Click dispatches a host click on the item. Only a mounted item reacts.
func (w *ChatListItem) Click() {
	w.Emit(event.Click, nil)
}

func (w *ChatListItem) onClick(e *bus.Event) {
	if e.Target != w.Bus() {
		return
	}
	e.StopPropagation()
	if w.Disabled() {
		return
	}
	w.Emit(event.ChatSelected, event.ChatSelectedDetail{ID: w.ID()})
	w.SetSelected(true)
	w.MarkAllAsRead()
}

func (w *ChatListItem) attributeChanged(c component.Change) {
	switch c.Name {
	case "id":
		if !c.HasNew || c.New == "" {
			w.Log().Error("Identity attribute removed, destroying item", "old", c.Old)
			w.Destroy()
			if w.onDestroy != nil {
				w.onDestroy(w)
			}
		}
	case "unreadcount":
		w.SetBool("unread", w.UnreadCount() > 0)
	}
}

func (w *ChatListItem) avatarGlyph() string {
	if w.String("avatar") != "" {
		return "▣"
	}
	name := []rune(strings.ToUpper(w.String("name")))
	if len(name) == 0 {
		return " "
	}
	return string(name[0])
}

func (w *ChatListItem) render() {
	t := w.theme
	avatar := t.Avatar.Render(w.avatarGlyph())
	if w.Online() {
		avatar += t.Online.Render("●")
	} else {
		avatar += " "
	}

	top := t.Name.Render(w.String("name"))
	if seen := w.String("lastseen"); seen != "" {
		top += "  " + t.Meta.Render(seen)
	}
	bottom := t.Desc.Render(w.String("desc"))
	if w.Unread() {
		bottom += " " + t.Badge.Render(strconv.Itoa(w.UnreadCount()))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, avatar, " ", lipgloss.JoinVertical(lipgloss.Left, top, bottom))
	if w.Selected() {
		row = t.Selected.Render(row)
	} else {
		row = t.Row.Render(row)
	}
	if w.Disabled() {
		row = t.Muted.Render(row)
	}
	w.view = row
}

func (w *ChatListItem) View() string {
	return w.view
}
