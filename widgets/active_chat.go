package widgets

import (
	"chat-box/bus"
	"chat-box/component"
	"chat-box/domain"
	"chat-box/domain/event"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var activeChatTag = catalog.MustRegister("ActiveChat")

var activeChatSchema = component.Schema{
	{Name: "id", Type: component.String, Observe: true},
	{Name: "name", Type: component.String, Observe: true},
	{Name: "avatar", Type: component.String, Observe: true},
	{Name: "online", Type: component.Boolean, Observe: true},
}

// ActiveChat is the chat box header with the back button.
type ActiveChat struct {
	*component.Base
	theme Theme
	view  string
}

func NewActiveChat(log *slog.Logger, parent *bus.Bus, theme Theme) *ActiveChat {
	w := &ActiveChat{Base: component.NewBase(activeChatTag, activeChatSchema, log, parent), theme: theme}
	w.SetHooks(component.Hooks{Render: w.render})
	_ = w.Ready()
	return w
}

// Show copies the chat fields onto the header.
func (w *ActiveChat) Show(chat domain.Chat) {
	w.SetString("id", string(chat.ID))
	w.SetString("name", chat.Name)
	w.SetString("avatar", chat.Avatar)
	w.SetBool("online", chat.Online)
}

func (w *ActiveChat) ID() domain.ChatID { return domain.ChatID(w.String("id")) }
func (w *ActiveChat) Name() string      { return w.String("name") }
func (w *ActiveChat) Online() bool      { return w.Bool("online") }

// Back is the header back button.
func (w *ActiveChat) Back() {
	w.Emit(event.ChatBoxBackClicked, nil)
}

func (w *ActiveChat) render() {
	t := w.theme
	name := w.Name()
	glyph := " "
	if r := []rune(strings.ToUpper(name)); len(r) > 0 {
		glyph = string(r[0])
	}
	status := t.Muted.Render("offline")
	if w.Online() {
		status = t.Online.Render("● online")
	}
	w.view = t.Header.Render(lipgloss.JoinHorizontal(lipgloss.Center,
		t.Muted.Render("‹ "), t.Avatar.Render(glyph), " ", t.Name.Render(name), "  ", status))
}

func (w *ActiveChat) View() string {
	return w.view
}
