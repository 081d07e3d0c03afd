package widgets

import (
	"chat-box/audio"
	"chat-box/bus"
	"chat-box/component"
	"chat-box/domain/event"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var messageInputTag = catalog.MustRegister("MessageInput")

var messageInputSchema = component.Schema{
	{Name: "placeholder", Type: component.String, Observe: true},
	{Name: "disabled", Type: component.Boolean, Observe: true},
}

// MessageInput wraps a bubbles text input. Submitting emits
// authed-user-new-message on its own bus.
type MessageInput struct {
	*component.Base
	theme Theme
	input textinput.Model
}

func NewMessageInput(log *slog.Logger, parent *bus.Bus, theme Theme) *MessageInput {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 1000
	w := &MessageInput{Base: component.NewBase(messageInputTag, messageInputSchema, log, parent), theme: theme, input: ti}
	w.SetHooks(component.Hooks{Render: w.render})
	w.Init("placeholder", "Type a message")
	_ = w.Ready()
	return w
}

func (w *MessageInput) Draft() string         { return w.input.Value() }
func (w *MessageInput) SetDraft(draft string) { w.input.SetValue(draft) }

// Clear empties the draft.
func (w *MessageInput) Clear() {
	w.input.Reset()
}

func (w *MessageInput) Focus() tea.Cmd { return w.input.Focus() }
func (w *MessageInput) Blur()          { w.input.Blur() }
func (w *MessageInput) Focused() bool  { return w.input.Focused() }

func (w *MessageInput) SetDisabled(v bool) {
	w.SetBool("disabled", v)
	if v {
		w.input.Blur()
	}
}

// Update forwards key messages to the text input.
func (w *MessageInput) Update(msg tea.Msg) tea.Cmd {
	if w.Bool("disabled") {
		return nil
	}
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return cmd
}

// Submit emits the draft. Blank drafts are ignored. The draft is left in
// place: the chat box clears it once the message is rendered.
func (w *MessageInput) Submit() bool {
	text := strings.TrimSpace(w.Draft())
	if text == "" || w.Bool("disabled") {
		return false
	}
	w.Emit(event.AuthedUserNewMessage, &event.AuthedMessageDetail{Text: text})
	return true
}

// SubmitAudio emits a voice message.
func (w *MessageInput) SubmitAudio(ref audio.AudioRef) bool {
	if w.Bool("disabled") {
		return false
	}
	w.Emit(event.AuthedUserNewMessage, &event.AuthedMessageDetail{Audio: &ref})
	return true
}

func (w *MessageInput) render() {
	w.input.Placeholder = w.String("placeholder")
}

func (w *MessageInput) View() string {
	if w.Bool("disabled") {
		return w.theme.Muted.Render(w.theme.Input.Render("read only"))
	}
	return w.theme.Input.Render(w.input.View())
}
