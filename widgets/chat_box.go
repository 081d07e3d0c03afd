package widgets

import (
	"chat-box/audio"
	"chat-box/bus"
	"chat-box/component"
	"chat-box/contract"
	"chat-box/domain"
	"chat-box/domain/event"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	DefaultScrollThreshold = 200
	DefaultWidth           = 60

	placeholderText = "Hi there!\nSelect a chat to start messaging."
)

var chatBoxTag = catalog.MustRegister("ChatBox")

var chatBoxSchema = component.Schema{
	{Name: "hidden", Type: component.Boolean, Observe: true},
	{Name: "resizable", Type: component.Boolean, Observe: true},
	{Name: "readonly", Type: component.Boolean, Observe: true},
}

// Clock returns the current instant. Day labels compare against it.
type Clock func() time.Time

type ChatBoxOption func(*ChatBox)

func WithClock(c Clock) ChatBoxOption {
	return func(cb *ChatBox) { cb.now = c }
}

// WithFilter censors inbound text before it reaches a bubble.
func WithFilter(f contract.TextFilter) ChatBoxOption {
	return func(cb *ChatBox) { cb.filter = f }
}

func WithScrollThreshold(n int) ChatBoxOption {
	return func(cb *ChatBox) { cb.threshold = n }
}

func WithWidth(n int) ChatBoxOption {
	return func(cb *ChatBox) { cb.width = n }
}

// WithInput replaces the default MessageInput collaborator.
func WithInput(in contract.MessageInput) ChatBoxOption {
	return func(cb *ChatBox) { cb.input = in }
}

func WithTheme(t Theme) ChatBoxOption {
	return func(cb *ChatBox) { cb.theme = t }
}

// node is either a day separator or a message bubble.
type node struct {
	day *DaySeparator
	msg *ChatMessage
}

// ChatBox is the timeline of the active conversation.
type ChatBox struct {
	*component.Base
	log       *slog.Logger
	theme     Theme
	viewport  contract.Viewport
	input     contract.MessageInput
	header    *ActiveChat
	filter    contract.TextFilter
	now       Clock
	threshold int
	width     int

	activeChat    *domain.Chat
	authedUserID  domain.UserID
	nodes         []node
	lastMessage   *ChatMessage
	typing        bool
	showScrollBtn bool
	inputAttached bool
}

// NewChatBox starts hidden, with no active chat.
func NewChatBox(log *slog.Logger, parent *bus.Bus, viewport contract.Viewport, opts ...ChatBoxOption) *ChatBox {
	cb := &ChatBox{
		Base:      component.NewBase(chatBoxTag, chatBoxSchema, log, parent),
		log:       log,
		theme:     DefaultTheme(),
		viewport:  viewport,
		now:       time.Now,
		threshold: DefaultScrollThreshold,
		width:     DefaultWidth,
	}
	for _, opt := range opts {
		opt(cb)
	}
	cb.header = NewActiveChat(log, cb.Bus(), cb.theme)
	if cb.input == nil {
		cb.input = NewMessageInput(log, cb.Bus(), cb.theme)
	} else {
		cb.input.Bus().Attach(cb.Bus())
	}
	cb.inputAttached = true

	cb.SetHooks(component.Hooks{
		AttributeChanged: cb.attributeChanged,
		Mount:            cb.mount,
		Unmount:          cb.unmount,
	})
	cb.Init("hidden", true)
	_ = cb.Ready()
	return cb
}

func (cb *ChatBox) mount() {
	cb.Listen(cb.Bus(), event.UserSignedIn, cb.onSignIn)
	cb.Listen(cb.input.Bus(), event.AuthedUserNewMessage, cb.onAuthedMessage)
	cb.Listen(cb.Bus(), event.Scroll, func(*bus.Event) { cb.CheckScrollToBottomVisibility() })
	cb.Listen(cb.Bus(), event.ScrollToBottom, func(*bus.Event) { cb.ScrollToEnd() })
	cb.Listen(cb.header.Bus(), event.ChatBoxBackClicked, cb.onBack)
	cb.Listen(cb.Bus(), event.UserTyping, func(*bus.Event) { cb.ShowTypingIndicator() })
	cb.Listen(cb.Bus(), event.UserStopTyping, func(*bus.Event) { cb.HideTypingIndicator() })
}

func (cb *ChatBox) unmount() {
	for _, m := range cb.Messages() {
		if m.IsStarted() {
			_ = m.Stop()
		}
	}
}

func (cb *ChatBox) Hidden() bool        { return cb.Bool("hidden") }
func (cb *ChatBox) SetHidden(v bool)    { cb.SetBool("hidden", v) }
func (cb *ChatBox) Resizable() bool     { return cb.Bool("resizable") }
func (cb *ChatBox) SetResizable(v bool) { cb.SetBool("resizable", v) }
func (cb *ChatBox) ReadOnly() bool      { return cb.Bool("readonly") }
func (cb *ChatBox) SetReadOnly(v bool)  { cb.SetBool("readonly", v) }

func (cb *ChatBox) ActiveChat() *domain.Chat     { return cb.activeChat }
func (cb *ChatBox) Header() *ActiveChat          { return cb.header }
func (cb *ChatBox) Input() contract.MessageInput { return cb.input }
func (cb *ChatBox) InputAttached() bool          { return cb.inputAttached }
func (cb *ChatBox) AuthedUserID() domain.UserID  { return cb.authedUserID }
func (cb *ChatBox) LastMessage() *ChatMessage    { return cb.lastMessage }
func (cb *ChatBox) IsTyping() bool               { return cb.typing }
func (cb *ChatBox) ScrollButtonVisible() bool    { return cb.showScrollBtn }
func (cb *ChatBox) SignIn(id domain.UserID)      { cb.authedUserID = id }

// SetActiveChat switches conversation and empties the timeline.
// Chats without an id are ignored.
func (cb *ChatBox) SetActiveChat(chat *domain.Chat) {
	if !chat.IsValid() {
		cb.Log().Debug("Active chat ignored", "reason", "missing id")
		return
	}
	c := *chat
	cb.activeChat = &c
	cb.clearTimeline()
	cb.header.Show(c)
	cb.SetHidden(false)
	cb.refresh()
	cb.Log().Info("Active chat changed", "chat_id", c.ID)
}

func (cb *ChatBox) clearTimeline() {
	for _, m := range cb.Messages() {
		if m.IsStarted() {
			_ = m.Stop()
		}
		m.Bus().Detach()
	}
	cb.nodes = nil
	cb.lastMessage = nil
	cb.showScrollBtn = false
}

// RenderMessage appends msg to the timeline. Invalid messages are dropped
// without touching any state; it reports whether a bubble was appended.
func (cb *ChatBox) RenderMessage(msg domain.Message, forceScrollToEnd bool) bool {
	if err := msg.Validate(); err != nil {
		cb.Log().Debug("Message dropped", "error", err)
		return false
	}
	fromAuthed := cb.authedUserID != "" && msg.Sender == cb.authedUserID
	sameSender := cb.lastMessage != nil && cb.lastMessage.Sender() == msg.Sender

	// Appending changes the scroll height
	wasAtBottom := cb.atBottom()

	bubble, err := cb.newBubble(msg, fromAuthed)
	if err != nil {
		cb.Log().Debug("Message dropped", "error", err)
		return false
	}

	if cb.lastMessage == nil || !SameDay(msg.Time, cb.lastMessage.TimeObject().In(msg.Time.Location())) {
		cb.appendDay(msg.Time)
	}
	if sameSender {
		cb.lastMessage.SetLastInGroup(false)
	}

	cb.nodes = append(cb.nodes, node{msg: bubble})
	cb.lastMessage = bubble

	if fromAuthed {
		cb.input.Clear()
	}
	cb.refresh()

	if wasAtBottom || forceScrollToEnd {
		cb.ScrollToEnd()
	}
	cb.CheckScrollToBottomVisibility()
	return true
}

func (cb *ChatBox) newBubble(msg domain.Message, fromAuthed bool) (*ChatMessage, error) {
	bubble := NewChatMessage(cb.log, cb.Bus(), cb.theme)
	if msg.IsAudio() {
		if err := bubble.SetAudio(*msg.Audio); err != nil {
			bubble.Bus().Detach()
			return nil, err
		}
	} else {
		bubble.SetText(cb.censor(msg.Text))
	}
	position := PositionLeft
	if fromAuthed {
		position = PositionRight
	}
	bubble.id = msg.ID
	bubble.SetPosition(position)
	bubble.SetSender(msg.Sender)
	bubble.SetTimeObject(msg.Time)
	bubble.SetLastInGroup(true)
	if err := bubble.Start(); err != nil {
		return nil, err
	}
	return bubble, nil
}

func (cb *ChatBox) censor(text string) string {
	if cb.filter == nil {
		return text
	}
	masked, words := cb.filter.Censor(text)
	if len(words) > 0 {
		cb.Log().Info("Message censored", "words", len(words))
	}
	return masked
}

func (cb *ChatBox) appendDay(t time.Time) {
	cb.Assert(!t.IsZero(), "message time not passed")
	cb.nodes = append(cb.nodes, node{day: &DaySeparator{Date: t, Label: DayLabel(t, cb.now())}})
}

func (cb *ChatBox) atBottom() bool {
	return cb.viewport.ScrollTop() >= cb.viewport.ScrollHeight()-cb.viewport.ClientHeight()
}

// CheckScrollToBottomVisibility shows the scroll button once the viewport is
// further than the threshold from the bottom.
func (cb *ChatBox) CheckScrollToBottomVisibility() {
	v := cb.viewport
	cb.showScrollBtn = v.ScrollTop()+cb.threshold < v.ScrollHeight()-v.ClientHeight()
}

func (cb *ChatBox) ScrollToEnd() {
	cb.viewport.ScrollTo(cb.viewport.ScrollHeight())
}

func (cb *ChatBox) ShowTypingIndicator() {
	cb.typing = true
}

func (cb *ChatBox) HideTypingIndicator() {
	cb.typing = false
}

// AdvancePlayback moves every clock driven player forward and redraws.
func (cb *ChatBox) AdvancePlayback(seconds float64) {
	playing := lo.Filter(cb.Messages(), func(m *ChatMessage, _ int) bool {
		return m.Player() != nil && !m.Player().Paused()
	})
	if len(playing) == 0 {
		return
	}
	for _, m := range playing {
		if t, ok := m.Player().(audio.Ticker); ok {
			t.Advance(seconds)
		}
	}
	cb.refresh()
}

// Messages returns the bubbles in timeline order.
func (cb *ChatBox) Messages() []*ChatMessage {
	return lo.FilterMap(cb.nodes, func(n node, _ int) (*ChatMessage, bool) {
		return n.msg, n.msg != nil
	})
}

// Separators returns the day separators in timeline order.
func (cb *ChatBox) Separators() []*DaySeparator {
	return lo.FilterMap(cb.nodes, func(n node, _ int) (*DaySeparator, bool) {
		return n.day, n.day != nil
	})
}

// Labels lists the timeline as text: day labels and bubble contents.
func (cb *ChatBox) Labels() []string {
	return lo.Map(cb.nodes, func(n node, _ int) string {
		if n.day != nil {
			return "[" + n.day.Label + "]"
		}
		if n.msg.Audio() != nil {
			return string(n.msg.Sender()) + ": <audio " + n.msg.DurationLabel() + ">"
		}
		return string(n.msg.Sender()) + ": " + n.msg.Text()
	})
}

func (cb *ChatBox) onSignIn(e *bus.Event) {
	d, ok := e.Detail.(event.UserSignedInDetail)
	if !ok {
		return
	}
	cb.SignIn(d.ID)
	cb.Log().Info("User signed in", "user_id", d.ID)
}

func (cb *ChatBox) onAuthedMessage(e *bus.Event) {
	d, ok := e.Detail.(*event.AuthedMessageDetail)
	if !ok {
		return
	}
	e.StopPropagation()
	if cb.activeChat == nil || !cb.inputAttached {
		return
	}
	d.ToChat = cb.activeChat.ID
	d.Sender = cb.authedUserID
	if d.At.IsZero() {
		d.At = cb.now()
	}
	if !cb.RenderMessage(domain.Message{ID: uuid.New(), Sender: d.Sender, Text: d.Text, Audio: d.Audio, Time: d.At}, true) {
		cb.Log().Debug("Authed message not rendered, not forwarded", "chat_id", d.ToChat)
		return
	}
	cb.Emit(event.AuthedUserNewMessage, d)
}

func (cb *ChatBox) onBack(e *bus.Event) {
	e.StopPropagation()
	cb.SetHidden(true)
	cb.Emit(event.ChatBoxBackClicked, nil)
}

func (cb *ChatBox) attributeChanged(c component.Change) {
	if c.Name == "readonly" {
		cb.checkInputVisibility()
	}
}

// checkInputVisibility detaches the input while read only and attaches it
// back once the flag is cleared.
func (cb *ChatBox) checkInputVisibility() {
	type disabler interface{ SetDisabled(bool) }
	readOnly := cb.ReadOnly()
	if readOnly == !cb.inputAttached {
		return
	}
	if readOnly {
		cb.input.Bus().Detach()
	} else {
		cb.input.Bus().Attach(cb.Bus())
	}
	if d, ok := cb.input.(disabler); ok {
		d.SetDisabled(readOnly)
	}
	cb.inputAttached = !readOnly
	cb.Log().Debug("Input visibility changed", "attached", cb.inputAttached)
}

// SetWidth changes the timeline width and redraws.
func (cb *ChatBox) SetWidth(n int) {
	if n <= 0 || n == cb.width {
		return
	}
	cb.width = n
	cb.refresh()
}

// Refresh pushes the timeline to the viewport again, keeping the offset.
func (cb *ChatBox) Refresh() {
	cb.refresh()
}

func (cb *ChatBox) refresh() {
	rows := make([]string, 0, len(cb.nodes))
	for _, n := range cb.nodes {
		if n.day != nil {
			rows = append(rows, "", n.day.view(cb.theme, cb.width), "")
			continue
		}
		align := lipgloss.Left
		if n.msg.Position() == PositionRight {
			align = lipgloss.Right
		}
		rows = append(rows, lipgloss.PlaceHorizontal(cb.width, align, n.msg.View()))
	}
	cb.viewport.SetContent(strings.Join(rows, "\n"))
}

func (cb *ChatBox) View() string {
	if cb.Hidden() {
		return cb.theme.Muted.Render(placeholderText)
	}
	parts := []string{cb.header.View(), cb.viewport.View()}
	if cb.typing {
		parts = append(parts, cb.theme.Typing.Render("typing…"))
	}
	if cb.showScrollBtn {
		parts = append(parts, cb.theme.ScrollHint.Render("↓ scroll to bottom (end)"))
	}
	if cb.inputAttached {
		parts = append(parts, cb.input.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
