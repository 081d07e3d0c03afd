// Package tui hosts the chat widgets in a bubbletea program. The App plays
// the role of the page around the components: it listens on the root bus,
// switches the active chat and routes feed events.
package tui

import (
	"chat-box/bus"
	"chat-box/contract"
	"chat-box/domain"
	"chat-box/domain/event"
	"chat-box/projection"
	"chat-box/widgets"
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	rosterWidth  = 34
	chromeHeight = 9
	defaultTick  = 250 * time.Millisecond
)

type focus int

const (
	focusRoster focus = iota
	focusChat
)

type tickMsg time.Time

// Options configures an App. Zero values fall back to defaults.
type Options struct {
	Me              domain.UserID
	Title           string
	ReadOnly        bool
	ScrollThreshold int
	Theme           *widgets.Theme
	Filter          contract.TextFilter
	Publisher       contract.Publisher
	History         *projection.History
	Clock           widgets.Clock
	Tick            time.Duration
}

type App struct {
	ctx context.Context
	log *slog.Logger

	root     *bus.Bus
	theme    widgets.Theme
	brand    *widgets.AppBrand
	roster   *widgets.ChatRoster
	box      *widgets.ChatBox
	input    *widgets.MessageInput
	viewport *Viewport

	chats     map[domain.ChatID]domain.Chat
	history   *projection.History
	publisher contract.Publisher
	me        domain.UserID
	tick      time.Duration

	focus  focus
	status string
}

func NewApp(ctx context.Context, log *slog.Logger, chats []domain.Chat, opts Options) (*App, error) {
	theme := widgets.DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	if opts.History == nil {
		opts.History = projection.NewHistory(0)
	}
	if opts.Tick <= 0 {
		opts.Tick = defaultTick
	}

	a := &App{
		ctx:       ctx,
		log:       log,
		root:      bus.New("app", nil),
		theme:     theme,
		viewport:  NewViewport(widgets.DefaultWidth, 10),
		chats:     lo.KeyBy(chats, func(c domain.Chat) domain.ChatID { return c.ID }),
		history:   opts.History,
		publisher: opts.Publisher,
		me:        opts.Me,
		tick:      opts.Tick,
	}
	a.brand = widgets.NewAppBrand(log, a.root, theme, opts.Title)
	a.roster = widgets.NewChatRoster(log, a.root, theme)
	for _, c := range chats {
		if _, err := a.roster.Add(c); err != nil {
			return nil, fmt.Errorf("adding chat %q: %w", c.ID, err)
		}
	}

	a.input = widgets.NewMessageInput(log, nil, theme)
	boxOpts := []widgets.ChatBoxOption{widgets.WithInput(a.input), widgets.WithTheme(theme)}
	if opts.Filter != nil {
		boxOpts = append(boxOpts, widgets.WithFilter(opts.Filter))
	}
	if opts.Clock != nil {
		boxOpts = append(boxOpts, widgets.WithClock(opts.Clock))
	}
	if opts.ScrollThreshold > 0 {
		boxOpts = append(boxOpts, widgets.WithScrollThreshold(opts.ScrollThreshold))
	}
	a.box = widgets.NewChatBox(log, a.root, a.viewport, boxOpts...)

	a.root.Subscribe(event.ChatSelected, a.onChatSelected)
	a.root.Subscribe(event.ChatBoxBackClicked, a.onBack)
	a.root.Subscribe(event.AuthedUserNewMessage, a.onAuthedMessage)
	a.root.Subscribe(event.ProfileBtnClick, a.onProfile)

	if err := a.roster.Start(); err != nil {
		return nil, err
	}
	if err := a.box.Start(); err != nil {
		return nil, err
	}
	a.box.Bus().Emit(event.UserSignedIn, event.UserSignedInDetail{ID: opts.Me})
	a.box.SetReadOnly(opts.ReadOnly)
	return a, nil
}

func (a *App) Roster() *widgets.ChatRoster  { return a.roster }
func (a *App) Box() *widgets.ChatBox        { return a.box }
func (a *App) Input() *widgets.MessageInput { return a.input }
func (a *App) Brand() *widgets.AppBrand     { return a.brand }
func (a *App) Status() string               { return a.status }
func (a *App) ChatFocused() bool            { return a.focus == focusChat }

// Close unmounts the components.
func (a *App) Close() {
	_ = a.box.Stop()
	_ = a.roster.Stop()
}

func (a *App) Init() tea.Cmd {
	return a.nextTick()
}

func (a *App) nextTick() tea.Cmd {
	return tea.Tick(a.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
	case tickMsg:
		a.box.AdvancePlayback(a.tick.Seconds())
		return a, a.nextTick()
	case IncomingMsg:
		a.receive(msg.Event)
	case tea.MouseMsg:
		cmd := a.viewport.Update(msg)
		a.box.Bus().Emit(event.Scroll, nil)
		return a, cmd
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+p":
		a.brand.ClickProfile()
		return nil
	case "tab":
		if a.box.ActiveChat() != nil && !a.box.Hidden() {
			return a.setFocus(1 - a.focus)
		}
		return nil
	}

	if a.focus == focusRoster {
		switch msg.String() {
		case "q":
			return tea.Quit
		case "up", "k":
			a.roster.MoveCursor(-1)
		case "down", "j":
			a.roster.MoveCursor(1)
		case "enter":
			a.roster.ClickCursor()
		}
		return nil
	}

	switch msg.String() {
	case "esc":
		a.box.Header().Back()
	case "enter":
		a.input.Submit()
	case "pgup":
		a.viewport.PageUp()
		a.box.Bus().Emit(event.Scroll, nil)
	case "pgdown":
		a.viewport.PageDown()
		a.box.Bus().Emit(event.Scroll, nil)
	case "end":
		a.box.Bus().Emit(event.ScrollToBottom, nil)
		a.box.Bus().Emit(event.Scroll, nil)
	case "ctrl+o":
		a.toggleLastVoice()
	case "ctrl+r":
		a.box.SetReadOnly(!a.box.ReadOnly())
	default:
		return a.input.Update(msg)
	}
	return nil
}

func (a *App) setFocus(f focus) tea.Cmd {
	a.focus = f
	if f == focusChat && a.box.InputAttached() {
		return a.input.Focus()
	}
	a.input.Blur()
	return nil
}

func (a *App) toggleLastVoice() {
	voices := lo.Filter(a.box.Messages(), func(m *widgets.ChatMessage, _ int) bool { return m.Player() != nil })
	if len(voices) == 0 {
		return
	}
	if err := voices[len(voices)-1].TogglePlayback(); err != nil {
		a.log.Warn("Playback toggle failed", "error", err)
	}
	a.box.Refresh()
}

func (a *App) resize(width, height int) {
	w := max(width-rosterWidth-2, 20)
	h := max(height-chromeHeight, 3)
	a.viewport.SetSize(w, h)
	a.box.SetWidth(w)
	a.box.Bus().Emit(event.Scroll, nil)
}

// receive applies a feed event. Messages for a chat that is not on screen
// only bump its badge, history replays them once it is opened.
func (a *App) receive(e event.DomainEvent) {
	active := a.box.ActiveChat()
	isActive := active != nil && !a.box.Hidden() && active.ID == e.ChatID()

	switch evt := e.(type) {
	case event.MessagePosted:
		// Own messages are rendered when sent
		if evt.Message.Sender == a.me {
			return
		}
		if isActive {
			// History is fed before the program, a chat opened in between
			// has already replayed this message
			if a.onScreen(evt.Message.ID) {
				return
			}
			a.box.RenderMessage(evt.Message, false)
			return
		}
		if err := a.roster.IncrementUnread(evt.Chat); err != nil {
			a.log.Debug("Message for an unlisted chat", "chat_id", evt.Chat)
		}
	case event.TypingChanged:
		if !isActive || evt.User == a.me {
			return
		}
		kind := event.UserStopTyping
		if evt.Typing {
			kind = event.UserTyping
		}
		a.box.Bus().Emit(kind, nil)
	}
}

func (a *App) onScreen(id uuid.UUID) bool {
	return lo.ContainsBy(a.box.Messages(), func(m *widgets.ChatMessage) bool { return m.ID() == id })
}

func (a *App) onChatSelected(e *bus.Event) {
	d, ok := e.Detail.(event.ChatSelectedDetail)
	if !ok {
		return
	}
	chat, ok := a.chats[d.ID]
	if !ok {
		a.log.Warn("Selected chat is not listed", "chat_id", d.ID)
		return
	}
	a.box.SetActiveChat(&chat)
	for _, m := range a.history.Messages(d.ID) {
		a.box.RenderMessage(m, false)
	}
	a.box.ScrollToEnd()
	a.box.CheckScrollToBottomVisibility()
	if len(lo.Without(a.history.Typing(d.ID), a.me)) > 0 {
		a.box.Bus().Emit(event.UserTyping, nil)
	} else {
		a.box.Bus().Emit(event.UserStopTyping, nil)
	}
	_ = a.setFocus(focusChat)
	a.status = ""
}

func (a *App) onBack(*bus.Event) {
	_ = a.setFocus(focusRoster)
}

// onAuthedMessage records what the chat box rendered and sends it out.
func (a *App) onAuthedMessage(e *bus.Event) {
	d, ok := e.Detail.(*event.AuthedMessageDetail)
	if !ok {
		return
	}
	msg := domain.Message{ID: uuid.New(), Sender: d.Sender, Text: d.Text, Audio: d.Audio, Time: d.At}
	if err := msg.Validate(); err != nil {
		a.log.Debug("Authed message not recorded", "error", err)
		return
	}
	a.history.Append(d.ToChat, msg)
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Publish(a.ctx, event.MessagePosted{Chat: d.ToChat, Message: msg}); err != nil {
		a.log.Warn("Message not published", "chat_id", d.ToChat, "error", err)
		a.status = "offline: message kept locally"
	}
}

func (a *App) onProfile(*bus.Event) {
	a.status = fmt.Sprintf("signed in as %s", a.me)
}

func (a *App) View() string {
	left := lipgloss.NewStyle().Width(rosterWidth).Render(a.roster.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", a.box.View())

	help := "↑/↓ move • enter open • q quit"
	if a.focus == focusChat {
		help = "enter send • esc back • pgup/pgdown scroll • end bottom • ctrl+o play • ctrl+r read only"
	}
	footer := a.theme.Muted.Render(help)
	if a.status != "" {
		footer = a.theme.Typing.Render(a.status) + "  " + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.brand.View(), "", body, "", footer)
}
