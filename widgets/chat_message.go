package widgets

import (
	"chat-box/audio"
	"chat-box/bus"
	"chat-box/component"
	"chat-box/domain"
	"chat-box/domain/event"
	"fmt"
	"log/slog"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

var chatMessageTag = catalog.MustRegister("ChatMessage")

var chatMessageSchema = component.Schema{
	{Name: "sender", Type: component.String, Observe: true},
	{Name: "position", Type: component.String, Observe: true},
	{Name: "lastingroup", Type: component.Boolean, Observe: true},
	{Name: "text", Type: component.String, Observe: true},
	{Name: "audio", Type: component.String, Observe: true},
	{Name: "time", Type: component.String, Observe: true},
	{Name: "title", Type: component.String},
	{Name: "lang", Type: component.String, Observe: true},
}

const (
	PositionLeft  = "left"
	PositionRight = "right"

	maxBubbleWidth = 42
	titleLayout    = "Mon Jan 2 2006 15:04:05"
)

var rtlLanguages = map[string]bool{"ar": true, "he": true, "fa": true, "ur": true, "yi": true}

// ChatMessage is a single bubble. Apart from isLastInGroup it does not change
// once appended to a timeline.
type ChatMessage struct {
	*component.Base
	theme Theme
	id    uuid.UUID

	timeObject    time.Time
	audioRef      *audio.AudioRef
	player        audio.Player
	durationLabel string
	view          string
}

func NewChatMessage(log *slog.Logger, parent *bus.Bus, theme Theme) *ChatMessage {
	w := &ChatMessage{Base: component.NewBase(chatMessageTag, chatMessageSchema, log, parent), theme: theme}
	w.SetHooks(component.Hooks{
		Render: w.render,
		Mount: func() {
			w.Listen(w.Bus(), event.Click, w.onPlayClick)
		},
	})
	_ = w.Ready()
	return w
}

func (w *ChatMessage) ID() uuid.UUID { return w.id }

func (w *ChatMessage) Sender() domain.UserID { return domain.UserID(w.String("sender")) }
func (w *ChatMessage) SetSender(id domain.UserID) {
	w.SetString("sender", string(id))
}

func (w *ChatMessage) Position() string     { return w.String("position") }
func (w *ChatMessage) SetPosition(p string) { w.SetString("position", p) }

func (w *ChatMessage) Text() string { return w.String("text") }

// SetText stores the text and tags the bubble with the detected language when
// detection is reliable.
func (w *ChatMessage) SetText(text string) {
	w.SetString("text", text)
	lang := ""
	if info := whatlanggo.Detect(text); info.IsReliable() {
		lang = info.Lang.Iso6391()
	}
	w.SetString("lang", lang)
}

func (w *ChatMessage) Lang() string { return w.String("lang") }

func (w *ChatMessage) Time() string { return w.String("time") }

// SetTimeObject keeps the instant used for day grouping and sets the labels.
func (w *ChatMessage) SetTimeObject(t time.Time) {
	w.timeObject = t
	w.SetString("title", t.Format(titleLayout))
	w.SetString("time", fmt.Sprintf("%d:%02d", t.Hour(), t.Minute()))
}

func (w *ChatMessage) TimeObject() time.Time { return w.timeObject }

func (w *ChatMessage) IsLastInGroup() bool    { return w.Bool("lastingroup") }
func (w *ChatMessage) SetLastInGroup(v bool)  { w.SetBool("lastingroup", v) }
func (w *ChatMessage) Audio() *audio.AudioRef { return w.audioRef }
func (w *ChatMessage) Player() audio.Player   { return w.player }
func (w *ChatMessage) DurationLabel() string  { return w.durationLabel }

// SetAudio attaches a clip and wires the player callbacks to the duration label.
func (w *ChatMessage) SetAudio(ref audio.AudioRef) error {
	if err := audio.CheckClip(ref); err != nil {
		return err
	}
	player := ref.Player
	if player == nil {
		player = audio.NewClockPlayer(ref.Duration)
	}
	total := audio.FormatDuration(player.Duration())

	w.audioRef = &ref
	w.player = player
	w.durationLabel = total

	player.OnPause(func() {
		if player.CurrentTime() >= player.Duration() {
			w.durationLabel = total
		}
		w.Render()
	})
	player.OnEnded(func() {
		w.durationLabel = total
		w.Render()
	})
	player.OnPlay(w.Render)
	player.OnTimeUpdate(func() {
		w.durationLabel = audio.FormatDuration(player.CurrentTime()) + "/" + total
		w.Render()
	})

	src := ref.URL
	if src == "" {
		src = "clip"
	}
	w.SetString("audio", src)
	return nil
}

// TogglePlayback plays or pauses according to the player's own state.
func (w *ChatMessage) TogglePlayback() error {
	if w.player == nil {
		return nil
	}
	if w.player.Paused() {
		return w.player.Play()
	}
	return w.player.Pause()
}

func (w *ChatMessage) onPlayClick(e *bus.Event) {
	if e.Target != w.Bus() {
		return
	}
	e.StopPropagation()
	if err := w.TogglePlayback(); err != nil {
		w.Log().Warn("Playback toggle failed", "error", err)
	}
}

func (w *ChatMessage) render() {
	style := w.theme.BubbleIn
	align := lipgloss.Left
	if w.Position() == PositionRight {
		style = w.theme.BubbleOut
		align = lipgloss.Right
	}

	var lines []string
	if text := w.Text(); text != "" {
		body := lipgloss.NewStyle()
		if lipgloss.Width(text) > maxBubbleWidth {
			body = body.Width(maxBubbleWidth)
		}
		if rtlLanguages[w.Lang()] {
			body = body.Align(lipgloss.Right)
		}
		lines = append(lines, body.Render(text))
	}
	if w.player != nil {
		icon := "▶"
		if !w.player.Paused() {
			icon = "⏸"
		}
		lines = append(lines, icon+" "+w.durationLabel)
	}
	if t := w.Time(); t != "" {
		lines = append(lines, w.theme.Time.Render(t))
	}

	bubble := style.Render(lipgloss.JoinVertical(lipgloss.Right, lines...))
	if w.IsLastInGroup() {
		tail := "◤"
		if align == lipgloss.Right {
			tail = "◥"
		}
		bubble = lipgloss.JoinVertical(align, bubble, tail)
	}
	w.view = bubble
}

func (w *ChatMessage) View() string {
	return w.view
}
