package tui

import (
	"chat-box/domain"
	"chat-box/domain/event"
	"chat-box/errors"
	"chat-box/mocks"
	"chat-box/projection"
	"chat-box/widgets"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

var chats = []domain.Chat{
	{ID: "c1", Name: "Alice", Online: true},
	{ID: "c2", Name: "Bob"},
}

func newApp(t *testing.T, opts Options) *App {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	opts.Me = "me"
	opts.Clock = func() time.Time { return now }
	app, err := NewApp(context.Background(), log, chats, opts)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func posted(chat domain.ChatID, sender domain.UserID, text string) IncomingMsg {
	return IncomingMsg{Event: event.MessagePosted{Chat: chat, Message: domain.NewTextMessage(sender, text, now)}}
}

func unreadCounts(app *App) map[domain.ChatID]int {
	return lo.SliceToMap(app.Roster().Items(), func(item *widgets.ChatListItem) (domain.ChatID, int) {
		return item.ID(), item.UnreadCount()
	})
}

func TestApp_EnterOpensChatUnderCursor(t *testing.T) {
	req := require.New(t)
	app := newApp(t, Options{})

	// Given the cursor moved to the second chat
	app.Update(key(tea.KeyDown))

	// When the user presses enter
	app.Update(key(tea.KeyEnter))

	// Then the chat box shows Bob and takes the focus
	req.NotNil(app.Box().ActiveChat())
	req.Equal(domain.ChatID("c2"), app.Box().ActiveChat().ID)
	req.False(app.Box().Hidden())
	req.True(app.ChatFocused())
	req.True(app.Input().Focused())
	req.True(app.Roster().Find("c2").Selected())
	req.False(app.Roster().Find("c1").Selected())
}

func TestApp_IncomingMessagesRouteByActiveChat(t *testing.T) {
	req := require.New(t)
	app := newApp(t, Options{})
	app.Update(key(tea.KeyEnter))

	// When messages arrive for the open chat and for another one
	app.Update(posted("c1", "alice", "hello"))
	app.Update(posted("c2", "bob", "ping"))
	app.Update(posted("c2", "bob", "pong"))

	// Then only the open chat renders and the other gets a badge
	req.Equal([]string{"[Today]", "alice: hello"}, app.Box().Labels())
	want := map[domain.ChatID]int{"c1": 0, "c2": 2}
	if diff := cmp.Diff(want, unreadCounts(app)); diff != "" {
		t.Fatalf("unread counts mismatch (-want +got):\n%s", diff)
	}
}

func TestApp_OwnEchoIsIgnored(t *testing.T) {
	req := require.New(t)
	app := newApp(t, Options{})
	app.Update(key(tea.KeyEnter))

	app.Update(posted("c1", "me", "sent elsewhere"))

	req.Empty(app.Box().Labels())
}

func TestApp_SelectingChatReplaysHistory(t *testing.T) {
	req := require.New(t)
	history := projection.NewHistory(10)
	history.Append("c2", domain.NewTextMessage("bob", "earlier", now.Add(-time.Minute)))
	history.Append("c2", domain.NewTextMessage("me", "reply", now))
	app := newApp(t, Options{History: history})

	app.Update(key(tea.KeyDown))
	app.Update(key(tea.KeyEnter))

	req.Equal([]string{"[Today]", "bob: earlier", "me: reply"}, app.Box().Labels())
}

func TestApp_MessageReplayedByHistoryIsNotRenderedTwice(t *testing.T) {
	req := require.New(t)
	history := projection.NewHistory(10)
	app := newApp(t, Options{History: history})
	msg := domain.NewTextMessage("alice", "hello", now)

	// Given a message already stored while its program delivery is pending
	history.Append("c1", msg)
	app.Update(key(tea.KeyEnter))
	req.Equal([]string{"[Today]", "alice: hello"}, app.Box().Labels())

	// When the same message reaches the program
	app.Update(IncomingMsg{Event: event.MessagePosted{Chat: "c1", Message: msg}})

	// Then it is shown once
	req.Equal([]string{"[Today]", "alice: hello"}, app.Box().Labels())
	req.Len(app.Box().Messages(), 1)
}

func TestApp_SubmitPublishesOnce(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	history := projection.NewHistory(10)
	app := newApp(t, Options{Publisher: publisher, History: history})
	app.Update(key(tea.KeyEnter))

	var got event.MessagePosted
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e event.MessagePosted) error {
			got = e
			return nil
		}).
		Times(1)

	// Given a typed draft
	app.Update(runes("hello"))
	req.Equal("hello", app.Input().Draft())

	// When the user presses enter
	app.Update(key(tea.KeyEnter))

	// Then the message is rendered, stored and published once
	req.Equal([]string{"[Today]", "me: hello"}, app.Box().Labels())
	req.Empty(app.Input().Draft())
	req.Equal(domain.ChatID("c1"), got.Chat)
	req.Equal(domain.UserID("me"), got.Message.Sender)
	req.Equal("hello", got.Message.Text)
	req.Len(history.Messages("c1"), 1)
}

func TestApp_PublishFailureKeepsMessageLocally(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	history := projection.NewHistory(10)
	app := newApp(t, Options{Publisher: publisher, History: history})
	app.Update(key(tea.KeyEnter))
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.ErrNotConnected)

	app.Input().SetDraft("anyone?")
	app.Update(key(tea.KeyEnter))

	req.Len(history.Messages("c1"), 1)
	req.Contains(app.Status(), "offline")
}

func TestApp_ReadOnlyBlocksSubmit(t *testing.T) {
	req := require.New(t)
	app := newApp(t, Options{ReadOnly: true})
	app.Update(key(tea.KeyEnter))

	app.Input().SetDraft("hello")
	app.Update(key(tea.KeyEnter))
	req.Empty(app.Box().Labels())

	// When read only is toggled off the input works again
	app.Update(key(tea.KeyCtrlR))
	app.Update(key(tea.KeyEnter))
	req.Equal([]string{"[Today]", "me: hello"}, app.Box().Labels())
}

func TestApp_EscapeGoesBackToRoster(t *testing.T) {
	req := require.New(t)
	app := newApp(t, Options{})
	app.Update(key(tea.KeyEnter))

	app.Update(key(tea.KeyEsc))

	req.True(app.Box().Hidden())
	req.False(app.ChatFocused())
	req.False(app.Input().Focused())
}

func TestApp_TypingOnlyForActiveChat(t *testing.T) {
	req := require.New(t)
	app := newApp(t, Options{})
	app.Update(key(tea.KeyEnter))

	app.Update(IncomingMsg{Event: event.TypingChanged{Chat: "c2", User: "bob", Typing: true}})
	req.False(app.Box().IsTyping())

	app.Update(IncomingMsg{Event: event.TypingChanged{Chat: "c1", User: "alice", Typing: true}})
	req.True(app.Box().IsTyping())

	app.Update(IncomingMsg{Event: event.TypingChanged{Chat: "c1", User: "alice", Typing: false}})
	req.False(app.Box().IsTyping())
}

func TestApp_ProfileShowsSignedInUser(t *testing.T) {
	req := require.New(t)
	app := newApp(t, Options{Title: "Lab"})

	app.Update(key(tea.KeyCtrlP))

	req.Equal("signed in as me", app.Status())
	req.True(strings.Contains(app.View(), "Lab"))
}

func TestApp_QuitKeys(t *testing.T) {
	req := require.New(t)
	app := newApp(t, Options{})

	_, cmd := app.Update(runes("q"))
	req.NotNil(cmd)
	req.IsType(tea.QuitMsg{}, cmd())
}

func TestProgramSink_Consume(t *testing.T) {
	req := require.New(t)
	var sent []tea.Msg
	sink := NewProgramSink(func(m tea.Msg) { sent = append(sent, m) })
	evt := event.TypingChanged{Chat: "c1", User: "bob", Typing: true}

	req.NoError(sink.Consume(context.Background(), evt))
	req.Equal([]tea.Msg{IncomingMsg{Event: evt}}, sent)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req.ErrorIs(sink.Consume(ctx, evt), context.Canceled)
	req.Len(sent, 1)
}

func TestViewport_ClampsScroll(t *testing.T) {
	req := require.New(t)
	vp := NewViewport(20, 3)

	vp.SetContent(strings.Repeat("line\n", 9) + "last")
	vp.ScrollTo(100)

	req.Equal(10, vp.ScrollHeight())
	req.Equal(3, vp.ClientHeight())
	req.Equal(7, vp.ScrollTop())
	req.Contains(vp.View(), "last")
}

func TestApp_HiddenChatCountsUnread(t *testing.T) {
	req := require.New(t)
	app := newApp(t, Options{})
	app.Update(key(tea.KeyEnter))
	app.Update(key(tea.KeyEsc))

	app.Update(posted("c1", "alice", "still there?"))

	req.Equal(1, app.Roster().Find("c1").UnreadCount())
}
