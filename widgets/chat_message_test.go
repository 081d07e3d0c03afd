package widgets

import (
	"chat-box/audio"
	"chat-box/domain/event"
	"chat-box/errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestChatMessage_TimeLabels(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	msg := NewChatMessage(log, nil, DefaultTheme())
	at := time.Date(2024, time.January, 1, 9, 5, 0, 0, time.UTC)

	msg.SetTimeObject(at)

	req.Equal("9:05", msg.Time())
	req.Equal("Mon Jan 1 2024 09:05:00", msg.String("title"))
	req.True(msg.TimeObject().Equal(at))
}

func TestChatMessage_AudioDurationLabel(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	msg := NewChatMessage(log, nil, DefaultTheme())
	player := audio.NewClockPlayer(65)

	// Given a voice clip of 1:05
	req.NoError(msg.SetAudio(audio.AudioRef{URL: "voice.ogg", Player: player}))
	req.Equal("01:05", msg.DurationLabel())

	// When it plays for 5 seconds
	req.NoError(msg.TogglePlayback())
	player.Advance(5)

	// Then the label shows elapsed over total
	req.False(player.Paused())
	req.Equal("00:05/01:05", msg.DurationLabel())

	// When paused in the middle the label keeps the progress
	req.NoError(msg.TogglePlayback())
	req.True(player.Paused())
	req.Equal("00:05/01:05", msg.DurationLabel())

	// When it plays to the end
	req.NoError(msg.TogglePlayback())
	player.Advance(120)

	// Then the label resets to the total
	req.True(player.Paused())
	req.Equal("01:05", msg.DurationLabel())
}

func TestChatMessage_ClickTogglesPlayback(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	msg := NewChatMessage(log, nil, DefaultTheme())
	req.NoError(msg.SetAudio(audio.AudioRef{Duration: 10}))
	req.NoError(msg.Start())
	defer func() { req.NoError(msg.Stop()) }()

	msg.Emit(event.Click, nil)
	req.False(msg.Player().Paused())

	msg.Emit(event.Click, nil)
	req.True(msg.Player().Paused())
}

func TestChatMessage_RejectsNonAudioClip(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	msg := NewChatMessage(log, nil, DefaultTheme())

	err := msg.SetAudio(audio.AudioRef{Data: []byte("just some plain text, not a recording")})

	req.ErrorIs(err, errors.ErrNotAudio)
	req.Nil(msg.Audio())
	req.False(msg.Has("audio"))
}

func TestChatMessage_LanguageTag(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	msg := NewChatMessage(log, nil, DefaultTheme())

	msg.SetText("Hello everyone, I will be a little late to the meeting this afternoon because the train is delayed again.")
	req.Equal("en", msg.Lang())

	msg.SetText("12345")
	req.Empty(msg.Lang())
}

func TestChatMessage_GroupingTail(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	msg := NewChatMessage(log, nil, DefaultTheme())
	msg.SetText("hi")
	msg.SetPosition(PositionLeft)

	msg.SetLastInGroup(true)
	req.Contains(msg.View(), "◤")

	msg.SetLastInGroup(false)
	req.NotContains(msg.View(), "◤")
	req.False(msg.Has("lastingroup"))
}
