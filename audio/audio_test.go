package audio

import (
	"chat-box/errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"Zero", 0, "00:00"},
		{"Fraction is floored", 9.9, "00:09"},
		{"Minutes", 75, "01:15"},
		{"Over an hour", 3725, "62:05"},
		{"Negative", -3, "00:00"},
		{"NaN", math.NaN(), "00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatDuration(tt.seconds))
		})
	}
}

func TestClockPlayer_EndEventOrder(t *testing.T) {
	req := require.New(t)
	p := NewClockPlayer(2)
	var got []string
	p.OnPlay(func() { got = append(got, "play") })
	p.OnTimeUpdate(func() { got = append(got, "timeupdate") })
	p.OnPause(func() { got = append(got, "pause") })
	p.OnEnded(func() { got = append(got, "ended") })

	// Given a paused player, advancing does nothing
	p.Advance(1)
	req.Empty(got)

	// When it plays to the end
	req.NoError(p.Play())
	p.Advance(1)
	p.Advance(5)

	// Then events follow the media element order
	req.Equal([]string{"play", "timeupdate", "timeupdate", "pause", "ended"}, got)
	req.True(p.Paused())
	req.Equal(2.0, p.CurrentTime())

	// And playing again restarts from zero
	req.NoError(p.Play())
	req.Equal(0.0, p.CurrentTime())
}

func TestCheckClip(t *testing.T) {
	req := require.New(t)
	wav := append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), make([]byte, 32)...)

	req.NoError(CheckClip(AudioRef{URL: "clip.wav"}))
	req.NoError(CheckClip(AudioRef{Data: wav}))
	req.True(IsAudio(DetectMIME(wav)))

	err := CheckClip(AudioRef{Data: []byte("%PDF-1.4\n%âãÏÓ\n")})
	req.ErrorIs(err, errors.ErrNotAudio)
}
