package audio

import (
	"chat-box/errors"
	"fmt"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type MIME string

const (
	Unknown   MIME = "unknown"
	AudioMPEG MIME = "audio/mpeg"
	AudioWAV  MIME = "audio/wav"
	AudioOGG  MIME = "audio/ogg"
	VideoWebM MIME = "video/webm" // browser recorders emit audio-only webm
)

// DetectMIME sniffs the clip header.
func DetectMIME(data []byte) MIME {
	if len(data) == 0 {
		return Unknown
	}
	mt, _, err := mime.ParseMediaType(mimetype.Detect(data).String())
	if err != nil {
		return Unknown
	}
	return MIME(mt)
}

func IsAudio(m MIME) bool {
	return strings.HasPrefix(string(m), "audio/") || m == VideoWebM
}

// CheckClip accepts a reference without bytes, otherwise the bytes must sniff as audio.
func CheckClip(ref AudioRef) error {
	if len(ref.Data) == 0 {
		return nil
	}
	if m := DetectMIME(ref.Data); !IsAudio(m) {
		return fmt.Errorf("%w: detected %s", errors.ErrNotAudio, m)
	}
	return nil
}
