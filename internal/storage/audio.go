package storage

import (
	"encoding/base64"
	"errors"
	"strings"
)

// MaxAudioBytes caps a decoded voice review.
const MaxAudioBytes = 5 << 20

const defaultAudioType = "audio/webm"

var (
	ErrInvalidAudio  = errors.New("audio data is not valid base64")
	ErrAudioTooLarge = errors.New("audio data is too large")
)

var audioExtensions = map[string]string{
	"audio/webm":  "webm",
	"audio/ogg":   "ogg",
	"audio/mpeg":  "mp3",
	"audio/mp4":   "m4a",
	"audio/wav":   "wav",
	"audio/x-wav": "wav",
}

// Audio is a decoded voice review recording.
type Audio struct {
	Data        []byte
	ContentType string
}

// Extension returns the file extension used in object keys.
func (a Audio) Extension() string {
	if ext, ok := audioExtensions[a.ContentType]; ok {
		return ext
	}
	return "bin"
}

// DecodeAudio accepts raw base64 or a data URL such as
// "data:audio/webm;codecs=opus;base64,GkXf...".
func DecodeAudio(s string) (Audio, error) {
	s = strings.TrimSpace(s)
	contentType := defaultAudioType

	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return Audio{}, ErrInvalidAudio
		}
		mediaType, _, _ := strings.Cut(strings.TrimSuffix(meta, ";base64"), ";")
		if mediaType != "" {
			contentType = strings.ToLower(mediaType)
		}
		s = payload
	}

	if base64.StdEncoding.DecodedLen(len(s)) > MaxAudioBytes+3 {
		return Audio{}, ErrAudioTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil || len(data) == 0 {
		return Audio{}, ErrInvalidAudio
	}
	if len(data) > MaxAudioBytes {
		return Audio{}, ErrAudioTooLarge
	}

	return Audio{Data: data, ContentType: contentType}, nil
}
