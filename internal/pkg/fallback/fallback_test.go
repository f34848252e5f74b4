package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage_English(t *testing.T) {
	s := NewSelector("en")

	msg := s.Message("What are the opening hours of the library on weekends?")
	assert.Equal(t, messages["en"], msg)
}

func TestMessage_Vietnamese(t *testing.T) {
	s := NewSelector("en")

	msg := s.Message("Bạn có thể cho mình biết giờ mở cửa của thư viện không?")
	assert.Equal(t, messages["vi"], msg)
}

func TestMessage_UnsupportedLanguageFallsBackToDefault(t *testing.T) {
	s := NewSelector("en")

	// German is not a registered message language.
	msg := s.Message("Wie spät ist es gerade in Berlin und wann öffnet das Museum?")
	assert.Equal(t, messages["en"], msg)
}

func TestMessage_UndetectableInput(t *testing.T) {
	s := NewSelector("en")

	assert.Equal(t, messages["en"], s.Message("????"))
}

func TestNewSelector_UnknownDefaultBecomesEnglish(t *testing.T) {
	s := NewSelector("xx")

	assert.Equal(t, DefaultLang, s.defaultLang)
}
