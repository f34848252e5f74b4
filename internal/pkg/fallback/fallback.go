// Package fallback selects the canned reply returned when neither
// retrieval nor generation produced a usable answer. The reply is
// localized by detecting the language of the user's question.
package fallback

import (
	"github.com/abadojack/whatlanggo"
)

// DefaultLang is used when detection fails or the detected language
// has no registered message.
const DefaultLang = "en"

var messages = map[string]string{
	"en": "Sorry, I’m not sure yet. I’ll get back to you soon.",
	"vi": "Xin lỗi bạn, mình cần check lại chút, sẽ cập nhật lại bạn sau nhé.",
}

// Selector picks localized fallback messages.
type Selector struct {
	defaultLang string
}

// NewSelector returns a Selector with the given default language code.
// An unknown default falls back to English.
func NewSelector(defaultLang string) *Selector {
	if _, ok := messages[defaultLang]; !ok {
		defaultLang = DefaultLang
	}
	return &Selector{defaultLang: defaultLang}
}

// Message returns the canned reply for the language detected in question.
// Detection failure or an unsupported language yields the default message.
func (s *Selector) Message(question string) string {
	lang := detect(question)
	if msg, ok := messages[lang]; ok {
		return msg
	}
	return messages[s.defaultLang]
}

func detect(text string) string {
	info := whatlanggo.Detect(text)
	switch info.Lang {
	case whatlanggo.Eng:
		return "en"
	case whatlanggo.Vie:
		return "vi"
	default:
		return ""
	}
}
