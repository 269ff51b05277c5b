package prompt

import (
	"context"
	"fmt"

	"presetbird/text"
)

const DefaultLanguage = "zh"

var languages = []struct {
	Code string
	Name string
}{
	{"zh", "Chinese"},
	{"en", "English"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"ru", "Russian"},
	{"it", "Italian"},
	{"pt", "Portuguese"},
}

// Languages lists the language codes Translate knows by name.
func Languages() []string {
	codes := make([]string, len(languages))
	for i, l := range languages {
		codes[i] = l.Code
	}
	return codes
}

// LanguageName resolves a code. Unknown codes are passed through so any
// language the model understands can be asked for.
func LanguageName(code string) string {
	for _, l := range languages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}

// Translate returns input in the target language, without any trimming of
// the model's reply.
func Translate(ctx context.Context, c text.Connector, input, language string) (string, error) {
	system := fmt.Sprintf("You are a translation engine. Translate any user input into %s. "+
		"Only return the translated text, without explanation, notes, or extra formatting.", LanguageName(language))

	return c.Invoke(ctx, []text.Message{text.System(system), text.User(input)}, text.Options{})
}
