// Package prompts builds the language-model prompts for every pipeline
// stage. All builders are pure string functions; English and German variants
// follow the configured language.
package prompts

// Language selects the prompt variant and the Wikipedia edition referenced
// inside it.
type Language string

const (
	English Language = "en"
	German  Language = "de"
)

func (l Language) WikipediaHost() string {
	if l == German {
		return "de.wikipedia.org"
	}
	return "en.wikipedia.org"
}
