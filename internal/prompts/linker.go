package prompts

import "fmt"

func SynonymSystem(lang Language) string {
	if lang == German {
		return "Du bist ein Experte für Entitätserkennung und die Namenskonventionen der Wikidata-Wissensdatenbank."
	}
	return "You are an expert in entity recognition and Wikidata knowledge base conventions."
}

// SynonymUser asks for alternative names to retry failed knowledge-base
// lookups with.
func SynonymUser(lang Language, entityName string) string {
	if lang == German {
		return fmt.Sprintf("Generiere die 3 wahrscheinlichsten alternativen Namen oder Synonyme für '%s', die den Namenskonventionen von Wikidata entsprechen würden. "+
			"Jeder Vorschlag sollte idealerweise nur ein Wort sein. Konzentriere dich auf die offizielle Terminologie, die in Wikidata-Einträgen verwendet wird, nicht auf allgemeine Synonyme. "+
			"Für wissenschaftliche Konzepte bevorzuge die standardisierte Fachterminologie. Gib NUR ein JSON-Array von Strings zurück, ohne jegliche Erklärung.", entityName)
	}
	return fmt.Sprintf("Generate the 3 most likely alternative names or synonyms for '%s' that would match Wikidata's naming conventions. "+
		"Ideally, each suggestion should be a single word. Focus on official terminology used in Wikidata entries, not general synonyms. "+
		"For scientific concepts, prefer standard English academic terminology. Return ONLY a JSON array of strings without any explanation.", entityName)
}
