package prompts

import "fmt"

func DedupeSystem(lang Language) string {
	if lang == German {
		return "Du bist ein hilfreicher Assistent zur Bereinigung von Knowledge-Graph-Beziehungen."
	}
	return "You are a helpful assistant for deduplicating knowledge graph relationships."
}

// DedupeUser presents all predicates of one entity pair and asks the model to
// keep the single most relevant one, explicit over implicit.
func DedupeUser(lang Language, subject, object, relationshipsJSON string) string {
	if lang == German {
		return fmt.Sprintf("Für die folgenden Beziehungen zwischen Subjekt und Objekt wähle genau eine besonders relevante Beziehung, die die beiden Entitäten optimal verbindet, "+
			"wobei 'explicit' über 'implicit' priorisiert wird. Mehr als eine Beziehung soll nur dann zurückgegeben werden, wenn sie vollständig unterschiedliche Aspekte abbildet. "+
			"Synonyme oder stilistische Varianten sollen zusammengeführt und berücksichtigt werden. "+
			"Subjekt: '%s', Objekt: '%s', Beziehungen: %s. "+
			"Gib ein JSON-Array mit der/den ausgewählten Beziehung(en) inkl. Prädikat und inferred-Feld zurück.",
			subject, object, relationshipsJSON)
	}
	return fmt.Sprintf("For the following relationships between subject and object, select the single most relevant relationship that optimally connects the two entities, "+
		"prioritizing 'explicit' over 'implicit'. Only include additional relationships if they represent completely different aspects. "+
		"Consolidate any synonyms or stylistic variants into the selection. "+
		"Subject: '%s', Object: '%s', Relationships: %s. "+
		"Return a JSON array with the chosen relationship(s), including their predicates and inferred fields.",
		subject, object, relationshipsJSON)
}
