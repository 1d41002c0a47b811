package prompts

import "fmt"

// ExtractSystem instructs the model to identify entities explicitly present
// in a text and link them to Wikipedia.
func ExtractSystem(lang Language, maxEntities int) string {
	if lang == German {
		return fmt.Sprintf(`Du bist ein hilfreiches KI-System für die Erkennung und Verlinkung von Entitäten. Denke gründlich nach und antworte sorgfältig und vollständig.
Deine Aufgabe ist es, aus einem gegebenen Text die wichtigsten Entitäten zu identifizieren (max. %[1]d) und sie mit ihren Wikipedia-Seiten zu verknüpfen.

Gib ein JSON-Array mit Objekten für jede Entität zurück, mit diesen Eigenschaften:
- entity: Der Entitätsname exakt wie er in der deutschen Wikipedia erscheint
- entity_type: Der Entitätstyp (z.B. Zeitraum, Person, Ort, Organisation, weitere je nach Kontext)
- wikipedia_url: Die URL zum deutschen Wikipedia-Artikel (de.wikipedia.org)
- citation: Der exakte Textausschnitt aus dem Originaltext, der diese Entität erwähnt

Regeln:
- Extrahiere höchstens %[1]d Entitäten
- Konzentriere dich auf die wichtigsten Entitäten im Text
- Verwende immer die deutsche Wikipedia (de.wikipedia.org) und gib für jede Entität den offiziellen deutschen Wikipedia-Titel und die URL an
- Wenn es keinen deutschen Wikipedia-Artikel gibt, überspringe die Entität
- Zitate müssen exakt und ohne abschließende Auslassungspunkte aus dem Originaltext übernommen werden
- Halte Zitate unter maximal 10 Wörtern und konzentriere dich auf die genaue Erwähnung der Entität
- Gib nur gültiges JSON ohne Erklärung zurück
- Wikipedia-URLs dürfen keine Prozent-Codierung enthalten; Sonderzeichen und Umlaute müssen unkodiert sein (z.B. https://de.wikipedia.org/wiki/Schrödinger-Gleichung)`, maxEntities)
	}
	return fmt.Sprintf(`You are a helpful AI system for recognizing and linking entities. Think carefully and answer thoroughly and completely.
Your task is to identify the most important entities from a given text (max. %[1]d) and link them to their Wikipedia pages.

Return a JSON array with objects for each entity, with these properties:
- entity: The entity name exactly as it appears in the English Wikipedia
- entity_type: The entity type (e.g., Period, Date, Location, Organization, Field, Theory, Person, Event, Work, etc.)
- wikipedia_url: The URL to the English Wikipedia article (en.wikipedia.org)
- citation: The exact text span from the original text that mentions this entity

Rules:
- Extract at most %[1]d entities
- Focus on the most important entities in the text
- Always use the English Wikipedia (en.wikipedia.org) and provide the official English Wikipedia title and URL for each entity
- Do NOT use translated names, and do NOT invent your own translations
- If there is no English Wikipedia article, skip the entity
- Citations must be returned exactly as they appear in the original text, without any trailing ellipsis or truncation
- Keep citations under 10 words maximum, focusing on the exact entity mention
- Return only valid JSON without any explanation
- Wikipedia URLs must not include percent-encoded characters; special characters should be unencoded (e.g., https://en.wikipedia.org/wiki/Schrödinger_equation)`, maxEntities)
}

func ExtractUser(lang Language, text string) string {
	if lang == German {
		return "Identifiziere die Hauptentitäten im folgenden Text und gib mir die Wikipedia-URLs, Entitätstypen und Zitate dazu. " +
			"Formatiere deine Antwort im JSON-Format mit einem Array von Objekten. Jedes Objekt sollte die Felder 'entity', 'entity_type', 'wikipedia_url' und 'citation' enthalten.\n\n" +
			"Text: " + text
	}
	return "Identify the main entities in the following text and provide their Wikipedia URLs, entity types, and citations. " +
		"Format your response in JSON format with an array of objects. Each object should contain the fields 'entity', 'entity_type', 'wikipedia_url', and 'citation'.\n\n" +
		"Text: " + text
}

// TypeRestriction is appended to the system prompt when the configuration
// pins the allowed entity types.
func TypeRestriction(lang Language, entityTypes string) string {
	if lang == German {
		return fmt.Sprintf("WICHTIG: Du darfst NUR Entitäten der folgenden Typen extrahieren: %s. "+
			"Ignoriere alle Entitäten, die nicht zu diesen Typen gehören. "+
			"Das entity_type-Feld in deiner Antwort muss einer dieser exakten Werte sein.", entityTypes)
	}
	return fmt.Sprintf("IMPORTANT: You must ONLY extract entities of the following types: %s. "+
		"Ignore any entities that don't belong to these types. "+
		"The entity_type field in your response must be one of these exact values.", entityTypes)
}

// GenerateSystem instructs the model to produce implicit entities relevant to
// a topic, as semicolon-delimited lines.
func GenerateSystem(lang Language, maxEntities int, topic string) string {
	if lang == German {
		return fmt.Sprintf(`Generiere genau %[1]d implizite, logische Entitäten zum Thema: %[2]s.

Ausgabeformat:
Jede Entität als semikolon-getrennte Zeile: name; type; wikipedia_url; citation.
Eine Entität pro Zeile. Keine JSON oder zusätzliche Formatierung.

Richtlinien:
- Setze 'citation' auf "generated" für jede Entität.
- Verwende nur die deutsche Wikipedia (de.wikipedia.org) mit exaktem Titel und URL; überspringe Entitäten ohne Artikel.
- Wikipedia-URLs dürfen keine Prozent-Codierung enthalten; Sonderzeichen unkodiert.
- Keine Erklärungen oder zusätzlichen Texte.`, maxEntities, topic)
	}
	return fmt.Sprintf(`Generate exactly %[1]d implicit, logical entities relevant to the topic: %[2]s.

Output format:
Each entity as a semicolon-separated line: name; type; wikipedia_url; citation.
One entity per line. No JSON or additional formatting.

Guidelines:
- Set 'citation' to "generated" for each entity.
- Use only English Wikipedia (en.wikipedia.org) with exact title and URL; skip entities without articles.
- Wikipedia URLs must not include percent-encoded characters; special characters unencoded.
- Do not include any explanations or additional text.`, maxEntities, topic)
}

func GenerateUser(lang Language, maxEntities int) string {
	if lang == German {
		return fmt.Sprintf("Gib genau %d implizite Entitäten als semikolon-getrennte Zeilen zurück: name; type; wikipedia_url; citation. "+
			"Stelle sicher, dass die Wikipedia-URLs von de.wikipedia.org stammen und exakten Titel und URL verwenden. "+
			"Eine Entität pro Zeile. Keine JSON.", maxEntities)
	}
	return fmt.Sprintf("Provide exactly %d implicit entities as semicolon-separated lines: name; type; wikipedia_url; citation. "+
		"Ensure Wikipedia URLs are from en.wikipedia.org with exact title and URL. "+
		"One entity per line. No JSON.", maxEntities)
}

// CompendiumEntitiesSystem is the generation variant used when the run
// builds a full compendium: same line format, broader coverage.
func CompendiumEntitiesSystem(lang Language, maxEntities int, topic string) string {
	if lang == German {
		return GenerateSystem(lang, maxEntities, topic) +
			"\n- Decke das Thema umfassend ab: Grundbegriffe, Teilgebiete, zentrale Personen, Organisationen, Ereignisse und angrenzende Wissensgebiete."
	}
	return GenerateSystem(lang, maxEntities, topic) +
		"\n- Cover the topic comprehensively: fundamental concepts, subfields, key persons, organizations, events, and adjacent fields of knowledge."
}

// InferenceSystem asks for additional implicit entities that complete an
// existing entity set.
func InferenceSystem(lang Language, maxEntities int) string {
	if lang == German {
		return fmt.Sprintf(`Du bist ein KI-Assistent, der eine vorhandene Entitätenliste anreichert, indem er ausschließlich implizite Entitäten ergänzt, um das Wissensnetz logisch zu vervollständigen.
Wiederhole keine der bereits vorhandenen Entitäten.
Generiere genau %d neue Entitäten.

Gib ein JSON-Array mit Objekten zurück, die folgende Felder enthalten:
- entity
- entity_type
- wikipedia_url
- inferred (setze auf "implicit")
- citation (setze auf "generated")`, maxEntities)
	}
	return fmt.Sprintf(`You are an AI assistant tasked with enriching an existing entity list by adding only implicit entities to logically complete the knowledge network.
Do NOT include any of the provided entities.
Generate exactly %d new entities.

Output a JSON array of objects with these fields:
- entity
- entity_type
- wikipedia_url
- inferred (set to "implicit")
- citation (set to "generated")`, maxEntities)
}

func InferenceUser(lang Language, text, existingJSON string, maxEntities int) string {
	if lang == German {
		return fmt.Sprintf("Thema/Text: %s\n\nVorhandene Entitäten:\n%s\n\nErgänze genau %d neue implizite Entitäten, die das Netzwerk logisch vervollständigen.",
			text, existingJSON, maxEntities)
	}
	return fmt.Sprintf("Topic/Text: %s\n\nExisting entities:\n%s\n\nSupplement the list by adding exactly %d new implicit entities that logically complete the network.",
		text, existingJSON, maxEntities)
}
