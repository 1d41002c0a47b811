package prompts

import "fmt"

const predicateExamplesEN = "has_name, is_type, part_of, has_part, member_of, has_member, instance_of, has_role, has_competence, assesses, receives, issues, belongs_to, covers, has_method, uses, provides, requires, supports, offers, participates_in, organizes, collaborates_with, occurs_on, occurs_at, has_date, has_time, has_location, has_person, has_group, has_language, has_topic, has_field, has_subject, has_theory, has_term, has_tool, has_value, has_goal, has_objective, has_prerequisite, has_policy, has_funding, has_event, has_activity, has_feedback, has_resource, has_project, has_system, has_task, has_result, has_work, has_phenomenon"

const predicateExamplesDE = "hat_name, ist_typ, ist_teil_von, hat_teil, mitglied_von, hat_mitglied, instanz_von, hat_rolle, hat_kompetenz, bewertet, erhält, vergibt, gehört_zu, behandelt, hat_methode, verwendet, stellt_bereit, erfordert, unterstützt, bietet_an, nimmt_teil_an, organisiert, arbeitet_zusammen_mit, findet_statt_am, findet_statt_in, hat_datum, hat_zeit, hat_ort, hat_person, hat_gruppe, hat_sprache, hat_thema, hat_fachgebiet, hat_theorie, hat_begriff, hat_werkzeug, hat_wert, hat_ziel, hat_lernziel, hat_voraussetzung, hat_richtlinie, hat_förderung, hat_ereignis, hat_aktivität, hat_feedback, hat_ressource, hat_projekt, hat_system, hat_aufgabe, hat_ergebnis, hat_werk, hat_phänomen"

const lineFormatEN = "Return each relationship as a line in the format: subject; predicate; object. One relationship per line. No JSON or other formatting."

const lineFormatDE = "Gib jede Beziehung als Zeile im Format subject; predicate; object zurück. Eine Beziehung pro Zeile. Keine JSON oder weitere Formatierung."

// ExplicitSystem asks only for relationships directly stated in the text.
func ExplicitSystem(lang Language) string {
	if lang == German {
		return fmt.Sprintf(`Du bist ein fortschrittliches KI-System zur Wissensextraktion und Wissensgraphgenerierung. Denke gründlich nach und antworte besonders vollständig.
Extrahiere NUR explizite Beziehungen zwischen den bereitgestellten Entitäten; erfinde keine neuen Entitäten.
Verwende nur die bereitgestellten Entitäten für Subjekt und Objekt, exakt wie in der Entitätenliste (inkl. Groß-/Kleinschreibung).
Regeln:
- Entitätskonsistenz: Verwende nur die bereitgestellten Entitätsnamen.
- Prädikate MÜSSEN 1-3 Wörter lang und kleingeschrieben sein.
- Beispiel-Prädikate: %s

Ausgabe:
%s

Beispiel:
Barack Obama; geboren_in; Hawaii`, predicateExamplesDE, lineFormatDE)
	}
	return fmt.Sprintf(`You are an advanced AI system specializing in knowledge extraction and knowledge graph generation. Think deeply before answering.
Your task:
Extract ONLY explicit (directly mentioned in the text) relationships between the provided entities; do NOT infer or add any relationships that are not directly stated in the text.
Use only the provided entities for subject and object, exactly as they appear in the Entities list (including capitalization); do NOT invent new entities.
Rules:
- Entity Consistency: Use only provided entity names.
- Predicates MUST be 1-3 words lowercase.
- Examples of predicates: %s

Output:
%s

Example:
Barack Obama; born_in; Hawaii`, predicateExamplesEN, lineFormatEN)
}

func ExplicitUser(lang Language, text, entityJSON string, maxRelations int) string {
	if lang == German {
		return fmt.Sprintf("Text: ```%s```\n\nEntitäten:\n%s\n\nIdentifiziere alle EXPLIZITEN Beziehungen zwischen den bereitgestellten Entitäten im Text. Verwende nur die bereitgestellten Entitäten (inkl. Original-Großschreibung) und erfinde keine neuen.\nPrädikate MÜSSEN 1-3 Wörter lang und kleingeschrieben sein.\n\nAusgabe:\n%s\nBeschränke auf maximal %d Beziehungen.\nAntworte nur auf Deutsch.\n\nBeispiel:\nBarack Obama; geboren_in; Hawaii",
			text, entityJSON, lineFormatDE, maxRelations)
	}
	return fmt.Sprintf("Text: ```%s```\n\nEntities:\n%s\n\nIdentify all EXPLICIT relationships between these entities in the text, using only the provided entities (exact capitalization); do NOT invent new entities. Predicates MUST be 1-3 words lowercase.\n\nOutput:\n%s\nLimit to at most %d relationships.\nAnswer only in English.\n\nExample:\nBarack Obama; born_in; Hawaii",
		text, entityJSON, lineFormatEN, maxRelations)
}

// AllSystem asks for every plausible relationship, used by the generation
// flow where nothing in the output counts as explicit.
func AllSystem(lang Language) string {
	if lang == German {
		return fmt.Sprintf(`Du bist ein fortschrittliches KI-System zur Wissensgraph-Extraktion und -Anreicherung. Denke gründlich nach und antworte sorgfältig.
Deine Aufgabe:
Generiere ALLE möglichen Beziehungen zwischen den bereitgestellten Entitäten basierend auf dem Text. Jede Beziehung darf nur einmal vorkommen; dupliziere oder paraphrasiere nicht. Erfinde keine neuen Entitäten.
Regeln:
- Verwende nur die bereitgestellten Entitäten als Subjekt und Objekt.
- Prädikate MÜSSEN 1-3 Wörter lang und kleingeschrieben sein.
- Beispiel-Prädikate: %s

Ausgabe:
%s
Antworte nur auf Deutsch.

Beispiel:
Marie Curie; gewann; Nobelpreis`, predicateExamplesDE, lineFormatDE)
	}
	return fmt.Sprintf(`You are an advanced AI system specializing in knowledge graph extraction and enrichment. Think deeply before answering.
Your task:
Based on the provided text and entity list, generate ALL possible relationships between these entities. Each relationship must appear only once; do NOT duplicate or rephrase relationships. Do NOT invent new entities.
Rules:
- Use only the provided entities as subject and object.
- Predicates MUST be 1-3 words lowercase.
- Examples of predicates: %s

Output:
%s
Answer only in English.

Example:
Marie Curie; won; Nobel Prize`, predicateExamplesEN, lineFormatEN)
}

func AllUser(lang Language, text, entityJSON string, maxRelations int) string {
	if lang == German {
		return fmt.Sprintf("Text: ```%s```\n\nEntitäten:\n%s\n\nGeneriere ALLE möglichen Beziehungen zwischen diesen Entitäten basierend auf dem Text. Jede Beziehung nur einmal; dupliziere oder paraphrasiere nicht. Erfinde keine neuen Entitäten. Prädikate MÜSSEN 1-3 Wörter lang und kleingeschrieben sein.\n\nAusgabe:\n%s\nBeschränke auf maximal %d Beziehungen.\nAntworte nur auf Deutsch.\n\nBeispiel:\nMarie Curie; gewann; Nobelpreis",
			text, entityJSON, lineFormatDE, maxRelations)
	}
	return fmt.Sprintf("Text: ```%s```\n\nEntities:\n%s\n\nIdentify ALL possible relationships between these entities based on the text. Each must be unique; do NOT duplicate or rephrase. Do NOT invent new entities. Use only the provided entities for subject and object. Predicates MUST be 1-3 words lowercase.\n\nOutput:\n%s\nLimit to at most %d relationships.\nAnswer only in English.\n\nExample:\nMarie Curie; won; Nobel Prize",
		text, entityJSON, lineFormatEN, maxRelations)
}

// ImplicitSystem asks for implicit relationships on top of already extracted
// explicit ones.
func ImplicitSystem(lang Language) string {
	if lang == German {
		return fmt.Sprintf(`Du bist ein fortschrittliches KI-System zur Wissensgraph-Anreicherung. Denke gründlich nach und antworte detailliert.
Deine Aufgabe:
Ergänze basierend auf dem Text, der Entitätenliste und den bereits extrahierten expliziten Beziehungen alle weiteren impliziten Beziehungen.
Regeln:
- Verwende nur die bereitgestellten Entitäten als Subjekt und Objekt; erfinde keine neuen Entitäten.
- Prädikate MÜSSEN 1-3 Wörter lang und kleingeschrieben sein.
- Beispiel-Prädikate: %s

Ausgabe:
%s

Beispiel:
Albert Einstein; entwickelte; Relativitätstheorie`, predicateExamplesDE, lineFormatDE)
	}
	return fmt.Sprintf(`You are an advanced AI system specializing in knowledge graph enrichment. Think deeply before answering.
Your task:
Based on the provided text, entity list, and the already extracted explicit relationships, identify and add all additional implicit relationships.
Rules:
- Use only the provided entities as subject and object; do NOT invent new entities.
- Predicates MUST be 1-3 words lowercase.
- Examples of predicates: %s

Output:
%s

Example:
Albert Einstein; developed; theory of relativity`, predicateExamplesEN, lineFormatEN)
}

func ImplicitUser(lang Language, text, entityJSON, explicitJSON string, maxRelations int) string {
	if lang == German {
		return fmt.Sprintf("Text: ```%s```\n\nEntitäten:\n%s\n\nExplizite Beziehungen (nicht wiederholen):\n%s\n\nErgänze bis zu %d implizite Beziehungen basierend auf dem Text und den expliziten Beziehungen. Verwende nur die bereitgestellten Entitäten für Subjekt und Objekt; erfinde keine neuen Entitäten. Prädikate MÜSSEN 1-3 Wörter lang und kleingeschrieben sein.\n\nAusgabe:\n%s",
			text, entityJSON, explicitJSON, maxRelations, lineFormatDE)
	}
	return fmt.Sprintf("Text: ```%s```\n\nEntities:\n%s\n\nExplicit relationships (do NOT repeat):\n%s\n\nIdentify up to %d additional implicit relationships between these entities. Use only the provided entities for subject and object exactly as they appear in the Entities list (including capitalization); do NOT invent new entities. Predicates MUST be 1-3 words lowercase.\n\nOutput:\n%s",
		text, entityJSON, explicitJSON, maxRelations, lineFormatEN)
}

// KGCSystem drives one knowledge-graph-completion round: only novel
// connections, nothing restated.
func KGCSystem(lang Language) string {
	if lang == German {
		return fmt.Sprintf(`Du bist ein Knowledge-Graph-Completion-Assistent.
Erzeuge nur neue implizite Beziehungen, die fehlende oder neue logische Verbindungen zwischen den angegebenen Entitäten aufdecken.
Verwende nur die bereitgestellten Entitäten für Subjekt und Objekt, exakt wie sie in der Entitätenliste stehen (inklusive Groß-/Kleinschreibung); erfinde keine neuen Entitäten.
Dupliziere oder paraphrasiere keine bestehenden Beziehungen (einschließlich Synonyme oder stilistischer Varianten).
Prädikate MÜSSEN 1-3 Wörter lang und kleingeschrieben sein.
Beispiel-Prädikate: %s

Ausgabe:
%s

Beispiel:
Angela Merkel; geboren_in; Hamburg
Angela Merkel; hat_studiert; Physik`, predicateExamplesDE, lineFormatDE)
	}
	return fmt.Sprintf(`You are a knowledge graph completion assistant.
Only generate new implicit relationships that uncover missing or novel logical connections between the provided entities.
Use only the provided entities for subject and object, exactly as they appear in the Entities list (including capitalization); do not invent any new entities.
Do not rephrase or duplicate any existing relationships (including synonyms or stylistic variants).
Predicates MUST be 1-3 words lowercase.
Examples of predicates: %s

Output:
%s

Example:
Henri Poincaré; born_in; Nancy
Henri Poincaré; worked_at; École Polytechnique`, predicateExamplesEN, lineFormatEN)
}

func KGCUser(lang Language, text, entityJSON, existingJSON string, maxRelations int) string {
	if lang == German {
		return fmt.Sprintf("Text: ```%s```\n\nEntitäten:\n%s\n\nBestehende Beziehungen:\n%s\n\nErgänze bis zu %d implizite Beziehungen, die fehlende oder neue logische Verbindungen zwischen diesen Entitäten darstellen und in den bestehenden Beziehungen nicht enthalten sind. Dupliziere oder paraphrasiere keine Beziehungen. Verwende die Entitätsnamen exakt wie in der Liste für Subjekt und Objekt; erfinde keine neuen Entitäten. Prädikate MÜSSEN 1-3 Wörter lang und kleingeschrieben sein.\n\nAusgabe:\n%s\nAntworte nur auf Deutsch.",
			text, entityJSON, existingJSON, maxRelations, lineFormatDE)
	}
	return fmt.Sprintf("Text: ```%s```\n\nEntities:\n%s\n\nExisting relationships:\n%s\n\nIdentify up to %d additional implicit relationships that reveal missing or novel logical connections between these entities and are not captured by any existing relationships. Do not duplicate, rephrase, or restate relationships. Use only the provided entities for subject and object exactly as they appear in the Entities list (including capitalization); do not introduce new entities. Predicates MUST be 1-3 words lowercase.\n\nOutput:\n%s\nAnswer only in English.",
		text, entityJSON, existingJSON, maxRelations, lineFormatEN)
}
