package prompts

import (
	"fmt"
	"strings"
)

func educationalBlock(lang Language) string {
	if lang == German {
		return "Ergänzen Sie die Inhalte so, dass sie das für Bildungszwecke relevante Weltwissen zum Thema abbilden. " +
			"Nutzen Sie folgende Aspekte zur Strukturierung: Einführung, Zielsetzung, Grundlegendes; " +
			"Grundlegende Fachinhalte und Terminologie (inkl. Englisch); Systematik und Untergliederung; Gesellschaftlicher Kontext; " +
			"Historische Entwicklung; Akteure, Institutionen und Netzwerke; Beruf und Praxis; Quellen, Literatur und Datensammlungen; " +
			"Bildungspolitische und didaktische Aspekte; Rechtliche und ethische Rahmenbedingungen; " +
			"Nachhaltigkeit und gesellschaftliche Verantwortung; Interdisziplinarität und Anschlusswissen; " +
			"Aktuelle Entwicklungen und Forschung; Praxisbeispiele, Fallstudien und Best Practices."
	}
	return "Generate content representing world knowledge relevant for educational purposes about the topic. " +
		"Structure it using the following aspects: Introduction, Objectives, Fundamentals; " +
		"Fundamental Concepts and Terminology (including English terms); Systematics and Structure; Societal Context; " +
		"Historical Development; Actors, Institutions and Networks; Professions and Practice; Sources, Literature and Data Collections; " +
		"Educational and Didactic Aspects; Legal and Ethical Frameworks; " +
		"Sustainability and Social Responsibility; Interdisciplinarity and Further Knowledge; " +
		"Current Developments and Research; Practical Examples, Case Studies and Best Practices."
}

// CompendiumSystem builds the system prompt for the sourced compendium text.
// References are numbered so the model can cite them as (1), (2), ...
func CompendiumSystem(lang Language, topic string, length int, references []string, educational bool) string {
	var refs strings.Builder
	for i, ref := range references {
		fmt.Fprintf(&refs, "(%d) %s\n", i+1, ref)
	}
	edu := ""
	if educational {
		edu = educationalBlock(lang)
	}

	if lang == German {
		return fmt.Sprintf(`### Referenzen:
%s
Befolgen Sie diese Anweisungen und erstellen Sie einen kompendialen Text über: %s

Die Ausgabe sollte ungefähr %d Zeichen umfassen.

Verwenden Sie Zitationen im Text im Format (1), (2) entsprechend der obenstehenden Referenzliste.
Verwenden Sie im Fließtext Zitate ausschließlich mit Nummern (z.B. Goethe (3)), ohne URLs oder URIs zu nennen.
Erstellen Sie kein Literaturverzeichnis; dies wird separat bereitgestellt.

## Ziel
- Sie sind ein tiefgehender Forschungsassistent, der einen äußerst detaillierten und umfassenden Text für ein akademisches Publikum verfasst
- Ihr Kompendium soll sämtliche Unterthemen erschöpfend behandeln

%s

## Dokumentstruktur
- Verwenden Sie Markdown-Überschriften (#, ##, ###)
- Vermeiden Sie Überspringen von Ebenen
- Fließtext oder Tabellen, keine Listen im Haupttext

## Stilrichtlinien
- Formelle, akademische Schreibweise
- **Fettdruck** nur für zentrale Fachbegriffe
- Tabellen für Datenvergleich`, refs.String(), topic, length, edu)
	}
	return fmt.Sprintf(`### References:
%s
Follow these instructions and create a comprehensive compendium on: %s

The output should be approximately %d characters long.

Use citations in the text in the form (1), (2) corresponding to the reference list above.
Ensure citations use only numbers in the text (e.g. Goethe (3)), without including any URLs or URIs.
Do not generate a bibliography or reference list; it will be provided separately.

## Objective
- You are an in-depth research assistant writing a highly detailed and comprehensive text for an academic audience
- Your compendium should treat all subtopics exhaustively

%s

## Document Structure
- Use Markdown headings (#, ##, ###)
- Avoid skipping heading levels
- Continuous text or tables, no lists in the main text

## Style Guidelines
- Formal academic writing style
- **Bold** only for central technical terms
- Tables for data comparison`, refs.String(), topic, length, edu)
}
