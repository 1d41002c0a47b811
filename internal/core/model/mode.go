package model

import "fmt"

// Mode selects the pipeline's entity strategy. It is resolved from the
// configuration string once at pipeline entry and dispatched nowhere else.
type Mode int

const (
	// ModeExtract finds entities explicitly present in the input text.
	ModeExtract Mode = iota
	// ModeGenerate produces entities implicitly relevant to a topic.
	ModeGenerate
	// ModeCompendium is generation tuned for a broader, sourced overview of
	// a topic.
	ModeCompendium
)

func (m Mode) String() string {
	switch m {
	case ModeExtract:
		return "extract"
	case ModeGenerate:
		return "generate"
	case ModeCompendium:
		return "compendium"
	}
	return "unknown"
}

// ParseMode maps a configuration string onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "extract", "":
		return ModeExtract, nil
	case "generate":
		return ModeGenerate, nil
	case "compendium":
		return ModeCompendium, nil
	}
	return ModeExtract, fmt.Errorf("unknown mode %q", s)
}
