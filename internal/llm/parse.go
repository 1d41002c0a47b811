package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// StripFences removes a surrounding markdown code fence, with or without a
// language tag. Responses without fences pass through trimmed.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		// Drop the language tag line ("json", "text", ...).
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DecodeList parses a JSON array out of a model response, tolerating fence
// wrapping, surrounding prose, and mildly broken JSON.
func DecodeList[T any](response string) ([]T, error) {
	s := StripFences(response)

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start >= 0 && end > start {
		s = s[start : end+1]
	} else if start < 0 {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var result []T
	if err := json.Unmarshal([]byte(s), &result); err == nil {
		return result, nil
	}

	repaired, err := jsonrepair.RepairJSON(s)
	if err != nil {
		return nil, fmt.Errorf("failed to repair JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON array: %w", err)
	}
	return result, nil
}

// Lines splits a response into trimmed non-empty lines after fence
// stripping. Used by the semicolon-delimited formats.
func Lines(response string) []string {
	var out []string
	for _, line := range strings.Split(StripFences(response), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
