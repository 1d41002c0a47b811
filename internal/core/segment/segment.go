// Package segment splits long input into overlapping windows so each chunk
// stays within the model's working size.
package segment

// Split cuts text into windows of at most size characters, consecutive
// windows overlapping by overlap characters. Sizes count characters, not
// bytes, so multi-byte runes are never cut in half. Requires
// 0 <= overlap < size; text shorter than size comes back as a single window.
func Split(text string, size, overlap int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if size <= 0 || size >= len(runes) {
		return []string{text}
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var chunks []string
	start := 0
	for {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
		start = end - overlap
		if start < 0 {
			start = 0
		}
	}
	return chunks
}
