package domain

import "strings"

const whisperKeyword = "whisper"

// ParseWhisper reports whether the command text requests an ephemeral reply
// and returns the text with the first occurrence of the keyword removed and
// the edges trimmed. A doubled space left at the removal point is collapsed;
// interior whitespace is otherwise preserved. Matching is case-insensitive
// unless caseSensitive is set, which restores the historical behavior of only
// recognizing the lower-case keyword.
func ParseWhisper(text string, caseSensitive bool) (bool, string) {
	haystack := text
	if !caseSensitive {
		haystack = strings.ToLower(text)
	}

	idx := strings.Index(haystack, whisperKeyword)
	if idx < 0 {
		return false, text
	}

	before := text[:idx]
	after := text[idx+len(whisperKeyword):]

	if strings.HasSuffix(before, " ") && strings.HasPrefix(after, " ") {
		after = after[1:]
	}

	return true, strings.TrimSpace(before + after)
}
