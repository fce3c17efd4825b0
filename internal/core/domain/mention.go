package domain

import (
	"regexp"
	"strings"
)

var mentionPattern = regexp.MustCompile(`^<@(|[WU].+?)>(.*)`)

// ParseDirectMention finds a direct mention at the very start of the message
// text and returns the mentioned user ID and the trimmed remainder. ok is
// false when the message does not open with a mention; mentions anywhere else
// in the text do not count.
func ParseDirectMention(text string) (string, string, bool) {
	matches := mentionPattern.FindStringSubmatch(text)
	if matches == nil {
		return "", "", false
	}

	return matches[1], strings.TrimSpace(matches[2]), true
}
