package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirectMention(t *testing.T) {
	type TestCase struct {
		description   string
		text          string
		wantID        string
		wantRemainder string
		wantOK        bool
	}

	testCases := []TestCase{
		{
			description:   "mention with command",
			text:          "<@U123> do something",
			wantID:        "U123",
			wantRemainder: "do something",
			wantOK:        true,
		},
		{
			description:   "mention only",
			text:          "<@U123>",
			wantID:        "U123",
			wantRemainder: "",
			wantOK:        true,
		},
		{
			description:   "workspace user prefix",
			text:          "<@W42> help",
			wantID:        "W42",
			wantRemainder: "help",
			wantOK:        true,
		},
		{
			description: "mention not at start",
			text:        "hello <@U123>",
			wantOK:      false,
		},
		{
			description: "no mention at all",
			text:        "just a message",
			wantOK:      false,
		},
		{
			description: "empty text",
			text:        "",
			wantOK:      false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			id, remainder, ok := ParseDirectMention(testCase.text)

			assert.Equal(t, testCase.wantOK, ok)
			assert.Equal(t, testCase.wantID, id)
			assert.Equal(t, testCase.wantRemainder, remainder)
		})
	}
}
