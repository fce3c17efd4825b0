package domain

import "github.com/gofrs/uuid/v5"

// Command is a single registry entry. Name matching is case-insensitive and
// registry order is precedence order.
type Command struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
}

// ChannelMessage is a raw transport event as surfaced by the event source.
// SubType is empty for plain user messages; edits, joins and other platform
// events carry a subtype and are never actionable.
type ChannelMessage struct {
	Channel   string
	Timestamp string
	User      string
	Text      string
	SubType   string
}

// InboundCommand is a direct mention that qualified for dispatch. Text holds
// the lower-cased remainder after the mention token. The ID is attached at
// enqueue time and is only used to correlate log lines.
type InboundCommand struct {
	ID        uuid.UUID
	Channel   string
	Timestamp string
	User      string
	Text      string
	Whisper   bool
}
