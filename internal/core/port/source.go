package port

import (
	"context"

	"mentionbot/internal/core/domain"
)

type EventSource interface {
	// Connect opens the transport session and returns the bot's own user ID.
	Connect(ctx context.Context) (string, error)
	// Poll returns all currently available channel messages without waiting
	// for new ones. Events gathered before an error are still returned.
	// Errors wrapping domain.ErrFatal are unrecoverable; anything else is
	// transient and safe to retry.
	Poll(ctx context.Context) ([]domain.ChannelMessage, error)
	// HealthCheck reports whether the transport session is still usable.
	HealthCheck(ctx context.Context) bool
	// Close tears down the transport session.
	Close() error
}
