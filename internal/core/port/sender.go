package port

import "context"

type MessageSender interface {
	// SendMessage posts a plain message to a channel.
	SendMessage(ctx context.Context, channel, text string) error
	// SendThreadReply posts a reply attached to an existing message, addressed
	// by the channel and the message timestamp.
	SendThreadReply(ctx context.Context, channel, threadTS, text string) error
	// SendEphemeral posts a message to a channel that is only visible to the
	// given user.
	SendEphemeral(ctx context.Context, channel, user, text string) error
}
