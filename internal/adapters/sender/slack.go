package sender

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
)

// WebAPI is the slice of the Slack Web API client the sender needs.
// *slack.Client satisfies it.
type WebAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error)
}

type Slack struct {
	api WebAPI
}

func NewSlack(api WebAPI) *Slack {
	return &Slack{api: api}
}

func (s *Slack) SendMessage(ctx context.Context, channel, text string) error {
	_, _, err := s.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false))
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("failed to post message")
		return fmt.Errorf("posting message: %w", err)
	}

	return nil
}

func (s *Slack) SendThreadReply(ctx context.Context, channel, threadTS, text string) error {
	_, _, err := s.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS))
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Str("thread", threadTS).
			Msg("failed to post threaded reply")
		return fmt.Errorf("posting threaded reply: %w", err)
	}

	return nil
}

func (s *Slack) SendEphemeral(ctx context.Context, channel, user, text string) error {
	_, err := s.api.PostEphemeralContext(ctx, channel, user,
		slack.MsgOptionText(text, false))
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Str("user", user).
			Msg("failed to post ephemeral message")
		return fmt.Errorf("posting ephemeral message: %w", err)
	}

	return nil
}
