package source

import (
	"context"
	"fmt"

	"mentionbot/internal/core/domain"

	"github.com/slack-go/slack"
)

// Slack adapts the Slack RTM stream to the poll-based EventSource port. The
// RTM connection manager runs in its own goroutine; Poll drains whatever
// events have accumulated on the stream without waiting for new ones.
type Slack struct {
	api *slack.Client
	rtm *slack.RTM
}

func NewSlack(api *slack.Client) *Slack {
	return &Slack{api: api}
}

func (s *Slack) Connect(ctx context.Context) (string, error) {
	auth, err := s.api.AuthTestContext(ctx)
	if err != nil {
		return "", classify(err)
	}

	s.rtm = s.api.NewRTM()
	go s.rtm.ManageConnection()

	return auth.UserID, nil
}

func (s *Slack) Poll(ctx context.Context) ([]domain.ChannelMessage, error) {
	if s.rtm == nil {
		return nil, fmt.Errorf("%w: not connected", domain.ErrFatal)
	}

	var events []domain.ChannelMessage

	for {
		select {
		case <-ctx.Done():
			return events, ctx.Err()
		case msg, ok := <-s.rtm.IncomingEvents:
			if !ok {
				return events, fmt.Errorf("%w: event stream closed", domain.ErrFatal)
			}

			switch ev := msg.Data.(type) {
			case *slack.MessageEvent:
				events = append(events, domain.ChannelMessage{
					Channel:   ev.Channel,
					Timestamp: ev.Timestamp,
					User:      ev.User,
					Text:      ev.Text,
					SubType:   ev.SubType,
				})
			case *slack.InvalidAuthEvent:
				return events, fmt.Errorf("%w: credentials rejected", domain.ErrFatal)
			case *slack.RTMError:
				return events, fmt.Errorf("rtm error: %s", ev.Error())
			case *slack.ConnectionErrorEvent:
				return events, fmt.Errorf("connection error: %w", ev)
			default:
				// hello, connected, latency reports, typing indicators
			}
		default:
			return events, nil
		}
	}
}

func (s *Slack) HealthCheck(ctx context.Context) bool {
	_, err := s.api.AuthTestContext(ctx)
	return err == nil
}

func (s *Slack) Close() error {
	if s.rtm == nil {
		return nil
	}

	return s.rtm.Disconnect()
}

// classify maps Slack API error strings onto the transport error taxonomy.
// Credential errors never recover on retry.
func classify(err error) error {
	switch err.Error() {
	case "invalid_auth", "not_authed", "account_inactive", "token_revoked":
		return fmt.Errorf("%w: %v", domain.ErrFatal, err)
	}

	return err
}
