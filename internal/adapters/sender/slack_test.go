package sender

import (
	"context"
	"errors"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	args := m.Called(ctx, channelID, options)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAPI) PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error) {
	args := m.Called(ctx, channelID, userID, options)
	return args.String(0), args.Error(1)
}

func TestSendMessage(t *testing.T) {
	tests := []struct {
		name    string
		retErr  error
		wantErr bool
	}{
		{
			name:    "success",
			retErr:  nil,
			wantErr: false,
		},
		{
			name:    "post fails",
			retErr:  errors.New("channel_not_found"),
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ma := new(MockAPI)
			ma.On("PostMessageContext", mock.Anything, "C1", mock.Anything).
				Return("C1", "1503435956.000247", tc.retErr).Once()

			s := NewSlack(ma)
			err := s.SendMessage(context.Background(), "C1", "hello")

			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			ma.AssertExpectations(t)
		})
	}
}

func TestSendThreadReply(t *testing.T) {
	tests := []struct {
		name     string
		retErr   error
		wantErr  bool
		wantOpts int
	}{
		{
			name:     "success includes thread option",
			retErr:   nil,
			wantErr:  false,
			wantOpts: 2,
		},
		{
			name:     "post fails",
			retErr:   errors.New("thread_not_found"),
			wantErr:  true,
			wantOpts: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ma := new(MockAPI)
			ma.On("PostMessageContext", mock.Anything, "C1",
				mock.MatchedBy(func(opts []slack.MsgOption) bool {
					return len(opts) == tc.wantOpts
				})).
				Return("C1", "1503435956.000300", tc.retErr).Once()

			s := NewSlack(ma)
			err := s.SendThreadReply(context.Background(), "C1", "1503435956.000247", "reply")

			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			ma.AssertExpectations(t)
		})
	}
}

func TestSendEphemeral(t *testing.T) {
	tests := []struct {
		name    string
		retErr  error
		wantErr bool
	}{
		{
			name:    "success",
			retErr:  nil,
			wantErr: false,
		},
		{
			name:    "post fails",
			retErr:  errors.New("user_not_in_channel"),
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ma := new(MockAPI)
			ma.On("PostEphemeralContext", mock.Anything, "C1", "U42", mock.Anything).
				Return("1503435956.000300", tc.retErr).Once()

			s := NewSlack(ma)
			err := s.SendEphemeral(context.Background(), "C1", "U42", "psst")

			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			ma.AssertExpectations(t)
		})
	}
}
