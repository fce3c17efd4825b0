package service

import (
	"context"
	"strings"

	"mentionbot/internal/core/domain"
	"mentionbot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type DispatcherParams struct {
	Registry             *domain.Registry
	Sender               port.MessageSender
	Match                domain.MatchOptions
	WhisperCaseSensitive bool
}

// Dispatcher runs one inbound command end to end: whisper split, registry
// match, reply delivery, and the outbound observability log for matched
// non-help commands. The outbound queue is owned by the dispatcher and only
// handed out via DrainOutbound.
type Dispatcher struct {
	registry             *domain.Registry
	sender               port.MessageSender
	match                domain.MatchOptions
	whisperCaseSensitive bool
	outbound             []domain.InboundCommand

	l *zerolog.Logger
}

func NewDispatcher(p DispatcherParams) *Dispatcher {
	logger := log.With().Str("component", "dispatcher").Logger()

	return &Dispatcher{
		registry:             p.Registry,
		sender:               p.Sender,
		match:                p.Match,
		whisperCaseSensitive: p.WhisperCaseSensitive,
		l:                    &logger,
	}
}

// Handle dispatches a single inbound command. It always reports the command
// handled; send failures stay on the operator log and never surface in the
// chat as raw diagnostics.
func (d *Dispatcher) Handle(ctx context.Context, cmd domain.InboundCommand) bool {
	text := strings.TrimSpace(cmd.Text)
	cmd.Whisper, cmd.Text = domain.ParseWhisper(text, d.whisperCaseSensitive)

	result, ok := d.registry.Match(cmd.Text, d.match)

	response := result.Response
	if !ok {
		response = domain.DefaultResponse
	}

	l := d.l.With().
		Stringer("id", cmd.ID).
		Str("channel", cmd.Channel).
		Str("user", cmd.User).
		Logger()

	l.Debug().
		Str("command", cmd.Text).
		Bool("whisper", cmd.Whisper).
		Bool("matched", ok).
		Msg("dispatching command")

	var err error
	if cmd.Whisper {
		err = d.sender.SendEphemeral(ctx, cmd.Channel, cmd.User, response)
	} else {
		err = d.sender.SendThreadReply(ctx, cmd.Channel, cmd.Timestamp, response)
	}

	if err != nil {
		l.Error().Err(err).Msg("failed to send response")
	}

	if ok && result.Command != domain.HelpCommand {
		d.outbound = append(d.outbound, cmd)
	}

	return true
}

// DrainOutbound returns the commands matched since the last drain and clears
// the log.
func (d *Dispatcher) DrainOutbound() []domain.InboundCommand {
	out := d.outbound
	d.outbound = nil

	return out
}
