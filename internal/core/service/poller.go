package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mentionbot/internal/core/domain"
	"mentionbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultInterval    = time.Second
	defaultCallTimeout = 10 * time.Second
	defaultHealthEvery = 60
	maxBackoff         = 30 * time.Second
)

type PollerParams struct {
	Source     port.EventSource
	Dispatcher *Dispatcher
	// Interval is the sleep between poll cycles, 1s when unset.
	Interval time.Duration
	// CallTimeout bounds every single transport call so a stalled call
	// cannot wedge the loop indefinitely.
	CallTimeout time.Duration
	// HealthCheckEvery is the number of cycles between connectivity checks.
	HealthCheckEvery int
}

// Poller owns the inbound command queue and drives the poll cycle: pull
// events, enqueue qualifying direct mentions, drain the queue through the
// dispatcher in FIFO order, then report the outbound log.
type Poller struct {
	source      port.EventSource
	dispatcher  *Dispatcher
	interval    time.Duration
	callTimeout time.Duration
	healthEvery int

	selfID  string
	inbound []domain.InboundCommand

	l *zerolog.Logger
}

func NewPoller(p PollerParams) *Poller {
	if p.Interval <= 0 {
		p.Interval = defaultInterval
	}
	if p.CallTimeout <= 0 {
		p.CallTimeout = defaultCallTimeout
	}
	if p.HealthCheckEvery <= 0 {
		p.HealthCheckEvery = defaultHealthEvery
	}

	logger := log.With().Str("component", "poller").Logger()

	return &Poller{
		source:      p.Source,
		dispatcher:  p.Dispatcher,
		interval:    p.Interval,
		callTimeout: p.CallTimeout,
		healthEvery: p.HealthCheckEvery,
		l:           &logger,
	}
}

// Run connects the event source and drives the poll cycle until ctx is
// cancelled or the transport fails fatally. Transient failures back off
// capped-exponentially and are retried on the next cycle.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.connect(ctx); err != nil {
		return err
	}
	defer p.source.Close()

	p.l.Info().Str("selfId", p.selfID).Msg("connected and polling")

	b := &backoff.Backoff{
		Min:    p.interval,
		Max:    maxBackoff,
		Factor: 2,
		Jitter: true,
	}

	var cycles int

	for {
		delay := p.interval

		if err := p.cycle(ctx); err != nil {
			if errors.Is(err, domain.ErrFatal) || errors.Is(err, context.Canceled) {
				return err
			}

			delay = b.Duration()
			p.l.Warn().Err(err).Dur("backoff", delay).Msg("poll cycle failed")
		} else {
			b.Reset()
		}

		cycles++
		if cycles%p.healthEvery == 0 && !p.healthCheck(ctx) {
			p.l.Warn().Msg("health check failed, reconnecting")

			if err := p.reconnect(ctx); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (p *Poller) connect(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	selfID, err := p.source.Connect(callCtx)
	if err != nil {
		return fmt.Errorf("connecting event source: %w", err)
	}

	p.selfID = selfID

	return nil
}

func (p *Poller) reconnect(ctx context.Context) error {
	if err := p.source.Close(); err != nil {
		p.l.Warn().Err(err).Msg("failed to close event source")
	}

	if err := p.connect(ctx); err != nil {
		return err
	}

	p.l.Info().Str("selfId", p.selfID).Msg("reconnected")

	return nil
}

func (p *Poller) healthCheck(ctx context.Context) bool {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	return p.source.HealthCheck(callCtx)
}

// cycle runs one poll iteration. Events gathered before a poll error are
// still enqueued; the queue is drained on the next successful cycle so
// arrival order survives transient failures.
func (p *Poller) cycle(ctx context.Context) error {
	pollCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	events, err := p.source.Poll(pollCtx)
	cancel()

	p.enqueue(events)

	if err != nil {
		return fmt.Errorf("polling events: %w", err)
	}

	p.drain(ctx)
	p.report()

	return nil
}

// enqueue appends every qualifying event to the inbound queue: plain messages
// only, opening with a direct mention of the bot itself. Partial events with
// missing fields are skipped rather than allowed to fault the loop.
func (p *Poller) enqueue(events []domain.ChannelMessage) {
	for _, ev := range events {
		if ev.SubType != "" {
			continue
		}

		if ev.Channel == "" || ev.User == "" || ev.Timestamp == "" {
			p.l.Debug().Str("channel", ev.Channel).Msg("skipping partial event")
			continue
		}

		mentioned, remainder, ok := domain.ParseDirectMention(ev.Text)
		if !ok || mentioned != p.selfID {
			continue
		}

		id, err := uuid.NewV4()
		if err != nil {
			p.l.Warn().Err(err).Msg("failed to generate command id")
		}

		cmd := domain.InboundCommand{
			ID:        id,
			Channel:   ev.Channel,
			Timestamp: ev.Timestamp,
			User:      ev.User,
			Text:      strings.ToLower(remainder),
		}

		p.l.Debug().
			Stringer("id", cmd.ID).
			Str("channel", cmd.Channel).
			Str("command", cmd.Text).
			Msg("queueing direct mention")

		p.inbound = append(p.inbound, cmd)
	}
}

// drain processes the inbound queue in FIFO order, removing each entry
// before it is handled.
func (p *Poller) drain(ctx context.Context) {
	for len(p.inbound) > 0 {
		cmd := p.inbound[0]
		p.inbound = p.inbound[1:]

		callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
		p.dispatcher.Handle(callCtx, cmd)
		cancel()
	}
}

// report drains the outbound observability log to the operator console.
func (p *Poller) report() {
	for _, cmd := range p.dispatcher.DrainOutbound() {
		p.l.Info().
			Stringer("id", cmd.ID).
			Str("channel", cmd.Channel).
			Str("user", cmd.User).
			Str("command", cmd.Text).
			Bool("whisper", cmd.Whisper).
			Msg("command executed")
	}
}
