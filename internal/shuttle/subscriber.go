package shuttle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/hub-shuttle/internal/adapter"
	"github.com/feral-file/hub-shuttle/internal/hub"
	"github.com/feral-file/hub-shuttle/internal/logger"
)

// DefaultReadyTimeout is the transport readiness budget for Start
const DefaultReadyTimeout = 500 * time.Millisecond

// State is the subscriber lifecycle state
type State int32

const (
	// StateIdle is the initial state before Start
	StateIdle State = iota
	// StateConnecting means the transport readiness wait is in progress
	StateConnecting
	// StateStreaming means frames are being received
	StateStreaming
	// StateStopped is terminal
	StateStopped
)

// String returns the lowercase state name used in logs
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateStreaming:
		return "streaming"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// EventObserver receives each event frame synchronously, in hub order
type EventObserver func(ctx context.Context, event *hub.Event)

// ErrorObserver receives the terminal stream error. stopped is true when the
// stream ended because the caller stopped the subscriber.
type ErrorObserver func(err error, stopped bool)

// Subscriber maintains a resumable server-streaming subscription to the hub.
// It preserves hub order within one subscription and never deduplicates;
// duplicates after a reconnect are absorbed by the store's conflict policy.
type Subscriber struct {
	client       adapter.HubClient
	eventTypes   []hub.EventType
	readyTimeout time.Duration

	mu       sync.Mutex
	state    State
	cancel   context.CancelFunc
	onEvent  []EventObserver
	onError  []ErrorObserver
}

// NewSubscriber creates a subscriber over the given hub client. A nil or empty
// eventTypes slice selects the default event-type set.
func NewSubscriber(client adapter.HubClient, eventTypes []hub.EventType) *Subscriber {
	if len(eventTypes) == 0 {
		eventTypes = hub.DefaultEventTypes
	}
	return &Subscriber{
		client:       client,
		eventTypes:   eventTypes,
		readyTimeout: DefaultReadyTimeout,
		state:        StateIdle,
	}
}

// OnEvent registers an observer for received event frames. Observers must be
// registered before Start.
func (s *Subscriber) OnEvent(fn EventObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvent = append(s.onEvent, fn)
}

// OnError registers an observer for the terminal stream error
func (s *Subscriber) OnError(fn ErrorObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = append(s.onError, fn)
}

// State returns the current lifecycle state
func (s *Subscriber) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start opens the subscription and blocks until the stream ends. When
// fromEventID is non-nil the hub replays from that event id. Start returns
// nil when the caller stopped the subscriber, the terminal error otherwise.
func (s *Subscriber) Start(ctx context.Context, fromEventID *uint64) error {
	s.mu.Lock()
	if s.state != StateIdle {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: state %s", ErrAlreadyStarted, state)
	}
	s.state = StateConnecting
	streamCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	readyCtx, cancelReady := context.WithTimeout(streamCtx, s.readyTimeout)
	err := s.client.WaitForReady(readyCtx)
	cancelReady()
	if err != nil {
		s.finish()
		err = fmt.Errorf("%w: %s", ErrTransportUnavailable, err)
		s.notifyError(err, false)
		return err
	}

	stream, err := s.client.Subscribe(streamCtx, &hub.SubscribeRequest{
		EventTypes: s.eventTypes,
		FromID:     fromEventID,
	})
	if err != nil {
		stopped := s.finish()
		s.notifyError(err, stopped)
		if stopped {
			return nil
		}
		return fmt.Errorf("open subscription: %w", err)
	}

	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		_ = stream.Close()
		return nil
	}
	s.state = StateStreaming
	observers := append([]EventObserver(nil), s.onEvent...)
	s.mu.Unlock()

	logger.InfoCtx(ctx, "hub subscription streaming",
		zap.Uint64p("from_event_id", fromEventID),
		zap.Int("event_types", len(s.eventTypes)))

	for {
		event, err := stream.Recv()
		if err != nil {
			stopped := s.finish()
			if stopped || errors.Is(err, context.Canceled) {
				s.notifyError(ErrStopped, true)
				return nil
			}
			s.notifyError(err, false)
			return fmt.Errorf("stream receive: %w", err)
		}
		if s.State() == StateStopped {
			continue
		}
		for _, fn := range observers {
			fn(ctx, event)
		}
	}
}

// Stop cancels the underlying stream. Frames received after Stop are discarded.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	alreadyStopped := s.state == StateStopped
	s.state = StateStopped
	s.mu.Unlock()

	if !alreadyStopped && cancel != nil {
		cancel()
	}
}

// Destroy stops the subscription if needed and releases the transport
func (s *Subscriber) Destroy() error {
	s.Stop()
	return s.client.Close()
}

// finish moves to stopped and reports whether the caller had already stopped
func (s *Subscriber) finish() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	stopped := s.state == StateStopped
	s.state = StateStopped
	return stopped
}

func (s *Subscriber) notifyError(err error, stopped bool) {
	s.mu.Lock()
	observers := append([]ErrorObserver(nil), s.onError...)
	s.mu.Unlock()
	for _, fn := range observers {
		fn(err, stopped)
	}
}
