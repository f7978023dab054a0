package shuttle

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feral-file/hub-shuttle/internal/checkpoint"
	"github.com/feral-file/hub-shuttle/internal/codec"
	"github.com/feral-file/hub-shuttle/internal/hub"
	"github.com/feral-file/hub-shuttle/internal/logger"
	"github.com/feral-file/hub-shuttle/internal/store"
	"github.com/feral-file/hub-shuttle/internal/store/schema"
)

// MessageHandler is the caller hook invoked inside the dispatch transaction.
// Returning an error aborts the transaction and keeps the checkpoint in place.
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=MessageHandler=MockMessageHandler
type MessageHandler interface {
	HandleMessageMerge(ctx context.Context, tx *gorm.DB, msg *hub.Message, row *schema.Message, op store.Operation, wasMissed bool) error
}

// Dispatcher converts hub events into transactional store applications and
// advances the checkpoint after each committed event.
type Dispatcher struct {
	hubID      string
	codec      *codec.Codec
	store      store.Store
	checkpoint checkpoint.Checkpoint
	handler    MessageHandler
}

// NewDispatcher creates a dispatcher. handler may be nil when no hook is wanted.
func NewDispatcher(hubID string, c *codec.Codec, s store.Store, cp checkpoint.Checkpoint, handler MessageHandler) *Dispatcher {
	return &Dispatcher{
		hubID:      hubID,
		codec:      c,
		store:      s,
		checkpoint: cp,
		handler:    handler,
	}
}

// ProcessEvent applies one hub event. Only merge-message events are
// dispatched to the store; every other event type advances the checkpoint
// and nothing else, with HandleMessage as the explicit entry point for the
// remaining operations. Permanent decode failures are logged and the
// checkpoint still advances; transient and handler failures return an
// error and leave the checkpoint untouched so the event is redelivered.
func (d *Dispatcher) ProcessEvent(ctx context.Context, event *hub.Event) error {
	if event.Type != hub.EventTypeMergeMessage {
		return d.saveCheckpoint(ctx, event.ID)
	}

	var msg *hub.Message
	if event.MergeMessageBody != nil {
		msg = event.MergeMessageBody.Message
	}
	if msg == nil {
		logger.WarnCtx(ctx, "event carries no message",
			zap.Uint64("event_id", event.ID),
			zap.Int32("event_type", int32(event.Type)))
		return d.saveCheckpoint(ctx, event.ID)
	}

	if err := d.process(ctx, msg, store.OperationMerge, false); err != nil {
		if codec.IsPermanent(err) {
			logger.WarnCtx(ctx, "skipping undecodable message",
				zap.Uint64("event_id", event.ID),
				zap.Error(err))
			return d.saveCheckpoint(ctx, event.ID)
		}
		return err
	}
	return d.saveCheckpoint(ctx, event.ID)
}

// HandleMessage applies a signed message under an explicit operation, outside
// the event stream. Callers use it for out-of-band deletes, prunes, and
// revocations.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg *hub.Message, op store.Operation) error {
	return d.process(ctx, msg, op, false)
}

// HandleMissing re-enters a message found missing by the reconciler through
// the same transactional pipeline, with wasMissed set for the handler.
func (d *Dispatcher) HandleMissing(ctx context.Context, msg *hub.Message) error {
	return d.process(ctx, msg, store.OperationMerge, true)
}

func (d *Dispatcher) process(ctx context.Context, msg *hub.Message, op store.Operation, wasMissed bool) error {
	row, err := d.codec.Decode(msg)
	if err != nil {
		return err
	}

	return d.store.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := d.store.Apply(ctx, tx, row, op); err != nil {
			return err
		}
		if d.handler != nil {
			if err := d.handler.HandleMessageMerge(ctx, tx, msg, row, op, wasMissed); err != nil {
				return fmt.Errorf("message handler: %w", err)
			}
		}
		return nil
	})
}

func (d *Dispatcher) saveCheckpoint(ctx context.Context, eventID uint64) error {
	if err := d.checkpoint.Save(ctx, d.hubID, eventID); err != nil {
		return fmt.Errorf("advance checkpoint: %w", err)
	}
	return nil
}
