package reconciler

import (
	"context"
	"fmt"

	"github.com/feral-file/hub-shuttle/internal/adapter"
	"github.com/feral-file/hub-shuttle/internal/hub"
	"github.com/feral-file/hub-shuttle/internal/store"
	"github.com/feral-file/hub-shuttle/internal/store/schema"
)

// PageSize is the hub inventory page size used for reconciliation
const PageSize = 3000

// ReconcilableTypes are the message types whose hub inventory can be paged
var ReconcilableTypes = []hub.MessageType{
	hub.MessageTypeCastAdd,
	hub.MessageTypeReactionAdd,
	hub.MessageTypeLinkAdd,
	hub.MessageTypeVerificationAddAddress,
	hub.MessageTypeUserDataAdd,
}

// MessageState describes how a hub message relates to the store
type MessageState struct {
	// MissingInDB is true when no row exists for the message hash
	MissingInDB bool
	// PrunedInDB is true when the stored row carries a pruned flag
	PrunedInDB bool
	// RevokedInDB is true when the stored row carries a revoked flag
	RevokedInDB bool
}

// Hook is invoked once per hub message, in hub order, and is awaited before
// the next message is emitted
type Hook func(ctx context.Context, msg *hub.Message, state MessageState) error

// Reconciler diffs the hub's per-fid message inventory against the store
type Reconciler struct {
	client adapter.HubClient
	store  store.Store
}

// NewReconciler creates a reconciler over the given hub client and store
func NewReconciler(client adapter.HubClient, s store.Store) *Reconciler {
	return &Reconciler{client: client, store: s}
}

// ReconcileFid walks every reconcilable message type for one fid. The first
// failing (fid, type) unit aborts the fid; other fids are unaffected.
func (r *Reconciler) ReconcileFid(ctx context.Context, fid uint64, hook Hook) error {
	for _, msgType := range ReconcilableTypes {
		if err := r.reconcileFidType(ctx, fid, msgType, hook); err != nil {
			return fmt.Errorf("reconcile fid %d type %s: %w", fid, msgType, err)
		}
	}
	return nil
}

func (r *Reconciler) reconcileFidType(ctx context.Context, fid uint64, msgType hub.MessageType, hook Hook) error {
	var pageToken []byte
	for {
		resp, err := r.client.MessagesByFid(ctx, msgType, &hub.FidRequest{
			Fid:       fid,
			PageSize:  PageSize,
			PageToken: pageToken,
		})
		if err != nil {
			return fmt.Errorf("fetch inventory page: %w", err)
		}

		if len(resp.Messages) > 0 {
			if err := r.emitBatch(ctx, fid, msgType, resp.Messages, hook); err != nil {
				return err
			}
		}

		if len(resp.NextPageToken) == 0 {
			return nil
		}
		pageToken = resp.NextPageToken
	}
}

func (r *Reconciler) emitBatch(ctx context.Context, fid uint64, msgType hub.MessageType, messages []*hub.Message, hook Hook) error {
	hashes := make([][]byte, 0, len(messages))
	for _, msg := range messages {
		hashes = append(hashes, msg.Hash)
	}

	rows, err := r.store.FindByHashes(ctx, fid, schema.MessageKind(msgType.String()), hashes)
	if err != nil {
		return fmt.Errorf("look up stored hashes: %w", err)
	}
	lookup := make(map[string]store.MessageLifecycle, len(rows))
	for _, row := range rows {
		lookup[string(row.Hash)] = row
	}

	for _, msg := range messages {
		state := MessageState{MissingInDB: true}
		if row, ok := lookup[string(msg.Hash)]; ok {
			state = MessageState{
				PrunedInDB:  row.PrunedAt != nil,
				RevokedInDB: row.RevokedAt != nil,
			}
		}
		if err := hook(ctx, msg, state); err != nil {
			return fmt.Errorf("reconcile hook: %w", err)
		}
	}
	return nil
}
