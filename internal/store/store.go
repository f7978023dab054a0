package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/feral-file/hub-shuttle/internal/store/schema"
)

// Operation is the lifecycle operation applied with an incoming message
type Operation string

const (
	// OperationMerge stores the message as live, clearing every lifecycle flag
	OperationMerge Operation = "merge"
	// OperationDelete marks the message deleted
	OperationDelete Operation = "delete"
	// OperationPrune marks the message pruned by the hub
	OperationPrune Operation = "prune"
	// OperationRevoke marks the message revoked by the hub
	OperationRevoke Operation = "revoke"
)

// Outcome reports what an apply call did to the row
type Outcome string

const (
	// OutcomeInserted means a new row was created
	OutcomeInserted Outcome = "inserted"
	// OutcomeUpdated means an existing row's lifecycle changed
	OutcomeUpdated Outcome = "updated"
	// OutcomeNoop means the row already carried the requested state
	OutcomeNoop Outcome = "noop"
)

// MessageLifecycle is the projection used by the reconciliation hash lookup
type MessageLifecycle struct {
	Hash      []byte
	PrunedAt  *time.Time
	RevokedAt *time.Time
}

// Store defines the interface for database operations
type Store interface {
	// Apply upserts a decoded message row under an operation inside the
	// caller-supplied transaction. The conflict key is (hash, fid, type) and
	// the update fires only when a lifecycle flag flips between null and
	// non-null, so repeated identical operations report OutcomeNoop.
	Apply(ctx context.Context, tx *gorm.DB, row *schema.Message, op Operation) (Outcome, error)
	// FindByHashes projects lifecycle state for the given hashes of one (fid, type)
	FindByHashes(ctx context.Context, fid uint64, kind schema.MessageKind, hashes [][]byte) ([]MessageLifecycle, error)
	// Transaction runs fn inside a database transaction
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	// Migrate creates or updates the messages table
	Migrate(ctx context.Context) error
}
