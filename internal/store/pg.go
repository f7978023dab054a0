package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/feral-file/hub-shuttle/internal/adapter"
	"github.com/feral-file/hub-shuttle/internal/store/schema"
)

type pgStore struct {
	db    *gorm.DB
	clock adapter.Clock
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB, clock adapter.Clock) Store {
	return &pgStore{db: db, clock: clock}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// applyUpsertSQL inserts the message row and, on conflict with the
// (hash, fid, type) key, rewrites signature metadata and lifecycle flags only
// when at least one lifecycle flag flips between null and non-null. The
// RETURNING clause distinguishes an insert (xmax = 0) from an update; a
// suppressed update returns no row at all.
const applyUpsertSQL = `
INSERT INTO messages
  (hash, fid, type, timestamp, hash_scheme, signature_scheme, signer, raw, body,
   deleted_at, pruned_at, revoked_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, now(), now())
ON CONFLICT (hash, fid, type) DO UPDATE SET
  signature_scheme = excluded.signature_scheme,
  signer = excluded.signer,
  raw = excluded.raw,
  deleted_at = excluded.deleted_at,
  pruned_at = excluded.pruned_at,
  revoked_at = excluded.revoked_at,
  updated_at = now()
WHERE (messages.deleted_at IS NULL) <> (excluded.deleted_at IS NULL)
   OR (messages.pruned_at IS NULL) <> (excluded.pruned_at IS NULL)
   OR (messages.revoked_at IS NULL) <> (excluded.revoked_at IS NULL)
RETURNING (xmax = 0)`

// Apply upserts a message row under an operation inside the caller's transaction
func (s *pgStore) Apply(ctx context.Context, tx *gorm.DB, row *schema.Message, op Operation) (Outcome, error) {
	if tx == nil {
		return "", fmt.Errorf("apply requires a transaction")
	}

	now := s.clock.Now().UTC()
	row.DeletedAt = nil
	row.PrunedAt = nil
	row.RevokedAt = nil
	switch op {
	case OperationMerge:
	case OperationDelete:
		row.DeletedAt = &now
	case OperationPrune:
		row.PrunedAt = &now
	case OperationRevoke:
		row.RevokedAt = &now
	default:
		return "", fmt.Errorf("unknown operation %q", op)
	}

	rows, err := tx.WithContext(ctx).Raw(applyUpsertSQL,
		row.Hash, row.Fid, row.Type, row.Timestamp,
		row.HashScheme, row.SignatureScheme, row.Signer, row.Raw, row.Body,
		row.DeletedAt, row.PrunedAt, row.RevokedAt,
	).Rows()
	if err != nil {
		return "", fmt.Errorf("failed to apply message: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", fmt.Errorf("failed to apply message: %w", err)
		}
		return OutcomeNoop, nil
	}
	var inserted bool
	if err := rows.Scan(&inserted); err != nil {
		return "", fmt.Errorf("failed to read apply outcome: %w", err)
	}
	if inserted {
		return OutcomeInserted, nil
	}
	return OutcomeUpdated, nil
}

// FindByHashes projects lifecycle state for the given hashes of one (fid, type)
func (s *pgStore) FindByHashes(ctx context.Context, fid uint64, kind schema.MessageKind, hashes [][]byte) ([]MessageLifecycle, error) {
	if len(hashes) == 0 {
		return []MessageLifecycle{}, nil
	}

	var rows []MessageLifecycle
	err := s.db.WithContext(ctx).
		Model(&schema.Message{}).
		Select("hash", "pruned_at", "revoked_at").
		Where("fid = ? AND type = ? AND hash IN ?", fid, kind, hashes).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up message hashes: %w", err)
	}
	return rows, nil
}

// Transaction runs fn inside a database transaction
func (s *pgStore) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// Migrate creates or updates the messages table
func (s *pgStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&schema.Message{}); err != nil {
		return fmt.Errorf("failed to migrate messages table: %w", err)
	}
	return nil
}
