package schema

import (
	"time"

	"gorm.io/datatypes"
)

// MessageKind identifies the kind of a stored hub message
type MessageKind string

const (
	// KindCastAdd is a new cast
	KindCastAdd MessageKind = "cast_add"
	// KindCastRemove removes an existing cast
	KindCastRemove MessageKind = "cast_remove"
	// KindReactionAdd adds a reaction to a cast or url
	KindReactionAdd MessageKind = "reaction_add"
	// KindReactionRemove removes a reaction
	KindReactionRemove MessageKind = "reaction_remove"
	// KindLinkAdd adds a link between two fids
	KindLinkAdd MessageKind = "link_add"
	// KindLinkRemove removes a link
	KindLinkRemove MessageKind = "link_remove"
	// KindVerificationAddAddress proves ownership of an on-chain address
	KindVerificationAddAddress MessageKind = "verification_add_address"
	// KindVerificationRemove removes an address verification
	KindVerificationRemove MessageKind = "verification_remove"
	// KindUserDataAdd sets a piece of profile metadata
	KindUserDataAdd MessageKind = "user_data_add"
	// KindUsernameProof proves ownership of a username
	KindUsernameProof MessageKind = "username_proof"
)

// HashSchemeName identifies how a stored message hash was computed
type HashSchemeName string

const (
	// HashSchemeNameBlake3 is a 160-bit truncated BLAKE3 digest
	HashSchemeNameBlake3 HashSchemeName = "blake3"
)

// SignatureSchemeName identifies how a stored message was signed
type SignatureSchemeName string

const (
	// SignatureSchemeNameEd25519 is an Ed25519 signature by a signer key
	SignatureSchemeNameEd25519 SignatureSchemeName = "ed25519"
	// SignatureSchemeNameEIP712 is an EIP-712 signature by a custody address
	SignatureSchemeNameEIP712 SignatureSchemeName = "eip712"
)

// Message represents the messages table - one row per signed hub message replicated from the hub
type Message struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Hash is the content-addressed identifier of the signed message (blake3-160 of the data bytes)
	Hash []byte `gorm:"column:hash;not null;type:bytea;uniqueIndex:idx_messages_hash_fid_type,priority:1"`
	// Fid is the unsigned integer id of the user who signed the message
	Fid uint64 `gorm:"column:fid;not null;uniqueIndex:idx_messages_hash_fid_type,priority:2;index:idx_messages_fid_type,priority:1"`
	// Type is the message kind (cast_add, reaction_add, ...)
	Type MessageKind `gorm:"column:type;not null;type:text;uniqueIndex:idx_messages_hash_fid_type,priority:3;index:idx_messages_fid_type,priority:2"`
	// Timestamp is the message wall-clock instant derived from the hub epoch offset
	Timestamp time.Time `gorm:"column:timestamp;not null"`
	// HashScheme names the hash codec of Hash
	HashScheme HashSchemeName `gorm:"column:hash_scheme;not null;type:text"`
	// SignatureScheme names the signature codec of the message signature
	SignatureScheme SignatureSchemeName `gorm:"column:signature_scheme;not null;type:text"`
	// Signer is the public key or custody address that signed the message
	Signer []byte `gorm:"column:signer;not null;type:bytea"`
	// Raw is the full serialized signed message, kept for re-verification
	Raw []byte `gorm:"column:raw;not null;type:bytea"`
	// Body is the decoded message body, one JSON variant per Type
	Body datatypes.JSON `gorm:"column:body;not null;type:jsonb"`
	// DeletedAt is set when a remove message displaced this row (nil while live)
	DeletedAt *time.Time `gorm:"column:deleted_at;type:timestamptz"`
	// PrunedAt is set when the hub pruned this message (nil while live)
	PrunedAt *time.Time `gorm:"column:pruned_at;type:timestamptz"`
	// RevokedAt is set when the hub revoked this message (nil while live)
	RevokedAt *time.Time `gorm:"column:revoked_at;type:timestamptz"`
	// CreatedAt is the timestamp when this row was first replicated
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last lifecycle change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
