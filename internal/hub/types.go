package hub

// MessageType identifies the kind of a signed hub message
type MessageType int32

const (
	// MessageTypeNone is the zero value and never appears on the wire
	MessageTypeNone MessageType = 0
	// MessageTypeCastAdd adds a new cast
	MessageTypeCastAdd MessageType = 1
	// MessageTypeCastRemove removes an existing cast
	MessageTypeCastRemove MessageType = 2
	// MessageTypeReactionAdd adds a reaction to a cast
	MessageTypeReactionAdd MessageType = 3
	// MessageTypeReactionRemove removes a reaction from a cast
	MessageTypeReactionRemove MessageType = 4
	// MessageTypeLinkAdd adds a link between two fids
	MessageTypeLinkAdd MessageType = 5
	// MessageTypeLinkRemove removes a link between two fids
	MessageTypeLinkRemove MessageType = 6
	// MessageTypeVerificationAddAddress proves ownership of an on-chain address
	MessageTypeVerificationAddAddress MessageType = 7
	// MessageTypeVerificationRemove removes an address verification
	MessageTypeVerificationRemove MessageType = 8
	// MessageTypeUserDataAdd sets a piece of profile metadata
	MessageTypeUserDataAdd MessageType = 11
	// MessageTypeUsernameProof proves ownership of a username
	MessageTypeUsernameProof MessageType = 12
)

// String returns the canonical lowercase name used in logs and NATS subjects
func (t MessageType) String() string {
	switch t {
	case MessageTypeCastAdd:
		return "cast_add"
	case MessageTypeCastRemove:
		return "cast_remove"
	case MessageTypeReactionAdd:
		return "reaction_add"
	case MessageTypeReactionRemove:
		return "reaction_remove"
	case MessageTypeLinkAdd:
		return "link_add"
	case MessageTypeLinkRemove:
		return "link_remove"
	case MessageTypeVerificationAddAddress:
		return "verification_add_address"
	case MessageTypeVerificationRemove:
		return "verification_remove"
	case MessageTypeUserDataAdd:
		return "user_data_add"
	case MessageTypeUsernameProof:
		return "username_proof"
	default:
		return "unknown"
	}
}

// HashScheme identifies how a message hash was computed
type HashScheme int32

const (
	HashSchemeNone HashScheme = 0
	// HashSchemeBlake3 is a 160-bit truncated BLAKE3 digest of the data bytes
	HashSchemeBlake3 HashScheme = 1
)

// SignatureScheme identifies how a message was signed
type SignatureScheme int32

const (
	SignatureSchemeNone SignatureScheme = 0
	// SignatureSchemeEd25519 signs the message hash with an Ed25519 signer key
	SignatureSchemeEd25519 SignatureScheme = 1
	// SignatureSchemeEIP712 signs with an Ethereum custody address
	SignatureSchemeEIP712 SignatureScheme = 2
)

// FarcasterNetwork identifies the hub network a message belongs to
type FarcasterNetwork int32

const (
	FarcasterNetworkNone    FarcasterNetwork = 0
	FarcasterNetworkMainnet FarcasterNetwork = 1
	FarcasterNetworkTestnet FarcasterNetwork = 2
	FarcasterNetworkDevnet  FarcasterNetwork = 3
)

// ReactionType identifies the kind of a reaction
type ReactionType int32

const (
	ReactionTypeNone   ReactionType = 0
	ReactionTypeLike   ReactionType = 1
	ReactionTypeRecast ReactionType = 2
)

// UserDataType identifies which profile field a user-data message sets
type UserDataType int32

const (
	UserDataTypeNone     UserDataType = 0
	UserDataTypePfp      UserDataType = 1
	UserDataTypeDisplay  UserDataType = 2
	UserDataTypeBio      UserDataType = 3
	UserDataTypeURL      UserDataType = 5
	UserDataTypeUsername UserDataType = 6
	UserDataTypeLocation UserDataType = 7
)

// Protocol identifies the chain protocol of a verified address
type Protocol int32

const (
	ProtocolEthereum Protocol = 0
	ProtocolSolana   Protocol = 1
)

// String returns the lowercase protocol tag stored in decoded bodies
func (p Protocol) String() string {
	switch p {
	case ProtocolSolana:
		return "solana"
	default:
		return "ethereum"
	}
}

// UserNameType identifies the kind of a username proof
type UserNameType int32

const (
	UserNameTypeNone  UserNameType = 0
	UserNameTypeFname UserNameType = 1
	UserNameTypeENSL1 UserNameType = 2
)

// EventType identifies the kind of a hub event frame
type EventType int32

const (
	EventTypeNone               EventType = 0
	EventTypeMergeMessage       EventType = 1
	EventTypePruneMessage       EventType = 2
	EventTypeRevokeMessage      EventType = 3
	EventTypeMergeUsernameProof EventType = 6
	EventTypeMergeOnChainEvent  EventType = 9
)

// DefaultEventTypes is the subscription filter used when the caller does not
// supply an explicit set.
var DefaultEventTypes = []EventType{
	EventTypeMergeOnChainEvent,
	EventTypeMergeMessage,
	EventTypeMergeUsernameProof,
	EventTypePruneMessage,
	EventTypeRevokeMessage,
}

// CastID references a cast by author fid and message hash
type CastID struct {
	Fid  uint64
	Hash []byte
}

// Embed is either a URL or a cast reference, never both
type Embed struct {
	URL    string
	CastID *CastID
}

// CastAddBody carries the content of a new cast
type CastAddBody struct {
	Text              string
	Mentions          []uint64
	MentionsPositions []uint32
	Embeds            []Embed
	ParentCastID      *CastID
	ParentURL         string
}

// CastRemoveBody references the cast being removed by hash
type CastRemoveBody struct {
	TargetHash []byte
}

// ReactionBody targets either a cast or a URL
type ReactionBody struct {
	Type         ReactionType
	TargetCastID *CastID
	TargetURL    string
}

// LinkBody relates the message fid to a target fid
type LinkBody struct {
	Type             string
	DisplayTimestamp *uint32
	TargetFid        uint64
}

// VerificationAddAddressBody proves ownership of an address on a chain protocol
type VerificationAddAddressBody struct {
	Address          []byte
	ClaimSignature   []byte
	BlockHash        []byte
	VerificationType uint32
	ChainID          uint32
	Protocol         Protocol
}

// VerificationRemoveBody removes a prior address verification
type VerificationRemoveBody struct {
	Address  []byte
	Protocol Protocol
}

// UserDataBody sets one profile field to a value
type UserDataBody struct {
	Type  UserDataType
	Value string
}

// UserNameProof proves ownership of a name by an owner address
type UserNameProof struct {
	Timestamp uint64
	Name      []byte
	Owner     []byte
	Signature []byte
	Fid       uint64
	Type      UserNameType
}

// MessageData is the signed payload of a message. Exactly one body field is
// set, matching Type.
type MessageData struct {
	Type      MessageType
	Fid       uint64
	Timestamp uint32
	Network   FarcasterNetwork

	CastAddBody                *CastAddBody
	CastRemoveBody             *CastRemoveBody
	ReactionBody               *ReactionBody
	VerificationAddAddressBody *VerificationAddAddressBody
	VerificationRemoveBody     *VerificationRemoveBody
	UserDataBody               *UserDataBody
	LinkBody                   *LinkBody
	UsernameProofBody          *UserNameProof
}

// Message is a signed hub message. DataBytes holds the exact serialized
// MessageData the hash and signature commit to; Data is its decoded form.
type Message struct {
	Data            *MessageData
	Hash            []byte
	HashScheme      HashScheme
	Signature       []byte
	SignatureScheme SignatureScheme
	Signer          []byte
	DataBytes       []byte
}

// MergeMessageBody carries the merged message and any messages it displaced
type MergeMessageBody struct {
	Message         *Message
	DeletedMessages []*Message
}

// PruneMessageBody carries the message pruned by the hub
type PruneMessageBody struct {
	Message *Message
}

// RevokeMessageBody carries the message revoked by the hub
type RevokeMessageBody struct {
	Message *Message
}

// MergeUserNameProofBody carries a merged username proof event
type MergeUserNameProofBody struct {
	UsernameProof        *UserNameProof
	DeletedUsernameProof *UserNameProof
}

// Event is one frame of a hub subscription. ID is monotonically increasing
// within a single subscription and is the checkpoint value.
type Event struct {
	Type EventType
	ID   uint64

	MergeMessageBody       *MergeMessageBody
	PruneMessageBody       *PruneMessageBody
	RevokeMessageBody      *RevokeMessageBody
	MergeUserNameProofBody *MergeUserNameProofBody
}

// SubscribeRequest opens a hub event subscription
type SubscribeRequest struct {
	EventTypes []EventType
	FromID     *uint64
}

// FidRequest pages through the per-fid message inventory of one type
type FidRequest struct {
	Fid       uint64
	PageSize  uint32
	PageToken []byte
	Reverse   bool
}

// MessagesResponse is one page of a per-fid inventory
type MessagesResponse struct {
	Messages      []*Message
	NextPageToken []byte
}
