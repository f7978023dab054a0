package codec

// CastReference points at a cast by author fid and hex-encoded message hash
type CastReference struct {
	Fid  uint64 `json:"fid"`
	Hash string `json:"hash"`
}

// EmbedBody is one cast embed, either a url or a cast reference
type EmbedBody struct {
	URL    string         `json:"url,omitempty"`
	CastID *CastReference `json:"castId,omitempty"`
}

// CastAddBody is the stored body of a cast_add message
type CastAddBody struct {
	Text              string         `json:"text"`
	Embeds            []EmbedBody    `json:"embeds,omitempty"`
	Mentions          []uint64       `json:"mentions,omitempty"`
	MentionsPositions []uint32       `json:"mentionsPositions,omitempty"`
	ParentCastID      *CastReference `json:"parentCastId,omitempty"`
	ParentURL         string         `json:"parentUrl,omitempty"`
}

// CastRemoveBody is the stored body of a cast_remove message
type CastRemoveBody struct {
	TargetHash string `json:"targetHash"`
}

// ReactionBody is the stored body of a reaction_add or reaction_remove message
type ReactionBody struct {
	Type         string         `json:"type"`
	TargetCastID *CastReference `json:"targetCastId,omitempty"`
	TargetURL    string         `json:"targetUrl,omitempty"`
}

// LinkBody is the stored body of a link_add or link_remove message.
// DisplayTimestamp is unix milliseconds when present.
type LinkBody struct {
	Type             string `json:"type"`
	TargetFid        uint64 `json:"targetFid"`
	DisplayTimestamp *int64 `json:"displayTimestamp,omitempty"`
}

// VerificationAddBody is the stored body of a verification_add_address message.
// Byte fields are encoded per the protocol tag: 0x-hex for ethereum, base58 for
// solana.
type VerificationAddBody struct {
	Address          string `json:"address"`
	ClaimSignature   string `json:"claimSignature"`
	BlockHash        string `json:"blockHash"`
	VerificationType uint32 `json:"verificationType"`
	ChainID          uint32 `json:"chainId"`
	Protocol         string `json:"protocol"`
}

// VerificationRemoveBody is the stored body of a verification_remove message
type VerificationRemoveBody struct {
	Address  string `json:"address"`
	Protocol string `json:"protocol"`
}

// UserDataBody is the stored body of a user_data_add message
type UserDataBody struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// UsernameProofBody is the stored body of a username_proof message
type UsernameProofBody struct {
	Timestamp uint64 `json:"timestamp"`
	Name      string `json:"name"`
	Owner     string `json:"owner"`
	Signature string `json:"signature"`
	Fid       uint64 `json:"fid"`
	Type      string `json:"type"`
}
