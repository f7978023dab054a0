package codec

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
	"gorm.io/datatypes"

	"github.com/feral-file/hub-shuttle/internal/adapter"
	"github.com/feral-file/hub-shuttle/internal/hub"
	"github.com/feral-file/hub-shuttle/internal/store/schema"
)

// Codec converts validated hub messages into storable rows
type Codec struct {
	json adapter.JSON
}

// NewCodec creates a codec using the given JSON implementation
func NewCodec(json adapter.JSON) *Codec {
	return &Codec{json: json}
}

// Decode validates a signed hub message and converts it into a message row
// with all lifecycle flags unset. Every returned error satisfies IsPermanent.
func (c *Codec) Decode(msg *hub.Message) (*schema.Message, error) {
	if err := hub.ValidateMessage(msg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMessage, err)
	}
	data := msg.Data
	if data == nil {
		return nil, ErrMissingBody
	}

	timestamp, err := hub.FromFarcasterTime(int64(data.Timestamp))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadTimestamp, err)
	}

	body, err := c.decodeBody(data)
	if err != nil {
		return nil, err
	}
	bodyJSON, err := c.json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode body: %s", ErrInvalidMessage, err)
	}

	raw := hub.MarshalMessage(msg)

	return &schema.Message{
		Hash:            msg.Hash,
		Fid:             data.Fid,
		Type:            schema.MessageKind(data.Type.String()),
		Timestamp:       timestamp,
		HashScheme:      schema.HashSchemeNameBlake3,
		SignatureScheme: signatureSchemeName(msg.SignatureScheme),
		Signer:          msg.Signer,
		Raw:             raw,
		Body:            datatypes.JSON(bodyJSON),
	}, nil
}

func (c *Codec) decodeBody(data *hub.MessageData) (interface{}, error) {
	switch data.Type {
	case hub.MessageTypeCastAdd:
		b := data.CastAddBody
		if b == nil {
			return nil, ErrMissingBody
		}
		out := CastAddBody{
			Text:              b.Text,
			Mentions:          b.Mentions,
			MentionsPositions: b.MentionsPositions,
			ParentURL:         b.ParentURL,
		}
		for _, e := range b.Embeds {
			embed := EmbedBody{URL: e.URL}
			if e.CastID != nil {
				embed.CastID = castReference(e.CastID)
			}
			out.Embeds = append(out.Embeds, embed)
		}
		if b.ParentCastID != nil {
			out.ParentCastID = castReference(b.ParentCastID)
		}
		return out, nil

	case hub.MessageTypeCastRemove:
		b := data.CastRemoveBody
		if b == nil {
			return nil, ErrMissingBody
		}
		return CastRemoveBody{TargetHash: hexutil.Encode(b.TargetHash)}, nil

	case hub.MessageTypeReactionAdd, hub.MessageTypeReactionRemove:
		b := data.ReactionBody
		if b == nil {
			return nil, ErrMissingBody
		}
		out := ReactionBody{
			Type:      reactionKind(b.Type),
			TargetURL: b.TargetURL,
		}
		if b.TargetCastID != nil {
			out.TargetCastID = castReference(b.TargetCastID)
		}
		return out, nil

	case hub.MessageTypeLinkAdd, hub.MessageTypeLinkRemove:
		b := data.LinkBody
		if b == nil {
			return nil, ErrMissingBody
		}
		out := LinkBody{
			Type:      b.Type,
			TargetFid: b.TargetFid,
		}
		if b.DisplayTimestamp != nil {
			instant, err := hub.FromFarcasterTime(int64(*b.DisplayTimestamp))
			if err != nil {
				return nil, fmt.Errorf("%w: display timestamp: %s", ErrBadTimestamp, err)
			}
			millis := instant.UnixMilli()
			out.DisplayTimestamp = &millis
		}
		return out, nil

	case hub.MessageTypeVerificationAddAddress:
		b := data.VerificationAddAddressBody
		if b == nil {
			return nil, ErrMissingBody
		}
		return VerificationAddBody{
			Address:          encodeAddress(b.Address, b.Protocol),
			ClaimSignature:   encodeAddress(b.ClaimSignature, b.Protocol),
			BlockHash:        encodeAddress(b.BlockHash, b.Protocol),
			VerificationType: b.VerificationType,
			ChainID:          b.ChainID,
			Protocol:         b.Protocol.String(),
		}, nil

	case hub.MessageTypeVerificationRemove:
		b := data.VerificationRemoveBody
		if b == nil {
			return nil, ErrMissingBody
		}
		return VerificationRemoveBody{
			Address:  encodeAddress(b.Address, b.Protocol),
			Protocol: b.Protocol.String(),
		}, nil

	case hub.MessageTypeUserDataAdd:
		b := data.UserDataBody
		if b == nil {
			return nil, ErrMissingBody
		}
		return UserDataBody{Type: userDataKind(b.Type), Value: b.Value}, nil

	case hub.MessageTypeUsernameProof:
		b := data.UsernameProofBody
		if b == nil {
			return nil, ErrMissingBody
		}
		return UsernameProofBody{
			Timestamp: b.Timestamp,
			Name:      hexutil.Encode(b.Name),
			Owner:     hexutil.Encode(b.Owner),
			Signature: hexutil.Encode(b.Signature),
			Fid:       b.Fid,
			Type:      usernameKind(b.Type),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, data.Type)
	}
}

func castReference(id *hub.CastID) *CastReference {
	return &CastReference{Fid: id.Fid, Hash: hexutil.Encode(id.Hash)}
}

// encodeAddress renders verification bytes in the protocol's native text form
func encodeAddress(raw []byte, protocol hub.Protocol) string {
	if protocol == hub.ProtocolSolana {
		return base58.Encode(raw)
	}
	return hexutil.Encode(raw)
}

func signatureSchemeName(scheme hub.SignatureScheme) schema.SignatureSchemeName {
	if scheme == hub.SignatureSchemeEIP712 {
		return schema.SignatureSchemeNameEIP712
	}
	return schema.SignatureSchemeNameEd25519
}

func reactionKind(t hub.ReactionType) string {
	switch t {
	case hub.ReactionTypeLike:
		return "like"
	case hub.ReactionTypeRecast:
		return "recast"
	default:
		return "unknown"
	}
}

func userDataKind(t hub.UserDataType) string {
	switch t {
	case hub.UserDataTypePfp:
		return "pfp"
	case hub.UserDataTypeDisplay:
		return "display"
	case hub.UserDataTypeBio:
		return "bio"
	case hub.UserDataTypeURL:
		return "url"
	case hub.UserDataTypeUsername:
		return "username"
	case hub.UserDataTypeLocation:
		return "location"
	default:
		return "unknown"
	}
}

func usernameKind(t hub.UserNameType) string {
	switch t {
	case hub.UserNameTypeFname:
		return "fname"
	case hub.UserNameTypeENSL1:
		return "ens_l1"
	default:
		return "unknown"
	}
}
