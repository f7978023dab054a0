package codec_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"

	"github.com/feral-file/hub-shuttle/internal/adapter"
	"github.com/feral-file/hub-shuttle/internal/codec"
	"github.com/feral-file/hub-shuttle/internal/hub"
	"github.com/feral-file/hub-shuttle/internal/store/schema"
)

func newTestCodec() *codec.Codec {
	return codec.NewCodec(adapter.NewJSON())
}

// signedMessage builds a hash-committed, ed25519-signed message for tests
func signedMessage(t *testing.T, data *hub.MessageData) *hub.Message {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	dataBytes := hub.MarshalMessageData(data)
	h := blake3.New(20, nil)
	h.Write(dataBytes)
	hash := h.Sum(nil)

	return &hub.Message{
		Data:            data,
		DataBytes:       dataBytes,
		Hash:            hash,
		HashScheme:      hub.HashSchemeBlake3,
		Signature:       ed25519.Sign(priv, hash),
		SignatureScheme: hub.SignatureSchemeEd25519,
		Signer:          pub,
	}
}

func bodyMap(t *testing.T, row *schema.Message) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(row.Body, &body))
	return body
}

func TestDecode_CastAdd(t *testing.T) {
	msg := signedMessage(t, &hub.MessageData{
		Type:      hub.MessageTypeCastAdd,
		Fid:       42,
		Timestamp: 120_000_000,
		Network:   hub.FarcasterNetworkMainnet,
		CastAddBody: &hub.CastAddBody{
			Text:     "hello",
			Mentions: []uint64{7},
			Embeds:   []hub.Embed{{URL: "https://example.com"}},
		},
	})

	row, err := newTestCodec().Decode(msg)
	require.NoError(t, err)

	assert.Equal(t, msg.Hash, row.Hash)
	assert.Equal(t, uint64(42), row.Fid)
	assert.Equal(t, schema.MessageKind("cast_add"), row.Type)
	assert.Equal(t, schema.HashSchemeNameBlake3, row.HashScheme)
	assert.Equal(t, schema.SignatureSchemeNameEd25519, row.SignatureScheme)
	assert.Equal(t, []byte(msg.Signer), row.Signer)
	assert.Equal(t, hub.MarshalMessage(msg), row.Raw)
	assert.Equal(t, time.Unix(hub.FarcasterEpoch+120_000_000, 0).UTC(), row.Timestamp)
	assert.Nil(t, row.DeletedAt)
	assert.Nil(t, row.PrunedAt)
	assert.Nil(t, row.RevokedAt)

	body := bodyMap(t, row)
	assert.Equal(t, "hello", body["text"])
	assert.Equal(t, "https://example.com", body["embeds"].([]interface{})[0].(map[string]interface{})["url"])
}

func TestDecode_CastRemove(t *testing.T) {
	target := []byte{0xde, 0xad, 0xbe, 0xef}
	msg := signedMessage(t, &hub.MessageData{
		Type:           hub.MessageTypeCastRemove,
		Fid:            1,
		Timestamp:      10,
		Network:        hub.FarcasterNetworkMainnet,
		CastRemoveBody: &hub.CastRemoveBody{TargetHash: target},
	})

	row, err := newTestCodec().Decode(msg)
	require.NoError(t, err)
	assert.Equal(t, schema.MessageKind("cast_remove"), row.Type)
	assert.Equal(t, hexutil.Encode(target), bodyMap(t, row)["targetHash"])
}

func TestDecode_Reaction(t *testing.T) {
	msg := signedMessage(t, &hub.MessageData{
		Type:      hub.MessageTypeReactionAdd,
		Fid:       2,
		Timestamp: 20,
		Network:   hub.FarcasterNetworkMainnet,
		ReactionBody: &hub.ReactionBody{
			Type:         hub.ReactionTypeLike,
			TargetCastID: &hub.CastID{Fid: 9, Hash: []byte{0x01, 0x02}},
		},
	})

	row, err := newTestCodec().Decode(msg)
	require.NoError(t, err)
	body := bodyMap(t, row)
	assert.Equal(t, "like", body["type"])
	target := body["targetCastId"].(map[string]interface{})
	assert.Equal(t, float64(9), target["fid"])
	assert.Equal(t, hexutil.Encode([]byte{0x01, 0x02}), target["hash"])
}

func TestDecode_LinkDisplayTimestamp(t *testing.T) {
	display := uint32(29)
	msg := signedMessage(t, &hub.MessageData{
		Type:      hub.MessageTypeLinkAdd,
		Fid:       3,
		Timestamp: 30,
		Network:   hub.FarcasterNetworkMainnet,
		LinkBody: &hub.LinkBody{
			Type:             "follow",
			TargetFid:        99,
			DisplayTimestamp: &display,
		},
	})

	row, err := newTestCodec().Decode(msg)
	require.NoError(t, err)
	body := bodyMap(t, row)
	assert.Equal(t, "follow", body["type"])
	assert.Equal(t, float64(99), body["targetFid"])
	assert.Equal(t, float64((hub.FarcasterEpoch+29)*1000), body["displayTimestamp"])
}

func TestDecode_VerificationAddressEncoding(t *testing.T) {
	address := []byte{0x8f, 0xc5, 0x45, 0x82, 0x3d, 0xa1, 0x9a, 0x3f}

	t.Run("ethereum uses hex", func(t *testing.T) {
		msg := signedMessage(t, &hub.MessageData{
			Type:      hub.MessageTypeVerificationAddAddress,
			Fid:       4,
			Timestamp: 40,
			Network:   hub.FarcasterNetworkMainnet,
			VerificationAddAddressBody: &hub.VerificationAddAddressBody{
				Address:        address,
				ClaimSignature: []byte{0x01},
				BlockHash:      []byte{0x02},
				ChainID:        1,
				Protocol:       hub.ProtocolEthereum,
			},
		})

		row, err := newTestCodec().Decode(msg)
		require.NoError(t, err)
		body := bodyMap(t, row)
		assert.Equal(t, hexutil.Encode(address), body["address"])
		assert.Equal(t, "ethereum", body["protocol"])
	})

	t.Run("solana uses base58", func(t *testing.T) {
		msg := signedMessage(t, &hub.MessageData{
			Type:      hub.MessageTypeVerificationAddAddress,
			Fid:       4,
			Timestamp: 41,
			Network:   hub.FarcasterNetworkMainnet,
			VerificationAddAddressBody: &hub.VerificationAddAddressBody{
				Address:        address,
				ClaimSignature: []byte{0x01},
				BlockHash:      []byte{0x02},
				Protocol:       hub.ProtocolSolana,
			},
		})

		row, err := newTestCodec().Decode(msg)
		require.NoError(t, err)
		body := bodyMap(t, row)
		assert.Equal(t, base58.Encode(address), body["address"])
		assert.Equal(t, "solana", body["protocol"])
	})
}

func TestDecode_UserData(t *testing.T) {
	msg := signedMessage(t, &hub.MessageData{
		Type:         hub.MessageTypeUserDataAdd,
		Fid:          5,
		Timestamp:    50,
		Network:      hub.FarcasterNetworkMainnet,
		UserDataBody: &hub.UserDataBody{Type: hub.UserDataTypePfp, Value: "https://img.example.com/a.png"},
	})

	row, err := newTestCodec().Decode(msg)
	require.NoError(t, err)
	body := bodyMap(t, row)
	assert.Equal(t, "pfp", body["type"])
	assert.Equal(t, "https://img.example.com/a.png", body["value"])
}

func TestDecode_UsernameProof(t *testing.T) {
	msg := signedMessage(t, &hub.MessageData{
		Type:      hub.MessageTypeUsernameProof,
		Fid:       6,
		Timestamp: 60,
		Network:   hub.FarcasterNetworkMainnet,
		UsernameProofBody: &hub.UserNameProof{
			Timestamp: 1700000000,
			Name:      []byte("alice"),
			Owner:     []byte{0x0a},
			Signature: []byte{0x0b},
			Fid:       6,
			Type:      hub.UserNameTypeFname,
		},
	})

	row, err := newTestCodec().Decode(msg)
	require.NoError(t, err)
	body := bodyMap(t, row)
	assert.Equal(t, "fname", body["type"])
	assert.Equal(t, hexutil.Encode([]byte("alice")), body["name"])
}

func TestDecode_Errors(t *testing.T) {
	t.Run("tampered hash is permanent", func(t *testing.T) {
		msg := signedMessage(t, &hub.MessageData{
			Type:        hub.MessageTypeCastAdd,
			Fid:         7,
			Timestamp:   70,
			Network:     hub.FarcasterNetworkMainnet,
			CastAddBody: &hub.CastAddBody{Text: "x"},
		})
		msg.Hash[0] ^= 0xff

		_, err := newTestCodec().Decode(msg)
		assert.ErrorIs(t, err, codec.ErrInvalidMessage)
		assert.True(t, codec.IsPermanent(err))
	})

	t.Run("missing body is permanent", func(t *testing.T) {
		msg := signedMessage(t, &hub.MessageData{
			Type:      hub.MessageTypeCastAdd,
			Fid:       8,
			Timestamp: 80,
			Network:   hub.FarcasterNetworkMainnet,
		})

		_, err := newTestCodec().Decode(msg)
		assert.ErrorIs(t, err, codec.ErrMissingBody)
		assert.True(t, codec.IsPermanent(err))
	})

	t.Run("unknown type is permanent", func(t *testing.T) {
		msg := signedMessage(t, &hub.MessageData{
			Type:      hub.MessageType(9),
			Fid:       9,
			Timestamp: 90,
			Network:   hub.FarcasterNetworkMainnet,
		})

		_, err := newTestCodec().Decode(msg)
		assert.ErrorIs(t, err, codec.ErrUnknownType)
		assert.True(t, codec.IsPermanent(err))
	})
}
