package hub_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"

	"github.com/feral-file/hub-shuttle/internal/hub"
)

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

func castAddData(fid uint64, text string) *hub.MessageData {
	return &hub.MessageData{
		Type:        hub.MessageTypeCastAdd,
		Fid:         fid,
		Timestamp:   120_000_000,
		Network:     hub.FarcasterNetworkMainnet,
		CastAddBody: &hub.CastAddBody{Text: text},
	}
}

func TestValidateMessage_Valid(t *testing.T) {
	msg := signedMessage(t, castAddData(1, "hello"))

	err := hub.ValidateMessage(msg)
	require.NoError(t, err)
	require.NotNil(t, msg.Data)
	assert.Equal(t, hub.MessageTypeCastAdd, msg.Data.Type)
}

func TestValidateMessage_DecodesDataFromBytes(t *testing.T) {
	msg := signedMessage(t, castAddData(2, "decoded"))
	msg.Data = nil

	err := hub.ValidateMessage(msg)
	require.NoError(t, err)
	require.NotNil(t, msg.Data)
	assert.Equal(t, uint64(2), msg.Data.Fid)
	assert.Equal(t, "decoded", msg.Data.CastAddBody.Text)
}

func TestValidateMessage_ReencodesMissingDataBytes(t *testing.T) {
	msg := signedMessage(t, castAddData(3, "reencode"))
	msg.DataBytes = nil

	err := hub.ValidateMessage(msg)
	require.NoError(t, err)
}

func TestValidateMessage_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(msg *hub.Message)
		wantErr error
	}{
		{
			name:    "tampered data bytes",
			mutate:  func(msg *hub.Message) { msg.DataBytes[0] ^= 0xff },
			wantErr: hub.ErrInvalidHash,
		},
		{
			name:    "hash too short",
			mutate:  func(msg *hub.Message) { msg.Hash = msg.Hash[:10] },
			wantErr: hub.ErrInvalidHash,
		},
		{
			name:    "unsupported hash scheme",
			mutate:  func(msg *hub.Message) { msg.HashScheme = hub.HashSchemeNone },
			wantErr: hub.ErrUnsupportedHashScheme,
		},
		{
			name:    "tampered signature",
			mutate:  func(msg *hub.Message) { msg.Signature[0] ^= 0xff },
			wantErr: hub.ErrInvalidSignature,
		},
		{
			name:    "short signer",
			mutate:  func(msg *hub.Message) { msg.Signer = msg.Signer[:16] },
			wantErr: hub.ErrInvalidSignature,
		},
		{
			name:    "unsupported signature scheme",
			mutate:  func(msg *hub.Message) { msg.SignatureScheme = hub.SignatureSchemeNone },
			wantErr: hub.ErrUnsupportedSignatureScheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := signedMessage(t, castAddData(4, "mutant"))
			tt.mutate(msg)
			err := hub.ValidateMessage(msg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateMessage_NilAndEmpty(t *testing.T) {
	assert.ErrorIs(t, hub.ValidateMessage(nil), hub.ErrMissingData)
	assert.ErrorIs(t, hub.ValidateMessage(&hub.Message{}), hub.ErrMissingData)
}

func TestValidateMessage_EIP712Structural(t *testing.T) {
	data := castAddData(5, "custody")
	dataBytes := hub.MarshalMessageData(data)
	h := blake3.New(20, nil)
	h.Write(dataBytes)

	msg := &hub.Message{
		Data:            data,
		DataBytes:       dataBytes,
		Hash:            h.Sum(nil),
		HashScheme:      hub.HashSchemeBlake3,
		Signature:       []byte{0x01, 0x02},
		SignatureScheme: hub.SignatureSchemeEIP712,
		Signer:          []byte{0x03, 0x04},
	}
	require.NoError(t, hub.ValidateMessage(msg))

	msg.Signature = nil
	assert.ErrorIs(t, hub.ValidateMessage(msg), hub.ErrInvalidSignature)
}

func TestValidateMessage_TypeUnset(t *testing.T) {
	data := &hub.MessageData{Fid: 6, Timestamp: 1, Network: hub.FarcasterNetworkMainnet}
	msg := signedMessage(t, data)

	err := hub.ValidateMessage(msg)
	assert.ErrorIs(t, err, hub.ErrMalformedFrame)
}
