package hub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/hub-shuttle/internal/hub"
)

func uint32Ptr(v uint32) *uint32 {
	return &v
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func TestMessageData_RoundTrip_CastAdd(t *testing.T) {
	data := &hub.MessageData{
		Type:      hub.MessageTypeCastAdd,
		Fid:       42,
		Timestamp: 120_000_000,
		Network:   hub.FarcasterNetworkMainnet,
		CastAddBody: &hub.CastAddBody{
			Text:              "gm farcaster",
			Mentions:          []uint64{1, 2, 3},
			MentionsPositions: []uint32{0, 3, 9},
			Embeds: []hub.Embed{
				{URL: "https://example.com"},
				{CastID: &hub.CastID{Fid: 7, Hash: []byte{0xaa, 0xbb}}},
			},
			ParentCastID: &hub.CastID{Fid: 9, Hash: []byte{0x01, 0x02, 0x03}},
		},
	}

	decoded, err := hub.UnmarshalMessageData(hub.MarshalMessageData(data))
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestMessageData_RoundTrip_AllBodies(t *testing.T) {
	tests := []struct {
		name string
		data *hub.MessageData
	}{
		{
			name: "cast remove",
			data: &hub.MessageData{
				Type:           hub.MessageTypeCastRemove,
				Fid:            1,
				Timestamp:      10,
				Network:        hub.FarcasterNetworkMainnet,
				CastRemoveBody: &hub.CastRemoveBody{TargetHash: []byte{0xde, 0xad}},
			},
		},
		{
			name: "reaction add on cast",
			data: &hub.MessageData{
				Type:      hub.MessageTypeReactionAdd,
				Fid:       2,
				Timestamp: 20,
				Network:   hub.FarcasterNetworkMainnet,
				ReactionBody: &hub.ReactionBody{
					Type:         hub.ReactionTypeLike,
					TargetCastID: &hub.CastID{Fid: 3, Hash: []byte{0x11}},
				},
			},
		},
		{
			name: "reaction remove on url",
			data: &hub.MessageData{
				Type:      hub.MessageTypeReactionRemove,
				Fid:       2,
				Timestamp: 21,
				Network:   hub.FarcasterNetworkMainnet,
				ReactionBody: &hub.ReactionBody{
					Type:      hub.ReactionTypeRecast,
					TargetURL: "https://warpcast.com/~/cast",
				},
			},
		},
		{
			name: "link add with display timestamp",
			data: &hub.MessageData{
				Type:      hub.MessageTypeLinkAdd,
				Fid:       4,
				Timestamp: 30,
				Network:   hub.FarcasterNetworkMainnet,
				LinkBody: &hub.LinkBody{
					Type:             "follow",
					TargetFid:        99,
					DisplayTimestamp: uint32Ptr(29),
				},
			},
		},
		{
			name: "verification add",
			data: &hub.MessageData{
				Type:      hub.MessageTypeVerificationAddAddress,
				Fid:       5,
				Timestamp: 40,
				Network:   hub.FarcasterNetworkMainnet,
				VerificationAddAddressBody: &hub.VerificationAddAddressBody{
					Address:          []byte{0x01, 0x02},
					ClaimSignature:   []byte{0x03},
					BlockHash:        []byte{0x04},
					VerificationType: 0,
					ChainID:          1,
					Protocol:         hub.ProtocolEthereum,
				},
			},
		},
		{
			name: "verification remove solana",
			data: &hub.MessageData{
				Type:      hub.MessageTypeVerificationRemove,
				Fid:       5,
				Timestamp: 41,
				Network:   hub.FarcasterNetworkMainnet,
				VerificationRemoveBody: &hub.VerificationRemoveBody{
					Address:  []byte{0x05, 0x06},
					Protocol: hub.ProtocolSolana,
				},
			},
		},
		{
			name: "user data add",
			data: &hub.MessageData{
				Type:         hub.MessageTypeUserDataAdd,
				Fid:          6,
				Timestamp:    50,
				Network:      hub.FarcasterNetworkMainnet,
				UserDataBody: &hub.UserDataBody{Type: hub.UserDataTypeBio, Value: "hello"},
			},
		},
		{
			name: "username proof",
			data: &hub.MessageData{
				Type:      hub.MessageTypeUsernameProof,
				Fid:       7,
				Timestamp: 60,
				Network:   hub.FarcasterNetworkMainnet,
				UsernameProofBody: &hub.UserNameProof{
					Timestamp: 1700000000,
					Name:      []byte("alice"),
					Owner:     []byte{0x0a, 0x0b},
					Signature: []byte{0x0c},
					Fid:       7,
					Type:      hub.UserNameTypeFname,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := hub.UnmarshalMessageData(hub.MarshalMessageData(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.data, decoded)
		})
	}
}

func TestMessage_RoundTrip(t *testing.T) {
	data := &hub.MessageData{
		Type:        hub.MessageTypeCastAdd,
		Fid:         10,
		Timestamp:   100,
		Network:     hub.FarcasterNetworkMainnet,
		CastAddBody: &hub.CastAddBody{Text: "hi"},
	}
	msg := &hub.Message{
		Data:            data,
		DataBytes:       hub.MarshalMessageData(data),
		Hash:            []byte{0x01, 0x02, 0x03, 0x04},
		HashScheme:      hub.HashSchemeBlake3,
		Signature:       []byte{0x05, 0x06},
		SignatureScheme: hub.SignatureSchemeEd25519,
		Signer:          []byte{0x07, 0x08},
	}

	decoded, err := hub.UnmarshalMessage(hub.MarshalMessage(msg))
	require.NoError(t, err)
	assert.Equal(t, msg.Hash, decoded.Hash)
	assert.Equal(t, msg.HashScheme, decoded.HashScheme)
	assert.Equal(t, msg.Signature, decoded.Signature)
	assert.Equal(t, msg.SignatureScheme, decoded.SignatureScheme)
	assert.Equal(t, msg.Signer, decoded.Signer)
	assert.Equal(t, msg.DataBytes, decoded.DataBytes)
	assert.Equal(t, data, decoded.Data)
}

func TestEvent_RoundTrip_MergeMessage(t *testing.T) {
	data := &hub.MessageData{
		Type:        hub.MessageTypeCastAdd,
		Fid:         11,
		Timestamp:   111,
		Network:     hub.FarcasterNetworkMainnet,
		CastAddBody: &hub.CastAddBody{Text: "merged"},
	}
	msg := &hub.Message{
		Data:            data,
		DataBytes:       hub.MarshalMessageData(data),
		Hash:            []byte{0xca, 0xfe},
		HashScheme:      hub.HashSchemeBlake3,
		Signature:       []byte{0x01},
		SignatureScheme: hub.SignatureSchemeEd25519,
		Signer:          []byte{0x02},
	}
	event := &hub.Event{
		Type: hub.EventTypeMergeMessage,
		ID:   12345,
		MergeMessageBody: &hub.MergeMessageBody{
			Message:         msg,
			DeletedMessages: []*hub.Message{msg},
		},
	}

	decoded, err := hub.UnmarshalEvent(hub.MarshalEvent(event))
	require.NoError(t, err)
	assert.Equal(t, hub.EventTypeMergeMessage, decoded.Type)
	assert.Equal(t, uint64(12345), decoded.ID)
	require.NotNil(t, decoded.MergeMessageBody)
	require.NotNil(t, decoded.MergeMessageBody.Message)
	assert.Equal(t, msg.Hash, decoded.MergeMessageBody.Message.Hash)
	require.Len(t, decoded.MergeMessageBody.DeletedMessages, 1)
}

func TestEvent_RoundTrip_PruneAndRevoke(t *testing.T) {
	data := &hub.MessageData{
		Type:         hub.MessageTypeUserDataAdd,
		Fid:          12,
		Timestamp:    5,
		Network:      hub.FarcasterNetworkMainnet,
		UserDataBody: &hub.UserDataBody{Type: hub.UserDataTypePfp, Value: "x"},
	}
	msg := &hub.Message{
		Data:            data,
		DataBytes:       hub.MarshalMessageData(data),
		Hash:            []byte{0x99},
		HashScheme:      hub.HashSchemeBlake3,
		Signature:       []byte{0x01},
		SignatureScheme: hub.SignatureSchemeEd25519,
		Signer:          []byte{0x02},
	}

	prune := &hub.Event{
		Type:             hub.EventTypePruneMessage,
		ID:               7,
		PruneMessageBody: &hub.PruneMessageBody{Message: msg},
	}
	decoded, err := hub.UnmarshalEvent(hub.MarshalEvent(prune))
	require.NoError(t, err)
	require.NotNil(t, decoded.PruneMessageBody)
	assert.Equal(t, msg.Hash, decoded.PruneMessageBody.Message.Hash)

	revoke := &hub.Event{
		Type:              hub.EventTypeRevokeMessage,
		ID:                8,
		RevokeMessageBody: &hub.RevokeMessageBody{Message: msg},
	}
	decoded, err = hub.UnmarshalEvent(hub.MarshalEvent(revoke))
	require.NoError(t, err)
	require.NotNil(t, decoded.RevokeMessageBody)
	assert.Equal(t, msg.Hash, decoded.RevokeMessageBody.Message.Hash)
}

func TestEvent_RoundTrip_UsernameProof(t *testing.T) {
	event := &hub.Event{
		Type: hub.EventTypeMergeUsernameProof,
		ID:   9,
		MergeUserNameProofBody: &hub.MergeUserNameProofBody{
			UsernameProof: &hub.UserNameProof{
				Timestamp: 1700000001,
				Name:      []byte("bob"),
				Owner:     []byte{0x01},
				Signature: []byte{0x02},
				Fid:       13,
				Type:      hub.UserNameTypeENSL1,
			},
		},
	}

	decoded, err := hub.UnmarshalEvent(hub.MarshalEvent(event))
	require.NoError(t, err)
	require.NotNil(t, decoded.MergeUserNameProofBody)
	assert.Equal(t, event.MergeUserNameProofBody.UsernameProof, decoded.MergeUserNameProofBody.UsernameProof)
}

func TestSubscribeRequest_RoundTrip(t *testing.T) {
	req := &hub.SubscribeRequest{
		EventTypes: hub.DefaultEventTypes,
		FromID:     uint64Ptr(42),
	}
	decoded, err := hub.UnmarshalSubscribeRequest(hub.MarshalSubscribeRequest(req))
	require.NoError(t, err)
	assert.Equal(t, req.EventTypes, decoded.EventTypes)
	require.NotNil(t, decoded.FromID)
	assert.Equal(t, uint64(42), *decoded.FromID)

	bare, err := hub.UnmarshalSubscribeRequest(hub.MarshalSubscribeRequest(&hub.SubscribeRequest{}))
	require.NoError(t, err)
	assert.Empty(t, bare.EventTypes)
	assert.Nil(t, bare.FromID)
}

func TestFidRequest_RoundTrip(t *testing.T) {
	req := &hub.FidRequest{
		Fid:       77,
		PageSize:  3000,
		PageToken: []byte{0x01, 0x02},
		Reverse:   true,
	}
	decoded, err := hub.UnmarshalFidRequest(hub.MarshalFidRequest(req))
	require.NoError(t, err)
	assert.Equal(t, req, decoded)
}

func TestMessagesResponse_RoundTrip(t *testing.T) {
	data := &hub.MessageData{
		Type:        hub.MessageTypeCastAdd,
		Fid:         14,
		Timestamp:   1,
		Network:     hub.FarcasterNetworkMainnet,
		CastAddBody: &hub.CastAddBody{Text: "page"},
	}
	msg := &hub.Message{
		Data:            data,
		DataBytes:       hub.MarshalMessageData(data),
		Hash:            []byte{0x0f},
		HashScheme:      hub.HashSchemeBlake3,
		Signature:       []byte{0x01},
		SignatureScheme: hub.SignatureSchemeEd25519,
		Signer:          []byte{0x02},
	}
	resp := &hub.MessagesResponse{
		Messages:      []*hub.Message{msg, msg},
		NextPageToken: []byte("next"),
	}

	decoded, err := hub.UnmarshalMessagesResponse(hub.MarshalMessagesResponse(resp))
	require.NoError(t, err)
	require.Len(t, decoded.Messages, 2)
	assert.Equal(t, msg.Hash, decoded.Messages[0].Hash)
	assert.Equal(t, []byte("next"), decoded.NextPageToken)
}

func TestUnmarshal_TruncatedFrames(t *testing.T) {
	valid := hub.MarshalEvent(&hub.Event{Type: hub.EventTypeMergeMessage, ID: 1})

	_, err := hub.UnmarshalEvent(valid[:len(valid)-1])
	assert.Error(t, err)

	_, err = hub.UnmarshalMessage([]byte{0xff})
	assert.Error(t, err)

	_, err = hub.UnmarshalMessageData([]byte{0x08})
	assert.Error(t, err)
}
