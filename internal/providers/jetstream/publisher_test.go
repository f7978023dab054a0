package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/hub-shuttle/internal/adapter"
	"github.com/feral-file/hub-shuttle/internal/logger"
	"github.com/feral-file/hub-shuttle/internal/mocks"
	"github.com/feral-file/hub-shuttle/internal/providers/jetstream"
	"github.com/feral-file/hub-shuttle/internal/store"
	"github.com/feral-file/hub-shuttle/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func testConfig() jetstream.Config {
	return jetstream.Config{
		URL:            "nats://localhost:4222",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "test-shuttle",
	}
}

func newPublisher(t *testing.T, ctrl *gomock.Controller, cfg jetstream.Config) (*jetstream.Publisher, *mocks.MockNatsConn, *mocks.MockJetStream) {
	t.Helper()

	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	natsJS.EXPECT().
		Connect(cfg.URL, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nc, js, nil)

	pub, err := jetstream.NewPublisher(cfg, natsJS, adapter.NewJSON())
	require.NoError(t, err)
	return pub, nc, js
}

func storedRow() *schema.Message {
	return &schema.Message{
		Hash:      []byte{0xde, 0xad, 0xbe, 0xef},
		Fid:       42,
		Type:      schema.KindCastAdd,
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewPublisher_ConnectError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil, errors.New("no servers available"))

	_, err := jetstream.NewPublisher(testConfig(), natsJS, adapter.NewJSON())
	assert.ErrorContains(t, err, "failed to connect to NATS")
}

func TestHandleMessageMerge_PublishesNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pub, _, js := newPublisher(t, ctrl, testConfig())
	row := storedRow()

	js.EXPECT().
		Publish(gomock.Any(), "hub_messages.cast_add", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var n jetstream.Notification
			require.NoError(t, json.Unmarshal(data, &n))
			assert.Equal(t, hexutil.Encode(row.Hash), n.Hash)
			assert.Equal(t, uint64(42), n.Fid)
			assert.Equal(t, "cast_add", n.Type)
			assert.Equal(t, "merge", n.Operation)
			assert.False(t, n.WasMissed)
			assert.Equal(t, row.Timestamp.UnixMilli(), n.Timestamp)
			return &natsjs.PubAck{}, nil
		})

	err := pub.HandleMessageMerge(context.Background(), nil, nil, row, store.OperationMerge, false)
	require.NoError(t, err)
}

func TestHandleMessageMerge_SubjectPerKindAndPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.SubjectPrefix = "farcaster"
	pub, _, js := newPublisher(t, ctrl, cfg)

	row := storedRow()
	row.Type = schema.KindReactionRemove

	js.EXPECT().
		Publish(gomock.Any(), "farcaster.reaction_remove", gomock.Any()).
		Return(&natsjs.PubAck{}, nil)

	require.NoError(t, pub.HandleMessageMerge(context.Background(), nil, nil, row, store.OperationDelete, false))
}

func TestHandleMessageMerge_MissedFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pub, _, js := newPublisher(t, ctrl, testConfig())
	row := storedRow()

	js.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var n jetstream.Notification
			require.NoError(t, json.Unmarshal(data, &n))
			assert.True(t, n.WasMissed)
			return &natsjs.PubAck{}, nil
		})

	require.NoError(t, pub.HandleMessageMerge(context.Background(), nil, nil, row, store.OperationMerge, true))
}

func TestHandleMessageMerge_PublishError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pub, _, js := newPublisher(t, ctrl, testConfig())

	js.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("jetstream unavailable"))

	err := pub.HandleMessageMerge(context.Background(), nil, nil, storedRow(), store.OperationMerge, false)
	assert.ErrorContains(t, err, "failed to publish notification")
}

func TestClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pub, nc, _ := newPublisher(t, ctrl, testConfig())
	nc.EXPECT().Close()

	pub.Close()
}
