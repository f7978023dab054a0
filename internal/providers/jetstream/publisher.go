package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feral-file/hub-shuttle/internal/adapter"
	"github.com/feral-file/hub-shuttle/internal/hub"
	"github.com/feral-file/hub-shuttle/internal/logger"
	"github.com/feral-file/hub-shuttle/internal/store"
	"github.com/feral-file/hub-shuttle/internal/store/schema"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

// Notification is the JSON payload published for each stored message
type Notification struct {
	Hash      string `json:"hash"`
	Fid       uint64 `json:"fid"`
	Type      string `json:"type"`
	Operation string `json:"operation"`
	WasMissed bool   `json:"wasMissed"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher fans stored messages out to a JetStream subject per message type.
// It implements the dispatcher's message hook; publish failures abort the
// surrounding transaction so no notification is lost ahead of its row.
type Publisher struct {
	nc            adapter.NatsConn
	js            adapter.JetStream
	subjectPrefix string
	json          adapter.JSON
}

// NewPublisher connects to NATS and creates a JetStream publisher
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = "hub_messages"
	}

	return &Publisher{
		nc:            nc,
		js:            js,
		subjectPrefix: prefix,
		json:          jsonAdapter,
	}, nil
}

// HandleMessageMerge publishes a notification for the stored message
func (p *Publisher) HandleMessageMerge(ctx context.Context, _ *gorm.DB, _ *hub.Message, row *schema.Message, op store.Operation, wasMissed bool) error {
	notification := Notification{
		Hash:      hexutil.Encode(row.Hash),
		Fid:       row.Fid,
		Type:      string(row.Type),
		Operation: string(op),
		WasMissed: wasMissed,
		Timestamp: row.Timestamp.UnixMilli(),
	}

	data, err := p.json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	subject := p.buildSubject(row.Type)
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// buildSubject constructs the NATS subject based on the message type
func (p *Publisher) buildSubject(kind schema.MessageKind) string {
	// Format: {prefix}.{message_type}
	// e.g., hub_messages.cast_add, hub_messages.reaction_remove
	return fmt.Sprintf("%s.%s", p.subjectPrefix, kind)
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
