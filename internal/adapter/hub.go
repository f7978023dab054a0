package adapter

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/feral-file/hub-shuttle/internal/hub"
)

// HubEventStream defines an interface for a hub event subscription stream to enable mocking
//
//go:generate mockgen -source=hub.go -destination=../mocks/hub.go -package=mocks -mock_names=HubEventStream=MockHubEventStream
type HubEventStream interface {
	// Recv blocks for the next event frame
	Recv() (*hub.Event, error)

	// Close closes the send side of the stream; the stream itself ends when
	// the context passed to Subscribe is canceled
	Close() error
}

// HubClient defines an interface for hub RPC operations to enable mocking
//
//go:generate mockgen -source=hub.go -destination=../mocks/hub.go -package=mocks -mock_names=HubClient=MockHubClient
type HubClient interface {
	// WaitForReady blocks until the underlying transport is ready or ctx expires
	WaitForReady(ctx context.Context) error

	// Subscribe opens a server-streaming event subscription
	Subscribe(ctx context.Context, req *hub.SubscribeRequest) (HubEventStream, error)

	// MessagesByFid fetches one page of the per-fid inventory for a message type
	MessagesByFid(ctx context.Context, msgType hub.MessageType, req *hub.FidRequest) (*hub.MessagesResponse, error)

	// Close closes the underlying connection
	Close() error
}

// rawFrame carries pre-marshaled protobuf bytes through the grpc codec layer
type rawFrame struct {
	payload []byte
}

// rawCodec passes frames through unmodified. The hub message set is marshaled
// by the hand-maintained codec in internal/hub, so grpc only sees bytes.
type rawCodec struct{}

func (rawCodec) Marshal(v interface{}) ([]byte, error) {
	f, ok := v.(*rawFrame)
	if !ok {
		return nil, fmt.Errorf("rawCodec: unexpected type %T", v)
	}
	return f.payload, nil
}

func (rawCodec) Unmarshal(data []byte, v interface{}) error {
	f, ok := v.(*rawFrame)
	if !ok {
		return fmt.Errorf("rawCodec: unexpected type %T", v)
	}
	f.payload = data
	return nil
}

func (rawCodec) Name() string {
	return "proto"
}

const (
	methodSubscribe = "/HubService/Subscribe"

	methodCastsByFid         = "/HubService/GetAllCastMessagesByFid"
	methodReactionsByFid     = "/HubService/GetAllReactionMessagesByFid"
	methodLinksByFid         = "/HubService/GetAllLinkMessagesByFid"
	methodVerificationsByFid = "/HubService/GetAllVerificationMessagesByFid"
	methodUserDataByFid      = "/HubService/GetAllUserDataMessagesByFid"
)

var subscribeStreamDesc = &grpc.StreamDesc{
	StreamName:    "Subscribe",
	ServerStreams: true,
}

// RealHubClient implements HubClient over a grpc client connection
type RealHubClient struct {
	conn *grpc.ClientConn
}

// NewHubClient dials a hub endpoint. TLS is used unless insecureTransport is set.
func NewHubClient(endpoint string, insecureTransport bool) (HubClient, error) {
	creds := credentials.NewClientTLSFromCert(nil, "")
	if insecureTransport {
		creds = insecure.NewCredentials()
	}
	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(rawCodec{})),
	)
	if err != nil {
		return nil, fmt.Errorf("dial hub %s: %w", endpoint, err)
	}
	return &RealHubClient{conn: conn}, nil
}

// WaitForReady blocks until the connection reaches the ready state
func (c *RealHubClient) WaitForReady(ctx context.Context) error {
	c.conn.Connect()
	for {
		state := c.conn.GetState()
		if state == connectivity.Ready {
			return nil
		}
		if !c.conn.WaitForStateChange(ctx, state) {
			return ctx.Err()
		}
	}
}

// Subscribe opens the server-streaming subscription
func (c *RealHubClient) Subscribe(ctx context.Context, req *hub.SubscribeRequest) (HubEventStream, error) {
	payload := hub.MarshalSubscribeRequest(req)
	stream, err := c.conn.NewStream(ctx, subscribeStreamDesc, methodSubscribe)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(&rawFrame{payload: payload}); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &realHubEventStream{stream: stream}, nil
}

// MessagesByFid fetches one inventory page for the given message type
func (c *RealHubClient) MessagesByFid(ctx context.Context, msgType hub.MessageType, req *hub.FidRequest) (*hub.MessagesResponse, error) {
	var method string
	switch msgType {
	case hub.MessageTypeCastAdd:
		method = methodCastsByFid
	case hub.MessageTypeReactionAdd:
		method = methodReactionsByFid
	case hub.MessageTypeLinkAdd:
		method = methodLinksByFid
	case hub.MessageTypeVerificationAddAddress:
		method = methodVerificationsByFid
	case hub.MessageTypeUserDataAdd:
		method = methodUserDataByFid
	default:
		return nil, fmt.Errorf("no inventory rpc for message type %s", msgType)
	}

	payload := hub.MarshalFidRequest(req)
	var reply rawFrame
	if err := c.conn.Invoke(ctx, method, &rawFrame{payload: payload}, &reply); err != nil {
		return nil, err
	}
	resp, err := hub.UnmarshalMessagesResponse(reply.payload)
	if err != nil {
		return nil, fmt.Errorf("decode messages response: %w", err)
	}
	return resp, nil
}

// Close closes the grpc connection
func (c *RealHubClient) Close() error {
	return c.conn.Close()
}

// realHubEventStream adapts a grpc.ClientStream to HubEventStream
type realHubEventStream struct {
	stream grpc.ClientStream
}

func (s *realHubEventStream) Recv() (*hub.Event, error) {
	var frame rawFrame
	if err := s.stream.RecvMsg(&frame); err != nil {
		return nil, err
	}
	event, err := hub.UnmarshalEvent(frame.payload)
	if err != nil {
		return nil, fmt.Errorf("decode event frame: %w", err)
	}
	return event, nil
}

func (s *realHubEventStream) Close() error {
	return s.stream.CloseSend()
}
