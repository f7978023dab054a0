package codec

import "errors"

// Codec failures are permanent: callers log, skip the message, and advance.
var (
	// ErrInvalidMessage indicates a message whose hash or signature fails validation
	ErrInvalidMessage = errors.New("invalid message")
	// ErrMissingBody indicates a message without a data section or body variant
	ErrMissingBody = errors.New("missing message body")
	// ErrUnknownType indicates a message type this codec does not decode
	ErrUnknownType = errors.New("unknown message type")
	// ErrBadTimestamp indicates an undecodable message timestamp
	ErrBadTimestamp = errors.New("bad message timestamp")
)

// IsPermanent reports whether err is a codec failure that must not be retried
func IsPermanent(err error) bool {
	return errors.Is(err, ErrInvalidMessage) ||
		errors.Is(err, ErrMissingBody) ||
		errors.Is(err, ErrUnknownType) ||
		errors.Is(err, ErrBadTimestamp)
}
