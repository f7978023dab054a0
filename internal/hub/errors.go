package hub

import "errors"

var (
	// ErrMalformedFrame indicates bytes that do not parse as the expected wire shape
	ErrMalformedFrame = errors.New("malformed wire frame")
	// ErrMissingData indicates a message without a data payload
	ErrMissingData = errors.New("message has no data")
	// ErrUnsupportedHashScheme indicates a hash scheme this codec cannot verify
	ErrUnsupportedHashScheme = errors.New("unsupported hash scheme")
	// ErrInvalidHash indicates the hash does not match the data bytes
	ErrInvalidHash = errors.New("hash does not match data bytes")
	// ErrUnsupportedSignatureScheme indicates a signature scheme this codec cannot verify
	ErrUnsupportedSignatureScheme = errors.New("unsupported signature scheme")
	// ErrInvalidSignature indicates a signature that fails verification
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrBadTimestamp indicates a timestamp outside the representable range
	ErrBadTimestamp = errors.New("timestamp out of range")
)
