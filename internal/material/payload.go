package material

import (
	"encoding/base64"
	"errors"
)

// DefaultMaxPayloadSize is the maximum decoded payload size: 50 MiB,
// boundary inclusive.
const DefaultMaxPayloadSize int64 = 50 << 20

var (
	// ErrInvalidPayload is returned when the encoded payload cannot be
	// decoded.
	ErrInvalidPayload = errors.New("invalid file data")

	// ErrPayloadTooLarge is returned when the decoded payload exceeds the
	// size limit.
	ErrPayloadTooLarge = errors.New("file too large")
)

// DecodePayload decodes a base64 payload and enforces the decoded size
// limit. A payload of exactly max bytes is accepted. A non-positive max
// falls back to DefaultMaxPayloadSize.
func DecodePayload(encoded string, max int64) ([]byte, error) {
	if max <= 0 {
		max = DefaultMaxPayloadSize
	}

	// Cheap upper-bound check before decoding: base64 expands by 4/3, so
	// anything longer than the encoded form of max cannot fit.
	if int64(len(encoded)) > (max+2)/3*4 {
		return nil, ErrPayloadTooLarge
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidPayload
	}
	if int64(len(decoded)) > max {
		return nil, ErrPayloadTooLarge
	}
	return decoded, nil
}
