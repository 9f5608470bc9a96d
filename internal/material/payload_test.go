package material

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func TestDecodePayload_RoundTrip(t *testing.T) {
	raw := []byte("drivetrain CAD export")
	encoded := base64.StdEncoding.EncodeToString(raw)

	decoded, err := DecodePayload(encoded, 1024)
	if err != nil {
		t.Fatalf("DecodePayload() error: %v", err)
	}
	if !bytes.Equal(decoded, raw) {
		t.Errorf("expected %q, got %q", raw, decoded)
	}
}

func TestDecodePayload_Empty(t *testing.T) {
	decoded, err := DecodePayload("", 1024)
	if err != nil {
		t.Fatalf("DecodePayload() error: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("expected empty payload, got %d bytes", len(decoded))
	}
}

func TestDecodePayload_InvalidBase64(t *testing.T) {
	_, err := DecodePayload("not valid base64!!!", 1024)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestDecodePayload_SizeBoundary(t *testing.T) {
	const max = 1024

	// Exactly at the limit is accepted.
	atLimit := base64.StdEncoding.EncodeToString(make([]byte, max))
	if _, err := DecodePayload(atLimit, max); err != nil {
		t.Errorf("payload of exactly max bytes should be accepted, got %v", err)
	}

	// One byte over is rejected.
	overLimit := base64.StdEncoding.EncodeToString(make([]byte, max+1))
	if _, err := DecodePayload(overLimit, max); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestDecodePayload_EncodedLengthPrecheck(t *testing.T) {
	// Far larger than the limit: rejected on encoded length alone, without
	// the decode allocation.
	huge := make([]byte, ((1024+2)/3*4)+100)
	for i := range huge {
		huge[i] = 'A'
	}
	if _, err := DecodePayload(string(huge), 1024); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestDecodePayload_DefaultMax(t *testing.T) {
	raw := []byte("small file")
	encoded := base64.StdEncoding.EncodeToString(raw)
	if _, err := DecodePayload(encoded, 0); err != nil {
		t.Errorf("non-positive max should fall back to the default, got %v", err)
	}
}

func TestValidType(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"document", true},
		{"video", true},
		{"image", true},
		{"presentation", true},
		{"code", true},
		{"other", true},
		{"", false},
		{"Document", false},
		{"archive", false},
	}

	for _, tt := range tests {
		if got := ValidType(tt.in); got != tt.want {
			t.Errorf("ValidType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
