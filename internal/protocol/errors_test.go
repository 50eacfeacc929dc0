package protocol

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchBaseKind(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
		kind     string
		text     string
	}{
		{&InvalidMagicError{}, ErrInvalidMagic, "invalid_magic", "Invalid magic bytes"},
		{&UnsupportedVersionError{Version: 9}, ErrUnsupportedVersion, "unsupported_version", "Unsupported version: 9"},
		{&InvalidMessageTypeError{Type: 255}, ErrInvalidMessageType, "invalid_message_type", "Invalid message type: 255"},
		{&BufferTooSmallError{Expected: 64, Actual: 10}, ErrBufferTooSmall, "buffer_too_small", "Buffer too small: expected 64, got 10"},
		{&ChecksumMismatchError{Expected: 0xd87f7e0c, Actual: 0xaf784e9a}, ErrChecksumMismatch, "checksum_mismatch", "Checksum mismatch: expected 0xd87f7e0c, got 0xaf784e9a"},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("read: %w", tc.err)
		assert.True(t, errors.Is(wrapped, ErrProtocol), tc.kind)
		assert.True(t, errors.Is(wrapped, tc.sentinel), tc.kind)
		assert.Equal(t, tc.kind, KindOf(wrapped))
		assert.Equal(t, tc.text, tc.err.Error())
	}
}

func TestGenericErrorKind(t *testing.T) {
	err := protocolErrorf("Body length mismatch: expected %d, got %d", 10, 4)
	assert.True(t, errors.Is(err, ErrProtocol))
	assert.False(t, errors.Is(err, ErrChecksumMismatch))
	assert.Equal(t, "protocol", KindOf(err))
	assert.Equal(t, "Body length mismatch: expected 10, got 4", err.Error())

	var perr *Error
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, "", KindOf(nil))
	assert.Equal(t, "unknown", KindOf(errors.New("boom")))
}

func TestErrorsAsCarriesFields(t *testing.T) {
	var err error = &BufferTooSmallError{Expected: 70, Actual: 66}
	var bts *BufferTooSmallError
	if assert.True(t, errors.As(err, &bts)) {
		assert.Equal(t, 70, bts.Expected)
		assert.Equal(t, 66, bts.Actual)
	}
}
