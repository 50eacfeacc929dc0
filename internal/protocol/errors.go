package protocol

import (
	"errors"
	"fmt"
)

// ErrProtocol is the base kind. Every error produced by this package reports
// errors.Is(err, ErrProtocol).
var ErrProtocol = errors.New("protocol error")

var (
	ErrInvalidMagic       = errors.New("protocol: invalid magic")
	ErrUnsupportedVersion = errors.New("protocol: unsupported version")
	ErrInvalidMessageType = errors.New("protocol: invalid message type")
	ErrBufferTooSmall     = errors.New("protocol: buffer too small")
	ErrChecksumMismatch   = errors.New("protocol: checksum mismatch")
)

// Error is a structural failure without a more specific kind: body/footer
// length mismatches, footer presence and TLV decoding errors.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Is(target error) bool { return target == ErrProtocol }

func protocolErrorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

type InvalidMagicError struct{}

func (e *InvalidMagicError) Error() string { return "Invalid magic bytes" }

func (e *InvalidMagicError) Is(target error) bool {
	return target == ErrProtocol || target == ErrInvalidMagic
}

type UnsupportedVersionError struct {
	Version uint8
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("Unsupported version: %d", e.Version)
}

func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrProtocol || target == ErrUnsupportedVersion
}

type InvalidMessageTypeError struct {
	Type uint8
}

func (e *InvalidMessageTypeError) Error() string {
	return fmt.Sprintf("Invalid message type: %d", e.Type)
}

func (e *InvalidMessageTypeError) Is(target error) bool {
	return target == ErrProtocol || target == ErrInvalidMessageType
}

// BufferTooSmallError reports a buffer shorter than a parse step requires.
type BufferTooSmallError struct {
	Expected int
	Actual   int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("Buffer too small: expected %d, got %d", e.Expected, e.Actual)
}

func (e *BufferTooSmallError) Is(target error) bool {
	return target == ErrProtocol || target == ErrBufferTooSmall
}

// ChecksumMismatchError carries the header checksum (Expected) and the CRC32
// recomputed over the body (Actual).
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("Checksum mismatch: expected 0x%x, got 0x%x", e.Expected, e.Actual)
}

func (e *ChecksumMismatchError) Is(target error) bool {
	return target == ErrProtocol || target == ErrChecksumMismatch
}

// KindOf returns a stable label for err, suitable for metrics and API
// responses. It returns "" for nil and "unknown" for foreign errors.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidMagic):
		return "invalid_magic"
	case errors.Is(err, ErrUnsupportedVersion):
		return "unsupported_version"
	case errors.Is(err, ErrInvalidMessageType):
		return "invalid_message_type"
	case errors.Is(err, ErrBufferTooSmall):
		return "buffer_too_small"
	case errors.Is(err, ErrChecksumMismatch):
		return "checksum_mismatch"
	case errors.Is(err, ErrProtocol):
		return "protocol"
	default:
		return "unknown"
	}
}
