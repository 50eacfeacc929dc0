package protocol

import (
	"encoding/binary"
	"time"
)

// nowMillis is the wall clock used for default timestamps.
var nowMillis = func() uint64 {
	return uint64(time.Now().UnixMilli())
}

// CurrentTimestampMs returns the current wall-clock time in ms since epoch.
func CurrentTimestampMs() uint64 {
	return nowMillis()
}

// Header is the fixed 64-byte message header. Type, FlagBits and
// PriorityBits hold the raw wire bytes; use the accessor methods for the
// narrowed values. Reserved and padding regions are opaque and round-trip
// verbatim.
//
// Padding is 16 bytes (offsets 48..64), not the 10 the field table lists.
// Other implementations write 10 bytes of padding, zero 58..64 and ignore
// them on read; this one carries all 16. Headers with zeroed padding encode
// identically either way, but nonzero bytes at 58..64 survive a round trip
// here and are dropped elsewhere.
type Header struct {
	Magic        [4]byte
	Version      uint8
	Type         uint8
	FlagBits     uint8
	PriorityBits uint8
	BodyLen      uint32
	FooterLen    uint16
	Reserved1    uint16
	Timestamp    uint64
	Checksum     uint32
	Reserved2    uint32
	Reserved3    [8]byte
	Reserved4    [8]byte
	Padding      [paddingSize]byte
}

// NewHeader builds a header stamped with the current time.
func NewHeader(t MessageType, bodyLen uint32) *Header {
	return NewHeaderAt(t, bodyLen, nowMillis())
}

// NewHeaderAt builds a header with an explicit timestamp. Flags, footer
// length, checksum and reserved regions are zero; priority is Normal.
func NewHeaderAt(t MessageType, bodyLen uint32, timestamp uint64) *Header {
	return &Header{
		Magic:        Magic,
		Version:      Version,
		Type:         uint8(t),
		PriorityBits: uint8(PriorityNormal),
		BodyLen:      bodyLen,
		Timestamp:    timestamp,
	}
}

// Validate checks magic, version and type, in that order.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return &InvalidMagicError{}
	}
	if h.Version != Version {
		return &UnsupportedVersionError{Version: h.Version}
	}
	if _, ok := MessageTypeFromU8(h.Type); !ok {
		return &InvalidMessageTypeError{Type: h.Type}
	}
	return nil
}

// MessageType returns the narrowed type; ok is false if Type is outside
// the closed set.
func (h *Header) MessageType() (MessageType, bool) {
	return MessageTypeFromU8(h.Type)
}

func (h *Header) Priority() Priority {
	return PriorityFromU8(h.PriorityBits)
}

func (h *Header) SetPriority(p Priority) {
	h.PriorityBits = uint8(p)
}

func (h *Header) Flags() MessageFlags {
	return MessageFlags(h.FlagBits)
}

func (h *Header) SetFlags(f MessageFlags) {
	h.FlagBits = f.Bits()
}

func (h *Header) HasFooter() bool {
	return h.Flags().Contains(FlagHasFooter)
}

// Encode writes the header into a fresh 64-byte slice. No validation is
// performed.
func (h *Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	h.put(buf)
	return buf
}

func (h *Header) put(buf []byte) {
	copy(buf[offMagic:offVersion], h.Magic[:])
	buf[offVersion] = h.Version
	buf[offType] = h.Type
	buf[offFlags] = h.FlagBits
	buf[offPriority] = h.PriorityBits
	binary.LittleEndian.PutUint32(buf[offBodyLen:offFooterLen], h.BodyLen)
	binary.LittleEndian.PutUint16(buf[offFooterLen:offReserved1], h.FooterLen)
	binary.LittleEndian.PutUint16(buf[offReserved1:offTimestamp], h.Reserved1)
	binary.LittleEndian.PutUint64(buf[offTimestamp:offChecksum], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[offChecksum:offReserved2], h.Checksum)
	binary.LittleEndian.PutUint32(buf[offReserved2:offReserved3], h.Reserved2)
	copy(buf[offReserved3:offReserved4], h.Reserved3[:])
	copy(buf[offReserved4:offPadding], h.Reserved4[:])
	copy(buf[offPadding:HeaderSize], h.Padding[:])
}

// DecodeHeader parses the first 64 bytes of b and validates the result.
func DecodeHeader(b []byte) (*Header, error) {
	if len(b) < HeaderSize {
		return nil, &BufferTooSmallError{Expected: HeaderSize, Actual: len(b)}
	}
	h := &Header{
		Version:      b[offVersion],
		Type:         b[offType],
		FlagBits:     b[offFlags],
		PriorityBits: b[offPriority],
		BodyLen:      binary.LittleEndian.Uint32(b[offBodyLen:offFooterLen]),
		FooterLen:    binary.LittleEndian.Uint16(b[offFooterLen:offReserved1]),
		Reserved1:    binary.LittleEndian.Uint16(b[offReserved1:offTimestamp]),
		Timestamp:    binary.LittleEndian.Uint64(b[offTimestamp:offChecksum]),
		Checksum:     binary.LittleEndian.Uint32(b[offChecksum:offReserved2]),
		Reserved2:    binary.LittleEndian.Uint32(b[offReserved2:offReserved3]),
	}
	copy(h.Magic[:], b[offMagic:offVersion])
	copy(h.Reserved3[:], b[offReserved3:offReserved4])
	copy(h.Reserved4[:], b[offReserved4:offPadding])
	copy(h.Padding[:], b[offPadding:HeaderSize])

	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}
