// Package tlv implements the footer field encoding: a 1-byte type tag, a
// 2-byte little-endian length, then that many value bytes.
package tlv

import (
	"encoding/binary"
	"errors"
)

const HeaderLen = 1 + 2

var (
	ErrMissingType   = errors.New("tlv: missing type")
	ErrMissingLength = errors.New("tlv: missing length")
	ErrValueTooLong  = errors.New("tlv: value too long")
)

// Field is one encoded TLV field.
type Field struct {
	Type  uint8
	Value []byte
}

// AppendField appends the encoding of f to dst. Values longer than 65535
// bytes have their length truncated to 16 bits.
func AppendField(dst []byte, f Field) []byte {
	var head [HeaderLen]byte
	head[0] = f.Type
	binary.LittleEndian.PutUint16(head[1:3], uint16(len(f.Value)))
	dst = append(dst, head[:]...)
	return append(dst, f.Value...)
}

// EncodeFields concatenates the encodings of fields in order.
func EncodeFields(fields []Field) []byte {
	out := make([]byte, 0)
	for _, f := range fields {
		out = AppendField(out, f)
	}
	return out
}

// Scanner walks a TLV buffer one field at a time so callers can reject a
// field before later fields are examined.
type Scanner struct {
	buf   []byte
	pos   int
	field Field
	err   error
}

func NewScanner(buf []byte) *Scanner {
	return &Scanner{buf: buf}
}

// Next advances to the next field. It returns false at the end of the
// buffer or on the first error; check Err afterwards.
func (s *Scanner) Next() bool {
	if s.err != nil || s.pos >= len(s.buf) {
		return false
	}
	if s.pos+1 > len(s.buf) {
		s.err = ErrMissingType
		return false
	}
	typ := s.buf[s.pos]
	s.pos++

	if s.pos+2 > len(s.buf) {
		s.err = ErrMissingLength
		return false
	}
	l := int(binary.LittleEndian.Uint16(s.buf[s.pos : s.pos+2]))
	s.pos += 2

	if s.pos+l > len(s.buf) {
		s.err = ErrValueTooLong
		return false
	}
	val := make([]byte, l)
	copy(val, s.buf[s.pos:s.pos+l])
	s.pos += l

	s.field = Field{Type: typ, Value: val}
	return true
}

// Field returns the field read by the last successful Next.
func (s *Scanner) Field() Field {
	return s.field
}

func (s *Scanner) Err() error {
	return s.err
}
