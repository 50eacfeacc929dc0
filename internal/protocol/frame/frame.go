// Package frame reads and writes protocol messages on byte streams. A header
// is read first; its body and footer lengths say how many more bytes belong
// to the message.
package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/folkways/internal/protocol"
)

var (
	ErrShortHeader    = errors.New("frame: short header")
	ErrShortMessage   = errors.New("frame: short message")
	ErrBodyTooLarge   = errors.New("frame: body too large")
	ErrFooterTooLarge = errors.New("frame: footer too large")
)

// Limits bounds the body and footer sizes accepted on read and write.
type Limits struct {
	MaxBodyBytes   uint32
	MaxFooterBytes uint16
}

// DefaultLimits uses the protocol's advisory ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxBodyBytes:   protocol.MaxBodySize,
		MaxFooterBytes: protocol.MaxFooterSize,
	}
}

// Check rejects a header whose declared lengths exceed the limits.
func (l Limits) Check(h *protocol.Header) error {
	if h.BodyLen > l.MaxBodyBytes {
		return fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, h.BodyLen, l.MaxBodyBytes)
	}
	if h.FooterLen > l.MaxFooterBytes {
		return fmt.Errorf("%w: %d > %d", ErrFooterTooLarge, h.FooterLen, l.MaxFooterBytes)
	}
	return nil
}

// ReadMessage reads exactly one message from r. It returns io.EOF when r is
// exhausted before any header byte.
func ReadMessage(r io.Reader, limits Limits) (*protocol.Message, error) {
	head := make([]byte, protocol.HeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortHeader
		}
		return nil, err
	}

	h, err := protocol.DecodeHeader(head)
	if err != nil {
		return nil, err
	}
	if err := limits.Check(h); err != nil {
		return nil, err
	}

	buf := make([]byte, protocol.MessageLen(h))
	copy(buf, head)
	if _, err := io.ReadFull(r, buf[protocol.HeaderSize:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortMessage
		}
		return nil, err
	}
	return protocol.DecodeMessage(buf)
}

// WriteMessage enforces limits on msg, then writes its encoding to w. The
// message is written as-is; call msg.Validate first for a guaranteed-valid
// wire message.
func WriteMessage(w io.Writer, msg *protocol.Message, limits Limits) error {
	if msg == nil || msg.Header == nil {
		return errors.New("frame: nil message")
	}
	if uint64(len(msg.Body)) > uint64(limits.MaxBodyBytes) {
		return fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, len(msg.Body), limits.MaxBodyBytes)
	}
	if msg.Footer != nil && msg.Footer.EncodedLen() > int(limits.MaxFooterBytes) {
		return fmt.Errorf("%w: %d > %d", ErrFooterTooLarge, msg.Footer.EncodedLen(), limits.MaxFooterBytes)
	}
	_, err := w.Write(msg.Encode())
	return err
}

// ReadAll reads messages until r is exhausted, passing each to fn. It stops
// at the first read or callback error.
func ReadAll(r io.Reader, limits Limits, fn func(*protocol.Message) error) error {
	for {
		msg, err := ReadMessage(r, limits)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(msg); err != nil {
			return err
		}
	}
}

// DecodeAll decodes back-to-back messages held in one buffer. Errors are
// prefixed with the index of the failing message.
func DecodeAll(raw []byte, limits Limits) ([]*protocol.Message, error) {
	out := make([]*protocol.Message, 0, 1)
	for len(raw) > 0 {
		h, err := protocol.DecodeHeader(raw)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", len(out), err)
		}
		if err := limits.Check(h); err != nil {
			return nil, fmt.Errorf("message %d: %w", len(out), err)
		}
		msg, err := protocol.DecodeMessage(raw)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", len(out), err)
		}
		out = append(out, msg)
		raw = raw[protocol.MessageLen(msg.Header):]
	}
	return out, nil
}
