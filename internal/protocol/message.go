package protocol

// Message is a complete wire message: header, body and optional footer.
//
// BodyLen and FooterLen in the header are snapshots taken by NewMessage and
// WithFooter. Encode writes them as stored and never re-derives them; only
// Validate checks them against Body and Footer.
type Message struct {
	Header *Header
	Body   []byte
	Footer *Footer
}

// NewMessage builds a message around body. The slice is kept by reference.
func NewMessage(t MessageType, body []byte) *Message {
	return &Message{
		Header: NewHeader(t, uint32(len(body))),
		Body:   body,
	}
}

// NewTextMessage builds a message whose body is the UTF-8 bytes of body.
func NewTextMessage(t MessageType, body string) *Message {
	return NewMessage(t, []byte(body))
}

func (m *Message) WithPriority(p Priority) *Message {
	m.Header.SetPriority(p)
	return m
}

func (m *Message) WithFlags(f MessageFlags) *Message {
	m.Header.SetFlags(f)
	return m
}

// WithFooter attaches footer, records its current encoded length and sets
// FlagHasFooter. Later changes to footer leave FooterLen stale.
func (m *Message) WithFooter(footer *Footer) *Message {
	m.Header.FooterLen = uint16(footer.EncodedLen())
	m.Header.FlagBits |= FlagHasFooter.Bits()
	m.Footer = footer
	return m
}

// WithChecksum stores the CRC32 of the current body.
func (m *Message) WithChecksum() *Message {
	m.Header.Checksum = CRC32Compute(m.Body)
	return m
}

func (m *Message) WithTimestamp(timestamp uint64) *Message {
	m.Header.Timestamp = timestamp
	return m
}

// SetBody replaces the body without touching BodyLen.
func (m *Message) SetBody(body []byte) {
	m.Body = body
}

// Validate runs header validation, then the body length, footer and
// checksum checks. A zero checksum means unchecked.
func (m *Message) Validate() error {
	if err := m.Header.Validate(); err != nil {
		return err
	}

	if uint64(len(m.Body)) != uint64(m.Header.BodyLen) {
		return protocolErrorf("Body length mismatch: expected %d, got %d", m.Header.BodyLen, len(m.Body))
	}

	if m.Header.HasFooter() && m.Footer == nil {
		return protocolErrorf("HAS_FOOTER flag set but footer is undefined")
	}
	if m.Footer != nil {
		footerLen := m.Footer.EncodedLen()
		if footerLen != int(m.Header.FooterLen) {
			return protocolErrorf("Footer length mismatch: expected %d, got %d", m.Header.FooterLen, footerLen)
		}
	}

	if m.Header.Checksum != 0 {
		computed := CRC32Compute(m.Body)
		if computed != m.Header.Checksum {
			return &ChecksumMismatchError{Expected: m.Header.Checksum, Actual: computed}
		}
	}
	return nil
}

// Encode concatenates header, body and footer. It does not validate.
func (m *Message) Encode() []byte {
	var footer []byte
	if m.Footer != nil {
		footer = m.Footer.Encode()
	}
	buf := make([]byte, HeaderSize+len(m.Body)+len(footer))
	m.Header.put(buf[:HeaderSize])
	copy(buf[HeaderSize:], m.Body)
	copy(buf[HeaderSize+len(m.Body):], footer)
	return buf
}

// TotalSize is the encoded length of m.
func (m *Message) TotalSize() int {
	size := HeaderSize + len(m.Body)
	if m.Footer != nil {
		size += m.Footer.EncodedLen()
	}
	return size
}

// MessageType returns the narrowed header type.
func (m *Message) MessageType() (MessageType, bool) {
	return m.Header.MessageType()
}

// DecodeMessage parses and fully validates one message from the start of b.
// Bytes past the declared header, body and footer lengths are ignored.
func DecodeMessage(b []byte) (*Message, error) {
	if len(b) < HeaderSize {
		return nil, &BufferTooSmallError{Expected: HeaderSize, Actual: len(b)}
	}

	header, err := DecodeHeader(b[:HeaderSize])
	if err != nil {
		return nil, err
	}

	expected := MessageLen(header)
	if len(b) < expected {
		return nil, &BufferTooSmallError{Expected: expected, Actual: len(b)}
	}

	bodyEnd := HeaderSize + int(header.BodyLen)
	body := make([]byte, header.BodyLen)
	copy(body, b[HeaderSize:bodyEnd])

	var footer *Footer
	if header.HasFooter() {
		footer, err = DecodeFooter(b[bodyEnd : bodyEnd+int(header.FooterLen)])
		if err != nil {
			return nil, err
		}
	}

	msg := &Message{Header: header, Body: body, Footer: footer}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

// MessageLen is the full on-wire length declared by h.
func MessageLen(h *Header) int {
	return HeaderSize + int(h.BodyLen) + int(h.FooterLen)
}

func (m *Message) MarshalBinary() ([]byte, error) {
	return m.Encode(), nil
}

func (m *Message) UnmarshalBinary(data []byte) error {
	decoded, err := DecodeMessage(data)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
