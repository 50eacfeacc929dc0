package protocol

import (
	"errors"

	"github.com/danmuck/folkways/internal/protocol/tlv"
)

// Footer field type tags. The set is closed: unknown tags are rejected.
const (
	footerFieldTopic uint8 = 0x01
)

// Footer is the optional TLV block appended after the body when the header
// carries FlagHasFooter.
type Footer struct {
	topic    string
	hasTopic bool
}

func NewFooter() *Footer {
	return &Footer{}
}

func (f *Footer) WithTopic(topic string) *Footer {
	f.topic = topic
	f.hasTopic = true
	return f
}

// Topic returns the topic and whether one is set.
func (f *Footer) Topic() (string, bool) {
	return f.topic, f.hasTopic
}

// Encode returns the TLV encoding. An empty topic is omitted, so a footer
// with no non-empty fields encodes to zero bytes.
func (f *Footer) Encode() []byte {
	return tlv.EncodeFields(f.fields())
}

func (f *Footer) fields() []tlv.Field {
	fields := make([]tlv.Field, 0, 1)
	if f.hasTopic && f.topic != "" {
		fields = append(fields, tlv.Field{Type: footerFieldTopic, Value: []byte(f.topic)})
	}
	return fields
}

// EncodedLen is len(f.Encode()).
func (f *Footer) EncodedLen() int {
	return len(f.Encode())
}

// DecodeFooter parses a TLV footer. An empty buffer is a valid footer with
// no fields set.
func DecodeFooter(b []byte) (*Footer, error) {
	f := NewFooter()
	sc := tlv.NewScanner(b)
	for sc.Next() {
		field := sc.Field()
		switch field.Type {
		case footerFieldTopic:
			f.topic = decodeText(field.Value)
			f.hasTopic = true
		default:
			return nil, protocolErrorf("Unknown footer field type: %d", field.Type)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, footerScanError(err)
	}
	return f, nil
}

func footerScanError(err error) error {
	switch {
	case errors.Is(err, tlv.ErrMissingType):
		return protocolErrorf("Footer truncated: missing type")
	case errors.Is(err, tlv.ErrMissingLength):
		return protocolErrorf("Footer truncated: missing length")
	case errors.Is(err, tlv.ErrValueTooLong):
		return protocolErrorf("Footer truncated: value too long")
	default:
		return protocolErrorf("Footer invalid: %v", err)
	}
}
