package inspect

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/folkways/internal/protocol"
	"github.com/samber/lo"
)

var ErrInvalidRequest = errors.New("inspect: invalid request")

// EncodeRequest describes a message to build. Body and BodyHex are
// exclusive.
type EncodeRequest struct {
	Type      string   `json:"type" binding:"required"`
	Body      string   `json:"body"`
	BodyHex   string   `json:"body_hex"`
	Priority  string   `json:"priority"`
	Flags     []string `json:"flags"`
	Topic     *string  `json:"topic"`
	Checksum  bool     `json:"checksum"`
	Timestamp *uint64  `json:"timestamp"`
}

// EncodeResponse is the hex encoding of a built message.
type EncodeResponse struct {
	Hex  string      `json:"hex"`
	Size int         `json:"size"`
	View MessageView `json:"view"`
}

// DecodeRequest carries a hex-encoded wire message.
type DecodeRequest struct {
	Hex string `json:"hex" binding:"required"`
}

// Build turns req into a message, applying builders in the order priority,
// flags, timestamp, footer, checksum.
func (req EncodeRequest) Build() (*protocol.Message, error) {
	mt, ok := protocol.ParseMessageType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: unknown type %q (want one of %s)", ErrInvalidRequest, req.Type, strings.Join(typeNames(), ", "))
	}
	if req.Body != "" && req.BodyHex != "" {
		return nil, fmt.Errorf("%w: body and body_hex are exclusive", ErrInvalidRequest)
	}
	body := []byte(req.Body)
	if req.BodyHex != "" {
		raw, err := DecodeHex(req.BodyHex)
		if err != nil {
			return nil, err
		}
		body = raw
	}

	msg := protocol.NewMessage(mt, body)
	if req.Priority != "" {
		p, ok := protocol.ParsePriority(req.Priority)
		if !ok {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidRequest, req.Priority)
		}
		msg.WithPriority(p)
	}
	if len(req.Flags) > 0 {
		flags, err := ParseFlags(req.Flags)
		if err != nil {
			return nil, err
		}
		msg.WithFlags(flags)
	}
	if req.Timestamp != nil {
		msg.WithTimestamp(*req.Timestamp)
	}
	if req.Topic != nil {
		msg.WithFooter(protocol.NewFooter().WithTopic(*req.Topic))
	}
	if req.Checksum {
		msg.WithChecksum()
	}
	return msg, nil
}

// ParseFlags ORs named flags together. has_footer is rejected; it is set by
// attaching a footer.
func ParseFlags(names []string) (protocol.MessageFlags, error) {
	var flags protocol.MessageFlags
	for _, name := range names {
		f, ok := protocol.ParseFlag(name)
		if !ok {
			return 0, fmt.Errorf("%w: unknown flag %q", ErrInvalidRequest, name)
		}
		if f == protocol.FlagHasFooter {
			return 0, fmt.Errorf("%w: has_footer is implied by topic", ErrInvalidRequest)
		}
		flags.Insert(f)
	}
	return flags, nil
}

// DecodeHex accepts hex with optional 0x prefix and whitespace.
func DecodeHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return raw, nil
}

func typeNames() []string {
	return lo.Map(protocol.AllMessageTypes(), func(mt protocol.MessageType, _ int) string {
		return mt.String()
	})
}

func encodeHex(b []byte) string {
	return hex.EncodeToString(b)
}
