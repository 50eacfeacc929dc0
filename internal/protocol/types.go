package protocol

import (
	"fmt"
	"strings"
)

// MessageType discriminates protocol operations.
type MessageType uint8

const (
	MessageAuth        MessageType = 0x01
	MessagePublish     MessageType = 0x02
	MessageSubscribe   MessageType = 0x03
	MessageUnsubscribe MessageType = 0x04
	MessageAck         MessageType = 0x05
	MessageNack        MessageType = 0x06
	MessagePing        MessageType = 0x07
	MessagePong        MessageType = 0x08
	MessageDisconnect  MessageType = 0x09
	MessageError       MessageType = 0x0E
)

// messageTypes is the closed set of valid discriminators, in wire order.
var messageTypes = []MessageType{
	MessageAuth,
	MessagePublish,
	MessageSubscribe,
	MessageUnsubscribe,
	MessageAck,
	MessageNack,
	MessagePing,
	MessagePong,
	MessageDisconnect,
	MessageError,
}

var messageTypeNames = map[MessageType]string{
	MessageAuth:        "auth",
	MessagePublish:     "publish",
	MessageSubscribe:   "subscribe",
	MessageUnsubscribe: "unsubscribe",
	MessageAck:         "ack",
	MessageNack:        "nack",
	MessagePing:        "ping",
	MessagePong:        "pong",
	MessageDisconnect:  "disconnect",
	MessageError:       "error",
}

// AllMessageTypes returns every valid message type in wire order.
func AllMessageTypes() []MessageType {
	out := make([]MessageType, len(messageTypes))
	copy(out, messageTypes)
	return out
}

// MessageTypeFromU8 narrows a raw type byte. ok is false for bytes outside
// the closed set.
func MessageTypeFromU8(v uint8) (MessageType, bool) {
	t := MessageType(v)
	if _, ok := messageTypeNames[t]; !ok {
		return 0, false
	}
	return t, true
}

// ParseMessageType resolves a case-insensitive name ("publish") to its type.
func ParseMessageType(name string) (MessageType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range messageTypes {
		if messageTypeNames[t] == name {
			return t, true
		}
	}
	return 0, false
}

// Valid reports whether t is a member of the closed set.
func (t MessageType) Valid() bool {
	_, ok := messageTypeNames[t]
	return ok
}

// RequiresResponse is true exactly for Ping, Auth and Subscribe.
func (t MessageType) RequiresResponse() bool {
	switch t {
	case MessagePing, MessageAuth, MessageSubscribe:
		return true
	default:
		return false
	}
}

// IsControl is true exactly for Ping, Pong and Disconnect.
func (t MessageType) IsControl() bool {
	switch t {
	case MessagePing, MessagePong, MessageDisconnect:
		return true
	default:
		return false
	}
}

func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%02x)", uint8(t))
}

// Priority is a 2-bit processing priority.
type Priority uint8

const (
	PriorityLow      Priority = 0
	PriorityNormal   Priority = 1
	PriorityHigh     Priority = 2
	PriorityCritical Priority = 3
)

const priorityMask = 0b11

var priorityNames = [...]string{"low", "normal", "high", "critical"}

// PriorityFromU8 masks v to its low two bits. It never fails.
func PriorityFromU8(v uint8) Priority {
	return Priority(v & priorityMask)
}

// ParsePriority resolves a case-insensitive name ("high") to its priority.
func ParsePriority(name string) (Priority, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range priorityNames {
		if n == name {
			return Priority(i), true
		}
	}
	return 0, false
}

func (p Priority) String() string {
	return priorityNames[p&priorityMask]
}
