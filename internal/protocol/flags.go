package protocol

import "strings"

// MessageFlags is the 8-bit header attribute set. Values are plain bytes, so
// the named flags below are constants and cannot be mutated through
// Insert/Remove.
type MessageFlags uint8

const (
	FlagNone        MessageFlags = 0
	FlagHasFooter   MessageFlags = 0b0000_0001
	FlagCompressed  MessageFlags = 0b0000_0010
	FlagEncrypted   MessageFlags = 0b0000_0100
	FlagRequiresAck MessageFlags = 0b0000_1000
	FlagRetry       MessageFlags = 0b0001_0000
	FlagReserved5   MessageFlags = 0b0010_0000
	FlagReserved6   MessageFlags = 0b0100_0000
	FlagReserved7   MessageFlags = 0b1000_0000
)

var flagNames = []struct {
	flag MessageFlags
	name string
}{
	{FlagHasFooter, "has_footer"},
	{FlagCompressed, "compressed"},
	{FlagEncrypted, "encrypted"},
	{FlagRequiresAck, "requires_ack"},
	{FlagRetry, "retry"},
	{FlagReserved5, "reserved_5"},
	{FlagReserved6, "reserved_6"},
	{FlagReserved7, "reserved_7"},
}

// FlagsFromBits truncates bits to its low byte. Negative values are taken in
// two's complement, so -1 yields 0xFF.
func FlagsFromBits(bits int) MessageFlags {
	return MessageFlags(uint8(bits))
}

// ParseFlag resolves a flag name ("requires_ack") to its bit.
func ParseFlag(name string) (MessageFlags, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "none" {
		return FlagNone, true
	}
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, true
		}
	}
	return 0, false
}

func (f MessageFlags) Bits() uint8 {
	return uint8(f)
}

func (f MessageFlags) Or(other MessageFlags) MessageFlags {
	return f | other
}

func (f MessageFlags) And(other MessageFlags) MessageFlags {
	return f & other
}

// Contains reports whether every bit of other is set in f.
func (f MessageFlags) Contains(other MessageFlags) bool {
	return f&other == other
}

func (f *MessageFlags) Insert(other MessageFlags) {
	*f |= other
}

func (f *MessageFlags) Remove(other MessageFlags) {
	*f &^= other
}

// Names lists the set flags in bit order.
func (f MessageFlags) Names() []string {
	names := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if f.Contains(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

func (f MessageFlags) String() string {
	if f == FlagNone {
		return "none"
	}
	return strings.Join(f.Names(), "|")
}
