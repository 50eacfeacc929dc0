package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsFromBitsMasksToByte(t *testing.T) {
	assert.Equal(t, uint8(0xFF), FlagsFromBits(-1).Bits())
	assert.Equal(t, uint8(0x00), FlagsFromBits(256).Bits())
	assert.Equal(t, uint8(0x2C), FlagsFromBits(0x12C).Bits())
	assert.Equal(t, uint8(0x80), FlagsFromBits(-128).Bits())
}

func TestFlagsOrAndDoNotMutate(t *testing.T) {
	a := FlagHasFooter
	b := FlagCompressed
	union := a.Or(b)
	inter := union.And(b)

	assert.Equal(t, FlagHasFooter, a)
	assert.Equal(t, FlagCompressed, b)
	assert.Equal(t, uint8(0b11), union.Bits())
	assert.Equal(t, FlagCompressed, inter)
}

func TestFlagsContains(t *testing.T) {
	f := FlagHasFooter.Or(FlagCompressed)
	assert.True(t, f.Contains(FlagCompressed))
	assert.True(t, f.Contains(FlagHasFooter))
	assert.False(t, f.Contains(FlagRequiresAck))
	assert.True(t, f.Contains(FlagNone))

	for x := 0; x <= 0xFF; x += 7 {
		fx := FlagsFromBits(x)
		require.True(t, fx.Contains(fx))
		for y := 0; y <= 0xFF; y += 13 {
			fy := FlagsFromBits(y)
			if fx.Contains(fy) {
				require.True(t, fx.Or(FlagRetry).Contains(fy))
			}
		}
	}
}

func TestFlagsInsertRemove(t *testing.T) {
	var f MessageFlags
	f.Insert(FlagRequiresAck)
	f.Insert(FlagRetry)
	assert.Equal(t, uint8(0b0001_1000), f.Bits())

	f.Remove(FlagRequiresAck)
	assert.Equal(t, FlagRetry, f)
	assert.Equal(t, uint8(0b0000_1000), FlagRequiresAck.Bits())
}

func TestFlagsNames(t *testing.T) {
	f := FlagHasFooter.Or(FlagEncrypted).Or(FlagReserved7)
	assert.Equal(t, []string{"has_footer", "encrypted", "reserved_7"}, f.Names())
	assert.Equal(t, "has_footer|encrypted|reserved_7", f.String())
	assert.Equal(t, "none", FlagNone.String())

	got, ok := ParseFlag("requires_ack")
	require.True(t, ok)
	assert.Equal(t, FlagRequiresAck, got)
	_, ok = ParseFlag("sticky")
	assert.False(t, ok)
}
