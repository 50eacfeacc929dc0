package protocol

// Magic identifies the protocol at offset 0 of every header ("FOLK").
var Magic = [4]byte{0x46, 0x4F, 0x4C, 0x4B}

const (
	// Version is the only protocol version this codec accepts.
	Version uint8 = 1

	// HeaderSize is the fixed on-wire header length.
	HeaderSize = 64

	// MaxBodySize and MaxFooterSize are advisory ceilings. The codec does not
	// enforce them; callers (see frame.Limits) must check before construction.
	MaxBodySize   = 30 * 1024
	MaxFooterSize = 2 * 1024
)

// Header field offsets.
const (
	offMagic     = 0
	offVersion   = 4
	offType      = 5
	offFlags     = 6
	offPriority  = 7
	offBodyLen   = 8
	offFooterLen = 12
	offReserved1 = 14
	offTimestamp = 16
	offChecksum  = 24
	offReserved2 = 28
	offReserved3 = 32
	offReserved4 = 40
	offPadding   = 48
)

// paddingSize spans offset 48 to the end of the header. The named fields
// account for 58 bytes; the trailing 6 are folded into padding so every
// header byte round-trips.
const paddingSize = HeaderSize - offPadding
