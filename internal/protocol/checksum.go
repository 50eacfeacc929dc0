package protocol

import "hash/crc32"

// CRC32Compute returns the CRC-32/IEEE checksum of data.
func CRC32Compute(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

func CRC32Verify(data []byte, expected uint32) bool {
	return CRC32Compute(data) == expected
}
