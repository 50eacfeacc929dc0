// Package protocol owns the Folkways binary wire contract.
//
// Ownership boundary:
// - protocol constants, message type and priority enumerations
// - header flags bitset
// - fixed 64-byte header layout and validation
// - TLV footer encode/decode
// - message assembly, disassembly and cross-structure validation
//
// The codec performs no I/O and never logs. Stream framing lives in the
// frame subpackage.
package protocol
