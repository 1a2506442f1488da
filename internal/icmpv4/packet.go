// Package icmpv4 encodes ICMP echo requests and decodes echo replies.
//
// Wire layout of every message handled here:
//
//	0      1      2             4             6             8
//	+------+------+-------------+-------------+-------------+---------
//	| type | code |  checksum   | identifier  |  sequence   | payload
//	+------+------+-------------+-------------+-------------+---------
//
// All multi-byte fields are big-endian.
package icmpv4

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the fixed size of an ICMP echo header.
const HeaderSize = 8

// ICMP type and code values for the echo exchange.
const (
	TypeEchoReply   uint8 = 0
	TypeEchoRequest uint8 = 8
	CodeEcho        uint8 = 0
)

var (
	// ErrBufferTooSmall is returned by Encode when the destination cannot
	// hold header and payload.
	ErrBufferTooSmall = errors.New("icmpv4: buffer too small for packet")

	// ErrDecode is the parent of every decode failure. Callers polling a
	// shared socket treat anything matching it as foreign traffic.
	ErrDecode = errors.New("icmpv4: decode failed")

	ErrTooShort         = fmt.Errorf("%w: shorter than header", ErrDecode)
	ErrUnexpectedPacket = fmt.Errorf("%w: not an echo reply", ErrDecode)
)

// EchoRequest is an outbound echo message.
type EchoRequest struct {
	ID      uint16
	Seq     uint16
	Payload []byte
}

// Len returns the encoded size of r.
func (r EchoRequest) Len() int {
	return HeaderSize + len(r.Payload)
}

// Encode writes r into b and returns the number of bytes written.
// The checksum covers header and payload and is computed with its own
// field zeroed.
func (r EchoRequest) Encode(b []byte) (int, error) {
	n := r.Len()
	if len(b) < n {
		return 0, ErrBufferTooSmall
	}

	b[0] = TypeEchoRequest
	b[1] = CodeEcho
	b[2], b[3] = 0, 0
	binary.BigEndian.PutUint16(b[4:6], r.ID)
	binary.BigEndian.PutUint16(b[6:8], r.Seq)
	copy(b[HeaderSize:n], r.Payload)

	binary.BigEndian.PutUint16(b[2:4], Checksum(b[:n]))
	return n, nil
}

// EchoReply is a decoded echo reply. Payload aliases the buffer passed to
// DecodeEchoReply and is only valid until that buffer is reused.
type EchoReply struct {
	ID      uint16
	Seq     uint16
	Payload []byte
}

// DecodeEchoReply parses b as an echo reply. The checksum is not verified;
// see VerifyChecksum.
func DecodeEchoReply(b []byte) (EchoReply, error) {
	if len(b) < HeaderSize {
		return EchoReply{}, ErrTooShort
	}
	if b[0] != TypeEchoReply || b[1] != CodeEcho {
		return EchoReply{}, fmt.Errorf("%w (type %d, code %d)", ErrUnexpectedPacket, b[0], b[1])
	}

	return EchoReply{
		ID:      binary.BigEndian.Uint16(b[4:6]),
		Seq:     binary.BigEndian.Uint16(b[6:8]),
		Payload: b[HeaderSize:],
	}, nil
}
