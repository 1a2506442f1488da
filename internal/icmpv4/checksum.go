package icmpv4

// Checksum computes the RFC 1071 Internet checksum of b.
// A trailing odd byte is padded with a zero low byte.
func Checksum(b []byte) uint16 {
	var sum uint32

	for i := 0; i+1 < len(b); i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	if len(b)%2 == 1 {
		sum += uint32(b[len(b)-1]) << 8
	}

	// Fold carries back in until none remain
	for sum>>16 != 0 {
		sum = (sum & 0xffff) + (sum >> 16)
	}

	return ^uint16(sum)
}

// VerifyChecksum reports whether b, checksum field included, sums to zero.
func VerifyChecksum(b []byte) bool {
	return len(b) >= HeaderSize && Checksum(b) == 0
}
