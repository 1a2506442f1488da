package icmpv4

import (
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Describe renders any ICMPv4 message for logs, e.g.
// "DestinationUnreachable(Host) id=0 seq=0 len=28".
func Describe(b []byte) string {
	var m layers.ICMPv4
	if err := m.DecodeFromBytes(b, gopacket.NilDecodeFeedback); err != nil {
		return "malformed"
	}
	return fmt.Sprintf("%s id=%d seq=%d len=%d", m.TypeCode, m.Id, m.Seq, len(m.Payload))
}
