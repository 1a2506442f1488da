package probe

import (
	"errors"
	"net"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// Conn is an ICMP endpoint owned by exactly one session.
type Conn interface {
	SetTTL(ttl int) error
	SetSendTimeout(d time.Duration) error
	SetReadTimeout(d time.Duration) error
	SendTo(b []byte, dst net.IP) (int, error)
	Read(b []byte) (int, error)
	Close() error
}

// Listener opens a Conn on network, "udp4" or "ip4:icmp".
type Listener func(network string) (Conn, error)

type packetConn struct {
	c   *icmp.PacketConn
	udp bool // datagram ICMP endpoints address peers with *net.UDPAddr
}

// Listen opens an ICMP endpoint on all local IPv4 addresses.
func Listen(network string) (Conn, error) {
	c, err := icmp.ListenPacket(network, "0.0.0.0")
	if err != nil {
		return nil, err
	}
	_, udp := c.LocalAddr().(*net.UDPAddr)
	return &packetConn{c: c, udp: udp}, nil
}

func (pc *packetConn) SetTTL(ttl int) error {
	var p *ipv4.PacketConn = pc.c.IPv4PacketConn()
	if p == nil {
		return errors.New("not an IPv4 endpoint")
	}
	return p.SetTTL(ttl)
}

func (pc *packetConn) SetSendTimeout(d time.Duration) error {
	return pc.c.SetWriteDeadline(deadline(d))
}

func (pc *packetConn) SetReadTimeout(d time.Duration) error {
	return pc.c.SetReadDeadline(deadline(d))
}

func (pc *packetConn) SendTo(b []byte, dst net.IP) (int, error) {
	var addr net.Addr = &net.IPAddr{IP: dst}
	if pc.udp {
		addr = &net.UDPAddr{IP: dst}
	}
	return pc.c.WriteTo(b, addr)
}

func (pc *packetConn) Read(b []byte) (int, error) {
	n, _, err := pc.c.ReadFrom(b)
	return n, err
}

func (pc *packetConn) Close() error {
	return pc.c.Close()
}

// deadline turns a timeout into an absolute deadline; d <= 0 clears it.
func deadline(d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}
	return time.Now().Add(d)
}
