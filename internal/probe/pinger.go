// Package probe sends one ICMP echo request to a host and waits for the
// matching reply.
package probe

import (
	"bytes"
	"fmt"
	"mcenroe/internal/icmpv4"
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// The token, not these, identifies a session's reply. Datagram ICMP
	// endpoints rewrite the identifier anyway.
	echoID  = 1
	echoSeq = 1

	readBufferSize = 2048
)

// Config controls how a Pinger talks to the network.
type Config struct {
	// Network is "udp4" (unprivileged datagram ICMP) or "ip4:icmp" (raw).
	// Defaults to "udp4".
	Network string
	// TTL of the outbound request. Defaults to 64.
	TTL int
	// PollInterval bounds each socket read, so the session deadline is
	// rechecked at least this often. Defaults to 100ms.
	PollInterval time.Duration
	// VerifyChecksum drops replies whose checksum does not verify.
	VerifyChecksum bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Network:      "udp4",
		TTL:          64,
		PollInterval: 100 * time.Millisecond,
	}
}

func applyDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Network == "" {
		cfg.Network = def.Network
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	return cfg
}

// Pinger runs ping sessions. It holds no per-session state and may be
// shared by concurrent callers.
type Pinger struct {
	Config Config
	Listen Listener
	Logger logrus.FieldLogger
}

// NewPinger returns a Pinger using the real ICMP socket.
func NewPinger(cfg Config, logger logrus.FieldLogger) *Pinger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pinger{
		Config: applyDefaults(cfg),
		Listen: Listen,
		Logger: logger,
	}
}

// Ping sends one echo request to ip and waits up to timeout for the reply
// carrying the same token. It returns nil on a match, ErrTimeout when the
// deadline passes, or a *TransportError when the socket fails.
func (p *Pinger) Ping(ip net.IP, timeout time.Duration) error {
	start := time.Now()

	dst := ip.To4()
	if dst == nil {
		return &TransportError{Op: "address", Err: fmt.Errorf("%v is not an IPv4 address", ip)}
	}
	log := p.Logger.WithField("ip", dst.String())

	token := NewToken()
	req := icmpv4.EchoRequest{ID: echoID, Seq: echoSeq, Payload: token}
	var out [icmpv4.HeaderSize + TokenSize]byte
	n, err := req.Encode(out[:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	conn, err := p.Listen(p.Config.Network)
	if err != nil {
		return &TransportError{Op: "listen", Err: err}
	}
	defer conn.Close()

	if err := conn.SetTTL(p.Config.TTL); err != nil {
		return &TransportError{Op: "set ttl", Err: err}
	}
	if err := conn.SetSendTimeout(timeout); err != nil {
		return &TransportError{Op: "set send timeout", Err: err}
	}
	if _, err := conn.SendTo(out[:n], dst); err != nil {
		return &TransportError{Op: "send", Err: err}
	}
	log.WithField("state", "sent").Debug("echo request sent")

	deadline := start.Add(timeout)
	buf := make([]byte, readBufferSize)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			log.WithField("state", "timed out").Debug("no matching reply")
			return ErrTimeout
		}

		if err := conn.SetReadTimeout(min(p.Config.PollInterval, remaining)); err != nil {
			return &TransportError{Op: "set read timeout", Err: err}
		}
		n, err := conn.Read(buf)
		if err != nil {
			if isTimeout(err) {
				continue
			}
			return &TransportError{Op: "read", Err: err}
		}

		if p.matches(buf[:n], token, log) {
			log.WithFields(logrus.Fields{
				"state":   "matched",
				"elapsed": time.Since(start),
			}).Debug("echo reply matched")
			return nil
		}
	}
}

// matches reports whether b is an echo reply carrying token. b is only
// inspected, never retained.
func (p *Pinger) matches(b, token []byte, log logrus.FieldLogger) bool {
	reply, err := icmpv4.DecodeEchoReply(b)
	if err != nil {
		log.WithField("packet", icmpv4.Describe(b)).Debug("discarding foreign icmp")
		return false
	}
	if p.Config.VerifyChecksum && !icmpv4.VerifyChecksum(b) {
		log.Debug("discarding echo reply with bad checksum")
		return false
	}
	if !bytes.Equal(reply.Payload, token) {
		log.WithField("seq", reply.Seq).Debug("discarding unrelated echo reply")
		return false
	}
	return true
}
