package models

import "net"

// Host is a named IPv4 target to be probed.
type Host struct {
	Name string
	IP   net.IP // always 4 bytes
}

// Outcome is the result of probing a single Host once.
type Outcome struct {
	Name    string
	IP      net.IP
	Success bool
	Message string // empty on success
}
