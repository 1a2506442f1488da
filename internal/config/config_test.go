package config

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
timeout: 500ms
poll_interval: 50ms
ttl: 32
network: ip4:icmp
verify_checksum: true
concurrency: 4
servers:
  - name: router
    ip: 192.168.1.1
  - name: nas
    host: nas.lan
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 50*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 32, cfg.TTL)
	assert.Equal(t, "ip4:icmp", cfg.Network)
	assert.True(t, cfg.VerifyChecksum)
	assert.Equal(t, 4, cfg.Concurrency)
	require.Len(t, cfg.Servers, 2)
	assert.Equal(t, Server{Name: "router", IP: "192.168.1.1"}, cfg.Servers[0])
	assert.Equal(t, Server{Name: "nas", Host: "nas.lan"}, cfg.Servers[1])

	pc := cfg.Probe()
	assert.Equal(t, "ip4:icmp", pc.Network)
	assert.Equal(t, 32, pc.TTL)
	assert.Equal(t, 50*time.Millisecond, pc.PollInterval)
	assert.True(t, pc.VerifyChecksum)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Parse([]byte("servers:\n  - name: a\n    ip: 10.0.0.1\n"))
	require.NoError(t, err)

	assert.Equal(t, 300*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 64, cfg.TTL)
	assert.Equal(t, "udp4", cfg.Network)
	assert.False(t, cfg.VerifyChecksum)
	assert.Zero(t, cfg.Concurrency)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no servers", "timeout: 1s\n", "no servers configured"},
		{"missing name", "servers:\n  - ip: 10.0.0.1\n", "missing name"},
		{"bad ip", "servers:\n  - name: a\n    ip: 10.0.0.300\n", "invalid IP"},
		{"ipv6", "servers:\n  - name: a\n    ip: \"2001:db8::1\"\n", "not an IPv4 address"},
		{"neither", "servers:\n  - name: a\n", "exactly one of ip and host"},
		{"both", "servers:\n  - name: a\n    ip: 10.0.0.1\n    host: a.lan\n", "exactly one of ip and host"},
		{"unknown field", "servers:\n  - name: a\n    ip: 10.0.0.1\n    port: 22\n", "could not parse config"},
		{"bad network", "network: tcp\nservers:\n  - name: a\n    ip: 10.0.0.1\n", "unsupported network"},
		{"poll not shorter", "timeout: 100ms\npoll_interval: 100ms\nservers:\n  - name: a\n    ip: 10.0.0.1\n", "must be shorter"},
		{"ttl", "ttl: 300\nservers:\n  - name: a\n    ip: 10.0.0.1\n", "ttl 300 out of range"},
		{"bad duration", "timeout: soon\nservers:\n  - name: a\n    ip: 10.0.0.1\n", "could not parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFind(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvVar, "/etc/mcenroe.yaml")
		p, err := Find()
		require.NoError(t, err)
		assert.Equal(t, "/etc/mcenroe.yaml", p)
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv(EnvVar, "")
		t.Setenv("HOME", "/home/someone")
		p, err := Find()
		require.NoError(t, err)
		assert.Equal(t, "/home/someone/.mcenroe.yaml", p)
	})

	t.Run("nothing", func(t *testing.T) {
		t.Setenv(EnvVar, "")
		t.Setenv("HOME", "")
		_, err := Find()
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestHosts(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	lookup := func(host string) ([]net.IP, error) {
		assert.Equal(t, "nas.lan", host)
		return []net.IP{net.ParseIP("fd00::2"), net.ParseIP("192.168.1.20")}, nil
	}
	hosts, err := cfg.Hosts(lookup)
	require.NoError(t, err)

	require.Len(t, hosts, 2)
	assert.Equal(t, "router", hosts[0].Name)
	assert.Equal(t, net.IP{192, 168, 1, 1}, hosts[0].IP)
	assert.Equal(t, "nas", hosts[1].Name)
	assert.Equal(t, net.IP{192, 168, 1, 20}, hosts[1].IP)
}

func TestHostsResolveFailure(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	_, err = cfg.Hosts(func(string) ([]net.IP, error) {
		return nil, errors.New("no such host")
	})
	assert.EqualError(t, err, "server nas: no such host")

	_, err = cfg.Hosts(func(string) ([]net.IP, error) {
		return []net.IP{net.ParseIP("fd00::2")}, nil
	})
	assert.EqualError(t, err, "server nas: no A record for nas.lan")
}
