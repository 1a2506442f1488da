// Package config locates and parses the host list.
//
// The file is YAML:
//
//	timeout: 300ms
//	servers:
//	  - name: router
//	    ip: 192.168.1.1
//	  - name: nas
//	    host: nas.lan
package config

import (
	"bytes"
	"errors"
	"fmt"
	"mcenroe/internal/fleet"
	"mcenroe/internal/models"
	"mcenroe/internal/probe"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvVar overrides the config file location.
	EnvVar = "MCENROE_CONFIG"
	// FileName is looked up in the home directory.
	FileName = ".mcenroe.yaml"
)

// ErrNotFound is returned by Find when no location can be determined.
var ErrNotFound = errors.New("failed to find config file")

// Server is one entry of the servers list. Exactly one of IP and Host
// must be set.
type Server struct {
	Name string `yaml:"name"`
	IP   string `yaml:"ip"`
	Host string `yaml:"host"`
}

// Settings tune probing. Zero values are replaced with defaults.
type Settings struct {
	Timeout        time.Duration `yaml:"timeout"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	TTL            int           `yaml:"ttl"`
	Network        string        `yaml:"network"`
	VerifyChecksum bool          `yaml:"verify_checksum"`
	Concurrency    int           `yaml:"concurrency"`
}

// Config is the parsed config file.
type Config struct {
	Settings `yaml:",inline"`
	Servers  []Server `yaml:"servers"`
}

// Find returns the config path: $MCENROE_CONFIG if set, otherwise
// ~/.mcenroe.yaml.
func Find() (string, error) {
	if p := os.Getenv(EnvVar); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrNotFound
	}
	return filepath.Join(home, FileName), nil
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}

	cfg.Settings = applyDefaults(cfg.Settings)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(s Settings) Settings {
	def := probe.DefaultConfig()
	if s.Timeout <= 0 {
		s.Timeout = fleet.DefaultTimeout
	}
	if s.PollInterval <= 0 {
		s.PollInterval = def.PollInterval
	}
	if s.TTL <= 0 {
		s.TTL = def.TTL
	}
	if s.Network == "" {
		s.Network = def.Network
	}
	if s.Concurrency < 0 {
		s.Concurrency = 0
	}
	return s
}

func (c *Config) validate() error {
	switch c.Network {
	case "udp4", "ip4:icmp":
	default:
		return fmt.Errorf("unsupported network %q, should be oneof: udp4|ip4:icmp", c.Network)
	}
	if c.PollInterval >= c.Timeout {
		return fmt.Errorf("poll_interval %s must be shorter than timeout %s", c.PollInterval, c.Timeout)
	}
	if c.TTL > 255 {
		return fmt.Errorf("ttl %d out of range", c.TTL)
	}

	if len(c.Servers) == 0 {
		return errors.New("no servers configured")
	}
	for i, s := range c.Servers {
		if s.Name == "" {
			return fmt.Errorf("server %d: missing name", i)
		}
		if (s.IP == "") == (s.Host == "") {
			return fmt.Errorf("server %s: exactly one of ip and host must be set", s.Name)
		}
		if s.IP != "" {
			if _, err := parseIPv4(s.IP); err != nil {
				return fmt.Errorf("server %s: %w", s.Name, err)
			}
		}
	}
	return nil
}

// Probe returns the session configuration.
func (c *Config) Probe() probe.Config {
	return probe.Config{
		Network:        c.Network,
		TTL:            c.TTL,
		PollInterval:   c.PollInterval,
		VerifyChecksum: c.VerifyChecksum,
	}
}

// Hosts resolves the servers list, in order. Entries given by host name
// take the first IPv4 address lookup returns; nil lookup means
// net.LookupIP.
func (c *Config) Hosts(lookup func(host string) ([]net.IP, error)) ([]models.Host, error) {
	if lookup == nil {
		lookup = net.LookupIP
	}

	hosts := make([]models.Host, 0, len(c.Servers))
	for _, s := range c.Servers {
		var ip net.IP
		var err error
		if s.IP != "" {
			ip, err = parseIPv4(s.IP)
		} else {
			ip, err = resolveIPv4(lookup, s.Host)
		}
		if err != nil {
			return nil, fmt.Errorf("server %s: %w", s.Name, err)
		}
		hosts = append(hosts, models.Host{Name: s.Name, IP: ip})
	}
	return hosts, nil
}

func parseIPv4(s string) (net.IP, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP: %s", s)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("not an IPv4 address: %s", s)
	}
	return ip4, nil
}

func resolveIPv4(lookup func(string) ([]net.IP, error), host string) (net.IP, error) {
	ips, err := lookup(host)
	if err != nil {
		return nil, err
	}
	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
	}
	return nil, fmt.Errorf("no A record for %s", host)
}
