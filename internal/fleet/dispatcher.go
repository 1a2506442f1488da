// Package fleet probes every configured host at once and collects one
// outcome per host in configuration order.
package fleet

import (
	"mcenroe/internal/models"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout is the per-host deadline used when none is configured.
const DefaultTimeout = 300 * time.Millisecond

// Pinger runs a single ping session. *probe.Pinger satisfies it.
type Pinger interface {
	Ping(ip net.IP, timeout time.Duration) error
}

// Dispatcher fans a host list out to concurrent ping sessions.
type Dispatcher struct {
	Pinger  Pinger
	Timeout time.Duration // per host, identical for every session
	// Limit caps concurrently running sessions. Zero or less runs every
	// host at once.
	Limit  int
	Logger logrus.FieldLogger
}

// NewDispatcher returns a Dispatcher with the default timeout and no limit.
func NewDispatcher(p Pinger, logger logrus.FieldLogger) *Dispatcher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Dispatcher{
		Pinger:  p,
		Timeout: DefaultTimeout,
		Logger:  logger,
	}
}

// Run probes hosts concurrently and returns their outcomes in the same
// order once every session has finished. A failing host never affects
// the others.
func (d *Dispatcher) Run(hosts []models.Host) []models.Outcome {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	outcomes := make([]models.Outcome, len(hosts))
	var g errgroup.Group
	if d.Limit > 0 {
		g.SetLimit(d.Limit)
	}

	start := time.Now()
	for i, host := range hosts {
		i, host := i, host
		g.Go(func() error {
			// each session owns exactly one slot
			outcomes[i] = d.probe(host, timeout)
			return nil
		})
	}
	_ = g.Wait()

	d.Logger.WithFields(logrus.Fields{
		"hosts":   len(hosts),
		"failed":  len(Failed(outcomes)),
		"elapsed": time.Since(start),
	}).Debug("dispatch finished")
	return outcomes
}

func (d *Dispatcher) probe(host models.Host, timeout time.Duration) models.Outcome {
	out := models.Outcome{Name: host.Name, IP: host.IP, Success: true}

	if err := d.Pinger.Ping(host.IP, timeout); err != nil {
		out.Success = false
		out.Message = "connection failed: " + err.Error()
		d.Logger.WithFields(logrus.Fields{
			"host": host.Name,
			"ip":   host.IP.String(),
		}).WithError(err).Info("host unreachable")
	}
	return out
}

// Failed returns the unsuccessful outcomes, keeping their order.
func Failed(outcomes []models.Outcome) []models.Outcome {
	var failed []models.Outcome
	for _, o := range outcomes {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}
