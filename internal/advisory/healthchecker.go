package advisory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/moodshot/moodshot/internal/health"
)

// AdvisoryHealthChecker monitors a provider's backend with periodic probes.
// Providers without a HealthPing (the static rotation) are always healthy.
type AdvisoryHealthChecker struct {
	provider     Provider
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

func NewAdvisoryHealthChecker(p Provider, log zerolog.Logger, probeTimeout time.Duration) *AdvisoryHealthChecker {
	hc := &AdvisoryHealthChecker{
		provider:     p,
		log:          log,
		probeTimeout: probeTimeout,
	}
	hc.healthy.Store(0)
	return hc
}

func (hc *AdvisoryHealthChecker) Name() string { return "advisory" }

func (hc *AdvisoryHealthChecker) IsHealthy() bool { return hc.healthy.Load() == 1 }

func (hc *AdvisoryHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		to := hc.probeTimeout
		if to <= 0 {
			to = 2 * time.Second
		}
		checkCtx, cancel := context.WithTimeout(ctx, to)
		defer cancel()

		if hc.probe(checkCtx) {
			hc.healthy.Store(1)
		} else {
			hc.healthy.Store(0)
		}
	}

	check()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

func (hc *AdvisoryHealthChecker) probe(ctx context.Context) bool {
	p, ok := hc.provider.(health.HealthPinger)
	if !ok {
		return true
	}
	if err := p.HealthPing(ctx); err != nil {
		hc.log.Error().Stack().
			Str("checker", hc.Name()).
			Err(err).
			Msg("advisory health check failed")
		return false
	}
	return true
}
