package orchestrator

import "time"

const backoffGrowthFactor = 2

// RetryPolicy bounds retries of transient provider failures. The zero value
// makes exactly one attempt.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
	MaxBackoff time.Duration
}

func (p RetryPolicy) attempts() int {
	return max(p.MaxRetries, 0) + 1
}

// delay returns the wait before retry number n, starting at 1.
func (p RetryPolicy) delay(n int) time.Duration {
	d := p.Backoff
	for i := 1; i < n; i++ {
		d *= backoffGrowthFactor
		if p.MaxBackoff > 0 && d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}

	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return max(d, 0)
}
