package uploads

import "time"

// BackoffPolicy bounds the thumbnail polling loop. The default
// reproduces the historical fixed schedule: ten attempts, one second
// apart. Raising MaxDelay above BaseDelay turns the schedule into a
// capped exponential.
type BackoffPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func DefaultBackoffPolicy() BackoffPolicy {
	return BackoffPolicy{
		Attempts:  10,
		BaseDelay: time.Second,
		MaxDelay:  time.Second,
	}
}

// Delay returns the pause after the given 1-based attempt.
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
