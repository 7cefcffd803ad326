package api

import "golang.org/x/time/rate"

// convertLimiter throttles the conversion routes with a shared token
// bucket. A nil limiter allows everything.
type convertLimiter struct {
	l *rate.Limiter
}

func newConvertLimiter(rps float64) *convertLimiter {
	if rps <= 0 {
		return nil
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &convertLimiter{l: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (cl *convertLimiter) allow() bool {
	if cl == nil {
		return true
	}
	return cl.l.Allow()
}
