// Package ratelimit throttles outbound lookup traffic for a whole run: a
// shared sliding window over all callers, plus exponential backoff with
// jitter when a service answers 429.
package ratelimit

import (
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

var errTooManyRequests = errors.New("rate limited upstream (429)")

type Limiter struct {
	max    int
	period time.Duration

	maxRetries  int
	backoffBase time.Duration

	client *http.Client
	log    *zap.Logger

	// Injectable for tests.
	now   func() time.Time
	sleep func(time.Duration)

	calls []time.Time
}

func New(maxCalls int, period time.Duration, maxRetries int, backoffBase time.Duration, timeout time.Duration, log *zap.Logger) *Limiter {
	return &Limiter{
		max:         maxCalls,
		period:      period,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		client:      &http.Client{Timeout: timeout},
		log:         log,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Wait blocks until a call slot is free in the sliding window, then claims
// it. The pipeline is single-threaded, so no locking around the window.
func (l *Limiter) Wait() {
	if l.max <= 0 {
		return
	}
	for {
		cutoff := l.now().Add(-l.period)
		live := l.calls[:0]
		for _, t := range l.calls {
			if t.After(cutoff) {
				live = append(live, t)
			}
		}
		l.calls = live

		if len(l.calls) < l.max {
			l.calls = append(l.calls, l.now())
			return
		}

		wait := l.calls[0].Sub(cutoff)
		l.log.Debug("rate limit window full, waiting", zap.Duration("wait", wait))
		l.sleep(wait)
	}
}

// Do runs an HTTP request through the window, retrying on 429 with
// exponential backoff and jitter. Any other failure is returned as is; only
// throttling responses are retried.
func (l *Limiter) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response

	operation := func() error {
		l.Wait()
		r, err := l.client.Do(req)
		if err != nil {
			return backoff.Permanent(err)
		}
		if r.StatusCode == http.StatusTooManyRequests {
			r.Body.Close()
			l.log.Warn("upstream returned 429, backing off", zap.String("url", req.URL.String()))
			return errTooManyRequests
		}
		resp = r
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.backoffBase
	b.MaxElapsedTime = 0

	if err := backoff.Retry(operation, backoff.WithMaxRetries(b, uint64(l.maxRetries))); err != nil {
		return nil, err
	}
	return resp, nil
}
