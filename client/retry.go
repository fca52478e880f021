package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// retryPolicy bounds the retry loop. attempts counts the first try, so 1
// means requests are sent exactly once. perAttempt, when set, is the deadline
// of each try including reading its body; backoff waits are not counted.
type retryPolicy struct {
	attempts    int
	initial     time.Duration
	maxInterval time.Duration
	perAttempt  time.Duration
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{attempts: 1, initial: 500 * time.Millisecond, maxInterval: 10 * time.Second}
}

// retryableStatus mirrors the Recoverable class of ClassifyHTTPError.
func retryableStatus(code int) bool {
	return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= 500
}

// retryTransport re-sends a request after a network error or a recoverable
// status. POSTs are retried too, so a 5xx that still created the resource
// can produce a duplicate; callers opt in with WithRetry knowing that.
type retryTransport struct {
	base   http.RoundTripper
	policy retryPolicy
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = t.policy.initial
	exp.Multiplier = 2
	exp.MaxInterval = t.policy.maxInterval
	exp.MaxElapsedTime = 0
	exp.Reset()

	for attempt := 1; ; attempt++ {
		var body io.ReadCloser
		if attempt > 1 && req.Body != nil && req.Body != http.NoBody {
			if req.GetBody == nil {
				return nil, fmt.Errorf("retry %s %s: request body cannot be replayed", req.Method, req.URL.Path)
			}
			b, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("retry %s %s: %w", req.Method, req.URL.Path, err)
			}
			body = b
		}

		resp, err := t.try(req, body)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, err
		case err == nil && !retryableStatus(resp.StatusCode):
			return resp, nil
		case attempt >= t.policy.attempts:
			return resp, err
		}

		// Recoverable failure with attempts left
		ev := log.Warn().Str("method", req.Method).Str("path", req.URL.Path).Int("attempt", attempt)
		if err != nil {
			ev = ev.Err(err)
		} else {
			ev = ev.Int("status", resp.StatusCode)
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
			_ = resp.Body.Close()
		}
		wait := exp.NextBackOff()
		ev.Dur("wait", wait).Msg("retrying request")
		retriesTotal.WithLabelValues(req.Method).Inc()

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// try sends one attempt under its own deadline. The deadline stays armed
// until the caller closes the response body.
func (t *retryTransport) try(req *http.Request, body io.ReadCloser) (*http.Response, error) {
	ctx, cancel := req.Context(), context.CancelFunc(func() {})
	if t.policy.perAttempt > 0 {
		ctx, cancel = context.WithTimeout(ctx, t.policy.perAttempt)
	}
	attempt := req.Clone(ctx)
	if body != nil {
		attempt.Body = body
	}
	resp, err := t.base.RoundTrip(attempt)
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
