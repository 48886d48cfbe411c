package ratelimiter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clipsum/internal/provider"

	"golang.org/x/time/rate"
)

var ErrStopped = errors.New("rate limiter is stopped")

type request struct {
	ctx      context.Context
	req      provider.Request
	response chan response
}

type response struct {
	output string
	err    error
}

// RateLimiter is a provider.Provider that queues calls and spaces them by a
// minimum interval before passing them to the wrapped provider.
type RateLimiter struct {
	next    provider.Provider
	limiter *rate.Limiter
	queue   chan request
	ctx     context.Context
	cancel  context.CancelFunc
	log     *slog.Logger
}

// New starts the queue worker. A non-positive interval disables spacing but
// keeps calls serialized.
func New(next provider.Provider, interval time.Duration, log *slog.Logger) *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	rl := &RateLimiter{
		next:    next,
		limiter: rate.NewLimiter(limit, 1),
		queue:   make(chan request, queueSize),
		ctx:     ctx,
		cancel:  cancel,
		log:     log,
	}

	go rl.processQueue()

	return rl
}

func (rl *RateLimiter) Complete(ctx context.Context, req provider.Request) (string, error) {
	if rl.ctx.Err() != nil {
		return "", ErrStopped
	}

	r := request{
		ctx:      ctx,
		req:      req,
		response: make(chan response, 1),
	}

	select {
	case rl.queue <- r:
	case <-ctx.Done():
		return "", ctx.Err()
	case <-rl.ctx.Done():
		return "", ErrStopped
	}

	select {
	case resp := <-r.response:
		return resp.output, resp.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-rl.ctx.Done():
		return "", ErrStopped
	}
}

func (rl *RateLimiter) Stop() {
	rl.cancel()
}

func (rl *RateLimiter) processQueue() {
	for {
		select {
		case r := <-rl.queue:
			rl.handleRequest(r)
		case <-rl.ctx.Done():
			for {
				select {
				case r := <-rl.queue:
					r.response <- response{err: ErrStopped}
				default:
					return
				}
			}
		}
	}
}

func (rl *RateLimiter) handleRequest(r request) {
	if err := r.ctx.Err(); err != nil {
		r.response <- response{err: err}
		return
	}

	ctx, cancel := mergeCancel(r.ctx, rl.ctx)
	defer cancel()

	delay := rl.limiter.Reserve().Delay()
	if delay > 0 {
		rl.log.DebugContext(ctx, "Rate limiting provider call",
			"delay", delay,
			"queueLen", len(rl.queue))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			err := r.ctx.Err()
			if err == nil {
				err = ErrStopped
			}
			r.response <- response{err: err}

			return
		}
	}

	output, err := rl.next.Complete(ctx, r.req)
	r.response <- response{
		output: output,
		err:    err,
	}
}

// mergeCancel returns a context derived from ctx that is also canceled when stop is done.
func mergeCancel(ctx, stop context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	unregister := context.AfterFunc(stop, cancel)

	return merged, func() {
		unregister()
		cancel()
	}
}
