// Package circuitbreaker provides a pipeline policy implementing the
// circuit-breaker pattern (https://martinfowler.com/bliki/CircuitBreaker.html),
// adapted from client/middleware/circuitbreaker/circuitbreaker.go: the
// open/closed/half-open state machine, trip/reset thresholds, cool-off
// timer, and state-change channel are unchanged, but the Pre/Post hook pair
// is collapsed into a single policy.Policy.Send wrapping the inner policy,
// and tripped requests now fail with a transport.IOError built from
// transport.ErrServiceUnavailable instead of an RPC transport error.
//
// - Open. In this state the circuit-breaker forwards requests to the inner
//   policy while tracking errors. Once the number of errors reaches
//   TripThreshold, the circuit-breaker enters the Closed state.
//
// - Closed. While in this state, all requests automatically fail without
//   reaching the inner policy. A timer started on entry switches the
//   circuit-breaker to the Half-Open state once CoolOffPeriod elapses.
//
// - Half-Open. While in this state, the circuit-breaker allows requests
//   through to see if the remote endpoint has recovered. Enough consecutive
//   successes switch it back to Open; any failure switches it back to
//   Closed.
package circuitbreaker

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nategraf/restengine/config/flag"
	"github.com/nategraf/restengine/message"
	"github.com/nategraf/restengine/policy"
	"github.com/nategraf/restengine/transport"
)

// State represents the circuit-breaker state.
type State int8

// The possible circuit-breaker states.
const (
	Open State = iota
	Closed
	HalfOpen
)

// Factory generates a policy.Factory that wraps a new circuitBreaker instance
// configured from cfg around the inner policy.
func Factory(cfg Config) policy.Factory {
	return func(next policy.Policy) policy.Policy {
		cb := newCircuitBreaker(cfg)
		return policy.Func(func(ctx context.Context, req *message.Request) (*message.Response, error) {
			return cb.send(ctx, req, next)
		})
	}
}

type circuitBreaker struct {
	closedError     error
	tripErrors      []error
	tripThreshold   *flag.Uint32
	resetThreshold  *flag.Uint32
	coolOffPeriod   *flag.Int64
	stateChangeChan chan<- State

	mutex            sync.Mutex
	curState         State
	trippedAt        time.Time
	trackedErrors    uint32
	trackedSuccesses uint32
}

func newCircuitBreaker(cfg Config) *circuitBreaker {
	cb := &circuitBreaker{
		tripErrors:      cfg.GetTripErrors(),
		closedError:     cfg.GetClosedError(),
		tripThreshold:   cfg.GetTripThreshold(),
		resetThreshold:  cfg.GetResetThreshold(),
		coolOffPeriod:   cfg.GetCoolOffPeriod(),
		stateChangeChan: cfg.GetStateChangeChan(),
	}

	if cb.coolOffPeriod.Get() == 0 {
		cb.coolOffPeriod.Set(DefaultCoolOffPeriod.Nanoseconds())
	}
	if !cb.tripThreshold.HasValue() || cb.tripThreshold.Get() == 0 {
		cb.tripThreshold.Set(DefaultTripThreshold)
	}
	if !cb.resetThreshold.HasValue() || cb.resetThreshold.Get() == 0 {
		cb.resetThreshold.Set(DefaultResetThreshold)
	}
	if cb.closedError == nil {
		cb.closedError = &transport.IOError{Message: "circuit breaker open", Cause: transport.ErrServiceUnavailable}
	}
	if cb.tripErrors == nil {
		cb.tripErrors = DefaultTripErrors
	}

	return cb
}

// send implements the combined pre/post circuit-breaker check around a call
// to next.
func (cb *circuitBreaker) send(ctx context.Context, req *message.Request, next policy.Policy) (*message.Response, error) {
	cb.mutex.Lock()
	if cb.curState == Closed {
		if time.Since(cb.trippedAt) < time.Duration(cb.coolOffPeriod.Get()) {
			cb.mutex.Unlock()
			return nil, cb.closedError
		}

		cb.curState = HalfOpen
		cb.trackedSuccesses = 0
		cb.publishStateLocked()
	}
	cb.mutex.Unlock()

	res, err := next.Send(ctx, req)

	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	switch {
	case cb.curState == Open && cb.trackError(err):
		cb.trackedErrors++
		if cb.trackedErrors < cb.tripThreshold.Get() {
			return res, err
		}
		cb.curState = Closed
		cb.trippedAt = time.Now()
	case cb.curState == HalfOpen && err != nil:
		cb.curState = Closed
		cb.trippedAt = time.Now()
	case cb.curState == HalfOpen && err == nil:
		cb.trackedSuccesses++
		if cb.trackedSuccesses < cb.resetThreshold.Get() {
			return res, err
		}
		cb.curState = Open
		cb.trackedErrors = 0
	default:
		return res, err
	}

	cb.publishStateLocked()
	return res, err
}

// trackError returns true if err should bump the tracked errors counter.
func (cb *circuitBreaker) trackError(err error) bool {
	if err == nil {
		return false
	}
	for _, tripErr := range cb.tripErrors {
		if err == tripErr || strings.Contains(err.Error(), tripErr.Error()) {
			return true
		}
	}
	return false
}

// publishStateLocked sends the current state on stateChangeChan without
// blocking; the caller must hold cb.mutex.
func (cb *circuitBreaker) publishStateLocked() {
	if cb.stateChangeChan == nil {
		return
	}
	select {
	case cb.stateChangeChan <- cb.curState:
	default:
	}
}
