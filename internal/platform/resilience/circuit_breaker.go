package resilience

import (
	"sync"
	"time"
)

type CircuitState int

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// CircuitBreaker gates calls to a flaky dependency. After a run of failures
// the circuit opens and rejects calls until the open timeout elapses; it then
// admits a limited number of probe calls before closing again.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMax      int

	state        CircuitState
	failures     int
	halfOpenUsed int
	openedAt     time.Time

	now func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	cfg = cfg.Normalize()
	return &CircuitBreaker{
		failureThreshold: cfg.FailureThreshold,
		openTimeout:      cfg.OpenTimeout,
		halfOpenMax:      cfg.HalfOpenMaxRequests,
		state:            StateClosed,
		now:              time.Now,
	}
}

// Allow reports whether a call may proceed right now.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.openTimeout {
			return false
		}
		cb.state = StateHalfOpen
		cb.halfOpenUsed = 0
		fallthrough
	case StateHalfOpen:
		if cb.halfOpenUsed >= cb.halfOpenMax {
			return false
		}
		cb.halfOpenUsed++
		return true
	default:
		return false
	}
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.halfOpenUsed = 0
	cb.state = StateClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen {
		cb.open()
		return
	}

	cb.failures++
	if cb.failures >= cb.failureThreshold {
		cb.open()
	}
}

func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) open() {
	cb.state = StateOpen
	cb.failures = 0
	cb.halfOpenUsed = 0
	cb.openedAt = cb.now()
}
