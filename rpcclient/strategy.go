package rpcclient

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// StrategyType selects how the configured endpoints are consulted. The
// variant set is closed: strategies are constructed through newStrategy and
// nowhere else.
type StrategyType string

const (
	// StrategyFallback tries endpoints sequentially in priority order and
	// stops at the first success.
	StrategyFallback StrategyType = "fallback"

	// StrategyParallel queries every endpoint concurrently and compares the
	// successful responses against each other.
	StrategyParallel StrategyType = "parallel"
)

// ExecutionStrategy turns one logical call into one or more endpoint calls
// and aggregates the outcome. Execute never returns an error: transport and
// protocol failures are folded into the ExecutionResult.
type ExecutionStrategy interface {
	Execute(ctx context.Context, method string, params []any) *ExecutionResult
	Name() StrategyType
}

// newStrategy constructs the strategy named by typ over the given transports.
func newStrategy(typ StrategyType, transports []*Transport, log *logrus.Entry) (ExecutionStrategy, error) {
	switch typ {
	case StrategyFallback:
		return newFallbackStrategy(transports, log)
	case StrategyParallel:
		return newParallelStrategy(transports, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, typ)
	}
}

// newTransports builds one Transport per URL, preserving order. Duplicate
// URLs are permitted and get independent transports, each with its own
// request-id counter.
func newTransports(urls []string, opts TransportOpts) []*Transport {
	transports := make([]*Transport, 0, len(urls))
	for _, url := range urls {
		transports = append(transports, NewTransport(url, opts))
	}
	return transports
}

// runAttempt performs one endpoint call and records it as a CallAttempt. On
// success the returned value is fingerprinted so strategies can compare
// responses across endpoints.
func runAttempt(ctx context.Context, transport *Transport, method string, params []any) CallAttempt {
	start := time.Now()
	value, err := transport.Call(ctx, method, params)

	attempt := CallAttempt{
		URL:          transport.URL(),
		ResponseTime: time.Since(start),
	}
	if err != nil {
		attempt.Status = StatusError
		attempt.Error = err.Error()
		return attempt
	}

	attempt.Status = StatusSuccess
	attempt.Value = value
	if fp, err := fingerprint(value); err == nil {
		attempt.Fingerprint = fp
	}
	return attempt
}

func newMetadata(strategy StrategyType, startedAt time.Time, attempts []CallAttempt, hasInconsistencies bool) *ExecutionMetadata {
	return &ExecutionMetadata{
		Strategy:           strategy,
		Timestamp:          startedAt,
		Responses:          attempts,
		HasInconsistencies: hasInconsistencies,
	}
}
