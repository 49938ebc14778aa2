package rpcclient

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// parallelStrategy queries every endpoint concurrently and waits for all of
// them to settle. There is no early return and no cancellation of slower
// endpoints: cross-provider comparison needs every response. Successful
// responses are fingerprinted and compared against the first success in
// configuration order to detect providers that disagree.
type parallelStrategy struct {
	transports []*Transport
	log        *logrus.Entry
}

func newParallelStrategy(transports []*Transport, log *logrus.Entry) (*parallelStrategy, error) {
	if len(transports) == 0 {
		return nil, ErrNoEndpoints
	}
	return &parallelStrategy{
		transports: transports,
		log:        log.WithField("strategy", StrategyParallel),
	}, nil
}

func (s *parallelStrategy) Name() StrategyType {
	return StrategyParallel
}

// Execute fans the identical call out to every endpoint and joins when all
// have settled. Attempts keep endpoint-configuration order, not completion
// order. Each goroutine writes only its own slot; fingerprint comparison
// happens single-threaded after the join.
func (s *parallelStrategy) Execute(ctx context.Context, method string, params []any) *ExecutionResult {
	log := s.log.WithField("method", method)
	startedAt := time.Now().UTC()
	attempts := make([]CallAttempt, len(s.transports))

	var wg sync.WaitGroup
	for i, transport := range s.transports {
		wg.Add(1)
		go func(i int, transport *Transport) {
			defer wg.Done()
			attempts[i] = runAttempt(ctx, transport, method, params)
		}(i, transport)
	}

	// Wait for all requests to complete...
	wg.Wait()

	successes := 0
	firstFingerprint := ""
	hasInconsistencies := false
	for _, attempt := range attempts {
		if !attempt.Succeeded() {
			continue
		}
		successes++
		if successes == 1 {
			firstFingerprint = attempt.Fingerprint
		} else if attempt.Fingerprint != firstFingerprint {
			hasInconsistencies = true
		}
	}

	if hasInconsistencies {
		fields := logrus.Fields{}
		for i, attempt := range attempts {
			if attempt.Succeeded() {
				fields[fmt.Sprintf("endpoint%d", i)] = fmt.Sprintf("%s fingerprint=%s", attempt.URL, attempt.Fingerprint)
			}
		}
		log.WithFields(fields).Warn("endpoints returned diverging responses")
		GetMetrics().InconsistenciesTotal.WithLabelValues(method).Inc()
	}

	success := successes > 0
	GetMetrics().ExecutionsTotal.WithLabelValues(string(StrategyParallel), strconv.FormatBool(success)).Inc()
	metadata := newMetadata(StrategyParallel, startedAt, attempts, hasInconsistencies)

	if !success {
		log.WithField("attempts", len(attempts)).Error("all endpoints failed")
		return &ExecutionResult{
			Success:  false,
			Errors:   attempts,
			Metadata: metadata,
		}
	}

	// No winner is picked here: the caller gets every endpoint's outcome and
	// reconciles as it sees fit.
	return &ExecutionResult{
		Success:   true,
		Responses: attempts,
		Metadata:  metadata,
	}
}
