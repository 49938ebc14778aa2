package rpcclient

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// fallbackStrategy tries endpoints one at a time, in configuration order. The
// first success wins and no later endpoint is contacted: a lower-priority
// endpoint must never be bothered once a higher-priority one has answered.
// Worst-case latency is therefore the sum of all endpoint latencies.
type fallbackStrategy struct {
	transports []*Transport
	log        *logrus.Entry
}

func newFallbackStrategy(transports []*Transport, log *logrus.Entry) (*fallbackStrategy, error) {
	if len(transports) == 0 {
		return nil, ErrNoEndpoints
	}
	return &fallbackStrategy{
		transports: transports,
		log:        log.WithField("strategy", StrategyFallback),
	}, nil
}

func (s *fallbackStrategy) Name() StrategyType {
	return StrategyFallback
}

// Execute walks the endpoints in priority order and returns as soon as one
// succeeds. Every attempt made, the winning one included, is retained in the
// metadata; the Errors list is only populated when all endpoints failed.
func (s *fallbackStrategy) Execute(ctx context.Context, method string, params []any) *ExecutionResult {
	log := s.log.WithField("method", method)
	startedAt := time.Now().UTC()
	attempts := make([]CallAttempt, 0, len(s.transports))

	for _, transport := range s.transports {
		attempt := runAttempt(ctx, transport, method, params)
		attempts = append(attempts, attempt)

		if attempt.Succeeded() {
			log.WithFields(logrus.Fields{
				"url":          attempt.URL,
				"responseTime": attempt.ResponseTime,
			}).Debug("endpoint answered")
			GetMetrics().ExecutionsTotal.WithLabelValues(string(StrategyFallback), strconv.FormatBool(true)).Inc()
			return &ExecutionResult{
				Success:  true,
				Data:     attempt.Value,
				Metadata: newMetadata(StrategyFallback, startedAt, attempts, false),
			}
		}

		log.WithFields(logrus.Fields{
			"error": attempt.Error,
			"url":   attempt.URL,
		}).Warn("endpoint failed, trying next")
	}

	log.WithField("attempts", len(attempts)).Error("all endpoints failed")
	GetMetrics().ExecutionsTotal.WithLabelValues(string(StrategyFallback), strconv.FormatBool(false)).Inc()
	return &ExecutionResult{
		Success:  false,
		Errors:   attempts,
		Metadata: newMetadata(StrategyFallback, startedAt, attempts, false),
	}
}
