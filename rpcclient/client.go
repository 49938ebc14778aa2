// Package rpcclient implements a multi-endpoint JSON-RPC 2.0 client. A Client
// sends each logical call to one or more configured endpoints through an
// ExecutionStrategy (sequential fallback or parallel fan-out with response
// comparison) and returns a uniform ExecutionResult.
package rpcclient

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/flashbots/multirpc/config"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ClientOpts provides all available options for use with NewClient
type ClientOpts struct {
	Log      *logrus.Entry
	Strategy StrategyType
	RPCURLs  []string

	// RequestTimeout bounds a single HTTP round trip. Zero or negative values
	// fall back to config.DefaultRequestTimeoutMs.
	RequestTimeout time.Duration

	// RequestAttempts is the per-endpoint attempt budget, including the first
	// try (default: 1, meaning no retries).
	RequestAttempts uint

	// RateLimit caps requests per second per endpoint (0 disables limiting).
	RateLimit float64
}

// Client is the user-facing facade. It holds the configured endpoint URLs and
// one active strategy, which can be swapped at runtime with UpdateStrategy.
type Client struct {
	log   *logrus.Entry
	urls  []string
	topts TransportOpts

	mu       sync.RWMutex
	strategy ExecutionStrategy
}

// NewClient constructs a client for the given endpoints and strategy. It
// returns ErrNoEndpoints if opts.RPCURLs is empty and ErrUnknownStrategy if
// opts.Strategy is not a known strategy type.
func NewClient(opts ClientOpts) (*Client, error) {
	if len(opts.RPCURLs) == 0 {
		return nil, ErrNoEndpoints
	}

	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	log = log.WithField("module", "rpcclient")

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultRequestTimeoutMs) * time.Millisecond
	}

	urls := make([]string, len(opts.RPCURLs))
	copy(urls, opts.RPCURLs)

	// All transports share one HTTP client so connection reuse works across
	// endpoints of the same host.
	topts := TransportOpts{
		Client:    &http.Client{Timeout: timeout},
		Attempts:  opts.RequestAttempts,
		RateLimit: opts.RateLimit,
		Log:       log,
	}

	strategy, err := newStrategy(opts.Strategy, newTransports(urls, topts), log)
	if err != nil {
		return nil, err
	}

	return &Client{
		log:      log,
		urls:     urls,
		topts:    topts,
		strategy: strategy,
	}, nil
}

// Execute forwards one logical call to the active strategy. It never returns
// an error: callers must check ExecutionResult.Success.
func (c *Client) Execute(ctx context.Context, method string, params []any) *ExecutionResult {
	c.mu.RLock()
	strategy := c.strategy
	c.mu.RUnlock()

	log := c.log.WithFields(logrus.Fields{
		"method":  method,
		"traceID": uuid.New().String(),
	})
	log.Debug("executing rpc call")
	result := strategy.Execute(ctx, method, params)
	log.WithField("success", result.Success).Debug("rpc call finished")
	return result
}

// StrategyName returns the type of the active strategy.
func (c *Client) StrategyName() StrategyType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.strategy.Name()
}

// RPCURLs returns a copy of the configured endpoint URLs in priority order.
func (c *Client) RPCURLs() []string {
	return append([]string{}, c.urls...)
}

// UpdateStrategy replaces the active strategy with a freshly constructed one
// of the given type, over fresh transports for the same URL list (request-id
// counters start over at 1). On error the active strategy is left unchanged.
func (c *Client) UpdateStrategy(strategyType StrategyType) error {
	strategy, err := newStrategy(strategyType, newTransports(c.urls, c.topts), c.log)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.strategy = strategy
	c.mu.Unlock()

	c.log.WithField("strategy", strategyType).Info("execution strategy updated")
	return nil
}
