package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/flashbots/multirpc/config"
)

var defaultHTTPClient = &http.Client{
	Timeout: time.Duration(config.DefaultRequestTimeoutMs) * time.Millisecond,
}

// TransportOpts configures one Transport. The zero value is usable: shared
// default HTTP client, exactly one wire request per call, no rate limit.
type TransportOpts struct {
	// Client is the HTTP client used for requests. Defaults to a shared
	// client with the package default timeout.
	Client *http.Client

	// Attempts is the wire-attempt budget per Call. 0 and 1 both mean a
	// single request with no retry; anything above that retries failed
	// requests, each with a fresh request id.
	Attempts uint

	// RetryDelay is the pause between attempts. Defaults to 100ms.
	RetryDelay time.Duration

	// RateLimit caps requests per second to this endpoint. 0 disables
	// limiting.
	RateLimit float64

	Log *logrus.Entry
}

// Transport issues JSON-RPC 2.0 calls against a single endpoint URL. It owns
// the endpoint's request-id counter: ids start at 1 and increment on every
// request issued through it, failed ones included. The counter is atomic
// because one Transport may serve many goroutines at once.
type Transport struct {
	url        string
	nextID     atomic.Uint64
	client     *http.Client
	limiter    *rate.Limiter
	attempts   uint
	retryDelay time.Duration
	log        *logrus.Entry
}

// NewTransport creates a Transport for one endpoint URL.
func NewTransport(url string, opts TransportOpts) *Transport {
	t := &Transport{
		url:        url,
		client:     opts.Client,
		attempts:   opts.Attempts,
		retryDelay: opts.RetryDelay,
		log:        opts.Log,
	}
	if t.client == nil {
		t.client = defaultHTTPClient
	}
	if t.attempts == 0 {
		t.attempts = 1
	}
	if t.retryDelay == 0 {
		t.retryDelay = 100 * time.Millisecond
	}
	if t.log == nil {
		t.log = logrus.NewEntry(logrus.New())
	}
	t.log = t.log.WithField("url", url)
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit * 2)
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return t
}

// URL returns the endpoint URL this transport talks to.
func (t *Transport) URL() string {
	return t.url
}

// RequestCount returns how many requests this transport has issued so far.
func (t *Transport) RequestCount() uint64 {
	return t.nextID.Load()
}

// Call sends one logical JSON-RPC call and returns the response's result
// field verbatim. A null or absent result is a valid success, not a failure.
// Failures are classified: *TransportError for a non-OK HTTP status,
// *RPCError when the response envelope carries an error field. Retries (if
// the attempt budget allows any) happen here, below the strategies, so that
// every strategy sees one settled outcome per endpoint.
func (t *Transport) Call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	var result json.RawMessage
	err := retry.Do(
		func() error {
			res, err := t.sendRequest(ctx, method, params)
			if err != nil {
				return err
			}
			result = res
			return nil
		},
		retry.Attempts(t.attempts),
		retry.Delay(t.retryDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	return result, err
}

// sendRequest puts exactly one request on the wire, consuming one request id.
func (t *Transport) sendRequest(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	id := t.nextID.Add(1)
	t.log.WithFields(logrus.Fields{"method": method, "id": id}).Debug("sending JSON-RPC request")

	body, err := json.Marshal(newRPCRequest(id, method, params))
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not prepare request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("multirpc/%s", config.Version))

	m := GetMetrics()
	start := time.Now()
	resp, err := t.client.Do(req)
	m.RequestDuration.WithLabelValues(t.url, method).Observe(time.Since(start).Seconds())
	if err != nil {
		t.countRequest(method, false)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.countRequest(method, false)
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode > 299 {
		t.countRequest(method, false)
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	response, err := parseRPCResponse(respBody)
	if err != nil {
		t.countRequest(method, false)
		return nil, fmt.Errorf("could not unmarshal response %s: %w", string(respBody), err)
	}
	if response.Error != nil {
		t.countRequest(method, false)
		return nil, response.Error
	}

	t.countRequest(method, true)
	return response.Result, nil
}

func (t *Transport) countRequest(method string, success bool) {
	m := GetMetrics()
	if success {
		m.RequestsTotal.WithLabelValues(t.url, method, string(StatusSuccess)).Inc()
		return
	}
	m.RequestsTotal.WithLabelValues(t.url, method, string(StatusError)).Inc()
	m.RequestErrors.WithLabelValues(t.url, method).Inc()
}
