package rpcclient

import (
	"encoding/json"
	"fmt"
	"time"
)

// AttemptStatus marks a CallAttempt as succeeded or failed.
type AttemptStatus string

const (
	StatusSuccess AttemptStatus = "success"
	StatusError   AttemptStatus = "error"
)

// CallAttempt is the recorded outcome of one endpoint for one logical call.
type CallAttempt struct {
	URL          string          `json:"url"`
	Status       AttemptStatus   `json:"status"`
	ResponseTime time.Duration   `json:"responseTime"`
	Value        json.RawMessage `json:"value,omitempty"`
	Fingerprint  string          `json:"fingerprint,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// Succeeded reports whether the attempt got a valid JSON-RPC result.
func (a *CallAttempt) Succeeded() bool {
	return a.Status == StatusSuccess
}

// ExecutionMetadata describes how one Execute call was carried out. Responses
// holds every attempt that was made, in endpoint-configuration order.
type ExecutionMetadata struct {
	Strategy           StrategyType  `json:"strategy"`
	Timestamp          time.Time     `json:"timestamp"`
	Responses          []CallAttempt `json:"responses"`
	HasInconsistencies bool          `json:"hasInconsistencies"`
}

// ExecutionResult is the uniform outcome of one logical call. Execute never
// returns an error; callers check Success. Data carries the winning value for
// the fallback strategy, Responses the full per-endpoint outcome list for the
// parallel strategy, and Errors every failed attempt when no endpoint
// succeeded.
type ExecutionResult struct {
	Success   bool               `json:"success"`
	Data      json.RawMessage    `json:"data,omitempty"`
	Responses []CallAttempt      `json:"responses,omitempty"`
	Errors    []CallAttempt      `json:"errors,omitempty"`
	Metadata  *ExecutionMetadata `json:"metadata,omitempty"`
}

// DecodeResult unmarshals a successful result's Data into T. A null or absent
// result decodes to T's zero value.
func DecodeResult[T any](result *ExecutionResult) (T, error) {
	var out T
	if result == nil {
		return out, fmt.Errorf("nil execution result")
	}
	if !result.Success {
		return out, fmt.Errorf("execution failed on all %d endpoint(s)", len(result.Errors))
	}
	if len(result.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(result.Data, &out); err != nil {
		return out, fmt.Errorf("could not unmarshal result: %w", err)
	}
	return out, nil
}
