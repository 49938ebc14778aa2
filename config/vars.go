package config

import (
	"github.com/flashbots/go-utils/cli"
)

// Set during build
var (
	// Version is the version of the software, set at build time
	Version = "v0.4.1-dev"
)

// Other settings
var (
	// DefaultRequestTimeoutMs sets the maximum duration for one JSON-RPC request to an endpoint, including reading the response body. It is used whenever ClientOpts does not carry a positive RequestTimeout. Set to zero to disable the timeout.
	DefaultRequestTimeoutMs = cli.GetEnvInt("MULTIRPC_REQUEST_TIMEOUT_MS", 5000)

	// MetricsServerReadTimeoutMs sets the maximum duration for reading an entire request to the metrics server, including the body.
	MetricsServerReadTimeoutMs = cli.GetEnvInt("MULTIRPC_METRICS_READ_TIMEOUT_MS", 1000)

	// MetricsServerReadHeaderTimeoutMs sets the amount of time allowed to read request headers.
	MetricsServerReadHeaderTimeoutMs = cli.GetEnvInt("MULTIRPC_METRICS_READ_HEADER_TIMEOUT_MS", 1000)

	// MetricsServerWriteTimeoutMs sets the maximum duration before timing out writes of the response.
	MetricsServerWriteTimeoutMs = cli.GetEnvInt("MULTIRPC_METRICS_WRITE_TIMEOUT_MS", 0)

	// MetricsServerIdleTimeoutMs sets the maximum amount of time to wait for the next request when keep-alives are enabled.
	MetricsServerIdleTimeoutMs = cli.GetEnvInt("MULTIRPC_METRICS_IDLE_TIMEOUT_MS", 0)
)
