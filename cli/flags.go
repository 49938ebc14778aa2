package cli

import "github.com/urfave/cli/v3"

const (
	LoggingCategory  = "LOGGING AND DEBUGGING"
	EndpointCategory = "ENDPOINTS"
	RequestCategory  = "REQUESTS"
	MetricsCategory  = "METRICS"
	GeneralCategory  = "GENERAL"
)

var flags = []cli.Flag{
	// general
	versionFlag,
	// endpoints
	rpcURLsFlag,
	strategyFlag,
	// requests
	methodFlag,
	paramsFlag,
	requestTimeoutFlag,
	requestAttemptsFlag,
	rateLimitFlag,
	decodeQuantityFlag,
	watchIntervalFlag,
	// metrics
	metricsAddrFlag,
	// logging
	jsonFlag,
	debugFlag,
	logLevelFlag,
	logServiceFlag,
	logNoVersionFlag,
}

var (
	// General
	versionFlag = &cli.BoolFlag{
		Name:     "version",
		Usage:    "print version",
		Category: GeneralCategory,
	}
	// Endpoints
	rpcURLsFlag = &cli.StringSliceFlag{
		Name:     "rpc-url",
		Aliases:  []string{"rpc-urls"},
		Sources:  cli.EnvVars("RPC_URLS"),
		Usage:    "node endpoint urls in priority order - single entry or comma-separated list",
		Category: EndpointCategory,
	}
	strategyFlag = &cli.StringFlag{
		Name:     "strategy",
		Sources:  cli.EnvVars("RPC_STRATEGY"),
		Value:    "fallback",
		Usage:    "endpoint execution strategy: fallback or parallel",
		Category: EndpointCategory,
	}
	// Requests
	methodFlag = &cli.StringFlag{
		Name:     "method",
		Value:    "eth_chainId",
		Usage:    "JSON-RPC method to call",
		Category: RequestCategory,
	}
	paramsFlag = &cli.StringFlag{
		Name:     "params",
		Value:    "[]",
		Usage:    "JSON-RPC call params, as a JSON array",
		Category: RequestCategory,
	}
	requestTimeoutFlag = &cli.IntFlag{
		Name:     "request-timeout-ms",
		Sources:  cli.EnvVars("MULTIRPC_REQUEST_TIMEOUT_MS"),
		Value:    5000,
		Usage:    "timeout for a single request to an endpoint [ms] (values below 1 use the default)",
		Category: RequestCategory,
	}
	requestAttemptsFlag = &cli.IntFlag{
		Name:     "request-attempts",
		Sources:  cli.EnvVars("MULTIRPC_REQUEST_ATTEMPTS"),
		Value:    1,
		Usage:    "attempts per endpoint request, including the first one (minimum: 1)",
		Category: RequestCategory,
	}
	rateLimitFlag = &cli.FloatFlag{
		Name:     "rate-limit",
		Sources:  cli.EnvVars("MULTIRPC_RATE_LIMIT"),
		Usage:    "max requests per second per endpoint (0 = unlimited)",
		Category: RequestCategory,
	}
	decodeQuantityFlag = &cli.BoolFlag{
		Name:     "decode-quantity",
		Usage:    "additionally print a hex quantity result (like eth_chainId) as a decimal number",
		Category: RequestCategory,
	}
	watchIntervalFlag = &cli.IntFlag{
		Name:     "watch-interval-ms",
		Sources:  cli.EnvVars("MULTIRPC_WATCH_INTERVAL_MS"),
		Usage:    "repeat the call at this interval [ms] (0 = run once and exit)",
		Category: RequestCategory,
	}
	// Metrics
	metricsAddrFlag = &cli.StringFlag{
		Name:     "metrics-addr",
		Sources:  cli.EnvVars("MULTIRPC_METRICS_ADDR"),
		Usage:    "listen address for the Prometheus metrics server (watch mode only)",
		Category: MetricsCategory,
	}
	// Logging and debugging
	jsonFlag = &cli.BoolFlag{
		Name:     "json",
		Sources:  cli.EnvVars("LOG_JSON"),
		Usage:    "log in JSON format instead of text",
		Category: LoggingCategory,
	}
	debugFlag = &cli.BoolFlag{
		Name:     "debug",
		Sources:  cli.EnvVars("DEBUG"),
		Usage:    "shorthand for '--loglevel debug'",
		Category: LoggingCategory,
	}
	logLevelFlag = &cli.StringFlag{
		Name:     "loglevel",
		Sources:  cli.EnvVars("LOG_LEVEL"),
		Value:    "info",
		Usage:    "minimum loglevel: trace, debug, info, warn/warning, error, fatal, panic",
		Category: LoggingCategory,
	}
	logServiceFlag = &cli.StringFlag{
		Name:     "log-service",
		Sources:  cli.EnvVars("LOG_SERVICE_TAG"),
		Value:    "",
		Usage:    "add a 'service=...' tag to all log messages",
		Category: LoggingCategory,
	}
	logNoVersionFlag = &cli.BoolFlag{
		Name:     "log-no-version",
		Sources:  cli.EnvVars("DISABLE_LOG_VERSION"),
		Usage:    "disables adding the version to every log entry",
		Category: LoggingCategory,
	}
)
