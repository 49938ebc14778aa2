package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flashbots/multirpc/config"
	"github.com/flashbots/multirpc/rpcclient"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

var log = logrus.NewEntry(logrus.New())

// Main starts the multirpc cli
func Main() {
	app := &cli.Command{
		Name:   "multirpc",
		Usage:  "send one JSON-RPC call to multiple node endpoints",
		Flags:  flags,
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// perhaps only print the version
	if cmd.Bool("version") {
		fmt.Printf("multirpc %s\n", config.Version) //nolint
		return nil
	}

	setupLogging(cmd)

	params, err := parseParams(cmd.String("params"))
	if err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	rpcURLs := cmd.StringSlice("rpc-url")
	client, err := rpcclient.NewClient(rpcclient.ClientOpts{
		Log:             log,
		Strategy:        rpcclient.StrategyType(cmd.String("strategy")),
		RPCURLs:         rpcURLs,
		RequestTimeout:  time.Duration(cmd.Int("request-timeout-ms")) * time.Millisecond,
		RequestAttempts: clampAttempts(int64(cmd.Int("request-attempts"))),
		RateLimit:       cmd.Float("rate-limit"),
	})
	if err != nil {
		return err
	}

	log.Infof("using %d endpoints (strategy: %s)", len(rpcURLs), client.StrategyName())
	for index, url := range rpcURLs {
		log.Infof("endpoint #%d: %s", index+1, url)
	}

	method := cmd.String("method")
	interval := time.Duration(cmd.Int("watch-interval-ms")) * time.Millisecond
	if interval <= 0 {
		return runOnce(ctx, client, method, params, cmd.Bool("decode-quantity"))
	}
	return runWatch(ctx, client, method, params, interval, cmd.String("metrics-addr"))
}

func setupLogging(cmd *cli.Command) {
	log.Logger.SetOutput(os.Stdout)
	if cmd.Bool("json") {
		log.Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	logLevel := cmd.String("loglevel")
	if cmd.Bool("debug") {
		logLevel = "debug"
	}
	if logLevel != "" {
		lvl, err := logrus.ParseLevel(logLevel)
		if err != nil {
			log.Fatalf("invalid loglevel: %s", logLevel)
		}
		log.Logger.SetLevel(lvl)
	}
	if service := cmd.String("log-service"); service != "" {
		log = log.WithField("service", service)
	}

	// Add version to logs and say hello
	if cmd.Bool("log-no-version") {
		log.Infof("starting multirpc %s", config.Version)
	} else {
		log = log.WithField("version", config.Version)
		log.Infof("starting multirpc")
	}
	log.Debug("debug logging enabled")
}

// runOnce sends the call a single time and prints the full result as JSON.
func runOnce(ctx context.Context, client *rpcclient.Client, method string, params []any, decodeQuantity bool) error {
	result := client.Execute(ctx, method, params)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}
	fmt.Println(string(output)) //nolint

	if !result.Success {
		return fmt.Errorf("all %d endpoint(s) failed", len(result.Errors))
	}

	if decodeQuantity {
		if raw := firstValue(result); len(raw) > 0 {
			quantity, err := decodeHexQuantity(raw)
			if err != nil {
				return fmt.Errorf("could not decode result as hex quantity: %w", err)
			}
			fmt.Println(quantity.Dec()) //nolint
		}
	}
	return nil
}

// runWatch repeats the call at a fixed interval until SIGINT/SIGTERM,
// optionally serving Prometheus metrics.
func runWatch(ctx context.Context, client *rpcclient.Client, method string, params []any, interval time.Duration, metricsAddr string) error {
	if metricsAddr != "" {
		go startMetricsServer(metricsAddr)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Infof("watching %s every %s", method, interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		executeWatched(ctx, client, method, params)
		select {
		case sig := <-sigCh:
			log.Infof("shutting down: received signal %s", sig)
			return nil
		case <-ticker.C:
		}
	}
}

func executeWatched(ctx context.Context, client *rpcclient.Client, method string, params []any) {
	result := client.Execute(ctx, method, params)
	switch {
	case !result.Success:
		log.WithField("errors", len(result.Errors)).Error("all endpoints failed")
	case result.Metadata != nil && result.Metadata.HasInconsistencies:
		log.Warn("endpoints returned diverging responses")
	default:
		log.WithField("value", string(firstValue(result))).Info("call succeeded")
	}
}

func startMetricsServer(addr string) {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: r,

		ReadTimeout:       time.Duration(config.MetricsServerReadTimeoutMs) * time.Millisecond,
		ReadHeaderTimeout: time.Duration(config.MetricsServerReadHeaderTimeoutMs) * time.Millisecond,
		WriteTimeout:      time.Duration(config.MetricsServerWriteTimeoutMs) * time.Millisecond,
		IdleTimeout:       time.Duration(config.MetricsServerIdleTimeoutMs) * time.Millisecond,
	}
	log.Infof("metrics server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("metrics server failed")
	}
}
