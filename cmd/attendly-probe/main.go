// Command attendly-probe exercises a running backend end to end: login,
// profile fetch, optional event join, and a recommendation read, printing
// per-step latency. It is meant for smoke-testing an environment, not for
// load generation.
//
// Configuration comes from ATTENDLY_* environment variables (a .env file
// is honored); credentials and the event code come from flags:
//
//	ATTENDLY_API_BASE_URL=https://staging.attendly.app/v1 \
//	  go run ./cmd/attendly-probe -email alice@example.com -password secret -event XK42
//
// With -redis-addr empty and no REDIS_ADDR env, an in-process miniredis
// backs the stores so the probe leaves nothing behind.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	attendly "github.com/attendly/attendly-go"
)

func main() {
	var (
		email     = flag.String("email", "", "account email (required)")
		password  = flag.String("password", "", "account password (required)")
		eventCode = flag.String("event", "", "event share code to join (optional)")
		redisAddr = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		verbose   = flag.Bool("v", false, "debug-level request logging")
		timeout   = flag.Duration("timeout", 30*time.Second, "overall probe deadline")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "-email and -password are required")
		os.Exit(2)
	}

	cfg, err := attendly.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var cleanup func()
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		cleanup = mr.Close
		fmt.Printf("using miniredis at %s\n", addr)
	}

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
	defer func() {
		_ = rdb.Close()
		if cleanup != nil {
			cleanup()
		}
	}()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	client, err := attendly.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithLogger(logger).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "client build: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ok := true
	ok = step("login", func() error {
		_, err := client.Login(ctx, *email, *password)
		return err
	}) && ok
	ok = step("me", func() error {
		_, err := client.Me(ctx)
		return err
	}) && ok

	if *eventCode != "" {
		var eventID string
		ok = step("join_event", func() error {
			ev, err := client.JoinEvent(ctx, *eventCode)
			if err != nil {
				return err
			}
			eventID = ev.ID
			return nil
		}) && ok

		if eventID != "" {
			ok = step("recommendations", func() error {
				recs, err := client.Recommendations(ctx, eventID, true)
				if err != nil {
					return err
				}
				fmt.Printf("  %d recommendations\n", len(recs))
				return nil
			}) && ok
		}
	}

	ok = step("logout", func() error {
		return client.Logout(ctx)
	}) && ok

	snap := client.Metrics()
	fmt.Printf("---- metrics ----\nrequests=%d failures=%d unauthorized=%d\n",
		snap.Counters[attendly.MetricRequests],
		snap.Counters[attendly.MetricRequestFailures],
		snap.Counters[attendly.MetricUnauthorized])

	if !ok {
		os.Exit(1)
	}
}

func step(name string, fn func() error) bool {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		fmt.Printf("%-16s FAIL %8s  %v\n", name, elapsed, err)
		return false
	}
	fmt.Printf("%-16s ok   %8s\n", name, elapsed)
	return true
}
