package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbroker/kbroker"
	metrics "github.com/rcrowley/go-metrics"
	"golang.org/x/sync/errgroup"
)

var (
	configFile = flag.String(
		"config",
		"",
		"Path to a TOML file with broker settings. Flags override values from the file.",
	)
	host = flag.String(
		"host",
		"127.0.0.1",
		"The host to bind.",
	)
	port = flag.Int(
		"port",
		9092,
		"The port to bind.",
	)
	maxConnections = flag.Int(
		"max-connections",
		0,
		"The maximum number of connections served at once (0 for no limit).",
	)
	readTimeout = flag.Duration(
		"read-timeout",
		0,
		"How long an open connection may wait for its next request (0 for no limit).",
	)
	writeTimeout = flag.Duration(
		"write-timeout",
		0,
		"How long a response write may take (0 for no limit).",
	)
	keepAlive = flag.Duration(
		"keep-alive",
		0,
		"The TCP keep-alive period of accepted connections (0 for the OS default, negative to disable).",
	)
	metricsInterval = flag.Duration(
		"metrics-interval",
		0,
		"How often to print the broker metrics to stderr (0 to never print them).",
	)
	verbose = flag.Bool(
		"verbose",
		false,
		"Turn on per-connection and per-request debug output. Failures are always logged.",
	)
	tlsCert = flag.String(
		"tls-cert",
		"",
		"Path to the PEM certificate to serve TLS with. Requires -tls-key.",
	)
	tlsKey = flag.String(
		"tls-key",
		"",
		"Path to the PEM private key matching -tls-cert.",
	)
	printVersion = flag.Bool(
		"version",
		false,
		"Print the kbroker version and exit.",
	)
)

func main() {
	flag.Parse()

	if *printVersion {
		fmt.Println(kbroker.Version())
		return
	}

	s, err := loadSettings(*configFile)
	if err != nil {
		printUsageErrorAndExit(err.Error())
	}
	applyFlags(&s)
	if err := s.validate(); err != nil {
		printUsageErrorAndExit(err.Error())
	}

	setupLogging(os.Stderr, s.Verbose)

	conf, err := s.brokerConfig()
	if err != nil {
		printUsageErrorAndExit(err.Error())
	}
	srv, err := kbroker.NewServer(s.addr(), conf)
	if err != nil {
		printErrorAndExit(69, "Failed to start broker: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(); !errors.Is(err, kbroker.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Close()
	})
	if s.MetricsInterval > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(s.MetricsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					metrics.WriteOnce(conf.MetricRegistry, os.Stderr)
				case <-ctx.Done():
					return nil
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		printErrorAndExit(69, "Broker stopped: %s", err)
	}
}

// setupLogging sends kbroker's failure log to w. Debug output follows only
// when verbose is set.
func setupLogging(w io.Writer, verbose bool) {
	kbroker.Logger = log.New(w, "[kbroker] ", log.LstdFlags)
	if verbose {
		kbroker.DebugLogger = log.New(w, "[kbroker] [debug] ", log.LstdFlags)
	}
}

// applyFlags copies the flags given on the command line over s.
func applyFlags(s *settings) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			s.Host = *host
		case "port":
			s.Port = *port
		case "max-connections":
			s.MaxConnections = *maxConnections
		case "read-timeout":
			s.ReadTimeout = *readTimeout
		case "write-timeout":
			s.WriteTimeout = *writeTimeout
		case "keep-alive":
			s.KeepAlive = *keepAlive
		case "metrics-interval":
			s.MetricsInterval = *metricsInterval
		case "verbose":
			s.Verbose = *verbose
		case "tls-cert":
			s.TLSCert = *tlsCert
		case "tls-key":
			s.TLSKey = *tlsKey
		}
	})
}

func printUsageErrorAndExit(message string) {
	fmt.Fprintln(os.Stderr, "ERROR:", message)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Available command line options:")
	flag.PrintDefaults()
	os.Exit(64)
}

func printErrorAndExit(code int, format string, values ...interface{}) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", fmt.Sprintf(format, values...))
	fmt.Fprintln(os.Stderr)
	os.Exit(code)
}
