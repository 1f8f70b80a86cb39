package main

import (
	"flag"
	"io"
	"os"

	"github.com/jonwraymond/flyweight/observe"
	"github.com/jonwraymond/flyweight/observe/exporters"
)

type config struct {
	logLevel        string
	tracingExporter string
	metricsExporter string
	digestKeys      bool
	warnAt          int
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// parseConfig reads flags from args; environment variables supply the defaults.
func parseConfig(args []string, stderr io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("policedb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.logLevel, "log-level", envOr("FLYWEIGHT_LOG_LEVEL", "info"), "debug|info|warn|error, empty disables logging")
	fs.StringVar(&cfg.tracingExporter, "tracing", envOr("FLYWEIGHT_TRACING", "none"), "otlp|jaeger|stdout|none")
	fs.StringVar(&cfg.metricsExporter, "metrics", envOr("FLYWEIGHT_METRICS", "none"), "otlp|prometheus|stdout|none")
	fs.BoolVar(&cfg.digestKeys, "digest-keys", false, "derive keys with SHA-256 instead of sorted joins")
	fs.IntVar(&cfg.warnAt, "warn-at", 0, "registry size reported as degraded (0 uses the default)")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) observe(stdout io.Writer) observe.Config {
	return observe.Config{
		ServiceName: "policedb",
		Version:     "0.1.0",
		Tracing: observe.TracingConfig{
			Enabled:   c.tracingExporter != "none",
			Exporter:  c.tracingExporter,
			SamplePct: 1.0,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.metricsExporter != "none",
			Exporter: c.metricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: c.logLevel != "",
			Level:   c.logLevel,
		},
		Exporters: exporters.Options{Writer: stdout},
	}
}
