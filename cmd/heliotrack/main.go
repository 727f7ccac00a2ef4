package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/heliotrack/heliotrack/internal/cache"
	"github.com/heliotrack/heliotrack/internal/chart"
	"github.com/heliotrack/heliotrack/internal/config"
	"github.com/heliotrack/heliotrack/internal/correlate"
	"github.com/heliotrack/heliotrack/internal/donki"
	"github.com/heliotrack/heliotrack/internal/index"
	"github.com/heliotrack/heliotrack/internal/logging"
	"github.com/heliotrack/heliotrack/internal/metrics"
	"github.com/heliotrack/heliotrack/internal/output"
	"github.com/heliotrack/heliotrack/internal/rate"
	"github.com/heliotrack/heliotrack/internal/report"
	"github.com/heliotrack/heliotrack/internal/summary"
	"github.com/heliotrack/heliotrack/internal/telemetry"
)

const version = "1.0.0"

func main() {
	var configFile string
	var startDate string
	var endDate string
	var days int
	var apiKey string
	var baseURL string
	var format string
	var outPath string
	var chartPath string
	var noChart bool
	var metricsAddr string
	var otelEndpoint string
	var otelInsecure bool
	var otelService string
	var redisAddr string
	var cacheTTLMin int
	var rateLimit float64
	var burst int
	var retries int
	var verbose bool
	var showVersion bool

	flag.StringVar(&configFile, "config", "", "path to config file (YAML or JSON)")
	flag.StringVar(&startDate, "start", "", "window start date (YYYY-MM-DD, requires -end)")
	flag.StringVar(&endDate, "end", "", "window end date (YYYY-MM-DD, requires -start)")
	flag.IntVar(&days, "days", 0, "rolling window length in days ending now (default 30)")
	flag.StringVar(&apiKey, "api_key", "", "NASA API key (default DEMO_KEY)")
	flag.StringVar(&baseURL, "base_url", "", "DONKI API base URL")
	flag.StringVar(&format, "format", "", "output format (text, json, jsonl, csv)")
	flag.StringVar(&outPath, "out", "", "write machine-readable output to file instead of stdout")
	flag.StringVar(&chartPath, "chart", "", "timeline chart path (default space_weather_timeline.png)")
	flag.BoolVar(&noChart, "no_chart", false, "skip chart generation")
	flag.StringVar(&metricsAddr, "metrics_addr", "", "metrics listen addr (empty to disable)")
	flag.StringVar(&otelEndpoint, "otel_endpoint", "", "OTLP HTTP endpoint (host:port)")
	flag.BoolVar(&otelInsecure, "otel_insecure", true, "OTLP insecure (no TLS)")
	flag.StringVar(&otelService, "otel_service", "", "OTEL service.name")
	flag.StringVar(&redisAddr, "redis_addr", "", "Redis addr for the cross-run fetch cache")
	flag.IntVar(&cacheTTLMin, "cache_ttl_min", 0, "fetch cache TTL in minutes")
	flag.Float64Var(&rateLimit, "rate_limit", 0, "API requests per second")
	flag.IntVar(&burst, "burst", 0, "API request burst")
	flag.IntVar(&retries, "retries", -1, "transport retries per request")
	flag.BoolVar(&verbose, "verbose", false, "verbose logging")
	flag.BoolVar(&showVersion, "version", false, "show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "HELIOTRACK - space weather event correlation\n")
		fmt.Fprintf(os.Stderr, "Fetches solar flares, CMEs and geomagnetic storms from NASA DONKI,\n")
		fmt.Fprintf(os.Stderr, "resolves propagation chains and reports Sun-to-Earth travel times\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -days=7 -format=json > events.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -start=2024-05-01 -end=2024-05-31 -chart=may_storms.png\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  NASA_API_KEY    API key (https://api.nasa.gov, default DEMO_KEY)\n")
		fmt.Fprintf(os.Stderr, "  DONKI_BASE_URL  override the DONKI base URL\n")
		fmt.Fprintf(os.Stderr, "  REDIS_ADDR      Redis server for the cross-run fetch cache\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Println("heliotrack v" + version)
		fmt.Println("Built with Go", strings.TrimPrefix(runtime.Version(), "go"))
		os.Exit(0)
	}

	log := logging.New(verbose)
	defer log.Sync()

	var cfg *config.Config
	var err error

	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			log.Fatalw("failed to load config file", "file", configFile, "err", err)
		}
		log.Infow("loaded config from file", "file", configFile)
	} else {
		cfg = &config.Config{}
		cfg.SetDefaults()
	}

	cfg.LoadFromEnv()

	flags := make(map[string]interface{})
	if startDate != "" {
		flags["start"] = startDate
	}
	if endDate != "" {
		flags["end"] = endDate
	}
	if days > 0 {
		flags["days"] = days
	}
	if apiKey != "" {
		flags["api_key"] = apiKey
	}
	if baseURL != "" {
		flags["base_url"] = baseURL
	}
	if format != "" {
		flags["format"] = format
	}
	if outPath != "" {
		flags["out"] = outPath
	}
	if chartPath != "" {
		flags["chart"] = chartPath
	}
	if noChart {
		flags["no_chart"] = true
	}
	if metricsAddr != "" {
		flags["metrics_addr"] = metricsAddr
	}
	if otelEndpoint != "" {
		flags["otel_endpoint"] = otelEndpoint
	}
	if otelService != "" {
		flags["otel_service"] = otelService
	}
	if redisAddr != "" {
		flags["redis_addr"] = redisAddr
	}
	if cacheTTLMin > 0 {
		flags["cache_ttl_min"] = cacheTTLMin
	}
	if rateLimit > 0 {
		flags["rate_limit"] = rateLimit
	}
	if burst > 0 {
		flags["burst"] = burst
	}
	if retries >= 0 {
		flags["retries"] = retries
	}
	flags["otel_insecure"] = otelInsecure

	cfg.MergeWithFlags(flags)

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "err", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdown, err := telemetry.Init(ctx, cfg.OTELEndpoint, cfg.OTELService, cfg.OTELInsecure)
	if err != nil {
		log.Warnw("otel init failed", "err", err)
	} else {
		defer shutdown(context.Background())
	}

	if cfg.MetricsAddr != "" {
		go metrics.Serve(cfg.MetricsAddr, log)
		log.Infow("metrics server started", "addr", cfg.MetricsAddr)
	}

	cacheTTL := time.Duration(cfg.CacheTTLMin) * time.Minute
	var fetchCache cache.Cache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(cfg.RedisAddr, cacheTTL, log)
		if err != nil {
			log.Fatalw("redis init", "addr", cfg.RedisAddr, "err", err)
		}
		log.Infow("redis fetch cache enabled", "addr", cfg.RedisAddr)
		fetchCache = rc
	} else {
		fetchCache = cache.NewMemory(64, cacheTTL)
	}

	client := donki.New(donki.Options{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Retries: cfg.Retries,
		Limiter: rate.New(cfg.RateLimit, cfg.Burst),
		Cache:   fetchCache,
	}, log)

	start, end, err := cfg.DateRange(time.Now())
	if err != nil {
		log.Fatalw("invalid date range", "err", err)
	}
	window := donki.Window{Start: start, End: end}

	log.Infow("fetching space weather data",
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"),
		"base_url", cfg.BaseURL,
	)

	flares, err := client.Flares(ctx, window)
	if err != nil {
		fatalFetch(log, "solar flares", err)
	}
	log.Infow("fetched solar flares", "count", len(flares))

	cmes, err := client.CMEs(ctx, window)
	if err != nil {
		fatalFetch(log, "coronal mass ejections", err)
	}
	log.Infow("fetched coronal mass ejections", "count", len(cmes))

	storms, err := client.Storms(ctx, window)
	if err != nil {
		fatalFetch(log, "geomagnetic storms", err)
	}
	log.Infow("fetched geomagnetic storms", "count", len(storms))

	_, span := telemetry.Tracer().Start(ctx, "pipeline.derive")
	ix := index.Build(flares, cmes, storms)
	res := correlate.Resolve(flares, cmes, ix)
	sum := summary.Build(flares, cmes, storms, res)
	span.End()

	for _, p := range res.Pairs {
		metrics.PairsResolved.WithLabelValues(string(p.Source.Type) + "-" + string(p.Target.Type)).Inc()
	}
	metrics.ChainsResolved.Add(float64(sum.Chains))
	metrics.AnomaliesFlagged.Add(float64(sum.Anomalies))

	log.Infow("correlation resolved",
		"indexed", ix.Len(),
		"pairs", sum.Pairs,
		"chains", sum.Chains,
		"anomalies", sum.Anomalies,
	)

	if strings.EqualFold(cfg.Format, "text") {
		report.Print(os.Stdout, flares, cmes, storms, sum)
	} else {
		dst := os.Stdout
		if cfg.OutPath != "" {
			f, err := os.Create(cfg.OutPath)
			if err != nil {
				log.Fatalw("create output file", "path", cfg.OutPath, "err", err)
			}
			defer f.Close()
			dst = f
		}
		w, err := output.NewWriter(cfg.Format, dst)
		if err != nil {
			log.Fatalw("output writer", "err", err)
		}
		ds := &output.Dataset{
			GeneratedAt: time.Now().UTC(),
			WindowStart: start,
			WindowEnd:   end,
			Flares:      flares,
			CMEs:        cmes,
			Storms:      storms,
			Pairs:       res.Pairs,
			Chains:      res.Chains,
			Summary:     sum,
		}
		if err := w.Write(ds); err != nil {
			log.Fatalw("write output", "err", err)
		}
	}

	total := len(flares) + len(cmes) + len(storms)
	if total == 0 {
		fmt.Println("No events found in the specified date range.")
		return
	}

	if !cfg.NoChart {
		title := fmt.Sprintf("Space Weather Events: %s to %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
		if err := chart.Timeline(flares, cmes, storms, res.Pairs, title, cfg.ChartPath); err != nil {
			log.Fatalw("chart generation failed", "path", cfg.ChartPath, "err", err)
		}
		log.Infow("chart saved", "path", cfg.ChartPath)
	}
}

func fatalFetch(log *logging.Logger, what string, err error) {
	var fe *donki.FetchError
	if errors.As(err, &fe) {
		log.Fatalw("failed to fetch "+what,
			"err", err,
			"hint", "check your internet connection and API key, then try again",
		)
	}
	log.Fatalw("failed to process "+what, "err", err)
}
