// Package donki is the client for NASA's DONKI space-weather API. It
// fetches solar flares, coronal mass ejections and geomagnetic storms for
// a date window and normalizes them into uniform event records.
package donki

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/heliotrack/heliotrack/internal/cache"
	"github.com/heliotrack/heliotrack/internal/event"
	"github.com/heliotrack/heliotrack/internal/httpclient"
	"github.com/heliotrack/heliotrack/internal/logging"
	"github.com/heliotrack/heliotrack/internal/metrics"
	"github.com/heliotrack/heliotrack/internal/rate"
	"github.com/heliotrack/heliotrack/internal/telemetry"
)

const (
	DefaultBaseURL = "https://api.nasa.gov/DONKI"
	DefaultAPIKey  = "DEMO_KEY"

	EndpointFlares = "FLR"
	EndpointCMEs   = "CME"
	EndpointStorms = "GST"
)

// Window is an inclusive calendar-date range rendered as the API's
// startDate/endDate query parameters.
type Window struct {
	Start time.Time
	End   time.Time
}

// Options configures a Client. Zero fields take package defaults.
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	// Retries bounds transport-level retry attempts per request.
	// Whatever the count, a request that still fails aborts the run.
	Retries int
	Limiter *rate.Limiter
	Cache   cache.Cache
	HTTP    *http.Client
}

type Client struct {
	baseURL string
	apiKey  string
	ua      string
	retries uint64
	limiter *rate.Limiter
	cache   cache.Cache
	hc      *http.Client
	log     *logging.Logger
}

func New(opts Options, log *logging.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.APIKey == "" {
		opts.APIKey = DefaultAPIKey
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "heliotrack/1.0 (+https://github.com/heliotrack/heliotrack)"
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Limiter == nil {
		opts.Limiter = rate.New(0.5, 3)
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemory(64, 30*time.Minute)
	}
	if opts.HTTP == nil {
		opts.HTTP = httpclient.Default()
	}
	return &Client{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		ua:      opts.UserAgent,
		retries: uint64(opts.Retries),
		limiter: opts.Limiter,
		cache:   opts.Cache,
		hc:      opts.HTTP,
		log:     log,
	}
}

// Flares fetches and normalizes solar flares for the window.
func (c *Client) Flares(ctx context.Context, w Window) ([]event.Event, error) {
	body, err := c.fetch(ctx, EndpointFlares, w)
	if err != nil {
		return nil, err
	}
	var raws []rawFlare
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, &ParseError{Endpoint: EndpointFlares, Field: "payload", Err: err}
	}
	events := make([]event.Event, 0, len(raws))
	for _, r := range raws {
		e, err := normalizeFlare(r)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	metrics.EventsFetched.WithLabelValues(EndpointFlares).Add(float64(len(events)))
	return events, nil
}

// CMEs fetches and normalizes coronal mass ejections for the window.
func (c *Client) CMEs(ctx context.Context, w Window) ([]event.Event, error) {
	body, err := c.fetch(ctx, EndpointCMEs, w)
	if err != nil {
		return nil, err
	}
	var raws []rawCME
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, &ParseError{Endpoint: EndpointCMEs, Field: "payload", Err: err}
	}
	events := make([]event.Event, 0, len(raws))
	for _, r := range raws {
		e, err := normalizeCME(r)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	metrics.EventsFetched.WithLabelValues(EndpointCMEs).Add(float64(len(events)))
	return events, nil
}

// Storms fetches and normalizes geomagnetic storms for the window.
func (c *Client) Storms(ctx context.Context, w Window) ([]event.Event, error) {
	body, err := c.fetch(ctx, EndpointStorms, w)
	if err != nil {
		return nil, err
	}
	var raws []rawStorm
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, &ParseError{Endpoint: EndpointStorms, Field: "payload", Err: err}
	}
	events := make([]event.Event, 0, len(raws))
	for _, r := range raws {
		e, err := normalizeStorm(r)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	metrics.EventsFetched.WithLabelValues(EndpointStorms).Add(float64(len(events)))
	return events, nil
}

// urls returns the request URL and the cache key, which is the same URL
// with the credential stripped.
func (c *Client) urls(endpoint string, w Window) (string, string) {
	q := url.Values{}
	q.Set("startDate", w.Start.UTC().Format("2006-01-02"))
	q.Set("endDate", w.End.UTC().Format("2006-01-02"))
	key := c.baseURL + "/" + endpoint + "?" + q.Encode()
	q.Set("api_key", c.apiKey)
	return c.baseURL + "/" + endpoint + "?" + q.Encode(), key
}

func (c *Client) fetch(ctx context.Context, endpoint string, w Window) ([]byte, error) {
	reqURL, cacheKey := c.urls(endpoint, w)

	if b, ok := c.cache.Get(ctx, cacheKey); ok {
		c.log.Debugw("fetch cache hit", "endpoint", endpoint)
		metrics.FetchesTotal.WithLabelValues(endpoint, "cache").Inc()
		return b, nil
	}

	ctx, span := telemetry.Tracer().Start(ctx, "donki.fetch."+endpoint)
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}

	start := time.Now()
	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", c.ua)
		req.Header.Set("Accept", "application/json")
		resp, err := c.hc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			body = b
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return &FetchError{Endpoint: endpoint, Status: resp.StatusCode}
		default:
			return backoff.Permanent(&FetchError{Endpoint: endpoint, Status: resp.StatusCode})
		}
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		metrics.FetchesTotal.WithLabelValues(endpoint, "error").Inc()
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}

	metrics.FetchDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.FetchesTotal.WithLabelValues(endpoint, "ok").Inc()
	c.cache.Set(ctx, cacheKey, body)
	return body, nil
}
