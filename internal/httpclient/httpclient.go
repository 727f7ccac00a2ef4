package httpclient

import (
	"crypto/tls"
	"net/http"
	"time"
)

// Default returns the tuned client used for DONKI API calls. The
// per-request budget is generous because DONKI responses for a 30-day
// window can run to several megabytes.
func Default() *http.Client {
	tr := &http.Transport{
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: false},
		DisableCompression:    false,
		MaxIdleConns:          16,
		MaxConnsPerHost:       4,
		MaxIdleConnsPerHost:   4,
		ResponseHeaderTimeout: 20 * time.Second,
		IdleConnTimeout:       30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport: tr,
		Timeout:   60 * time.Second,
	}
}
