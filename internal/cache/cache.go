// Package cache provides the fetch-response cache behind the DONKI
// client. Two implementations exist: an in-process expirable LRU and an
// optional Redis store shared across runs, so repeated invocations inside
// the API's rate-limit window do not refetch identical windows.
package cache

import "context"

// Cache stores raw response bodies keyed by request URL (credential
// stripped). Implementations are best-effort: a failing Get is a miss and
// a failing Set is dropped.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}
