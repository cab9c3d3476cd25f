package cache

import "time"

// BytesCache stores raw bytes with TTL. Insight payloads are cached as the
// serialized JSON that would be returned to the client.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
	DeletePrefix(prefix string) error
}
