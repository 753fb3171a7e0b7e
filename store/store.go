// Package store provides key-value backends for the session timer's
// persisted activity timestamp.
package store

// Store is the durable key-value surface the session timer mirrors its
// last-activity timestamp through. Implementations never surface errors:
// a backend failure reads as a miss and writes are best effort, which is
// the degradation the timer is designed around.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
	Clear()
}
