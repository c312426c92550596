package cache

// KeyValueCache holds the latest value set for each key. Implementations
// may drop values on their own, e.g. once they expire.
type KeyValueCache[T any] interface {
	// Get returns the value of key and whether it is present.
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	// Clear drops every value.
	Clear()
	// Len returns the number of values held, expired ones included until
	// they are dropped.
	Len() int
}
