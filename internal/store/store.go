package store

// KV is a whole-document key-value store. Each key maps to one JSON
// document that is read and written in full. Read reports whether the key
// exists; a missing key is not an error, so callers can treat it as empty
// initial state. A document that exists but cannot be decoded is an error.
type KV interface {
	Read(key string, out any) (bool, error)
	Write(key string, value any) error
}
