package pipeline

import "github.com/oklog/ulid/v2"

// newID returns a lexically sortable, monotonic ULID string.
func newID() string {
	return ulid.Make().String()
}
