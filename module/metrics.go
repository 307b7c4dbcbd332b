package module

import (
	"time"
)

// HashMetrics records the outcome of digest computations over files.
type HashMetrics interface {
	// FileHashed tracks one successfully hashed input of the given size and
	// the time spent reading and hashing it.
	FileHashed(algo string, bytes int64, duration time.Duration)

	// HashFailed tracks an input that could not be hashed.
	HashFailed(algo string)

	// DigestChecked tracks one verified line of a checksum list.
	DigestChecked(algo string, ok bool)
}
