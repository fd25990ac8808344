package library

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Id prefixes for generated items.
const (
	PrefixPromptCategory     = "cat"
	PrefixCheckpointCategory = "cpcat"
	PrefixPrompt             = "p"
	PrefixCheckpoint         = "cp"
)

// TimestampLayout is local time with a numeric offset and no fraction,
// e.g. 2024-03-02T14:05:30+0000.
const TimestampLayout = "2006-01-02T15:04:05-0700"

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewULID returns a new ULID string.
func NewULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewID returns "<prefix>_<ulid>" with the ULID lowercased.
func NewID(prefix string) string {
	return prefix + "_" + strings.ToLower(NewULID())
}

// CategoryPrefix returns the id prefix for new categories of kind.
func CategoryPrefix(kind Kind) string {
	if kind == KindCheckpoint {
		return PrefixCheckpointCategory
	}
	return PrefixPromptCategory
}

// Timestamp formats t in local time using TimestampLayout.
func Timestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// Now is Timestamp(time.Now()).
func Now() string {
	return Timestamp(time.Now())
}
