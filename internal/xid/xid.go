package xid

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout renders instants the way browser ISO strings do.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FromTime derives a transaction id from its creation instant.
func FromTime(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func New() string {
	return uuid.NewString()
}
