package xid

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestFromTimeUsesUTCMillis(t *testing.T) {
	loc := time.FixedZone("BOT", -4*3600)
	at := time.Date(2024, 1, 5, 6, 0, 0, 123456789, loc)

	if got := FromTime(at); got != "2024-01-05T10:00:00.123Z" {
		t.Fatalf("unexpected id %q", got)
	}
}

func TestNewIsUUID(t *testing.T) {
	a, b := New(), New()
	if a == b {
		t.Fatalf("expected distinct ids")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("expected uuid, got %q: %v", a, err)
	}
}
