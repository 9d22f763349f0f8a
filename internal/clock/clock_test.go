package clock

import (
	"testing"
	"time"
)

func TestInZoneConvertsNow(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("WAT", 3600)
	c := InZone(zone)
	if c.Location() != zone {
		t.Fatalf("Location() = %v, want %v", c.Location(), zone)
	}
	now := c.Now()
	if now.Location() != zone {
		t.Fatalf("Now() in %v, want %v", now.Location(), zone)
	}
}

func TestFixed(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.FixedZone("WAT", 3600))
	c := Fixed(at)
	if !c.Now().Equal(at) {
		t.Fatalf("Now() = %v, want %v", c.Now(), at)
	}
	if c.Location() != at.Location() {
		t.Fatal("Location() does not match the fixed instant")
	}
}
