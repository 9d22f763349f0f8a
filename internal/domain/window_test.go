package domain

import (
	"testing"
	"time"
)

var lagos = time.FixedZone("WAT", 3600)

func at(h, m, s int) time.Time {
	return time.Date(2026, 3, 2, h, m, s, 0, lagos)
}

func TestClassifyBands(t *testing.T) {
	t.Parallel()
	start := at(10, 0, 0)

	tests := []struct {
		name string
		now  time.Time
		want Window
	}{
		{name: "exactly 30m", now: at(9, 30, 0), want: Window30},
		{name: "just inside 30m band top", now: at(9, 29, 31), want: Window30}, // 30m29s until start
		{name: "exactly 30.5m is out", now: at(9, 29, 30), want: WindowNone},
		{name: "just inside 30m band bottom", now: at(9, 30, 29), want: Window30}, // 29m31s until start
		{name: "31m before", now: at(9, 29, 0), want: WindowNone},
		{name: "29m before", now: at(9, 31, 0), want: WindowNone},
		{name: "exactly 5m", now: at(9, 55, 0), want: Window5},
		{name: "just inside 5m band top", now: at(9, 54, 31), want: Window5},
		{name: "exactly 5.5m is out", now: at(9, 54, 30), want: WindowNone},
		{name: "just inside 5m band bottom", now: at(9, 55, 29), want: Window5},
		{name: "6m before", now: at(9, 54, 0), want: WindowNone},
		{name: "4m before", now: at(9, 56, 0), want: WindowNone},
		{name: "already started", now: at(10, 1, 0), want: WindowNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.now, start); got != tt.want {
				t.Fatalf("Classify(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestClassifyBandBoundaries(t *testing.T) {
	t.Parallel()
	start := at(10, 0, 0)

	// 29.5 minutes until start is inside the 30m band; 30.5 is outside.
	if got := Classify(start.Add(-29*time.Minute-30*time.Second), start); got != Window30 {
		t.Fatalf("at 29.5m: got %v, want Window30", got)
	}
	if got := Classify(start.Add(-30*time.Minute-30*time.Second), start); got != WindowNone {
		t.Fatalf("at 30.5m: got %v, want WindowNone", got)
	}
	if got := Classify(start.Add(-4*time.Minute-30*time.Second), start); got != Window5 {
		t.Fatalf("at 4.5m: got %v, want Window5", got)
	}
	if got := Classify(start.Add(-5*time.Minute-30*time.Second), start); got != WindowNone {
		t.Fatalf("at 5.5m: got %v, want WindowNone", got)
	}
}

func TestClassifyWindowsDisjoint(t *testing.T) {
	t.Parallel()
	start := at(12, 0, 0)

	// Sweep a whole morning in 10s steps: no instant may satisfy both bands,
	// and each band must be hit for exactly one minute of the sweep.
	var hits30, hits5 int
	for now := at(8, 0, 0); now.Before(at(12, 30, 0)); now = now.Add(10 * time.Second) {
		switch Classify(now, start) {
		case Window30:
			hits30++
		case Window5:
			hits5++
		}
	}
	if want := 6; hits30 != want { // 60s band / 10s step
		t.Errorf("30m band hit %d steps, want %d", hits30, want)
	}
	if want := 6; hits5 != want {
		t.Errorf("5m band hit %d steps, want %d", hits5, want)
	}
}
