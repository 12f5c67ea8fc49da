package utils

import (
	"math"
	"testing"
)

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{120, "2:00"},
		{119, "1:59"},
		{61, "1:01"},
		{10, "0:10"},
		{9, "0:09"},
		{0, "0:00"},
		{-5, "0:00"},
		{3600, "60:00"},
	}

	for _, tt := range tests {
		if got := FormatCountdown(tt.seconds); got != tt.want {
			t.Errorf("FormatCountdown(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestHealthTierFor(t *testing.T) {
	tests := []struct {
		health, max int
		want        HealthTier
	}{
		{100, 100, HealthGood},
		{61, 100, HealthGood},
		{60, 100, HealthWarning},
		{31, 100, HealthWarning},
		{30, 100, HealthCritical},
		{0, 100, HealthCritical},
		{130, 200, HealthGood},
		{50, 0, HealthCritical},
	}

	for _, tt := range tests {
		if got := HealthTierFor(tt.health, tt.max); got != tt.want {
			t.Errorf("HealthTierFor(%d, %d) = %v, want %v", tt.health, tt.max, got, tt.want)
		}
	}
}

func TestHealthFraction(t *testing.T) {
	if f := HealthFraction(50, 100); f != 0.5 {
		t.Errorf("Expected 0.5, got %g", f)
	}
	if f := HealthFraction(150, 100); f != 1 {
		t.Errorf("Expected clamp to 1, got %g", f)
	}
	if f := HealthFraction(10, 0); f != 0 {
		t.Errorf("Expected 0 for zero max, got %g", f)
	}
}

func TestPulseAlpha(t *testing.T) {
	if a := PulseAlpha(0, 3); a != 1 {
		t.Errorf("Expected fully opaque at start, got %g", a)
	}
	if a := PulseAlpha(1.4, 3); a != 1 {
		t.Errorf("Expected opaque in first half, got %g", a)
	}
	if a := PulseAlpha(3, 3); math.Abs(a) > 1e-9 {
		t.Errorf("Expected transparent at end, got %g", a)
	}
	if a := PulseAlpha(1, 0); a != 0 {
		t.Errorf("Expected 0 for zero duration, got %g", a)
	}
}

func TestApproach(t *testing.T) {
	v := 100.0
	for i := 0; i < 120; i++ {
		v = Approach(v, 40, 5, 1.0/60)
	}
	if math.Abs(v-40) > 0.5 {
		t.Errorf("Expected display value to settle near 40, got %g", v)
	}
	if got := Approach(10, 20, 100, 1); got != 20 {
		t.Errorf("Expected to reach target when rate*dt >= 1, got %g", got)
	}
}

func TestArenaView(t *testing.T) {
	view := FitArena(800, 600, 20, 20)
	if view.Scale != 14 {
		t.Fatalf("Expected scale 14, got %g", view.Scale)
	}

	sx, sy := view.WorldToScreen(10, -5)
	if sx != 400+140 || sy != 300-70 {
		t.Errorf("Unexpected screen position (%g, %g)", sx, sy)
	}

	x, z := view.ScreenToWorld(sx, sy)
	if math.Abs(x-10) > 1e-9 || math.Abs(z+5) > 1e-9 {
		t.Errorf("Expected round trip to (10, -5), got (%g, %g)", x, z)
	}
	if view.Length(2) != 28 {
		t.Errorf("Expected 28 pixels, got %g", view.Length(2))
	}
}
