package breathe

import (
	"strings"
	"testing"
	"time"
)

func TestAt(t *testing.T) {
	tests := []struct {
		name       string
		elapsed    time.Duration
		wantPhase  Phase
		wantLeft   int
		wantCycles int
	}{
		{"start", 0, Inhale, 4, 0},
		{"end of inhale", 3900 * time.Millisecond, Inhale, 1, 0},
		{"hold", 4 * time.Second, Hold, 7, 0},
		{"exhale", 11 * time.Second, Exhale, 8, 0},
		{"last exhale second", 18 * time.Second, Exhale, 1, 0},
		{"second cycle", 19 * time.Second, Inhale, 4, 1},
		{"negative clamps", -time.Second, Inhale, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phase, left, cycles := At(tt.elapsed)
			if phase != tt.wantPhase || left != tt.wantLeft || cycles != tt.wantCycles {
				t.Errorf("At(%v) = (%v, %d, %d), want (%v, %d, %d)",
					tt.elapsed, phase, left, cycles, tt.wantPhase, tt.wantLeft, tt.wantCycles)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	m := New()
	if !strings.Contains(m.View(), "Press space to begin") {
		t.Errorf("idle view missing prompt: %q", m.View())
	}

	m.Toggle(start)
	m.Tick(start.Add(5 * time.Second))
	if !m.Running() {
		t.Fatal("expected exercise to be running")
	}
	if !strings.Contains(m.View(), "Hold") {
		t.Errorf("expected hold phase, got %q", m.View())
	}

	m.Toggle(start.Add(6 * time.Second))
	if m.Running() {
		t.Error("expected exercise to stop")
	}
}
