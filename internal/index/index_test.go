package index

import (
	"testing"
	"time"

	"github.com/heliotrack/heliotrack/internal/event"
)

func ev(id string, t event.Type, start time.Time) event.Event {
	return event.Event{ID: id, Type: t, Start: start}
}

func TestBuild_Lookup(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	flares := []event.Event{ev("F1", event.TypeFlare, t0)}
	cmes := []event.Event{ev("C1", event.TypeCME, t0.Add(2 * time.Hour))}
	storms := []event.Event{ev("G1", event.TypeStorm, t0.Add(36 * time.Hour))}

	ix := Build(flares, cmes, storms)
	if ix.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ix.Len())
	}
	for _, id := range []string{"F1", "C1", "G1"} {
		got, ok := ix.Lookup(id)
		if !ok {
			t.Fatalf("Lookup(%q) missing", id)
		}
		if got.ID != id {
			t.Fatalf("Lookup(%q) returned %q", id, got.ID)
		}
	}
	if _, ok := ix.Lookup("absent"); ok {
		t.Error("Lookup of absent id should report not found")
	}
}

func TestBuild_CollisionLastWriteWins(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	flares := []event.Event{ev("X", event.TypeFlare, t0)}
	storms := []event.Event{ev("X", event.TypeStorm, t0.Add(time.Hour))}

	ix := Build(flares, storms)
	got, ok := ix.Lookup("X")
	if !ok {
		t.Fatal("Lookup missing after collision")
	}
	if got.Type != event.TypeStorm {
		t.Errorf("collision winner = %s, want later-inserted GST", got.Type)
	}
}

func TestBuild_Empty(t *testing.T) {
	ix := Build(nil, nil, nil)
	if ix.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", ix.Len())
	}
	if _, ok := ix.Lookup("anything"); ok {
		t.Error("empty index should resolve nothing")
	}
}
