package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/heliotrack/heliotrack/internal/correlate"
	"github.com/heliotrack/heliotrack/internal/event"
	"github.com/heliotrack/heliotrack/internal/summary"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPrint_Counts(t *testing.T) {
	flares := []event.Event{
		{ID: "F1", Type: event.TypeFlare, Start: t0, Intensity: "X1.0"},
	}
	storms := []event.Event{
		{ID: "G1", Type: event.TypeStorm, Start: t0.Add(38 * time.Hour), Intensity: "Kp 7"},
	}
	sum := summary.Build(flares, nil, storms, correlate.Result{})

	var buf bytes.Buffer
	Print(&buf, flares, nil, storms, sum)
	out := buf.String()

	if !strings.Contains(out, "Solar Flares (FLR): 1 events") {
		t.Errorf("missing flare count:\n%s", out)
	}
	if !strings.Contains(out, "Coronal Mass Ejections (CME): 0 events") {
		t.Errorf("missing empty CME count:\n%s", out)
	}
	if !strings.Contains(out, "Class X1.0") {
		t.Errorf("missing flare class line:\n%s", out)
	}
	if strings.Contains(out, "travel time") {
		t.Errorf("no pairs, travel line should be absent:\n%s", out)
	}
}

func TestPrint_TravelAndAnomalies(t *testing.T) {
	cme := event.Event{ID: "C1", Type: event.TypeCME, Start: t0, Intensity: "S (800 km/s)"}
	storm := event.Event{ID: "G1", Type: event.TypeStorm, Start: t0.Add(36 * time.Hour), Intensity: "Kp 7"}
	res := correlate.Result{Pairs: []correlate.Pair{
		{Source: cme, Target: storm, Elapsed: 36 * time.Hour, Hours: 36},
		{Source: cme, Target: storm, Elapsed: -2 * time.Hour, Hours: -2, Anomalous: true},
	}}
	sum := summary.Build(nil, []event.Event{cme}, []event.Event{storm}, res)

	var buf bytes.Buffer
	Print(&buf, nil, []event.Event{cme}, []event.Event{storm}, sum)
	out := buf.String()

	if !strings.Contains(out, "36.0 hours (1.5 days)") {
		t.Errorf("missing travel time:\n%s", out)
	}
	if !strings.Contains(out, "1 anomalous links") {
		t.Errorf("missing anomaly note:\n%s", out)
	}
}

func TestPrint_TruncatesLongLists(t *testing.T) {
	var flares []event.Event
	for i := 0; i < 8; i++ {
		flares = append(flares, event.Event{
			ID:        fmt.Sprintf("F%d", i),
			Type:      event.TypeFlare,
			Start:     t0.Add(time.Duration(i) * time.Hour),
			Intensity: "C1.0",
		})
	}
	sum := summary.Build(flares, nil, nil, correlate.Result{})

	var buf bytes.Buffer
	Print(&buf, flares, nil, nil, sum)
	out := buf.String()

	if !strings.Contains(out, "... and 3 more") {
		t.Errorf("missing overflow line:\n%s", out)
	}
	if strings.Count(out, "Class C1.0") != 5 {
		t.Errorf("expected exactly 5 listed flares:\n%s", out)
	}
}
