package donki

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/heliotrack/heliotrack/internal/event"
)

// DONKI timestamps come minute-granular with a literal Z ("2024-01-01T00:00Z");
// some endpoints carry full RFC 3339.
var timeLayouts = []string{"2006-01-02T15:04Z07:00", time.RFC3339}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

func linkIDs(linked []rawLinked) []string {
	var ids []string
	for _, l := range linked {
		if l.ActivityID != "" {
			ids = append(ids, l.ActivityID)
		}
	}
	return ids
}

func withMagnitude(e event.Event) event.Event {
	e.Magnitude, e.HasMagnitude = event.Magnitude(e.Type, e.Intensity)
	return e
}

func normalizeFlare(r rawFlare) (event.Event, error) {
	start, err := parseTime(r.BeginTime)
	if err != nil {
		return event.Event{}, &ParseError{Endpoint: EndpointFlares, RecordID: r.FlrID, Field: "beginTime", Err: err}
	}
	var end *time.Time
	if r.EndTime != "" {
		t, err := parseTime(r.EndTime)
		if err != nil {
			return event.Event{}, &ParseError{Endpoint: EndpointFlares, RecordID: r.FlrID, Field: "endTime", Err: err}
		}
		end = &t
	}
	intensity := r.ClassType
	if intensity == "" {
		intensity = "Unknown"
	}
	return withMagnitude(event.Event{
		ID:        r.FlrID,
		Type:      event.TypeFlare,
		Start:     start,
		End:       end,
		Intensity: intensity,
		Links:     linkIDs(r.LinkedEvents),
	}), nil
}

func normalizeCME(r rawCME) (event.Event, error) {
	start, err := parseTime(r.StartTime)
	if err != nil {
		return event.Event{}, &ParseError{Endpoint: EndpointCMEs, RecordID: r.ActivityID, Field: "startTime", Err: err}
	}
	// Only the first analysis feeds the intensity label, even when later
	// ones exist.
	intensity := "N/A"
	if len(r.CMEAnalyses) > 0 {
		a := r.CMEAnalyses[0]
		typ := a.Type
		if typ == "" {
			typ = "Unknown"
		}
		intensity = fmt.Sprintf("%s (%s km/s)", typ, strconv.FormatFloat(a.Speed, 'f', -1, 64))
	}
	return withMagnitude(event.Event{
		ID:        r.ActivityID,
		Type:      event.TypeCME,
		Start:     start,
		Intensity: intensity,
		Links:     linkIDs(r.LinkedEvents),
	}), nil
}

func normalizeStorm(r rawStorm) (event.Event, error) {
	start, err := parseTime(r.StartTime)
	if err != nil {
		return event.Event{}, &ParseError{Endpoint: EndpointStorms, RecordID: r.GstID, Field: "startTime", Err: err}
	}
	// Peak Kp across all readings; the first maximum wins a tie.
	intensity := "Unknown"
	if len(r.AllKpIndex) > 0 {
		best := r.AllKpIndex[0].KpIndex
		for _, kp := range r.AllKpIndex[1:] {
			if kp.KpIndex > best {
				best = kp.KpIndex
			}
		}
		intensity = "Kp " + strconv.FormatFloat(best, 'f', -1, 64)
	}
	return withMagnitude(event.Event{
		ID:        r.GstID,
		Type:      event.TypeStorm,
		Start:     start,
		Intensity: intensity,
		Links:     linkIDs(r.LinkedEvents),
	}), nil
}
