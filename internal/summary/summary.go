// Package summary computes descriptive statistics over normalized events
// and resolved propagation pairs. Every statistic degrades to absent on
// empty input instead of failing.
package summary

import (
	"time"

	"github.com/heliotrack/heliotrack/internal/correlate"
	"github.com/heliotrack/heliotrack/internal/event"
)

// MagnitudeStats aggregates the parsed numeric readings of one event type.
// Samples counts only events that carried a parseable magnitude.
type MagnitudeStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	Samples int     `json:"samples"`
}

// TypeSummary describes one event type within a run.
type TypeSummary struct {
	Count     int             `json:"count"`
	First     time.Time       `json:"first,omitempty"`
	Last      time.Time       `json:"last,omitempty"`
	Magnitude *MagnitudeStats `json:"magnitude,omitempty"`
}

// Travel is the mean CME→storm propagation time over non-anomalous pairs.
type Travel struct {
	Hours float64 `json:"hours"`
	Days  float64 `json:"days"`
	Pairs int     `json:"pairs"`
}

// Summary is the run-level aggregate handed to the report and output
// layers.
type Summary struct {
	Flares    TypeSummary `json:"flares"`
	CMEs      TypeSummary `json:"cmes"`
	Storms    TypeSummary `json:"storms"`
	Pairs     int         `json:"pairs"`
	Chains    int         `json:"chains"`
	Anomalies int         `json:"anomalies"`
	Travel    *Travel     `json:"travel,omitempty"`
}

// Build aggregates the three event lists and the resolver output.
func Build(flares, cmes, storms []event.Event, res correlate.Result) Summary {
	s := Summary{
		Flares: summarizeType(flares),
		CMEs:   summarizeType(cmes),
		Storms: summarizeType(storms),
		Pairs:  len(res.Pairs),
		Chains: len(res.Chains),
	}

	var hours float64
	var n int
	for _, p := range res.Pairs {
		if p.Anomalous {
			s.Anomalies++
			continue
		}
		if p.Source.Type == event.TypeCME && p.Target.Type == event.TypeStorm {
			hours += p.Elapsed.Hours()
			n++
		}
	}
	if n > 0 {
		mean := hours / float64(n)
		s.Travel = &Travel{Hours: mean, Days: mean / 24, Pairs: n}
	}
	return s
}

func summarizeType(events []event.Event) TypeSummary {
	ts := TypeSummary{Count: len(events)}
	var ms MagnitudeStats
	var sum float64
	for _, e := range events {
		if ts.First.IsZero() || e.Start.Before(ts.First) {
			ts.First = e.Start
		}
		if ts.Last.IsZero() || e.Start.After(ts.Last) {
			ts.Last = e.Start
		}
		if !e.HasMagnitude {
			continue
		}
		if ms.Samples == 0 || e.Magnitude < ms.Min {
			ms.Min = e.Magnitude
		}
		if ms.Samples == 0 || e.Magnitude > ms.Max {
			ms.Max = e.Magnitude
		}
		sum += e.Magnitude
		ms.Samples++
	}
	if ms.Samples > 0 {
		ms.Mean = sum / float64(ms.Samples)
		ts.Magnitude = &ms
	}
	return ts
}
