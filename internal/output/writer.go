// Package output renders the run's dataset in machine-readable formats.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/heliotrack/heliotrack/internal/correlate"
	"github.com/heliotrack/heliotrack/internal/event"
	"github.com/heliotrack/heliotrack/internal/summary"
)

// Format represents the output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
)

// Dataset is everything one run derives, in deterministic order.
type Dataset struct {
	GeneratedAt time.Time         `json:"generated_at"`
	WindowStart time.Time         `json:"window_start"`
	WindowEnd   time.Time         `json:"window_end"`
	Flares      []event.Event     `json:"flares"`
	CMEs        []event.Event     `json:"cmes"`
	Storms      []event.Event     `json:"storms"`
	Pairs       []correlate.Pair  `json:"pairs"`
	Chains      []correlate.Chain `json:"chains"`
	Summary     summary.Summary   `json:"summary"`
}

// Writer handles formatted output.
type Writer struct {
	format    Format
	w         io.Writer
	csvWriter *csv.Writer
	mu        sync.Mutex
	hasHeader bool
}

// NewWriter creates a new output writer.
func NewWriter(format string, w io.Writer) (*Writer, error) {
	var f Format
	switch strings.ToLower(format) {
	case "json":
		f = FormatJSON
	case "jsonl", "ndjson":
		f = FormatJSONL
	case "csv":
		f = FormatCSV
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	writer := &Writer{format: f, w: w}
	if f == FormatCSV {
		writer.csvWriter = csv.NewWriter(w)
	}
	return writer, nil
}

// Write renders the dataset in the configured format.
func (w *Writer) Write(ds *Dataset) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.format {
	case FormatJSON:
		encoder := json.NewEncoder(w.w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(ds)
	case FormatJSONL:
		return w.writeJSONL(ds)
	case FormatCSV:
		return w.writeCSV(ds)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) writeJSONL(ds *Dataset) error {
	enc := json.NewEncoder(w.w)
	line := func(kind string, payload interface{}) error {
		return enc.Encode(map[string]interface{}{"kind": kind, kind: payload})
	}
	for _, list := range [][]event.Event{ds.Flares, ds.CMEs, ds.Storms} {
		for _, e := range list {
			if err := line("event", e); err != nil {
				return err
			}
		}
	}
	for _, p := range ds.Pairs {
		if err := line("pair", p); err != nil {
			return err
		}
	}
	for _, c := range ds.Chains {
		if err := line("chain", c); err != nil {
			return err
		}
	}
	return line("summary", ds.Summary)
}

// CSV columns: record,type,id,start,end,intensity,magnitude,source,target,
// elapsed_hours,anomalous. Event rows fill the first seven; pair rows fill
// source/target/elapsed; chain rows carry the CME id with the flare as
// source, the storm as target and the total flare→storm elapsed time.
func (w *Writer) writeCSV(ds *Dataset) error {
	if !w.hasHeader {
		w.csvWriter.Write([]string{
			"record", "type", "id", "start", "end", "intensity", "magnitude",
			"source", "target", "elapsed_hours", "anomalous",
		})
		w.hasHeader = true
	}

	for _, list := range [][]event.Event{ds.Flares, ds.CMEs, ds.Storms} {
		for _, e := range list {
			end := ""
			if e.End != nil {
				end = e.End.Format(time.RFC3339)
			}
			mag := ""
			if e.HasMagnitude {
				mag = strconv.FormatFloat(e.Magnitude, 'f', -1, 64)
			}
			w.csvWriter.Write([]string{
				"event", string(e.Type), e.ID, e.Start.Format(time.RFC3339),
				end, e.Intensity, mag, "", "", "", "",
			})
		}
	}
	for _, p := range ds.Pairs {
		w.csvWriter.Write([]string{
			"pair", string(p.Source.Type) + "-" + string(p.Target.Type),
			"", "", "", "", "",
			p.Source.ID, p.Target.ID,
			strconv.FormatFloat(p.Hours, 'f', 2, 64),
			strconv.FormatBool(p.Anomalous),
		})
	}
	for _, c := range ds.Chains {
		total := (c.FlareToCME + c.CMEToStorm).Hours()
		w.csvWriter.Write([]string{
			"chain", "FLR-CME-GST", c.CME.ID, "", "", "", "",
			c.Flare.ID, c.Storm.ID,
			strconv.FormatFloat(total, 'f', 2, 64), "",
		})
	}

	w.csvWriter.Flush()
	return w.csvWriter.Error()
}

// Flush flushes any buffered data.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.csvWriter != nil {
		w.csvWriter.Flush()
		return w.csvWriter.Error()
	}
	return nil
}
