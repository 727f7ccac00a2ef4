// Package chart renders the propagation timeline: one horizontal band per
// event type, markers at event starts, duration bars for flares and
// connector lines for resolved propagation pairs.
package chart

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/heliotrack/heliotrack/internal/correlate"
	"github.com/heliotrack/heliotrack/internal/event"
)

const (
	yStorm = 1.0
	yCME   = 2.0
	yFlare = 3.0
)

var (
	flareColor = color.RGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF}
	cmeColor   = color.RGBA{R: 0x4E, G: 0xCD, B: 0xC4, A: 0xFF}
	stormColor = color.RGBA{R: 0x9B, G: 0x59, B: 0xB6, A: 0xFF}
	linkColor  = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0x66}
)

func band(t event.Type) float64 {
	switch t {
	case event.TypeFlare:
		return yFlare
	case event.TypeCME:
		return yCME
	default:
		return yStorm
	}
}

// Timeline renders the chart to a PNG at path. It assumes at least one
// event across the three lists; the caller skips rendering otherwise.
func Timeline(flares, cmes, storms []event.Event, pairs []correlate.Pair, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date (UTC)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Y.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: yStorm, Label: "Geomagnetic Storms"},
		{Value: yCME, Label: "Coronal Mass Ejections"},
		{Value: yFlare, Label: "Solar Flares"},
	})
	p.Y.Min, p.Y.Max = 0.5, 3.7
	p.Legend.Top = true

	if err := setXRange(p, flares, cmes, storms); err != nil {
		return err
	}

	// Connectors first so event markers draw on top of them.
	for _, pr := range pairs {
		l, err := plotter.NewLine(plotter.XYs{
			{X: float64(pr.Source.Start.Unix()), Y: band(pr.Source.Type)},
			{X: float64(pr.Target.Start.Unix()), Y: band(pr.Target.Type)},
		})
		if err != nil {
			return fmt.Errorf("chart: connector: %w", err)
		}
		l.LineStyle.Color = linkColor
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
	}

	// Flare duration bars.
	for _, f := range flares {
		if f.End == nil {
			continue
		}
		l, err := plotter.NewLine(plotter.XYs{
			{X: float64(f.Start.Unix()), Y: yFlare},
			{X: float64(f.End.Unix()), Y: yFlare},
		})
		if err != nil {
			return fmt.Errorf("chart: duration bar: %w", err)
		}
		l.LineStyle.Color = flareColor
		l.LineStyle.Width = vg.Points(3)
		p.Add(l)
	}

	if err := addMarkers(p, flares, yFlare, flareColor, "Solar Flares (FLR)"); err != nil {
		return err
	}
	if err := addMarkers(p, cmes, yCME, cmeColor, "Coronal Mass Ejections (CME)"); err != nil {
		return err
	}
	if err := addMarkers(p, storms, yStorm, stormColor, "Geomagnetic Storms (GST)"); err != nil {
		return err
	}

	return p.Save(16*vg.Inch, 10*vg.Inch, path)
}

func addMarkers(p *plot.Plot, events []event.Event, y float64, col color.Color, name string) error {
	if len(events) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(events))
	for i, e := range events {
		xys[i] = plotter.XY{X: float64(e.Start.Unix()), Y: y}
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("chart: markers: %w", err)
	}
	s.GlyphStyle = draw.GlyphStyle{Color: col, Radius: vg.Points(5), Shape: draw.CircleGlyph{}}
	p.Add(s)
	p.Legend.Add(name, s)
	return nil
}

func setXRange(p *plot.Plot, lists ...[]event.Event) error {
	var min, max time.Time
	for _, l := range lists {
		for _, e := range l {
			if min.IsZero() || e.Start.Before(min) {
				min = e.Start
			}
			if max.IsZero() || e.Start.After(max) {
				max = e.Start
			}
		}
	}
	if min.IsZero() {
		return fmt.Errorf("chart: no events to plot")
	}
	p.X.Min = float64(min.AddDate(0, 0, -1).Unix())
	p.X.Max = float64(max.AddDate(0, 0, 1).Unix())
	return nil
}
