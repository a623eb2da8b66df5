package charts

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kilianp07/chargereport/core/report"
)

var (
	// ErrNoData is returned when a chart has nothing to plot.
	ErrNoData = errors.New("no data to chart")
	// ErrUnknownChart is returned for a chart name outside Names.
	ErrUnknownChart = errors.New("unknown chart")
)

// Names lists the charts of a report, in display order.
var Names = []string{"daily", "kwh", "duration", "frequency", "hourly"}

// Renderer draws report tables as PNG images.
type Renderer struct {
	cfg Config
}

// NewRenderer returns a renderer using cfg with defaults applied.
func NewRenderer(cfg Config) *Renderer {
	cfg.SetDefaults()
	return &Renderer{cfg: cfg}
}

// Render writes the named chart of rep to w.
func (r *Renderer) Render(w io.Writer, name string, rep report.Report) error {
	var err error
	switch name {
	case "daily":
		err = r.Daily(w, rep.Daily)
	case "kwh":
		err = r.Buckets(w, "Sessions by energy delivered (kWh)", rep.KWh)
	case "duration":
		err = r.Buckets(w, "Sessions by duration (min)", rep.Duration)
	case "frequency":
		err = r.Frequency(w, rep.Frequency)
	case "hourly":
		err = r.Hourly(w, rep.Hourly)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	if err != nil {
		return fmt.Errorf("render %s chart: %w", name, err)
	}
	return nil
}

// WriteAll renders every chart of rep into dir as <name>.png and returns
// the written paths. Charts with nothing to plot are skipped.
func (r *Renderer) WriteAll(dir string, rep report.Report) ([]string, error) {
	if dir == "" {
		dir = r.cfg.OutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	paths := make([]string, 0, len(Names))
	for _, name := range Names {
		path := filepath.Join(dir, name+".png")
		if err := r.writeFile(path, name, rep); err != nil {
			if errors.Is(err, ErrNoData) {
				_ = os.Remove(path)
				continue
			}
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Renderer) writeFile(path, name string, rep report.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return r.Render(f, name, rep)
}

// Daily draws energy per day with the session count on a secondary axis.
func (r *Renderer) Daily(w io.Writer, rows []report.DailyRow) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	days := make([]time.Time, len(rows))
	energy := make([]float64, len(rows))
	sessions := make([]float64, len(rows))
	for i, row := range rows {
		days[i] = row.Date
		energy[i] = row.EnergyKWh
		sessions[i] = float64(row.Sessions)
	}
	first, last := days[0], days[len(days)-1]
	ch := chart.Chart{
		Title:      "Daily energy consumption",
		Width:      r.cfg.Width,
		Height:     r.cfg.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(first.Add(-12 * time.Hour)),
				Max: chart.TimeToFloat64(last.Add(12 * time.Hour)),
			},
		},
		YAxis:          chart.YAxis{Name: "kWh", Range: yRange(energy)},
		YAxisSecondary: chart.YAxis{Name: "Sessions", Range: yRange(sessions)},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Energy (kWh)",
				XValues: days,
				YValues: energy,
				Style:   lineStyle(chart.ColorBlue),
			},
			chart.TimeSeries{
				Name:    "Sessions",
				XValues: days,
				YValues: sessions,
				YAxis:   chart.YAxisSecondary,
				Style:   lineStyle(chart.ColorOrange),
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// Buckets draws one bar per histogram bin.
func (r *Renderer) Buckets(w io.Writer, title string, buckets []report.Bucket) error {
	bars := make([]chart.Value, len(buckets))
	for i, b := range buckets {
		bars[i] = chart.Value{Label: b.Label, Value: float64(b.Sessions)}
	}
	return r.bars(w, title, "Sessions", bars)
}

// Frequency draws vehicles per session-count bin, labelling each bar with
// its share of vehicles.
func (r *Renderer) Frequency(w io.Writer, rows []report.FrequencyRow) error {
	bars := make([]chart.Value, len(rows))
	for i, row := range rows {
		bars[i] = chart.Value{Label: row.Label + " (" + row.Percent + ")", Value: float64(row.Vehicles)}
	}
	return r.bars(w, "Vehicles by number of sessions", "Vehicles", bars)
}

func (r *Renderer) bars(w io.Writer, title, unit string, bars []chart.Value) error {
	if len(bars) == 0 {
		return ErrNoData
	}
	ys := make([]float64, len(bars))
	for i, b := range bars {
		ys[i] = b.Value
		bars[i].Style = chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue}
	}
	bw := barWidth(r.cfg.Width, len(bars))
	bc := chart.BarChart{
		Title:      title,
		Width:      r.cfg.Width,
		Height:     r.cfg.Height,
		BarWidth:   bw,
		BarSpacing: bw / 2,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      chart.YAxis{Name: unit, Range: yRange(ys)},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

// Hourly draws total sessions per hour of day as bars and the average per
// day as a line on the secondary axis.
func (r *Renderer) Hourly(w io.Writer, rows []report.HourlyRow) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	const half = 0.35
	barX := make([]float64, 0, 4*len(rows))
	barY := make([]float64, 0, 4*len(rows))
	hours := make([]float64, len(rows))
	totals := make([]float64, len(rows))
	avg := make([]float64, len(rows))
	for i, row := range rows {
		h := float64(row.Hour)
		v := float64(row.TotalSessions)
		barX = append(barX, h-half, h-half, h+half, h+half)
		barY = append(barY, 0, v, v, 0)
		hours[i] = h
		totals[i] = v
		avg[i] = row.AvgSessions
	}
	ticks := make([]chart.Tick, 0, report.HoursPerDay/2)
	for h := 0; h < report.HoursPerDay; h += 2 {
		ticks = append(ticks, chart.Tick{Value: float64(h), Label: fmt.Sprintf("%02d:00", h)})
	}
	ch := chart.Chart{
		Title:      "Charging activity by hour of day",
		Width:      r.cfg.Width,
		Height:     r.cfg.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Hour",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: report.HoursPerDay - 0.5},
		},
		YAxis:          chart.YAxis{Name: "Total sessions", Range: yRange(totals)},
		YAxisSecondary: chart.YAxis{Name: "Average sessions per day", Range: yRange(avg)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Total sessions",
				XValues: barX,
				YValues: barY,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorBlue.WithAlpha(160),
					StrokeWidth: 1,
				},
			},
			chart.ContinuousSeries{
				Name:    "Average per day",
				XValues: hours,
				YValues: avg,
				YAxis:   chart.YAxisSecondary,
				Style:   lineStyle(chart.ColorOrange),
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotWidth:    3,
		DotColor:    col,
	}
}

// yRange starts at zero and leaves headroom above the largest value. An
// all-zero series still gets a non-empty range.
func yRange(values []float64) *chart.ContinuousRange {
	hi := 0.0
	for _, v := range values {
		if v > hi {
			hi = v
		}
	}
	hi *= 1.1
	if hi < 1 {
		hi = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: hi}
}

func barWidth(width, n int) int {
	w := width / (2 * n)
	if w < 8 {
		w = 8
	}
	if w > 80 {
		w = 80
	}
	return w
}
