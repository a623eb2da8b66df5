package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/chargereport/core/model"
	"github.com/kilianp07/chargereport/core/report"
)

// ErrUnknownTable is returned for a table name outside Tables.
var ErrUnknownTable = errors.New("unknown table")

// Tables lists the exportable tables of a report.
var Tables = []string{"summary", "daily", "kwh", "duration", "frequency", "hourly"}

// Table returns the named table of rep as a JSON-ready value.
func Table(rep report.Report, name string) (any, error) {
	switch name {
	case "summary":
		return rep.Summary, nil
	case "daily":
		return rep.Daily, nil
	case "kwh":
		return rep.KWh, nil
	case "duration":
		return rep.Duration, nil
	case "frequency":
		return rep.Frequency, nil
	case "hourly":
		return rep.Hourly, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
}

// Tabulate flattens the named table of rep into a header and string rows.
func Tabulate(rep report.Report, name string) ([]string, [][]string, error) {
	switch name {
	case "summary":
		s := rep.Summary
		return []string{"metric", "value"}, [][]string{
			{"total_kwh", formatFloat(s.TotalKWh)},
			{"sessions", strconv.Itoa(s.Sessions)},
			{"active_vehicles", strconv.Itoa(s.ActiveVehicles)},
			{"avg_kwh_per_day", formatFloat(s.AvgKWhPerDay)},
			{"avg_sessions_per_day", formatFloat(s.AvgSessionsPerDay)},
			{"days", strconv.Itoa(s.Days)},
		}, nil
	case "daily":
		rows := make([][]string, len(rep.Daily))
		for i, d := range rep.Daily {
			rows[i] = []string{model.DateKey(d.Date), formatFloat(d.EnergyKWh), strconv.Itoa(d.Sessions)}
		}
		return []string{"date", "energy_kwh", "sessions"}, rows, nil
	case "kwh":
		return []string{"energy_range_kwh", "sessions"}, buckets(rep.KWh), nil
	case "duration":
		return []string{"duration_range_min", "sessions"}, buckets(rep.Duration), nil
	case "frequency":
		rows := make([][]string, len(rep.Frequency))
		for i, f := range rep.Frequency {
			rows[i] = []string{f.Label, strconv.Itoa(f.Vehicles), f.Percent}
		}
		return []string{"sessions_range", "vehicles", "percent"}, rows, nil
	case "hourly":
		rows := make([][]string, len(rep.Hourly))
		for i, h := range rep.Hourly {
			rows[i] = []string{strconv.Itoa(h.Hour), strconv.Itoa(h.TotalSessions), formatFloat(h.AvgSessions)}
		}
		return []string{"hour", "total_sessions", "avg_sessions"}, rows, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
}

func buckets(bs []report.Bucket) [][]string {
	rows := make([][]string, len(bs))
	for i, b := range bs {
		rows[i] = []string{b.Label, strconv.Itoa(b.Sessions)}
	}
	return rows
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// WriteCSV writes the named table of rep to w in CSV format.
func WriteCSV(w io.Writer, rep report.Report, name string) error {
	header, rows, err := Tabulate(rep, name)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
