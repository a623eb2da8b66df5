package source

import (
	"context"
	"fmt"

	"github.com/kilianp07/chargereport/core/logger"
	"github.com/kilianp07/chargereport/core/model"
)

// Dataset holds the raw rows of both input tables.
type Dataset struct {
	Transactions []model.RawSession
	Roster       []model.RosterEntry
}

// Loader reads the transactions and roster tables from disk.
type Loader struct {
	cfg Config
	log logger.Logger
}

// NewLoader returns a loader for cfg. Defaults are applied to a copy of cfg.
func NewLoader(cfg Config, log logger.Logger) *Loader {
	cfg.SetDefaults()
	return &Loader{cfg: cfg, log: log}
}

// Load reads both tables.
func (l *Loader) Load(ctx context.Context) (Dataset, error) {
	tx, err := l.Transactions()
	if err != nil {
		return Dataset{}, err
	}
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}
	roster, err := l.Roster()
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Transactions: tx, Roster: roster}, nil
}

// Transactions reads the charging transactions. The end column is optional;
// when the table lacks it every row has an empty end.
func (l *Loader) Transactions() ([]model.RawSession, error) {
	c := l.cfg.Transactions
	t, err := readTable(c.Path, c.Sheet)
	if err != nil {
		return nil, err
	}
	cols := c.Columns
	at, h, err := locateHeader(t.rows, c.HeaderRow, []string{cols.ID, cols.Vehicle, cols.Start, cols.Energy})
	if err != nil {
		return nil, fmt.Errorf("transactions %s: %w", c.Path, err)
	}
	if at != c.HeaderRow {
		l.log.Warnf("transactions header found on row %d instead of %d", at, c.HeaderRow)
	}
	idx, veh, start, end, energy := h.index(cols.ID), h.index(cols.Vehicle), h.index(cols.Start), h.index(cols.End), h.index(cols.Energy)
	if end < 0 {
		l.log.Warnf("transactions %s has no %q column; durations are unavailable", c.Path, cols.End)
	}
	out := make([]model.RawSession, 0, len(t.rows)-at-1)
	for _, row := range t.rows[at+1:] {
		if blank(row) {
			continue
		}
		out = append(out, model.RawSession{
			ID:        cell(row, idx),
			VehicleID: cell(row, veh),
			Start:     t.timestamp(cell(row, start)),
			End:       t.timestamp(cell(row, end)),
			Energy:    cell(row, energy),
		})
	}
	l.log.Debugw("transactions read", map[string]any{"path": c.Path, "header_row": at, "rows": len(out)})
	return out, nil
}

// Roster reads the list of valid vehicles.
func (l *Loader) Roster() ([]model.RosterEntry, error) {
	c := l.cfg.Roster
	t, err := readTable(c.Path, c.Sheet)
	if err != nil {
		return nil, err
	}
	at, h, err := locateHeader(t.rows, c.HeaderRow, []string{c.Column})
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", c.Path, err)
	}
	col := h.index(c.Column)
	out := make([]model.RosterEntry, 0, len(t.rows)-at-1)
	for _, row := range t.rows[at+1:] {
		if v := cell(row, col); v != "" {
			out = append(out, model.RosterEntry{VehicleID: v})
		}
	}
	l.log.Debugw("roster read", map[string]any{"path": c.Path, "header_row": at, "vehicles": len(out)})
	return out, nil
}
