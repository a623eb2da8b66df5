package source

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"
)

// TransactionColumns names the header cells of the transactions table.
type TransactionColumns struct {
	ID      string `json:"id"`
	Vehicle string `json:"vehicle"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Energy  string `json:"energy"`
}

// TransactionsConfig locates the charging transactions table.
type TransactionsConfig struct {
	Path string `json:"path"`
	// Sheet selects the worksheet of a workbook; empty means the first one.
	Sheet string `json:"sheet"`
	// HeaderRow is the zero-based row holding the column names. Other rows
	// are searched when it does not hold them.
	HeaderRow int                `json:"header_row"`
	Columns   TransactionColumns `json:"columns"`
}

// RosterConfig locates the table listing the valid vehicles.
type RosterConfig struct {
	Path      string `json:"path"`
	Sheet     string `json:"sheet"`
	HeaderRow int    `json:"header_row"`
	Column    string `json:"column"`
}

// Config groups the input tables and how their timestamps are read.
type Config struct {
	Transactions TransactionsConfig `json:"transactions"`
	Roster       RosterConfig       `json:"roster"`
	// Timezone is the IANA location of the naive timestamps in the files.
	Timezone    string   `json:"timezone"`
	TimeLayouts []string `json:"time_layouts"`
}

// SetDefaults fills the layout of the fleet operator's workbook export.
func (c *Config) SetDefaults() {
	t := &c.Transactions
	if t.Path == "" {
		t.Path = "Transacciones.xlsx"
		if t.HeaderRow == 0 {
			t.HeaderRow = 2
		}
	}
	if t.Columns.ID == "" {
		t.Columns.ID = "ID"
	}
	if t.Columns.Vehicle == "" {
		t.Columns.Vehicle = "VEHÍCULO"
	}
	if t.Columns.Start == "" {
		t.Columns.Start = "INICIO (UTC-05:00)"
	}
	if t.Columns.End == "" {
		t.Columns.End = "TÉRMINO (UTC-05:00)"
	}
	if t.Columns.Energy == "" {
		t.Columns.Energy = "ENERGIA CARGADA (kWh)"
	}
	if c.Roster.Path == "" {
		c.Roster.Path = "Maestro_MVES.xlsx"
	}
	if c.Roster.Column == "" {
		c.Roster.Column = "VEHÍCULO"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	var errs []error
	if c.Transactions.Path == "" {
		errs = append(errs, errors.New("sources.transactions.path is required"))
	}
	if c.Roster.Path == "" {
		errs = append(errs, errors.New("sources.roster.path is required"))
	}
	if c.Transactions.HeaderRow < 0 || c.Roster.HeaderRow < 0 {
		errs = append(errs, errors.New("header_row must not be negative"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location resolves Timezone, defaulting to UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("sources.timezone: %w", err)
	}
	return loc, nil
}
