package report

import (
	"time"

	"github.com/kilianp07/chargereport/core/model"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 1, day, hour, minute, 0, 0, time.UTC)
}

func session(id, vehicle string, start time.Time, end *time.Time, kwh float64) model.Session {
	return model.Session{ID: id, VehicleID: vehicle, Start: start, End: end, EnergyKWh: kwh}
}

func ptr(t time.Time) *time.Time { return &t }

func jan(from, to int) model.DateRange {
	return model.DateRange{Start: at(from, 0, 0), End: at(to, 0, 0)}
}
