package report

import (
	"sort"

	"github.com/samber/lo"

	"github.com/kilianp07/chargereport/core/model"
)

// Filter keeps the sessions whose start day lies in sel.Range and whose
// vehicle is part of sel.Vehicles. An empty vehicle list keeps nothing.
func Filter(sessions []model.Session, sel model.Selection) []model.Session {
	allowed := make(map[string]struct{}, len(sel.Vehicles))
	for _, v := range sel.Vehicles {
		allowed[v] = struct{}{}
	}
	out := make([]model.Session, 0, len(sessions))
	for _, s := range sessions {
		if _, ok := allowed[s.VehicleID]; !ok {
			continue
		}
		if !sel.Range.Contains(s.Start) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Vehicles returns the distinct vehicle ids of sessions, sorted.
func Vehicles(sessions []model.Session) []string {
	ids := lo.Uniq(lo.Map(sessions, func(s model.Session, _ int) string { return s.VehicleID }))
	sort.Strings(ids)
	return ids
}

// Span returns the range from the earliest to the latest session day. The
// zero range is returned for no sessions.
func Span(sessions []model.Session) model.DateRange {
	if len(sessions) == 0 {
		return model.DateRange{}
	}
	first, last := sessions[0].Start, sessions[0].Start
	for _, s := range sessions[1:] {
		if s.Start.Before(first) {
			first = s.Start
		}
		if s.Start.After(last) {
			last = s.Start
		}
	}
	return model.NewDateRange(first, last)
}

// DefaultSelection is the selection shown before the user touches the
// controls: the full date span and every vehicle.
func DefaultSelection(sessions []model.Session) model.Selection {
	return model.Selection{Range: Span(sessions), Vehicles: Vehicles(sessions)}
}
