package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/kilianp07/chargereport/core/model"
)

// ErrInvalidDate is returned when a selection bound is not a YYYY-MM-DD date
// or the range spans more than MaxRangeDays.
var ErrInvalidDate = errors.New("invalid date")

// MaxRangeDays bounds the number of daily rows a selection can produce.
const MaxRangeDays = 100 * 366

// ParseSelection applies the user's controls on top of def. Empty start or
// end keep the default bound and an empty vehicle list keeps the default
// vehicles. Blank vehicle ids are ignored and duplicates removed.
func ParseSelection(start, end string, vehicles []string, loc *time.Location, def model.Selection) (model.Selection, error) {
	sel := def
	if start != "" {
		d, err := model.ParseDate(start, loc)
		if err != nil {
			return model.Selection{}, fmt.Errorf("start: %w: %q", ErrInvalidDate, start)
		}
		sel.Range.Start = d
	}
	if end != "" {
		d, err := model.ParseDate(end, loc)
		if err != nil {
			return model.Selection{}, fmt.Errorf("end: %w: %q", ErrInvalidDate, end)
		}
		sel.Range.End = d
	}
	if n := sel.Range.Days(); n > MaxRangeDays {
		return model.Selection{}, fmt.Errorf("range %s: %w: %d days exceeds %d", sel.Range, ErrInvalidDate, n, MaxRangeDays)
	}
	ids := lo.Uniq(lo.FilterMap(vehicles, func(v string, _ int) (string, bool) {
		id := model.NormalizeID(v)
		return id, id != ""
	}))
	if len(ids) > 0 {
		sel.Vehicles = ids
	}
	return sel, nil
}
