package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/chargereport/core/model"
)

func TestFilterByRangeAndVehicles(t *testing.T) {
	sessions := []model.Session{
		session("1", "A", at(1, 0, 0), nil, 1),
		session("2", "A", at(3, 23, 59), nil, 1),
		session("3", "B", at(2, 12, 0), nil, 1),
		session("4", "A", at(4, 0, 0), nil, 1),
		session("5", "C", at(2, 12, 0), nil, 1),
	}
	out := Filter(sessions, model.Selection{Range: jan(1, 3), Vehicles: []string{"A", "B"}})
	ids := make([]string, len(out))
	for i, s := range out {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestFilterEmptyVehicleSubset(t *testing.T) {
	sessions := []model.Session{session("1", "A", at(1, 10, 0), nil, 1)}
	assert.Empty(t, Filter(sessions, model.Selection{Range: jan(1, 3)}))
}

func TestFilterInvertedRange(t *testing.T) {
	sessions := []model.Session{session("1", "A", at(2, 10, 0), nil, 1)}
	assert.Empty(t, Filter(sessions, model.Selection{Range: jan(3, 1), Vehicles: []string{"A"}}))
}

func TestDefaultSelection(t *testing.T) {
	sessions := []model.Session{
		session("1", "B", at(5, 10, 0), nil, 1),
		session("2", "A", at(2, 23, 0), nil, 1),
		session("3", "B", at(9, 1, 0), nil, 1),
	}
	sel := DefaultSelection(sessions)
	assert.Equal(t, []string{"A", "B"}, sel.Vehicles)
	assert.Equal(t, "2025-01-02", model.DateKey(sel.Range.Start))
	assert.Equal(t, "2025-01-09", model.DateKey(sel.Range.End))
	assert.Len(t, Filter(sessions, sel), 3)
}

func TestDefaultSelectionEmpty(t *testing.T) {
	sel := DefaultSelection(nil)
	assert.True(t, sel.Range.IsZero())
	assert.Empty(t, sel.Vehicles)
}
