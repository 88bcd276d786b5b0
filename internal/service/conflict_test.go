package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/court-reservation/internal/model"
)

func iv(sh, sm, eh, em int) model.Interval {
	return model.Interval{Start: model.Clock(sh, sm), End: model.Clock(eh, em)}
}

func TestOverlapping(t *testing.T) {
	existing := []model.Booking{
		{ID: 1, StartTime: model.Clock(9, 0), EndTime: model.Clock(11, 0), Status: model.StatusConfirmed},
		{ID: 2, StartTime: model.Clock(11, 0), EndTime: model.Clock(12, 0), Status: model.StatusPending},
		{ID: 3, StartTime: model.Clock(10, 0), EndTime: model.Clock(12, 0), Status: model.StatusCancelled},
		{ID: 4, StartTime: model.Clock(10, 30), EndTime: model.Clock(11, 30), Status: model.StatusCompleted},
	}

	tests := []struct {
		name    string
		slot    model.Interval
		exclude uint64
		want    []uint64
	}{
		{"abuts start", iv(8, 0, 9, 0), 0, nil},
		{"abuts end", iv(12, 0, 13, 0), 0, nil},
		{"covers both active", iv(10, 0, 12, 0), 0, []uint64{1, 2}},
		{"inside one", iv(9, 30, 10, 0), 0, []uint64{1}},
		{"excludes self", iv(9, 0, 11, 0), 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []uint64
			for _, b := range Overlapping(existing, tt.slot, tt.exclude) {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFreeIntervals(t *testing.T) {
	hours := iv(6, 0, 22, 0)

	assert.Equal(t, []model.Interval{hours}, FreeIntervals(hours, nil))
	assert.Equal(t, []model.Interval{}, FreeIntervals(hours, []model.Interval{hours}))
	assert.Equal(t,
		[]model.Interval{iv(6, 0, 8, 0), iv(10, 0, 11, 0), iv(12, 0, 22, 0)},
		FreeIntervals(hours, []model.Interval{iv(8, 0, 10, 0), iv(9, 0, 10, 0), iv(11, 0, 12, 0)}))
	// bookings outside the operating window are clipped
	assert.Equal(t,
		[]model.Interval{iv(7, 0, 21, 0)},
		FreeIntervals(hours, []model.Interval{iv(5, 0, 7, 0), iv(21, 0, 23, 0)}))
}
