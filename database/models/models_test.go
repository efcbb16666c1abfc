package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrip_Days(t *testing.T) {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(72*time.Hour + 3*time.Hour)
	before := start.Add(-time.Hour)

	tests := []struct {
		name string
		trip Trip
		want int
	}{
		{name: "both dates", trip: Trip{StartDate: &start, EndDate: &end}, want: 3},
		{name: "missing end", trip: Trip{StartDate: &start}, want: 0},
		{name: "missing start", trip: Trip{EndDate: &end}, want: 0},
		{name: "inverted", trip: Trip{StartDate: &start, EndDate: &before}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.trip.Days())
		})
	}
}

func TestTargetKind_Valid(t *testing.T) {
	assert.True(t, TargetTrip.Valid())
	assert.True(t, TargetItem.Valid())
	assert.False(t, TargetKind("album").Valid())
}
