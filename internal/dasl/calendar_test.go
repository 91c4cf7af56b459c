package dasl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(t *testing.T) func() time.Time {
	t.Helper()
	now, err := time.ParseInLocation(dateLayout, "2025-06-15", time.Local)
	require.NoError(t, err)
	return func() time.Time { return now }
}

func TestCalendarRangeRestriction(t *testing.T) {
	tests := []struct {
		name     string
		rng      CalendarRange
		expected string
	}{
		{
			name: "zero value means today",
			rng:  CalendarRange{},
			expected: "[Start] >= '06/15/2025 00:00' AND [Start] < '06/16/2025 00:00' " +
				"AND [MeetingStatus] <> 5 AND [MeetingStatus] <> 7",
		},
		{
			name: "date_to defaults to date_from",
			rng:  CalendarRange{DateFrom: "2025-01-31"},
			expected: "[Start] >= '01/31/2025 00:00' AND [Start] < '02/01/2025 00:00' " +
				"AND [MeetingStatus] <> 5 AND [MeetingStatus] <> 7",
		},
		{
			name: "explicit range includes the whole end date",
			rng:  CalendarRange{DateFrom: "2025-03-01", DateTo: "2025-03-07"},
			expected: "[Start] >= '03/01/2025 00:00' AND [Start] < '03/08/2025 00:00' " +
				"AND [MeetingStatus] <> 5 AND [MeetingStatus] <> 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.rng.now = fixedNow(t)
			got, err := tt.rng.Restriction()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCalendarRangeRestrictionErrors(t *testing.T) {
	tests := []struct {
		name string
		rng  CalendarRange
	}{
		{"date_to without date_from", CalendarRange{DateTo: "2025-12-31"}},
		{"malformed date_from", CalendarRange{DateFrom: "next tuesday"}},
		{"malformed date_to", CalendarRange{DateFrom: "2025-01-01", DateTo: "2025-13-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.rng.now = fixedNow(t)
			_, err := tt.rng.Restriction()
			assert.Error(t, err)
		})
	}
}
