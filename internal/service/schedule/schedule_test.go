package schedule

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockOptions(t *testing.T) {
	opts := ClockOptions()
	require.Len(t, opts, 48)
	assert.Equal(t, "12:00 AM", opts[0])
	assert.Equal(t, "11:30 PM", opts[47])

	format := regexp.MustCompile(`^\d{2}:\d{2} (AM|PM)$`)
	prev := -1
	for _, label := range opts {
		assert.Regexp(t, format, label)

		hour, minute, err := ParseClock(label)
		require.NoError(t, err, label)
		total := hour*60 + minute
		assert.Greater(t, total, prev, "labels must be strictly increasing")
		prev = total
	}
}

func TestBookingSlots(t *testing.T) {
	slots := BookingSlots("09:00 AM - 05:00 PM")
	require.Len(t, slots, 15)
	assert.Equal(t, "09:00 AM", slots[0])
	assert.Equal(t, "04:30 PM", slots[14])
	assert.NotContains(t, slots, "12:30 PM")

	// Timings do not change the offered slots yet.
	assert.Equal(t, slots, BookingSlots("10:00 AM - 02:00 PM"))
	assert.Equal(t, slots, BookingSlots(""))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		label  string
		hour   int
		minute int
		ok     bool
	}{
		{"12:00 AM", 0, 0, true},
		{"12:30 AM", 0, 30, true},
		{"01:00 AM", 1, 0, true},
		{"11:30 AM", 11, 30, true},
		{"12:00 PM", 12, 0, true},
		{"12:30 PM", 12, 30, true},
		{"01:00 PM", 13, 0, true},
		{"11:30 PM", 23, 30, true},
		{"9:15 am", 9, 15, true},
		{"", 0, 0, false},
		{"13:00 PM", 0, 0, false},
		{"09:60 AM", 0, 0, false},
		{"09:00", 0, 0, false},
		{"09:00 XM", 0, 0, false},
	}
	for _, tt := range tests {
		hour, minute, err := ParseClock(tt.label)
		if !tt.ok {
			assert.Error(t, err, tt.label)
			continue
		}
		require.NoError(t, err, tt.label)
		assert.Equal(t, tt.hour, hour, tt.label)
		assert.Equal(t, tt.minute, minute, tt.label)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  string
		want string
	}{
		{"birthday earlier this year", "1996-03-01", "30"},
		{"birthday today", "1996-06-15", "30"},
		{"birthday tomorrow", "1996-06-16", "29"},
		{"birthday later this year", "1996-12-31", "29"},
		{"empty clears", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Age(tt.dob, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Age("15-06-1996", now)
	assert.Error(t, err)
}
