// Package schedule holds the small clock computations shared by the
// registration, profile and booking forms.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockOptions enumerates the full day in half-hour steps, "hh:mm AM/PM"
// with a zero-padded hour. Always 48 labels, "12:00 AM" through "11:30 PM".
func ClockOptions() []string {
	options := make([]string, 0, 48)
	for i := 0; i < 48; i++ {
		total := i * 30
		hours := total / 60
		minutes := total % 60

		ampm := "AM"
		if hours >= 12 {
			ampm = "PM"
		}
		display := hours % 12
		if display == 0 {
			display = 12
		}
		options = append(options, fmt.Sprintf("%02d:%02d %s", display, minutes, ampm))
	}
	return options
}

// BookingSlots is the candidate list offered when booking with a doctor. The
// doctor's configured timings are accepted but not yet applied as a filter;
// every doctor currently offers the same fixed slots.
// TODO: narrow the list to the doctor's open/close window once the backend
// starts validating slot availability.
func BookingSlots(timings string) []string {
	_ = timings
	return []string{
		"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
		"12:00 PM", "01:00 PM", "01:30 PM", "02:00 PM", "02:30 PM", "03:00 PM",
		"03:30 PM", "04:00 PM", "04:30 PM",
	}
}

// ParseClock converts a "h:mm AM/PM" label to a 24-hour hour and minute.
// PM adds twelve except for 12 PM; 12 AM maps to hour zero.
func ParseClock(label string) (hour, minute int, err error) {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("malformed clock label %q", label)
	}

	hm := strings.SplitN(fields[0], ":", 2)
	if len(hm) != 2 {
		return 0, 0, fmt.Errorf("malformed clock label %q", label)
	}
	hour, err = strconv.Atoi(hm[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed hour in %q", label)
	}
	minute, err = strconv.Atoi(hm[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed minute in %q", label)
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock label %q out of range", label)
	}

	switch strings.ToUpper(fields[1]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	default:
		return 0, 0, fmt.Errorf("malformed meridiem in %q", label)
	}
	return hour, minute, nil
}

// Age derives whole years from an ISO date of birth as of now. An empty
// input clears the derived value. Future dates are not rejected; the form
// never promised that.
func Age(dob string, now time.Time) (string, error) {
	if dob == "" {
		return "", nil
	}

	birth, err := time.ParseInLocation("2006-01-02", dob, now.Location())
	if err != nil {
		return "", fmt.Errorf("invalid date of birth %q: %w", dob, err)
	}

	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return strconv.Itoa(years), nil
}
