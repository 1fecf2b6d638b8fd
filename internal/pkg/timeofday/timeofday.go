// Package timeofday converts between integer minute-of-day offsets and the
// 12-hour "HH:MM AM/PM" labels the booking forms and the calendar use.
package timeofday

import (
	"fmt"
	"strconv"
	"strings"

	"petcare-hub/internal/pkg/errs"
)

const MinutesPerDay = 24 * 60

var ErrInvalidLabel = errs.New("invalid time label")

// ToLabel renders a minute offset as "hh:mm AM/PM". 0 -> "12:00 AM",
// 630 -> "10:30 AM", 720 -> "12:00 PM".
func ToLabel(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	hour12 := (hours+11)%12 + 1
	meridiem := "AM"
	if hours >= 12 {
		meridiem = "PM"
	}

	return fmt.Sprintf("%02d:%02d %s", hour12, mins, meridiem)
}

// FromLabel parses "hh:mm", "hh:mm AM" or "hh:mm PM" (meridiem
// case-insensitive) back into a minute offset.
func FromLabel(label string) (int, error) {
	s := strings.TrimSpace(label)

	meridiem := ""
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "AM"):
		meridiem = "AM"
		s = strings.TrimSpace(s[:len(s)-2])
	case strings.HasSuffix(upper, "PM"):
		meridiem = "PM"
		s = strings.TrimSpace(s[:len(s)-2])
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, ErrInvalidLabel
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return 0, ErrInvalidLabel
	}
	minute, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil {
		return 0, ErrInvalidLabel
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidLabel
	}

	switch meridiem {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return 0, ErrInvalidLabel
	}

	return hour*60 + minute, nil
}
