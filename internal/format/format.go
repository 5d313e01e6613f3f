// Package format holds the presentation helpers for the auction pages:
// currency and number grouping, russian three-form pluralization,
// relative time labels and the expiry countdown. No I/O anywhere.
package format

import (
	"fmt"
	"strconv"
	"time"
)

const (
	daySeconds    = 86400
	hourSeconds   = 3600
	minuteSeconds = 60
)

// absoluteLayout renders "02.10.25 в 14:30" for timestamps older than a day.
const absoluteLayout = "02.01.06 в 15:04"

// Money formats an amount with space-grouped digits and the ruble sign,
// e.g. 1000000 -> "1 000 000 ₽".
func Money(n int64) string {
	return GroupDigits(n) + " ₽"
}

// GroupDigits formats a number with spaces between thousands groups,
// e.g. 1000000 -> "1 000 000".
func GroupDigits(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var grouped []byte
		lead := len(s) % 3
		if lead > 0 {
			grouped = append(grouped, s[:lead]...)
		}
		for i := lead; i < len(s); i += 3 {
			if len(grouped) > 0 {
				grouped = append(grouped, ' ')
			}
			grouped = append(grouped, s[i:i+3]...)
		}
		s = string(grouped)
	}
	if neg {
		return "-" + s
	}
	return s
}

// NumToWord picks one of three grammatical forms for n, the russian way:
// 1 год, 2 года, 25 лет. The decision runs on n % 100, then % 10 when
// the remainder exceeds 19.
func NumToWord(n int64, words [3]string) string {
	n = n % 100
	if n < 0 {
		n = -n
	}
	if n > 19 {
		n = n % 10
	}
	switch n {
	case 1:
		return words[0]
	case 2, 3, 4:
		return words[1]
	default:
		return words[2]
	}
}

// TimeAgo renders how long ago t was relative to now. Elapsed time below
// a second is clamped to one second. Under a day the largest reached
// unit wins with a floor-divided count; from a day on the label falls
// back to the absolute date.
func TimeAgo(t, now time.Time) string {
	elapsed := int64(now.Sub(t).Seconds())
	if elapsed < 1 {
		elapsed = 1
	}

	if elapsed >= daySeconds {
		return t.Format(absoluteLayout)
	}

	units := []struct {
		seconds int64
		label   string
	}{
		{daySeconds, "день назад"},
		{hourSeconds, "часов назад"},
		{minuteSeconds, "минут назад"},
		{1, "секунд назад"},
	}
	for _, u := range units {
		if elapsed < u.seconds {
			continue
		}
		return fmt.Sprintf("%d %s", elapsed/u.seconds, u.label)
	}
	return ""
}

// Countdown returns the zero-padded hours, minutes and seconds left
// until the deadline, e.g. "02", "28", "12". Hours can exceed two
// digits for far-off deadlines.
func Countdown(until, now time.Time) (hours, minutes, seconds string) {
	diff := int64(until.Sub(now).Seconds())
	if diff < 0 {
		diff = 0
	}
	hours = fmt.Sprintf("%02d", diff/hourSeconds)
	minutes = fmt.Sprintf("%02d", (diff/minuteSeconds)%60)
	seconds = fmt.Sprintf("%02d", diff%60)
	return hours, minutes, seconds
}

// IsFutureDate reports whether date is a valid YYYY-MM-DD date that is
// not in the past relative to now.
func IsFutureDate(date string, now time.Time) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return !d.Before(now.Truncate(24 * time.Hour))
}
