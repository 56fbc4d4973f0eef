package presenter

import (
	"fmt"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// FormatReleaseDate renders an ISO "YYYY-MM-DD" release date in a fixed,
// locale-independent human-readable form ("Jul 16, 2010"). Malformed input
// is returned unchanged.
func FormatReleaseDate(iso string) string {
	t, err := time.Parse(isoDateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}

// FormatCurrency renders a whole-unit amount as "US$1,000,000.00".
// The currency symbol and grouping are fixed regardless of locale.
func FormatCurrency(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sUS$%s.00", sign, groupThousands(amount))
}

// groupThousands inserts comma separators into a non-negative integer.
func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatRuntime renders a runtime in minutes as "2 hours", "45 minutes",
// or "1 hour 45 minutes". Whole hours never show a zero-minute part.
func FormatRuntime(minutes int) string {
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return pluralize(mins, "minute")
	case mins == 0:
		return pluralize(hours, "hour")
	default:
		return pluralize(hours, "hour") + " " + pluralize(mins, "minute")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// posterURL joins the image base URL, a size variant, and a poster path.
func posterURL(base, size, path string) string {
	return base + size + path
}
