package pomodoro

import (
	"strconv"
	"strings"
	"time"
)

// FormatDuration renders d as clock-style text driven by pattern. The
// pattern understands %H, %M and %S (hours, minutes and seconds of the
// truncated duration, each zero padded to two digits) plus %% for a literal
// percent sign; every other byte is copied through unchanged. Minutes and
// seconds wrap at their unit, hours do not, so durations past a day render
// with three-digit hours rather than failing.
func FormatDuration(d time.Duration, pattern string) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var b strings.Builder
	b.Grow(len(pattern) + 4)
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' || i+1 == len(pattern) {
			b.WriteByte(c)
			continue
		}
		i++
		switch pattern[i] {
		case 'H':
			writePadded(&b, hours)
		case 'M':
			writePadded(&b, minutes)
		case 'S':
			writePadded(&b, seconds)
		case '%':
			b.WriteByte('%')
		default:
			// Unknown verbs pass through so a stray strftime code shows up
			// in the output instead of being silently eaten.
			b.WriteByte('%')
			b.WriteByte(pattern[i])
		}
	}
	return b.String()
}

func writePadded(b *strings.Builder, v int64) {
	if v < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(v, 10))
}
