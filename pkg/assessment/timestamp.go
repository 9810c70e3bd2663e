package assessment

import "time"

// LayoutLocale is the format new timestamps are written with. It mirrors
// the en-US locale string the dashboard has always stored, so old and
// new records stay interchangeable.
const LayoutLocale = "01/02/2006, 3:04:05 PM"

// NowStamp returns the current instant in the stored timestamp format.
func NowStamp() string {
	return time.Now().Format(LayoutLocale)
}

// Stamp formats an arbitrary instant in the stored timestamp format.
func Stamp(t time.Time) string {
	return t.Format(LayoutLocale)
}
