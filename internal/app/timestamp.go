package app

import (
	"fmt"
	"strings"
	"time"
)

type TimestampMode string

const (
	TimestampModeRelative TimestampMode = "relative"
	TimestampModeAbsolute TimestampMode = "absolute"
)

const noteDateLayout = "Jan 2, 2006, 3:04 PM"

func parseTimestampMode(raw string) TimestampMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(TimestampModeAbsolute), "iso":
		return TimestampModeAbsolute
	default:
		return TimestampModeRelative
	}
}

type timeAgoBucket struct {
	seconds int64
	unit    string
}

var timeAgoBuckets = []timeAgoBucket{
	{seconds: 31536000, unit: "year"},
	{seconds: 2592000, unit: "month"},
	{seconds: 86400, unit: "day"},
	{seconds: 3600, unit: "hour"},
	{seconds: 60, unit: "minute"},
}

// formatTimeAgo renders the largest whole unit elapsed between then and now.
// Units are floored, so 59 seconds is still "just now".
func formatTimeAgo(then, now time.Time) string {
	seconds := int64(now.Sub(then) / time.Second)
	for _, bucket := range timeAgoBuckets {
		interval := seconds / bucket.seconds
		if interval < 1 {
			continue
		}
		if interval == 1 {
			return fmt.Sprintf("1 %s ago", bucket.unit)
		}
		return fmt.Sprintf("%d %ss ago", interval, bucket.unit)
	}
	return "just now"
}

func formatNoteDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(noteDateLayout)
}
