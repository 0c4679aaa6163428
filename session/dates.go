package session

import "time"

// endDateLayouts are tried in order; first match wins. The backend has
// emitted all four shapes over time, so the older bare layouts stay until
// every event row is migrated.
var endDateLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseEndDate parses an event end date under the prioritized layouts.
// Layouts without a zone are read as UTC. A string matching no layout
// reports false — the caller fails closed to "inactive" rather than
// guessing.
func parseEndDate(value string) (time.Time, bool) {
	for _, layout := range endDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// eventActive reports whether the event's end date is after now.
// Unparseable end dates are inactive by definition.
func eventActive(ev *Event, now time.Time) bool {
	if ev == nil || ev.EndDate == "" {
		return false
	}

	end, ok := parseEndDate(ev.EndDate)
	if !ok {
		return false
	}
	return end.After(now)
}
