package rest

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are tried in order; first match wins. The backend emits
// ISO-8601 with fractional seconds, older endpoints without.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	time.RFC3339,
}

// Timestamp is a payload date field. Unlike the session layer's end-date
// handling, a string matching no layout is a hard decode failure — payload
// dates never silently default to "now" or the epoch.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("%w: timestamp %q matches no recognized layout", ErrDecoding, s)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}
