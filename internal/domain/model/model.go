// Package model contains the entity records mirrored from the lab API.
// Identity fields are server-assigned; denormalized display fields (batch
// numbers, person names) are populated by the server, never derived here.
package model

import (
	"fmt"
	"strings"
	"time"
)

// dateTimeLayout is the wire format the lab API emits for datetimes:
// ISO 8601 without a zone designator.
const dateTimeLayout = "2006-01-02T15:04:05"

// DateTime wraps time.Time with the lab API's zone-less JSON encoding.
// The zero value marshals to null.
type DateTime struct {
	time.Time
}

// NewDateTime builds a DateTime from a time.Time.
func NewDateTime(t time.Time) DateTime { return DateTime{Time: t} }

// ParseDateTime parses the API wire format, also accepting RFC 3339 and
// the space-separated display form for tolerance with form input.
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateTime{}, nil
	}
	for _, layout := range []string{dateTimeLayout, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{Time: t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("parse datetime %q", s)
}

// MarshalJSON implements json.Marshaler.
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = DateTime{}
		return nil
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// String returns the wire format, or an empty string for the zero value.
func (d DateTime) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateTimeLayout)
}
