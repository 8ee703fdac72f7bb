// Package util holds small display formatting helpers shared by the views
// and the Excel export.
package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/glucolab/labconsole/internal/domain/model"
)

const displayDateTimeLayout = "2006-01-02 15:04:05"

// FormatDateTime renders a timestamp for display, without the wire
// format's T separator. Zero values render empty.
func FormatDateTime(d model.DateTime) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(displayDateTimeLayout)
}

// FormatDate renders the date part only. Zero values render empty.
func FormatDate(d model.DateTime) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// FormatFileSize renders a byte count with a binary unit and at most one
// decimal place. Trailing ".0" is dropped.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB"}
	exp := min(int(math.Log(float64(bytes))/math.Log(1024)), len(units)-1)

	value := float64(bytes) / math.Pow(1024, float64(exp))
	s := strconv.FormatFloat(value, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s + " " + units[exp]
}

// BatchLabel renders a batch reference for selects and tables.
func BatchLabel(b model.Batch) string {
	if b.BatchNumber == "" {
		return fmt.Sprintf("Batch %d", b.BatchID)
	}
	return b.BatchNumber
}

// PersonLabel renders a person reference with the identity attached, so
// operators can tell apart subjects sharing a name.
func PersonLabel(p model.Person) string {
	return fmt.Sprintf("%s (ID: %d)", p.PersonName, p.PersonID)
}
