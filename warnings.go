package retext

import (
	"fmt"
	"strings"
)

// Warning describes a degraded but successful result, such as text that
// overflows its region
type Warning struct {
	Page     int
	RegionID string
	Message  string
}

// String formats the warning for display
func (w Warning) String() string {
	if w.RegionID == "" {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return fmt.Sprintf("page %d, region %s: %s", w.Page, w.RegionID, w.Message)
}

// FormatWarnings joins warnings into a single line-per-warning string
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
