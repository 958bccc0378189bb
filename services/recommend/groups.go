package recommend

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// GroupConfig defines one reporting group as month offsets relative to
// the current month: head is the start of the window, tail the end,
// both inclusive.
type GroupConfig struct {
	Head  int    `json:"head"`
	Tail  int    `json:"tail"`
	Title string `json:"title"`
}

// Window is a resolved group: inclusive YYYYMM bounds.
type Window struct {
	Start string
	End   string
	Title string
}

// MonthOffset resolves a relative month offset against today as a
// YYYYMM string. The arithmetic is anchored at the first of the month
// so day-of-month never skews the result, and year rollover works in
// both directions.
func MonthOffset(months int, today time.Time) string {
	anchor := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	shifted := anchor.AddDate(0, months, 0)
	return fmt.Sprintf("%04d%02d", shifted.Year(), int(shifted.Month()))
}

// ResolveWindows turns group configs into concrete windows. A window
// whose start lies after its end is a configuration error and fails
// the run before any record is inspected.
func ResolveWindows(groups map[string]GroupConfig, today time.Time) (map[string]Window, error) {
	windows := make(map[string]Window, len(groups))
	for name, g := range groups {
		w := Window{
			Start: MonthOffset(g.Head, today),
			End:   MonthOffset(g.Tail, today),
			Title: g.Title,
		}
		if w.Start > w.End {
			return nil, fmt.Errorf(
				"report group %q: window start %s is after end %s",
				name, w.Start, w.End,
			)
		}
		windows[name] = w
	}
	return windows, nil
}

// Partition buckets records into every window whose bounds contain
// their expiration month. Overlapping windows each get their own copy;
// records with an unknown expiration date land in no bounded group.
// Every window appears in the result even when empty, and each bucket
// is sorted ascending by expiration date.
func Partition(windows map[string]Window, records []Record) map[string][]Record {
	out := make(map[string][]Record, len(windows))
	for name, w := range windows {
		group := []Record{}
		for _, r := range records {
			month := r.ExpireMonth()
			if w.Start <= month && month <= w.End {
				group = append(group, r)
			}
		}
		// fixed-width dates, so lexicographic order is date order
		slices.SortStableFunc(group, func(a, b Record) int {
			return strings.Compare(a.ExpirationDate, b.ExpirationDate)
		})
		out[name] = group
	}
	return out
}
