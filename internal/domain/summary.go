package domain

import "sort"

// DaySummary is the group of entries sharing one date together with their total.
type DaySummary struct {
	Date       string      `json:"date"`
	TotalHours float64     `json:"totalHours"`
	Entries    []TimeEntry `json:"entries"`
}

// Summary is the grouped history view of a list of entries.
type Summary struct {
	Days       []DaySummary `json:"days"`
	GrandTotal float64      `json:"grandTotal"`
}

// GroupByDate partitions entries into per-date buckets. Within a bucket the
// relative order of the input is preserved.
func GroupByDate(entries []TimeEntry) map[string][]TimeEntry {
	groups := make(map[string][]TimeEntry)
	for _, e := range entries {
		groups[e.Date] = append(groups[e.Date], e)
	}
	return groups
}

// SumHours returns the arithmetic sum of hours over entries.
func SumHours(entries []TimeEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Hours
	}
	return sum
}

// SortedDates returns the keys of groups, most recent date first.
func SortedDates(groups map[string][]TimeEntry) []string {
	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// Summarize groups entries by date and computes the per-day and grand totals.
func Summarize(entries []TimeEntry) Summary {
	groups := GroupByDate(entries)
	s := Summary{
		Days:       make([]DaySummary, 0, len(groups)),
		GrandTotal: SumHours(entries),
	}
	for _, d := range SortedDates(groups) {
		s.Days = append(s.Days, DaySummary{
			Date:       d,
			TotalHours: SumHours(groups[d]),
			Entries:    groups[d],
		})
	}
	return s
}
