package domain

import "strings"

// BusiestTitle heads a chart built from ranked mode.
const BusiestTitle = "Difference in commutes between the 5 busiest stations"

// FormatStations builds the chart title for a manual selection:
// "Commutes shown for A" for one station, otherwise
// "Difference in commutes between A, B and C".
func FormatStations(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return "Commutes shown for " + names[0]
	}

	var b strings.Builder
	b.WriteString("Difference in commutes between ")
	last := len(names) - 1
	b.WriteString(strings.Join(names[:last], ", "))
	b.WriteString(" and ")
	b.WriteString(names[last])
	return b.String()
}

// WithDate appends the dataset date to a title.
func WithDate(title, date string) string {
	if date == "" {
		return title
	}
	return title + " on " + date
}
