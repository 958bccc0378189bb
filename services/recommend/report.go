package recommend

import (
	"wardreport/lib/mdtable"
)

var reportHeaders = []string{"Name", "Expires", "Phone", "Email"}

// GroupTable renders one group as a markdown table. An empty group
// renders an explicit placeholder so a blank report is
// distinguishable from one that was dropped.
func GroupTable(records []Record) string {
	if len(records) == 0 {
		return "(no matching records)\n"
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Name, r.ExpireDisplay(), r.Phone(), r.Email()}
	}
	return mdtable.Render(reportHeaders, rows)
}

// BuildReports renders every group's table, keyed by group name.
func BuildReports(grouped map[string][]Record) map[string]string {
	reports := make(map[string]string, len(grouped))
	for name, records := range grouped {
		reports[name] = GroupTable(records)
	}
	return reports
}
