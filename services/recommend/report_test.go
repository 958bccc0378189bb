package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupTable(t *testing.T) {
	out := GroupTable([]Record{
		{
			Name:           "Christensen, Maren",
			ExpirationDate: "20170904",
			PersonalPhone:  "801-555-0100",
			HouseholdEmail: "home@example.com",
		},
	})
	lines := strings.Split(out, "\n")
	require.Equal(t, "Name               | Expires | Phone        | Email", lines[0])
	require.Contains(t, lines[2], "Christensen, Maren | 2017-09 | 801-555-0100 | home@example.com")
}

func TestGroupTableEmpty(t *testing.T) {
	require.Equal(t, "(no matching records)\n", GroupTable(nil))
}

func TestBuildReports(t *testing.T) {
	reports := BuildReports(map[string][]Record{
		"expired":  {},
		"expiring": {{Name: "Young, B", ExpirationDate: "201711"}},
	})
	require.Len(t, reports, 2)
	require.Equal(t, "(no matching records)\n", reports["expired"])
	require.Contains(t, reports["expiring"], "Young, B")
}
