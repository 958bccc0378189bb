package recommend

import (
	"testing"
	"time"
	"wardreport/lib/timezone"

	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 10, 30, 0, 0, timezone.Location)
}

func TestMonthOffset(t *testing.T) {
	testCases := []struct {
		today    time.Time
		offset   int
		expected string
	}{
		{day(2017, time.September, 4), 0, "201709"},
		// day-of-month must not skew the arithmetic: March 30 minus a
		// month is February, not an overflow into March
		{day(2017, time.March, 30), -1, "201702"},
		{day(2017, time.March, 30), -3, "201612"},
		{day(2017, time.November, 15), 2, "201801"},
		{day(2017, time.January, 1), -1, "201612"},
	}
	for _, test := range testCases {
		require.Equal(
			t, test.expected,
			MonthOffset(test.offset, test.today),
			"%s offset %d", test.today, test.offset,
		)
	}
}

func TestResolveWindows(t *testing.T) {
	today := day(2017, time.September, 4)

	windows, err := ResolveWindows(map[string]GroupConfig{
		"expired":  {Head: -3, Tail: -1, Title: "Recently expired"},
		"expiring": {Head: 0, Tail: 1, Title: "Expiring soon"},
	}, today)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, Window{Start: "201706", End: "201708", Title: "Recently expired"}, windows["expired"])
	require.Equal(t, Window{Start: "201709", End: "201710", Title: "Expiring soon"}, windows["expiring"])

	_, err = ResolveWindows(map[string]GroupConfig{
		"inverted": {Head: 1, Tail: -1},
	}, today)
	require.ErrorContains(t, err, "inverted")
}

func TestPartition(t *testing.T) {
	windows := map[string]Window{
		"past":   {Start: "201706", End: "201708"},
		"nov":    {Start: "201711", End: "201711"},
		"future": {Start: "201801", End: "201812"},
	}
	records := []Record{
		{Name: "a", ExpirationDate: "20171005"},
		{Name: "b", ExpirationDate: "20171101"},
		{Name: "c", ExpirationDate: ""},
		{Name: "d", ExpirationDate: "20170715"},
		{Name: "e", ExpirationDate: "20170601"},
	}

	grouped := Partition(windows, records)

	// every window is present, even with no matches
	require.Len(t, grouped, 3)
	require.NotNil(t, grouped["future"])
	require.Empty(t, grouped["future"])

	require.Len(t, grouped["nov"], 1)
	require.Equal(t, "b", grouped["nov"][0].Name)

	// sorted ascending by expiration date
	require.Len(t, grouped["past"], 2)
	require.Equal(t, "e", grouped["past"][0].Name)
	require.Equal(t, "d", grouped["past"][1].Name)
}

func TestPartitionUnknownDates(t *testing.T) {
	windows := map[string]Window{
		"all": {Start: "000000", End: "999912"},
	}
	grouped := Partition(windows, []Record{
		{Name: "no-date", ExpirationDate: ""},
	})
	// the sentinel sits at the window floor, so a window that starts
	// there does pick up unknown dates
	require.Len(t, grouped["all"], 1)
}
