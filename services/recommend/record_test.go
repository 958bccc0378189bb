package recommend

import (
	"testing"
	"wardreport/lib/scrapers/churchorg"

	"github.com/stretchr/testify/require"
)

func TestExpireMonth(t *testing.T) {
	testCases := []struct {
		date     string
		expected string
	}{
		{"20170904", "201709"},
		{"201709", "201709"},
		{"", UnknownMonth},
		{"2017", UnknownMonth},
		{"2017-09", UnknownMonth},
		{"EXPIRED", UnknownMonth},
	}
	for _, test := range testCases {
		r := Record{ExpirationDate: test.date}
		require.Equal(t, test.expected, r.ExpireMonth(), "date %q", test.date)
	}
}

func TestExpireDisplay(t *testing.T) {
	require.Equal(t, "2017-09", Record{ExpirationDate: "20170904"}.ExpireDisplay())
	require.Equal(t, "", Record{ExpirationDate: ""}.ExpireDisplay())
}

func TestContactFallbacks(t *testing.T) {
	r := Record{
		PersonalPhone:  "",
		PersonalEmail:  "maren@example.com",
		HouseholdPhone: "801-555-0100",
		HouseholdEmail: "home@example.com",
	}
	require.Equal(t, "801-555-0100", r.Phone())
	require.Equal(t, "maren@example.com", r.Email())

	r.PersonalPhone = "801-555-0199"
	require.Equal(t, "801-555-0199", r.Phone())
}

func TestSurname(t *testing.T) {
	require.Equal(t, "Christensen", Record{Name: "Christensen, Maren"}.Surname())
	require.Equal(t, "Mononym", Record{Name: "Mononym"}.Surname())
}

func TestFromEntries(t *testing.T) {
	records := FromEntries([]churchorg.RecommendEntry{
		{
			Id:             7,
			Name:           "Young, B",
			ExpirationDate: "20171101",
			Email:          "b@example.com",
			HouseholdEmail: "young@example.com",
		},
		{
			Id:           8,
			IndividualId: 9,
			Name:         "Snow, L",
		},
	})
	require.Len(t, records, 2)
	require.Equal(t, int64(7), records[0].IndividualId)
	require.Equal(t, "b@example.com", records[0].Email())
	// individualId wins when both id spellings are present
	require.Equal(t, int64(9), records[1].IndividualId)
}
