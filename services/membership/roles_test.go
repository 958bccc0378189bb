package membership

import (
	"context"
	"testing"
	"wardreport/lib/scrapers/churchorg"

	"github.com/stretchr/testify/require"
)

func bishopricPayload() churchorg.MembershipPayload {
	payload := samplePayload()
	payload.Callings = []churchorg.Calling{
		{CallingName: "Bishop", GroupName: "Bishopric", IndividualId: 1},
		{CallingName: "Bishopric First Counselor", GroupName: "Bishopric", IndividualId: 2},
		{CallingName: "Bishopric Second Counselor", GroupName: "Bishopric", IndividualId: 4},
		{CallingName: "Assistant Ward Clerk", GroupName: "Bishopric", IndividualId: 3},
		{CallingName: "Primary President", GroupName: "Primary", IndividualId: 2},
	}
	return payload
}

func TestBishopric(t *testing.T) {
	index, err := Build(context.Background(), bishopricPayload())
	if err != nil {
		t.Fatal(err)
	}

	bishopric, err := index.Bishopric()
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, bishopric, 3)
	require.Equal(t, int64(1), bishopric[RoleBishop].IndividualId)
	require.Equal(t, int64(2), bishopric[RoleCounselor1].IndividualId)
	require.Equal(t, int64(4), bishopric[RoleCounselor2].IndividualId)
	require.Equal(t, "Bishop", bishopric[RoleBishop].CallingName)

	// assistant clerks never match the lens
	_, ok := bishopric[RoleWardClerk]
	require.False(t, ok)
}

func TestBishopricUnknownTitle(t *testing.T) {
	payload := bishopricPayload()
	payload.Callings = append(payload.Callings, churchorg.Calling{
		CallingName:  "Bishopric Third Counselor",
		GroupName:    "Bishopric",
		IndividualId: 3,
	})

	index, err := Build(context.Background(), payload)
	if err != nil {
		t.Fatal(err)
	}
	_, err = index.Bishopric()
	require.ErrorContains(t, err, "Bishopric Third Counselor")
}

func TestBishopricUnknownIndividual(t *testing.T) {
	payload := bishopricPayload()
	payload.Callings[0].IndividualId = 999

	index, err := Build(context.Background(), payload)
	if err != nil {
		t.Fatal(err)
	}
	_, err = index.Bishopric()
	require.Error(t, err)
}

func TestOrganizationLens(t *testing.T) {
	index, err := Build(context.Background(), bishopricPayload())
	if err != nil {
		t.Fatal(err)
	}

	primary := index.Organization(func(c churchorg.Calling) bool {
		return c.GroupName == "Primary"
	})
	require.Len(t, primary, 1)
	require.Equal(t, "Primary President", primary[0].CallingName)
}
