package membership

import (
	"context"
	"errors"
	"testing"
	"wardreport/lib/scrapers/churchorg"
	"wardreport/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func samplePayload() churchorg.MembershipPayload {
	return churchorg.MembershipPayload{
		UnitNumber: 12345,
		Households: []churchorg.RawHousehold{
			{
				HeadOfHouse: churchorg.RawPerson{
					IndividualId:  1,
					Surname:       "Christensen",
					GivenName:     "Lars",
					PreferredName: "Christensen, Lars",
					Email:         "lars@example.com",
				},
				Spouse: &churchorg.RawPerson{
					IndividualId:  2,
					Surname:       "Christensen",
					GivenName:     "Maren",
					PreferredName: "Christensen, Maren",
				},
				Children: []churchorg.RawPerson{
					{IndividualId: 3, Surname: "Christensen", GivenName: "Anna"},
				},
				HouseholdName: "Christensen",
				CoupleName:    "Christensen, Lars & Maren",
				EmailAddress:  "christensens@example.com",
				Phone:         "801-555-0100",
				Desc1:         "123 Main St",
				City:          "Provo",
				State:         "UT",
				PostalCode:    "84601",
			},
			{
				HeadOfHouse: churchorg.RawPerson{
					IndividualId:  4,
					Surname:       "Young",
					GivenName:     "Brigham",
					PreferredName: "Young, Brigham",
				},
				HouseholdName: "Young",
			},
		},
	}
}

func TestBuild(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "services/membership")
	defer cleanup()

	index, err := Build(context.Background(), samplePayload())
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(12345), index.UnitNumber())
	require.Equal(t, 4, index.Len())

	lars, err := index.ByID(1)
	require.NoError(t, err)
	maren, err := index.ByID(2)
	require.NoError(t, err)
	anna, err := index.ByID(3)
	require.NoError(t, err)

	// spouse references are mutual
	require.Equal(t, int64(2), lars.SpouseId)
	require.Equal(t, int64(1), maren.SpouseId)

	// the household summary is one shared value
	require.Same(t, lars.House, maren.House)
	require.Same(t, lars.House, anna.House)
	require.Same(t, lars.House, anna.ParentHouse)
	require.Nil(t, lars.ParentHouse)

	// head and spouse share the same child list
	require.Equal(t, []int64{3}, lars.Children)
	lars.Children[0] = 99
	require.Equal(t, []int64{99}, maren.Children)
}

func TestBuildChildlessHead(t *testing.T) {
	index, err := Build(context.Background(), samplePayload())
	if err != nil {
		t.Fatal(err)
	}
	brigham, err := index.ByID(4)
	require.NoError(t, err)
	require.Zero(t, brigham.SpouseId)
	require.NotNil(t, brigham.Children)
	require.Empty(t, brigham.Children)
}

func TestBuildMissingHead(t *testing.T) {
	payload := samplePayload()
	payload.Households[1].HeadOfHouse = churchorg.RawPerson{}

	_, err := Build(context.Background(), payload)
	require.ErrorContains(t, err, "no head of house")
}

func TestContactFallback(t *testing.T) {
	index, err := Build(context.Background(), samplePayload())
	if err != nil {
		t.Fatal(err)
	}
	lars, _ := index.ByID(1)
	maren, _ := index.ByID(2)

	require.Equal(t, "lars@example.com", lars.Email())
	require.Equal(t, "christensens@example.com", maren.Email())
	require.Equal(t, "801-555-0100", maren.Phone())
}

func TestLookups(t *testing.T) {
	index, err := Build(context.Background(), samplePayload())
	if err != nil {
		t.Fatal(err)
	}

	_, err = index.ByID(999)
	require.True(t, errors.Is(err, ErrNotFound))

	christensens := index.BySurname("Christensen")
	require.Len(t, christensens, 3)
	// insertion order: head, spouse, children
	require.Equal(t, "Lars", christensens[0].GivenName)
	require.Equal(t, "Maren", christensens[1].GivenName)
	require.Equal(t, "Anna", christensens[2].GivenName)

	require.Empty(t, index.BySurname("Nobody"))

	all := index.All()
	require.Len(t, all, 4)
	require.Equal(t, int64(4), all[3].IndividualId)
}
