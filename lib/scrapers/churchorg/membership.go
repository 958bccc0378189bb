package churchorg

import (
	"context"
)

// RawPerson is a member as the portal reports them inside a household:
// head of house, spouse or child.
type RawPerson struct {
	IndividualId  int64  `json:"individualId"`
	MemberId      string `json:"memberId"`
	Surname       string `json:"surname"`
	GivenName     string `json:"givenName1"`
	PreferredName string `json:"preferredName"`
	FormattedName string `json:"formattedName"`
	DirectoryName string `json:"directoryName"`
	Birthdate     string `json:"birthdate"`
	// personal contact info, may be blank; the household values apply
	// when blank
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// RawHousehold is one household record from the membership payload.
// Desc1..Desc5, City, State and PostalCode together form the address;
// everything else except the three member fields is household summary
// data shared by every member.
type RawHousehold struct {
	HeadOfHouse             RawPerson   `json:"headOfHouse"`
	Spouse                  *RawPerson  `json:"spouse"`
	Children                []RawPerson `json:"children"`
	HeadOfHouseIndividualId int64       `json:"headOfHouseIndividualId"`

	CoupleName    string  `json:"coupleName"`
	HouseholdName string  `json:"householdName"`
	EmailAddress  string  `json:"emailAddress"`
	Phone         string  `json:"phone"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	OptOut        bool    `json:"optOut"`

	Desc1      string `json:"desc1"`
	Desc2      string `json:"desc2"`
	Desc3      string `json:"desc3"`
	Desc4      string `json:"desc4"`
	Desc5      string `json:"desc5"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// DescLines returns the free-form address description lines, in order,
// with empty trailing lines dropped.
func (h RawHousehold) DescLines() []string {
	all := []string{h.Desc1, h.Desc2, h.Desc3, h.Desc4, h.Desc5}
	end := len(all)
	for end > 0 && all[end-1] == "" {
		end--
	}
	return all[:end]
}

// Calling is a role assignment. The numeric group/position identifiers
// are opaque to us; callingName and groupName are the join keys.
type Calling struct {
	CallingName   string `json:"callingName"`
	GroupName     string `json:"groupName"`
	IndividualId  int64  `json:"individualId"`
	GroupInstance int64  `json:"groupInstance"`
	GroupKey      int64  `json:"groupKey"`
	PositionId    int64  `json:"positionId"`
}

type MembershipPayload struct {
	Households []RawHousehold `json:"households"`
	Callings   []Calling      `json:"callings"`
	UnitNumber int64          `json:"unitNo"`
}

// Membership fetches the full household/calling payload for the
// signed-in user's unit.
func (c *Client) Membership(ctx context.Context) (MembershipPayload, error) {
	ctx, span := tracer.Start(ctx, "client:Membership")
	defer span.End()

	var payload MembershipPayload
	err := c.getEndpoint(ctx, "unit-members-and-callings", &payload)
	if err != nil {
		return MembershipPayload{}, err
	}
	return payload, nil
}
