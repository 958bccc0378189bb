// Package membership turns the portal's flat household payload into a
// navigable index: persons keyed by individual id, surname buckets,
// and role lookups over the calling list.
package membership

import (
	"context"
	"errors"
	"fmt"
	"wardreport/lib/scrapers/churchorg"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/membership")

var ErrNotFound = errors.New("individual not found")

// Address holds exactly the allow-listed address fields of a
// household: the free-form description lines plus city, state and
// postal code.
type Address struct {
	Lines      []string
	City       string
	State      string
	PostalCode string
}

// House is the household summary shared by every member of the
// household. Persons hold a pointer to it, so an update to a
// household's contact fields is visible to all of its members without
// re-indexing.
type House struct {
	Address       Address
	CoupleName    string
	HouseholdName string
	Email         string
	Phone         string
	Latitude      float64
	Longitude     float64
	OptOut        bool
}

// Person is an indexed member. Cross references (spouse, children) are
// individual ids resolved through the Index; only the House summary is
// a shared pointer.
type Person struct {
	IndividualId  int64
	MemberId      string
	Surname       string
	GivenName     string
	PreferredName string
	FormattedName string
	Birthdate     string

	PersonalEmail string
	PersonalPhone string

	House *House
	// 0 when unmarried
	SpouseId int64
	// shared between head and spouse; empty but non-nil on a
	// childless head of house
	Children []int64
	// set on children only, points at the household summary
	ParentHouse *House
}

// Email returns the person's own address, or the household address
// when they have none.
func (p *Person) Email() string {
	if p.PersonalEmail != "" {
		return p.PersonalEmail
	}
	return p.House.Email
}

// Phone returns the person's own number, or the household number when
// they have none.
func (p *Person) Phone() string {
	if p.PersonalPhone != "" {
		return p.PersonalPhone
	}
	return p.House.Phone
}

type Index struct {
	unitNumber int64
	callings   []churchorg.Calling

	people    map[int64]*Person
	order     []int64
	bySurname map[string][]*Person
}

func newPerson(raw churchorg.RawPerson, house *House) *Person {
	return &Person{
		IndividualId:  raw.IndividualId,
		MemberId:      raw.MemberId,
		Surname:       raw.Surname,
		GivenName:     raw.GivenName,
		PreferredName: raw.PreferredName,
		FormattedName: raw.FormattedName,
		Birthdate:     raw.Birthdate,
		PersonalEmail: raw.Email,
		PersonalPhone: raw.Phone,
		House:         house,
	}
}

func houseOf(raw churchorg.RawHousehold) *House {
	return &House{
		Address: Address{
			Lines:      raw.DescLines(),
			City:       raw.City,
			State:      raw.State,
			PostalCode: raw.PostalCode,
		},
		CoupleName:    raw.CoupleName,
		HouseholdName: raw.HouseholdName,
		Email:         raw.EmailAddress,
		Phone:         raw.Phone,
		Latitude:      raw.Latitude,
		Longitude:     raw.Longitude,
		OptOut:        raw.OptOut,
	}
}

// Build indexes a membership payload. A household without a head of
// house is a malformed payload and aborts the whole build; a household
// without a spouse or children is perfectly normal.
func Build(ctx context.Context, payload churchorg.MembershipPayload) (*Index, error) {
	_, span := tracer.Start(ctx, "Build")
	defer span.End()
	span.SetAttributes(attribute.Int("households", len(payload.Households)))

	idx := &Index{
		unitNumber: payload.UnitNumber,
		callings:   payload.Callings,
		people:     map[int64]*Person{},
		bySurname:  map[string][]*Person{},
	}

	for _, raw := range payload.Households {
		if raw.HeadOfHouse.IndividualId == 0 {
			err := fmt.Errorf("household %q has no head of house", raw.HouseholdName)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		house := houseOf(raw)
		head := newPerson(raw.HeadOfHouse, house)

		children := make([]int64, 0, len(raw.Children))
		for _, c := range raw.Children {
			children = append(children, c.IndividualId)
		}
		head.Children = children

		idx.add(head)
		if raw.Spouse != nil {
			spouse := newPerson(*raw.Spouse, house)
			head.SpouseId = spouse.IndividualId
			spouse.SpouseId = head.IndividualId
			spouse.Children = children
			idx.add(spouse)
		}
		for _, c := range raw.Children {
			child := newPerson(c, house)
			child.ParentHouse = house
			idx.add(child)
		}
	}

	return idx, nil
}

func (x *Index) add(p *Person) {
	x.people[p.IndividualId] = p
	x.order = append(x.order, p.IndividualId)
	x.bySurname[p.Surname] = append(x.bySurname[p.Surname], p)
}

func (x *Index) UnitNumber() int64 {
	return x.unitNumber
}

func (x *Index) Len() int {
	return len(x.people)
}

// ByID returns the person with the given individual id, or an error
// wrapping ErrNotFound.
func (x *Index) ByID(id int64) (*Person, error) {
	p, ok := x.people[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return p, nil
}

// BySurname returns every indexed person with the surname, in
// insertion order. An unknown surname yields an empty slice, never an
// error.
func (x *Index) BySurname(surname string) []*Person {
	return x.bySurname[surname]
}

// All iterates persons in insertion order.
func (x *Index) All() []*Person {
	out := make([]*Person, 0, len(x.order))
	for _, id := range x.order {
		out = append(out, x.people[id])
	}
	return out
}
