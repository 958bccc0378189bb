package membership

import (
	"fmt"
	"strings"
	"wardreport/lib/scrapers/churchorg"
)

// Lens selects the calling records relevant to one organization.
type Lens func(churchorg.Calling) bool

// Organization filters the unit's calling list through a lens.
func (x *Index) Organization(lens Lens) []churchorg.Calling {
	var out []churchorg.Calling
	for _, call := range x.callings {
		if lens(call) {
			out = append(out, call)
		}
	}
	return out
}

// RoleHolder is a resolved role: the person plus the calling title
// they hold it under.
type RoleHolder struct {
	*Person
	CallingName string
}

// canonical bishopric role keys
const (
	RoleBishop     = "bishop"
	RoleCounselor1 = "counselor1"
	RoleCounselor2 = "counselor2"
	RoleExecSec    = "exec_sec"
	RoleWardClerk  = "ward_clerk"
)

var bishopricTitles = map[string]string{
	"Bishop":                     RoleBishop,
	"Bishopric First Counselor":  RoleCounselor1,
	"Bishopric Second Counselor": RoleCounselor2,
	"Ward Executive Secretary":   RoleExecSec,
	"Ward Clerk":                 RoleWardClerk,
}

// BishopricLens matches bishopric callings, excluding assistant
// clerks.
func BishopricLens(call churchorg.Calling) bool {
	return call.GroupName == "Bishopric" &&
		!strings.Contains(call.CallingName, "Assistant")
}

// Bishopric resolves the bishopric role holders, keyed by the
// canonical role names above.
//
// A matched title missing from the title table means the portal's
// calling vocabulary changed under us, and is an error rather than a
// silent skip. If two calling rows resolve to the same role key the
// later row wins; fields are never merged.
func (x *Index) Bishopric() (map[string]RoleHolder, error) {
	out := map[string]RoleHolder{}
	for _, call := range x.Organization(BishopricLens) {
		key, ok := bishopricTitles[call.CallingName]
		if !ok {
			return nil, fmt.Errorf(
				"unrecognized bishopric calling title %q (individual %d)",
				call.CallingName, call.IndividualId,
			)
		}
		person, err := x.ByID(call.IndividualId)
		if err != nil {
			return nil, fmt.Errorf("calling %q: %w", call.CallingName, err)
		}
		out[key] = RoleHolder{Person: person, CallingName: call.CallingName}
	}
	return out, nil
}
