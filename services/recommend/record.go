// Package recommend partitions recommend status records into named,
// month-bounded reporting groups and renders them as markdown reports.
package recommend

import (
	"strings"
	"wardreport/lib/scrapers/churchorg"
)

// sentinel for missing or malformed expiration dates: sorts before
// every real month and falls outside every bounded window
const UnknownMonth = "000000"

// Record is one recommend holder in a report run.
type Record struct {
	IndividualId int64
	// "Surname, Given" as the portal formats it
	Name string
	// YYYYMMDD or YYYYMM; empty when the portal has no date
	ExpirationDate string

	PersonalPhone  string
	PersonalEmail  string
	HouseholdPhone string
	HouseholdEmail string
}

func FromEntry(e churchorg.RecommendEntry) Record {
	return Record{
		IndividualId:   e.MemberId(),
		Name:           e.Name,
		ExpirationDate: e.ExpirationDate,
		PersonalPhone:  e.Phone,
		PersonalEmail:  e.Email,
		HouseholdPhone: e.HouseholdPhone,
		HouseholdEmail: e.HouseholdEmail,
	}
}

func FromEntries(entries []churchorg.RecommendEntry) []Record {
	records := make([]Record, len(entries))
	for i, e := range entries {
		records[i] = FromEntry(e)
	}
	return records
}

// Phone prefers the member's own number over the household's.
func (r Record) Phone() string {
	if r.PersonalPhone != "" {
		return r.PersonalPhone
	}
	return r.HouseholdPhone
}

// Email prefers the member's own address over the household's.
func (r Record) Email() string {
	if r.PersonalEmail != "" {
		return r.PersonalEmail
	}
	return r.HouseholdEmail
}

// Surname extracts the family name from "Surname, Given".
func (r Record) Surname() string {
	surname, _, _ := strings.Cut(r.Name, ",")
	return strings.TrimSpace(surname)
}

// ExpireMonth returns the YYYYMM prefix of the expiration date, or
// UnknownMonth when the date is absent or malformed. It never fails:
// one bad record must not take down a whole report run.
func (r Record) ExpireMonth() string {
	d := r.ExpirationDate
	if len(d) < 6 {
		return UnknownMonth
	}
	d = d[:6]
	for _, c := range d {
		if c < '0' || c > '9' {
			return UnknownMonth
		}
	}
	return d
}

// ExpireDisplay formats the expiration month as "YYYY-MM" for report
// tables, or empty when unknown.
func (r Record) ExpireDisplay() string {
	month := r.ExpireMonth()
	if month == UnknownMonth {
		return ""
	}
	return month[:4] + "-" + month[4:6]
}
