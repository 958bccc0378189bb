package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Denver")
	if err != nil {
		panic(err)
	}
}

// pin the clock to the ward's timezone. month arithmetic on report
// windows goes wrong when the host happens to run in a different
// timezone around midnight at a month boundary.
func Now() time.Time {
	return time.Now().In(Location)
}

// Today is Now truncated to midnight.
func Today() time.Time {
	now := Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Location)
}
