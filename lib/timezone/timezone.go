package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/London")
	if err != nil {
		panic(err)
	}
}

// parliament dates are civil UK dates, so force the timezone to London
// regardless of where the extraction job happens to run, otherwise
// <time.Time>.Year()/Month()/Day() can shift across midnight
func Now() time.Time {
	return time.Now().In(Location)
}

// Midnight truncates a time to midnight, London time.
func Midnight(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}

// RunDate formats a time as the YYYYMMDD key used for snapshot runs
// and data directories.
func RunDate(t time.Time) string {
	return t.In(Location).Format("20060102")
}

// ParseRunDate parses a YYYYMMDD snapshot key back into a London midnight.
func ParseRunDate(s string) (time.Time, error) {
	return time.ParseInLocation("20060102", s, Location)
}
