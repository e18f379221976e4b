package progress

import "time"

const dayLayout = "2006-01-02"

// Day is a calendar date in "2006-01-02" form. The zero value means no date.
type Day string

// DayOf returns the calendar date of t in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	return Day(t.In(loc).Format(dayLayout))
}

// IsZero reports whether d is unset.
func (d Day) IsZero() bool { return d == "" }

// Time returns midnight of d in loc.
func (d Day) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(dayLayout, string(d), loc)
}

// AddDays returns the date n days after d. Invalid days are returned as-is.
func (d Day) AddDays(n int) Day {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return d
	}
	return Day(t.AddDate(0, 0, n).Format(dayLayout))
}
