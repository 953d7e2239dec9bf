package engine

import "time"

// =============================================================================
// DAY - Calendar-day truncation (conflicts resolve at day granularity)
// =============================================================================

// Day is a calendar day in UTC. It is comparable and used as the ledger's
// day-index key. Time-of-day is deliberately discarded: two events at
// different hours on the same date still conflict for a given staff member.
type Day struct {
	Year  int
	Month time.Month
	Dom   int
}

// DayOf truncates an instant to its UTC calendar day.
func DayOf(t time.Time) Day {
	u := t.UTC()
	return Day{Year: u.Year(), Month: u.Month(), Dom: u.Day()}
}

// Today returns the current UTC calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// SameDay reports whether two instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a) == DayOf(b)
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Dom, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar day.
func (d Day) Next() Day {
	return DayOf(d.Time().AddDate(0, 0, 1))
}

func (d Day) Before(other Day) bool { return d.Time().Before(other.Time()) }

func (d Day) String() string {
	return d.Time().Format("2006-01-02")
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}
