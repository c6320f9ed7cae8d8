package chrono

import "fmt"

// DayOfWeek is an ISO day-of-week: Monday is 1 through Sunday 7.
type DayOfWeek int

const (
	Monday DayOfWeek = 1 + iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayOfWeekNames = [...]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayOfWeekOf returns the day-of-week for an ISO value from 1 (Monday) to
// 7 (Sunday).
func DayOfWeekOf(value int) (DayOfWeek, error) {
	if value < 1 || value > 7 {
		return 0, newDateTimeError("invalid value for DayOfWeek: %d", value)
	}
	return DayOfWeek(value), nil
}

// Value returns the ISO numbering, 1 for Monday through 7 for Sunday.
func (d DayOfWeek) Value() int { return int(d) }

// Plus returns the day-of-week the given number of days later, rolling
// around the week.
func (d DayOfWeek) Plus(days int64) DayOfWeek {
	return DayOfWeek(floorMod(int64(d)-1+days, 7) + 1)
}

// Minus returns the day-of-week the given number of days earlier.
func (d DayOfWeek) Minus(days int64) DayOfWeek {
	return d.Plus(-(days % 7))
}

func (d DayOfWeek) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayOfWeekNames[d-1]
}
