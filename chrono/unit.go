package chrono

import "fmt"

// TemporalUnit is a unit of date/time measurement, such as Days or Hours.
//
// Units are identity-compared singletons: the ChronoUnit constants plus the
// two ISO extension units UnitWeekBasedYears and UnitQuarterYears.
type TemporalUnit interface {
	fmt.Stringer
	// Duration returns the duration of the unit, which may be an estimate.
	Duration() Duration
	// IsDurationEstimated reports whether the duration is an estimate.
	// True for all date-based units, false for time-based units.
	IsDurationEstimated() bool
	// IsDateBased reports whether the unit is a component of a date.
	IsDateBased() bool
	// IsTimeBased reports whether the unit is a component of a time.
	IsTimeBased() bool
	// IsSupportedBy reports whether the unit is usable with the temporal.
	IsSupportedBy(t Temporal) bool
	// AddTo adds amount of this unit to the temporal.
	AddTo(t Temporal, amount int64) (Temporal, error)
	// Between computes the amount of this unit between two temporals,
	// truncated toward zero.
	Between(start, end Temporal) (int64, error)
}

// ChronoUnit is the closed set of standard date/time units, ordered by
// increasing estimated duration.
type ChronoUnit int

const (
	UnitNanos ChronoUnit = iota
	UnitMicros
	UnitMillis
	UnitSeconds
	UnitMinutes
	UnitHours
	UnitHalfDays
	UnitDays
	UnitWeeks
	UnitMonths
	UnitYears
	UnitDecades
	UnitCenturies
	UnitMillennia
	UnitEras
	// UnitForever is the synthetic unit of the era of everything; it is
	// neither date-based nor time-based and supports no temporal.
	UnitForever
)

// Average year length of 365.2425 days, in seconds.
const secondsPerAverageYear = 31556952

var chronoUnitNames = [...]string{
	"Nanos", "Micros", "Millis", "Seconds", "Minutes", "Hours", "HalfDays",
	"Days", "Weeks", "Months", "Years", "Decades", "Centuries", "Millennia",
	"Eras", "Forever",
}

var chronoUnitDurations = [...]Duration{
	{0, 1},
	{0, 1000},
	{0, 1000000},
	{1, 0},
	{60, 0},
	{3600, 0},
	{43200, 0},
	{86400, 0},
	{7 * 86400, 0},
	{secondsPerAverageYear / 12, 0},
	{secondsPerAverageYear, 0},
	{10 * secondsPerAverageYear, 0},
	{100 * secondsPerAverageYear, 0},
	{1000 * secondsPerAverageYear, 0},
	{1000000000 * secondsPerAverageYear, 0},
	{maxInt64, 999999999},
}

func (u ChronoUnit) String() string {
	if u < 0 || int(u) >= len(chronoUnitNames) {
		return fmt.Sprintf("ChronoUnit(%d)", int(u))
	}
	return chronoUnitNames[u]
}

// Duration returns the duration of the unit in the ISO calendar, estimated
// for the date-based units: a month is one twelfth of 365.2425 days and a
// year is 365.2425 days.
func (u ChronoUnit) Duration() Duration { return chronoUnitDurations[u] }

func (u ChronoUnit) IsDurationEstimated() bool { return u.IsDateBased() || u == UnitForever }

func (u ChronoUnit) IsDateBased() bool { return u >= UnitDays && u != UnitForever }

func (u ChronoUnit) IsTimeBased() bool { return u < UnitDays }

// IsSupportedBy reports whether the unit is usable with the temporal.
// The temporal is asked directly when it can answer; otherwise support is
// probed with a throwaway Plus(1)/Plus(-1) whose result is discarded.
func (u ChronoUnit) IsSupportedBy(t Temporal) bool {
	if u == UnitForever {
		return false
	}
	if uc, ok := t.(unitCapable); ok {
		return uc.IsSupportedUnit(u)
	}
	if _, err := t.Plus(1, u); err == nil {
		return true
	}
	_, err := t.Plus(-1, u)
	return err == nil
}

func (u ChronoUnit) AddTo(t Temporal, amount int64) (Temporal, error) {
	return t.Plus(amount, u)
}

func (u ChronoUnit) Between(start, end Temporal) (int64, error) {
	return start.Until(end, u)
}
