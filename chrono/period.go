package chrono

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/isochron/chrono-go/chrono/internal/overflow"
)

// Period is a date-based span of years, months and days, such as "2 years,
// 3 months and 4 days". The three components are independently signed and
// are not normalized: 15 months is distinct from 1 year and 3 months until
// Normalized is called. Unlike Duration a period carries no exact length;
// adding one month lands on the same day of the next month regardless of
// the month's length.
type Period struct {
	years  int32
	months int32
	days   int32
}

// PeriodZero is the zero period.
var PeriodZero = Period{}

// PeriodOf returns a period of years, months and days.
func PeriodOf(years, months, days int) Period {
	return Period{int32(years), int32(months), int32(days)}
}

// PeriodOfYears returns a period of whole years.
func PeriodOfYears(years int) Period { return Period{years: int32(years)} }

// PeriodOfMonths returns a period of whole months.
func PeriodOfMonths(months int) Period { return Period{months: int32(months)} }

// PeriodOfWeeks returns a period of days equal to seven times the weeks.
func PeriodOfWeeks(weeks int) Period { return Period{days: int32(weeks * 7)} }

// PeriodOfDays returns a period of whole days.
func PeriodOfDays(days int) Period { return Period{days: int32(days)} }

// PeriodBetween decomposes the span between two dates, the first inclusive
// and the second exclusive, into years, months and days.
func PeriodBetween(start, end LocalDate) (Period, error) {
	return start.PeriodUntil(end)
}

// PeriodFrom converts a temporal amount measured in years, months and days
// into a Period. Any other unit in the amount is rejected.
func PeriodFrom(amount TemporalAmount) (Period, error) {
	if p, ok := amount.(Period); ok {
		return p, nil
	}
	p := PeriodZero
	for _, unit := range amount.Units() {
		value, err := amount.Get(unit)
		if err != nil {
			return Period{}, err
		}
		if value < math.MinInt32 || value > math.MaxInt32 {
			return Period{}, newOverflowError("period component")
		}
		var other Period
		switch unit {
		case UnitYears:
			other = PeriodOfYears(int(value))
		case UnitMonths:
			other = PeriodOfMonths(int(value))
		case UnitDays:
			other = PeriodOfDays(int(value))
		default:
			return Period{}, errUnsupportedUnit(unit)
		}
		p, err = p.Plus(other)
		if err != nil {
			return Period{}, err
		}
	}
	return p, nil
}

// Years returns the years component.
func (p Period) Years() int { return int(p.years) }

// Months returns the months component.
func (p Period) Months() int { return int(p.months) }

// Days returns the days component.
func (p Period) Days() int { return int(p.days) }

// IsZero reports whether all components are zero.
func (p Period) IsZero() bool { return p == PeriodZero }

// IsNegative reports whether any component is negative.
func (p Period) IsNegative() bool { return p.years < 0 || p.months < 0 || p.days < 0 }

// WithYears returns a copy with the years component replaced.
func (p Period) WithYears(years int) Period { return Period{int32(years), p.months, p.days} }

// WithMonths returns a copy with the months component replaced.
func (p Period) WithMonths(months int) Period { return Period{p.years, int32(months), p.days} }

// WithDays returns a copy with the days component replaced.
func (p Period) WithDays(days int) Period { return Period{p.years, p.months, int32(days)} }

// Get implements TemporalAmount for the Years, Months and Days units.
func (p Period) Get(unit TemporalUnit) (int64, error) {
	switch unit {
	case UnitYears:
		return int64(p.years), nil
	case UnitMonths:
		return int64(p.months), nil
	case UnitDays:
		return int64(p.days), nil
	}
	return 0, errUnsupportedUnit(unit)
}

// Units returns the units of the amount: Years, Months and Days.
func (p Period) Units() []TemporalUnit {
	return []TemporalUnit{UnitYears, UnitMonths, UnitDays}
}

// Plus returns this period with the other added, combining each component
// independently.
func (p Period) Plus(other Period) (Period, error) {
	years, ok := overflow.Add(p.years, other.years)
	if !ok {
		return Period{}, newOverflowError("period years")
	}
	months, ok := overflow.Add(p.months, other.months)
	if !ok {
		return Period{}, newOverflowError("period months")
	}
	days, ok := overflow.Add(p.days, other.days)
	if !ok {
		return Period{}, newOverflowError("period days")
	}
	return Period{years, months, days}, nil
}

// Minus returns this period with the other subtracted.
func (p Period) Minus(other Period) (Period, error) {
	neg, err := other.Negated()
	if err != nil {
		return Period{}, err
	}
	return p.Plus(neg)
}

// MultipliedBy scales each component independently, overflow-checked.
func (p Period) MultipliedBy(scalar int) (Period, error) {
	if p.IsZero() || scalar == 1 {
		return p, nil
	}
	if scalar < math.MinInt32 || scalar > math.MaxInt32 {
		return Period{}, newOverflowError("period scalar")
	}
	years, ok := overflow.Mul(p.years, int32(scalar))
	if !ok {
		return Period{}, newOverflowError("period years")
	}
	months, ok := overflow.Mul(p.months, int32(scalar))
	if !ok {
		return Period{}, newOverflowError("period months")
	}
	days, ok := overflow.Mul(p.days, int32(scalar))
	if !ok {
		return Period{}, newOverflowError("period days")
	}
	return Period{years, months, days}, nil
}

// Negated returns this period with each component negated.
func (p Period) Negated() (Period, error) {
	return p.MultipliedBy(-1)
}

// Normalized collapses whole multiples of twelve months into years,
// sign-aware, leaving the days component untouched: "1 year and 15 months"
// normalizes to "2 years and 3 months".
func (p Period) Normalized() (Period, error) {
	totalMonths := p.ToTotalMonths()
	splitYears := totalMonths / 12
	splitMonths := totalMonths % 12
	if splitYears == int64(p.years) && splitMonths == int64(p.months) {
		return p, nil
	}
	if splitYears < math.MinInt32 || splitYears > math.MaxInt32 {
		return Period{}, newOverflowError("period years")
	}
	return Period{int32(splitYears), int32(splitMonths), p.days}, nil
}

// ToTotalMonths returns the years and months components in total months.
func (p Period) ToTotalMonths() int64 {
	return int64(p.years)*12 + int64(p.months)
}

// AddTo adds this period to the temporal, months first and then days.
func (p Period) AddTo(t Temporal) (Temporal, error) {
	var err error
	if totalMonths := p.ToTotalMonths(); totalMonths != 0 {
		t, err = t.Plus(totalMonths, UnitMonths)
		if err != nil {
			return nil, err
		}
	}
	if p.days != 0 {
		t, err = t.Plus(int64(p.days), UnitDays)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// SubtractFrom subtracts this period from the temporal.
func (p Period) SubtractFrom(t Temporal) (Temporal, error) {
	var err error
	if totalMonths := p.ToTotalMonths(); totalMonths != 0 {
		t, err = t.Minus(totalMonths, UnitMonths)
		if err != nil {
			return nil, err
		}
	}
	if p.days != 0 {
		t, err = t.Minus(int64(p.days), UnitDays)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

var periodPattern = regexp.MustCompile(
	`(?i)^([-+]?)P(?:([-+]?[0-9]+)Y)?(?:([-+]?[0-9]+)M)?(?:([-+]?[0-9]+)W)?(?:([-+]?[0-9]+)D)?$`)

// ParsePeriod parses ISO-8601 period text such as "P1Y2M3D" or "-P10W".
// Weeks are folded into days at seven days each. Each section may carry
// its own sign, and a leading minus negates the whole parsed period.
func ParsePeriod(text string) (Period, error) {
	match := periodPattern.FindStringSubmatch(text)
	if match == nil {
		return Period{}, newParseError(text, "text cannot be parsed to a period")
	}
	yearMatch, monthMatch, weekMatch, dayMatch := match[2], match[3], match[4], match[5]
	if yearMatch == "" && monthMatch == "" && weekMatch == "" && dayMatch == "" {
		return Period{}, newParseError(text, "text cannot be parsed to a period")
	}
	negate := int32(1)
	if match[1] == "-" {
		negate = -1
	}
	years, err := parsePeriodNumber(text, yearMatch, "years")
	if err != nil {
		return Period{}, err
	}
	months, err := parsePeriodNumber(text, monthMatch, "months")
	if err != nil {
		return Period{}, err
	}
	weeks, err := parsePeriodNumber(text, weekMatch, "weeks")
	if err != nil {
		return Period{}, err
	}
	days, err := parsePeriodNumber(text, dayMatch, "days")
	if err != nil {
		return Period{}, err
	}
	weekDays, ok := overflow.Mul(int64(weeks), int64(7))
	if !ok {
		return Period{}, newParseError(text, "text cannot be parsed to a period: overflow")
	}
	totalDays, ok := overflow.Add(int64(days), weekDays)
	if !ok || totalDays < math.MinInt32 || totalDays > math.MaxInt32 {
		return Period{}, newParseError(text, "text cannot be parsed to a period: overflow")
	}
	p := Period{years, months, int32(totalDays)}
	if negate < 0 {
		neg, err := p.Negated()
		if err != nil {
			return Period{}, newParseError(text, "text cannot be parsed to a period: overflow")
		}
		return neg, nil
	}
	return p, nil
}

func parsePeriodNumber(text, section, errText string) (int32, error) {
	if section == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(section, 10, 32)
	if err != nil {
		return 0, newParseError(text, "text cannot be parsed to a period: "+errText)
	}
	return int32(value), nil
}

// String formats the period as an ISO-8601 string such as "P6Y3M1D",
// omitting zero components; the zero period is "P0D".
func (p Period) String() string {
	if p.IsZero() {
		return "P0D"
	}
	var b strings.Builder
	b.WriteByte('P')
	if p.years != 0 {
		b.WriteString(strconv.FormatInt(int64(p.years), 10))
		b.WriteByte('Y')
	}
	if p.months != 0 {
		b.WriteString(strconv.FormatInt(int64(p.months), 10))
		b.WriteByte('M')
	}
	if p.days != 0 {
		b.WriteString(strconv.FormatInt(int64(p.days), 10))
		b.WriteByte('D')
	}
	return b.String()
}
