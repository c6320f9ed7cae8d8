package chrono

import (
	"fmt"
	"math"
	"strings"

	"github.com/isochron/chrono-go/chrono/internal/overflow"
)

const (
	daysPerCycle = 146097
	// days from year zero to 1970-01-01: five 400 year cycles minus
	// the 30 years from 1970 to 2000 plus their 7 leap days
	days0000To1970 = daysPerCycle*5 - (30*365 + 7)
)

// LocalDate is an immutable ISO-8601 calendar date without a time zone,
// such as 2007-12-03. It implements Temporal and answers all date-based
// ChronoField constants; derived fields such as quarter-of-year and the
// week fields compute their values through it.
type LocalDate struct {
	year  int
	month int
	day   int
}

// DateOf returns a date from a proleptic year, month (1..12) and
// day-of-month, validating each field and the day against the month length.
func DateOf(year, month, day int) (LocalDate, error) {
	if _, err := FieldYear.checkValidValue(int64(year)); err != nil {
		return LocalDate{}, err
	}
	if _, err := FieldMonthOfYear.checkValidValue(int64(month)); err != nil {
		return LocalDate{}, err
	}
	if _, err := FieldDayOfMonth.checkValidValue(int64(day)); err != nil {
		return LocalDate{}, err
	}
	if day > 28 {
		if max := lengthOfMonth(year, month); day > max {
			if day == 29 {
				return LocalDate{}, newDateTimeError("invalid date: February 29 as %d is not a leap year", year)
			}
			return LocalDate{}, newDateTimeError("invalid date: month %d day %d", month, day)
		}
	}
	return LocalDate{year, month, day}, nil
}

// MustDate is DateOf for known-valid literals; it panics on invalid input.
func MustDate(year, month, day int) LocalDate {
	d, err := DateOf(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOfYearDay returns a date from a proleptic year and day-of-year.
func DateOfYearDay(year, dayOfYear int) (LocalDate, error) {
	if _, err := FieldYear.checkValidValue(int64(year)); err != nil {
		return LocalDate{}, err
	}
	if _, err := FieldDayOfYear.checkValidValue(int64(dayOfYear)); err != nil {
		return LocalDate{}, err
	}
	leap := IsLeapYear(year)
	if dayOfYear == 366 && !leap {
		return LocalDate{}, newDateTimeError("invalid date: day-of-year 366 as %d is not a leap year", year)
	}
	month := (dayOfYear-1)/31 + 1
	monthEnd := firstDayOfYear(month, leap) + lengthOfMonth(year, month) - 1
	if dayOfYear > monthEnd {
		month++
	}
	day := dayOfYear - firstDayOfYear(month, leap) + 1
	return LocalDate{year, month, day}, nil
}

// DateOfEpochDay returns the date for a count of days from 1970-01-01.
func DateOfEpochDay(epochDay int64) (LocalDate, error) {
	if _, err := FieldEpochDay.checkValidValue(epochDay); err != nil {
		return LocalDate{}, err
	}
	zeroDay := epochDay + days0000To1970
	// shift to a cycle anchored at 0000-03-01 so the leap day falls at the
	// end of each four year block
	zeroDay -= 60
	var adjust int64
	if zeroDay < 0 {
		adjustCycles := (zeroDay+1)/daysPerCycle - 1
		adjust = adjustCycles * 400
		zeroDay += -adjustCycles * daysPerCycle
	}
	yearEst := (400*zeroDay + 591) / daysPerCycle
	doyEst := zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	if doyEst < 0 {
		yearEst--
		doyEst = zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	}
	yearEst += adjust
	marchDoy0 := int(doyEst)
	marchMonth0 := (marchDoy0*5 + 2) / 153
	month := (marchMonth0+2)%12 + 1
	day := marchDoy0 - (marchMonth0*306+5)/10 + 1
	yearEst += int64(marchMonth0 / 10)
	return LocalDate{int(yearEst), month, day}, nil
}

// IsLeapYear applies the ISO proleptic leap year rule: divisible by four,
// except century years not divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func lengthOfMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// firstDayOfYear returns the day-of-year of the first day of the month.
func firstDayOfYear(month int, leap bool) int {
	leapAdjust := 0
	if leap {
		leapAdjust = 1
	}
	switch month {
	case 1:
		return 1
	case 2:
		return 32
	case 3:
		return 60 + leapAdjust
	case 4:
		return 91 + leapAdjust
	case 5:
		return 121 + leapAdjust
	case 6:
		return 152 + leapAdjust
	case 7:
		return 182 + leapAdjust
	case 8:
		return 213 + leapAdjust
	case 9:
		return 244 + leapAdjust
	case 10:
		return 274 + leapAdjust
	case 11:
		return 305 + leapAdjust
	default:
		return 335 + leapAdjust
	}
}

// resolvePreviousValid clamps the day to the last valid day of the month.
func resolvePreviousValid(year, month, day int) LocalDate {
	if max := lengthOfMonth(year, month); day > max {
		day = max
	}
	return LocalDate{year, month, day}
}

// Year returns the proleptic year.
func (d LocalDate) Year() int { return d.year }

// Month returns the month-of-year from 1 to 12.
func (d LocalDate) Month() int { return d.month }

// Day returns the day-of-month.
func (d LocalDate) Day() int { return d.day }

// DayOfYear returns the day-of-year from 1 to 365, or 366 in a leap year.
func (d LocalDate) DayOfYear() int {
	return firstDayOfYear(d.month, d.IsLeapYear()) + d.day - 1
}

// DayOfWeek returns the ISO day-of-week.
func (d LocalDate) DayOfWeek() DayOfWeek {
	return DayOfWeek(floorMod(d.ToEpochDay()+3, 7) + 1)
}

// IsLeapYear reports whether the year of the date is a leap year.
func (d LocalDate) IsLeapYear() bool { return IsLeapYear(d.year) }

// LengthOfMonth returns the number of days in the month of the date.
func (d LocalDate) LengthOfMonth() int { return lengthOfMonth(d.year, d.month) }

// LengthOfYear returns 365, or 366 in a leap year.
func (d LocalDate) LengthOfYear() int {
	if d.IsLeapYear() {
		return 366
	}
	return 365
}

// ToEpochDay converts the date to a count of days from 1970-01-01.
func (d LocalDate) ToEpochDay() int64 {
	y, m := int64(d.year), int64(d.month)
	total := 365 * y
	if y >= 0 {
		total += (y+3)/4 - (y+99)/100 + (y+399)/400
	} else {
		total -= y/-4 - y/-100 + y/-400
	}
	total += (367*m - 362) / 12
	total += int64(d.day) - 1
	if m > 2 {
		total--
		if !d.IsLeapYear() {
			total--
		}
	}
	return total - days0000To1970
}

func (d LocalDate) prolepticMonth() int64 {
	return int64(d.year)*12 + int64(d.month) - 1
}

// IsSupported reports whether the field can be read: all date-based
// ChronoField constants, plus whatever a non-standard field computes from
// them.
func (d LocalDate) IsSupported(field TemporalField) bool {
	if cf, ok := field.(ChronoField); ok {
		return cf.IsDateBased()
	}
	return field != nil && field.IsSupportedBy(d)
}

// IsSupportedUnit reports whether the unit can be added: all date-based
// ChronoUnit constants, plus whatever a non-standard unit supports.
func (d LocalDate) IsSupportedUnit(unit TemporalUnit) bool {
	if cu, ok := unit.(ChronoUnit); ok {
		return cu.IsDateBased()
	}
	return unit != nil && unit.IsSupportedBy(d)
}

func (d LocalDate) Range(field TemporalField) (ValueRange, error) {
	cf, ok := field.(ChronoField)
	if !ok {
		return field.RangeRefinedBy(d)
	}
	switch cf {
	case FieldDayOfMonth:
		return RangeOf(1, int64(d.LengthOfMonth())), nil
	case FieldDayOfYear:
		return RangeOf(1, int64(d.LengthOfYear())), nil
	case FieldAlignedWeekOfMonth:
		if d.month == 2 && !d.IsLeapYear() {
			return RangeOf(1, 4), nil
		}
		return RangeOf(1, 5), nil
	case FieldYearOfEra:
		if d.year <= 0 {
			return RangeOf(1, MaxYear+1), nil
		}
		return RangeOf(1, MaxYear), nil
	}
	if !cf.IsDateBased() {
		return ValueRange{}, errUnsupportedField(field)
	}
	return cf.Range(), nil
}

func (d LocalDate) GetLong(field TemporalField) (int64, error) {
	cf, ok := field.(ChronoField)
	if !ok {
		return field.GetFrom(d)
	}
	switch cf {
	case FieldDayOfWeek:
		return int64(d.DayOfWeek()), nil
	case FieldAlignedDayOfWeekInMonth:
		return int64((d.day-1)%7 + 1), nil
	case FieldAlignedDayOfWeekInYear:
		return int64((d.DayOfYear()-1)%7 + 1), nil
	case FieldDayOfMonth:
		return int64(d.day), nil
	case FieldDayOfYear:
		return int64(d.DayOfYear()), nil
	case FieldEpochDay:
		return d.ToEpochDay(), nil
	case FieldAlignedWeekOfMonth:
		return int64((d.day-1)/7 + 1), nil
	case FieldAlignedWeekOfYear:
		return int64((d.DayOfYear()-1)/7 + 1), nil
	case FieldMonthOfYear:
		return int64(d.month), nil
	case FieldProlepticMonth:
		return d.prolepticMonth(), nil
	case FieldYearOfEra:
		if d.year >= 1 {
			return int64(d.year), nil
		}
		return int64(1 - d.year), nil
	case FieldYear:
		return int64(d.year), nil
	case FieldEra:
		if d.year >= 1 {
			return 1, nil
		}
		return 0, nil
	}
	return 0, errUnsupportedField(field)
}

func (d LocalDate) With(field TemporalField, newValue int64) (Temporal, error) {
	cf, ok := field.(ChronoField)
	if !ok {
		return field.AdjustInto(d, newValue)
	}
	if !cf.IsDateBased() {
		return nil, errUnsupportedField(field)
	}
	switch cf {
	case FieldDayOfWeek:
		if _, err := cf.checkValidValue(newValue); err != nil {
			return nil, err
		}
		return d.PlusDays(newValue - int64(d.DayOfWeek()))
	case FieldAlignedDayOfWeekInMonth, FieldAlignedDayOfWeekInYear:
		if _, err := cf.checkValidValue(newValue); err != nil {
			return nil, err
		}
		cur, _ := d.GetLong(cf)
		return d.PlusDays(newValue - cur)
	case FieldDayOfMonth:
		v, err := cf.checkValidIntValue(newValue)
		if err != nil {
			return nil, err
		}
		return DateOf(d.year, d.month, v)
	case FieldDayOfYear:
		v, err := cf.checkValidIntValue(newValue)
		if err != nil {
			return nil, err
		}
		return DateOfYearDay(d.year, v)
	case FieldEpochDay:
		return DateOfEpochDay(newValue)
	case FieldAlignedWeekOfMonth, FieldAlignedWeekOfYear:
		if _, err := cf.checkValidValue(newValue); err != nil {
			return nil, err
		}
		cur, _ := d.GetLong(cf)
		return d.PlusWeeks(newValue - cur)
	case FieldMonthOfYear:
		v, err := cf.checkValidIntValue(newValue)
		if err != nil {
			return nil, err
		}
		return resolvePreviousValid(d.year, v, d.day), nil
	case FieldProlepticMonth:
		if _, err := cf.checkValidValue(newValue); err != nil {
			return nil, err
		}
		return d.PlusMonths(newValue - d.prolepticMonth())
	case FieldYearOfEra:
		if _, err := cf.checkValidValue(newValue); err != nil {
			return nil, err
		}
		if d.year >= 1 {
			return d.withYear(newValue)
		}
		return d.withYear(1 - newValue)
	case FieldYear:
		return d.withYear(newValue)
	case FieldEra:
		if _, err := cf.checkValidValue(newValue); err != nil {
			return nil, err
		}
		cur, _ := d.GetLong(FieldEra)
		if cur == newValue {
			return d, nil
		}
		return d.withYear(int64(1 - d.year))
	}
	return nil, errUnsupportedField(field)
}

func (d LocalDate) withYear(year int64) (Temporal, error) {
	y, err := FieldYear.checkValidIntValue(year)
	if err != nil {
		return nil, err
	}
	return resolvePreviousValid(y, d.month, d.day), nil
}

// PlusDays returns a copy with the number of days added.
func (d LocalDate) PlusDays(days int64) (LocalDate, error) {
	if days == 0 {
		return d, nil
	}
	epochDay, ok := overflow.Add(d.ToEpochDay(), days)
	if !ok {
		return LocalDate{}, newOverflowError("date days")
	}
	return DateOfEpochDay(epochDay)
}

// PlusWeeks returns a copy with the number of weeks added.
func (d LocalDate) PlusWeeks(weeks int64) (LocalDate, error) {
	days, ok := overflow.Mul(weeks, int64(7))
	if !ok {
		return LocalDate{}, newOverflowError("date weeks")
	}
	return d.PlusDays(days)
}

// PlusMonths returns a copy with the number of months added, clamping the
// day to the last day of the resulting month when necessary.
func (d LocalDate) PlusMonths(months int64) (LocalDate, error) {
	if months == 0 {
		return d, nil
	}
	monthCount := int64(d.year)*12 + int64(d.month) - 1
	calcMonths, ok := overflow.Add(monthCount, months)
	if !ok {
		return LocalDate{}, newOverflowError("date months")
	}
	newYear, err := FieldYear.checkValidIntValue(floorDiv(calcMonths, 12))
	if err != nil {
		return LocalDate{}, err
	}
	newMonth := int(floorMod(calcMonths, 12)) + 1
	return resolvePreviousValid(newYear, newMonth, d.day), nil
}

// PlusYears returns a copy with the number of years added, clamping
// February 29 to February 28 outside leap years.
func (d LocalDate) PlusYears(years int64) (LocalDate, error) {
	if years == 0 {
		return d, nil
	}
	sum, ok := overflow.Add(int64(d.year), years)
	if !ok {
		return LocalDate{}, newOverflowError("date years")
	}
	newYear, err := FieldYear.checkValidIntValue(sum)
	if err != nil {
		return LocalDate{}, err
	}
	return resolvePreviousValid(newYear, d.month, d.day), nil
}

// MinusDays returns a copy with the number of days subtracted.
func (d LocalDate) MinusDays(days int64) (LocalDate, error) {
	if days == minInt64 {
		d2, err := d.PlusDays(maxInt64)
		if err != nil {
			return LocalDate{}, err
		}
		return d2.PlusDays(1)
	}
	return d.PlusDays(-days)
}

// MinusMonths returns a copy with the number of months subtracted.
func (d LocalDate) MinusMonths(months int64) (LocalDate, error) {
	if months == minInt64 {
		d2, err := d.PlusMonths(maxInt64)
		if err != nil {
			return LocalDate{}, err
		}
		return d2.PlusMonths(1)
	}
	return d.PlusMonths(-months)
}

// MinusYears returns a copy with the number of years subtracted.
func (d LocalDate) MinusYears(years int64) (LocalDate, error) {
	if years == minInt64 {
		d2, err := d.PlusYears(maxInt64)
		if err != nil {
			return LocalDate{}, err
		}
		return d2.PlusYears(1)
	}
	return d.PlusYears(-years)
}

func (d LocalDate) Plus(amount int64, unit TemporalUnit) (Temporal, error) {
	cu, ok := unit.(ChronoUnit)
	if !ok {
		return unit.AddTo(d, amount)
	}
	switch cu {
	case UnitDays:
		return d.PlusDays(amount)
	case UnitWeeks:
		return d.PlusWeeks(amount)
	case UnitMonths:
		return d.PlusMonths(amount)
	case UnitYears:
		return d.PlusYears(amount)
	case UnitDecades:
		years, ok := overflow.Mul(amount, int64(10))
		if !ok {
			return nil, newOverflowError("date decades")
		}
		return d.PlusYears(years)
	case UnitCenturies:
		years, ok := overflow.Mul(amount, int64(100))
		if !ok {
			return nil, newOverflowError("date centuries")
		}
		return d.PlusYears(years)
	case UnitMillennia:
		years, ok := overflow.Mul(amount, int64(1000))
		if !ok {
			return nil, newOverflowError("date millennia")
		}
		return d.PlusYears(years)
	case UnitEras:
		cur, _ := d.GetLong(FieldEra)
		sum, ok := overflow.Add(cur, amount)
		if !ok {
			return nil, newOverflowError("date eras")
		}
		return d.With(FieldEra, sum)
	}
	return nil, errUnsupportedUnit(unit)
}

func (d LocalDate) Minus(amount int64, unit TemporalUnit) (Temporal, error) {
	if amount == minInt64 {
		t, err := d.Plus(maxInt64, unit)
		if err != nil {
			return nil, err
		}
		return t.Plus(1, unit)
	}
	return d.Plus(-amount, unit)
}

// Until computes the amount of time until another date in terms of the
// unit, truncated toward zero.
func (d LocalDate) Until(endExclusive Temporal, unit TemporalUnit) (int64, error) {
	end, err := localDateFrom(endExclusive)
	if err != nil {
		return 0, err
	}
	cu, ok := unit.(ChronoUnit)
	if !ok {
		return unit.Between(d, end)
	}
	switch cu {
	case UnitDays:
		return d.daysUntil(end), nil
	case UnitWeeks:
		return d.daysUntil(end) / 7, nil
	case UnitMonths:
		return d.monthsUntil(end), nil
	case UnitYears:
		return d.monthsUntil(end) / 12, nil
	case UnitDecades:
		return d.monthsUntil(end) / 120, nil
	case UnitCenturies:
		return d.monthsUntil(end) / 1200, nil
	case UnitMillennia:
		return d.monthsUntil(end) / 12000, nil
	case UnitEras:
		endEra, _ := end.GetLong(FieldEra)
		startEra, _ := d.GetLong(FieldEra)
		return endEra - startEra, nil
	}
	return 0, errUnsupportedUnit(unit)
}

func (d LocalDate) daysUntil(end LocalDate) int64 {
	return end.ToEpochDay() - d.ToEpochDay()
}

// monthsUntil counts whole months, packing day-of-month alongside the
// proleptic month so partial months truncate toward zero.
func (d LocalDate) monthsUntil(end LocalDate) int64 {
	packed1 := d.prolepticMonth()*32 + int64(d.day)
	packed2 := end.prolepticMonth()*32 + int64(end.day)
	return (packed2 - packed1) / 32
}

// PeriodUntil decomposes the span to another date into whole years, months
// and days.
func (d LocalDate) PeriodUntil(end LocalDate) (Period, error) {
	totalMonths := end.prolepticMonth() - d.prolepticMonth()
	days := end.day - d.day
	if totalMonths > 0 && days < 0 {
		totalMonths--
		calcDate, err := d.PlusMonths(totalMonths)
		if err != nil {
			return Period{}, err
		}
		days = int(end.ToEpochDay() - calcDate.ToEpochDay())
	} else if totalMonths < 0 && days > 0 {
		totalMonths++
		days -= end.LengthOfMonth()
	}
	years := totalMonths / 12
	months := int(totalMonths % 12)
	if years < math.MinInt32 || years > math.MaxInt32 {
		return Period{}, newOverflowError("period years")
	}
	return PeriodOf(int(years), months, days), nil
}

// CompareTo orders dates chronologically.
func (d LocalDate) CompareTo(other LocalDate) int {
	if c := d.year - other.year; c != 0 {
		return sign(c)
	}
	if c := d.month - other.month; c != 0 {
		return sign(c)
	}
	return sign(d.day - other.day)
}

// IsBefore reports whether this date is before the other.
func (d LocalDate) IsBefore(other LocalDate) bool { return d.CompareTo(other) < 0 }

// IsAfter reports whether this date is after the other.
func (d LocalDate) IsAfter(other LocalDate) bool { return d.CompareTo(other) > 0 }

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// String formats the date as ISO-8601 yyyy-MM-dd, with an explicit sign
// for years outside 0000 to 9999.
func (d LocalDate) String() string {
	var b strings.Builder
	abs := d.year
	if abs < 0 {
		abs = -abs
	}
	if abs < 1000 {
		if d.year < 0 {
			fmt.Fprintf(&b, "-%04d", abs)
		} else {
			fmt.Fprintf(&b, "%04d", d.year)
		}
	} else {
		if d.year > 9999 {
			b.WriteByte('+')
		}
		fmt.Fprintf(&b, "%d", d.year)
	}
	fmt.Fprintf(&b, "-%02d-%02d", d.month, d.day)
	return b.String()
}

// localDateFrom extracts a LocalDate from any accessor that models
// epoch-day.
func localDateFrom(t TemporalAccessor) (LocalDate, error) {
	if ld, ok := t.(LocalDate); ok {
		return ld, nil
	}
	epochDay, err := t.GetLong(FieldEpochDay)
	if err != nil {
		return LocalDate{}, err
	}
	return DateOfEpochDay(epochDay)
}
