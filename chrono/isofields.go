package chrono

import (
	"github.com/isochron/chrono-go/chrono/internal/overflow"
)

// Fields and units specific to the ISO-8601 calendar system: the quarter
// of year and the week-based year.
//
// The ISO-8601 week-based year runs in whole Monday-to-Sunday weeks; week
// one is the first week containing at least four days of the new calendar
// year, so up to three days at either end of a calendar year may belong to
// the week-based year of the adjacent calendar year.
var (
	// FieldDayOfQuarter counts days within the quarter, 1 to 90, 91 or 92.
	FieldDayOfQuarter TemporalField = isoDayOfQuarter
	// FieldQuarterOfYear counts quarters, January to March being 1.
	FieldQuarterOfYear TemporalField = isoQuarterOfYear
	// FieldWeekOfWeekBasedYear counts weeks within the week-based year.
	FieldWeekOfWeekBasedYear TemporalField = isoWeekOfWeekBasedYear
	// FieldWeekBasedYear is the year of the ISO week numbering.
	FieldWeekBasedYear TemporalField = isoWeekBasedYear

	// UnitWeekBasedYears measures whole week-based years.
	UnitWeekBasedYears TemporalUnit = isoWeekBasedYearsUnit
	// UnitQuarterYears measures quarter years, exactly three months.
	UnitQuarterYears TemporalUnit = isoQuarterYearsUnit
)

type isoField int

const (
	isoDayOfQuarter isoField = iota
	isoQuarterOfYear
	isoWeekOfWeekBasedYear
	isoWeekBasedYear
)

// day-of-year at the start of each quarter, indexed by quarter-1 with +4
// for leap years
var quarterStartDays = [...]int{0, 90, 181, 273, 0, 91, 182, 274}

func (f isoField) String() string {
	switch f {
	case isoDayOfQuarter:
		return "DayOfQuarter"
	case isoQuarterOfYear:
		return "QuarterOfYear"
	case isoWeekOfWeekBasedYear:
		return "WeekOfWeekBasedYear"
	default:
		return "WeekBasedYear"
	}
}

func (f isoField) BaseUnit() TemporalUnit {
	switch f {
	case isoDayOfQuarter:
		return UnitDays
	case isoQuarterOfYear:
		return UnitQuarterYears
	case isoWeekOfWeekBasedYear:
		return UnitWeeks
	default:
		return UnitWeekBasedYears
	}
}

func (f isoField) RangeUnit() TemporalUnit {
	switch f {
	case isoDayOfQuarter:
		return UnitQuarterYears
	case isoQuarterOfYear:
		return UnitYears
	case isoWeekOfWeekBasedYear:
		return UnitWeekBasedYears
	default:
		return UnitForever
	}
}

func (f isoField) Range() ValueRange {
	switch f {
	case isoDayOfQuarter:
		return RangeOfVariableMax(1, 90, 92)
	case isoQuarterOfYear:
		return RangeOf(1, 4)
	case isoWeekOfWeekBasedYear:
		return RangeOfVariableMax(1, 52, 53)
	default:
		return FieldYear.Range()
	}
}

func (f isoField) IsDateBased() bool { return true }

func (f isoField) IsTimeBased() bool { return false }

func (f isoField) IsSupportedBy(t TemporalAccessor) bool {
	switch f {
	case isoDayOfQuarter:
		return t.IsSupported(FieldDayOfYear) && t.IsSupported(FieldMonthOfYear) &&
			t.IsSupported(FieldYear)
	case isoQuarterOfYear:
		return t.IsSupported(FieldMonthOfYear)
	default:
		return t.IsSupported(FieldEpochDay)
	}
}

func (f isoField) RangeRefinedBy(t TemporalAccessor) (ValueRange, error) {
	if !f.IsSupportedBy(t) {
		return ValueRange{}, errUnsupportedField(f)
	}
	switch f {
	case isoDayOfQuarter:
		qoy, err := t.GetLong(FieldQuarterOfYear)
		if err != nil {
			return ValueRange{}, err
		}
		switch qoy {
		case 1:
			year, err := t.GetLong(FieldYear)
			if err != nil {
				return ValueRange{}, err
			}
			if IsLeapYear(int(year)) {
				return RangeOf(1, 91), nil
			}
			return RangeOf(1, 90), nil
		case 2:
			return RangeOf(1, 91), nil
		default:
			return RangeOf(1, 92), nil
		}
	case isoWeekOfWeekBasedYear:
		date, err := localDateFrom(t)
		if err != nil {
			return ValueRange{}, err
		}
		return weekRangeOf(date), nil
	}
	return f.Range(), nil
}

func (f isoField) GetFrom(t TemporalAccessor) (int64, error) {
	if !f.IsSupportedBy(t) {
		return 0, errUnsupportedField(f)
	}
	switch f {
	case isoDayOfQuarter:
		doy, err := t.GetLong(FieldDayOfYear)
		if err != nil {
			return 0, err
		}
		moy, err := t.GetLong(FieldMonthOfYear)
		if err != nil {
			return 0, err
		}
		year, err := t.GetLong(FieldYear)
		if err != nil {
			return 0, err
		}
		idx := (moy - 1) / 3
		if IsLeapYear(int(year)) {
			idx += 4
		}
		return doy - int64(quarterStartDays[idx]), nil
	case isoQuarterOfYear:
		moy, err := t.GetLong(FieldMonthOfYear)
		if err != nil {
			return 0, err
		}
		return (moy + 2) / 3, nil
	case isoWeekOfWeekBasedYear:
		date, err := localDateFrom(t)
		if err != nil {
			return 0, err
		}
		week, err := weekOfWeekBasedYear(date)
		if err != nil {
			return 0, err
		}
		return int64(week), nil
	default:
		date, err := localDateFrom(t)
		if err != nil {
			return 0, err
		}
		return int64(weekBasedYearOf(date)), nil
	}
}

func (f isoField) AdjustInto(t Temporal, newValue int64) (Temporal, error) {
	switch f {
	case isoDayOfQuarter:
		cur, err := f.GetFrom(t)
		if err != nil {
			return nil, err
		}
		if _, err := f.Range().CheckValidValue(newValue, f); err != nil {
			return nil, err
		}
		doy, err := t.GetLong(FieldDayOfYear)
		if err != nil {
			return nil, err
		}
		return t.With(FieldDayOfYear, doy+(newValue-cur))
	case isoQuarterOfYear:
		cur, err := f.GetFrom(t)
		if err != nil {
			return nil, err
		}
		if _, err := f.Range().CheckValidValue(newValue, f); err != nil {
			return nil, err
		}
		moy, err := t.GetLong(FieldMonthOfYear)
		if err != nil {
			return nil, err
		}
		return t.With(FieldMonthOfYear, moy+(newValue-cur)*3)
	case isoWeekOfWeekBasedYear:
		cur, err := f.GetFrom(t)
		if err != nil {
			return nil, err
		}
		if _, err := f.Range().CheckValidValue(newValue, f); err != nil {
			return nil, err
		}
		return t.Plus(newValue-cur, UnitWeeks)
	default:
		newWby, err := f.Range().CheckValidIntValue(newValue, f)
		if err != nil {
			return nil, err
		}
		date, err := localDateFrom(t)
		if err != nil {
			return nil, err
		}
		dow := int(date.DayOfWeek())
		week, err := weekOfWeekBasedYear(date)
		if err != nil {
			return nil, err
		}
		if week == 53 && weeksInWeekBasedYear(newWby) == 52 {
			week = 52
		}
		resolved, err := DateOf(newWby, 1, 4)
		if err != nil {
			return nil, err
		}
		days := (dow - int(resolved.DayOfWeek())) + (week-1)*7
		resolved, err = resolved.PlusDays(int64(days))
		if err != nil {
			return nil, err
		}
		return t.With(FieldEpochDay, resolved.ToEpochDay())
	}
}

func (f isoField) Resolve(fieldValues map[TemporalField]int64, partial TemporalAccessor, style ResolverStyle) (TemporalAccessor, error) {
	switch f {
	case isoDayOfQuarter:
		return resolveDayOfQuarter(fieldValues, style)
	case isoWeekOfWeekBasedYear:
		return resolveWeekOfWeekBasedYear(fieldValues, style)
	}
	return nil, nil
}

func resolveDayOfQuarter(fieldValues map[TemporalField]int64, style ResolverStyle) (TemporalAccessor, error) {
	yearValue, okYear := fieldValues[FieldYear]
	qoyValue, okQoy := fieldValues[FieldQuarterOfYear]
	if !okYear || !okQoy {
		return nil, nil
	}
	year, err := FieldYear.checkValidIntValue(yearValue)
	if err != nil {
		return nil, err
	}
	doq := fieldValues[FieldDayOfQuarter]
	var date LocalDate
	if style == ResolverStyleLenient {
		date, err = DateOf(year, 1, 1)
		if err != nil {
			return nil, err
		}
		months, ok := overflow.Mul(qoyValue-1, int64(3))
		if !ok {
			return nil, newOverflowError("quarter months")
		}
		date, err = date.PlusMonths(months)
		if err != nil {
			return nil, err
		}
		days, ok := overflow.Sub(doq, int64(1))
		if !ok {
			return nil, newOverflowError("quarter days")
		}
		date, err = date.PlusDays(days)
		if err != nil {
			return nil, err
		}
	} else {
		qoy, err := FieldQuarterOfYear.Range().CheckValidIntValue(qoyValue, FieldQuarterOfYear)
		if err != nil {
			return nil, err
		}
		if style == ResolverStyleStrict {
			max := int64(92)
			switch {
			case qoy == 1 && IsLeapYear(year):
				max = 91
			case qoy == 1:
				max = 90
			case qoy == 2:
				max = 91
			}
			if _, err := RangeOf(1, max).CheckValidValue(doq, FieldDayOfQuarter); err != nil {
				return nil, err
			}
		} else {
			if _, err := FieldDayOfQuarter.Range().CheckValidValue(doq, FieldDayOfQuarter); err != nil {
				return nil, err
			}
		}
		date, err = DateOf(year, (qoy-1)*3+1, 1)
		if err != nil {
			return nil, err
		}
		date, err = date.PlusDays(doq - 1)
		if err != nil {
			return nil, err
		}
	}
	delete(fieldValues, FieldDayOfQuarter)
	delete(fieldValues, FieldYear)
	delete(fieldValues, FieldQuarterOfYear)
	return date, nil
}

func resolveWeekOfWeekBasedYear(fieldValues map[TemporalField]int64, style ResolverStyle) (TemporalAccessor, error) {
	wbyValue, okWby := fieldValues[FieldWeekBasedYear]
	dowValue, okDow := fieldValues[FieldDayOfWeek]
	if !okWby || !okDow {
		return nil, nil
	}
	wby, err := FieldWeekBasedYear.Range().CheckValidIntValue(wbyValue, FieldWeekBasedYear)
	if err != nil {
		return nil, err
	}
	wowby := fieldValues[FieldWeekOfWeekBasedYear]
	date, err := DateOf(wby, 1, 4)
	if err != nil {
		return nil, err
	}
	if style == ResolverStyleLenient {
		dow := dowValue
		if dow > 7 {
			date, err = date.PlusWeeks((dow - 1) / 7)
			if err != nil {
				return nil, err
			}
			dow = (dow-1)%7 + 1
		} else if dow < 1 {
			weeksBack, ok := overflow.Sub(dow, int64(7))
			if !ok {
				return nil, newOverflowError("week-based-year weeks")
			}
			date, err = date.PlusWeeks(weeksBack / 7)
			if err != nil {
				return nil, err
			}
			dow = (dow-7)%7 + 7
		}
		weeks, ok := overflow.Sub(wowby, int64(1))
		if !ok {
			return nil, newOverflowError("week-based-year weeks")
		}
		date, err = date.PlusWeeks(weeks)
		if err != nil {
			return nil, err
		}
		t, err := date.With(FieldDayOfWeek, dow)
		if err != nil {
			return nil, err
		}
		date = t.(LocalDate)
	} else {
		dow, err := FieldDayOfWeek.checkValidIntValue(dowValue)
		if err != nil {
			return nil, err
		}
		if style == ResolverStyleStrict {
			if _, err := weekRangeOf(date).CheckValidValue(wowby, FieldWeekOfWeekBasedYear); err != nil {
				return nil, err
			}
		} else {
			if _, err := FieldWeekOfWeekBasedYear.Range().CheckValidValue(wowby, FieldWeekOfWeekBasedYear); err != nil {
				return nil, err
			}
		}
		date, err = date.PlusWeeks(wowby - 1)
		if err != nil {
			return nil, err
		}
		t, err := date.With(FieldDayOfWeek, int64(dow))
		if err != nil {
			return nil, err
		}
		date = t.(LocalDate)
		if style == ResolverStyleStrict && weekBasedYearOf(date) != wby {
			return nil, newDateTimeError(
				"strict mode rejected resolved date as it is in a different week-based-year: %s", date)
		}
	}
	delete(fieldValues, FieldWeekOfWeekBasedYear)
	delete(fieldValues, FieldWeekBasedYear)
	delete(fieldValues, FieldDayOfWeek)
	return date, nil
}

// weekOfWeekBasedYear computes the ISO week number by aligning the
// zero-based day-of-year to the nearest Thursday: the week containing the
// first Thursday of the year is week one.
func weekOfWeekBasedYear(date LocalDate) (int, error) {
	dow0 := int(date.DayOfWeek()) - 1
	doy0 := date.DayOfYear() - 1
	doyThu0 := doy0 + (3 - dow0)
	alignedWeek := doyThu0 / 7
	firstThuDoy0 := doyThu0 - alignedWeek*7
	firstMonDoy0 := firstThuDoy0 - 3
	if firstMonDoy0 < -3 {
		firstMonDoy0 += 7
	}
	if doy0 < firstMonDoy0 {
		// last week of the previous week-based-year
		prev, err := DateOfYearDay(date.Year()-1, 180)
		if err != nil {
			return 0, err
		}
		return int(weekRangeOf(prev).Maximum()), nil
	}
	week := (doy0-firstMonDoy0)/7 + 1
	if week == 53 {
		if !(firstMonDoy0 == -3 || (firstMonDoy0 == -2 && date.IsLeapYear())) {
			week = 1
		}
	}
	return week, nil
}

// weekBasedYearOf returns the week-based-year, which differs from the
// calendar year for up to three days at each end of the year.
func weekBasedYearOf(date LocalDate) int {
	year := date.Year()
	doy := date.DayOfYear()
	if doy <= 3 {
		dow := int(date.DayOfWeek()) - 1
		if doy-dow < -2 {
			year--
		}
	} else if doy >= 363 {
		dow := int(date.DayOfWeek()) - 1
		doy = doy - 363
		if date.IsLeapYear() {
			doy--
		}
		if doy-dow >= 0 {
			year++
		}
	}
	return year
}

// weekRangeOf returns 1..52 or 1..53 for the week-based-year containing
// the date.
func weekRangeOf(date LocalDate) ValueRange {
	return RangeOf(1, int64(weeksInWeekBasedYear(weekBasedYearOf(date))))
}

// weeksInWeekBasedYear is 53 when the year starts on a Thursday, or on a
// Wednesday in a leap year, and 52 otherwise.
func weeksInWeekBasedYear(wby int) int {
	jan1, err := DateOf(wby, 1, 1)
	if err != nil {
		return 52
	}
	dow := jan1.DayOfWeek()
	if dow == Thursday || (dow == Wednesday && jan1.IsLeapYear()) {
		return 53
	}
	return 52
}

type isoUnit int

const (
	isoWeekBasedYearsUnit isoUnit = iota
	isoQuarterYearsUnit
)

func (u isoUnit) String() string {
	if u == isoWeekBasedYearsUnit {
		return "WeekBasedYears"
	}
	return "QuarterYears"
}

func (u isoUnit) Duration() Duration {
	if u == isoWeekBasedYearsUnit {
		return Duration{secondsPerAverageYear, 0}
	}
	return Duration{secondsPerAverageYear / 4, 0}
}

func (u isoUnit) IsDurationEstimated() bool { return true }

func (u isoUnit) IsDateBased() bool { return true }

func (u isoUnit) IsTimeBased() bool { return false }

func (u isoUnit) IsSupportedBy(t Temporal) bool {
	return t.IsSupported(FieldEpochDay)
}

func (u isoUnit) AddTo(t Temporal, amount int64) (Temporal, error) {
	if u == isoWeekBasedYearsUnit {
		cur, err := t.GetLong(FieldWeekBasedYear)
		if err != nil {
			return nil, err
		}
		sum, ok := overflow.Add(cur, amount)
		if !ok {
			return nil, newOverflowError("week-based-years")
		}
		return t.With(FieldWeekBasedYear, sum)
	}
	months, ok := overflow.Mul(amount, int64(3))
	if !ok {
		return nil, newOverflowError("quarter-years")
	}
	return t.Plus(months, UnitMonths)
}

// Between computes whole unit spans: a field-value delta for week-based
// years, which ignores partial years, and a truncating month delta divided
// by three for quarters.
func (u isoUnit) Between(start, end Temporal) (int64, error) {
	if u == isoWeekBasedYearsUnit {
		startWby, err := start.GetLong(FieldWeekBasedYear)
		if err != nil {
			return 0, err
		}
		endWby, err := end.GetLong(FieldWeekBasedYear)
		if err != nil {
			return 0, err
		}
		delta, ok := overflow.Sub(endWby, startWby)
		if !ok {
			return 0, newOverflowError("week-based-years")
		}
		return delta, nil
	}
	months, err := start.Until(end, UnitMonths)
	if err != nil {
		return 0, err
	}
	return months / 3, nil
}
