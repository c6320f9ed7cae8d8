package chrono

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/text/language"

	"github.com/isochron/chrono-go/chrono/internal/weekdata"
)

// WeekFields defines a localized week: the first day-of-week and the
// minimal number of days in the first week. Together they parameterize a
// family of computed fields; ISO-8601 uses Monday with a four day minimum,
// while for example the United States numbers weeks from Sunday with a one
// day minimum.
//
// Instances are cached singletons: WeekFieldsOf returns the same pointer
// for the same parameter pair, so identity comparison is meaningful.
type WeekFields struct {
	firstDayOfWeek DayOfWeek
	minimalDays    int

	dayOfWeek           TemporalField
	weekOfMonth         TemporalField
	weekOfYear          TemporalField
	weekOfWeekBasedYear TemporalField
	weekBasedYear       TemporalField
}

// WeekFieldsISO is the ISO-8601 definition: Monday first, minimum four
// days in the first week.
var WeekFieldsISO = mustWeekFields(Monday, 4)

// WeekFieldsSundayStart starts weeks on Sunday with a one day minimum, as
// used in the United States.
var WeekFieldsSundayStart = mustWeekFields(Sunday, 1)

type weekFieldsKey struct {
	firstDayOfWeek DayOfWeek
	minimalDays    int
}

// cache grows monotonically and is bounded by the 49 possible parameter
// pairs; LoadOrStore keeps concurrent creation idempotent.
var weekFieldsCache sync.Map

// WeekFieldsOf returns the singleton WeekFields for the parameter pair.
func WeekFieldsOf(firstDayOfWeek DayOfWeek, minimalDaysInFirstWeek int) (*WeekFields, error) {
	if firstDayOfWeek < Monday || firstDayOfWeek > Sunday {
		return nil, newDateTimeError("invalid first day-of-week: %d", int(firstDayOfWeek))
	}
	if minimalDaysInFirstWeek < 1 || minimalDaysInFirstWeek > 7 {
		return nil, newDateTimeError("minimal number of days is invalid: %d", minimalDaysInFirstWeek)
	}
	key := weekFieldsKey{firstDayOfWeek, minimalDaysInFirstWeek}
	if cached, ok := weekFieldsCache.Load(key); ok {
		return cached.(*WeekFields), nil
	}
	actual, _ := weekFieldsCache.LoadOrStore(key, newWeekFields(firstDayOfWeek, minimalDaysInFirstWeek))
	return actual.(*WeekFields), nil
}

// WeekFieldsOfLocale derives the week definition from the locale's region,
// falling back to the ISO definition for unknown regions.
func WeekFieldsOfLocale(tag language.Tag) *WeekFields {
	region, _ := tag.Region()
	firstDay, minimalDays := weekdata.ForRegion(region.String())
	wf, err := WeekFieldsOf(DayOfWeek(firstDay), minimalDays)
	if err != nil {
		return WeekFieldsISO
	}
	return wf
}

func mustWeekFields(firstDayOfWeek DayOfWeek, minimalDays int) *WeekFields {
	wf, err := WeekFieldsOf(firstDayOfWeek, minimalDays)
	if err != nil {
		panic(err)
	}
	return wf
}

func newWeekFields(firstDayOfWeek DayOfWeek, minimalDays int) *WeekFields {
	wf := &WeekFields{firstDayOfWeek: firstDayOfWeek, minimalDays: minimalDays}
	wf.dayOfWeek = computedDayOfField{"DayOfWeek", wf, UnitDays, UnitWeeks, RangeOf(1, 7)}
	wf.weekOfMonth = computedDayOfField{"WeekOfMonth", wf, UnitWeeks, UnitMonths, RangeOfVariable(0, 1, 4, 6)}
	wf.weekOfYear = computedDayOfField{"WeekOfYear", wf, UnitWeeks, UnitYears, RangeOfVariable(0, 1, 52, 54)}
	wf.weekOfWeekBasedYear = computedDayOfField{"WeekOfWeekBasedYear", wf, UnitWeeks, UnitWeekBasedYears, RangeOfVariableMax(1, 52, 53)}
	wf.weekBasedYear = computedDayOfField{"WeekBasedYear", wf, UnitWeekBasedYears, UnitForever, FieldYear.Range()}
	return wf
}

// FirstDayOfWeek returns the first day-of-week of the definition.
func (wf *WeekFields) FirstDayOfWeek() DayOfWeek { return wf.firstDayOfWeek }

// MinimalDaysInFirstWeek returns the minimal number of days in the first
// week, from 1 to 7.
func (wf *WeekFields) MinimalDaysInFirstWeek() int { return wf.minimalDays }

// DayOfWeek returns a field for the localized day-of-week, numbering the
// first day-of-week of this definition as 1 through 7.
func (wf *WeekFields) DayOfWeek() TemporalField { return wf.dayOfWeek }

// WeekOfMonth returns a field counting weeks within the month; days before
// the first full-enough week are in week zero.
func (wf *WeekFields) WeekOfMonth() TemporalField { return wf.weekOfMonth }

// WeekOfYear returns a field counting weeks within the calendar year; days
// before the first full-enough week are in week zero.
func (wf *WeekFields) WeekOfYear() TemporalField { return wf.weekOfYear }

// WeekOfWeekBasedYear returns a field counting weeks within the localized
// week-based year, where the boundary days belong to the adjacent year's
// numbering.
func (wf *WeekFields) WeekOfWeekBasedYear() TemporalField { return wf.weekOfWeekBasedYear }

// WeekBasedYear returns a field for the localized week-based year.
func (wf *WeekFields) WeekBasedYear() TemporalField { return wf.weekBasedYear }

func (wf *WeekFields) String() string {
	return fmt.Sprintf("WeekFields[%s,%d]", wf.firstDayOfWeek, wf.minimalDays)
}

// computedDayOfField is a week field parameterized by a WeekFields
// definition; the range unit discriminates which of the five computations
// it performs.
type computedDayOfField struct {
	name      string
	weekDef   *WeekFields
	baseUnit  TemporalUnit
	rangeUnit TemporalUnit
	rng       ValueRange
}

func (f computedDayOfField) String() string {
	return fmt.Sprintf("%s[%s]", f.name, f.weekDef)
}

func (f computedDayOfField) BaseUnit() TemporalUnit { return f.baseUnit }

func (f computedDayOfField) RangeUnit() TemporalUnit { return f.rangeUnit }

func (f computedDayOfField) Range() ValueRange { return f.rng }

func (f computedDayOfField) IsDateBased() bool { return true }

func (f computedDayOfField) IsTimeBased() bool { return false }

func (f computedDayOfField) IsSupportedBy(t TemporalAccessor) bool {
	if !t.IsSupported(FieldDayOfWeek) {
		return false
	}
	switch f.rangeUnit {
	case UnitWeeks:
		return true
	case UnitMonths:
		return t.IsSupported(FieldDayOfMonth)
	case UnitYears:
		return t.IsSupported(FieldDayOfYear)
	default:
		return t.IsSupported(FieldEpochDay)
	}
}

// localizedDayOfWeek renumbers an ISO day-of-week so the definition's
// first day-of-week is 1.
func (f computedDayOfField) localizedDayOfWeek(isoDow int) int {
	return int(floorMod(int64(isoDow-int(f.weekDef.firstDayOfWeek)), 7)) + 1
}

func (f computedDayOfField) localizedDayOfWeekFrom(t TemporalAccessor) (int, error) {
	isoDow, err := Get(t, FieldDayOfWeek)
	if err != nil {
		return 0, err
	}
	return f.localizedDayOfWeek(isoDow), nil
}

// startOfWeekOffset computes the shift that aligns day 1 to a week
// boundary. When the partial first week is shorter than the minimal-days
// threshold it is folded into week zero instead of counting as week one.
func (f computedDayOfField) startOfWeekOffset(day, dow int) int {
	weekStart := int(floorMod(int64(day-dow), 7))
	offset := -weekStart
	if weekStart+1 > f.weekDef.minimalDays {
		offset = 7 - weekStart
	}
	return offset
}

func computeWeek(offset, day int) int {
	return (7 + offset + (day - 1)) / 7
}

func (f computedDayOfField) GetFrom(t TemporalAccessor) (int64, error) {
	dow, err := f.localizedDayOfWeekFrom(t)
	if err != nil {
		return 0, err
	}
	switch f.rangeUnit {
	case UnitWeeks:
		return int64(dow), nil
	case UnitMonths:
		dom, err := Get(t, FieldDayOfMonth)
		if err != nil {
			return 0, err
		}
		return int64(computeWeek(f.startOfWeekOffset(dom, dow), dom)), nil
	case UnitYears:
		doy, err := Get(t, FieldDayOfYear)
		if err != nil {
			return 0, err
		}
		return int64(computeWeek(f.startOfWeekOffset(doy, dow), doy)), nil
	case UnitWeekBasedYears:
		week, err := f.localizedWeekOfWeekBasedYear(t)
		if err != nil {
			return 0, err
		}
		return int64(week), nil
	case UnitForever:
		year, err := f.localizedWeekBasedYear(t)
		if err != nil {
			return 0, err
		}
		return int64(year), nil
	}
	return 0, errUnsupportedField(f)
}

func (f computedDayOfField) localizedWeekOfWeekBasedYear(t TemporalAccessor) (int, error) {
	dow, err := f.localizedDayOfWeekFrom(t)
	if err != nil {
		return 0, err
	}
	doy, err := Get(t, FieldDayOfYear)
	if err != nil {
		return 0, err
	}
	offset := f.startOfWeekOffset(doy, dow)
	week := computeWeek(offset, doy)
	if week == 0 {
		// the day belongs to the last week of the previous year
		date, err := localDateFrom(t)
		if err != nil {
			return 0, err
		}
		date, err = date.MinusDays(int64(doy))
		if err != nil {
			return 0, err
		}
		return f.localizedWeekOfWeekBasedYear(date)
	}
	if week > 50 {
		r, err := t.Range(FieldDayOfYear)
		if err != nil {
			return 0, err
		}
		yearLen := int(r.Maximum())
		newYearWeek := computeWeek(offset, yearLen+f.weekDef.minimalDays)
		if week >= newYearWeek {
			// overlaps the first week of the following year
			week = week - newYearWeek + 1
		}
	}
	return week, nil
}

func (f computedDayOfField) localizedWeekBasedYear(t TemporalAccessor) (int, error) {
	year, err := Get(t, FieldYear)
	if err != nil {
		return 0, err
	}
	dow, err := f.localizedDayOfWeekFrom(t)
	if err != nil {
		return 0, err
	}
	doy, err := Get(t, FieldDayOfYear)
	if err != nil {
		return 0, err
	}
	offset := f.startOfWeekOffset(doy, dow)
	week := computeWeek(offset, doy)
	if week == 0 {
		return year - 1, nil
	}
	if week >= 53 {
		r, err := t.Range(FieldDayOfYear)
		if err != nil {
			return 0, err
		}
		yearLen := int(r.Maximum())
		newYearWeek := computeWeek(offset, yearLen+f.weekDef.minimalDays)
		if week >= newYearWeek {
			return year + 1, nil
		}
	}
	return year, nil
}

func (f computedDayOfField) RangeRefinedBy(t TemporalAccessor) (ValueRange, error) {
	switch f.rangeUnit {
	case UnitWeeks:
		return f.rng, nil
	case UnitMonths:
		return f.rangeByWeek(t, FieldDayOfMonth)
	case UnitYears:
		return f.rangeByWeek(t, FieldDayOfYear)
	case UnitWeekBasedYears:
		return f.rangeWeekOfWeekBasedYear(t)
	case UnitForever:
		return FieldYear.Range(), nil
	}
	return ValueRange{}, errUnsupportedField(f)
}

// rangeByWeek maps the range of the day field through the week
// computation.
func (f computedDayOfField) rangeByWeek(t TemporalAccessor, field TemporalField) (ValueRange, error) {
	dow, err := f.localizedDayOfWeekFrom(t)
	if err != nil {
		return ValueRange{}, err
	}
	day, err := Get(t, field)
	if err != nil {
		return ValueRange{}, err
	}
	offset := f.startOfWeekOffset(day, dow)
	fieldRange, err := t.Range(field)
	if err != nil {
		return ValueRange{}, err
	}
	return RangeOf(
		int64(computeWeek(offset, int(fieldRange.Minimum()))),
		int64(computeWeek(offset, int(fieldRange.Maximum())))), nil
}

func (f computedDayOfField) rangeWeekOfWeekBasedYear(t TemporalAccessor) (ValueRange, error) {
	if !t.IsSupported(FieldDayOfYear) {
		return f.weekDef.weekOfYear.Range(), nil
	}
	dow, err := f.localizedDayOfWeekFrom(t)
	if err != nil {
		return ValueRange{}, err
	}
	doy, err := Get(t, FieldDayOfYear)
	if err != nil {
		return ValueRange{}, err
	}
	offset := f.startOfWeekOffset(doy, dow)
	week := computeWeek(offset, doy)
	if week == 0 {
		// the day belongs to the previous year's numbering
		date, err := localDateFrom(t)
		if err != nil {
			return ValueRange{}, err
		}
		date, err = date.MinusDays(int64(doy + 7))
		if err != nil {
			return ValueRange{}, err
		}
		return f.rangeWeekOfWeekBasedYear(date)
	}
	r, err := t.Range(FieldDayOfYear)
	if err != nil {
		return ValueRange{}, err
	}
	yearLen := int(r.Maximum())
	newYearWeek := computeWeek(offset, yearLen+f.weekDef.minimalDays)
	if week >= newYearWeek {
		// in the partial week belonging to the next year's numbering
		date, err := localDateFrom(t)
		if err != nil {
			return ValueRange{}, err
		}
		date, err = date.PlusDays(int64(yearLen - doy + 1 + 7))
		if err != nil {
			return ValueRange{}, err
		}
		return f.rangeWeekOfWeekBasedYear(date)
	}
	return RangeOf(1, int64(newYearWeek-1)), nil
}

func (f computedDayOfField) AdjustInto(t Temporal, newValue int64) (Temporal, error) {
	newVal, err := f.rng.CheckValidIntValue(newValue, f)
	if err != nil {
		return nil, err
	}
	cur64, err := f.GetFrom(t)
	if err != nil {
		return nil, err
	}
	cur := int(cur64)
	if newVal == cur {
		return t, nil
	}
	if f.rangeUnit != UnitForever {
		return t.Plus(int64(newVal-cur), f.baseUnit)
	}
	// week-based-year: jump by an estimated number of whole weeks so the
	// day-of-week never changes, then correct by at most two more steps
	baseWowby, err := Get(t, f.weekDef.weekOfWeekBasedYear)
	if err != nil {
		return nil, err
	}
	diffWeeks := int64(float64(newVal-cur) * 52.1775)
	result, err := t.Plus(diffWeeks, UnitWeeks)
	if err != nil {
		return nil, err
	}
	landed, err := Get(result, f)
	if err != nil {
		return nil, err
	}
	if landed > newVal {
		// ended up in a later year; back up past its weeks
		newWowby, err := Get(result, f.weekDef.weekOfWeekBasedYear)
		if err != nil {
			return nil, err
		}
		return result.Minus(int64(newWowby), UnitWeeks)
	}
	if landed < newVal {
		result, err = result.Plus(2, UnitWeeks)
		if err != nil {
			return nil, err
		}
	}
	newWowby, err := Get(result, f.weekDef.weekOfWeekBasedYear)
	if err != nil {
		return nil, err
	}
	result, err = result.Plus(int64(baseWowby-newWowby), UnitWeeks)
	if err != nil {
		return nil, err
	}
	landed, err = Get(result, f)
	if err != nil {
		return nil, err
	}
	if landed > newVal {
		return result.Minus(1, UnitWeeks)
	}
	return result, nil
}

func (f computedDayOfField) Resolve(fieldValues map[TemporalField]int64, partial TemporalAccessor, style ResolverStyle) (TemporalAccessor, error) {
	value := fieldValues[f]
	if value < math.MinInt32 || value > math.MaxInt32 {
		return nil, newOverflowError(f.name)
	}
	newValue := int(value)
	if f.rangeUnit == UnitWeeks {
		// localized day-of-week converts in place to ISO day-of-week
		checkedValue, err := f.rng.CheckValidIntValue(value, f)
		if err != nil {
			return nil, err
		}
		startDow := int(f.weekDef.firstDayOfWeek)
		isoDow := floorMod(int64(startDow-1)+int64(checkedValue-1), 7) + 1
		delete(fieldValues, f)
		fieldValues[FieldDayOfWeek] = isoDow
		return nil, nil
	}
	dowValue, ok := fieldValues[FieldDayOfWeek]
	if !ok {
		return nil, nil
	}
	isoDow, err := FieldDayOfWeek.checkValidIntValue(dowValue)
	if err != nil {
		return nil, err
	}
	dow := f.localizedDayOfWeek(isoDow)
	if yearValue, ok := fieldValues[FieldYear]; ok {
		year, err := FieldYear.checkValidIntValue(yearValue)
		if err != nil {
			return nil, err
		}
		if f.rangeUnit == UnitMonths {
			month, ok := fieldValues[FieldMonthOfYear]
			if !ok {
				return nil, nil
			}
			return f.resolveWeekOfMonth(fieldValues, year, month, newValue, dow, style)
		}
		if f.rangeUnit == UnitYears {
			return f.resolveWeekOfYear(fieldValues, year, newValue, dow, style)
		}
		return nil, nil
	}
	if f.rangeUnit == UnitWeekBasedYears || f.rangeUnit == UnitForever {
		_, okWby := fieldValues[f.weekDef.weekBasedYear]
		_, okWowby := fieldValues[f.weekDef.weekOfWeekBasedYear]
		if okWby && okWowby {
			return f.resolveWeekBasedYear(fieldValues, dow, style)
		}
	}
	return nil, nil
}

func (f computedDayOfField) resolveWeekOfMonth(fieldValues map[TemporalField]int64, year int, month int64, wom, localDow int, style ResolverStyle) (TemporalAccessor, error) {
	var date LocalDate
	var err error
	if style == ResolverStyleLenient {
		date, err = DateOf(year, 1, 1)
		if err != nil {
			return nil, err
		}
		date, err = date.PlusMonths(month - 1)
		if err != nil {
			return nil, err
		}
		curWeek, err := f.GetFrom(date)
		if err != nil {
			return nil, err
		}
		curDow, err := f.localizedDayOfWeekFrom(date)
		if err != nil {
			return nil, err
		}
		weeks := int64(wom) - curWeek
		days := int64(localDow - curDow)
		date, err = date.PlusDays(weeks*7 + days)
		if err != nil {
			return nil, err
		}
	} else {
		moy, err := FieldMonthOfYear.checkValidIntValue(month)
		if err != nil {
			return nil, err
		}
		date, err = DateOf(year, moy, 1)
		if err != nil {
			return nil, err
		}
		womInt, err := f.rng.CheckValidIntValue(int64(wom), f)
		if err != nil {
			return nil, err
		}
		curWeek, err := f.GetFrom(date)
		if err != nil {
			return nil, err
		}
		curDow, err := f.localizedDayOfWeekFrom(date)
		if err != nil {
			return nil, err
		}
		weeks := int64(womInt) - curWeek
		days := int64(localDow - curDow)
		date, err = date.PlusDays(weeks*7 + days)
		if err != nil {
			return nil, err
		}
		if style == ResolverStyleStrict && int64(date.Month()) != month {
			return nil, newDateTimeError(
				"strict mode rejected resolved date as it is in a different month: %s", date)
		}
	}
	delete(fieldValues, f)
	delete(fieldValues, FieldYear)
	delete(fieldValues, FieldMonthOfYear)
	delete(fieldValues, FieldDayOfWeek)
	return date, nil
}

func (f computedDayOfField) resolveWeekOfYear(fieldValues map[TemporalField]int64, year, woy, localDow int, style ResolverStyle) (TemporalAccessor, error) {
	date, err := DateOf(year, 1, 1)
	if err != nil {
		return nil, err
	}
	week := int64(woy)
	if style != ResolverStyleLenient {
		checked, err := f.rng.CheckValidIntValue(week, f)
		if err != nil {
			return nil, err
		}
		week = int64(checked)
	}
	curWeek, err := f.GetFrom(date)
	if err != nil {
		return nil, err
	}
	curDow, err := f.localizedDayOfWeekFrom(date)
	if err != nil {
		return nil, err
	}
	weeks := week - curWeek
	days := int64(localDow - curDow)
	date, err = date.PlusDays(weeks*7 + days)
	if err != nil {
		return nil, err
	}
	if style == ResolverStyleStrict && date.Year() != year {
		return nil, newDateTimeError(
			"strict mode rejected resolved date as it is in a different year: %s", date)
	}
	delete(fieldValues, f)
	delete(fieldValues, FieldYear)
	delete(fieldValues, FieldDayOfWeek)
	return date, nil
}

func (f computedDayOfField) resolveWeekBasedYear(fieldValues map[TemporalField]int64, localDow int, style ResolverStyle) (TemporalAccessor, error) {
	wbyField := f.weekDef.weekBasedYear.(computedDayOfField)
	wowbyField := f.weekDef.weekOfWeekBasedYear.(computedDayOfField)
	yowby, err := wbyField.rng.CheckValidIntValue(fieldValues[f.weekDef.weekBasedYear], wbyField)
	if err != nil {
		return nil, err
	}
	var date LocalDate
	if style == ResolverStyleLenient {
		date, err = f.ofWeekBasedYear(yowby, 1, localDow)
		if err != nil {
			return nil, err
		}
		wowby := fieldValues[f.weekDef.weekOfWeekBasedYear]
		date, err = date.PlusWeeks(wowby - 1)
		if err != nil {
			return nil, err
		}
	} else {
		wowby, err := wowbyField.rng.CheckValidIntValue(fieldValues[f.weekDef.weekOfWeekBasedYear], wowbyField)
		if err != nil {
			return nil, err
		}
		date, err = f.ofWeekBasedYear(yowby, wowby, localDow)
		if err != nil {
			return nil, err
		}
		if style == ResolverStyleStrict {
			landed, err := f.localizedWeekBasedYear(date)
			if err != nil {
				return nil, err
			}
			if landed != yowby {
				return nil, newDateTimeError(
					"strict mode rejected resolved date as it is in a different week-based-year: %s", date)
			}
		}
	}
	delete(fieldValues, f)
	delete(fieldValues, f.weekDef.weekBasedYear)
	delete(fieldValues, f.weekDef.weekOfWeekBasedYear)
	delete(fieldValues, FieldDayOfWeek)
	return date, nil
}

// ofWeekBasedYear builds a date from a localized week-based-year, week and
// localized day-of-week, clipping the week into the target year.
func (f computedDayOfField) ofWeekBasedYear(yowby, wowby, localDow int) (LocalDate, error) {
	date, err := DateOf(yowby, 1, 1)
	if err != nil {
		return LocalDate{}, err
	}
	ldow, err := f.localizedDayOfWeekFrom(date)
	if err != nil {
		return LocalDate{}, err
	}
	offset := f.startOfWeekOffset(1, ldow)
	yearLen := date.LengthOfYear()
	newYearWeek := computeWeek(offset, yearLen+f.weekDef.minimalDays)
	if wowby > newYearWeek-1 {
		wowby = newYearWeek - 1
	}
	days := -offset + (localDow - 1) + (wowby-1)*7
	return date.PlusDays(int64(days))
}
