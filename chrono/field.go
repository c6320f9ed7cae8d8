package chrono

import "fmt"

// ResolverStyle controls how leniently a field resolves a bag of parsed
// field values into a date.
type ResolverStyle int

const (
	// ResolverStyleStrict validates every consumed field against its exact
	// contextual range and re-validates the resolved date round-trips to
	// the original field value.
	ResolverStyleStrict ResolverStyle = iota
	// ResolverStyleSmart validates against each field's intrinsic range
	// but skips the round-trip check.
	ResolverStyleSmart
	// ResolverStyleLenient accepts out-of-range values, anchoring at a
	// base date and adding signed offsets.
	ResolverStyleLenient
)

func (s ResolverStyle) String() string {
	switch s {
	case ResolverStyleStrict:
		return "Strict"
	case ResolverStyleSmart:
		return "Smart"
	default:
		return "Lenient"
	}
}

// TemporalField is a field of date/time, such as month-of-year or
// hour-of-day.
//
// Fields are stateless, identity-compared values: the ChronoField constants,
// the derived ISO fields, the Julian day-count fields, and the computed
// fields produced by WeekFields. All implementations are valid map keys so
// they can participate in the multi-field resolution protocol.
type TemporalField interface {
	fmt.Stringer
	// BaseUnit returns the unit the field is measured in.
	BaseUnit() TemporalUnit
	// RangeUnit returns the unit the field is bound by.
	RangeUnit() TemporalUnit
	// Range returns the field-intrinsic, context-free range of valid
	// values.
	Range() ValueRange
	// IsDateBased reports whether the field is a component of a date.
	IsDateBased() bool
	// IsTimeBased reports whether the field is a component of a time.
	IsTimeBased() bool
	// IsSupportedBy reports whether the field can be read from the
	// temporal.
	IsSupportedBy(t TemporalAccessor) bool
	// RangeRefinedBy returns the range of valid values narrowed by the
	// temporal's context, such as day-of-month limited by the month and
	// year.
	RangeRefinedBy(t TemporalAccessor) (ValueRange, error)
	// GetFrom reads the value of the field from the temporal.
	GetFrom(t TemporalAccessor) (int64, error)
	// AdjustInto returns a copy of the temporal with the field set.
	AdjustInto(t Temporal, newValue int64) (Temporal, error)
	// Resolve converts this field, and possibly co-fields, from the
	// field-value map into a date. It returns (nil, nil) when its required
	// co-fields are absent. On success it removes every consumed key from
	// the map; the driving resolver relies on consumed fields disappearing.
	Resolve(fieldValues map[TemporalField]int64, partial TemporalAccessor, style ResolverStyle) (TemporalAccessor, error)
}

// ChronoField is the closed set of standard fields.
type ChronoField int

const (
	FieldNanoOfSecond ChronoField = iota
	FieldNanoOfDay
	FieldMicroOfSecond
	FieldMicroOfDay
	FieldMilliOfSecond
	FieldMilliOfDay
	FieldSecondOfMinute
	FieldSecondOfDay
	FieldMinuteOfHour
	FieldMinuteOfDay
	FieldHourOfAmPm
	FieldClockHourOfAmPm
	FieldHourOfDay
	FieldClockHourOfDay
	FieldAmPmOfDay
	FieldDayOfWeek
	FieldAlignedDayOfWeekInMonth
	FieldAlignedDayOfWeekInYear
	FieldDayOfMonth
	FieldDayOfYear
	FieldEpochDay
	FieldAlignedWeekOfMonth
	FieldAlignedWeekOfYear
	FieldMonthOfYear
	FieldProlepticMonth
	FieldYearOfEra
	FieldYear
	FieldEra
	FieldInstantSeconds
	FieldOffsetSeconds
)

// MinYear and MaxYear bound the supported proleptic year range.
const (
	MinYear = -999999999
	MaxYear = 999999999
)

// Supported epoch-day range, matching the year range above.
const (
	minEpochDay = -365243219162
	maxEpochDay = 365241780471
)

type chronoFieldDef struct {
	name      string
	baseUnit  ChronoUnit
	rangeUnit ChronoUnit
	rng       ValueRange
}

var chronoFieldDefs = [...]chronoFieldDef{
	{"NanoOfSecond", UnitNanos, UnitSeconds, RangeOf(0, 999999999)},
	{"NanoOfDay", UnitNanos, UnitDays, RangeOf(0, 86400*1000000000-1)},
	{"MicroOfSecond", UnitMicros, UnitSeconds, RangeOf(0, 999999)},
	{"MicroOfDay", UnitMicros, UnitDays, RangeOf(0, 86400*1000000-1)},
	{"MilliOfSecond", UnitMillis, UnitSeconds, RangeOf(0, 999)},
	{"MilliOfDay", UnitMillis, UnitDays, RangeOf(0, 86400*1000-1)},
	{"SecondOfMinute", UnitSeconds, UnitMinutes, RangeOf(0, 59)},
	{"SecondOfDay", UnitSeconds, UnitDays, RangeOf(0, 86400-1)},
	{"MinuteOfHour", UnitMinutes, UnitHours, RangeOf(0, 59)},
	{"MinuteOfDay", UnitMinutes, UnitDays, RangeOf(0, 24*60-1)},
	{"HourOfAmPm", UnitHours, UnitHalfDays, RangeOf(0, 11)},
	{"ClockHourOfAmPm", UnitHours, UnitHalfDays, RangeOf(1, 12)},
	{"HourOfDay", UnitHours, UnitDays, RangeOf(0, 23)},
	{"ClockHourOfDay", UnitHours, UnitDays, RangeOf(1, 24)},
	{"AmPmOfDay", UnitHalfDays, UnitDays, RangeOf(0, 1)},
	{"DayOfWeek", UnitDays, UnitWeeks, RangeOf(1, 7)},
	{"AlignedDayOfWeekInMonth", UnitDays, UnitWeeks, RangeOf(1, 7)},
	{"AlignedDayOfWeekInYear", UnitDays, UnitWeeks, RangeOf(1, 7)},
	{"DayOfMonth", UnitDays, UnitMonths, RangeOfVariableMax(1, 28, 31)},
	{"DayOfYear", UnitDays, UnitYears, RangeOfVariableMax(1, 365, 366)},
	{"EpochDay", UnitDays, UnitForever, RangeOf(minEpochDay, maxEpochDay)},
	{"AlignedWeekOfMonth", UnitWeeks, UnitMonths, RangeOfVariableMax(1, 4, 5)},
	{"AlignedWeekOfYear", UnitWeeks, UnitYears, RangeOf(1, 53)},
	{"MonthOfYear", UnitMonths, UnitYears, RangeOf(1, 12)},
	{"ProlepticMonth", UnitMonths, UnitForever, RangeOf(MinYear*12, MaxYear*12+11)},
	{"YearOfEra", UnitYears, UnitForever, RangeOfVariableMax(1, MaxYear, MaxYear+1)},
	{"Year", UnitYears, UnitForever, RangeOf(MinYear, MaxYear)},
	{"Era", UnitEras, UnitForever, RangeOf(0, 1)},
	{"InstantSeconds", UnitSeconds, UnitForever, RangeOf(minInt64, maxInt64)},
	{"OffsetSeconds", UnitSeconds, UnitForever, RangeOf(-18*3600, 18*3600)},
}

func (f ChronoField) String() string {
	if f < 0 || int(f) >= len(chronoFieldDefs) {
		return fmt.Sprintf("ChronoField(%d)", int(f))
	}
	return chronoFieldDefs[f].name
}

func (f ChronoField) BaseUnit() TemporalUnit { return chronoFieldDefs[f].baseUnit }

func (f ChronoField) RangeUnit() TemporalUnit { return chronoFieldDefs[f].rangeUnit }

// Range returns the field-intrinsic range. For fields whose range depends
// on the date, such as day-of-month, the result spans the widest context;
// use RangeRefinedBy for an exact bound.
func (f ChronoField) Range() ValueRange { return chronoFieldDefs[f].rng }

func (f ChronoField) IsDateBased() bool {
	return f >= FieldDayOfWeek && f <= FieldEra
}

func (f ChronoField) IsTimeBased() bool {
	return f < FieldDayOfWeek
}

func (f ChronoField) IsSupportedBy(t TemporalAccessor) bool {
	return t.IsSupported(f)
}

func (f ChronoField) RangeRefinedBy(t TemporalAccessor) (ValueRange, error) {
	return t.Range(f)
}

func (f ChronoField) GetFrom(t TemporalAccessor) (int64, error) {
	return t.GetLong(f)
}

func (f ChronoField) AdjustInto(t Temporal, newValue int64) (Temporal, error) {
	return t.With(f, newValue)
}

// Resolve returns (nil, nil): the built-in fields are combined by an
// external date-building resolver, not field by field.
func (f ChronoField) Resolve(fieldValues map[TemporalField]int64, partial TemporalAccessor, style ResolverStyle) (TemporalAccessor, error) {
	return nil, nil
}

// checkValidValue validates the value against the field-intrinsic range.
func (f ChronoField) checkValidValue(value int64) (int64, error) {
	return f.Range().CheckValidValue(value, f)
}

// checkValidIntValue validates the value against the field-intrinsic range
// and narrows it to int.
func (f ChronoField) checkValidIntValue(value int64) (int, error) {
	return f.Range().CheckValidIntValue(value, f)
}
