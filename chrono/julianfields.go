package chrono

import "github.com/isochron/chrono-go/chrono/internal/overflow"

// Day-count fields, each an affine transform of epoch-day.
//
// The Julian Day is the astronomical convention counting days from
// -4713-11-24 (Gregorian); here it is simplified to a whole-day count
// changing at midnight local time rather than noon UTC.
var (
	// FieldJulianDay is the Julian Day number; epoch-day 0 is 2440588.
	FieldJulianDay TemporalField = julianField{"JulianDay", 2440588}
	// FieldModifiedJulianDay counts from 1858-11-17; epoch-day 0 is 40587.
	FieldModifiedJulianDay TemporalField = julianField{"ModifiedJulianDay", 40587}
	// FieldRataDie counts from the proleptic 0001-01-01; epoch-day 0 is
	// 719163.
	FieldRataDie TemporalField = julianField{"RataDie", 719163}
)

type julianField struct {
	name   string
	offset int64
}

func (f julianField) String() string { return f.name }

func (f julianField) BaseUnit() TemporalUnit { return UnitDays }

func (f julianField) RangeUnit() TemporalUnit { return UnitForever }

func (f julianField) Range() ValueRange {
	return RangeOf(minEpochDay+f.offset, maxEpochDay+f.offset)
}

func (f julianField) IsDateBased() bool { return true }

func (f julianField) IsTimeBased() bool { return false }

func (f julianField) IsSupportedBy(t TemporalAccessor) bool {
	return t.IsSupported(FieldEpochDay)
}

func (f julianField) RangeRefinedBy(t TemporalAccessor) (ValueRange, error) {
	if !f.IsSupportedBy(t) {
		return ValueRange{}, errUnsupportedField(f)
	}
	return f.Range(), nil
}

func (f julianField) GetFrom(t TemporalAccessor) (int64, error) {
	epochDay, err := t.GetLong(FieldEpochDay)
	if err != nil {
		return 0, err
	}
	return epochDay + f.offset, nil
}

func (f julianField) AdjustInto(t Temporal, newValue int64) (Temporal, error) {
	if _, err := f.Range().CheckValidValue(newValue, f); err != nil {
		return nil, err
	}
	return t.With(FieldEpochDay, newValue-f.offset)
}

// Resolve converts a raw day count directly to a date.
func (f julianField) Resolve(fieldValues map[TemporalField]int64, partial TemporalAccessor, style ResolverStyle) (TemporalAccessor, error) {
	value, ok := fieldValues[f]
	if !ok {
		return nil, nil
	}
	if style != ResolverStyleLenient {
		if _, err := f.Range().CheckValidValue(value, f); err != nil {
			return nil, err
		}
	}
	epochDay, okSub := overflow.Sub(value, f.offset)
	if !okSub {
		return nil, newOverflowError(f.name)
	}
	date, err := DateOfEpochDay(epochDay)
	if err != nil {
		return nil, err
	}
	delete(fieldValues, f)
	return date, nil
}
