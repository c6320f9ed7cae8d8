package chrono

import (
	"fmt"
	"math"
)

// ValueRange is the inclusive range of valid values for a temporal field.
//
// The minimum and maximum may each vary by context: day-of-month has a
// smallest maximum of 28 and a largest maximum of 31. Instances are
// immutable values; equality is structural.
//
// Constructing a range that violates
// minSmallest <= minLargest <= maxSmallest <= maxLargest is a programming
// error and panics.
type ValueRange struct {
	minSmallest int64
	minLargest  int64
	maxSmallest int64
	maxLargest  int64
}

// RangeOf returns a fixed range where the minimum and maximum never vary.
func RangeOf(min, max int64) ValueRange {
	return RangeOfVariable(min, min, max, max)
}

// RangeOfVariableMax returns a range with a fixed minimum and a variable
// maximum.
func RangeOfVariableMax(min, maxSmallest, maxLargest int64) ValueRange {
	return RangeOfVariable(min, min, maxSmallest, maxLargest)
}

// RangeOfVariableMin returns a range with a variable minimum and a fixed
// maximum.
func RangeOfVariableMin(minSmallest, minLargest, max int64) ValueRange {
	return RangeOfVariable(minSmallest, minLargest, max, max)
}

// RangeOfVariable returns a fully variable range.
func RangeOfVariable(minSmallest, minLargest, maxSmallest, maxLargest int64) ValueRange {
	if minSmallest > minLargest {
		panic(fmt.Sprintf("chrono: smallest minimum %d exceeds largest minimum %d", minSmallest, minLargest))
	}
	if maxSmallest > maxLargest {
		panic(fmt.Sprintf("chrono: smallest maximum %d exceeds largest maximum %d", maxSmallest, maxLargest))
	}
	if minLargest > maxLargest {
		panic(fmt.Sprintf("chrono: minimum %d exceeds maximum %d", minLargest, maxLargest))
	}
	if minSmallest > maxSmallest {
		panic(fmt.Sprintf("chrono: minimum %d exceeds maximum %d", minSmallest, maxSmallest))
	}
	return ValueRange{
		minSmallest: minSmallest,
		minLargest:  minLargest,
		maxSmallest: maxSmallest,
		maxLargest:  maxLargest,
	}
}

// IsFixed reports whether the minimum and maximum are both fixed.
func (r ValueRange) IsFixed() bool {
	return r.minSmallest == r.minLargest && r.maxSmallest == r.maxLargest
}

// Minimum returns the smallest minimum, the least value valid in any context.
func (r ValueRange) Minimum() int64 { return r.minSmallest }

// LargestMinimum returns the largest minimum.
func (r ValueRange) LargestMinimum() int64 { return r.minLargest }

// SmallestMaximum returns the smallest maximum, the greatest value valid in
// every context.
func (r ValueRange) SmallestMaximum() int64 { return r.maxSmallest }

// Maximum returns the largest maximum.
func (r ValueRange) Maximum() int64 { return r.maxLargest }

// IsValidValue reports whether the value could be valid: at or above the
// smallest minimum and at or below the largest maximum.
func (r ValueRange) IsValidValue(value int64) bool {
	return value >= r.minSmallest && value <= r.maxLargest
}

// IsIntValue reports whether every valid value fits in an int32.
func (r ValueRange) IsIntValue() bool {
	return r.minSmallest >= math.MinInt32 && r.maxLargest <= math.MaxInt32
}

// IsValidIntValue reports whether the value is valid and fits in an int32.
func (r ValueRange) IsValidIntValue(value int64) bool {
	return r.IsIntValue() && r.IsValidValue(value)
}

// CheckValidValue validates the value against the range, returning it
// unchanged, or a DateTimeError naming the field and the attempted value.
func (r ValueRange) CheckValidValue(value int64, field TemporalField) (int64, error) {
	if !r.IsValidValue(value) {
		return 0, r.invalidValue(value, field)
	}
	return value, nil
}

// CheckValidIntValue behaves as CheckValidValue but additionally requires
// the value to fit in an int32.
func (r ValueRange) CheckValidIntValue(value int64, field TemporalField) (int, error) {
	if !r.IsValidIntValue(value) {
		return 0, r.invalidValue(value, field)
	}
	return int(value), nil
}

func (r ValueRange) invalidValue(value int64, field TemporalField) error {
	if field == nil {
		return newDateTimeError("invalid value (valid values %s): %d", r, value)
	}
	return newDateTimeError("invalid value for %s (valid values %s): %d", field, r, value)
}

func (r ValueRange) String() string {
	var b []byte
	b = appendRangeBound(b, r.minSmallest, r.minLargest)
	b = append(b, " - "...)
	b = appendRangeBound(b, r.maxSmallest, r.maxLargest)
	return string(b)
}

func appendRangeBound(b []byte, smallest, largest int64) []byte {
	if smallest == largest {
		return fmt.Appendf(b, "%d", smallest)
	}
	return fmt.Appendf(b, "%d/%d", smallest, largest)
}
