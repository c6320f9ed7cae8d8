// Package chrono implements calendar date computation for the ISO-8601
// calendar: the temporal field and unit abstraction, the built-in field set,
// ISO quarter and week-based-year fields, locale-sensitive week fields,
// Julian day-count fields, and the Duration and Period amount types with
// overflow-checked arithmetic and ISO-8601 text round-trip.
//
// Concrete date/time values interact with the engine through the narrow
// TemporalAccessor and Temporal interfaces. A compact LocalDate is provided
// so the date-based fields and units are usable out of the box; richer
// date/time types can plug in by implementing the same interfaces.
package chrono

// TemporalAccessor is read-only, field-level access to a temporal object,
// such as a date.
//
// Implementations answer the built-in ChronoField constants directly and
// delegate everything else back to the field, which computes its value from
// the built-in fields.
type TemporalAccessor interface {
	// IsSupported reports whether the field can be queried.
	IsSupported(field TemporalField) bool
	// Range returns the context-refined range of valid values for the
	// field, which may be narrower than the field's intrinsic range.
	Range(field TemporalField) (ValueRange, error)
	// GetLong returns the value of the field, or an UnsupportedError.
	GetLong(field TemporalField) (int64, error)
}

// Temporal is a temporal object that supports field adjustment and unit
// arithmetic. All operations return a new value; implementations are
// immutable.
type Temporal interface {
	TemporalAccessor
	// With returns a copy with the field set to newValue.
	With(field TemporalField, newValue int64) (Temporal, error)
	// Plus returns a copy with the amount of the unit added.
	Plus(amount int64, unit TemporalUnit) (Temporal, error)
	// Minus returns a copy with the amount of the unit subtracted.
	Minus(amount int64, unit TemporalUnit) (Temporal, error)
	// Until computes the amount of time until another temporal in terms of
	// the unit, truncated toward zero.
	Until(end Temporal, unit TemporalUnit) (int64, error)
}

// unitCapable is implemented by temporals that can answer unit support
// directly, avoiding the speculative probe in ChronoUnit.IsSupportedBy.
type unitCapable interface {
	IsSupportedUnit(unit TemporalUnit) bool
}

// TemporalAmount is an amount of time measured in one or more units, such
// as "3 months and 4 days". Duration and Period implement it.
type TemporalAmount interface {
	// Get returns the value of the requested unit, or an UnsupportedError.
	Get(unit TemporalUnit) (int64, error)
	// Units lists the units of the amount, from largest to smallest.
	Units() []TemporalUnit
	// AddTo adds the full amount to the temporal.
	AddTo(t Temporal) (Temporal, error)
	// SubtractFrom subtracts the full amount from the temporal.
	SubtractFrom(t Temporal) (Temporal, error)
}

// Get returns the field value narrowed to int, failing if the value does
// not fit the field's int range.
func Get(t TemporalAccessor, field TemporalField) (int, error) {
	value, err := t.GetLong(field)
	if err != nil {
		return 0, err
	}
	r, err := t.Range(field)
	if err != nil {
		return 0, err
	}
	return r.CheckValidIntValue(value, field)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
