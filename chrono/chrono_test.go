package chrono_test

import (
	"fmt"

	"github.com/isochron/chrono-go/chrono"
)

// testInstant is a minimal second-precision temporal for exercising the
// operations that need time support, which LocalDate does not provide.
type testInstant struct {
	secs  int64
	nanos int32
}

func (i testInstant) IsSupported(field chrono.TemporalField) bool {
	return field == chrono.TemporalField(chrono.FieldInstantSeconds) ||
		field == chrono.TemporalField(chrono.FieldNanoOfSecond)
}

func (i testInstant) Range(field chrono.TemporalField) (chrono.ValueRange, error) {
	if !i.IsSupported(field) {
		return chrono.ValueRange{}, fmt.Errorf("unsupported field: %s", field)
	}
	return field.Range(), nil
}

func (i testInstant) GetLong(field chrono.TemporalField) (int64, error) {
	switch field {
	case chrono.TemporalField(chrono.FieldInstantSeconds):
		return i.secs, nil
	case chrono.TemporalField(chrono.FieldNanoOfSecond):
		return int64(i.nanos), nil
	}
	return 0, fmt.Errorf("unsupported field: %s", field)
}

func (i testInstant) With(field chrono.TemporalField, newValue int64) (chrono.Temporal, error) {
	switch field {
	case chrono.TemporalField(chrono.FieldInstantSeconds):
		return testInstant{newValue, i.nanos}, nil
	case chrono.TemporalField(chrono.FieldNanoOfSecond):
		return testInstant{i.secs, int32(newValue)}, nil
	}
	return nil, fmt.Errorf("unsupported field: %s", field)
}

func (i testInstant) Plus(amount int64, unit chrono.TemporalUnit) (chrono.Temporal, error) {
	switch unit {
	case chrono.TemporalUnit(chrono.UnitSeconds):
		return testInstant{i.secs + amount, i.nanos}, nil
	case chrono.TemporalUnit(chrono.UnitNanos):
		total := int64(i.nanos) + amount
		secs := i.secs
		for total < 0 {
			total += 1000000000
			secs--
		}
		return testInstant{secs + total/1000000000, int32(total % 1000000000)}, nil
	}
	return nil, fmt.Errorf("unsupported unit: %s", unit)
}

func (i testInstant) Minus(amount int64, unit chrono.TemporalUnit) (chrono.Temporal, error) {
	return i.Plus(-amount, unit)
}

func (i testInstant) Until(end chrono.Temporal, unit chrono.TemporalUnit) (int64, error) {
	e, ok := end.(testInstant)
	if !ok {
		return 0, fmt.Errorf("mismatched temporal type %T", end)
	}
	totalNanos := (e.secs-i.secs)*1000000000 + int64(e.nanos-i.nanos)
	switch unit {
	case chrono.TemporalUnit(chrono.UnitSeconds):
		return totalNanos / 1000000000, nil
	case chrono.TemporalUnit(chrono.UnitNanos):
		return totalNanos, nil
	}
	return 0, fmt.Errorf("unsupported unit: %s", unit)
}
