package chrono

// Queries extract derived, typed information from any TemporalAccessor
// without the caller knowing its concrete type. Each reports false when the
// accessor does not carry the queried information.

// QueryLocalDate extracts a local date from an accessor that carries a
// complete date, keyed off epoch-day support.
func QueryLocalDate(t TemporalAccessor) (LocalDate, bool) {
	if !t.IsSupported(FieldEpochDay) {
		return LocalDate{}, false
	}
	epochDay, err := t.GetLong(FieldEpochDay)
	if err != nil {
		return LocalDate{}, false
	}
	date, err := DateOfEpochDay(epochDay)
	if err != nil {
		return LocalDate{}, false
	}
	return date, true
}

// QueryPrecision returns the smallest unit the accessor supports, probing
// the built-in fields from nanoseconds upward.
func QueryPrecision(t TemporalAccessor) (TemporalUnit, bool) {
	for f := FieldNanoOfSecond; f <= FieldEra; f++ {
		if t.IsSupported(f) {
			return f.BaseUnit(), true
		}
	}
	return nil, false
}

// QueryOffset returns the UTC offset in seconds for an accessor that
// carries one.
func QueryOffset(t TemporalAccessor) (int, bool) {
	if !t.IsSupported(FieldOffsetSeconds) {
		return 0, false
	}
	offset, err := Get(t, FieldOffsetSeconds)
	if err != nil {
		return 0, false
	}
	return offset, true
}

// QueryZoneID returns the time-zone identifier of the accessor. No type
// in this package carries a zone, so this always reports absence.
func QueryZoneID(t TemporalAccessor) (string, bool) {
	return "", false
}

// QueryChronology returns the calendar system name of a date-carrying
// accessor. Only the ISO-8601 calendar is modelled.
func QueryChronology(t TemporalAccessor) (string, bool) {
	if t.IsSupported(FieldEpochDay) {
		return "ISO", true
	}
	return "", false
}
