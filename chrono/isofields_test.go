package chrono_test

import (
	"testing"

	"github.com/isochron/chrono-go/chrono"
)

func TestWeekOfWeekBasedYear(t *testing.T) {
	tests := []struct {
		date     chrono.LocalDate
		wantWeek int64
		wantYear int64
	}{
		// the 2008/2009 boundary: 2009 week one starts on 2008-12-29
		{chrono.MustDate(2008, 12, 28), 52, 2008},
		{chrono.MustDate(2008, 12, 29), 1, 2009},
		{chrono.MustDate(2008, 12, 31), 1, 2009},
		{chrono.MustDate(2009, 1, 1), 1, 2009},
		{chrono.MustDate(2009, 1, 4), 1, 2009},
		{chrono.MustDate(2009, 1, 5), 2, 2009},
		// the 2010 boundary: week one starts on 2010-01-04
		{chrono.MustDate(2010, 1, 1), 53, 2009},
		{chrono.MustDate(2010, 1, 3), 53, 2009},
		{chrono.MustDate(2010, 1, 4), 1, 2010},
		// 2015 is a 53 week year, Jan 1 on a Thursday
		{chrono.MustDate(2015, 12, 28), 53, 2015},
		{chrono.MustDate(2016, 1, 3), 53, 2015},
		{chrono.MustDate(2016, 1, 4), 1, 2016},
		// mid-year sanity
		{chrono.MustDate(2011, 6, 30), 26, 2011},
		// the minimum supported year opens on a Monday, so its first days
		// never spill into a preceding year
		{chrono.MustDate(chrono.MinYear, 1, 1), 1, chrono.MinYear},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			week, err := chrono.FieldWeekOfWeekBasedYear.GetFrom(tt.date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if week != tt.wantWeek {
				t.Errorf("WeekOfWeekBasedYear = %d, want %d", week, tt.wantWeek)
			}
			year, err := chrono.FieldWeekBasedYear.GetFrom(tt.date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if year != tt.wantYear {
				t.Errorf("WeekBasedYear = %d, want %d", year, tt.wantYear)
			}
		})
	}
}

func TestWeekOfWeekBasedYearRange(t *testing.T) {
	tests := []struct {
		date chrono.LocalDate
		want chrono.ValueRange
	}{
		{chrono.MustDate(2008, 6, 1), chrono.RangeOf(1, 52)},
		{chrono.MustDate(2009, 6, 1), chrono.RangeOf(1, 53)},
		// early January belongs to the previous week-based-year
		{chrono.MustDate(2010, 1, 1), chrono.RangeOf(1, 53)},
		{chrono.MustDate(2010, 1, 4), chrono.RangeOf(1, 52)},
		{chrono.MustDate(2015, 6, 1), chrono.RangeOf(1, 53)},
		{chrono.MustDate(2020, 6, 1), chrono.RangeOf(1, 53)},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			got, err := chrono.FieldWeekOfWeekBasedYear.RangeRefinedBy(tt.date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RangeRefinedBy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDayOfQuarter(t *testing.T) {
	tests := []struct {
		date    chrono.LocalDate
		wantDoq int64
		wantQoy int64
	}{
		{chrono.MustDate(2011, 1, 1), 1, 1},
		{chrono.MustDate(2011, 2, 28), 59, 1},
		{chrono.MustDate(2011, 3, 31), 90, 1},
		{chrono.MustDate(2012, 3, 31), 91, 1},
		{chrono.MustDate(2011, 4, 1), 1, 2},
		{chrono.MustDate(2012, 6, 30), 91, 2},
		{chrono.MustDate(2011, 7, 1), 1, 3},
		{chrono.MustDate(2011, 9, 30), 92, 3},
		{chrono.MustDate(2011, 12, 31), 92, 4},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			doq, err := chrono.FieldDayOfQuarter.GetFrom(tt.date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if doq != tt.wantDoq {
				t.Errorf("DayOfQuarter = %d, want %d", doq, tt.wantDoq)
			}
			qoy, err := chrono.FieldQuarterOfYear.GetFrom(tt.date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if qoy != tt.wantQoy {
				t.Errorf("QuarterOfYear = %d, want %d", qoy, tt.wantQoy)
			}
		})
	}
}

func TestDayOfQuarterRange(t *testing.T) {
	tests := []struct {
		date chrono.LocalDate
		want chrono.ValueRange
	}{
		{chrono.MustDate(2011, 2, 1), chrono.RangeOf(1, 90)},
		{chrono.MustDate(2012, 2, 1), chrono.RangeOf(1, 91)},
		{chrono.MustDate(2011, 5, 1), chrono.RangeOf(1, 91)},
		{chrono.MustDate(2011, 8, 1), chrono.RangeOf(1, 92)},
		{chrono.MustDate(2011, 11, 1), chrono.RangeOf(1, 92)},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			got, err := chrono.FieldDayOfQuarter.RangeRefinedBy(tt.date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RangeRefinedBy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsoFieldAdjustInto(t *testing.T) {
	tests := []struct {
		name  string
		field chrono.TemporalField
		date  chrono.LocalDate
		value int64
		want  chrono.LocalDate
	}{
		{"day of quarter", chrono.FieldDayOfQuarter, chrono.MustDate(2011, 2, 10), 1, chrono.MustDate(2011, 1, 1)},
		{"quarter of year", chrono.FieldQuarterOfYear, chrono.MustDate(2011, 2, 10), 3, chrono.MustDate(2011, 8, 10)},
		{"week preserves day of week", chrono.FieldWeekOfWeekBasedYear, chrono.MustDate(2011, 6, 30), 1, chrono.MustDate(2011, 1, 6)},
		{"week based year preserves week and day", chrono.FieldWeekBasedYear, chrono.MustDate(2011, 6, 30), 2012, chrono.MustDate(2012, 6, 28)},
		{"week 53 clips to 52 week year", chrono.FieldWeekBasedYear, chrono.MustDate(2015, 12, 29), 2014, chrono.MustDate(2014, 12, 23)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.AdjustInto(tt.date, tt.value)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != chrono.Temporal(tt.want) {
				t.Errorf("AdjustInto(%v, %d) = %v, want %v", tt.date, tt.value, got, tt.want)
			}
		})
	}
}

func TestResolveDayOfQuarter(t *testing.T) {
	tests := []struct {
		name    string
		values  map[chrono.TemporalField]int64
		style   chrono.ResolverStyle
		want    chrono.LocalDate
		wantNil bool
		wantErr bool
	}{
		{
			name: "smart in range",
			values: map[chrono.TemporalField]int64{
				chrono.FieldYear:          2011,
				chrono.FieldQuarterOfYear: 3,
				chrono.FieldDayOfQuarter:  45,
			},
			style: chrono.ResolverStyleSmart,
			want:  chrono.MustDate(2011, 8, 14),
		},
		{
			name: "strict rejects day past quarter end",
			values: map[chrono.TemporalField]int64{
				chrono.FieldYear:          2011,
				chrono.FieldQuarterOfYear: 1,
				chrono.FieldDayOfQuarter:  91,
			},
			style:   chrono.ResolverStyleStrict,
			wantErr: true,
		},
		{
			name: "strict allows leap quarter day 91",
			values: map[chrono.TemporalField]int64{
				chrono.FieldYear:          2012,
				chrono.FieldQuarterOfYear: 1,
				chrono.FieldDayOfQuarter:  91,
			},
			style: chrono.ResolverStyleStrict,
			want:  chrono.MustDate(2012, 3, 31),
		},
		{
			name: "smart overflows into next quarter",
			values: map[chrono.TemporalField]int64{
				chrono.FieldYear:          2011,
				chrono.FieldQuarterOfYear: 1,
				chrono.FieldDayOfQuarter:  91,
			},
			style: chrono.ResolverStyleSmart,
			want:  chrono.MustDate(2011, 4, 1),
		},
		{
			name: "lenient counts from quarter start",
			values: map[chrono.TemporalField]int64{
				chrono.FieldYear:          2011,
				chrono.FieldQuarterOfYear: 5,
				chrono.FieldDayOfQuarter:  0,
			},
			style: chrono.ResolverStyleLenient,
			want:  chrono.MustDate(2011, 12, 31),
		},
		{
			name: "missing quarter defers",
			values: map[chrono.TemporalField]int64{
				chrono.FieldYear:         2011,
				chrono.FieldDayOfQuarter: 45,
			},
			style:   chrono.ResolverStyleSmart,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chrono.FieldDayOfQuarter.Resolve(tt.values, nil, tt.style)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Resolve = %v, want nil", got)
				}
				if _, ok := tt.values[chrono.FieldDayOfQuarter]; !ok {
					t.Error("deferred resolve must not consume its field")
				}
				return
			}
			if got != chrono.TemporalAccessor(tt.want) {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
			for _, consumed := range []chrono.TemporalField{
				chrono.FieldDayOfQuarter, chrono.FieldYear, chrono.FieldQuarterOfYear,
			} {
				if _, ok := tt.values[consumed]; ok {
					t.Errorf("field %s not consumed", consumed)
				}
			}
		})
	}
}

func TestResolveWeekOfWeekBasedYear(t *testing.T) {
	tests := []struct {
		name    string
		values  map[chrono.TemporalField]int64
		style   chrono.ResolverStyle
		want    chrono.LocalDate
		wantErr bool
	}{
		{
			name: "smart",
			values: map[chrono.TemporalField]int64{
				chrono.FieldWeekBasedYear:       2009,
				chrono.FieldWeekOfWeekBasedYear: 1,
				chrono.FieldDayOfWeek:           1,
			},
			style: chrono.ResolverStyleSmart,
			want:  chrono.MustDate(2008, 12, 29),
		},
		{
			name: "strict rejects week 53 in 52 week year",
			values: map[chrono.TemporalField]int64{
				chrono.FieldWeekBasedYear:       2011,
				chrono.FieldWeekOfWeekBasedYear: 53,
				chrono.FieldDayOfWeek:           1,
			},
			style:   chrono.ResolverStyleStrict,
			wantErr: true,
		},
		{
			name: "strict allows week 53 in 53 week year",
			values: map[chrono.TemporalField]int64{
				chrono.FieldWeekBasedYear:       2015,
				chrono.FieldWeekOfWeekBasedYear: 53,
				chrono.FieldDayOfWeek:           1,
			},
			style: chrono.ResolverStyleStrict,
			want:  chrono.MustDate(2015, 12, 28),
		},
		{
			name: "smart rolls week 53 into next year",
			values: map[chrono.TemporalField]int64{
				chrono.FieldWeekBasedYear:       2011,
				chrono.FieldWeekOfWeekBasedYear: 53,
				chrono.FieldDayOfWeek:           1,
			},
			style: chrono.ResolverStyleSmart,
			want:  chrono.MustDate(2012, 1, 2),
		},
		{
			name: "lenient wraps large day of week",
			values: map[chrono.TemporalField]int64{
				chrono.FieldWeekBasedYear:       2011,
				chrono.FieldWeekOfWeekBasedYear: 1,
				chrono.FieldDayOfWeek:           9,
			},
			style: chrono.ResolverStyleLenient,
			want:  chrono.MustDate(2011, 1, 11),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chrono.FieldWeekOfWeekBasedYear.Resolve(tt.values, nil, tt.style)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != chrono.TemporalAccessor(tt.want) {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
			if len(tt.values) != 0 {
				t.Errorf("unconsumed fields remain: %v", tt.values)
			}
		})
	}
}

func TestQuarterYearsUnit(t *testing.T) {
	start := chrono.MustDate(2011, 1, 31)

	got, err := start.Plus(1, chrono.UnitQuarterYears)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if want := chrono.MustDate(2011, 4, 30); got != chrono.Temporal(want) {
		t.Errorf("Plus(1, QuarterYears) = %v, want %v", got, want)
	}

	between, err := start.Until(chrono.MustDate(2012, 1, 31), chrono.UnitQuarterYears)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if between != 4 {
		t.Errorf("Until in QuarterYears = %d, want 4", between)
	}

	// partial quarters truncate
	between, err = start.Until(chrono.MustDate(2011, 4, 29), chrono.UnitQuarterYears)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if between != 0 {
		t.Errorf("Until in QuarterYears = %d, want 0", between)
	}
}

func TestWeekBasedYearsUnit(t *testing.T) {
	start := chrono.MustDate(2008, 12, 29) // week 1 of 2009

	got, err := start.Plus(1, chrono.UnitWeekBasedYears)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if want := chrono.MustDate(2010, 1, 4); got != chrono.Temporal(want) {
		t.Errorf("Plus(1, WeekBasedYears) = %v, want %v", got, want)
	}

	// the span is a plain field delta, ignoring partial years
	between, err := chrono.MustDate(2010, 1, 3).Until(chrono.MustDate(2010, 1, 4), chrono.UnitWeekBasedYears)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if between != 1 {
		t.Errorf("Until in WeekBasedYears = %d, want 1", between)
	}
}
