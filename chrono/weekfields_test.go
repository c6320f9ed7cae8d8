package chrono_test

import (
	"sync"
	"testing"

	"golang.org/x/text/language"

	"github.com/isochron/chrono-go/chrono"
)

func TestWeekFieldsOf(t *testing.T) {
	wf, err := chrono.WeekFieldsOf(chrono.Monday, 4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if wf != chrono.WeekFieldsISO {
		t.Error("WeekFieldsOf(Monday, 4) must return the ISO singleton")
	}
	if wf.FirstDayOfWeek() != chrono.Monday || wf.MinimalDaysInFirstWeek() != 4 {
		t.Errorf("got (%v, %d), want (Monday, 4)", wf.FirstDayOfWeek(), wf.MinimalDaysInFirstWeek())
	}
	if got := wf.String(); got != "WeekFields[Monday,4]" {
		t.Errorf("String() = %q", got)
	}

	if _, err := chrono.WeekFieldsOf(chrono.DayOfWeek(0), 4); err == nil {
		t.Error("Expected error but got nil")
	}
	if _, err := chrono.WeekFieldsOf(chrono.Monday, 8); err == nil {
		t.Error("Expected error but got nil")
	}
}

func TestWeekFieldsCacheConcurrent(t *testing.T) {
	const workers = 8
	results := make([]*chrono.WeekFields, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wf, err := chrono.WeekFieldsOf(chrono.Wednesday, 3)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			results[i] = wf
		}(i)
	}
	wg.Wait()
	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent lookups returned distinct instances")
		}
	}
}

func TestWeekFieldsOfLocale(t *testing.T) {
	tests := []struct {
		tag          language.Tag
		wantFirstDay chrono.DayOfWeek
		wantMinDays  int
	}{
		{language.MustParse("en-US"), chrono.Sunday, 1},
		{language.MustParse("de-DE"), chrono.Monday, 4},
		{language.MustParse("fr-FR"), chrono.Monday, 4},
		{language.MustParse("ar-EG"), chrono.Saturday, 1},
		{language.MustParse("pt-BR"), chrono.Sunday, 1},
		{language.Und, chrono.Monday, 4},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			wf := chrono.WeekFieldsOfLocale(tt.tag)
			if wf.FirstDayOfWeek() != tt.wantFirstDay || wf.MinimalDaysInFirstWeek() != tt.wantMinDays {
				t.Errorf("got (%v, %d), want (%v, %d)",
					wf.FirstDayOfWeek(), wf.MinimalDaysInFirstWeek(), tt.wantFirstDay, tt.wantMinDays)
			}
		})
	}
}

func TestLocalizedDayOfWeek(t *testing.T) {
	thursday := chrono.MustDate(2011, 6, 30)
	sunday := chrono.MustDate(2011, 7, 3)

	tests := []struct {
		name string
		wf   *chrono.WeekFields
		date chrono.LocalDate
		want int64
	}{
		{"iso thursday", chrono.WeekFieldsISO, thursday, 4},
		{"iso sunday", chrono.WeekFieldsISO, sunday, 7},
		{"sunday start thursday", chrono.WeekFieldsSundayStart, thursday, 5},
		{"sunday start sunday", chrono.WeekFieldsSundayStart, sunday, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.wf.DayOfWeek().GetFrom(tt.date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DayOfWeek().GetFrom = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLocalizedWeekOfMonth(t *testing.T) {
	tests := []struct {
		name string
		wf   *chrono.WeekFields
		date chrono.LocalDate
		want int64
	}{
		{"iso late june", chrono.WeekFieldsISO, chrono.MustDate(2011, 6, 30), 5},
		{"sunday start late june", chrono.WeekFieldsSundayStart, chrono.MustDate(2011, 6, 30), 5},
		// April 2011 starts on a Friday: the three day fragment is week
		// zero under ISO but week one when a single day suffices
		{"iso short first week", chrono.WeekFieldsISO, chrono.MustDate(2011, 4, 2), 0},
		{"sunday start short first week", chrono.WeekFieldsSundayStart, chrono.MustDate(2011, 4, 2), 1},
		{"iso first full week", chrono.WeekFieldsISO, chrono.MustDate(2011, 4, 4), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.wf.WeekOfMonth().GetFrom(tt.date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("WeekOfMonth().GetFrom = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLocalizedWeekOfWeekBasedYear(t *testing.T) {
	// the ISO-parameterized computed field must agree with the dedicated
	// ISO week field across year boundaries
	dates := []chrono.LocalDate{
		chrono.MustDate(2008, 12, 28),
		chrono.MustDate(2008, 12, 29),
		chrono.MustDate(2009, 1, 1),
		chrono.MustDate(2009, 1, 4),
		chrono.MustDate(2009, 1, 5),
		chrono.MustDate(2010, 1, 1),
		chrono.MustDate(2010, 1, 4),
		chrono.MustDate(2015, 12, 28),
		chrono.MustDate(2016, 1, 3),
		chrono.MustDate(2011, 6, 30),
	}

	wowby := chrono.WeekFieldsISO.WeekOfWeekBasedYear()
	wby := chrono.WeekFieldsISO.WeekBasedYear()
	for _, date := range dates {
		t.Run(date.String(), func(t *testing.T) {
			gotWeek, err := wowby.GetFrom(date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			wantWeek, err := chrono.FieldWeekOfWeekBasedYear.GetFrom(date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if gotWeek != wantWeek {
				t.Errorf("week = %d, want %d", gotWeek, wantWeek)
			}
			gotYear, err := wby.GetFrom(date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			wantYear, err := chrono.FieldWeekBasedYear.GetFrom(date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if gotYear != wantYear {
				t.Errorf("week-based-year = %d, want %d", gotYear, wantYear)
			}
		})
	}
}

func TestComputedFieldRangeRefinedBy(t *testing.T) {
	tests := []struct {
		name  string
		field chrono.TemporalField
		date  chrono.LocalDate
		want  chrono.ValueRange
	}{
		{"week of month with week zero", chrono.WeekFieldsISO.WeekOfMonth(),
			chrono.MustDate(2011, 4, 15), chrono.RangeOf(0, 4)},
		{"week of month full weeks", chrono.WeekFieldsSundayStart.WeekOfMonth(),
			chrono.MustDate(2011, 4, 15), chrono.RangeOf(1, 5)},
		{"week of week based year 52", chrono.WeekFieldsISO.WeekOfWeekBasedYear(),
			chrono.MustDate(2011, 6, 30), chrono.RangeOf(1, 52)},
		{"week of week based year 53", chrono.WeekFieldsISO.WeekOfWeekBasedYear(),
			chrono.MustDate(2015, 6, 30), chrono.RangeOf(1, 53)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.RangeRefinedBy(tt.date)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RangeRefinedBy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputedFieldAdjustInto(t *testing.T) {
	t.Run("day of week within localized week", func(t *testing.T) {
		// Sunday-start week containing Thursday 2011-06-30 runs Sunday
		// 2011-06-26 through Saturday 2011-07-02
		got, err := chrono.WeekFieldsSundayStart.DayOfWeek().AdjustInto(chrono.MustDate(2011, 6, 30), 1)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if want := chrono.MustDate(2011, 6, 26); got != chrono.Temporal(want) {
			t.Errorf("AdjustInto = %v, want %v", got, want)
		}
	})

	t.Run("week of month moves whole weeks", func(t *testing.T) {
		got, err := chrono.WeekFieldsISO.WeekOfMonth().AdjustInto(chrono.MustDate(2011, 6, 30), 1)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if want := chrono.MustDate(2011, 6, 2); got != chrono.Temporal(want) {
			t.Errorf("AdjustInto = %v, want %v", got, want)
		}
	})

	t.Run("week based year preserves week and day", func(t *testing.T) {
		got, err := chrono.WeekFieldsISO.WeekBasedYear().AdjustInto(chrono.MustDate(2011, 6, 30), 2012)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if want := chrono.MustDate(2012, 6, 28); got != chrono.Temporal(want) {
			t.Errorf("AdjustInto = %v, want %v", got, want)
		}
	})

	t.Run("week based year far jump", func(t *testing.T) {
		date := chrono.MustDate(2011, 6, 30)
		got, err := chrono.WeekFieldsISO.WeekBasedYear().AdjustInto(date, 1951)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		year, err := chrono.WeekFieldsISO.WeekBasedYear().GetFrom(got)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if year != 1951 {
			t.Errorf("adjusted week-based-year = %d, want 1951", year)
		}
		week, err := chrono.WeekFieldsISO.WeekOfWeekBasedYear().GetFrom(got)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if week != 26 {
			t.Errorf("adjusted week = %d, want 26", week)
		}
		dow, err := got.GetLong(chrono.FieldDayOfWeek)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if dow != 4 {
			t.Errorf("adjusted day-of-week = %d, want 4", dow)
		}
	})
}

func TestComputedFieldResolve(t *testing.T) {
	t.Run("localized day of week converts to iso", func(t *testing.T) {
		field := chrono.WeekFieldsSundayStart.DayOfWeek()
		values := map[chrono.TemporalField]int64{field: 1}
		got, err := field.Resolve(values, nil, chrono.ResolverStyleSmart)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("Resolve = %v, want nil", got)
		}
		if _, ok := values[field]; ok {
			t.Error("localized field not consumed")
		}
		if iso := values[chrono.TemporalField(chrono.FieldDayOfWeek)]; iso != 7 {
			t.Errorf("resolved ISO day-of-week = %d, want 7", iso)
		}
	})

	t.Run("week of month", func(t *testing.T) {
		field := chrono.WeekFieldsISO.WeekOfMonth()
		values := map[chrono.TemporalField]int64{
			chrono.FieldYear:        2011,
			chrono.FieldMonthOfYear: 6,
			field:                   2,
			chrono.FieldDayOfWeek:   4,
		}
		got, err := field.Resolve(values, nil, chrono.ResolverStyleSmart)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if want := chrono.MustDate(2011, 6, 9); got != chrono.TemporalAccessor(want) {
			t.Errorf("Resolve = %v, want %v", got, want)
		}
		if len(values) != 0 {
			t.Errorf("unconsumed fields remain: %v", values)
		}
	})

	t.Run("strict rejects week of month in next month", func(t *testing.T) {
		field := chrono.WeekFieldsISO.WeekOfMonth()
		values := map[chrono.TemporalField]int64{
			chrono.FieldYear:        2011,
			chrono.FieldMonthOfYear: 6,
			field:                   5,
			chrono.FieldDayOfWeek:   6,
		}
		if _, err := field.Resolve(values, nil, chrono.ResolverStyleStrict); err == nil {
			t.Error("Expected error but got nil")
		}
	})

	t.Run("smart allows week of month spill", func(t *testing.T) {
		field := chrono.WeekFieldsISO.WeekOfMonth()
		values := map[chrono.TemporalField]int64{
			chrono.FieldYear:        2011,
			chrono.FieldMonthOfYear: 6,
			field:                   5,
			chrono.FieldDayOfWeek:   6,
		}
		got, err := field.Resolve(values, nil, chrono.ResolverStyleSmart)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if want := chrono.MustDate(2011, 7, 2); got != chrono.TemporalAccessor(want) {
			t.Errorf("Resolve = %v, want %v", got, want)
		}
	})

	t.Run("week based year pair", func(t *testing.T) {
		wf := chrono.WeekFieldsISO
		values := map[chrono.TemporalField]int64{
			wf.WeekBasedYear():       2009,
			wf.WeekOfWeekBasedYear(): 1,
			chrono.FieldDayOfWeek:    1,
		}
		got, err := wf.WeekOfWeekBasedYear().Resolve(values, nil, chrono.ResolverStyleSmart)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if want := chrono.MustDate(2008, 12, 29); got != chrono.TemporalAccessor(want) {
			t.Errorf("Resolve = %v, want %v", got, want)
		}
		if len(values) != 0 {
			t.Errorf("unconsumed fields remain: %v", values)
		}
	})

	t.Run("missing day of week defers", func(t *testing.T) {
		field := chrono.WeekFieldsISO.WeekOfMonth()
		values := map[chrono.TemporalField]int64{
			chrono.FieldYear:        2011,
			chrono.FieldMonthOfYear: 6,
			field:                   2,
		}
		got, err := field.Resolve(values, nil, chrono.ResolverStyleSmart)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("Resolve = %v, want nil", got)
		}
		if len(values) != 3 {
			t.Errorf("deferred resolve must leave the map intact, got %v", values)
		}
	})
}
