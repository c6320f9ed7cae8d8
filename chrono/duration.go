package chrono

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/isochron/chrono-go/chrono/internal/overflow"
)

const (
	nanosPerSecond   = 1000000000
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400

	maxInt64 = math.MaxInt64
	minInt64 = math.MinInt64
)

// Duration is an exact, calendar-agnostic span of time modeled as whole
// seconds plus a nanosecond adjustment.
//
// The invariant 0 <= nanos <= 999999999 holds for every value; the sign of
// the duration is carried entirely by the seconds component, so minus one
// nanosecond is {seconds: -1, nanos: 999999999}. The zero value is the zero
// duration. Values are immutable; all arithmetic returns a new value and
// fails with an error wrapping ErrOverflow rather than wrapping around.
type Duration struct {
	seconds int64
	nanos   int32
}

// DurationZero is the zero duration.
var DurationZero = Duration{}

// durationOf normalizes an arbitrary nanosecond adjustment into the
// canonical form using floor division, so a negative adjustment borrows
// from the seconds component.
func durationOf(seconds, nanoAdjustment int64) (Duration, error) {
	secs, ok := overflow.Add(seconds, floorDiv(nanoAdjustment, nanosPerSecond))
	if !ok {
		return Duration{}, newOverflowError("duration seconds")
	}
	return Duration{secs, int32(floorMod(nanoAdjustment, nanosPerSecond))}, nil
}

// OfSeconds returns a duration of whole seconds.
func OfSeconds(seconds int64) Duration {
	return Duration{seconds, 0}
}

// OfSecondsNanos returns a duration of seconds plus a nanosecond
// adjustment, which may be any value and of either sign; the result is
// normalized so OfSecondsNanos(3, -1) is the same as OfSecondsNanos(2,
// 999999999).
func OfSecondsNanos(seconds, nanoAdjustment int64) (Duration, error) {
	return durationOf(seconds, nanoAdjustment)
}

// OfDays returns a duration of standard 24 hour days.
func OfDays(days int64) (Duration, error) {
	secs, ok := overflow.Mul(days, int64(secondsPerDay))
	if !ok {
		return Duration{}, newOverflowError("duration days")
	}
	return Duration{secs, 0}, nil
}

// OfHours returns a duration of standard hours.
func OfHours(hours int64) (Duration, error) {
	secs, ok := overflow.Mul(hours, int64(secondsPerHour))
	if !ok {
		return Duration{}, newOverflowError("duration hours")
	}
	return Duration{secs, 0}, nil
}

// OfMinutes returns a duration of standard minutes.
func OfMinutes(minutes int64) (Duration, error) {
	secs, ok := overflow.Mul(minutes, int64(secondsPerMinute))
	if !ok {
		return Duration{}, newOverflowError("duration minutes")
	}
	return Duration{secs, 0}, nil
}

// OfMillis returns a duration of milliseconds.
func OfMillis(millis int64) Duration {
	d, _ := durationOf(0, millis*1000000)
	return d
}

// OfMicros returns a duration of microseconds.
func OfMicros(micros int64) Duration {
	d, _ := durationOf(0, micros*1000)
	return d
}

// OfNanos returns a duration of nanoseconds, normalized so OfNanos(-1) is
// {seconds: -1, nanos: 999999999}.
func OfNanos(nanos int64) Duration {
	d, _ := durationOf(0, nanos)
	return d
}

// Of returns a duration measured in terms of the unit, which must have an
// exact duration; of the date-based units only Days (treated as exactly 24
// hours) qualifies.
func Of(amount int64, unit TemporalUnit) (Duration, error) {
	return DurationZero.plusUnit(amount, unit)
}

// DurationFrom converts a temporal amount with exactly measurable units
// into a Duration.
func DurationFrom(amount TemporalAmount) (Duration, error) {
	d := DurationZero
	for _, unit := range amount.Units() {
		value, err := amount.Get(unit)
		if err != nil {
			return Duration{}, err
		}
		d, err = d.plusUnit(value, unit)
		if err != nil {
			return Duration{}, err
		}
	}
	return d, nil
}

// DurationBetween computes the duration between two temporals as the
// whole-second delta plus, when both ends carry nano-of-second, a
// sub-second correction. The two deltas are computed independently and
// reconciled into one signed duration. Failure to obtain the nanosecond
// part silently degrades to whole-second precision: the coarse answer is
// still correct and useful.
func DurationBetween(start, end Temporal) (Duration, error) {
	secs, err := start.Until(end, UnitSeconds)
	if err != nil {
		return Duration{}, err
	}
	var nanos int64
	if startNanos, err2 := start.GetLong(FieldNanoOfSecond); err2 == nil {
		if endNanos, err2 := end.GetLong(FieldNanoOfSecond); err2 == nil {
			nanos = endNanos - startNanos
			switch {
			case secs > 0 && nanos < 0:
				nanos += nanosPerSecond
			case secs < 0 && nanos > 0:
				nanos -= nanosPerSecond
			case secs == 0 && nanos != 0:
				// align the end to the start's nano-of-second so the
				// whole-second delta and the sub-second delta agree in sign
				if aligned, err2 := end.With(FieldNanoOfSecond, startNanos); err2 == nil {
					if s, err2 := start.Until(aligned, UnitSeconds); err2 == nil {
						secs = s
					}
				}
			}
		}
	}
	return durationOf(secs, nanos)
}

// Seconds returns the whole-seconds component. It carries the sign of the
// duration.
func (d Duration) Seconds() int64 { return d.seconds }

// Nanos returns the nanosecond adjustment within the second, always in the
// range 0 to 999999999.
func (d Duration) Nanos() int { return int(d.nanos) }

// IsZero reports whether the duration is zero length.
func (d Duration) IsZero() bool { return d.seconds == 0 && d.nanos == 0 }

// IsNegative reports whether the duration is strictly negative.
func (d Duration) IsNegative() bool { return d.seconds < 0 }

// IsPositive reports whether the duration is strictly positive.
func (d Duration) IsPositive() bool { return d.seconds > 0 || (d.seconds == 0 && d.nanos > 0) }

// WithSeconds returns a copy with the whole-seconds component replaced.
func (d Duration) WithSeconds(seconds int64) Duration {
	return Duration{seconds, d.nanos}
}

// WithNanos returns a copy with the nanosecond adjustment replaced; the
// value must be within 0 to 999999999.
func (d Duration) WithNanos(nanoOfSecond int) (Duration, error) {
	n, err := FieldNanoOfSecond.Range().CheckValidIntValue(int64(nanoOfSecond), FieldNanoOfSecond)
	if err != nil {
		return Duration{}, err
	}
	return Duration{d.seconds, int32(n)}, nil
}

// Get implements TemporalAmount for the Seconds and Nanos units.
func (d Duration) Get(unit TemporalUnit) (int64, error) {
	switch unit {
	case UnitSeconds:
		return d.seconds, nil
	case UnitNanos:
		return int64(d.nanos), nil
	}
	return 0, errUnsupportedUnit(unit)
}

// Units returns the units of the amount: Seconds and Nanos.
func (d Duration) Units() []TemporalUnit {
	return []TemporalUnit{UnitSeconds, UnitNanos}
}

// Plus returns this duration with the other added.
func (d Duration) Plus(other Duration) (Duration, error) {
	return d.plus(other.seconds, int64(other.nanos))
}

// Minus returns this duration with the other subtracted.
func (d Duration) Minus(other Duration) (Duration, error) {
	if other.seconds == minInt64 {
		d2, err := d.plus(maxInt64, -int64(other.nanos))
		if err != nil {
			return Duration{}, err
		}
		return d2.plus(1, 0)
	}
	return d.plus(-other.seconds, -int64(other.nanos))
}

// PlusDays adds standard 24 hour days.
func (d Duration) PlusDays(days int64) (Duration, error) {
	secs, ok := overflow.Mul(days, int64(secondsPerDay))
	if !ok {
		return Duration{}, newOverflowError("duration days")
	}
	return d.plus(secs, 0)
}

// PlusHours adds standard hours.
func (d Duration) PlusHours(hours int64) (Duration, error) {
	secs, ok := overflow.Mul(hours, int64(secondsPerHour))
	if !ok {
		return Duration{}, newOverflowError("duration hours")
	}
	return d.plus(secs, 0)
}

// PlusMinutes adds standard minutes.
func (d Duration) PlusMinutes(minutes int64) (Duration, error) {
	secs, ok := overflow.Mul(minutes, int64(secondsPerMinute))
	if !ok {
		return Duration{}, newOverflowError("duration minutes")
	}
	return d.plus(secs, 0)
}

// PlusSeconds adds seconds.
func (d Duration) PlusSeconds(seconds int64) (Duration, error) {
	return d.plus(seconds, 0)
}

// PlusMillis adds milliseconds.
func (d Duration) PlusMillis(millis int64) (Duration, error) {
	return d.plus(millis/1000, (millis%1000)*1000000)
}

// PlusNanos adds nanoseconds.
func (d Duration) PlusNanos(nanos int64) (Duration, error) {
	return d.plus(0, nanos)
}

// MinusDays subtracts standard 24 hour days.
func (d Duration) MinusDays(days int64) (Duration, error) {
	if days == minInt64 {
		d2, err := d.PlusDays(maxInt64)
		if err != nil {
			return Duration{}, err
		}
		return d2.PlusDays(1)
	}
	return d.PlusDays(-days)
}

// MinusHours subtracts standard hours.
func (d Duration) MinusHours(hours int64) (Duration, error) {
	if hours == minInt64 {
		d2, err := d.PlusHours(maxInt64)
		if err != nil {
			return Duration{}, err
		}
		return d2.PlusHours(1)
	}
	return d.PlusHours(-hours)
}

// MinusMinutes subtracts standard minutes.
func (d Duration) MinusMinutes(minutes int64) (Duration, error) {
	if minutes == minInt64 {
		d2, err := d.PlusMinutes(maxInt64)
		if err != nil {
			return Duration{}, err
		}
		return d2.PlusMinutes(1)
	}
	return d.PlusMinutes(-minutes)
}

// MinusSeconds subtracts seconds.
func (d Duration) MinusSeconds(seconds int64) (Duration, error) {
	if seconds == minInt64 {
		d2, err := d.plus(maxInt64, 0)
		if err != nil {
			return Duration{}, err
		}
		return d2.plus(1, 0)
	}
	return d.plus(-seconds, 0)
}

// MinusMillis subtracts milliseconds.
func (d Duration) MinusMillis(millis int64) (Duration, error) {
	if millis == minInt64 {
		d2, err := d.PlusMillis(maxInt64)
		if err != nil {
			return Duration{}, err
		}
		return d2.PlusMillis(1)
	}
	return d.PlusMillis(-millis)
}

// MinusNanos subtracts nanoseconds.
func (d Duration) MinusNanos(nanos int64) (Duration, error) {
	if nanos == minInt64 {
		d2, err := d.PlusNanos(maxInt64)
		if err != nil {
			return Duration{}, err
		}
		return d2.PlusNanos(1)
	}
	return d.PlusNanos(-nanos)
}

func (d Duration) plusUnit(amount int64, unit TemporalUnit) (Duration, error) {
	if unit == UnitDays {
		secs, ok := overflow.Mul(amount, int64(secondsPerDay))
		if !ok {
			return Duration{}, newOverflowError("duration days")
		}
		return d.plus(secs, 0)
	}
	if unit.IsDurationEstimated() {
		return Duration{}, newDateTimeError("unit must not have an estimated duration: %s", unit)
	}
	if amount == 0 {
		return d, nil
	}
	if cu, ok := unit.(ChronoUnit); ok {
		switch cu {
		case UnitNanos:
			return d.PlusNanos(amount)
		case UnitMicros:
			days := amount / (1000000 * secondsPerDay)
			rem := amount % (1000000 * secondsPerDay)
			d2, err := d.PlusDays(days)
			if err != nil {
				return Duration{}, err
			}
			return d2.PlusNanos(rem * 1000)
		case UnitMillis:
			return d.PlusMillis(amount)
		case UnitSeconds:
			return d.PlusSeconds(amount)
		case UnitMinutes:
			return d.PlusMinutes(amount)
		case UnitHours:
			return d.PlusHours(amount)
		case UnitHalfDays:
			secs, ok := overflow.Mul(amount, int64(secondsPerDay/2))
			if !ok {
				return Duration{}, newOverflowError("duration half days")
			}
			return d.plus(secs, 0)
		}
	}
	// exact non-chrono unit: decompose its duration
	unitDur := unit.Duration()
	secs, ok := overflow.Mul(unitDur.seconds, amount)
	if !ok {
		return Duration{}, newOverflowError("duration seconds")
	}
	d2, err := d.plus(secs, 0)
	if err != nil {
		return Duration{}, err
	}
	return d2.PlusNanos(int64(unitDur.nanos) * amount)
}

func (d Duration) plus(secondsToAdd, nanosToAdd int64) (Duration, error) {
	if secondsToAdd == 0 && nanosToAdd == 0 {
		return d, nil
	}
	epochSec, ok := overflow.Add(d.seconds, secondsToAdd)
	if !ok {
		return Duration{}, newOverflowError("duration seconds")
	}
	epochSec, ok = overflow.Add(epochSec, nanosToAdd/nanosPerSecond)
	if !ok {
		return Duration{}, newOverflowError("duration seconds")
	}
	nanoAdjustment := int64(d.nanos) + nanosToAdd%nanosPerSecond
	return durationOf(epochSec, nanoAdjustment)
}

// decimal context sized so seconds.nanos values (up to 28 significant
// digits) multiplied by an int64 stay exact.
var durationDecimalContext = apd.BaseContext.WithPrecision(64)

func (d Duration) toDecimalSeconds() *apd.Decimal {
	secs := apd.New(d.seconds, 0)
	nanos := apd.New(int64(d.nanos), -9)
	result := new(apd.Decimal)
	// exact at this precision
	_, _ = durationDecimalContext.Add(result, secs, nanos)
	return result
}

func durationFromDecimalSeconds(seconds *apd.Decimal) (Duration, error) {
	var integ, frac apd.Decimal
	seconds.Modf(&integ, &frac)
	secs, err := integ.Int64()
	if err != nil {
		return Duration{}, newOverflowError("duration capacity exceeded")
	}
	var nanosDec apd.Decimal
	if _, err := durationDecimalContext.Mul(&nanosDec, &frac, apd.New(nanosPerSecond, 0)); err != nil {
		return Duration{}, newOverflowError("duration capacity exceeded")
	}
	nanos, err := nanosDec.Int64()
	if err != nil {
		return Duration{}, newOverflowError("duration capacity exceeded")
	}
	return durationOf(secs, nanos)
}

// MultipliedBy returns this duration multiplied by the scalar. The
// computation runs on an exact decimal representation of the seconds and
// nanoseconds so no precision is lost, failing only when the resulting
// whole-seconds part exceeds 64 bits.
func (d Duration) MultipliedBy(multiplicand int64) (Duration, error) {
	if multiplicand == 0 {
		return DurationZero, nil
	}
	if multiplicand == 1 {
		return d, nil
	}
	result := new(apd.Decimal)
	if _, err := durationDecimalContext.Mul(result, d.toDecimalSeconds(), apd.New(multiplicand, 0)); err != nil {
		return Duration{}, newOverflowError("duration capacity exceeded")
	}
	return durationFromDecimalSeconds(result)
}

// DividedBy returns this duration divided by the scalar, truncating the
// result to nanosecond precision toward zero.
func (d Duration) DividedBy(divisor int64) (Duration, error) {
	if divisor == 0 {
		return Duration{}, newDateTimeError("cannot divide duration by zero")
	}
	if divisor == 1 {
		return d, nil
	}
	ctx := *durationDecimalContext
	ctx.Rounding = apd.RoundDown
	quotient := new(apd.Decimal)
	if _, err := ctx.Quo(quotient, d.toDecimalSeconds(), apd.New(divisor, 0)); err != nil {
		return Duration{}, newOverflowError("duration capacity exceeded")
	}
	truncated := new(apd.Decimal)
	if _, err := ctx.Quantize(truncated, quotient, -9); err != nil {
		return Duration{}, newOverflowError("duration capacity exceeded")
	}
	return durationFromDecimalSeconds(truncated)
}

// Negated returns this duration with the length negated. Negating the
// minimum representable duration overflows.
func (d Duration) Negated() (Duration, error) {
	return d.MultipliedBy(-1)
}

// Abs returns a copy with a positive length.
func (d Duration) Abs() (Duration, error) {
	if d.IsNegative() {
		return d.Negated()
	}
	return d, nil
}

// AddTo adds this duration to the temporal.
func (d Duration) AddTo(t Temporal) (Temporal, error) {
	var err error
	if d.seconds != 0 {
		t, err = t.Plus(d.seconds, UnitSeconds)
		if err != nil {
			return nil, err
		}
	}
	if d.nanos != 0 {
		t, err = t.Plus(int64(d.nanos), UnitNanos)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// SubtractFrom subtracts this duration from the temporal.
func (d Duration) SubtractFrom(t Temporal) (Temporal, error) {
	var err error
	if d.seconds != 0 {
		t, err = t.Minus(d.seconds, UnitSeconds)
		if err != nil {
			return nil, err
		}
	}
	if d.nanos != 0 {
		t, err = t.Minus(int64(d.nanos), UnitNanos)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ToDays returns the number of whole standard 24 hour days.
func (d Duration) ToDays() int64 { return d.seconds / secondsPerDay }

// ToHours returns the number of whole hours.
func (d Duration) ToHours() int64 { return d.seconds / secondsPerHour }

// ToMinutes returns the number of whole minutes.
func (d Duration) ToMinutes() int64 { return d.seconds / secondsPerMinute }

// ToMillis converts the duration to total milliseconds.
func (d Duration) ToMillis() (int64, error) {
	millis, ok := overflow.Mul(d.seconds, int64(1000))
	if !ok {
		return 0, newOverflowError("duration millis")
	}
	millis, ok = overflow.Add(millis, int64(d.nanos)/1000000)
	if !ok {
		return 0, newOverflowError("duration millis")
	}
	return millis, nil
}

// ToNanos converts the duration to total nanoseconds.
func (d Duration) ToNanos() (int64, error) {
	nanos, ok := overflow.Mul(d.seconds, int64(nanosPerSecond))
	if !ok {
		return 0, newOverflowError("duration nanos")
	}
	nanos, ok = overflow.Add(nanos, int64(d.nanos))
	if !ok {
		return 0, newOverflowError("duration nanos")
	}
	return nanos, nil
}

// CompareTo orders durations by length: negative if d is shorter than
// other, positive if longer, zero if equal.
func (d Duration) CompareTo(other Duration) int {
	if d.seconds != other.seconds {
		if d.seconds < other.seconds {
			return -1
		}
		return 1
	}
	return int(d.nanos - other.nanos)
}

var durationPattern = regexp.MustCompile(
	`(?i)^([-+]?)P(?:([-+]?[0-9]+)D)?(T(?:([-+]?[0-9]+)H)?(?:([-+]?[0-9]+)M)?(?:([-+]?[0-9]+)(?:[.,]([0-9]{0,9}))?S)?)?$`)

// ParseDuration parses ISO-8601 duration text such as "PT20.345S",
// "P2DT3H4M" or "-PT6H3M". Days are treated as exactly 24 hours. The
// decimal separator may be a dot or a comma and parsing is
// case-insensitive. Each section may carry its own sign, and a leading
// minus negates the whole assembled duration.
func ParseDuration(text string) (Duration, error) {
	match := durationPattern.FindStringSubmatch(text)
	if match == nil || match[3] == "T" {
		return Duration{}, newParseError(text, "text cannot be parsed to a duration")
	}
	negate := match[1] == "-"
	dayMatch, hourMatch, minuteMatch, secondMatch, fractionMatch := match[2], match[4], match[5], match[6], match[7]
	if dayMatch == "" && hourMatch == "" && minuteMatch == "" && secondMatch == "" {
		return Duration{}, newParseError(text, "text cannot be parsed to a duration")
	}
	daysAsSecs, err := parseDurationNumber(text, dayMatch, secondsPerDay, "days")
	if err != nil {
		return Duration{}, err
	}
	hoursAsSecs, err := parseDurationNumber(text, hourMatch, secondsPerHour, "hours")
	if err != nil {
		return Duration{}, err
	}
	minsAsSecs, err := parseDurationNumber(text, minuteMatch, secondsPerMinute, "minutes")
	if err != nil {
		return Duration{}, err
	}
	secs, err := parseDurationNumber(text, secondMatch, 1, "seconds")
	if err != nil {
		return Duration{}, err
	}
	nanos, err := parseDurationFraction(text, fractionMatch, secs < 0 || strings.HasPrefix(secondMatch, "-"))
	if err != nil {
		return Duration{}, err
	}
	seconds := daysAsSecs
	for _, part := range []int64{hoursAsSecs, minsAsSecs, secs} {
		var ok bool
		seconds, ok = overflow.Add(seconds, part)
		if !ok {
			return Duration{}, newParseError(text, "text cannot be parsed to a duration: overflow")
		}
	}
	d, err := durationOf(seconds, nanos)
	if err != nil {
		return Duration{}, newParseError(text, "text cannot be parsed to a duration: overflow")
	}
	if negate {
		d, err = d.Negated()
		if err != nil {
			return Duration{}, newParseError(text, "text cannot be parsed to a duration: overflow")
		}
	}
	return d, nil
}

func parseDurationNumber(text, section string, multiplier int64, errText string) (int64, error) {
	if section == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(section, 10, 64)
	if err != nil {
		return 0, newParseError(text, "text cannot be parsed to a duration: "+errText)
	}
	result, ok := overflow.Mul(value, multiplier)
	if !ok {
		return 0, newParseError(text, "text cannot be parsed to a duration: "+errText)
	}
	return result, nil
}

func parseDurationFraction(text, section string, negative bool) (int64, error) {
	if section == "" {
		return 0, nil
	}
	fraction, err := strconv.ParseInt(section, 10, 64)
	if err != nil {
		return 0, newParseError(text, "text cannot be parsed to a duration: fraction")
	}
	// right-pad to nine digits
	for i := len(section); i < 9; i++ {
		fraction *= 10
	}
	if negative {
		fraction = -fraction
	}
	return fraction, nil
}

// String formats the duration as an ISO-8601 string such as "PT8H6M12.345S".
// Zero-valued hour and minute components are omitted; the seconds component
// is always present unless a larger component rendered and both seconds and
// nanos are zero. The zero duration is the fixed literal "PT0S". A negative
// duration smaller than one second borrows for display, rendering for
// example minus half a second as "PT-0.5S"; the parser reverses the borrow
// exactly.
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	hours := d.seconds / secondsPerHour
	minutes := (d.seconds % secondsPerHour) / secondsPerMinute
	secs := d.seconds % secondsPerMinute
	buf := make([]byte, 0, 24)
	buf = append(buf, "PT"...)
	if hours != 0 {
		buf = strconv.AppendInt(buf, hours, 10)
		buf = append(buf, 'H')
	}
	if minutes != 0 {
		buf = strconv.AppendInt(buf, minutes, 10)
		buf = append(buf, 'M')
	}
	if secs == 0 && d.nanos == 0 && len(buf) > 2 {
		return string(buf)
	}
	if secs < 0 && d.nanos > 0 {
		if secs == -1 {
			buf = append(buf, "-0"...)
		} else {
			buf = strconv.AppendInt(buf, secs+1, 10)
		}
	} else {
		buf = strconv.AppendInt(buf, secs, 10)
	}
	if d.nanos > 0 {
		pos := len(buf)
		if secs < 0 {
			buf = strconv.AppendInt(buf, 2*nanosPerSecond-int64(d.nanos), 10)
		} else {
			buf = strconv.AppendInt(buf, int64(d.nanos)+nanosPerSecond, 10)
		}
		for buf[len(buf)-1] == '0' {
			buf = buf[:len(buf)-1]
		}
		buf[pos] = '.'
	}
	buf = append(buf, 'S')
	return string(buf)
}

