// Package weekdata maps territory codes to week conventions, extracted
// from the CLDR supplemental week data.
package weekdata

// ISO day numbers.
const (
	monday   = 1
	friday   = 5
	saturday = 6
	sunday   = 7
)

// firstDayByRegion lists territories that do not start the week on Monday.
var firstDayByRegion = map[string]int{
	// Sunday-first territories.
	"AG": sunday, "AS": sunday, "BD": sunday, "BR": sunday, "BS": sunday,
	"BT": sunday, "BW": sunday, "BZ": sunday, "CA": sunday, "CN": sunday,
	"CO": sunday, "DM": sunday, "DO": sunday, "ET": sunday, "GT": sunday,
	"GU": sunday, "HK": sunday, "HN": sunday, "ID": sunday, "IL": sunday,
	"IN": sunday, "JM": sunday, "JP": sunday, "KE": sunday, "KH": sunday,
	"KR": sunday, "LA": sunday, "MH": sunday, "MM": sunday, "MO": sunday,
	"MT": sunday, "MX": sunday, "MZ": sunday, "NI": sunday, "NP": sunday,
	"PA": sunday, "PE": sunday, "PH": sunday, "PK": sunday, "PR": sunday,
	"PY": sunday, "SA": sunday, "SG": sunday, "SV": sunday, "TH": sunday,
	"TT": sunday, "TW": sunday, "UM": sunday, "US": sunday, "VE": sunday,
	"VI": sunday, "WS": sunday, "YE": sunday, "ZA": sunday, "ZW": sunday,
	// Saturday-first territories.
	"AE": saturday, "AF": saturday, "BH": saturday, "DJ": saturday,
	"DZ": saturday, "EG": saturday, "IQ": saturday, "IR": saturday,
	"JO": saturday, "KW": saturday, "LY": saturday, "OM": saturday,
	"QA": saturday, "SD": saturday, "SY": saturday,
	// Friday-first territories.
	"MV": friday,
}

// minDaysRegions lists territories with a four day minimum first week; all
// others use one day.
var minDaysRegions = map[string]struct{}{
	"AD": {}, "AN": {}, "AT": {}, "AX": {}, "BE": {}, "BG": {}, "CH": {},
	"CZ": {}, "DE": {}, "DK": {}, "EE": {}, "ES": {}, "FI": {}, "FJ": {},
	"FO": {}, "FR": {}, "GB": {}, "GF": {}, "GG": {}, "GI": {}, "GP": {},
	"GR": {}, "HU": {}, "IE": {}, "IM": {}, "IS": {}, "IT": {}, "JE": {},
	"LI": {}, "LT": {}, "LU": {}, "MC": {}, "MQ": {}, "NL": {}, "NO": {},
	"PL": {}, "PT": {}, "RE": {}, "RU": {}, "SE": {}, "SJ": {}, "SK": {},
	"SM": {}, "VA": {},
}

// ForRegion returns the first day-of-week (ISO numbering, 1 is Monday) and
// the minimal number of days in the first week for a territory. Unknown
// territories get the ISO convention of Monday and four days.
func ForRegion(region string) (firstDay, minimalDays int) {
	if region == "" || region == "ZZ" {
		return monday, 4
	}
	firstDay, ok := firstDayByRegion[region]
	if !ok {
		firstDay = monday
	}
	if _, ok := minDaysRegions[region]; ok {
		return firstDay, 4
	}
	return firstDay, 1
}
