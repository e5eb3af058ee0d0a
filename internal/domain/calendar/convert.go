package calendar

// gregorianEpochYear is the first year of the Gregorian day ordinal.
// Gregorian years at or below it are outside the supported domain.
const gregorianEpochYear = 1600

const (
	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461
)

// The converters count Solar Hijri days from a fixed new year whose
// Gregorian date is known. Year lengths on either side come from IsLeapYear,
// so conversion, validation and day arithmetic share one leap rule.
const (
	anchorYear = 1403
	// anchorDayNumber is the Gregorian ordinal of 1403/01/01 (2024-03-20).
	anchorDayNumber = 154942
)

// gregorianCumulativeDays holds the days before each month in a common year.
var gregorianCumulativeDays = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

var gregorianMonthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// leapsBefore[i] counts the leap years in [leapBreaks[0], leapBreaks[0]+i).
var leapsBefore = func() []int {
	first, last := leapBreaks[0], leapBreaks[len(leapBreaks)-1]
	counts := make([]int, last-first+1)
	for y := first; y < last; y++ {
		counts[y-first+1] = counts[y-first]
		if IsLeapYear(y) {
			counts[y-first+1]++
		}
	}
	return counts
}()

// GregorianDate is a proleptic Gregorian calendar date.
type GregorianDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// IsGregorianLeapYear reports whether year is a leap year under the
// Gregorian rule.
func IsGregorianLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// GregorianToSolarHijri converts a Gregorian date to the Solar Hijri
// calendar.
//
// The conversion is only defined for year > 1600 and month in 1..12. Outside
// that domain the zero Date is returned; callers must not rely on it.
func GregorianToSolarHijri(year, month, day int) Date {
	if year <= gregorianEpochYear || month < 1 || month > 12 {
		return Date{}
	}

	delta := gregorianDayNumber(year, month, day) - anchorDayNumber

	// Both estimates undershoot, so the year only ever needs moving forward.
	jy := anchorYear + floorDiv(delta, 366)
	if delta < 0 {
		jy = anchorYear + floorDiv(delta, 365)
	}
	for solarHijriYearStart(jy+1) <= delta {
		jy++
	}

	dayOfYear := delta - solarHijriYearStart(jy)
	if dayOfYear < 186 {
		return Date{year: jy, month: 1 + dayOfYear/31, day: 1 + dayOfYear%31}
	}
	dayOfYear -= 186
	return Date{year: jy, month: 7 + dayOfYear/30, day: 1 + dayOfYear%30}
}

// SolarHijriToGregorian converts a Solar Hijri date to the Gregorian
// calendar. It is the inverse of GregorianToSolarHijri over the same domain.
func SolarHijriToGregorian(year, month, day int) GregorianDate {
	dayNo := anchorDayNumber + solarHijriYearStart(year) + solarHijriDaysBeforeMonth(month) + day - 1
	return gregorianFromDayNumber(dayNo)
}

// solarHijriYearStart returns the offset in days of year/01/01 from the
// anchor new year.
func solarHijriYearStart(year int) int {
	return 365*(year-anchorYear) + leapYearsBefore(year) - leapYearsBefore(anchorYear)
}

// leapYearsBefore counts the leap years from the first break up to year.
// Years outside the break table are common.
func leapYearsBefore(year int) int {
	first := leapBreaks[0]
	switch {
	case year <= first:
		return 0
	case year-first >= len(leapsBefore):
		return leapsBefore[len(leapsBefore)-1]
	default:
		return leapsBefore[year-first]
	}
}

// solarHijriDaysBeforeMonth returns the days preceding month in any year:
// six months of 31 days followed by months of 30 days.
func solarHijriDaysBeforeMonth(month int) int {
	if month < 7 {
		return (month - 1) * 31
	}
	return (month-7)*30 + 186
}

// gregorianDayNumber returns the days elapsed since 1600-01-01.
func gregorianDayNumber(year, month, day int) int {
	gy := year - gregorianEpochYear
	dayNo := 365*gy + (gy+3)/4 - (gy+99)/100 + (gy+399)/400
	dayNo += gregorianCumulativeDays[month-1]
	if month > 2 && IsGregorianLeapYear(year) {
		dayNo++
	}
	return dayNo + day - 1
}

// gregorianFromDayNumber is the inverse of gregorianDayNumber.
func gregorianFromDayNumber(dayNo int) GregorianDate {
	cycles := floorDiv(dayNo, daysPer400Years)
	gy := gregorianEpochYear + 400*cycles
	dayNo -= cycles * daysPer400Years

	// Align on the century boundary: only the first year of a 400-year
	// cycle is a leap century year.
	if dayNo >= daysPer100Years+1 {
		dayNo--
		gy += 100 * (dayNo / daysPer100Years)
		dayNo %= daysPer100Years
		if dayNo >= 365 {
			dayNo++
		}
	}

	gy += 4 * (dayNo / daysPer4Years)
	dayNo %= daysPer4Years

	if dayNo >= 366 {
		dayNo--
		gy += dayNo / 365
		dayNo %= 365
	}

	leap := IsGregorianLeapYear(gy)
	gm := 0
	for ; gm < 11; gm++ {
		length := gregorianMonthDays[gm]
		if gm == 1 && leap {
			length++
		}
		if dayNo < length {
			break
		}
		dayNo -= length
	}

	return GregorianDate{Year: gy, Month: gm + 1, Day: dayNo + 1}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
