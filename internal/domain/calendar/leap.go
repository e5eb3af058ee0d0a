package calendar

// leapBreaks lists the Solar Hijri years at which the intercalation jump
// changes. The values are a fixed dataset: leap-year results, and therefore
// the validity of every Esfand 30, depend on them exactly.
var leapBreaks = [...]int{
	-14, 3, 13, 84, 111, 181, 210, 342, 382, 409,
	480, 518, 571, 623, 692, 745, 818, 892, 960, 1029,
	1106, 1153, 1200, 1260, 1316, 1370, 1404, 1435,
}

// IsLeapYear reports whether the Solar Hijri year has a 30-day Esfand.
//
// Years outside the break-point table (before the first break or at or after
// the last one) have no bracketing interval and are reported as common years.
func IsLeapYear(year int) bool {
	if year < leapBreaks[0] || year >= leapBreaks[len(leapBreaks)-1] {
		return false
	}

	jp := leapBreaks[0]
	jump := 0
	for _, jm := range leapBreaks[1:] {
		jump = jm - jp
		if year < jm {
			break
		}
		jp = jm
	}

	n := year - jp
	if n >= jump {
		return false
	}

	// Fold the tail of the interval back onto the 6-year pattern.
	if jump-n < 6 {
		n = n - jump + (jump+4)/6*6
	}

	if jump%6 == 0 {
		return (n+1)%6 == 0
	}
	return (n+1)%6 == 0 || (jump%6 < 5 && (n+1)%6 < jump%6)
}

// DaysInMonth returns the number of days in a Solar Hijri month, or 0 when
// month is outside 1..12.
func DaysInMonth(year, month int) int {
	switch {
	case month >= 1 && month <= 6:
		return 31
	case month >= 7 && month <= 11:
		return 30
	case month == 12:
		if IsLeapYear(year) {
			return 30
		}
		return 29
	default:
		return 0
	}
}

// IsValidDate reports whether (year, month, day) names an existing Solar
// Hijri date. It is the validation gate for untrusted input.
func IsValidDate(year, month, day int) bool {
	return day >= 1 && day <= DaysInMonth(year, month)
}
