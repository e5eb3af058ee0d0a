package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGregorianToSolarHijri_KnownDates(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		gregorian GregorianDate
		want      string
	}{
		{"nowruz 1403", GregorianDate{2024, 3, 20}, "1403/01/01"},
		{"last day of leap 1403", GregorianDate{2025, 3, 20}, "1403/12/30"},
		{"nowruz 1404", GregorianDate{2025, 3, 21}, "1404/01/01"},
		{"new millennium", GregorianDate{2000, 1, 1}, "1378/10/20"},
		{"esfand 29 of common 1408", GregorianDate{2030, 3, 19}, "1408/12/29"},
		{"nowruz 1409", GregorianDate{2030, 3, 20}, "1409/01/01"},
		{"esfand 30 of leap 1409", GregorianDate{2031, 3, 20}, "1409/12/30"},
		{"nowruz 1410", GregorianDate{2031, 3, 21}, "1410/01/01"},
		{"first day after Shahrivar", GregorianDate{2024, 9, 22}, "1403/07/01"},
		{"leap day", GregorianDate{2024, 2, 29}, "1402/12/10"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := GregorianToSolarHijri(tc.gregorian.Year, tc.gregorian.Month, tc.gregorian.Day)
			assert.Equal(t, tc.want, got.Format())
			assert.Equal(t, tc.gregorian, got.Gregorian())
		})
	}
}

func TestGregorianToSolarHijri_OutsideDomain(t *testing.T) {
	t.Parallel()

	assert.True(t, GregorianToSolarHijri(1600, 6, 1).IsZero(), "year 1600 is not supported")
	assert.True(t, GregorianToSolarHijri(1200, 1, 1).IsZero())
	assert.True(t, GregorianToSolarHijri(2024, 13, 1).IsZero())
	assert.True(t, GregorianToSolarHijri(2024, 0, 1).IsZero())
}

func TestSolarHijriToGregorian_KnownDates(t *testing.T) {
	t.Parallel()

	assert.Equal(t, GregorianDate{2024, 3, 20}, SolarHijriToGregorian(1403, 1, 1))
	assert.Equal(t, GregorianDate{2025, 3, 20}, SolarHijriToGregorian(1403, 12, 30))
	assert.Equal(t, GregorianDate{2000, 1, 1}, SolarHijriToGregorian(1378, 10, 20))
	assert.Equal(t, GregorianDate{2031, 3, 20}, SolarHijriToGregorian(1409, 12, 30))
	assert.Equal(t, GregorianDate{2031, 3, 21}, SolarHijriToGregorian(1410, 1, 1))
	// The last year of the break table is leap; the year after it is common.
	assert.Equal(t, GregorianDate{2056, 3, 17}, SolarHijriToGregorian(1434, 12, 30))
	assert.Equal(t, GregorianDate{2056, 3, 18}, SolarHijriToGregorian(1435, 1, 1))
}

// Esfand has a 30th day exactly in the years IsLeapYear reports, so the
// converters and IsValidDate agree on every year length.
func TestConverters_FollowLeapTable(t *testing.T) {
	t.Parallel()

	for year := 1100; year <= 1700; year++ {
		lastOfYear := SolarHijriToGregorian(year, 12, DaysInMonth(year, 12))
		next := FromTime(gregorianTime(lastOfYear).AddDate(0, 0, 1))
		require.Equal(t, Date{year: year + 1, month: 1, day: 1}, next, "day after the last of %d", year)

		start := SolarHijriToGregorian(year, 1, 1)
		end := SolarHijriToGregorian(year+1, 1, 1)
		length := int(gregorianTime(end).Sub(gregorianTime(start)).Hours() / 24)
		want := 365
		if IsLeapYear(year) {
			want = 366
		}
		require.Equal(t, want, length, "length of year %d", year)
	}
}

func gregorianTime(g GregorianDate) time.Time {
	return time.Date(g.Year, time.Month(g.Month), g.Day, 12, 0, 0, 0, time.UTC)
}

func TestRoundTrip_FromGregorian(t *testing.T) {
	t.Parallel()

	start := time.Date(1700, time.January, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(2300, time.December, 31, 12, 0, 0, 0, time.UTC)

	var previous Date
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		g := GregorianDate{Year: day.Year(), Month: int(day.Month()), Day: day.Day()}
		sh := GregorianToSolarHijri(g.Year, g.Month, g.Day)

		require.Equal(t, g, sh.Gregorian(), "round trip of %v via %s", g, sh)
		require.True(t, IsValidDate(sh.Year(), sh.Month(), sh.Day()), "%v converts to invalid %s", g, sh)
		if !previous.IsZero() {
			require.True(t, sh.After(previous), "%s should follow %s", sh, previous)
			require.True(t, isNextDay(previous, sh), "%s should be the day after %s", sh, previous)
		}
		previous = sh
	}
}

func TestRoundTrip_FromSolarHijri(t *testing.T) {
	t.Parallel()

	for year := 1100; year <= 1700; year++ {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= DaysInMonth(year, month); day++ {
				g := SolarHijriToGregorian(year, month, day)
				got := GregorianToSolarHijri(g.Year, g.Month, g.Day)
				require.Equal(t, Date{year: year, month: month, day: day}, got,
					"round trip of %d/%d/%d via %v", year, month, day, g)
			}
		}
	}
}

func TestIsGregorianLeapYear(t *testing.T) {
	t.Parallel()

	assert.True(t, IsGregorianLeapYear(2000))
	assert.True(t, IsGregorianLeapYear(2024))
	assert.False(t, IsGregorianLeapYear(1900))
	assert.False(t, IsGregorianLeapYear(2023))
	assert.False(t, IsGregorianLeapYear(2100))
}

// isNextDay reports whether next directly follows prev.
func isNextDay(prev, next Date) bool {
	if next.year == prev.year && next.month == prev.month {
		return next.day == prev.day+1
	}
	if next.day != 1 {
		return false
	}
	if next.year == prev.year {
		return next.month == prev.month+1 && prev.day == DaysInMonth(prev.year, prev.month)
	}
	return next.year == prev.year+1 && next.month == 1 && prev.month == 12 &&
		prev.day == DaysInMonth(prev.year, 12)
}
