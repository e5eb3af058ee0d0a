package calendar

var monthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// dayNames is indexed by time.Weekday, Sunday first.
var dayNames = [7]string{
	"یکشنبه", "دوشنبه", "سه‌شنبه", "چهارشنبه", "پنج‌شنبه", "جمعه", "شنبه",
}

// MonthName returns the Persian name of d's month, or "" for an invalid month.
func (d Date) MonthName() string {
	if d.month < 1 || d.month > 12 {
		return ""
	}
	return monthNames[d.month-1]
}

// DayOfWeekName returns the Persian name of the weekday d falls on.
func (d Date) DayOfWeekName() string {
	return dayNames[d.Weekday()]
}
