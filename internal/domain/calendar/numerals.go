package calendar

import "strings"

var (
	persianDigitReplacer = strings.NewReplacer(
		"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
		"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
	)

	// Arabic-Indic digits (U+0660..U+0669) are folded too since keyboards
	// emit them for the same keys.
	asciiDigitReplacer = strings.NewReplacer(
		"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
		"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
		"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
		"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	)
)

// ToPersianNumerals replaces every ASCII digit in text with the matching
// Persian digit glyph. Other characters are left untouched.
func ToPersianNumerals(text string) string {
	return persianDigitReplacer.Replace(text)
}

// ToASCIINumerals replaces Persian and Arabic-Indic digit glyphs in text with
// ASCII digits.
func ToASCIINumerals(text string) string {
	return asciiDigitReplacer.Replace(text)
}
