// Package calendar converts between the proleptic Gregorian calendar and the
// Solar Hijri calendar and provides Date, an immutable Solar Hijri date value.
//
// The conversion is an arithmetic approximation. Days are counted from the
// new year 1403/01/01 (2024-03-20), and every Solar Hijri year length comes
// from the IsLeapYear break table, so dates far from the anchor can drift
// from the observed calendar. It is defined for Gregorian years after 1600
// only.
// Converters do not validate their inputs: IsValidDate is the single checked
// entry point and must guard every boundary that accepts external input.
package calendar
