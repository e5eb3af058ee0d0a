package calendar

import "errors"

// ErrInvalidDate is returned by boundaries that reject a Solar Hijri
// (year, month, day) triple failing IsValidDate.
var ErrInvalidDate = errors.New("invalid solar hijri date")
