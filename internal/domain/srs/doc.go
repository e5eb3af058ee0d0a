// Package srs implements the fixed-interval spaced repetition schedule of
// the planner and the tracking operations over review events.
//
// All functions in this package are pure: they never read the clock, never
// mutate their arguments and never fail on input inside their documented
// domain. Interval validation happens when settings are saved, so
// GenerateReviewSchedule trusts the intervals it is given. Service wraps the
// pure functions with the boundary checks the planner needs.
package srs
