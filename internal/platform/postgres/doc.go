// Package postgres provides the PostgreSQL implementation of the planner
// stores defined in the internal/store package, together with the embedded
// goose migrations that create its schema.
//
// Tasks are kept one row per task with their reviews in a JSONB column.
// Solar Hijri anchor dates are stored in their YYYY/MM/DD text form because
// they have no native PostgreSQL type. SaveTasks replaces the whole
// collection inside one transaction and records the order in a position
// column.
package postgres
