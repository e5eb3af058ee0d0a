// Package domain contains the core entities of the study planner: study
// tasks, their review events and the review interval settings. Entities are
// value snapshots; operations that change them return new values and the
// canonical copy is owned by the store.
package domain
