// Package store defines the persistence contract of the planner. The core
// only needs to read the whole task collection and replace it, plus read and
// replace the settings. There are no partial updates and no locking: two
// callers racing a read-modify-write cycle resolve as last write wins.
package store
