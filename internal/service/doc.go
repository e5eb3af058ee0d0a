// Package service contains the application use cases of the study planner.
// It orchestrates the domain packages and the store interfaces (defined in
// internal/store) to fulfill the features exposed by the API and the CLI.
//
// Every mutating use case reads the full task snapshot from the store,
// derives a new snapshot and writes the whole collection back. There is no
// locking: two concurrent writers resolve as last write wins.
package service
