// Package config loads application configuration from environment
// variables, an optional config.yaml and an optional .env file.
//
// Environment variables use the SCRY_ prefix with underscores separating
// nested keys, for example SCRY_SERVER_PORT or SCRY_STORAGE_DRIVER. They take
// precedence over values in config.yaml. A .env file in the same directory
// is loaded into the environment first and never overrides variables that
// are already set.
package config
