// Package main implements the scry-planner binary: an HTTP server for the
// Solar Hijri study planner plus maintenance commands for migrations and
// backups.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
