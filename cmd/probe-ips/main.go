// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the probe-ips CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdiddy/probe-ips/internal/pipeline"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := newRootCmd(pipeline.Deps{Stdout: os.Stdout, Diag: os.Stderr})
	if err := cmd.Execute(); err != nil {
		// Pipeline outcomes are already on the log stream.
		if !errors.Is(err, pipeline.ErrFetch) && !errors.Is(err, pipeline.ErrNoData) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
