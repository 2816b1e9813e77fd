// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes. "No path found" is an expected planning outcome, so it
// gets its own code instead of the generic failure code.
const (
	exitOK     = 0
	exitError  = 1
	exitNoPath = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errNoPathFound) {
			os.Exit(exitNoPath)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitError)
	}
	os.Exit(exitOK)
}
