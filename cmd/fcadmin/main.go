// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"os"

	"github.com/traamakrishna3012/financeclinics/internal/cli"
)

// Version information - injected at build time via ldflags
var appVersion = "dev"

func main() {
	if err := cli.Execute(appVersion); err != nil {
		os.Exit(1)
	}
}
