// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/kzip-archive/kzip/cmd/kzip/cli"
	"github.com/kzip-archive/kzip/lib/kzip"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			fmt.Printf("kzip version %s\n", kzip.FormatVersion)
			return nil
		},
	}
}
