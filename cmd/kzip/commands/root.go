// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands implements the kzip subcommands: pack, extract,
// list, and version. Each command is a thin shell over lib/kzip: it
// resolves paths and flags, opens the files, and formats output; all
// archive semantics live in the library.
package commands

import (
	"fmt"

	"github.com/kzip-archive/kzip/cmd/kzip/cli"
)

// Root returns the top-level kzip command with all subcommands.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "kzip",
		Summary: "Deduplicating single-file archiver",
		Description: `kzip packs a file or directory tree into a single archive,
compressing each entry and storing repeated content only once.`,
		Subcommands: []*cli.Command{
			packCommand(),
			extractCommand(),
			listCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Pack a directory into photos.kzip",
				Command:     "kzip pack photos/",
			},
			{
				Description: "Extract an archive into a directory",
				Command:     "kzip extract photos.kzip -o restored/",
			},
			{
				Description: "List archive contents with sizes",
				Command:     "kzip list photos.kzip --verbose",
			},
		},
	}
}

// formatSize returns a human-readable byte size for display. Wire
// sizes stay exact; this is presentation only.
func formatSize(bytes uint64) string {
	switch {
	case bytes >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(1<<30))
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
