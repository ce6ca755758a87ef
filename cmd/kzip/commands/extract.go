// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kzip-archive/kzip/cmd/kzip/cli"
	"github.com/kzip-archive/kzip/lib/kzip"
)

type extractParams struct {
	output  string
	verbose bool
}

func extractCommand() *cli.Command {
	var params extractParams

	return &cli.Command{
		Name:    "extract",
		Summary: "Extract an archive into a directory",
		Usage:   "kzip extract <archive> [flags]",
		Description: `Extract every entry of a kzip archive into the output directory.

Stored paths are sanitized before use: separators are converted to the
host form and any parent-directory segments are stripped, so a crafted
archive cannot write outside the output directory.

The output directory defaults to the archive path with its ".kzip"
suffix removed, and is created if missing.`,
		Examples: []cli.Example{
			{
				Description: "Extract next to the archive",
				Command:     "kzip extract photos.kzip",
			},
			{
				Description: "Extract into an explicit directory",
				Command:     "kzip extract photos.kzip -o restored/",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("extract", pflag.ContinueOnError)
			flagSet.StringVarP(&params.output, "output", "o", "", "output directory (default: archive name without suffix)")
			flagSet.BoolVarP(&params.verbose, "verbose", "v", false, "log per-entry progress")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("extract requires exactly one archive path")
			}
			return runExtract(args[0], &params)
		},
	}
}

func runExtract(archive string, params *extractParams) error {
	logger := cli.NewLogger(params.verbose)

	output := params.output
	if output == "" {
		output = strings.TrimSuffix(archive, kzip.ArchiveSuffix)
		if output == archive {
			output = archive + ".extracted"
		}
	}

	file, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", archive, err)
	}
	defer file.Close()

	reader, err := kzip.NewReader(file, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", archive, err)
	}

	summary, err := reader.Extract(output)
	if err != nil {
		return fmt.Errorf("%s: %w", archive, err)
	}

	fmt.Printf("%s: extracted %d entries (%d unique, %d duplicate, %s) into %s\n",
		archive, summary.EntryCount, summary.UniqueCount, summary.DuplicateCount,
		formatSize(summary.RawBytes), output)
	return nil
}
