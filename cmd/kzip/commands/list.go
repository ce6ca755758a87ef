// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kzip-archive/kzip/cmd/kzip/cli"
	"github.com/kzip-archive/kzip/lib/kzip"
)

type listParams struct {
	verbose bool
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List archive contents and totals",
		Usage:   "kzip list <archive> [flags]",
		Description: `Print every entry in a kzip archive, followed by totals: entry
count, packed and unpacked byte totals, and the compression ratio.

Duplicate entries are annotated; they contribute no bytes to the
totals. With --verbose, each unique entry also shows its recorded
timestamps and packed/unpacked sizes.`,
		Examples: []cli.Example{
			{
				Description: "List entries and totals",
				Command:     "kzip list photos.kzip",
			},
			{
				Description: "Include per-entry timestamps and sizes",
				Command:     "kzip list photos.kzip --verbose",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.BoolVarP(&params.verbose, "verbose", "v", false, "per-entry timestamps and sizes")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("list requires exactly one archive path")
			}
			return runList(args[0], &params)
		},
	}
}

func runList(archive string, params *listParams) error {
	logger := cli.NewLogger(params.verbose)

	file, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", archive, err)
	}
	defer file.Close()

	reader, err := kzip.NewReader(file, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", archive, err)
	}

	listing, err := reader.List()
	if err != nil {
		return fmt.Errorf("%s: %w", archive, err)
	}

	for _, entry := range listing.Entries {
		if entry.Duplicate {
			fmt.Printf("%s (duplicate of entry %d)\n", entry.Path, entry.ReferenceIndex)
			continue
		}
		fmt.Println(entry.Path)
		if params.verbose {
			fmt.Printf("  created: %s, modified: %s\n",
				formatDate(entry.CreatedAt), formatDate(entry.ModifiedAt))
			fmt.Printf("  packed: %s, unpacked: %s\n",
				formatSize(entry.StoredSize), formatSize(entry.RawSize))
		}
	}

	if params.verbose {
		fmt.Printf("Archive format version: %s\n", listing.Version)
	}
	fmt.Printf("Total entries: %d\n", listing.EntryCount)
	fmt.Printf("Total packed size: %s\n", formatSize(listing.PackedBytes))
	fmt.Printf("Total unpacked size: %s\n", formatSize(listing.UnpackedBytes))
	if ratio, ok := listing.Ratio(); ok {
		fmt.Printf("Compression ratio: %.2f\n", ratio)
	} else {
		fmt.Println("Compression ratio: n/a (no packed bytes)")
	}
	return nil
}

// formatDate renders a wire timestamp (Unix-epoch seconds) as a UTC
// calendar date for display.
func formatDate(epochSeconds uint64) string {
	return time.Unix(int64(epochSeconds), 0).UTC().Format(time.DateOnly)
}
