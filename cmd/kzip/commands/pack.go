// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kzip-archive/kzip/cmd/kzip/cli"
	"github.com/kzip-archive/kzip/lib/kzip"
)

type packParams struct {
	output  string
	verbose bool
}

func packCommand() *cli.Command {
	var params packParams

	return &cli.Command{
		Name:    "pack",
		Summary: "Pack a file or directory into an archive",
		Usage:   "kzip pack <input> [flags]",
		Description: `Pack a file or directory tree into a single kzip archive.

Every regular file under the input becomes one archive entry. Entry
content is compressed, and files whose bytes are identical to an
earlier entry are stored as a reference instead of a second copy.

The output path defaults to the input name with a ".kzip" suffix. If
the output file already exists, a numbered name (input-1.kzip,
input-2.kzip, ...) is chosen instead of overwriting.`,
		Examples: []cli.Example{
			{
				Description: "Pack a directory",
				Command:     "kzip pack photos/",
			},
			{
				Description: "Pack to an explicit output path",
				Command:     "kzip pack photos/ -o backup.kzip",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("pack", pflag.ContinueOnError)
			flagSet.StringVarP(&params.output, "output", "o", "", "output archive path (default: <input>.kzip)")
			flagSet.BoolVarP(&params.verbose, "verbose", "v", false, "log per-entry progress")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("pack requires exactly one input path")
			}
			return runPack(args[0], &params)
		},
	}
}

func runPack(input string, params *packParams) error {
	logger := cli.NewLogger(params.verbose)

	output := params.output
	if output == "" {
		output = filepath.Base(filepath.Clean(input))
	}
	if !strings.HasSuffix(output, kzip.ArchiveSuffix) {
		output += kzip.ArchiveSuffix
	}
	output = kzip.CollisionFreePath(output)

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", output, err)
	}

	buffered := bufio.NewWriter(file)
	writer := kzip.NewWriter(buffered, logger)

	summary, err := writer.Archive(input)
	if err != nil {
		file.Close()
		os.Remove(output)
		return err
	}

	if err := buffered.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("flushing archive %s: %w", output, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing archive %s: %w", output, err)
	}

	fmt.Printf("%s: %d entries (%d unique, %d duplicate), %s packed from %s\n",
		output, summary.EntryCount, summary.UniqueCount, summary.DuplicateCount,
		formatSize(summary.StoredBytes), formatSize(summary.RawBytes))
	return nil
}
