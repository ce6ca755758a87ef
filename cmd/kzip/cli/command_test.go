// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "kzip",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "pack",
				Run: func(args []string) error {
					called = "pack"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"pack"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "pack" {
		t.Errorf("dispatched to %q, want %q", called, "pack")
	}
}

func TestCommand_Execute_PassesRemainingArgs(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "kzip",
		Subcommands: []*Command{
			{
				Name: "pack",
				Run: func(args []string) error {
					receivedArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"pack", "somedir"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "somedir" {
		t.Errorf("args = %v, want [somedir]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var output string
	var target string

	command := &Command{
		Name: "pack",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("pack", pflag.ContinueOnError)
			flagSet.StringVarP(&output, "output", "o", "", "output archive path")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--output", "out.kzip", "somedir"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if output != "out.kzip" {
		t.Errorf("output = %q, want %q", output, "out.kzip")
	}
	if target != "somedir" {
		t.Errorf("target = %q, want %q", target, "somedir")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.Bool("verbose", false, "per-entry detail")
			flagSet.String("output", "", "output path")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--verbsoe"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --verbose") {
		t.Errorf("error = %q, want suggestion for '--verbose'", errStr)
	}
	// Suggestion should be on the same line as the error, not buried.
	if !strings.Contains(errStr, "verbsoe") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	// Should include a pointer to --help.
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.Bool("verbose", false, "per-entry detail")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "kzip",
		Subcommands: []*Command{
			{Name: "pack"},
			{Name: "extract"},
			{Name: "version"},
		},
	}

	err := root.Execute([]string{"extrct"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"extract\"") {
		t.Errorf("error = %q, want suggestion for 'extract'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "kzip",
		Subcommands: []*Command{
			{Name: "pack"},
			{Name: "extract"},
		},
	}

	err := root.Execute([]string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:    "kzip",
				Summary: "Deduplicating single-file archiver",
				Subcommands: []*Command{
					{Name: "pack", Summary: "Pack a tree into an archive"},
				},
			}

			err := root.Execute([]string{helpArg})
			if err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "kzip",
		Subcommands: []*Command{
			{Name: "pack", Summary: "Pack a tree into an archive"},
		},
	}

	err := root.Execute([]string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "kzip",
		Description: "Deduplicating single-file archiver.",
		Subcommands: []*Command{
			{Name: "pack", Summary: "Pack a file or directory into an archive"},
			{Name: "extract", Summary: "Extract an archive into a directory"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Pack a directory",
				Command:     "kzip pack photos/",
			},
			{
				Description: "Extract into a named directory",
				Command:     "kzip extract photos.kzip -o restored",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	// Verify structural elements are present.
	for _, want := range []string{
		"Deduplicating single-file archiver.",
		"Usage:",
		"kzip <command> [flags]",
		"Commands:",
		"pack",
		"Pack a file or directory into an archive",
		"extract",
		"Extract an archive into a directory",
		"Examples:",
		"kzip pack photos/",
		"kzip extract photos.kzip",
		"Run 'kzip <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "list",
		Summary: "List archive contents",
		Usage:   "kzip list <archive> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.Bool("verbose", false, "per-entry timestamps and sizes")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"kzip list <archive> [flags]",
		"Flags:",
		"verbose",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "kzip"}
	pack := &Command{Name: "pack", parent: root}

	if got := root.fullName(); got != "kzip" {
		t.Errorf("root.fullName() = %q, want %q", got, "kzip")
	}
	if got := pack.fullName(); got != "kzip pack" {
		t.Errorf("pack.fullName() = %q, want %q", got, "kzip pack")
	}
}
