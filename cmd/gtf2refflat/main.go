// Package main provides the gtf2refflat command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("gtf2refflat version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "convert":
		return runConvert(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `gtf2refflat - GTF to RefFlat converter

Usage:
  gtf2refflat [options] <command> [arguments]

Commands:
  convert     Convert a GTF annotation file to a RefFlat file
  config      Manage gtf2refflat configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Convert a GTF file (writes example.refflat alongside the input)
  gtf2refflat convert example.gtf

  # Convert a gzipped GTF file to a chosen output path
  gtf2refflat convert -o out.refflat gencode.v44.annotation.gtf.gz

  # Additionally load the rows into a DuckDB database
  gtf2refflat convert --duckdb refflat.duckdb example.gtf

For more information on a command, use:
  gtf2refflat <command> --help
`)
}
