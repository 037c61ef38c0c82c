package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/gtf2refflat/internal/duckdb"
	"github.com/inodb/gtf2refflat/internal/refflat"
)

func runConvert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)

	var (
		outputPath string
		duckdbPath string
		verbose    bool
	)

	fs.StringVar(&outputPath, "o", "", "Output RefFlat file (default: alongside the input)")
	fs.StringVar(&outputPath, "output", "", "Output RefFlat file (default: alongside the input)")
	fs.StringVar(&duckdbPath, "duckdb", viper.GetString("duckdb.path"), "Also load rows into a DuckDB database at this path")
	fs.BoolVar(&verbose, "verbose", viper.GetBool("log.verbose"), "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Convert a GTF annotation file to a RefFlat file.

The normalized intermediate (.gff3) and the RefFlat output (.refflat) are
written alongside the input. Gzipped input is supported.

Usage:
  gtf2refflat convert [options] <annotation.gtf>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  gtf2refflat convert example.gtf
  gtf2refflat convert -o out.refflat gencode.v44.annotation.gtf.gz
  gtf2refflat convert --duckdb refflat.duckdb example.gtf
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: GTF file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	gtfPath := fs.Arg(0)

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	var extra []refflat.RowWriter
	if duckdbPath != "" {
		store, err := duckdb.Open(duckdbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s (%v)\n", refflat.FailureMessage, err)
			return ExitError
		}
		defer store.Close()
		extra = append(extra, store)
	}

	converter := refflat.NewConverter()
	converter.SetLogger(logger)

	refflatPath, err := converter.Convert(gtfPath, outputPath, extra...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s (%v)\n", refflat.FailureMessage, err)
		return ExitError
	}

	fmt.Fprintf(os.Stderr, "Wrote %s\n", refflatPath)
	if duckdbPath != "" {
		fmt.Fprintf(os.Stderr, "Loaded rows into %s\n", duckdbPath)
	}

	return ExitSuccess
}

// newLogger builds the stderr logger for the convert pipeline.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
