package main

import (
	"encoding/hex"
	"flag"
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/filter"
	"github.com/KilimcininKorOglu/ldapcodec/internal/ldap"
)

// filterCmd handles the filter command.
func filterCmd(args []string) int {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	fs.SetOutput(stderr)

	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printFilterUsage(stdout)
		return 0
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: exactly one filter argument is required")
		return 1
	}

	f, err := filter.Parse(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Invalid filter: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "filter:  %s\n", f.String())
	fmt.Fprintf(stdout, "encoded: %s\n", hex.EncodeToString(ldap.EncodeFilter(f)))
	return 0
}
