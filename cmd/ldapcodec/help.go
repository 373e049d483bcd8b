package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage information to the given writer.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `ldapcodec - streaming LDAP message decoder

Usage:
  ldapcodec <command> [options]

Commands:
  decode      Decode LDAP messages from a capture
  filter      Parse a search filter and show its encoding
  config      Configuration management
  version     Show version information

Use "ldapcodec <command> -h" for more information about a command.
`)
}

// printDecodeUsage prints the decode command usage.
func printDecodeUsage(w io.Writer) {
	fmt.Fprint(w, `Decode LDAP messages from a capture

Usage:
  ldapcodec decode [options] [file]

Reads raw BER from file, or from stdin when file is omitted or "-",
and prints one JSON object per decoded message.

Options:
  -hex
        Input is hex text; whitespace is ignored
  -chunk int
        Feed the decoder this many bytes at a time (0 feeds all at once)
  -config string
        Path to configuration file
  -h, -help
        Show this help message
`)
}

// printFilterUsage prints the filter command usage.
func printFilterUsage(w io.Writer) {
	fmt.Fprint(w, `Parse a search filter and show its encoding

Usage:
  ldapcodec filter [options] <filter>

Prints the canonical RFC 4515 form and the BER encoding as hex.

Options:
  -h, -help
        Show this help message
`)
}

// printConfigUsage prints the config command usage.
func printConfigUsage(w io.Writer) {
	fmt.Fprint(w, `Configuration management

Usage:
  ldapcodec config <subcommand> [options]

Subcommands:
  validate    Validate configuration file
  init        Generate default configuration
  show        Show effective configuration

Use "ldapcodec config <subcommand> -h" for more information.
`)
}

// printVersionUsage prints the version command usage.
func printVersionUsage(w io.Writer) {
	fmt.Fprint(w, `Show version information

Usage:
  ldapcodec version [options]

Options:
  -short
        Show only version number
  -h, -help
        Show this help message
`)
}
