// Command hap-log is a tool for viewing and analyzing accessory log files.
//
// Log files are created by attaching a log.FileLogger to an accessory or
// bridge via log.NewAccessoryObserver.
//
// Usage:
//
//	hap-log <command> [flags] <file.hlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	hap-log view bridge.hlog
//
//	# View only characteristic changes
//	hap-log view --category change bridge.hlog
//
//	# Export to JSONL
//	hap-log export --format jsonl bridge.hlog
//
//	# Filter by accessory and save to new file
//	hap-log filter --accessory "Living Room Lamp" -o filtered.hlog bridge.hlog
//
//	# Show statistics
//	hap-log stats bridge.hlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hap-protocol/hap-go/cmd/hap-log/commands"
)

const usage = `hap-log - Accessory Log Analyzer

Usage:
  hap-log <command> [flags] <file.hlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "hap-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `hap-log view - View log file in human-readable format

Usage:
  hap-log view [flags] <file.hlog>

Flags:
`)
		fs.PrintDefaults()
	}

	category := fs.String("category", "", "Filter by category (change, config, identify, error)")
	accessory := fs.String("accessory", "", "Filter by accessory name")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	var filter commands.ViewFilter

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Category = &c
	}
	filter.Accessory = *accessory

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `hap-log export - Export log file to JSON or CSV format

Usage:
  hap-log export [flags] <file.hlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `hap-log filter - Filter log file and write to new file

Usage:
  hap-log filter [flags] <file.hlog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	connID := fs.String("conn-id", "", "Filter by connection ID")
	accessory := fs.String("accessory", "", "Filter by accessory name")
	accessoryUUID := fs.String("accessory-uuid", "", "Filter by accessory UUID")
	aid := fs.Uint64("aid", 0, "Filter by accessory ID (0 matches none)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	category := fs.String("category", "", "Filter by category (change, config, identify, error)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	opts := commands.FilterOptions{
		Output:        *output,
		ConnID:        *connID,
		Accessory:     *accessory,
		AccessoryUUID: *accessoryUUID,
		TimeStart:     *timeStart,
		TimeEnd:       *timeEnd,
		Category:      *category,
	}
	if *aid != 0 {
		opts.AID = aid
	}

	if err := commands.RunFilter(path, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `hap-log stats - Show statistics about the log file

Usage:
  hap-log stats <file.hlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
