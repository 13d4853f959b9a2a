// Command tab is the headless CLI for tabula.
//
// Usage:
//
//	tab                     Show help
//	tab dump                Fetch, filter, sort and page a category; print the page
//	tab events              JSONL event log viewer
//	tab location            Stored location and its history
package main

import (
	"fmt"
	"os"
)

const usage = `tab - tabula headless CLI

Usage:
  tab <command> [flags]

Commands:
  dump        Run the table pipeline and print the visible page
  events      JSONL event log viewer
  location    Show the stored filter location and its history

Environment:
  TABULA_HOME       Data directory (default: ~/.tabula)
  TABULA_BASE_URL   Record source (default: https://dummyjson.com)
  TABULA_TIMEOUT    HTTP timeout, seconds or Go duration
  TABULA_LIMIT      ?limit= sent to the source
  TABULA_CATEGORY   Default category: users or products

Run 'tab <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "dump":
		err = runDump(args, os.Stdout)
	case "events":
		err = runEvents(args, os.Stdout)
	case "location":
		err = runLocation(args, os.Stdout)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "tab: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tab %s: %v\n", cmd, err)
		os.Exit(1)
	}
}
