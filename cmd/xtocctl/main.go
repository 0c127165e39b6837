// Command xtocctl drives the XTOC packet engine from the shell: encode a
// report into carrier-sized lines, decode or ingest received lines, and
// manage team key bundles.
package main

import (
	"fmt"
	"os"

	"github.com/xtoc-dev/xtoc/internal/logging"
)

const usage = `usage: xtocctl <command> [flags]

commands:
  encode    build wrapper lines for one report
  decode    decode pasted wrapper lines from stdin
  ingest    accumulate received lines in the chunk store
  profiles  list transport profiles and their budgets
  keygen    mint a team key bundle token
  roster    validate and list a roster file

run 'xtocctl <command> -h' for command flags`

func main() {
	logging.ConfigureRuntime()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	case "ingest":
		err = runIngest(os.Args[2:])
	case "profiles":
		err = runProfiles(os.Args[2:])
	case "keygen":
		err = runKeygen(os.Args[2:])
	case "roster":
		err = runRoster(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Println(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "xtocctl: unknown command %q\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "xtocctl: %v\n", err)
		os.Exit(1)
	}
}
