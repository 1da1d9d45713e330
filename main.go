package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&replCompiledCmd{}, "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&runCompiledCmd{}, "")
	subcommands.Register(&emitBytecodeCmd{}, "")
	subcommands.Register(&evalCmd{}, "")
	subcommands.Register(&execCmd{}, "")

	os.Args = rewriteExprCodeFlags(os.Args)
	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

// rewriteExprCodeFlags translates spec §6's root-level `-e`/`--expr <expr>`
// and `-c`/`--code <code>` forms into the `eval`/`exec` subcommand they are
// shorthand for, since subcommands dispatches on the first positional
// argument rather than on flags the way a single-entry binary's `-e`/`-c`
// are described.
func rewriteExprCodeFlags(args []string) []string {
	if len(args) < 3 {
		return args
	}
	switch args[1] {
	case "-e", "--expr":
		return append([]string{args[0], "eval", args[2]}, args[3:]...)
	case "-c", "--code":
		return append([]string{args[0], "exec", args[2]}, args[3:]...)
	default:
		return args
	}
}
