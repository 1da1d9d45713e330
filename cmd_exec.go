package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"nilan/compiler"
	"nilan/lexer"
	"nilan/parser"
	"nilan/vm"
)

// execCmd implements the `-c`/`--code` form: compile and run a source
// snippet of arbitrary statements through the vm, the same pipeline
// runCompiledCmd uses for a file except the source comes from argv
// instead of disk.
type execCmd struct{}

func (*execCmd) Name() string     { return "exec" }
func (*execCmd) Synopsis() string { return "Compile and run a Nilan source snippet" }
func (*execCmd) Usage() string {
	return `exec <code>:
  Compile and run a source snippet (the -c/--code form).
`
}
func (e *execCmd) SetFlags(f *flag.FlagSet) {}

func (e *execCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 Code not provided\n")
		return subcommands.ExitUsageError
	}
	source := args[0]

	astCompiler := compiler.NewASTCompiler()
	lex := lexer.New(source)
	tokens, err := lex.Scan()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}
	p := parser.Make(tokens)
	ast, errors := p.Parse()
	if len(errors) > 0 {
		for _, e := range errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return subcommands.ExitFailure
	}
	bytecode, err := astCompiler.CompileAST(ast)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}

	machine := vm.New(bytecode)
	if _, err := machine.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
