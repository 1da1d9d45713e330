package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"nilan/compiler"
	"nilan/lexer"
	"nilan/object"
	"nilan/parser"
	"nilan/vm"
)

// evalCmd implements the `-e`/`--expr` form: compile and run a single
// expression through the vm, printing its value. This is the only
// subcommand that prints a result unasked, since reporting the value is
// the entire point of "run an expression" as opposed to "run a program".
type evalCmd struct{}

func (*evalCmd) Name() string     { return "eval" }
func (*evalCmd) Synopsis() string { return "Compile and run a single Nilan expression, printing its value" }
func (*evalCmd) Usage() string {
	return `eval <expr>:
  Compile and run an expression (the -e/--expr form), printing its value.
`
}
func (e *evalCmd) SetFlags(f *flag.FlagSet) {}

func (e *evalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 Expression not provided\n")
		return subcommands.ExitUsageError
	}
	source := args[0]

	lex := lexer.New(source)
	tokens, err := lex.Scan()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}
	p := parser.Make(tokens)
	expr, err := p.ParseExpression()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}

	astCompiler := compiler.NewASTCompiler()
	bytecode, err := astCompiler.CompileExpression(expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}

	machine := vm.New(bytecode)
	value, err := machine.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}
	fmt.Println(object.ToStr(value))
	return subcommands.ExitSuccess
}
