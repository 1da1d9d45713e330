package compiler

import (
	"fmt"
	"os"
	"strings"

	"nilan/ast"
)

// CompileAST is the CLI-facing entrypoint the emit/run subcommands call;
// it is just Compile under a name that reads naturally at a call site that
// already has a parsed AST in hand.
func (ac *ASTCompiler) CompileAST(statements []ast.Stmt) (Bytecode, error) {
	return ac.Compile(statements)
}

// CompileExpression compiles a single standalone expression, the `eval`
// subcommand's entrypoint. Unlike a statement-bodied program this leaves
// the expression's value on top of the stack instead of popping it, so
// vm.Run's final Peek reports the value rather than object.None.
func (ac *ASTCompiler) CompileExpression(expr ast.Expression) (Bytecode, error) {
	expr.Accept(ac)
	ac.bytecode.NumLocals = len(ac.locals)
	ac.bytecode.NumGlobals = len(ac.globals.names)
	if len(ac.errors) > 0 {
		return ac.bytecode, ac.errors[0]
	}
	return ac.bytecode, nil
}


// DiassembleBytecode renders the compiled program one instruction per
// line. When toFile is true the listing is also written to fileName+".nis".
func (ac *ASTCompiler) DiassembleBytecode(toFile bool, fileName string) (string, error) {
	var b strings.Builder
	ins := ac.bytecode.Instructions
	for offset := 0; offset < len(ins); {
		op := Opcode(ins[offset])
		def, err := Get(op)
		if err != nil {
			return "", err
		}
		operands, read := ReadOperands(def, ins[offset+1:])
		width := 1 + read

		switch len(operands) {
		case 0:
			fmt.Fprintf(&b, "opcode: %s, operand: None, operand widths: 0 bytes\n", def.Name)
		default:
			line := fmt.Sprintf("opcode: %s, operand: %d, operand widths: %d bytes", def.Name, operands[0], read)
			if op == OP_CONSTANT && operands[0] < len(ac.bytecode.ConstantsPool) {
				line += fmt.Sprintf(", value: %v", ac.bytecode.ConstantsPool[operands[0]])
			}
			b.WriteString(line + "\n")
		}
		offset += width
	}

	out := b.String()
	if toFile {
		if err := os.WriteFile(fileName+".nis", []byte(out), 0644); err != nil {
			return out, err
		}
	}
	return out, nil
}

// DumpBytecode writes the raw instruction stream to fileName+".nic", the
// on-disk counterpart of what Compile produces in memory.
func (ac *ASTCompiler) DumpBytecode(fileName string) error {
	return os.WriteFile(fileName+".nic", ac.bytecode.Instructions, 0644)
}
