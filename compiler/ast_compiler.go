package compiler

// This file implements the ASTCompiler, which compiles the abstract
// syntax tree directly to bytecode instead of going through a second
// token stream the way the original Pratt-parser-driven Compiler did.

import (
	"fmt"

	"nilan/ast"
	"nilan/object"
	"nilan/token"
)

// Local represents a local variable in the compiler.
type Local struct {
	name        string
	depth       uint16
	initialized bool
	slot        int
}

// globalTable is the single, program-wide name-to-slot table every
// ASTCompiler instance in a compilation (including one per nested function
// literal) shares, since Nilan has exactly one global namespace.
type globalTable struct {
	indices map[string]int
	names   []string
}

// newGlobalTable seeds the table with object.BuiltinNames first, so every
// compilation reserves the same low slot indices for them regardless of
// what the script itself declares.
func newGlobalTable() *globalTable {
	g := &globalTable{indices: map[string]int{}}
	for _, name := range object.BuiltinNames {
		g.define(name)
	}
	return g
}

func (g *globalTable) indexOf(name string) (int, bool) {
	idx, ok := g.indices[name]
	return idx, ok
}

func (g *globalTable) define(name string) int {
	if idx, ok := g.indices[name]; ok {
		return idx
	}
	idx := len(g.names)
	g.indices[name] = idx
	g.names = append(g.names, name)
	return idx
}

// ASTCompiler is a visitor that compiles AST nodes directly to bytecode.
// It implements both ast.ExpressionVisitor and ast.StmtVisitor to traverse
// and compile the tree in a single pass.
type ASTCompiler struct {
	bytecode Bytecode

	globals *globalTable

	locals     []Local
	scopeDepth uint16

	// loopStarts/loopBreakJumps track the nesting of while/for loops so
	// break and continue can patch the right jump targets.
	loopStarts     []int
	loopBreakJumps [][]int

	enclosing *ASTCompiler
	errors    []error
}

// NewASTCompiler creates a new top-level AST-to-bytecode compiler.
func NewASTCompiler() *ASTCompiler {
	return &ASTCompiler{
		bytecode: Bytecode{Instructions: Instructions{}, ConstantsPool: []any{}},
		globals:  newGlobalTable(),
	}
}

func newChildCompiler(parent *ASTCompiler) *ASTCompiler {
	return &ASTCompiler{
		bytecode:  Bytecode{Instructions: Instructions{}, ConstantsPool: []any{}},
		globals:   parent.globals,
		enclosing: parent,
	}
}

// Compile compiles a full program (a slice of top-level statements) into
// Bytecode.
func (ac *ASTCompiler) Compile(statements []ast.Stmt) (Bytecode, error) {
	for _, stmt := range statements {
		stmt.Accept(ac)
	}
	ac.bytecode.NumGlobals = len(ac.globals.names)
	if len(ac.errors) > 0 {
		return ac.bytecode, ac.errors[0]
	}
	return ac.bytecode, nil
}

func (ac *ASTCompiler) addError(err error) {
	ac.errors = append(ac.errors, SemanticError{Message: err.Error()})
}

// --- emission helpers ----------------------------------------------------

func (ac *ASTCompiler) emit(op Opcode, line int32, col int, operands ...int) int {
	ins := MakeInstruction(op, operands...)
	pos := len(ac.bytecode.Instructions)
	ac.bytecode.Instructions = append(ac.bytecode.Instructions, ins...)
	for range ins {
		ac.bytecode.Meta = append(ac.bytecode.Meta, MetaEntry{Line: line, Column: col})
	}
	return pos
}

func (ac *ASTCompiler) addConstant(v any) int {
	ac.bytecode.ConstantsPool = append(ac.bytecode.ConstantsPool, v)
	return len(ac.bytecode.ConstantsPool) - 1
}

// emitJump emits a jump opcode with a placeholder 2-byte target and
// returns the position of the opcode byte so it can be patched later.
func (ac *ASTCompiler) emitJump(op Opcode, line int32, col int) int {
	return ac.emit(op, line, col, 0xFFFF)
}

func (ac *ASTCompiler) patchJump(pos int) {
	target := len(ac.bytecode.Instructions)
	ins := MakeInstruction(Opcode(ac.bytecode.Instructions[pos]), target)
	copy(ac.bytecode.Instructions[pos:], ins)
}

func (ac *ASTCompiler) patchJumpTo(pos int, target int) {
	ins := MakeInstruction(Opcode(ac.bytecode.Instructions[pos]), target)
	copy(ac.bytecode.Instructions[pos:], ins)
}

// --- scope management ------------------------------------------------

func (ac *ASTCompiler) beginScope() { ac.scopeDepth++ }

func (ac *ASTCompiler) endScope(line int32, col int) {
	ac.scopeDepth--
	for len(ac.locals) > 0 && ac.locals[len(ac.locals)-1].depth > ac.scopeDepth {
		ac.locals = ac.locals[:len(ac.locals)-1]
		ac.emit(OP_POP, line, col)
	}
}

// resolveLocal looks up name among this compiler's own locals only;
// nested function literals do not see an enclosing function's locals
// (there is no upvalue capture), only the shared global table.
func (ac *ASTCompiler) resolveLocal(name string) (int, bool) {
	for i := len(ac.locals) - 1; i >= 0; i-- {
		if ac.locals[i].name == name {
			return ac.locals[i].slot, true
		}
	}
	return 0, false
}

func (ac *ASTCompiler) declareLocal(name string) int {
	slot := len(ac.locals)
	ac.locals = append(ac.locals, Local{name: name, depth: ac.scopeDepth, initialized: true, slot: slot})
	// Track the high-water mark: endScope truncates ac.locals, so reading
	// len(ac.locals) after compilation would miss block-scoped locals.
	if len(ac.locals) > ac.bytecode.NumLocals {
		ac.bytecode.NumLocals = len(ac.locals)
	}
	return slot
}

// --- declarations ------------------------------------------------------

func (ac *ASTCompiler) VisitVarStmt(stmt ast.VarStmt) any {
	var value ast.Expression = stmt.Initializer
	if value != nil {
		value.Accept(ac)
	} else {
		ac.emit(OP_NULL, stmt.Name.Line, stmt.Name.Column)
	}
	ac.defineVariable(stmt.Name)
	return nil
}

func (ac *ASTCompiler) defineVariable(name token.Token) {
	if ac.scopeDepth > 0 {
		ac.declareLocal(name.Lexeme)
		ac.emit(OP_DEFINE_LOCAL, name.Line, name.Column, ac.locals[len(ac.locals)-1].slot)
		return
	}
	idx := ac.globals.define(name.Lexeme)
	ac.emit(OP_DEFINE_GLOBAL, name.Line, name.Column, idx)
}

func (ac *ASTCompiler) VisitFuncDefStmt(stmt ast.FuncDefStmt) any {
	fn := ac.compileFunction(stmt.Function, false)
	idx := ac.addConstant(fn)
	ac.emit(OP_MAKE_FUNCTION, stmt.Function.Name.Line, stmt.Function.Name.Column, idx)
	ac.defineVariable(stmt.Function.Name)
	return nil
}

func (ac *ASTCompiler) compileFunction(fn ast.FuncExpr, isMethod bool) *CompiledFunction {
	child := newChildCompiler(ac)
	child.beginScope()
	if isMethod {
		child.declareLocal("self")
	}
	params := make([]CompiledParam, len(fn.Params))
	for idx, p := range fn.Params {
		child.declareLocal(p.Name.Lexeme)
		cp := CompiledParam{Name: p.Name.Lexeme, Variadic: p.Variadic}
		if p.Default != nil {
			// Default values are restricted to literal expressions, the
			// same simplification the tree-walking interpreter's call
			// binding applies: the default must be known at compile
			// time so the vm can materialize it without re-entering
			// the bytecode dispatch loop while binding arguments.
			if lit, ok := p.Default.(ast.Literal); ok {
				cp.HasDefault = true
				cp.DefaultConstIdx = child.addConstant(lit.Value)
			} else {
				ac.addError(fmt.Errorf("line %d: default value for parameter %q must be a literal", p.Name.Line, p.Name.Lexeme))
			}
		}
		params[idx] = cp
	}
	for _, s := range fn.Body {
		s.Accept(child)
	}
	child.emit(OP_NULL, fn.Name.Line, fn.Name.Column)
	child.emit(OP_RETURN_VALUE, fn.Name.Line, fn.Name.Column)
	child.bytecode.NumLocals = len(child.locals)
	return &CompiledFunction{
		Name:      fn.Name.Lexeme,
		Params:    params,
		Bytecode:  &child.bytecode,
		NumLocals: len(child.locals),
		IsMethod:  isMethod,
	}
}

func (ac *ASTCompiler) VisitTypeDefStmt(stmt ast.TypeDefStmt) any {
	tmpl := &TypeTemplate{Name: stmt.Name.Lexeme, Methods: map[string]*CompiledFunction{}}
	if stmt.Parent != nil {
		tmpl.HasParent = true
		tmpl.ParentName = stmt.Parent.Lexeme
		// The parent type is looked up like any other variable reference
		// and left on the stack for OP_MAKE_TYPE to consume, rather than
		// re-resolved by name at runtime.
		ast.Variable{Name: *stmt.Parent}.Accept(ac)
	}
	for _, m := range stmt.Members {
		if m.Method != nil {
			tmpl.Methods[m.Name.Lexeme] = ac.compileFunction(*m.Method, true)
		}
	}
	idx := ac.addConstant(tmpl)
	ac.emit(OP_MAKE_TYPE, stmt.Name.Line, stmt.Name.Column, idx)
	ac.defineVariable(stmt.Name)
	return nil
}

func (ac *ASTCompiler) VisitEnumDefStmt(stmt ast.EnumDefStmt) any {
	tmpl := &EnumTemplate{Name: stmt.Name.Lexeme}
	for _, m := range stmt.Members {
		member := EnumMemberTemplate{Name: m.Name.Lexeme}
		if m.Value != nil {
			if lit, ok := m.Value.(ast.Literal); ok {
				member.HasValue = true
				member.ValueConstIdx = ac.addConstant(lit.Value)
			}
		}
		tmpl.Members = append(tmpl.Members, member)
	}
	idx := ac.addConstant(tmpl)
	ac.emit(OP_MAKE_ENUM, stmt.Name.Line, stmt.Name.Column, idx)
	ac.defineVariable(stmt.Name)
	return nil
}

func (ac *ASTCompiler) VisitImportStmt(stmt ast.ImportStmt) any {
	path, _ := stmt.Path.Literal.(string)
	idx := ac.addConstant(path)
	ac.emit(OP_IMPORT, stmt.Path.Line, stmt.Path.Column, idx)
	name := path
	if stmt.Alias != nil {
		ac.defineVariable(*stmt.Alias)
	} else {
		ac.defineVariable(token.Token{Lexeme: name, Line: stmt.Path.Line, Column: stmt.Path.Column})
	}
	return nil
}

// --- statements ---------------------------------------------------------

func (ac *ASTCompiler) VisitExpressionStmt(stmt ast.ExpressionStmt) any {
	stmt.Expression.Accept(ac)
	ac.emit(OP_POP, 0, 0)
	return nil
}

func (ac *ASTCompiler) VisitPrintStmt(stmt ast.PrintStmt) any {
	stmt.Expression.Accept(ac)
	ac.emit(OP_PRINT, 0, 0)
	return nil
}

func (ac *ASTCompiler) VisitBlockStmt(stmt ast.BlockStmt) any {
	ac.beginScope()
	for _, s := range stmt.Statements {
		s.Accept(ac)
	}
	ac.endScope(0, 0)
	return nil
}

func (ac *ASTCompiler) VisitIfStmt(stmt ast.IfStmt) any {
	stmt.Condition.Accept(ac)
	elseJump := ac.emitJump(OP_JUMP_NOT_TRUTHY, 0, 0)
	ac.emit(OP_POP, 0, 0)
	stmt.Then.Accept(ac)
	endJump := ac.emitJump(OP_JUMP, 0, 0)
	ac.patchJump(elseJump)
	ac.emit(OP_POP, 0, 0)
	if stmt.Else != nil {
		stmt.Else.Accept(ac)
	}
	ac.patchJump(endJump)
	return nil
}

func (ac *ASTCompiler) VisitWhileStmt(stmt ast.WhileStmt) any {
	loopStart := len(ac.bytecode.Instructions)
	ac.loopStarts = append(ac.loopStarts, loopStart)
	ac.loopBreakJumps = append(ac.loopBreakJumps, nil)

	stmt.Condition.Accept(ac)
	exitJump := ac.emitJump(OP_JUMP_NOT_TRUTHY, 0, 0)
	ac.emit(OP_POP, 0, 0)
	stmt.Body.Accept(ac)
	backJump := ac.emitJump(OP_JUMP, 0, 0)
	ac.patchJumpTo(backJump, loopStart)
	ac.patchJump(exitJump)
	ac.emit(OP_POP, 0, 0)

	ac.patchBreaks()
	return nil
}

func (ac *ASTCompiler) VisitForStmt(stmt ast.ForStmt) any {
	stmt.Iterable.Accept(ac)
	ac.emit(OP_GET_ITER, stmt.Name.Line, stmt.Name.Column)

	loopStart := len(ac.bytecode.Instructions)
	ac.loopStarts = append(ac.loopStarts, loopStart)
	ac.loopBreakJumps = append(ac.loopBreakJumps, nil)

	exitJump := ac.emitJump(OP_FOR_ITER, stmt.Name.Line, stmt.Name.Column)

	ac.beginScope()
	ac.declareLocal(stmt.Name.Lexeme)
	ac.emit(OP_DEFINE_LOCAL, stmt.Name.Line, stmt.Name.Column, ac.locals[len(ac.locals)-1].slot)
	for _, s := range stmt.Body.Statements {
		s.Accept(ac)
	}
	ac.endScope(stmt.Name.Line, stmt.Name.Column)

	backJump := ac.emitJump(OP_JUMP, 0, 0)
	ac.patchJumpTo(backJump, loopStart)
	ac.patchJump(exitJump)
	ac.emit(OP_POP, 0, 0) // drop the exhausted iterator

	ac.patchBreaks()
	return nil
}

func (ac *ASTCompiler) patchBreaks() {
	n := len(ac.loopStarts)
	breaks := ac.loopBreakJumps[n-1]
	for _, pos := range breaks {
		ac.patchJump(pos)
	}
	ac.loopStarts = ac.loopStarts[:n-1]
	ac.loopBreakJumps = ac.loopBreakJumps[:n-1]
}

func (ac *ASTCompiler) VisitBreakStmt(stmt ast.BreakStmt) any {
	if len(ac.loopStarts) == 0 {
		ac.addError(fmt.Errorf("line %d: break outside of loop", stmt.Keyword.Line))
		return nil
	}
	pos := ac.emitJump(OP_JUMP, stmt.Keyword.Line, stmt.Keyword.Column)
	n := len(ac.loopBreakJumps)
	ac.loopBreakJumps[n-1] = append(ac.loopBreakJumps[n-1], pos)
	return nil
}

func (ac *ASTCompiler) VisitContinueStmt(stmt ast.ContinueStmt) any {
	if len(ac.loopStarts) == 0 {
		ac.addError(fmt.Errorf("line %d: continue outside of loop", stmt.Keyword.Line))
		return nil
	}
	target := ac.loopStarts[len(ac.loopStarts)-1]
	pos := ac.emitJump(OP_JUMP, stmt.Keyword.Line, stmt.Keyword.Column)
	ac.patchJumpTo(pos, target)
	return nil
}

func (ac *ASTCompiler) VisitReturnStmt(stmt ast.ReturnStmt) any {
	if stmt.Value != nil {
		stmt.Value.Accept(ac)
	} else {
		ac.emit(OP_NULL, stmt.Keyword.Line, stmt.Keyword.Column)
	}
	ac.emit(OP_RETURN_VALUE, stmt.Keyword.Line, stmt.Keyword.Column)
	return nil
}

func (ac *ASTCompiler) VisitThrowStmt(stmt ast.ThrowStmt) any {
	stmt.Value.Accept(ac)
	ac.emit(OP_THROW, stmt.Keyword.Line, stmt.Keyword.Column)
	return nil
}

func (ac *ASTCompiler) VisitAssertStmt(stmt ast.AssertStmt) any {
	stmt.Condition.Accept(ac)
	okJump := ac.emitJump(OP_JUMP_NOT_TRUTHY, stmt.Keyword.Line, stmt.Keyword.Column)
	ac.emit(OP_POP, 0, 0)
	skip := ac.emitJump(OP_JUMP, 0, 0)
	ac.patchJump(okJump)
	ac.emit(OP_POP, 0, 0)
	if stmt.Message != nil {
		stmt.Message.Accept(ac)
	} else {
		idx := ac.addConstant("assertion failed")
		ac.emit(OP_CONSTANT, stmt.Keyword.Line, stmt.Keyword.Column, idx)
	}
	ac.emit(OP_THROW, stmt.Keyword.Line, stmt.Keyword.Column)
	ac.patchJump(skip)
	return nil
}

func (ac *ASTCompiler) VisitTryStmt(stmt ast.TryStmt) any {
	if stmt.Catch == nil {
		return ac.compileTryFinallyOnly(stmt)
	}

	setupPos := ac.emitJump(OP_SETUP_TRY, 0, 0)
	stmt.Body.Accept(ac)
	ac.emit(OP_POP_TRY, 0, 0)
	endJump := ac.emitJump(OP_JUMP, 0, 0)

	ac.patchJump(setupPos)
	ac.beginScope()

	// A typed catch (`catch e: TypeName { ... }`) tests the pending
	// exception before binding it; a mismatch falls through to a rethrow
	// below instead of running this handler's body.
	var mismatchJump int
	typed := stmt.Catch.Type != nil
	if typed {
		idx := ac.addConstant(stmt.Catch.Type.Lexeme)
		ac.emit(OP_MATCH_EXCEPTION, stmt.Catch.Type.Line, stmt.Catch.Type.Column, idx)
		mismatchJump = ac.emitJump(OP_JUMP_NOT_TRUTHY, 0, 0)
		ac.emit(OP_POP, 0, 0)
	}

	if stmt.Catch.Name.Lexeme != "" {
		ac.declareLocal(stmt.Catch.Name.Lexeme)
		ac.emit(OP_DEFINE_LOCAL, 0, 0, ac.locals[len(ac.locals)-1].slot)
	} else {
		ac.emit(OP_POP, 0, 0)
	}
	stmt.Catch.Body.Accept(ac)
	ac.endScope(0, 0)

	if typed {
		skipRethrow := ac.emitJump(OP_JUMP, 0, 0)
		ac.patchJump(mismatchJump)
		ac.emit(OP_POP, 0, 0)
		ac.emit(OP_THROW, 0, 0)
		ac.patchJump(skipRethrow)
	}
	ac.patchJump(endJump)

	if stmt.Finally != nil {
		stmt.Finally.Accept(ac)
	}
	return nil
}

// compileTryFinallyOnly handles `try { } finally { }` with no catch clause.
// handleException always pushes the pending exception and jumps to the
// handler target, so the handler path here must consume that value (stash
// it in a local rather than leave it on the stack), run finally, and then
// re-raise it so it keeps propagating outward instead of being silently
// dropped. finally is compiled twice, once per path, since there is no
// subroutine-call opcode to share it between the success and exception
// arms.
func (ac *ASTCompiler) compileTryFinallyOnly(stmt ast.TryStmt) any {
	setupPos := ac.emitJump(OP_SETUP_TRY, 0, 0)
	stmt.Body.Accept(ac)
	ac.emit(OP_POP_TRY, 0, 0)
	if stmt.Finally != nil {
		stmt.Finally.Accept(ac)
	}
	successJump := ac.emitJump(OP_JUMP, 0, 0)

	ac.patchJump(setupPos)
	ac.beginScope()
	excSlot := ac.declareLocal("")
	ac.emit(OP_DEFINE_LOCAL, 0, 0, excSlot)
	if stmt.Finally != nil {
		stmt.Finally.Accept(ac)
	}
	ac.emit(OP_GET_LOCAL, 0, 0, excSlot)
	ac.emit(OP_THROW, 0, 0)
	ac.endScope(0, 0)

	ac.patchJump(successJump)
	return nil
}

// --- expressions ---------------------------------------------------------

func (ac *ASTCompiler) VisitLiteral(lit ast.Literal) any {
	switch lit.Value {
	case nil:
		ac.emit(OP_NULL, 0, 0)
		return nil
	}
	if b, ok := lit.Value.(bool); ok {
		if b {
			ac.emit(OP_TRUE, 0, 0)
		} else {
			ac.emit(OP_FALSE, 0, 0)
		}
		return nil
	}
	idx := ac.addConstant(lit.Value)
	ac.emit(OP_CONSTANT, 0, 0, idx)
	return nil
}

func (ac *ASTCompiler) VisitGrouping(g ast.Grouping) any {
	g.Expression.Accept(ac)
	return nil
}

func (ac *ASTCompiler) VisitVariableExpression(v ast.Variable) any {
	if slot, ok := ac.resolveLocal(v.Name.Lexeme); ok {
		ac.emit(OP_GET_LOCAL, v.Name.Line, v.Name.Column, slot)
		return nil
	}
	idx := ac.globals.define(v.Name.Lexeme)
	ac.emit(OP_GET_GLOBAL, v.Name.Line, v.Name.Column, idx)
	return nil
}

func (ac *ASTCompiler) VisitAssignExpression(assign ast.Assign) any {
	switch target := assign.Target.(type) {
	case ast.Variable:
		if assign.Operator.TokenType != token.ASSIGN {
			target.Accept(ac)
			assign.Value.Accept(ac)
			ac.emitBinaryOp(token.BinaryOpForAssign[assign.Operator.TokenType], assign.Operator)
		} else {
			assign.Value.Accept(ac)
		}
		if slot, ok := ac.resolveLocal(target.Name.Lexeme); ok {
			ac.emit(OP_SET_LOCAL, target.Name.Line, target.Name.Column, slot)
		} else {
			idx := ac.globals.define(target.Name.Lexeme)
			ac.emit(OP_SET_GLOBAL, target.Name.Line, target.Name.Column, idx)
		}
	case ast.Attribute:
		target.Object.Accept(ac)
		assign.Value.Accept(ac)
		idx := ac.addConstant(target.Name.Lexeme)
		ac.emit(OP_SET_ATTR, target.Name.Line, target.Name.Column, idx)
	case ast.Element:
		target.Object.Accept(ac)
		target.Index.Accept(ac)
		assign.Value.Accept(ac)
		ac.emit(OP_SET_ITEM, target.Bracket.Line, target.Bracket.Column)
	default:
		ac.addError(fmt.Errorf("line %d: invalid assignment target", assign.Operator.Line))
	}
	return nil
}

func (ac *ASTCompiler) VisitLogicalExpression(logical ast.Logical) any {
	logical.Left.Accept(ac)
	if logical.Operator.TokenType == token.OR {
		jump := ac.emitJump(OP_OR, logical.Operator.Line, logical.Operator.Column)
		ac.emit(OP_POP, 0, 0)
		logical.Right.Accept(ac)
		ac.patchJump(jump)
		return nil
	}
	jump := ac.emitJump(OP_AND, logical.Operator.Line, logical.Operator.Column)
	ac.emit(OP_POP, 0, 0)
	logical.Right.Accept(ac)
	ac.patchJump(jump)
	return nil
}

// VisitRichCompare compiles a chained comparison such as `a < b <= c` by
// first evaluating every operand exactly once into synthetic locals (so a
// side-effecting operand, e.g. a call, never re-runs), then folding the
// pairwise comparisons left to right: the chain stops and leaves `false`
// on the stack at the first failing link, otherwise the final link's
// result becomes the expression's value.
func (ac *ASTCompiler) VisitRichCompare(compare ast.RichCompare) any {
	slots := make([]int, len(compare.Operands))
	for i, operand := range compare.Operands {
		operand.Accept(ac)
		slots[i] = ac.declareLocal(fmt.Sprintf("$cmp%d$%d", ac.scopeDepth, i))
		ac.emit(OP_DEFINE_LOCAL, 0, 0, slots[i])
	}

	var shortCircuits []int
	for idx, op := range compare.Operators {
		ac.emit(OP_GET_LOCAL, op.Line, op.Column, slots[idx])
		ac.emit(OP_GET_LOCAL, op.Line, op.Column, slots[idx+1])
		ac.emitBinaryOp(op.TokenType, op)
		if idx < len(compare.Operators)-1 {
			jump := ac.emitJump(OP_JUMP_NOT_TRUTHY, op.Line, op.Column)
			ac.emit(OP_POP, op.Line, op.Column)
			shortCircuits = append(shortCircuits, jump)
		}
	}
	for _, jump := range shortCircuits {
		ac.patchJump(jump)
	}
	return nil
}

func (ac *ASTCompiler) VisitConditional(cond ast.Conditional) any {
	cond.Condition.Accept(ac)
	elseJump := ac.emitJump(OP_JUMP_NOT_TRUTHY, 0, 0)
	ac.emit(OP_POP, 0, 0)
	cond.Then.Accept(ac)
	endJump := ac.emitJump(OP_JUMP, 0, 0)
	ac.patchJump(elseJump)
	ac.emit(OP_POP, 0, 0)
	cond.Else.Accept(ac)
	ac.patchJump(endJump)
	return nil
}

func (ac *ASTCompiler) VisitAttribute(attr ast.Attribute) any {
	attr.Object.Accept(ac)
	idx := ac.addConstant(attr.Name.Lexeme)
	ac.emit(OP_GET_ATTR, attr.Name.Line, attr.Name.Column, idx)
	return nil
}

func (ac *ASTCompiler) VisitElement(el ast.Element) any {
	el.Object.Accept(ac)
	el.Index.Accept(ac)
	ac.emit(OP_GET_ITEM, el.Bracket.Line, el.Bracket.Column)
	return nil
}

func (ac *ASTCompiler) VisitSlice(sl ast.Slice) any {
	sl.Object.Accept(ac)
	acceptOrNull(ac, sl.Start)
	acceptOrNull(ac, sl.Stop)
	acceptOrNull(ac, sl.Step)
	ac.emit(OP_BUILD_SLICE, sl.Bracket.Line, sl.Bracket.Column)
	return nil
}

func acceptOrNull(ac *ASTCompiler, e ast.Expression) {
	if e == nil {
		ac.emit(OP_NULL, 0, 0)
		return
	}
	e.Accept(ac)
}

func (ac *ASTCompiler) VisitCall(call ast.Call) any {
	call.Callee.Accept(ac)
	for _, a := range call.Arguments {
		a.Accept(ac)
	}
	ac.emit(OP_CALL, call.Paren.Line, call.Paren.Column, len(call.Arguments))
	return nil
}

func (ac *ASTCompiler) VisitListExpr(list ast.ListExpr) any {
	for _, e := range list.Elements {
		e.Accept(ac)
	}
	ac.emit(OP_BUILD_LIST, list.Bracket.Line, list.Bracket.Column, len(list.Elements))
	return nil
}

func (ac *ASTCompiler) VisitTupleExpr(tuple ast.TupleExpr) any {
	for _, e := range tuple.Elements {
		e.Accept(ac)
	}
	ac.emit(OP_BUILD_TUPLE, tuple.Paren.Line, tuple.Paren.Column, len(tuple.Elements))
	return nil
}

func (ac *ASTCompiler) VisitSetExpr(set ast.SetExpr) any {
	for _, e := range set.Elements {
		e.Accept(ac)
	}
	ac.emit(OP_BUILD_SET, set.Brace.Line, set.Brace.Column, len(set.Elements))
	return nil
}

func (ac *ASTCompiler) VisitDictExpr(dict ast.DictExpr) any {
	for _, entry := range dict.Entries {
		entry.Key.Accept(ac)
		entry.Value.Accept(ac)
	}
	ac.emit(OP_BUILD_DICT, dict.Brace.Line, dict.Brace.Column, len(dict.Entries))
	return nil
}

func (ac *ASTCompiler) VisitFuncExpr(fn ast.FuncExpr) any {
	compiled := ac.compileFunction(fn, false)
	idx := ac.addConstant(compiled)
	ac.emit(OP_MAKE_FUNCTION, fn.Name.Line, fn.Name.Column, idx)
	return nil
}

func (ac *ASTCompiler) VisitBinary(b ast.Binary) any {
	b.Left.Accept(ac)
	b.Right.Accept(ac)
	ac.emitBinaryOp(b.Operator.TokenType, b.Operator)
	return nil
}

func (ac *ASTCompiler) emitBinaryOp(opType token.TokenType, opTok token.Token) {
	op, ok := binaryOpcodes[opType]
	if !ok {
		ac.addError(fmt.Errorf("line %d: operator '%s' not supported", opTok.Line, opTok.Lexeme))
		return
	}
	ac.emit(op, opTok.Line, opTok.Column)
}

var binaryOpcodes = map[token.TokenType]Opcode{
	token.ADD:          OP_ADD,
	token.SUB:          OP_SUB,
	token.MULT:         OP_MUL,
	token.DIV:          OP_DIV,
	token.FLOORDIV:     OP_FLOORDIV,
	token.MOD:          OP_MOD,
	token.POW:          OP_POW,
	token.MATMUL:       OP_MATMUL,
	token.AMP:          OP_BITAND,
	token.PIPE:         OP_BITOR,
	token.CARET:        OP_BITXOR,
	token.SHL:          OP_SHL,
	token.SHR:          OP_SHR,
	token.EQUAL_EQUAL:  OP_EQ,
	token.NOT_EQUAL:    OP_NEQ,
	token.STRICT_EQUAL: OP_SEQ,
	token.LESS:         OP_LT,
	token.LESS_EQUAL:   OP_LTE,
	token.LARGER:       OP_GT,
	token.LARGER_EQUAL: OP_GTE,
	token.IN:           OP_IN,
}

func (ac *ASTCompiler) VisitUnary(u ast.Unary) any {
	u.Right.Accept(ac)
	switch u.Operator.TokenType {
	case token.SUB:
		ac.emit(OP_NEG, u.Operator.Line, u.Operator.Column)
	case token.ADD:
		ac.emit(OP_POS, u.Operator.Line, u.Operator.Column)
	case token.BANG:
		ac.emit(OP_NOT, u.Operator.Line, u.Operator.Column)
	case token.TILDE:
		ac.emit(OP_BITNOT, u.Operator.Line, u.Operator.Column)
	default:
		ac.addError(fmt.Errorf("line %d: unary operator '%s' not supported", u.Operator.Line, u.Operator.Lexeme))
	}
	return nil
}
