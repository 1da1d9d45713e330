package interpreter

import (
	"fmt"
	"sync"

	"nilan/ast"
	"nilan/object"
	"nilan/token"
)

// TreeWalkInterpreter executes parsed statements and evaluates expressions
// directly over the AST. It backs the `run`/`repl` subcommands; `runC`/
// `cRepl`/`emit` instead compile through the compiler and vm packages.
type TreeWalkInterpreter struct {
	globals *object.Env
	env     *object.Env
	thread  *object.Thread
}

// Make creates an instance of a "Tree-Walk Interpreter".
func Make() *TreeWalkInterpreter {
	globals := object.NewEnv(nil)
	builtins := object.DefaultGlobals()
	for i, name := range object.BuiltinNames {
		globals.Define(name, builtins[i], true)
	}
	gil := &sync.Mutex{}
	return &TreeWalkInterpreter{
		globals: globals,
		env:     globals,
		thread:  object.NewThread(gil, globals),
	}
}

// Interpret executes a list of statements.
// It recovers from panics to print runtime errors without crashing.
func (i *TreeWalkInterpreter) Interpret(statements []ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case RuntimeError:
				fmt.Println(e.Error())
			case thrownError:
				fmt.Println(e.Error())
			default:
				fmt.Println(r)
			}
		}
	}()
	i.executeStatements(statements)
}

func (i *TreeWalkInterpreter) executeStatements(statements []ast.Stmt) {
	for _, s := range statements {
		i.executeStmt(s)
	}
}

func (i *TreeWalkInterpreter) executeStmt(stmt ast.Stmt) {
	stmt.Accept(i)
}

func (i *TreeWalkInterpreter) evaluate(expression ast.Expression) object.Value {
	result := expression.Accept(i)
	if result == nil {
		return object.None
	}
	return result.(object.Value)
}

// --- statements -------------------------------------------------------

func (i *TreeWalkInterpreter) VisitBlockStmt(blockStmt ast.BlockStmt) any {
	previous := i.env
	i.env = object.NewEnv(previous)
	defer func() { i.env = previous }()
	i.executeStatements(blockStmt.Statements)
	return nil
}

func (i *TreeWalkInterpreter) VisitExpressionStmt(exprStatement ast.ExpressionStmt) any {
	i.evaluate(exprStatement.Expression)
	return nil
}

func (i *TreeWalkInterpreter) VisitIfStmt(stmt ast.IfStmt) any {
	if truthy(i.evaluate(stmt.Condition)) {
		i.executeStmt(stmt.Then)
	} else if stmt.Else != nil {
		i.executeStmt(stmt.Else)
	}
	return nil
}

func (i *TreeWalkInterpreter) VisitWhileStmt(stmt ast.WhileStmt) any {
	for truthy(i.evaluate(stmt.Condition)) {
		if brk := i.runLoopBody(stmt.Body); brk {
			break
		}
	}
	return nil
}

func (i *TreeWalkInterpreter) VisitForStmt(stmt ast.ForStmt) any {
	iterable := i.evaluate(stmt.Iterable)
	t := iterable.Type()
	if t.IIter == nil {
		panic(CreateRuntimeError(stmt.Name.Line, stmt.Name.Column,
			fmt.Sprintf("'%s' is not iterable", t.Name)))
	}
	iter, excErr := t.IIter(iterable)
	if excErr != nil {
		panic(thrownError{excErr})
	}
	it := iter.Type()
	for {
		v, nextErr := it.INext(iter)
		if object.IsIterExhausted(nextErr) {
			break
		}
		if nextErr != nil {
			panic(thrownError{nextErr})
		}
		previous := i.env
		i.env = object.NewEnv(previous)
		i.env.Define(stmt.Name.Lexeme, v, false)
		brk := i.runLoopBody(stmt.Body)
		i.env = previous
		if brk {
			break
		}
	}
	return nil
}

// runLoopBody executes a loop body, translating a continueSignal into a
// normal iteration and a breakSignal into brk=true for the caller to stop.
func (i *TreeWalkInterpreter) runLoopBody(body ast.BlockStmt) (brk bool) {
	defer func() {
		if r := recover(); r != nil {
			switch r.(type) {
			case breakSignal:
				brk = true
			case continueSignal:
				brk = false
			default:
				panic(r)
			}
		}
	}()
	i.executeStmt(body)
	return false
}

func (i *TreeWalkInterpreter) VisitBreakStmt(stmt ast.BreakStmt) any {
	panic(breakSignal{})
}

func (i *TreeWalkInterpreter) VisitContinueStmt(stmt ast.ContinueStmt) any {
	panic(continueSignal{})
}

func (i *TreeWalkInterpreter) VisitReturnStmt(stmt ast.ReturnStmt) any {
	var value object.Value = object.None
	if stmt.Value != nil {
		value = i.evaluate(stmt.Value)
	}
	panic(returnSignal{Value: value})
}

func (i *TreeWalkInterpreter) VisitThrowStmt(stmt ast.ThrowStmt) any {
	value := i.evaluate(stmt.Value)
	if exc, ok := value.(*object.Exception); ok {
		panic(thrownError{exc})
	}
	panic(thrownError{&object.Exception{Kind: object.KindUser, Message: stringify(value), Payload: value}})
}

func (i *TreeWalkInterpreter) VisitAssertStmt(stmt ast.AssertStmt) any {
	if truthy(i.evaluate(stmt.Condition)) {
		return nil
	}
	msg := "assertion failed"
	if stmt.Message != nil {
		msg = stringify(i.evaluate(stmt.Message))
	}
	panic(thrownError{object.NewException(object.KindAssertion, "%s", msg)})
}

func (i *TreeWalkInterpreter) VisitTryStmt(stmt ast.TryStmt) any {
	if stmt.Finally != nil {
		defer i.executeStmt(*stmt.Finally)
	}
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			exc, ok := r.(thrownError)
			if !ok || stmt.Catch == nil {
				panic(r)
			}
			if stmt.Catch.Type != nil {
				name := stmt.Catch.Type.Lexeme
				matched := name == "Exception" || exc.Exc.Kind.String() == name
				if inst, isInst := exc.Exc.Payload.(*object.Instance); isInst {
					for t := inst.Class; t != nil && !matched; t = t.Parent {
						matched = t.Name == name
					}
				}
				if !matched {
					panic(r)
				}
			}
			previous := i.env
			i.env = object.NewEnv(previous)
			if stmt.Catch.Name.Lexeme != "" {
				i.env.Define(stmt.Catch.Name.Lexeme, exc.Exc, false)
			}
			i.executeStmt(stmt.Catch.Body)
			i.env = previous
		}()
		i.executeStmt(stmt.Body)
	}()
	return nil
}

func (i *TreeWalkInterpreter) VisitPrintStmt(printStmt ast.PrintStmt) any {
	value := i.evaluate(printStmt.Expression)
	fmt.Println(stringify(value))
	return nil
}

func (i *TreeWalkInterpreter) VisitVarStmt(varStmt ast.VarStmt) any {
	var value object.Value = object.None
	if varStmt.Initializer != nil {
		value = i.evaluate(varStmt.Initializer)
	}
	i.env.Define(varStmt.Name.Lexeme, value, varStmt.Const)
	return nil
}

func (i *TreeWalkInterpreter) VisitFuncDefStmt(stmt ast.FuncDefStmt) any {
	fn := i.makeFunction(stmt.Function)
	i.env.Define(stmt.Function.Name.Lexeme, fn, false)
	return nil
}

func (i *TreeWalkInterpreter) VisitTypeDefStmt(stmt ast.TypeDefStmt) any {
	typ := &object.Type{Name: stmt.Name.Lexeme, Members: map[string]object.Value{}}
	if stmt.Parent != nil {
		if pv, ok := i.env.Get(stmt.Parent.Lexeme); ok {
			if pt, ok := pv.(*object.Type); ok {
				typ.Parent = pt
			}
		}
	}
	for _, m := range stmt.Members {
		if m.Method != nil {
			typ.Members[m.Name.Lexeme] = i.makeFunction(*m.Method)
		}
	}
	object.WireInstanceProtocol(typ)
	i.env.Define(stmt.Name.Lexeme, typ, false)
	return nil
}

func (i *TreeWalkInterpreter) VisitEnumDefStmt(stmt ast.EnumDefStmt) any {
	members := map[string]object.Value{}
	next := int64(0)
	for _, m := range stmt.Members {
		if m.Value != nil {
			v := i.evaluate(m.Value)
			members[m.Name.Lexeme] = v
			if iv, ok := v.(*object.Int); ok {
				next = iv.Val.Int64() + 1
			}
			continue
		}
		members[m.Name.Lexeme] = object.NewInt(next)
		next++
	}
	env := object.NewEnv(nil)
	for k, v := range members {
		env.Define(k, v, true)
	}
	i.env.Define(stmt.Name.Lexeme, &object.Module{Name: stmt.Name.Lexeme, Globals: env}, false)
	return nil
}

func (i *TreeWalkInterpreter) VisitImportStmt(stmt ast.ImportStmt) any {
	path, _ := stmt.Path.Literal.(string)
	mod, excErr := resolveModule(path)
	if excErr != nil {
		panic(thrownError{excErr})
	}
	name := mod.Name
	if stmt.Alias != nil {
		name = stmt.Alias.Lexeme
	}
	i.env.Define(name, mod, false)
	return nil
}

// --- expressions --------------------------------------------------------

func (i *TreeWalkInterpreter) VisitVariableExpression(expression ast.Variable) any {
	value, err := getVar(i.env, expression.Name)
	if err != nil {
		panic(err)
	}
	return value
}

func (i *TreeWalkInterpreter) VisitLiteral(literal ast.Literal) any {
	return literalToValue(literal.Value)
}

func (i *TreeWalkInterpreter) VisitGrouping(grouping ast.Grouping) any {
	return i.evaluate(grouping.Expression)
}

func (i *TreeWalkInterpreter) VisitAssignExpression(assign ast.Assign) any {
	value := i.evaluate(assign.Value)

	if assign.Operator.TokenType != token.ASSIGN {
		current := i.evaluate(targetAsReadExpr(assign.Target))
		binOp := token.BinaryOpForAssign[assign.Operator.TokenType]
		value = i.applyBinary(binOp, current, value, assign.Operator)
	}

	switch target := assign.Target.(type) {
	case ast.Variable:
		if err := assignVar(i.env, target.Name, value); err != nil {
			panic(err)
		}
	case ast.Attribute:
		obj := i.evaluate(target.Object)
		t := obj.Type()
		if t.ISetAttr == nil {
			panic(CreateRuntimeError(target.Name.Line, target.Name.Column,
				fmt.Sprintf("'%s' does not support attribute assignment", t.Name)))
		}
		if excErr := t.ISetAttr(obj, target.Name.Lexeme, value); excErr != nil {
			panic(thrownError{excErr})
		}
	case ast.Element:
		obj := i.evaluate(target.Object)
		index := i.evaluate(target.Index)
		t := obj.Type()
		if t.ISetItem == nil {
			panic(CreateRuntimeError(target.Bracket.Line, target.Bracket.Column,
				fmt.Sprintf("'%s' does not support item assignment", t.Name)))
		}
		if excErr := t.ISetItem(obj, index, value); excErr != nil {
			panic(thrownError{excErr})
		}
	default:
		panic(CreateRuntimeError(assign.Operator.Line, assign.Operator.Column, "invalid assignment target"))
	}
	return value
}

// targetAsReadExpr turns an assignment target back into a readable
// expression so augmented assignment can evaluate its current value.
func targetAsReadExpr(target ast.Expression) ast.Expression {
	return target
}

func (i *TreeWalkInterpreter) VisitLogicalExpression(logical ast.Logical) any {
	left := i.evaluate(logical.Left)
	if logical.Operator.TokenType == token.OR {
		if truthy(left) {
			return left
		}
		return i.evaluate(logical.Right)
	}
	// AND
	if !truthy(left) {
		return left
	}
	return i.evaluate(logical.Right)
}

func (i *TreeWalkInterpreter) VisitRichCompare(compare ast.RichCompare) any {
	operands := make([]object.Value, len(compare.Operands))
	for idx, o := range compare.Operands {
		operands[idx] = i.evaluate(o)
	}
	for idx, op := range compare.Operators {
		if !i.compareOnce(operands[idx], op, operands[idx+1]) {
			return object.False
		}
	}
	return object.True
}

func (i *TreeWalkInterpreter) VisitConditional(conditional ast.Conditional) any {
	if truthy(i.evaluate(conditional.Condition)) {
		return i.evaluate(conditional.Then)
	}
	return i.evaluate(conditional.Else)
}

func (i *TreeWalkInterpreter) VisitAttribute(attribute ast.Attribute) any {
	obj := i.evaluate(attribute.Object)
	t := obj.Type()
	if t.IGetAttr == nil {
		panic(CreateRuntimeError(attribute.Name.Line, attribute.Name.Column,
			fmt.Sprintf("'%s' object has no attribute '%s'", t.Name, attribute.Name.Lexeme)))
	}
	v, excErr := t.IGetAttr(obj, attribute.Name.Lexeme)
	if excErr != nil {
		panic(thrownError{excErr})
	}
	if _, isInstance := obj.(*object.Instance); isInstance {
		return bindMethod(v, obj)
	}
	return v
}

// bindMethod wraps a type's function member into a closure whose Closure
// env pre-binds `self`, giving method-call syntax without a receiver slot
// in the call convention.
func bindMethod(m object.Value, self object.Value) object.Value {
	fn, ok := m.(*object.Function)
	if !ok {
		return m
	}
	boundEnv := object.NewEnv(fn.Closure)
	boundEnv.Define("self", self, true)
	return &object.Function{Name: fn.Name, Params: fn.Params, Body: fn.Body, Closure: boundEnv, IsMethod: true}
}

func (i *TreeWalkInterpreter) VisitElement(element ast.Element) any {
	obj := i.evaluate(element.Object)
	index := i.evaluate(element.Index)
	t := obj.Type()
	if t.IGetItem == nil {
		panic(CreateRuntimeError(element.Bracket.Line, element.Bracket.Column,
			fmt.Sprintf("'%s' object is not subscriptable", t.Name)))
	}
	v, excErr := t.IGetItem(obj, index)
	if excErr != nil {
		panic(thrownError{excErr})
	}
	return v
}

func (i *TreeWalkInterpreter) VisitSlice(sliceExpr ast.Slice) any {
	obj := i.evaluate(sliceExpr.Object)
	list, ok := obj.(*object.List)
	if !ok {
		if tup, ok := obj.(*object.Tuple); ok {
			list = &object.List{Elements: tup.Elements}
		} else {
			panic(CreateRuntimeError(sliceExpr.Bracket.Line, sliceExpr.Bracket.Column, "object is not sliceable"))
		}
	}
	start, stop, step := sliceBounds(i, sliceExpr, len(list.Elements))
	var out []object.Value
	if step > 0 {
		for idx := start; idx < stop; idx += step {
			out = append(out, list.Elements[idx])
		}
	} else if step < 0 {
		for idx := start; idx > stop; idx += step {
			out = append(out, list.Elements[idx])
		}
	}
	return object.NewList(out)
}

func sliceBounds(i *TreeWalkInterpreter, sliceExpr ast.Slice, length int) (start, stop, step int) {
	step = 1
	if sliceExpr.Step != nil {
		step = int(i.evaluate(sliceExpr.Step).(*object.Int).Val.Int64())
	}
	if sliceExpr.Start != nil {
		start = int(i.evaluate(sliceExpr.Start).(*object.Int).Val.Int64())
	} else if step < 0 {
		start = length - 1
	}
	if sliceExpr.Stop != nil {
		stop = int(i.evaluate(sliceExpr.Stop).(*object.Int).Val.Int64())
	} else if step < 0 {
		stop = -1
	} else {
		stop = length
	}
	if start < 0 {
		start += length
	}
	if stop < 0 && sliceExpr.Stop != nil {
		stop += length
	}
	return start, stop, step
}

func (i *TreeWalkInterpreter) VisitCall(call ast.Call) any {
	callee := i.evaluate(call.Callee)
	args := make([]object.Value, len(call.Arguments))
	for idx, a := range call.Arguments {
		args[idx] = i.evaluate(a)
	}

	switch fn := callee.(type) {
	case *object.Function:
		return i.callFunction(fn, args, call.Paren)
	case *object.Type:
		return i.instantiate(fn, args, call.Paren)
	}

	t := callee.Type()
	if t.ICall == nil {
		panic(CreateRuntimeError(call.Paren.Line, call.Paren.Column,
			fmt.Sprintf("'%s' object is not callable", t.Name)))
	}
	v, excErr := t.ICall(i.thread, callee, args)
	if excErr != nil {
		panic(thrownError{excErr})
	}
	return v
}

// callFunction binds args to fn's parameters (applying defaults and
// collecting the trailing variadic into a tuple) in a scope chained off
// fn's closure, then executes its body, translating a returnSignal panic
// into the function's result.
func (i *TreeWalkInterpreter) callFunction(fn *object.Function, args []object.Value, paren token.Token) (result object.Value) {
	if excErr := i.thread.PushFrame(fn.Name, int(paren.Line)); excErr != nil {
		panic(thrownError{excErr})
	}
	defer i.thread.PopFrame()

	callEnv := object.NewEnv(fn.Closure)
	argIdx := 0
	for _, p := range fn.Params {
		if p.Variadic {
			rest := []object.Value{}
			for argIdx < len(args) {
				rest = append(rest, args[argIdx])
				argIdx++
			}
			callEnv.Define(p.Name, object.NewTuple(rest), false)
			continue
		}
		if argIdx < len(args) {
			callEnv.Define(p.Name, args[argIdx], false)
			argIdx++
		} else if p.Default != nil {
			callEnv.Define(p.Name, p.Default, false)
		} else {
			panic(CreateRuntimeError(paren.Line, paren.Column,
				fmt.Sprintf("missing argument for parameter '%s' in call to %s", p.Name, fn.Name)))
		}
	}

	body, ok := fn.Body.([]ast.Stmt)
	if !ok {
		panic(CreateRuntimeError(paren.Line, paren.Column, "function has no executable body"))
	}

	result = object.None
	func() {
		previous := i.env
		i.env = callEnv
		defer func() {
			i.env = previous
			if r := recover(); r != nil {
				if ret, ok := r.(returnSignal); ok {
					result = ret.Value
					return
				}
				panic(r)
			}
		}()
		i.executeStatements(body)
	}()
	return result
}

// instantiate constructs an Instance of typ, running its "init" method
// (if declared) with the call's arguments.
func (i *TreeWalkInterpreter) instantiate(typ *object.Type, args []object.Value, paren token.Token) object.Value {
	inst := object.NewInstance(typ)
	for t := typ; t != nil; t = t.Parent {
		if t.Members == nil {
			continue
		}
		if initFn, ok := t.Members["init"]; ok {
			bound := bindMethod(initFn, inst).(*object.Function)
			i.callFunction(bound, args, paren)
			break
		}
	}
	return inst
}

func (i *TreeWalkInterpreter) VisitListExpr(list ast.ListExpr) any {
	elems := make([]object.Value, len(list.Elements))
	for idx, e := range list.Elements {
		elems[idx] = i.evaluate(e)
	}
	return object.NewList(elems)
}

func (i *TreeWalkInterpreter) VisitTupleExpr(tuple ast.TupleExpr) any {
	elems := make([]object.Value, len(tuple.Elements))
	for idx, e := range tuple.Elements {
		elems[idx] = i.evaluate(e)
	}
	return object.NewTuple(elems)
}

func (i *TreeWalkInterpreter) VisitSetExpr(set ast.SetExpr) any {
	elems := make([]object.Value, len(set.Elements))
	for idx, e := range set.Elements {
		elems[idx] = i.evaluate(e)
	}
	return object.NewSet(elems)
}

func (i *TreeWalkInterpreter) VisitDictExpr(dict ast.DictExpr) any {
	d := object.NewDict()
	for _, e := range dict.Entries {
		d.Set(i.evaluate(e.Key), i.evaluate(e.Value))
	}
	return d
}

func (i *TreeWalkInterpreter) VisitFuncExpr(fn ast.FuncExpr) any {
	return i.makeFunction(fn)
}

func (i *TreeWalkInterpreter) makeFunction(fn ast.FuncExpr) *object.Function {
	params := make([]object.FuncParam, len(fn.Params))
	for idx, p := range fn.Params {
		var def object.Value
		if p.Default != nil {
			def = i.evaluate(p.Default)
		}
		params[idx] = object.FuncParam{Name: p.Name.Lexeme, Default: def, Variadic: p.Variadic}
	}
	return &object.Function{Name: fn.Name.Lexeme, Params: params, Body: fn.Body, Closure: i.env}
}

func (i *TreeWalkInterpreter) VisitBinary(binary ast.Binary) any {
	left := i.evaluate(binary.Left)
	right := i.evaluate(binary.Right)
	return i.applyBinary(binary.Operator.TokenType, left, right, binary.Operator)
}

func (i *TreeWalkInterpreter) applyBinary(opType token.TokenType, left, right object.Value, opTok token.Token) object.Value {
	t := left.Type()
	var fn object.BinaryFunc
	switch opType {
	case token.ADD:
		fn = t.IAdd
	case token.SUB:
		fn = t.ISub
	case token.MULT:
		fn = t.IMul
	case token.DIV:
		fn = t.IDiv
	case token.FLOORDIV:
		fn = t.IFloorDiv
	case token.MOD:
		fn = t.IMod
	case token.POW:
		fn = t.IPow
	case token.AMP:
		fn = t.IBitAnd
	case token.PIPE:
		fn = t.IBitOr
	case token.CARET:
		fn = t.IBitXor
	case token.SHL:
		fn = t.IShl
	case token.SHR:
		fn = t.IShr
	case token.MATMUL:
		fn = t.IMatMul
	case token.EQUAL_EQUAL, token.STRICT_EQUAL:
		return object.NewBool(valuesEqualPublic(left, right))
	case token.NOT_EQUAL:
		return object.NewBool(!valuesEqualPublic(left, right))
	case token.LARGER, token.LARGER_EQUAL, token.LESS, token.LESS_EQUAL:
		return object.NewBool(i.compareOnce(left, opTok, right))
	case token.IN:
		ok, excErr := containsValue(left, right)
		if excErr != nil {
			panic(thrownError{excErr})
		}
		return object.NewBool(ok)
	default:
		panic(CreateRuntimeError(opTok.Line, opTok.Column, fmt.Sprintf("operator '%s' not supported", opTok.Lexeme)))
	}
	if fn == nil {
		panic(CreateRuntimeError(opTok.Line, opTok.Column,
			fmt.Sprintf("unsupported operand type(s) for %s: '%s'", opTok.Lexeme, t.Name)))
	}
	result, excErr := fn(left, right)
	if excErr != nil {
		panic(thrownError{excErr})
	}
	return result
}

func (i *TreeWalkInterpreter) compareOnce(left object.Value, opTok token.Token, right object.Value) bool {
	switch opTok.TokenType {
	case token.EQUAL_EQUAL, token.STRICT_EQUAL:
		return valuesEqualPublic(left, right)
	case token.NOT_EQUAL:
		return !valuesEqualPublic(left, right)
	}
	t := left.Type()
	if t.ICompare == nil {
		panic(CreateRuntimeError(opTok.Line, opTok.Column,
			fmt.Sprintf("'%s' is not orderable", t.Name)))
	}
	c, excErr := t.ICompare(left, right)
	if excErr != nil {
		panic(thrownError{excErr})
	}
	switch opTok.TokenType {
	case token.LARGER:
		return c > 0
	case token.LARGER_EQUAL:
		return c >= 0
	case token.LESS:
		return c < 0
	case token.LESS_EQUAL:
		return c <= 0
	default:
		return c == 0
	}
}

func (i *TreeWalkInterpreter) VisitUnary(unary ast.Unary) any {
	right := i.evaluate(unary.Right)
	t := right.Type()
	switch unary.Operator.TokenType {
	case token.SUB:
		if t.INeg == nil {
			panic(CreateRuntimeError(unary.Operator.Line, unary.Operator.Column,
				fmt.Sprintf("bad operand type for unary -: '%s'", t.Name)))
		}
		v, excErr := t.INeg(right)
		if excErr != nil {
			panic(thrownError{excErr})
		}
		return v
	case token.ADD:
		if t.IPos != nil {
			v, excErr := t.IPos(right)
			if excErr != nil {
				panic(thrownError{excErr})
			}
			return v
		}
		return right
	case token.TILDE:
		if t.IBitNot == nil {
			panic(CreateRuntimeError(unary.Operator.Line, unary.Operator.Column,
				fmt.Sprintf("bad operand type for unary ~: '%s'", t.Name)))
		}
		v, excErr := t.IBitNot(right)
		if excErr != nil {
			panic(thrownError{excErr})
		}
		return v
	case token.BANG:
		return object.NewBool(!truthy(right))
	default:
		panic(CreateRuntimeError(unary.Operator.Line, unary.Operator.Column,
			fmt.Sprintf("operator '%s' not supported for unary operations", unary.Operator.Lexeme)))
	}
}
