package parser

import (
	"encoding/json"
	"fmt"
	"nilan/ast"
	"os"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// astPrinter implements the Visitor interfaces and builds a
// JSON-friendly representation of the AST using maps and slices.
// Each Visit method returns an object that can be marshaled to JSON.
type astPrinter struct{}

func (p astPrinter) VisitExpressionStmt(exprStmt ast.ExpressionStmt) any {
	return map[string]any{
		"type":       "ExpressionStmt",
		"expression": exprStmt.Expression.Accept(p),
	}
}

func (p astPrinter) VisitPrintStmt(printStmt ast.PrintStmt) any {
	return map[string]any{
		"type":       "PrintStmt",
		"expression": printStmt.Expression.Accept(p),
	}
}

func (p astPrinter) VisitVarStmt(varStmt ast.VarStmt) any {
	return map[string]any{
		"type":        "VarStmt",
		"name":        varStmt.Name.Lexeme,
		"const":       varStmt.Const,
		"initializer": nilOrAccept(varStmt.Initializer, p),
	}
}

func (p astPrinter) VisitBlockStmt(blockStmt ast.BlockStmt) any {
	stmts := make([]any, 0, len(blockStmt.Statements))
	for _, stmt := range blockStmt.Statements {
		stmts = append(stmts, stmt.Accept(p))
	}
	return map[string]any{
		"type":       "BlockStmt",
		"statements": stmts,
	}
}

func (p astPrinter) VisitWhileStmt(stmt ast.WhileStmt) any {
	return map[string]any{
		"type":      "WhileStmt",
		"condition": stmt.Condition.Accept(p),
		"body":      stmt.Body.Accept(p),
	}
}

func (p astPrinter) VisitForStmt(stmt ast.ForStmt) any {
	return map[string]any{
		"type":     "ForStmt",
		"name":     stmt.Name.Lexeme,
		"iterable": stmt.Iterable.Accept(p),
		"body":     stmt.Body.Accept(p),
	}
}

func (p astPrinter) VisitIfStmt(stmt ast.IfStmt) any {
	var elseVal any
	if stmt.Else != nil {
		elseVal = stmt.Else.Accept(p)
	}
	return map[string]any{
		"type":      "IfStmt",
		"condition": stmt.Condition.Accept(p),
		"then":      stmt.Then.Accept(p),
		"else":      elseVal,
	}
}

func (p astPrinter) VisitFuncDefStmt(stmt ast.FuncDefStmt) any {
	return map[string]any{
		"type":     "FuncDefStmt",
		"function": stmt.Function.Accept(p),
	}
}

func (p astPrinter) VisitTypeDefStmt(stmt ast.TypeDefStmt) any {
	members := make([]any, 0, len(stmt.Members))
	for _, m := range stmt.Members {
		entry := map[string]any{"name": m.Name.Lexeme}
		if m.Method != nil {
			entry["method"] = m.Method.Accept(p)
		}
		members = append(members, entry)
	}
	var parent any
	if stmt.Parent != nil {
		parent = stmt.Parent.Lexeme
	}
	return map[string]any{
		"type":    "TypeDefStmt",
		"name":    stmt.Name.Lexeme,
		"parent":  parent,
		"members": members,
	}
}

func (p astPrinter) VisitEnumDefStmt(stmt ast.EnumDefStmt) any {
	members := make([]any, 0, len(stmt.Members))
	for _, m := range stmt.Members {
		members = append(members, map[string]any{
			"name":  m.Name.Lexeme,
			"value": nilOrAccept(m.Value, p),
		})
	}
	return map[string]any{
		"type":    "EnumDefStmt",
		"name":    stmt.Name.Lexeme,
		"members": members,
	}
}

func (p astPrinter) VisitImportStmt(stmt ast.ImportStmt) any {
	var alias any
	if stmt.Alias != nil {
		alias = stmt.Alias.Lexeme
	}
	return map[string]any{
		"type":  "ImportStmt",
		"path":  stmt.Path.Literal,
		"alias": alias,
	}
}

func (p astPrinter) VisitReturnStmt(stmt ast.ReturnStmt) any {
	return map[string]any{
		"type":  "ReturnStmt",
		"value": nilOrAccept(stmt.Value, p),
	}
}

func (p astPrinter) VisitBreakStmt(stmt ast.BreakStmt) any {
	return map[string]any{"type": "BreakStmt"}
}

func (p astPrinter) VisitContinueStmt(stmt ast.ContinueStmt) any {
	return map[string]any{"type": "ContinueStmt"}
}

func (p astPrinter) VisitThrowStmt(stmt ast.ThrowStmt) any {
	return map[string]any{
		"type":  "ThrowStmt",
		"value": stmt.Value.Accept(p),
	}
}

func (p astPrinter) VisitAssertStmt(stmt ast.AssertStmt) any {
	return map[string]any{
		"type":      "AssertStmt",
		"condition": stmt.Condition.Accept(p),
		"message":   nilOrAccept(stmt.Message, p),
	}
}

func (p astPrinter) VisitTryStmt(stmt ast.TryStmt) any {
	result := map[string]any{
		"type": "TryStmt",
		"body": stmt.Body.Accept(p),
	}
	if stmt.Catch != nil {
		result["catch"] = map[string]any{
			"name": stmt.Catch.Name.Lexeme,
			"body": stmt.Catch.Body.Accept(p),
		}
	}
	if stmt.Finally != nil {
		result["finally"] = stmt.Finally.Accept(p)
	}
	return result
}

func (p astPrinter) VisitLogicalExpression(expr ast.Logical) any {
	return map[string]any{
		"type":     "Logical",
		"operator": expr.Operator.Lexeme,
		"left":     expr.Left.Accept(p),
		"right":    expr.Right.Accept(p),
	}
}

func (p astPrinter) VisitRichCompare(expr ast.RichCompare) any {
	operands := make([]any, 0, len(expr.Operands))
	for _, o := range expr.Operands {
		operands = append(operands, o.Accept(p))
	}
	operators := make([]any, 0, len(expr.Operators))
	for _, o := range expr.Operators {
		operators = append(operators, o.Lexeme)
	}
	return map[string]any{
		"type":      "RichCompare",
		"operands":  operands,
		"operators": operators,
	}
}

func (p astPrinter) VisitConditional(expr ast.Conditional) any {
	return map[string]any{
		"type":      "Conditional",
		"then":      expr.Then.Accept(p),
		"condition": expr.Condition.Accept(p),
		"else":      expr.Else.Accept(p),
	}
}

func (p astPrinter) VisitAttribute(expr ast.Attribute) any {
	return map[string]any{
		"type":   "Attribute",
		"object": expr.Object.Accept(p),
		"name":   expr.Name.Lexeme,
	}
}

func (p astPrinter) VisitElement(expr ast.Element) any {
	return map[string]any{
		"type":   "Element",
		"object": expr.Object.Accept(p),
		"index":  expr.Index.Accept(p),
	}
}

func (p astPrinter) VisitSlice(expr ast.Slice) any {
	return map[string]any{
		"type":   "Slice",
		"object": expr.Object.Accept(p),
		"start":  nilOrAccept(expr.Start, p),
		"stop":   nilOrAccept(expr.Stop, p),
		"step":   nilOrAccept(expr.Step, p),
	}
}

func (p astPrinter) VisitCall(expr ast.Call) any {
	args := make([]any, 0, len(expr.Arguments))
	for _, a := range expr.Arguments {
		args = append(args, a.Accept(p))
	}
	return map[string]any{
		"type":      "Call",
		"callee":    expr.Callee.Accept(p),
		"arguments": args,
	}
}

func (p astPrinter) VisitListExpr(expr ast.ListExpr) any {
	elements := make([]any, 0, len(expr.Elements))
	for _, e := range expr.Elements {
		elements = append(elements, e.Accept(p))
	}
	return map[string]any{"type": "ListExpr", "elements": elements}
}

func (p astPrinter) VisitTupleExpr(expr ast.TupleExpr) any {
	elements := make([]any, 0, len(expr.Elements))
	for _, e := range expr.Elements {
		elements = append(elements, e.Accept(p))
	}
	return map[string]any{"type": "TupleExpr", "elements": elements}
}

func (p astPrinter) VisitSetExpr(expr ast.SetExpr) any {
	elements := make([]any, 0, len(expr.Elements))
	for _, e := range expr.Elements {
		elements = append(elements, e.Accept(p))
	}
	return map[string]any{"type": "SetExpr", "elements": elements}
}

func (p astPrinter) VisitDictExpr(expr ast.DictExpr) any {
	entries := make([]any, 0, len(expr.Entries))
	for _, e := range expr.Entries {
		entries = append(entries, map[string]any{
			"key":   e.Key.Accept(p),
			"value": e.Value.Accept(p),
		})
	}
	return map[string]any{"type": "DictExpr", "entries": entries}
}

func (p astPrinter) VisitFuncExpr(fn ast.FuncExpr) any {
	params := make([]any, 0, len(fn.Params))
	for _, param := range fn.Params {
		params = append(params, map[string]any{
			"name":     param.Name.Lexeme,
			"default":  nilOrAccept(param.Default, p),
			"variadic": param.Variadic,
		})
	}
	body := make([]any, 0, len(fn.Body))
	for _, stmt := range fn.Body {
		body = append(body, stmt.Accept(p))
	}
	return map[string]any{
		"type":   "FuncExpr",
		"name":   fn.Name.Lexeme,
		"params": params,
		"body":   body,
	}
}

func (p astPrinter) VisitAssignExpression(assign ast.Assign) any {
	return map[string]any{
		"type":     "Assign",
		"target":   assign.Target.Accept(p),
		"operator": assign.Operator.Lexeme,
		"value":    assign.Value.Accept(p),
	}
}

func (p astPrinter) VisitVariableExpression(variable ast.Variable) any {
	return map[string]any{
		"type": "Variable",
		"name": variable.Name.Lexeme,
	}
}

func (p astPrinter) VisitBinary(b ast.Binary) any {
	return map[string]any{
		"type":     "Binary",
		"operator": b.Operator.Lexeme,
		"left":     b.Left.Accept(p),
		"right":    b.Right.Accept(p),
	}
}

func (p astPrinter) VisitUnary(u ast.Unary) any {
	return map[string]any{
		"type":     "Unary",
		"operator": u.Operator.Lexeme,
		"right":    u.Right.Accept(p),
	}
}

func (p astPrinter) VisitLiteral(l ast.Literal) any {
	// literals are terminal values and can be used directly in JSON
	return l.Value
}

func (p astPrinter) VisitGrouping(g ast.Grouping) any {
	return map[string]any{
		"type":       "Grouping",
		"expression": g.Expression.Accept(p),
	}
}

// nilOrAccept returns nil if expr is nil, otherwise it continues
// processing the expression and returns the result.
func nilOrAccept(expr ast.Expression, p ast.ExpressionVisitor) any {
	if expr == nil {
		return nil
	}
	return expr.Accept(p)
}

// PrintASTJSON converts a slice of statements into a prettified JSON string.
func PrintASTJSON(statements []ast.Stmt) (string, error) {
	printer := astPrinter{}
	out := make([]any, 0, len(statements))
	for _, s := range statements {
		out = append(out, s.Accept(printer))
	}
	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}

	jsonStr := string(bytes)
	fmt.Println(colorYellow + "----- AST JSON -----")
	fmt.Println(colorYellow + jsonStr)
	fmt.Println(colorYellow + "-----" + colorReset)
	fmt.Println("")
	return jsonStr, nil
}

// WriteASTJSONToFile writes the prettified AST JSON to the given file path.
func WriteASTJSONToFile(statements []ast.Stmt, path string) error {
	s, err := PrintASTJSON(statements)
	if err != nil {
		return err
	}
	fDescriptor, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating AST file: %s", err.Error())
	}

	_, error := fDescriptor.Write([]byte(s))
	if error != nil {
		return fmt.Errorf("error writing AST to file: %s", error.Error())
	}
	defer fDescriptor.Close()
	return nil
}
