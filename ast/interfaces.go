// interfaces.go contains all visitor interfaces that any code traversing
// expression and statement AST nodes must implement. It also contains the
// interfaces that all statement and expression AST nodes must implement,
// following the visitor design pattern.

package ast

// ExpressionVisitor is the interface for operating on all Expression AST
// nodes. Any type that wants to perform an operation on expressions (e.g.,
// an interpreter, ast-printer, or compiler) must implement this interface.
//
// Each Visit method corresponds to a distinct Expression type.
type ExpressionVisitor interface {
	VisitBinary(binary Binary) any
	VisitUnary(unary Unary) any
	VisitLiteral(literal Literal) any
	VisitGrouping(grouping Grouping) any
	VisitVariableExpression(variable Variable) any
	VisitAssignExpression(assign Assign) any
	VisitLogicalExpression(logical Logical) any
	VisitRichCompare(compare RichCompare) any
	VisitConditional(conditional Conditional) any
	VisitAttribute(attribute Attribute) any
	VisitElement(element Element) any
	VisitSlice(slice Slice) any
	VisitCall(call Call) any
	VisitListExpr(list ListExpr) any
	VisitTupleExpr(tuple TupleExpr) any
	VisitSetExpr(set SetExpr) any
	VisitDictExpr(dict DictExpr) any
	VisitFuncExpr(fn FuncExpr) any
}

// StmtVisitor is the interface for operating on all Statement AST nodes.
// Like ExpressionVisitor, it defines one Visit method per statement type.
type StmtVisitor interface {
	VisitExpressionStmt(exprStmt ExpressionStmt) any
	VisitPrintStmt(printStmt PrintStmt) any
	VisitVarStmt(varStmt VarStmt) any
	VisitBlockStmt(blockStmt BlockStmt) any
	VisitIfStmt(stmt IfStmt) any
	VisitWhileStmt(stmt WhileStmt) any
	VisitForStmt(stmt ForStmt) any
	VisitFuncDefStmt(stmt FuncDefStmt) any
	VisitTypeDefStmt(stmt TypeDefStmt) any
	VisitEnumDefStmt(stmt EnumDefStmt) any
	VisitImportStmt(stmt ImportStmt) any
	VisitReturnStmt(stmt ReturnStmt) any
	VisitBreakStmt(stmt BreakStmt) any
	VisitContinueStmt(stmt ContinueStmt) any
	VisitThrowStmt(stmt ThrowStmt) any
	VisitAssertStmt(stmt AssertStmt) any
	VisitTryStmt(stmt TryStmt) any
}

// Stmt is the base interface for all statement nodes in the AST. A
// statement represents an action in a program; unlike expressions,
// statements do not themselves produce a value.
type Stmt interface {
	Accept(v StmtVisitor) any
}

// Expression is the core interface for all expression nodes in the AST.
// The Accept method enables the Visitor design pattern so that operations
// can be performed on expressions without the node types needing to know
// the details of those operations.
type Expression interface {
	Accept(v ExpressionVisitor) any
}
