// Recursive descent parser
// https://en.wikipedia.org/wiki/Recursive_descent_parser
//
// A recursive descent parser is a top-down parser because it starts from
// the top grammar rule and works its way down into the nested
// sub-expressions before reaching the leaves of the syntax tree (terminal
// rules).
package parser

import (
	"fmt"
	"nilan/ast"
	"nilan/token"
)

var richCompareTokenTypes = []token.TokenType{
	token.LARGER,
	token.LARGER_EQUAL,
	token.LESS,
	token.LESS_EQUAL,
	token.EQUAL_EQUAL,
	token.NOT_EQUAL,
	token.STRICT_EQUAL,
	token.IN,
}

var bitOrTokenTypes = []token.TokenType{token.PIPE}
var bitXorTokenTypes = []token.TokenType{token.CARET}
var bitAndTokenTypes = []token.TokenType{token.AMP}
var shiftTokenTypes = []token.TokenType{token.SHL, token.SHR}
var termTokenTypes = []token.TokenType{token.SUB, token.ADD}
var factorTokenTypes = []token.TokenType{token.MULT, token.DIV, token.FLOORDIV, token.MOD, token.MATMUL}
var unaryTokenTypes = []token.TokenType{token.BANG, token.SUB, token.ADD, token.TILDE}

var augmentedAssignTypes = []token.TokenType{
	token.ASSIGN,
	token.ADD_ASSIGN,
	token.SUB_ASSIGN,
	token.MULT_ASSIGN,
	token.DIV_ASSIGN,
	token.FLOORDIV_ASSIGN,
	token.MOD_ASSIGN,
	token.POW_ASSIGN,
}

var terminatorTypes = []token.TokenType{token.NEWLINE, token.SEMICOLON}

type Parser struct {
	tokens   []token.Token
	position int
}

// NOTE: The parser's position is always one unit ahead of the current
// token.

// Make initializes and returns a new Parser instance over the given tokens.
func Make(tokens []token.Token) *Parser {
	return &Parser{
		tokens:   tokens,
		position: 0,
	}
}

// Print prints the AST as prettified JSON to standard output.
func (parser *Parser) Print(statements []ast.Stmt) {
	_, err := PrintASTJSON(statements)
	if err != nil {
		fmt.Println("error producing AST JSON:", err)
	}
}

// PrintToFile writes the AST for the provided statements to a .json file.
func (parser *Parser) PrintToFile(statements []ast.Stmt, path string) error {
	return WriteASTJSONToFile(statements, path)
}

func (parser *Parser) peek() token.Token {
	return parser.tokens[parser.position]
}

func (parser *Parser) previous() token.Token {
	return parser.tokens[parser.position-1]
}

func (parser *Parser) advance() token.Token {
	if !parser.isFinished() {
		parser.position++
	}
	return parser.previous()
}

func (parser *Parser) isFinished() bool {
	tok := parser.peek()
	return tok.TokenType == token.EOF
}

func (parser *Parser) checkType(tokenType token.TokenType) bool {
	if parser.isFinished() {
		return false
	}
	return parser.peek().TokenType == tokenType
}

func (parser *Parser) isMatch(tokenTypes []token.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if parser.checkType(tokenType) {
			parser.advance()
			return true
		}
	}
	return false
}

// skipTerminators consumes zero or more consecutive NEWLINE/SEMICOLON
// tokens, used at points in the grammar where blank lines are permitted:
// between top-level declarations, inside blocks, and inside bracketed
// expression lists.
func (parser *Parser) skipTerminators() {
	for parser.isMatch(terminatorTypes) {
	}
}

// Parse parses the entire token stream into a slice of Stmt nodes,
// continuing until the end of input. Errors during parsing are collected
// but parsing continues to find additional errors where possible.
func (parser *Parser) Parse() ([]ast.Stmt, []error) {
	statements := []ast.Stmt{}
	errors := []error{}

	parser.skipTerminators()
	for !parser.isFinished() {
		statement, err := parser.declaration()
		if err != nil {
			errors = append(errors, err)
			if !parser.isFinished() {
				parser.position++
			}
			parser.skipTerminators()
			continue
		}
		statements = append(statements, statement)
		parser.skipTerminators()
	}

	return statements, errors
}

// declaration parses a top-level or block-level declaration: variable,
// function, type, enum, or import; anything else falls through to
// statement().
func (parser *Parser) declaration() (ast.Stmt, error) {
	if parser.isMatch([]token.TokenType{token.VAR}) {
		return parser.variableDeclaration(false)
	}
	if parser.isMatch([]token.TokenType{token.CONST}) {
		return parser.variableDeclaration(true)
	}
	if parser.isMatch([]token.TokenType{token.FUNC}) {
		return parser.functionDeclaration()
	}
	if parser.isMatch([]token.TokenType{token.TYPE}) {
		return parser.typeDeclaration()
	}
	if parser.isMatch([]token.TokenType{token.ENUM}) {
		return parser.enumDeclaration()
	}
	if parser.isMatch([]token.TokenType{token.IMPORT}) {
		return parser.importDeclaration()
	}
	return parser.statement()
}

func (parser *Parser) variableDeclaration(isConst bool) (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expected variable name")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expression
	if parser.isMatch([]token.TokenType{token.ASSIGN}) {
		initializer, err = parser.expression()
		if err != nil {
			return nil, err
		}
	} else if isConst {
		return nil, CreateSyntaxError(name.Line, name.Column, "const declarations require an initializer")
	}

	return ast.VarStmt{Name: name, Initializer: initializer, Const: isConst}, nil
}

func (parser *Parser) functionDeclaration() (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expected function name")
	if err != nil {
		return nil, err
	}
	fn, err := parser.functionBody(name)
	if err != nil {
		return nil, err
	}
	return ast.FuncDefStmt{Function: fn}, nil
}

// functionBody parses `(params) { body }` for both named declarations and
// anonymous function literals. name carries the zero Token for anonymous
// forms.
func (parser *Parser) functionBody(name token.Token) (ast.FuncExpr, error) {
	if _, err := parser.consume(token.LPA, "Expected '(' after function name"); err != nil {
		return ast.FuncExpr{}, err
	}

	params := []ast.Param{}
	parser.skipTerminators()
	if !parser.checkType(token.RPA) {
		for {
			parser.skipTerminators()
			variadic := parser.isMatch([]token.TokenType{token.MULT})
			paramName, err := parser.consume(token.IDENTIFIER, "Expected parameter name")
			if err != nil {
				return ast.FuncExpr{}, err
			}
			param := ast.Param{Name: paramName, Variadic: variadic}
			if !variadic && parser.isMatch([]token.TokenType{token.ASSIGN}) {
				def, err := parser.conditional()
				if err != nil {
					return ast.FuncExpr{}, err
				}
				param.Default = def
			}
			params = append(params, param)
			parser.skipTerminators()
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
	}
	parser.skipTerminators()
	if _, err := parser.consume(token.RPA, "Expected ')' after parameter list"); err != nil {
		return ast.FuncExpr{}, err
	}

	if _, err := parser.consume(token.LCUR, "Expected '{' before function body"); err != nil {
		return ast.FuncExpr{}, err
	}
	body, err := parser.block()
	if err != nil {
		return ast.FuncExpr{}, err
	}

	return ast.FuncExpr{Name: name, Params: params, Body: body}, nil
}

func (parser *Parser) typeDeclaration() (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expected type name")
	if err != nil {
		return nil, err
	}

	var parent *token.Token
	if parser.isMatch([]token.TokenType{token.COLON}) {
		p, err := parser.consume(token.IDENTIFIER, "Expected parent type name")
		if err != nil {
			return nil, err
		}
		parent = &p
	}

	if _, err := parser.consume(token.LCUR, "Expected '{' to begin type body"); err != nil {
		return nil, err
	}

	members := []ast.TypeMember{}
	parser.skipTerminators()
	for !parser.checkType(token.RCUR) && !parser.isFinished() {
		memberName, err := parser.consume(token.IDENTIFIER, "Expected member name")
		if err != nil {
			return nil, err
		}
		if parser.checkType(token.LPA) {
			fn, err := parser.functionBody(memberName)
			if err != nil {
				return nil, err
			}
			members = append(members, ast.TypeMember{Name: memberName, Method: &fn})
		} else {
			members = append(members, ast.TypeMember{Name: memberName})
		}
		parser.skipTerminators()
	}
	if _, err := parser.consume(token.RCUR, "Expected '}' after type body"); err != nil {
		return nil, err
	}

	return ast.TypeDefStmt{Name: name, Parent: parent, Members: members}, nil
}

func (parser *Parser) enumDeclaration() (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expected enum name")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LCUR, "Expected '{' to begin enum body"); err != nil {
		return nil, err
	}

	members := []ast.EnumMember{}
	parser.skipTerminators()
	for !parser.checkType(token.RCUR) && !parser.isFinished() {
		memberName, err := parser.consume(token.IDENTIFIER, "Expected enum member name")
		if err != nil {
			return nil, err
		}
		member := ast.EnumMember{Name: memberName}
		if parser.isMatch([]token.TokenType{token.ASSIGN}) {
			value, err := parser.conditional()
			if err != nil {
				return nil, err
			}
			member.Value = value
		}
		members = append(members, member)
		parser.skipTerminators()
		if !parser.isMatch([]token.TokenType{token.COMMA}) {
			parser.skipTerminators()
		}
	}
	if _, err := parser.consume(token.RCUR, "Expected '}' after enum body"); err != nil {
		return nil, err
	}

	return ast.EnumDefStmt{Name: name, Members: members}, nil
}

func (parser *Parser) importDeclaration() (ast.Stmt, error) {
	path, err := parser.consume(token.STRING, "Expected module path string")
	if err != nil {
		return nil, err
	}
	var alias *token.Token
	if parser.isMatch([]token.TokenType{token.AS}) {
		a, err := parser.consume(token.IDENTIFIER, "Expected alias name after 'as'")
		if err != nil {
			return nil, err
		}
		alias = &a
	}
	return ast.ImportStmt{Path: path, Alias: alias}, nil
}

// statement parses a single statement.
func (parser *Parser) statement() (ast.Stmt, error) {
	switch {
	case parser.isMatch([]token.TokenType{token.PRINT}):
		return parser.printStatement()
	case parser.isMatch([]token.TokenType{token.LCUR}):
		statements, err := parser.block()
		if err != nil {
			return nil, err
		}
		return ast.BlockStmt{Statements: statements}, nil
	case parser.isMatch([]token.TokenType{token.IF}):
		return parser.ifStatement()
	case parser.isMatch([]token.TokenType{token.WHILE}):
		return parser.whileStatement()
	case parser.isMatch([]token.TokenType{token.FOR}):
		return parser.forStatement()
	case parser.isMatch([]token.TokenType{token.RETURN}):
		return parser.returnStatement()
	case parser.isMatch([]token.TokenType{token.BREAK}):
		return ast.BreakStmt{Keyword: parser.previous()}, nil
	case parser.isMatch([]token.TokenType{token.CONTINUE}):
		return ast.ContinueStmt{Keyword: parser.previous()}, nil
	case parser.isMatch([]token.TokenType{token.THROW}):
		return parser.throwStatement()
	case parser.isMatch([]token.TokenType{token.ASSERT}):
		return parser.assertStatement()
	case parser.isMatch([]token.TokenType{token.TRY}):
		return parser.tryStatement()
	}

	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	return ast.ExpressionStmt{Expression: expr}, nil
}

func (parser *Parser) printStatement() (ast.Stmt, error) {
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	return ast.PrintStmt{Expression: expr}, nil
}

func (parser *Parser) whileStatement() (ast.Stmt, error) {
	condition, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LCUR, "Expected '{' before while body"); err != nil {
		return nil, err
	}
	body, err := parser.block()
	if err != nil {
		return nil, err
	}
	return ast.WhileStmt{Condition: condition, Body: ast.BlockStmt{Statements: body}}, nil
}

func (parser *Parser) forStatement() (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expected loop variable name")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.IN, "Expected 'in' after loop variable"); err != nil {
		return nil, err
	}
	iterable, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LCUR, "Expected '{' before for body"); err != nil {
		return nil, err
	}
	body, err := parser.block()
	if err != nil {
		return nil, err
	}
	return ast.ForStmt{Name: name, Iterable: iterable, Body: ast.BlockStmt{Statements: body}}, nil
}

func (parser *Parser) ifStatement() (ast.Stmt, error) {
	condition, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LCUR, "Expected '{' before if body"); err != nil {
		return nil, err
	}
	thenBody, err := parser.block()
	if err != nil {
		return nil, err
	}

	var elseStmt ast.Stmt
	if parser.isMatch([]token.TokenType{token.ELIF}) {
		elseStmt, err = parser.ifStatement()
		if err != nil {
			return nil, err
		}
	} else if parser.isMatch([]token.TokenType{token.ELSE}) {
		if _, err := parser.consume(token.LCUR, "Expected '{' before else body"); err != nil {
			return nil, err
		}
		elseBody, err := parser.block()
		if err != nil {
			return nil, err
		}
		elseStmt = ast.BlockStmt{Statements: elseBody}
	}

	return ast.IfStmt{
		Condition: condition,
		Then:      ast.BlockStmt{Statements: thenBody},
		Else:      elseStmt,
	}, nil
}

func (parser *Parser) returnStatement() (ast.Stmt, error) {
	keyword := parser.previous()
	var value ast.Expression
	if !parser.checkType(token.NEWLINE) && !parser.checkType(token.SEMICOLON) && !parser.checkType(token.RCUR) && !parser.isFinished() {
		v, err := parser.expression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	return ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (parser *Parser) throwStatement() (ast.Stmt, error) {
	keyword := parser.previous()
	value, err := parser.expression()
	if err != nil {
		return nil, err
	}
	return ast.ThrowStmt{Keyword: keyword, Value: value}, nil
}

func (parser *Parser) assertStatement() (ast.Stmt, error) {
	keyword := parser.previous()
	condition, err := parser.conditional()
	if err != nil {
		return nil, err
	}
	var message ast.Expression
	if parser.isMatch([]token.TokenType{token.COMMA}) {
		message, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	return ast.AssertStmt{Keyword: keyword, Condition: condition, Message: message}, nil
}

func (parser *Parser) tryStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LCUR, "Expected '{' before try body"); err != nil {
		return nil, err
	}
	body, err := parser.block()
	if err != nil {
		return nil, err
	}

	var catch *ast.CatchClause
	if parser.isMatch([]token.TokenType{token.CATCH}) {
		var name token.Token
		if parser.checkType(token.IDENTIFIER) {
			name = parser.advance()
		}
		var excType *token.Token
		if parser.isMatch([]token.TokenType{token.COLON}) {
			t, err := parser.consume(token.IDENTIFIER, "Expected exception type name after ':'")
			if err != nil {
				return nil, err
			}
			excType = &t
		}
		if _, err := parser.consume(token.LCUR, "Expected '{' before catch body"); err != nil {
			return nil, err
		}
		catchBody, err := parser.block()
		if err != nil {
			return nil, err
		}
		catch = &ast.CatchClause{Name: name, Type: excType, Body: ast.BlockStmt{Statements: catchBody}}
	}

	var finally *ast.BlockStmt
	if parser.isMatch([]token.TokenType{token.FINALLY}) {
		if _, err := parser.consume(token.LCUR, "Expected '{' before finally body"); err != nil {
			return nil, err
		}
		finallyBody, err := parser.block()
		if err != nil {
			return nil, err
		}
		finally = &ast.BlockStmt{Statements: finallyBody}
	}

	if catch == nil && finally == nil {
		tok := parser.previous()
		return nil, CreateSyntaxError(tok.Line, tok.Column, "'try' requires a 'catch' and/or 'finally' clause")
	}

	return ast.TryStmt{Body: ast.BlockStmt{Statements: body}, Catch: catch, Finally: finally}, nil
}

// block parses the statements inside an already-consumed opening '{' up to
// and including the closing '}'.
func (parser *Parser) block() ([]ast.Stmt, error) {
	statements := []ast.Stmt{}

	parser.skipTerminators()
	for !parser.checkType(token.RCUR) && !parser.isFinished() {
		stmt, err := parser.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		parser.skipTerminators()
	}

	if _, err := parser.consume(token.RCUR, "Expected '}' after block"); err != nil {
		return nil, err
	}
	return statements, nil
}

// ParseExpression parses a single standalone expression, the entry point
// the `eval` subcommand uses to run a `-e`/`-c` snippet and report its
// value instead of running it as a full program of statements.
func (parser *Parser) ParseExpression() (ast.Expression, error) {
	return parser.expression()
}

// expression is the entry point for parsing expressions; it begins at the
// augmented-assignment rule, the lowest-precedence level.
func (parser *Parser) expression() (ast.Expression, error) {
	return parser.assignment()
}

// assignment parses plain and augmented assignment, right-associative.
func (parser *Parser) assignment() (ast.Expression, error) {
	expr, err := parser.conditional()
	if err != nil {
		return nil, err
	}

	if parser.isMatch(augmentedAssignTypes) {
		op := parser.previous()
		value, err := parser.assignment()
		if err != nil {
			return nil, err
		}
		switch expr.(type) {
		case ast.Variable, ast.Attribute, ast.Element:
			return ast.Assign{Target: expr, Operator: op, Value: value}, nil
		default:
			return nil, CreateSyntaxError(op.Line, op.Column, "Invalid assignment target")
		}
	}

	return expr, nil
}

// conditional parses the postfix ternary `a if cond else b`.
func (parser *Parser) conditional() (ast.Expression, error) {
	then, err := parser.nullCoalesce()
	if err != nil {
		return nil, err
	}
	if parser.isMatch([]token.TokenType{token.IF}) {
		condition, err := parser.nullCoalesce()
		if err != nil {
			return nil, err
		}
		if _, err := parser.consume(token.ELSE, "Expected 'else' in conditional expression"); err != nil {
			return nil, err
		}
		elseExpr, err := parser.conditional()
		if err != nil {
			return nil, err
		}
		return ast.Conditional{Then: then, Condition: condition, Else: elseExpr}, nil
	}
	return then, nil
}

func (parser *Parser) nullCoalesce() (ast.Expression, error) {
	expr, err := parser.or()
	if err != nil {
		return nil, err
	}
	for parser.isMatch([]token.TokenType{token.NULLISH}) {
		op := parser.previous()
		right, err := parser.or()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (parser *Parser) or() (ast.Expression, error) {
	expr, err := parser.and()
	if err != nil {
		return nil, err
	}
	for parser.isMatch([]token.TokenType{token.OR}) {
		op := parser.previous()
		right, err := parser.and()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (parser *Parser) and() (ast.Expression, error) {
	expr, err := parser.richCompare()
	if err != nil {
		return nil, err
	}
	for parser.isMatch([]token.TokenType{token.AND}) {
		op := parser.previous()
		right, err := parser.richCompare()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

// richCompare parses a chain of comparison operators: `a < b <= c` becomes
// a single RichCompare node; a lone comparison collapses to a Binary node.
func (parser *Parser) richCompare() (ast.Expression, error) {
	first, err := parser.bitOr()
	if err != nil {
		return nil, err
	}

	operands := []ast.Expression{first}
	operators := []token.Token{}
	for parser.isMatch(richCompareTokenTypes) {
		operators = append(operators, parser.previous())
		next, err := parser.bitOr()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}

	switch len(operators) {
	case 0:
		return first, nil
	case 1:
		return ast.Binary{Left: operands[0], Operator: operators[0], Right: operands[1]}, nil
	default:
		return ast.RichCompare{Operands: operands, Operators: operators}, nil
	}
}

func (parser *Parser) bitOr() (ast.Expression, error) {
	return parser.leftAssocBinary(parser.bitXor, bitOrTokenTypes)
}

func (parser *Parser) bitXor() (ast.Expression, error) {
	return parser.leftAssocBinary(parser.bitAnd, bitXorTokenTypes)
}

func (parser *Parser) bitAnd() (ast.Expression, error) {
	return parser.leftAssocBinary(parser.shift, bitAndTokenTypes)
}

func (parser *Parser) shift() (ast.Expression, error) {
	return parser.leftAssocBinary(parser.term, shiftTokenTypes)
}

func (parser *Parser) term() (ast.Expression, error) {
	return parser.leftAssocBinary(parser.factor, termTokenTypes)
}

func (parser *Parser) factor() (ast.Expression, error) {
	return parser.leftAssocBinary(parser.power, factorTokenTypes)
}

// leftAssocBinary parses `next (op next)*` as a left-associative chain of
// Binary nodes, used by every binary precedence level above power.
func (parser *Parser) leftAssocBinary(next func() (ast.Expression, error), types []token.TokenType) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(types) {
		op := parser.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

// power parses right-associative `**`.
func (parser *Parser) power() (ast.Expression, error) {
	expr, err := parser.unary()
	if err != nil {
		return nil, err
	}
	if parser.isMatch([]token.TokenType{token.POW}) {
		op := parser.previous()
		right, err := parser.power()
		if err != nil {
			return nil, err
		}
		return ast.Binary{Left: expr, Operator: op, Right: right}, nil
	}
	return expr, nil
}

func (parser *Parser) unary() (ast.Expression, error) {
	if parser.isMatch(unaryTokenTypes) {
		op := parser.previous()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Operator: op, Right: right}, nil
	}
	return parser.postfix()
}

// postfix parses attribute access, subscript/slice, and call expressions
// chained after a primary expression.
func (parser *Parser) postfix() (ast.Expression, error) {
	expr, err := parser.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case parser.isMatch([]token.TokenType{token.DOT}):
			name, err := parser.consume(token.IDENTIFIER, "Expected property name after '.'")
			if err != nil {
				return nil, err
			}
			expr = ast.Attribute{Object: expr, Name: name}
		case parser.isMatch([]token.TokenType{token.LBRACK}):
			bracket := parser.previous()
			node, err := parser.finishElementOrSlice(expr, bracket)
			if err != nil {
				return nil, err
			}
			expr = node
		case parser.isMatch([]token.TokenType{token.LPA}):
			node, err := parser.finishCall(expr)
			if err != nil {
				return nil, err
			}
			expr = node
		default:
			return expr, nil
		}
	}
}

func (parser *Parser) finishElementOrSlice(object ast.Expression, bracket token.Token) (ast.Expression, error) {
	var start, stop, step ast.Expression
	var err error

	if !parser.checkType(token.COLON) && !parser.checkType(token.RBRACK) {
		start, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}

	if !parser.isMatch([]token.TokenType{token.COLON}) {
		if _, err := parser.consume(token.RBRACK, "Expected ']' after index"); err != nil {
			return nil, err
		}
		return ast.Element{Object: object, Index: start, Bracket: bracket}, nil
	}

	if !parser.checkType(token.COLON) && !parser.checkType(token.RBRACK) {
		stop, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if parser.isMatch([]token.TokenType{token.COLON}) {
		if !parser.checkType(token.RBRACK) {
			step, err = parser.expression()
			if err != nil {
				return nil, err
			}
		}
	}
	if _, err := parser.consume(token.RBRACK, "Expected ']' after slice"); err != nil {
		return nil, err
	}
	return ast.Slice{Object: object, Start: start, Stop: stop, Step: step, Bracket: bracket}, nil
}

func (parser *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	args := []ast.Expression{}
	parser.skipTerminators()
	if !parser.checkType(token.RPA) {
		for {
			parser.skipTerminators()
			arg, err := parser.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			parser.skipTerminators()
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
	}
	parser.skipTerminators()
	closing, err := parser.consume(token.RPA, "Expected ')' after argument list")
	if err != nil {
		return nil, err
	}
	return ast.Call{Callee: callee, Arguments: args, Paren: closing}, nil
}

// primary parses literals, groupings, collection constructors, and
// function literals.
func (parser *Parser) primary() (ast.Expression, error) {
	switch {
	case parser.isMatch([]token.TokenType{token.FALSE}):
		return ast.Literal{Value: false}, nil
	case parser.isMatch([]token.TokenType{token.NULL}):
		return ast.Literal{Value: nil}, nil
	case parser.isMatch([]token.TokenType{token.TRUE}):
		return ast.Literal{Value: true}, nil
	case parser.isMatch([]token.TokenType{token.FLOAT, token.INT, token.STRING, token.REGEX}):
		return ast.Literal{Value: parser.previous().Literal}, nil
	case parser.isMatch([]token.TokenType{token.IDENTIFIER}):
		return ast.Variable{Name: parser.previous()}, nil
	case parser.isMatch([]token.TokenType{token.FUNC}):
		var name token.Token
		if parser.checkType(token.IDENTIFIER) {
			name = parser.advance()
		}
		return parser.functionBody(name)
	case parser.isMatch([]token.TokenType{token.LPA}):
		return parser.finishGroupOrTuple()
	case parser.isMatch([]token.TokenType{token.LBRACK}):
		return parser.finishList()
	case parser.isMatch([]token.TokenType{token.LCUR}):
		return parser.finishSetOrDict()
	}

	currentToken := parser.peek()
	return nil, CreateSyntaxError(currentToken.Line, currentToken.Column, "Unrecognised expression.")
}

func (parser *Parser) finishGroupOrTuple() (ast.Expression, error) {
	openParen := parser.previous()
	parser.skipTerminators()
	if parser.isMatch([]token.TokenType{token.RPA}) {
		return ast.TupleExpr{Elements: nil, Paren: parser.previous()}, nil
	}

	first, err := parser.expression()
	if err != nil {
		return nil, err
	}
	parser.skipTerminators()

	if parser.isMatch([]token.TokenType{token.COMMA}) {
		elements := []ast.Expression{first}
		parser.skipTerminators()
		for !parser.checkType(token.RPA) {
			elem, err := parser.expression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
			parser.skipTerminators()
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
			parser.skipTerminators()
		}
		closing, err := parser.consume(token.RPA, "Expected ')' after tuple elements")
		if err != nil {
			return nil, err
		}
		return ast.TupleExpr{Elements: elements, Paren: closing}, nil
	}

	if _, err := parser.consume(token.RPA, fmt.Sprintf("expression is missing '%s'", token.RPA)); err != nil {
		return nil, err
	}
	_ = openParen
	return ast.Grouping{Expression: first}, nil
}

func (parser *Parser) finishList() (ast.Expression, error) {
	bracket := parser.previous()
	elements := []ast.Expression{}
	parser.skipTerminators()
	if !parser.checkType(token.RBRACK) {
		for {
			parser.skipTerminators()
			elem, err := parser.expression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
			parser.skipTerminators()
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
			parser.skipTerminators()
		}
	}
	parser.skipTerminators()
	if _, err := parser.consume(token.RBRACK, "Expected ']' after list elements"); err != nil {
		return nil, err
	}
	return ast.ListExpr{Elements: elements, Bracket: bracket}, nil
}

func (parser *Parser) finishSetOrDict() (ast.Expression, error) {
	brace := parser.previous()
	parser.skipTerminators()
	if parser.isMatch([]token.TokenType{token.RCUR}) {
		return ast.DictExpr{Entries: nil, Brace: parser.previous()}, nil
	}

	first, err := parser.expression()
	if err != nil {
		return nil, err
	}
	parser.skipTerminators()

	if parser.isMatch([]token.TokenType{token.COLON}) {
		firstValue, err := parser.expression()
		if err != nil {
			return nil, err
		}
		entries := []ast.DictEntry{{Key: first, Value: firstValue}}
		parser.skipTerminators()
		for parser.isMatch([]token.TokenType{token.COMMA}) {
			parser.skipTerminators()
			if parser.checkType(token.RCUR) {
				break
			}
			key, err := parser.expression()
			if err != nil {
				return nil, err
			}
			if _, err := parser.consume(token.COLON, "Expected ':' in dict entry"); err != nil {
				return nil, err
			}
			value, err := parser.expression()
			if err != nil {
				return nil, err
			}
			entries = append(entries, ast.DictEntry{Key: key, Value: value})
			parser.skipTerminators()
		}
		if _, err := parser.consume(token.RCUR, "Expected '}' after dict entries"); err != nil {
			return nil, err
		}
		return ast.DictExpr{Entries: entries, Brace: brace}, nil
	}

	elements := []ast.Expression{first}
	for parser.isMatch([]token.TokenType{token.COMMA}) {
		parser.skipTerminators()
		if parser.checkType(token.RCUR) {
			break
		}
		elem, err := parser.expression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
		parser.skipTerminators()
	}
	if _, err := parser.consume(token.RCUR, "Expected '}' after set elements"); err != nil {
		return nil, err
	}
	return ast.SetExpr{Elements: elements, Brace: brace}, nil
}

// consume advances past the current token if it matches tokenType,
// otherwise returns a SyntaxError anchored at the current token.
func (parser *Parser) consume(tokenType token.TokenType, errorMessage string) (token.Token, error) {
	if parser.checkType(tokenType) {
		return parser.advance(), nil
	}
	currentToken := parser.peek()
	return token.CreateToken(token.EOF, 0, 0), CreateSyntaxError(currentToken.Line, currentToken.Column, errorMessage)
}
