package compiler

// CompiledFunction is the compile-time descriptor for a function literal,
// stored in the enclosing scope's constant pool and materialized into a
// runtime closure by OP_MAKE_FUNCTION.
type CompiledFunction struct {
	Name      string
	Params    []CompiledParam
	Bytecode  *Bytecode
	NumLocals int
	// IsMethod marks a function compiled from a type's member block: its
	// frame reserves local slot 0 for the implicit `self` receiver, which
	// is never listed in Params.
	IsMethod bool
}

// CompiledParam mirrors ast.Param at the bytecode level; DefaultConstIdx
// indexes the enclosing function's constant pool when HasDefault is true.
type CompiledParam struct {
	Name            string
	HasDefault      bool
	DefaultConstIdx int
	Variadic        bool
}

// TypeTemplate is the compile-time descriptor for a `type Name { ... }`
// declaration, materialized by OP_MAKE_TYPE.
type TypeTemplate struct {
	Name       string
	ParentName string
	HasParent  bool
	Methods    map[string]*CompiledFunction
}

// EnumTemplate is the compile-time descriptor for an `enum Name { ... }`
// declaration, materialized by OP_MAKE_ENUM. Members without a value are
// numbered from the previous member's value plus one, as in the
// tree-walking interpreter. A member value that is not a simple
// compile-time constant also falls back to that numbering here, whereas the
// interpreter evaluates the expression.
type EnumTemplate struct {
	Name    string
	Members []EnumMemberTemplate
}

type EnumMemberTemplate struct {
	Name          string
	HasValue      bool
	ValueConstIdx int
}
