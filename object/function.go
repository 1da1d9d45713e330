package object

// Function is a user-defined closure. Body is carried as `any` (the
// compiler's *compiler.Bytecode, or an AST node for the tree-walking
// interpreter) so that object never imports compiler or ast.
type Function struct {
	Name     string
	Params   []FuncParam
	Body     any
	Closure  *Env
	IsMethod bool
}

// FuncParam mirrors ast.Param without requiring object to import ast.
type FuncParam struct {
	Name     string
	Default  Value // nil when the parameter has no default
	Variadic bool
}

var functionType = &Type{Name: "function"}

func (f *Function) Type() *Type { return functionType }

// Builtin is a function implemented directly in Go, exposed the way the
// teacher's standard library builtins are: name plus a CallFunc.
type Builtin struct {
	Name string
	Fn   func(th *Thread, args []Value) (Value, *Exception)
}

var builtinType = &Type{Name: "builtin_function"}

func (b *Builtin) Type() *Type { return builtinType }

func init() {
	builtinType.ICall = func(th *Thread, self Value, args []Value) (Value, *Exception) {
		return self.(*Builtin).Fn(th, args)
	}
	builtinType.IStr = func(self Value) string {
		return "<builtin function " + self.(*Builtin).Name + ">"
	}
}

// Env is a lexical scope: a chain of name-to-value bindings. It is the
// runtime counterpart of the compiler's local-slot resolution for code
// paths (the tree-walking interpreter, module-level globals) that need
// name-addressed storage instead of slot-addressed storage.
type Env struct {
	vars   map[string]Value
	consts map[string]bool
	parent *Env
}

// NewEnv creates a scope chained to parent (nil for the outermost scope).
func NewEnv(parent *Env) *Env {
	return &Env{vars: map[string]Value{}, consts: map[string]bool{}, parent: parent}
}

// Define binds name in this scope, shadowing any outer binding.
func (e *Env) Define(name string, v Value, isConst bool) {
	e.vars[name] = v
	if isConst {
		e.consts[name] = true
	}
}

// Get looks up name, walking outward through enclosing scopes.
func (e *Env) Get(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign rebinds an already-declared name in the nearest enclosing scope
// that declares it, reporting false if it was never declared, and a
// *Exception if it was declared const.
func (e *Env) Assign(name string, v Value) (bool, *Exception) {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			if s.consts[name] {
				return true, NewException(KindType, "cannot assign to const %q", name)
			}
			s.vars[name] = v
			return true, nil
		}
	}
	return false, nil
}

// Module is an imported compilation unit's namespace.
type Module struct {
	Name    string
	Globals *Env
}

var moduleType = &Type{Name: "module"}

func (m *Module) Type() *Type { return moduleType }

func init() {
	moduleType.IGetAttr = func(self Value, name string) (Value, *Exception) {
		m := self.(*Module)
		if v, ok := m.Globals.Get(name); ok {
			return v, nil
		}
		return nil, NewException(KindAttribute, "module %q has no attribute %q", m.Name, name)
	}
}
