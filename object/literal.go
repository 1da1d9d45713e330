package object

// FromLiteral converts the native Go value a lexer-produced literal token
// or a compiled constant pool entry carries into the matching runtime
// Value. Both the tree-walking interpreter and the bytecode vm share this
// conversion so a literal means the same thing under either execution
// strategy.
func FromLiteral(v any) Value {
	switch val := v.(type) {
	case nil:
		return None
	case bool:
		return NewBool(val)
	case int64:
		return NewInt(val)
	case float64:
		return NewFloat(val)
	case complex128:
		return NewComplex(val)
	case string:
		return NewString(val)
	default:
		return None
	}
}
