package interpreter

import (
	"fmt"
	"strings"

	"nilan/object"
)

// truthy implements the interpreter's notion of truthiness: none and the
// boolean false are false, containers/strings defer to their IBool slot
// when present, everything else is true.
func truthy(v object.Value) bool {
	switch val := v.(type) {
	case *object.NoneType:
		return false
	case *object.Bool:
		return val.Val
	}
	if fn := v.Type().IBool; fn != nil {
		return fn(v)
	}
	return true
}

// stringify renders a value for `print`, preferring the type's IStr slot
// and falling back to IRepr, then a generic placeholder.
func stringify(v object.Value) string {
	t := v.Type()
	if t.IStr != nil {
		return t.IStr(v)
	}
	if t.IRepr != nil {
		return t.IRepr(v)
	}
	switch val := v.(type) {
	case *object.List:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = stringify(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *object.Tuple:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = stringify(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *object.Dict:
		parts := make([]string, len(val.Pairs))
		for i, p := range val.Pairs {
			parts[i] = stringify(p.Key) + ": " + stringify(p.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *object.Set:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = stringify(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *object.Function:
		return fmt.Sprintf("<function %s>", val.Name)
	case *object.Instance:
		return fmt.Sprintf("<%s instance>", val.Class.Name)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// valuesEqualPublic implements `==`/`===` across the whole value space,
// including containers, where dunder dispatch alone is not enough.
func valuesEqualPublic(a, b object.Value) bool {
	switch av := a.(type) {
	case *object.NoneType:
		_, ok := b.(*object.NoneType)
		return ok
	case *object.List:
		bv, ok := b.(*object.List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqualPublic(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *object.Tuple:
		bv, ok := b.(*object.Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqualPublic(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	}
	t := a.Type()
	if t != b.Type() {
		// allow numeric cross-type equality through the promotion lattice
		if t.ICompare != nil && b.Type().ICompare != nil {
			if c, err := t.ICompare(a, b); err == nil {
				return c == 0
			}
		}
		return false
	}
	if t.IEq != nil {
		r, err := t.IEq(a, b)
		if err == nil {
			if bv, ok := r.(*object.Bool); ok {
				return bv.Val
			}
		}
	}
	if t.ICompare != nil {
		c, err := t.ICompare(a, b)
		if err == nil {
			return c == 0
		}
	}
	return a == b
}

// literalToValue converts the native Go value a Literal AST node carries
// (produced by the lexer's number/string scanning) into the matching
// runtime Value.
func literalToValue(v any) object.Value {
	return object.FromLiteral(v)
}

// containsValue implements the `in` operator across every container type.
func containsValue(needle, haystack object.Value) (bool, *object.Exception) {
	switch h := haystack.(type) {
	case *object.List:
		for _, e := range h.Elements {
			if valuesEqualPublic(needle, e) {
				return true, nil
			}
		}
		return false, nil
	case *object.Tuple:
		for _, e := range h.Elements {
			if valuesEqualPublic(needle, e) {
				return true, nil
			}
		}
		return false, nil
	case *object.Set:
		return h.Contains(needle), nil
	case *object.Dict:
		_, ok := h.Get(needle)
		return ok, nil
	case *object.String:
		n, ok := needle.(*object.String)
		if !ok {
			return false, object.NewException(object.KindType, "'in <string>' requires string as left operand")
		}
		return strings.Contains(h.Val, n.Val), nil
	default:
		return false, object.NewException(object.KindType, "argument of type '%s' is not iterable", haystack.Type().Name)
	}
}
