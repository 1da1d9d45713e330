package vm

import (
	"strings"

	"nilan/compiler"
	"nilan/object"
)

func binaryDispatch(op compiler.Opcode) bool {
	switch op {
	case compiler.OP_ADD, compiler.OP_SUB, compiler.OP_MUL, compiler.OP_DIV,
		compiler.OP_FLOORDIV, compiler.OP_MOD, compiler.OP_POW, compiler.OP_MATMUL,
		compiler.OP_BITAND, compiler.OP_BITOR, compiler.OP_BITXOR, compiler.OP_SHL, compiler.OP_SHR,
		compiler.OP_EQ, compiler.OP_NEQ, compiler.OP_SEQ,
		compiler.OP_LT, compiler.OP_LTE, compiler.OP_GT, compiler.OP_GTE,
		compiler.OP_IN:
		return true
	default:
		return false
	}
}

func unaryDispatch(op compiler.Opcode) bool {
	switch op {
	case compiler.OP_NEG, compiler.OP_POS, compiler.OP_NOT, compiler.OP_BITNOT:
		return true
	default:
		return false
	}
}

// execBinary pops the right then left operand (pushed in that order by
// the compiler) and applies the opcode's dunder slot, the bytecode
// counterpart of the tree-walking interpreter's applyBinary.
func (vm *VM) execBinary(op compiler.Opcode) *object.Exception {
	right, _ := vm.stack.Pop()
	left, _ := vm.stack.Pop()

	switch op {
	case compiler.OP_ADD:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IAdd })
	case compiler.OP_SUB:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.ISub })
	case compiler.OP_MUL:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IMul })
	case compiler.OP_DIV:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IDiv })
	case compiler.OP_FLOORDIV:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IFloorDiv })
	case compiler.OP_MOD:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IMod })
	case compiler.OP_POW:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IPow })
	case compiler.OP_MATMUL:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IMatMul })
	case compiler.OP_BITAND:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IBitAnd })
	case compiler.OP_BITOR:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IBitOr })
	case compiler.OP_BITXOR:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IBitXor })
	case compiler.OP_SHL:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IShl })
	case compiler.OP_SHR:
		return vm.binSlot(left, right, func(t *object.Type) object.BinaryFunc { return t.IShr })

	case compiler.OP_EQ:
		eq, exc := valuesEqual(left, right)
		if exc != nil {
			return exc
		}
		vm.stack.Push(object.NewBool(eq))
		return nil
	case compiler.OP_NEQ:
		eq, exc := valuesEqual(left, right)
		if exc != nil {
			return exc
		}
		vm.stack.Push(object.NewBool(!eq))
		return nil
	case compiler.OP_SEQ:
		vm.stack.Push(object.NewBool(left.Type() == right.Type() && mustEqual(left, right)))
		return nil

	case compiler.OP_LT, compiler.OP_LTE, compiler.OP_GT, compiler.OP_GTE:
		c, exc := compareValues(left, right)
		if exc != nil {
			return exc
		}
		var result bool
		switch op {
		case compiler.OP_LT:
			result = c < 0
		case compiler.OP_LTE:
			result = c <= 0
		case compiler.OP_GT:
			result = c > 0
		case compiler.OP_GTE:
			result = c >= 0
		}
		vm.stack.Push(object.NewBool(result))
		return nil

	case compiler.OP_IN:
		ok, exc := containsValue(left, right)
		if exc != nil {
			return exc
		}
		vm.stack.Push(object.NewBool(ok))
		return nil
	}
	return object.NewException(object.KindValue, "vm: unhandled binary opcode %d", op)
}

func (vm *VM) binSlot(left, right object.Value, pick func(*object.Type) object.BinaryFunc) *object.Exception {
	t := left.Type()
	fn := pick(t)
	if fn == nil {
		return object.NewException(object.KindType, "unsupported operand type(s) for operation: '%s'", t.Name)
	}
	v, exc := fn(left, right)
	if exc != nil {
		return exc
	}
	vm.stack.Push(v)
	return nil
}

func (vm *VM) execUnary(op compiler.Opcode) *object.Exception {
	v, _ := vm.stack.Pop()
	t := v.Type()
	var fn object.UnaryFunc
	switch op {
	case compiler.OP_NEG:
		fn = t.INeg
	case compiler.OP_POS:
		fn = t.IPos
	case compiler.OP_NOT:
		vm.stack.Push(object.NewBool(!truthyValue(v)))
		return nil
	case compiler.OP_BITNOT:
		fn = t.IBitNot
	}
	if fn == nil {
		return object.NewException(object.KindType, "unsupported operand type for unary operation: '%s'", t.Name)
	}
	result, exc := fn(v)
	if exc != nil {
		return exc
	}
	vm.stack.Push(result)
	return nil
}

// valuesEqual implements `==` across the whole value space, including
// containers, where dunder dispatch alone is not enough.
func valuesEqual(a, b object.Value) (bool, *object.Exception) {
	switch av := a.(type) {
	case *object.NoneType:
		_, ok := b.(*object.NoneType)
		return ok, nil
	case *object.List:
		bv, ok := b.(*object.List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false, nil
		}
		for i := range av.Elements {
			eq, exc := valuesEqual(av.Elements[i], bv.Elements[i])
			if exc != nil || !eq {
				return false, exc
			}
		}
		return true, nil
	case *object.Tuple:
		bv, ok := b.(*object.Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false, nil
		}
		for i := range av.Elements {
			eq, exc := valuesEqual(av.Elements[i], bv.Elements[i])
			if exc != nil || !eq {
				return false, exc
			}
		}
		return true, nil
	}
	t := a.Type()
	if t != b.Type() {
		if t.ICompare != nil && b.Type().ICompare != nil {
			c, err := t.ICompare(a, b)
			if err == nil {
				return c == 0, nil
			}
		}
		return false, nil
	}
	if t.IEq != nil {
		r, err := t.IEq(a, b)
		if err != nil {
			return false, err
		}
		if bv, ok := r.(*object.Bool); ok {
			return bv.Val, nil
		}
	}
	if t.ICompare != nil {
		c, err := t.ICompare(a, b)
		if err != nil {
			return false, err
		}
		return c == 0, nil
	}
	return a == b, nil
}

func mustEqual(a, b object.Value) bool {
	eq, _ := valuesEqual(a, b)
	return eq
}

func compareValues(a, b object.Value) (int, *object.Exception) {
	t := a.Type()
	if t.ICompare == nil {
		return 0, object.NewException(object.KindType, "'%s' is not orderable", t.Name)
	}
	return t.ICompare(a, b)
}

// containsValue implements the `in` operator across every container type,
// mirroring the tree-walking interpreter's own copy since object stays
// free of any dependency on either execution strategy.
func containsValue(needle, haystack object.Value) (bool, *object.Exception) {
	switch h := haystack.(type) {
	case *object.List:
		for _, e := range h.Elements {
			if eq, _ := valuesEqual(needle, e); eq {
				return true, nil
			}
		}
		return false, nil
	case *object.Tuple:
		for _, e := range h.Elements {
			if eq, _ := valuesEqual(needle, e); eq {
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
