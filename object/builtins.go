package object

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// BuiltinNames lists every name the runtime seeds into the global
// namespace before any user code compiles or runs, in the fixed order the
// compiler's global slot table, the vm's globals slice, and the
// tree-walking interpreter's root Env all agree on. Appending to this list
// is safe; user globals are always defined after it and never collide with
// it since globalTable.define is name-keyed.
var BuiltinNames = []string{"str", "repr", "len", "int", "float", "bool", "Exception"}

// DefaultGlobals returns the builtin callables for BuiltinNames, in the
// same order, ready to seed a fresh vm's globals slice or interpreter Env.
func DefaultGlobals() []Value {
	return []Value{
		&Builtin{Name: "str", Fn: builtinStr},
		&Builtin{Name: "repr", Fn: builtinRepr},
		&Builtin{Name: "len", Fn: builtinLen},
		&Builtin{Name: "int", Fn: builtinInt},
		&Builtin{Name: "float", Fn: builtinFloat},
		&Builtin{Name: "bool", Fn: builtinBool},
		&Builtin{Name: "Exception", Fn: builtinException},
	}
}

// ToStr renders v the way the `str` builtin and PrintStmt do: through the
// type's IStr slot, falling back to IRepr and finally to a raw Go rendering
// for a value that wires neither.
func ToStr(v Value) string {
	t := v.Type()
	if t.IStr != nil {
		return t.IStr(v)
	}
	if t.IRepr != nil {
		return t.IRepr(v)
	}
	return fmt.Sprintf("%v", v)
}

// ToRepr renders v the way the `repr` builtin does: through IRepr first,
// since a repr should round-trip more than a plain IStr does, falling back
// to IStr and finally to a raw Go rendering.
func ToRepr(v Value) string {
	t := v.Type()
	if t.IRepr != nil {
		return t.IRepr(v)
	}
	if t.IStr != nil {
		return t.IStr(v)
	}
	return fmt.Sprintf("%v", v)
}

// Truthy reports v's boolean value through IBool, defaulting to true for a
// type that wires no IBool slot at all.
func Truthy(v Value) bool {
	if fn := v.Type().IBool; fn != nil {
		return fn(v)
	}
	return true
}

func init() {
	exceptionType.IStr = func(self Value) string { return self.(*Exception).Error() }
}

func builtinStr(th *Thread, args []Value) (Value, *Exception) {
	if len(args) != 1 {
		return nil, NewException(KindType, "str() takes exactly one argument (%d given)", len(args))
	}
	return NewString(ToStr(args[0])), nil
}

func builtinRepr(th *Thread, args []Value) (Value, *Exception) {
	if len(args) != 1 {
		return nil, NewException(KindType, "repr() takes exactly one argument (%d given)", len(args))
	}
	return NewString(ToRepr(args[0])), nil
}

func builtinLen(th *Thread, args []Value) (Value, *Exception) {
	if len(args) != 1 {
		return nil, NewException(KindType, "len() takes exactly one argument (%d given)", len(args))
	}
	t := args[0].Type()
	if t.ILen == nil {
		return nil, NewException(KindType, "object of type '%s' has no len()", t.Name)
	}
	n, excErr := t.ILen(args[0])
	if excErr != nil {
		return nil, excErr
	}
	return NewInt(int64(n)), nil
}

func builtinBool(th *Thread, args []Value) (Value, *Exception) {
	if len(args) == 0 {
		return False, nil
	}
	if len(args) != 1 {
		return nil, NewException(KindType, "bool() takes at most one argument (%d given)", len(args))
	}
	return NewBool(Truthy(args[0])), nil
}

func builtinInt(th *Thread, args []Value) (Value, *Exception) {
	if len(args) == 0 {
		return NewInt(0), nil
	}
	if len(args) != 1 {
		return nil, NewException(KindType, "int() takes at most one argument (%d given)", len(args))
	}
	switch v := args[0].(type) {
	case *Int:
		return v, nil
	case *Float:
		i, _ := big.NewFloat(v.Val).Int(nil)
		return NewIntFromBig(i), nil
	case *Bool:
		if v.Val {
			return NewInt(1), nil
		}
		return NewInt(0), nil
	case *String:
		text := strings.TrimSpace(v.Val)
		n, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, NewException(KindValue, "invalid literal for int() with base 10: '%s'", v.Val)
		}
		return NewIntFromBig(n), nil
	default:
		return nil, NewException(KindType, "int() argument must be a string or a number, not '%s'", args[0].Type().Name)
	}
}

func builtinFloat(th *Thread, args []Value) (Value, *Exception) {
	if len(args) == 0 {
		return NewFloat(0), nil
	}
	if len(args) != 1 {
		return nil, NewException(KindType, "float() takes at most one argument (%d given)", len(args))
	}
	switch v := args[0].(type) {
	case *Float:
		return v, nil
	case *Int:
		f := new(big.Float).SetInt(v.Val)
		fv, _ := f.Float64()
		return NewFloat(fv), nil
	case *Bool:
		if v.Val {
			return NewFloat(1), nil
		}
		return NewFloat(0), nil
	case *String:
		fv, err := strconv.ParseFloat(strings.TrimSpace(v.Val), 64)
		if err != nil {
			return nil, NewException(KindValue, "could not convert string to float: '%s'", v.Val)
		}
		return NewFloat(fv), nil
	default:
		return nil, NewException(KindType, "float() argument must be a string or a number, not '%s'", args[0].Type().Name)
	}
}

// builtinException is the script-facing constructor behind `Exception(...)`
// and its subclasses-to-be: a single argument becomes the exception's
// Message (stringified if not already a string) and Payload, mirroring how
// OP_THROW wraps a raw thrown value that isn't already an Exception.
func builtinException(th *Thread, args []Value) (Value, *Exception) {
	var payload Value = None
	message := ""
	if len(args) > 0 {
		payload = args[0]
		message = ToStr(args[0])
	}
	return &Exception{Kind: KindUser, Message: message, Payload: payload}, nil
}
