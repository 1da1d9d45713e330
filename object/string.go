package object

import "strings"

// String is an immutable UTF-8 text value.
type String struct {
	Val string
}

var stringType = &Type{Name: "str"}

func (s *String) Type() *Type { return stringType }

func NewString(v string) *String { return &String{Val: v} }

func init() {
	stringType.IAdd = func(self, other Value) (Value, *Exception) {
		a, ok1 := self.(*String)
		b, ok2 := other.(*String)
		if !ok1 || !ok2 {
			return nil, NewException(KindType, "can only concatenate str to str")
		}
		return NewString(a.Val + b.Val), nil
	}
	stringType.ICompare = func(self, other Value) (int, *Exception) {
		a, ok1 := self.(*String)
		b, ok2 := other.(*String)
		if !ok1 || !ok2 {
			return 0, NewException(KindType, "unsupported operand types for comparison")
		}
		return strings.Compare(a.Val, b.Val), nil
	}
	stringType.ILen = func(self Value) (int, *Exception) {
		return len([]rune(self.(*String).Val)), nil
	}
	stringType.IBool = func(self Value) bool { return self.(*String).Val != "" }
	stringType.IStr = func(self Value) string { return self.(*String).Val }
	stringType.IRepr = func(self Value) string { return "\"" + self.(*String).Val + "\"" }
	stringType.IGetItem = func(self Value, index Value) (Value, *Exception) {
		s := []rune(self.(*String).Val)
		idx, ok := index.(*Int)
		if !ok {
			return nil, NewException(KindType, "string indices must be integers")
		}
		i := int(idx.Val.Int64())
		if i < 0 {
			i += len(s)
		}
		if i < 0 || i >= len(s) {
			return nil, NewException(KindIndex, "string index out of range")
		}
		return NewString(string(s[i])), nil
	}
	stringType.IIter = func(self Value) (Value, *Exception) {
		return NewListIterator(stringRunes(self.(*String))), nil
	}
}

func stringRunes(s *String) []Value {
	rs := []rune(s.Val)
	out := make([]Value, len(rs))
	for i, r := range rs {
		out[i] = NewString(string(r))
	}
	return out
}
