package object

import (
	"math/big"
	"strconv"
)

// Int is an arbitrary-precision integer value, backed by math/big the way
// the spec's numeric tower requires for unbounded integer arithmetic.
type Int struct {
	Val *big.Int
}

var intType = &Type{Name: "int"}

func (i *Int) Type() *Type { return intType }

// NewInt wraps a native int64 as a runtime Int.
func NewInt(v int64) *Int { return &Int{Val: big.NewInt(v)} }

// NewIntFromBig wraps an existing *big.Int without copying.
func NewIntFromBig(v *big.Int) *Int { return &Int{Val: v} }

func (i *Int) String() string { return i.Val.String() }

// Float is a 64-bit floating point value.
type Float struct {
	Val float64
}

var floatType = &Type{Name: "float"}

func (f *Float) Type() *Type { return floatType }

func NewFloat(v float64) *Float { return &Float{Val: v} }

func (f *Float) String() string { return strconv.FormatFloat(f.Val, 'g', -1, 64) }

// Complex is a complex128 value produced by imaginary literals (`3i`) and
// complex arithmetic promotion.
type Complex struct {
	Val complex128
}

var complexType = &Type{Name: "complex"}

func (c *Complex) Type() *Type { return complexType }

func NewComplex(v complex128) *Complex { return &Complex{Val: v} }

// Bool is the singleton-backed boolean value; True and False below are the
// only two instances that ever exist.
type Bool struct {
	Val bool
}

var boolType = &Type{Name: "bool"}

func (b *Bool) Type() *Type { return boolType }

var (
	True  = &Bool{Val: true}
	False = &Bool{Val: false}
)

// NewBool returns the shared True or False singleton for v.
func NewBool(v bool) *Bool {
	if v {
		return True
	}
	return False
}

// None is the singleton absent-value type, the runtime's `nil`.
type NoneType struct{}

var noneType = &Type{Name: "none"}

func (n *NoneType) Type() *Type { return noneType }

var None = &NoneType{}

// numericRank orders the numeric tower for promotion: int < float < complex,
// per the promotion lattice documented alongside the interpreter's binary
// arithmetic dispatch.
func numericRank(v Value) int {
	switch v.(type) {
	case *Int:
		return 0
	case *Float:
		return 1
	case *Complex:
		return 2
	default:
		return -1
	}
}

// PromoteNumeric coerces a and b to the same numeric representation,
// widening the narrower operand up the int -> float -> complex lattice.
// Returns ok=false if either value is not numeric.
func PromoteNumeric(a, b Value) (pa, pb Value, ok bool) {
	ra, rb := numericRank(a), numericRank(b)
	if ra < 0 || rb < 0 {
		return nil, nil, false
	}
	rank := ra
	if rb > rank {
		rank = rb
	}
	return widenTo(a, rank), widenTo(b, rank), true
}

func widenTo(v Value, rank int) Value {
	switch rank {
	case 0:
		return v
	case 1:
		switch x := v.(type) {
		case *Int:
			f := new(big.Float).SetInt(x.Val)
			fv, _ := f.Float64()
			return NewFloat(fv)
		case *Float:
			return x
		}
	case 2:
		switch x := v.(type) {
		case *Int:
			f := new(big.Float).SetInt(x.Val)
			fv, _ := f.Float64()
			return NewComplex(complex(fv, 0))
		case *Float:
			return NewComplex(complex(x.Val, 0))
		case *Complex:
			return x
		}
	}
	return v
}
