package object

import (
	"math"
	"math/big"
)

// arith.go wires the numeric tower's dunder slots (int/float/complex
// add/sub/mul/div/...) using the promotion lattice in numeric.go. Each
// binary slot promotes its operands to a common representation before
// dispatching to the matching math/big or native Go operator.

func init() {
	intType.IAdd = binOp(
		func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) },
		func(a, b float64) float64 { return a + b },
		func(a, b complex128) complex128 { return a + b },
	)
	intType.ISub = binOp(
		func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) },
		func(a, b float64) float64 { return a - b },
		func(a, b complex128) complex128 { return a - b },
	)
	intType.IMul = binOp(
		func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) },
		func(a, b float64) float64 { return a * b },
		func(a, b complex128) complex128 { return a * b },
	)
	floatType.IAdd = intType.IAdd
	floatType.ISub = intType.ISub
	floatType.IMul = intType.IMul
	complexType.IAdd = intType.IAdd
	complexType.ISub = intType.ISub
	complexType.IMul = intType.IMul

	intType.IDiv = divOp
	floatType.IDiv = divOp
	complexType.IDiv = divOp

	intType.IFloorDiv = floorDivOp
	floatType.IFloorDiv = floorDivOp

	intType.IMod = modOp
	floatType.IMod = modOp

	intType.IPow = powOp
	floatType.IPow = powOp

	intType.IBitAnd = func(self, other Value) (Value, *Exception) {
		a, b, err := bothInt(self, other, "&")
		if err != nil {
			return nil, err
		}
		return NewIntFromBig(new(big.Int).And(a, b)), nil
	}
	intType.IBitOr = func(self, other Value) (Value, *Exception) {
		a, b, err := bothInt(self, other, "|")
		if err != nil {
			return nil, err
		}
		return NewIntFromBig(new(big.Int).Or(a, b)), nil
	}
	intType.IBitXor = func(self, other Value) (Value, *Exception) {
		a, b, err := bothInt(self, other, "^")
		if err != nil {
			return nil, err
		}
		return NewIntFromBig(new(big.Int).Xor(a, b)), nil
	}
	intType.IShl = func(self, other Value) (Value, *Exception) {
		a, b, err := bothInt(self, other, "<<")
		if err != nil {
			return nil, err
		}
		return NewIntFromBig(new(big.Int).Lsh(a, uint(b.Uint64()))), nil
	}
	intType.IShr = func(self, other Value) (Value, *Exception) {
		a, b, err := bothInt(self, other, ">>")
		if err != nil {
			return nil, err
		}
		return NewIntFromBig(new(big.Int).Rsh(a, uint(b.Uint64()))), nil
	}

	intType.INeg = func(self Value) (Value, *Exception) {
		return NewIntFromBig(new(big.Int).Neg(self.(*Int).Val)), nil
	}
	floatType.INeg = func(self Value) (Value, *Exception) {
		return NewFloat(-self.(*Float).Val), nil
	}
	complexType.INeg = func(self Value) (Value, *Exception) {
		return NewComplex(-self.(*Complex).Val), nil
	}
	intType.IBitNot = func(self Value) (Value, *Exception) {
		return NewIntFromBig(new(big.Int).Not(self.(*Int).Val)), nil
	}

	intType.ICompare = compareOp
	floatType.ICompare = compareOp
	complexType.ICompare = nil // complex has no total order; equality only

	intType.IStr = func(self Value) string { return self.(*Int).String() }
	floatType.IStr = func(self Value) string { return self.(*Float).String() }
	intType.IBool = func(self Value) bool { return self.(*Int).Val.Sign() != 0 }
	floatType.IBool = func(self Value) bool { return self.(*Float).Val != 0 }
	boolType.IBool = func(self Value) bool { return self.(*Bool).Val }
	boolType.IStr = func(self Value) string {
		if self.(*Bool).Val {
			return "true"
		}
		return "false"
	}
	noneType.IBool = func(self Value) bool { return false }
	noneType.IStr = func(self Value) string { return "none" }
}

func bothInt(self, other Value, op string) (*big.Int, *big.Int, *Exception) {
	a, ok1 := self.(*Int)
	b, ok2 := other.(*Int)
	if !ok1 || !ok2 {
		return nil, nil, NewException(KindType, "unsupported operand type(s) for %s", op)
	}
	return a.Val, b.Val, nil
}

func binOp(iop func(a, b *big.Int) *big.Int, fop func(a, b float64) float64, cop func(a, b complex128) complex128) BinaryFunc {
	return func(self, other Value) (Value, *Exception) {
		pa, pb, ok := PromoteNumeric(self, other)
		if !ok {
			return nil, NewException(KindType, "unsupported operand types for arithmetic")
		}
		switch a := pa.(type) {
		case *Int:
			return NewIntFromBig(iop(a.Val, pb.(*Int).Val)), nil
		case *Float:
			return NewFloat(fop(a.Val, pb.(*Float).Val)), nil
		case *Complex:
			return NewComplex(cop(a.Val, pb.(*Complex).Val)), nil
		}
		return nil, NewException(KindType, "unsupported operand types for arithmetic")
	}
}

func divOp(self, other Value) (Value, *Exception) {
	pa, pb, ok := PromoteNumeric(self, other)
	if !ok {
		return nil, NewException(KindType, "unsupported operand types for /")
	}
	switch a := pa.(type) {
	case *Int:
		b := pb.(*Int)
		if b.Val.Sign() == 0 {
			return nil, NewException(KindZeroDivision, "division by zero")
		}
		af := new(big.Float).SetInt(a.Val)
		bf := new(big.Float).SetInt(b.Val)
		qf := new(big.Float).Quo(af, bf)
		fv, _ := qf.Float64()
		return NewFloat(fv), nil
	case *Float:
		b := pb.(*Float)
		if b.Val == 0 {
			return nil, NewException(KindZeroDivision, "division by zero")
		}
		return NewFloat(a.Val / b.Val), nil
	case *Complex:
		b := pb.(*Complex)
		if b.Val == 0 {
			return nil, NewException(KindZeroDivision, "division by zero")
		}
		return NewComplex(a.Val / b.Val), nil
	}
	return nil, NewException(KindType, "unsupported operand types for /")
}

func floorDivOp(self, other Value) (Value, *Exception) {
	pa, pb, ok := PromoteNumeric(self, other)
	if !ok {
		return nil, NewException(KindType, "unsupported operand types for //")
	}
	switch a := pa.(type) {
	case *Int:
		b := pb.(*Int)
		if b.Val.Sign() == 0 {
			return nil, NewException(KindZeroDivision, "floor division by zero")
		}
		q := new(big.Int)
		m := new(big.Int)
		q.DivMod(a.Val, b.Val, m)
		return NewIntFromBig(q), nil
	case *Float:
		b := pb.(*Float)
		if b.Val == 0 {
			return nil, NewException(KindZeroDivision, "floor division by zero")
		}
		return NewFloat(floorFloat(a.Val / b.Val)), nil
	}
	return nil, NewException(KindType, "unsupported operand types for //")
}

func modOp(self, other Value) (Value, *Exception) {
	pa, pb, ok := PromoteNumeric(self, other)
	if !ok {
		return nil, NewException(KindType, "unsupported operand types for %%")
	}
	switch a := pa.(type) {
	case *Int:
		b := pb.(*Int)
		if b.Val.Sign() == 0 {
			return nil, NewException(KindZeroDivision, "modulo by zero")
		}
		m := new(big.Int).Mod(a.Val, b.Val)
		return NewIntFromBig(m), nil
	case *Float:
		b := pb.(*Float)
		if b.Val == 0 {
			return nil, NewException(KindZeroDivision, "modulo by zero")
		}
		r := a.Val - floorFloat(a.Val/b.Val)*b.Val
		return NewFloat(r), nil
	}
	return nil, NewException(KindType, "unsupported operand types for %%")
}

func powOp(self, other Value) (Value, *Exception) {
	pa, pb, ok := PromoteNumeric(self, other)
	if !ok {
		return nil, NewException(KindType, "unsupported operand types for **")
	}
	switch a := pa.(type) {
	case *Int:
		b := pb.(*Int)
		if b.Val.Sign() < 0 {
			af := new(big.Float).SetInt(a.Val)
			bf := new(big.Float).SetInt(b.Val)
			return NewFloat(powFloat(mustFloat64(af), mustFloat64(bf))), nil
		}
		return NewIntFromBig(new(big.Int).Exp(a.Val, b.Val, nil)), nil
	case *Float:
		b := pb.(*Float)
		return NewFloat(powFloat(a.Val, b.Val)), nil
	}
	return nil, NewException(KindType, "unsupported operand types for **")
}

func compareOp(self, other Value) (int, *Exception) {
	pa, pb, ok := PromoteNumeric(self, other)
	if !ok {
		return 0, NewException(KindType, "unsupported operand types for comparison")
	}
	switch a := pa.(type) {
	case *Int:
		return a.Val.Cmp(pb.(*Int).Val), nil
	case *Float:
		b := pb.(*Float).Val
		switch {
		case a.Val < b:
			return -1, nil
		case a.Val > b:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, NewException(KindType, "unsupported operand types for comparison")
}

func floorFloat(v float64) float64 {
	return math.Floor(v)
}

func powFloat(a, b float64) float64 {
	return math.Pow(a, b)
}

func mustFloat64(f *big.Float) float64 {
	v, _ := f.Float64()
	return v
}
