package object

import "testing"

func TestIntArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   BinaryFunc
		a, b int64
		want int64
	}{
		{"add", intType.IAdd, 2, 3, 5},
		{"sub", intType.ISub, 5, 3, 2},
		{"mul", intType.IMul, 4, 3, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(NewInt(tt.a), NewInt(tt.b))
			if err != nil {
				t.Fatalf("unexpected exception: %v", err)
			}
			i, ok := got.(*Int)
			if !ok {
				t.Fatalf("got %T, want *Int", got)
			}
			if i.Val.Int64() != tt.want {
				t.Errorf("got %d, want %d", i.Val.Int64(), tt.want)
			}
		})
	}
}

func TestIntDivPromotesToFloat(t *testing.T) {
	got, err := divOp(NewInt(7), NewInt(2))
	if err != nil {
		t.Fatalf("unexpected exception: %v", err)
	}
	f, ok := got.(*Float)
	if !ok {
		t.Fatalf("got %T, want *Float", got)
	}
	if f.Val != 3.5 {
		t.Errorf("got %v, want 3.5", f.Val)
	}
}

func TestFloorDivStaysInt(t *testing.T) {
	got, err := floorDivOp(NewInt(7), NewInt(2))
	if err != nil {
		t.Fatalf("unexpected exception: %v", err)
	}
	i, ok := got.(*Int)
	if !ok {
		t.Fatalf("got %T, want *Int", got)
	}
	if i.Val.Int64() != 3 {
		t.Errorf("got %d, want 3", i.Val.Int64())
	}
}

func TestDivisionByZeroRaisesZeroDivisionKind(t *testing.T) {
	_, err := divOp(NewInt(1), NewInt(0))
	if err == nil {
		t.Fatal("expected an exception for division by zero")
	}
	if err.Kind != KindZeroDivision {
		t.Errorf("got kind %v, want KindZeroDivision", err.Kind)
	}
}

func TestModOfMismatchedTypesRaisesTypeError(t *testing.T) {
	_, err := modOp(NewInt(1), NewString("x"))
	if err == nil {
		t.Fatal("expected an exception for mismatched operand types")
	}
	if err.Kind != KindType {
		t.Errorf("got kind %v, want KindType", err.Kind)
	}
}

func TestCompareOpOrdersInts(t *testing.T) {
	tests := []struct {
		name string
		a, b int64
		want int
	}{
		{"less", 1, 2, -1},
		{"equal", 2, 2, 0},
		{"greater", 3, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compareOp(NewInt(tt.a), NewInt(tt.b))
			if err != nil {
				t.Fatalf("unexpected exception: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBitwiseOperators(t *testing.T) {
	got, err := intType.IBitAnd(NewInt(6), NewInt(3))
	if err != nil {
		t.Fatalf("unexpected exception: %v", err)
	}
	if got.(*Int).Val.Int64() != 2 {
		t.Errorf("got %d, want 2", got.(*Int).Val.Int64())
	}

	got, err = intType.IShl(NewInt(1), NewInt(4))
	if err != nil {
		t.Fatalf("unexpected exception: %v", err)
	}
	if got.(*Int).Val.Int64() != 16 {
		t.Errorf("got %d, want 16", got.(*Int).Val.Int64())
	}
}

func TestNegation(t *testing.T) {
	got, err := intType.INeg(NewInt(5))
	if err != nil {
		t.Fatalf("unexpected exception: %v", err)
	}
	if got.(*Int).Val.Int64() != -5 {
		t.Errorf("got %d, want -5", got.(*Int).Val.Int64())
	}
}
