package object

import "testing"

func TestPromoteNumeric(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		wantRank int
		wantOK   bool
	}{
		{"int and int stay int", NewInt(1), NewInt(2), 0, true},
		{"int widens to float", NewInt(1), NewFloat(2.5), 1, true},
		{"float widens to complex", NewFloat(1), NewComplex(complex(2, 1)), 2, true},
		{"int widens to complex", NewInt(3), NewComplex(complex(1, 1)), 2, true},
		{"non-numeric operand rejected", NewInt(1), NewString("x"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pa, pb, ok := PromoteNumeric(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if numericRank(pa) != tt.wantRank || numericRank(pb) != tt.wantRank {
				t.Errorf("got ranks %d, %d; want both %d", numericRank(pa), numericRank(pb), tt.wantRank)
			}
		})
	}
}

func TestBoolSingletons(t *testing.T) {
	if NewBool(true) != True {
		t.Error("NewBool(true) should return the True singleton")
	}
	if NewBool(false) != False {
		t.Error("NewBool(false) should return the False singleton")
	}
}
