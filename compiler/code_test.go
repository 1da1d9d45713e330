package compiler

import (
	"nilan/ast"
	"testing"
)

func TestMakeInstruction(t *testing.T) {
	operand := 65000
	tests := []struct {
		op       Opcode
		operands []int
		expected []byte
	}{
		{OP_CONSTANT, []int{operand}, []byte{byte(OP_CONSTANT), 253, 232}},
		{OP_ADD, nil, []byte{byte(OP_ADD)}},
		{OP_MUL, nil, []byte{byte(OP_MUL)}},
		{OP_DIV, nil, []byte{byte(OP_DIV)}},
		{OP_SUB, nil, []byte{byte(OP_SUB)}},
		{OP_NEG, nil, []byte{byte(OP_NEG)}},
		{OP_NOT, nil, []byte{byte(OP_NOT)}},
		{OP_PRINT, nil, []byte{byte(OP_PRINT)}},
		{OP_AND, []int{operand}, []byte{byte(OP_AND), 253, 232}},
		{OP_OR, []int{operand}, []byte{byte(OP_OR), 253, 232}},
		{OP_EQ, nil, []byte{byte(OP_EQ)}},
		{OP_NEQ, nil, []byte{byte(OP_NEQ)}},
		{OP_GT, nil, []byte{byte(OP_GT)}},
		{OP_LT, nil, []byte{byte(OP_LT)}},
		{OP_GTE, nil, []byte{byte(OP_GTE)}},
		{OP_LTE, nil, []byte{byte(OP_LTE)}},
		{OP_DEFINE_GLOBAL, []int{operand}, []byte{byte(OP_DEFINE_GLOBAL), 253, 232}},
		{OP_SET_GLOBAL, []int{operand}, []byte{byte(OP_SET_GLOBAL), 253, 232}},
		{OP_GET_GLOBAL, []int{operand}, []byte{byte(OP_GET_GLOBAL), 253, 232}},
		{OP_DEFINE_LOCAL, []int{1}, []byte{byte(OP_DEFINE_LOCAL), 1}},
		{OP_SET_LOCAL, []int{1}, []byte{byte(OP_SET_LOCAL), 1}},
		{OP_GET_LOCAL, []int{1}, []byte{byte(OP_GET_LOCAL), 1}},
		{OP_JUMP, []int{operand}, []byte{byte(OP_JUMP), 253, 232}},
		{OP_JUMP_NOT_TRUTHY, []int{operand}, []byte{byte(OP_JUMP_NOT_TRUTHY), 253, 232}},
		{OP_POP, nil, []byte{byte(OP_POP)}},
		{OP_CALL, []int{3}, []byte{byte(OP_CALL), 3}},
	}

	for _, tt := range tests {
		instruction := MakeInstruction(tt.op, tt.operands...)

		if len(instruction) != len(tt.expected) {
			t.Fatalf("%s: instruction has wrong length - got: %d, want: %d", definitions[tt.op].Name, len(instruction), len(tt.expected))
		}

		for i, b := range tt.expected {
			if instruction[i] != b {
				t.Errorf("%s: instruction has wrong byte at %d - got: %v, want: %v", definitions[tt.op].Name, i, instruction[i], b)
			}
		}
	}
}

func TestDisassembleInstruction(t *testing.T) {
	tests := []struct {
		instructions []byte
		offset       int
		expected     string
		width        int
	}{
		{MakeInstruction(OP_CONSTANT, 65000), 0, "OP_CONSTANT 65000", 3},
		{MakeInstruction(OP_ADD), 0, "OP_ADD", 1},
		{MakeInstruction(OP_POP), 0, "OP_POP", 1},
		{MakeInstruction(OP_GET_LOCAL, 4), 0, "OP_GET_LOCAL 4", 2},
		{MakeInstruction(OP_JUMP, 65000), 0, "OP_JUMP 65000", 3},
	}

	for _, tt := range tests {
		result, width := DisassembleInstruction(tt.instructions, tt.offset)
		if result != tt.expected {
			t.Errorf("wrong disassembly - got: %q, want: %q", result, tt.expected)
		}
		if width != tt.width {
			t.Errorf("wrong width - got: %d, want: %d", width, tt.width)
		}
	}
}

func TestReadOperands(t *testing.T) {
	tests := []struct {
		op        Opcode
		operands  []int
		bytesRead int
	}{
		{OP_CONSTANT, []int{65000}, 2},
		{OP_GET_LOCAL, []int{255}, 1},
		{OP_CALL, []int{7}, 1},
	}

	for _, tt := range tests {
		instruction := MakeInstruction(tt.op, tt.operands...)
		def, err := Get(tt.op)
		if err != nil {
			t.Fatalf("definition not found for %v: %s", tt.op, err)
		}

		operandsRead, n := ReadOperands(def, instruction[1:])
		if n != tt.bytesRead {
			t.Errorf("n wrong - got: %d, want: %d", n, tt.bytesRead)
		}
		for i, want := range tt.operands {
			if operandsRead[i] != want {
				t.Errorf("operand %d wrong - got: %d, want: %d", i, operandsRead[i], want)
			}
		}
	}
}

func TestOpcodesAlignWithOperatorKinds(t *testing.T) {
	// The arithmetic/comparison/bitwise/unary opcode block is numerically
	// aligned with ast.OperatorKind, below the disjoint range of every other
	// opcode.
	pairs := []struct {
		op   Opcode
		kind ast.OperatorKind
	}{
		{OP_ADD, ast.OpAdd}, {OP_SUB, ast.OpSub}, {OP_MUL, ast.OpMult},
		{OP_DIV, ast.OpDiv}, {OP_FLOORDIV, ast.OpFloorDiv}, {OP_MOD, ast.OpMod},
		{OP_POW, ast.OpPow}, {OP_MATMUL, ast.OpMatMul}, {OP_BITAND, ast.OpBitAnd},
		{OP_BITOR, ast.OpBitOr}, {OP_BITXOR, ast.OpBitXor}, {OP_SHL, ast.OpShl},
		{OP_SHR, ast.OpShr}, {OP_EQ, ast.OpEq}, {OP_NEQ, ast.OpNotEq},
		{OP_SEQ, ast.OpStrictEq}, {OP_LT, ast.OpLt}, {OP_LTE, ast.OpLtEq},
		{OP_GT, ast.OpGt}, {OP_GTE, ast.OpGtEq}, {OP_IN, ast.OpIn},
		{OP_NEG, ast.OpNeg}, {OP_POS, ast.OpPos}, {OP_NOT, ast.OpNot},
		{OP_BITNOT, ast.OpBitNot},
	}
	for _, p := range pairs {
		if byte(p.op) != byte(p.kind) {
			t.Errorf("opcode %d does not match operator kind %d", p.op, p.kind)
		}
	}
	if OP_ADD >= OP_CONSTANT {
		t.Errorf("OP_ADD must fall below the disjoint scope/control-flow opcode range starting at OP_CONSTANT")
	}
}
