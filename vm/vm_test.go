package vm

import (
	"testing"

	"nilan/compiler"
	"nilan/object"
)

func concatInstructions(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func TestRunArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		ins      []byte
		consts   []any
		expected int64
	}{
		{
			name: "add two constants",
			ins: concatInstructions(
				compiler.MakeInstruction(compiler.OP_CONSTANT, 0),
				compiler.MakeInstruction(compiler.OP_CONSTANT, 1),
				compiler.MakeInstruction(compiler.OP_ADD),
			),
			consts:   []any{int64(5), int64(1)},
			expected: 6,
		},
		{
			name: "multiply then subtract",
			ins: concatInstructions(
				compiler.MakeInstruction(compiler.OP_CONSTANT, 0),
				compiler.MakeInstruction(compiler.OP_CONSTANT, 1),
				compiler.MakeInstruction(compiler.OP_MUL),
				compiler.MakeInstruction(compiler.OP_CONSTANT, 2),
				compiler.MakeInstruction(compiler.OP_SUB),
			),
			consts:   []any{int64(4), int64(3), int64(2)},
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc := compiler.Bytecode{Instructions: tt.ins, ConstantsPool: tt.consts}
			v := New(bc)
			got, err := v.Run()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			iv, ok := got.(*object.Int)
			if !ok {
				t.Fatalf("expected *object.Int, got %T", got)
			}
			if iv.Val.Int64() != tt.expected {
				t.Errorf("got %d, want %d", iv.Val.Int64(), tt.expected)
			}
		})
	}
}

func TestRunGlobals(t *testing.T) {
	ins := concatInstructions(
		compiler.MakeInstruction(compiler.OP_CONSTANT, 0),
		compiler.MakeInstruction(compiler.OP_DEFINE_GLOBAL, 0),
		compiler.MakeInstruction(compiler.OP_GET_GLOBAL, 0),
		compiler.MakeInstruction(compiler.OP_CONSTANT, 1),
		compiler.MakeInstruction(compiler.OP_ADD),
	)
	bc := compiler.Bytecode{
		Instructions:  ins,
		ConstantsPool: []any{int64(41), int64(1)},
		NumGlobals:    1,
	}
	v := New(bc)
	got, err := v.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	iv, ok := got.(*object.Int)
	if !ok || iv.Val.Int64() != 42 {
		t.Errorf("got %v, want 42", got)
	}
}

func TestRunConditionalJump(t *testing.T) {
	// if false: push 1 else push 2, mirroring the OP_POP pair the compiler
	// emits on both sides of an OP_JUMP_NOT_TRUTHY to discard the condition.
	condition := compiler.MakeInstruction(compiler.OP_FALSE)
	thenPop := compiler.MakeInstruction(compiler.OP_POP)
	thenBranch := compiler.MakeInstruction(compiler.OP_CONSTANT, 1)
	elsePop := compiler.MakeInstruction(compiler.OP_POP)
	elseBranch := compiler.MakeInstruction(compiler.OP_CONSTANT, 0)
	jumpWidth := len(compiler.MakeInstruction(compiler.OP_JUMP, 0))

	elseLabel := len(condition) + jumpWidth + len(thenPop) + len(thenBranch) + jumpWidth
	afterIf := elseLabel + len(elsePop) + len(elseBranch)

	falseJump := compiler.MakeInstruction(compiler.OP_JUMP_NOT_TRUTHY, elseLabel)
	jumpOverElse := compiler.MakeInstruction(compiler.OP_JUMP, afterIf)

	ins := concatInstructions(condition, falseJump, thenPop, thenBranch, jumpOverElse, elsePop, elseBranch)
	bc := compiler.Bytecode{Instructions: ins, ConstantsPool: []any{int64(2), int64(1)}}
	v := New(bc)
	got, err := v.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	iv, ok := got.(*object.Int)
	if !ok || iv.Val.Int64() != 2 {
		t.Errorf("got %v, want 2 (else branch)", got)
	}
}

func TestRunListAndContains(t *testing.T) {
	ins := concatInstructions(
		compiler.MakeInstruction(compiler.OP_CONSTANT, 1),
		compiler.MakeInstruction(compiler.OP_CONSTANT, 0),
		compiler.MakeInstruction(compiler.OP_CONSTANT, 1),
		compiler.MakeInstruction(compiler.OP_CONSTANT, 2),
		compiler.MakeInstruction(compiler.OP_BUILD_LIST, 3),
		compiler.MakeInstruction(compiler.OP_IN),
	)
	bc := compiler.Bytecode{Instructions: ins, ConstantsPool: []any{int64(1), int64(2), int64(3)}}
	v := New(bc)
	got, err := v.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bv, ok := got.(*object.Bool)
	if !ok || !bv.Val {
		t.Errorf("got %v, want true", got)
	}
}

func TestRunUncaughtThrowIsRuntimeError(t *testing.T) {
	ins := concatInstructions(
		compiler.MakeInstruction(compiler.OP_CONSTANT, 0),
		compiler.MakeInstruction(compiler.OP_THROW),
	)
	bc := compiler.Bytecode{Instructions: ins, ConstantsPool: []any{"boom"}}
	v := New(bc)
	_, err := v.Run()
	if err == nil {
		t.Fatal("expected a RuntimeError, got nil")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
}

func TestRunTryCatchRecovers(t *testing.T) {
	throwConst := compiler.MakeInstruction(compiler.OP_CONSTANT, 0)
	throw := compiler.MakeInstruction(compiler.OP_THROW)
	setupPlaceholder := compiler.MakeInstruction(compiler.OP_SETUP_TRY, 0)
	target := len(setupPlaceholder) + len(throwConst) + len(throw)
	setup := compiler.MakeInstruction(compiler.OP_SETUP_TRY, target)

	handlerPop := compiler.MakeInstruction(compiler.OP_POP)
	pushSeven := compiler.MakeInstruction(compiler.OP_CONSTANT, 1)

	ins := concatInstructions(setup, throwConst, throw, handlerPop, pushSeven)
	bc := compiler.Bytecode{Instructions: ins, ConstantsPool: []any{"boom", int64(7)}}
	v := New(bc)
	got, err := v.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	iv, ok := got.(*object.Int)
	if !ok || iv.Val.Int64() != 7 {
		t.Errorf("got %v, want 7", got)
	}
}
