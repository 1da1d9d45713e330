package compiler

import (
	"encoding/binary"
	"fmt"

	"nilan/ast"
)

// Bytecode is the unit of compiled output passed from Compile to the vm
// package: a flat instruction stream plus the constant pool its OP_CONSTANT
// operands index into.
type Bytecode struct {
	Instructions  Instructions
	ConstantsPool []any
	// Meta holds one MetaEntry per byte of Instructions (an instruction's
	// opcode and operand bytes all get a copy of its entry), carrying source
	// position for runtime error reporting without bloating the instruction
	// stream itself with position bytes.
	Meta []MetaEntry
	// NumLocals is the number of local slots a vm frame running this
	// Bytecode must allocate. For a CompiledFunction's own Bytecode this
	// includes its parameters; for the top-level program's Bytecode it
	// covers every local declared inside a block at any nesting depth.
	NumLocals int
	// NumGlobals is only meaningful on the top-level program's Bytecode:
	// the number of slots the vm's global value array must allocate.
	NumGlobals int
}

// MetaEntry records the source line/column an instruction was compiled
// from.
type MetaEntry struct {
	Line   int32
	Column int
}

type Opcode byte

type Instructions []byte

// The arithmetic/comparison/bitwise/unary opcodes are numerically aligned
// with ast.OperatorKind: OP_ADD == Opcode(ast.OpAdd), and so on through
// OP_BITNOT == Opcode(ast.OpBitNot), checked by
// TestOpcodesAlignWithOperatorKinds. The compiler itself does not rely on
// the alignment: it maps binary operators through the binaryOpcodes table
// (keyed by token type) and unary operators through a switch.
const (
	OP_ADD      = Opcode(ast.OpAdd)
	OP_SUB      = Opcode(ast.OpSub)
	OP_MUL      = Opcode(ast.OpMult)
	OP_DIV      = Opcode(ast.OpDiv)
	OP_FLOORDIV = Opcode(ast.OpFloorDiv)
	OP_MOD      = Opcode(ast.OpMod)
	OP_POW      = Opcode(ast.OpPow)
	OP_MATMUL   = Opcode(ast.OpMatMul)
	OP_BITAND   = Opcode(ast.OpBitAnd)
	OP_BITOR    = Opcode(ast.OpBitOr)
	OP_BITXOR   = Opcode(ast.OpBitXor)
	OP_SHL      = Opcode(ast.OpShl)
	OP_SHR      = Opcode(ast.OpShr)
	OP_EQ       = Opcode(ast.OpEq)
	OP_NEQ      = Opcode(ast.OpNotEq)
	OP_SEQ      = Opcode(ast.OpStrictEq)
	OP_LT       = Opcode(ast.OpLt)
	OP_LTE      = Opcode(ast.OpLtEq)
	OP_GT       = Opcode(ast.OpGt)
	OP_GTE      = Opcode(ast.OpGtEq)
	OP_IN       = Opcode(ast.OpIn)

	OP_NEG    = Opcode(ast.OpNeg)
	OP_POS    = Opcode(ast.OpPos)
	OP_NOT    = Opcode(ast.OpNot)
	OP_BITNOT = Opcode(ast.OpBitNot)
)

// Stack, scope, and control-flow opcodes occupy a disjoint range above the
// operator block so the two numbering schemes never collide.
const (
	OP_CONSTANT Opcode = iota + 100
	OP_POP
	OP_TRUE
	OP_FALSE
	OP_NULL

	OP_GET_GLOBAL
	OP_SET_GLOBAL
	OP_DEFINE_GLOBAL
	OP_GET_LOCAL
	OP_SET_LOCAL
	OP_DEFINE_LOCAL

	OP_JUMP
	OP_JUMP_NOT_TRUTHY

	OP_CALL
	OP_RETURN
	OP_RETURN_VALUE

	OP_BUILD_LIST
	OP_BUILD_TUPLE
	OP_BUILD_SET
	OP_BUILD_DICT

	OP_GET_ATTR
	OP_SET_ATTR
	OP_GET_ITEM
	OP_SET_ITEM
	OP_BUILD_SLICE

	OP_GET_ITER
	OP_FOR_ITER

	OP_MAKE_FUNCTION
	OP_MAKE_TYPE
	OP_MAKE_ENUM

	OP_THROW
	OP_SETUP_TRY
	OP_POP_TRY
	OP_MATCH_EXCEPTION

	OP_IMPORT

	OP_PRINT
	OP_DUP
	OP_AND
	OP_OR
)

// OpCodeDefinition names an opcode and the byte-width of each operand it
// carries.
type OpCodeDefinition struct {
	Name          string
	OperandWidths []int
}

var definitions = map[Opcode]*OpCodeDefinition{
	OP_ADD:      {"OP_ADD", nil},
	OP_SUB:      {"OP_SUB", nil},
	OP_MUL:      {"OP_MUL", nil},
	OP_DIV:      {"OP_DIV", nil},
	OP_FLOORDIV: {"OP_FLOORDIV", nil},
	OP_MOD:      {"OP_MOD", nil},
	OP_POW:      {"OP_POW", nil},
	OP_MATMUL:   {"OP_MATMUL", nil},
	OP_BITAND:   {"OP_BITAND", nil},
	OP_BITOR:    {"OP_BITOR", nil},
	OP_BITXOR:   {"OP_BITXOR", nil},
	OP_SHL:      {"OP_SHL", nil},
	OP_SHR:      {"OP_SHR", nil},
	OP_EQ:       {"OP_EQ", nil},
	OP_NEQ:      {"OP_NEQ", nil},
	OP_SEQ:      {"OP_SEQ", nil},
	OP_LT:       {"OP_LT", nil},
	OP_LTE:      {"OP_LTE", nil},
	OP_GT:       {"OP_GT", nil},
	OP_GTE:      {"OP_GTE", nil},
	OP_IN:       {"OP_IN", nil},
	OP_NEG:      {"OP_NEG", nil},
	OP_POS:      {"OP_POS", nil},
	OP_NOT:      {"OP_NOT", nil},
	OP_BITNOT:   {"OP_BITNOT", nil},

	OP_CONSTANT: {"OP_CONSTANT", []int{2}},
	OP_POP:      {"OP_POP", nil},
	OP_TRUE:     {"OP_TRUE", nil},
	OP_FALSE:    {"OP_FALSE", nil},
	OP_NULL:     {"OP_NULL", nil},

	OP_GET_GLOBAL:    {"OP_GET_GLOBAL", []int{2}},
	OP_SET_GLOBAL:    {"OP_SET_GLOBAL", []int{2}},
	OP_DEFINE_GLOBAL: {"OP_DEFINE_GLOBAL", []int{2}},
	OP_GET_LOCAL:     {"OP_GET_LOCAL", []int{1}},
	OP_SET_LOCAL:     {"OP_SET_LOCAL", []int{1}},
	OP_DEFINE_LOCAL:  {"OP_DEFINE_LOCAL", []int{1}},

	OP_JUMP:             {"OP_JUMP", []int{2}},
	OP_JUMP_NOT_TRUTHY:  {"OP_JUMP_NOT_TRUTHY", []int{2}},
	OP_CALL:             {"OP_CALL", []int{1}},
	OP_RETURN:           {"OP_RETURN", nil},
	OP_RETURN_VALUE:     {"OP_RETURN_VALUE", nil},
	OP_BUILD_LIST:       {"OP_BUILD_LIST", []int{2}},
	OP_BUILD_TUPLE:      {"OP_BUILD_TUPLE", []int{2}},
	OP_BUILD_SET:        {"OP_BUILD_SET", []int{2}},
	OP_BUILD_DICT:       {"OP_BUILD_DICT", []int{2}},
	OP_GET_ATTR:         {"OP_GET_ATTR", []int{2}},
	OP_SET_ATTR:         {"OP_SET_ATTR", []int{2}},
	OP_GET_ITEM:         {"OP_GET_ITEM", nil},
	OP_SET_ITEM:         {"OP_SET_ITEM", nil},
	OP_BUILD_SLICE:      {"OP_BUILD_SLICE", nil},
	OP_GET_ITER:         {"OP_GET_ITER", nil},
	OP_FOR_ITER:         {"OP_FOR_ITER", []int{2}},
	OP_MAKE_FUNCTION:    {"OP_MAKE_FUNCTION", []int{2}},
	OP_MAKE_TYPE:        {"OP_MAKE_TYPE", []int{2}},
	OP_MAKE_ENUM:        {"OP_MAKE_ENUM", []int{2}},
	OP_THROW:            {"OP_THROW", nil},
	OP_SETUP_TRY:        {"OP_SETUP_TRY", []int{2}},
	OP_POP_TRY:          {"OP_POP_TRY", nil},
	OP_MATCH_EXCEPTION:  {"OP_MATCH_EXCEPTION", []int{2}},
	OP_IMPORT:           {"OP_IMPORT", []int{2}},
	OP_PRINT:            {"OP_PRINT", nil},
	OP_DUP:              {"OP_DUP", nil},
	OP_AND:              {"OP_AND", []int{2}},
	OP_OR:               {"OP_OR", []int{2}},
}

func Get(op Opcode) (*OpCodeDefinition, error) {
	def, ok := definitions[op]
	if !ok {
		return nil, fmt.Errorf("opcode: '%d' undefined", op)
	}
	return def, nil
}

// MakeInstruction constructs a bytecode instruction from an opcode and its
// operands. Operands are encoded Big-Endian according to the opcode's
// defined widths, e.g. OP_CONSTANT with operand 42 becomes
// [OP_CONSTANT, 0x00, 0x2A].
func MakeInstruction(op Opcode, operands ...int) []byte {
	def, err := Get(op)
	if err != nil {
		return []byte{}
	}

	byteOffset := 1
	instructionLength := byteOffset
	for _, width := range def.OperandWidths {
		instructionLength += width
	}

	instruction := make([]byte, instructionLength)
	instruction[0] = byte(op)

	for idx, o := range operands {
		width := def.OperandWidths[idx]
		switch width {
		case 1:
			instruction[byteOffset] = byte(o)
		case 2:
			binary.BigEndian.PutUint16(instruction[byteOffset:], uint16(o))
		}
		byteOffset += width
	}
	return instruction
}

// DisassembleInstruction decodes a single instruction at ins[offset:],
// returning its human-readable form and its total byte width.
func DisassembleInstruction(ins Instructions, offset int) (string, int) {
	op := Opcode(ins[offset])
	def, err := Get(op)
	if err != nil {
		return fmt.Sprintf("ERROR: %s", err), 1
	}

	operands, read := ReadOperands(def, ins[offset+1:])
	width := 1 + read

	switch len(operands) {
	case 0:
		return def.Name, width
	case 1:
		return fmt.Sprintf("%s %d", def.Name, operands[0]), width
	default:
		return fmt.Sprintf("%s %v", def.Name, operands), width
	}
}

// ReadOperands decodes every operand of a definition from ins, returning
// the decoded values and how many bytes were consumed.
func ReadOperands(def *OpCodeDefinition, ins Instructions) ([]int, int) {
	operands := make([]int, len(def.OperandWidths))
	offset := 0
	for i, width := range def.OperandWidths {
		switch width {
		case 1:
			operands[i] = int(ins[offset])
		case 2:
			operands[i] = int(binary.BigEndian.Uint16(ins[offset:]))
		}
		offset += width
	}
	return operands, offset
}

// ReadUint16 decodes a Big-Endian uint16 operand at ins[offset:], the
// helper the vm's dispatch loop uses to read jump targets and indices
// without going through the slower ReadOperands path.
func ReadUint16(ins Instructions, offset int) uint16 {
	return binary.BigEndian.Uint16(ins[offset:])
}
