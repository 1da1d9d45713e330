// Package object implements Nilan's runtime object system: the Value
// interface every runtime datum satisfies, the Type struct that carries a
// type's dunder-protocol function pointers, and reference counting.
//
// object must never import compiler or vm: it is the leaf of the runtime's
// dependency graph. Function bodies are carried as `any` and type-asserted
// by vm at call time to avoid the cycle.
package object

import (
	"sync/atomic"
)

// Value is satisfied by every runtime datum: numbers, strings, containers,
// functions, types, exceptions, modules.
type Value interface {
	// Type returns the runtime type descriptor for this value.
	Type() *Type
}

// UnaryFunc implements a single dunder slot taking one operand, e.g. i_neg.
type UnaryFunc func(self Value) (Value, *Exception)

// BinaryFunc implements a two-operand dunder slot, e.g. i_add.
type BinaryFunc func(self, other Value) (Value, *Exception)

// CompareFunc implements a rich-compare slot, returning -1/0/1 or an
// exception when the operands are not comparable.
type CompareFunc func(self, other Value) (int, *Exception)

// CallFunc implements a callable type's invocation slot.
type CallFunc func(th *Thread, self Value, args []Value) (Value, *Exception)

// GetAttrFunc/SetAttrFunc implement attribute access.
type GetAttrFunc func(self Value, name string) (Value, *Exception)
type SetAttrFunc func(self Value, name string, value Value) *Exception

// GetItemFunc/SetItemFunc implement subscript access.
type GetItemFunc func(self Value, index Value) (Value, *Exception)
type SetItemFunc func(self Value, index Value, value Value) *Exception

// IterFunc returns a fresh iterator over self; NextFunc advances one and
// raises an IterExhausted-kind Exception when done, per the iterator
// protocol's exhaustion-as-exception discipline.
type IterFunc func(self Value) (Value, *Exception)
type NextFunc func(self Value) (Value, *Exception)

// StrFunc/ReprFunc/LenFunc/BoolFunc/HashFunc round out the protocol surface
// every container and number type wires into.
type StrFunc func(self Value) string
type ReprFunc func(self Value) string
type LenFunc func(self Value) (int, *Exception)
type BoolFunc func(self Value) bool
type HashFunc func(self Value) (uint64, *Exception)

// Type is the runtime's type descriptor. Its dunder slots are ordinary Go
// function-pointer fields rather than a map: the VM dereferences the one it
// needs directly at each opcode, the same shape kscript's ks_type C struct
// uses for the same reason.
type Type struct {
	Name string

	IAdd    BinaryFunc
	ISub    BinaryFunc
	IMul    BinaryFunc
	IDiv    BinaryFunc
	IFloorDiv BinaryFunc
	IMod    BinaryFunc
	IPow    BinaryFunc
	IMatMul BinaryFunc
	IBitAnd BinaryFunc
	IBitOr  BinaryFunc
	IBitXor BinaryFunc
	IShl    BinaryFunc
	IShr    BinaryFunc

	INeg    UnaryFunc
	IPos    UnaryFunc
	IBitNot UnaryFunc

	ICompare CompareFunc
	IEq      BinaryFunc // returns a Bool Value; used when identity beyond ordering matters (e.g. strings vs NaN)

	ICall    CallFunc
	IGetAttr GetAttrFunc
	ISetAttr SetAttrFunc
	IGetItem GetItemFunc
	ISetItem SetItemFunc

	IIter IterFunc
	INext NextFunc

	IStr  StrFunc
	IRepr ReprFunc
	ILen  LenFunc
	IBool BoolFunc
	IHash HashFunc

	// Parent is non-nil for a user-defined `type Name: Parent { ... }`
	// declaration; attribute lookup falls back to it on a miss.
	Parent *Type

	// Members holds user-declared methods and fields for a TypeDefStmt
	// type; builtin types leave this nil and implement access through
	// IGetAttr/ISetAttr instead.
	Members map[string]Value
}

// RefCounted is embedded by values that participate in reference counting
// (spec §4.1). Immutable scalars (Int, Float, Bool, None) do not need it
// and are never freed explicitly; containers and objects do.
type RefCounted struct {
	refs int64
}

// IncRef atomically increments the reference count.
func (r *RefCounted) IncRef() {
	atomic.AddInt64(&r.refs, 1)
}

// DecRef atomically decrements the reference count and reports whether it
// reached zero.
func (r *RefCounted) DecRef() bool {
	return atomic.AddInt64(&r.refs, -1) == 0
}

// RefCount returns the current reference count, for diagnostics and tests.
func (r *RefCounted) RefCount() int64 {
	return atomic.LoadInt64(&r.refs)
}
