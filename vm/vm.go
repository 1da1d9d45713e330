package vm

import (
	"fmt"
	"sync"

	"nilan/compiler"
	"nilan/object"
)

// tryHandler records where to resume and how much of the operand stack to
// discard when a throw inside the protected region needs to unwind to the
// nearest catch/finally, the bytecode-level counterpart of the
// tree-walking interpreter's panic/recover try machinery.
type tryHandler struct {
	target   int
	stackLen int
}

// Frame is one activation record: its own instruction pointer, local slot
// array, and try-handler stack. Every Frame shares the vm's single
// operand Stack; only locals are per-frame.
type Frame struct {
	bytecode *compiler.Bytecode
	ip       int
	locals   []object.Value

	tryHandlers []tryHandler

	// returnOverride, when non-nil, replaces whatever value OP_RETURN_VALUE
	// computed: used by type construction, where the bytecode executed is
	// an `init` method but the value the call expression must produce is
	// the newly constructed instance, not init's own return value.
	returnOverride object.Value
}

// VM is a stack-based virtual machine that runs compiler.Bytecode
// directly, the fast path alongside the tree-walking interpreter: both
// share the object package's value and dunder-slot representation, so a
// value built by one can be passed to code running under the other.
type VM struct {
	stack   Stack
	frames  []*Frame
	globals []object.Value
	thread  *object.Thread
}

// New creates a VM ready to run the top-level Bytecode a compiler.Compile
// call produced.
func New(bytecode compiler.Bytecode) *VM {
	globals := make([]object.Value, bytecode.NumGlobals)
	for i := range globals {
		globals[i] = object.None
	}
	for i, v := range object.DefaultGlobals() {
		if i < len(globals) {
			globals[i] = v
		}
	}
	locals := make([]object.Value, bytecode.NumLocals)
	for i := range locals {
		locals[i] = object.None
	}
	bc := bytecode
	vm := &VM{
		globals: globals,
		thread:  object.NewThread(&sync.Mutex{}, object.NewEnv(nil)),
	}
	vm.frames = []*Frame{{bytecode: &bc, locals: locals}}
	return vm
}

func (vm *VM) currentFrame() *Frame {
	return vm.frames[len(vm.frames)-1]
}

// Run executes the program to completion, returning the last value left
// on the stack (the REPL's expression-statement convenience) or a
// *RuntimeError if an exception escaped every frame.
func (vm *VM) Run() (object.Value, error) {
	for len(vm.frames) > 0 {
		frame := vm.currentFrame()
		if frame.ip >= len(frame.bytecode.Instructions) {
			// Implicit fall-off-the-end return for the top-level program;
			// compiled functions always end in an explicit OP_RETURN_VALUE.
			vm.frames = vm.frames[:len(vm.frames)-1]
			continue
		}

		op := compiler.Opcode(frame.bytecode.Instructions[frame.ip])

		vm.thread.GIL.Lock()
		exc := vm.dispatch(frame, op)
		vm.thread.GIL.Unlock()
		if exc != nil {
			if !vm.handleException(exc) {
				return nil, newRuntimeError(exc, vm.thread.Traceback())
			}
		}
	}
	if v, ok := vm.stack.Peek(); ok {
		return v, nil
	}
	return object.None, nil
}

// handleException searches outward from the current frame for a try
// handler, unwinding frames that have none. Returns false once the whole
// call stack has been exhausted.
func (vm *VM) handleException(exc *object.Exception) bool {
	for len(vm.frames) > 0 {
		frame := vm.currentFrame()
		if len(frame.tryHandlers) > 0 {
			h := frame.tryHandlers[len(frame.tryHandlers)-1]
			frame.tryHandlers = frame.tryHandlers[:len(frame.tryHandlers)-1]
			vm.stack.Truncate(h.stackLen)
			vm.stack.Push(exc)
			frame.ip = h.target
			return true
		}
		vm.frames = vm.frames[:len(vm.frames)-1]
		vm.thread.PopFrame()
	}
	return false
}

// dispatch executes exactly one instruction for frame, advancing its ip
// (or leaving it at a jump target) and returning a non-nil *Exception if
// the instruction raised.
func (vm *VM) dispatch(frame *Frame, op compiler.Opcode) *object.Exception {
	ins := frame.bytecode.Instructions
	def, err := compiler.Get(op)
	if err != nil {
		return object.NewException(object.KindValue, "vm: %s", err)
	}
	width := 1
	for _, w := range def.OperandWidths {
		width += w
	}

	readOperand := func() int {
		operands, _ := compiler.ReadOperands(def, ins[frame.ip+1:])
		return operands[0]
	}

	if binaryDispatch(op) {
		frame.ip += width
		return vm.execBinary(op)
	}
	if unaryDispatch(op) {
		frame.ip += width
		return vm.execUnary(op)
	}

	switch op {
	case compiler.OP_CONSTANT:
		idx := readOperand()
		vm.stack.Push(constantValue(frame.bytecode, idx))
	case compiler.OP_TRUE:
		vm.stack.Push(object.True)
	case compiler.OP_FALSE:
		vm.stack.Push(object.False)
	case compiler.OP_NULL:
		vm.stack.Push(object.None)
	case compiler.OP_POP:
		vm.stack.Pop()
	case compiler.OP_DUP:
		v, _ := vm.stack.Peek()
		vm.stack.Push(v)

	case compiler.OP_GET_GLOBAL:
		idx := readOperand()
		vm.stack.Push(vm.globals[idx])
	case compiler.OP_SET_GLOBAL:
		idx := readOperand()
		v, _ := vm.stack.Peek()
		vm.globals[idx] = v
	case compiler.OP_DEFINE_GLOBAL:
		idx := readOperand()
		v, _ := vm.stack.Pop()
		vm.globals[idx] = v

	case compiler.OP_GET_LOCAL:
		idx := readOperand()
		vm.stack.Push(frame.locals[idx])
	case compiler.OP_SET_LOCAL:
		idx := readOperand()
		v, _ := vm.stack.Peek()
		frame.locals[idx] = v
	case compiler.OP_DEFINE_LOCAL:
		idx := readOperand()
		v, _ := vm.stack.Pop()
		frame.locals[idx] = v

	case compiler.OP_JUMP:
		frame.ip = readOperand()
		return nil
	case compiler.OP_JUMP_NOT_TRUTHY:
		target := readOperand()
		v, _ := vm.stack.Peek()
		frame.ip += width
		if !truthyValue(v) {
			frame.ip = target
		}
		return nil
	case compiler.OP_AND:
		target := readOperand()
		v, _ := vm.stack.Peek()
		frame.ip += width
		if !truthyValue(v) {
			frame.ip = target
		}
		return nil
	case compiler.OP_OR:
		target := readOperand()
		v, _ := vm.stack.Peek()
		frame.ip += width
		if truthyValue(v) {
			frame.ip = target
		}
		return nil

	case compiler.OP_PRINT:
		v, _ := vm.stack.Pop()
		fmt.Println(stringifyValue(v))

	case compiler.OP_BUILD_LIST:
		n := readOperand()
		vm.stack.Push(object.NewList(vm.popN(n)))
	case compiler.OP_BUILD_TUPLE:
		n := readOperand()
		vm.stack.Push(object.NewTuple(vm.popN(n)))
	case compiler.OP_BUILD_SET:
		n := readOperand()
		vm.stack.Push(object.NewSet(vm.popN(n)))
	case compiler.OP_BUILD_DICT:
		n := readOperand()
		d := object.NewDict()
		flat := vm.popN(n * 2)
		for i := 0; i < len(flat); i += 2 {
			d.Set(flat[i], flat[i+1])
		}
		vm.stack.Push(d)

	case compiler.OP_GET_ATTR:
		idx := readOperand()
		nameStr := frame.bytecode.ConstantsPool[idx].(string)
		obj, _ := vm.stack.Pop()
		t := obj.Type()
		if t.IGetAttr == nil {
			return object.NewException(object.KindAttribute, "'%s' object has no attributes", t.Name)
		}
		v, exc := t.IGetAttr(obj, nameStr)
		if exc != nil {
			return exc
		}
		if fn, ok := v.(*object.Function); ok {
			if _, isInst := obj.(*object.Instance); isInst {
				v = &object.BoundMethod{Self: obj, Method: fn}
			}
		}
		vm.stack.Push(v)
	case compiler.OP_SET_ATTR:
		idx := readOperand()
		nameStr := frame.bytecode.ConstantsPool[idx].(string)
		value, _ := vm.stack.Pop()
		obj, _ := vm.stack.Pop()
		t := obj.Type()
		if t.ISetAttr == nil {
			return object.NewException(object.KindAttribute, "'%s' object does not support attribute assignment", t.Name)
		}
		if exc := t.ISetAttr(obj, nameStr, value); exc != nil {
			return exc
		}
		vm.stack.Push(value)

	case compiler.OP_GET_ITEM:
		index, _ := vm.stack.Pop()
		obj, _ := vm.stack.Pop()
		t := obj.Type()
		if t.IGetItem == nil {
			return object.NewException(object.KindType, "'%s' object is not subscriptable", t.Name)
		}
		v, exc := t.IGetItem(obj, index)
		if exc != nil {
			return exc
		}
		vm.stack.Push(v)
	case compiler.OP_SET_ITEM:
		value, _ := vm.stack.Pop()
		index, _ := vm.stack.Pop()
		obj, _ := vm.stack.Pop()
		t := obj.Type()
		if t.ISetItem == nil {
			return object.NewException(object.KindType, "'%s' object does not support item assignment", t.Name)
		}
		if exc := t.ISetItem(obj, index, value); exc != nil {
			return exc
		}
		vm.stack.Push(value)
	case compiler.OP_BUILD_SLICE:
		step, _ := vm.stack.Pop()
		stop, _ := vm.stack.Pop()
		start, _ := vm.stack.Pop()
		obj, _ := vm.stack.Pop()
		v, exc := sliceValue(obj, start, stop, step)
		if exc != nil {
			return exc
		}
		vm.stack.Push(v)

	case compiler.OP_GET_ITER:
		obj, _ := vm.stack.Pop()
		t := obj.Type()
		if t.IIter == nil {
			return object.NewException(object.KindType, "'%s' object is not iterable", t.Name)
		}
		it, exc := t.IIter(obj)
		if exc != nil {
			return exc
		}
		vm.stack.Push(it)
	case compiler.OP_FOR_ITER:
		target := readOperand()
		it, _ := vm.stack.Peek()
		t := it.Type()
		v, exc := t.INext(it)
		frame.ip += width
		if exc != nil {
			if object.IsIterExhausted(exc) {
				vm.stack.Pop()
				frame.ip = target
				return nil
			}
			return exc
		}
		vm.stack.Push(v)
		return nil

	case compiler.OP_MAKE_FUNCTION:
		idx := readOperand()
		cf := frame.bytecode.ConstantsPool[idx].(*compiler.CompiledFunction)
		vm.stack.Push(&object.Function{
			Name:     cf.Name,
			Params:   compiledParamsToObject(cf.Params, cf.Bytecode.ConstantsPool),
			Body:     cf,
			IsMethod: cf.IsMethod,
		})
	case compiler.OP_MAKE_TYPE:
		idx := readOperand()
		tmpl := frame.bytecode.ConstantsPool[idx].(*compiler.TypeTemplate)
		var parent *object.Type
		if tmpl.HasParent {
			pv, _ := vm.stack.Pop()
			p, ok := pv.(*object.Type)
			if !ok {
				return object.NewException(object.KindType, "%q is not a type", tmpl.ParentName)
			}
			parent = p
		}
		typ := &object.Type{Name: tmpl.Name, Parent: parent, Members: map[string]object.Value{}}
		for name, cf := range tmpl.Methods {
			typ.Members[name] = &object.Function{
				Name:     cf.Name,
				Params:   compiledParamsToObject(cf.Params, cf.Bytecode.ConstantsPool),
				Body:     cf,
				IsMethod: true,
			}
		}
		object.WireInstanceProtocol(typ)
		vm.stack.Push(typ)
	case compiler.OP_MAKE_ENUM:
		idx := readOperand()
		tmpl := frame.bytecode.ConstantsPool[idx].(*compiler.EnumTemplate)
		vm.stack.Push(materializeEnum(tmpl, frame.bytecode))

	case compiler.OP_CALL:
		argc := readOperand()
		args := vm.popN(argc)
		callee, _ := vm.stack.Pop()
		frame.ip += width
		return vm.call(callee, args)

	case compiler.OP_RETURN_VALUE:
		v, _ := vm.stack.Pop()
		if frame.returnOverride != nil {
			v = frame.returnOverride
		}
		vm.frames = vm.frames[:len(vm.frames)-1]
		vm.thread.PopFrame()
		vm.stack.Push(v)
		return nil
	case compiler.OP_RETURN:
		vm.frames = vm.frames[:len(vm.frames)-1]
		vm.thread.PopFrame()
		vm.stack.Push(object.None)
		return nil

	case compiler.OP_THROW:
		v, _ := vm.stack.Pop()
		exc, ok := v.(*object.Exception)
		if !ok {
			exc = object.NewException(object.KindUser, "%s", stringifyValue(v))
			exc.Payload = v
		}
		return exc
	case compiler.OP_SETUP_TRY:
		target := readOperand()
		frame.tryHandlers = append(frame.tryHandlers, tryHandler{target: target, stackLen: len(vm.stack)})
	case compiler.OP_POP_TRY:
		if len(frame.tryHandlers) > 0 {
			frame.tryHandlers = frame.tryHandlers[:len(frame.tryHandlers)-1]
		}
	case compiler.OP_MATCH_EXCEPTION:
		idx := readOperand()
		name, _ := frame.bytecode.ConstantsPool[idx].(string)
		v, _ := vm.stack.Peek()
		exc, ok := v.(*object.Exception)
		vm.stack.Push(object.NewBool(ok && exceptionMatchesType(exc, name)))

	case compiler.OP_IMPORT:
		idx := readOperand()
		path := frame.bytecode.ConstantsPool[idx].(string)
		mod, exc := object.ResolveModule(path)
		if exc != nil {
			return exc
		}
		vm.stack.Push(mod)

	default:
		return object.NewException(object.KindValue, "vm: unknown opcode %d", op)
	}

	frame.ip += width
	return nil
}

func (vm *VM) popN(n int) []object.Value {
	out := make([]object.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, _ := vm.stack.Pop()
		out[i] = v
	}
	return out
}

// call dispatches a value call expression: a compiled *object.Function, a
// *object.BoundMethod (implicit self), a *object.Type (construction), a
// *object.Builtin, or a generic ICall-bearing value.
func (vm *VM) call(callee object.Value, args []object.Value) *object.Exception {
	switch fn := callee.(type) {
	case *object.BoundMethod:
		cf, ok := fn.Method.Body.(*compiler.CompiledFunction)
		if !ok {
			return object.NewException(object.KindType, "bound method has no compiled body")
		}
		return vm.pushCall(cf, args, fn.Self, true, nil)
	case *object.Function:
		cf, ok := fn.Body.(*compiler.CompiledFunction)
		if !ok {
			return object.NewException(object.KindType, "function has no compiled body")
		}
		return vm.pushCall(cf, args, nil, cf.IsMethod, nil)
	case *object.Type:
		inst := object.NewInstance(fn)
		init := findMethod(fn, "init")
		if init == nil {
			vm.stack.Push(inst)
			return nil
		}
		cf, ok := init.Body.(*compiler.CompiledFunction)
		if !ok {
			return object.NewException(object.KindType, "init has no compiled body")
		}
		return vm.pushCall(cf, args, inst, true, inst)
	default:
		t := callee.Type()
		if t.ICall == nil {
			return object.NewException(object.KindType, "'%s' object is not callable", t.Name)
		}
		v, exc := t.ICall(vm.thread, callee, args)
		if exc != nil {
			return exc
		}
		vm.stack.Push(v)
		return nil
	}
}

func findMethod(t *object.Type, name string) *object.Function {
	for cur := t; cur != nil; cur = cur.Parent {
		if cur.Members == nil {
			continue
		}
		if v, ok := cur.Members[name]; ok {
			if fn, ok := v.(*object.Function); ok {
				return fn
			}
		}
	}
	return nil
}

// pushCall binds args against cf's parameter list and pushes a new Frame
// for it. When returnOverride is non-nil, the frame's OP_RETURN_VALUE
// substitutes it for whatever the bytecode itself computed, used for
// `init` so the call expression evaluates to the new instance.
func (vm *VM) pushCall(cf *compiler.CompiledFunction, args []object.Value, self object.Value, hasSelf bool, returnOverride object.Value) *object.Exception {
	locals := make([]object.Value, cf.NumLocals)
	for i := range locals {
		locals[i] = object.None
	}
	slot := 0
	if hasSelf {
		locals[0] = self
		slot = 1
	}
	argi := 0
	for i, p := range cf.Params {
		if p.Variadic {
			rest := append([]object.Value{}, args[argi:]...)
			locals[slot+i] = object.NewTuple(rest)
			argi = len(args)
			continue
		}
		if argi < len(args) {
			locals[slot+i] = args[argi]
			argi++
		} else if p.HasDefault {
			locals[slot+i] = object.FromLiteral(cf.Bytecode.ConstantsPool[p.DefaultConstIdx])
		} else {
			return object.NewException(object.KindValue, "%s() missing argument %q", cf.Name, p.Name)
		}
	}
	if exc := vm.thread.PushFrame(cf.Name, 0); exc != nil {
		return exc
	}
	vm.frames = append(vm.frames, &Frame{bytecode: cf.Bytecode, locals: locals, returnOverride: returnOverride})
	return nil
}

func compiledParamsToObject(params []compiler.CompiledParam, consts []any) []object.FuncParam {
	out := make([]object.FuncParam, len(params))
	for i, p := range params {
		fp := object.FuncParam{Name: p.Name, Variadic: p.Variadic}
		if p.HasDefault {
			fp.Default = object.FromLiteral(consts[p.DefaultConstIdx])
		}
		out[i] = fp
	}
	return out
}

func materializeEnum(tmpl *compiler.EnumTemplate, bc *compiler.Bytecode) *object.Type {
	typ := &object.Type{Name: tmpl.Name, Members: map[string]object.Value{}}
	next := int64(0)
	for _, m := range tmpl.Members {
		var val object.Value
		if m.HasValue {
			val = object.FromLiteral(bc.ConstantsPool[m.ValueConstIdx])
			if iv, ok := val.(*object.Int); ok {
				next = iv.Val.Int64() + 1
			}
		} else {
			val = object.NewInt(next)
			next++
		}
		member := object.NewInstance(typ)
		member.Fields["name"] = object.NewString(m.Name)
		member.Fields["value"] = val
		typ.Members[m.Name] = member
	}
	object.WireInstanceProtocol(typ)
	return typ
}

func constantValue(bc *compiler.Bytecode, idx int) object.Value {
	return object.FromLiteral(bc.ConstantsPool[idx])
}

func truthyValue(v object.Value) bool {
	switch val := v.(type) {
	case *object.NoneType:
		return false
	case *object.Bool:
		return val.Val
	}
	if fn := v.Type().IBool; fn != nil {
		return fn(v)
	}
	return true
}

// exceptionMatchesType reports whether exc should be caught by a
// `catch e: name { ... }` clause: "Exception" catches everything, a
// builtin kind's own name (ValueError, TypeError, ...) matches directly,
// and a user-thrown Instance matches against its own type or any parent
// in its inheritance chain.
func exceptionMatchesType(exc *object.Exception, name string) bool {
	if name == "Exception" || exc.Kind.String() == name {
		return true
	}
	if inst, ok := exc.Payload.(*object.Instance); ok {
		for t := inst.Class; t != nil; t = t.Parent {
			if t.Name == name {
				return true
			}
		}
	}
	return false
}

func stringifyValue(v object.Value) string {
	t := v.Type()
	if t.IStr != nil {
		return t.IStr(v)
	}
	if t.IRepr != nil {
		return t.IRepr(v)
	}
	return fmt.Sprintf("%v", v)
}

func sliceValue(obj object.Value, start, stop, step object.Value) (object.Value, *object.Exception) {
	list, ok := obj.(*object.List)
	if !ok {
		return nil, object.NewException(object.KindType, "'%s' object is not sliceable", obj.Type().Name)
	}
	n := int64(len(list.Elements))
	stepV := int64(1)
	if iv, ok := step.(*object.Int); ok {
		stepV = iv.Val.Int64()
	}
	if stepV == 0 {
		return nil, object.NewException(object.KindValue, "slice step cannot be zero")
	}
	startV, stopV := int64(0), n
	if stepV < 0 {
		startV, stopV = n-1, -1
	}
	if iv, ok := start.(*object.Int); ok {
		startV = normalizeSliceIndex(iv.Val.Int64(), n)
	}
	if iv, ok := stop.(*object.Int); ok {
		stopV = normalizeSliceIndex(iv.Val.Int64(), n)
	}
	var out []object.Value
	if stepV > 0 {
		for i := startV; i < stopV && i < n; i += stepV {
			if i >= 0 {
				out = append(out, list.Elements[i])
			}
		}
	} else {
		for i := startV; i > stopV && i >= 0; i += stepV {
			if i < n {
				out = append(out, list.Elements[i])
			}
		}
	}
	return object.NewList(out), nil
}

func normalizeSliceIndex(i, n int64) int64 {
	if i < 0 {
		i += n
	}
	return i
}
