package object

// Instance is a single object created from a user `type Name { ... }`
// declaration: its own field bindings plus a pointer back to the Type that
// supplies its methods.
type Instance struct {
	RefCounted
	Class  *Type
	Fields map[string]Value
}

func NewInstance(class *Type) *Instance {
	return &Instance{Class: class, Fields: map[string]Value{}}
}

// instanceType is the shared runtime Type of every Instance's Type()
// return value is actually Class itself, not this descriptor; this
// distinguishes Instance's own dunder slots (getattr/setattr storage) from
// the user type it was constructed from.
var instanceType = &Type{Name: "instance"}

func (inst *Instance) Type() *Type { return inst.Class }

func init() {
	getAttr := func(self Value, name string) (Value, *Exception) {
		inst := self.(*Instance)
		if v, ok := inst.Fields[name]; ok {
			return v, nil
		}
		for t := inst.Class; t != nil; t = t.Parent {
			if t.Members != nil {
				if m, ok := t.Members[name]; ok {
					return m, nil
				}
			}
		}
		return nil, NewException(KindAttribute, "'%s' object has no attribute '%s'", inst.Class.Name, name)
	}
	setAttr := func(self Value, name string, value Value) *Exception {
		self.(*Instance).Fields[name] = value
		return nil
	}
	// Every user-declared Type shares these two slots; TypeDefStmt
	// execution only needs to fill in Name/Parent/Members.
	instanceType.IGetAttr = getAttr
	instanceType.ISetAttr = setAttr
}

// WireInstanceProtocol installs the getattr/setattr slots on a freshly
// declared user Type so its instances support field access.
func WireInstanceProtocol(t *Type) {
	t.IGetAttr = instanceType.IGetAttr
	t.ISetAttr = instanceType.ISetAttr
}

// BoundMethod pairs a method Function with the receiver it was looked up
// on, the vm's counterpart to the tree-walking interpreter's
// closure-capturing bindMethod: a CompiledFunction has no Env to stash
// self in, so the receiver travels alongside the function value instead.
type BoundMethod struct {
	Self   Value
	Method *Function
}

var boundMethodType = &Type{Name: "bound_method"}

func (bm *BoundMethod) Type() *Type { return boundMethodType }

func init() {
	boundMethodType.IStr = func(self Value) string {
		return "<bound method " + self.(*BoundMethod).Method.Name + ">"
	}
}
