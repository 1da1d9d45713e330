package object

// List is a mutable, ordered, reference-counted sequence.
type List struct {
	RefCounted
	Elements []Value
}

var listType = &Type{Name: "list"}

func (l *List) Type() *Type { return listType }

func NewList(elems []Value) *List { return &List{Elements: elems} }

// Tuple is an immutable, ordered sequence.
type Tuple struct {
	Elements []Value
}

var tupleType = &Type{Name: "tuple"}

func (t *Tuple) Type() *Type { return tupleType }

func NewTuple(elems []Value) *Tuple { return &Tuple{Elements: elems} }

// DictPair is one key/value slot of a Dict, kept in insertion order the
// way the spec requires iteration to preserve.
type DictPair struct {
	Key   Value
	Value Value
}

// Dict is a mutable, insertion-ordered mapping. Lookups compare keys via
// the key type's IEq/ICompare slot since Go map equality cannot see into
// Value's dynamic dispatch.
type Dict struct {
	RefCounted
	Pairs []DictPair
}

var dictType = &Type{Name: "dict"}

func (d *Dict) Type() *Type { return dictType }

func NewDict() *Dict { return &Dict{} }

func valuesEqual(a, b Value) bool {
	t := a.Type()
	if t.IEq != nil {
		r, err := t.IEq(a, b)
		if err == nil {
			if bv, ok := r.(*Bool); ok {
				return bv.Val
			}
		}
	}
	if t.ICompare != nil {
		c, err := t.ICompare(a, b)
		if err == nil {
			return c == 0
		}
	}
	as, aok := a.(*String)
	bs, bok := b.(*String)
	if aok && bok {
		return as.Val == bs.Val
	}
	return false
}

// Get returns the value bound to key and whether it was present.
func (d *Dict) Get(key Value) (Value, bool) {
	for _, p := range d.Pairs {
		if valuesEqual(p.Key, key) {
			return p.Value, true
		}
	}
	return nil, false
}

// Set inserts or updates the binding for key.
func (d *Dict) Set(key, value Value) {
	for i, p := range d.Pairs {
		if valuesEqual(p.Key, key) {
			d.Pairs[i].Value = value
			return
		}
	}
	d.Pairs = append(d.Pairs, DictPair{Key: key, Value: value})
}

// Delete removes key's binding, reporting whether it existed.
func (d *Dict) Delete(key Value) bool {
	for i, p := range d.Pairs {
		if valuesEqual(p.Key, key) {
			d.Pairs = append(d.Pairs[:i], d.Pairs[i+1:]...)
			return true
		}
	}
	return false
}

// Set is a mutable unordered collection of unique elements, implemented
// over the same linear-scan equality as Dict since general Value hashing
// would require every container type to supply IHash.
type Set struct {
	RefCounted
	Elements []Value
}

var setType = &Type{Name: "set"}

func (s *Set) Type() *Type { return setType }

func NewSet(elems []Value) *Set {
	s := &Set{}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

func (s *Set) Add(v Value) {
	for _, e := range s.Elements {
		if valuesEqual(e, v) {
			return
		}
	}
	s.Elements = append(s.Elements, v)
}

func (s *Set) Contains(v Value) bool {
	for _, e := range s.Elements {
		if valuesEqual(e, v) {
			return true
		}
	}
	return false
}

// Range is the lazily-stepped integer sequence produced by the `range`
// builtin and iterated by for-loops.
type Range struct {
	Start, Stop, Step int64
}

var rangeType = &Type{Name: "range"}

func (r *Range) Type() *Type { return rangeType }

func init() {
	listType.ILen = func(self Value) (int, *Exception) { return len(self.(*List).Elements), nil }
	listType.IBool = func(self Value) bool { return len(self.(*List).Elements) > 0 }
	listType.IGetItem = indexGetter(func(self Value) []Value { return self.(*List).Elements })
	listType.ISetItem = func(self Value, index Value, value Value) *Exception {
		l := self.(*List)
		i, err := normalizeIndex(index, len(l.Elements))
		if err != nil {
			return err
		}
		l.Elements[i] = value
		return nil
	}
	listType.IIter = func(self Value) (Value, *Exception) {
		return NewListIterator(self.(*List).Elements), nil
	}
	listType.IAdd = func(self, other Value) (Value, *Exception) {
		a, ok1 := self.(*List)
		b, ok2 := other.(*List)
		if !ok1 || !ok2 {
			return nil, NewException(KindType, "can only concatenate list to list")
		}
		out := make([]Value, 0, len(a.Elements)+len(b.Elements))
		out = append(out, a.Elements...)
		out = append(out, b.Elements...)
		return NewList(out), nil
	}

	tupleType.ILen = func(self Value) (int, *Exception) { return len(self.(*Tuple).Elements), nil }
	tupleType.IBool = func(self Value) bool { return len(self.(*Tuple).Elements) > 0 }
	tupleType.IGetItem = indexGetter(func(self Value) []Value { return self.(*Tuple).Elements })
	tupleType.IIter = func(self Value) (Value, *Exception) {
		return NewListIterator(self.(*Tuple).Elements), nil
	}

	dictType.ILen = func(self Value) (int, *Exception) { return len(self.(*Dict).Pairs), nil }
	dictType.IBool = func(self Value) bool { return len(self.(*Dict).Pairs) > 0 }
	dictType.IGetItem = func(self Value, index Value) (Value, *Exception) {
		d := self.(*Dict)
		v, ok := d.Get(index)
		if !ok {
			return nil, NewException(KindKey, "key not found")
		}
		return v, nil
	}
	dictType.ISetItem = func(self Value, index Value, value Value) *Exception {
		self.(*Dict).Set(index, value)
		return nil
	}
	dictType.IIter = func(self Value) (Value, *Exception) {
		d := self.(*Dict)
		keys := make([]Value, len(d.Pairs))
		for i, p := range d.Pairs {
			keys[i] = p.Key
		}
		return NewListIterator(keys), nil
	}

	setType.ILen = func(self Value) (int, *Exception) { return len(self.(*Set).Elements), nil }
	setType.IBool = func(self Value) bool { return len(self.(*Set).Elements) > 0 }
	setType.IIter = func(self Value) (Value, *Exception) {
		return NewListIterator(self.(*Set).Elements), nil
	}

	rangeType.IIter = func(self Value) (Value, *Exception) {
		r := self.(*Range)
		var elems []Value
		if r.Step > 0 {
			for v := r.Start; v < r.Stop; v += r.Step {
				elems = append(elems, NewInt(v))
			}
		} else if r.Step < 0 {
			for v := r.Start; v > r.Stop; v += r.Step {
				elems = append(elems, NewInt(v))
			}
		}
		return NewListIterator(elems), nil
	}
}

func indexGetter(elems func(self Value) []Value) GetItemFunc {
	return func(self Value, index Value) (Value, *Exception) {
		e := elems(self)
		i, err := normalizeIndex(index, len(e))
		if err != nil {
			return nil, err
		}
		return e[i], nil
	}
}

func normalizeIndex(index Value, length int) (int, *Exception) {
	idx, ok := index.(*Int)
	if !ok {
		return 0, NewException(KindType, "indices must be integers")
	}
	i := int(idx.Val.Int64())
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, NewException(KindIndex, "index out of range")
	}
	return i, nil
}

// ListIterator is the iterator value returned by every builtin container's
// IIter slot.
type ListIterator struct {
	Elements []Value
	Pos      int
}

var listIteratorType = &Type{Name: "list_iterator"}

func (it *ListIterator) Type() *Type { return listIteratorType }

func NewListIterator(elems []Value) *ListIterator { return &ListIterator{Elements: elems} }

func init() {
	listIteratorType.INext = func(self Value) (Value, *Exception) {
		it := self.(*ListIterator)
		if it.Pos >= len(it.Elements) {
			return nil, NewException(KindIterExhausted, "iterator exhausted")
		}
		v := it.Elements[it.Pos]
		it.Pos++
		return v, nil
	}
	listIteratorType.IIter = func(self Value) (Value, *Exception) { return self, nil }
}
