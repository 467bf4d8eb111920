// Package jsontree models a JSON document as a closed set of value kinds
// with insertion-ordered objects, and provides path-addressed reads and
// writes into that tree.
package jsontree

import "fmt"

// Kind identifies which variant a Value is.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one node of a JSON tree. The set of implementations is closed:
// Null, Bool, Number, String, *Array, *Object. Containers are pointer types
// so that mutating a value reached by traversal mutates the tree it came
// from.
type Value interface {
	Kind() Kind
}

// Null is the JSON null literal.
type Null struct{}

func (Null) Kind() Kind { return KindNull }

// Bool is a JSON boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

// Number holds the raw JSON number literal so serialization preserves the
// author's notation (1e3 stays 1e3, 1.50 stays 1.50).
type Number string

func (Number) Kind() Kind { return KindNumber }

// String is a JSON string (the decoded text, not the quoted literal).
type String string

func (String) Kind() Kind { return KindString }

// Array is a JSON array.
type Array struct {
	Elems []Value
}

func (*Array) Kind() Kind { return KindArray }

// NewArray returns an empty array.
func NewArray() *Array { return &Array{} }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.Elems) }

// At returns the element at i, or (nil, false) when i is out of range.
func (a *Array) At(i int) (Value, bool) {
	if i < 0 || i >= len(a.Elems) {
		return nil, false
	}
	return a.Elems[i], true
}

// SetAt assigns v at index i, growing the array with nulls when i is past
// the end.
func (a *Array) SetAt(i int, v Value) {
	for len(a.Elems) <= i {
		a.Elems = append(a.Elems, Null{})
	}
	a.Elems[i] = v
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object that preserves member insertion order.
type Object struct {
	members []Member
	index   map[string]int
}

func (*Object) Kind() Kind { return KindObject }

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.members) }

// Members returns the members in insertion order. The returned slice is the
// object's backing storage; callers must not reorder it.
func (o *Object) Members() []Member { return o.members }

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Set inserts key at the end or overwrites it in place, keeping the original
// position of existing keys.
func (o *Object) Set(key string, v Value) {
	if o.index == nil {
		o.index = map[string]int{}
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Delete removes key, preserving the order of the remaining members.
func (o *Object) Delete(key string) {
	i, ok := o.index[key]
	if !ok {
		return
	}
	o.members = append(o.members[:i], o.members[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.members); j++ {
		o.index[o.members[j].Key] = j
	}
}

// Equal reports deep equality. Object comparison is order-sensitive since
// member order is part of this tree's identity. Numbers compare by literal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	case String:
		return av == b.(String)
	case *Array:
		bv := b.(*Array)
		if len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if len(av.members) != len(bv.members) {
			return false
		}
		for i := range av.members {
			if av.members[i].Key != bv.members[i].Key {
				return false
			}
			if !Equal(av.members[i].Value, bv.members[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ToInterface converts a Value into plain Go values (nil, bool, float64 or
// int64, string, []interface{}, map[string]interface{}) for consumers that
// expect ordinary JSON-decoded data, such as the CEL evaluator and the
// YAML/TOML output encoders. Object member order is lost.
func ToInterface(v Value) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case Null:
		return nil
	case Bool:
		return bool(t)
	case Number:
		return t.asInterface()
	case String:
		return string(t)
	case *Array:
		out := make([]interface{}, len(t.Elems))
		for i, e := range t.Elems {
			out[i] = ToInterface(e)
		}
		return out
	case *Object:
		out := make(map[string]interface{}, len(t.members))
		for _, m := range t.members {
			out[m.Key] = ToInterface(m.Value)
		}
		return out
	default:
		return nil
	}
}

// FromInterface converts plain Go data (as produced by encoding/json,
// yaml.v3 or go-toml decoding into interface{}) into a Value. Map keys are
// emitted in sorted order since Go maps carry no insertion order.
func FromInterface(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case float64:
		return numberFromFloat(t)
	case float32:
		return numberFromFloat(float64(t))
	case int:
		return numberFromInt(int64(t))
	case int64:
		return numberFromInt(t)
	case uint64:
		return numberFromUint(t)
	case []interface{}:
		arr := NewArray()
		arr.Elems = make([]Value, len(t))
		for i, e := range t {
			arr.Elems[i] = FromInterface(e)
		}
		return arr
	case map[string]interface{}:
		obj := NewObject()
		for _, k := range sortedKeys(t) {
			obj.Set(k, FromInterface(t[k]))
		}
		return obj
	case map[interface{}]interface{}:
		obj := NewObject()
		keyed := make(map[string]interface{}, len(t))
		for k, val := range t {
			keyed[fmt.Sprint(k)] = val
		}
		for _, k := range sortedKeys(keyed) {
			obj.Set(k, FromInterface(keyed[k]))
		}
		return obj
	default:
		// Non-JSON leaf values (e.g. YAML timestamps) keep a string form
		// rather than vanishing.
		return String(fmt.Sprint(t))
	}
}
