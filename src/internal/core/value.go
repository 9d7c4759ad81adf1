package core

import (
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is the dynamic record model: every field of an ingested log event
// is a Value. Objects preserve insertion order and numbers keep their exact
// decimal literal, both of which normalization depends on.
type Value struct {
	kind Kind
	b    bool
	num  string
	str  string
	arr  []*Value
	obj  *Object
}

func Null() *Value           { return &Value{kind: KindNull} }
func Bool(b bool) *Value     { return &Value{kind: KindBool, b: b} }
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// Number wraps a decimal literal without reparsing it.
func Number(literal string) *Value { return &Value{kind: KindNumber, num: literal} }

func Int(n int64) *Value {
	return &Value{kind: KindNumber, num: strconv.FormatInt(n, 10)}
}

func Float(f float64) *Value {
	return &Value{kind: KindNumber, num: strconv.FormatFloat(f, 'f', -1, 64)}
}

func NewArray(items ...*Value) *Value { return &Value{kind: KindArray, arr: items} }

func NewObject() *Value {
	return &Value{kind: KindObject, obj: &Object{vals: make(map[string]*Value)}}
}

func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) IsNull() bool { return v.Kind() == KindNull }

func (v *Value) IsScalar() bool { return v.Kind() <= KindString }

func (v *Value) IsStructured() bool {
	k := v.Kind()
	return k == KindArray || k == KindObject
}

func (v *Value) IsEmptyString() bool {
	return v != nil && v.kind == KindString && v.str == ""
}

// IsBlank reports a missing, null or whitespace-only string value.
func (v *Value) IsBlank() bool {
	if v == nil || v.kind == KindNull {
		return true
	}
	return v.kind == KindString && strings.TrimSpace(v.str) == ""
}

func (v *Value) BoolValue() bool { return v != nil && v.kind == KindBool && v.b }

// NumberText returns the exact decimal literal of a number value.
func (v *Value) NumberText() string {
	if v == nil || v.kind != KindNumber {
		return ""
	}
	return v.num
}

func (v *Value) Str() string {
	if v == nil || v.kind != KindString {
		return ""
	}
	return v.str
}

func (v *Value) Items() []*Value {
	if v == nil {
		return nil
	}
	return v.arr
}

func (v *Value) Obj() *Object {
	if v == nil {
		return nil
	}
	return v.obj
}

// Text is the scalar string form used for stringwise comparison and for
// flattened leaves: true/false for booleans, the exact literal for numbers,
// the string itself, and "null" otherwise.
func (v *Value) Text() string {
	switch v.Kind() {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	default:
		return "null"
	}
}

// Object is a string-keyed mapping that preserves insertion order. Keys are
// unique; replacing a value keeps the key's original position.
type Object struct {
	keys []string
	vals map[string]*Value
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

func (o *Object) Get(key string) (*Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.vals[key]
	return v, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

func (o *Object) Set(key string, v *Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

func (o *Object) Delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a snapshot of the keys in insertion order, safe to iterate
// while the object is mutated.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Visit calls fn for each member in insertion order. The object must not be
// mutated during the walk; use Keys for mutating iteration.
func (o *Object) Visit(fn func(key string, v *Value)) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		fn(k, o.vals[k])
	}
}
