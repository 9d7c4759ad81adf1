package core

import (
	"strings"

	"github.com/valyala/fastjson"
)

var parsers fastjson.ParserPool

// DecodeJSON strictly parses s and converts the result into a Value.
// Returns false for anything that is not valid JSON; it never fails
// otherwise. Object member order and number literals are preserved.
func DecodeJSON(s string) (*Value, bool) {
	p := parsers.Get()
	defer parsers.Put(p)

	parsed, err := p.Parse(s)
	if err != nil {
		return nil, false
	}
	return fromFastjson(parsed), true
}

// LooksStructured reports whether s can possibly decode to an object or an
// array, cheap enough to gate full parses of plain text fields.
func LooksStructured(s string) bool {
	t := strings.TrimSpace(s)
	return len(t) > 0 && (t[0] == '{' || t[0] == '[')
}

// fromFastjson deep-copies a parsed tree into a Value so the pooled parser
// buffers can be reused.
func fromFastjson(v *fastjson.Value) *Value {
	switch v.Type() {
	case fastjson.TypeObject:
		obj, _ := v.Object()
		out := NewObject()
		obj.Visit(func(key []byte, member *fastjson.Value) {
			out.obj.Set(string(key), fromFastjson(member))
		})
		return out
	case fastjson.TypeArray:
		items, _ := v.Array()
		arr := make([]*Value, 0, len(items))
		for _, item := range items {
			arr = append(arr, fromFastjson(item))
		}
		return NewArray(arr...)
	case fastjson.TypeString:
		sb, _ := v.StringBytes()
		return String(string(sb))
	case fastjson.TypeNumber:
		return Number(v.String())
	case fastjson.TypeTrue:
		return Bool(true)
	case fastjson.TypeFalse:
		return Bool(false)
	default:
		return Null()
	}
}
