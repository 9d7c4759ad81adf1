package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectInsertionOrder(t *testing.T) {
	obj := NewObject().Obj()
	obj.Set("b", String("1"))
	obj.Set("a", String("2"))
	obj.Set("c", String("3"))

	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())

	t.Run("ReplaceKeepsPosition", func(t *testing.T) {
		obj.Set("a", String("updated"))
		assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())

		v, ok := obj.Get("a")
		require.True(t, ok)
		assert.Equal(t, "updated", v.Str())
	})

	t.Run("Delete", func(t *testing.T) {
		obj.Delete("a")
		assert.Equal(t, []string{"b", "c"}, obj.Keys())
		assert.False(t, obj.Has("a"))

		// Deleting a missing key is a no-op
		obj.Delete("a")
		assert.Equal(t, 2, obj.Len())
	})

	t.Run("VisitOrder", func(t *testing.T) {
		var visited []string
		obj.Visit(func(key string, v *Value) {
			visited = append(visited, key)
		})
		assert.Equal(t, []string{"b", "c"}, visited)
	})
}

func TestValueText(t *testing.T) {
	testCases := []struct {
		name     string
		value    *Value
		expected string
	}{
		{"True", Bool(true), "true"},
		{"False", Bool(false), "false"},
		{"NumberLiteral", Number("1.500"), "1.500"},
		{"Int", Int(42), "42"},
		{"String", String("hello"), "hello"},
		{"Null", Null(), "null"},
		{"NilValue", nil, "null"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.value.Text())
		})
	}
}

func TestValueBlank(t *testing.T) {
	assert.True(t, String("").IsEmptyString())
	assert.False(t, String(" ").IsEmptyString())
	assert.True(t, String("  ").IsBlank())
	assert.True(t, Null().IsBlank())
	assert.True(t, (*Value)(nil).IsBlank())
	assert.False(t, String("x").IsBlank())
	assert.False(t, Int(0).IsBlank())
}

func TestDecodeJSON(t *testing.T) {
	t.Run("ObjectPreservesOrder", func(t *testing.T) {
		v, ok := DecodeJSON(`{"z":1,"a":2,"m":3}`)
		require.True(t, ok)
		require.Equal(t, KindObject, v.Kind())
		assert.Equal(t, []string{"z", "a", "m"}, v.Obj().Keys())
	})

	t.Run("NumberKeepsLiteral", func(t *testing.T) {
		v, ok := DecodeJSON(`{"ts":1700000000.250}`)
		require.True(t, ok)
		ts, found := v.Obj().Get("ts")
		require.True(t, found)
		assert.Equal(t, KindNumber, ts.Kind())
		assert.Equal(t, "1700000000.250", ts.NumberText())
	})

	t.Run("NestedKinds", func(t *testing.T) {
		v, ok := DecodeJSON(`{"a":[true,null,"x"],"b":{"c":false}}`)
		require.True(t, ok)

		a, _ := v.Obj().Get("a")
		require.Equal(t, KindArray, a.Kind())
		require.Len(t, a.Items(), 3)
		assert.True(t, a.Items()[0].BoolValue())
		assert.True(t, a.Items()[1].IsNull())
		assert.Equal(t, "x", a.Items()[2].Str())

		b, _ := v.Obj().Get("b")
		require.Equal(t, KindObject, b.Kind())
		c, _ := b.Obj().Get("c")
		assert.Equal(t, KindBool, c.Kind())
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, input := range []string{"", "{", `{"a":}`, "hello", `{"a":1} trailing`} {
			_, ok := DecodeJSON(input)
			assert.False(t, ok, "input: %q", input)
		}
	})

	t.Run("ScalarJSON", func(t *testing.T) {
		v, ok := DecodeJSON("123")
		require.True(t, ok)
		assert.Equal(t, KindNumber, v.Kind())
	})
}

func TestLooksStructured(t *testing.T) {
	assert.True(t, LooksStructured(`{"a":1}`))
	assert.True(t, LooksStructured("  [1,2]"))
	assert.False(t, LooksStructured("hello"))
	assert.False(t, LooksStructured("123"))
	assert.False(t, LooksStructured(""))
}
