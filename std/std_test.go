/*
File: loxscript/std/std_test.go
*/
package std

import (
	"testing"

	"github.com/akashmaji946/loxscript/function"
	"github.com/akashmaji946/loxscript/values"
	"github.com/stretchr/testify/assert"
)

func TestLen(t *testing.T) {
	v, err := length([]values.Value{values.String{Value: "hello"}})
	assert.NoError(t, err)
	assert.Equal(t, values.Number{Value: 5}, v)
}

func TestLenEmptyString(t *testing.T) {
	v, err := length([]values.Value{values.String{Value: ""}})
	assert.NoError(t, err)
	assert.Equal(t, values.Number{Value: 0}, v)
}

func TestLenRejectsNonString(t *testing.T) {
	_, err := length([]values.Value{values.Number{Value: 1}})
	assert.Error(t, err)
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		v    values.Value
		want string
	}{
		{values.Nil{}, "nil"},
		{values.Number{Value: 1}, "number"},
		{values.String{Value: "x"}, "string"},
		{values.Boolean{Value: true}, "boolean"},
		{&function.Class{Name: "C", Methods: map[string]*function.Function{}}, "class"},
	}
	for _, c := range cases {
		v, err := typeOf([]values.Value{c.v})
		assert.NoError(t, err)
		assert.Equal(t, values.String{Value: c.want}, v)
	}
}

func TestGlobalsIncludesPI(t *testing.T) {
	g := Globals()
	pi, ok := g["PI"].(values.Number)
	assert.True(t, ok)
	assert.InDelta(t, 3.14159, pi.Value, 0.0001)
}
