/*
File: loxscript/values/values_test.go
*/
package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil{}, false},
		{Boolean{false}, false},
		{Boolean{true}, true},
		{Number{0}, true},
		{String{""}, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Truthy(c.v))
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Nil{}, Nil{}))
	assert.False(t, Equal(Nil{}, Boolean{false}))
	assert.True(t, Equal(Number{1}, Number{1}))
	assert.False(t, Equal(Number{1}, Number{2}))
	assert.True(t, Equal(String{"a"}, String{"a"}))
	assert.False(t, Equal(String{"a"}, Number{0}))
}

func TestNumberStringOmitsTrailingZero(t *testing.T) {
	assert.Equal(t, "3", Number{3.0}.String())
	assert.Equal(t, "3.5", Number{3.5}.String())
}
