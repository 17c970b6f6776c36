package wemux

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, reflect.TypeOf(exampleCommand{}), TypeOf[exampleCommand]())
	assert.Equal(t, reflect.TypeOf(&exampleCommand{}), TypeOf[*exampleCommand]())
	assert.NotEqual(t, TypeOf[exampleCommand](), TypeOf[*exampleCommand](),
		"value and pointer types route independently")
}

func TestNewMetadata(t *testing.T) {
	first := NewMetadata()
	second := NewMetadata()
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Timestamp.IsZero())
}
