package usdt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcshane/usdt"
)

// probeArg is a representative serializable-compound probe argument: a
// small struct with an exported JSON tag and a nested slice.
type probeArg struct {
	X      uint8 `json:"x"`
	Buffer []int `json:"buffer"`
}

// notJSONSerializable always fails to marshal, exercising the fallback to
// an error-string argument.
type notJSONSerializable struct{}

const serializationError = "nonono"

func (notJSONSerializable) MarshalJSON() ([]byte, error) {
	return nil, errString(serializationError)
}

type errString string

func (e errString) Error() string { return string(e) }

func TestMarshalArgSuccess(t *testing.T) {
	buf := make([]int, 12)
	for i := range buf {
		buf[i] = 1
	}
	arg := probeArg{X: 0, Buffer: buf}
	got := usdt.MarshalArg(arg)
	assert.Equal(t, `{"x":0,"buffer":[1,1,1,1,1,1,1,1,1,1,1,1]}`, got)
}

func TestMarshalArgFailureFallsBackToErrorString(t *testing.T) {
	got := usdt.MarshalArg(notJSONSerializable{})
	assert.Equal(t, serializationError, got)
}
