package marshal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcshane/usdt/internal/marshal"
	"github.com/mmcshane/usdt/internal/model"
)

func TestBuildNativeScalars(t *testing.T) {
	plan, err := marshal.Build([]model.Param{
		{Type: model.Uint8},
		{Type: model.String},
	})
	require.NoError(t, err)
	require.Len(t, plan.Slots, 2)
	assert.False(t, plan.Slots[0].IsCompound)
	assert.False(t, plan.Slots[1].IsCompound)
	assert.Equal(t, "carg0, carg1", plan.CallArgs())
	assert.Contains(t, plan.UnpackBody, "C.uint8_t(arg0)")
	assert.Contains(t, plan.UnpackBody, "C.CString(arg1)")
}

func TestBuildCompoundUsesMarshalHelper(t *testing.T) {
	plan, err := marshal.Build([]model.Param{
		{Type: model.Compound, TypeName: "ProbeArg"},
	})
	require.NoError(t, err)
	require.Len(t, plan.Slots, 1)
	assert.True(t, plan.Slots[0].IsCompound)
	assert.Contains(t, plan.UnpackBody, "usdt.MarshalArg(arg0)")
	assert.Contains(t, plan.UnpackBody, "defer C.free(unsafe.Pointer(carg0))")
}

func TestBuildRejectsTooManyArgs(t *testing.T) {
	params := make([]model.Param, 7)
	for i := range params {
		params[i] = model.Param{Type: model.Uint8}
	}
	_, err := marshal.Build(params)
	require.Error(t, err)
}

func TestCParams(t *testing.T) {
	plan, err := marshal.Build([]model.Param{
		{Type: model.Uint8},
		{Type: model.String},
	})
	require.NoError(t, err)
	assert.Equal(t, "uint8_t carg0, const char *carg1", plan.CParams())
}
