package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcshane/usdt/internal/abi"
	"github.com/mmcshane/usdt/internal/emit"
	"github.com/mmcshane/usdt/internal/model"
)

func TestStap3S1(t *testing.T) {
	argFmt, err := emit.ArgFormat(abi.SizeCode, abi.Operand, []model.Param{{Type: model.Uint8}})
	require.NoError(t, err)
	assert.Equal(t, "1@%dil", argFmt)

	rec := emit.For(emit.Stap3).Emit("test", "start", "__usdt_sema_test_start", argFmt)
	assert.Contains(t, rec.Firing, `.asciz "test"`)
	assert.Contains(t, rec.Firing, `.asciz "start"`)
	assert.Contains(t, rec.Firing, `.asciz "1@%dil"`)
	assert.Contains(t, rec.Firing, ".8byte 0")
	assert.Contains(t, rec.IsEnabled, "__usdt_sema_test_start")
	assert.Contains(t, rec.IsEnabled, `.weak __usdt_sema_test_start`)
	assert.Contains(t, rec.IsEnabled, `.hidden __usdt_sema_test_start`)
}

func TestStap3S2ProbeNameSubstitution(t *testing.T) {
	argFmt, err := emit.ArgFormat(abi.SizeCode, abi.Operand, []model.Param{
		{Type: model.Uint8}, {Type: model.String},
	})
	require.NoError(t, err)
	assert.Equal(t, "1@%dil 8@%rsi", argFmt)

	rec := emit.For(emit.Stap3).Emit("does__it", "work", "__usdt_sema_does__it_work", argFmt)
	// Only probe names are substituted; providers are preserved verbatim.
	assert.Contains(t, rec.Firing, `.asciz "does__it"`)
	assert.Contains(t, rec.Firing, `.asciz "work"`)
	assert.NotContains(t, rec.Firing, `.asciz "does-it"`)
}

func TestProbeRecordNameSubstitution(t *testing.T) {
	assert.Equal(t, "does-it", emit.ProbeRecordName("does__it"))
	assert.Equal(t, "work", emit.ProbeRecordName("work"))
	assert.Equal(t, "-_", emit.ProbeRecordName("___"))
}

func TestBothRecordsDefineBaseAnchorLazily(t *testing.T) {
	rec := emit.For(emit.Stap3).Emit("test", "start", "sema", "")
	assert.Contains(t, rec.Firing, "_.stapsdt.base")
	assert.Contains(t, rec.IsEnabled, "_.stapsdt.base")
	assert.Contains(t, rec.Firing, ".ifndef _.stapsdt.base")
}

func TestNullDialectProducesNoRecordText(t *testing.T) {
	rec := emit.For(emit.Null).Emit("test", "start", "sema", "1@%dil")
	assert.Empty(t, rec.Firing)
	assert.Empty(t, rec.IsEnabled)
}

func TestDTraceDialectEmitsSectionEntry(t *testing.T) {
	rec := emit.For(emit.DTrace).Emit("test", "start", "sema", "1@%dil")
	assert.Contains(t, rec.Firing, "test")
	assert.Contains(t, rec.Firing, "start")
}
