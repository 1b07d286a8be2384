package synth_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcshane/usdt/internal/emit"
	"github.com/mmcshane/usdt/internal/model"
	"github.com/mmcshane/usdt/internal/synth"
)

func testProvider() model.Provider {
	return model.Provider{
		Name: "test",
		Probes: []model.Probe{
			{Name: "start", Params: []model.Param{{Type: model.Uint8}}},
			{Name: "stop", Params: []model.Param{{Type: model.String}, {Type: model.Uint32}}},
			{Name: "tick"},
		},
	}
}

func TestGenerateProducesCompilableLookingSource(t *testing.T) {
	src, err := synth.Generate(testProvider(), synth.Options{Dialect: emit.Stap3})
	require.NoError(t, err)
	s := string(src)

	assert.Contains(t, s, "package test")
	assert.Contains(t, s, `usdt.NewProvider("test")`)
	assert.Contains(t, s, "func Start(thunk func() uint8)")
	assert.Contains(t, s, "func Stop(thunk func() (string, uint32))")
	assert.Contains(t, s, "func Tick()")
	assert.Contains(t, s, "__usdt_sema_test_start")
	assert.Contains(t, s, `.asciz "start"`)
	assert.Contains(t, s, "import \"C\"")
}

func TestGenerateRejectsInvalidProvider(t *testing.T) {
	_, err := synth.Generate(model.Provider{Name: "9bad"}, synth.Options{Dialect: emit.Stap3})
	require.Error(t, err)
}

func TestGenerateZeroArityProbeNeedsNoThunk(t *testing.T) {
	src, err := synth.Generate(testProvider(), synth.Options{Dialect: emit.Null})
	require.NoError(t, err)
	assert.NotContains(t, string(src), "Tick(thunk")
}

func TestWriteFileUsesAferoFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	path, err := synth.WriteFile(fs, "/out", testProvider(), synth.Options{Dialect: emit.Stap3})
	require.NoError(t, err)
	assert.Equal(t, "/out/test_usdt.go", path)

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, exists)

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "package test")
}
