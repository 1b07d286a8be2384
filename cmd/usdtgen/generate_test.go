package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcshane/usdt/internal/emit"
)

func TestParseDialect(t *testing.T) {
	d, err := parseDialect("stap3")
	require.NoError(t, err)
	assert.Equal(t, emit.Stap3, d)

	d, err = parseDialect("DTRACE")
	require.NoError(t, err)
	assert.Equal(t, emit.DTrace, d)

	_, err = parseDialect("bogus")
	require.Error(t, err)
}

func TestLoadProviderDScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.d")
	require.NoError(t, os.WriteFile(path, []byte(`provider test { probe start(uint8_t); };`), 0o644))

	prov, err := loadProvider(path)
	require.NoError(t, err)
	assert.Equal(t, "test", prov.Name)
}

func TestLoadProviderYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: test\nprobes:\n  - name: start\n    params:\n      - type: uint8_t\n"), 0o644))

	prov, err := loadProvider(path)
	require.NoError(t, err)
	assert.Equal(t, "test", prov.Name)
}
