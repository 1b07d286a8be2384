package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcshane/usdt/internal/model"
	"github.com/mmcshane/usdt/internal/parser"
)

// TestParseDScriptS1 covers a single-parameter probe.
func TestParseDScriptS1(t *testing.T) {
	prov, err := parser.ParseDScript(`provider test { probe start(uint8_t); };`)
	require.NoError(t, err)
	assert.Equal(t, "test", prov.Name)
	require.Len(t, prov.Probes, 1)
	assert.Equal(t, "start", prov.Probes[0].Name)
	require.Len(t, prov.Probes[0].Params, 1)
	assert.Equal(t, model.Uint8, prov.Probes[0].Params[0].Type)
}

// TestParseDScriptS2 covers a two-parameter probe on a provider whose name
// contains a double underscore.
func TestParseDScriptS2(t *testing.T) {
	prov, err := parser.ParseDScript(`provider does__it { probe work(uint8_t, char *); };`)
	require.NoError(t, err)
	assert.Equal(t, "does__it", prov.Name)
	require.Len(t, prov.Probes, 1)
	require.Len(t, prov.Probes[0].Params, 2)
	assert.Equal(t, model.Uint8, prov.Probes[0].Params[0].Type)
	assert.Equal(t, model.String, prov.Probes[0].Params[1].Type)
}

func TestParseDScriptPreservesOrder(t *testing.T) {
	prov, err := parser.ParseDScript(`
		provider test {
			probe first(uint8_t);
			probe second(uint16_t, uint32_t);
			probe third();
		};
	`)
	require.NoError(t, err)
	require.Len(t, prov.Probes, 3)
	assert.Equal(t, []string{"first", "second", "third"}, probeNames(prov))
	assert.Equal(t, []model.DataType{model.Uint16, model.Uint32}, paramTypes(prov.Probes[1]))
}

func TestParseDScriptUnknownType(t *testing.T) {
	_, err := parser.ParseDScript(`provider test { probe start(not_a_type_t); };`)
	require.Error(t, err)
	var unknown *parser.UnknownTypeError
	require.ErrorAs(t, err, &unknown)
}

func TestParseDScriptTooManyArgs(t *testing.T) {
	_, err := parser.ParseDScript(`provider test { probe bar(int8_t, int8_t, int8_t, int8_t, int8_t, int8_t, int8_t); };`)
	require.Error(t, err)
}

func TestParseDScriptDuplicateProbe(t *testing.T) {
	_, err := parser.ParseDScript(`provider test { probe start(); probe start(); };`)
	require.Error(t, err)
	var dup *model.DuplicateProbeError
	require.ErrorAs(t, err, &dup)
}

func TestParseDScriptMalformed(t *testing.T) {
	_, err := parser.ParseDScript(`provider test probe start(); };`)
	require.Error(t, err)
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotZero(t, parseErr.Line)
}

func TestParseInlineEquivalentToDScript(t *testing.T) {
	fromYAML, err := parser.ParseInline([]byte(`
name: does__it
probes:
  - name: work
    params:
      - type: uint8_t
      - type: char *
`))
	require.NoError(t, err)

	fromD, err := parser.ParseDScript(`provider does__it { probe work(uint8_t, char *); };`)
	require.NoError(t, err)

	assert.Equal(t, fromD.Name, fromYAML.Name)
	assert.Equal(t, paramTypes(fromD.Probes[0]), paramTypes(fromYAML.Probes[0]))
}

func TestParseInlineCompoundType(t *testing.T) {
	prov, err := parser.ParseInline([]byte(`
name: test_json
probes:
  - name: good
    params:
      - name: arg
        type: "!ProbeArg"
`))
	require.NoError(t, err)
	require.Len(t, prov.Probes[0].Params, 1)
	param := prov.Probes[0].Params[0]
	assert.Equal(t, model.Compound, param.Type)
	assert.Equal(t, "ProbeArg", param.TypeName)
}

func TestParseInlineUnknownType(t *testing.T) {
	_, err := parser.ParseInline([]byte(`
name: test
probes:
  - name: start
    params:
      - type: not_a_real_type
`))
	require.Error(t, err)
	var unknown *parser.UnknownTypeError
	require.ErrorAs(t, err, &unknown)
}

func probeNames(p model.Provider) []string {
	out := make([]string, len(p.Probes))
	for i, pr := range p.Probes {
		out[i] = pr.Name
	}
	return out
}

func paramTypes(p model.Probe) []model.DataType {
	out := make([]model.DataType, len(p.Params))
	for i, param := range p.Params {
		out[i] = param.Type
	}
	return out
}
