package usdt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcshane/usdt"
)

func TestProviderName(t *testing.T) {
	p := usdt.NewProvider("foo")
	assert.Equal(t, "foo", p.Name)
}

func TestAddProbeRejectsDuplicateName(t *testing.T) {
	p := usdt.NewProvider("foo")
	_, err := p.AddProbe("bar", 0, func() bool { return false })
	require.NoError(t, err)
	_, err = p.AddProbe("bar", 0, func() bool { return false })
	require.Error(t, err)
}

func TestMustAddProbePanicsOnDuplicate(t *testing.T) {
	p := usdt.NewProvider("foo")
	usdt.MustAddProbe(p, "bar", 0, func() bool { return false })
	assert.Panics(t, func() {
		usdt.MustAddProbe(p, "bar", 0, func() bool { return false })
	})
}

// TestEnabledDelegatesToGeneratedClosure checks that when the closure
// reports disabled, the probe's Enabled() reflects that without ever
// invoking an argument-producer thunk (the thunk is entirely the
// generated call site's concern, not Probe's, so here we just assert the
// delegation itself).
func TestEnabledDelegatesToGeneratedClosure(t *testing.T) {
	p := usdt.NewProvider("foo")
	calls := 0
	probe, err := p.AddProbe("bar", 1, func() bool {
		calls++
		return false
	})
	require.NoError(t, err)

	assert.False(t, probe.Enabled())
	assert.Equal(t, 1, calls)
}

func TestEnabledWithNilClosureIsFalse(t *testing.T) {
	p := usdt.NewProvider("foo")
	probe, err := p.AddProbe("bar", 0, nil)
	require.NoError(t, err)
	assert.False(t, probe.Enabled())
}

func TestProvidersSnapshot(t *testing.T) {
	before := len(usdt.Providers())
	usdt.NewProvider("snapshot-test-provider")
	after := usdt.Providers()
	assert.Len(t, after, before+1)
}

func TestRegisterProbesIsIdempotent(t *testing.T) {
	require.NoError(t, usdt.RegisterProbes())
	require.NoError(t, usdt.RegisterProbes())
}
