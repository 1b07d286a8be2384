// Package usdt is the small runtime surface that build-time generated
// probe packages (see cmd/usdtgen) are compiled against. Callers never
// construct or fire arbitrary probes dynamically: this is not a tracing
// framework, and no probe can be created after the executable is linked.
// What it provides is the bookkeeping (Provider/Probe registry, for the
// Registration Façade) and the small pieces of logic that are identical
// across every generated probe regardless of provider, so a generated
// package's call sites all read the same way.
package usdt

import (
	"sync"

	"github.com/pkg/errors"
)

// Provider is a namespace grouping related probes, constructed once by a
// generated package's init. Name uniqueness across providers in one binary
// is not enforced here, and cmd/usdtgen, which handles one provider
// description per run, does not check it either.
type Provider struct {
	Name   string
	Module string

	mu     sync.Mutex
	Probes []*Probe
}

// Probe is a single named event belonging to exactly one Provider.
// enabled is supplied by generated code: it performs the is-enabled trap
// site and volatile semaphore read via a tiny cgo call into the C preamble
// of the provider's generated Go file.
type Probe struct {
	Provider   *Provider
	Name       string
	ParamCount int

	enabled func() bool
}

var (
	registryMu sync.Mutex
	registry   []*Provider
)

// NewProvider creates a Provider and registers it with the package-level
// registry the Registration Façade (RegisterProbes) walks. There is no
// "unloaded" vs "loaded" state to manage here, since the probe records
// already exist in the binary by the time this runs.
func NewProvider(name string) *Provider {
	p := &Provider{Name: name}
	registryMu.Lock()
	registry = append(registry, p)
	registryMu.Unlock()
	return p
}

// AddProbe associates a new Probe with this Provider. enabled is the
// generated enablement-check closure; paramCount is metadata only, stored
// in Probe.ParamCount and never used to validate Fire calls (those are
// statically typed per generated probe function, not a variadic
// interface{} call).
func (p *Provider) AddProbe(name string, paramCount int, enabled func() bool) (*Probe, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, existing := range p.Probes {
		if existing.Name == name {
			return nil, errors.Errorf("usdt: duplicate probe %q in provider %q", name, p.Name)
		}
	}
	probe := &Probe{Provider: p, Name: name, ParamCount: paramCount, enabled: enabled}
	p.Probes = append(p.Probes, probe)
	return probe, nil
}

// MustAddProbe is AddProbe, panicking on error. Generated package-scope
// `var` initializers use this, since a duplicate probe name at this point
// is a generator bug, not a condition calling code should recover from.
func MustAddProbe(p *Provider, name string, paramCount int, enabled func() bool) *Probe {
	probe, err := p.AddProbe(name, paramCount, enabled)
	if err != nil {
		panic(err)
	}
	return probe
}

// Enabled reports whether any tracer is currently attached to this probe.
// It delegates to the generated enablement-check closure, which performs
// the volatile semaphore read behind its own trap site.
func (p *Probe) Enabled() bool {
	if p.enabled == nil {
		return false
	}
	return p.enabled()
}

// Providers returns a snapshot of every Provider registered so far, for use
// by the Registration Façade.
func Providers() []*Provider {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]*Provider, len(registry))
	copy(out, registry)
	return out
}
