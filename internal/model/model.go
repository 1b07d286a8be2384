// Package model holds the normalized provider/probe shape produced by
// internal/parser and consumed by every downstream component. It has no
// behavior of its own beyond validating the structural invariants of this
// data: name syntax, per-provider probe-name uniqueness, and declaration
// order preservation.
package model

import (
	"regexp"

	"github.com/pkg/errors"
)

// identRe is the lexical rule shared by provider and probe names:
// [A-Za-z_][A-Za-z0-9_]*
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdent reports whether name is a legal provider or probe identifier.
func ValidIdent(name string) bool {
	return identRe.MatchString(name)
}

// DataType is the closed sum of parameter categories. The zero value is
// not a valid DataType; parser output always sets one of the named
// constants.
type DataType int

const (
	_ DataType = iota

	Uint8
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Uint64
	Int64

	// String is the native pointer/string category: a null-terminated C
	// string pointer, passed by value.
	String

	// Compound is the serializable-compound category: any type whose
	// value is JSON-rendered before firing, with the ABI slot holding a
	// pointer to the transient string.
	Compound
)

// Param is a single probe parameter. Name is documentation-only and may
// be empty; it is never used to select the ABI slot, which is always the
// parameter's position in Probe.Params. TypeName is set only when Type is
// Compound: it is the opaque application-level type name the inline
// declaration form uses to identify a serializable value; the D-script
// form never populates it, since D has no notion of an application type.
type Param struct {
	Name     string
	Type     DataType
	TypeName string
}

// Probe belongs to exactly one Provider. Params is ordered; that order is
// externally observable, since the tracer keys argument indices by
// position.
type Probe struct {
	Name   string
	Params []Param
}

// Provider is the root of the normalized shape a provider description
// parses into.
type Provider struct {
	Name   string
	Module string // overrides the default module name, which is Name
	Probes []Probe
}

// ModuleName returns the module the compiled artifact belongs to: Module if
// set explicitly, else Name.
func (p Provider) ModuleName() string {
	if p.Module != "" {
		return p.Module
	}
	return p.Name
}

// Validate checks the structural invariants a Provider must satisfy:
// legal names throughout and no duplicate probe name within the provider.
// Arity and type-name validity are checked elsewhere (internal/abi),
// since they depend on the target ABI.
func (p Provider) Validate() error {
	if !ValidIdent(p.Name) {
		return errors.Errorf("provider name %q is not a valid identifier", p.Name)
	}
	seen := make(map[string]struct{}, len(p.Probes))
	for _, pr := range p.Probes {
		if !ValidIdent(pr.Name) {
			return errors.Errorf("probe name %q is not a valid identifier", pr.Name)
		}
		if _, dup := seen[pr.Name]; dup {
			return &DuplicateProbeError{Provider: p.Name, Probe: pr.Name}
		}
		seen[pr.Name] = struct{}{}
	}
	return nil
}

// DuplicateProbeError is returned by Validate when two probes in the same
// provider share a name.
type DuplicateProbeError struct {
	Provider string
	Probe    string
}

func (e *DuplicateProbeError) Error() string {
	return "duplicate probe \"" + e.Probe + "\" in provider \"" + e.Provider + "\""
}
