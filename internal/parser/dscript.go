// Package parser accepts either a legacy D-script source or an inline
// YAML declaration and yields the normalized model.Provider shape every
// downstream component consumes. This file implements the D-script
// dialect.
package parser

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/pkg/errors"

	"github.com/mmcshane/usdt/internal/abi"
	"github.com/mmcshane/usdt/internal/model"
)

// ParseError identifies the line and token at which a D-script source
// failed to parse.
type ParseError struct {
	Line  int
	Token string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("usdt: parse error at line %d, near %q: %v", e.Line, e.Token, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// UnknownTypeError is raised when a probe parameter names a type not in
// the abi lexicon.
type UnknownTypeError struct {
	Line int
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("usdt: line %d: unknown probe parameter type %q", e.Line, e.Name)
}

// ParseDScript parses the legacy D grammar subset:
//
//	provider NAME { probe PROBENAME(TYPE, TYPE, ...); ... };
//
// Declaration order is preserved in the returned model.Provider, since that
// order is externally observable.
func ParseDScript(source string) (model.Provider, error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(source))
	s.Mode = scanner.ScanIdents | scanner.ScanStrings
	s.Error = func(*scanner.Scanner, string) {} // surfaced via Scan()'s own token stream

	p := &dparser{s: &s}
	return p.parseProvider()
}

type dparser struct {
	s   *scanner.Scanner
	tok rune
}

func (p *dparser) next() rune {
	p.tok = p.s.Scan()
	return p.tok
}

func (p *dparser) text() string { return p.s.TokenText() }

func (p *dparser) errf(format string, args ...interface{}) error {
	return &ParseError{
		Line:  p.s.Pos().Line,
		Token: p.text(),
		Cause: errors.Errorf(format, args...),
	}
}

func (p *dparser) expect(lit string) error {
	if p.text() != lit {
		return p.errf("expected %q", lit)
	}
	return nil
}

func (p *dparser) parseProvider() (model.Provider, error) {
	var prov model.Provider

	if p.next() == scanner.EOF || p.text() != "provider" {
		return prov, p.errf("expected %q", "provider")
	}
	if p.next() == scanner.EOF {
		return prov, p.errf("expected provider name")
	}
	prov.Name = p.text()

	if p.next() == scanner.EOF {
		return prov, p.errf("expected %q", "{")
	}
	if err := p.expect("{"); err != nil {
		return prov, err
	}

	for {
		if p.next() == scanner.EOF {
			return prov, p.errf("unexpected end of input inside provider body")
		}
		if p.text() == "}" {
			break
		}
		if err := p.expect("probe"); err != nil {
			return prov, err
		}
		probe, err := p.parseProbe()
		if err != nil {
			return prov, err
		}
		prov.Probes = append(prov.Probes, probe)
	}

	// consume trailing ';' after the closing brace, if present.
	if p.next() != scanner.EOF && p.text() != ";" {
		return prov, p.errf("expected %q after provider body", ";")
	}

	if err := prov.Validate(); err != nil {
		return prov, err
	}
	return prov, nil
}

func (p *dparser) parseProbe() (model.Probe, error) {
	var pr model.Probe

	if p.next() == scanner.EOF {
		return pr, p.errf("expected probe name")
	}
	pr.Name = p.text()

	if p.next() == scanner.EOF {
		return pr, p.errf("expected %q", "(")
	}
	if err := p.expect("("); err != nil {
		return pr, err
	}

	for {
		if p.next() == scanner.EOF {
			return pr, p.errf("unexpected end of input in parameter list")
		}
		if p.text() == ")" {
			break
		}
		if p.text() == "," {
			continue
		}
		typeName, err := p.parseTypeName()
		if err != nil {
			return pr, err
		}
		dt, ok := abi.Lookup(typeName)
		if !ok {
			return pr, &UnknownTypeError{Line: p.s.Pos().Line, Name: typeName}
		}
		pr.Params = append(pr.Params, model.Param{Type: dt})
	}

	if p.next() == scanner.EOF {
		return pr, p.errf("expected %q", ";")
	}
	if err := p.expect(";"); err != nil {
		return pr, err
	}

	if err := abi.CheckArity(len(pr.Params)); err != nil {
		return pr, err
	}
	return pr, nil
}

// parseTypeName consumes one comma-delimited type spelling, which may be
// the two-token "char *" form.
func (p *dparser) parseTypeName() (string, error) {
	first := p.text()
	if first == "char" {
		if p.next() == scanner.EOF || p.text() != "*" {
			return "", p.errf("expected %q after %q", "*", "char")
		}
		return "char *", nil
	}
	return first, nil
}
