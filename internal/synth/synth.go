// Package synth composes the Data-Type Lexicon (internal/abi), the
// Argument Marshaller (internal/marshal), and the Platform Record Emitter
// (internal/emit) into one generated Go source file per provider: a cgo
// preamble hosting the trap sites and note records, plus the callable
// probe entry points application code imports and calls directly.
//
// Go's own assembler has no GNU `.pushsection`/`.ifndef`/
// extended-register-constraint directives, so a target lacking inline
// assembly has to drop to a helper object file per probe: the generated
// trap sites live in a cgo preamble, reusing cgo as the mechanism for
// embedding the C-level trap sites and note records.
package synth

import (
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/spf13/afero"

	"github.com/mmcshane/usdt/internal/abi"
	"github.com/mmcshane/usdt/internal/emit"
	"github.com/mmcshane/usdt/internal/marshal"
	"github.com/mmcshane/usdt/internal/model"
)

// Options configures one synthesis run.
type Options struct {
	Dialect emit.Dialect
}

// Generate renders the complete Go source for a provider's compiled
// artifact. The returned bytes are gofmt-ed. The package name is the
// provider's ModuleName, lower-cased with '-' replaced by '_'.
func Generate(prov model.Provider, opts Options) ([]byte, error) {
	if err := prov.Validate(); err != nil {
		return nil, err
	}

	data := providerTemplateData{
		PackageName:  sanitizePackageName(prov.ModuleName()),
		ProviderName: prov.Name,
		Ident:        exportedIdent(prov.ModuleName()),
	}

	emitter := emit.For(opts.Dialect)
	for _, probe := range prov.Probes {
		pd, err := buildProbeData(prov, probe, emitter)
		if err != nil {
			return nil, fmt.Errorf("usdt: synthesizing probe %q: %w", probe.Name, err)
		}
		data.Probes = append(data.Probes, pd)
		for _, param := range probe.Params {
			if param.Type == model.String || param.Type == model.Compound {
				data.NeedsUnsafe = true
			}
		}
	}

	var buf strings.Builder
	if err := providerTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("usdt: rendering generated source: %w", err)
	}

	formatted, err := format.Source([]byte(buf.String()))
	if err != nil {
		// Returning the unformatted source alongside the error lets a
		// caller inspect what templating produced, which is far more
		// useful for debugging a template bug than the bare gofmt error.
		return []byte(buf.String()), fmt.Errorf("usdt: generated source did not gofmt: %w", err)
	}
	return formatted, nil
}

// WriteFile synthesizes the provider and writes it to
// <dir>/<module>_usdt.go on fs. Exists mainly so generator tests can use an
// in-memory afero.Fs instead of real temp directories.
func WriteFile(fs afero.Fs, dir string, prov model.Provider, opts Options) (string, error) {
	src, err := Generate(prov, opts)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("%s/%s_usdt.go", strings.TrimSuffix(dir, "/"), sanitizePackageName(prov.ModuleName()))
	if err := afero.WriteFile(fs, path, src, 0o644); err != nil {
		return "", fmt.Errorf("usdt: writing %s: %w", path, err)
	}
	return path, nil
}

type providerTemplateData struct {
	PackageName  string
	ProviderName string
	Ident        string
	NeedsUnsafe  bool
	Probes       []probeTemplateData
}

type probeTemplateData struct {
	Name            string
	Ident           string
	ExportedName    string
	CFuncPrefix     string
	SemaphoreSymbol string
	ParamCount      int
	IsEnabledAsm    string
	FiringAsm       string
	CParams         string
	AsmOperands     string
	RegisterLocals  string
	CallArgs        string
	FuncSignature   string
	ThunkCall       string
	UnpackBody      string
}

func buildProbeData(prov model.Provider, probe model.Probe, emitter emit.Emitter) (probeTemplateData, error) {
	plan, err := marshal.Build(probe.Params)
	if err != nil {
		return probeTemplateData{}, err
	}

	argFormat, err := emit.ArgFormat(abi.SizeCode, abi.Operand, probe.Params)
	if err != nil {
		return probeTemplateData{}, err
	}

	sema := fmt.Sprintf("__usdt_sema_%s_%s", prov.Name, probe.Name)
	record := emitter.Emit(prov.Name, probe.Name, sema, argFormat)

	cPrefix := fmt.Sprintf("usdt_%s_%s", sanitizeC(prov.Name), sanitizeC(probe.Name))
	ident := exportedIdent(probe.Name)

	return probeTemplateData{
		Name:            probe.Name,
		Ident:           ident,
		ExportedName:    ident,
		CFuncPrefix:     cPrefix,
		SemaphoreSymbol: sema,
		ParamCount:      len(probe.Params),
		IsEnabledAsm:    cQuoteAsm(record.IsEnabled),
		FiringAsm:       cQuoteAsm(record.Firing),
		CParams:         plan.CParams(),
		AsmOperands:     plan.AsmOperands(),
		RegisterLocals:  plan.RegisterLocals(),
		CallArgs:        plan.CallArgs(),
		FuncSignature:   funcSignature(ident, plan),
		ThunkCall:       thunkCall(plan),
		UnpackBody:      plan.UnpackBody,
	}, nil
}

func funcSignature(ident string, plan marshal.Plan) string {
	if len(plan.Slots) == 0 {
		return fmt.Sprintf("func %s()", ident)
	}
	if len(plan.Slots) == 1 {
		return fmt.Sprintf("func %s(thunk func() %s)", ident, plan.Slots[0].GoType)
	}
	types := make([]string, len(plan.Slots))
	for i, s := range plan.Slots {
		types[i] = s.GoType
	}
	return fmt.Sprintf("func %s(thunk func() (%s))", ident, strings.Join(types, ", "))
}

func thunkCall(plan marshal.Plan) string {
	if len(plan.Slots) == 0 {
		return ""
	}
	names := make([]string, len(plan.Slots))
	for i := range plan.Slots {
		names[i] = fmt.Sprintf("arg%d", i)
	}
	return strings.Join(names, ", ") + " := thunk()"
}

// cQuoteAsm turns a block of raw assembler directive text (as produced by
// internal/emit) into the sequence of adjacent, newline-terminated C string
// literals a GNU __asm__ statement expects — one quoted literal per source
// line, relying on C's standard adjacent-string-literal concatenation
// rather than embedding literal newlines inside a single literal, which a
// C string literal cannot contain.
func cQuoteAsm(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(trimmed)
		b.WriteString("\t\t\"")
		b.WriteString(escaped)
		b.WriteString("\\n\"\n")
	}
	return b.String()
}

func sanitizePackageName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}

func sanitizeC(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// exportedIdent renders name as an exported Go identifier, splitting on
// underscores and title-casing each part (does__it -> DoesIt).
func exportedIdent(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	if b.Len() == 0 {
		return "Probe"
	}
	return b.String()
}

var providerTemplate = template.Must(template.New("provider").Parse(providerTemplateSource))
