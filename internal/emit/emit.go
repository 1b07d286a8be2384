// Package emit produces, for a (platform, provider, probe) triple, the
// platform-specific ELF note text that makes a probe visible to tracers.
// Three dialects are implemented: Stap3 (SystemTap SDT v3, Linux), DTrace
// (illumos/macOS/FreeBSD), and Null (unsupported platforms). The parser,
// lexicon, and marshaller shapes are dialect-independent; only this
// package varies by target.
package emit

import "github.com/mmcshane/usdt/internal/model"

// Dialect selects which record emitter a provider is compiled for.
type Dialect int

const (
	Stap3 Dialect = iota
	DTrace
	Null
)

// Record is the pair of note-record asm text an Emitter produces for one
// probe: IsEnabled carries the semaphore and no arguments, Firing carries
// the arguments and semaphore=0.
type Record struct {
	IsEnabled string
	Firing    string
}

// Emitter is implemented by each dialect.
type Emitter interface {
	// Emit renders the note record pair for one probe. argFormat is the
	// already-computed "Nf@OP ..." string (empty for a zero-arity probe).
	Emit(provider, probe, semaphore, argFormat string) Record
}

// For resolves a Dialect to its Emitter.
func For(d Dialect) Emitter {
	switch d {
	case Stap3:
		return stap3Emitter{}
	case DTrace:
		return dtraceEmitter{}
	default:
		return nullEmitter{}
	}
}

// ArgFormat renders the space-separated "Nf@OP" sequence for a probe's
// parameters, the argument-format string both dialects embed in their
// probe record.
func ArgFormat(sizeCode func(model.DataType) string, operand func(model.DataType, int) (string, error), params []model.Param) (string, error) {
	parts := make([]string, 0, len(params))
	for i, p := range params {
		op, err := operand(p.Type, i)
		if err != nil {
			return "", err
		}
		parts = append(parts, sizeCode(p.Type)+"@"+op)
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out, nil
}

// ProbeRecordName substitutes "__" with "-" in a probe name for note
// emission, a legacy convention preserved for tool compatibility. Provider
// names are never substituted.
func ProbeRecordName(probeName string) string {
	out := make([]byte, 0, len(probeName))
	for i := 0; i < len(probeName); i++ {
		if i+1 < len(probeName) && probeName[i] == '_' && probeName[i+1] == '_' {
			out = append(out, '-')
			i++
			continue
		}
		out = append(out, probeName[i])
	}
	return string(out)
}
