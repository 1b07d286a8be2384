// Package abi is a pure lookup layer mapping declared type names to
// model.DataType and model.DataType to the (size code, signedness, ABI
// operand) triple the Platform Record Emitter and Argument Marshaller both
// need. It targets the AMD64 SysV calling convention; MaxArguments is this
// ABI's integer-argument register count.
package abi

import (
	"fmt"

	"github.com/mmcshane/usdt/internal/model"
)

// MaxArguments is the number of integer-argument registers the AMD64 SysV
// ABI provides (rdi, rsi, rdx, rcx, r8, r9). A probe with more parameters
// than this is an UnsupportedArity error.
const MaxArguments = 6

// TypeNames maps the legacy D-script type spelling to a DataType. "char *" and "string" are synonyms for the native pointer/string
// category.
var TypeNames = map[string]model.DataType{
	"uint8_t":  model.Uint8,
	"int8_t":   model.Int8,
	"uint16_t": model.Uint16,
	"int16_t":  model.Int16,
	"uint32_t": model.Uint32,
	"int32_t":  model.Int32,
	"uint64_t": model.Uint64,
	"int64_t":  model.Int64,
	"char *":   model.String,
	"string":   model.String,
}

// Lookup resolves a D-script type name to a DataType, reporting ok=false for
// an unrecognized name; unknown names fail at parse time.
func Lookup(name string) (model.DataType, bool) {
	dt, ok := TypeNames[name]
	return dt, ok
}

// sizeCode is the "-?{1,2,4,8}" component of the Nf@OP argument-format
// string.
func sizeCode(dt model.DataType) (width int, signed bool) {
	switch dt {
	case model.Uint8:
		return 1, false
	case model.Int8:
		return 1, true
	case model.Uint16:
		return 2, false
	case model.Int16:
		return 2, true
	case model.Uint32:
		return 4, false
	case model.Int32:
		return 4, true
	case model.Uint64, model.String, model.Compound:
		// Pointers and compound values are passed as a 64-bit pointer on
		// the firing side: the ABI slot holds a pointer to the transient
		// string.
		return 8, false
	case model.Int64:
		return 8, true
	default:
		return 0, false
	}
}

// SizeCode renders the "-?{1,2,4,8}" prefix used in the Nf@OP argument
// format.
func SizeCode(dt model.DataType) string {
	w, signed := sizeCode(dt)
	if signed {
		return fmt.Sprintf("-%d", w)
	}
	return fmt.Sprintf("%d", w)
}

// byteRegs, wordRegs, dwordRegs, and qwordRegs are the AMD64 SysV
// integer-argument register sequence, aliased to the operand width the
// trap site actually reads, indexed by 0-based parameter position.
var (
	byteRegs  = [MaxArguments]string{"%dil", "%sil", "%dl", "%cl", "%r8b", "%r9b"}
	wordRegs  = [MaxArguments]string{"%di", "%si", "%dx", "%cx", "%r8w", "%r9w"}
	dwordRegs = [MaxArguments]string{"%edi", "%esi", "%edx", "%ecx", "%r8d", "%r9d"}
	qwordRegs = [MaxArguments]string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"}
)

// Operand returns the textual ABI operand naming the register that carries
// argument index i (0-based) for the given DataType, on AMD64 SysV.
// index must be < MaxArguments; callers are expected to have already
// rejected UnsupportedArity.
func Operand(dt model.DataType, index int) (string, error) {
	if index < 0 || index >= MaxArguments {
		return "", fmt.Errorf("argument index %d exceeds the %d-register AMD64 SysV ABI", index, MaxArguments)
	}
	w, _ := sizeCode(dt)
	switch w {
	case 1:
		return byteRegs[index], nil
	case 2:
		return wordRegs[index], nil
	case 4:
		return dwordRegs[index], nil
	case 8:
		return qwordRegs[index], nil
	default:
		return "", fmt.Errorf("no ABI operand for data type %v", dt)
	}
}

// CheckArity returns an UnsupportedArity-shaped error when n exceeds
// MaxArguments, else nil.
func CheckArity(n int) error {
	if n > MaxArguments {
		return &UnsupportedArityError{Count: n, Max: MaxArguments}
	}
	return nil
}

// UnsupportedArityError is the UnsupportedArity error kind.
type UnsupportedArityError struct {
	Count int
	Max   int
}

func (e *UnsupportedArityError) Error() string {
	return fmt.Sprintf("probe declares %d parameters, exceeding the %d-register ABI argument limit", e.Count, e.Max)
}
