// Package marshal is the Argument Marshaller. Given a probe's parameter
// type list it produces two code artifacts: an unpack block (Go source
// binding caller values to arg_i slots, JSON-rendering serializable
// compounds through the usdt package's marshal helper) and an
// input-operand specification (the extended-asm input operand list,
// AsmOperands plus RegisterLocals, that pins each carg_i passed to the
// generated cgo helper to the ABI register for its position).
package marshal

import (
	"fmt"
	"strings"

	"github.com/mmcshane/usdt/internal/abi"
	"github.com/mmcshane/usdt/internal/model"
)

// Slot describes one arg_i binding: the Go type of its value, the cgo type
// it is converted to, and whether constructing it can fail at runtime (only
// true for Compound).
type Slot struct {
	Index      int
	Param      model.Param
	GoType     string // Go type of the tuple element this slot reads
	CType      string // cgo type of the converted value: C.<CType> for integers, "*C.char" for strings and compounds
	IsCompound bool
}

// Plan is the marshaller's output for one probe: one Slot per parameter,
// in declared order, plus the already-rendered unpack-block source that
// binds them.
type Plan struct {
	Slots      []Slot
	UnpackBody string // Go statements to splice into the probe entry point
}

// Build produces the Plan for a probe's parameter list. The unpack block
// reads the variables arg0..argN-1, which internal/synth's generated code
// binds from the caller-supplied thunk's return values before splicing the
// block in; for arity 0 the block is empty.
func Build(params []model.Param) (Plan, error) {
	if err := abi.CheckArity(len(params)); err != nil {
		return Plan{}, err
	}

	var slots []Slot
	var body strings.Builder
	for i, param := range params {
		slot := Slot{Index: i, Param: param}
		switch param.Type {
		case model.Uint8, model.Uint16, model.Uint32, model.Uint64:
			slot.GoType = goUintType(param.Type)
			slot.CType = cUintType(param.Type)
			fmt.Fprintf(&body, "\tcarg%d := C.%s(arg%d)\n", i, slot.CType, i)
		case model.Int8, model.Int16, model.Int32, model.Int64:
			slot.GoType = goIntType(param.Type)
			slot.CType = cIntType(param.Type)
			fmt.Fprintf(&body, "\tcarg%d := C.%s(arg%d)\n", i, slot.CType, i)
		case model.String:
			slot.GoType = "string"
			slot.CType = "*C.char"
			fmt.Fprintf(&body, "\tcarg%d := C.CString(arg%d)\n\tdefer C.free(unsafe.Pointer(carg%d))\n", i, i, i)
		case model.Compound:
			slot.IsCompound = true
			slot.GoType = param.TypeName
			slot.CType = "*C.char"
			// Lifetime note: the transient JSON buffer must extend across
			// the trap site, so it is freed by a defer immediately after
			// construction, not before firing.
			fmt.Fprintf(&body,
				"\tjson%d := usdt.MarshalArg(arg%d)\n"+
					"\tcarg%d := C.CString(json%d)\n\tdefer C.free(unsafe.Pointer(carg%d))\n",
				i, i, i, i, i)
		default:
			return Plan{}, fmt.Errorf("marshal: unsupported data type %v at argument %d", param.Type, i)
		}
		slots = append(slots, slot)
	}
	return Plan{Slots: slots, UnpackBody: body.String()}, nil
}

// CallArgs renders the comma-joined "carg0, carg1, ..." argument list for
// the generated cgo helper call, in declared order; inside the helper,
// AsmOperands pins each of them to the ABI register for its position.
func (p Plan) CallArgs() string {
	names := make([]string, len(p.Slots))
	for i := range p.Slots {
		names[i] = fmt.Sprintf("carg%d", i)
	}
	return strings.Join(names, ", ")
}

// CParams renders the C parameter declaration list ("uint8_t carg0, char
// *carg1, ...") for the generated helper's signature.
func (p Plan) CParams() string {
	parts := make([]string, len(p.Slots))
	for i, s := range p.Slots {
		parts[i] = fmt.Sprintf("%s carg%d", cParamDecl(s), i)
	}
	return strings.Join(parts, ", ")
}

// AsmOperandConstraints are the GCC extended-asm constraint letters for the
// first four AMD64 SysV integer-argument registers (rdi, rsi, rdx, rcx).
// The fifth and sixth argument registers (r8, r9) have no single-letter GCC
// constraint, so slots at index 4 and 5 are instead pinned through a local
// register variable the generated code declares explicitly (RegisterLocals)
// — the same technique glibc's <sys/sdt.h> macros use for the same reason.
var AsmOperandConstraints = [4]string{"D", "S", "d", "c"}

// AsmOperands renders the input-operand list of the firing trap site's
// extended-asm statement, binding carg0..cargN-1 to the ABI register
// sequence.
func (p Plan) AsmOperands() string {
	if len(p.Slots) == 0 {
		return ""
	}
	parts := make([]string, len(p.Slots))
	for i := range p.Slots {
		if i < len(AsmOperandConstraints) {
			parts[i] = fmt.Sprintf(`"%s" (carg%d)`, AsmOperandConstraints[i], i)
		} else {
			parts[i] = fmt.Sprintf(`"r" (reg%d)`, i)
		}
	}
	return strings.Join(parts, ", ")
}

var r8r9 = [2]string{"r8", "r9"}

// RegisterLocals renders the local register variable declarations needed
// for any slot beyond index 3 (r8, r9), which must be pinned to their
// hardware register explicitly before the asm statement that reads them.
func (p Plan) RegisterLocals() string {
	var b strings.Builder
	for i := range p.Slots {
		if i < len(AsmOperandConstraints) {
			continue
		}
		fmt.Fprintf(&b, "\tregister uint64_t reg%d __asm__(\"%s\") = (uint64_t)(uintptr_t)carg%d;\n",
			i, r8r9[i-len(AsmOperandConstraints)], i)
	}
	return b.String()
}

func cParamDecl(s Slot) string {
	switch s.Param.Type {
	case model.Uint8:
		return "uint8_t"
	case model.Int8:
		return "int8_t"
	case model.Uint16:
		return "uint16_t"
	case model.Int16:
		return "int16_t"
	case model.Uint32:
		return "uint32_t"
	case model.Int32:
		return "int32_t"
	case model.Uint64:
		return "uint64_t"
	case model.Int64:
		return "int64_t"
	default:
		return "const char *"
	}
}

func goUintType(dt model.DataType) string {
	switch dt {
	case model.Uint8:
		return "uint8"
	case model.Uint16:
		return "uint16"
	case model.Uint32:
		return "uint32"
	default:
		return "uint64"
	}
}

func goIntType(dt model.DataType) string {
	switch dt {
	case model.Int8:
		return "int8"
	case model.Int16:
		return "int16"
	case model.Int32:
		return "int32"
	default:
		return "int64"
	}
}

func cUintType(dt model.DataType) string {
	switch dt {
	case model.Uint8:
		return "uint8_t"
	case model.Uint16:
		return "uint16_t"
	case model.Uint32:
		return "uint32_t"
	default:
		return "uint64_t"
	}
}

func cIntType(dt model.DataType) string {
	switch dt {
	case model.Int8:
		return "int8_t"
	case model.Int16:
		return "int16_t"
	case model.Int32:
		return "int32_t"
	default:
		return "int64_t"
	}
}
