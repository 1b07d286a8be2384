package synth

// providerTemplateSource is the Go source template for one provider's
// compiled artifact: one file, a C preamble hosting the trap sites and
// note records, and a Go-level wrapper exposing one callable function per
// probe.
const providerTemplateSource = `// Code generated by usdtgen. DO NOT EDIT.

package {{.PackageName}}

/*
#include <stdint.h>
#include <stdlib.h>

{{range .Probes}}
extern uint16_t {{.SemaphoreSymbol}};

static int {{.CFuncPrefix}}_is_enabled(void) {
	uint16_t enabled;
	__asm__ __volatile__ (
		"990:\n\tnop\n"
{{.IsEnabledAsm}}
		:
		:
		:
	);
	enabled = *(volatile uint16_t *)&{{.SemaphoreSymbol}};
	return enabled != 0;
}

static void {{.CFuncPrefix}}_fire({{.CParams}}) {
{{.RegisterLocals}}
	__asm__ __volatile__ (
		"990:\n\tnop\n"
{{.FiringAsm}}
		:
		: {{.AsmOperands}}
		:
	);
}
{{end}}
*/
import "C"

import (
{{if .NeedsUnsafe}}	"unsafe"
{{end}}	"github.com/mmcshane/usdt"
)

var provider{{.Ident}} = usdt.NewProvider("{{.ProviderName}}")

{{range .Probes}}
var probe{{.Ident}} = usdt.MustAddProbe(provider{{$.Ident}}, "{{.Name}}", {{.ParamCount}}, func() bool {
	return C.{{.CFuncPrefix}}_is_enabled() != 0
})

// {{.ExportedName}} fires the "{{.Name}}" probe. The thunk is only invoked
// when a tracer is attached; its return value is marshalled into the
// probe's declared argument types and bound to the ABI register sequence
// the SystemTap/DTrace note record advertises.
{{.FuncSignature}} {
	if !probe{{.Ident}}.Enabled() {
		return
	}
	{{if .ThunkCall}}{{.ThunkCall}}{{end}}
{{.UnpackBody}}
	C.{{.CFuncPrefix}}_fire({{.CallArgs}})
}
{{end}}
`
