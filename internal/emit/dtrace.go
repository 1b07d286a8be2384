package emit

import "fmt"

// dtraceEmitter is the DTrace dialect (illumos/macOS/FreeBSD): it emits the
// trap-site `nop` and the per-probe section entries DTrace's DOF (DTrace
// Object Format) consumer expects, and explicitly leaves link-time DOF
// assembly to the platform collaborator named but not designed here, so
// this emitter's output is the section-entry text a linker-time dtrace(1)
// helper would read, not a full DOF section builder.
//
// The enablement check on this dialect reads a patched instruction rather
// than a semaphore in the SDT sense: DTrace's registration façade (see the
// root package's register_dtrace.go) patches the trap nop to a
// breakpoint-style instruction once a consumer attaches, rather than
// incrementing a counter the probe site reads.
type dtraceEmitter struct{}

func (dtraceEmitter) Emit(provider, probe, semaphore, argFormat string) Record {
	section := func(args string) string {
		return fmt.Sprintf(
			".section set_dtrace_probes_%s_%s,\"a\"\n"+
				"\t.asciz \"%s\"\n\t.asciz \"%s\"\n\t.asciz \"%s\"\n",
			provider, probe, provider, probe, args)
	}
	return Record{
		// The is-enabled entry on this dialect carries no arguments; its
		// section is identical in shape but the consumer patches the
		// instruction stream directly rather than reading a semaphore.
		IsEnabled: section(""),
		Firing:    section(argFormat),
	}
}
