package emit

import (
	"fmt"
	"strings"
)

// stap3Emitter is the SystemTap SDT v3 dialect. The asm text below follows
// the documented .note.stapsdt layout used by libstapsdt- and
// systemtap-compatible tracers, rendered as Go string templates and
// embedded into a `.c` helper file's GNU inline asm.
type stap3Emitter struct{}

const sectionIdent = `.note.stapsdt, "", "note"`

func (stap3Emitter) Emit(provider, probe, semaphore, argFormat string) Record {
	recordName := ProbeRecordName(probe)
	return Record{
		IsEnabled: isEnabledRecord(provider, recordName, semaphore),
		Firing:    firingRecord(provider, recordName, argFormat),
	}
}

// isEnabledRecord first lazily defines the weak hidden 2-byte semaphore,
// then the is-enabled note referencing it, then lazily defines the COMDAT
// `.stapsdt.base` anchor.
func isEnabledRecord(provider, recordName, semaphore string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `
	// First define the semaphore
		.ifndef %[1]s
				.pushsection .probes, "aw", "progbits"
				.weak %[1]s
				.hidden %[1]s
		%[1]s:
				.zero 2
				.type %[1]s, @object
				.size %[1]s, 2
				.popsection
		.endif
	// Second define the is_enabled probe which uses the semaphore
				.pushsection %[2]s
				.balign 4
				.4byte 992f-991f, 994f-993f, 3    // length, type
		991:
				.asciz "stapsdt"        // vendor string
		992:
				.balign 4
		993:
				.8byte 990b             // probe PC address
				.8byte _.stapsdt.base   // link-time sh_addr of base .stapsdt.base section
				.8byte %[1]s            // link-time address of the semaphore variable
				.asciz "%[3]s"          // provider name
				.asciz "%[4]s"          // probe name
				.asciz ""               // is_enabled probe takes no parameters
		994:
				.balign 4
				.popsection
`, semaphore, sectionIdent, provider, recordName)
	b.WriteString(baseAnchorStanza)
	return b.String()
}

// firingRecord emits the firing note: the semaphore slot is a literal 0
// ("probe doesn't use semaphore"), and the argument-format string carries
// one Nf@OP entry per parameter, in order.
func firingRecord(provider, recordName, argFormat string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `
	// First define the actual probe
				.pushsection %[1]s
				.balign 4
				.4byte 992f-991f, 994f-993f, 3    // length, type
		991:
				.asciz "stapsdt"        // vendor string
		992:
				.balign 4
		993:
				.8byte 990b             // probe PC address
				.8byte _.stapsdt.base   // link-time sh_addr of base .stapsdt.base section
				.8byte 0                // probe doesn't use semaphore
				.asciz "%[2]s"          // provider name
				.asciz "%[3]s"          // probe name
				.asciz "%[4]s"          // argument format (null-terminated string)
		994:
				.balign 4
				.popsection
`, sectionIdent, provider, recordName, argFormat)
	b.WriteString(baseAnchorStanza)
	return b.String()
}

// baseAnchorStanza is shared verbatim by both records: the emitter lazily
// defines the anchor if it is absent.
const baseAnchorStanza = `
	// Finally define the base anchor, if it doesn't already exist.
	.ifndef _.stapsdt.base
				.pushsection .stapsdt.base, "aG", "progbits", .stapsdt.base, comdat
				.weak _.stapsdt.base
				.hidden _.stapsdt.base
		_.stapsdt.base:
				.space 1
				.size _.stapsdt.base, 1
				.popsection
	.endif
`
