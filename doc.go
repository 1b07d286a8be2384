// Command usdtgen and package usdt together implement a compile-time
// facility for embedding user-space statically-defined tracing (USDT)
// probes into a Go executable, so external tracers (DTrace, SystemTap/BPF)
// can observe probe firings with typed arguments.
//
// A provider is declared either as a legacy D-script (internal/parser) or
// as an inline YAML declaration, and cmd/usdtgen compiles it into a Go
// package plus a cgo helper hosting the platform-specific trap sites and
// ELF note records (internal/emit, internal/synth). Application code then
// imports the generated package and calls its probe functions, each taking
// a single deferred argument-producer thunk so side effects in argument
// construction are suppressed when the probe is disabled.
//
// This package is the small runtime surface generated code links against:
// Provider/Probe bookkeeping, the compound-argument JSON marshaller, a
// process-unique correlation ID, and the platform Registration Façade.
package usdt
