package usdt

import "fmt"

// ParseError, UnknownType, UnsupportedArity, and DuplicateProbe are
// build-time errors returned by internal/parser, internal/abi and
// internal/model directly as their own concrete types (see those packages);
// RegistrationFailedError is a runtime error surfaced by the DTrace
// Registration Façade (register_dtrace.go).

// PlatformUnsupportedError describes a request for a dialect (DTrace or
// SystemTap) the build target cannot provide. No function in this module
// returns it: cmd/usdtgen accepts every dialect name it knows regardless of
// target, and RegisterProbes never reports it. Running on such a target is
// not an error: the null dialect is always available and every probe macro
// remains callable.
type PlatformUnsupportedError struct {
	Requested string
}

func (e *PlatformUnsupportedError) Error() string {
	return fmt.Sprintf("usdt: dialect %q is unavailable on this build target", e.Requested)
}

// RegistrationFailedError wraps a rejection from the platform's tracing
// helper (the DTrace ioctl, on DTrace platforms).
type RegistrationFailedError struct {
	Cause error
}

func (e *RegistrationFailedError) Error() string {
	return fmt.Sprintf("usdt: registration failed: %v", e.Cause)
}

func (e *RegistrationFailedError) Unwrap() error { return e.Cause }
