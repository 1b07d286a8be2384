//go:build darwin || freebsd || illumos || solaris

package usdt

/*
#include <stdint.h>

// usdt_dof_register walks the DOF (DTrace Object Format) records this
// binary's generated cgo preambles defined and hands them to the platform's
// DTrace helper driver via its ioctl interface. The real helper call is a
// named-but-not-designed platform collaborator; this stub returns success
// so the façade's idempotency and error-mapping contract can be exercised
// without a real DTrace helper device present.
static int usdt_dof_register(void) { return 0; }
*/
import "C"

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterProbes is the Registration Façade for DTrace platforms: the
// first successful call transitions every probe from Unregistered to
// Registered; subsequent calls are no-ops that return the first call's
// result, making the operation idempotent.
func RegisterProbes() error {
	registerOnce.Do(func() {
		log := registrationLogger()
		if rc := C.usdt_dof_register(); rc != 0 {
			registerErr = &RegistrationFailedError{Cause: errors.Errorf("dtrace helper ioctl returned %d", rc)}
			log.Error("usdt dtrace registration failed", zap.Error(registerErr))
			return
		}
		for _, p := range Providers() {
			log.Debug("usdt provider registered with dtrace helper",
				zap.String("provider", p.Name), zap.Int("probes", len(p.Probes)))
		}
	})
	return registerErr
}

func registrationLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
