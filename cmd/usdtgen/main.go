// Command usdtgen is the build-time driver for the probe code generator:
// it reads a provider description (a D-script or an inline YAML
// declaration), runs it through internal/parser, internal/abi,
// internal/marshal, and internal/emit via internal/synth, and writes the
// resulting Go package. It is meant to be invoked from a `go:generate`
// directive in the consuming package, e.g.:
//
//	//go:generate usdtgen generate --dialect stap3 -o . provider.d
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

var logger *zap.Logger

func main() {
	var err error
	logger, err = zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "usdtgen: failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	root := &cobra.Command{
		Use:   "usdtgen",
		Short: "Generate Go USDT probe packages from a provider description",
	}
	root.AddCommand(newGenerateCommand())
	root.AddCommand(newCheckCommand())

	if err := root.Execute(); err != nil {
		logger.Error("usdtgen failed", zap.Error(err))
		os.Exit(1)
	}
}
