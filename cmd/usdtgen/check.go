package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mmcshane/usdt/internal/verify"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <elf-binary> <provider> <probe>",
		Short: "Verify a linked binary carries the expected USDT note for provider/probe",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			binary, provider, probe := args[0], args[1], args[2]

			notes, err := verify.ReadNotes(binary)
			if err != nil {
				return errors.Wrap(err, "reading .note.stapsdt")
			}

			for _, n := range notes {
				if n.Provider == provider && n.Probe == probe {
					logger.Info("found probe note",
						zap.String("provider", n.Provider),
						zap.String("probe", n.Probe),
						zap.String("arguments", n.Arguments))
					fmt.Printf("Provider: %s\nName: %s\nArguments: %s\n", n.Provider, n.Probe, n.Arguments)
					return nil
				}
			}
			return errors.Errorf("no note found for %s:::%s in %s", provider, probe, binary)
		},
	}
	return cmd
}
