package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mmcshane/usdt/internal/emit"
	"github.com/mmcshane/usdt/internal/model"
	"github.com/mmcshane/usdt/internal/parser"
	"github.com/mmcshane/usdt/internal/synth"
)

func newGenerateCommand() *cobra.Command {
	var (
		outDir     string
		dialectStr string
		moduleName string
	)

	cmd := &cobra.Command{
		Use:   "generate <provider-file>",
		Short: "Generate a Go probe package from a D-script or YAML provider description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prov, err := loadProvider(args[0])
			if err != nil {
				return err
			}
			if moduleName != "" {
				prov.Module = moduleName
			}

			dialect, err := parseDialect(dialectStr)
			if err != nil {
				return err
			}

			fs := afero.NewOsFs()
			path, err := synth.WriteFile(fs, outDir, prov, synth.Options{Dialect: dialect})
			if err != nil {
				return errors.Wrap(err, "generating probe package")
			}
			logger.Info("wrote generated probe package",
				zap.String("provider", prov.Name),
				zap.Int("probes", len(prov.Probes)),
				zap.String("path", path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "directory to write the generated Go file into")
	cmd.Flags().StringVar(&dialectStr, "dialect", "stap3", "record dialect: stap3, dtrace, or null")
	cmd.Flags().StringVar(&moduleName, "module", "", "override the generated package/module name (defaults to the provider name)")
	return cmd
}

func loadProvider(path string) (model.Provider, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return model.Provider{}, errors.Wrapf(err, "reading %s", path)
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return parser.ParseInline(source)
	}
	return parser.ParseDScript(string(source))
}

func parseDialect(s string) (emit.Dialect, error) {
	switch strings.ToLower(s) {
	case "stap3", "systemtap", "sdt":
		return emit.Stap3, nil
	case "dtrace":
		return emit.DTrace, nil
	case "null", "none":
		return emit.Null, nil
	default:
		return emit.Null, errors.Errorf("unknown dialect %q (expected stap3, dtrace, or null)", s)
	}
}
