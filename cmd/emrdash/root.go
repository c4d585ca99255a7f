package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"emrdash/internal/config"
	"emrdash/internal/dataprocessing"
	"emrdash/internal/infrastructure"
	"emrdash/pkg/contracts"
	"emrdash/pkg/contracts/domain"
)

// globalFlags override the loaded configuration when set.
type globalFlags struct {
	configFile string
	source     string
	sheet      string
	logLevel   string
}

// selectionFlags are the repeatable filter flags of the offline commands.
type selectionFlags struct {
	states     []string
	lgas       []string
	facilities []string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.states, "state", nil, "State to include (repeatable)")
	cmd.Flags().StringArrayVar(&f.lgas, "lga", nil, "LGA to include (repeatable)")
	cmd.Flags().StringArrayVar(&f.facilities, "facility", nil, "facility to include (repeatable)")
}

func (f *selectionFlags) selection() domain.Selection {
	return domain.Selection{
		States:     f.states,
		LGAs:       f.lgas,
		Facilities: f.facilities,
	}.Normalize()
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "emrdash",
		Short:         "EMR weekly facility dashboard",
		Long:          `emrdash loads an EMR concordance workbook and serves an interactive HIV program dashboard with cascading State, LGA and facility filters.`,
		Version:       contracts.GetFullVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is ./config.yaml or ./configs/config.yaml)")
	pf.StringVar(&flags.source, "source", "", "source workbook (overrides config)")
	pf.StringVar(&flags.sheet, "sheet", "", "worksheet name (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(
		newServeCmd(flags),
		newExportCmd(flags),
		newSummaryCmd(flags),
		newOptionsCmd(flags),
	)
	return root
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, err
	}
	if flags.source != "" {
		cfg.Source.File = flags.source
	}
	if flags.sheet != "" {
		cfg.Source.Sheet = flags.sheet
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	return cfg, nil
}

// loadDataset reads the workbook for the offline commands. Logs go to
// stderr so stdout carries only command output.
func loadDataset(ctx context.Context, cfg *config.Config) (*domain.Dataset, *slog.Logger, error) {
	logger, err := infrastructure.NewLogger(config.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: "console",
	}, os.Stderr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loader := dataprocessing.NewLoader(config.ResolveSourcePath(cfg.Source.File), cfg.Source.Sheet, logger)
	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, logger, err
	}
	return ds, logger, nil
}
